package store

import "time"

// Article is a row of the remote articles table. Identity is the URL;
// the aggregation agent upserts on it. Every field except Title and URL
// may be null in the remote schema.
type Article struct {
	Source          string     `json:"source"`
	Title           string     `json:"title"`
	URL             string     `json:"url"`
	Description     string     `json:"description"`
	PublishedDate   *time.Time `json:"published_date"`
	KeywordsMatched []string   `json:"keywords_matched"`
}

// Briefing is a row of the daily_briefings table. At most one exists per
// calendar date; BriefingDate is the ISO date string the row is keyed on.
type Briefing struct {
	BriefingDate          string   `json:"briefing_date"`
	Title                 string   `json:"title"`
	SummaryText           string   `json:"summary_text"`
	KeyDevelopments       []string `json:"key_developments"`
	StrategicImplications string   `json:"strategic_implications"`
	SuggestedReactions    string   `json:"suggested_reactions"`
	RelatedArticleURLs    []string `json:"related_article_urls"`
	RawAIResponse         string   `json:"raw_ai_response,omitempty"`
}

package render

import (
	"github.com/newecon/cleanbrief/internal/store"
)

const (
	unknownSource   = "Unknown"
	noDescription   = "No description available."
	noDate          = "Date not available"
	fallbackTitle   = "Daily Briefing"
	dateLabelLayout = "January 2, 2006 at 3:04 PM"
)

// Card is the display projection of one article. Building cards never
// touches the source slice, so projecting the same input twice yields the
// same cards.
type Card struct {
	Title       string
	URL         string
	Source      string
	Description string
	DateLabel   string
	Keywords    []string
}

// Cards projects articles into display cards in input order.
func Cards(articles []store.Article) []Card {
	cards := make([]Card, len(articles))
	for i, a := range articles {
		cards[i] = newCard(a)
	}
	return cards
}

func newCard(a store.Article) Card {
	c := Card{
		Title:       a.Title,
		URL:         a.URL,
		Source:      a.Source,
		Description: a.Description,
		DateLabel:   noDate,
	}
	if c.Source == "" {
		c.Source = unknownSource
	}
	if c.Description == "" {
		c.Description = noDescription
	}
	if a.PublishedDate != nil {
		c.DateLabel = a.PublishedDate.Format(dateLabelLayout)
	}
	if len(a.KeywordsMatched) > 0 {
		c.Keywords = append([]string(nil), a.KeywordsMatched...)
	}
	return c
}

// BriefingView is the composed display form of one daily briefing. Sections
// left empty here are omitted from the page entirely rather than rendered
// blank.
type BriefingView struct {
	Title                 string
	Summary               string
	KeyDevelopments       []string
	StrategicImplications string
	SuggestedReactions    string
	RelatedURLs           []string
}

// ComposeBriefing builds the briefing view, dropping blank entries from
// list sections and falling back to a fixed title when none is stored.
func ComposeBriefing(b *store.Briefing) BriefingView {
	v := BriefingView{Title: fallbackTitle}
	if b == nil {
		return v
	}
	if b.Title != "" {
		v.Title = b.Title
	}
	v.Summary = b.SummaryText
	v.StrategicImplications = b.StrategicImplications
	v.SuggestedReactions = b.SuggestedReactions
	v.KeyDevelopments = nonBlank(b.KeyDevelopments)
	v.RelatedURLs = nonBlank(b.RelatedArticleURLs)
	return v
}

func nonBlank(items []string) []string {
	var out []string
	for _, s := range items {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

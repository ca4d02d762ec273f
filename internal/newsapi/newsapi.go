package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/newecon/cleanbrief/internal/keywords"
	"github.com/newecon/cleanbrief/internal/store"
)

const defaultBaseURL = "https://newsapi.org/v2"

// Client queries the NewsAPI "everything" endpoint as a supplementary
// article source.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Options shape one Everything query.
type Options struct {
	Query       string
	Language    string
	DaysBack    int
	MaxArticles int
}

type response struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		Description string `json:"description"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Everything fetches recent articles matching the query plus any configured
// keyword, then keeps only results the matcher confirms.
func (c *Client) Everything(ctx context.Context, opts Options, matcher *keywords.Matcher) ([]store.Article, error) {
	if opts.DaysBack <= 0 {
		opts.DaysBack = 1
	}
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.MaxArticles <= 0 {
		opts.MaxArticles = 10
	}

	end := time.Now()
	start := end.Add(-time.Duration(opts.DaysBack) * 24 * time.Hour)

	query := fmt.Sprintf("(%s) AND (%s)", opts.Query, strings.Join(matcher.Keywords(), " OR "))

	params := url.Values{
		"q":        {query},
		"language": {opts.Language},
		"from":     {start.Format(time.RFC3339)},
		"to":       {end.Format(time.RFC3339)},
		"sortBy":   {"relevancy"},
		"pageSize": {strconv.Itoa(opts.MaxArticles)},
		"apiKey":   {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/everything?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building newsapi request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying newsapi: %w", err)
	}
	defer resp.Body.Close()

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding newsapi response: %w", err)
	}
	if body.Status != "ok" {
		msg := body.Message
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("newsapi error: %s", msg)
	}

	var articles []store.Article
	for _, a := range body.Articles {
		matched := matcher.Match(a.Title + " " + a.Description)
		if len(matched) == 0 {
			continue
		}

		var pub *time.Time
		if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			pub = &t
		}

		source := a.Source.Name
		if source == "" {
			source = "News API"
		}

		articles = append(articles, store.Article{
			Source:          source,
			Title:           a.Title,
			URL:             a.URL,
			Description:     a.Description,
			PublishedDate:   pub,
			KeywordsMatched: matched,
		})
	}
	return articles, nil
}

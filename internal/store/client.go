package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound is returned by single-row lookups that matched no rows.
// It is not a fetch failure; callers distinguish it with errors.Is.
var ErrNotFound = errors.New("store: not found")

const (
	articlesTable  = "articles"
	briefingsTable = "daily_briefings"
)

// Client talks to the hosted PostgREST endpoint of a Supabase project.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Articles returns every row of the articles table in remote default order.
// Zero rows yields an empty slice, not an error.
func (c *Client) Articles(ctx context.Context) ([]Article, error) {
	var articles []Article
	q := url.Values{"select": {"*"}}
	if err := c.get(ctx, articlesTable, q, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// BriefingFor returns the briefing stored for the given ISO date
// (YYYY-MM-DD), or ErrNotFound when no row matches.
func (c *Client) BriefingFor(ctx context.Context, date string) (*Briefing, error) {
	var briefings []Briefing
	q := url.Values{
		"select":        {"*"},
		"briefing_date": {"eq." + date},
		"limit":         {"1"},
	}
	if err := c.get(ctx, briefingsTable, q, &briefings); err != nil {
		return nil, err
	}
	if len(briefings) == 0 {
		return nil, ErrNotFound
	}
	return &briefings[0], nil
}

// UpsertArticles merges articles into the remote table, keyed on url.
func (c *Client) UpsertArticles(ctx context.Context, articles []Article) error {
	if len(articles) == 0 {
		return nil
	}
	return c.upsert(ctx, articlesTable, "url", articles)
}

// UpsertBriefing replaces the briefing stored for its date.
func (c *Client) UpsertBriefing(ctx context.Context, b Briefing) error {
	return c.upsert(ctx, briefingsTable, "briefing_date", []Briefing{b})
}

func (c *Client) get(ctx context.Context, table string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tableURL(table, query), nil)
	if err != nil {
		return fmt.Errorf("building %s request: %w", table, err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("querying %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("querying %s: %s", table, readError(resp))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", table, err)
	}
	return nil
}

func (c *Client) upsert(ctx context.Context, table, conflict string, rows interface{}) error {
	body, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encoding %s rows: %w", table, err)
	}

	q := url.Values{"on_conflict": {conflict}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tableURL(table, q), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building %s request: %w", table, err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upserting %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upserting %s: %s", table, readError(resp))
	}
	return nil
}

func (c *Client) tableURL(table string, query url.Values) string {
	return c.baseURL + "/rest/v1/" + table + "?" + query.Encode()
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
}

// readError extracts a short message from a PostgREST error response.
func readError(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	var pgErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &pgErr); err == nil && pgErr.Message != "" {
		return fmt.Sprintf("%s (HTTP %d)", pgErr.Message, resp.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

package feed

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mmcdole/gofeed"

	"github.com/newecon/cleanbrief/internal/config"
	"github.com/newecon/cleanbrief/internal/keywords"
	"github.com/newecon/cleanbrief/internal/store"
)

type Fetcher interface {
	Fetch(ctx context.Context, feed config.Feed) ([]store.Article, error)
}

// RSSFetcher pulls one RSS/Atom feed and keeps only entries matching the
// configured keywords.
type RSSFetcher struct {
	parser  *gofeed.Parser
	matcher *keywords.Matcher
}

func NewRSSFetcher(matcher *keywords.Matcher) *RSSFetcher {
	return &RSSFetcher{parser: gofeed.NewParser(), matcher: matcher}
}

func (f *RSSFetcher) Fetch(ctx context.Context, src config.Feed) ([]store.Article, error) {
	parsed, err := f.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", src.Name, err)
	}

	var articles []store.Article
	for _, item := range parsed.Items {
		desc := item.Description
		if desc == "" {
			desc = item.Content
		}
		desc = truncate(stripHTML(desc), 300)

		matched := f.matcher.Match(item.Title + " " + desc)
		if len(matched) == 0 {
			continue
		}

		pub := item.PublishedParsed
		if pub == nil {
			pub = item.UpdatedParsed
		}

		articles = append(articles, store.Article{
			Source:          src.Name,
			Title:           item.Title,
			URL:             item.Link,
			Description:     desc,
			PublishedDate:   pub,
			KeywordsMatched: matched,
		})
	}
	return articles, nil
}

// FetchResult collects articles across all feeds; per-feed failures are
// gathered rather than aborting the whole run.
type FetchResult struct {
	Articles []store.Article
	Errors   []error
}

func FetchAll(ctx context.Context, feeds []config.Feed, matcher *keywords.Matcher) FetchResult {
	var (
		mu     sync.Mutex
		result FetchResult
		wg     sync.WaitGroup
	)

	fetcher := NewRSSFetcher(matcher)

	for _, f := range feeds {
		wg.Add(1)
		go func(src config.Feed) {
			defer wg.Done()
			articles, err := fetcher.Fetch(ctx, src)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, err)
				return
			}
			result.Articles = append(result.Articles, articles...)
		}(f)
	}

	wg.Wait()
	return result
}

// DedupeByURL keeps the first article seen for each URL, preserving order.
func DedupeByURL(articles []store.Article) []store.Article {
	seen := make(map[string]bool, len(articles))
	var out []store.Article
	for _, a := range articles {
		if a.URL == "" || seen[a.URL] {
			continue
		}
		seen[a.URL] = true
		out = append(out, a)
	}
	return out
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

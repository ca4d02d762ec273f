package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/newecon/cleanbrief/internal/store"
)

// Source is the remote queryable collection the pipeline reads from.
type Source interface {
	Articles(ctx context.Context) ([]store.Article, error)
	BriefingFor(ctx context.Context, date string) (*store.Briefing, error)
}

// DefaultTimeout bounds a single remote read. Expiry surfaces as a fetch
// error like any other remote failure.
const DefaultTimeout = 15 * time.Second

// Pipeline owns the fetched snapshots for one page session. Articles and
// briefings are read-only once cached; a new load replaces them wholesale.
// Loads are serialized by generation so a stale in-flight read never
// overwrites a newer snapshot.
type Pipeline struct {
	src     Source
	timeout time.Duration

	mu             sync.Mutex
	articleGen     uint64
	cachedArticles []store.Article
	cachedBriefing *store.Briefing
	briefingDate   string
}

func New(src Source) *Pipeline {
	return &Pipeline{src: src, timeout: DefaultTimeout}
}

// SetTimeout overrides the per-load timeout. Zero restores the default.
func (p *Pipeline) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultTimeout
	}
	p.timeout = d
}

// LoadArticles fetches the full article collection and caches it. Zero
// results is a valid empty outcome, not an error. On failure the cache is
// left untouched and no partial results are returned.
func (p *Pipeline) LoadArticles(ctx context.Context) ([]store.Article, error) {
	p.mu.Lock()
	p.articleGen++
	gen := p.articleGen
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	articles, err := p.src.Articles(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching articles: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen == p.articleGen {
		p.cachedArticles = articles
	}
	return articles, nil
}

// LoadBriefing fetches the briefing for an ISO date (YYYY-MM-DD). The three
// outcomes are distinct: (briefing, true, nil) on a match, (nil, false, nil)
// when no briefing exists for that date, and (nil, false, err) on a remote
// failure. A missing briefing is the expected case most days.
func (p *Pipeline) LoadBriefing(ctx context.Context, date string) (*store.Briefing, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	b, err := p.src.BriefingFor(ctx, date)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("fetching briefing for %s: %w", date, err)
	}

	p.mu.Lock()
	p.cachedBriefing = b
	p.briefingDate = date
	p.mu.Unlock()
	return b, true, nil
}

// Reorder returns the cached articles in the given order without a new
// remote read. Only when nothing is cached does it fall back to a fetch.
func (p *Pipeline) Reorder(ctx context.Context, order Order) ([]store.Article, error) {
	p.mu.Lock()
	cached := p.cachedArticles
	p.mu.Unlock()

	if len(cached) == 0 {
		var err error
		cached, err = p.LoadArticles(ctx)
		if err != nil {
			return nil, err
		}
	}
	return SortArticles(cached, order), nil
}

// CachedArticles returns the current snapshot in fetch order.
func (p *Pipeline) CachedArticles() []store.Article {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cachedArticles
}

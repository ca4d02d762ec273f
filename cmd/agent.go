package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/newecon/cleanbrief/internal/briefing"
	"github.com/newecon/cleanbrief/internal/config"
	"github.com/newecon/cleanbrief/internal/feed"
	"github.com/newecon/cleanbrief/internal/history"
	"github.com/newecon/cleanbrief/internal/keywords"
	"github.com/newecon/cleanbrief/internal/newsapi"
	"github.com/newecon/cleanbrief/internal/store"
)

var (
	flagForce        bool
	flagSkipBriefing bool
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Run one aggregation cycle",
	Long: "Fetch articles from the configured RSS feeds and NewsAPI, filter them by\n" +
		"keyword, push new ones to the hosted store and generate today's briefing.",
	RunE: runAgent,
}

func init() {
	agentCmd.Flags().BoolVar(&flagForce, "force", false, "run even if the refresh interval has not elapsed")
	agentCmd.Flags().BoolVar(&flagSkipBriefing, "skip-briefing", false, "skip AI briefing generation")
}

func runAgent(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := storeClient(cfg)
	if err != nil {
		return err
	}

	matcher, err := keywords.NewMatcher(cfg.Keywords)
	if err != nil {
		return fmt.Errorf("building keyword matcher: %w", err)
	}

	hist, err := history.Open(config.HistoryPath())
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer hist.Close()

	if !flagForce && !hist.NeedsRun(cfg.RefreshDuration()) {
		log.Info("last run is within the refresh interval, skipping (use --force to override)")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	articles := fetchArticles(ctx, cfg, matcher, log)
	log.WithField("count", len(articles)).Info("articles matched keywords")

	fresh, err := hist.FilterNew(articles)
	if err != nil {
		return fmt.Errorf("filtering history: %w", err)
	}

	if len(fresh) > 0 {
		if err := client.UpsertArticles(ctx, fresh); err != nil {
			return fmt.Errorf("storing articles: %w", err)
		}
		if err := hist.MarkPushed(fresh); err != nil {
			log.WithError(err).Warn("recording pushed articles failed")
		}
	}
	log.WithField("count", len(fresh)).Info("new articles stored")

	if err := hist.SetLastRun(); err != nil {
		log.WithError(err).Warn("recording run time failed")
	}
	if _, err := hist.Prune(cfg.RetentionDuration()); err != nil {
		log.WithError(err).Warn("pruning history failed")
	}

	if flagSkipBriefing {
		return nil
	}
	return generateBriefing(ctx, cfg, client, articles, log)
}

// fetchArticles pulls every configured source; individual source failures
// are logged and skipped so one dead feed never aborts the run.
func fetchArticles(ctx context.Context, cfg *config.Config, matcher *keywords.Matcher, log *logrus.Logger) []store.Article {
	result := feed.FetchAll(ctx, cfg.EnabledFeeds(), matcher)
	for _, err := range result.Errors {
		log.WithError(err).Warn("feed fetch failed")
	}

	articles := result.Articles

	if key := cfg.NewsAPIKey(); key != "" {
		na := newsapi.New(key)
		more, err := na.Everything(ctx, newsapi.Options{
			Query:       cfg.NewsAPI.Query,
			Language:    cfg.NewsAPI.Language,
			DaysBack:    cfg.NewsAPI.DaysBack,
			MaxArticles: cfg.NewsAPI.MaxArticles,
		}, matcher)
		if err != nil {
			log.WithError(err).Warn("newsapi fetch failed")
		} else {
			articles = append(articles, more...)
		}
	} else {
		log.Info("NEWS_API_KEY not set, skipping NewsAPI")
	}

	return feed.DedupeByURL(articles)
}

// The briefing covers everything fetched this cycle, not just articles
// that were new to the store.
func generateBriefing(ctx context.Context, cfg *config.Config, client *store.Client, articles []store.Article, log *logrus.Logger) error {
	key := cfg.GeminiKey()
	if key == "" {
		log.Info("GEMINI_API_KEY not set, skipping briefing generation")
		return nil
	}
	if len(articles) == 0 {
		log.Info("no articles fetched, skipping briefing generation")
		return nil
	}

	gen, err := briefing.NewGenerator(ctx, key, cfg.AI.Model)
	if err != nil {
		return fmt.Errorf("initializing briefing generator: %w", err)
	}
	defer gen.Close()

	today := time.Now().Format("2006-01-02")
	b, err := gen.Generate(ctx, today, articles)
	if err != nil {
		return fmt.Errorf("generating briefing: %w", err)
	}

	if err := client.UpsertBriefing(ctx, *b); err != nil {
		return fmt.Errorf("storing briefing: %w", err)
	}
	log.WithField("date", today).Info("briefing stored")
	return nil
}

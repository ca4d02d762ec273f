package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/newecon/cleanbrief/internal/config"
	"github.com/newecon/cleanbrief/internal/pipeline"
	"github.com/newecon/cleanbrief/internal/store"
	"github.com/newecon/cleanbrief/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := storeClient(cfg)
	if err != nil {
		return err
	}

	briefingDate := flagDate
	if briefingDate == "" {
		briefingDate = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", briefingDate); err != nil {
		return fmt.Errorf("invalid --date value %q (want YYYY-MM-DD)", briefingDate)
	}

	return tui.Run(tui.RunOpts{
		Pipeline: pipeline.New(client),
		Date:     briefingDate,
		Order:    pipeline.ParseOrder(flagSort),
	})
}

func storeClient(cfg *config.Config) (*store.Client, error) {
	url := cfg.SupabaseURL()
	key := cfg.SupabaseKey()
	if url == "" || key == "" {
		return nil, fmt.Errorf("supabase url and key are required (set SUPABASE_URL and SUPABASE_KEY, or supabase.url/supabase.key in config)")
	}
	return store.New(url, key), nil
}

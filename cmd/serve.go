package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newecon/cleanbrief/internal/config"
	"github.com/newecon/cleanbrief/internal/pipeline"
	"github.com/newecon/cleanbrief/internal/web"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the briefing page over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		client, err := storeClient(cfg)
		if err != nil {
			return err
		}

		addr := flagAddr
		if addr == "" {
			addr = cfg.ServerAddr()
		}

		server := web.NewServer(pipeline.New(client), newLogger())
		return server.Run(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (default from config, :8080)")
}

package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig string
	flagSort   string
	flagDate   string
)

var rootCmd = &cobra.Command{
	Use:   "cleanbrief",
	Short: "Clean-economy news briefing viewer",
	Long: "cleanbrief shows aggregated clean-economy news and the daily AI briefing\n" +
		"from the hosted store, in the terminal or as a web page.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional .env for SUPABASE_URL, SUPABASE_KEY, NEWS_API_KEY, GEMINI_API_KEY
		_ = godotenv.Load()
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().StringVar(&flagSort, "sort", "", "initial sort order (published_date_desc, published_date_asc, source_asc)")
	rootCmd.Flags().StringVar(&flagDate, "date", "", "briefing date to show (YYYY-MM-DD, default today)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(statsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cleanbrief %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

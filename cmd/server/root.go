package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"eventgallery/internal/app"
	"eventgallery/internal/config"
	"eventgallery/internal/logger"
)

var (
	envFile  string
	port     int
	mediaDir string
	endpoint string
	refresh  bool
)

var rootCmd = &cobra.Command{
	Use:   "eventgallery",
	Short: "Event gallery server",
	Long: `Serves a browser gallery of detection events. Every connected browser
gets its own gallery session: prompts are sent to the query endpoint and
the results are rendered as color-grouped snapshot cards with video playback.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", "", "Path to a .env file (default .env)")
	rootCmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides PORT)")
	rootCmd.Flags().StringVar(&mediaDir, "media", "", "Directory with snapshots and recordings (overrides MEDIA_DIR)")
	rootCmd.Flags().StringVar(&endpoint, "endpoint", "", "Event query endpoint URL (overrides QUERY_ENDPOINT)")
	rootCmd.Flags().BoolVar(&refresh, "refresh", true, "Periodically re-run the last prompt (overrides REFRESH_ENABLED)")

	rootCmd.AddCommand(journalCmd)
}

// loadConfig reads the environment and applies the flags that were set.
func loadConfig(cmd *cobra.Command) *config.Config {
	if envFile != "" {
		os.Setenv("ENV_FILE", envFile)
	}
	cfg := config.Load()

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = port
	}
	if flags.Changed("media") {
		cfg.MediaDirectory = mediaDir
	}
	if flags.Changed("endpoint") {
		cfg.QueryEndpoint = endpoint
	}
	if flags.Changed("refresh") {
		cfg.RefreshEnabled = refresh
	}
	return cfg
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	log := logger.NewLogger(cfg)

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Error("Failed to start server: %v", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return application.Run(ctx)
}

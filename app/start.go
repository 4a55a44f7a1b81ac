package app

import (
	"github.com/spf13/cobra"

	"github.com/code-server-panel/code-server-panel/internal/config"
	"github.com/code-server-panel/code-server-panel/internal/daemon"
	"github.com/code-server-panel/code-server-panel/internal/logger"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	startCmd.Flags().BoolVar(
		&browseStatic,
		"browse",
		false,
		"Enable static file browsing (for development purposes only)",
	)

	startCmd.Flags().BoolVar(&fastShutDown, "fast-shutdown", false, "Skip the 503 grace period on shutdown")

	rootCmd.AddCommand(startCmd)
}

var (
	configPath string // directory of main.toml

	cfg          config.Config
	devMode      bool
	browseStatic bool
	fastShutDown bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the Code Server Panel web service",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			if cfg, err = config.ReadConfig(configPath); err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
			}

			if browseStatic {
				cfg.Webserver.BrowseStatic = true
			}

			return logger.Init(cfg.Log)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			d, err := daemon.New(&cfg, fastShutDown)
			if err != nil {
				return err
			}

			return d.Start()
		},
	}
)

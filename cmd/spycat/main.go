package main

import (
	"fmt"
	"os"

	"github.com/4oBuko/spy-cat-console/internal/config"
	"github.com/4oBuko/spy-cat-console/internal/logger"
	"github.com/4oBuko/spy-cat-console/internal/metrics"
	"github.com/4oBuko/spy-cat-console/internal/services"
	"github.com/4oBuko/spy-cat-console/pkg/agencyapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	agencyURL  string
	addr       string
	verbose    bool

	cfg            *config.Config
	logger         *zap.Logger
	metrics        *metrics.Metrics
	catService     services.CatService
	missionService services.MissionService
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.agencyURL != "" {
		cfg.Agency.BaseURL = a.agencyURL
	}
	if a.addr != "" {
		cfg.Server.Addr = a.addr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	l, err := logger.New(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = l
	a.metrics = metrics.New()
	client := agencyapi.NewAgencyAPIClient(cfg.Agency.BaseURL, cfg.Agency.Timeout,
		agencyapi.WithObserver(a.metrics.ObserveUpstream))
	catService := services.NewDefaultCatService(client, l, a.metrics)
	a.catService = catService
	a.missionService = services.NewDefaultMissionService(client, catService, l)
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "spycat",
		Short: "Spy Cat Agency console",
		Long: `spycat manages the Spy Cat Agency roster.

Run "spycat serve" to start the browser console, or use the cats, missions
and targets subcommands to work with the agency from the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "spycat.yaml", "path to the YAML config file")
	flags.StringVar(&a.agencyURL, "agency-url", "", "base URL of the agency API (overrides config)")
	flags.StringVar(&a.addr, "addr", "", "console listen address (overrides config)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newServeCmd(a),
		newCatsCmd(a),
		newMissionsCmd(a),
		newTargetsCmd(a),
		newBreedsCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

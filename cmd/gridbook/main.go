package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"gridbook/internal/assets"
	"gridbook/internal/config"
	"gridbook/internal/logging"
	"gridbook/internal/netutil"
	"gridbook/pkg/openf1"
	"gridbook/pkg/reporting"
)

// Version information (set at build time with -ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:     "gridbook",
	Short:   "Gridbook - Formula 1 drivers report generator",
	Long:    `Gridbook renders the OpenF1 drivers roster into a paginated PDF report with team-colored rows and cached headshots, or into a flat CSV export`,
	Version: Version,
	Run: func(cmd *cobra.Command, args []string) {
		runGenerate(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().String("team", "", "only include drivers whose team name matches this wildcard pattern")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	rootCmd.Flags().StringP("output", "o", "", "output file path")
	rootCmd.Flags().String("format", "", "report format (pdf or csv)")
	rootCmd.Flags().String("cache-dir", "", "headshot cache directory")
	rootCmd.Flags().String("logo", "", "masthead logo path")
	rootCmd.Flags().Bool("no-headshots", false, "render the table without headshot images")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Gridbook %s\n", Version)
		if BuildTime != "unknown" {
			fmt.Printf("Built: %s\n", BuildTime)
		}
		if GitCommit != "unknown" {
			fmt.Printf("Commit: %s\n", GitCommit)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command) {
	// Baseline logger for early startup; reconfigured once config is loaded.
	logging.Init(logging.Config{
		Format:    "auto",
		Level:     "info",
		Component: "gridbook",
	})

	cfg, err := loadConfig(cmd)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Format:    cfg.LogFormat,
		Level:     cfg.LogLevel,
		Component: "gridbook",
	})
	log.Logger = logging.WithRunID(log.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient := netutil.NewClient(cfg.Timeout())
	client := openf1.NewClient(openf1.ClientConfig{
		BaseURL: cfg.SourceURL,
		Timeout: cfg.Timeout(),
	}, httpClient)

	drivers, err := fetchRoster(ctx, cmd, client)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch drivers roster")
	}

	reportID := ulid.Make().String()

	var output []byte
	switch cfg.Format {
	case config.FormatCSV:
		rows := reporting.NewBuilder(nil).BuildAll(ctx, drivers)
		output, err = reporting.NewCSVGenerator(reportID).Generate(rows)
	default:
		var resolver reporting.AssetResolver
		if cfg.Headshots {
			store := assets.NewDiskStore(cfg.CacheDir)
			resolver = assets.NewCache(store, assets.NewHTTPFetcher(httpClient))
		}
		rows := reporting.NewBuilder(resolver).BuildAll(ctx, drivers)
		output, err = reporting.NewPDFGenerator(cfg.LogoPath, cfg.Headshots).Generate(rows)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate report")
	}

	outPath := cfg.ResolveOutputPath()
	if err := os.WriteFile(outPath, output, 0o644); err != nil {
		log.Fatal().Err(err).Str("path", outPath).Msg("Failed to write report")
	}

	log.Info().
		Str("report_id", reportID).
		Str("path", outPath).
		Str("format", cfg.Format).
		Int("drivers", len(drivers)).
		Msg("Report created")
}

// loadConfig resolves the effective configuration for a command, layering
// flag overrides on top of file and environment values.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputPath, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("format") {
		cfg.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("cache-dir") {
		cfg.CacheDir, _ = cmd.Flags().GetString("cache-dir")
	}
	if cmd.Flags().Changed("logo") {
		cfg.LogoPath, _ = cmd.Flags().GetString("logo")
	}
	if cmd.Flags().Changed("no-headshots") {
		noHeadshots, _ := cmd.Flags().GetBool("no-headshots")
		cfg.Headshots = !noHeadshots
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// fetchRoster pulls the drivers list and applies the optional team filter.
func fetchRoster(ctx context.Context, cmd *cobra.Command, client *openf1.Client) ([]openf1.Driver, error) {
	drivers, err := client.ListDrivers(ctx, "")
	if err != nil {
		return nil, err
	}

	if pattern, _ := cmd.Flags().GetString("team"); pattern != "" {
		before := len(drivers)
		drivers = reporting.FilterByTeam(drivers, pattern)
		log.Debug().
			Str("pattern", pattern).
			Int("before", before).
			Int("after", len(drivers)).
			Msg("Applied team filter")
	}
	return drivers, nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wallgrab/wallgrab/internal/config"
	"github.com/wallgrab/wallgrab/internal/discover"
	"github.com/wallgrab/wallgrab/internal/download"
	"github.com/wallgrab/wallgrab/internal/log"
	"github.com/wallgrab/wallgrab/internal/model"
	"github.com/wallgrab/wallgrab/internal/render"
	"github.com/wallgrab/wallgrab/internal/report"
)

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [period...]",
		Short: "Fetch wallpapers for one or more archive months",
		Long: `Fetch renders the archive listing for each given period (YYYYMM),
follows every detail page to the original-resolution image, and downloads
the images that are not already on disk.

Downloads are idempotent: a file that already exists is never fetched or
overwritten, so re-running the same month only fills in what is missing.

Examples:
  # Fetch the default month
  wallgrab fetch

  # Fetch a specific month
  wallgrab fetch 202410

  # Fetch several months into a custom directory
  wallgrab fetch 202409 202410 --dir ~/Pictures/bing

  # Crank up the worker pool and retries for a flaky connection
  wallgrab fetch 202410 --concurrency 4 --retries 5 --retry-wait 5s

  # Dump the rendered listing markup when selectors stop matching
  wallgrab fetch 202410 --dump-html -v

Configuration file (.wallgrab) example:
  archiveURLTemplate: "https://bingwallpaper.anerg.com/archive/us/{period}"
  cookie: "session_id=abc123"
  selectors:
    listing:
      containerClasses: ["grid"]`,
		Args: cobra.ArbitraryArgs,
		RunE: runFetchCmd,
	}

	// Download behavior flags
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of concurrent downloads")
	cmd.Flags().IntP("retries", "r", config.DefaultMaxRetries,
		"Network attempts per image before giving up")
	cmd.Flags().Duration("retry-wait", config.DefaultRetryWait,
		"Delay between download attempts")
	cmd.Flags().StringP("dir", "d", config.DefaultOutputDir,
		"Root directory for downloaded wallpapers (one subdirectory per period)")

	// Timeout flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultRenderTimeout,
		"Timeout for each browser page navigation")
	cmd.Flags().Duration("wait-timeout", config.DefaultWaitTimeout,
		"Timeout waiting for the listing grid to appear")
	cmd.Flags().Duration("connect-timeout", config.DefaultConnectTimeout,
		"TCP connect timeout for downloads")
	cmd.Flags().Duration("read-timeout", config.DefaultReadTimeout,
		"Overall timeout for a single download request")

	// Browser flags
	cmd.Flags().Bool("headless", true,
		"Run the browser without a window (disable to debug selectors)")
	cmd.Flags().Bool("dump-html", false,
		"Write the rendered listing markup to the cache directory for troubleshooting")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .wallgrab in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runFetchCmd executes the fetch command.
func runFetchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with header redaction
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runFetch(ctx, cfg, logger)
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	if len(args) > 0 {
		cfg.Periods = args
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.MaxRetries, err = cmd.Flags().GetInt("retries")
	if err != nil {
		return nil, err
	}

	cfg.RetryWait, err = cmd.Flags().GetDuration("retry-wait")
	if err != nil {
		return nil, err
	}

	cfg.OutputDir, err = cmd.Flags().GetString("dir")
	if err != nil {
		return nil, err
	}

	cfg.RenderTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.WaitTimeout, err = cmd.Flags().GetDuration("wait-timeout")
	if err != nil {
		return nil, err
	}

	cfg.ConnectTimeout, err = cmd.Flags().GetDuration("connect-timeout")
	if err != nil {
		return nil, err
	}

	cfg.ReadTimeout, err = cmd.Flags().GetDuration("read-timeout")
	if err != nil {
		return nil, err
	}

	cfg.Headless, err = cmd.Flags().GetBool("headless")
	if err != nil {
		return nil, err
	}

	cfg.DumpHTML, err = cmd.Flags().GetBool("dump-html")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load settings from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use defaults if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Site, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runFetch executes the fetch across all requested periods. One browser
// process and one download coordinator serve every period; only the
// orchestrator is rebuilt per archive page.
func runFetch(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting fetch",
		"periods", cfg.Periods,
		"outputDir", cfg.OutputDir,
		"concurrency", cfg.Concurrency,
	)

	renderer := render.NewChrome(
		render.WithHeadless(cfg.Headless),
		render.WithNavigateTimeout(cfg.RenderTimeout),
		render.WithWaitTimeout(cfg.WaitTimeout),
		render.WithUserAgent(cfg.UserAgent),
		render.WithChromeLogger(logger),
	)
	defer func() {
		if err := renderer.Close(); err != nil {
			logger.Error("failed to close browser", "error", err)
		}
	}()

	coordinatorOpts := []download.CoordinatorOption{
		download.WithHTTPClient(download.NewHTTPClient(cfg.ConnectTimeout, cfg.ReadTimeout)),
		download.WithConcurrency(cfg.Concurrency),
		download.WithRetryPolicy(download.NewRetryPolicy(cfg.MaxRetries, cfg.RetryWait)),
		download.WithDownloadLogger(logger),
		download.WithDownloadUserAgent(cfg.UserAgent),
	}
	if cfg.Site != nil {
		if len(cfg.Site.Headers) > 0 {
			coordinatorOpts = append(coordinatorOpts, download.WithHeaders(cfg.Site.Headers))
		}
		if cfg.Site.Cookie != "" {
			coordinatorOpts = append(coordinatorOpts, download.WithCookie(cfg.Site.Cookie))
		}
	}
	coordinator := download.NewCoordinator(coordinatorOpts...)

	var totalFailed int
	for _, period := range cfg.Periods {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Printf("Fetching period %s...\n", period)
		startedAt := time.Now()

		runReport, err := fetchPeriod(ctx, cfg, renderer, coordinator, period, startedAt, logger)
		if err != nil {
			return err
		}

		fmt.Printf("Period %s done in %s: %d downloaded, %d skipped, %d failed\n\n",
			period,
			runReport.Elapsed.Round(time.Millisecond),
			runReport.Summary.Downloaded,
			runReport.Summary.Skipped,
			runReport.Summary.Failed,
		)

		if err := outputReport(cfg, runReport); err != nil {
			logger.Error("report failed", "period", period, "error", err)
		}

		totalFailed += runReport.Summary.Failed
	}

	if totalFailed > 0 {
		return fmt.Errorf("%d download(s) failed after retries", totalFailed)
	}
	return nil
}

// fetchPeriod runs discovery and download for one archive month.
func fetchPeriod(ctx context.Context, cfg *config.Config, renderer render.Renderer, coordinator *download.Coordinator, period string, startedAt time.Time, logger *slog.Logger) (*model.RunReport, error) {
	archiveURL := cfg.ArchiveURL(period)

	discoverOpts := []discover.Option{
		discover.WithLogger(logger),
		discover.WithCrawlDelay(cfg.CrawlDelay),
	}
	if cfg.DumpHTML {
		discoverOpts = append(discoverOpts, discover.WithDumpPath(cfg.DumpHTMLPath))
	}
	orchestrator := discover.NewOrchestrator(renderer, cfg.SelectorPolicy(), discoverOpts...)

	records := orchestrator.Discover(ctx, archiveURL)

	targetDir := filepath.Join(cfg.OutputDir, period)
	outcomes, err := coordinator.DownloadAll(ctx, records, targetDir)
	if err != nil {
		return nil, fmt.Errorf("download stage for period %s: %w", period, err)
	}

	return model.NewRunReport(period, archiveURL, targetDir, records, outcomes, startedAt), nil
}

// outputReport outputs the run report in the requested format.
func outputReport(cfg *config.Config, runReport *model.RunReport) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(runReport)
	return err
}

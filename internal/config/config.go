package config

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. Where a value mirrors the behavior of the
// archive site these defaults were tuned against, the comment says so; all
// of them can be overridden via CLI flags or the .wallgrab file.
const (
	// DefaultPeriod is the archive month fetched when none is given.
	DefaultPeriod = "202410"

	// DefaultArchiveURLTemplate is the archive listing URL with a {period}
	// placeholder. The period key (YYYYMM) is substituted verbatim.
	DefaultArchiveURLTemplate = "https://bingwallpaper.anerg.com/archive/us/{period}"

	// DefaultOutputDir is the root directory assets are stored under,
	// one subdirectory per period.
	DefaultOutputDir = "wallpapers"

	// DefaultConcurrency of 10 download workers balances throughput with
	// politeness toward the image CDN. The discovery stage is always
	// sequential; only downloads run in parallel.
	DefaultConcurrency = 10

	// DefaultMaxRetries is the number of network attempts per asset before
	// the download is recorded as failed.
	DefaultMaxRetries = 3

	// DefaultRetryWait is the fixed delay between attempts. A fixed delay
	// is sufficient at this worker count; the retry policy type supports
	// swapping in other strategies without changing the coordinator.
	DefaultRetryWait = 2 * time.Second

	// DefaultRenderTimeout bounds a single page navigation in the browser.
	DefaultRenderTimeout = 30 * time.Second

	// DefaultWaitTimeout bounds waiting for the listing container to
	// appear after navigation. The archive page builds its grid with
	// JavaScript, so the DOM is not complete at load time.
	DefaultWaitTimeout = 20 * time.Second

	// DefaultConnectTimeout is the TCP connect timeout for downloads.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultReadTimeout bounds an entire download request. Wallpapers are
	// a few megabytes; a minute is generous even on slow links.
	DefaultReadTimeout = 60 * time.Second

	// DefaultCrawlDelay is the pause between detail-page visits. This is a
	// politeness setting; the archive site throttles aggressive clients.
	DefaultCrawlDelay = 1 * time.Second

	// DefaultUserAgent identifies wallgrab in HTTP requests.
	DefaultUserAgent = "wallgrab/1.0 (+https://github.com/wallgrab/wallgrab)"

	// DebugArtifactName is the file name used when dumping the rendered
	// archive markup for selector troubleshooting.
	DebugArtifactName = "page_source.html"

	// AppName is used for XDG directory paths.
	AppName = "wallgrab"
)

// periodPattern matches a YYYYMM period key.
var periodPattern = regexp.MustCompile(`^\d{6}$`)

// Config holds all settings for a wallgrab run. It is populated from CLI
// flags plus the optional .wallgrab file and passed to components
// explicitly; there is no global configuration state.
//
// Design decision: We use a single flat struct instead of nested
// sub-configs. The option count is small, and flat fields keep the
// flag-to-config mapping in the CLI layer trivial to read.
type Config struct {
	// Periods are the archive months to fetch, in YYYYMM form.
	Periods []string

	// ArchiveURLTemplate is the listing URL with a {period} placeholder.
	ArchiveURLTemplate string

	// OutputDir is the root directory for downloaded assets.
	OutputDir string

	// Concurrency is the download worker pool size.
	Concurrency int

	// MaxRetries is the number of network attempts per asset.
	MaxRetries int

	// RetryWait is the fixed delay between attempts.
	RetryWait time.Duration

	// RenderTimeout bounds a single browser navigation.
	RenderTimeout time.Duration

	// WaitTimeout bounds waiting for the listing container selector.
	WaitTimeout time.Duration

	// ConnectTimeout is the TCP connect timeout for downloads.
	ConnectTimeout time.Duration

	// ReadTimeout bounds an entire download request.
	ReadTimeout time.Duration

	// CrawlDelay is the pause between detail-page visits.
	CrawlDelay time.Duration

	// UserAgent is sent with every download request.
	UserAgent string

	// Headless controls whether the browser runs without a window.
	// Disabling it is useful when debugging selector mismatches.
	Headless bool

	// DumpHTML enables writing the rendered archive markup to
	// DumpHTMLPath for troubleshooting. Write-only; nothing reads it.
	DumpHTML bool

	// DumpHTMLPath is where the debug artifact is written.
	// Defaults to DebugArtifactName under the XDG cache directory.
	DumpHTMLPath string

	// Verbose enables debug-level logging.
	Verbose bool

	// JSONReport selects JSON report output. Mutually exclusive with
	// MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown report output. Mutually exclusive
	// with JSONReport.
	MarkdownReport bool

	// ReportFile, when set, receives the report instead of stdout.
	ReportFile string

	// ConfigFilePath is an explicit .wallgrab path. Empty means search
	// the current directory and then the home directory.
	ConfigFilePath string

	// Site holds the settings loaded from the .wallgrab file.
	Site *File
}

// NewConfig returns a Config with all defaults applied.
//
// Design decision: A constructor rather than zero values, because most
// defaults are non-zero and this doubles as their documentation.
func NewConfig() *Config {
	return &Config{
		Periods:            []string{DefaultPeriod},
		ArchiveURLTemplate: DefaultArchiveURLTemplate,
		OutputDir:          DefaultOutputDir,
		Concurrency:        DefaultConcurrency,
		MaxRetries:         DefaultMaxRetries,
		RetryWait:          DefaultRetryWait,
		RenderTimeout:      DefaultRenderTimeout,
		WaitTimeout:        DefaultWaitTimeout,
		ConnectTimeout:     DefaultConnectTimeout,
		ReadTimeout:        DefaultReadTimeout,
		CrawlDelay:         DefaultCrawlDelay,
		UserAgent:          DefaultUserAgent,
		Headless:           true,
		DumpHTMLPath:       filepath.Join(XDGCacheDir(), DebugArtifactName),
		Site:               &File{},
	}
}

// ArchiveURL expands the URL template for the given period key.
func (c *Config) ArchiveURL(period string) string {
	template := c.ArchiveURLTemplate
	if c.Site != nil && c.Site.ArchiveURLTemplate != "" {
		template = c.Site.ArchiveURLTemplate
	}
	return strings.ReplaceAll(template, "{period}", period)
}

// SelectorPolicy returns the effective selector policy: the .wallgrab
// overrides merged over the built-in defaults.
func (c *Config) SelectorPolicy() SelectorPolicy {
	if c.Site == nil {
		return DefaultSelectorPolicy()
	}
	return c.Site.Selectors.withDefaults()
}

// XDGCacheDir returns the XDG cache directory for wallgrab.
// On Linux: ~/.cache/wallgrab
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// XDGConfigDir returns the XDG config directory for wallgrab.
// On Linux: ~/.config/wallgrab
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns a sentinel error for the
// first problem found. Called once after flag parsing, before any
// browser or network activity.
func (c *Config) Validate() error {
	if len(c.Periods) == 0 {
		return ErrNoPeriod
	}
	for _, period := range c.Periods {
		if !periodPattern.MatchString(period) {
			return ErrInvalidPeriod
		}
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.MaxRetries < 1 {
		return ErrInvalidMaxRetries
	}
	if c.RetryWait < 0 {
		return ErrInvalidRetryWait
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if !strings.Contains(c.ArchiveURLTemplate, "{period}") {
		return ErrInvalidURLTemplate
	}
	return nil
}

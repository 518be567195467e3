package discover

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wallgrab/wallgrab/internal/config"
	"github.com/wallgrab/wallgrab/internal/model"
	"github.com/wallgrab/wallgrab/internal/render"
	"github.com/wallgrab/wallgrab/internal/resolve"
)

// Orchestrator coordinates the renderer and the resolvers for one
// archive page. It does not own the renderer; the caller creates it,
// hands it in, and closes it after the last Discover call so one browser
// process serves every requested period.
type Orchestrator struct {
	renderer render.Renderer
	listing  *resolve.ListingResolver
	detail   *resolve.DetailResolver
	policy   config.SelectorPolicy

	logger     *slog.Logger
	crawlDelay time.Duration
	dumpPath   string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger for crawl diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithCrawlDelay sets the pause between detail-page visits. The archive
// is a small third-party site; hammering it gets the crawler blocked.
func WithCrawlDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d >= 0 {
			o.crawlDelay = d
		}
	}
}

// WithDumpPath enables writing the rendered archive markup to the given
// file after each listing render. Empty disables the dump.
func WithDumpPath(path string) Option {
	return func(o *Orchestrator) {
		o.dumpPath = path
	}
}

// NewOrchestrator creates an Orchestrator over the given renderer and
// selector policy.
func NewOrchestrator(renderer render.Renderer, policy config.SelectorPolicy, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		renderer:   renderer,
		policy:     policy,
		crawlDelay: time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	o.listing = resolve.NewListingResolver(policy.Listing, resolve.WithListingLogger(o.logger))
	o.detail = resolve.NewDetailResolver(policy.Detail, resolve.WithDetailLogger(o.logger))
	return o
}

// Discover crawls the archive page at archiveURL and returns the asset
// records found behind it. Render and parse failures shrink the result
// instead of failing it; only context cancellation cuts the crawl short,
// and even then the records gathered so far are returned.
func (o *Orchestrator) Discover(ctx context.Context, archiveURL string) model.DiscoveryResult {
	o.logger.Info("rendering archive page", "url", archiveURL)

	if err := o.renderer.Navigate(ctx, archiveURL); err != nil {
		o.logger.Error("archive page failed to render", "url", archiveURL, "error", err)
		return nil
	}

	if selector := o.policy.Listing.WaitSelector; selector != "" {
		// Best effort: the wait narrows the race against late scripts,
		// but a timeout here only means the fallback strategies run
		// against whatever did render.
		if err := o.renderer.WaitVisible(ctx, selector); err != nil {
			o.logger.Warn("listing selector never became visible", "selector", selector, "error", err)
		}
	}

	markup, err := o.renderer.HTML(ctx)
	if err != nil {
		o.logger.Error("could not read archive markup", "url", archiveURL, "error", err)
		return nil
	}

	o.dumpMarkup(markup)

	links, err := o.listing.Resolve(archiveURL, strings.NewReader(markup))
	if err != nil {
		o.logger.Error("could not resolve archive listing", "url", archiveURL, "error", err)
		return nil
	}
	if len(links) == 0 {
		o.logger.Warn("archive listing yielded no detail links", "url", archiveURL)
		return nil
	}
	o.logger.Info("detail links found", "url", archiveURL, "count", len(links))

	var records model.DiscoveryResult
	seen := make(map[string]bool, len(links))
	for i, link := range links {
		if ctx.Err() != nil {
			o.logger.Warn("discovery interrupted", "visited", i, "total", len(links))
			break
		}
		if i > 0 && !o.pause(ctx) {
			break
		}

		record := o.visitDetail(ctx, link)
		if record == nil {
			continue
		}
		if seen[record.Name] {
			o.logger.Warn("duplicate asset name, keeping first", "name", record.Name, "detail_url", link)
			continue
		}
		seen[record.Name] = true
		records = append(records, *record)
	}

	o.logger.Info("discovery finished", "url", archiveURL, "assets", len(records))
	return records
}

// visitDetail opens one detail page in a fresh tab and resolves the
// asset link behind it. Any failure is logged and absorbed.
func (o *Orchestrator) visitDetail(ctx context.Context, detailURL string) *model.AssetRecord {
	tab, err := o.renderer.NewTab(ctx, detailURL)
	if err != nil {
		o.logger.Warn("detail page failed to render", "url", detailURL, "error", err)
		return nil
	}
	defer tab.Close()

	markup, err := tab.HTML(ctx)
	if err != nil {
		o.logger.Warn("could not read detail markup", "url", detailURL, "error", err)
		return nil
	}

	record, err := o.detail.Resolve(detailURL, strings.NewReader(markup))
	if err != nil {
		o.logger.Warn("could not resolve detail page", "url", detailURL, "error", err)
		return nil
	}
	if record == nil {
		o.logger.Warn("no downloadable asset on detail page", "url", detailURL)
		return nil
	}
	return record
}

// pause sleeps for the crawl delay. It returns false when the context
// was cancelled during the sleep.
func (o *Orchestrator) pause(ctx context.Context) bool {
	if o.crawlDelay == 0 {
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(o.crawlDelay):
		return true
	}
}

// dumpMarkup writes the rendered listing markup to the configured dump
// path, if any. Dump failures are only logged; the debug artifact must
// never affect the crawl.
func (o *Orchestrator) dumpMarkup(markup string) {
	if o.dumpPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(o.dumpPath), 0o750); err != nil {
		o.logger.Warn("could not create dump directory", "path", o.dumpPath, "error", err)
		return
	}
	if err := os.WriteFile(o.dumpPath, []byte(markup), 0o600); err != nil {
		o.logger.Warn("could not write markup dump", "path", o.dumpPath, "error", err)
		return
	}
	o.logger.Debug("archive markup dumped", "path", o.dumpPath)
}

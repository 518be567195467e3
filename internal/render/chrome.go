package render

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

// Chrome drives a headless Chrome instance via the DevTools protocol.
// It implements Renderer. One Chrome owns one browser process; the
// discovery stage reuses it for the archive page and every detail tab to
// amortize the startup cost.
type Chrome struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	navigateTimeout time.Duration
	waitTimeout     time.Duration
	userAgent       string
	logger          *slog.Logger
}

// ChromeOption configures a Chrome renderer.
type ChromeOption func(*chromeConfig)

type chromeConfig struct {
	headless        bool
	navigateTimeout time.Duration
	waitTimeout     time.Duration
	userAgent       string
	logger          *slog.Logger
}

// WithHeadless controls headless mode. Running with a window is useful
// when debugging selector mismatches against live markup.
func WithHeadless(headless bool) ChromeOption {
	return func(c *chromeConfig) {
		c.headless = headless
	}
}

// WithNavigateTimeout bounds each page navigation.
func WithNavigateTimeout(d time.Duration) ChromeOption {
	return func(c *chromeConfig) {
		if d > 0 {
			c.navigateTimeout = d
		}
	}
}

// WithWaitTimeout bounds WaitVisible calls.
func WithWaitTimeout(d time.Duration) ChromeOption {
	return func(c *chromeConfig) {
		if d > 0 {
			c.waitTimeout = d
		}
	}
}

// WithUserAgent sets the browser user agent.
func WithUserAgent(ua string) ChromeOption {
	return func(c *chromeConfig) {
		c.userAgent = ua
	}
}

// WithChromeLogger sets the logger for render diagnostics.
func WithChromeLogger(logger *slog.Logger) ChromeOption {
	return func(c *chromeConfig) {
		c.logger = logger
	}
}

// NewChrome creates a Chrome renderer. The browser process itself starts
// lazily on the first navigation.
func NewChrome(opts ...ChromeOption) *Chrome {
	cfg := &chromeConfig{
		headless:        true,
		navigateTimeout: 30 * time.Second,
		waitTimeout:     20 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts, chromedp.DisableGPU)
	if !cfg.headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if cfg.userAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(cfg.userAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			cfg.logger.Debug("chromedp", "message", fmt.Sprintf(format, args...))
		}),
	)

	return &Chrome{
		allocCancel:     allocCancel,
		browserCtx:      browserCtx,
		browserCancel:   browserCancel,
		navigateTimeout: cfg.navigateTimeout,
		waitTimeout:     cfg.waitTimeout,
		userAgent:       cfg.userAgent,
		logger:          cfg.logger,
	}
}

// Navigate loads the URL in the primary browsing context and waits for
// the document body.
func (c *Chrome) Navigate(ctx context.Context, pageURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tctx, cancel := context.WithTimeout(c.browserCtx, c.navigateTimeout)
	defer cancel()

	if err := chromedp.Run(tctx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("navigate %s: %w", pageURL, err)
	}
	return nil
}

// WaitVisible blocks until the selector matches a visible element or the
// wait timeout elapses.
func (c *Chrome) WaitVisible(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tctx, cancel := context.WithTimeout(c.browserCtx, c.waitTimeout)
	defer cancel()

	if err := chromedp.Run(tctx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("wait for %q: %w", selector, err)
	}
	return nil
}

// HTML returns the rendered markup of the current page.
func (c *Chrome) HTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tctx, cancel := context.WithTimeout(c.browserCtx, c.navigateTimeout)
	defer cancel()

	var markup string
	if err := chromedp.Run(tctx, chromedp.OuterHTML("html", &markup, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read page markup: %w", err)
	}
	return markup, nil
}

// NewTab opens the URL in a fresh browsing context sharing the browser
// process.
func (c *Chrome) NewTab(ctx context.Context, pageURL string) (Tab, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tabCtx, tabCancel := chromedp.NewContext(c.browserCtx)

	tctx, cancel := context.WithTimeout(tabCtx, c.navigateTimeout)
	defer cancel()

	if err := chromedp.Run(tctx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		tabCancel()
		return nil, fmt.Errorf("open tab %s: %w", pageURL, err)
	}

	return &chromeTab{ctx: tabCtx, cancel: tabCancel, timeout: c.navigateTimeout}, nil
}

// Close releases the browser process. Subsequent calls are no-ops.
func (c *Chrome) Close() error {
	if c.browserCancel != nil {
		c.browserCancel()
		c.browserCancel = nil
	}
	if c.allocCancel != nil {
		c.allocCancel()
		c.allocCancel = nil
	}
	return nil
}

// chromeTab is an isolated browsing context backed by a Chrome tab.
type chromeTab struct {
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

// HTML returns the rendered markup of the tab's page.
func (t *chromeTab) HTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tctx, cancel := context.WithTimeout(t.ctx, t.timeout)
	defer cancel()

	var markup string
	if err := chromedp.Run(tctx, chromedp.OuterHTML("html", &markup, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read tab markup: %w", err)
	}
	return markup, nil
}

// Close tears down the tab.
func (t *chromeTab) Close() error {
	t.cancel()
	return nil
}

package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wallgrab/wallgrab/internal/model"
)

// Coordinator downloads asset records into a target directory with
// bounded concurrency and per-asset retry.
type Coordinator struct {
	client      *http.Client
	concurrency int
	retry       RetryPolicy
	logger      *slog.Logger
	userAgent   string
	headers     map[string]string
	cookie      string
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithHTTPClient sets the HTTP client used for asset fetches.
func WithHTTPClient(client *http.Client) CoordinatorOption {
	return func(c *Coordinator) {
		if client != nil {
			c.client = client
		}
	}
}

// WithConcurrency bounds the number of simultaneous downloads.
func WithConcurrency(n int) CoordinatorOption {
	return func(c *Coordinator) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithRetryPolicy sets the per-asset retry behavior.
func WithRetryPolicy(policy RetryPolicy) CoordinatorOption {
	return func(c *Coordinator) {
		c.retry = policy
	}
}

// WithDownloadLogger sets the logger for download diagnostics.
func WithDownloadLogger(logger *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithDownloadUserAgent sets the User-Agent header on asset requests.
func WithDownloadUserAgent(ua string) CoordinatorOption {
	return func(c *Coordinator) {
		c.userAgent = ua
	}
}

// WithHeaders adds extra headers to every asset request.
func WithHeaders(headers map[string]string) CoordinatorOption {
	return func(c *Coordinator) {
		c.headers = headers
	}
}

// WithCookie sets the Cookie header on asset requests. Some mirrors gate
// the original-resolution files behind a session cookie.
func WithCookie(cookie string) CoordinatorOption {
	return func(c *Coordinator) {
		c.cookie = cookie
	}
}

// NewCoordinator creates a Coordinator with sensible defaults: ten
// workers, three attempts two seconds apart, and a client with separate
// connect and overall timeouts.
func NewCoordinator(opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		client:      NewHTTPClient(10*time.Second, 60*time.Second),
		concurrency: 10,
		retry:       NewRetryPolicy(3, 2*time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// NewHTTPClient builds a client with a dial timeout for dead hosts and
// an overall timeout covering the full body read.
func NewHTTPClient(connectTimeout, readTimeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: readTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
			TLSHandshakeTimeout: connectTimeout,
			Proxy:               http.ProxyFromEnvironment,
		},
	}
}

// DownloadAll fetches every record into targetDir and returns one
// outcome per record, index-aligned with the input. The only error it
// returns is a failure to create the target directory; individual
// download failures live in the outcomes.
func (c *Coordinator) DownloadAll(ctx context.Context, records []model.AssetRecord, targetDir string) ([]model.DownloadOutcome, error) {
	if err := os.MkdirAll(targetDir, 0o750); err != nil {
		return nil, fmt.Errorf("create target directory %s: %w", targetDir, err)
	}

	outcomes := make([]model.DownloadOutcome, len(records))

	// A plain Group, not WithContext: one failed asset must not cancel
	// its siblings. Workers write only their own slice slot and always
	// return nil.
	var eg errgroup.Group
	eg.SetLimit(c.concurrency)
	for i, record := range records {
		eg.Go(func() error {
			outcomes[i] = c.downloadOne(ctx, record, targetDir)
			return nil
		})
	}
	_ = eg.Wait()

	return outcomes, nil
}

// downloadOne fetches a single asset with retry. The destination is
// re-checked at the top of every attempt so work that finished since the
// last check, by an earlier run or by a concurrent writer, is never
// redone.
func (c *Coordinator) downloadOne(ctx context.Context, record model.AssetRecord, targetDir string) model.DownloadOutcome {
	outcome := model.DownloadOutcome{Name: record.Name}
	dest := filepath.Join(targetDir, record.Name)

	for outcome.Attempts < c.retry.MaxAttempts {
		if _, err := os.Stat(dest); err == nil {
			if outcome.Attempts == 0 {
				c.logger.Info("already downloaded, skipping", "name", record.Name)
			}
			outcome.Success = true
			outcome.LastError = ""
			return outcome
		}

		if err := ctx.Err(); err != nil {
			outcome.LastError = err.Error()
			return outcome
		}

		if outcome.Attempts > 0 {
			if err := c.retry.pause(ctx); err != nil {
				outcome.LastError = err.Error()
				return outcome
			}
		}

		outcome.Attempts++
		err := c.fetch(ctx, record.SourceURL, dest)
		if err == nil {
			c.logger.Info("downloaded", "name", record.Name, "attempts", outcome.Attempts)
			outcome.Success = true
			outcome.LastError = ""
			return outcome
		}

		outcome.LastError = err.Error()
		c.logger.Warn("download attempt failed",
			"name", record.Name,
			"attempt", outcome.Attempts,
			"max_attempts", c.retry.MaxAttempts,
			"error", err,
		)
	}

	c.logger.Error("download failed", "name", record.Name, "attempts", outcome.Attempts, "error", outcome.LastError)
	return outcome
}

// fetch streams the asset into a temp file next to dest and renames it
// into place. On any failure the temp file is removed and dest is left
// untouched.
func (c *Coordinator) fetch(ctx context.Context, sourceURL, dest string) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", sourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("request %s: unexpected status %s", sourceURL, resp.Status)
	}

	// The temp file lives in the target directory so the final rename
	// stays on one filesystem and is atomic.
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, resp.Body); err != nil {
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	// Re-check right before the rename. Losing the race costs one
	// wasted temp file, never a clobbered destination.
	if _, statErr := os.Stat(dest); statErr == nil {
		os.Remove(tmp.Name())
		return nil
	}

	if err = os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("finalize %s: %w", dest, err)
	}
	return nil
}

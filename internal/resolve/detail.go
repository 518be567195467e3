package resolve

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/wallgrab/wallgrab/internal/config"
	"github.com/wallgrab/wallgrab/internal/model"
)

// invalidFileNamePattern matches characters that are unsafe in file names
// on at least one supported platform.
var invalidFileNamePattern = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// DetailResolver extracts the downloadable asset link from a rendered
// detail page. The policy's preference chain is evaluated in order:
// an explicit download attribute first, then href markers, then bare
// file extensions. A page where nothing matches yields no record, not an
// error; one unparseable page must never sink the whole run.
type DetailResolver struct {
	policy config.DetailPolicy
	logger *slog.Logger
}

// DetailOption configures a DetailResolver.
type DetailOption func(*DetailResolver)

// WithDetailLogger sets the logger for strategy diagnostics.
func WithDetailLogger(logger *slog.Logger) DetailOption {
	return func(r *DetailResolver) {
		r.logger = logger
	}
}

// NewDetailResolver creates a DetailResolver with the given policy.
func NewDetailResolver(policy config.DetailPolicy, opts ...DetailOption) *DetailResolver {
	r := &DetailResolver{policy: policy}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// anchor is one <a> element in document order.
type anchor struct {
	href        string
	hasDownload bool
}

// Resolve parses the detail page markup and returns the asset record for
// the best matching download link, or nil if no anchor matches any
// strategy in the chain.
func (r *DetailResolver) Resolve(detailURL string, markup io.Reader) (*model.AssetRecord, error) {
	base, err := url.Parse(detailURL)
	if err != nil {
		return nil, fmt.Errorf("invalid detail URL: %w", err)
	}

	doc, err := html.Parse(markup)
	if err != nil {
		return nil, fmt.Errorf("parse detail markup: %w", err)
	}

	href, strategy := r.pickAnchor(collectAnchors(doc))
	if href == "" {
		r.logger.Debug("no download link found", "detail_url", detailURL)
		return nil, nil
	}

	assetURL := resolveHref(base, href)
	if assetURL == "" {
		r.logger.Debug("download link not navigable", "detail_url", detailURL, "href", href)
		return nil, nil
	}

	r.logger.Debug("download link resolved",
		"detail_url", detailURL,
		"strategy", strategy,
		"asset_url", assetURL,
	)

	return &model.AssetRecord{
		Name:      r.DeriveName(detailURL, assetURL),
		SourceURL: assetURL,
		DetailURL: detailURL,
	}, nil
}

// pickAnchor runs the preference chain over the anchors and returns the
// winning href along with the name of the strategy that chose it.
func (r *DetailResolver) pickAnchor(anchors []anchor) (href, strategy string) {
	if r.policy.PrefersDownloadAttr() {
		for _, a := range anchors {
			if a.hasDownload {
				return a.href, "download-attr"
			}
		}
	}

	for _, marker := range r.policy.HrefMarkers {
		for _, a := range anchors {
			if strings.Contains(a.href, marker) {
				return a.href, "marker:" + marker
			}
		}
	}

	for _, ext := range r.policy.Extensions {
		for _, a := range anchors {
			if strings.Contains(strings.ToLower(a.href), ext) {
				return a.href, "extension:" + ext
			}
		}
	}

	return "", ""
}

// DeriveName derives the local file name for an asset. The name comes
// from the detail page path so that re-runs map the same page to the
// same file; the extension comes from the asset URL, falling back to the
// policy default when the asset URL carries none.
func (r *DetailResolver) DeriveName(detailURL, assetURL string) string {
	base := detailURL
	if u, err := url.Parse(detailURL); err == nil && u.Path != "" {
		base = u.Path
	}
	base = strings.Trim(base, "/")
	if base == "" {
		base = "wallpaper"
	}
	base = invalidFileNamePattern.ReplaceAllString(base, "_")

	ext := r.policy.DefaultExtension
	if u, err := url.Parse(assetURL); err == nil {
		if e := strings.ToLower(path.Ext(u.Path)); e != "" {
			ext = e
		}
	}

	return base + ext
}

// collectAnchors gathers every anchor with an href, in document order.
func collectAnchors(doc *html.Node) []anchor {
	var anchors []anchor
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" {
			return
		}
		href := getAttr(n, "href")
		if href == "" {
			return
		}
		anchors = append(anchors, anchor{
			href:        href,
			hasDownload: hasAttr(n, "download"),
		})
	})
	return anchors
}

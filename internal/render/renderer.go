package render

import "context"

// Renderer is the page-rendering capability the discovery stage consumes.
// Implementations own a browser engine instance and must release it in
// Close; callers are expected to defer Close on every exit path.
type Renderer interface {
	// Navigate loads the given URL in the primary browsing context and
	// waits until the document body is ready.
	Navigate(ctx context.Context, pageURL string) error

	// WaitVisible blocks until an element matching the CSS selector is
	// visible, or the configured wait timeout elapses.
	WaitVisible(ctx context.Context, selector string) error

	// HTML returns the rendered markup of the current page.
	HTML(ctx context.Context) (string, error)

	// NewTab opens the given URL in an isolated browsing context.
	// The tab shares the browser engine but not page script state, so
	// one detail page cannot leak into the next. Callers must Close the
	// tab before opening another.
	NewTab(ctx context.Context, pageURL string) (Tab, error)

	// Close releases the browser engine. Safe to call once regardless of
	// how far rendering got; leaked browser processes are an operational
	// cost, so this must run on every exit path.
	Close() error
}

// Tab is an isolated browsing context opened from a Renderer.
type Tab interface {
	// HTML returns the rendered markup of the tab's page.
	HTML(ctx context.Context) (string, error)

	// Close tears down the browsing context.
	Close() error
}

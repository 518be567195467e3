// Package resolve extracts links from rendered archive markup.
//
// The archive site's markup has changed before and will change again, so
// both resolvers work through ordered fallback chains described by a
// configurable selector policy rather than a single hard-coded selector.
// Each chain is evaluated first-match-wins: later strategies are
// fallbacks, never merged with earlier ones.
//
// Design decision: We parse markup with golang.org/x/net/html rather
// than querying the live DOM through the browser because:
//  1. It correctly handles the malformed HTML common on the web
//  2. The resolvers become pure functions of markup, trivially testable
//     against canned pages without a browser
//  3. One markup snapshot per page keeps DevTools round-trips to a
//     minimum
package resolve

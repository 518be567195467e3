// Package discover runs the two-stage crawl that turns an archive URL
// into downloadable asset records.
//
// Stage one renders the archive listing and resolves detail-page links.
// Stage two opens each detail page in an isolated tab and resolves the
// asset link behind it. Failures at any point are absorbed and logged,
// never propagated: discovery answers "what is available", and a partial
// answer is still an answer. A page that cannot be rendered or parsed
// simply contributes nothing.
package discover

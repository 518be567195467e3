// Package log provides logging for wallgrab built on the standard slog
// package, with automatic redaction of credential-bearing attributes.
//
// Site configurations may carry authentication cookies and custom HTTP
// headers. Those values flow through request construction and can end up
// in log attributes, so the RedactHandler masks them before they reach
// the underlying handler. This applies even in verbose mode, where
// request details are logged at debug level.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Info("request sent",
//	    "cookie", "session=abc123", // masked
//	    "url", "https://example.com",
//	)
package log

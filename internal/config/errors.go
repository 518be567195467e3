package config

import "errors"

// Configuration validation errors returned by Config.Validate.
//
// Design decision: Package-level sentinel errors rather than ad-hoc
// errors.New calls inside Validate, so callers can branch with
// errors.Is while still getting readable messages.
var (
	// ErrNoPeriod is returned when no archive period was specified.
	ErrNoPeriod = errors.New("no period specified: provide at least one YYYYMM period")

	// ErrInvalidPeriod is returned when a period is not a YYYYMM string.
	ErrInvalidPeriod = errors.New("invalid period: must be six digits (YYYYMM)")

	// ErrInvalidConcurrency is returned when the worker count is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidMaxRetries is returned when fewer than one attempt is allowed.
	ErrInvalidMaxRetries = errors.New("invalid max retries: must be at least 1")

	// ErrInvalidRetryWait is returned when the retry delay is negative.
	ErrInvalidRetryWait = errors.New("invalid retry wait: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are requested.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidURLTemplate is returned when the archive URL template has
	// no {period} placeholder to substitute.
	ErrInvalidURLTemplate = errors.New("invalid archive URL template: missing {period} placeholder")
)

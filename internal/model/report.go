package model

import "time"

// RunReport aggregates everything observed during one fetch run for a
// single period: what was discovered, what happened to each download,
// and summary counts for the report writers.
type RunReport struct {
	// Period is the archive period key (YYYYMM) the run covered.
	Period string `json:"period"`

	// ArchiveURL is the fully expanded archive page URL.
	ArchiveURL string `json:"archive_url"`

	// TargetDir is the directory the assets were written to.
	TargetDir string `json:"target_dir"`

	// Records are the assets discovered, in listing order.
	Records DiscoveryResult `json:"records"`

	// Outcomes are the per-asset download results. Order is not
	// meaningful; match against Records by Name.
	Outcomes []DownloadOutcome `json:"outcomes"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the total wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed"`

	// Summary holds the aggregate counts derived from Outcomes.
	Summary RunSummary `json:"summary"`
}

// RunSummary holds the aggregate counts for a run.
type RunSummary struct {
	// Discovered is the number of assets found on the archive page.
	Discovered int `json:"discovered"`

	// Downloaded is the number of assets fetched over the network.
	Downloaded int `json:"downloaded"`

	// Skipped is the number of assets that already existed on disk.
	Skipped int `json:"skipped"`

	// Failed is the number of assets that exhausted their retries.
	Failed int `json:"failed"`
}

// NewRunReport builds a RunReport and computes its summary counts.
func NewRunReport(period, archiveURL, targetDir string, records DiscoveryResult, outcomes []DownloadOutcome, startedAt time.Time) *RunReport {
	r := &RunReport{
		Period:     period,
		ArchiveURL: archiveURL,
		TargetDir:  targetDir,
		Records:    records,
		Outcomes:   outcomes,
		StartedAt:  startedAt,
		Elapsed:    time.Since(startedAt),
	}
	r.Summary = summarize(records, outcomes)
	return r
}

// summarize derives the aggregate counts from the outcomes.
func summarize(records DiscoveryResult, outcomes []DownloadOutcome) RunSummary {
	s := RunSummary{Discovered: len(records)}
	for _, o := range outcomes {
		switch {
		case o.Skipped():
			s.Skipped++
		case o.Success:
			s.Downloaded++
		default:
			s.Failed++
		}
	}
	return s
}

// Failures returns the outcomes that exhausted their retries.
func (r *RunReport) Failures() []DownloadOutcome {
	failures := make([]DownloadOutcome, 0)
	for _, o := range r.Outcomes {
		if !o.Success {
			failures = append(failures, o)
		}
	}
	return failures
}

// HasFailures reports whether any asset failed to download.
func (r *RunReport) HasFailures() bool {
	return r.Summary.Failed > 0
}

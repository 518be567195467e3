package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wallgrab/wallgrab/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables per-asset detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with per-asset details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run report in human-readable format.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeFailures(&sb, report)
	if w.verbose {
		w.writeAssets(&sb, report)
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         WALLGRAB REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Period:      %s\n", report.Period))
	sb.WriteString(fmt.Sprintf("Archive URL: %s\n", report.ArchiveURL))
	sb.WriteString(fmt.Sprintf("Target Dir:  %s\n", report.TargetDir))
	sb.WriteString(fmt.Sprintf("Started:     %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Elapsed:     %s\n", report.Elapsed.Round(10*time.Millisecond)))

	if report.HasFailures() {
		sb.WriteString(fmt.Sprintf("Status:      INCOMPLETE (%d failed)\n", report.Summary.Failed))
	} else {
		sb.WriteString("Status:      Complete\n")
	}

	sb.WriteString("\n")
}

// writeSummary writes the outcome summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  DISCOVERED: %d\n", report.Summary.Discovered))
	sb.WriteString(fmt.Sprintf("  DOWNLOADED: %d\n", report.Summary.Downloaded))
	sb.WriteString(fmt.Sprintf("  SKIPPED:    %d\n", report.Summary.Skipped))
	sb.WriteString(fmt.Sprintf("  FAILED:     %d\n", report.Summary.Failed))
	sb.WriteString("\n")
}

// writeFailures writes the failed downloads with their last errors.
func (w *SimpleWriter) writeFailures(sb *strings.Builder, report *model.RunReport) {
	failures := report.Failures()
	if len(failures) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FAILURES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, f := range failures {
		sb.WriteString(fmt.Sprintf("  * %s (attempts: %d)\n", f.Name, f.Attempts))
		if f.LastError != "" {
			sb.WriteString(fmt.Sprintf("    Last error: %s\n", f.LastError))
		}
	}
	sb.WriteString("\n")
}

// writeAssets writes the full per-asset outcome list.
func (w *SimpleWriter) writeAssets(sb *strings.Builder, report *model.RunReport) {
	if len(report.Outcomes) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("ASSETS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, o := range report.Outcomes {
		sb.WriteString(fmt.Sprintf("  [%s] %s (attempts: %d)\n", outcomeLabel(o), o.Name, o.Attempts))
	}
	sb.WriteString("\n")
}

// outcomeLabel returns a short state marker for an outcome.
func outcomeLabel(o model.DownloadOutcome) string {
	switch {
	case o.Skipped():
		return "skip"
	case o.Success:
		return " ok "
	default:
		return "fail"
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by wallgrab\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

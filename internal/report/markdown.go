package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/wallgrab/wallgrab/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run report in Markdown format.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeFailures(md, report)
	w.writeAssets(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RunReport) {
	md.H1("Wallgrab Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Period", report.Period},
			{"Archive URL", "`" + report.ArchiveURL + "`"},
			{"Target Dir", "`" + report.TargetDir + "`"},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", report.Elapsed.String()},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.RunReport) string {
	if report.HasFailures() {
		return "⚠️ Incomplete (" + strconv.Itoa(report.Summary.Failed) + " failed)"
	}
	return "✅ Complete"
}

// writeSummary writes the outcome summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"Discovered", strconv.Itoa(report.Summary.Discovered)},
			{"⬇️ Downloaded", strconv.Itoa(report.Summary.Downloaded)},
			{"⏭️ Skipped", strconv.Itoa(report.Summary.Skipped)},
			{"❌ Failed", strconv.Itoa(report.Summary.Failed)},
		},
	})
	md.PlainText("")

	if len(report.Outcomes) > 0 {
		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for the outcome distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.RunReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Download Outcome Distribution"),
		piechart.WithShowData(true),
	)

	if report.Summary.Downloaded > 0 {
		chart.LabelAndIntValue("Downloaded", uint64(report.Summary.Downloaded))
	}
	if report.Summary.Skipped > 0 {
		chart.LabelAndIntValue("Skipped", uint64(report.Summary.Skipped))
	}
	if report.Summary.Failed > 0 {
		chart.LabelAndIntValue("Failed", uint64(report.Summary.Failed))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the run outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.RunReport) {
	switch {
	case report.Summary.Discovered == 0:
		md.Warning("No assets were discovered. The archive markup may have changed.")
	case report.HasFailures():
		md.Cautionf(
			"%d download(s) exhausted their retries. Re-running will retry only the missing assets.",
			report.Summary.Failed,
		)
	case report.Summary.Downloaded == 0:
		md.Note("Everything was already on disk; nothing was fetched.")
	default:
		md.Tip("All discovered assets are on disk.")
	}
	md.PlainText("")
}

// writeFailures writes the failed downloads with their last errors.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *model.RunReport) {
	failures := report.Failures()
	if len(failures) == 0 {
		return
	}

	md.H2("Failures")
	md.PlainText("")

	rows := make([][]string, len(failures))
	for i, f := range failures {
		rows[i] = []string{
			f.Name,
			strconv.Itoa(f.Attempts),
			truncateString(f.LastError, 80),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Asset", "Attempts", "Last Error"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeAssets writes the per-asset outcome table.
func (w *MarkdownWriter) writeAssets(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Assets")
	md.PlainText("")

	if len(report.Outcomes) == 0 {
		md.PlainText("No assets discovered.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Outcomes))
	for i, o := range report.Outcomes {
		rows[i] = []string{
			o.Name,
			outcomeStatusText(o),
			strconv.Itoa(o.Attempts),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Asset", "Status", "Attempts"},
		Rows:   rows,
	})
	md.PlainText("")
}

// outcomeStatusText returns the status cell text for an outcome.
func outcomeStatusText(o model.DownloadOutcome) string {
	switch {
	case o.Skipped():
		return "⏭️ Skipped"
	case o.Success:
		return "⬇️ Downloaded"
	default:
		return "❌ Failed"
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by wallgrab*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

package model

import (
	"testing"
	"time"
)

// TestDiscoveryResultNames tests name extraction in listing order.
func TestDiscoveryResultNames(t *testing.T) {
	t.Parallel()

	t.Run("preserves listing order", func(t *testing.T) {
		t.Parallel()

		result := DiscoveryResult{
			{Name: "detail_a.jpg", SourceURL: "https://cdn.example.com/a.jpg"},
			{Name: "detail_b.png", SourceURL: "https://cdn.example.com/b.png"},
			{Name: "detail_c.jpg", SourceURL: "https://cdn.example.com/c.jpg"},
		}

		names := result.Names()
		want := []string{"detail_a.jpg", "detail_b.png", "detail_c.jpg"}

		if len(names) != len(want) {
			t.Fatalf("expected %d names, got %d", len(want), len(names))
		}
		for i, name := range names {
			if name != want[i] {
				t.Errorf("names[%d] = %q, want %q", i, name, want[i])
			}
		}
	})

	t.Run("empty result yields empty names", func(t *testing.T) {
		t.Parallel()

		var result DiscoveryResult
		if got := result.Names(); len(got) != 0 {
			t.Errorf("expected no names, got %v", got)
		}
	})
}

// TestDownloadOutcomeSkipped tests the skipped classification.
func TestDownloadOutcomeSkipped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		outcome DownloadOutcome
		want    bool
	}{
		{
			name:    "success with zero attempts is skipped",
			outcome: DownloadOutcome{Name: "a.jpg", Success: true, Attempts: 0},
			want:    true,
		},
		{
			name:    "success with attempts is a download",
			outcome: DownloadOutcome{Name: "a.jpg", Success: true, Attempts: 2},
			want:    false,
		},
		{
			name:    "failure is never skipped",
			outcome: DownloadOutcome{Name: "a.jpg", Success: false, Attempts: 3, LastError: "HTTP 500"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.outcome.Skipped(); got != tt.want {
				t.Errorf("Skipped() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestNewRunReport tests summary computation.
func TestNewRunReport(t *testing.T) {
	t.Parallel()

	t.Run("computes summary counts", func(t *testing.T) {
		t.Parallel()

		records := DiscoveryResult{
			{Name: "a.jpg"}, {Name: "b.jpg"}, {Name: "c.jpg"}, {Name: "d.jpg"},
		}
		outcomes := []DownloadOutcome{
			{Name: "a.jpg", Success: true, Attempts: 1},
			{Name: "b.jpg", Success: true, Attempts: 0},
			{Name: "c.jpg", Success: false, Attempts: 3, LastError: "connection refused"},
			{Name: "d.jpg", Success: true, Attempts: 2},
		}

		report := NewRunReport("202410", "https://example.com/archive/us/202410", "wallpapers/202410", records, outcomes, time.Now())

		if report.Summary.Discovered != 4 {
			t.Errorf("Discovered = %d, want 4", report.Summary.Discovered)
		}
		if report.Summary.Downloaded != 2 {
			t.Errorf("Downloaded = %d, want 2", report.Summary.Downloaded)
		}
		if report.Summary.Skipped != 1 {
			t.Errorf("Skipped = %d, want 1", report.Summary.Skipped)
		}
		if report.Summary.Failed != 1 {
			t.Errorf("Failed = %d, want 1", report.Summary.Failed)
		}
		if !report.HasFailures() {
			t.Error("expected HasFailures to be true")
		}

		failures := report.Failures()
		if len(failures) != 1 {
			t.Fatalf("expected 1 failure, got %d", len(failures))
		}
		if failures[0].Name != "c.jpg" {
			t.Errorf("failure name = %q, want %q", failures[0].Name, "c.jpg")
		}
	})

	t.Run("empty run has no failures", func(t *testing.T) {
		t.Parallel()

		report := NewRunReport("202410", "https://example.com", "wallpapers/202410", nil, nil, time.Now())

		if report.HasFailures() {
			t.Error("expected no failures for empty run")
		}
		if report.Summary.Discovered != 0 {
			t.Errorf("Discovered = %d, want 0", report.Summary.Discovered)
		}
	})
}

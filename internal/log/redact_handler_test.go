package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestRedactHandlerMasksKeys tests key-based redaction.
func TestRedactHandlerMasksKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "cookie header", key: "cookie", value: "session=abc123"},
		{name: "authorization header", key: "Authorization", value: "some-secret"},
		{name: "api key", key: "x-api-key", value: "k-12345"},
		{name: "password", key: "password", value: "hunter2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))

			logger.Info("request sent", tt.key, tt.value)

			out := buf.String()
			if strings.Contains(out, tt.value) {
				t.Errorf("output leaked value %q: %s", tt.value, out)
			}
			if !strings.Contains(out, MaskValue) {
				t.Errorf("output missing mask: %s", out)
			}
		})
	}
}

// TestRedactHandlerMasksValuePatterns tests value-based redaction.
func TestRedactHandlerMasksValuePatterns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{name: "bearer token", value: "Bearer eyJabc.def.ghi"},
		{name: "basic auth", value: "Basic dXNlcjpwYXNz"},
		{name: "jwt", value: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.sig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))

			logger.Info("header observed", "value", tt.value)

			if strings.Contains(buf.String(), tt.value) {
				t.Errorf("output leaked value %q: %s", tt.value, buf.String())
			}
		})
	}
}

// TestRedactHandlerPassesOrdinaryAttrs tests that normal values survive.
func TestRedactHandlerPassesOrdinaryAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("download complete",
		"url", "https://cdn.example.com/img.jpg",
		"name", "detail_abc.jpg",
	)

	out := buf.String()
	if !strings.Contains(out, "https://cdn.example.com/img.jpg") {
		t.Errorf("url attribute was lost or masked: %s", out)
	}
	if !strings.Contains(out, "detail_abc.jpg") {
		t.Errorf("name attribute was lost or masked: %s", out)
	}
}

// TestRedactHandlerGroups tests recursion into attribute groups.
func TestRedactHandlerGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("request",
		slog.Group("headers",
			slog.String("cookie", "session=abc"),
			slog.String("accept", "image/jpeg"),
		),
	)

	out := buf.String()
	if strings.Contains(out, "session=abc") {
		t.Errorf("grouped cookie leaked: %s", out)
	}
	if !strings.Contains(out, "image/jpeg") {
		t.Errorf("grouped accept header was lost: %s", out)
	}
}

// TestNewLoggerLevels tests the verbose flag mapping.
func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		logger.Debug("debug message")
		if !strings.Contains(buf.String(), "debug message") {
			t.Error("expected debug message in verbose mode")
		}
	})

	t.Run("quiet suppresses info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Info("info message")
		if buf.Len() != 0 {
			t.Errorf("expected no output, got: %s", buf.String())
		}
	})

	t.Run("json logger emits json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewJSONLogger(&buf, true)

		logger.Warn("warn message")
		if !strings.Contains(buf.String(), `"msg":"warn message"`) {
			t.Errorf("expected JSON output, got: %s", buf.String())
		}
	})
}

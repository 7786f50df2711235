package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subtrans/internal/config"
	"subtrans/internal/logging"
)

func TestConsoleLoggerFormatsComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "session")
	logger.Info("track loaded", logging.String("path", "/tmp/a b.srt"), logging.Int("cues", 3))

	line := buf.String()
	if !strings.Contains(line, " INFO session: track loaded") {
		t.Fatalf("expected level, component and message, got %q", line)
	}
	if !strings.Contains(line, `path="/tmp/a b.srt"`) {
		t.Fatalf("expected quoted path, got %q", line)
	}
	if !strings.Contains(line, "cues=3") {
		t.Fatalf("expected cues field, got %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
}

func TestConsoleLoggerShowsShortSessionTag(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger = logging.NewComponentLogger(logger, "session").With(logging.String(logging.FieldSessionID, "0123456789abcdef"))
	logger.Info("edits applied", logging.String("text", strings.Repeat("字", 200)))

	line := buf.String()
	if !strings.Contains(line, " INFO session[01234567]: edits applied") {
		t.Fatalf("expected short session tag, got %q", line)
	}
	if strings.Contains(line, "session_id=") {
		t.Fatalf("expected session id to be folded into the tag, got %q", line)
	}
	if !strings.Contains(line, "...") || strings.Count(line, "字") != 93 {
		t.Fatalf("expected long text to be clipped, got %q", line)
	}
}

func TestConsoleLoggerHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info record to be filtered, got %q", out)
	}
	if !strings.Contains(out, "WARN shown") {
		t.Fatalf("expected warn record, got %q", out)
	}
}

func TestDebugLoggerIncludesSource(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("with caller")
	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller in debug logs, got %q", buf.String())
	}
}

func TestJSONLoggerRenamesKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Error("export failed", logging.Error(errors.New("disk full")))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if record["level"] != "error" {
		t.Fatalf("expected lowercase level, got %v", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
	if record["msg"] != "export failed" || record["error"] != "disk full" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesJSONLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "error"
	cfg.Logging.Dir = filepath.Join(t.TempDir(), "logs")

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Error("file record", logging.String(logging.FieldSessionID, "abc"))

	data, err := os.ReadFile(filepath.Join(cfg.Logging.Dir, logging.LogFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &record); err != nil {
		t.Fatalf("decode log file: %v (%q)", err, data)
	}
	if record["msg"] != "file record" || record[logging.FieldSessionID] != "abc" {
		t.Fatalf("unexpected file record: %v", record)
	}
}

func TestWithContextAddsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	base, err := logging.New(logging.Options{Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := logging.WithRequestID(context.Background(), "req-42")
	logging.WithContext(ctx, base).Info("handled")
	if !strings.Contains(buf.String(), "correlation_id=req-42") {
		t.Fatalf("expected correlation id, got %q", buf.String())
	}

	buf.Reset()
	logging.WithContext(context.Background(), base).Info("plain")
	if strings.Contains(buf.String(), "correlation_id") {
		t.Fatalf("did not expect correlation id, got %q", buf.String())
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "cache unavailable", "cache_locked",
		logging.String(logging.FieldImpact, "translations are not cached"),
	)
	out := buf.String()
	for _, want := range []string{"event_type=cache_locked", "error_hint=", `impact="translations are not cached"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("expected nop logger to be disabled")
	}
	logging.NewComponentLogger(nil, "x").Info("ignored")
}

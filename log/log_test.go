package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.config.level != LevelInfo {
		t.Errorf("expected default level Info, got %v", logger.config.level)
	}
	if logger.config.caller {
		t.Error("expected caller disabled by default")
	}
	if logger.config.format != FormatText {
		t.Errorf("expected default format text, got %v", logger.config.format)
	}
}

func TestLogger_ZeroValue_Discards(t *testing.T) {
	var logger Logger

	// Must not panic.
	logger.Trace("trace")
	logger.Info("info", slog.String("k", "v"))
	logger.ErrorContext(context.Background(), "error")

	if got := logger.With(slog.Int("n", 1)); got.Logger != nil {
		t.Error("expected With on zero Logger to stay zero")
	}
	if logger.Level() != DefaultLevel {
		t.Errorf("expected %v, got %v", DefaultLevel, logger.Level())
	}
	if logger.Format() != DefaultFormat {
		t.Errorf("expected %v, got %v", DefaultFormat, logger.Format())
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelDebug), WithPretty(false))

	logger.Debug("debug message")
	if !strings.Contains(buf.String(), "debug message") {
		t.Error("debug message not logged after setting level to Debug")
	}

	logger.Trace("trace message")
	if strings.Contains(buf.String(), "trace message") {
		t.Error("trace message logged at Debug level")
	}

	buf.Reset()
	logger2 := Make(&buf, WithLevel(LevelError), WithPretty(false))
	logger2.Info("info message")
	if buf.Len() > 0 {
		t.Error("info message logged when level is Error")
	}

	logger2.Error("error message")
	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at Error level")
	}
}

func TestLogger_Trace_LevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf,
		WithLevel(LevelTrace), WithFormat(FormatJSON), WithTimeLayout("none"))

	logger.Trace("deep")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}

	if entry["level"] != "TRACE" {
		t.Errorf("expected level TRACE, got %v", entry["level"])
	}
	if _, ok := entry["time"]; ok {
		t.Error("expected time to be omitted")
	}
}

func TestLogger_Make_WithTimeLayout(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		contains string
	}{
		{"rfc3339 named", "RFC3339", "T"},
		{"rfc3339 nano named", "RFC3339Nano", "."},
		{"kitchen named", "kitchen", "M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := Make(&buf, WithTimeLayout(tt.layout), WithPretty(false))
			logger.Info("test")

			output := buf.String()
			if !strings.HasPrefix(output, "time=") {
				t.Fatalf("expected leading time attribute, got: %s", output)
			}
			if !strings.Contains(output, tt.contains) {
				t.Errorf(
					"expected time format to contain %q, got: %s",
					tt.contains,
					output,
				)
			}
		})
	}
}

func TestLogger_Make_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithCaller(true), WithFormat(FormatJSON))
	logger.Info("test message")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	src, ok := entry["source"].(map[string]any)
	if !ok {
		t.Fatalf("expected source object, got %v", entry["source"])
	}
	if file, _ := src["file"].(string); !strings.HasSuffix(file, "log_test.go") {
		t.Errorf("expected caller in log_test.go, got %q", file)
	}
}

func TestLogger_Wrap_KeepsBase(t *testing.T) {
	var buf bytes.Buffer
	base := Make(&buf, WithLevel(LevelWarn), WithPretty(false))
	wrapped := base.Wrap(WithFormat(FormatJSON))

	if wrapped.Level() != LevelWarn {
		t.Errorf("expected wrapped level Warn, got %v", wrapped.Level())
	}
	if wrapped.Format() != FormatJSON {
		t.Errorf("expected wrapped format JSON, got %v", wrapped.Format())
	}
	if base.Format() != FormatText {
		t.Error("Wrap modified the receiver")
	}

	wrapped.Warn("wrapped")
	if !json.Valid(bytes.TrimSpace(buf.Bytes())) {
		t.Errorf("expected JSON output, got %s", buf.String())
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithFormat(FormatJSON)).
		With(slog.String("component", "tree"))

	logger.Info("built")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if entry["component"] != "tree" {
		t.Errorf("expected component attribute, got %v", entry)
	}
}

func TestLogger_Pretty_WithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithPretty(true), WithTimeLayout("none"))

	l := Logger{
		config: logger.config,
		Logger: logger.Logger.WithGroup("g").With("persist", 7),
	}
	l.Info("hello", slog.Bool("ok", true))

	out := buf.String()
	for _, want := range []string{"hello", "g.persist", "7", "g.ok", "true", "INFO"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got: %s", want, out)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected a single line, got: %q", out)
	}
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	var buf syncBuffer
	logger := Make(&buf, WithFormat(FormatJSON))

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("concurrent", slog.Int("i", i))
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 16 {
		t.Fatalf("expected 16 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !json.Valid([]byte(line)) {
			t.Errorf("interleaved output: %q", line)
		}
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

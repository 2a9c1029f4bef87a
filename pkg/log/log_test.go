package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestErrFmtHandlerAddsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler)

	logger.Error("fit failed", ErrAttr(errors.New("boom")))

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if _, ok := record[StacktraceAttrKey]; !ok {
		t.Errorf("expected %q attribute in record: %v", StacktraceAttrKey, record)
	}
}

func TestTestLoggerCapture(t *testing.T) {
	logger, buffer := NewTestLogger(LevelDebug)

	logger.Info("training completed", SamplesKey, 120, TreesKey, 300)

	out := buffer.String()
	if !strings.Contains(out, "training completed") {
		t.Errorf("expected message in output, got %s", out)
	}
	if !strings.Contains(out, SamplesKey) {
		t.Errorf("expected %q attribute in output, got %s", SamplesKey, out)
	}
}

func TestTestLoggerLevelFiltering(t *testing.T) {
	logger, buffer := NewTestLogger(LevelWarn)

	logger.Debug("hidden")
	logger.Info("also hidden")
	logger.Warn("visible")

	out := buffer.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug/info output should be filtered, got %s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn output should pass, got %s", out)
	}
}

func TestProviderNamedLogger(t *testing.T) {
	provider, captured := NewTestLoggerProvider(LevelInfo)
	SetProvider(provider)
	defer SetProvider(NewSlogProvider(LevelWarn))

	GetLoggerWithName("parking.estimator").Info("hello")

	if !captured.Contains("parking.estimator") {
		t.Error("expected component name in captured output")
	}
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		LevelDebug: "DEBUG",
		LevelInfo:  "INFO",
		LevelWarn:  "WARN",
		LevelError: "ERROR",
		Level(42):  "UNKNOWN",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}

func TestSlogLoggerEnabled(t *testing.T) {
	provider := NewSlogProvider(LevelInfo)
	logger := provider.GetLogger()

	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("debug should be disabled at info level")
	}
	if !logger.Enabled(context.Background(), LevelError) {
		t.Error("error should be enabled at info level")
	}
}

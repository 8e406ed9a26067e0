package types

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lepinkainen/audiomerge/logging"
)

func TestVersionOf(t *testing.T) {
	if got := VersionOf(nil); got != DefaultVersion {
		t.Errorf("Expected %q for nil context, got %q", DefaultVersion, got)
	}
	if got := VersionOf(&AppContext{}); got != DefaultVersion {
		t.Errorf("Expected %q for empty version, got %q", DefaultVersion, got)
	}
	if got := VersionOf(&AppContext{Version: "1.2.3"}); got != "1.2.3" {
		t.Errorf("Expected 1.2.3, got %q", got)
	}
}

func TestLoggerOf(t *testing.T) {
	if LoggerOf(nil, false) == nil {
		t.Fatal("Expected a usable logger for nil context")
	}

	var console bytes.Buffer
	logger, err := logging.New(logging.Config{Console: &console})
	if err != nil {
		t.Fatalf("logging.New failed: %v", err)
	}
	appCtx := &AppContext{Logger: logger}

	LoggerOf(appCtx, true).Warn("tui warning")
	LoggerOf(appCtx, false).Warn("plain warning")

	out := console.String()
	if strings.Contains(out, "tui warning") {
		t.Errorf("TUI logger must not write to the console: %q", out)
	}
	if !strings.Contains(out, "plain warning") {
		t.Errorf("Plain logger should write warnings to the console: %q", out)
	}
}

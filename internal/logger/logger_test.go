package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{JSON: true, Writer: &buf})
	log.Info().Str("stage", "fetch").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"stage":"fetch"`) {
		t.Fatalf("expected JSON field in output, got %q", out)
	}
	if !strings.Contains(out, `"message":"hello"`) {
		t.Fatalf("expected message in output, got %q", out)
	}
}

func TestVerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Verbose: true, JSON: true, Writer: &buf})
	if log.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("level = %v, want debug", log.GetLevel())
	}
	log.Debug().Msg("dbg")
	if buf.Len() == 0 {
		t.Fatal("debug message was dropped")
	}
}

func TestDefaultSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{JSON: true, Writer: &buf})
	log.Debug().Msg("dbg")
	if buf.Len() != 0 {
		t.Fatalf("debug message leaked: %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error().Msg("nothing")
	if log.GetLevel() != zerolog.Disabled {
		t.Fatalf("level = %v, want disabled", log.GetLevel())
	}
}

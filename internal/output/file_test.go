package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sitemedic/internal/checker"
)

func TestFileSinkJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	sink, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}

	res := sampleResult()
	for _, o := range res.Outcomes {
		if err := sink.Write(o); err != nil {
			t.Fatal(err)
		}
	}
	if err := sink.Write(res); err != nil {
		t.Fatal(err)
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded checker.RunResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("file is not valid JSON: %v", err)
	}
	if decoded.URL != "https://example.com" || decoded.Score != 67 {
		t.Fatalf("unexpected decoded result: %+v", decoded)
	}
}

func TestFileSinkNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")
	sink, err := NewFileSink(path, "")
	if err != nil {
		t.Fatal(err)
	}

	if err := sink.Write(RunStarted("https://example.com", 2)); err != nil {
		t.Fatal(err)
	}
	res := sampleResult()
	for _, o := range res.Outcomes {
		if err := sink.Write(o); err != nil {
			t.Fatal(err)
		}
	}
	if err := sink.Write(RunFinished("https://example.com", 67, 0)); err != nil {
		t.Fatal(err)
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	for _, line := range lines {
		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("line %q is not valid JSON: %v", line, err)
		}
		if ev.Type == "" {
			t.Fatalf("event without type: %q", line)
		}
	}
}

func TestFileSinkRejectsUnknownExtension(t *testing.T) {
	if _, err := NewFileSink(filepath.Join(t.TempDir(), "out.txt"), ""); err == nil {
		t.Fatal("expected error for unknown extension")
	}
}

func TestFileSinkRequiresPath(t *testing.T) {
	if _, err := NewFileSink("", "json"); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestFileSinkCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "out.json")
	sink, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
}

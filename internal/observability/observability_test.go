package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/courtside/courtside/internal/config"
)

func TestNewLoggerWritesJSONWithServiceAttrs(t *testing.T) {
	cfg, err := config.Load("courtside-extract", func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	var buf bytes.Buffer
	logger := NewLogger(cfg, &buf)
	logger.Info("team resolved")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("json.Unmarshal() error = %v; line=%s", err, buf.String())
	}
	if entry["service"] != "courtside-extract" || entry["profile"] != "dev" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestRunIDContextHelpers(t *testing.T) {
	ctx := ContextWithRunID(context.Background(), "abc123")
	if got := RunIDFromContext(ctx); got != "abc123" {
		t.Fatalf("RunIDFromContext() = %q", got)
	}
	if got := RunIDFromContext(context.Background()); got != "" {
		t.Fatalf("RunIDFromContext() = %q, want empty", got)
	}
	if NewRunID() == NewRunID() {
		t.Fatal("expected distinct run ids")
	}
}

func TestWriteMetricsFileIncludesExtractionSeries(t *testing.T) {
	ObserveExtraction("game_stats", 12, 2048, 150*time.Millisecond, nil)
	ObserveExtraction("draft_picks", 0, 0, time.Millisecond, errors.New("boom"))

	path := filepath.Join(t.TempDir(), "courtside.prom")
	if err := WriteMetricsFile(path); err != nil {
		t.Fatalf("WriteMetricsFile() error = %v", err)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	text := string(body)
	for _, want := range []string{
		`courtside_extract_queries_total{operation="game_stats",outcome="success"}`,
		`courtside_extract_queries_total{operation="draft_picks",outcome="error"}`,
		`courtside_extract_rows_total{operation="game_stats"}`,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("metrics file missing %s:\n%s", want, text)
		}
	}
}

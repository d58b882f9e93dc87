package storage

import "testing"

func TestParseLocation(t *testing.T) {
	loc, err := ParseLocation("abfs://data/game.parquet")
	if err != nil {
		t.Fatalf("ParseLocation() error = %v", err)
	}
	if loc.Scheme != "abfs" || loc.Container != "data" || loc.Key != "game.parquet" {
		t.Fatalf("ParseLocation() = %+v", loc)
	}
	if loc.String() != "abfs://data/game.parquet" {
		t.Fatalf("String() = %q", loc.String())
	}
}

func TestParseLocationNestedKey(t *testing.T) {
	loc, err := ParseLocation("S3://league/nba/2024/../draft_history.parquet")
	if err != nil {
		t.Fatalf("ParseLocation() error = %v", err)
	}
	if loc.Scheme != "s3" || loc.Key != "nba/draft_history.parquet" {
		t.Fatalf("ParseLocation() = %+v", loc)
	}
}

func TestParseLocationRejectsInvalid(t *testing.T) {
	for _, raw := range []string{
		"data/game.parquet",
		"abfs://data",
		"abfs://data/",
		"abfs://../game.parquet",
		"abfs://data/../../secrets",
		"1bad://data/game.parquet",
	} {
		if _, err := ParseLocation(raw); err == nil {
			t.Fatalf("ParseLocation(%q) expected error", raw)
		}
	}
}

func TestBuildTableLocation(t *testing.T) {
	got, err := BuildTableLocation("abfs", "data", "draft_history")
	if err != nil {
		t.Fatalf("BuildTableLocation() error = %v", err)
	}
	if want := "abfs://data/draft_history.parquet"; got != want {
		t.Fatalf("BuildTableLocation() = %q, want %q", got, want)
	}
}

func TestBuildTableLocationRejectsInvalidComponent(t *testing.T) {
	if _, err := BuildTableLocation("abfs", "data", "../oops"); err == nil {
		t.Fatal("expected invalid component error")
	}
}

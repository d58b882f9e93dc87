package storage

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

var (
	schemePattern        = regexp.MustCompile(`^[a-z][a-z0-9+.-]{0,31}$`)
	pathComponentPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,127}$`)
)

// Location is a parsed scheme://container/key address.
type Location struct {
	Scheme    string
	Container string
	Key       string
}

func (l Location) String() string {
	return l.Scheme + "://" + l.Container + "/" + l.Key
}

func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return Location{}, fmt.Errorf("invalid location %q: missing scheme", raw)
	}
	scheme = strings.ToLower(scheme)
	if !schemePattern.MatchString(scheme) {
		return Location{}, fmt.Errorf("invalid location %q: bad scheme", raw)
	}
	container, key, ok := strings.Cut(rest, "/")
	if !ok || strings.TrimSpace(key) == "" {
		return Location{}, fmt.Errorf("invalid location %q: object key is required", raw)
	}
	if err := validatePathComponent(container, "container"); err != nil {
		return Location{}, err
	}
	cleaned := path.Clean(strings.TrimPrefix(key, "/"))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return Location{}, fmt.Errorf("invalid location %q: bad object key", raw)
	}
	return Location{Scheme: scheme, Container: container, Key: cleaned}, nil
}

// BuildTableLocation returns the conventional location of a parquet table,
// e.g. BuildTableLocation("abfs", "data", "game") is abfs://data/game.parquet.
func BuildTableLocation(scheme, container, table string) (string, error) {
	if !schemePattern.MatchString(scheme) {
		return "", fmt.Errorf("invalid scheme: %q", scheme)
	}
	if err := validatePathComponent(container, "container"); err != nil {
		return "", err
	}
	if err := validatePathComponent(table, "table name"); err != nil {
		return "", err
	}
	return Location{Scheme: scheme, Container: container, Key: table + ".parquet"}.String(), nil
}

func validatePathComponent(value, field string) error {
	if !pathComponentPattern.MatchString(value) {
		return fmt.Errorf("invalid %s: %q", field, value)
	}
	return nil
}

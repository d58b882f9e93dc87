package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type LookupFunc func(string) (string, bool)

type Profile string

const (
	ProfileDev  Profile = "dev"
	ProfileTest Profile = "test"
	ProfileProd Profile = "prod"
)

const (
	BackendS3    = "s3"
	BackendLocal = "local"
)

type Config struct {
	Profile       Profile
	Service       ServiceConfig
	ObjectStore   ObjectStoreConfig
	Tables        TablesConfig
	Engine        EngineConfig
	Seed          SeedConfig
	Observability ObservabilityConfig
}

type ServiceConfig struct {
	Name string
}

type ObjectStoreConfig struct {
	Backend          string
	LocalRoot        string
	Endpoint         string
	Region           string
	Bucket           string
	AccessKeyID      string
	SecretAccessKey  string
	UseSSL           bool
	Prefix           string
	AutoCreateBucket bool
}

// TablesConfig names where the league tables live: scheme://container/<table>.parquet.
type TablesConfig struct {
	Scheme    string
	Container string
}

type EngineConfig struct {
	Threads int
}

type SeedConfig struct {
	RandomSeed  int
	Teams       int
	FirstSeason int
	LastSeason  int
}

type ObservabilityConfig struct {
	LogLevel    slog.Level
	LogJSON     bool
	MetricsFile string
}

func LoadFromEnv(serviceName string) (Config, error) {
	return Load(serviceName, os.LookupEnv)
}

func Load(serviceName string, lookup LookupFunc) (Config, error) {
	if lookup == nil {
		return Config{}, fmt.Errorf("lookup function is required")
	}

	profile := ProfileDev
	if raw, ok := lookup("COURTSIDE_PROFILE"); ok {
		profile = Profile(strings.ToLower(strings.TrimSpace(raw)))
	}
	if !isValidProfile(profile) {
		return Config{}, fmt.Errorf("invalid COURTSIDE_PROFILE: %q", profile)
	}

	cfg := defaultsForProfile(profile)
	if serviceName != "" {
		cfg.Service.Name = serviceName
	}

	if err := applyString(lookup, "COURTSIDE_SERVICE_NAME", &cfg.Service.Name); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "COURTSIDE_OBJECTSTORE_BACKEND", &cfg.ObjectStore.Backend); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "COURTSIDE_OBJECTSTORE_LOCAL_ROOT", &cfg.ObjectStore.LocalRoot); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "COURTSIDE_OBJECTSTORE_ENDPOINT", &cfg.ObjectStore.Endpoint); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "COURTSIDE_OBJECTSTORE_REGION", &cfg.ObjectStore.Region); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "COURTSIDE_OBJECTSTORE_BUCKET", &cfg.ObjectStore.Bucket); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "COURTSIDE_OBJECTSTORE_ACCESS_KEY", &cfg.ObjectStore.AccessKeyID); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "COURTSIDE_OBJECTSTORE_SECRET_KEY", &cfg.ObjectStore.SecretAccessKey); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "COURTSIDE_OBJECTSTORE_USE_SSL", &cfg.ObjectStore.UseSSL); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "COURTSIDE_OBJECTSTORE_PREFIX", &cfg.ObjectStore.Prefix); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "COURTSIDE_OBJECTSTORE_AUTO_CREATE_BUCKET", &cfg.ObjectStore.AutoCreateBucket); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "COURTSIDE_TABLES_SCHEME", &cfg.Tables.Scheme); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "COURTSIDE_TABLES_CONTAINER", &cfg.Tables.Container); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "COURTSIDE_ENGINE_THREADS", &cfg.Engine.Threads); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "COURTSIDE_SEED_RANDOM_SEED", &cfg.Seed.RandomSeed); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "COURTSIDE_SEED_TEAMS", &cfg.Seed.Teams); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "COURTSIDE_SEED_FIRST_SEASON", &cfg.Seed.FirstSeason); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "COURTSIDE_SEED_LAST_SEASON", &cfg.Seed.LastSeason); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "COURTSIDE_LOG_JSON", &cfg.Observability.LogJSON); err != nil {
		return Config{}, err
	}
	if err := applyLogLevel(lookup, "COURTSIDE_LOG_LEVEL", &cfg.Observability.LogLevel); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "COURTSIDE_METRICS_FILE", &cfg.Observability.MetricsFile); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Service.Name == "" {
		return fmt.Errorf("service name is required")
	}
	switch c.ObjectStore.Backend {
	case BackendS3:
		if c.ObjectStore.Endpoint == "" || c.ObjectStore.Bucket == "" {
			return fmt.Errorf("s3 backend requires endpoint and bucket")
		}
	case BackendLocal:
		if c.ObjectStore.LocalRoot == "" {
			return fmt.Errorf("local backend requires COURTSIDE_OBJECTSTORE_LOCAL_ROOT")
		}
	default:
		return fmt.Errorf("invalid COURTSIDE_OBJECTSTORE_BACKEND: %q", c.ObjectStore.Backend)
	}
	if c.Tables.Scheme == "" || c.Tables.Container == "" {
		return fmt.Errorf("tables scheme and container are required")
	}
	if c.Engine.Threads <= 0 {
		return fmt.Errorf("engine threads must be > 0")
	}
	if c.Seed.FirstSeason > c.Seed.LastSeason {
		return fmt.Errorf("seed first season %d is after last season %d", c.Seed.FirstSeason, c.Seed.LastSeason)
	}
	return nil
}

func defaultsForProfile(profile Profile) Config {
	cfg := Config{
		Profile: profile,
		Service: ServiceConfig{Name: "courtside"},
		ObjectStore: ObjectStoreConfig{
			Backend:          BackendS3,
			LocalRoot:        "./data",
			Endpoint:         "localhost:9000",
			Region:           "us-east-1",
			Bucket:           "courtside",
			AccessKeyID:      "minio",
			SecretAccessKey:  "miniostorage",
			UseSSL:           false,
			Prefix:           "",
			AutoCreateBucket: true,
		},
		Tables: TablesConfig{
			Scheme:    "abfs",
			Container: "data",
		},
		Engine: EngineConfig{
			Threads: 16,
		},
		Seed: SeedConfig{
			RandomSeed:  42,
			Teams:       8,
			FirstSeason: 2005,
			LastSeason:  2020,
		},
		Observability: ObservabilityConfig{
			LogLevel: slog.LevelDebug,
			LogJSON:  true,
		},
	}

	switch profile {
	case ProfileTest:
		cfg.ObjectStore.Backend = BackendLocal
		cfg.Engine.Threads = 4
		cfg.Observability.LogLevel = slog.LevelWarn
	case ProfileProd:
		cfg.Observability.LogLevel = slog.LevelInfo
		cfg.ObjectStore.UseSSL = true
		cfg.ObjectStore.AutoCreateBucket = false
	}

	return cfg
}

func isValidProfile(profile Profile) bool {
	switch profile {
	case ProfileDev, ProfileTest, ProfileProd:
		return true
	default:
		return false
	}
}

func applyString(lookup LookupFunc, key string, dst *string) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	*dst = strings.TrimSpace(raw)
	return nil
}

func applyBool(lookup LookupFunc, key string, dst *bool) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyInt(lookup LookupFunc, key string, dst *int) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyLogLevel(lookup LookupFunc, key string, dst *slog.Level) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		*dst = slog.LevelDebug
	case "info":
		*dst = slog.LevelInfo
	case "warn", "warning":
		*dst = slog.LevelWarn
	case "error":
		*dst = slog.LevelError
	default:
		return fmt.Errorf("invalid %s: %q", key, raw)
	}
	return nil
}

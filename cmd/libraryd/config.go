package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/library-lending-go/fine"
	"github.com/AntonStoeckl/library-lending-go/httpapi"
)

const (
	envPrefix = "LIBRARY_"

	defaultAddr         = ":8080"
	defaultLogLevel     = "info"
	defaultOTLPEndpoint = "localhost:4317"
	defaultSQLiteDSN    = "file::memory:"

	journalDriverNone   = "none"
	journalDriverPGX    = "pgx"
	journalDriverSQL    = "sql"
	journalDriverSQLX   = "sqlx"
	journalDriverSQLite = "sqlite"

	otlpProtocolGRPC   = "grpc"
	otlpProtocolHTTP   = "http"
	otlpProtocolStdout = "stdout"
)

var (
	errUnknownJournalDriver = errors.New("unknown journal driver")
	errMissingJournalDSN    = errors.New("journal dsn must not be empty")
	errUnknownOTLPProtocol  = errors.New("unknown otlp protocol")
	errNegativeFineRate     = errors.New("fine rate per day must not be negative")
)

// Config is the process configuration.
// Precedence, lowest first: defaults, YAML file, LIBRARY_* environment variables, command line flags.
type Config struct {
	Addr                 string        `yaml:"addr"`
	FineRatePerDay       fine.Amount   `yaml:"fine_rate_per_day"`
	SeedDemoData         bool          `yaml:"seed_demo_data"`
	LogLevel             string        `yaml:"log_level"`
	ObservabilityEnabled bool          `yaml:"observability_enabled"`
	OTLPEndpoint         string        `yaml:"otlp_endpoint"`
	OTLPProtocol         string        `yaml:"otlp_protocol"`
	CORSOrigins          []string      `yaml:"cors_origins"`
	Journal              JournalConfig `yaml:"journal"`
}

// JournalConfig selects the optional transaction journal.
type JournalConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Table  string `yaml:"table"`
}

func defaultConfig() Config {
	return Config{
		Addr:           defaultAddr,
		FineRatePerDay: fine.DefaultRatePerDay,
		SeedDemoData:   true,
		LogLevel:       defaultLogLevel,
		OTLPEndpoint:   defaultOTLPEndpoint,
		OTLPProtocol:   otlpProtocolGRPC,
		CORSOrigins:    []string{httpapi.DefaultAllowedOrigin},
		Journal:        JournalConfig{Driver: journalDriverNone},
	}
}

// loadConfig builds the Config from args (without the program name) and the environment.
func loadConfig(args []string, getenv func(string) string) (Config, error) {
	cfg := defaultConfig()

	fs := flag.NewFlagSet("libraryd", flag.ContinueOnError)
	configFile := fs.String("config", "", "Path to a YAML configuration file")
	addr := fs.String("addr", cfg.Addr, "HTTP listen address")
	fineRate := fs.Int64("fine-rate-per-day", cfg.FineRatePerDay, "Fine per whole overdue day")
	seed := fs.Bool("seed-demo-data", cfg.SeedDemoData, "Seed demo members and books on startup")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	observability := fs.Bool("observability-enabled", cfg.ObservabilityEnabled, "Enable OpenTelemetry observability")
	otlpEndpoint := fs.String("otlp-endpoint", cfg.OTLPEndpoint, "OTLP collector endpoint")
	otlpProtocol := fs.String("otlp-protocol", cfg.OTLPProtocol, "OTLP protocol: grpc, http, stdout")
	corsOrigins := fs.String("cors-origins", strings.Join(cfg.CORSOrigins, ","), "Comma-separated allowed CORS origins")
	journalDriver := fs.String("journal-driver", cfg.Journal.Driver, "Journal driver: none, pgx, sql, sqlx, sqlite")
	journalDSN := fs.String("journal-dsn", cfg.Journal.DSN, "Journal database DSN")
	journalTable := fs.String("journal-table", cfg.Journal.Table, "Journal table name")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if path := firstNonEmpty(*configFile, getenv(envPrefix+"CONFIG")); path != "" {
		if err := applyYAMLFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "fine-rate-per-day":
			cfg.FineRatePerDay = *fineRate
		case "seed-demo-data":
			cfg.SeedDemoData = *seed
		case "log-level":
			cfg.LogLevel = *logLevel
		case "observability-enabled":
			cfg.ObservabilityEnabled = *observability
		case "otlp-endpoint":
			cfg.OTLPEndpoint = *otlpEndpoint
		case "otlp-protocol":
			cfg.OTLPProtocol = *otlpProtocol
		case "cors-origins":
			cfg.CORSOrigins = splitList(*corsOrigins)
		case "journal-driver":
			cfg.Journal.Driver = *journalDriver
		case "journal-dsn":
			cfg.Journal.DSN = *journalDSN
		case "journal-table":
			cfg.Journal.Table = *journalTable
		}
	})

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyYAMLFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(envPrefix + "ADDR"); v != "" {
		cfg.Addr = v
	}

	if v := getenv(envPrefix + "FINE_RATE_PER_DAY"); v != "" {
		rate, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sFINE_RATE_PER_DAY: %w", envPrefix, err)
		}

		cfg.FineRatePerDay = rate
	}

	for name, target := range map[string]*bool{
		"SEED_DEMO_DATA":        &cfg.SeedDemoData,
		"OBSERVABILITY_ENABLED": &cfg.ObservabilityEnabled,
	} {
		v := getenv(envPrefix + name)
		if v == "" {
			continue
		}

		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}

		*target = parsed
	}

	for name, target := range map[string]*string{
		"LOG_LEVEL":      &cfg.LogLevel,
		"OTLP_ENDPOINT":  &cfg.OTLPEndpoint,
		"OTLP_PROTOCOL":  &cfg.OTLPProtocol,
		"JOURNAL_DRIVER": &cfg.Journal.Driver,
		"JOURNAL_DSN":    &cfg.Journal.DSN,
		"JOURNAL_TABLE":  &cfg.Journal.Table,
	} {
		if v := getenv(envPrefix + name); v != "" {
			*target = v
		}
	}

	if v := getenv(envPrefix + "CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	return nil
}

func (c Config) validate() error {
	if c.FineRatePerDay < 0 {
		return errNegativeFineRate
	}

	if _, err := c.slogLevel(); err != nil {
		return err
	}

	switch c.OTLPProtocol {
	case otlpProtocolGRPC, otlpProtocolHTTP, otlpProtocolStdout:
	default:
		return fmt.Errorf("%w: %q", errUnknownOTLPProtocol, c.OTLPProtocol)
	}

	switch c.Journal.Driver {
	case "", journalDriverNone, journalDriverSQLite:
	case journalDriverPGX, journalDriverSQL, journalDriverSQLX:
		if c.Journal.DSN == "" {
			return errMissingJournalDSN
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownJournalDriver, c.Journal.Driver)
	}

	return nil
}

func (c Config) slogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}

	return level, nil
}

func splitList(s string) []string {
	var items []string

	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

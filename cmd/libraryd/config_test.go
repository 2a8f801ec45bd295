package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func Test_loadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(nil, envFrom(nil))

	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, int64(5), cfg.FineRatePerDay)
	assert.True(t, cfg.SeedDemoData)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, journalDriverNone, cfg.Journal.Driver)
}

func Test_loadConfig_Precedence(t *testing.T) {
	// arrange
	path := filepath.Join(t.TempDir(), "libraryd.yaml")
	yamlContent := `
addr: ":7000"
fine_rate_per_day: 7
log_level: debug
cors_origins: ["http://yaml.example"]
journal:
  driver: sqlite
  table: yaml_journal
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))

	env := envFrom(map[string]string{
		"LIBRARY_ADDR":              ":7100",
		"LIBRARY_SEED_DEMO_DATA":    "false",
		"LIBRARY_JOURNAL_TABLE":     "env_journal",
		"LIBRARY_CORS_ORIGINS":      "http://a.example, http://b.example",
		"LIBRARY_FINE_RATE_PER_DAY": "9",
	})

	// act
	cfg, err := loadConfig([]string{"-config", path, "-addr", ":7200"}, env)

	// assert
	require.NoError(t, err)
	assert.Equal(t, ":7200", cfg.Addr, "flag wins over env and file")
	assert.Equal(t, int64(9), cfg.FineRatePerDay, "env wins over file")
	assert.False(t, cfg.SeedDemoData)
	assert.Equal(t, "debug", cfg.LogLevel, "file wins over defaults")
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, journalDriverSQLite, cfg.Journal.Driver)
	assert.Equal(t, "env_journal", cfg.Journal.Table)
}

func Test_loadConfig_RejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "negative fine rate", args: []string{"-fine-rate-per-day", "-1"}},
		{name: "unknown log level", args: []string{"-log-level", "chatty"}},
		{name: "unknown otlp protocol", args: []string{"-otlp-protocol", "carrier-pigeon"}},
		{name: "unknown journal driver", args: []string{"-journal-driver", "mongo"}},
		{name: "postgres journal without dsn", args: []string{"-journal-driver", "pgx"}},
		{name: "malformed bool", env: map[string]string{"LIBRARY_OBSERVABILITY_ENABLED": "maybe"}},
		{name: "malformed rate", env: map[string]string{"LIBRARY_FINE_RATE_PER_DAY": "five"}},
		{name: "missing config file", args: []string{"-config", "/does/not/exist.yaml"}},
		{name: "unknown flag", args: []string{"-verbose"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadConfig(tc.args, envFrom(tc.env))

			assert.Error(t, err)
		})
	}
}

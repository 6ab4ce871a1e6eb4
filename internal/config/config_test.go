package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MAIL_SENDER", "alerts@example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, []string{"pneo", "spot", "phr"}, cfg.Catalog.Collections)
	assert.Equal(t, []string{"DATA", "ANALYTICS"}, cfg.Catalog.UsageTypes)
	assert.Equal(t, 10, cfg.Catalog.MaxCloudCover)
	assert.Equal(t, 500, cfg.Catalog.Limit)
	assert.Equal(t, "acquisitionDate", cfg.Catalog.SortBy)
	assert.True(t, cfg.Catalog.Ascending)
	assert.Equal(t, time.Duration(0), cfg.Catalog.RequestTimeout)
	assert.Equal(t, filepath.Join("aoi", "aoi_europe.geojson"), cfg.AOIPath())
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, 60*time.Minute, cfg.Scheduler.Interval)
	assert.Equal(t, time.Second, cfg.Scheduler.PollInterval)
	assert.False(t, cfg.Scheduler.RunOnStart)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.Host)
	assert.Equal(t, 465, cfg.Mail.Port)
	assert.Contains(t, cfg.Mail.BodyTemplate, "AUTOMATED ARCHIVE MONITORING SYSTEM")
	assert.True(t, cfg.Mail.Enabled)
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "CATALOG_COLLECTIONS=triplesat\n" +
		"CATALOG_HOST=21at\n" +
		"CATALOG_MAX_CLOUD_COVER=25\n" +
		"MAIL_SENDER=alerts@example.com\n" +
		"SCHEDULER_INTERVAL_MINUTES=15\n" +
		"SCHEDULER_POLL_INTERVAL_MS=250\n" +
		"CATALOG_REQUEST_TIMEOUT=30\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	t.Setenv("CATALOG_MAX_CLOUD_COVER", "30")

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, []string{"triplesat"}, cfg.Catalog.Collections)
	assert.Equal(t, "21at", cfg.Catalog.Host)
	assert.Equal(t, 30, cfg.Catalog.MaxCloudCover, "environment wins over file")
	assert.Equal(t, 15*time.Minute, cfg.Scheduler.Interval)
	assert.Equal(t, 250*time.Millisecond, cfg.Scheduler.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.Catalog.RequestTimeout)
	assert.Equal(t, []string{"alerts@example.com"}, cfg.Mail.Recipients)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"cloud cover above 100", "CATALOG_MAX_CLOUD_COVER", "101"},
		{"limit above 500", "CATALOG_LIMIT", "501"},
		{"unknown store backend", "STORE_BACKEND", "mongo"},
		{"no collections", "CATALOG_COLLECTIONS", " , "},
		{"bad recipient", "MAIL_RECIPIENTS", "not-an-email"},
		{"bad sender", "MAIL_SENDER", "alerts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MAIL_SENDER", "alerts@example.com")
			t.Setenv(tt.key, tt.value)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MailRequiresSender(t *testing.T) {
	t.Setenv("MAIL_ENABLED", "true")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sender")

	t.Setenv("MAIL_ENABLED", "false")
	cfg, err := Load("")
	require.NoError(t, err, "no sender needed while mail is disabled")
	assert.Empty(t, cfg.Mail.Recipients)
}

func TestParseList(t *testing.T) {
	assert.Nil(t, parseList(""))
	assert.Equal(t, []string{"a", "b"}, parseList(" a, ,b "))
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("SERVICE_TIMEZONE", "")
	t.Setenv("DAILY_RESET_AT", "")
	t.Setenv("START_NUMBER_DEFAULT", "")
	t.Setenv("DB_DRIVER", "")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "America/Panama", cfg.Location.String())
	assert.Equal(t, "23:59", cfg.DailyResetAt)
	assert.Equal(t, 1, cfg.StartNumberDefault)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, DefaultConfirmation, cfg.ResetConfirmation)
	assert.Equal(t, 7, cfg.FactRetentionDays)
	assert.Equal(t, 2*time.Minute, cfg.RolloverCooldown)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("SERVICE_TIMEZONE", "UTC")
	t.Setenv("DAILY_RESET_AT", "21:30")
	t.Setenv("START_NUMBER_DEFAULT", "100")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("ROLLOVER_COOLDOWN", "not-a-duration")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 100, cfg.StartNumberDefault)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 2*time.Minute, cfg.RolloverCooldown)
}

func TestLoadFromEnvRejectsBadSchedule(t *testing.T) {
	t.Setenv("SERVICE_TIMEZONE", "Mars/Olympus")
	_, err := LoadFromEnv()
	assert.Error(t, err)

	t.Setenv("SERVICE_TIMEZONE", "UTC")
	t.Setenv("DAILY_RESET_AT", "25:99")
	_, err = LoadFromEnv()
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("07:05")
	require.NoError(t, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, 5, m)
}

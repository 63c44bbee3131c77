package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/airdesk/pkg/dialogue"
	"github.com/aretw0/airdesk/pkg/fare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, dialogue.DefaultPolicy(), cfg.Policy)
	assert.Equal(t, "sms_gateway", cfg.Integrations.SMS)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
  shutdown_timeout: 3s
store:
  driver: redis
  redis_addr: cache:6379
  ttl: 2h
policy:
  handoff: [operator, human]
fares:
  flexi: {early: 100, mid: 200, late: 300}
integrations:
  sms: twilio
log:
  level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadHeaderTimeout, "untouched keys keep defaults")
	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, 2*time.Hour, cfg.Store.TTL)
	assert.Equal(t, []string{"operator", "human"}, cfg.Policy.Handoff)
	assert.Equal(t, dialogue.DefaultPolicy().CancelKeywords, cfg.Policy.CancelKeywords)
	schedules, err := cfg.FareSchedules()
	require.NoError(t, err)
	assert.Equal(t, fare.Schedule{Early: 100, Mid: 200, Late: 300}, schedules["flexi"])
	assert.Equal(t, fare.DefaultSchedules()["saver"], schedules["saver"])
	assert.Equal(t, "twilio", cfg.Integrations.SMS)
	assert.Equal(t, "email_gateway", cfg.Integrations.Email)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "server:\n  port: 80\n"},
		{"unknown driver", "store:\n  driver: etcd\n"},
		{"bad duration", "store:\n  ttl: forever\n"},
		{"negative fee", "fares:\n  saver: {early: -1}\n"},
		{"new family missing a tier", "fares:\n  promo: {early: 100}\n"},
		{"malformed", "server: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "airdesk.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"AIRDESK_ADDR":         ":7000",
		"AIRDESK_STORE_DRIVER": "redis",
		"AIRDESK_LOCK_TTL":     "5s",
		"AIRDESK_REDIS_DB":     "3",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, applyEnv(&cfg, lookup))
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, 5*time.Second, cfg.Store.LockTTL)
	assert.Equal(t, 3, cfg.Store.RedisDB)

	env["AIRDESK_REDIS_DB"] = "three"
	assert.Error(t, applyEnv(&cfg, lookup))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o600))
	t.Setenv("AIRDESK_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_ExampleFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "airdesk.example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "PNQ", cfg.Data.Locations["pune"])
	assert.Equal(t, 4096, cfg.Server.MaxInputSize)
	assert.Contains(t, cfg.Policy.Handoff, "operator")
	schedules, err := cfg.FareSchedules()
	require.NoError(t, err)
	assert.Equal(t, fare.DefaultSchedules(), schedules)
}

func TestFareSchedules_PartialOverride(t *testing.T) {
	cfg := Default()
	require.NoError(t, Decode([]byte("fares:\n  Saver: {early: 1500}\n"), &cfg))

	schedules, err := cfg.FareSchedules()
	require.NoError(t, err)
	assert.Equal(t, fare.Schedule{Early: 1500, Mid: 3000, Late: 5000}, schedules["saver"])
	assert.Equal(t, fare.DefaultSchedules()["flexi"], schedules["flexi"])
}

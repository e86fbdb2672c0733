package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "realm.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadRepoConfig(t *testing.T) {
	cfg, err := Load("../../config/realm.toml")
	require.NoError(t, err)

	assert.Equal(t, "Realm", cfg.Server.Name)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, 100*time.Millisecond, cfg.World.TickRate)
	assert.Equal(t, 5*time.Minute, cfg.World.SaveInterval)
	assert.Equal(t, time.Minute, cfg.World.CorpseDelay)
	assert.Equal(t, "data/yaml", cfg.Data.YAMLDir)
	assert.Equal(t, float32(5), cfg.Spells.DefaultMeleeRange)
	assert.NotZero(t, cfg.Server.StartTime)
}

func TestLoadKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[server]\nname = \"Test\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "Test", cfg.Server.Name)
	assert.Equal(t, 2*time.Second, cfg.World.RegenInterval)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
}

func TestLoadRejectsBadValues(t *testing.T) {
	_, err := Load(writeConfig(t, "[world]\ntick_rate = \"0s\"\n"))
	assert.ErrorContains(t, err, "tick_rate")

	_, err = Load(writeConfig(t, "[world]\nsave_interval = \"0s\"\n"))
	assert.ErrorContains(t, err, "save_interval")

	_, err = Load(writeConfig(t, "[world]\ntick_rate = \"1s\"\nsave_interval = \"500ms\"\n"))
	assert.ErrorContains(t, err, "save_interval")

	_, err = Load(writeConfig(t, "[world]\npower_update_interval = \"-1s\"\n"))
	assert.ErrorContains(t, err, "power_update_interval")

	_, err = Load(writeConfig(t, "[database]\nenabled = true\ndsn = \"\"\n"))
	assert.ErrorContains(t, err, "dsn")

	_, err = Load(writeConfig(t, "[server\n"))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPath(t *testing.T) {
	t.Setenv(EnvPath, "")
	assert.Equal(t, DefaultPath, Path())
	t.Setenv(EnvPath, "/etc/realm.toml")
	assert.Equal(t, "/etc/realm.toml", Path())
}

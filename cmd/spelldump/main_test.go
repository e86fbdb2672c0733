package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/realmcore/server/internal/config"
)

func TestDumpFiltersByName(t *testing.T) {
	cfg, err := config.Load("../../config/realm.toml")
	require.NoError(t, err)
	cfg.Data.YAMLDir = "../../data/yaml"
	cfg.Data.ScriptsDir = "../../scripts"

	deps, closeFn, err := loadContent(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()

	var buf bytes.Buffer
	var records []dumper
	for _, sp := range deps.Spells.All() {
		records = append(records, sp)
	}
	n, err := writeDump(&buf, "spells", "MIND FLAY", records)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Spells\n"))
	assert.Contains(t, out, "Mind Flay")
	assert.NotContains(t, out, "Vampiric Embrace")
}

func TestDumpNpcsCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "realm.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
[data]
yaml_dir = "../../data/yaml"
scripts_dir = "../../scripts"
`), 0o644))
	out := filepath.Join(dir, "npcs.txt")

	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"npcs", "-c", cfgPath, "-o", out, "-f", "voidwalker"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "wrote 1 npcs")

	body, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(body), "NPC: Voidwalker Minion (8996)")
}

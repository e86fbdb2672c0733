package persist

import (
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realmcore/server/internal/spell"
)

func TestMigrationsAreEmbedded(t *testing.T) {
	names, err := Migrations()
	require.NoError(t, err)
	require.Equal(t, []string{
		"migrations/00001_spell_cooldowns.sql",
		"migrations/00002_character_spells.sql",
	}, names)

	for _, n := range names {
		body, err := fs.ReadFile(migrations, n)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(body), "-- +goose Up"), n)
		assert.True(t, strings.Contains(string(body), "-- +goose Down"), n)
	}
}

func TestCooldownRowConversion(t *testing.T) {
	until := time.Date(2026, 3, 1, 12, 0, 30, 0, time.FixedZone("CET", 3600))
	cds := []spell.Cooldown{
		{SpellID: 8092, Until: until},
		{Category: 133, Until: until.Add(time.Minute)},
	}

	rows := cooldownRows(7, cds)
	require.Len(t, rows, 2)
	assert.Equal(t, CooldownRow{CharID: 7, SpellID: 8092, Until: until.UTC()}, rows[0])
	assert.Equal(t, int32(133), rows[1].Category)
	assert.Zero(t, rows[1].SpellID)

	back := cooldownsFromRows(rows)
	require.Len(t, back, 2)
	assert.Equal(t, spell.ID(8092), back[0].SpellID)
	assert.True(t, back[0].Until.Equal(until))
	assert.Equal(t, uint32(133), back[1].Category)
}

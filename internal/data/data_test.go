package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlDir = "../../data/yaml"

func TestLoadSpellList(t *testing.T) {
	list, err := LoadSpellList(filepath.Join(yamlDir, "spells.yaml"))
	require.NoError(t, err)

	var flay *SpellEntry
	for i := range list.Spells {
		if list.Spells[i].ID == 15407 {
			flay = &list.Spells[i]
		}
	}
	require.NotNil(t, flay)
	assert.Equal(t, "Mind Flay", flay.Name)
	assert.Equal(t, "PriestShadowMindFlay", flay.Line)
	assert.Equal(t, uint32(0x4), flay.AttributesEx)
	assert.Equal(t, [3]uint32{0x00800000, 0, 0}, flay.SpellClassMask)
	require.Len(t, flay.Effects, 3)
	assert.Equal(t, 14, flay.Effects[2].BasePoints)
	assert.Equal(t, 1000, flay.Effects[2].Amplitude)

	assert.NotEmpty(t, list.Skills)
	assert.NotEmpty(t, list.Lines)
	assert.NotEmpty(t, list.Shapeshifts)
}

func TestLoadSpellList_RejectsDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spells.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
spells:
  - { id: 1, name: A }
  - { id: 1, name: B }
`), 0o644))

	_, err := LoadSpellList(path)
	assert.ErrorContains(t, err, "duplicate spell id 1")
}

func TestLoadSpellList_RequiredItemClassIsOptional(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spells.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
spells:
  - { id: 1, name: A }
  - { id: 2, name: B, required_item_class: 0 }
`), 0o644))

	list, err := LoadSpellList(path)
	require.NoError(t, err)
	assert.Nil(t, list.Spells[0].RequiredItemClass)
	require.NotNil(t, list.Spells[1].RequiredItemClass)
	assert.Equal(t, 0, *list.Spells[1].RequiredItemClass)
}

func TestLoadNpcList(t *testing.T) {
	tbl, err := LoadNpcList(filepath.Join(yamlDir, "npcs.yaml"))
	require.NoError(t, err)

	warlock := tbl.Get(11324)
	require.NotNil(t, warlock)
	assert.Equal(t, "Searing Blade Warlock", warlock.Name)
	assert.Equal(t, uint32(389), warlock.Map)
	assert.Equal(t, []uint32{11167}, warlock.DisplayIDs)

	taragaman := tbl.Get(11520)
	require.NotNil(t, taragaman)
	assert.Equal(t, 50, taragaman.Resistances[1])

	all := tbl.All()
	assert.Len(t, all, tbl.Count())
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
	assert.NotEmpty(t, tbl.Spawns())
	assert.Nil(t, tbl.Get(1))
}

func TestLoadNpcList_FixesLevelRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "npcs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
npcs:
  - { id: 5, name: Wolf, min_level: 7, max_level: 3 }
`), 0o644))

	tbl, err := LoadNpcList(path)
	require.NoError(t, err)
	assert.Equal(t, 7, tbl.Get(5).MaxLevel)
}

func TestLoadClassList(t *testing.T) {
	classes, err := LoadClassList(filepath.Join(yamlDir, "classes.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, classes)
	assert.Equal(t, "Warrior", classes[0].Name)
	assert.Equal(t, 1, classes[0].PowerType)
}

func TestLoadModelList(t *testing.T) {
	ml, err := LoadModelList(filepath.Join(yamlDir, "models.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, ml.Models)
	require.NotEmpty(t, ml.Factions)

	for _, m := range ml.Models {
		assert.NotZero(t, m.Scale, "model %d", m.ID)
	}
}

func TestLoadMapData(t *testing.T) {
	tbl, err := LoadMapData(filepath.Join(yamlDir, "maps.yaml"))
	require.NoError(t, err)

	rfc := tbl.GetInfo(389)
	require.NotNil(t, rfc)
	assert.True(t, rfc.Instanced)
	assert.Equal(t, 5, rfc.MaxPlayers)
	assert.Nil(t, tbl.GetInfo(12345))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := LoadSpellList("does/not/exist.yaml")
	assert.Error(t, err)
	_, err = LoadNpcList("does/not/exist.yaml")
	assert.Error(t, err)
}

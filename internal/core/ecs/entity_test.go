package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityPool_CreateNeverReturnsZero(t *testing.T) {
	p := NewEntityPool()
	id := p.Create(HighUnit)

	assert.False(t, id.IsZero())
	assert.Equal(t, uint32(1), id.Index())
	assert.Equal(t, HighUnit, id.High())
	assert.True(t, id.IsNPC())
	assert.True(t, p.Alive(id))
}

func TestEntityPool_DestroyInvalidatesStaleIDs(t *testing.T) {
	p := NewEntityPool()
	first := p.Create(HighPlayer)
	p.Destroy(first)
	require.False(t, p.Alive(first))

	reused := p.Create(HighUnit)
	assert.Equal(t, first.Index(), reused.Index())
	assert.NotEqual(t, first.Generation(), reused.Generation())
	assert.False(t, p.Alive(first))
	assert.True(t, p.Alive(reused))

	// double destroy is a no-op
	p.Destroy(first)
	assert.True(t, p.Alive(reused))
}

func TestEntityID_FieldSlotsRoundTrip(t *testing.T) {
	id := NewEntityID(HighPet, 0xABCDEF, 7)
	back := EntityIDFromParts(id.Low(), id.High32())

	assert.Equal(t, id, back)
	assert.Equal(t, HighPet, back.High())
	assert.Equal(t, uint16(7), back.Generation())
}

func TestWorld_FlushDestroyQueueClearsComponents(t *testing.T) {
	w := NewWorld()
	store := NewPtrComponentStore[int]()
	w.Registry().Register(store)

	id := w.CreateEntity(HighUnit)
	v := 5
	store.Set(id, &v)

	w.MarkForDestruction(id)
	assert.Equal(t, 1, w.PendingDestruction())
	w.FlushDestroyQueue()

	assert.False(t, store.Has(id))
	assert.False(t, w.Alive(id))
	assert.Equal(t, 0, w.PendingDestruction())
}

func TestEach2_VisitsIntersectionOnly(t *testing.T) {
	a := NewPtrComponentStore[string]()
	b := NewPtrComponentStore[int]()
	p := NewEntityPool()
	x, y, z := p.Create(HighUnit), p.Create(HighUnit), p.Create(HighUnit)

	sx, sy := "x", "y"
	a.Set(x, &sx)
	a.Set(y, &sy)
	n1, n3 := 1, 3
	b.Set(x, &n1)
	b.Set(z, &n3)

	var seen []EntityID
	Each2(a, b, func(id EntityID, _ *string, _ *int) { seen = append(seen, id) })
	assert.Equal(t, []EntityID{x}, seen)
}

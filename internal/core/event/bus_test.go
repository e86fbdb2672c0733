package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_EventsArriveNextTick(t *testing.T) {
	b := NewBus()
	var got []UnitDied
	Subscribe(b, func(ev UnitDied) { got = append(got, ev) })

	Emit(b, UnitDied{Unit: 1})
	b.DispatchAll()
	assert.Empty(t, got, "emitted events must wait for a swap")
	assert.Equal(t, 1, Pending[UnitDied](b))

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []UnitDied{{Unit: 1}}, got)
	assert.Equal(t, 0, Pending[UnitDied](b))
}

func TestBus_HandlersAreTyped(t *testing.T) {
	b := NewBus()
	died, powered := 0, 0
	Subscribe(b, func(UnitDied) { died++ })
	Subscribe(b, func(PowerChanged) { powered++ })

	Emit(b, PowerChanged{Unit: 2, Value: 10})
	Emit(b, PowerChanged{Unit: 2, Value: 20})
	b.SwapBuffers()
	b.DispatchAll()

	assert.Equal(t, 0, died)
	assert.Equal(t, 2, powered)
}

func TestEmit_NilBusIsNoop(t *testing.T) {
	assert.NotPanics(t, func() { Emit[UnitDied](nil, UnitDied{}) })
}

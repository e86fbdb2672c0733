package update

import (
	"math/bits"

	"github.com/realmcore/server/internal/net/packet"
)

// WriteValues encodes a values block: the number of 32-bit mask words, the
// mask words, then the value of every set bit in ascending slot order.
// A full block (used on create) carries every non-zero slot, otherwise only
// dirty slots are sent.
func (f *Fields) WriteValues(w *packet.Writer, full bool) {
	mask := make([]uint32, len(f.dirty))
	if full {
		for i, v := range f.values {
			if v != 0 {
				mask[i/32] |= 1 << (uint(i) % 32)
			}
		}
	} else {
		copy(mask, f.dirty)
	}

	blocks := len(mask)
	for blocks > 0 && mask[blocks-1] == 0 {
		blocks--
	}
	w.WriteC(byte(blocks))
	for i := 0; i < blocks; i++ {
		w.WriteDU(mask[i])
	}
	for word := 0; word < blocks; word++ {
		m := mask[word]
		for m != 0 {
			bit := bits.TrailingZeros32(m)
			m &^= 1 << uint(bit)
			w.WriteDU(f.values[word*32+bit])
		}
	}
}

// ReadValues decodes a block written by WriteValues.
func ReadValues(r *packet.Reader) (map[Field]uint32, error) {
	blocks := int(r.ReadC())
	mask := make([]uint32, blocks)
	for i := range mask {
		mask[i] = r.ReadDU()
	}
	out := make(map[Field]uint32)
	for word, m := range mask {
		for m != 0 {
			bit := bits.TrailingZeros32(m)
			m &^= 1 << uint(bit)
			out[Field(word*32+bit)] = r.ReadDU()
		}
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

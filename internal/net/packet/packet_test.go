package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackedGUID_SkipsZeroBytes(t *testing.T) {
	w := NewWriter()
	w.WritePackedGUID(0xF130000000000005)

	// mask + the three non-zero bytes 0x05, 0x30, 0xF1
	require.Equal(t, 4, w.Len())
	assert.Equal(t, []byte{0xC1, 0x05, 0x30, 0xF1}, w.Bytes())

	r := NewReader(w.Bytes())
	assert.Equal(t, uint64(0xF130000000000005), r.ReadPackedGUID())
	assert.NoError(t, r.Err())
}

func TestPackedGUID_Zero(t *testing.T) {
	w := NewWriter()
	w.WritePackedGUID(0)
	assert.Equal(t, []byte{0}, w.Bytes())
}

func TestReader_ShortReadLatches(t *testing.T) {
	r := NewReader([]byte{1, 2})
	assert.Equal(t, uint32(0), r.ReadDU())
	assert.ErrorIs(t, r.Err(), ErrShortRead)
	assert.Equal(t, 0, r.Remaining())
}

func TestWriterWithOpcode(t *testing.T) {
	w := NewWriterWithOpcode(0x00A9)
	w.WriteS("ok")
	w.WriteF(1.5)

	r := NewReader(w.Bytes())
	assert.Equal(t, uint16(0x00A9), r.ReadH())
	assert.Equal(t, "ok", r.ReadS())
	assert.Equal(t, float32(1.5), r.ReadF())
}

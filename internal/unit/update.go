package unit

import "github.com/realmcore/server/internal/net/packet"

// WriteUpdate writes the packed GUID followed by the values block. A full
// block carries every non-zero slot, otherwise only what changed.
func (u *Unit) WriteUpdate(w *packet.Writer, full bool) {
	u.FlushPower()
	w.WritePackedGUID(uint64(u.id))
	u.fields.WriteValues(w, full)
}

func (u *Unit) HasUpdates() bool { return u.fields.HasChanges() }

// ClearUpdates resets the dirty mask after a flush.
func (u *Unit) ClearUpdates() { u.fields.ClearChanges() }

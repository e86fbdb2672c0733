package unit

import (
	"go.uber.org/zap"

	"github.com/realmcore/server/internal/constants"
	"github.com/realmcore/server/internal/spell"
)

// BYTES_0: race, class, gender, power type.

func (u *Unit) Race() constants.RaceID { return constants.RaceID(u.fields.Byte(FieldBytes0, 0)) }
func (u *Unit) SetRace(r constants.RaceID) {
	u.fields.SetByte(FieldBytes0, 0, byte(r))
}

func (u *Unit) Class() constants.ClassID { return constants.ClassID(u.fields.Byte(FieldBytes0, 1)) }
func (u *Unit) SetClass(c constants.ClassID) {
	u.fields.SetByte(FieldBytes0, 1, byte(c))
}

func (u *Unit) Gender() constants.GenderType {
	return constants.GenderType(u.fields.Byte(FieldBytes0, 2))
}

func (u *Unit) SetGender(g constants.GenderType) { u.fields.SetByte(FieldBytes0, 2, byte(g)) }

func (u *Unit) PowerType() constants.PowerType {
	return constants.PowerType(u.fields.Byte(FieldBytes0, 3))
}

// SetPowerType stores pt modulo the number of power types.
func (u *Unit) SetPowerType(pt constants.PowerType) {
	n := constants.PowerTypeCount
	u.fields.SetByte(FieldBytes0, 3, byte((int(pt)%n+n)%n))
	u.UpdateMaxPower()
}

func (u *Unit) RaceMask() uint32  { return 1 << (uint32(u.Race()) - 1) }
func (u *Unit) RaceMask2() uint32 { return 1 << uint32(u.Race()) }
func (u *Unit) ClassMask() uint32 { return 1 << (uint32(u.Class()) - 1) }
func (u *Unit) ClassMask2() uint32 {
	return 1 << uint32(u.Class())
}

// IsHorde reports whether the race belongs to the Horde.
func (u *Unit) IsHorde() bool {
	switch u.Race() {
	case constants.RaceOrc, constants.RaceUndead, constants.RaceTauren,
		constants.RaceTroll, constants.RaceGoblin, constants.RaceBloodElf:
		return true
	}
	return false
}

// BYTES_1: stand state, state flags, byte 3.

func (u *Unit) StandState() constants.StandState {
	return constants.StandState(u.fields.Byte(FieldBytes1, 0))
}

func (u *Unit) SetStandState(s constants.StandState) { u.fields.SetByte(FieldBytes1, 0, byte(s)) }

func (u *Unit) StateFlags() constants.StateFlag {
	return constants.StateFlag(u.fields.Byte(FieldBytes1, 2))
}

func (u *Unit) SetStateFlags(f constants.StateFlag) { u.fields.SetByte(FieldBytes1, 2, byte(f)) }

func (u *Unit) Bytes1_3() byte     { return u.fields.Byte(FieldBytes1, 3) }
func (u *Unit) SetBytes1_3(b byte) { u.fields.SetByte(FieldBytes1, 3, b) }

// BYTES_2: sheath, PvP state, pet state, shapeshift form.

func (u *Unit) SheathType() constants.SheathType {
	return constants.SheathType(u.fields.Byte(FieldBytes2, 0))
}

func (u *Unit) SetSheathType(s constants.SheathType) { u.fields.SetByte(FieldBytes2, 0, byte(s)) }

func (u *Unit) PvPState() constants.PvPState { return constants.PvPState(u.fields.Byte(FieldBytes2, 1)) }
func (u *Unit) SetPvPState(s constants.PvPState) {
	u.fields.SetByte(FieldBytes2, 1, byte(s))
}

func (u *Unit) PetState() constants.PetState { return constants.PetState(u.fields.Byte(FieldBytes2, 2)) }
func (u *Unit) SetPetState(s constants.PetState) {
	u.fields.SetByte(FieldBytes2, 2, byte(s))
}

func (u *Unit) ShapeshiftForm() constants.ShapeshiftForm {
	return constants.ShapeshiftForm(u.fields.Byte(FieldBytes2, 3))
}

func (u *Unit) ShapeshiftMask() constants.ShapeshiftMask { return u.ShapeshiftForm().Mask() }

// SetShapeshiftForm swaps the model and, for players, the action bar spells
// of the old form for those of the new one.
func (u *Unit) SetShapeshiftForm(form constants.ShapeshiftForm) {
	old := u.ShapeshiftForm()
	var handler *spell.Handler
	if u.ctx != nil {
		handler = u.ctx.Spells
	}

	if handler != nil && u.IsPlayer() {
		if oldEntry := handler.ShapeshiftEntry(old); oldEntry != nil {
			for _, id := range oldEntry.ActionBarSpells {
				u.Spells.Remove(id)
			}
		}
	}

	var entry *spell.ShapeshiftEntry
	if handler != nil {
		entry = handler.ShapeshiftEntry(form)
	}
	if entry != nil {
		model := entry.ModelIDAlliance
		if u.IsHorde() && entry.ModelIDHorde != 0 {
			model = entry.ModelIDHorde
		}
		if model != 0 {
			if err := u.SetDisplayID(model); err != nil {
				u.ctx.log().Warn("shapeshift model", zap.Uint32("form", uint32(form)), zap.Uint32("display_id", model), zap.Error(err))
			}
		}
		if u.IsPlayer() {
			for _, id := range entry.ActionBarSpells {
				if err := u.Spells.AddSpellByID(handler, id); err != nil {
					u.ctx.log().Warn("shapeshift action bar spell missing", zap.Uint32("spell_id", uint32(id)), zap.Error(err))
				}
			}
		}
	} else if old != constants.ShapeshiftNormal {
		if err := u.SetDisplayID(u.NativeDisplayID()); err != nil {
			u.ctx.log().Warn("restore native model", zap.Uint32("display_id", u.NativeDisplayID()), zap.Error(err))
		}
	}

	u.fields.SetByte(FieldBytes2, 3, byte(form))
}

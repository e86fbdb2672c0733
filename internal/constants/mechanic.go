package constants

// SpellMechanic classifies the crowd-control or utility nature of a spell.
type SpellMechanic uint32

const (
	MechanicNone SpellMechanic = iota
	MechanicCharmed
	MechanicDisoriented
	MechanicDisarmed
	MechanicDistracted
	MechanicFleeing
	MechanicGripped
	MechanicRooted
	MechanicSlowAttack
	MechanicSilenced
	MechanicAsleep
	MechanicSnared
	MechanicStunned
	MechanicFrozen
	MechanicIncapacitated
	MechanicBleeding
	MechanicHealing
	MechanicPolymorphed
	MechanicBanished
	MechanicShielded
	MechanicShackled
	MechanicMounted
	MechanicSeduced
	MechanicTurned
	MechanicHorrified
	MechanicInvulnerable
	MechanicInterrupted
	MechanicDazed
	MechanicDiscovery
	MechanicInvulnerable2
	MechanicSapped
	MechanicEnraged

	MechanicEnd
)

// IsNegative reports whether the mechanic impairs the unit it applies to.
func (m SpellMechanic) IsNegative() bool {
	switch m {
	case MechanicCharmed, MechanicDisoriented, MechanicDisarmed, MechanicDistracted,
		MechanicFleeing, MechanicGripped, MechanicRooted, MechanicSlowAttack,
		MechanicSilenced, MechanicAsleep, MechanicSnared, MechanicStunned,
		MechanicFrozen, MechanicIncapacitated, MechanicBleeding, MechanicPolymorphed,
		MechanicBanished, MechanicShackled, MechanicSeduced, MechanicTurned,
		MechanicHorrified, MechanicInterrupted, MechanicDazed, MechanicSapped:
		return true
	}
	return false
}

// DispelType is the dispel category of an aura (Magic, Curse, ...).
type DispelType uint32

const (
	DispelNone DispelType = iota
	DispelMagic
	DispelCurse
	DispelDisease
	DispelPoison
	DispelStealth
	DispelInvisibility
	DispelAll
)

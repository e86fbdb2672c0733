package spell

import "github.com/realmcore/server/internal/constants"

// Line is the ordered list of ranks of one ability.
type Line struct {
	ID      LineID
	Name    string
	ClassID constants.ClassID
	ranks   []*Spell
}

// NewLine links the given spells as consecutive ranks.
func NewLine(id LineID, name string, ranks ...*Spell) *Line {
	l := &Line{ID: id, Name: name}
	for _, sp := range ranks {
		l.Add(sp)
	}
	return l
}

// Add appends sp as the next rank.
func (l *Line) Add(sp *Spell) {
	if n := len(l.ranks); n > 0 {
		prev := l.ranks[n-1]
		prev.NextRank = sp
		sp.PreviousRank = prev
	}
	sp.Line = l
	if l.ClassID == constants.ClassNone {
		l.ClassID = sp.ClassID
	}
	l.ranks = append(l.ranks, sp)
}

func (l *Line) Spells() []*Spell { return l.ranks }
func (l *Line) Count() int       { return len(l.ranks) }

func (l *Line) First() *Spell {
	if len(l.ranks) == 0 {
		return nil
	}
	return l.ranks[0]
}

func (l *Line) HighestRank() *Spell {
	if len(l.ranks) == 0 {
		return nil
	}
	return l.ranks[len(l.ranks)-1]
}

// Rank returns the 1-based rank, or nil.
func (l *Line) Rank(n int) *Spell {
	if n < 1 || n > len(l.ranks) {
		return nil
	}
	return l.ranks[n-1]
}

package spell

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/realmcore/server/internal/constants"
)

var (
	ErrUnknownSpell = errors.New("unknown spell")
	ErrUnknownLine  = errors.New("unknown spell line")
)

// ShapeshiftEntry describes one shapeshift form.
type ShapeshiftEntry struct {
	Form            constants.ShapeshiftForm
	Name            string
	ModelIDAlliance uint32
	ModelIDHorde    uint32
	// ActionBarSpells replace the owner's action bar while in the form.
	ActionBarSpells []ID
}

// Handler holds every spell record and the lines they belong to.
type Handler struct {
	spells         map[ID]*Spell
	lines          map[LineID]*Line
	shapeshifts    map[constants.ShapeshiftForm]*ShapeshiftEntry
	requiringTools []*Spell
	meleeRange     float32
	log            *zap.Logger
	initialized    bool
	finalized      bool
}

func NewHandler(log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		spells:      make(map[ID]*Spell),
		lines:       make(map[LineID]*Line),
		shapeshifts: make(map[constants.ShapeshiftForm]*ShapeshiftEntry),
		log:         log,
	}
}

// Add registers sp, replacing any spell with the same id.
func (h *Handler) Add(sp *Spell) {
	h.spells[sp.ID] = sp
}

func (h *Handler) Get(id ID) *Spell {
	return h.spells[id]
}

// MustGet panics when id is unknown. Only for content definitions that
// reference spells by constant.
func (h *Handler) MustGet(id ID) *Spell {
	sp := h.spells[id]
	if sp == nil {
		panic(fmt.Sprintf("spell %d: %v", id, ErrUnknownSpell))
	}
	return sp
}

func (h *Handler) Count() int { return len(h.spells) }

// All returns the spells ordered by id.
func (h *Handler) All() []*Spell {
	out := make([]*Spell, 0, len(h.spells))
	for _, sp := range h.spells {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (h *Handler) AddLine(l *Line) { h.lines[l.ID] = l }

func (h *Handler) Line(id LineID) *Line { return h.lines[id] }

// Lines returns every line ordered by id.
func (h *Handler) Lines() []*Line {
	out := make([]*Line, 0, len(h.lines))
	for _, l := range h.lines {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Apply calls fn on each of the given spells. Unknown ids are reported
// together after the known ones were handled.
func (h *Handler) Apply(fn func(*Spell), ids ...ID) error {
	var errs []error
	for _, id := range ids {
		sp := h.spells[id]
		if sp == nil {
			errs = append(errs, fmt.Errorf("apply to spell %d: %w", id, ErrUnknownSpell))
			continue
		}
		fn(sp)
	}
	return errors.Join(errs...)
}

// ApplyLines calls fn on every rank of the given lines.
func (h *Handler) ApplyLines(fn func(*Spell), lines ...LineID) error {
	var errs []error
	for _, id := range lines {
		l := h.lines[id]
		if l == nil {
			errs = append(errs, fmt.Errorf("apply to line %s: %w", id, ErrUnknownLine))
			continue
		}
		for _, sp := range l.Spells() {
			fn(sp)
		}
	}
	return errors.Join(errs...)
}

// SetMeleeRange sets the range Finalize gives spells without a max range.
func (h *Handler) SetMeleeRange(r float32) { h.meleeRange = r }

func (h *Handler) AddShapeshiftEntry(e *ShapeshiftEntry) { h.shapeshifts[e.Form] = e }

func (h *Handler) ShapeshiftEntry(f constants.ShapeshiftForm) *ShapeshiftEntry {
	return h.shapeshifts[f]
}

// SpellsRequiringTools lists spells with a required tool, filled by Finalize.
func (h *Handler) SpellsRequiringTools() []*Spell { return h.requiringTools }

// Initialize runs the first pass over every spell.
func (h *Handler) Initialize() {
	if h.initialized {
		return
	}
	h.initialized = true
	for _, sp := range h.All() {
		sp.Initialize(h)
		sp.FigureSpellFieldsByNamesOrIDs()
	}
	h.log.Debug("spells initialized", zap.Int("count", len(h.spells)))
}

// Finalize runs the second pass over every spell. Content fixes must have
// been applied before.
func (h *Handler) Finalize() {
	if h.finalized {
		return
	}
	h.finalized = true
	invalid := 0
	for _, sp := range h.All() {
		sp.Init2(h)
		for _, e := range sp.Effects {
			if e.IsInvalid {
				invalid++
			}
		}
	}
	if invalid > 0 {
		h.log.Warn("spell effects with missing trigger spells", zap.Int("count", invalid))
	}
	h.log.Info("spells finalized",
		zap.Int("spells", len(h.spells)),
		zap.Int("lines", len(h.lines)),
		zap.Int("tools", len(h.requiringTools)))
}

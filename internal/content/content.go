// Package content wires the scripted game content into the static tables:
// spell fixes, dungeon NPC setups and class checks.
package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/realmcore/server/internal/class"
	"github.com/realmcore/server/internal/instance"
	"github.com/realmcore/server/internal/npc"
	"github.com/realmcore/server/internal/spell"
)

// Pass orders the initialisation steps. Every step of a pass runs before
// the first step of the next one.
type Pass int

const (
	First Pass = iota + 1
	Second
	Third
)

func (p Pass) String() string {
	switch p {
	case First:
		return "first"
	case Second:
		return "second"
	case Third:
		return "third"
	}
	return fmt.Sprintf("pass(%d)", int(p))
}

// ClassScripts reports which classes have scripted formulas.
type ClassScripts interface {
	HasClass(classID int) bool
}

// Deps is what content steps change.
type Deps struct {
	Spells   *spell.Handler
	NPCs     *npc.Manager
	Dungeons *instance.Registry
	Classes  *class.Registry
	Scripts  ClassScripts
	Log      *zap.Logger
}

// Step is one named initialisation function.
type Step struct {
	Pass Pass
	Name string
	Run  func(ctx context.Context, d *Deps) error
}

// Initializer runs content steps pass by pass, in registration order
// within a pass.
type Initializer struct {
	steps []Step
}

func New() *Initializer { return &Initializer{} }

func (in *Initializer) Add(pass Pass, name string, fn func(ctx context.Context, d *Deps) error) {
	in.steps = append(in.steps, Step{Pass: pass, Name: name, Run: fn})
}

func (in *Initializer) Steps() []Step { return append([]Step(nil), in.steps...) }

// Default returns the initializer with all built-in content.
func Default() *Initializer {
	in := New()
	in.Add(First, "classes", checkClasses)
	in.Add(First, "register dungeons", registerDungeons)
	in.Add(Second, "priest fixes", FixPriest)
	in.Add(Second, "dungeon content", initDungeons)
	in.Add(Third, "summon entries", checkSummons)
	return in
}

// Run runs the built-in content.
func Run(ctx context.Context, d *Deps) error {
	return Default().Run(ctx, d)
}

// Run executes every step. Failing steps do not stop the others; their
// errors are joined. Cancelling ctx stops before the next step.
func (in *Initializer) Run(ctx context.Context, d *Deps) error {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	var errs []error
	for _, pass := range []Pass{First, Second, Third} {
		for _, st := range in.steps {
			if st.Pass != pass {
				continue
			}
			if err := ctx.Err(); err != nil {
				return errors.Join(append(errs, err)...)
			}
			start := time.Now()
			if err := st.Run(ctx, d); err != nil {
				errs = append(errs, fmt.Errorf("%s pass, %s: %w", pass, st.Name, err))
				continue
			}
			d.Log.Debug("content step done",
				zap.Stringer("pass", pass), zap.String("step", st.Name), zap.Duration("took", time.Since(start)))
		}
	}
	return errors.Join(errs...)
}

func checkClasses(_ context.Context, d *Deps) error {
	if d.Classes == nil {
		return nil
	}
	for _, c := range d.Classes.All() {
		if d.Scripts == nil || !d.Scripts.HasClass(int(c.ID)) {
			d.Log.Debug("class formulas use defaults", zap.String("class", c.Name))
		}
	}
	return nil
}

func registerDungeons(_ context.Context, d *Deps) error {
	if d.Dungeons == nil {
		return nil
	}
	_, err := d.Dungeons.Register(RagefireChasmID, "Ragefire Chasm", RagefireChasmMap, InitRagefireChasm)
	return err
}

func initDungeons(_ context.Context, d *Deps) error {
	if d.Dungeons == nil {
		return nil
	}
	return d.Dungeons.Initialize()
}

// checkSummons verifies that every creature summoned by a spell has an
// entry.
func checkSummons(_ context.Context, d *Deps) error {
	if d.NPCs == nil || d.Spells == nil {
		return nil
	}
	var errs []error
	for _, sp := range d.Spells.All() {
		for _, eff := range sp.Effects {
			if eff.Type != spell.EffectSummon {
				continue
			}
			if _, err := d.NPCs.MustEntry(uint32(eff.MiscValue)); err != nil {
				errs = append(errs, fmt.Errorf("summon of %s: %w", sp, err))
			}
		}
	}
	return errors.Join(errs...)
}

package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for game logic execution.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Core scripts define the registration helpers, load them first.
	corePath := filepath.Join(scriptsDir, "core")
	if err := e.loadDir(corePath); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load core scripts: %w", err)
	}

	for _, sub := range []string{"class", "npc"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DoString runs a chunk of Lua. Used by tests and the console.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// --- Class Bridge ---

// StatContext is the unit state a class formula reads.
type StatContext struct {
	Level     int
	Strength  int
	Agility   int
	Stamina   int
	Intellect int
	Spirit    int
}

func (e *Engine) statTable(ctx StatContext) *lua.LTable {
	t := e.vm.NewTable()
	t.RawSetString("level", lua.LNumber(ctx.Level))
	t.RawSetString("str", lua.LNumber(ctx.Strength))
	t.RawSetString("agi", lua.LNumber(ctx.Agility))
	t.RawSetString("sta", lua.LNumber(ctx.Stamina))
	t.RawSetString("int", lua.LNumber(ctx.Intellect))
	t.RawSetString("spi", lua.LNumber(ctx.Spirit))
	return t
}

// RegenContext is the unit state a regen formula reads.
type RegenContext struct {
	StatContext
	InCombat bool
	Power    int
	MaxPower int
}

func (e *Engine) regenTable(ctx RegenContext) *lua.LTable {
	t := e.statTable(ctx.StatContext)
	t.RawSetString("in_combat", lua.LBool(ctx.InCombat))
	t.RawSetString("power", lua.LNumber(ctx.Power))
	t.RawSetString("max_power", lua.LNumber(ctx.MaxPower))
	return t
}

// classDef returns CLASSES[classID] as registered by register_class.
func (e *Engine) classDef(classID int) *lua.LTable {
	classes, ok := e.vm.GetGlobal("CLASSES").(*lua.LTable)
	if !ok {
		return nil
	}
	def, _ := classes.RawGetInt(classID).(*lua.LTable)
	return def
}

// HasClass reports whether a script registered the class.
func (e *Engine) HasClass(classID int) bool {
	return e.classDef(classID) != nil
}

// ClassPowerType returns the power_type field of the class definition.
func (e *Engine) ClassPowerType(classID int) (int, bool) {
	def := e.classDef(classID)
	if def == nil {
		return 0, false
	}
	v, ok := def.RawGetString("power_type").(lua.LNumber)
	return int(v), ok
}

// callClassFunc calls CLASSES[classID][name](args...). ok is false when the
// class or function is not defined or the call failed.
func (e *Engine) callClassFunc(classID int, name string, args ...lua.LValue) (lua.LValue, bool) {
	def := e.classDef(classID)
	if def == nil {
		return lua.LNil, false
	}
	fn, isFn := def.RawGetString(name).(*lua.LFunction)
	if !isFn {
		return lua.LNil, false
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua class call error",
			zap.Int("class", classID), zap.String("func", name), zap.Error(err))
		return lua.LNil, false
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return result, true
}

func (e *Engine) callClassInt(classID int, name string, args ...lua.LValue) (int, bool) {
	v, ok := e.callClassFunc(classID, name, args...)
	if !ok {
		return 0, false
	}
	n, isNum := v.(lua.LNumber)
	if !isNum {
		e.log.Warn("lua class func returned non-number",
			zap.Int("class", classID), zap.String("func", name), zap.String("type", v.Type().String()))
		return 0, false
	}
	return int(n), true
}

// CalcMeleeAP calls CLASSES[id].melee_ap(ctx).
func (e *Engine) CalcMeleeAP(classID int, ctx StatContext) (int, bool) {
	return e.callClassInt(classID, "melee_ap", e.statTable(ctx))
}

// CalcRangedAP calls CLASSES[id].ranged_ap(ctx).
func (e *Engine) CalcRangedAP(classID int, ctx StatContext) (int, bool) {
	return e.callClassInt(classID, "ranged_ap", e.statTable(ctx))
}

// CalcMagicCrit calls CLASSES[id].magic_crit(ctx). The result is a percentage.
func (e *Engine) CalcMagicCrit(classID int, ctx StatContext) (float32, bool) {
	v, ok := e.callClassFunc(classID, "magic_crit", e.statTable(ctx))
	if !ok {
		return 0, false
	}
	n, isNum := v.(lua.LNumber)
	return float32(n), isNum
}

// CalcPowerRegen calls CLASSES[id].power_regen(ctx). Negative values decay power.
func (e *Engine) CalcPowerRegen(classID int, ctx RegenContext) (int, bool) {
	return e.callClassInt(classID, "power_regen", e.regenTable(ctx))
}

// CalcHealthRegen calls CLASSES[id].health_regen(ctx).
func (e *Engine) CalcHealthRegen(classID int, ctx RegenContext) (int, bool) {
	return e.callClassInt(classID, "health_regen", e.regenTable(ctx))
}

// PowerForLevel calls CLASSES[id].power_for_level(level, computed).
func (e *Engine) PowerForLevel(classID, level, computed int) (int, bool) {
	return e.callClassInt(classID, "power_for_level", lua.LNumber(level), lua.LNumber(computed))
}

// --- NPC Bridge ---

// NpcScaleContext is passed to the npc scaling hook.
type NpcScaleContext struct {
	EntryID   int
	Level     int
	MinLevel  int
	MaxLevel  int
	MaxHealth int
	BasePower int
}

// ScaleResult is the output of scale_npc.
type ScaleResult struct {
	MaxHealth int
	BasePower int
}

// ScaleNpc calls Lua scale_npc(ctx). Without the hook, health and power are
// returned unchanged.
func (e *Engine) ScaleNpc(ctx NpcScaleContext) ScaleResult {
	def := ScaleResult{MaxHealth: ctx.MaxHealth, BasePower: ctx.BasePower}
	fn := e.vm.GetGlobal("scale_npc")
	if fn == lua.LNil {
		return def
	}

	t := e.vm.NewTable()
	t.RawSetString("entry", lua.LNumber(ctx.EntryID))
	t.RawSetString("level", lua.LNumber(ctx.Level))
	t.RawSetString("min_level", lua.LNumber(ctx.MinLevel))
	t.RawSetString("max_level", lua.LNumber(ctx.MaxLevel))
	t.RawSetString("max_health", lua.LNumber(ctx.MaxHealth))
	t.RawSetString("base_power", lua.LNumber(ctx.BasePower))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua scale_npc error", zap.Error(err))
		return def
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return def
	}
	return ScaleResult{MaxHealth: lInt(rt, "max_health"), BasePower: lInt(rt, "base_power")}
}

// RegenInterval calls Lua get_regen_interval() for the tick count between
// regen passes.
func (e *Engine) RegenInterval() int {
	return e.callIntFunc("get_regen_interval")
}

// --- Lua helpers ---

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// callIntFunc calls a Lua function with int args and returns an int result.
func (e *Engine) callIntFunc(name string, args ...int) int {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("name", name))
		return 0
	}

	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = lua.LNumber(a)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return int(lua.LVAsNumber(result))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

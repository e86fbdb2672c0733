package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/realmcore/server/internal/class"
	"github.com/realmcore/server/internal/config"
	"github.com/realmcore/server/internal/content"
	coresys "github.com/realmcore/server/internal/core/system"
	"github.com/realmcore/server/internal/data"
	"github.com/realmcore/server/internal/instance"
	"github.com/realmcore/server/internal/npc"
	"github.com/realmcore/server/internal/persist"
	"github.com/realmcore/server/internal/scripting"
	"github.com/realmcore/server/internal/spell"
	"github.com/realmcore/server/internal/system"
	"github.com/realmcore/server/internal/unit"
	"github.com/realmcore/server/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string, serverID int) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             Realm Core  v0.1.0            \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mServer:\033[0m %s \033[90m(id: %d)\033[0m\n\n", serverName, serverID)
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name, cfg.Server.ID)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Static tables
	printSection("Data")
	yamlPath := func(name string) string { return filepath.Join(cfg.Data.YAMLDir, name) }

	spellList, err := data.LoadSpellList(yamlPath("spells.yaml"))
	if err != nil {
		return fmt.Errorf("load spells: %w", err)
	}
	npcTable, err := data.LoadNpcList(yamlPath("npcs.yaml"))
	if err != nil {
		return fmt.Errorf("load npcs: %w", err)
	}
	mapTable, err := data.LoadMapData(yamlPath("maps.yaml"))
	if err != nil {
		return fmt.Errorf("load maps: %w", err)
	}
	classList, err := data.LoadClassList(yamlPath("classes.yaml"))
	if err != nil {
		return fmt.Errorf("load classes: %w", err)
	}
	modelList, err := data.LoadModelList(yamlPath("models.yaml"))
	if err != nil {
		return fmt.Errorf("load models: %w", err)
	}
	printStat("Spells", len(spellList.Spells))
	printStat("NPC entries", npcTable.Count())
	printStat("Maps", mapTable.Count())
	printStat("Models", len(modelList.Models))

	// 4. Lua formulas
	lua, err := scripting.NewEngine(cfg.Data.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("init scripting: %w", err)
	}
	defer lua.Close()
	classes, err := class.NewRegistry(classList, lua, log)
	if err != nil {
		return fmt.Errorf("build classes: %w", err)
	}
	printStat("Classes", classes.Count())

	// 5. Spells (first pass), content, spells (second pass)
	spells, err := spell.BuildHandler(spellList, log)
	if err != nil {
		return fmt.Errorf("build spells: %w", err)
	}
	spells.SetMeleeRange(cfg.Spells.DefaultMeleeRange)
	spells.Initialize()

	npcs := npc.NewManager(npcTable, spells, lua, log)
	dungeons := instance.NewRegistry(mapTable, npcs, log)
	deps := &content.Deps{
		Spells:   spells,
		NPCs:     npcs,
		Dungeons: dungeons,
		Classes:  classes,
		Scripts:  lua,
		Log:      log,
	}
	if err := content.Run(ctx, deps); err != nil {
		log.Warn("content initialized with errors", zap.Error(err))
	}
	spells.Finalize()
	printOK("Content initialized")
	fmt.Println()

	// 6. Optional database
	var (
		cooldownRepo *persist.CooldownRepo
		spellStore   system.SpellStore
	)
	if cfg.Database.Enabled {
		printSection("Database")
		dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(dbCtx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		if err := persist.RunMigrations(dbCtx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK("Migrations applied")
		fmt.Println()

		cooldownRepo = persist.NewCooldownRepo(db)
		spellStore = persist.NewSpellRepo(db)
	}

	// 7. World
	params := world.Params{
		Spells:      spells,
		NPCs:        npcs,
		Dungeons:    dungeons,
		Classes:     classes,
		Models:      unit.NewModels(modelList.Models),
		Factions:    unit.NewFactions(modelList.Factions),
		Rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
		CorpseDelay: cfg.World.CorpseDelay,
		Log:         log,
	}
	if cooldownRepo != nil {
		params.Cooldowns = cooldownRepo
	}
	ws := world.NewState(params)

	printSection("World")
	for _, d := range dungeons.All() {
		inst, err := ws.CreateInstance(d.MapID)
		if err != nil && inst == nil {
			return fmt.Errorf("create instance of %s: %w", d.ID, err)
		}
		if err != nil {
			log.Warn("instance spawned with errors", zap.String("dungeon", d.ID), zap.Error(err))
		}
		spawned := 0
		ws.NpcsIn(world.Location{MapID: d.MapID, InstanceID: inst.ID}, func(*npc.NPC) { spawned++ })
		printStat(d.Name, spawned)
	}
	printStat("Instances", len(dungeons.All()))
	printStat("NPCs spawned", ws.NpcCount())
	fmt.Println()

	// 8. Systems
	tickRate := cfg.World.TickRate
	persistSys := system.NewCooldownPersistSystem(ws, spellStore, log, int(cfg.World.SaveInterval/tickRate))
	regenSys := system.NewRegenSystem(ws, lua, tickRate, cfg.World.RegenInterval)

	runner := coresys.NewRunner()
	runner.Register(system.NewEventDispatchSystem(ws.Bus()))
	runner.Register(system.NewNpcAISystem(ws))
	runner.Register(system.NewAuraTickSystem(ws))
	runner.Register(regenSys)
	runner.Register(system.NewUpdateFlushSystem(ws, system.LogSink{Log: log}, cfg.World.PowerUpdateInterval))
	runner.Register(persistSys)
	runner.Register(system.NewCleanupSystem(ws))

	// 9. Game loop
	printSection("Ready")
	printReady(fmt.Sprintf("Game loop started (tick: %s, regen every %d ticks)", tickRate, regenSys.Interval()))
	fmt.Println()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ticker := time.NewTicker(tickRate)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ws.Advance(tickRate)
				runner.Tick(tickRate)
			case <-gctx.Done():
				log.Info("game loop stopping")
				saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := persistSys.SaveAll(saveCtx); err != nil {
					return fmt.Errorf("final save: %w", err)
				}
				return nil
			}
		}
	})
	if cooldownRepo != nil {
		g.Go(func() error {
			return pruneCooldowns(gctx, cooldownRepo, cfg.World.SaveInterval, log)
		})
	}

	err = g.Wait()
	log.Info("server stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pruneCooldowns deletes stored cooldowns that ran out, once per interval.
func pruneCooldowns(ctx context.Context, repo *persist.CooldownRepo, every time.Duration, log *zap.Logger) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx, time.Now())
			if err != nil {
				log.Warn("prune cooldowns", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Debug("expired cooldowns pruned", zap.Int64("rows", n))
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

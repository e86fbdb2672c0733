// spelldump writes the finalized spell records or NPC entries to a text file
// after all content fixes ran.
//
// Usage:
//
//	go run ./cmd/spelldump spells [-o spells.txt]
//	go run ./cmd/spelldump npcs [-o npcs.txt]
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/realmcore/server/internal/class"
	"github.com/realmcore/server/internal/config"
	"github.com/realmcore/server/internal/content"
	"github.com/realmcore/server/internal/data"
	"github.com/realmcore/server/internal/instance"
	"github.com/realmcore/server/internal/npc"
	"github.com/realmcore/server/internal/scripting"
	"github.com/realmcore/server/internal/spell"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// dumper writes one record.
type dumper interface {
	Dump(w io.Writer, indent string)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "spelldump",
		Short:        "Dump spells and NPC entries after content initialization",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringP("config", "c", config.Path(), "Server config file")
	root.PersistentFlags().StringP("filter", "f", "", "Only dump records whose name contains this text")

	root.AddCommand(
		newDumpCmd("spells", "spells.txt", func(d *content.Deps) []dumper {
			var out []dumper
			for _, sp := range d.Spells.All() {
				out = append(out, sp)
			}
			return out
		}),
		newDumpCmd("npcs", "npcs.txt", func(d *content.Deps) []dumper {
			var out []dumper
			for _, e := range d.NPCs.Entries() {
				out = append(out, e)
			}
			return out
		}),
	)
	return root
}

func newDumpCmd(kind, defaultOut string, records func(*content.Deps) []dumper) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   kind,
		Short: fmt.Sprintf("Write every %s record to a file", strings.TrimSuffix(kind, "s")),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			filter, _ := cmd.Flags().GetString("filter")

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := zap.NewNop()
			deps, closeFn, err := loadContent(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer closeFn()

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()

			n, err := writeDump(f, kind, filter, records(deps))
			if err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d %s to %s\n", n, kind, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", defaultOut, "Output file")
	return cmd
}

// writeDump writes a title line and every record whose first dumped line
// contains filter, ignoring case. It returns how many records were written.
func writeDump(w io.Writer, kind, filter string, records []dumper) (int, error) {
	bw := bufio.NewWriter(w)
	title := cases.Title(language.English).String(kind)
	fmt.Fprintf(bw, "# %s\n\n", title)

	fold := cases.Fold()
	needle := fold.String(filter)
	n := 0
	for _, r := range records {
		var sb strings.Builder
		r.Dump(&sb, "")
		text := sb.String()
		if needle != "" {
			head, _, _ := strings.Cut(text, "\n")
			if !strings.Contains(fold.String(head), needle) {
				continue
			}
		}
		bw.WriteString(text)
		bw.WriteString("\n")
		n++
	}
	return n, bw.Flush()
}

// loadContent builds the spell handler and NPC entries the way the server
// does at boot.
func loadContent(ctx context.Context, cfg *config.Config, log *zap.Logger) (*content.Deps, func(), error) {
	yamlPath := func(name string) string { return filepath.Join(cfg.Data.YAMLDir, name) }

	spellList, err := data.LoadSpellList(yamlPath("spells.yaml"))
	if err != nil {
		return nil, nil, fmt.Errorf("load spells: %w", err)
	}
	npcTable, err := data.LoadNpcList(yamlPath("npcs.yaml"))
	if err != nil {
		return nil, nil, fmt.Errorf("load npcs: %w", err)
	}
	mapTable, err := data.LoadMapData(yamlPath("maps.yaml"))
	if err != nil {
		return nil, nil, fmt.Errorf("load maps: %w", err)
	}
	classList, err := data.LoadClassList(yamlPath("classes.yaml"))
	if err != nil {
		return nil, nil, fmt.Errorf("load classes: %w", err)
	}

	lua, err := scripting.NewEngine(cfg.Data.ScriptsDir, log)
	if err != nil {
		return nil, nil, fmt.Errorf("init scripting: %w", err)
	}
	classes, err := class.NewRegistry(classList, lua, log)
	if err != nil {
		lua.Close()
		return nil, nil, fmt.Errorf("build classes: %w", err)
	}

	spells, err := spell.BuildHandler(spellList, log)
	if err != nil {
		lua.Close()
		return nil, nil, fmt.Errorf("build spells: %w", err)
	}
	spells.SetMeleeRange(cfg.Spells.DefaultMeleeRange)
	spells.Initialize()

	npcs := npc.NewManager(npcTable, spells, lua, log)
	deps := &content.Deps{
		Spells:   spells,
		NPCs:     npcs,
		Dungeons: instance.NewRegistry(mapTable, npcs, log),
		Classes:  classes,
		Scripts:  lua,
		Log:      log,
	}
	if err := content.Run(ctx, deps); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	spells.Finalize()
	return deps, lua.Close, nil
}

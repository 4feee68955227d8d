package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erdcraft/erdcraft/pkg/layout"
	"github.com/erdcraft/erdcraft/pkg/schema"
	"github.com/erdcraft/erdcraft/pkg/viewstate"
)

// newArrangeCmd creates the arrange command, the main layout entry point.
func newArrangeCmd() *cobra.Command {
	var (
		output     string
		statePath  string
		tuningPath string
		force      bool
		collapsed  bool
	)

	cmd := &cobra.Command{
		Use:   "arrange [schema.json]",
		Short: "Compute diagram positions for a schema",
		Long: `Compute diagram positions for a schema.

The arrange command reads a schema file (tables, refs, groups) and computes
a position and size for every table. With --state, previously saved
positions and pins are loaded first: pinned tables keep their place and only
the rest is re-arranged. With --force, all positions and pins are discarded
and the layout is recomputed from scratch.

The output is a layout.json file mapping table IDs to placements, consumable
by the 'export' command or any canvas renderer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArrange(cmd.Context(), args[0], output, statePath, tuningPath, force, collapsed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&statePath, "state", "", "view-state file with saved positions and pins")
	cmd.Flags().StringVar(&tuningPath, "tuning", "", "TOML file overriding layout tuning constants")
	cmd.Flags().BoolVar(&force, "force", false, "ignore saved positions and pins, re-arrange everything")
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "size tables as collapsed headers without field rows")

	return cmd
}

func runArrange(ctx context.Context, input, output, statePath, tuningPath string, force, collapsed bool) error {
	s, err := schema.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load schema %s: %w", input, err)
	}

	tuning, err := loadTuning(tuningPath)
	if err != nil {
		return err
	}

	engine := layout.NewEngine(tuning, loggerFromContext(ctx))
	g := s.LayoutGraph()

	view := viewstate.NewView()
	if statePath != "" {
		view, err = viewstate.Load(statePath)
		if err != nil {
			return err
		}
		viewstate.Apply(&g, view)
	}

	var result layout.Result
	if force {
		result = engine.ForceArrange(g, collapsed)
	} else {
		result = engine.ComputeLayout(g, collapsed)
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}
	if err := writeResultFile(result, outputPath); err != nil {
		return err
	}

	if statePath != "" {
		if force {
			view.Replace(result)
		} else {
			view.Merge(result)
		}
		if err := view.Save(statePath); err != nil {
			return err
		}
	}

	printSuccess("Arrange complete")
	printFile(outputPath)
	printStats(len(s.Tables), len(s.Refs))
	printNextStep("Export", "erdcraft export "+input+" --layout "+outputPath)
	return nil
}

func loadTuning(path string) (layout.Tuning, error) {
	if path == "" {
		return layout.DefaultTuning(), nil
	}
	return layout.LoadTuning(path)
}

func writeResultFile(r layout.Result, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write layout %s: %w", path, err)
	}
	return nil
}

func readResultFile(path string) (layout.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	var r layout.Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	return r, nil
}

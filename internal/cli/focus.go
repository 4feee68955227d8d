package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erdcraft/erdcraft/pkg/errors"
	"github.com/erdcraft/erdcraft/pkg/layout"
	"github.com/erdcraft/erdcraft/pkg/schema"
)

// focusDocument is the focus command's output: the placements plus the set
// of included table IDs, so a renderer knows what to hide.
type focusDocument struct {
	Center     string        `json:"center"`
	Included   []string      `json:"included"`
	Placements layout.Result `json:"placements"`
}

// newFocusCmd creates the focus command.
func newFocusCmd() *cobra.Command {
	var (
		output     string
		center     string
		tuningPath string
		collapsed  bool
	)

	cmd := &cobra.Command{
		Use:   "focus [schema.json]",
		Short: "Lay out one table and its direct references",
		Long: `Lay out one table and its direct references.

The focus command computes the induced subgraph of the center table plus
every table connected to it by a single reference, arranges it, and refines
the arrangement to minimize edge crossings. The output lists the included
table IDs so a renderer can hide everything else.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFocus(cmd.Context(), args[0], center, output, tuningPath, collapsed)
		},
	}

	cmd.Flags().StringVar(&center, "center", "", "table ID to focus on (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.focus.json)")
	cmd.Flags().StringVar(&tuningPath, "tuning", "", "TOML file overriding layout tuning constants")
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "size tables as collapsed headers without field rows")
	_ = cmd.MarkFlagRequired("center")

	return cmd
}

func runFocus(ctx context.Context, input, center, output, tuningPath string, collapsed bool) error {
	s, err := schema.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load schema %s: %w", input, err)
	}
	if _, ok := s.Table(center); !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "table %q not found in %s", center, input)
	}

	tuning, err := loadTuning(tuningPath)
	if err != nil {
		return err
	}

	engine := layout.NewEngine(tuning, loggerFromContext(ctx))
	result, included := engine.ComputeFocus(s.LayoutGraph(), center, collapsed)

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".focus.json"
	}

	doc := focusDocument{Center: center, Included: included, Placements: result}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal focus layout: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write focus layout %s: %w", outputPath, err)
	}

	printSuccess(fmt.Sprintf("Focus on %s complete", center))
	printFile(outputPath)
	printStats(len(included), len(s.Refs))
	return nil
}

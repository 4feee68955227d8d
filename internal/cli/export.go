package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erdcraft/erdcraft/pkg/errors"
	"github.com/erdcraft/erdcraft/pkg/render"
	"github.com/erdcraft/erdcraft/pkg/schema"
)

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	var (
		output     string
		layoutPath string
		format     string
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "export [schema.json]",
		Short: "Export a schema as DOT, SVG, or PNG",
		Long: `Export a schema as DOT, SVG, or PNG.

Without --layout, the diagram is left to Graphviz's dot engine and groups
become cluster subgraphs. With --layout, every table is pinned to the
position the arrange (or focus) command computed and the neato engine
rasterizes exactly that geometry; tables absent from the layout file are
omitted, which hides everything outside a focus subgraph.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), args[0], layoutPath, output, format, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVar(&layoutPath, "layout", "", "layout file produced by arrange or focus")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: dot, svg, png")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include field rows in table labels")

	return cmd
}

func runExport(ctx context.Context, input, layoutPath, output, format string, detailed bool) error {
	s, err := schema.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load schema %s: %w", input, err)
	}

	opts := render.Options{Detailed: detailed}
	if layoutPath != "" {
		opts.Result, err = readResultFile(layoutPath)
		if err != nil {
			return err
		}
	}
	dot := render.ToDOT(s, opts)
	positioned := opts.Result != nil

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		if data, err = render.RenderSVG(ctx, dot, positioned); err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
	case "png":
		if data, err = render.RenderPNG(ctx, dot, positioned); err != nil {
			return fmt.Errorf("render png: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want dot, svg, or png)", format)
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + "." + format
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	printSuccess("Export complete")
	printFile(outputPath)
	return nil
}

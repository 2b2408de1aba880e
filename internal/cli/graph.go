package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/brain-sim/antmaze/pkg/cache"
	"github.com/brain-sim/antmaze/pkg/document"
	"github.com/brain-sim/antmaze/pkg/maze"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output  string // output file path, empty derives from input
	format  string // dot, svg or png
	noCache bool   // bypass the render cache
}

// graphCommand creates the graph command for rendering level structure.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: formatDOT}

	cmd := &cobra.Command{
		Use:   "graph [file]",
		Short: "Render the level/connector structure of a 3D maze",
		Long: `Render the level/connector structure of a 3D maze.

Levels become graph nodes and connectors become edges, labelled with
their kind and coordinates. The default output is Graphviz DOT source;
--format svg or png renders it in-process. Rendered artifacts are cached
by document content hash; --no-cache bypasses the cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateGraphFormat(opts.format); err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default derived from input)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot (default), svg, png")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func validateGraphFormat(f string) error {
	switch f {
	case formatDOT, formatSVG, formatPNG:
		return nil
	}
	return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', or 'png')", f)
}

func (c *CLI) runGraph(ctx context.Context, input string, opts *graphOpts) error {
	logger := loggerFromContext(ctx)

	m, err := document.Import(input)
	if err != nil {
		return err
	}
	dot, err := levelDOT(m)
	if err != nil {
		return err
	}

	var data []byte
	switch opts.format {
	case formatDOT:
		data = []byte(dot)
	default:
		doc, err := m.MarshalText()
		if err != nil {
			return err
		}
		store := c.newCache(opts.noCache)
		defer store.Close()

		key := cache.RenderKey(doc, cache.RenderKeyOpts{Format: opts.format})
		if cached, hit, err := store.Get(ctx, key); err == nil && hit {
			logger.Debugf("Render cache hit for %s", input)
			data = cached
		} else {
			data, err = renderDOT(ctx, dot, opts.format)
			if err != nil {
				return err
			}
			if err := store.Set(ctx, key, data, 0); err != nil {
				logger.Debugf("Render cache write failed: %v", err)
			}
		}
	}

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	printFile(path)
	return nil
}

// levelDOT converts a 3D maze's level structure to Graphviz DOT source.
func levelDOT(m *maze.Maze) (string, error) {
	var levels []string
	var connectors []*maze.Connector

	switch l := m.Layout().(type) {
	case *maze.MultiLevelLayout:
		for _, level := range l.Levels {
			levels = append(levels, level.ID)
		}
		connectors = l.Connectors
	case *maze.RadialMultiLayout:
		for _, level := range l.Levels {
			levels = append(levels, level.ID)
		}
		connectors = l.Connectors
	default:
		return "", fmt.Errorf("graph requires a 3D maze, got %s", m.Type())
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("\n")

	for i, id := range levels {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, fmt.Sprintf("%s\nindex %d", id, i))
	}

	buf.WriteString("\n")
	for _, conn := range connectors {
		style := "solid"
		if conn.Kind == maze.ConnectorEscalator {
			style = "dashed"
		}
		fmt.Fprintf(&buf, "  %q -> %q [label=%q, style=%s, dir=both];\n",
			conn.From.LevelID, conn.To.LevelID, connectorLabel(conn), style)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func connectorLabel(c *maze.Connector) string {
	if c.From.Arm >= 0 {
		return fmt.Sprintf("%s a%d (%d,%d)", c.Kind, c.From.Arm, c.From.Row, c.From.Col)
	}
	return fmt.Sprintf("%s (%d,%d)", c.Kind, c.From.Row, c.From.Col)
}

// renderDOT renders DOT source to SVG or PNG using Graphviz in-process.
func renderDOT(ctx context.Context, dot, format string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	target := graphviz.SVG
	if format == formatPNG {
		target = graphviz.PNG
	}
	var buf bytes.Buffer
	if err := gv.Render(ctx, g, target, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

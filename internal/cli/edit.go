package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brain-sim/antmaze/pkg/document"
	"github.com/brain-sim/antmaze/pkg/element"
	"github.com/brain-sim/antmaze/pkg/maze"
)

// editOpts holds the command-line flags for the edit command. The
// repeatable mutation flags are applied in the order listed here, not
// in command-line order.
type editOpts struct {
	output  string
	level   string
	numbers bool

	cells    []string // r,c,name
	walls    []string // v|h,r,c,name
	armCells []string // arm,r,c,name
	armWalls []string // arm,v|h,r,c,name

	resize    string // ROWSxCOLS
	resizeArm int    // arm selector for radial resize

	armCount   int
	levelCount int
	hubSize    float64
	hubAngle   float64

	cellElements []string // name,token[,value]
	wallElements []string
}

// editCommand creates the edit command for mutating maze documents.
func (c *CLI) editCommand() *cobra.Command {
	opts := editOpts{resizeArm: -1, numbers: c.Config.Numbers}

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Apply edits to a maze document",
		Long: `Apply edits to a maze document.

The document is loaded as a draft, the requested mutations are applied,
and the result is validated before being written back. Cell and wall
values may be given by element name or by raw numeric value. On 3D
mazes, --level selects the target level by id or index.

Examples:
  antmaze edit m.yaml --set-cell 1,2,wall
  antmaze edit m.yaml --resize 8x8 -o big.yaml
  antmaze edit m.yaml --level upper --set-wall v,0,1,wall
  antmaze edit m.yaml --add-cell-element water,w --set-cell 0,0,water`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default overwrites the input)")
	cmd.Flags().StringVarP(&opts.level, "level", "l", "", "target level id or index (3D mazes)")
	cmd.Flags().BoolVar(&opts.numbers, "numbers", opts.numbers, "write row and column numbers on grids")

	cmd.Flags().StringArrayVar(&opts.cellElements, "add-cell-element", nil, "add a cell element: name,token[,value] (repeatable)")
	cmd.Flags().StringArrayVar(&opts.wallElements, "add-wall-element", nil, "add a wall element: name,token[,value] (repeatable)")

	cmd.Flags().IntVar(&opts.levelCount, "levels", 0, "set the number of levels (3D mazes)")
	cmd.Flags().IntVar(&opts.armCount, "arms", 0, "set the number of arms (radial mazes)")
	cmd.Flags().Float64Var(&opts.hubSize, "hub-size", 0, "set the hub radius or side length")
	cmd.Flags().Float64Var(&opts.hubAngle, "hub-angle", 0, "set the hub angular span in degrees")

	cmd.Flags().StringVar(&opts.resize, "resize", "", "resize the grid: ROWSxCOLS")
	cmd.Flags().IntVar(&opts.resizeArm, "arm", opts.resizeArm, "arm selector for --resize (radial mazes)")

	cmd.Flags().StringArrayVar(&opts.cells, "set-cell", nil, "set a cell: row,col,value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.walls, "set-wall", nil, "set a wall: v|h,row,col,value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.armCells, "set-arm-cell", nil, "set an arm cell: arm,row,col,value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.armWalls, "set-arm-wall", nil, "set an arm wall: arm,v|h,row,col,value (repeatable)")

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, input string, opts *editOpts) error {
	logger := loggerFromContext(ctx)

	draft, err := document.ImportDraft(input)
	if err != nil {
		return err
	}
	applied, err := applyEdits(draft, opts)
	if err != nil {
		return err
	}
	if applied == 0 {
		return fmt.Errorf("no edits given (see 'antmaze edit --help')")
	}

	m, err := draft.Freeze()
	if err != nil {
		return fmt.Errorf("result is not a valid maze: %w", err)
	}

	output := opts.output
	if output == "" {
		output = input
	}
	if err := document.ExportNumbered(m, output, opts.numbers); err != nil {
		return err
	}
	logger.Debugf("Applied %d edits to %s", applied, input)
	printFile(output)
	return nil
}

// applyEdits runs every requested mutation against the draft and
// returns the number applied. Element additions run first so that
// later cell and wall edits can refer to the new names.
func applyEdits(d *maze.Draft, opts *editOpts) (int, error) {
	n := 0
	apply := func(err error) error {
		if err != nil {
			return err
		}
		n++
		return nil
	}

	for _, s := range opts.cellElements {
		spec, err := parseElementSpec(s)
		if err != nil {
			return n, err
		}
		if err := apply(d.AddElement(maze.ElementCell, spec)); err != nil {
			return n, err
		}
	}
	for _, s := range opts.wallElements {
		spec, err := parseElementSpec(s)
		if err != nil {
			return n, err
		}
		if err := apply(d.AddElement(maze.ElementWall, spec)); err != nil {
			return n, err
		}
	}

	if opts.levelCount != 0 {
		if err := apply(d.SetLevelCount(opts.levelCount)); err != nil {
			return n, err
		}
	}
	if opts.armCount != 0 {
		if err := apply(d.SetArmCount(opts.armCount)); err != nil {
			return n, err
		}
	}
	if opts.hubSize != 0 {
		if err := apply(d.SetHubSize(opts.hubSize)); err != nil {
			return n, err
		}
	}
	if opts.hubAngle != 0 {
		if err := apply(d.SetHubAngle(opts.hubAngle)); err != nil {
			return n, err
		}
	}

	if opts.resize != "" {
		rows, cols, err := parseDims(opts.resize)
		if err != nil {
			return n, err
		}
		if err := apply(d.Resize(opts.level, opts.resizeArm, rows, cols)); err != nil {
			return n, err
		}
	}

	for _, s := range opts.cells {
		row, col, value, err := parseCellEdit(d, s)
		if err != nil {
			return n, err
		}
		if err := apply(d.SetCell(opts.level, row, col, value)); err != nil {
			return n, err
		}
	}
	for _, s := range opts.walls {
		kind, row, col, value, err := parseWallEdit(d, s)
		if err != nil {
			return n, err
		}
		if err := apply(d.SetWall(opts.level, kind, row, col, value)); err != nil {
			return n, err
		}
	}
	for _, s := range opts.armCells {
		parts, err := splitEdit(s, 4, "arm,row,col,value")
		if err != nil {
			return n, err
		}
		arm, err := parseInt(parts[0], "arm")
		if err != nil {
			return n, err
		}
		row, col, value, err := cellFields(d, parts[1], parts[2], parts[3])
		if err != nil {
			return n, err
		}
		if err := apply(d.SetArmCell(opts.level, arm, row, col, value)); err != nil {
			return n, err
		}
	}
	for _, s := range opts.armWalls {
		parts, err := splitEdit(s, 5, "arm,v|h,row,col,value")
		if err != nil {
			return n, err
		}
		arm, err := parseInt(parts[0], "arm")
		if err != nil {
			return n, err
		}
		kind, err := parseWallKind(parts[1])
		if err != nil {
			return n, err
		}
		row, col, err := coordFields(parts[2], parts[3])
		if err != nil {
			return n, err
		}
		value, err := resolveValue(d.Config().WallElements.ValueOf, parts[4])
		if err != nil {
			return n, err
		}
		if err := apply(d.SetArmWall(opts.level, arm, kind, row, col, value)); err != nil {
			return n, err
		}
	}

	return n, nil
}

func parseCellEdit(d *maze.Draft, s string) (row, col, value int, err error) {
	parts, err := splitEdit(s, 3, "row,col,value")
	if err != nil {
		return 0, 0, 0, err
	}
	return cellFields(d, parts[0], parts[1], parts[2])
}

func parseWallEdit(d *maze.Draft, s string) (kind maze.WallKind, row, col, value int, err error) {
	parts, err := splitEdit(s, 4, "v|h,row,col,value")
	if err != nil {
		return "", 0, 0, 0, err
	}
	kind, err = parseWallKind(parts[0])
	if err != nil {
		return "", 0, 0, 0, err
	}
	row, col, err = coordFields(parts[1], parts[2])
	if err != nil {
		return "", 0, 0, 0, err
	}
	value, err = resolveValue(d.Config().WallElements.ValueOf, parts[3])
	if err != nil {
		return "", 0, 0, 0, err
	}
	return kind, row, col, value, nil
}

func cellFields(d *maze.Draft, rowStr, colStr, valueStr string) (row, col, value int, err error) {
	row, col, err = coordFields(rowStr, colStr)
	if err != nil {
		return 0, 0, 0, err
	}
	value, err = resolveValue(d.Config().CellElements.ValueOf, valueStr)
	if err != nil {
		return 0, 0, 0, err
	}
	return row, col, value, nil
}

func coordFields(rowStr, colStr string) (row, col int, err error) {
	row, err = parseInt(rowStr, "row")
	if err != nil {
		return 0, 0, err
	}
	col, err = parseInt(colStr, "col")
	if err != nil {
		return 0, 0, err
	}
	return row, col, nil
}

// resolveValue maps an element name to its value via lookup, falling
// back to a raw integer for values with no registered name.
func resolveValue(lookup func(string) (int, error), s string) (int, error) {
	if v, err := lookup(s); err == nil {
		return v, nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	return 0, fmt.Errorf("invalid value: %q is neither an element name nor an integer", s)
}

func parseWallKind(s string) (maze.WallKind, error) {
	switch s {
	case "v", "vertical":
		return maze.WallVertical, nil
	case "h", "horizontal":
		return maze.WallHorizontal, nil
	}
	return "", fmt.Errorf("invalid wall kind: %q (must be 'v' or 'h')", s)
}

func parseElementSpec(s string) (element.Spec, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return element.Spec{}, fmt.Errorf("invalid element spec: %q (expected name,token[,value])", s)
	}
	spec := element.Spec{Name: strings.TrimSpace(parts[0]), Token: strings.TrimSpace(parts[1])}
	if len(parts) == 3 {
		v, err := parseInt(parts[2], "value")
		if err != nil {
			return element.Spec{}, err
		}
		spec.Value = &v
	}
	return spec, nil
}

func parseDims(s string) (rows, cols int, err error) {
	a, b, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid dimensions: %q (expected ROWSxCOLS)", s)
	}
	rows, err = parseInt(a, "rows")
	if err != nil {
		return 0, 0, err
	}
	cols, err = parseInt(b, "cols")
	if err != nil {
		return 0, 0, err
	}
	return rows, cols, nil
}

func splitEdit(s string, want int, shape string) ([]string, error) {
	parts := strings.Split(s, ",")
	if len(parts) != want {
		return nil, fmt.Errorf("invalid edit: %q (expected %s)", s, shape)
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts, nil
}

func parseInt(s, field string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", field, s)
	}
	return v, nil
}

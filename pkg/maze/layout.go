package maze

import (
	"gopkg.in/yaml.v3"

	"github.com/brain-sim/antmaze/pkg/element"
	"github.com/brain-sim/antmaze/pkg/errors"
	"github.com/brain-sim/antmaze/pkg/grid"
)

// Layout is the closed set of per-type layout shapes: *OccupancyLayout,
// *EdgeLayout, *RadialLayout, *MultiLevelLayout, and *RadialMultiLayout.
type Layout interface {
	clone() Layout
	specNode(cfg *Config, withNumbers bool) (*yaml.Node, error)
}

// OccupancyLayout is a single occupancy grid whose values span the merged
// cell and wall element space.
type OccupancyLayout struct {
	Grid grid.Grid
}

func (l *OccupancyLayout) clone() Layout {
	return &OccupancyLayout{Grid: l.Grid.Clone()}
}

func parseOccupancyLayout(node *yaml.Node, cfg *Config, ctx string) (*OccupancyLayout, error) {
	var text GridText
	if node.Kind == yaml.MappingNode {
		var spec OccupancyLayoutSpec
		if err := node.Decode(&spec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s", ctx)
		}
		text = spec.Grid
		if text.IsZero() {
			text = spec.Cells
		}
		if text.IsZero() {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "%s.grid is required", ctx)
		}
	} else if err := node.Decode(&text); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s", ctx)
	}

	merged, err := mergedElements(cfg)
	if err != nil {
		return nil, err
	}
	g, err := grid.Parse(text.Lines, merged)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s.grid", ctx)
	}
	return &OccupancyLayout{Grid: g}, nil
}

func (l *OccupancyLayout) validate(cfg *Config, ctx string) error {
	merged, err := mergedElements(cfg)
	if err != nil {
		return err
	}
	if err := l.Grid.Validate(); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "%s.grid", ctx)
	}
	return knownValues(l.Grid, merged, ctx+".grid")
}

func (l *OccupancyLayout) specNode(cfg *Config, withNumbers bool) (*yaml.Node, error) {
	merged, err := mergedElements(cfg)
	if err != nil {
		return nil, err
	}
	text, err := grid.FormatText(l.Grid, merged, withNumbers)
	if err != nil {
		return nil, err
	}
	return mapNode(strNode("grid"), litNode(text)), nil
}

// EdgeLayout is a cell grid surrounded by its thin-wall lattices. For
// cells of H rows and W columns, the vertical lattice is H x (W+1) and
// the horizontal lattice (H+1) x W.
type EdgeLayout struct {
	Cells           grid.Grid
	VerticalWalls   grid.Grid
	HorizontalWalls grid.Grid
}

func (l *EdgeLayout) clone() Layout { return l.cloneEdge() }

func (l *EdgeLayout) cloneEdge() *EdgeLayout {
	return &EdgeLayout{
		Cells:           l.Cells.Clone(),
		VerticalWalls:   l.VerticalWalls.Clone(),
		HorizontalWalls: l.HorizontalWalls.Clone(),
	}
}

func parseEdgeLayout(node *yaml.Node, cfg *Config, ctx string) (*EdgeLayout, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s must be a mapping", ctx)
	}
	var spec EdgeLayoutSpec
	if err := node.Decode(&spec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s", ctx)
	}
	return edgeLayoutFromSpec(&spec, cfg, ctx)
}

func edgeLayoutFromSpec(spec *EdgeLayoutSpec, cfg *Config, ctx string) (*EdgeLayout, error) {
	if spec.Cells.IsZero() {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s.cells is required", ctx)
	}
	if spec.Walls == nil || spec.Walls.Vertical.IsZero() || spec.Walls.Horizontal.IsZero() {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s.walls must include vertical and horizontal", ctx)
	}

	cells, err := grid.Parse(spec.Cells.Lines, cfg.CellElements)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s.cells", ctx)
	}
	vertical, err := grid.Parse(spec.Walls.Vertical.Lines, cfg.WallElements)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s.walls.vertical", ctx)
	}
	horizontal, err := grid.Parse(spec.Walls.Horizontal.Lines, cfg.WallElements)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s.walls.horizontal", ctx)
	}

	layout := &EdgeLayout{Cells: cells, VerticalWalls: vertical, HorizontalWalls: horizontal}
	if err := layout.validateDims(ctx); err != nil {
		return nil, err
	}
	return layout, nil
}

func (l *EdgeLayout) validateDims(ctx string) error {
	for name, g := range map[string]grid.Grid{
		"cells":            l.Cells,
		"walls.vertical":   l.VerticalWalls,
		"walls.horizontal": l.HorizontalWalls,
	} {
		if err := g.Validate(); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "%s.%s", ctx, name)
		}
	}

	height, width := l.Cells.Dims()
	if vh, vw := l.VerticalWalls.Dims(); vh != height || vw != width+1 {
		return errors.New(errors.ErrCodeWallDimensions,
			"%s.walls.vertical is %dx%d, want %dx%d", ctx, vh, vw, height, width+1)
	}
	if hh, hw := l.HorizontalWalls.Dims(); hh != height+1 || hw != width {
		return errors.New(errors.ErrCodeWallDimensions,
			"%s.walls.horizontal is %dx%d, want %dx%d", ctx, hh, hw, height+1, width)
	}
	return nil
}

func (l *EdgeLayout) validate(cfg *Config, ctx string) error {
	if err := l.validateDims(ctx); err != nil {
		return err
	}
	if err := knownValues(l.Cells, cfg.CellElements, ctx+".cells"); err != nil {
		return err
	}
	if err := knownValues(l.VerticalWalls, cfg.WallElements, ctx+".walls.vertical"); err != nil {
		return err
	}
	return knownValues(l.HorizontalWalls, cfg.WallElements, ctx+".walls.horizontal")
}

func (l *EdgeLayout) specNode(cfg *Config, withNumbers bool) (*yaml.Node, error) {
	cells, err := grid.FormatText(l.Cells, cfg.CellElements, withNumbers)
	if err != nil {
		return nil, err
	}
	vertical, err := grid.FormatText(l.VerticalWalls, cfg.WallElements, withNumbers)
	if err != nil {
		return nil, err
	}
	horizontal, err := grid.FormatText(l.HorizontalWalls, cfg.WallElements, withNumbers)
	if err != nil {
		return nil, err
	}
	return mapNode(
		strNode("cells"), litNode(cells),
		strNode("walls"), mapNode(
			strNode("vertical"), litNode(vertical),
			strNode("horizontal"), litNode(horizontal),
		),
	), nil
}

// Width returns the arm width of an edge layout used as a radial arm,
// which is its number of cell rows.
func (l *EdgeLayout) Width() int {
	return len(l.Cells)
}

func knownValues(g grid.Grid, set *element.Set, ctx string) error {
	for r, row := range g {
		for c, value := range row {
			if _, err := set.ByValue(value); err != nil {
				return errors.Wrap(errors.ErrCodeUnknownValue, err, "%s row %d col %d", ctx, r, c)
			}
		}
	}
	return nil
}

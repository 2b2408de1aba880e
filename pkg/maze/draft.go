package maze

import (
	"fmt"

	"github.com/brain-sim/antmaze/pkg/element"
	"github.com/brain-sim/antmaze/pkg/errors"
	"github.com/brain-sim/antmaze/pkg/grid"
)

// WallKind selects one of the two wall lattices of an edge layout.
type WallKind string

const (
	WallVertical   WallKind = "vertical"
	WallHorizontal WallKind = "horizontal"
)

// ElementKind selects the element set a draft edit targets.
type ElementKind string

const (
	ElementCell ElementKind = "cell"
	ElementWall ElementKind = "wall"
)

// Draft mutators perform only local checks (bounds, type fit); global
// consistency is enforced by Freeze. A failed mutator leaves the draft
// unchanged. The level selector matches a level id first, then a numeric
// index; it must be empty for 2D types.

// SetCell writes one cell value.
func (d *Draft) SetCell(level string, row, col, value int) error {
	switch l := d.layout.(type) {
	case *OccupancyLayout:
		if err := d.no3DLevel(level); err != nil {
			return err
		}
		return setValue(l.Grid, row, col, value, "layout.grid")
	case *EdgeLayout:
		if err := d.no3DLevel(level); err != nil {
			return err
		}
		return setValue(l.Cells, row, col, value, "layout.cells")
	case *MultiLevelLayout:
		idx, err := d.resolveLevelSel(level)
		if err != nil {
			return err
		}
		switch ll := l.Levels[idx].Layout.(type) {
		case *OccupancyLayout:
			return setValue(ll.Grid, row, col, value, fmt.Sprintf("layout.levels[%d].layout.grid", idx))
		case *EdgeLayout:
			return setValue(ll.Cells, row, col, value, fmt.Sprintf("layout.levels[%d].layout.cells", idx))
		}
		return shapeMismatch(d.typ)
	}
	return d.unsupported("set_cell")
}

// SetWall writes one wall value of an edge-style layout.
func (d *Draft) SetWall(level string, kind WallKind, row, col, value int) error {
	switch l := d.layout.(type) {
	case *EdgeLayout:
		if err := d.no3DLevel(level); err != nil {
			return err
		}
		g, err := l.wallGrid(kind)
		if err != nil {
			return err
		}
		return setValue(g, row, col, value, fmt.Sprintf("layout.walls.%s", kind))
	case *MultiLevelLayout:
		idx, err := d.resolveLevelSel(level)
		if err != nil {
			return err
		}
		edge, ok := l.Levels[idx].Layout.(*EdgeLayout)
		if !ok {
			return d.unsupported("set_wall")
		}
		g, err := edge.wallGrid(kind)
		if err != nil {
			return err
		}
		return setValue(g, row, col, value, fmt.Sprintf("layout.levels[%d].layout.walls.%s", idx, kind))
	}
	return d.unsupported("set_wall")
}

// SetArmCell writes one cell value inside a radial arm.
func (d *Draft) SetArmCell(level string, arm, row, col, value int) error {
	arms, err := d.arms(level)
	if err != nil {
		return err
	}
	target, err := armAt(arms, arm)
	if err != nil {
		return err
	}
	return setValue(target.Cells, row, col, value, fmt.Sprintf("layout.arms[%d].layout.cells", arm))
}

// SetArmWall writes one wall value inside a radial arm.
func (d *Draft) SetArmWall(level string, arm int, kind WallKind, row, col, value int) error {
	arms, err := d.arms(level)
	if err != nil {
		return err
	}
	target, err := armAt(arms, arm)
	if err != nil {
		return err
	}
	g, err := target.wallGrid(kind)
	if err != nil {
		return err
	}
	return setValue(g, row, col, value, fmt.Sprintf("layout.arms[%d].layout.walls.%s", arm, kind))
}

// Resize changes a grid's dimensions. Growth appends open-filled rows
// and columns at the tail; shrinking truncates from the tail. Edge-style
// layouts keep their wall lattices in step with the cells. Arm is the
// target arm index for radial types and must be -1 otherwise.
func (d *Draft) Resize(level string, arm, rows, cols int) error {
	cellFill := fillValue(d.config.CellElements)
	wallFill := fillValue(d.config.WallElements)

	switch l := d.layout.(type) {
	case *OccupancyLayout:
		if err := d.no3DLevel(level); err != nil {
			return err
		}
		if arm >= 0 {
			return d.unsupported("resize with arm")
		}
		resized, err := l.Grid.Resize(rows, cols, cellFill)
		if err != nil {
			return err
		}
		l.Grid = resized
		return nil
	case *EdgeLayout:
		if err := d.no3DLevel(level); err != nil {
			return err
		}
		if arm >= 0 {
			return d.unsupported("resize with arm")
		}
		return l.resize(rows, cols, cellFill, wallFill)
	case *RadialLayout:
		if err := d.no3DLevel(level); err != nil {
			return err
		}
		target, err := armAt(l.Arms, arm)
		if err != nil {
			return err
		}
		if err := target.resize(rows, cols, cellFill, wallFill); err != nil {
			return err
		}
		return l.normalizeHub()
	case *MultiLevelLayout:
		idx, err := d.resolveLevelSel(level)
		if err != nil {
			return err
		}
		if arm >= 0 {
			return d.unsupported("resize with arm")
		}
		switch ll := l.Levels[idx].Layout.(type) {
		case *OccupancyLayout:
			resized, err := ll.Grid.Resize(rows, cols, cellFill)
			if err != nil {
				return err
			}
			ll.Grid = resized
			return nil
		case *EdgeLayout:
			return ll.resize(rows, cols, cellFill, wallFill)
		}
		return shapeMismatch(d.typ)
	case *RadialMultiLayout:
		idx, err := d.resolveLevelSel(level)
		if err != nil {
			return err
		}
		target, err := armAt(l.Levels[idx].Arms, arm)
		if err != nil {
			return err
		}
		if err := target.resize(rows, cols, cellFill, wallFill); err != nil {
			return err
		}
		return l.normalizeHub()
	}
	return d.unsupported("resize")
}

// SetArmCount grows or shrinks the arm list of a radial layout. New arms
// copy the last arm's dimensions with open-filled content; shrinking
// truncates from the tail. For radial_arm_3d the change applies to every
// level so arm counts stay aligned.
func (d *Draft) SetArmCount(count int) error {
	if count < 1 {
		return errors.New(errors.ErrCodeOutOfRange, "arm count %d must be at least 1", count)
	}
	cellFill := fillValue(d.config.CellElements)
	wallFill := fillValue(d.config.WallElements)

	switch l := d.layout.(type) {
	case *RadialLayout:
		l.Arms = adjustArms(l.Arms, count, cellFill, wallFill)
		return l.normalizeHub()
	case *RadialMultiLayout:
		if count < len(l.Levels[0].Arms) {
			for i, c := range l.Connectors {
				if c.From.Arm >= count || c.To.Arm >= count {
					return errors.New(errors.ErrCodeDanglingConnector,
						"layout.connectors[%d] references a removed arm", i)
				}
			}
		}
		for _, level := range l.Levels {
			level.Arms = adjustArms(level.Arms, count, cellFill, wallFill)
		}
		return l.normalizeHub()
	}
	return d.unsupported("set_arm_count")
}

// SetHubAngle changes the angular span arms are distributed over and
// raises the hub size if the new span demands it.
func (d *Draft) SetHubAngle(degrees float64) error {
	if degrees <= 0 || degrees > 360 {
		return errors.New(errors.ErrCodeInvalidAngle,
			"angle_degrees must be in (0, 360], got %g", degrees)
	}
	switch l := d.layout.(type) {
	case *RadialLayout:
		l.Hub.AngleDegrees = degrees
		return l.normalizeHub()
	case *RadialMultiLayout:
		l.Hub.AngleDegrees = degrees
		return l.normalizeHub()
	}
	return d.unsupported("set_hub_angle")
}

// SetHubSize sets the radius or side length explicitly. Requests below
// the current minimum fail.
func (d *Draft) SetHubSize(size float64) error {
	var hub *Hub
	var width float64
	var count int

	switch l := d.layout.(type) {
	case *RadialLayout:
		hub, width, count = l.Hub, float64(l.MaxArmWidth()), len(l.Arms)
	case *RadialMultiLayout:
		hub, width, count = l.Hub, float64(l.MaxArmWidth()), l.armCount()
	default:
		return d.unsupported("set_hub_size")
	}

	if size <= 0 {
		return errors.New(errors.ErrCodeInvalidHub, "hub size must be > 0")
	}
	min, err := hub.minSize(width, count)
	if err != nil {
		return err
	}
	if size < min {
		return errors.New(errors.ErrCodeHubTooSmall, "hub size must be >= %.6g", min)
	}
	if hub.Shape == HubCircular {
		hub.Radius = size
	} else {
		hub.SideLength = size
	}
	return nil
}

// SetLevelCount grows or shrinks a multi-level stack. New levels copy
// the last level's dimensions with open-filled content. Shrinking fails
// with a dangling-connector error if a connector references a removed
// level.
func (d *Draft) SetLevelCount(count int) error {
	if count < 2 {
		return errors.New(errors.ErrCodeInvalidDocument, "layout.levels must include at least two levels")
	}
	cellFill := fillValue(d.config.CellElements)
	wallFill := fillValue(d.config.WallElements)

	switch l := d.layout.(type) {
	case *MultiLevelLayout:
		if count < len(l.Levels) {
			if err := checkDangling(l.Connectors, count); err != nil {
				return err
			}
			l.Levels = l.Levels[:count]
			return nil
		}
		ids := levelIDSet(d.layout)
		for len(l.Levels) < count {
			last := l.Levels[len(l.Levels)-1]
			var layout Layout
			switch ll := last.Layout.(type) {
			case *OccupancyLayout:
				rows, cols := ll.Grid.Dims()
				layout = &OccupancyLayout{Grid: grid.New(rows, cols, cellFill)}
			case *EdgeLayout:
				rows, cols := ll.Cells.Dims()
				layout = newEdgeLayout(rows, cols, cellFill, wallFill)
			default:
				return shapeMismatch(d.typ)
			}
			l.Levels = append(l.Levels, &Level{ID: freshLevelID(ids, len(l.Levels)), Layout: layout})
		}
		return nil
	case *RadialMultiLayout:
		if count < len(l.Levels) {
			if err := checkDangling(l.Connectors, count); err != nil {
				return err
			}
			l.Levels = l.Levels[:count]
			return nil
		}
		ids := levelIDSet(d.layout)
		for len(l.Levels) < count {
			last := l.Levels[len(l.Levels)-1]
			arms := make([]*EdgeLayout, len(last.Arms))
			for i, arm := range last.Arms {
				rows, cols := arm.Cells.Dims()
				arms[i] = newEdgeLayout(rows, cols, cellFill, wallFill)
			}
			l.Levels = append(l.Levels, &RadialLevel{ID: freshLevelID(ids, len(l.Levels)), Arms: arms})
		}
		return nil
	}
	return d.unsupported("set_level_count")
}

// AddElement appends an element to the cell or wall set. A missing value
// auto-assigns the lowest free one; for occupancy types the other set's
// values are blocked too, since both share one value space.
func (d *Draft) AddElement(kind ElementKind, spec element.Spec) error {
	var target *element.Set
	switch kind {
	case ElementCell:
		target = d.config.CellElements
	case ElementWall:
		target = d.config.WallElements
	default:
		return errors.New(errors.ErrCodeInvalidDocument, "element kind must be 'cell' or 'wall'")
	}

	blocked := target.Values()
	if d.typ.Base() == TypeOccupancyGrid {
		other := d.config.WallElements
		if kind == ElementWall {
			other = d.config.CellElements
		}
		for v := range other.Values() {
			blocked[v] = true
		}
	}

	parsed, err := element.FromSpecs([]element.Spec{spec}, nil, blocked)
	if err != nil {
		return err
	}
	return target.Add(parsed.Elements()[0])
}

func (l *EdgeLayout) wallGrid(kind WallKind) (grid.Grid, error) {
	switch kind {
	case WallVertical:
		return l.VerticalWalls, nil
	case WallHorizontal:
		return l.HorizontalWalls, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidDocument,
		"wall kind must be 'vertical' or 'horizontal', got %q", kind)
}

// resize rebuilds all three grids atomically so a failure on any lattice
// leaves the layout untouched.
func (l *EdgeLayout) resize(rows, cols, cellFill, wallFill int) error {
	cells, err := l.Cells.Resize(rows, cols, cellFill)
	if err != nil {
		return err
	}
	vertical, err := l.VerticalWalls.Resize(rows, cols+1, wallFill)
	if err != nil {
		return err
	}
	horizontal, err := l.HorizontalWalls.Resize(rows+1, cols, wallFill)
	if err != nil {
		return err
	}
	l.Cells, l.VerticalWalls, l.HorizontalWalls = cells, vertical, horizontal
	return nil
}

func newEdgeLayout(rows, cols, cellFill, wallFill int) *EdgeLayout {
	return &EdgeLayout{
		Cells:           grid.New(rows, cols, cellFill),
		VerticalWalls:   grid.New(rows, cols+1, wallFill),
		HorizontalWalls: grid.New(rows+1, cols, wallFill),
	}
}

func adjustArms(arms []*EdgeLayout, count, cellFill, wallFill int) []*EdgeLayout {
	if count <= len(arms) {
		return arms[:count]
	}
	out := arms
	for len(out) < count {
		last := out[len(out)-1]
		rows, cols := last.Cells.Dims()
		out = append(out, newEdgeLayout(rows, cols, cellFill, wallFill))
	}
	return out
}

func armAt(arms []*EdgeLayout, arm int) (*EdgeLayout, error) {
	if arm < 0 || arm >= len(arms) {
		return nil, errors.New(errors.ErrCodeOutOfRange, "arm index %d out of range", arm)
	}
	return arms[arm], nil
}

func setValue(g grid.Grid, row, col, value int, ctx string) error {
	if err := g.Set(row, col, value); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "%s", ctx)
	}
	return nil
}

// fillValue picks the value new grid content is filled with: the open
// element when declared, otherwise the first element.
func fillValue(set *element.Set) int {
	if v, err := set.ValueOf("open"); err == nil {
		return v
	}
	if els := set.Elements(); len(els) > 0 {
		return els[0].Value
	}
	return 0
}

func checkDangling(connectors []*Connector, count int) error {
	for i, c := range connectors {
		if c.From.LevelIndex >= count || c.To.LevelIndex >= count {
			return errors.New(errors.ErrCodeDanglingConnector,
				"layout.connectors[%d] references a removed level", i)
		}
	}
	return nil
}

func levelIDSet(layout Layout) map[string]bool {
	ids := make(map[string]bool)
	switch l := layout.(type) {
	case *MultiLevelLayout:
		for _, level := range l.Levels {
			ids[level.ID] = true
		}
	case *RadialMultiLayout:
		for _, level := range l.Levels {
			ids[level.ID] = true
		}
	}
	return ids
}

func freshLevelID(ids map[string]bool, index int) string {
	for i := index; ; i++ {
		id := fmt.Sprintf("level_%d", i)
		if !ids[id] {
			ids[id] = true
			return id
		}
	}
}

// arms resolves the arm list a radial mutator targets.
func (d *Draft) arms(level string) ([]*EdgeLayout, error) {
	switch l := d.layout.(type) {
	case *RadialLayout:
		if err := d.no3DLevel(level); err != nil {
			return nil, err
		}
		return l.Arms, nil
	case *RadialMultiLayout:
		idx, err := d.resolveLevelSel(level)
		if err != nil {
			return nil, err
		}
		return l.Levels[idx].Arms, nil
	}
	return nil, d.unsupported("arm edit")
}

func (d *Draft) resolveLevelSel(level string) (int, error) {
	if level == "" {
		return 0, errors.New(errors.ErrCodeUnknownLevel, "a level is required for %s", d.typ)
	}
	switch l := d.layout.(type) {
	case *MultiLevelLayout:
		ids := make([]string, len(l.Levels))
		for i, lv := range l.Levels {
			ids[i] = lv.ID
		}
		return resolveLevel(ids, level)
	case *RadialMultiLayout:
		ids := make([]string, len(l.Levels))
		for i, lv := range l.Levels {
			ids[i] = lv.ID
		}
		return resolveLevel(ids, level)
	}
	return 0, d.unsupported("level selection")
}

func (d *Draft) no3DLevel(level string) error {
	if level != "" {
		return errors.New(errors.ErrCodeTypeMismatch, "level selectors apply to 3D maze types, not %s", d.typ)
	}
	return nil
}

func (d *Draft) unsupported(op string) error {
	return errors.New(errors.ErrCodeTypeMismatch, "%s is not supported for maze_type %s", op, d.typ)
}

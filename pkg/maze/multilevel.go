package maze

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/brain-sim/antmaze/pkg/errors"
	"github.com/brain-sim/antmaze/pkg/grid"
)

// ConnectorKind distinguishes the two ways levels join.
type ConnectorKind string

const (
	// ConnectorElevator joins the same cell on two adjacent levels.
	ConnectorElevator ConnectorKind = "elevator"
	// ConnectorEscalator joins two distinct cells on adjacent levels.
	ConnectorEscalator ConnectorKind = "escalator"
)

// Endpoint is one resolved end of a connector. Arm is -1 for non-radial
// layouts.
type Endpoint struct {
	LevelID    string
	LevelIndex int
	Row, Col   int
	Arm        int
}

// Connector links a cell on one level to a cell on an adjacent level.
type Connector struct {
	Kind ConnectorKind
	From Endpoint
	To   Endpoint
}

func (c *Connector) clone() *Connector {
	out := *c
	return &out
}

// Level is one floor of a multi-level occupancy or edge maze.
type Level struct {
	ID     string
	Layout Layout
}

// MultiLevelLayout stacks single-level layouts of one base kind.
type MultiLevelLayout struct {
	Base       Type
	Levels     []*Level
	Connectors []*Connector
}

func (l *MultiLevelLayout) clone() Layout {
	levels := make([]*Level, len(l.Levels))
	for i, level := range l.Levels {
		levels[i] = &Level{ID: level.ID, Layout: level.Layout.clone()}
	}
	connectors := make([]*Connector, len(l.Connectors))
	for i, c := range l.Connectors {
		connectors[i] = c.clone()
	}
	return &MultiLevelLayout{Base: l.Base, Levels: levels, Connectors: connectors}
}

// RadialLevel is one floor of a radial_arm_3d maze: arm data only, since
// the hub is shared at the layout root.
type RadialLevel struct {
	ID   string
	Arms []*EdgeLayout
}

// RadialMultiLayout stacks radial arm levels around one shared hub.
type RadialMultiLayout struct {
	Hub        *Hub
	Levels     []*RadialLevel
	Connectors []*Connector
}

func (l *RadialMultiLayout) clone() Layout {
	levels := make([]*RadialLevel, len(l.Levels))
	for i, level := range l.Levels {
		arms := make([]*EdgeLayout, len(level.Arms))
		for j, arm := range level.Arms {
			arms[j] = arm.cloneEdge()
		}
		levels[i] = &RadialLevel{ID: level.ID, Arms: arms}
	}
	connectors := make([]*Connector, len(l.Connectors))
	for i, c := range l.Connectors {
		connectors[i] = c.clone()
	}
	return &RadialMultiLayout{Hub: l.Hub.clone(), Levels: levels, Connectors: connectors}
}

// MaxArmWidth returns the widest arm across all levels.
func (l *RadialMultiLayout) MaxArmWidth() int {
	widest := 0
	for _, level := range l.Levels {
		for _, arm := range level.Arms {
			if w := arm.Width(); w > widest {
				widest = w
			}
		}
	}
	return widest
}

func (l *RadialMultiLayout) armCount() int {
	if len(l.Levels) == 0 {
		return 0
	}
	return len(l.Levels[0].Arms)
}

func (l *RadialMultiLayout) normalizeHub() error {
	min, err := l.Hub.minSize(float64(l.MaxArmWidth()), l.armCount())
	if err != nil {
		return err
	}
	l.Hub.raise(min)
	l.Hub.raiseSides(l.armCount())
	return nil
}

func parseMultiLayout(node *yaml.Node, cfg *Config, base Type) (*MultiLevelLayout, error) {
	var spec MultiLayoutSpec
	if err := decodeLayoutNode(node, &spec); err != nil {
		return nil, err
	}
	if spec.CenterHub != nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument,
			"layout.center_hub applies to radial_arm_3d only")
	}

	ids, layoutNodes, err := splitLevels(spec.Levels)
	if err != nil {
		return nil, err
	}

	levels := make([]*Level, len(ids))
	for i, layoutNode := range layoutNodes {
		ctx := fmt.Sprintf("layout.levels[%d].layout", i)
		var layout Layout
		switch base {
		case TypeOccupancyGrid:
			layout, err = parseOccupancyLayout(layoutNode, cfg, ctx)
		case TypeEdgeGrid:
			layout, err = parseEdgeLayout(layoutNode, cfg, ctx)
		default:
			return nil, errors.New(errors.ErrCodeInternal, "unsupported multi-level base: %q", base)
		}
		if err != nil {
			return nil, err
		}
		levels[i] = &Level{ID: ids[i], Layout: layout}
	}

	connectors, err := parseConnectors(spec.Connectors, ids, false, false)
	if err != nil {
		return nil, err
	}

	layout := &MultiLevelLayout{Base: base, Levels: levels, Connectors: connectors}
	if err := layout.validateConnectors(cfg); err != nil {
		return nil, err
	}
	return layout, nil
}

func parseRadialMultiLayout(node *yaml.Node, cfg *Config) (*RadialMultiLayout, error) {
	var spec MultiLayoutSpec
	if err := decodeLayoutNode(node, &spec); err != nil {
		return nil, err
	}
	if spec.CenterHub == nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "layout.center_hub is required")
	}

	ids, layoutNodes, err := splitLevels(spec.Levels)
	if err != nil {
		return nil, err
	}

	levels := make([]*RadialLevel, len(ids))
	for i, layoutNode := range layoutNodes {
		ctx := fmt.Sprintf("layout.levels[%d].layout", i)
		var levelSpec RadialLayoutSpec
		if err := layoutNode.Decode(&levelSpec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s", ctx)
		}
		if levelSpec.CenterHub != nil {
			return nil, errors.New(errors.ErrCodeInvalidDocument,
				"%s.center_hub is not allowed; the hub is shared at the layout root", ctx)
		}
		if len(levelSpec.Arms) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "%s.arms must be a non-empty list", ctx)
		}
		if i > 0 && len(levelSpec.Arms) != len(levels[0].Arms) {
			return nil, errors.New(errors.ErrCodeInvalidDocument,
				"%s.arms has %d arms, expected %d to match the first level",
				ctx, len(levelSpec.Arms), len(levels[0].Arms))
		}
		arms, err := parseArms(levelSpec.Arms, cfg, fmt.Sprintf("layout.levels[%d].layout", i))
		if err != nil {
			return nil, err
		}
		levels[i] = &RadialLevel{ID: ids[i], Arms: arms}
	}

	layout := &RadialMultiLayout{Levels: levels}
	hub, err := parseHub(spec.CenterHub, layout.MaxArmWidth(), layout.armCount(), "layout")
	if err != nil {
		return nil, err
	}
	layout.Hub = hub

	connectors, err := parseConnectors(spec.Connectors, ids, true, true)
	if err != nil {
		return nil, err
	}
	layout.Connectors = connectors
	if err := layout.validateConnectors(cfg); err != nil {
		return nil, err
	}
	return layout, nil
}

func decodeLayoutNode(node *yaml.Node, spec *MultiLayoutSpec) error {
	if node.Kind != yaml.MappingNode {
		return errors.New(errors.ErrCodeInvalidDocument, "layout must be a mapping")
	}
	if err := node.Decode(spec); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "layout")
	}
	return nil
}

// splitLevels resolves level ids and layout nodes, applying the
// "level_<index>" default id and rejecting duplicates.
func splitLevels(nodes []yaml.Node) ([]string, []*yaml.Node, error) {
	if len(nodes) < 2 {
		return nil, nil, errors.New(errors.ErrCodeInvalidDocument,
			"layout.levels must include at least two levels")
	}
	ids := make([]string, len(nodes))
	layouts := make([]*yaml.Node, len(nodes))
	seen := make(map[string]bool, len(nodes))
	for i := range nodes {
		id, layoutNode, err := splitLevelNode(&nodes[i], i)
		if err != nil {
			return nil, nil, err
		}
		name := fmt.Sprintf("level_%d", i)
		if id.Set {
			name = id.Value
		}
		if seen[name] {
			return nil, nil, errors.New(errors.ErrCodeInvalidDocument,
				"layout.levels[%d] has a duplicate id: %s", i, name)
		}
		seen[name] = true
		ids[i] = name
		layouts[i] = layoutNode
	}
	return ids, layouts, nil
}

func parseConnectors(specs []ConnectorSpec, levelIDs []string, allowArm, requireArm bool) ([]*Connector, error) {
	connectors := make([]*Connector, 0, len(specs))
	for i, spec := range specs {
		ctx := fmt.Sprintf("layout.connectors[%d]", i)
		kind := spec.Type
		if kind == "" {
			kind = spec.Kind
		}
		if kind != string(ConnectorElevator) && kind != string(ConnectorEscalator) {
			return nil, errors.New(errors.ErrCodeInvalidConnector,
				"%s.type must be 'elevator' or 'escalator'", ctx)
		}
		if spec.From == nil {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "%s.from is required", ctx)
		}
		if spec.To == nil {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "%s.to is required", ctx)
		}
		from, err := resolveEndpoint(spec.From, levelIDs, ctx+".from", allowArm, requireArm)
		if err != nil {
			return nil, err
		}
		to, err := resolveEndpoint(spec.To, levelIDs, ctx+".to", allowArm, requireArm)
		if err != nil {
			return nil, err
		}
		connectors = append(connectors, &Connector{Kind: ConnectorKind(kind), From: from, To: to})
	}
	return connectors, nil
}

func resolveEndpoint(spec *EndpointSpec, levelIDs []string, ctx string, allowArm, requireArm bool) (Endpoint, error) {
	var ep Endpoint
	if !spec.Level.Set {
		return ep, errors.New(errors.ErrCodeInvalidDocument, "%s.level is required", ctx)
	}
	if spec.Level.ByIndex {
		if spec.Level.Index < 0 || spec.Level.Index >= len(levelIDs) {
			return ep, errors.New(errors.ErrCodeUnknownLevel, "%s.level index out of range", ctx)
		}
		ep.LevelIndex = spec.Level.Index
	} else {
		idx := -1
		for i, id := range levelIDs {
			if id == spec.Level.Name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ep, errors.New(errors.ErrCodeUnknownLevel, "%s.level unknown id: %s", ctx, spec.Level.Name)
		}
		ep.LevelIndex = idx
	}
	ep.LevelID = levelIDs[ep.LevelIndex]

	if spec.Row == nil || spec.Col == nil {
		return ep, errors.New(errors.ErrCodeInvalidDocument, "%s must include row and col", ctx)
	}
	if *spec.Row < 0 || *spec.Col < 0 {
		return ep, errors.New(errors.ErrCodeOutOfRange, "%s row/col must be >= 0", ctx)
	}
	ep.Row, ep.Col = *spec.Row, *spec.Col

	ep.Arm = -1
	switch {
	case spec.Arm == nil && requireArm:
		return ep, errors.New(errors.ErrCodeInvalidConnector, "%s.arm is required", ctx)
	case spec.Arm != nil && !allowArm:
		return ep, errors.New(errors.ErrCodeInvalidConnector, "%s.arm is not allowed", ctx)
	case spec.Arm != nil:
		if *spec.Arm < 0 {
			return ep, errors.New(errors.ErrCodeOutOfRange, "%s.arm must be >= 0", ctx)
		}
		ep.Arm = *spec.Arm
	}
	return ep, nil
}

// validateConnectorRules checks adjacency and the per-kind coordinate
// rules: elevators keep identical coordinates, escalators must differ.
func validateConnectorRules(c *Connector, ctx string) error {
	diff := c.From.LevelIndex - c.To.LevelIndex
	if diff != 1 && diff != -1 {
		return errors.New(errors.ErrCodeInvalidConnector, "%s must connect adjacent levels", ctx)
	}
	same := c.From.Row == c.To.Row && c.From.Col == c.To.Col && c.From.Arm == c.To.Arm
	switch c.Kind {
	case ConnectorElevator:
		if !same {
			return errors.New(errors.ErrCodeInvalidConnector,
				"%s elevator endpoints must share row, col and arm", ctx)
		}
	case ConnectorEscalator:
		if same {
			return errors.New(errors.ErrCodeInvalidConnector,
				"%s escalator endpoints must use different coordinates", ctx)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConnector, "%s has unknown connector type: %s", ctx, c.Kind)
	}
	return nil
}

func (l *MultiLevelLayout) cellGrid(ep Endpoint) (grid.Grid, error) {
	switch layout := l.Levels[ep.LevelIndex].Layout.(type) {
	case *OccupancyLayout:
		return layout.Grid, nil
	case *EdgeLayout:
		return layout.Cells, nil
	}
	return nil, errors.New(errors.ErrCodeInternal, "level %d has an unexpected layout shape", ep.LevelIndex)
}

func (l *MultiLevelLayout) validateConnectors(cfg *Config) error {
	if len(l.Connectors) == 0 {
		return nil
	}
	elevator, escalator, err := cfg.connectorValues()
	if err != nil {
		return err
	}
	for i, c := range l.Connectors {
		ctx := fmt.Sprintf("layout.connectors[%d]", i)
		if err := validateConnectorRules(c, ctx); err != nil {
			return err
		}
		expected := elevator
		if c.Kind == ConnectorEscalator {
			expected = escalator
		}
		for _, end := range []struct {
			ep   Endpoint
			name string
		}{{c.From, "from"}, {c.To, "to"}} {
			endCtx := ctx + "." + end.name
			if end.ep.LevelIndex >= len(l.Levels) {
				return errors.New(errors.ErrCodeDanglingConnector, "%s.level no longer exists", endCtx)
			}
			g, err := l.cellGrid(end.ep)
			if err != nil {
				return err
			}
			if err := checkCell(g, end.ep, expected, endCtx); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *RadialMultiLayout) validateConnectors(cfg *Config) error {
	if len(l.Connectors) == 0 {
		return nil
	}
	elevator, escalator, err := cfg.connectorValues()
	if err != nil {
		return err
	}
	for i, c := range l.Connectors {
		ctx := fmt.Sprintf("layout.connectors[%d]", i)
		if err := validateConnectorRules(c, ctx); err != nil {
			return err
		}
		expected := elevator
		if c.Kind == ConnectorEscalator {
			expected = escalator
		}
		for _, end := range []struct {
			ep   Endpoint
			name string
		}{{c.From, "from"}, {c.To, "to"}} {
			endCtx := ctx + "." + end.name
			if end.ep.LevelIndex >= len(l.Levels) {
				return errors.New(errors.ErrCodeDanglingConnector, "%s.level no longer exists", endCtx)
			}
			level := l.Levels[end.ep.LevelIndex]
			if end.ep.Arm < 0 {
				return errors.New(errors.ErrCodeInvalidConnector, "%s.arm is required", endCtx)
			}
			if end.ep.Arm >= len(level.Arms) {
				return errors.New(errors.ErrCodeOutOfRange, "%s.arm is out of range", endCtx)
			}
			if err := checkCell(level.Arms[end.ep.Arm].Cells, end.ep, expected, endCtx); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkCell(g grid.Grid, ep Endpoint, expected int, ctx string) error {
	height, width := g.Dims()
	if ep.Row >= height {
		return errors.New(errors.ErrCodeOutOfRange, "%s.row is out of range", ctx)
	}
	if ep.Col >= width {
		return errors.New(errors.ErrCodeOutOfRange, "%s.col is out of range", ctx)
	}
	if g[ep.Row][ep.Col] != expected {
		return errors.New(errors.ErrCodeInvalidConnector,
			"%s must reference a matching connector cell", ctx)
	}
	return nil
}

func (l *MultiLevelLayout) validate(cfg *Config) error {
	if len(l.Levels) < 2 {
		return errors.New(errors.ErrCodeInvalidDocument, "layout.levels must include at least two levels")
	}
	for i, level := range l.Levels {
		ctx := fmt.Sprintf("layout.levels[%d].layout", i)
		var err error
		switch layout := level.Layout.(type) {
		case *OccupancyLayout:
			err = layout.validate(cfg, ctx)
		case *EdgeLayout:
			err = layout.validate(cfg, ctx)
		default:
			err = errors.New(errors.ErrCodeInternal, "level %d has an unexpected layout shape", i)
		}
		if err != nil {
			return err
		}
	}
	return l.validateConnectors(cfg)
}

func (l *RadialMultiLayout) validate(cfg *Config) error {
	if len(l.Levels) < 2 {
		return errors.New(errors.ErrCodeInvalidDocument, "layout.levels must include at least two levels")
	}
	armCount := l.armCount()
	for i, level := range l.Levels {
		if len(level.Arms) != armCount {
			return errors.New(errors.ErrCodeInvalidDocument,
				"layout.levels[%d].layout.arms has %d arms, expected %d to match the first level",
				i, len(level.Arms), armCount)
		}
		for j, arm := range level.Arms {
			if err := arm.validate(cfg, fmt.Sprintf("layout.levels[%d].layout.arms[%d].layout", i, j)); err != nil {
				return err
			}
		}
	}

	if l.Hub.AngleDegrees <= 0 || l.Hub.AngleDegrees > 360 {
		return errors.New(errors.ErrCodeInvalidAngle,
			"layout.center_hub.angle_degrees must be in (0, 360], got %g", l.Hub.AngleDegrees)
	}
	if l.Hub.Shape == HubPolygon && (l.Hub.Sides < 3 || l.Hub.Sides < armCount) {
		return errors.New(errors.ErrCodeInvalidHub,
			"layout.center_hub.sides must be >= 3 and cover every arm, got %d", l.Hub.Sides)
	}
	min, err := l.Hub.minSize(float64(l.MaxArmWidth()), armCount)
	if err != nil {
		return err
	}
	if l.Hub.Size() < min {
		return errors.New(errors.ErrCodeHubTooSmall,
			"layout.center_hub size %.6g is below the minimum %.6g", l.Hub.Size(), min)
	}
	return l.validateConnectors(cfg)
}

func connectorsNode(connectors []*Connector) *yaml.Node {
	items := make([]*yaml.Node, len(connectors))
	for i, c := range connectors {
		items[i] = mapNode(
			strNode("type"), strNode(string(c.Kind)),
			strNode("from"), endpointNode(c.From),
			strNode("to"), endpointNode(c.To),
		)
	}
	return seqNode(items...)
}

func endpointNode(ep Endpoint) *yaml.Node {
	node := mapNode(
		strNode("level"), strNode(ep.LevelID),
		strNode("row"), intNode(ep.Row),
		strNode("col"), intNode(ep.Col),
	)
	if ep.Arm >= 0 {
		node.Content = append(node.Content, strNode("arm"), intNode(ep.Arm))
	}
	return node
}

func (l *MultiLevelLayout) specNode(cfg *Config, withNumbers bool) (*yaml.Node, error) {
	levels := make([]*yaml.Node, len(l.Levels))
	for i, level := range l.Levels {
		var layoutNode *yaml.Node
		var err error
		switch layout := level.Layout.(type) {
		case *OccupancyLayout:
			layoutNode, err = layout.specNode(cfg, withNumbers)
		case *EdgeLayout:
			layoutNode, err = layout.specNode(cfg, withNumbers)
		default:
			err = errors.New(errors.ErrCodeInternal, "level %d has an unexpected layout shape", i)
		}
		if err != nil {
			return nil, err
		}
		levels[i] = mapNode(
			strNode("id"), strNode(level.ID),
			strNode("layout"), layoutNode,
		)
	}

	node := mapNode(strNode("levels"), seqNode(levels...))
	if len(l.Connectors) > 0 {
		node.Content = append(node.Content, strNode("connectors"), connectorsNode(l.Connectors))
	}
	return node, nil
}

func (l *RadialMultiLayout) specNode(cfg *Config, withNumbers bool) (*yaml.Node, error) {
	levels := make([]*yaml.Node, len(l.Levels))
	for i, level := range l.Levels {
		arms := make([]*yaml.Node, len(level.Arms))
		for j, arm := range level.Arms {
			armNode, err := arm.specNode(cfg, withNumbers)
			if err != nil {
				return nil, err
			}
			arms[j] = mapNode(strNode("layout"), armNode)
		}
		levels[i] = mapNode(
			strNode("id"), strNode(level.ID),
			strNode("layout"), mapNode(strNode("arms"), seqNode(arms...)),
		)
	}

	node := mapNode(
		strNode("center_hub"), l.Hub.specNode(l.armCount()),
		strNode("levels"), seqNode(levels...),
	)
	if len(l.Connectors) > 0 {
		node.Content = append(node.Content, strNode("connectors"), connectorsNode(l.Connectors))
	}
	return node, nil
}

// resolveLevel matches a level selector against level ids, falling back
// to a numeric index.
func resolveLevel(ids []string, sel string) (int, error) {
	for i, id := range ids {
		if id == sel {
			return i, nil
		}
	}
	if idx, err := strconv.Atoi(sel); err == nil {
		if idx < 0 || idx >= len(ids) {
			return 0, errors.New(errors.ErrCodeUnknownLevel, "level index %d out of range", idx)
		}
		return idx, nil
	}
	return 0, errors.New(errors.ErrCodeUnknownLevel, "unknown level: %s", sel)
}

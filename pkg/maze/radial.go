package maze

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/brain-sim/antmaze/pkg/errors"
	"github.com/brain-sim/antmaze/pkg/geometry"
)

// HubShape selects the central hub geometry of a radial-arm maze.
type HubShape string

const (
	HubCircular HubShape = "circular"
	HubPolygon  HubShape = "polygon"
)

// Hub is the central platform arms radiate from. Radius applies to
// circular hubs, SideLength and Sides to polygon hubs. Sizes are
// raise-only: operations recompute the minimum and raise an undersized
// stored value but never lower a larger one.
type Hub struct {
	Shape        HubShape
	AngleDegrees float64
	Radius       float64
	SideLength   float64
	Sides        int
}

func (h *Hub) clone() *Hub {
	out := *h
	return &out
}

// Size returns the stored hub size for its shape.
func (h *Hub) Size() float64 {
	if h.Shape == HubCircular {
		return h.Radius
	}
	return h.SideLength
}

// minSize computes the smallest legal hub size for the given arms.
func (h *Hub) minSize(maxArmWidth float64, armCount int) (float64, error) {
	if h.Shape == HubCircular {
		return geometry.MinCircularRadius(maxArmWidth, armCount, geometry.Radians(h.AngleDegrees))
	}
	return geometry.MinPolygonSide(maxArmWidth)
}

// raise lifts the stored size to at least min, never lowering it.
func (h *Hub) raise(min float64) {
	if h.Shape == HubCircular {
		if h.Radius < min {
			h.Radius = min
		}
		return
	}
	if h.SideLength < min {
		h.SideLength = min
	}
}

// defaultSides returns the side count a polygon hub gets when the
// document declares none. Fewer than 3 arms still need a real polygon.
func defaultSides(armCount int) int {
	if armCount < 3 {
		return 3
	}
	return armCount
}

// raiseSides lifts a polygon hub's side count so every arm has a face
// and the shape stays a polygon. Like raise, it never lowers.
func (h *Hub) raiseSides(armCount int) {
	if h.Shape != HubPolygon {
		return
	}
	if h.Sides < armCount {
		h.Sides = armCount
	}
	if h.Sides < 3 {
		h.Sides = 3
	}
}

// RadialLayout is a hub with edge-shaped arms radiating from it.
type RadialLayout struct {
	Hub  *Hub
	Arms []*EdgeLayout
}

func (l *RadialLayout) clone() Layout {
	arms := make([]*EdgeLayout, len(l.Arms))
	for i, arm := range l.Arms {
		arms[i] = arm.cloneEdge()
	}
	return &RadialLayout{Hub: l.Hub.clone(), Arms: arms}
}

// MaxArmWidth returns the widest arm, where an arm's width is its number
// of cell rows.
func (l *RadialLayout) MaxArmWidth() int {
	widest := 0
	for _, arm := range l.Arms {
		if w := arm.Width(); w > widest {
			widest = w
		}
	}
	return widest
}

// Placements returns the deterministic hub attachment geometry for each
// arm, in arm order.
func (l *RadialLayout) Placements() ([]geometry.Placement, error) {
	span := geometry.Radians(l.Hub.AngleDegrees)
	if l.Hub.Shape == HubCircular {
		widths := make([]float64, len(l.Arms))
		for i, arm := range l.Arms {
			widths[i] = float64(arm.Width())
		}
		return geometry.CircularPlacements(l.Hub.Radius, widths, span)
	}
	return geometry.PolygonPlacements(l.Hub.SideLength, l.Hub.Sides, len(l.Arms), span)
}

func parseRadialLayout(node *yaml.Node, cfg *Config, ctx string) (*RadialLayout, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s must be a mapping", ctx)
	}
	var spec RadialLayoutSpec
	if err := node.Decode(&spec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s", ctx)
	}
	if spec.CenterHub == nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s.center_hub is required", ctx)
	}
	if len(spec.Arms) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s.arms must be a non-empty list", ctx)
	}

	arms, err := parseArms(spec.Arms, cfg, ctx)
	if err != nil {
		return nil, err
	}
	layout := &RadialLayout{Arms: arms}
	hub, err := parseHub(spec.CenterHub, layout.MaxArmWidth(), len(arms), ctx)
	if err != nil {
		return nil, err
	}
	layout.Hub = hub
	return layout, nil
}

func parseArms(specs []ArmSpec, cfg *Config, ctx string) ([]*EdgeLayout, error) {
	arms := make([]*EdgeLayout, len(specs))
	for i, spec := range specs {
		if spec.Config != nil {
			return nil, errors.New(errors.ErrCodeInvalidDocument,
				"%s.arms[%d].config is not allowed; use the top-level config", ctx, i)
		}
		if spec.Layout == nil {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "%s.arms[%d].layout is required", ctx, i)
		}
		arm, err := edgeLayoutFromSpec(spec.Layout, cfg, fmt.Sprintf("%s.arms[%d].layout", ctx, i))
		if err != nil {
			return nil, err
		}
		arms[i] = arm
	}
	return arms, nil
}

func parseHub(spec *HubSpec, maxArmWidth, armCount int, ctx string) (*Hub, error) {
	hubCtx := ctx + ".center_hub"
	shape := HubShape(spec.Shape)
	if shape != HubCircular && shape != HubPolygon {
		return nil, errors.New(errors.ErrCodeInvalidHub,
			"%s.shape must be 'circular' or 'polygon', got %q", hubCtx, spec.Shape)
	}
	if spec.ArmWidth != nil {
		return nil, errors.New(errors.ErrCodeInvalidHub,
			"%s.arm_width is derived from the arm layouts", hubCtx)
	}

	angle := 360.0
	if spec.AngleDegrees != nil {
		angle = *spec.AngleDegrees
	}
	if angle <= 0 || angle > 360 {
		return nil, errors.New(errors.ErrCodeInvalidAngle,
			"%s.angle_degrees must be in (0, 360], got %g", hubCtx, angle)
	}

	hub := &Hub{Shape: shape, AngleDegrees: angle}

	if shape == HubCircular {
		if spec.SideLength != nil || spec.Sides != nil {
			return nil, errors.New(errors.ErrCodeInvalidHub,
				"%s side_length and sides apply to polygon hubs only", hubCtx)
		}
		min, err := hub.minSize(float64(maxArmWidth), armCount)
		if err != nil {
			return nil, err
		}
		hub.Radius = min
		if spec.Radius != nil {
			if *spec.Radius <= 0 {
				return nil, errors.New(errors.ErrCodeInvalidHub, "%s.radius must be > 0", hubCtx)
			}
			if *spec.Radius < min {
				return nil, errors.New(errors.ErrCodeHubTooSmall,
					"%s.radius must be >= %.6g", hubCtx, min)
			}
			hub.Radius = *spec.Radius
		}
		return hub, nil
	}

	if spec.Radius != nil {
		return nil, errors.New(errors.ErrCodeInvalidHub, "%s.radius applies to circular hubs only", hubCtx)
	}

	hub.Sides = defaultSides(armCount)
	if spec.Sides != nil {
		if *spec.Sides < 3 || *spec.Sides < armCount {
			return nil, errors.New(errors.ErrCodeInvalidHub,
				"%s.sides must be >= 3 and cover every arm, got %d", hubCtx, *spec.Sides)
		}
		hub.Sides = *spec.Sides
	}

	minSide, err := hub.minSize(float64(maxArmWidth), armCount)
	if err != nil {
		return nil, err
	}
	hub.SideLength = minSide
	if spec.SideLength != nil {
		if *spec.SideLength <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidHub, "%s.side_length must be > 0", hubCtx)
		}
		if *spec.SideLength < minSide {
			return nil, errors.New(errors.ErrCodeHubTooSmall,
				"%s.side_length must be >= %.6g", hubCtx, minSide)
		}
		hub.SideLength = *spec.SideLength
	}
	return hub, nil
}

// normalizeHub recomputes the minimum hub size for the current arms and
// raises an undersized stored size. Freeze runs this before validation so
// edits that widen arms or change the angle stay consistent.
func (l *RadialLayout) normalizeHub() error {
	min, err := l.Hub.minSize(float64(l.MaxArmWidth()), len(l.Arms))
	if err != nil {
		return err
	}
	l.Hub.raise(min)
	l.Hub.raiseSides(len(l.Arms))
	return nil
}

func (l *RadialLayout) validate(cfg *Config, ctx string) error {
	if len(l.Arms) == 0 {
		return errors.New(errors.ErrCodeInvalidDocument, "%s.arms must be a non-empty list", ctx)
	}
	for i, arm := range l.Arms {
		if err := arm.validate(cfg, fmt.Sprintf("%s.arms[%d].layout", ctx, i)); err != nil {
			return err
		}
	}

	hubCtx := ctx + ".center_hub"
	if l.Hub.AngleDegrees <= 0 || l.Hub.AngleDegrees > 360 {
		return errors.New(errors.ErrCodeInvalidAngle,
			"%s.angle_degrees must be in (0, 360], got %g", hubCtx, l.Hub.AngleDegrees)
	}
	if l.Hub.Shape == HubPolygon && (l.Hub.Sides < 3 || l.Hub.Sides < len(l.Arms)) {
		return errors.New(errors.ErrCodeInvalidHub,
			"%s.sides must be >= 3 and cover every arm, got %d", hubCtx, l.Hub.Sides)
	}
	min, err := l.Hub.minSize(float64(l.MaxArmWidth()), len(l.Arms))
	if err != nil {
		return err
	}
	if l.Hub.Size() < min {
		return errors.New(errors.ErrCodeHubTooSmall,
			"%s size %.6g is below the minimum %.6g", hubCtx, l.Hub.Size(), min)
	}
	return nil
}

func (h *Hub) specNode(armCount int) *yaml.Node {
	node := mapNode(
		strNode("shape"), strNode(string(h.Shape)),
		strNode("angle_degrees"), floatNode(h.AngleDegrees),
	)
	if h.Shape == HubCircular {
		node.Content = append(node.Content, strNode("radius"), floatNode(h.Radius))
		return node
	}
	node.Content = append(node.Content, strNode("side_length"), floatNode(h.SideLength))
	if h.Sides != armCount {
		node.Content = append(node.Content, strNode("sides"), intNode(h.Sides))
	}
	return node
}

func (l *RadialLayout) specNode(cfg *Config, withNumbers bool) (*yaml.Node, error) {
	arms := make([]*yaml.Node, len(l.Arms))
	for i, arm := range l.Arms {
		armNode, err := arm.specNode(cfg, withNumbers)
		if err != nil {
			return nil, err
		}
		arms[i] = mapNode(strNode("layout"), armNode)
	}
	return mapNode(
		strNode("center_hub"), l.Hub.specNode(len(l.Arms)),
		strNode("arms"), seqNode(arms...),
	), nil
}

package maze

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brain-sim/antmaze/pkg/element"
	"github.com/brain-sim/antmaze/pkg/errors"
)

// Spec is the decoded document form of a maze: the three top-level keys
// of the YAML format. The layout shape depends on maze_type, so it stays
// a raw node until the type is known.
type Spec struct {
	MazeType string     `yaml:"maze_type"`
	Config   ConfigSpec `yaml:"config"`
	Layout   yaml.Node  `yaml:"layout"`
}

// ConfigSpec is the document form of a Config. "elements" is an accepted
// alias for "cell_elements". Geometry fields are pointers so absent keys
// fall back to defaults.
type ConfigSpec struct {
	CellElements  []element.Spec `yaml:"cell_elements,omitempty"`
	Elements      []element.Spec `yaml:"elements,omitempty"`
	WallElements  []element.Spec `yaml:"wall_elements,omitempty"`
	CellSize      *float64       `yaml:"cell_size,omitempty"`
	WallHeight    *float64       `yaml:"wall_height,omitempty"`
	WallThickness *float64       `yaml:"wall_thickness,omitempty"`
}

// GridText holds grid content in any of its document forms: a block
// scalar, a list of row strings, or a list of token lists.
type GridText struct {
	Lines []string
}

// UnmarshalYAML accepts the three grid sub-formats.
func (g *GridText) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		g.Lines = strings.Split(node.Value, "\n")
		return nil
	case yaml.SequenceNode:
		lines := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				lines = append(lines, item.Value)
			case yaml.SequenceNode:
				var sb strings.Builder
				for _, tok := range item.Content {
					if tok.Kind != yaml.ScalarNode {
						return errors.New(errors.ErrCodeInvalidDocument, "grid token list holds a non-scalar entry")
					}
					sb.WriteString(tok.Value)
				}
				lines = append(lines, sb.String())
			default:
				return errors.New(errors.ErrCodeInvalidDocument, "grid row must be a string or token list")
			}
		}
		g.Lines = lines
		return nil
	}
	return errors.New(errors.ErrCodeInvalidDocument, "grid must be a block scalar or a list")
}

// IsZero reports whether no grid content was present.
func (g GridText) IsZero() bool { return g.Lines == nil }

// OccupancyLayoutSpec is the document form of an occupancy layout.
// "cells" is an accepted alias for "grid".
type OccupancyLayoutSpec struct {
	Grid  GridText `yaml:"grid"`
	Cells GridText `yaml:"cells"`
}

// WallsSpec carries the two wall lattices of an edge layout.
type WallsSpec struct {
	Vertical   GridText `yaml:"vertical"`
	Horizontal GridText `yaml:"horizontal"`
}

// EdgeLayoutSpec is the document form of an edge layout.
type EdgeLayoutSpec struct {
	Cells GridText   `yaml:"cells"`
	Walls *WallsSpec `yaml:"walls"`
}

// HubSpec is the document form of a radial hub. ArmWidth and armCount-
// style keys are rejected during parsing since both derive from the arm
// layouts.
type HubSpec struct {
	Shape        string   `yaml:"shape"`
	AngleDegrees *float64 `yaml:"angle_degrees"`
	Radius       *float64 `yaml:"radius"`
	SideLength   *float64 `yaml:"side_length"`
	Sides        *int     `yaml:"sides"`
	ArmWidth     *float64 `yaml:"arm_width"`
}

// ArmSpec wraps one arm's edge layout. A per-arm config is rejected; arms
// share the top-level config.
type ArmSpec struct {
	Layout *EdgeLayoutSpec `yaml:"layout"`
	Config *yaml.Node      `yaml:"config"`
}

// RadialLayoutSpec is the document form of a radial-arm layout.
type RadialLayoutSpec struct {
	CenterHub *HubSpec  `yaml:"center_hub"`
	Arms      []ArmSpec `yaml:"arms"`
}

// LevelID accepts either a string or integer level id and keeps its
// string form.
type LevelID struct {
	Value string
	Set   bool
}

func (l *LevelID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.New(errors.ErrCodeInvalidDocument, "level id must be a scalar")
	}
	l.Value = node.Value
	l.Set = true
	return nil
}

// LevelSpec is one entry of a layout.levels list. When the "layout" key
// is absent the remaining keys form the layout inline; that fallback is
// resolved by splitLevelNode during parsing, so Layout stays a raw node.
type LevelSpec struct {
	ID     LevelID   `yaml:"id"`
	Layout yaml.Node `yaml:"layout"`
}

// LevelRef resolves a connector endpoint's level by id or by index.
type LevelRef struct {
	Name    string
	Index   int
	ByIndex bool
	Set     bool
}

func (r *LevelRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.New(errors.ErrCodeInvalidDocument, "connector level must be a scalar")
	}
	if node.Tag == "!!int" {
		if err := node.Decode(&r.Index); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "connector level index")
		}
		r.ByIndex = true
		r.Set = true
		return nil
	}
	r.Name = node.Value
	r.Set = true
	return nil
}

// EndpointSpec is one end of a connector in document form.
type EndpointSpec struct {
	Level LevelRef `yaml:"level"`
	Row   *int     `yaml:"row"`
	Col   *int     `yaml:"col"`
	Arm   *int     `yaml:"arm"`
}

// ConnectorSpec is the document form of a level connector. "kind" is an
// accepted alias for "type".
type ConnectorSpec struct {
	Type string       `yaml:"type"`
	Kind string       `yaml:"kind"`
	From *EndpointSpec `yaml:"from"`
	To   *EndpointSpec `yaml:"to"`
}

// MultiLayoutSpec is the document form of a multi-level layout. The
// center_hub key is only meaningful for radial_arm_3d, where the hub
// lives at the layout root.
type MultiLayoutSpec struct {
	CenterHub  *HubSpec        `yaml:"center_hub"`
	Levels     []yaml.Node     `yaml:"levels"`
	Connectors []ConnectorSpec `yaml:"connectors"`
}

// splitLevelNode extracts the id and layout from one levels[] entry.
// When no explicit "layout" key exists, the other keys become the layout
// mapping inline.
func splitLevelNode(node *yaml.Node, index int) (LevelID, *yaml.Node, error) {
	var id LevelID
	if node.Kind != yaml.MappingNode {
		return id, nil, errors.New(errors.ErrCodeInvalidDocument, "layout.levels[%d] must be a mapping", index)
	}

	inline := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	var layout *yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "id":
			if err := value.Decode(&id); err != nil {
				return id, nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "layout.levels[%d].id", index)
			}
		case "layout":
			layout = value
		default:
			inline.Content = append(inline.Content, key, value)
		}
	}

	if layout == nil {
		if len(inline.Content) == 0 {
			return id, nil, errors.New(errors.ErrCodeInvalidDocument, "layout.levels[%d].layout is required", index)
		}
		layout = inline
	}
	return id, layout, nil
}

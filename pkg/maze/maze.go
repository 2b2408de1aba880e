package maze

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/brain-sim/antmaze/pkg/errors"
)

// Maze is a frozen, fully validated maze. It has no mutators and is safe
// to share across readers; edit it by thawing a Draft.
type Maze struct {
	typ    Type
	config *Config
	layout Layout
}

// Type returns the canonical maze type.
func (m *Maze) Type() Type { return m.typ }

// Config returns the maze's config. Callers must treat it as read-only.
func (m *Maze) Config() *Config { return m.config }

// Layout returns the maze's layout. Callers must treat it as read-only.
func (m *Maze) Layout() Layout { return m.layout }

// Thaw deep-copies the maze into an independent editable Draft.
func (m *Maze) Thaw() *Draft {
	return &Draft{typ: m.typ, config: m.config.Clone(), layout: m.layout.clone()}
}

// SpecNode renders the maze as a YAML document node.
func (m *Maze) SpecNode(withNumbers bool) (*yaml.Node, error) {
	return specNode(m.typ, m.config, m.layout, withNumbers)
}

// MarshalText renders the maze as YAML document text.
func (m *Maze) MarshalText() ([]byte, error) {
	return marshalSpec(m.typ, m.config, m.layout, false)
}

// MarshalNumbered renders the maze as YAML document text, optionally
// with row and column numbering on the grid scalars.
func (m *Maze) MarshalNumbered(withNumbers bool) ([]byte, error) {
	return marshalSpec(m.typ, m.config, m.layout, withNumbers)
}

// Parse decodes and freezes a maze from YAML document text.
func Parse(text []byte) (*Maze, error) {
	draft, err := ParseDraft(text)
	if err != nil {
		return nil, err
	}
	return draft.Freeze()
}

// FromSpec builds and freezes a maze from its decoded document form.
func FromSpec(spec *Spec) (*Maze, error) {
	draft, err := DraftFromSpec(spec)
	if err != nil {
		return nil, err
	}
	return draft.Freeze()
}

// Draft is a mutable maze under edit. Mutators perform only local
// checks; Freeze runs full validation and yields a new Maze, leaving the
// Draft unchanged on failure.
type Draft struct {
	typ    Type
	config *Config
	layout Layout
}

// Type returns the canonical maze type.
func (d *Draft) Type() Type { return d.typ }

// Config returns the draft's mutable config.
func (d *Draft) Config() *Config { return d.config }

// Layout returns the draft's mutable layout.
func (d *Draft) Layout() Layout { return d.layout }

// ParseDraft decodes a maze draft from YAML document text without
// freezing it.
func ParseDraft(text []byte) (*Draft, error) {
	var spec Spec
	if err := yaml.Unmarshal(text, &spec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decoding maze document")
	}
	return DraftFromSpec(&spec)
}

// DraftFromSpec builds a Draft from its decoded document form.
func DraftFromSpec(spec *Spec) (*Draft, error) {
	if spec.MazeType == "" {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "maze_type is required")
	}
	t, err := ParseType(spec.MazeType)
	if err != nil {
		return nil, err
	}
	if spec.Layout.IsZero() {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "layout is required")
	}

	cfg, err := ParseConfig(t, &spec.Config)
	if err != nil {
		return nil, err
	}
	layout, err := parseLayout(t, &spec.Layout, cfg)
	if err != nil {
		return nil, err
	}
	return &Draft{typ: t, config: cfg, layout: layout}, nil
}

// Freeze validates the draft and returns an immutable Maze. Validation
// is fail-fast and all-or-nothing: any violation leaves the draft
// untouched and yields no maze. Freezing may raise an undersized hub to
// the minimum implied by the current arms.
func (d *Draft) Freeze() (*Maze, error) {
	cfg := d.config.Clone()
	layout := d.layout.clone()

	switch l := layout.(type) {
	case *RadialLayout:
		if err := l.normalizeHub(); err != nil {
			return nil, err
		}
	case *RadialMultiLayout:
		if err := l.normalizeHub(); err != nil {
			return nil, err
		}
	}

	if err := validateLayout(d.typ, cfg, layout); err != nil {
		return nil, err
	}
	return &Maze{typ: d.typ, config: cfg, layout: layout}, nil
}

// Validate runs full validation without freezing.
func (d *Draft) Validate() error {
	return validateLayout(d.typ, d.config, d.layout)
}

// SpecNode renders the draft as a YAML document node.
func (d *Draft) SpecNode(withNumbers bool) (*yaml.Node, error) {
	return specNode(d.typ, d.config, d.layout, withNumbers)
}

// MarshalText renders the draft as YAML document text.
func (d *Draft) MarshalText() ([]byte, error) {
	return marshalSpec(d.typ, d.config, d.layout, false)
}

func parseLayout(t Type, node *yaml.Node, cfg *Config) (Layout, error) {
	switch t {
	case TypeOccupancyGrid:
		return parseOccupancyLayout(node, cfg, "layout")
	case TypeEdgeGrid:
		return parseEdgeLayout(node, cfg, "layout")
	case TypeRadialArm:
		return parseRadialLayout(node, cfg, "layout")
	case TypeOccupancyGrid3D:
		return parseMultiLayout(node, cfg, TypeOccupancyGrid)
	case TypeEdgeGrid3D:
		return parseMultiLayout(node, cfg, TypeEdgeGrid)
	case TypeRadialArm3D:
		return parseRadialMultiLayout(node, cfg)
	}
	return nil, errors.New(errors.ErrCodeUnknownMazeType, "unknown maze_type: %q", t)
}

func validateLayout(t Type, cfg *Config, layout Layout) error {
	switch t {
	case TypeOccupancyGrid:
		l, ok := layout.(*OccupancyLayout)
		if !ok {
			return shapeMismatch(t)
		}
		return l.validate(cfg, "layout")
	case TypeEdgeGrid:
		l, ok := layout.(*EdgeLayout)
		if !ok {
			return shapeMismatch(t)
		}
		return l.validate(cfg, "layout")
	case TypeRadialArm:
		l, ok := layout.(*RadialLayout)
		if !ok {
			return shapeMismatch(t)
		}
		return l.validate(cfg, "layout")
	case TypeOccupancyGrid3D, TypeEdgeGrid3D:
		l, ok := layout.(*MultiLevelLayout)
		if !ok {
			return shapeMismatch(t)
		}
		return l.validate(cfg)
	case TypeRadialArm3D:
		l, ok := layout.(*RadialMultiLayout)
		if !ok {
			return shapeMismatch(t)
		}
		return l.validate(cfg)
	}
	return errors.New(errors.ErrCodeUnknownMazeType, "unknown maze_type: %q", t)
}

func shapeMismatch(t Type) error {
	return errors.New(errors.ErrCodeInternal, "layout shape does not match maze_type %q", t)
}

func specNode(t Type, cfg *Config, layout Layout, withNumbers bool) (*yaml.Node, error) {
	layoutNode, err := layout.specNode(cfg, withNumbers)
	if err != nil {
		return nil, err
	}
	return mapNode(
		strNode("maze_type"), strNode(string(t)),
		strNode("config"), configNode(cfg.Spec()),
		strNode("layout"), layoutNode,
	), nil
}

func marshalSpec(t Type, cfg *Config, layout Layout, withNumbers bool) ([]byte, error) {
	node, err := specNode(t, cfg, layout, withNumbers)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding maze document")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding maze document")
	}
	return buf.Bytes(), nil
}

package maze

import (
	"github.com/brain-sim/antmaze/pkg/element"
	"github.com/brain-sim/antmaze/pkg/errors"
)

// Default physical dimensions in meters, consumed by asset exporters.
const (
	DefaultCellSize      = 1.0
	DefaultWallHeight    = 0.5
	DefaultWallThickness = 0.05
)

// Names every multi-level cell element set must declare so connectors
// can reference their cells.
var requiredLevelElements = []string{"elevator", "escalator"}

// Config holds the element vocabulary and physical dimensions shared by
// a maze's layout.
type Config struct {
	CellElements *element.Set
	WallElements *element.Set

	CellSize      float64
	WallHeight    float64
	WallThickness float64
}

// ParseConfig builds a Config from its document form, applying the
// reserved element defaults of the given maze type.
func ParseConfig(t Type, spec *ConfigSpec) (*Config, error) {
	cfg := &Config{
		CellSize:      DefaultCellSize,
		WallHeight:    DefaultWallHeight,
		WallThickness: DefaultWallThickness,
	}
	if spec.CellSize != nil {
		cfg.CellSize = *spec.CellSize
	}
	if spec.WallHeight != nil {
		cfg.WallHeight = *spec.WallHeight
	}
	if spec.WallThickness != nil {
		cfg.WallThickness = *spec.WallThickness
	}

	cellSpecs, err := cellElementSpecs(spec)
	if err != nil {
		return nil, err
	}
	if len(spec.WallElements) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "config.wall_elements is required")
	}

	switch t.Base() {
	case TypeOccupancyGrid:
		// Occupancy cells and walls live in one value and token space.
		// Wall values are assigned first and block cell auto-assignment.
		wallDefaults := map[string]int{"wall": 1}
		cellPreferred := map[string]int{"open": 0}
		if t.Is3D() {
			cellPreferred["elevator"] = 2
			cellPreferred["escalator"] = 3
		}
		walls, err := element.FromSpecs(spec.WallElements, wallDefaults, nil)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "config.wall_elements")
		}
		blocked := walls.Values()
		cells, err := element.FromSpecs(cellSpecs, element.ResolveDefaults(cellPreferred, blocked), blocked)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "config.cell_elements")
		}
		cfg.CellElements = cells
		cfg.WallElements = walls
		if _, err := mergedElements(cfg); err != nil {
			return nil, err
		}

	case TypeEdgeGrid, TypeRadialArm:
		cellDefaults := map[string]int{"open": 0}
		if t.Is3D() {
			cellDefaults["wall"] = 1
			cellDefaults["elevator"] = 2
			cellDefaults["escalator"] = 3
		}
		cells, err := element.FromSpecs(cellSpecs, cellDefaults, nil)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "config.cell_elements")
		}
		walls, err := element.FromSpecs(spec.WallElements, map[string]int{"open": 0, "wall": 1}, nil)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "config.wall_elements")
		}
		cfg.CellElements = cells
		cfg.WallElements = walls

	default:
		return nil, errors.New(errors.ErrCodeUnknownMazeType, "unknown maze_type: %q", t)
	}

	if t.Is3D() {
		for _, name := range requiredLevelElements {
			if !cfg.CellElements.Contains(name) {
				return nil, errors.New(errors.ErrCodeMissingElement,
					"config.cell_elements must include element: %s", name)
			}
		}
	}
	return cfg, nil
}

// Spec returns the document form of the config. Geometry fields equal to
// their defaults are omitted.
func (c *Config) Spec() *ConfigSpec {
	spec := &ConfigSpec{
		CellElements: c.CellElements.Specs(),
		WallElements: c.WallElements.Specs(),
	}
	if c.CellSize != DefaultCellSize {
		v := c.CellSize
		spec.CellSize = &v
	}
	if c.WallHeight != DefaultWallHeight {
		v := c.WallHeight
		spec.WallHeight = &v
	}
	if c.WallThickness != DefaultWallThickness {
		v := c.WallThickness
		spec.WallThickness = &v
	}
	return spec
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.CellElements = c.CellElements.Clone()
	out.WallElements = c.WallElements.Clone()
	return &out
}

// connectorValues resolves the cell values connector endpoints must hold.
func (c *Config) connectorValues() (elevator, escalator int, err error) {
	elevator, err = c.CellElements.ValueOf("elevator")
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeMissingElement, err, "config.cell_elements")
	}
	escalator, err = c.CellElements.ValueOf("escalator")
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeMissingElement, err, "config.cell_elements")
	}
	return elevator, escalator, nil
}

// mergedElements combines cell and wall elements into the single lookup
// space occupancy grids are parsed and formatted with. Token or value
// collisions across the two sets are rejected.
func mergedElements(c *Config) (*element.Set, error) {
	merged, err := element.NewSet()
	if err != nil {
		return nil, err
	}
	for _, section := range []struct {
		name string
		set  *element.Set
	}{
		{"cell_elements", c.CellElements},
		{"wall_elements", c.WallElements},
	} {
		for _, el := range section.set.Elements() {
			el.Name = section.name + "." + el.Name
			if err := merged.Add(el); err != nil {
				return nil, errors.Wrap(errors.GetCode(err), err, "config.%s", section.name)
			}
		}
	}
	return merged, nil
}

func cellElementSpecs(spec *ConfigSpec) ([]element.Spec, error) {
	if len(spec.CellElements) > 0 {
		return spec.CellElements, nil
	}
	if len(spec.Elements) > 0 {
		return spec.Elements, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidDocument, "config.cell_elements is required")
}

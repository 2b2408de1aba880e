// Package maze implements the maze document model: element configs, grid
// and radial-arm layouts, multi-level stacks with connectors, and the
// Draft/Maze editing lifecycle.
package maze

import (
	"github.com/brain-sim/antmaze/pkg/errors"
)

// Type identifies a maze layout kind.
type Type string

const (
	TypeOccupancyGrid Type = "occupancy_grid"
	TypeEdgeGrid      Type = "edge_grid"
	TypeRadialArm     Type = "radial_arm"

	TypeOccupancyGrid3D Type = "occupancy_grid_3d"
	TypeEdgeGrid3D      Type = "edge_grid_3d"
	TypeRadialArm3D     Type = "radial_arm_3d"
)

// aliases maps accepted alternate names onto canonical types.
var aliases = map[string]Type{
	"occupancy_grid_2d": TypeOccupancyGrid,
	"edge_grid_2d":      TypeEdgeGrid,
	"radial_arm_2d":     TypeRadialArm,
}

// Types lists the canonical maze types in declaration order.
func Types() []Type {
	return []Type{
		TypeOccupancyGrid,
		TypeEdgeGrid,
		TypeRadialArm,
		TypeOccupancyGrid3D,
		TypeEdgeGrid3D,
		TypeRadialArm3D,
	}
}

// ParseType resolves a maze type name or alias to its canonical Type.
func ParseType(name string) (Type, error) {
	if canonical, ok := aliases[name]; ok {
		return canonical, nil
	}
	t := Type(name)
	switch t {
	case TypeOccupancyGrid, TypeEdgeGrid, TypeRadialArm,
		TypeOccupancyGrid3D, TypeEdgeGrid3D, TypeRadialArm3D:
		return t, nil
	}
	return "", errors.New(errors.ErrCodeUnknownMazeType, "unknown maze_type: %q", name)
}

// Is3D reports whether the type stacks multiple levels.
func (t Type) Is3D() bool {
	switch t {
	case TypeOccupancyGrid3D, TypeEdgeGrid3D, TypeRadialArm3D:
		return true
	}
	return false
}

// Base returns the single-level kind underlying a 3D type. 2D types
// return themselves.
func (t Type) Base() Type {
	switch t {
	case TypeOccupancyGrid3D:
		return TypeOccupancyGrid
	case TypeEdgeGrid3D:
		return TypeEdgeGrid
	case TypeRadialArm3D:
		return TypeRadialArm
	}
	return t
}

func (t Type) String() string { return string(t) }

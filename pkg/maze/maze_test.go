package maze

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/brain-sim/antmaze/pkg/errors"
	"github.com/brain-sim/antmaze/pkg/grid"
)

const occupancyDoc = `
maze_type: occupancy_grid
config:
  cell_elements:
    - {name: open, token: '.'}
    - {name: goal, token: g}
  wall_elements:
    - {name: wall, token: '#'}
layout:
  grid: |
    ..#
    #g.
`

const edgeDoc = `
maze_type: edge_grid
config:
  cell_elements:
    - {name: open, token: '.'}
  wall_elements:
    - {name: open, token: o}
    - {name: wall, token: '#'}
layout:
  cells: |
    ..
    ..
  walls:
    vertical: |
      o#o
      oo#
    horizontal: |
      ##
      oo
      ##
`

func mustParse(t *testing.T, doc string) *Maze {
	t.Helper()
	m, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return m
}

func TestParseOccupancy(t *testing.T) {
	m := mustParse(t, occupancyDoc)

	if m.Type() != TypeOccupancyGrid {
		t.Errorf("Type() = %s, want occupancy_grid", m.Type())
	}
	layout, ok := m.Layout().(*OccupancyLayout)
	if !ok {
		t.Fatalf("Layout() is %T, want *OccupancyLayout", m.Layout())
	}

	// Reserved defaults: wall takes 1 first, open keeps 0, goal is
	// auto-assigned past the blocked wall value.
	want := grid.Grid{{0, 0, 1}, {1, 2, 0}}
	if diff := cmp.Diff(want, layout.Grid); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTypeAliases(t *testing.T) {
	doc := strings.Replace(occupancyDoc, "maze_type: occupancy_grid", "maze_type: occupancy_grid_2d", 1)
	m := mustParse(t, doc)
	if m.Type() != TypeOccupancyGrid {
		t.Errorf("Type() = %s, want canonical occupancy_grid", m.Type())
	}

	if _, err := Parse([]byte(strings.Replace(occupancyDoc, "occupancy_grid", "donut_grid", 1))); !errors.Is(err, errors.ErrCodeUnknownMazeType) {
		t.Errorf("Parse() error = %v, want TYPE_UNKNOWN_MAZE_TYPE", err)
	}
}

func TestParseOccupancyUnknownToken(t *testing.T) {
	doc := strings.Replace(occupancyDoc, "#g.", "#x.", 1)
	if _, err := Parse([]byte(doc)); !errors.Is(err, errors.ErrCodeUnknownToken) {
		t.Errorf("Parse() error = %v, want ELEMENT_UNKNOWN_TOKEN", err)
	}
}

func TestParseEdge(t *testing.T) {
	m := mustParse(t, edgeDoc)

	layout, ok := m.Layout().(*EdgeLayout)
	if !ok {
		t.Fatalf("Layout() is %T, want *EdgeLayout", m.Layout())
	}
	if h, w := layout.Cells.Dims(); h != 2 || w != 2 {
		t.Errorf("cells are %dx%d, want 2x2", h, w)
	}
	if h, w := layout.VerticalWalls.Dims(); h != 2 || w != 3 {
		t.Errorf("vertical walls are %dx%d, want 2x3", h, w)
	}
	if h, w := layout.HorizontalWalls.Dims(); h != 3 || w != 2 {
		t.Errorf("horizontal walls are %dx%d, want 3x2", h, w)
	}
}

func TestParseEdgeWallDimensionMismatch(t *testing.T) {
	doc := strings.Replace(edgeDoc, "      o#o\n      oo#\n", "      o#o\n", 1)
	if _, err := Parse([]byte(doc)); !errors.Is(err, errors.ErrCodeWallDimensions) {
		t.Errorf("Parse() error = %v, want STRUCTURAL_WALL_DIMENSIONS", err)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, tt := range []struct {
		name string
		doc  string
	}{
		{"Occupancy", occupancyDoc},
		{"Edge", edgeDoc},
		{"Radial", radialDoc(4, "")},
	} {
		t.Run(tt.name, func(t *testing.T) {
			m := mustParse(t, tt.doc)
			text, err := m.MarshalText()
			if err != nil {
				t.Fatalf("MarshalText: %v", err)
			}
			again := mustParse(t, string(text))
			textAgain, err := again.MarshalText()
			if err != nil {
				t.Fatalf("MarshalText: %v", err)
			}
			if diff := cmp.Diff(string(text), string(textAgain)); diff != "" {
				t.Errorf("round trip mismatch (-first +second):\n%s", diff)
			}
		})
	}
}

func TestFreezeThawIdempotent(t *testing.T) {
	m := mustParse(t, occupancyDoc)
	again, err := m.Thaw().Freeze()
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}

	first, err := m.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	second, err := again.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if diff := cmp.Diff(string(first), string(second)); diff != "" {
		t.Errorf("freeze(thaw(m)) differs from m (-m +again):\n%s", diff)
	}
}

func TestThawIsIndependent(t *testing.T) {
	m := mustParse(t, occupancyDoc)
	draft := m.Thaw()
	if err := draft.SetCell("", 0, 0, 1); err != nil {
		t.Fatalf("SetCell: %v", err)
	}

	layout := m.Layout().(*OccupancyLayout)
	if layout.Grid[0][0] != 0 {
		t.Error("mutating a draft changed the frozen maze")
	}
}

func TestMissingDocumentParts(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"NoMazeType", "config: {}\nlayout: {grid: '..'}\n"},
		{"NoLayout", "maze_type: occupancy_grid\nconfig:\n  cell_elements: [{name: open, token: '.'}]\n  wall_elements: [{name: wall, token: '#'}]\n"},
		{"NoWallElements", "maze_type: occupancy_grid\nconfig:\n  cell_elements: [{name: open, token: '.'}]\nlayout: {grid: '..'}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Errorf("Parse() error = %v, want STRUCTURAL_INVALID_DOCUMENT", err)
			}
		})
	}
}

func TestElementsAliasAccepted(t *testing.T) {
	doc := strings.Replace(occupancyDoc, "cell_elements:", "elements:", 1)
	m := mustParse(t, doc)
	if !m.Config().CellElements.Contains("goal") {
		t.Error("elements alias was not parsed into cell_elements")
	}
}

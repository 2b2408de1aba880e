package maze

import (
	"math"
	"strings"
	"testing"

	"github.com/brain-sim/antmaze/pkg/errors"
)

// radialDoc builds a radial_arm document with armCount identical arms of
// three cell rows (width 3) and two columns. hubLines are appended to the
// center_hub mapping.
func radialDoc(armCount int, hubLines string) string {
	var sb strings.Builder
	sb.WriteString(`maze_type: radial_arm
config:
  cell_elements:
    - {name: open, token: '.'}
  wall_elements:
    - {name: open, token: o}
    - {name: wall, token: '#'}
layout:
  center_hub:
    shape: circular
    angle_degrees: 360.0
`)
	if hubLines != "" {
		sb.WriteString(hubLines)
	}
	sb.WriteString("  arms:\n")
	for i := 0; i < armCount; i++ {
		sb.WriteString(`    - layout:
        cells: |
          ..
          ..
          ..
        walls:
          vertical: |
            ooo
            ooo
            ooo
          horizontal: |
            oo
            oo
            oo
            oo
`)
	}
	return sb.String()
}

func radialLayoutOf(t *testing.T, m *Maze) *RadialLayout {
	t.Helper()
	layout, ok := m.Layout().(*RadialLayout)
	if !ok {
		t.Fatalf("Layout() is %T, want *RadialLayout", m.Layout())
	}
	return layout
}

func TestRadialHubMinimumRadius(t *testing.T) {
	// 4 arms of width 3 over 360°: minimum radius 12/(2π) ≈ 1.90986.
	m := mustParse(t, radialDoc(4, ""))
	layout := radialLayoutOf(t, m)

	if math.Abs(layout.Hub.Radius-1.90986) > 1e-4 {
		t.Errorf("Hub.Radius = %v, want ~1.90986", layout.Hub.Radius)
	}
	if layout.MaxArmWidth() != 3 {
		t.Errorf("MaxArmWidth() = %d, want 3", layout.MaxArmWidth())
	}
}

func TestRadialExplicitRadius(t *testing.T) {
	if _, err := Parse([]byte(radialDoc(4, "    radius: 1.5\n"))); !errors.Is(err, errors.ErrCodeHubTooSmall) {
		t.Errorf("Parse() error = %v, want GEOMETRY_HUB_TOO_SMALL", err)
	}

	m := mustParse(t, radialDoc(4, "    radius: 2.5\n"))
	if got := radialLayoutOf(t, m).Hub.Radius; got != 2.5 {
		t.Errorf("Hub.Radius = %v, want the explicit 2.5", got)
	}
}

func TestRadialPolygonHub(t *testing.T) {
	polygon := func(armCount int, extra string) string {
		doc := radialDoc(armCount, extra)
		return strings.Replace(doc, "shape: circular", "shape: polygon", 1)
	}

	m := mustParse(t, polygon(4, ""))
	layout := radialLayoutOf(t, m)
	if layout.Hub.SideLength != 3 {
		t.Errorf("Hub.SideLength = %v, want the max arm width 3", layout.Hub.SideLength)
	}
	if layout.Hub.Sides != 4 {
		t.Errorf("Hub.Sides = %d, want the arm count 4", layout.Hub.Sides)
	}

	if _, err := Parse([]byte(polygon(4, "    side_length: 2.0\n"))); !errors.Is(err, errors.ErrCodeHubTooSmall) {
		t.Errorf("short side error = %v, want GEOMETRY_HUB_TOO_SMALL", err)
	}

	m = mustParse(t, polygon(4, "    sides: 6\n"))
	if got := radialLayoutOf(t, m).Hub.Sides; got != 6 {
		t.Errorf("Hub.Sides = %d, want the explicit 6", got)
	}

	if _, err := Parse([]byte(polygon(4, "    sides: 2\n"))); !errors.Is(err, errors.ErrCodeInvalidHub) {
		t.Errorf("sides=2 error = %v, want GEOMETRY_INVALID_HUB", err)
	}
}

func TestRadialPolygonFewArms(t *testing.T) {
	doc := strings.Replace(radialDoc(2, ""), "shape: circular", "shape: polygon", 1)

	m := mustParse(t, doc)
	layout := radialLayoutOf(t, m)
	if layout.Hub.Sides != 3 {
		t.Errorf("Hub.Sides = %d, want 3 for a 2-arm polygon", layout.Hub.Sides)
	}

	// A frozen maze always has usable placement geometry.
	placements, err := layout.Placements()
	if err != nil {
		t.Fatalf("Placements: %v", err)
	}
	if len(placements) != 2 {
		t.Errorf("len(placements) = %d, want 2", len(placements))
	}
}

func TestSetArmCountRaisesPolygonSides(t *testing.T) {
	doc := strings.Replace(radialDoc(4, ""), "shape: circular", "shape: polygon", 1)
	draft := mustParse(t, doc).Thaw()

	if err := draft.SetArmCount(6); err != nil {
		t.Fatalf("SetArmCount: %v", err)
	}
	layout := draft.Layout().(*RadialLayout)
	if layout.Hub.Sides != 6 {
		t.Errorf("Hub.Sides = %d, want raised to 6", layout.Hub.Sides)
	}

	m, err := draft.Freeze()
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	if _, err := radialLayoutOf(t, m).Placements(); err != nil {
		t.Errorf("Placements after growth: %v", err)
	}

	// Shrinking keeps the larger side count.
	if err := draft.SetArmCount(2); err != nil {
		t.Fatalf("SetArmCount: %v", err)
	}
	if layout.Hub.Sides != 6 {
		t.Errorf("Hub.Sides = %d, want unchanged 6 after shrink", layout.Hub.Sides)
	}
}

func TestRadialHubRejectsDerivedKeys(t *testing.T) {
	if _, err := Parse([]byte(radialDoc(4, "    arm_width: 3.0\n"))); !errors.Is(err, errors.ErrCodeInvalidHub) {
		t.Errorf("arm_width error = %v, want GEOMETRY_INVALID_HUB", err)
	}
	if _, err := Parse([]byte(radialDoc(4, "    side_length: 5.0\n"))); !errors.Is(err, errors.ErrCodeInvalidHub) {
		t.Errorf("side_length on circular error = %v, want GEOMETRY_INVALID_HUB", err)
	}
}

func TestRadialHubAngleRange(t *testing.T) {
	doc := strings.Replace(radialDoc(4, ""), "angle_degrees: 360.0", "angle_degrees: 400.0", 1)
	if _, err := Parse([]byte(doc)); !errors.Is(err, errors.ErrCodeInvalidAngle) {
		t.Errorf("Parse() error = %v, want GEOMETRY_INVALID_ANGLE", err)
	}
}

func TestRadialArmConfigRejected(t *testing.T) {
	doc := strings.Replace(radialDoc(1, ""), "    - layout:", "    - config: {}\n      layout:", 1)
	if _, err := Parse([]byte(doc)); !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("Parse() error = %v, want STRUCTURAL_INVALID_DOCUMENT", err)
	}
}

func TestRadialPlacements(t *testing.T) {
	m := mustParse(t, radialDoc(4, "    radius: 2.5\n"))
	placements, err := radialLayoutOf(t, m).Placements()
	if err != nil {
		t.Fatalf("Placements: %v", err)
	}
	if len(placements) != 4 {
		t.Fatalf("got %d placements, want 4", len(placements))
	}
	for i, p := range placements {
		// sqrt(2.5² - 1.5²) = 2 for every width-3 arm.
		if math.Abs(p.Distance-2) > 1e-9 {
			t.Errorf("placement[%d].Distance = %v, want 2", i, p.Distance)
		}
		want := (float64(i) + 0.5) * math.Pi / 2
		if math.Abs(p.Angle-want) > 1e-9 {
			t.Errorf("placement[%d].Angle = %v, want %v", i, p.Angle, want)
		}
	}
}

func TestSetArmCountRaisesHub(t *testing.T) {
	draft := mustParse(t, radialDoc(4, "")).Thaw()

	if err := draft.SetArmCount(5); err != nil {
		t.Fatalf("SetArmCount: %v", err)
	}
	layout := draft.Layout().(*RadialLayout)
	if len(layout.Arms) != 5 {
		t.Fatalf("arm count = %d, want 5", len(layout.Arms))
	}
	wantMin := 15 / (2 * math.Pi)
	if math.Abs(layout.Hub.Radius-wantMin) > 1e-9 {
		t.Errorf("Hub.Radius = %v, want raised to %v", layout.Hub.Radius, wantMin)
	}

	// Shrinking never lowers the stored size.
	if err := draft.SetArmCount(2); err != nil {
		t.Fatalf("SetArmCount: %v", err)
	}
	if math.Abs(layout.Hub.Radius-wantMin) > 1e-9 {
		t.Errorf("Hub.Radius = %v, want unchanged %v after shrink", layout.Hub.Radius, wantMin)
	}
}

func TestSetHubSize(t *testing.T) {
	draft := mustParse(t, radialDoc(4, "")).Thaw()
	layout := draft.Layout().(*RadialLayout)
	before := layout.Hub.Radius

	if err := draft.SetHubSize(1.0); !errors.Is(err, errors.ErrCodeHubTooSmall) {
		t.Errorf("SetHubSize(1.0) error = %v, want GEOMETRY_HUB_TOO_SMALL", err)
	}
	if layout.Hub.Radius != before {
		t.Errorf("failed SetHubSize changed the radius to %v", layout.Hub.Radius)
	}

	if err := draft.SetHubSize(3.0); err != nil {
		t.Fatalf("SetHubSize: %v", err)
	}
	if layout.Hub.Radius != 3.0 {
		t.Errorf("Hub.Radius = %v, want 3.0", layout.Hub.Radius)
	}
}

func TestSetHubAngle(t *testing.T) {
	draft := mustParse(t, radialDoc(4, "")).Thaw()
	layout := draft.Layout().(*RadialLayout)

	if err := draft.SetHubAngle(0); !errors.Is(err, errors.ErrCodeInvalidAngle) {
		t.Errorf("SetHubAngle(0) error = %v, want GEOMETRY_INVALID_ANGLE", err)
	}

	// Halving the span doubles the minimum radius.
	if err := draft.SetHubAngle(180); err != nil {
		t.Fatalf("SetHubAngle: %v", err)
	}
	wantMin := 12 / math.Pi
	if math.Abs(layout.Hub.Radius-wantMin) > 1e-9 {
		t.Errorf("Hub.Radius = %v, want raised to %v", layout.Hub.Radius, wantMin)
	}
}

func TestResizeArmRaisesHub(t *testing.T) {
	draft := mustParse(t, radialDoc(4, "")).Thaw()

	// Widening an arm to 4 rows lifts the minimum to 16/(2π).
	if err := draft.Resize("", 0, 4, 2); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	layout := draft.Layout().(*RadialLayout)
	wantMin := 16 / (2 * math.Pi)
	if math.Abs(layout.Hub.Radius-wantMin) > 1e-9 {
		t.Errorf("Hub.Radius = %v, want raised to %v", layout.Hub.Radius, wantMin)
	}

	if _, err := draft.Freeze(); err != nil {
		t.Fatalf("Freeze after arm resize: %v", err)
	}
}

func TestSetArmCellAndWall(t *testing.T) {
	draft := mustParse(t, radialDoc(2, "")).Thaw()

	if err := draft.SetArmWall("", 1, WallVertical, 0, 0, 1); err != nil {
		t.Fatalf("SetArmWall: %v", err)
	}
	if err := draft.SetArmCell("", 1, 2, 1, 0); err != nil {
		t.Fatalf("SetArmCell: %v", err)
	}
	if err := draft.SetArmCell("", 5, 0, 0, 0); !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Errorf("SetArmCell(arm=5) error = %v, want REFERENCE_OUT_OF_RANGE", err)
	}

	layout := draft.Layout().(*RadialLayout)
	if layout.Arms[1].VerticalWalls[0][0] != 1 {
		t.Error("SetArmWall did not write the wall value")
	}
	if layout.Arms[0].VerticalWalls[0][0] != 0 {
		t.Error("SetArmWall leaked into another arm")
	}
}

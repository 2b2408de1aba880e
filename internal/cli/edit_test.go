package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brain-sim/antmaze/pkg/document"
	"github.com/brain-sim/antmaze/pkg/maze"
)

func TestParseDims(t *testing.T) {
	rows, cols, err := parseDims("8x12")
	if err != nil {
		t.Fatalf("parseDims: %v", err)
	}
	if rows != 8 || cols != 12 {
		t.Errorf("parseDims(8x12) = %d, %d", rows, cols)
	}

	if _, _, err := parseDims("8"); err == nil {
		t.Error("parseDims accepted a value with no separator")
	}
	if _, _, err := parseDims("axb"); err == nil {
		t.Error("parseDims accepted non-numeric dimensions")
	}
}

func TestParseWallKind(t *testing.T) {
	for in, want := range map[string]maze.WallKind{
		"v": maze.WallVertical, "vertical": maze.WallVertical,
		"h": maze.WallHorizontal, "horizontal": maze.WallHorizontal,
	} {
		kind, err := parseWallKind(in)
		if err != nil || kind != want {
			t.Errorf("parseWallKind(%q) = %s, %v", in, kind, err)
		}
	}
	if _, err := parseWallKind("d"); err == nil {
		t.Error("parseWallKind accepted an unknown kind")
	}
}

func TestParseElementSpec(t *testing.T) {
	spec, err := parseElementSpec("water, w")
	if err != nil {
		t.Fatalf("parseElementSpec: %v", err)
	}
	if spec.Name != "water" || spec.Token != "w" || spec.Value != nil {
		t.Errorf("parseElementSpec = %+v", spec)
	}

	spec, err = parseElementSpec("lava,L,7")
	if err != nil {
		t.Fatalf("parseElementSpec with value: %v", err)
	}
	if spec.Value == nil || *spec.Value != 7 {
		t.Errorf("parseElementSpec value = %v, want 7", spec.Value)
	}

	if _, err := parseElementSpec("lonely"); err == nil {
		t.Error("parseElementSpec accepted a single field")
	}
}

func TestApplyEditsSetCell(t *testing.T) {
	draft, err := maze.ParseDraft([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseDraft: %v", err)
	}

	n, err := applyEdits(draft, &editOpts{cells: []string{"0,0,goal"}, resizeArm: -1})
	if err != nil {
		t.Fatalf("applyEdits: %v", err)
	}
	if n != 1 {
		t.Errorf("applied = %d, want 1", n)
	}

	layout := draft.Layout().(*maze.OccupancyLayout)
	goal, _ := draft.Config().CellElements.ValueOf("goal")
	if layout.Grid[0][0] != goal {
		t.Errorf("cell (0,0) = %d, want goal value %d", layout.Grid[0][0], goal)
	}
}

func TestApplyEditsNumericValue(t *testing.T) {
	draft, err := maze.ParseDraft([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseDraft: %v", err)
	}

	if _, err := applyEdits(draft, &editOpts{cells: []string{"1,1,0"}, resizeArm: -1}); err != nil {
		t.Fatalf("applyEdits with numeric value: %v", err)
	}
	layout := draft.Layout().(*maze.OccupancyLayout)
	if layout.Grid[1][1] != 0 {
		t.Errorf("cell (1,1) = %d, want 0", layout.Grid[1][1])
	}
}

func TestApplyEditsAddElementThenUse(t *testing.T) {
	draft, err := maze.ParseDraft([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseDraft: %v", err)
	}

	opts := &editOpts{
		cellElements: []string{"water,w"},
		cells:        []string{"0,1,water"},
		resizeArm:    -1,
	}
	if _, err := applyEdits(draft, opts); err != nil {
		t.Fatalf("applyEdits: %v", err)
	}

	water, err := draft.Config().CellElements.ValueOf("water")
	if err != nil {
		t.Fatalf("water element missing: %v", err)
	}
	layout := draft.Layout().(*maze.OccupancyLayout)
	if layout.Grid[0][1] != water {
		t.Errorf("cell (0,1) = %d, want water value %d", layout.Grid[0][1], water)
	}
}

func TestApplyEditsBadValueName(t *testing.T) {
	draft, err := maze.ParseDraft([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseDraft: %v", err)
	}

	if _, err := applyEdits(draft, &editOpts{cells: []string{"0,0,lava"}, resizeArm: -1}); err == nil {
		t.Error("applyEdits accepted an unknown element name")
	}
}

func TestRunEditWritesResult(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "maze.yaml")
	if err := os.WriteFile(in, []byte(sampleDoc), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "edited.yaml")

	c := New(os.Stderr, LogInfo)
	opts := &editOpts{output: out, cells: []string{"0,0,goal"}, resizeArm: -1}
	if err := c.runEdit(t.Context(), in, opts); err != nil {
		t.Fatalf("runEdit: %v", err)
	}

	m, err := document.Import(out)
	if err != nil {
		t.Fatalf("Import(edited): %v", err)
	}
	goal, _ := m.Config().CellElements.ValueOf("goal")
	if m.Layout().(*maze.OccupancyLayout).Grid[0][0] != goal {
		t.Error("edit was not written to the output file")
	}
}

func TestRunEditNoEdits(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "maze.yaml")
	if err := os.WriteFile(in, []byte(sampleDoc), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, LogInfo)
	err := c.runEdit(t.Context(), in, &editOpts{resizeArm: -1})
	if err == nil || !strings.Contains(err.Error(), "no edits") {
		t.Errorf("runEdit with no edits = %v, want 'no edits' error", err)
	}
}

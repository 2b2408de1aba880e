package cli

import (
	"strings"
	"testing"

	"github.com/brain-sim/antmaze/pkg/maze"
)

func TestLevelDOT(t *testing.T) {
	m, err := maze.Parse([]byte(sample3DDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	dot, err := levelDOT(m)
	if err != nil {
		t.Fatalf("levelDOT: %v", err)
	}

	for _, want := range []string{
		"digraph G {",
		`"ground"`,
		`"upper"`,
		`"ground" -> "upper"`,
		"elevator (0,1)",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestLevelDOTRejects2D(t *testing.T) {
	m, err := maze.Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := levelDOT(m); err == nil {
		t.Error("levelDOT accepted a 2D maze")
	}
}

func TestValidateGraphFormat(t *testing.T) {
	for _, f := range []string{"dot", "svg", "png"} {
		if err := validateGraphFormat(f); err != nil {
			t.Errorf("validateGraphFormat(%q) = %v", f, err)
		}
	}
	if err := validateGraphFormat("pdf"); err == nil {
		t.Error("validateGraphFormat accepted pdf")
	}
}

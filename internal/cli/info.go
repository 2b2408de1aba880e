package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/brain-sim/antmaze/pkg/document"
	"github.com/brain-sim/antmaze/pkg/element"
	"github.com/brain-sim/antmaze/pkg/geometry"
	"github.com/brain-sim/antmaze/pkg/maze"
)

// infoCommand creates the info command for inspecting a maze document.
func (c *CLI) infoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [file]",
		Short: "Show a summary of a maze document",
		Long: `Show a summary of a maze document.

Prints the maze type, grid dimensions, declared elements, and for radial
and multi-level mazes the hub geometry (including per-arm placement
angles and attachment offsets), level list and connectors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd.Context(), args[0])
		},
	}
	return cmd
}

func (c *CLI) runInfo(ctx context.Context, input string) error {
	m, err := document.Import(input)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(input))
	printKeyValue("maze_type", string(m.Type()))
	cfg := m.Config()
	printKeyValue("cell_size", fmt.Sprintf("%g", cfg.CellSize))
	printKeyValue("wall_height", fmt.Sprintf("%g", cfg.WallHeight))
	printKeyValue("wall_thickness", fmt.Sprintf("%g", cfg.WallThickness))
	fmt.Println()

	printElementTable("Cell elements", cfg.CellElements)
	printElementTable("Wall elements", cfg.WallElements)

	switch l := m.Layout().(type) {
	case *maze.OccupancyLayout:
		rows, cols := l.Grid.Dims()
		printKeyValue("grid", fmt.Sprintf("%dx%d", rows, cols))
	case *maze.EdgeLayout:
		printEdgeDims(l)
	case *maze.RadialLayout:
		printHub(l.Hub, len(l.Arms))
		placements, err := l.Placements()
		if err != nil {
			return err
		}
		printArms(l.Arms, placements)
	case *maze.MultiLevelLayout:
		printLevels(levelSummaries(l))
		printConnectors(l.Connectors)
	case *maze.RadialMultiLayout:
		printHub(l.Hub, len(l.Levels[0].Arms))
		printLevels(radialLevelSummaries(l))
		printConnectors(l.Connectors)
	}
	return nil
}

func printElementTable(title string, set *element.Set) {
	rows := make([][]string, 0, set.Len())
	for _, e := range set.Elements() {
		rows = append(rows, []string{e.Name, string(e.Token), fmt.Sprintf("%d", e.Value)})
	}

	fmt.Println(StyleDim.Render(title))
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Token", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return StyleValue
		})
	fmt.Println(t.Render())
}

func printEdgeDims(l *maze.EdgeLayout) {
	rows, cols := l.Cells.Dims()
	vr, vc := l.VerticalWalls.Dims()
	hr, hc := l.HorizontalWalls.Dims()
	printKeyValue("cells", fmt.Sprintf("%dx%d", rows, cols))
	printKeyValue("walls", fmt.Sprintf("vertical %dx%d, horizontal %dx%d", vr, vc, hr, hc))
}

func printHub(h *maze.Hub, armCount int) {
	printKeyValue("hub shape", string(h.Shape))
	printKeyValue("hub angle", fmt.Sprintf("%g°", h.AngleDegrees))
	if h.Shape == maze.HubCircular {
		printKeyValue("hub radius", fmt.Sprintf("%.4g", h.Radius))
	} else {
		printKeyValue("hub side", fmt.Sprintf("%.4g", h.SideLength))
		printKeyValue("hub sides", fmt.Sprintf("%d", h.Sides))
	}
	printKeyValue("arms", fmt.Sprintf("%d", armCount))
}

func printArms(arms []*maze.EdgeLayout, placements []geometry.Placement) {
	rows := make([][]string, len(arms))
	for i, arm := range arms {
		h, w := arm.Cells.Dims()
		p := placements[i]
		rows[i] = []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%dx%d", h, w),
			fmt.Sprintf("%.1f°", geometry.Degrees(p.Angle)),
			fmt.Sprintf("%.4g", p.Distance),
			fmt.Sprintf("(%.3g, %.3g)", p.X, p.Y),
		}
	}

	fmt.Println(StyleDim.Render("Arm placements"))
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Arm", "Cells", "Angle", "Offset", "Attach").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return StyleValue
		})
	fmt.Println(t.Render())
}

type levelSummary struct {
	id   string
	dims string
}

func levelSummaries(l *maze.MultiLevelLayout) []levelSummary {
	out := make([]levelSummary, len(l.Levels))
	for i, level := range l.Levels {
		var dims string
		switch layout := level.Layout.(type) {
		case *maze.OccupancyLayout:
			h, w := layout.Grid.Dims()
			dims = fmt.Sprintf("%dx%d", h, w)
		case *maze.EdgeLayout:
			h, w := layout.Cells.Dims()
			dims = fmt.Sprintf("%dx%d", h, w)
		}
		out[i] = levelSummary{id: level.ID, dims: dims}
	}
	return out
}

func radialLevelSummaries(l *maze.RadialMultiLayout) []levelSummary {
	out := make([]levelSummary, len(l.Levels))
	for i, level := range l.Levels {
		out[i] = levelSummary{id: level.ID, dims: fmt.Sprintf("%d arms", len(level.Arms))}
	}
	return out
}

func printLevels(levels []levelSummary) {
	parts := make([]string, len(levels))
	for i, lv := range levels {
		parts[i] = fmt.Sprintf("%s (%s)", lv.id, lv.dims)
	}
	printKeyValue("levels", strings.Join(parts, ", "))
}

func printConnectors(connectors []*maze.Connector) {
	if len(connectors) == 0 {
		printKeyValue("connectors", "none")
		return
	}
	rows := make([][]string, len(connectors))
	for i, c := range connectors {
		rows[i] = []string{
			string(c.Kind),
			formatEndpoint(c.From),
			formatEndpoint(c.To),
		}
	}

	fmt.Println(StyleDim.Render("Connectors"))
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Type", "From", "To").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return StyleValue
		})
	fmt.Println(t.Render())
}

func formatEndpoint(ep maze.Endpoint) string {
	if ep.Arm >= 0 {
		return fmt.Sprintf("%s arm %d (%d, %d)", ep.LevelID, ep.Arm, ep.Row, ep.Col)
	}
	return fmt.Sprintf("%s (%d, %d)", ep.LevelID, ep.Row, ep.Col)
}

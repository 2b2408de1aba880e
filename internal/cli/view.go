package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/brain-sim/antmaze/pkg/document"
	"github.com/brain-sim/antmaze/pkg/element"
	"github.com/brain-sim/antmaze/pkg/grid"
	"github.com/brain-sim/antmaze/pkg/maze"
)

// Viewer styles
var (
	viewCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Reverse(true)
	viewWallStyle   = lipgloss.NewStyle().Foreground(colorGray)
	viewCellStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	viewDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the view command for interactive maze browsing.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Browse a maze document interactively",
		Long: `Browse a maze document interactively.

Opens a read-only terminal viewer. Arrow keys or hjkl move the cursor,
tab cycles levels on 3D mazes, [ and ] cycle arms on radial mazes, and
q quits. The status line shows the element under the cursor.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := document.Import(args[0])
			if err != nil {
				return err
			}
			model := NewMazeViewModel(m, args[0])
			p := tea.NewProgram(model, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

// MazeViewModel is the bubbletea model for the read-only maze viewer.
type MazeViewModel struct {
	Maze  *maze.Maze
	File  string
	Level int
	Arm   int
	Row   int
	Col   int
}

// NewMazeViewModel creates a viewer positioned at the first cell of the
// first level and arm.
func NewMazeViewModel(m *maze.Maze, file string) MazeViewModel {
	return MazeViewModel{Maze: m, File: file}
}

func (m MazeViewModel) Init() tea.Cmd {
	return nil
}

func (m MazeViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Row > 0 {
				m.Row--
			}
		case "down", "j":
			if m.Row < m.rows()-1 {
				m.Row++
			}
		case "left", "h":
			if m.Col > 0 {
				m.Col--
			}
		case "right", "l":
			if m.Col < m.cols()-1 {
				m.Col++
			}
		case "tab", "n":
			if n := m.levelCount(); n > 1 {
				m.Level = (m.Level + 1) % n
				m.clampCursor()
			}
		case "]":
			if n := m.armCount(); n > 1 {
				m.Arm = (m.Arm + 1) % n
				m.clampCursor()
			}
		case "[":
			if n := m.armCount(); n > 1 {
				m.Arm = (m.Arm + n - 1) % n
				m.clampCursor()
			}
		}
	}
	return m, nil
}

func (m MazeViewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.File))
	b.WriteString(viewDimStyle.Render(fmt.Sprintf("  (%s)", m.Maze.Type())))
	b.WriteString("\n")
	b.WriteString(viewDimStyle.Render("arrows/hjkl move  tab level  [ ] arm  q quit"))
	b.WriteString("\n\n")

	if m.levelCount() > 1 {
		b.WriteString(fmt.Sprintf("  Level: %s\n", StyleValue.Render(m.levelName())))
	}
	if m.armCount() > 1 {
		b.WriteString(fmt.Sprintf("  Arm:   %s\n", StyleValue.Render(fmt.Sprintf("%d / %d", m.Arm, m.armCount()))))
	}

	switch l := m.levelLayout().(type) {
	case *maze.OccupancyLayout:
		m.renderOccupancy(&b, l.Grid)
	case *maze.EdgeLayout:
		m.renderEdge(&b, l)
	}

	b.WriteString("\n")
	b.WriteString(viewDimStyle.Render(fmt.Sprintf("  (%d, %d)  ", m.Row, m.Col)))
	b.WriteString(viewCellStyle.Render(m.cursorElement()))
	b.WriteString("\n")

	return b.String()
}

// renderOccupancy draws the cell grid with one token per cell. Walls
// occupy cells in this kind, so both element sets are consulted.
func (m MazeViewModel) renderOccupancy(b *strings.Builder, g grid.Grid) {
	cells := m.Maze.Config().CellElements
	walls := m.Maze.Config().WallElements
	for r, row := range g {
		b.WriteString("  ")
		for c, v := range row {
			tok := tokenFor(cells, walls, v)
			if r == m.Row && c == m.Col {
				b.WriteString(viewCursorStyle.Render(tok))
			} else {
				b.WriteString(viewCellStyle.Render(tok))
			}
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
}

// renderEdge interleaves cells with their wall lattices so that walls
// appear between the cells they separate.
func (m MazeViewModel) renderEdge(b *strings.Builder, l *maze.EdgeLayout) {
	cells := m.Maze.Config().CellElements
	walls := m.Maze.Config().WallElements
	rows, cols := l.Cells.Dims()

	for r := 0; r <= rows; r++ {
		// Horizontal wall row above cell row r.
		b.WriteString("  ")
		for c := 0; c < cols; c++ {
			b.WriteString(viewWallStyle.Render(" " + tokenFor(walls, nil, l.HorizontalWalls[r][c])))
		}
		b.WriteString("\n")
		if r == rows {
			break
		}

		b.WriteString("  ")
		for c := 0; c < cols; c++ {
			b.WriteString(viewWallStyle.Render(tokenFor(walls, nil, l.VerticalWalls[r][c])))
			tok := tokenFor(cells, nil, l.Cells[r][c])
			if r == m.Row && c == m.Col {
				b.WriteString(viewCursorStyle.Render(tok))
			} else {
				b.WriteString(viewCellStyle.Render(tok))
			}
		}
		b.WriteString(viewWallStyle.Render(tokenFor(walls, nil, l.VerticalWalls[r][cols])))
		b.WriteString("\n")
	}
}

func (m MazeViewModel) cursorElement() string {
	g := m.cellGrid()
	if g == nil || m.Row >= len(g) || m.Col >= len(g[m.Row]) {
		return ""
	}
	v := g[m.Row][m.Col]
	if e, err := m.Maze.Config().CellElements.ByValue(v); err == nil {
		return e.Name
	}
	if e, err := m.Maze.Config().WallElements.ByValue(v); err == nil {
		return e.Name
	}
	return fmt.Sprintf("value %d", v)
}

// levelLayout returns the single-level layout the viewer is focused on:
// the layout itself for 2D mazes, the selected level (and arm, for
// radial kinds) for 3D ones.
func (m MazeViewModel) levelLayout() maze.Layout {
	switch l := m.Maze.Layout().(type) {
	case *maze.OccupancyLayout:
		return l
	case *maze.EdgeLayout:
		return l
	case *maze.RadialLayout:
		return l.Arms[m.Arm]
	case *maze.MultiLevelLayout:
		return l.Levels[m.Level].Layout
	case *maze.RadialMultiLayout:
		return l.Levels[m.Level].Arms[m.Arm]
	}
	return nil
}

func (m MazeViewModel) cellGrid() grid.Grid {
	switch l := m.levelLayout().(type) {
	case *maze.OccupancyLayout:
		return l.Grid
	case *maze.EdgeLayout:
		return l.Cells
	}
	return nil
}

func (m MazeViewModel) rows() int {
	if g := m.cellGrid(); g != nil {
		return len(g)
	}
	return 0
}

func (m MazeViewModel) cols() int {
	if g := m.cellGrid(); g != nil && len(g) > 0 {
		return len(g[0])
	}
	return 0
}

func (m MazeViewModel) levelCount() int {
	switch l := m.Maze.Layout().(type) {
	case *maze.MultiLevelLayout:
		return len(l.Levels)
	case *maze.RadialMultiLayout:
		return len(l.Levels)
	}
	return 1
}

func (m MazeViewModel) levelName() string {
	switch l := m.Maze.Layout().(type) {
	case *maze.MultiLevelLayout:
		return l.Levels[m.Level].ID
	case *maze.RadialMultiLayout:
		return l.Levels[m.Level].ID
	}
	return ""
}

func (m MazeViewModel) armCount() int {
	switch l := m.Maze.Layout().(type) {
	case *maze.RadialLayout:
		return len(l.Arms)
	case *maze.RadialMultiLayout:
		return len(l.Levels[m.Level].Arms)
	}
	return 0
}

// clampCursor keeps the cursor inside the grid after a level or arm
// switch changes the visible dimensions.
func (m *MazeViewModel) clampCursor() {
	if n := m.armCount(); n > 0 && m.Arm >= n {
		m.Arm = n - 1
	}
	if r := m.rows(); m.Row >= r && r > 0 {
		m.Row = r - 1
	}
	if c := m.cols(); m.Col >= c && c > 0 {
		m.Col = c - 1
	}
}

func tokenFor(primary, fallback *element.Set, v int) string {
	if e, err := primary.ByValue(v); err == nil {
		return string(e.Token)
	}
	if fallback != nil {
		if e, err := fallback.ByValue(v); err == nil {
			return string(e.Token)
		}
	}
	return "?"
}

package grid

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/brain-sim/antmaze/pkg/element"
	"github.com/brain-sim/antmaze/pkg/errors"
)

const (
	// largeGridThreshold is the dimension above which index labels are
	// printed only at every labelInterval-th row and column.
	largeGridThreshold = 100
	labelInterval      = 10

	// padChar fills skipped index labels so columns stay aligned.
	padChar = '_'
)

// ParseText parses a grid from a text block. Blank lines are skipped,
// trailing whitespace ignored.
func ParseText(text string, set *element.Set) (Grid, error) {
	return Parse(strings.Split(text, "\n"), set)
}

// ParseRunes parses a grid from rows of single-character tokens.
func ParseRunes(rows [][]rune, set *element.Set) (Grid, error) {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = string(row)
	}
	return Parse(lines, set)
}

// Parse parses a grid from lines of token characters.
//
// Whitespace inside lines is stripped; each surviving character must
// resolve through the element set. A numbering header ("___ 0 1 2 ...")
// and row labels ("3 | ...") as produced by Format with numbering are
// recognized and ignored. All rows must have equal length.
func Parse(lines []string, set *element.Set) (Grid, error) {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			cleaned = append(cleaned, strings.TrimRight(line, " \t\r"))
		}
	}
	if len(cleaned) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyGrid, "grid text is empty")
	}

	hasRowLabels := false
	for _, line := range cleaned {
		if strings.ContainsRune(line, '|') {
			hasRowLabels = true
			break
		}
	}

	var rows [][]rune
	for _, line := range cleaned {
		content := line
		if hasRowLabels {
			sep := strings.IndexRune(line, '|')
			if sep < 0 {
				if looksLikeHeader(line) {
					continue
				}
				return nil, errors.New(errors.ErrCodeInvalidDocument, "grid row is missing a row label separator: %q", line)
			}
			content = line[sep+1:]
		}

		tokens := stripSpace(content)
		if len(tokens) == 0 {
			return nil, errors.New(errors.ErrCodeEmptyGrid, "grid row is empty: %q", line)
		}
		rows = append(rows, tokens)
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyGrid, "grid text is empty")
	}

	width := len(rows[0])
	g := make(Grid, len(rows))
	for r, tokens := range rows {
		if len(tokens) != width {
			return nil, errors.New(errors.ErrCodeRaggedGrid, "row %d has %d tokens, want %d", r, len(tokens), width)
		}
		g[r] = make([]int, width)
		for c, token := range tokens {
			el, err := set.ByToken(token)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeUnknownToken, err, "row %d col %d", r, c)
			}
			g[r][c] = el.Value
		}
	}
	return g, nil
}

// Format renders a grid back to token lines, the inverse of Parse.
//
// With withNumbers, a column index header and per-row labels are added.
// For dimensions over 100, only every 10th index is labelled; the rest are
// padded with '_' so the header stays fixed-width.
func Format(g Grid, set *element.Set, withNumbers bool) ([]string, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	height, width := g.Dims()
	rows := make([][]rune, height)
	for r, row := range g {
		rows[r] = make([]rune, width)
		for c, value := range row {
			el, err := set.ByValue(value)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeUnknownValue, err, "row %d col %d", r, c)
			}
			rows[r][c] = el.Token
		}
	}

	if !withNumbers {
		lines := make([]string, height)
		for r, row := range rows {
			lines[r] = string(row)
		}
		return lines, nil
	}

	maxIndex := max(width-1, height-1)
	indexWidth := len(fmt.Sprint(max(maxIndex, 0)))
	cellWidth := max(indexWidth, 1)
	interval := 1
	if max(width, height) > largeGridThreshold {
		interval = labelInterval
	}

	headerCells := make([]string, width)
	for c := 0; c < width; c++ {
		if c%interval == 0 {
			headerCells[c] = fmt.Sprintf("%*d", cellWidth, c)
		} else {
			headerCells[c] = strings.Repeat(string(padChar), cellWidth)
		}
	}
	header := strings.Repeat(string(padChar), indexWidth+2) + " " + strings.Join(headerCells, " ")

	lines := make([]string, 0, height+1)
	lines = append(lines, header)
	for r, row := range rows {
		label := strings.Repeat(string(padChar), indexWidth)
		if r%interval == 0 {
			label = fmt.Sprintf("%*d", indexWidth, r)
		}
		cells := make([]string, width)
		for c, token := range row {
			cells[c] = fmt.Sprintf("%*s", cellWidth, string(token))
		}
		lines = append(lines, label+" | "+strings.Join(cells, " "))
	}
	return lines, nil
}

// FormatText renders a grid as a single newline-joined block with a
// trailing newline, the form used in documents.
func FormatText(g Grid, set *element.Set, withNumbers bool) (string, error) {
	lines, err := Format(g, set, withNumbers)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// looksLikeHeader reports whether a label-free line is a numbering header:
// nothing but digit runs and '_' padding runs.
func looksLikeHeader(line string) bool {
	for _, field := range strings.Fields(line) {
		if !isDigits(field) && !isPadding(field) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

func isPadding(s string) bool {
	for _, r := range s {
		if r != padChar {
			return false
		}
	}
	return len(s) > 0
}

func stripSpace(s string) []rune {
	var out []rune
	for _, r := range s {
		if !unicode.IsSpace(r) {
			out = append(out, r)
		}
	}
	return out
}

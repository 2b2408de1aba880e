package document

import (
	"fmt"
	"io"
	"os"

	"github.com/brain-sim/antmaze/pkg/maze"
)

// Read decodes a YAML maze document from r and freezes it.
//
// The input must be a mapping with "maze_type", "config" and "layout"
// keys. Read returns the same validation errors as [maze.Parse] for
// malformed documents; errors carry the coded taxonomy, so callers can
// check them with errors.Is against a code.
//
// The returned maze is independent of r. Read does not close r.
func Read(r io.Reader) (*maze.Maze, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return maze.Parse(data)
}

// ReadDraft decodes a YAML maze document from r without freezing it,
// for callers that want to edit before validating.
func ReadDraft(r io.Reader) (*maze.Draft, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return maze.ParseDraft(data)
}

// Import reads a YAML file at path and returns the frozen maze.
//
// Import opens the file, decodes it using [Read], and closes the file.
// Errors wrap the underlying cause with the file path for context.
func Import(path string) (*maze.Maze, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ImportDraft reads a YAML file at path and returns an editable draft.
func ImportDraft(path string) (*maze.Draft, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	d, err := ReadDraft(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Write encodes a maze as YAML and writes it to w. The output round-trips
// through [Read]: grids serialize as literal block scalars and geometry
// parameters equal to their defaults are omitted.
func Write(m *maze.Maze, w io.Writer) error {
	return WriteNumbered(m, w, false)
}

// WriteNumbered is [Write] with optional row and column numbering on the
// grid scalars. Numbered output still round-trips through [Read].
func WriteNumbered(m *maze.Maze, w io.Writer, numbers bool) error {
	text, err := m.MarshalNumbered(numbers)
	if err != nil {
		return err
	}
	if _, err := w.Write(text); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Export writes a maze to a YAML file at path.
// This is a convenience wrapper around [Write] for file-based output.
func Export(m *maze.Maze, path string) error {
	return ExportNumbered(m, path, false)
}

// ExportNumbered is [Export] with optional grid numbering.
func ExportNumbered(m *maze.Maze, path string, numbers bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteNumbered(m, f, numbers); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

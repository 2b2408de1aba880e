// Package document provides YAML import and export for maze documents.
//
// # Overview
//
// A maze document is a YAML mapping with three keys:
//
//	maze_type: edge_grid
//	config:
//	  cell_elements:
//	    - {name: open, token: '.'}
//	  wall_elements:
//	    - {name: open, token: o}
//	    - {name: wall, token: '#'}
//	layout:
//	  cells: |
//	    ..
//	    ..
//	  walls:
//	    vertical: |
//	      ooo
//	      ooo
//	    horizontal: |
//	      oo
//	      oo
//	      oo
//
// # Import
//
// Use [Import] to read a document from a file path, or [Read] to read
// from any io.Reader. Both decode and freeze the document, so the result
// is a validated, immutable maze. [ImportDraft] and [ReadDraft] skip the
// freeze for callers that want to edit first.
//
// # Export
//
// Use [Export] to write a maze to a file, or [Write] to write to any
// io.Writer. Grids serialize as literal block scalars, tokens as
// single-quoted strings, and geometry parameters equal to their defaults
// are omitted. [WriteNumbered] and [ExportNumbered] add row and column
// numbering to the grid scalars; numbered documents re-import cleanly,
// so numbering is safe for files that will be edited by hand.
//
// Exported documents round-trip: import, edit, export, and re-import
// produce an equivalent maze.
package document

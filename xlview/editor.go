package xlview

import (
	"math"
	"strconv"
	"strings"
)

// Editor owns a loaded workbook plus the original package bytes, tracks
// per-sheet dirty state, and saves by patching only the sheets that changed.
type Editor struct {
	original []byte
	wb       *Workbook

	dirtySheets map[int]bool
}

// NewEditor returns an editor with no workbook loaded.
func NewEditor() *Editor {
	return &Editor{dirtySheets: map[int]bool{}}
}

// Load opens raw XLSX bytes, replacing any previously loaded workbook and
// clearing dirty state.
func (e *Editor) Load(data []byte) error {
	wb, err := OpenWorkbookBytes(data)
	if err != nil {
		return err
	}
	e.original = data
	e.wb = wb
	e.dirtySheets = map[int]bool{}
	return nil
}

// Workbook returns the loaded workbook, or nil before Load.
func (e *Editor) Workbook() *Workbook {
	return e.wb
}

// IsDirty reports whether any edit has been committed since Load.
func (e *Editor) IsDirty() bool {
	return len(e.dirtySheets) > 0
}

// CommitEdit applies raw user input to one cell. The value type is inferred
// from the input: blank input removes the cell, "true"/"false" (any case)
// becomes a boolean, parseable numbers become numbers, everything else
// becomes an inline string. The cell keeps its existing style; display text
// is re-rendered through that style's number format.
func (e *Editor) CommitEdit(sheetIndex, row, col int, input string) error {
	if e.wb == nil {
		return NewNotLoadedError()
	}
	if sheetIndex < 0 || sheetIndex >= len(e.wb.Sheets) {
		return NewInvalidSheetIndexError(sheetIndex)
	}
	if row < 0 || col < 0 {
		return NewInvalidReferenceError(FormatCellRef(row, col))
	}
	sheet := e.wb.Sheets[sheetIndex]

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		if sheet.RemoveCell(row, col) {
			e.dirtySheets[sheetIndex] = true
		}
		return nil
	}

	cell := Cell{}
	if prev := sheet.CellAt(row, col); prev != nil {
		cell.StyleIndex = prev.StyleIndex
		cell.HasStyle = prev.HasStyle
		cell.Style = prev.Style
	}

	switch {
	case strings.EqualFold(trimmed, "true"):
		cell.Type = CellBoolean
		cell.Value = "TRUE"
		cell.Number = 1
		cell.Display = "TRUE"
	case strings.EqualFold(trimmed, "false"):
		cell.Type = CellBoolean
		cell.Value = "FALSE"
		cell.Display = "FALSE"
	default:
		n, err := strconv.ParseFloat(trimmed, 64)
		if err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			cell.Type = CellNumber
			cell.Value = trimmed
			cell.Number = n
			cell.Display = formatGeneral(n)
			if cell.Style != nil {
				compiled := cell.Style.NumberFormatCompiled()
				if compiled.IsDate() && n >= 0 {
					cell.Type = CellDate
				}
				cell.Display = compiled.Format(n, e.wb.Date1904)
			}
		} else {
			cell.Type = CellString
			cell.Value = input
			cell.Display = input
		}
	}

	sheet.SetCell(row, col, cell)
	e.dirtySheets[sheetIndex] = true
	return nil
}

// Save serializes the workbook. With no committed edits the original bytes
// come back verbatim; otherwise only the dirty sheet parts are regenerated
// and every other zip member is copied through untouched.
func (e *Editor) Save() ([]byte, error) {
	if e.wb == nil {
		return nil, NewNotLoadedError()
	}
	if len(e.dirtySheets) == 0 {
		return e.original, nil
	}

	replaced := make(map[string][]byte, len(e.dirtySheets))
	for idx := range e.dirtySheets {
		path := e.wb.SheetPaths[idx]
		replaced[path] = writeSheetXML(e.wb.Sheets[idx])
	}
	return patchZip(e.original, replaced)
}

package xlview

import (
	"math"
	"strconv"
	"strings"
)

// CellType discriminates resolved cell values.
type CellType int

// Cell types.
const (
	CellEmpty CellType = iota
	CellString
	CellNumber
	CellDate
	CellBoolean
	CellError
)

func (t CellType) String() string {
	switch t {
	case CellString:
		return "string"
	case CellNumber:
		return "number"
	case CellDate:
		return "date"
	case CellBoolean:
		return "boolean"
	case CellError:
		return "error"
	}
	return "empty"
}

// SheetState is a sheet's visibility.
type SheetState int

// Sheet visibility states.
const (
	SheetVisible SheetState = iota
	SheetHidden
	SheetVeryHidden
)

func (s SheetState) String() string {
	switch s {
	case SheetHidden:
		return "hidden"
	case SheetVeryHidden:
		return "veryHidden"
	}
	return "visible"
}

// Cell is one resolved cell. Value holds the raw value text (the number
// text, TRUE/FALSE, or string content); Display holds the number-format
// rendering. Formula text is carried but never evaluated.
type Cell struct {
	Type    CellType
	Value   string
	Display string
	Number  float64
	Formula string

	StyleIndex int
	HasStyle   bool
	Style      *Style

	Hyperlink  *Hyperlink
	HasComment bool
}

// CellData pairs a cell with its 0-indexed coordinates.
type CellData struct {
	R    int
	C    int
	Cell Cell
}

// Hyperlink is a resolved worksheet hyperlink, either external (Target) or
// internal (Location).
type Hyperlink struct {
	Ref      string
	Target   string
	Location string
	Display  string
	Tooltip  string
	External bool

	relID string
}

// ImageRef records an embedded image's package part and anchor, resolved
// through the sheet's drawing relationships. The image itself is not decoded.
type ImageRef struct {
	PartPath string
	From     CellRange
}

// SparklineGroup records the source and location ranges of one sparkline
// group from the worksheet's extension list.
type SparklineGroup struct {
	Type       string
	Sources    []string
	Locations  []string
}

// ColWidth is a sparse column width override in character units.
type ColWidth struct {
	Col   int
	Width float64
}

// RowHeight is a sparse row height override in points.
type RowHeight struct {
	Row    int
	Height float64
}

// Sheet is one fully resolved worksheet.
type Sheet struct {
	Name     string
	State    SheetState
	TabColor string
	Date1904 bool

	Cells  []CellData
	Merges []CellRange

	MaxRow int
	MaxCol int

	FrozenRows int
	FrozenCols int
	SplitRow   float64
	SplitCol   float64
	PaneState  string

	DefaultColWidth  float64
	DefaultRowHeight float64
	ColWidths        []ColWidth
	RowHeights       []RowHeight
	HiddenCols       []int
	HiddenRows       []int

	ConditionalFormats []*RuleGroup
	Hyperlinks         []Hyperlink
	Comments           map[string]Comment
	Images             []ImageRef
	SparklineGroups    []SparklineGroup

	cellIndex map[[2]int]int
}

// CellAt returns the cell at 0-indexed (row, col), or nil when absent.
func (s *Sheet) CellAt(row, col int) *Cell {
	if s.cellIndex == nil {
		s.rebuildCellIndex()
	}
	if idx, ok := s.cellIndex[[2]int{row, col}]; ok {
		return &s.Cells[idx].Cell
	}
	return nil
}

func (s *Sheet) cellSlot(row, col int) (int, bool) {
	if s.cellIndex == nil {
		s.rebuildCellIndex()
	}
	idx, ok := s.cellIndex[[2]int{row, col}]
	return idx, ok
}

func (s *Sheet) rebuildCellIndex() {
	s.cellIndex = make(map[[2]int]int, len(s.Cells))
	for i, cd := range s.Cells {
		s.cellIndex[[2]int{cd.R, cd.C}] = i
	}
}

// decodeSheet turns a raw worksheet into a resolved Sheet. The shared string
// table and stylesheet must already be decoded; style resolution itself is
// cached inside the StyleSheet.
func decodeSheet(name string, state SheetState, raw *xlsxWorksheet, shared []string, styles *StyleSheet, theme *Theme, date1904 bool) (*Sheet, error) {
	sheet := &Sheet{
		Name:             name,
		State:            state,
		Date1904:         date1904,
		DefaultColWidth:  8.43,
		DefaultRowHeight: 15.0,
		Comments:         map[string]Comment{},
	}

	if raw.SheetPr != nil && raw.SheetPr.TabColor != nil {
		sheet.TabColor = ResolveColor(raw.SheetPr.TabColor, theme)
	}

	if raw.Dimension != nil && raw.Dimension.Ref != "" {
		if r, err := ParseCellRange(raw.Dimension.Ref); err == nil {
			sheet.MaxRow = r.EndRow + 1
			sheet.MaxCol = r.EndCol + 1
		}
	}

	if raw.SheetFormatPr != nil {
		if raw.SheetFormatPr.DefaultColWidth > 0 {
			sheet.DefaultColWidth = raw.SheetFormatPr.DefaultColWidth
		}
		if raw.SheetFormatPr.DefaultRowHeight > 0 {
			sheet.DefaultRowHeight = raw.SheetFormatPr.DefaultRowHeight
		}
	}

	if raw.SheetViews != nil {
		for _, view := range raw.SheetViews.SheetView {
			if view.Pane == nil {
				continue
			}
			pane := view.Pane
			sheet.PaneState = pane.State
			if pane.State == "frozen" || pane.State == "frozenSplit" {
				sheet.FrozenCols = int(pane.XSplit)
				sheet.FrozenRows = int(pane.YSplit)
			} else {
				sheet.SplitCol = pane.XSplit
				sheet.SplitRow = pane.YSplit
			}
		}
	}

	if raw.Cols != nil {
		for _, col := range raw.Cols.Col {
			if col.Min < 1 {
				continue
			}
			for c := col.Min; c <= col.Max && c-col.Min < 16384; c++ {
				if col.Hidden {
					sheet.HiddenCols = append(sheet.HiddenCols, c-1)
				}
				if col.CustomWidth || col.Width > 0 {
					sheet.ColWidths = append(sheet.ColWidths, ColWidth{Col: c - 1, Width: col.Width})
				}
			}
		}
	}

	if err := decodeSheetData(sheet, raw, shared, styles, date1904); err != nil {
		return nil, err
	}

	if raw.MergeCells != nil {
		for _, mc := range raw.MergeCells.MergeCell {
			if r, err := ParseCellRange(mc.Ref); err == nil {
				sheet.Merges = append(sheet.Merges, r)
			}
		}
	}

	if raw.ExtLst != nil {
		for _, ext := range raw.ExtLst.Ext {
			if ext.SparklineGroups == nil {
				continue
			}
			for _, g := range ext.SparklineGroups.SparklineGroup {
				group := SparklineGroup{Type: g.Type}
				if g.Sparklines != nil {
					for _, sl := range g.Sparklines.Sparkline {
						group.Sources = append(group.Sources, sl.F)
						group.Locations = append(group.Locations, sl.Sqref)
					}
				}
				sheet.SparklineGroups = append(sheet.SparklineGroups, group)
			}
		}
	}

	sheet.ConditionalFormats = decodeConditionalFormats(raw.ConditionalFormatting, styles, theme)
	sheet.rebuildCellIndex()
	return sheet, nil
}

func decodeSheetData(sheet *Sheet, raw *xlsxWorksheet, shared []string, styles *StyleSheet, date1904 bool) error {
	for _, row := range raw.SheetData.Row {
		if row.R > 0 {
			if row.CustomHeight && row.Ht > 0 {
				sheet.RowHeights = append(sheet.RowHeights, RowHeight{Row: row.R - 1, Height: row.Ht})
			}
			if row.Hidden {
				sheet.HiddenRows = append(sheet.HiddenRows, row.R-1)
			}
		}
		for _, c := range row.C {
			r, col, err := ParseCellRef(c.R)
			if err != nil {
				return err
			}
			cell, empty := resolveCell(&c, shared, styles, date1904)
			if empty {
				continue
			}
			sheet.Cells = append(sheet.Cells, CellData{R: r, C: col, Cell: cell})
			if r+1 > sheet.MaxRow {
				sheet.MaxRow = r + 1
			}
			if col+1 > sheet.MaxCol {
				sheet.MaxCol = col + 1
			}
		}
	}
	return nil
}

// resolveCell resolves a raw <c> element's type, value, display text and
// style. A cell with no value, formula or style is dropped as empty.
func resolveCell(c *xlsxC, shared []string, styles *StyleSheet, date1904 bool) (Cell, bool) {
	cell := Cell{Type: CellEmpty}

	if c.S != nil {
		cell.StyleIndex = *c.S
		cell.HasStyle = true
		cell.Style = styles.Resolve(*c.S)
	}
	if c.F != nil {
		cell.Formula = c.F.Content
	}

	switch c.T {
	case "s":
		idx, err := strconv.Atoi(strings.TrimSpace(c.V))
		if err == nil && idx >= 0 && idx < len(shared) {
			cell.Type = CellString
			cell.Value = shared[idx]
			cell.Display = cell.Value
		}
	case "inlineStr":
		if c.Is != nil {
			cell.Type = CellString
			if c.Is.T != "" {
				cell.Value = c.Is.T
			} else {
				var sb strings.Builder
				for _, run := range c.Is.R {
					sb.WriteString(run.T.Content)
				}
				cell.Value = sb.String()
			}
			cell.Display = cell.Value
		}
	case "str":
		if c.V != "" || cell.Formula != "" {
			cell.Type = CellString
			cell.Value = c.V
			cell.Display = c.V
		}
	case "b":
		cell.Type = CellBoolean
		if strings.TrimSpace(c.V) == "1" {
			cell.Value = "TRUE"
			cell.Number = 1
		} else {
			cell.Value = "FALSE"
		}
		cell.Display = cell.Value
	case "e":
		cell.Type = CellError
		cell.Value = c.V
		cell.Display = c.V
	default:
		if c.V == "" {
			break
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(c.V), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			cell.Type = CellString
			cell.Value = c.V
			cell.Display = c.V
			break
		}
		cell.Type = CellNumber
		cell.Value = strings.TrimSpace(c.V)
		cell.Number = n
		cell.Display = formatGeneral(n)
		if cell.Style != nil {
			compiled := cell.Style.NumberFormatCompiled()
			if compiled.IsDate() && n >= 0 {
				cell.Type = CellDate
			}
			cell.Display = compiled.Format(n, date1904)
		}
	}

	if cell.Type == CellEmpty && cell.Formula == "" && !cell.HasStyle {
		return cell, true
	}
	return cell, false
}

// SetCell replaces or inserts the cell at (row, col), growing the sheet's
// used range when the coordinate lies outside it. Range aggregates for
// conditional formatting are invalidated.
func (s *Sheet) SetCell(row, col int, cell Cell) {
	if idx, ok := s.cellSlot(row, col); ok {
		s.Cells[idx].Cell = cell
	} else {
		s.Cells = append(s.Cells, CellData{R: row, C: col, Cell: cell})
		s.cellIndex[[2]int{row, col}] = len(s.Cells) - 1
	}
	if row >= s.MaxRow {
		s.MaxRow = row + 1
	}
	if col >= s.MaxCol {
		s.MaxCol = col + 1
	}
	s.invalidateAggregates()
}

// RemoveCell deletes the cell at (row, col). Reports whether a cell was
// present.
func (s *Sheet) RemoveCell(row, col int) bool {
	idx, ok := s.cellSlot(row, col)
	if !ok {
		return false
	}
	s.Cells = append(s.Cells[:idx], s.Cells[idx+1:]...)
	s.rebuildCellIndex()
	s.invalidateAggregates()
	return true
}

func (s *Sheet) invalidateAggregates() {
	for _, g := range s.ConditionalFormats {
		g.agg = nil
	}
}

package xlview

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"sort"
	"strconv"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const (
	nsSpreadsheetML = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// writeSheetXML regenerates a worksheet part from the resolved sheet model.
// String cells are written inline so the shared string table stays untouched.
// Only the elements the model carries survive regeneration; unknown original
// elements are dropped, which is why untouched sheets are never rewritten.
func writeSheetXML(sheet *Sheet) []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<worksheet xmlns="` + nsSpreadsheetML + `" xmlns:r="` + nsRelationships + `">`)

	writeDimension(&b, sheet)
	writeSheetViews(&b, sheet)
	writeSheetFormatPr(&b, sheet)
	writeCols(&b, sheet)
	writeSheetData(&b, sheet)
	writeMergeCells(&b, sheet)
	writeHyperlinks(&b, sheet)

	b.WriteString(`</worksheet>`)
	return b.Bytes()
}

func writeDimension(b *bytes.Buffer, sheet *Sheet) {
	ref := "A1"
	if sheet.MaxRow > 0 && sheet.MaxCol > 0 {
		ref = "A1:" + FormatCellRef(sheet.MaxRow-1, sheet.MaxCol-1)
	}
	b.WriteString(`<dimension ref="` + ref + `"/>`)
}

func writeSheetViews(b *bytes.Buffer, sheet *Sheet) {
	frozen := sheet.FrozenRows > 0 || sheet.FrozenCols > 0
	split := sheet.SplitRow > 0 || sheet.SplitCol > 0
	if !frozen && !split {
		return
	}
	b.WriteString(`<sheetViews><sheetView workbookViewId="0">`)
	if frozen {
		b.WriteString(`<pane`)
		if sheet.FrozenCols > 0 {
			b.WriteString(` xSplit="` + strconv.Itoa(sheet.FrozenCols) + `"`)
		}
		if sheet.FrozenRows > 0 {
			b.WriteString(` ySplit="` + strconv.Itoa(sheet.FrozenRows) + `"`)
		}
		topLeft := FormatCellRef(sheet.FrozenRows, sheet.FrozenCols)
		b.WriteString(` topLeftCell="` + topLeft + `" state="frozen"/>`)
	} else {
		b.WriteString(`<pane`)
		if sheet.SplitCol > 0 {
			b.WriteString(` xSplit="` + formatFloatAttr(sheet.SplitCol) + `"`)
		}
		if sheet.SplitRow > 0 {
			b.WriteString(` ySplit="` + formatFloatAttr(sheet.SplitRow) + `"`)
		}
		b.WriteString(` state="split"/>`)
	}
	b.WriteString(`</sheetView></sheetViews>`)
}

func writeSheetFormatPr(b *bytes.Buffer, sheet *Sheet) {
	b.WriteString(`<sheetFormatPr defaultColWidth="` + formatFloatAttr(sheet.DefaultColWidth) +
		`" defaultRowHeight="` + formatFloatAttr(sheet.DefaultRowHeight) + `"/>`)
}

func writeCols(b *bytes.Buffer, sheet *Sheet) {
	if len(sheet.ColWidths) == 0 && len(sheet.HiddenCols) == 0 {
		return
	}
	hidden := make(map[int]bool, len(sheet.HiddenCols))
	for _, c := range sheet.HiddenCols {
		hidden[c] = true
	}
	widths := make(map[int]float64, len(sheet.ColWidths))
	cols := make([]int, 0, len(sheet.ColWidths)+len(sheet.HiddenCols))
	for _, cw := range sheet.ColWidths {
		widths[cw.Col] = cw.Width
		cols = append(cols, cw.Col)
	}
	for c := range hidden {
		if _, ok := widths[c]; !ok {
			cols = append(cols, c)
		}
	}
	sort.Ints(cols)

	b.WriteString(`<cols>`)
	for _, c := range cols {
		n := strconv.Itoa(c + 1)
		b.WriteString(`<col min="` + n + `" max="` + n + `"`)
		if w, ok := widths[c]; ok && w > 0 {
			b.WriteString(` width="` + formatFloatAttr(w) + `" customWidth="1"`)
		}
		if hidden[c] {
			b.WriteString(` hidden="1"`)
		}
		b.WriteString(`/>`)
	}
	b.WriteString(`</cols>`)
}

func writeSheetData(b *bytes.Buffer, sheet *Sheet) {
	cells := append([]CellData(nil), sheet.Cells...)
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].R != cells[j].R {
			return cells[i].R < cells[j].R
		}
		return cells[i].C < cells[j].C
	})

	heights := make(map[int]float64, len(sheet.RowHeights))
	for _, rh := range sheet.RowHeights {
		heights[rh.Row] = rh.Height
	}
	hiddenRows := make(map[int]bool, len(sheet.HiddenRows))
	for _, r := range sheet.HiddenRows {
		hiddenRows[r] = true
	}

	b.WriteString(`<sheetData>`)
	i := 0
	for i < len(cells) {
		row := cells[i].R
		b.WriteString(`<row r="` + strconv.Itoa(row+1) + `"`)
		if h, ok := heights[row]; ok && h > 0 {
			b.WriteString(` ht="` + formatFloatAttr(h) + `" customHeight="1"`)
		}
		if hiddenRows[row] {
			b.WriteString(` hidden="1"`)
		}
		b.WriteString(`>`)
		for i < len(cells) && cells[i].R == row {
			writeCell(b, &cells[i])
			i++
		}
		b.WriteString(`</row>`)
	}
	b.WriteString(`</sheetData>`)
}

func writeCell(b *bytes.Buffer, cd *CellData) {
	cell := &cd.Cell
	b.WriteString(`<c r="` + FormatCellRef(cd.R, cd.C) + `"`)
	if cell.HasStyle {
		b.WriteString(` s="` + strconv.Itoa(cell.StyleIndex) + `"`)
	}

	switch cell.Type {
	case CellString:
		b.WriteString(` t="inlineStr">`)
		writeFormula(b, cell)
		b.WriteString(`<is><t`)
		if needsSpacePreserve(cell.Value) {
			b.WriteString(` xml:space="preserve"`)
		}
		b.WriteString(`>`)
		xmlEscape(b, cell.Value)
		b.WriteString(`</t></is></c>`)
	case CellBoolean:
		b.WriteString(` t="b">`)
		writeFormula(b, cell)
		if cell.Number != 0 {
			b.WriteString(`<v>1</v>`)
		} else {
			b.WriteString(`<v>0</v>`)
		}
		b.WriteString(`</c>`)
	case CellError:
		b.WriteString(` t="e">`)
		writeFormula(b, cell)
		b.WriteString(`<v>`)
		xmlEscape(b, cell.Value)
		b.WriteString(`</v></c>`)
	case CellNumber, CellDate:
		b.WriteString(`>`)
		writeFormula(b, cell)
		value := cell.Value
		if value == "" {
			value = strconv.FormatFloat(cell.Number, 'f', -1, 64)
		}
		b.WriteString(`<v>`)
		xmlEscape(b, value)
		b.WriteString(`</v></c>`)
	default:
		if cell.Formula != "" {
			b.WriteString(`>`)
			writeFormula(b, cell)
			b.WriteString(`</c>`)
		} else {
			b.WriteString(`/>`)
		}
	}
}

func writeFormula(b *bytes.Buffer, cell *Cell) {
	if cell.Formula == "" {
		return
	}
	b.WriteString(`<f>`)
	xmlEscape(b, cell.Formula)
	b.WriteString(`</f>`)
}

func writeMergeCells(b *bytes.Buffer, sheet *Sheet) {
	if len(sheet.Merges) == 0 {
		return
	}
	b.WriteString(`<mergeCells count="` + strconv.Itoa(len(sheet.Merges)) + `">`)
	for _, m := range sheet.Merges {
		ref := FormatCellRef(m.StartRow, m.StartCol) + ":" + FormatCellRef(m.EndRow, m.EndCol)
		b.WriteString(`<mergeCell ref="` + ref + `"/>`)
	}
	b.WriteString(`</mergeCells>`)
}

func writeHyperlinks(b *bytes.Buffer, sheet *Sheet) {
	if len(sheet.Hyperlinks) == 0 {
		return
	}
	b.WriteString(`<hyperlinks>`)
	for _, h := range sheet.Hyperlinks {
		b.WriteString(`<hyperlink ref="` + h.Ref + `"`)
		if h.relID != "" {
			b.WriteString(` r:id="` + h.relID + `"`)
		}
		if h.Location != "" {
			b.WriteString(` location="`)
			xmlEscape(b, h.Location)
			b.WriteString(`"`)
		}
		if h.Display != "" {
			b.WriteString(` display="`)
			xmlEscape(b, h.Display)
			b.WriteString(`"`)
		}
		if h.Tooltip != "" {
			b.WriteString(` tooltip="`)
			xmlEscape(b, h.Tooltip)
			b.WriteString(`"`)
		}
		b.WriteString(`/>`)
	}
	b.WriteString(`</hyperlinks>`)
}

func formatFloatAttr(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func needsSpacePreserve(s string) bool {
	if s == "" {
		return false
	}
	return s[0] == ' ' || s[len(s)-1] == ' ' || s[0] == '\t' || s[len(s)-1] == '\t' ||
		s[0] == '\n' || s[len(s)-1] == '\n'
}

// xmlEscape writes s with XML metacharacters escaped; quotes are escaped so
// the same helper serves element text and attribute values.
func xmlEscape(b *bytes.Buffer, s string) {
	xml.EscapeText(b, []byte(s))
}

// patchZip rebuilds the package with the given parts replaced. Every other
// member is copied through raw, so untouched parts keep their exact
// compressed bytes.
func patchZip(original []byte, replaced map[string][]byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(original), int64(len(original)))
	if err != nil {
		return nil, NewInvalidArchiveError("not a readable zip archive: %v", err)
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, f := range zr.File {
		if data, ok := replaced[f.Name]; ok {
			header := &zip.FileHeader{
				Name:     f.Name,
				Method:   zip.Deflate,
				Modified: f.Modified,
			}
			w, err := zw.CreateHeader(header)
			if err != nil {
				return nil, NewInvalidArchiveError("cannot rewrite part %s: %v", f.Name, err)
			}
			if _, err := w.Write(data); err != nil {
				return nil, NewInvalidArchiveError("cannot rewrite part %s: %v", f.Name, err)
			}
			continue
		}
		rc, err := f.OpenRaw()
		if err != nil {
			return nil, NewInvalidArchiveError("cannot open part %s: %v", f.Name, err)
		}
		header := f.FileHeader
		w, err := zw.CreateRaw(&header)
		if err != nil {
			return nil, NewInvalidArchiveError("cannot copy part %s: %v", f.Name, err)
		}
		if _, err := io.Copy(w, rc); err != nil {
			return nil, NewInvalidArchiveError("cannot copy part %s: %v", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, NewInvalidArchiveError("cannot finish archive: %v", err)
	}
	return out.Bytes(), nil
}

package xlview

import (
	"fmt"
	"strings"
)

// DefinedName is a workbook- or sheet-scoped named formula.
type DefinedName struct {
	Name       string
	Formula    string
	SheetIndex *int
}

// Workbook is a fully decoded XLSX workbook. The backing package stays open
// so part bytes can be re-read, which the round-trip save path relies on.
type Workbook struct {
	Sheets        []*Sheet
	SheetPaths    []string
	Date1904      bool
	AppName       string
	DefinedNames  []DefinedName
	Theme         *Theme
	Styles        *StyleSheet
	SharedStrings []string

	pkg          *Package
	workbookPath string
}

// Package returns the underlying opened package.
func (wb *Workbook) Package() *Package {
	return wb.pkg
}

// SheetByName returns the sheet with the given name, or nil.
func (wb *Workbook) SheetByName(name string) *Sheet {
	for _, s := range wb.Sheets {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// OpenWorkbookBytes decodes a workbook from raw XLSX bytes.
func OpenWorkbookBytes(data []byte) (*Workbook, error) {
	pkg, err := OpenPackage(data)
	if err != nil {
		return nil, err
	}
	return openWorkbook(pkg)
}

func openWorkbook(pkg *Package) (*Workbook, error) {
	wbPath, err := findWorkbookPart(pkg)
	if err != nil {
		return nil, err
	}
	wbData, err := pkg.Part(wbPath)
	if err != nil {
		return nil, err
	}
	rawWb, err := decodeWorkbook(wbPath, wbData)
	if err != nil {
		return nil, err
	}

	wb := &Workbook{pkg: pkg, workbookPath: wbPath}
	if rawWb.FileVersion != nil {
		wb.AppName = rawWb.FileVersion.AppName
	}
	if rawWb.WorkbookPr != nil {
		wb.Date1904 = rawWb.WorkbookPr.Date1904
	}
	if rawWb.DefinedNames != nil {
		for _, dn := range rawWb.DefinedNames.DefinedName {
			wb.DefinedNames = append(wb.DefinedNames, DefinedName{
				Name:       dn.Name,
				Formula:    strings.TrimSpace(dn.Data),
				SheetIndex: dn.LocalSheetID,
			})
		}
	}

	wbRels, err := pkg.relationshipList(wbPath)
	if err != nil {
		return nil, err
	}
	relByID := make(map[string]string, len(wbRels))
	var themePath, stylesPath, sstPath string
	for _, rel := range wbRels {
		relByID[rel.ID] = rel.Target
		switch {
		case strings.HasSuffix(rel.Type, "/theme"):
			themePath = rel.Target
		case strings.HasSuffix(rel.Type, "/styles"):
			stylesPath = rel.Target
		case strings.HasSuffix(rel.Type, "/sharedStrings"):
			sstPath = rel.Target
		}
	}

	wb.Theme = defaultTheme()
	if themePath != "" && pkg.HasPart(themePath) {
		data, err := pkg.Part(themePath)
		if err != nil {
			return nil, err
		}
		theme, err := decodeTheme(themePath, data)
		if err != nil {
			return nil, err
		}
		wb.Theme = theme
	}

	if sstPath != "" && pkg.HasPart(sstPath) {
		data, err := pkg.Part(sstPath)
		if err != nil {
			return nil, err
		}
		shared, err := decodeSharedStrings(sstPath, data)
		if err != nil {
			return nil, err
		}
		wb.SharedStrings = shared
	}

	var rawStyles *xlsxStyleSheet
	if stylesPath != "" && pkg.HasPart(stylesPath) {
		data, err := pkg.Part(stylesPath)
		if err != nil {
			return nil, err
		}
		rawStyles, err = decodeStyleSheet(stylesPath, data)
		if err != nil {
			return nil, err
		}
	}
	wb.Styles = NewStyleSheet(rawStyles, wb.Theme)

	for i, rawSheet := range rawWb.Sheets.Sheet {
		sheetPath := relByID[rawSheet.ID]
		if sheetPath == "" {
			sheetPath = fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)
		}
		sheet, err := loadSheet(pkg, sheetPath, rawSheet, wb)
		if err != nil {
			return nil, err
		}
		wb.Sheets = append(wb.Sheets, sheet)
		wb.SheetPaths = append(wb.SheetPaths, sheetPath)
	}
	return wb, nil
}

// findWorkbookPart resolves the officeDocument relationship from the package
// root, falling back to the conventional path.
func findWorkbookPart(pkg *Package) (string, error) {
	rels, err := pkg.relationshipList("")
	if err != nil {
		return "", err
	}
	for _, rel := range rels {
		if strings.HasSuffix(rel.Type, "/officeDocument") {
			return rel.Target, nil
		}
	}
	if pkg.HasPart("xl/workbook.xml") {
		return "xl/workbook.xml", nil
	}
	return "", NewMissingPartError("xl/workbook.xml")
}

func sheetStateOf(state string) SheetState {
	switch state {
	case "hidden":
		return SheetHidden
	case "veryHidden":
		return SheetVeryHidden
	}
	return SheetVisible
}

func loadSheet(pkg *Package, sheetPath string, meta xlsxSheet, wb *Workbook) (*Sheet, error) {
	data, err := pkg.Part(sheetPath)
	if err != nil {
		return nil, err
	}
	raw, err := decodeWorksheet(sheetPath, data)
	if err != nil {
		return nil, err
	}
	sheet, err := decodeSheet(meta.Name, sheetStateOf(meta.State), raw, wb.SharedStrings, wb.Styles, wb.Theme, wb.Date1904)
	if err != nil {
		return nil, err
	}

	rels, err := pkg.relationshipList(sheetPath)
	if err != nil {
		return nil, err
	}
	relByID := make(map[string]string, len(rels))
	var commentsPath string
	for _, rel := range rels {
		relByID[rel.ID] = rel.Target
		if strings.HasSuffix(rel.Type, "/comments") {
			commentsPath = rel.Target
		}
	}

	if raw.Hyperlinks != nil {
		for _, h := range raw.Hyperlinks.Hyperlink {
			link := Hyperlink{
				Ref:      h.Ref,
				Location: h.Location,
				Display:  h.Display,
				Tooltip:  h.Tooltip,
				relID:    h.RID,
			}
			if h.RID != "" {
				if target, ok := relByID[h.RID]; ok {
					link.Target = target
					link.External = true
				}
			}
			sheet.Hyperlinks = append(sheet.Hyperlinks, link)
		}
	}

	if commentsPath != "" && pkg.HasPart(commentsPath) {
		data, err := pkg.Part(commentsPath)
		if err != nil {
			return nil, err
		}
		comments, err := decodeComments(commentsPath, data)
		if err != nil {
			return nil, err
		}
		sheet.Comments = comments
		for ref := range comments {
			if row, col, err := ParseCellRef(ref); err == nil {
				if cell := sheet.CellAt(row, col); cell != nil {
					cell.HasComment = true
				}
			}
		}
	}

	if raw.Drawing != nil && raw.Drawing.RID != "" {
		if drawingPath, ok := relByID[raw.Drawing.RID]; ok && pkg.HasPart(drawingPath) {
			data, err := pkg.Part(drawingPath)
			if err != nil {
				return nil, err
			}
			drawingRels, err := pkg.RelationshipsOf(drawingPath)
			if err != nil {
				return nil, err
			}
			images, err := decodeDrawing(drawingPath, data, drawingRels)
			if err != nil {
				return nil, err
			}
			sheet.Images = images
		}
	}

	return sheet, nil
}

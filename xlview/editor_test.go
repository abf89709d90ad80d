package xlview

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func editorFixture(t *testing.T) []byte {
	t.Helper()
	return buildPackage(t, map[string]string{
		"xl/workbook.xml": `<?xml version="1.0"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets>
<sheet name="Data" sheetId="1" r:id="rId1"/>
<sheet name="Other" sheetId="2" r:id="rId2"/>
</sheets>
</workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet2.xml"/>
</Relationships>`,
		"xl/worksheets/sheet1.xml": sheetXML(
			`<sheetData><row r="1"><c r="A1"><v>10</v></c><c r="B1" t="inlineStr"><is><t>label</t></is></c></row></sheetData>`),
		"xl/worksheets/sheet2.xml": sheetXML(
			`<sheetData><row r="1"><c r="A1"><v>99</v></c></row></sheetData>`),
	})
}

func TestEditorNotLoaded(t *testing.T) {
	e := NewEditor()
	var notLoaded *NotLoadedError

	err := e.CommitEdit(0, 0, 0, "x")
	if !errors.As(err, &notLoaded) {
		t.Errorf("CommitEdit error = %T, want *NotLoadedError", err)
	}
	_, err = e.Save()
	if !errors.As(err, &notLoaded) {
		t.Errorf("Save error = %T, want *NotLoadedError", err)
	}
	if e.Workbook() != nil {
		t.Error("Workbook before Load should be nil")
	}
}

func TestEditorSaveUnmodified(t *testing.T) {
	original := editorFixture(t)
	e := NewEditor()
	require.NoError(t, e.Load(original))

	if e.IsDirty() {
		t.Error("freshly loaded editor should not be dirty")
	}
	saved, err := e.Save()
	require.NoError(t, err)
	if !bytes.Equal(saved, original) {
		t.Error("save without edits must return the original bytes verbatim")
	}
}

func TestEditorCommitEditInference(t *testing.T) {
	tests := []struct {
		input    string
		wantType CellType
		wantVal  string
		wantNum  float64
	}{
		{"hello", CellString, "hello", 0},
		{"  padded  ", CellString, "  padded  ", 0},
		{"42", CellNumber, "42", 42},
		{" 3.5 ", CellNumber, "3.5", 3.5},
		{"-1e3", CellNumber, "-1e3", -1000},
		{"true", CellBoolean, "TRUE", 1},
		{"FALSE", CellBoolean, "FALSE", 0},
		{"1,000", CellString, "1,000", 0},
	}
	for _, tt := range tests {
		e := NewEditor()
		require.NoError(t, e.Load(editorFixture(t)))
		require.NoError(t, e.CommitEdit(0, 2, 2, tt.input))

		cell := e.Workbook().Sheets[0].CellAt(2, 2)
		if cell == nil {
			t.Fatalf("%q: cell not set", tt.input)
		}
		if cell.Type != tt.wantType || cell.Value != tt.wantVal || cell.Number != tt.wantNum {
			t.Errorf("%q: got %v %q %v, want %v %q %v",
				tt.input, cell.Type, cell.Value, cell.Number, tt.wantType, tt.wantVal, tt.wantNum)
		}
		if !e.IsDirty() {
			t.Errorf("%q: editor should be dirty after an edit", tt.input)
		}
	}
}

func TestEditorRemoveCell(t *testing.T) {
	e := NewEditor()
	require.NoError(t, e.Load(editorFixture(t)))

	require.NoError(t, e.CommitEdit(0, 0, 0, "   "))
	if e.Workbook().Sheets[0].CellAt(0, 0) != nil {
		t.Error("blank input should remove the cell")
	}
	if !e.IsDirty() {
		t.Error("removing an existing cell marks the sheet dirty")
	}

	// Blanking a cell that does not exist is a no-op.
	e2 := NewEditor()
	require.NoError(t, e2.Load(editorFixture(t)))
	require.NoError(t, e2.CommitEdit(0, 5, 5, ""))
	if e2.IsDirty() {
		t.Error("blanking an absent cell should not dirty the sheet")
	}
}

func TestEditorBadCoordinates(t *testing.T) {
	e := NewEditor()
	require.NoError(t, e.Load(editorFixture(t)))

	var badSheet *InvalidSheetIndexError
	if err := e.CommitEdit(5, 0, 0, "x"); !errors.As(err, &badSheet) {
		t.Errorf("sheet 5 error = %T, want *InvalidSheetIndexError", err)
	}
	if err := e.CommitEdit(-1, 0, 0, "x"); !errors.As(err, &badSheet) {
		t.Errorf("sheet -1 error = %T, want *InvalidSheetIndexError", err)
	}
	var badRef *InvalidReferenceError
	if err := e.CommitEdit(0, -1, 0, "x"); !errors.As(err, &badRef) {
		t.Errorf("negative row error = %T, want *InvalidReferenceError", err)
	}
}

func TestEditorRoundTrip(t *testing.T) {
	original := editorFixture(t)
	e := NewEditor()
	require.NoError(t, e.Load(original))
	require.NoError(t, e.CommitEdit(0, 0, 0, "123.5"))
	require.NoError(t, e.CommitEdit(0, 1, 0, "edited text"))

	saved, err := e.Save()
	require.NoError(t, err)
	require.False(t, bytes.Equal(saved, original))

	wb, err := OpenWorkbookBytes(saved)
	require.NoError(t, err)
	sheet := wb.Sheets[0]

	if cell := sheet.CellAt(0, 0); cell == nil || cell.Type != CellNumber || cell.Number != 123.5 {
		t.Errorf("A1 after round trip = %+v", cell)
	}
	if cell := sheet.CellAt(1, 0); cell == nil || cell.Value != "edited text" {
		t.Errorf("A2 after round trip = %+v", cell)
	}
	// Untouched cells on the edited sheet keep their values.
	if cell := sheet.CellAt(0, 1); cell == nil || cell.Value != "label" {
		t.Errorf("B1 after round trip = %+v", cell)
	}

	// The untouched sheet part is copied through byte for byte.
	origPkg, err := OpenPackage(original)
	require.NoError(t, err)
	savedPkg, err := OpenPackage(saved)
	require.NoError(t, err)
	origPart, err := origPkg.Part("xl/worksheets/sheet2.xml")
	require.NoError(t, err)
	savedPart, err := savedPkg.Part("xl/worksheets/sheet2.xml")
	require.NoError(t, err)
	if !bytes.Equal(origPart, savedPart) {
		t.Error("untouched sheet part should pass through unchanged")
	}
}

func TestEditorSaveReadableByExcelize(t *testing.T) {
	e := NewEditor()
	require.NoError(t, e.Load(editorFixture(t)))
	require.NoError(t, e.CommitEdit(0, 0, 0, "777"))
	require.NoError(t, e.CommitEdit(0, 0, 2, "note"))

	saved, err := e.Save()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(saved))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Data", "A1")
	require.NoError(t, err)
	require.Equal(t, "777", got)

	got, err = f.GetCellValue("Data", "C1")
	require.NoError(t, err)
	require.Equal(t, "note", got)

	got, err = f.GetCellValue("Other", "A1")
	require.NoError(t, err)
	require.Equal(t, "99", got)
}

func TestEditorLoadClearsDirty(t *testing.T) {
	e := NewEditor()
	require.NoError(t, e.Load(editorFixture(t)))
	require.NoError(t, e.CommitEdit(0, 0, 0, "1"))
	require.True(t, e.IsDirty())

	require.NoError(t, e.Load(editorFixture(t)))
	require.False(t, e.IsDirty())
}

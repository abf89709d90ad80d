package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/h0rv/xlview-sub002/xlview"
)

func sampleXLSX(t *testing.T) []byte {
	t.Helper()
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", `<?xml version="1.0"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>
<Override PartName="/xl/worksheets/sheet1.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>
<Override PartName="/xl/worksheets/sheet2.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>
</Types>`},
		{"_rels/.rels", `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>
</Relationships>`},
		{"xl/workbook.xml", `<?xml version="1.0"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets>
<sheet name="Data" sheetId="1" r:id="rId1"/>
<sheet name="Other" sheetId="2" r:id="rId2"/>
</sheets>
</workbook>`},
		{"xl/_rels/workbook.xml.rels", `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet2.xml"/>
</Relationships>`},
		{"xl/worksheets/sheet1.xml", `<?xml version="1.0"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData><row r="1"><c r="A1"><v>10</v></c><c r="B1" t="inlineStr"><is><t>label</t></is></c></row></sheetData>
</worksheet>`},
		{"xl/worksheets/sheet2.xml", `<?xml version="1.0"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData><row r="1"><c r="A1"><v>99</v></c></row></sheetData>
</worksheet>`},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			t.Fatalf("create %s: %v", part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			t.Fatalf("write %s: %v", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return buf.Bytes()
}

func runCLI(args []string, stdin []byte) (string, string, int) {
	var stdout, stderr bytes.Buffer
	code := run(args, bytes.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

type dumpOutput struct {
	Date1904 bool `json:"date1904"`
	Sheets   []struct {
		Name  string `json:"name"`
		State string `json:"state"`
		Cells []struct {
			Ref     string  `json:"ref"`
			Type    string  `json:"type"`
			Value   string  `json:"value"`
			Number  float64 `json:"number"`
			Display string  `json:"display"`
		} `json:"cells"`
	} `json:"sheets"`
}

func decodeDump(t *testing.T, out string) dumpOutput {
	t.Helper()
	var doc dumpOutput
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	return doc
}

func TestRunVersion(t *testing.T) {
	out, _, code := runCLI([]string{"-v"}, nil)
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if strings.TrimSpace(out) != version {
		t.Fatalf("version output %q, want %q", out, version)
	}
}

func TestRunNoArguments(t *testing.T) {
	_, errOut, code := runCLI(nil, nil)
	if code != 2 {
		t.Fatalf("exit code %d, want 2", code)
	}
	if !strings.Contains(errOut, "Usage") {
		t.Fatalf("usage missing from stderr: %s", errOut)
	}
}

func TestRunDumpDefault(t *testing.T) {
	out, errOut, code := runCLI([]string{"-"}, sampleXLSX(t))
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	doc := decodeDump(t, out)
	if len(doc.Sheets) != 1 {
		t.Fatalf("sheets = %d, want 1 (first sheet only)", len(doc.Sheets))
	}
	sheet := doc.Sheets[0]
	if sheet.Name != "Data" {
		t.Fatalf("sheet name = %q, want Data", sheet.Name)
	}
	if len(sheet.Cells) != 2 {
		t.Fatalf("cells = %d, want 2", len(sheet.Cells))
	}
	if sheet.Cells[0].Ref != "A1" || sheet.Cells[0].Number != 10 {
		t.Fatalf("A1 = %+v", sheet.Cells[0])
	}
	if sheet.Cells[1].Type != "string" || sheet.Cells[1].Value != "label" {
		t.Fatalf("B1 = %+v", sheet.Cells[1])
	}
}

func TestRunDumpAllSheets(t *testing.T) {
	out, errOut, code := runCLI([]string{"-a", "-"}, sampleXLSX(t))
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	doc := decodeDump(t, out)
	if len(doc.Sheets) != 2 {
		t.Fatalf("sheets = %d, want 2", len(doc.Sheets))
	}
}

func TestRunDumpExcludePattern(t *testing.T) {
	out, errOut, code := runCLI([]string{"-a", "-E", "^Other$", "-"}, sampleXLSX(t))
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	doc := decodeDump(t, out)
	if len(doc.Sheets) != 1 || doc.Sheets[0].Name != "Data" {
		t.Fatalf("sheets = %+v, want only Data", doc.Sheets)
	}
}

func TestRunDumpSheetName(t *testing.T) {
	out, errOut, code := runCLI([]string{"-n", "Other", "-"}, sampleXLSX(t))
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	doc := decodeDump(t, out)
	if len(doc.Sheets) != 1 || doc.Sheets[0].Name != "Other" {
		t.Fatalf("sheets = %+v, want only Other", doc.Sheets)
	}
	if doc.Sheets[0].Cells[0].Number != 99 {
		t.Fatalf("Other!A1 = %+v", doc.Sheets[0].Cells[0])
	}
}

func TestRunSheetNameConflict(t *testing.T) {
	_, errOut, code := runCLI([]string{"-n", "Other", "-a", "-"}, sampleXLSX(t))
	if code != 2 {
		t.Fatalf("exit code %d, want 2, stderr: %s", code, errOut)
	}
}

func TestRunBadPattern(t *testing.T) {
	_, _, code := runCLI([]string{"-a", "-I", "(", "-"}, sampleXLSX(t))
	if code != 2 {
		t.Fatalf("exit code %d, want 2", code)
	}
}

func TestRunUnknownSheetName(t *testing.T) {
	_, errOut, code := runCLI([]string{"-n", "Missing", "-"}, sampleXLSX(t))
	if code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if !strings.Contains(errOut, "not found") {
		t.Fatalf("stderr = %s", errOut)
	}
}

func TestRunPrettyOutput(t *testing.T) {
	out, errOut, code := runCLI([]string{"-p", "-"}, sampleXLSX(t))
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}
	if !strings.HasPrefix(out, "{\n") {
		t.Fatalf("pretty output should be indented, got: %q", firstLine(out))
	}
}

func TestRunSetEdit(t *testing.T) {
	out, errOut, code := runCLI([]string{"--set", "Data!A1=55", "--set", "Other!B2=note", "-"}, sampleXLSX(t))
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, errOut)
	}

	wb, err := xlview.OpenWorkbookBytes([]byte(out))
	if err != nil {
		t.Fatalf("edited output is not a workbook: %v", err)
	}
	if cell := wb.Sheets[0].CellAt(0, 0); cell == nil || cell.Number != 55 {
		t.Fatalf("Data!A1 = %+v, want 55", cell)
	}
	if cell := wb.Sheets[1].CellAt(1, 1); cell == nil || cell.Value != "note" {
		t.Fatalf("Other!B2 = %+v, want note", cell)
	}
}

func TestRunSetUnknownSheet(t *testing.T) {
	_, errOut, code := runCLI([]string{"--set", "Nope!A1=1", "-"}, sampleXLSX(t))
	if code != 1 {
		t.Fatalf("exit code %d, want 1, stderr: %s", code, errOut)
	}
}

func TestParseEditSpecs(t *testing.T) {
	edits, err := parseEditSpecs([]string{"Sheet One!B2=5", "C3=", "A1=x=y"})
	if err != nil {
		t.Fatalf("parseEditSpecs error = %v", err)
	}
	if len(edits) != 3 {
		t.Fatalf("edits = %d, want 3", len(edits))
	}
	if edits[0].sheetName != "Sheet One" || edits[0].row != 1 || edits[0].col != 1 || edits[0].value != "5" {
		t.Errorf("edits[0] = %+v", edits[0])
	}
	if edits[1].sheetName != "" || edits[1].value != "" {
		t.Errorf("edits[1] = %+v", edits[1])
	}
	// Only the first '=' splits the spec.
	if edits[2].value != "x=y" {
		t.Errorf("edits[2] = %+v", edits[2])
	}

	if _, err := parseEditSpecs([]string{"A1"}); err == nil {
		t.Error("spec without '=' should fail")
	}
	if _, err := parseEditSpecs([]string{"bogus=1"}); err == nil {
		t.Error("unparseable reference should fail")
	}
}

func firstLine(out string) string {
	if i := strings.IndexByte(out, '\n'); i >= 0 {
		return out[:i]
	}
	return out
}

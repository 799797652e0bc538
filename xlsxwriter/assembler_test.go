package xlsxwriter

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// unzipParts reads every entry of a serialized package into a map keyed by
// part name.
func unzipParts(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("package is not a readable container: %v", err)
	}
	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		parts[f.Name] = string(content)
	}
	return parts
}

func newTestWorkbook(t *testing.T) (*Workbook, *Worksheet) {
	t.Helper()
	wb := NewWorkbookWithRepository(NewStyleRepository())
	ws, err := wb.AddSheet("Sheet1")
	if err != nil {
		t.Fatalf("AddSheet error: %v", err)
	}
	return wb, ws
}

func TestSerializePartList(t *testing.T) {
	wb, ws := newTestWorkbook(t)
	ws.SetString(0, 0, "Hi")
	data, err := wb.Serialize()
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	parts := unzipParts(t, data)
	want := []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"xl/workbook.xml",
		"xl/_rels/workbook.xml.rels",
		"xl/styles.xml",
		"xl/worksheets/sheet1.xml",
	}
	if len(parts) != len(want) {
		t.Errorf("part count = %d, want %d", len(parts), len(want))
	}
	for _, name := range want {
		if _, ok := parts[name]; !ok {
			t.Errorf("missing part %s", name)
		}
	}
	if _, ok := parts["docProps/core.xml"]; ok {
		t.Error("metadata parts should be absent when no properties are set")
	}
}

func TestSerializeInlineString(t *testing.T) {
	wb, ws := newTestWorkbook(t)
	ws.SetString(0, 0, "Hi")
	data, err := wb.Serialize()
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	sheet := unzipParts(t, data)["xl/worksheets/sheet1.xml"]
	wantCell := `<c r="A1" t="inlineStr"><is><t>Hi</t></is></c>`
	if !strings.Contains(sheet, wantCell) {
		t.Errorf("sheet part missing %s\ngot: %s", wantCell, sheet)
	}
	if strings.Contains(sheet, ` s="`) {
		t.Error("unstyled cell should carry no style index attribute")
	}
}

func TestSerializeCellValues(t *testing.T) {
	wb, ws := newTestWorkbook(t)
	ws.SetNumber(0, 0, 3.14)
	ws.SetBool(0, 1, true)
	ws.SetBool(0, 2, false)
	ws.SetFormula(0, 3, "=SUM(A1:A2)")
	data, err := wb.Serialize()
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	sheet := unzipParts(t, data)["xl/worksheets/sheet1.xml"]
	for _, want := range []string{
		`<c r="A1"><v>3.14</v></c>`,
		`<c r="B1" t="b"><v>1</v></c>`,
		`<c r="C1" t="b"><v>0</v></c>`,
		`<c r="D1"><f>SUM(A1:A2)</f></c>`,
	} {
		if !strings.Contains(sheet, want) {
			t.Errorf("sheet part missing %s\ngot: %s", want, sheet)
		}
	}
}

func TestSerializeDimensionAndHeights(t *testing.T) {
	wb, ws := newTestWorkbook(t)
	ws.SetString(0, 0, "a")
	ws.SetString(1, 1, "b")
	ws.SetColWidth(1, 20)
	ws.SetRowHeight(1, 30)
	data, err := wb.Serialize()
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	sheet := unzipParts(t, data)["xl/worksheets/sheet1.xml"]
	for _, want := range []string{
		`<sheetFormatPr defaultColWidth="8.43" defaultRowHeight="15">`,
		`<dimension ref="A1:B2">`,
		`<col min="2" max="2" width="20" customWidth="true">`,
		`<row r="2" ht="30" customHeight="true">`,
	} {
		if !strings.Contains(sheet, want) {
			t.Errorf("sheet part missing %s\ngot: %s", want, sheet)
		}
	}
}

func TestSerializeRowHeightWithoutCells(t *testing.T) {
	wb, ws := newTestWorkbook(t)
	ws.SetString(0, 0, "a")
	ws.SetRowHeight(5, 42)
	ws.SetString(7, 0, "b")
	data, err := wb.Serialize()
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	sheet := unzipParts(t, data)["xl/worksheets/sheet1.xml"]
	bare := `<row r="6" ht="42" customHeight="true"></row>`
	if !strings.Contains(sheet, bare) {
		t.Fatalf("height override on a cell-less row lost\ngot: %s", sheet)
	}
	// Rows stay in ascending order around the bare row.
	if !(strings.Index(sheet, `<row r="1"`) < strings.Index(sheet, `<row r="6"`) &&
		strings.Index(sheet, `<row r="6"`) < strings.Index(sheet, `<row r="8"`)) {
		t.Errorf("rows out of order\ngot: %s", sheet)
	}
}

func TestSerializeDateTimeFormats(t *testing.T) {
	wb, ws := newTestWorkbook(t)
	ws.SetDate(0, 0, time.Date(2005, 2, 23, 0, 0, 0, 0, time.UTC))
	ws.SetTime(1, 0, 17, 47, 13)
	ws.SetNumber(2, 0, 38406)
	data, err := wb.Serialize()
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	parts := unzipParts(t, data)

	// Date and time cells carry a style index; a plain number does not.
	sheet := parts["xl/worksheets/sheet1.xml"]
	if !strings.Contains(sheet, `<c r="A1" s="`) || !strings.Contains(sheet, `<c r="A2" s="`) {
		t.Errorf("date/time cells missing presentation style\ngot: %s", sheet)
	}
	if !strings.Contains(sheet, `<c r="A3"><v>38406</v></c>`) {
		t.Errorf("plain number cell should stay unstyled\ngot: %s", sheet)
	}

	styles := parts["xl/styles.xml"]
	if !strings.Contains(styles, `numFmtId="14"`) {
		t.Errorf("styles part missing built-in date format\ngot: %s", styles)
	}
	if !strings.Contains(styles, `numFmtId="21"`) {
		t.Errorf("styles part missing built-in time format\ngot: %s", styles)
	}
	if strings.Contains(styles, "<numFmts") {
		t.Error("built-in date/time formats must not emit a custom numFmts block")
	}
}

func TestSerializeDateExplicitStyleWins(t *testing.T) {
	wb, ws := newTestWorkbook(t)
	ws.SetDate(0, 0, time.Date(2005, 2, 23, 0, 0, 0, 0, time.UTC))
	ws.SetCellStyle(0, 0, &Style{NumFormat: &NumberFormat{Code: "yyyy-mm-dd"}})
	data, err := wb.Serialize()
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	styles := unzipParts(t, data)["xl/styles.xml"]
	if !strings.Contains(styles, `formatCode="yyyy-mm-dd"`) {
		t.Errorf("explicit date format missing\ngot: %s", styles)
	}
	if strings.Contains(styles, `numFmtId="14"`) {
		t.Error("default date style must not be added when the cell is styled")
	}
}

func TestSerializeGridCorner(t *testing.T) {
	wb, ws := newTestWorkbook(t)
	if _, err := ws.SetString(XL_MAX_ROW, XL_MAX_COL, "corner"); err != nil {
		t.Fatalf("SetString error: %v", err)
	}
	data, err := wb.Serialize()
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	sheet := unzipParts(t, data)["xl/worksheets/sheet1.xml"]
	if !strings.Contains(sheet, `<c r="XFD1048576"`) {
		t.Errorf("sheet part missing the corner cell\ngot: %s", sheet)
	}
}

func TestSerializeNoSheets(t *testing.T) {
	wb := NewWorkbookWithRepository(NewStyleRepository())
	if _, err := wb.Serialize(); err == nil {
		t.Error("serializing an empty workbook expected error, got nil")
	} else if _, ok := err.(*FormatError); !ok {
		t.Errorf("error = %T, want *FormatError", err)
	}
}

func TestSerializeMergedRange(t *testing.T) {
	wb, ws := newTestWorkbook(t)
	ws.SetString(0, 0, "anchor")
	ws.SetString(0, 1, "covered")
	if err := ws.MergeRange("A1:B2"); err != nil {
		t.Fatalf("MergeRange error: %v", err)
	}
	data, err := wb.Serialize()
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	sheet := unzipParts(t, data)["xl/worksheets/sheet1.xml"]
	if !strings.Contains(sheet, `<c r="A1" t="inlineStr"><is><t>anchor</t></is></c>`) {
		t.Errorf("anchor cell should keep its content\ngot: %s", sheet)
	}
	if strings.Contains(sheet, "covered") {
		t.Error("subordinate merged cell content should be suppressed")
	}
	for _, want := range []string{
		`<c r="B1"></c>`,
		`<c r="A2"></c>`,
		`<c r="B2"></c>`,
		`<mergeCells count="1"><mergeCell ref="A1:B2">`,
	} {
		if !strings.Contains(sheet, want) {
			t.Errorf("sheet part missing %s\ngot: %s", want, sheet)
		}
	}
}

func TestSerializeStyleTables(t *testing.T) {
	wb, ws := newTestWorkbook(t)
	ws.SetString(0, 0, "a")
	ws.SetString(0, 1, "b")
	bold := &Style{Font: &Font{Name: "Calibri", Size: 11, Bold: true}}
	ws.SetCellStyle(0, 0, bold)
	ws.SetCellStyle(0, 1, bold.Clone())
	data, err := wb.Serialize()
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	styles := unzipParts(t, data)["xl/styles.xml"]
	for _, want := range []string{
		`<fonts count="2">`,
		`<fills count="2">`,
		`<cellXfs count="3">`,
		`<patternFill patternType="gray125">`,
		`<cellStyle name="Normal" xfId="0" builtinId="0">`,
		`<b></b>`,
	} {
		if !strings.Contains(styles, want) {
			t.Errorf("styles part missing %s\ngot: %s", want, styles)
		}
	}

	// The two bold cells must share one style index.
	sheet := unzipParts(t, data)["xl/worksheets/sheet1.xml"]
	styleIndex := func(ref string) string {
		marker := `<c r="` + ref + `" s="`
		i := strings.Index(sheet, marker)
		if i < 0 {
			t.Fatalf("cell %s missing style index\ngot: %s", ref, sheet)
		}
		rest := sheet[i+len(marker):]
		return rest[:strings.Index(rest, `"`)]
	}
	if styleIndex("A1") != styleIndex("B1") {
		t.Error("identical styles should resolve to the same index")
	}
}

func TestSerializeCustomNumberFormat(t *testing.T) {
	wb, ws := newTestWorkbook(t)
	ws.SetNumber(0, 0, 1234.5)
	ws.SetCellStyle(0, 0, &Style{NumFormat: &NumberFormat{Code: "#,##0.000"}})
	data, err := wb.Serialize()
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	styles := unzipParts(t, data)["xl/styles.xml"]
	want := `<numFmts count="1"><numFmt numFmtId="164" formatCode="#,##0.000">`
	if !strings.Contains(styles, want) {
		t.Errorf("styles part missing %s\ngot: %s", want, styles)
	}
}

func TestSerializeSheetProtection(t *testing.T) {
	wb, ws := newTestWorkbook(t)
	ws.SetString(0, 0, "locked")
	ws.Protect(&SheetProtection{Password: "password", AllowSort: true})
	data, err := wb.Serialize()
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	sheet := unzipParts(t, data)["xl/worksheets/sheet1.xml"]
	if !strings.Contains(sheet, `password="83AF"`) {
		t.Errorf("sheet protection missing hashed password\ngot: %s", sheet)
	}
	if !strings.Contains(sheet, `sort="false"`) {
		t.Error("re-allowed action should be emitted explicitly")
	}
	if strings.Contains(sheet, `formatCells=`) {
		t.Error("default-blocked action should stay implicit")
	}
}

func TestSerializeWorkbookProtection(t *testing.T) {
	wb, ws := newTestWorkbook(t)
	ws.SetString(0, 0, "x")
	wb.Protection = &WorkbookProtection{Password: "test", LockStructure: true}
	data, err := wb.Serialize()
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	book := unzipParts(t, data)["xl/workbook.xml"]
	if !strings.Contains(book, `workbookPassword="CBEB"`) {
		t.Errorf("workbook protection missing hashed password\ngot: %s", book)
	}
	if !strings.Contains(book, `lockStructure="true"`) {
		t.Errorf("workbook protection missing structure lock\ngot: %s", book)
	}
}

func TestSerializeDocProps(t *testing.T) {
	wb, ws := newTestWorkbook(t)
	ws.SetString(0, 0, "x")
	wb.Props = &DocProperties{
		Title:    "Report",
		Creator:  "jane",
		Company:  "Acme",
		Created:  time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
		Modified: time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	data, err := wb.Serialize()
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	parts := unzipParts(t, data)
	core := parts["docProps/core.xml"]
	for _, want := range []string{
		`<dc:title>Report</dc:title>`,
		`<dc:creator>jane</dc:creator>`,
		`<dcterms:created xsi:type="dcterms:W3CDTF">2020-01-02T03:04:05Z</dcterms:created>`,
	} {
		if !strings.Contains(core, want) {
			t.Errorf("core part missing %s\ngot: %s", want, core)
		}
	}
	app := parts["docProps/app.xml"]
	if !strings.Contains(app, `<Application>xlsxwriter-go</Application>`) {
		t.Errorf("app part missing application name\ngot: %s", app)
	}
	if !strings.Contains(app, `<Company>Acme</Company>`) {
		t.Errorf("app part missing company\ngot: %s", app)
	}
	rels := parts["_rels/.rels"]
	if !strings.Contains(rels, `Id="rId2"`) || !strings.Contains(rels, `Id="rId3"`) {
		t.Errorf("package relationships missing metadata entries\ngot: %s", rels)
	}
}

func TestSerializeRelationships(t *testing.T) {
	wb, _ := newTestWorkbook(t)
	second, _ := wb.AddSheet("Sheet2")
	second.SetString(0, 0, "x")
	data, err := wb.Serialize()
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	parts := unzipParts(t, data)
	rels := parts["xl/_rels/workbook.xml.rels"]
	for _, want := range []string{
		`Id="rId1" Type="` + relWorksheet + `" Target="worksheets/sheet1.xml"`,
		`Id="rId2" Type="` + relWorksheet + `" Target="worksheets/sheet2.xml"`,
		`Id="rId3" Type="` + relStyles + `" Target="styles.xml"`,
	} {
		if !strings.Contains(rels, want) {
			t.Errorf("workbook relationships missing %s\ngot: %s", want, rels)
		}
	}
	book := parts["xl/workbook.xml"]
	if !strings.Contains(book, `<sheet name="Sheet2" sheetId="2" r:id="rId2">`) {
		t.Errorf("workbook part missing second sheet entry\ngot: %s", book)
	}
	types := parts["[Content_Types].xml"]
	if !strings.Contains(types, `PartName="/xl/worksheets/sheet2.xml"`) {
		t.Errorf("content types missing second sheet override\ngot: %s", types)
	}
}

func TestSerializeDeterministic(t *testing.T) {
	build := func() []byte {
		wb, ws := newTestWorkbook(t)
		ws.SetString(0, 0, "a")
		ws.SetNumber(1, 1, 2)
		ws.SetCellStyle(0, 0, &Style{Font: &Font{Name: "Calibri", Size: 11, Italic: true}})
		ws.MergeRange("C1:D2")
		data, err := wb.Serialize()
		if err != nil {
			t.Fatalf("Serialize error: %v", err)
		}
		return data
	}
	if !bytes.Equal(build(), build()) {
		t.Error("two saves of the same content should be byte-identical")
	}
}

func TestSerializeWithLogfile(t *testing.T) {
	wb, ws := newTestWorkbook(t)
	ws.SetString(0, 0, "x")
	var log bytes.Buffer
	if _, err := SerializeWithOptions(wb, &SaveOptions{Logfile: &log, Verbosity: 2}); err != nil {
		t.Fatalf("SerializeWithOptions error: %v", err)
	}
	if log.Len() == 0 {
		t.Error("verbose serialization should write to the logfile")
	}
	if !strings.Contains(log.String(), "part xl/styles.xml") {
		t.Errorf("logfile missing part trace:\n%s", log.String())
	}
}

func TestSave(t *testing.T) {
	wb, ws := newTestWorkbook(t)
	ws.SetString(0, 0, "saved")
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := wb.Save(path); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if _, ok := unzipParts(t, data)["xl/workbook.xml"]; !ok {
		t.Error("saved file missing workbook part")
	}

	// No temporary files may be left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory entry count = %d, want 1", len(entries))
	}
}

func TestWrite(t *testing.T) {
	wb, ws := newTestWorkbook(t)
	ws.SetString(0, 0, "x")
	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if _, ok := unzipParts(t, buf.Bytes())["[Content_Types].xml"]; !ok {
		t.Error("written package missing content types part")
	}
}

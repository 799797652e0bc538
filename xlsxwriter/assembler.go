package xlsxwriter

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

// SaveOptions contains options for serializing a workbook.
type SaveOptions struct {
	// Logfile is an open writer to which messages and diagnostics are
	// written.
	Logfile io.Writer

	// Verbosity increases the volume of trace material written to the
	// logfile.
	Verbosity int

	// Application is the producer name recorded in the app metadata part.
	Application string
}

const defaultApplication = "xlsxwriter-go"

// Serialize converts the workbook into one packaged document and returns
// its bytes. The assembly is a strict pipeline: resolve the style tables,
// serialize the markup parts, then write the container entries. A failure
// at any stage surfaces as a single error; no partial package is returned.
func Serialize(wb *Workbook) ([]byte, error) {
	return SerializeWithOptions(wb, nil)
}

// SerializeWithOptions is Serialize with explicit options.
func SerializeWithOptions(wb *Workbook, opts *SaveOptions) ([]byte, error) {
	if opts == nil {
		opts = &SaveOptions{}
	}
	a := &documentAssembler{wb: wb, opts: opts, now: time.Now().UTC()}
	return a.assemble()
}

// Serialize returns the packaged document for the workbook.
func (wb *Workbook) Serialize() ([]byte, error) {
	return Serialize(wb)
}

// Write serializes the workbook and writes the package to out.
func (wb *Workbook) Write(out io.Writer) error {
	data, err := Serialize(wb)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return NewIOError(err, "failed to write package")
	}
	return nil
}

// Save serializes the workbook and writes the package to filename. The
// package is written to a temporary file in the target directory and
// renamed over the destination only after a complete flush, so a failure
// during packaging can never leave a truncated file reported as saved.
func (wb *Workbook) Save(filename string) error {
	data, err := Serialize(wb)
	if err != nil {
		return err
	}
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, ".xlsxwriter-*")
	if err != nil {
		return NewIOError(err, "failed to create temporary file in %q", dir)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return NewIOError(err, "failed to write %q", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return NewIOError(err, "failed to flush %q", tmpName)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		os.Remove(tmpName)
		return NewIOError(err, "failed to replace %q", filename)
	}
	return nil
}

// documentAssembler emits the markup parts for one save pass and packages
// them with a consistent relationship graph.
type documentAssembler struct {
	wb     *Workbook
	opts   *SaveOptions
	tables *StyleTables
	now    time.Time
}

func (a *documentAssembler) logf(level int, format string, args ...interface{}) {
	if a.opts.Verbosity >= level && a.opts.Logfile != nil {
		fmt.Fprintf(a.opts.Logfile, format+"\n", args...)
	}
}

type packagePart struct {
	name string
	data []byte
}

func (a *documentAssembler) assemble() ([]byte, error) {
	if len(a.wb.Sheets()) == 0 {
		return nil, NewFormatError("workbook has no sheets")
	}

	tables, err := a.wb.Styles().ResolveTables(a.wb)
	if err != nil {
		return nil, err
	}
	a.tables = tables
	a.logf(2, "resolved style tables: %d fonts, %d fills, %d borders, %d formats, %d cellXfs",
		len(tables.Fonts), len(tables.Fills), len(tables.Borders), len(tables.NumFormats), len(tables.CellFormats))

	var parts []packagePart
	add := func(name string, v interface{}) error {
		data, err := marshalPart(v)
		if err != nil {
			return NewIOError(err, "failed to serialize part %q", name)
		}
		a.logf(1, "part %s: %d bytes", name, len(data))
		parts = append(parts, packagePart{name: name, data: data})
		return nil
	}

	if err := add("[Content_Types].xml", a.contentTypes()); err != nil {
		return nil, err
	}
	if err := add("_rels/.rels", a.packageRels()); err != nil {
		return nil, err
	}
	if err := add("xl/workbook.xml", a.workbookPart()); err != nil {
		return nil, err
	}
	if err := add("xl/_rels/workbook.xml.rels", a.workbookRels()); err != nil {
		return nil, err
	}
	if err := add("xl/styles.xml", a.stylesPart()); err != nil {
		return nil, err
	}
	for i, ws := range a.wb.Sheets() {
		part, err := a.sheetPart(ws)
		if err != nil {
			return nil, err
		}
		if err := add(fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1), part); err != nil {
			return nil, err
		}
	}
	if a.wb.Props != nil {
		if err := add("docProps/core.xml", a.corePart()); err != nil {
			return nil, err
		}
		if err := add("docProps/app.xml", a.appPart()); err != nil {
			return nil, err
		}
	}

	return packParts(parts)
}

// packParts writes the parts into one compressed container. The whole
// container is buffered in memory; nothing is visible to the caller until
// every entry has been written and the central directory flushed.
func packParts(parts []packagePart) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		header := &zip.FileHeader{Name: part.name, Method: zip.Deflate}
		w, err := zw.CreateHeader(header)
		if err != nil {
			zw.Close()
			return nil, NewIOError(err, "failed to create container entry %q", part.name)
		}
		if _, err := w.Write(part.data); err != nil {
			zw.Close()
			return nil, NewIOError(err, "failed to write container entry %q", part.name)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, NewIOError(err, "failed to finalize container")
	}
	return buf.Bytes(), nil
}

func marshalPart(v interface{}) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}

func (a *documentAssembler) contentTypes() *xlsxTypes {
	t := &xlsxTypes{
		Xmlns: nsContentTypes,
		Default: []xlsxDefault{
			{Extension: "rels", ContentType: ctRels},
			{Extension: "xml", ContentType: ctXML},
		},
		Override: []xlsxOverride{
			{PartName: "/xl/workbook.xml", ContentType: ctWorkbook},
			{PartName: "/xl/styles.xml", ContentType: ctStyles},
		},
	}
	for i := range a.wb.Sheets() {
		t.Override = append(t.Override, xlsxOverride{
			PartName:    fmt.Sprintf("/xl/worksheets/sheet%d.xml", i+1),
			ContentType: ctWorksheet,
		})
	}
	if a.wb.Props != nil {
		t.Override = append(t.Override,
			xlsxOverride{PartName: "/docProps/core.xml", ContentType: ctCoreProps},
			xlsxOverride{PartName: "/docProps/app.xml", ContentType: ctExtProps},
		)
	}
	return t
}

// The package relationship identifiers are fixed: rId1 workbook, rId2 core
// metadata, rId3 app metadata.
func (a *documentAssembler) packageRels() *xlsxRelationships {
	rels := &xlsxRelationships{
		Xmlns: nsPackageRels,
		Relationship: []xlsxRelationship{
			{ID: "rId1", Type: relOfficeDocument, Target: "xl/workbook.xml"},
		},
	}
	if a.wb.Props != nil {
		rels.Relationship = append(rels.Relationship,
			xlsxRelationship{ID: "rId2", Type: relCoreProps, Target: "docProps/core.xml"},
			xlsxRelationship{ID: "rId3", Type: relExtProps, Target: "docProps/app.xml"},
		)
	}
	return rels
}

// The workbook relationship identifiers are sequential: rId1..rIdN for the
// sheets in workbook order, then rId(N+1) for the styles part.
func (a *documentAssembler) workbookRels() *xlsxRelationships {
	rels := &xlsxRelationships{Xmlns: nsPackageRels}
	for i := range a.wb.Sheets() {
		rels.Relationship = append(rels.Relationship, xlsxRelationship{
			ID:     fmt.Sprintf("rId%d", i+1),
			Type:   relWorksheet,
			Target: fmt.Sprintf("worksheets/sheet%d.xml", i+1),
		})
	}
	rels.Relationship = append(rels.Relationship, xlsxRelationship{
		ID:     fmt.Sprintf("rId%d", len(a.wb.Sheets())+1),
		Type:   relStyles,
		Target: "styles.xml",
	})
	return rels
}

func (a *documentAssembler) workbookPart() *xlsxWorkbook {
	part := &xlsxWorkbook{Xmlns: nsSpreadsheetML, XmlnsR: nsOfficeRel}
	if p := a.wb.Protection; p != nil {
		part.WorkbookProtection = &xlsxWorkbookProtection{
			WorkbookPassword: PasswordHash(p.Password),
			LockStructure:    p.LockStructure,
			LockWindows:      p.LockWindows,
		}
	}
	for i, ws := range a.wb.Sheets() {
		part.Sheets.Sheet = append(part.Sheets.Sheet, xlsxSheet{
			Name:    ws.Name,
			SheetID: i + 1,
			RID:     fmt.Sprintf("rId%d", i+1),
		})
	}
	return part
}

func (a *documentAssembler) stylesPart() *xlsxStyleSheet {
	t := a.tables
	part := &xlsxStyleSheet{Xmlns: nsSpreadsheetML}

	customs := t.CustomNumFormats()
	if len(customs) > 0 {
		block := &xlsxNumFmts{Count: len(customs)}
		for _, nf := range customs {
			id, _ := t.NumFmtIDFor(nf)
			block.NumFmt = append(block.NumFmt, xlsxNumFmt{NumFmtID: id, FormatCode: nf.Code})
		}
		part.NumFmts = block
	}

	part.Fonts.Count = len(t.Fonts)
	for _, f := range t.Fonts {
		part.Fonts.Font = append(part.Fonts.Font, fontXML(f))
	}

	part.Fills.Count = len(t.Fills)
	for _, f := range t.Fills {
		fill := xlsxFill{PatternFill: xlsxPatternFill{PatternType: f.Pattern}}
		if f.FgColor != "" {
			fill.PatternFill.FgColor = &xlsxColor{RGB: f.FgColor}
		}
		if f.BgColor != "" {
			fill.PatternFill.BgColor = &xlsxColor{RGB: f.BgColor}
		}
		part.Fills.Fill = append(part.Fills.Fill, fill)
	}

	part.Borders.Count = len(t.Borders)
	for _, b := range t.Borders {
		part.Borders.Border = append(part.Borders.Border, xlsxBorder{
			Left:   borderEdgeXML(b.Left, b.LeftColor),
			Right:  borderEdgeXML(b.Right, b.RightColor),
			Top:    borderEdgeXML(b.Top, b.TopColor),
			Bottom: borderEdgeXML(b.Bottom, b.BottomColor),
		})
	}

	part.CellStyleXfs = &xlsxCellStyleXfs{Count: 1, Xf: []xlsxXf{{}}}

	part.CellXfs.Count = len(t.CellFormats)
	for _, rec := range t.CellFormats {
		part.CellXfs.Xf = append(part.CellXfs.Xf, xfXML(rec))
	}

	builtin := 0
	part.CellStyles = &xlsxCellStyles{
		Count:     1,
		CellStyle: []xlsxCellStyle{{Name: "Normal", XfID: 0, BuiltinID: &builtin}},
	}
	return part
}

func fontXML(f *Font) xlsxFont {
	out := xlsxFont{
		Sz:   xlsxFloatVal{Val: f.Size},
		Name: xlsxStringVal{Val: f.Name},
	}
	if f.Bold {
		out.B = &xlsxEmptyElem{}
	}
	if f.Italic {
		out.I = &xlsxEmptyElem{}
	}
	switch f.Underline {
	case UNDERLINE_SINGLE:
		out.U = &xlsxUnderline{}
	case UNDERLINE_DOUBLE:
		out.U = &xlsxUnderline{Val: "double"}
	}
	if f.Strike {
		out.Strike = &xlsxEmptyElem{}
	}
	if f.Color != "" {
		out.Color = &xlsxColor{RGB: f.Color}
	}
	return out
}

func borderEdgeXML(style, color string) xlsxBorderEdge {
	edge := xlsxBorderEdge{Style: style}
	if style != BORDER_NONE && color != "" {
		edge.Color = &xlsxColor{RGB: color}
	}
	return edge
}

// xfXML renders one resolved cellXf. The apply flags are set only when the
// corresponding aspect deviates from the baseline entry, and the
// alignment/protection children only when their flags are non-default.
func xfXML(rec *XFRecord) xlsxXf {
	baseXf := 0
	out := xlsxXf{
		NumFmtID: rec.NumFmtID,
		FontID:   rec.FontID,
		FillID:   rec.FillID,
		BorderID: rec.BorderID,
		XfID:     &baseXf,
	}
	out.ApplyNumberFormat = rec.NumFmtID != 0
	out.ApplyFont = rec.FontID != 0
	out.ApplyFill = rec.FillID != 0
	out.ApplyBorder = rec.BorderID != 0

	f := rec.Format
	if f.HAlign != ALIGN_GENERAL || f.VAlign != "" || f.WrapText || f.TextRotation != 0 {
		out.ApplyAlignment = true
		out.Alignment = &xlsxAlignment{
			Horizontal:   f.HAlign,
			Vertical:     f.VAlign,
			TextRotation: f.TextRotation,
			WrapText:     f.WrapText,
		}
	}
	if !f.Locked || f.Hidden {
		out.ApplyProtection = true
		prot := &xlsxProtection{Hidden: f.Hidden}
		if !f.Locked {
			unlocked := false
			prot.Locked = &unlocked
		}
		out.Protection = prot
	}
	return out
}

func (a *documentAssembler) sheetPart(ws *Worksheet) (*xlsxWorksheet, error) {
	part := &xlsxWorksheet{Xmlns: nsSpreadsheetML, XmlnsR: nsOfficeRel}

	formatPr := &xlsxSheetFormatPr{
		DefaultColWidth:  DEFAULT_COL_WIDTH,
		DefaultRowHeight: DEFAULT_ROW_HEIGHT,
	}
	if ws.DefaultRowHeight > 0 {
		formatPr.DefaultRowHeight = ws.DefaultRowHeight
	}
	if ws.DefaultColWidth > 0 {
		formatPr.DefaultColWidth = ws.DefaultColWidth
	}
	part.SheetFormatPr = formatPr

	if len(ws.colWidths) > 0 {
		cols := &xlsxCols{}
		for _, colx := range sortedIntKeys(ws.colWidths) {
			cols.Col = append(cols.Col, xlsxCol{
				Min:         colx + 1,
				Max:         colx + 1,
				Width:       ws.colWidths[colx],
				CustomWidth: true,
			})
		}
		part.Cols = cols
	}

	placed, err := a.effectiveCells(ws)
	if err != nil {
		return nil, err
	}
	if len(placed) > 0 {
		first := placed[0]
		last := placed[len(placed)-1]
		start, _ := FormatAddress(minCol(placed), first.row, ADDR_NONE)
		end, _ := FormatAddress(maxCol(placed), last.row, ADDR_NONE)
		part.Dimension = &xlsxDimension{Ref: start + ":" + end}
	}

	// Height overrides on rows without cells still need a row element, or
	// the override would be lost.
	rowsWithCells := make(map[int]bool, len(placed))
	for _, pc := range placed {
		rowsWithCells[pc.row] = true
	}
	var bareRows []int
	for rowx := range ws.rowHeights {
		if !rowsWithCells[rowx] {
			bareRows = append(bareRows, rowx)
		}
	}
	sort.Ints(bareRows)
	nextBare := 0
	emitBareBefore := func(rowx int) {
		for nextBare < len(bareRows) && bareRows[nextBare] < rowx {
			part.SheetData.Row = append(part.SheetData.Row, xlsxRow{
				R:            bareRows[nextBare] + 1,
				Ht:           ws.rowHeights[bareRows[nextBare]],
				CustomHeight: true,
			})
			nextBare++
		}
	}

	var currentRow *xlsxRow
	for _, pc := range placed {
		if currentRow == nil || currentRow.R != pc.row+1 {
			emitBareBefore(pc.row)
			row := xlsxRow{R: pc.row + 1}
			if ht, ok := ws.rowHeights[pc.row]; ok {
				row.Ht = ht
				row.CustomHeight = true
			}
			part.SheetData.Row = append(part.SheetData.Row, row)
			currentRow = &part.SheetData.Row[len(part.SheetData.Row)-1]
		}
		c, err := a.cellXML(ws, pc)
		if err != nil {
			return nil, err
		}
		currentRow.C = append(currentRow.C, c)
	}
	emitBareBefore(XL_MAX_ROW + 1)

	if p := ws.Protection; p != nil {
		part.SheetProtection = sheetProtectionXML(p)
	}

	if len(ws.Merges) > 0 {
		block := &xlsxMergeCells{Count: len(ws.Merges)}
		for _, merge := range ws.Merges {
			block.MergeCell = append(block.MergeCell, xlsxMergeCell{Ref: merge.Ref()})
		}
		part.MergeCells = block
	}
	return part, nil
}

// effectiveCells returns the cells to serialize in (row, column) order:
// the populated cells plus every merge-covered position. Only the top-left
// cell of a merged range keeps its content; subordinate cells serialize
// empty but keep their style, so the covered region stays formatted.
func (a *documentAssembler) effectiveCells(ws *Worksheet) ([]placedCell, error) {
	effective := make(map[cellKey]*Cell, len(ws.cells))
	for key, cell := range ws.cells {
		effective[key] = cell
	}
	for _, merge := range ws.Merges {
		for _, addr := range merge.Addresses() {
			anchorCol, anchorRow := merge.Anchor()
			if addr.Col == anchorCol && addr.Row == anchorRow {
				continue
			}
			key := cellKey{row: addr.Row, col: addr.Col}
			covered := &Cell{CType: XL_CELL_EMPTY}
			if existing, ok := effective[key]; ok {
				covered.Style = existing.Style
			}
			effective[key] = covered
		}
	}
	placed := make([]placedCell, 0, len(effective))
	for key, cell := range effective {
		placed = append(placed, placedCell{row: key.row, col: key.col, cell: cell})
	}
	sortPlacedCells(placed)
	return placed, nil
}

func (a *documentAssembler) cellXML(ws *Worksheet, pc placedCell) (xlsxC, error) {
	ref, err := FormatAddress(pc.col, pc.row, ADDR_NONE)
	if err != nil {
		return xlsxC{}, err
	}
	c := xlsxC{R: ref}

	cell := pc.cell
	if cell.Style != nil {
		s, err := a.tables.XFForStyle(cell.Style)
		if err != nil {
			return xlsxC{}, err
		}
		c.S = s
	}

	switch cell.CType {
	case XL_CELL_EMPTY:
		// Self-closing, no value.
	case XL_CELL_STRING:
		text, ok := cell.Value.(string)
		if !ok {
			return xlsxC{}, NewFormatError("cell %s: string cell holds %T", ref, cell.Value)
		}
		c.T = "inlineStr"
		c.Is = &xlsxIs{T: xlsxT{Content: text}}
	case XL_CELL_NUMBER, XL_CELL_DEFAULT, XL_CELL_DATE, XL_CELL_TIME:
		v, err := numericValue(cell.Value)
		if err != nil {
			return xlsxC{}, NewFormatError("cell %s: %v", ref, err)
		}
		c.V = strconv.FormatFloat(v, 'f', -1, 64)
	case XL_CELL_BOOLEAN:
		b, ok := cell.Value.(bool)
		if !ok {
			return xlsxC{}, NewFormatError("cell %s: boolean cell holds %T", ref, cell.Value)
		}
		c.T = "b"
		if b {
			c.V = "1"
		} else {
			c.V = "0"
		}
	case XL_CELL_FORMULA:
		formula, ok := cell.Value.(string)
		if !ok {
			return xlsxC{}, NewFormatError("cell %s: formula cell holds %T", ref, cell.Value)
		}
		if len(formula) > 0 && formula[0] == '=' {
			formula = formula[1:]
		}
		c.F = &xlsxF{Content: formula}
	default:
		return xlsxC{}, NewFormatError("cell %s: unknown cell type %d", ref, cell.CType)
	}
	return c, nil
}

func numericValue(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("numeric cell holds %T", v)
}

func sheetProtectionXML(p *SheetProtection) *xlsxSheetProtection {
	out := &xlsxSheetProtection{
		Sheet:               true,
		Password:            PasswordHash(p.Password),
		Objects:             p.LockObjects,
		Scenarios:           p.LockScenarios,
		SelectLockedCells:   p.NoSelectLockedCells,
		SelectUnlockedCells: p.NoSelectUnlockedCells,
	}
	allow := func(allowed bool) *bool {
		if !allowed {
			return nil
		}
		v := false
		return &v
	}
	out.FormatCells = allow(p.AllowFormatCells)
	out.FormatColumns = allow(p.AllowFormatColumns)
	out.FormatRows = allow(p.AllowFormatRows)
	out.InsertColumns = allow(p.AllowInsertColumns)
	out.InsertRows = allow(p.AllowInsertRows)
	out.InsertHyperlinks = allow(p.AllowInsertHyperlinks)
	out.DeleteColumns = allow(p.AllowDeleteColumns)
	out.DeleteRows = allow(p.AllowDeleteRows)
	out.Sort = allow(p.AllowSort)
	out.AutoFilter = allow(p.AllowAutoFilter)
	out.PivotTables = allow(p.AllowPivotTables)
	return out
}

const w3cdtfFormat = "2006-01-02T15:04:05Z"

func (a *documentAssembler) corePart() *xlsxCoreProperties {
	props := a.wb.Props
	created := props.Created
	if created.IsZero() {
		created = a.now
	}
	modified := props.Modified
	if modified.IsZero() {
		modified = a.now
	}
	return &xlsxCoreProperties{
		XmlnsCP:      nsCoreProps,
		XmlnsDC:      nsDC,
		XmlnsDCTerms: nsDCTerms,
		XmlnsXSI:     nsXSI,
		Title:        props.Title,
		Subject:      props.Subject,
		Creator:      props.Creator,
		Keywords:     props.Keywords,
		Description:  props.Description,
		Category:     props.Category,
		Created:      &xlsxW3CDTF{Type: "dcterms:W3CDTF", Value: created.UTC().Format(w3cdtfFormat)},
		Modified:     &xlsxW3CDTF{Type: "dcterms:W3CDTF", Value: modified.UTC().Format(w3cdtfFormat)},
	}
}

func (a *documentAssembler) appPart() *xlsxAppProperties {
	application := a.opts.Application
	if application == "" {
		application = defaultApplication
	}
	return &xlsxAppProperties{
		Xmlns:       nsExtProps,
		XmlnsVT:     nsVTypes,
		Application: application,
		Company:     a.wb.Props.Company,
	}
}

func sortedIntKeys(m map[int]float64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func minCol(placed []placedCell) int {
	min := placed[0].col
	for _, pc := range placed[1:] {
		if pc.col < min {
			min = pc.col
		}
	}
	return min
}

func maxCol(placed []placedCell) int {
	max := placed[0].col
	for _, pc := range placed[1:] {
		if pc.col > max {
			max = pc.col
		}
	}
	return max
}

package xlsxwriter

import "encoding/xml"

// Namespaces and media types of the package parts.
const (
	nsSpreadsheetML = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsOfficeRel     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsCoreProps     = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC            = "http://purl.org/dc/elements/1.1/"
	nsDCTerms       = "http://purl.org/dc/terms/"
	nsXSI           = "http://www.w3.org/2001/XMLSchema-instance"
	nsExtProps      = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsVTypes        = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"

	ctWorkbook  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	ctWorksheet = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	ctStyles    = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	ctCoreProps = "application/vnd.openxmlformats-package.core-properties+xml"
	ctExtProps  = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	ctRels      = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML       = "application/xml"

	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relExtProps       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extendedProperties"
	relWorksheet      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
)

// xlsxTypes maps the [Content_Types].xml part.
type xlsxTypes struct {
	XMLName  xml.Name       `xml:"Types"`
	Xmlns    string         `xml:"xmlns,attr"`
	Default  []xlsxDefault  `xml:"Default"`
	Override []xlsxOverride `xml:"Override"`
}

type xlsxDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xlsxOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// xlsxRelationships maps a .rels part.
type xlsxRelationships struct {
	XMLName      xml.Name           `xml:"Relationships"`
	Xmlns        string             `xml:"xmlns,attr"`
	Relationship []xlsxRelationship `xml:"Relationship"`
}

type xlsxRelationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// xlsxWorkbook maps the workbook part (xl/workbook.xml).
type xlsxWorkbook struct {
	XMLName            xml.Name                `xml:"workbook"`
	Xmlns              string                  `xml:"xmlns,attr"`
	XmlnsR             string                  `xml:"xmlns:r,attr"`
	WorkbookProtection *xlsxWorkbookProtection `xml:"workbookProtection,omitempty"`
	Sheets             xlsxSheets              `xml:"sheets"`
}

type xlsxWorkbookProtection struct {
	WorkbookPassword string `xml:"workbookPassword,attr,omitempty"`
	LockStructure    bool   `xml:"lockStructure,attr,omitempty"`
	LockWindows      bool   `xml:"lockWindows,attr,omitempty"`
}

type xlsxSheets struct {
	Sheet []xlsxSheet `xml:"sheet"`
}

type xlsxSheet struct {
	Name    string `xml:"name,attr"`
	SheetID int    `xml:"sheetId,attr"`
	RID     string `xml:"r:id,attr"`
}

// xlsxStyleSheet maps the styles part (xl/styles.xml). Table order is
// fixed: custom number formats, fonts, fills, borders, the baseline
// cellStyleXfs, one cellXf per style, then the named cell styles.
type xlsxStyleSheet struct {
	XMLName      xml.Name          `xml:"styleSheet"`
	Xmlns        string            `xml:"xmlns,attr"`
	NumFmts      *xlsxNumFmts      `xml:"numFmts,omitempty"`
	Fonts        xlsxFonts         `xml:"fonts"`
	Fills        xlsxFills         `xml:"fills"`
	Borders      xlsxBorders       `xml:"borders"`
	CellStyleXfs *xlsxCellStyleXfs `xml:"cellStyleXfs,omitempty"`
	CellXfs      xlsxCellXfs       `xml:"cellXfs"`
	CellStyles   *xlsxCellStyles   `xml:"cellStyles,omitempty"`
}

type xlsxNumFmts struct {
	Count  int          `xml:"count,attr"`
	NumFmt []xlsxNumFmt `xml:"numFmt"`
}

type xlsxNumFmt struct {
	NumFmtID   int    `xml:"numFmtId,attr"`
	FormatCode string `xml:"formatCode,attr"`
}

type xlsxFonts struct {
	Count int        `xml:"count,attr"`
	Font  []xlsxFont `xml:"font"`
}

type xlsxFont struct {
	B      *xlsxEmptyElem `xml:"b,omitempty"`
	I      *xlsxEmptyElem `xml:"i,omitempty"`
	U      *xlsxUnderline `xml:"u,omitempty"`
	Strike *xlsxEmptyElem `xml:"strike,omitempty"`
	Sz     xlsxFloatVal   `xml:"sz"`
	Color  *xlsxColor     `xml:"color,omitempty"`
	Name   xlsxStringVal  `xml:"name"`
}

type xlsxEmptyElem struct{}

type xlsxUnderline struct {
	Val string `xml:"val,attr,omitempty"`
}

type xlsxFloatVal struct {
	Val float64 `xml:"val,attr"`
}

type xlsxStringVal struct {
	Val string `xml:"val,attr"`
}

type xlsxColor struct {
	RGB string `xml:"rgb,attr,omitempty"`
}

type xlsxFills struct {
	Count int        `xml:"count,attr"`
	Fill  []xlsxFill `xml:"fill"`
}

type xlsxFill struct {
	PatternFill xlsxPatternFill `xml:"patternFill"`
}

type xlsxPatternFill struct {
	PatternType string     `xml:"patternType,attr"`
	FgColor     *xlsxColor `xml:"fgColor,omitempty"`
	BgColor     *xlsxColor `xml:"bgColor,omitempty"`
}

type xlsxBorders struct {
	Count  int          `xml:"count,attr"`
	Border []xlsxBorder `xml:"border"`
}

type xlsxBorder struct {
	Left     xlsxBorderEdge `xml:"left"`
	Right    xlsxBorderEdge `xml:"right"`
	Top      xlsxBorderEdge `xml:"top"`
	Bottom   xlsxBorderEdge `xml:"bottom"`
	Diagonal xlsxBorderEdge `xml:"diagonal"`
}

type xlsxBorderEdge struct {
	Style string     `xml:"style,attr,omitempty"`
	Color *xlsxColor `xml:"color,omitempty"`
}

type xlsxCellStyleXfs struct {
	Count int      `xml:"count,attr"`
	Xf    []xlsxXf `xml:"xf"`
}

type xlsxCellXfs struct {
	Count int      `xml:"count,attr"`
	Xf    []xlsxXf `xml:"xf"`
}

// xlsxXf is one xf entry. The apply* flags and the alignment/protection
// children are emitted only when the corresponding aspect deviates from the
// baseline, so readers respect overrides against inherited defaults.
type xlsxXf struct {
	NumFmtID          int             `xml:"numFmtId,attr"`
	FontID            int             `xml:"fontId,attr"`
	FillID            int             `xml:"fillId,attr"`
	BorderID          int             `xml:"borderId,attr"`
	XfID              *int            `xml:"xfId,attr,omitempty"`
	ApplyNumberFormat bool            `xml:"applyNumberFormat,attr,omitempty"`
	ApplyFont         bool            `xml:"applyFont,attr,omitempty"`
	ApplyFill         bool            `xml:"applyFill,attr,omitempty"`
	ApplyBorder       bool            `xml:"applyBorder,attr,omitempty"`
	ApplyAlignment    bool            `xml:"applyAlignment,attr,omitempty"`
	ApplyProtection   bool            `xml:"applyProtection,attr,omitempty"`
	Alignment         *xlsxAlignment  `xml:"alignment,omitempty"`
	Protection        *xlsxProtection `xml:"protection,omitempty"`
}

type xlsxAlignment struct {
	Horizontal   string `xml:"horizontal,attr,omitempty"`
	Vertical     string `xml:"vertical,attr,omitempty"`
	TextRotation int    `xml:"textRotation,attr,omitempty"`
	WrapText     bool   `xml:"wrapText,attr,omitempty"`
}

type xlsxProtection struct {
	Locked *bool `xml:"locked,attr,omitempty"`
	Hidden bool  `xml:"hidden,attr,omitempty"`
}

type xlsxCellStyles struct {
	Count     int             `xml:"count,attr"`
	CellStyle []xlsxCellStyle `xml:"cellStyle"`
}

type xlsxCellStyle struct {
	Name      string `xml:"name,attr"`
	XfID      int    `xml:"xfId,attr"`
	BuiltinID *int   `xml:"builtinId,attr,omitempty"`
}

// xlsxWorksheet maps one worksheet part (xl/worksheets/sheetN.xml). Field
// order follows the schema's element sequence.
type xlsxWorksheet struct {
	XMLName         xml.Name             `xml:"worksheet"`
	Xmlns           string               `xml:"xmlns,attr"`
	XmlnsR          string               `xml:"xmlns:r,attr"`
	Dimension       *xlsxDimension       `xml:"dimension,omitempty"`
	SheetFormatPr   *xlsxSheetFormatPr   `xml:"sheetFormatPr,omitempty"`
	Cols            *xlsxCols            `xml:"cols,omitempty"`
	SheetData       xlsxSheetData        `xml:"sheetData"`
	SheetProtection *xlsxSheetProtection `xml:"sheetProtection,omitempty"`
	MergeCells      *xlsxMergeCells      `xml:"mergeCells,omitempty"`
}

type xlsxDimension struct {
	Ref string `xml:"ref,attr"`
}

type xlsxSheetFormatPr struct {
	DefaultColWidth  float64 `xml:"defaultColWidth,attr,omitempty"`
	DefaultRowHeight float64 `xml:"defaultRowHeight,attr"`
}

type xlsxCols struct {
	Col []xlsxCol `xml:"col"`
}

type xlsxCol struct {
	Min         int     `xml:"min,attr"`
	Max         int     `xml:"max,attr"`
	Width       float64 `xml:"width,attr"`
	CustomWidth bool    `xml:"customWidth,attr,omitempty"`
}

type xlsxSheetData struct {
	Row []xlsxRow `xml:"row"`
}

type xlsxRow struct {
	R            int     `xml:"r,attr"`
	Ht           float64 `xml:"ht,attr,omitempty"`
	CustomHeight bool    `xml:"customHeight,attr,omitempty"`
	C            []xlsxC `xml:"c"`
}

// xlsxC is one cell element. The t attribute is omitted for the default
// numeric case; s is present only for styled cells. Merge-covered
// non-anchor cells carry neither children nor value.
type xlsxC struct {
	R  string  `xml:"r,attr"`
	S  int     `xml:"s,attr,omitempty"`
	T  string  `xml:"t,attr,omitempty"`
	F  *xlsxF  `xml:"f,omitempty"`
	V  string  `xml:"v,omitempty"`
	Is *xlsxIs `xml:"is,omitempty"`
}

type xlsxF struct {
	Content string `xml:",chardata"`
}

type xlsxIs struct {
	T xlsxT `xml:"t"`
}

type xlsxT struct {
	Content string `xml:",chardata"`
}

type xlsxMergeCells struct {
	Count     int             `xml:"count,attr"`
	MergeCell []xlsxMergeCell `xml:"mergeCell"`
}

type xlsxMergeCell struct {
	Ref string `xml:"ref,attr"`
}

// xlsxSheetProtection maps the sheet protection block. In the format's
// flag table, format/insert/delete/sort/filter/pivot actions default to
// blocked while protection is on (an explicit "false" re-allows one), and
// the select actions default to allowed (an explicit "true" blocks one).
type xlsxSheetProtection struct {
	Sheet               bool   `xml:"sheet,attr"`
	Password            string `xml:"password,attr,omitempty"`
	Objects             bool   `xml:"objects,attr,omitempty"`
	Scenarios           bool   `xml:"scenarios,attr,omitempty"`
	FormatCells         *bool  `xml:"formatCells,attr,omitempty"`
	FormatColumns       *bool  `xml:"formatColumns,attr,omitempty"`
	FormatRows          *bool  `xml:"formatRows,attr,omitempty"`
	InsertColumns       *bool  `xml:"insertColumns,attr,omitempty"`
	InsertRows          *bool  `xml:"insertRows,attr,omitempty"`
	InsertHyperlinks    *bool  `xml:"insertHyperlinks,attr,omitempty"`
	DeleteColumns       *bool  `xml:"deleteColumns,attr,omitempty"`
	DeleteRows          *bool  `xml:"deleteRows,attr,omitempty"`
	Sort                *bool  `xml:"sort,attr,omitempty"`
	AutoFilter          *bool  `xml:"autoFilter,attr,omitempty"`
	PivotTables         *bool  `xml:"pivotTables,attr,omitempty"`
	SelectLockedCells   bool   `xml:"selectLockedCells,attr,omitempty"`
	SelectUnlockedCells bool   `xml:"selectUnlockedCells,attr,omitempty"`
}

// xlsxCoreProperties maps docProps/core.xml.
type xlsxCoreProperties struct {
	XMLName      xml.Name    `xml:"cp:coreProperties"`
	XmlnsCP      string      `xml:"xmlns:cp,attr"`
	XmlnsDC      string      `xml:"xmlns:dc,attr"`
	XmlnsDCTerms string      `xml:"xmlns:dcterms,attr"`
	XmlnsXSI     string      `xml:"xmlns:xsi,attr"`
	Title        string      `xml:"dc:title,omitempty"`
	Subject      string      `xml:"dc:subject,omitempty"`
	Creator      string      `xml:"dc:creator,omitempty"`
	Keywords     string      `xml:"cp:keywords,omitempty"`
	Description  string      `xml:"dc:description,omitempty"`
	Category     string      `xml:"cp:category,omitempty"`
	Created      *xlsxW3CDTF `xml:"dcterms:created,omitempty"`
	Modified     *xlsxW3CDTF `xml:"dcterms:modified,omitempty"`
}

type xlsxW3CDTF struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

// xlsxAppProperties maps docProps/app.xml.
type xlsxAppProperties struct {
	XMLName     xml.Name `xml:"Properties"`
	Xmlns       string   `xml:"xmlns,attr"`
	XmlnsVT     string   `xml:"xmlns:vt,attr"`
	Application string   `xml:"Application,omitempty"`
	Company     string   `xml:"Company,omitempty"`
}

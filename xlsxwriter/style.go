package xlsxwriter

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"
)

// Underline styles.
const (
	UNDERLINE_NONE   = 0
	UNDERLINE_SINGLE = 1
	UNDERLINE_DOUBLE = 2
)

// Fill pattern types. Values are the patternType attribute strings of the
// styles part.
const (
	FILL_NONE        = "none"
	FILL_GRAY125     = "gray125"
	FILL_SOLID       = "solid"
	FILL_DARK_GRAY   = "darkGray"
	FILL_MEDIUM_GRAY = "mediumGray"
	FILL_LIGHT_GRAY  = "lightGray"
)

// Border line styles. Values are the style attribute strings of the styles
// part. An empty string means no line on that edge.
const (
	BORDER_NONE   = ""
	BORDER_THIN   = "thin"
	BORDER_MEDIUM = "medium"
	BORDER_THICK  = "thick"
	BORDER_DASHED = "dashed"
	BORDER_DOTTED = "dotted"
	BORDER_DOUBLE = "double"
	BORDER_HAIR   = "hair"
)

// Horizontal and vertical alignment values. An empty string means the
// reader's default for the cell type.
const (
	ALIGN_GENERAL = ""
	ALIGN_LEFT    = "left"
	ALIGN_CENTER  = "center"
	ALIGN_RIGHT   = "right"
	ALIGN_FILL    = "fill"
	ALIGN_JUSTIFY = "justify"
	ALIGN_TOP     = "top"
	ALIGN_MIDDLE  = "center"
	ALIGN_BOTTOM  = "bottom"
)

// Built-in number format IDs keyed by format code. Codes not in this table
// are custom formats; the dedup pass assigns them IDs from
// CUSTOM_NUMFMT_OFFSET upward, one per distinct string.
var builtinNumFmtIDs = map[string]int{
	"General":                    0,
	"0":                          1,
	"0.00":                       2,
	"#,##0":                      3,
	"#,##0.00":                   4,
	"0%":                         9,
	"0.00%":                      10,
	"0.00E+00":                   11,
	"# ?/?":                      12,
	"# ??/??":                    13,
	"mm-dd-yy":                   14,
	"d-mmm-yy":                   15,
	"d-mmm":                      16,
	"mmm-yy":                     17,
	"h:mm AM/PM":                 18,
	"h:mm:ss AM/PM":              19,
	"h:mm":                       20,
	"h:mm:ss":                    21,
	"m/d/yy h:mm":                22,
	"#,##0 ;(#,##0)":             37,
	"#,##0 ;[Red](#,##0)":        38,
	"#,##0.00;(#,##0.00)":        39,
	"#,##0.00;[Red](#,##0.00)":   40,
	"mm:ss":                      45,
	"[h]:mm:ss":                  46,
	"mmss.0":                     47,
	"##0.0E+0":                   48,
	"@":                          49,
}

// CUSTOM_NUMFMT_OFFSET is the first ID available to custom number formats.
// IDs below it are reserved for the built-in table.
const CUSTOM_NUMFMT_OFFSET = 164

// Font is the typeface aspect of a style.
//
// Identity is structural: two Fonts with equal field values hash equally and
// canonicalize to one table entry.
type Font struct {
	// Name is the font name.
	Name string

	// Size is the font size in points.
	Size float64

	// Bold indicates if the font is bold.
	Bold bool

	// Italic indicates if the font is italic.
	Italic bool

	// Underline indicates the underline style (UNDERLINE_*).
	Underline int

	// Strike indicates strikethrough.
	Strike bool

	// Color is the font colour as ARGB hex, e.g. "FFFF0000". Empty means
	// the theme default.
	Color string
}

// Hash returns the structural hash of the font.
func (f *Font) Hash() uint64 {
	h := newStructuralHash()
	h.addString(f.Name)
	h.addFloat(f.Size)
	h.addBool(f.Bold)
	h.addBool(f.Italic)
	h.addInt(f.Underline)
	h.addBool(f.Strike)
	h.addString(f.Color)
	return h.sum()
}

// Fill is the background aspect of a style.
type Fill struct {
	// Pattern is the fill pattern (FILL_*).
	Pattern string

	// FgColor is the pattern foreground colour as ARGB hex.
	FgColor string

	// BgColor is the pattern background colour as ARGB hex.
	BgColor string
}

// Hash returns the structural hash of the fill.
func (f *Fill) Hash() uint64 {
	h := newStructuralHash()
	h.addString(f.Pattern)
	h.addString(f.FgColor)
	h.addString(f.BgColor)
	return h.sum()
}

// Border is the box-edge aspect of a style. Edge styles are BORDER_*
// values; colours are ARGB hex, empty for the default.
type Border struct {
	Left        string
	Right       string
	Top         string
	Bottom      string
	LeftColor   string
	RightColor  string
	TopColor    string
	BottomColor string
}

// Hash returns the structural hash of the border.
func (b *Border) Hash() uint64 {
	h := newStructuralHash()
	h.addString(b.Left)
	h.addString(b.Right)
	h.addString(b.Top)
	h.addString(b.Bottom)
	h.addString(b.LeftColor)
	h.addString(b.RightColor)
	h.addString(b.TopColor)
	h.addString(b.BottomColor)
	return h.sum()
}

// NumberFormat is the value-presentation aspect of a style. Code is either
// one of the built-in format codes or a custom format string.
type NumberFormat struct {
	// Code is the number format code, e.g. "General", "0.00" or a custom
	// string such as "0.000".
	Code string
}

// BuiltinID returns the reserved ID for a built-in format code, and whether
// the code is built in at all.
func (n *NumberFormat) BuiltinID() (int, bool) {
	id, ok := builtinNumFmtIDs[n.Code]
	return id, ok
}

// Hash returns the structural hash of the number format.
func (n *NumberFormat) Hash() uint64 {
	h := newStructuralHash()
	h.addString(n.Code)
	return h.sum()
}

// CellFormat is the alignment and protection aspect owned directly by a
// style. Its serialized table is the cellXfs table; the dense IDs assigned
// to its entries are the style indexes cells reference.
type CellFormat struct {
	// HAlign is the horizontal alignment (ALIGN_*).
	HAlign string

	// VAlign is the vertical alignment (ALIGN_TOP, ALIGN_MIDDLE, ALIGN_BOTTOM).
	VAlign string

	// WrapText indicates if text should wrap.
	WrapText bool

	// TextRotation is the rotation angle in degrees.
	TextRotation int

	// Locked indicates if the cell is locked when the sheet is protected.
	Locked bool

	// Hidden indicates if the formula is hidden when the sheet is protected.
	Hidden bool
}

// Hash returns the structural hash of the alignment/protection flags.
func (c *CellFormat) Hash() uint64 {
	h := newStructuralHash()
	h.addString(c.HAlign)
	h.addString(c.VAlign)
	h.addBool(c.WrapText)
	h.addInt(c.TextRotation)
	h.addBool(c.Locked)
	h.addBool(c.Hidden)
	return h.sum()
}

// Style aggregates one instance of each component aspect plus a name.
//
// Nil components stand for the corresponding default; Normalize fills them
// in. Canonical instances obtained from a StyleRepository or StyleManager
// must not be mutated; use Clone for a modified copy.
type Style struct {
	// Name is the style name. Lookup by name goes through the style table
	// only; the name does not participate in structural identity.
	Name string

	// Font is the typeface component.
	Font *Font

	// Fill is the background component.
	Fill *Fill

	// Border is the box-edge component.
	Border *Border

	// NumFormat is the number format component.
	NumFormat *NumberFormat

	// Format is the alignment/protection aspect owned by the style.
	Format *CellFormat
}

// DefaultFont returns the font of the baseline style.
func DefaultFont() *Font {
	return &Font{Name: "Calibri", Size: 11}
}

// DefaultFill returns the empty fill of the baseline style.
func DefaultFill() *Fill {
	return &Fill{Pattern: FILL_NONE}
}

// Gray125Fill returns the second seeded fill. Readers assume the fill table
// starts with the none/gray125 pair.
func Gray125Fill() *Fill {
	return &Fill{Pattern: FILL_GRAY125}
}

// DefaultBorder returns the empty border of the baseline style.
func DefaultBorder() *Border {
	return &Border{}
}

// DefaultNumberFormat returns the General number format.
func DefaultNumberFormat() *NumberFormat {
	return &NumberFormat{Code: "General"}
}

// DefaultCellFormat returns the baseline alignment/protection flags.
// Cells are locked by default; locking only takes effect under sheet
// protection.
func DefaultCellFormat() *CellFormat {
	return &CellFormat{Locked: true}
}

// DefaultStyle returns the plain baseline style seeded at dense ID 0.
func DefaultStyle() *Style {
	return &Style{
		Name:      "Normal",
		Font:      DefaultFont(),
		Fill:      DefaultFill(),
		Border:    DefaultBorder(),
		NumFormat: DefaultNumberFormat(),
		Format:    DefaultCellFormat(),
	}
}

// DefaultBorderStyle returns the default-with-border style seeded at dense
// ID 1.
func DefaultBorderStyle() *Style {
	return &Style{
		Name:      "NormalWithBorder",
		Font:      DefaultFont(),
		Fill:      DefaultFill(),
		Border:    &Border{Left: BORDER_THIN, Right: BORDER_THIN, Top: BORDER_THIN, Bottom: BORDER_THIN},
		NumFormat: DefaultNumberFormat(),
		Format:    DefaultCellFormat(),
	}
}

// DefaultDateStyle returns the style attached to date cells that carry no
// explicit style, so the stored serial renders as a date.
func DefaultDateStyle() *Style {
	return &Style{
		Name:      "Date",
		Font:      DefaultFont(),
		Fill:      DefaultFill(),
		Border:    DefaultBorder(),
		NumFormat: &NumberFormat{Code: "mm-dd-yy"},
		Format:    DefaultCellFormat(),
	}
}

// DefaultTimeStyle returns the style attached to time cells that carry no
// explicit style.
func DefaultTimeStyle() *Style {
	return &Style{
		Name:      "Time",
		Font:      DefaultFont(),
		Fill:      DefaultFill(),
		Border:    DefaultBorder(),
		NumFormat: &NumberFormat{Code: "h:mm:ss"},
		Format:    DefaultCellFormat(),
	}
}

// Normalize returns a style with every nil component replaced by its
// default. The receiver is not modified.
func (s *Style) Normalize() *Style {
	out := *s
	if out.Font == nil {
		out.Font = DefaultFont()
	}
	if out.Fill == nil {
		out.Fill = DefaultFill()
	}
	if out.Border == nil {
		out.Border = DefaultBorder()
	}
	if out.NumFormat == nil {
		out.NumFormat = DefaultNumberFormat()
	}
	if out.Format == nil {
		out.Format = DefaultCellFormat()
	}
	return &out
}

// Hash returns the structural hash of the style: the composite of its four
// component hashes plus its directly-owned alignment/protection flags. The
// name is excluded.
func (s *Style) Hash() uint64 {
	n := s.Normalize()
	h := newStructuralHash()
	h.addUint64(n.Font.Hash())
	h.addUint64(n.Fill.Hash())
	h.addUint64(n.Border.Hash())
	h.addUint64(n.NumFormat.Hash())
	h.addUint64(n.Format.Hash())
	return h.sum()
}

// Equal reports structural equality of two styles, ignoring names.
func (s *Style) Equal(other *Style) bool {
	return s.Hash() == other.Hash()
}

// Clone returns a deep copy of the style for copy-on-write modification.
func (s *Style) Clone() *Style {
	n := s.Normalize()
	font := *n.Font
	fill := *n.Fill
	border := *n.Border
	numFmt := *n.NumFormat
	format := *n.Format
	return &Style{
		Name:      n.Name,
		Font:      &font,
		Fill:      &fill,
		Border:    &border,
		NumFormat: &numFmt,
		Format:    &format,
	}
}

// structuralHash accumulates the rendering-relevant fields of a style
// component into an FNV-1a digest. Field values are length-prefixed so
// adjacent strings cannot collide by concatenation.
type structuralHash struct {
	buf [8]byte
	h   hash.Hash64
}

func newStructuralHash() *structuralHash {
	return &structuralHash{h: fnv.New64a()}
}

func (s *structuralHash) addString(v string) {
	s.addInt(len(v))
	s.h.Write([]byte(v))
}

func (s *structuralHash) addInt(v int) {
	s.addUint64(uint64(int64(v)))
}

func (s *structuralHash) addBool(v bool) {
	if v {
		s.addUint64(1)
	} else {
		s.addUint64(0)
	}
}

func (s *structuralHash) addFloat(v float64) {
	binary.LittleEndian.PutUint64(s.buf[:], math.Float64bits(v))
	s.h.Write(s.buf[:])
}

func (s *structuralHash) addUint64(v uint64) {
	binary.LittleEndian.PutUint64(s.buf[:], v)
	s.h.Write(s.buf[:])
}

func (s *structuralHash) sum() uint64 {
	return s.h.Sum64()
}

package xlsxwriter

import (
	"regexp"
	"strconv"
	"strings"
)

// Grid bounds of the worksheet format.
const (
	XL_MAX_COL = 16383
	XL_MAX_ROW = 1048575
)

// Address fixation types, governing which coordinates carry a '$' marker
// in the textual form.
const (
	ADDR_NONE       = 0
	ADDR_FIXED_ROW  = 1
	ADDR_FIXED_COL  = 2
	ADDR_FIXED_BOTH = 3
)

var addressRegexp = regexp.MustCompile(`^(\$?)([A-Za-z]{1,3})(\$?)([0-9]{1,7})$`)

// Address identifies one cell position.
//
// Col and Row are zero-based indexes; Type is one of the ADDR_* fixation
// constants. Bounds are enforced on construction; an Address obtained from
// NewAddress or ParseAddress is always within the grid.
type Address struct {
	// Col is the zero-based column index, in range [0, XL_MAX_COL].
	Col int

	// Row is the zero-based row index, in range [0, XL_MAX_ROW].
	Row int

	// Type is the fixation type (ADDR_NONE, ADDR_FIXED_ROW, ADDR_FIXED_COL, ADDR_FIXED_BOTH).
	Type int
}

// NewAddress creates an Address after validating the coordinates and the
// fixation type.
func NewAddress(colx, rowx, addrType int) (*Address, error) {
	if colx < 0 || colx > XL_MAX_COL {
		return nil, NewRangeError("column index %d out of range [0, %d]", colx, XL_MAX_COL)
	}
	if rowx < 0 || rowx > XL_MAX_ROW {
		return nil, NewRangeError("row index %d out of range [0, %d]", rowx, XL_MAX_ROW)
	}
	if addrType < ADDR_NONE || addrType > ADDR_FIXED_BOTH {
		return nil, NewFormatError("invalid address type %d", addrType)
	}
	return &Address{Col: colx, Row: rowx, Type: addrType}, nil
}

// ColumnToIndex decodes a column label ("A".."XFD") to a zero-based column
// index. The label is a bijective base-26 numeral: A=1 .. Z=26, with no zero
// digit. Decoding is case-insensitive.
func ColumnToIndex(label string) (int, error) {
	if label == "" || len(label) > 3 {
		return 0, NewFormatError("invalid column label %q", label)
	}
	value := 0
	for _, c := range strings.ToUpper(label) {
		if c < 'A' || c > 'Z' {
			return 0, NewFormatError("invalid column label %q", label)
		}
		value = value*26 + int(c-'A') + 1
	}
	if value-1 > XL_MAX_COL {
		return 0, NewRangeError("column label %q exceeds maximum column index %d", label, XL_MAX_COL)
	}
	return value - 1, nil
}

// IndexToColumn encodes a zero-based column index as a column label,
// the inverse of ColumnToIndex.
func IndexToColumn(colx int) (string, error) {
	if colx < 0 || colx > XL_MAX_COL {
		return "", NewRangeError("column index %d out of range [0, %d]", colx, XL_MAX_COL)
	}
	value := colx + 1
	var label []byte
	for value > 0 {
		value--
		label = append([]byte{byte('A' + value%26)}, label...)
		value /= 26
	}
	return string(label), nil
}

// ParseAddress parses cell address text such as "A1", "$B2", "C$3" or "$D$4".
// The grammar is ('$')?[A-Za-z]{1,3}('$')?[0-9]{1,7}; letters are accepted
// caselessly. A grammar mismatch yields a FormatError; an address outside
// the grid yields a RangeError.
func ParseAddress(text string) (*Address, error) {
	m := addressRegexp.FindStringSubmatch(text)
	if m == nil {
		return nil, NewFormatError("invalid cell address %q", text)
	}
	colx, err := ColumnToIndex(m[2])
	if err != nil {
		return nil, err
	}
	row, err := strconv.Atoi(m[4])
	if err != nil {
		return nil, NewFormatError("invalid cell address %q", text)
	}
	rowx := row - 1
	if rowx < 0 || rowx > XL_MAX_ROW {
		return nil, NewRangeError("row %d out of range [1, %d]", row, XL_MAX_ROW+1)
	}
	addrType := ADDR_NONE
	if m[3] == "$" {
		addrType |= ADDR_FIXED_ROW
	}
	if m[1] == "$" {
		addrType |= ADDR_FIXED_COL
	}
	return &Address{Col: colx, Row: rowx, Type: addrType}, nil
}

// FormatAddress renders the coordinates as address text, emitting '$'
// markers according to the fixation type. It is the inverse of ParseAddress.
func FormatAddress(colx, rowx, addrType int) (string, error) {
	if _, err := NewAddress(colx, rowx, addrType); err != nil {
		return "", err
	}
	label, err := IndexToColumn(colx)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if addrType&ADDR_FIXED_COL != 0 {
		b.WriteByte('$')
	}
	b.WriteString(label)
	if addrType&ADDR_FIXED_ROW != 0 {
		b.WriteByte('$')
	}
	b.WriteString(strconv.Itoa(rowx + 1))
	return b.String(), nil
}

// String returns the textual form of the address. The receiver is assumed
// to hold validated coordinates.
func (a *Address) String() string {
	text, _ := FormatAddress(a.Col, a.Row, a.Type)
	return text
}

// CompareAddresses orders addresses by row first, then by column. This is
// the serialization order of populated cells. It returns a negative value
// if a sorts before b, zero if they share a position, positive otherwise.
func CompareAddresses(a, b *Address) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}

// CellRange is a rectangular region identified by two corner addresses.
// The corners may be given in any order; enumeration and the normalized
// accessors always proceed from the low corner to the high corner.
type CellRange struct {
	Start *Address
	End   *Address
}

// NewRange creates a CellRange from two corner addresses.
func NewRange(start, end *Address) *CellRange {
	return &CellRange{Start: start, End: end}
}

// ParseRange parses range text of the form "A1:C3". Exactly two addresses
// separated by one ':' are required.
func ParseRange(text string) (*CellRange, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return nil, NewFormatError("invalid range %q: expected exactly one ':'", text)
	}
	start, err := ParseAddress(parts[0])
	if err != nil {
		return nil, err
	}
	end, err := ParseAddress(parts[1])
	if err != nil {
		return nil, err
	}
	return &CellRange{Start: start, End: end}, nil
}

// normalized returns the range corners in (minCol, minRow, maxCol, maxRow)
// order regardless of how the range was constructed.
func (r *CellRange) normalized() (int, int, int, int) {
	c1, c2 := r.Start.Col, r.End.Col
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	r1, r2 := r.Start.Row, r.End.Row
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return c1, r1, c2, r2
}

// Contains reports whether the given position lies within the range.
func (r *CellRange) Contains(colx, rowx int) bool {
	c1, r1, c2, r2 := r.normalized()
	return colx >= c1 && colx <= c2 && rowx >= r1 && rowx <= r2
}

// Anchor returns the top-left position of the range.
func (r *CellRange) Anchor() (colx, rowx int) {
	c1, r1, _, _ := r.normalized()
	return c1, r1
}

// Addresses enumerates every address in the range in row-major ascending
// order. The result is independent of the order the corners were given in.
func (r *CellRange) Addresses() []*Address {
	c1, r1, c2, r2 := r.normalized()
	addrs := make([]*Address, 0, (r2-r1+1)*(c2-c1+1))
	for rowx := r1; rowx <= r2; rowx++ {
		for colx := c1; colx <= c2; colx++ {
			addrs = append(addrs, &Address{Col: colx, Row: rowx})
		}
	}
	return addrs
}

// Ref returns the normalized textual form of the range, e.g. "A1:C3".
func (r *CellRange) Ref() string {
	c1, r1, c2, r2 := r.normalized()
	start, _ := FormatAddress(c1, r1, ADDR_NONE)
	end, _ := FormatAddress(c2, r2, ADDR_NONE)
	return start + ":" + end
}

package xlsxwriter

// Cell types
const (
	XL_CELL_EMPTY   = 0
	XL_CELL_STRING  = 1
	XL_CELL_NUMBER  = 2
	XL_CELL_DATE    = 3
	XL_CELL_TIME    = 4
	XL_CELL_BOOLEAN = 5
	XL_CELL_FORMULA = 6
	XL_CELL_DEFAULT = 7 // numeric cell serialized without a type marker
)

// Cell holds one cell's value, type and optional shared style reference.
//
// The value's host type must suit the cell type: string for XL_CELL_STRING
// and XL_CELL_FORMULA, float64 for XL_CELL_NUMBER, XL_CELL_DEFAULT,
// XL_CELL_DATE and XL_CELL_TIME (a serial number, see DatetimeToSerial),
// bool for XL_CELL_BOOLEAN.
type Cell struct {
	// CType is the type of the cell.
	// One of: XL_CELL_EMPTY, XL_CELL_STRING, XL_CELL_NUMBER, XL_CELL_DATE,
	// XL_CELL_TIME, XL_CELL_BOOLEAN, XL_CELL_FORMULA, XL_CELL_DEFAULT
	CType int

	// Value is the value of the cell.
	Value interface{}

	// Style is the shared canonical style reference, or nil for an
	// unstyled cell.
	Style *Style
}

// EmptyCell returns an empty, unstyled cell.
func EmptyCell() *Cell {
	return &Cell{CType: XL_CELL_EMPTY}
}

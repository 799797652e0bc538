package xlsxwriter

import (
	"sort"
	"time"
)

// Default sheet formatting, used when a worksheet sets no override.
const (
	DEFAULT_ROW_HEIGHT = 15.0
	DEFAULT_COL_WIDTH  = 8.43
)

// SheetProtection describes the protection block of one worksheet.
//
// The format's per-action flags fall into two groups. Actions blocked by
// default while the sheet is protected: formatting cells/columns/rows,
// inserting columns/rows/hyperlinks, deleting columns/rows, sorting,
// auto-filtering and pivot tables; setting the corresponding Allow field
// re-enables one of them. Actions allowed by default: selecting locked and
// unlocked cells; the No fields block them. Objects and Scenarios editing
// is allowed by default and blocked when the corresponding field is set.
type SheetProtection struct {
	// Password is the plain protection password; it is stored in the
	// output as its PasswordHash obfuscation, never in the clear.
	Password string

	// Default-blocked actions. true re-allows the action.
	AllowFormatCells      bool
	AllowFormatColumns    bool
	AllowFormatRows       bool
	AllowInsertColumns    bool
	AllowInsertRows       bool
	AllowInsertHyperlinks bool
	AllowDeleteColumns    bool
	AllowDeleteRows       bool
	AllowSort             bool
	AllowAutoFilter       bool
	AllowPivotTables      bool

	// Default-allowed actions. true blocks the action.
	NoSelectLockedCells   bool
	NoSelectUnlockedCells bool
	LockObjects           bool
	LockScenarios         bool
}

type cellKey struct {
	row int
	col int
}

// Worksheet holds one sheet's cell grid, merges, sizing overrides and
// protection settings. Create worksheets via Workbook.AddSheet.
type Worksheet struct {
	// Name is the name of the sheet.
	Name string

	// Merges is the ordered list of merged ranges. Only the top-left cell
	// of a merged range carries real content; the subordinate cells
	// serialize empty but remain covered by the merge annotation.
	Merges []*CellRange

	// DefaultColWidth overrides the sheet default column width when > 0.
	DefaultColWidth float64

	// DefaultRowHeight overrides the sheet default row height when > 0.
	DefaultRowHeight float64

	// Protection enables the sheet protection block when non-nil.
	Protection *SheetProtection

	book       *Workbook
	cells      map[cellKey]*Cell
	colWidths  map[int]float64
	rowHeights map[int]float64
}

func newWorksheet(book *Workbook, name string) *Worksheet {
	return &Worksheet{
		Name:       name,
		book:       book,
		cells:      make(map[cellKey]*Cell),
		colWidths:  make(map[int]float64),
		rowHeights: make(map[int]float64),
	}
}

// PutCell stores a cell of the given type at (rowx, colx), replacing any
// existing cell there. Bounds are checked immediately; they are never
// deferred to save time.
func (ws *Worksheet) PutCell(rowx, colx, ctype int, value interface{}) (*Cell, error) {
	if _, err := NewAddress(colx, rowx, ADDR_NONE); err != nil {
		return nil, err
	}
	if ctype < XL_CELL_EMPTY || ctype > XL_CELL_DEFAULT {
		return nil, NewFormatError("invalid cell type %d", ctype)
	}
	cell := &Cell{CType: ctype, Value: value}
	ws.cells[cellKey{row: rowx, col: colx}] = cell
	return cell, nil
}

// SetString stores a string cell.
func (ws *Worksheet) SetString(rowx, colx int, value string) (*Cell, error) {
	return ws.PutCell(rowx, colx, XL_CELL_STRING, value)
}

// SetNumber stores a numeric cell.
func (ws *Worksheet) SetNumber(rowx, colx int, value float64) (*Cell, error) {
	return ws.PutCell(rowx, colx, XL_CELL_NUMBER, value)
}

// SetBool stores a boolean cell.
func (ws *Worksheet) SetBool(rowx, colx int, value bool) (*Cell, error) {
	return ws.PutCell(rowx, colx, XL_CELL_BOOLEAN, value)
}

// SetFormula stores a formula cell. The formula text is stored without a
// leading '=' and is not semantically validated.
func (ws *Worksheet) SetFormula(rowx, colx int, formula string) (*Cell, error) {
	return ws.PutCell(rowx, colx, XL_CELL_FORMULA, formula)
}

// SetDate stores a date cell as its 1900-system serial number.
func (ws *Worksheet) SetDate(rowx, colx int, value time.Time) (*Cell, error) {
	return ws.PutCell(rowx, colx, XL_CELL_DATE, DatetimeToSerial(value))
}

// SetTime stores a time-of-day cell as a fractional serial number.
func (ws *Worksheet) SetTime(rowx, colx, hour, minute, second int) (*Cell, error) {
	return ws.PutCell(rowx, colx, XL_CELL_TIME, TimeToSerial(hour, minute, second))
}

// Cell returns the cell at (rowx, colx), or an empty cell if the position
// is unpopulated.
func (ws *Worksheet) Cell(rowx, colx int) *Cell {
	if cell, ok := ws.cells[cellKey{row: rowx, col: colx}]; ok {
		return cell
	}
	return EmptyCell()
}

// CellByRef returns the cell at the given address text, e.g. "B3".
func (ws *Worksheet) CellByRef(ref string) (*Cell, error) {
	addr, err := ParseAddress(ref)
	if err != nil {
		return nil, err
	}
	return ws.Cell(addr.Row, addr.Col), nil
}

// SetCellStyle attaches a style to the cell at (rowx, colx), canonicalizing
// it through the workbook's style repository. The cell must exist.
func (ws *Worksheet) SetCellStyle(rowx, colx int, style *Style) error {
	cell, ok := ws.cells[cellKey{row: rowx, col: colx}]
	if !ok {
		return NewFormatError("no cell at row %d, column %d", rowx, colx)
	}
	cell.Style = ws.book.repo.AddStyle(style)
	return nil
}

// MergeRange records a merged range given as range text, e.g. "A1:C2".
func (ws *Worksheet) MergeRange(ref string) error {
	r, err := ParseRange(ref)
	if err != nil {
		return err
	}
	ws.Merges = append(ws.Merges, r)
	return nil
}

// SetColWidth overrides the width of one column. Only columns whose width
// differs from the sheet default appear in the output.
func (ws *Worksheet) SetColWidth(colx int, width float64) error {
	if colx < 0 || colx > XL_MAX_COL {
		return NewRangeError("column index %d out of range [0, %d]", colx, XL_MAX_COL)
	}
	ws.colWidths[colx] = width
	return nil
}

// SetRowHeight overrides the height of one row.
func (ws *Worksheet) SetRowHeight(rowx int, height float64) error {
	if rowx < 0 || rowx > XL_MAX_ROW {
		return NewRangeError("row index %d out of range [0, %d]", rowx, XL_MAX_ROW)
	}
	ws.rowHeights[rowx] = height
	return nil
}

// Protect enables sheet protection with the given settings.
func (ws *Worksheet) Protect(p *SheetProtection) {
	ws.Protection = p
}

// NRows returns one more than the maximum populated row index, or 0 for an
// empty sheet.
func (ws *Worksheet) NRows() int {
	max := -1
	for key := range ws.cells {
		if key.row > max {
			max = key.row
		}
	}
	return max + 1
}

// NCols returns one more than the maximum populated column index, or 0 for
// an empty sheet.
func (ws *Worksheet) NCols() int {
	max := -1
	for key := range ws.cells {
		if key.col > max {
			max = key.col
		}
	}
	return max + 1
}

type placedCell struct {
	row  int
	col  int
	cell *Cell
}

// sortPlacedCells orders cells for serialization: row as the primary key,
// column as the secondary key.
func sortPlacedCells(placed []placedCell) {
	sort.Slice(placed, func(i, j int) bool {
		if placed[i].row != placed[j].row {
			return placed[i].row < placed[j].row
		}
		return placed[i].col < placed[j].col
	})
}

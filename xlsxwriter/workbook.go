package xlsxwriter

import (
	"strings"
	"time"
)

// DocProperties holds the optional document metadata. The metadata parts
// are only emitted when a workbook carries properties.
type DocProperties struct {
	Title       string
	Subject     string
	Creator     string
	Company     string
	Description string
	Keywords    string
	Category    string

	// Created and Modified are written as W3CDTF timestamps. Zero values
	// are replaced by the save time.
	Created  time.Time
	Modified time.Time
}

// WorkbookProtection describes the workbook-level protection block.
type WorkbookProtection struct {
	// Password is stored in the output as its PasswordHash obfuscation.
	Password string

	// LockStructure prevents adding, deleting or reordering sheets.
	LockStructure bool

	// LockWindows preserves the window arrangement.
	LockWindows bool
}

// Workbook is the root of the in-memory model consumed by Serialize.
type Workbook struct {
	// Props is the optional document metadata.
	Props *DocProperties

	// Protection enables the workbook protection block when non-nil.
	Protection *WorkbookProtection

	sheets []*Worksheet
	repo   *StyleRepository
	styles *StyleManager
}

// NewWorkbook creates an empty workbook backed by the shared
// DefaultRepository style cache.
func NewWorkbook() *Workbook {
	return NewWorkbookWithRepository(DefaultRepository)
}

// NewWorkbookWithRepository creates an empty workbook with an explicit
// style cache, for callers that need isolation or reentrancy.
func NewWorkbookWithRepository(repo *StyleRepository) *Workbook {
	wb := &Workbook{repo: repo}
	wb.styles = NewStyleManager(repo)
	return wb
}

var invalidSheetNameChars = []string{"[", "]", ":", "*", "?", "/", "\\"}

// AddSheet appends a worksheet with the given name. Names must be
// non-empty, at most 31 characters, free of []:*?/\ and unique within the
// workbook.
func (wb *Workbook) AddSheet(name string) (*Worksheet, error) {
	if name == "" {
		return nil, NewFormatError("sheet name must not be empty")
	}
	if len(name) > 31 {
		return nil, NewFormatError("sheet name %q exceeds 31 characters", name)
	}
	for _, c := range invalidSheetNameChars {
		if strings.Contains(name, c) {
			return nil, NewFormatError("sheet name %q contains invalid character %q", name, c)
		}
	}
	for _, existing := range wb.sheets {
		if existing.Name == name {
			return nil, NewFormatError("duplicate sheet name %q", name)
		}
	}
	ws := newWorksheet(wb, name)
	wb.sheets = append(wb.sheets, ws)
	return ws, nil
}

// Sheets returns the worksheets in workbook order.
func (wb *Workbook) Sheets() []*Worksheet {
	return wb.sheets
}

// SheetByName returns the worksheet with the given name.
func (wb *Workbook) SheetByName(name string) (*Worksheet, error) {
	for _, ws := range wb.sheets {
		if ws.Name == name {
			return ws, nil
		}
	}
	return nil, NewFormatError("no sheet named %q", name)
}

// Styles returns the workbook's style manager.
func (wb *Workbook) Styles() *StyleManager {
	return wb.styles
}

package xlsxwriter

import "sort"

// StyleManager owns the per-document style table and the five component
// tables (fonts, fills, borders, number formats, cell formats). Component
// identity is structural: insertion is append-if-absent keyed by content
// hash. Dense IDs are not kept on the components; they are assigned by
// ResolveTables and are valid for one save pass only.
type StyleManager struct {
	repo *StyleRepository

	// styles is the style table in insertion order. The first two entries
	// are the seeded baselines: 0 the plain default, 1 the default with
	// border. Readers assume these baselines exist.
	styles []*Style

	fonts   map[uint64]*Font
	fills   map[uint64]*Fill
	borders map[uint64]*Border
	numFmts map[uint64]*NumberFormat
	formats map[uint64]*CellFormat
}

// NewStyleManager creates a manager seeded with the two built-in styles
// and their components, canonicalized through repo.
func NewStyleManager(repo *StyleRepository) *StyleManager {
	m := &StyleManager{
		repo:    repo,
		fonts:   make(map[uint64]*Font),
		fills:   make(map[uint64]*Fill),
		borders: make(map[uint64]*Border),
		numFmts: make(map[uint64]*NumberFormat),
		formats: make(map[uint64]*CellFormat),
	}
	// The gray125 fill is part of the baseline fill table even though no
	// seeded style references it.
	gray := Gray125Fill()
	m.fills[gray.Hash()] = gray
	m.AddStyle(DefaultStyle())
	m.AddStyle(DefaultBorderStyle())
	return m
}

// AddStyle canonicalizes the style through the repository, registers it in
// the style table if no structurally identical style is present, and
// registers its components in their tables. The canonical instance is
// returned; it must not be mutated.
func (m *StyleManager) AddStyle(s *Style) *Style {
	canonical := m.repo.AddStyle(s)
	hash := canonical.Hash()
	for _, existing := range m.styles {
		if existing.Hash() == hash {
			return existing
		}
	}
	m.styles = append(m.styles, canonical)
	m.registerComponents(canonical)
	return canonical
}

func (m *StyleManager) registerComponents(s *Style) {
	if _, ok := m.fonts[s.Font.Hash()]; !ok {
		m.fonts[s.Font.Hash()] = s.Font
	}
	if _, ok := m.fills[s.Fill.Hash()]; !ok {
		m.fills[s.Fill.Hash()] = s.Fill
	}
	if _, ok := m.borders[s.Border.Hash()]; !ok {
		m.borders[s.Border.Hash()] = s.Border
	}
	if _, ok := m.numFmts[s.NumFormat.Hash()]; !ok {
		m.numFmts[s.NumFormat.Hash()] = s.NumFormat
	}
	if _, ok := m.formats[s.Format.Hash()]; !ok {
		m.formats[s.Format.Hash()] = s.Format
	}
}

// StyleByName locates a style by name in the style table.
func (m *StyleManager) StyleByName(name string) (*Style, error) {
	for _, s := range m.styles {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, NewStyleError("missing style %q", name)
}

// styleByHash locates a style by structural hash. A miss signals an
// internal table or reference inconsistency.
func (m *StyleManager) styleByHash(hash uint64) (*Style, error) {
	for _, s := range m.styles {
		if s.Hash() == hash {
			return s, nil
		}
	}
	return nil, NewStyleError("no style registered under hash %#x", hash)
}

// Styles returns the style table in insertion order.
func (m *StyleManager) Styles() []*Style {
	return m.styles
}

// RemoveStyle removes the named style from the style table and sweeps the
// five component tables, deleting any component no longer referenced by a
// surviving style. Components shared with a survivor remain.
func (m *StyleManager) RemoveStyle(name string) error {
	found := -1
	for i, s := range m.styles {
		if s.Name == name {
			found = i
			break
		}
	}
	if found < 0 {
		return NewStyleError("missing style %q", name)
	}
	m.styles = append(m.styles[:found], m.styles[found+1:]...)

	// Mark.
	liveFonts := make(map[uint64]bool)
	liveFills := make(map[uint64]bool)
	liveBorders := make(map[uint64]bool)
	liveNumFmts := make(map[uint64]bool)
	liveFormats := make(map[uint64]bool)
	for _, s := range m.styles {
		liveFonts[s.Font.Hash()] = true
		liveFills[s.Fill.Hash()] = true
		liveBorders[s.Border.Hash()] = true
		liveNumFmts[s.NumFormat.Hash()] = true
		liveFormats[s.Format.Hash()] = true
	}
	liveFills[Gray125Fill().Hash()] = true

	// Sweep.
	for hash := range m.fonts {
		if !liveFonts[hash] {
			delete(m.fonts, hash)
		}
	}
	for hash := range m.fills {
		if !liveFills[hash] {
			delete(m.fills, hash)
		}
	}
	for hash := range m.borders {
		if !liveBorders[hash] {
			delete(m.borders, hash)
		}
	}
	for hash := range m.numFmts {
		if !liveNumFmts[hash] {
			delete(m.numFmts, hash)
		}
	}
	for hash := range m.formats {
		if !liveFormats[hash] {
			delete(m.formats, hash)
		}
	}
	return nil
}

// XFRecord is one resolved cellXf entry: a style's component references
// re-resolved to dense IDs. NumFmtID is the emitted numFmtId attribute
// value, a built-in ID or a custom ID at CUSTOM_NUMFMT_OFFSET or above.
type XFRecord struct {
	FontID   int
	FillID   int
	BorderID int
	NumFmtID int
	Format   *CellFormat
	Style    *Style
}

// StyleRecord binds a style name to its dense cellXf index for one save
// pass.
type StyleRecord struct {
	Name  string
	XFID  int
	Style *Style
}

// StyleTables is the output of one deduplication pass: five dense, ordered
// component tables plus the style table. Every ID is the entry's position
// in its table (for number formats, the emitted numFmtId) and is valid for
// this pass only; tables are recomputed from scratch on the next save.
type StyleTables struct {
	Fonts       []*Font
	Fills       []*Fill
	Borders     []*Border
	NumFormats  []*NumberFormat
	CellFormats []*XFRecord
	Styles      []*StyleRecord

	numFmtIDs map[uint64]int
	styleXFs  map[uint64]int
}

// ResolveTables runs the per-save deduplication pass over the full cell set
// of the workbook: mines the styles attached to cells, sorts each component
// table into its deterministic order, assigns dense zero-based IDs, and
// re-resolves every style aggregate against the canonical ID-bearing
// entries.
//
// The sort order is fixed: seeded baseline entries keep their low IDs in
// seeding order; all other entries follow in ascending structural-hash
// order. The consuming format requires referential consistency, not any
// particular ordering, and hash order is byte-stable across runs.
func (m *StyleManager) ResolveTables(wb *Workbook) (*StyleTables, error) {
	// Unstyled date and time cells pick up the built-in presentation
	// styles here; an explicit cell style always wins.
	for _, ws := range wb.Sheets() {
		for _, cell := range ws.cells {
			switch {
			case cell.Style != nil:
				cell.Style = m.AddStyle(cell.Style)
			case cell.CType == XL_CELL_DATE:
				cell.Style = m.AddStyle(DefaultDateStyle())
			case cell.CType == XL_CELL_TIME:
				cell.Style = m.AddStyle(DefaultTimeStyle())
			}
		}
	}

	t := &StyleTables{
		numFmtIDs: make(map[uint64]int),
		styleXFs:  make(map[uint64]int),
	}

	t.Fonts = sortedFonts(m.fonts, DefaultFont())
	t.Fills = sortedFills(m.fills, DefaultFill(), Gray125Fill())
	t.Borders = sortedBorders(m.borders, DefaultBorder())
	t.NumFormats = sortedNumFmts(m.numFmts, DefaultNumberFormat())

	fontIDs := make(map[uint64]int, len(t.Fonts))
	for i, f := range t.Fonts {
		fontIDs[f.Hash()] = i
	}
	fillIDs := make(map[uint64]int, len(t.Fills))
	for i, f := range t.Fills {
		fillIDs[f.Hash()] = i
	}
	borderIDs := make(map[uint64]int, len(t.Borders))
	for i, b := range t.Borders {
		borderIDs[b.Hash()] = i
	}

	// Built-in formats keep their reserved IDs; distinct custom format
	// strings take sequential IDs from the reserved offset, in table
	// order.
	custom := 0
	for _, nf := range t.NumFormats {
		if id, ok := nf.BuiltinID(); ok {
			t.numFmtIDs[nf.Hash()] = id
		} else {
			t.numFmtIDs[nf.Hash()] = CUSTOM_NUMFMT_OFFSET + custom
			custom++
		}
	}

	// Style table: the two seeded baselines keep IDs 0 and 1; the rest
	// follow in hash order.
	ordered := make([]*Style, len(m.styles))
	copy(ordered, m.styles)
	if len(ordered) > 2 {
		rest := ordered[2:]
		sort.Slice(rest, func(i, j int) bool { return rest[i].Hash() < rest[j].Hash() })
	}

	for i, s := range ordered {
		rec := &XFRecord{Format: s.Format, Style: s}
		var ok bool
		if rec.FontID, ok = fontIDs[s.Font.Hash()]; !ok {
			return nil, NewStyleError("style %q references unregistered font", s.Name)
		}
		if rec.FillID, ok = fillIDs[s.Fill.Hash()]; !ok {
			return nil, NewStyleError("style %q references unregistered fill", s.Name)
		}
		if rec.BorderID, ok = borderIDs[s.Border.Hash()]; !ok {
			return nil, NewStyleError("style %q references unregistered border", s.Name)
		}
		if rec.NumFmtID, ok = t.numFmtIDs[s.NumFormat.Hash()]; !ok {
			return nil, NewStyleError("style %q references unregistered number format", s.Name)
		}
		t.CellFormats = append(t.CellFormats, rec)
		t.Styles = append(t.Styles, &StyleRecord{Name: s.Name, XFID: i, Style: s})
		t.styleXFs[s.Hash()] = i
	}
	return t, nil
}

// XFForStyle returns the dense cellXf index assigned to the style in this
// pass. A miss means a cell references a style missing from the generated
// style table, which would be a dangling cross-reference in the output.
func (t *StyleTables) XFForStyle(s *Style) (int, error) {
	if id, ok := t.styleXFs[s.Hash()]; ok {
		return id, nil
	}
	return 0, NewStyleError("no cellXf assigned for style %q (hash %#x)", s.Name, s.Hash())
}

// NumFmtIDFor returns the emitted numFmtId for a number format in this
// pass.
func (t *StyleTables) NumFmtIDFor(nf *NumberFormat) (int, error) {
	if id, ok := t.numFmtIDs[nf.Hash()]; ok {
		return id, nil
	}
	return 0, NewStyleError("no numFmtId assigned for format %q", nf.Code)
}

// CustomNumFormats returns the custom-format entries of the pass in
// ascending emitted-ID order.
func (t *StyleTables) CustomNumFormats() []*NumberFormat {
	var customs []*NumberFormat
	for _, nf := range t.NumFormats {
		if _, builtin := nf.BuiltinID(); !builtin {
			customs = append(customs, nf)
		}
	}
	return customs
}

// The sorted* helpers fix each table's deterministic total order: seeded
// entries first, in seeding order, then the remainder ascending by
// structural hash.

func sortedFonts(table map[uint64]*Font, seeds ...*Font) []*Font {
	seen := make(map[uint64]bool, len(seeds))
	out := make([]*Font, 0, len(table)+len(seeds))
	for _, seed := range seeds {
		hash := seed.Hash()
		seen[hash] = true
		if f, ok := table[hash]; ok {
			out = append(out, f)
		} else {
			out = append(out, seed)
		}
	}
	rest := make([]*Font, 0, len(table))
	for hash, f := range table {
		if !seen[hash] {
			rest = append(rest, f)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].Hash() < rest[j].Hash() })
	return append(out, rest...)
}

func sortedFills(table map[uint64]*Fill, seeds ...*Fill) []*Fill {
	seen := make(map[uint64]bool, len(seeds))
	out := make([]*Fill, 0, len(table)+len(seeds))
	for _, seed := range seeds {
		hash := seed.Hash()
		seen[hash] = true
		if f, ok := table[hash]; ok {
			out = append(out, f)
		} else {
			out = append(out, seed)
		}
	}
	rest := make([]*Fill, 0, len(table))
	for hash, f := range table {
		if !seen[hash] {
			rest = append(rest, f)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].Hash() < rest[j].Hash() })
	return append(out, rest...)
}

func sortedBorders(table map[uint64]*Border, seeds ...*Border) []*Border {
	seen := make(map[uint64]bool, len(seeds))
	out := make([]*Border, 0, len(table)+len(seeds))
	for _, seed := range seeds {
		hash := seed.Hash()
		seen[hash] = true
		if b, ok := table[hash]; ok {
			out = append(out, b)
		} else {
			out = append(out, seed)
		}
	}
	rest := make([]*Border, 0, len(table))
	for hash, b := range table {
		if !seen[hash] {
			rest = append(rest, b)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].Hash() < rest[j].Hash() })
	return append(out, rest...)
}

func sortedNumFmts(table map[uint64]*NumberFormat, seeds ...*NumberFormat) []*NumberFormat {
	seen := make(map[uint64]bool, len(seeds))
	out := make([]*NumberFormat, 0, len(table)+len(seeds))
	for _, seed := range seeds {
		hash := seed.Hash()
		seen[hash] = true
		if nf, ok := table[hash]; ok {
			out = append(out, nf)
		} else {
			out = append(out, seed)
		}
	}
	rest := make([]*NumberFormat, 0, len(table))
	for hash, nf := range table {
		if !seen[hash] {
			rest = append(rest, nf)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].Hash() < rest[j].Hash() })
	return append(out, rest...)
}

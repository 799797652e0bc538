package xlsxwriter

import "testing"

func TestColumnRoundTrip(t *testing.T) {
	for colx := 0; colx <= XL_MAX_COL; colx++ {
		label, err := IndexToColumn(colx)
		if err != nil {
			t.Fatalf("IndexToColumn(%d) error: %v", colx, err)
		}
		back, err := ColumnToIndex(label)
		if err != nil {
			t.Fatalf("ColumnToIndex(%q) error: %v", label, err)
		}
		if back != colx {
			t.Fatalf("ColumnToIndex(IndexToColumn(%d)) = %d, want %d", colx, back, colx)
		}
	}
}

func TestColumnToIndex(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"A", 0},
		{"a", 0},
		{"Z", 25},
		{"AA", 26},
		{"AZ", 51},
		{"BA", 52},
		{"ZZ", 701},
		{"AAA", 702},
		{"XFD", 16383},
	}
	for _, tt := range tests {
		got, err := ColumnToIndex(tt.label)
		if err != nil {
			t.Errorf("ColumnToIndex(%q) error: %v", tt.label, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ColumnToIndex(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

func TestColumnToIndexErrors(t *testing.T) {
	if _, err := ColumnToIndex("XFE"); err == nil {
		t.Error("ColumnToIndex(XFE) expected error, got nil")
	} else if _, ok := err.(*RangeError); !ok {
		t.Errorf("ColumnToIndex(XFE) error = %T, want *RangeError", err)
	}
	for _, label := range []string{"", "AAAA", "A1", "$A"} {
		if _, err := ColumnToIndex(label); err == nil {
			t.Errorf("ColumnToIndex(%q) expected error, got nil", label)
		} else if _, ok := err.(*FormatError); !ok {
			t.Errorf("ColumnToIndex(%q) error = %T, want *FormatError", label, err)
		}
	}
}

func TestIndexToColumnErrors(t *testing.T) {
	for _, colx := range []int{-1, XL_MAX_COL + 1} {
		if _, err := IndexToColumn(colx); err == nil {
			t.Errorf("IndexToColumn(%d) expected error, got nil", colx)
		} else if _, ok := err.(*RangeError); !ok {
			t.Errorf("IndexToColumn(%d) error = %T, want *RangeError", colx, err)
		}
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		text     string
		col      int
		row      int
		addrType int
	}{
		{"A1", 0, 0, ADDR_NONE},
		{"a1", 0, 0, ADDR_NONE},
		{"B2", 1, 1, ADDR_NONE},
		{"A$1", 0, 0, ADDR_FIXED_ROW},
		{"$A1", 0, 0, ADDR_FIXED_COL},
		{"$A$1", 0, 0, ADDR_FIXED_BOTH},
		{"XFD1048576", XL_MAX_COL, XL_MAX_ROW, ADDR_NONE},
		{"$xfd$1048576", XL_MAX_COL, XL_MAX_ROW, ADDR_FIXED_BOTH},
	}
	for _, tt := range tests {
		addr, err := ParseAddress(tt.text)
		if err != nil {
			t.Errorf("ParseAddress(%q) error: %v", tt.text, err)
			continue
		}
		if addr.Col != tt.col || addr.Row != tt.row || addr.Type != tt.addrType {
			t.Errorf("ParseAddress(%q) = (%d, %d, %d), want (%d, %d, %d)",
				tt.text, addr.Col, addr.Row, addr.Type, tt.col, tt.row, tt.addrType)
		}
	}
}

func TestParseAddressErrors(t *testing.T) {
	formatErrors := []string{"", "1", "A", "A1B", "AAAA1", "A12345678", "A-1", "A 1"}
	for _, text := range formatErrors {
		if _, err := ParseAddress(text); err == nil {
			t.Errorf("ParseAddress(%q) expected error, got nil", text)
		} else if _, ok := err.(*FormatError); !ok {
			t.Errorf("ParseAddress(%q) error = %T, want *FormatError", text, err)
		}
	}
	rangeErrors := []string{"A0", "XFE1", "A1048577"}
	for _, text := range rangeErrors {
		if _, err := ParseAddress(text); err == nil {
			t.Errorf("ParseAddress(%q) expected error, got nil", text)
		} else if _, ok := err.(*RangeError); !ok {
			t.Errorf("ParseAddress(%q) error = %T, want *RangeError", text, err)
		}
	}
}

func TestFormatAddressRoundTrip(t *testing.T) {
	coords := []struct{ col, row int }{
		{0, 0}, {25, 9}, {26, 99}, {701, 999}, {702, 9999}, {XL_MAX_COL, XL_MAX_ROW},
	}
	for _, c := range coords {
		for addrType := ADDR_NONE; addrType <= ADDR_FIXED_BOTH; addrType++ {
			text, err := FormatAddress(c.col, c.row, addrType)
			if err != nil {
				t.Fatalf("FormatAddress(%d, %d, %d) error: %v", c.col, c.row, addrType, err)
			}
			addr, err := ParseAddress(text)
			if err != nil {
				t.Fatalf("ParseAddress(%q) error: %v", text, err)
			}
			if addr.Col != c.col || addr.Row != c.row || addr.Type != addrType {
				t.Errorf("ParseAddress(FormatAddress(%d, %d, %d)) = (%d, %d, %d)",
					c.col, c.row, addrType, addr.Col, addr.Row, addr.Type)
			}
		}
	}
}

func TestNewAddressBounds(t *testing.T) {
	if _, err := NewAddress(XL_MAX_COL+1, 0, ADDR_NONE); err == nil {
		t.Error("NewAddress over max column expected error, got nil")
	} else if _, ok := err.(*RangeError); !ok {
		t.Errorf("error = %T, want *RangeError", err)
	}
	if _, err := NewAddress(0, XL_MAX_ROW+1, ADDR_NONE); err == nil {
		t.Error("NewAddress over max row expected error, got nil")
	}
	if _, err := NewAddress(-1, 0, ADDR_NONE); err == nil {
		t.Error("NewAddress negative column expected error, got nil")
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("A1:C3")
	if err != nil {
		t.Fatalf("ParseRange error: %v", err)
	}
	if r.Start.Col != 0 || r.Start.Row != 0 || r.End.Col != 2 || r.End.Row != 2 {
		t.Errorf("ParseRange(A1:C3) = (%v, %v)", r.Start, r.End)
	}
	for _, text := range []string{"A1", "A1:B2:C3", "A1:", ":B2"} {
		if _, err := ParseRange(text); err == nil {
			t.Errorf("ParseRange(%q) expected error, got nil", text)
		}
	}
}

func TestEnumerateRange(t *testing.T) {
	single, _ := ParseRange("A1:A1")
	addrs := single.Addresses()
	if len(addrs) != 1 || addrs[0].Col != 0 || addrs[0].Row != 0 {
		t.Errorf("Addresses(A1:A1) = %v, want [A1]", addrs)
	}

	forward, _ := ParseRange("A1:B2")
	backward, _ := ParseRange("B2:A1")
	fwd := forward.Addresses()
	bwd := backward.Addresses()
	if len(fwd) != 4 || len(bwd) != 4 {
		t.Fatalf("len = %d and %d, want 4", len(fwd), len(bwd))
	}
	wantOrder := []string{"A1", "B1", "A2", "B2"}
	for i := range fwd {
		if fwd[i].String() != wantOrder[i] {
			t.Errorf("forward[%d] = %s, want %s", i, fwd[i].String(), wantOrder[i])
		}
		if fwd[i].Col != bwd[i].Col || fwd[i].Row != bwd[i].Row {
			t.Errorf("enumeration differs at %d: %v vs %v", i, fwd[i], bwd[i])
		}
	}
}

func TestRangeRef(t *testing.T) {
	r, _ := ParseRange("C3:A1")
	if got := r.Ref(); got != "A1:C3" {
		t.Errorf("Ref() = %q, want %q", got, "A1:C3")
	}
}

func TestCompareAddresses(t *testing.T) {
	a1 := &Address{Col: 0, Row: 0}
	b1 := &Address{Col: 1, Row: 0}
	a2 := &Address{Col: 0, Row: 1}
	if CompareAddresses(a1, b1) >= 0 {
		t.Error("A1 should sort before B1")
	}
	if CompareAddresses(b1, a2) >= 0 {
		t.Error("B1 should sort before A2 (row is the primary key)")
	}
	if CompareAddresses(a1, a1) != 0 {
		t.Error("A1 should compare equal to itself")
	}
}

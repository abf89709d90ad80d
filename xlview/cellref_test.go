package xlview

import "testing"

func TestParseCellRef(t *testing.T) {
	tests := []struct {
		ref     string
		row     int
		col     int
		wantErr bool
	}{
		{"A1", 0, 0, false},
		{"B2", 1, 1, false},
		{"Z1", 0, 25, false},
		{"AA1", 0, 26, false},
		{"AB10", 9, 27, false},
		{"XFD1048576", 1048575, 16383, false},
		{"$A$1", 0, 0, false},
		{"a1", 0, 0, false},
		{"", 0, 0, true},
		{"A", 0, 0, true},
		{"1", 0, 0, true},
		{"A0", 0, 0, true},
		{"1A", 0, 0, true},
		{"A1B", 0, 0, true},
	}

	for _, tt := range tests {
		row, col, err := ParseCellRef(tt.ref)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCellRef(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			continue
		}
		if err == nil && (row != tt.row || col != tt.col) {
			t.Errorf("ParseCellRef(%q) = (%d, %d), want (%d, %d)", tt.ref, row, col, tt.row, tt.col)
		}
	}
}

func TestParseCellRefErrorType(t *testing.T) {
	_, _, err := ParseCellRef("bogus!")
	if _, ok := err.(*InvalidReferenceError); !ok {
		t.Errorf("ParseCellRef error type = %T, want *InvalidReferenceError", err)
	}
}

func TestFormatCellRef(t *testing.T) {
	tests := []struct {
		row  int
		col  int
		want string
	}{
		{0, 0, "A1"},
		{9, 27, "AB10"},
		{0, 25, "Z1"},
		{0, 26, "AA1"},
		{0, 701, "ZZ1"},
		{0, 702, "AAA1"},
		{1048575, 16383, "XFD1048576"},
	}

	for _, tt := range tests {
		if got := FormatCellRef(tt.row, tt.col); got != tt.want {
			t.Errorf("FormatCellRef(%d, %d) = %q, want %q", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestParseCellRange(t *testing.T) {
	r, err := ParseCellRange("B2:D10")
	if err != nil {
		t.Fatalf("ParseCellRange error = %v", err)
	}
	want := CellRange{StartRow: 1, StartCol: 1, EndRow: 9, EndCol: 3}
	if r != want {
		t.Errorf("ParseCellRange(B2:D10) = %+v, want %+v", r, want)
	}

	single, err := ParseCellRange("C3")
	if err != nil {
		t.Fatalf("ParseCellRange error = %v", err)
	}
	if single.StartRow != 2 || single.EndRow != 2 || single.StartCol != 2 || single.EndCol != 2 {
		t.Errorf("ParseCellRange(C3) = %+v", single)
	}

	if _, err := ParseCellRange("nope"); err == nil {
		t.Error("ParseCellRange(nope) expected error")
	}
}

func TestParseSqref(t *testing.T) {
	ranges := ParseSqref("A1:B2 D4 bogus E5:E9")
	if len(ranges) != 3 {
		t.Fatalf("ParseSqref returned %d ranges, want 3", len(ranges))
	}
	if !ranges[0].Contains(1, 1) || ranges[0].Contains(2, 0) {
		t.Errorf("range 0 = %+v", ranges[0])
	}
	if !ranges[1].Contains(3, 3) {
		t.Errorf("range 1 = %+v", ranges[1])
	}
	if !ranges[2].Contains(6, 4) || ranges[2].Contains(6, 5) {
		t.Errorf("range 2 = %+v", ranges[2])
	}
}

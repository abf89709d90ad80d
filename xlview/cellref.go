package xlview

import (
	"strconv"
	"strings"
)

// ParseCellRef parses an A1-style reference like "B7" or "$C$2" into
// 0-indexed (row, col). Dollar signs are ignored.
func ParseCellRef(ref string) (int, int, error) {
	row, col, ok := parseCellRefLenient(ref)
	if !ok {
		return 0, 0, NewInvalidReferenceError(ref)
	}
	return row, col, nil
}

func parseCellRefLenient(ref string) (int, int, bool) {
	col := 0
	row := 0
	sawCol := false
	sawRow := false

	for _, ch := range strings.TrimSpace(ref) {
		switch {
		case ch == '$':
			continue
		case ch >= 'A' && ch <= 'Z':
			if sawRow {
				return 0, 0, false
			}
			col = col*26 + int(ch-'A') + 1
			sawCol = true
		case ch >= 'a' && ch <= 'z':
			if sawRow {
				return 0, 0, false
			}
			col = col*26 + int(ch-'a') + 1
			sawCol = true
		case ch >= '0' && ch <= '9':
			if !sawCol {
				return 0, 0, false
			}
			row = row*10 + int(ch-'0')
			sawRow = true
		default:
			return 0, 0, false
		}
	}

	if !sawCol || !sawRow || row == 0 {
		return 0, 0, false
	}
	return row - 1, col - 1, true
}

// CellRange is a rectangular 0-indexed cell range, inclusive on both ends.
type CellRange struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// Contains reports whether (row, col) falls inside the range.
func (r CellRange) Contains(row, col int) bool {
	return row >= r.StartRow && row <= r.EndRow && col >= r.StartCol && col <= r.EndCol
}

// ParseCellRange parses "A1:B10" or a single reference "A1" into a CellRange.
func ParseCellRange(ref string) (CellRange, error) {
	start, end, found := strings.Cut(ref, ":")
	if !found {
		end = start
	}
	sr, sc, err := ParseCellRef(start)
	if err != nil {
		return CellRange{}, err
	}
	er, ec, err := ParseCellRef(end)
	if err != nil {
		return CellRange{}, err
	}
	return CellRange{StartRow: sr, StartCol: sc, EndRow: er, EndCol: ec}, nil
}

// ParseSqref parses a space-separated list of ranges ("A1:B2 D4") into a
// slice of ranges. Unparseable members are skipped.
func ParseSqref(sqref string) []CellRange {
	var ranges []CellRange
	for _, part := range strings.Fields(sqref) {
		if r, err := ParseCellRange(part); err == nil {
			ranges = append(ranges, r)
		}
	}
	return ranges
}

// ColToLetter converts a 0-indexed column number to its letter form
// (0 -> "A", 25 -> "Z", 26 -> "AA").
func ColToLetter(col int) string {
	var buf [8]byte
	i := len(buf)
	n := col + 1
	for n > 0 {
		i--
		n--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:])
}

// FormatCellRef formats a 0-indexed (row, col) pair as an A1-style reference.
func FormatCellRef(row, col int) string {
	return ColToLetter(col) + strconv.Itoa(row+1)
}

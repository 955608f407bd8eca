package xlsx

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ParseCellRef splits an A1-style reference such as "B7" into a zero-based
// column and row. Lowercase letters are accepted.
func ParseCellRef(ref string) (col, row int, err error) {
	digits := strings.IndexAny(ref, "0123456789")
	if digits <= 0 {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}
	col = ColumnToIndex(ref[:digits])
	n, err := strconv.Atoi(ref[digits:])
	if col < 0 || err != nil || n < 1 {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}
	return col, n - 1, nil
}

// ColumnToIndex maps column letters to a zero-based index, so A is 0 and AA
// is 26. It returns -1 for anything that is not letters.
func ColumnToIndex(letters string) int {
	if letters == "" {
		return -1
	}
	n := 0
	for _, c := range strings.ToUpper(letters) {
		if c < 'A' || c > 'Z' {
			return -1
		}
		// bijective base 26: A=1 ... Z=26
		n = n*26 + int(c-'A'+1)
	}
	return n - 1
}

// IndexToColumn maps a zero-based index back to column letters.
func IndexToColumn(index int) string {
	if index < 0 {
		return ""
	}
	var letters []byte
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		letters = append(letters, byte('A'+(n-1)%26))
	}
	slices.Reverse(letters)
	return string(letters)
}

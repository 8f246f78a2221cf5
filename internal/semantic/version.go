// Package semantic normalizes free-form client version tokens into
// comparable major.minor.patch triples.
package semantic

import (
	"cmp"
	"fmt"
)

// Version is a version token reduced to its numeric triple. Two tokens
// that normalize to the same triple compare equal regardless of their
// original prefix or suffix decoration.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Compare returns an integer representing the sort order of w relative
// to the subject Version.
//
// The result will be 0 if v == w, -1 if v < w, or +1 if v > w.
func (v Version) Compare(w Version) int {
	if diff := cmp.Compare(v.Major, w.Major); diff != 0 {
		return diff
	}
	if diff := cmp.Compare(v.Minor, w.Minor); diff != 0 {
		return diff
	}

	return cmp.Compare(v.Patch, w.Patch)
}

// CompareStr parses str and compares it against the subject Version,
// returning ErrNotAVersion if str does not normalize.
func (v Version) CompareStr(str string) (int, error) {
	w, err := Parse(str)
	if err != nil {
		return 0, err
	}

	return v.Compare(w), nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

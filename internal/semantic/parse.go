package semantic

import (
	"errors"
	"strconv"
	"strings"

	"github.com/smolgroot/rpc-fingerprint/internal/cachedregexp"
)

// ErrNotAVersion is returned when no major.minor.patch triple can be
// found in a token. Callers must treat it as "cannot evaluate", not as
// a reason to abort.
var ErrNotAVersion = errors.New("no major.minor.patch version found")

// Parse normalizes a free-form version token:
//
//  1. surrounding whitespace is trimmed
//  2. a single leading "v" or "V" is stripped
//  3. pre-release and build suffixes ("-stable", "-beta", "-alpha",
//     "-rcN", "-unstable", and anything after "+") are stripped
//  4. the numeric triple is taken from the start of the remainder,
//     or failing that from anywhere within it
//
// Pre-release suffixes are discarded rather than compared, so
// "1.10.0-beta" and "1.10.0" are indistinguishable. That matches how
// the vulnerability catalog expresses its ranges; do not "fix" it.
//
// Parse is idempotent on its own output: Parse(v.String()) == v.
func Parse(token string) (Version, error) {
	token = strings.TrimSpace(token)
	token = cachedregexp.MustCompile(`^[vV]`).ReplaceAllString(token, "")
	token = cachedregexp.MustCompile(`-(stable|beta|alpha|rc\d*|unstable).*$`).ReplaceAllString(token, "")
	token = cachedregexp.MustCompile(`\+.*$`).ReplaceAllString(token, "")

	triple := cachedregexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)`).FindStringSubmatch(token)
	if triple == nil {
		triple = cachedregexp.MustCompile(`(\d+)\.(\d+)\.(\d+)`).FindStringSubmatch(token)
	}
	if triple == nil {
		return Version{}, ErrNotAVersion
	}

	var components [3]int
	for i, number := range triple[1:] {
		component, err := strconv.Atoi(number)
		if err != nil {
			return Version{}, ErrNotAVersion
		}
		components[i] = component
	}

	return Version{Major: components[0], Minor: components[1], Patch: components[2]}, nil
}

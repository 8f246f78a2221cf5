// Package identifiers defines the ordering of security advisory IDs.
package identifiers

import (
	"strings"
)

func prefixOrder(prefix string) int {
	switch prefix {
	case "CVE":
		// Highest precedence
		return 2
	case "GHSA":
		// Lowest precedence
		return 0
	}

	return 1
}

// SortFunc sorts IDs ascending by CVE < [ECO-SPECIFIC] < GHSA
func SortFunc(a, b string) int {
	prefixAOrd := prefixOrder(strings.Split(a, "-")[0])
	prefixBOrd := prefixOrder(strings.Split(b, "-")[0])

	if prefixAOrd > prefixBOrd {
		return -1
	} else if prefixAOrd < prefixBOrd {
		return 1
	}

	return strings.Compare(a, b)
}

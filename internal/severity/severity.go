// Package severity defines the severity ratings used by the
// vulnerability database, their sort order, and helpers for deriving
// ratings from CVSS scores and vectors.
package severity

import (
	"strings"

	gocvss20 "github.com/pandatix/go-cvss/20"
	gocvss30 "github.com/pandatix/go-cvss/30"
	gocvss31 "github.com/pandatix/go-cvss/31"
	gocvss40 "github.com/pandatix/go-cvss/40"
)

// Rating represents the severity level of a vulnerability.
type Rating string

const (
	CriticalRating Rating = "CRITICAL"
	HighRating     Rating = "HIGH"
	MediumRating   Rating = "MEDIUM"
	LowRating      Rating = "LOW"
	NoneRating     Rating = "NONE"
	UnknownRating  Rating = "UNKNOWN"
)

// Rank returns the sort position of a rating, most severe first.
func Rank(r Rating) int {
	switch r {
	case CriticalRating:
		return 0
	case HighRating:
		return 1
	case MediumRating:
		return 2
	case LowRating:
		return 3
	case UnknownRating:
		return 4
	case NoneRating:
		return 5
	}

	return 4
}

// IsValid reports whether r is one of the four ratings a vulnerability
// record may carry.
func IsValid(r Rating) bool {
	switch r {
	case CriticalRating, HighRating, MediumRating, LowRating:
		return true
	}

	return false
}

// FromScore maps a CVSS base score to a rating. All CVSS versions use
// the same rating bands, so v3.0's mapping is used throughout.
func FromScore(score float64) Rating {
	rating, err := gocvss30.Rating(score)
	if err != nil || rating == "NONE" {
		return UnknownRating
	}

	return Rating(rating)
}

// CalculateScore parses a CVSS vector string and returns its base score
// along with the corresponding rating.
func CalculateScore(vector string) (float64, Rating, error) {
	var score float64

	switch {
	case strings.HasPrefix(vector, "CVSS:3.0"):
		vec, err := gocvss30.ParseVector(vector)
		if err != nil {
			return -1, UnknownRating, err
		}
		score = vec.BaseScore()
	case strings.HasPrefix(vector, "CVSS:3.1"):
		vec, err := gocvss31.ParseVector(vector)
		if err != nil {
			return -1, UnknownRating, err
		}
		score = vec.BaseScore()
	case strings.HasPrefix(vector, "CVSS:4.0"):
		vec, err := gocvss40.ParseVector(vector)
		if err != nil {
			return -1, UnknownRating, err
		}
		score = vec.Score()
	default:
		// CVSS 2.0 vectors have no version prefix
		vec, err := gocvss20.ParseVector(vector)
		if err != nil {
			return -1, UnknownRating, err
		}
		score = vec.BaseScore()
	}

	return score, FromScore(score), nil
}

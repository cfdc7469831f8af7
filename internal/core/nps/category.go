// Package nps classifies survey ratings and computes net promoter scores
//
// A rating of 9 or 10 is a promoter, 7 or 8 a passive, 0 through 6 a detractor.
// Everything else, including non-numeric input, is invalid. The score is
// (promoters - detractors) / total * 100 where total counts every category
package nps

import (
	"math"
	"strconv"
	"strings"
)

// Category is the group a rating falls into
type Category string

// Known categories
const (
	Promoter  Category = "promoter"
	Passive   Category = "passive"
	Detractor Category = "detractor"
	Invalid   Category = "invalid"
)

var ordered = [...]Category{Promoter, Passive, Detractor, Invalid}

// Categories returns the four categories in a fixed order
func Categories() []Category { return ordered[:] }

// Valid reports whether c is one of the four known categories
func (c Category) Valid() bool {
	switch c {
	case Promoter, Passive, Detractor, Invalid:
		return true
	}
	return false
}

// Categorize maps a rating to its category. It is total: NaN, infinities and
// non-integral values that match no range are invalid
func Categorize(rating float64) Category {
	switch {
	case rating == 9 || rating == 10:
		return Promoter
	case rating == 7 || rating == 8:
		return Passive
	case rating >= 0 && rating <= 6:
		return Detractor
	default:
		return Invalid
	}
}

// CategorizeText parses s as a number and categorizes it; unparsable text is invalid
func CategorizeText(s string) Category {
	return Categorize(ParseRating(s))
}

// ParseRating returns the numeric value of s or NaN when s is not a number
func ParseRating(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

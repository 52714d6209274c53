package exercise

import (
	"math"
	"strconv"
	"strings"
)

// CompareConfig sets the tolerance for numeric answer comparison. It is
// threaded into the agent explicitly; there is no package-level default
// in effect at runtime.
type CompareConfig struct {
	// RelTol is the relative tolerance, scaled by the claimed answer's
	// magnitude.
	RelTol float64

	// AbsTol is the absolute floor, so answers near zero still compare.
	AbsTol float64
}

// DefaultCompareConfig returns the standard tolerances: 0.1% relative
// with a 0.01 absolute floor.
func DefaultCompareConfig() CompareConfig {
	return CompareConfig{RelTol: 1e-3, AbsTol: 1e-2}
}

// Matches reports whether an executed result agrees with the claimed
// answer. When both parse as numbers the comparison is tolerant:
// |claimed - actual| ≤ |claimed|*RelTol + AbsTol. Otherwise it is an
// exact match after trimming surrounding whitespace.
func (c CompareConfig) Matches(claimed, actual string) bool {
	claimed = strings.TrimSpace(claimed)
	actual = strings.TrimSpace(actual)

	cv, cerr := strconv.ParseFloat(claimed, 64)
	av, aerr := strconv.ParseFloat(actual, 64)
	if cerr == nil && aerr == nil {
		return math.Abs(cv-av) <= math.Abs(cv)*c.RelTol+c.AbsTol
	}

	return claimed == actual
}

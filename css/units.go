package css

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
)

// Length is a measurement in points.
type Length float64

var errNotNumeric = errors.New("not a numeric value")

// ParseLength reads leading number from value. Whatever follows the number
// (unit marker) is ignored, so "14pt", "14" and "14px" are all 14 points.
func ParseLength(value string) (Length, error) {
	b := []byte(strings.TrimSpace(value))
	n := parse.Number(b)
	if n == 0 {
		return 0, fmt.Errorf("length %q: %w", value, errNotNumeric)
	}
	f, err := strconv.ParseFloat(string(b[:n]), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("length %q: %w", value, errNotNumeric)
	}
	return Length(f), nil
}

func mustLength(value string) Length {
	l, err := ParseLength(value)
	if err != nil {
		panic(err)
	}
	return l
}

// Twips converts points to twips (1/20 pt). Halves are rounded away from
// zero, results outside of int32 range saturate.
func (l Length) Twips() int {
	return saturate(float64(l) * 20)
}

// HalfPoints converts points to half-points. Halves are rounded away from
// zero, results outside of int32 range saturate.
func (l Length) HalfPoints() int {
	return saturate(float64(l) * 2)
}

func saturate(f float64) int {
	return int(math.Round(math.Max(math.MinInt32, math.Min(math.MaxInt32, f))))
}

// PtToTwips converts numeric string with optional unit marker to twips.
func PtToTwips(value string) (int, error) {
	l, err := ParseLength(value)
	if err != nil {
		return 0, err
	}
	return l.Twips(), nil
}

// PtToHalfPoints converts numeric string with optional unit marker to half-points.
func PtToHalfPoints(value string) (int, error) {
	l, err := ParseLength(value)
	if err != nil {
		return 0, err
	}
	return l.HalfPoints(), nil
}

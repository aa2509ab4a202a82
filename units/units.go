// Package units defines the two measurement systems a box design can be
// expressed in and the arithmetic used to move values between them.
package units

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// System identifies a measurement system.
type System string

const (
	Millimeters System = "mm"
	Inches      System = "in"
)

const (
	// MillimetersPerInch is exact.
	MillimetersPerInch = 25.4
	// PointsPerInch is the native resolution of PDF page geometry.
	PointsPerInch = 72.0
	// InchesPerMillimeter is the fixed precision factor used when a record is
	// migrated from mm to in. It is not the exact reciprocal of 25.4, so a
	// mm -> in -> mm round trip drifts in the fifth decimal.
	InchesPerMillimeter = 0.039370079
	// Precision is the number of decimals kept after a migration.
	Precision int32 = 5
)

// Systems returns the recognized systems in a stable order.
func Systems() []System {
	return []System{Millimeters, Inches}
}

func (s System) String() string {
	return string(s)
}

// Valid reports whether s is one of the recognized systems.
func (s System) Valid() bool {
	switch s {
	case Millimeters, Inches:
		return true
	default:
		return false
	}
}

// Parse accepts a System or a string. Matching is exact: "MM" is not "mm".
func Parse(v any) (System, bool) {
	var s System
	switch t := v.(type) {
	case System:
		s = t
	case string:
		s = System(t)
	default:
		return "", false
	}
	if !s.Valid() {
		return "", false
	}
	return s, true
}

func (s System) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

func (s *System) UnmarshalText(text []byte) error {
	parsed, ok := Parse(string(text))
	if !ok {
		return fmt.Errorf("units: unknown measurement system %q", string(text))
	}
	*s = parsed
	return nil
}

// PointsMultiplier returns the factor that converts PDF points into to.
func PointsMultiplier(to System) float64 {
	if to == Inches {
		return 1.0 / PointsPerInch
	}
	return MillimetersPerInch / PointsPerInch
}

// Multiplier returns the factor that converts a value expressed in from into to.
// Anything that is not an identity or an mm -> in conversion is treated as in -> mm.
func Multiplier(from, to System) float64 {
	switch {
	case from == to:
		return 1.0
	case to == Inches && from == Millimeters:
		return 1.0 / MillimetersPerInch
	default:
		return MillimetersPerInch
	}
}

// MigrationMultiplier returns the factor applied to every stored dimension
// when a record moves from one system to another.
func MigrationMultiplier(from System) float64 {
	if from == Inches {
		return MillimetersPerInch
	}
	return InchesPerMillimeter
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

package config

import (
	"github.com/goliatone/go-lasercut/units"
)

// Recognized option keys.
const (
	KeyUnits      = "units"
	KeyPageSize   = "page_size"
	KeyPageLayout = "page_layout"
	KeyMetadata   = "metadata"
	KeySize       = "size"
	KeyWidth      = "width"
	KeyHeight     = "height"
	KeyDepth      = "depth"
	KeyThickness  = "thickness"
	KeyNotch      = "notch"
	KeyMargin     = "margin"
	KeyPadding    = "padding"
	KeyStroke     = "stroke"
	KeyFile       = "file"
)

const (
	LayoutPortrait  = "portrait"
	LayoutLandscape = "landscape"
)

var (
	floatFields    = []string{KeyWidth, KeyHeight, KeyDepth, KeyThickness, KeyNotch, KeyMargin, KeyPadding, KeyStroke}
	requiredFields = []string{KeyWidth, KeyHeight, KeyDepth, KeyThickness, KeyNotch, KeyFile}
	nonZeroFields  = []string{KeyWidth, KeyHeight, KeyDepth, KeyThickness, KeyStroke}
	stringFields   = []string{KeyPageSize, KeyPageLayout, KeyFile}
)

// FloatFields lists the options stored as floating point numbers.
func FloatFields() []string { return append([]string(nil), floatFields...) }

// RequiredFields lists the options Validate expects to be present.
func RequiredFields() []string { return append([]string(nil), requiredFields...) }

// NonZeroFields lists the options Validate rejects when zero.
func NonZeroFields() []string { return append([]string(nil), nonZeroFields...) }

// Defaults returns the general defaults. Each call returns a fresh map.
func Defaults() map[string]any {
	return map[string]any{
		KeyUnits:      units.Millimeters,
		KeyPageSize:   "LETTER",
		KeyPageLayout: LayoutPortrait,
		KeyMetadata:   true,
	}
}

// UnitDefaults returns margin, padding and stroke defaults for u.
// Unknown systems get the millimeter table.
func UnitDefaults(u units.System) map[string]float64 {
	if u == units.Inches {
		return map[string]float64{
			KeyMargin:  0.125,
			KeyPadding: 0.1,
			KeyStroke:  0.001,
		}
	}
	return map[string]float64{
		KeyMargin:  5,
		KeyPadding: 5,
		KeyStroke:  0.0254,
	}
}

// MergeDefaults applies the defaults part of the pipeline to a raw option map
// and returns a new map: nil values are stripped, unknown units dropped, then
// the general and unit specific defaults fill whatever the input left out.
// It does not expand size or coerce values.
func MergeDefaults(options map[string]any) map[string]any {
	m := stripNil(cloneOptions(options))
	m = dropUnknownUnits(m)
	m = mergeGeneralDefaults(m)
	return mergeUnitDefaults(m)
}

func cloneOptions(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func stripNil(m map[string]any) map[string]any {
	for k, v := range m {
		if isNil(v) {
			delete(m, k)
		}
	}
	return m
}

func dropUnknownUnits(m map[string]any) map[string]any {
	raw, ok := m[KeyUnits]
	if !ok {
		return m
	}
	if u, valid := units.Parse(raw); valid {
		m[KeyUnits] = u
	} else {
		delete(m, KeyUnits)
	}
	return m
}

func mergeGeneralDefaults(m map[string]any) map[string]any {
	for k, v := range Defaults() {
		if _, ok := m[k]; !ok {
			m[k] = v
		}
	}
	return m
}

func mergeUnitDefaults(m map[string]any) map[string]any {
	u, _ := units.Parse(m[KeyUnits])
	for k, v := range UnitDefaults(u) {
		if _, ok := m[k]; !ok {
			m[k] = v
		}
	}
	return m
}

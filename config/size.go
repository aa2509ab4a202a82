package config

import (
	"regexp"
	"strings"
)

var sizePattern = regexp.MustCompile(`^([\d.]+)x([\d.]+)x([\d.]+)/([\d.]+)/([\d.]+)$`)

// SizeSpec is the expanded form of the "WxHxD/thickness/notch" shorthand.
// Values are kept as text so they go through the same numeric coercion as
// any other user input.
type SizeSpec struct {
	Width     string
	Height    string
	Depth     string
	Thickness string
	Notch     string
}

// ParseSize expands a shorthand such as "100x50x30/3/5". It returns false
// when s does not have that shape.
func ParseSize(s string) (SizeSpec, bool) {
	parts := sizePattern.FindStringSubmatch(strings.TrimSpace(s))
	if parts == nil {
		return SizeSpec{}, false
	}
	return SizeSpec{
		Width:     parts[1],
		Height:    parts[2],
		Depth:     parts[3],
		Thickness: parts[4],
		Notch:     parts[5],
	}, true
}

func (s SizeSpec) fields() map[string]any {
	return map[string]any{
		KeyWidth:     s.Width,
		KeyHeight:    s.Height,
		KeyDepth:     s.Depth,
		KeyThickness: s.Thickness,
		KeyNotch:     s.Notch,
	}
}

// expandSize overwrites the five dimension fields and removes size. A size
// that is not a string or does not parse is left in place.
func expandSize(m map[string]any) map[string]any {
	raw, ok := m[KeySize].(string)
	if !ok {
		return m
	}
	spec, ok := ParseSize(raw)
	if !ok {
		return m
	}
	for k, v := range spec.fields() {
		m[k] = v
	}
	delete(m, KeySize)
	return m
}

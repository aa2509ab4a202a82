package config

import (
	"encoding/json"
	"testing"

	"github.com/goliatone/go-lasercut/units"
	"github.com/stretchr/testify/assert"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input string
		want  SizeSpec
		ok    bool
	}{
		{input: "100x50x30/3/5", want: SizeSpec{"100", "50", "30", "3", "5"}, ok: true},
		{input: "2.5x3x4.25/0.125/0.5", want: SizeSpec{"2.5", "3", "4.25", "0.125", "0.5"}, ok: true},
		{input: "  10x10x10/3/6\n", want: SizeSpec{"10", "10", "10", "3", "6"}, ok: true},
		{input: "100x50/3/5"},
		{input: "100x50x30/3"},
		{input: "100X50X30/3/5"},
		{input: "box 100x50x30/3/5"},
		{input: ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseSize(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandSizeIgnoresNonStrings(t *testing.T) {
	m := expandSize(map[string]any{"size": 100})
	assert.Equal(t, map[string]any{"size": 100}, m)
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		clean bool
	}{
		{"12.5", 12.5, true},
		{"  7 ", 7, true},
		{"-3", -3, true},
		{"+.5", 0.5, true},
		{"5.", 5, true},
		{"1_000.25", 1000.25, true},
		{"2e3", 2000, true},
		{"6mm", 6, false},
		{"1.2.3", 1.2, false},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"e5", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, clean := ParseFloat(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.clean, clean)
		})
	}
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
		ok    bool
	}{
		{"float", 1.5, 1.5, true},
		{"int", 3, 3, true},
		{"int64", int64(4), 4, true},
		{"uint8", uint8(5), 5, true},
		{"float32", float32(0.5), 0.5, true},
		{"json number", json.Number("2.25"), 2.25, true},
		{"string", "8", 8, true},
		{"bool", true, 0, false},
		{"slice", []int{1}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerceFloat(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestMergeDefaults(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]any
		want  map[string]any
	}{
		{
			name:  "empty input",
			input: map[string]any{},
			want: map[string]any{
				"units": units.Millimeters, "page_size": "LETTER", "page_layout": "portrait", "metadata": true,
				"margin": 5.0, "padding": 5.0, "stroke": 0.0254,
			},
		},
		{
			name:  "inches with overrides",
			input: map[string]any{"units": "in", "page_size": "A4", "stroke": 0.002, "width": nil},
			want: map[string]any{
				"units": units.Inches, "page_size": "A4", "page_layout": "portrait", "metadata": true,
				"margin": 0.125, "padding": 0.1, "stroke": 0.002,
			},
		},
		{
			name:  "unknown units",
			input: map[string]any{"units": "cm", "metadata": false},
			want: map[string]any{
				"units": units.Millimeters, "page_size": "LETTER", "page_layout": "portrait", "metadata": false,
				"margin": 5.0, "padding": 5.0, "stroke": 0.0254,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeDefaults(tt.input))
		})
	}
}

func TestUnitDefaultsFallBackToMillimeters(t *testing.T) {
	assert.Equal(t, UnitDefaults(units.Millimeters), UnitDefaults(units.System("")))
}

package pagesize

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLookup(t *testing.T) {
	letter, ok := Default().Lookup("LETTER")
	require.True(t, ok)
	assert.Equal(t, Size{Width: 612, Height: 792}, letter)

	_, ok = Default().Lookup("letter")
	assert.False(t, ok, "names are case sensitive")
}

func TestNamesSorted(t *testing.T) {
	names := Default().Names()
	assert.Len(t, names, len(standard))
	assert.True(t, sort.StringsAreSorted(names))
	assert.Equal(t, "2A0", names[0])
	assert.Equal(t, "TABLOID", names[len(names)-1])
}

func TestPortraitGeometry(t *testing.T) {
	for name, size := range standard {
		assert.LessOrEqual(t, size.Width, size.Height, name)
	}
}

func TestCustomTable(t *testing.T) {
	table := Table{"SQUARE": {100, 100}, "BAR": {10, 50}}
	assert.Equal(t, []string{"BAR", "SQUARE"}, table.Names())
}

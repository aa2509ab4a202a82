package config

import (
	"fmt"
	"sort"
	"strings"
)

// PageSizeValue is a catalog entry expressed in the record's units.
type PageSizeValue struct {
	Name   string
	Width  float64
	Height float64
}

// PageSizeValues lists the catalog sorted by name.
func (c *Configuration) PageSizeValues() []PageSizeValue {
	catalog := c.pageCatalog()
	names := catalog.Names()
	sort.Strings(names)

	out := make([]PageSizeValue, 0, len(names))
	for _, name := range names {
		size, ok := catalog.Lookup(name)
		if !ok {
			continue
		}
		out = append(out, PageSizeValue{
			Name:   name,
			Width:  c.ValueFromUnits(size.Width),
			Height: c.ValueFromUnits(size.Height),
		})
	}
	return out
}

// AllPageSizes renders PageSizeValues one per line.
func (c *Configuration) AllPageSizes() string {
	var b strings.Builder
	for _, p := range c.PageSizeValues() {
		fmt.Fprintf(&b, "\t%10s:\t%6.1f x %6.1f\n", p.Name, p.Width, p.Height)
	}
	return b.String()
}

// PageDimensions returns the selected page in the record's units, with width
// and height swapped for a landscape layout.
func (c *Configuration) PageDimensions() (width, height float64, err error) {
	size, ok := c.pageCatalog().Lookup(c.PageSize)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownPageSize, c.PageSize)
	}
	width, height = c.ValueFromUnits(size.Width), c.ValueFromUnits(size.Height)
	if c.PageLayout == LayoutLandscape {
		width, height = height, width
	}
	return width, height, nil
}

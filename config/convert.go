package config

import (
	"github.com/goliatone/go-lasercut/units"
)

// ValueFromUnits converts value into the record's units. Without from, value
// is taken to be in PDF points, the unit of the page size catalog.
func (c *Configuration) ValueFromUnits(value float64, from ...units.System) float64 {
	if len(from) == 0 || from[0] == "" {
		return value * units.PointsMultiplier(c.Units)
	}
	return value * units.Multiplier(from[0], c.Units)
}

// ChangeUnits rewrites every numeric option into to, rounding to five
// decimals. It is a no-op when to is the current or an unknown system.
func (c *Configuration) ChangeUnits(to units.System) {
	if to == c.Units || !to.Valid() {
		return
	}
	k := units.MigrationMultiplier(c.Units)
	for _, f := range c.floatRefs() {
		if *f.ref == nil {
			continue
		}
		v := units.Round(**f.ref*k, units.Precision)
		*f.ref = &v
	}
	c.Units = to
}

// InUnits returns a migrated copy and leaves c untouched.
func (c *Configuration) InUnits(to units.System) *Configuration {
	out := c.Clone()
	out.ChangeUnits(to)
	return out
}

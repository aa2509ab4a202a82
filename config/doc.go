// Package config normalizes user supplied parameters for a laser cut box
// (dimensions, material thickness, notch size, units and page layout) into a
// single Configuration record that a plan renderer can consume.
//
// Construction runs a fixed pipeline over the raw key/value input:
//
//	strip nil -> drop unknown units -> coerce scalars -> general defaults
//	-> expand size shorthand -> coerce floats -> unit specific defaults
//
// Validation is never implicit: call Validate when the record is expected to
// be complete. ChangeUnits migrates an existing record between mm and in.
package config

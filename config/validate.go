package config

// Validate checks that every required option is present and that no
// dimension or the stroke is zero. The presence check runs first; the zero
// check is only reached when nothing is missing.
func (c *Configuration) Validate() error {
	var missing []string
	for _, key := range requiredFields {
		if !c.Has(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return missingOption(missing)
	}

	var zeros []string
	for _, key := range nonZeroFields {
		if v, ok := c.Float(key); ok && v == 0 {
			zeros = append(zeros, key)
		}
	}
	if len(zeros) > 0 {
		return zeroValueNotAllowed(zeros)
	}
	return nil
}

package source

// MergeIgnoringNullValues merges src into dest without letting nil or empty
// values from a higher priority source erase a value already loaded.
func MergeIgnoringNullValues(src, dest map[string]any) error {
	for k, v := range src {
		dv, ok := dest[k]
		if !ok {
			dest[k] = v
			continue
		}

		if v == nil {
			continue
		}

		var overwrite bool
		switch vv := v.(type) {
		case string:
			overwrite = vv != ""
		case []any:
			overwrite = len(vv) > 0
		case map[string]any:
			if dvv, ok := dv.(map[string]any); ok {
				if err := MergeIgnoringNullValues(vv, dvv); err != nil {
					return err
				}
				continue
			}
			overwrite = true
		default:
			overwrite = true
		}

		if overwrite {
			dest[k] = v
		}
	}

	return nil
}

package source

import (
	"strings"

	"github.com/goliatone/go-lasercut/config"
	"github.com/spf13/pflag"
)

// RegisterFlags adds a flag per box option. Numeric options are string
// flags so their values go through the same coercion as file and env values.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("units", "u", "", "units of measure, mm or in")
	fs.StringP("page-size", "P", "", "page size, e.g. LETTER or A4")
	fs.StringP("page-layout", "L", "", "page layout, portrait or landscape")
	fs.Bool("metadata", true, "print box metadata on the page")
	fs.StringP("size", "s", "", "box size as WxHxD/T/N, e.g. 100x50x30/3/9")
	fs.StringP("width", "w", "", "internal box width")
	fs.String("height", "", "internal box height")
	fs.StringP("depth", "d", "", "internal box depth")
	fs.StringP("thickness", "t", "", "material thickness")
	fs.StringP("notch", "n", "", "notch length")
	fs.StringP("margin", "m", "", "page margin")
	fs.StringP("padding", "p", "", "space between box sides")
	fs.String("stroke", "", "line stroke width")
	fs.StringP("file", "o", "", "output PDF file")
}

// flagKey maps a flag name to its option key, or "" for flags that are not
// box options.
func flagKey(name string) string {
	key := strings.ReplaceAll(name, "-", "_")
	if _, ok := optionKeys[key]; !ok {
		return ""
	}
	return key
}

var optionKeys = func() map[string]struct{} {
	keys := map[string]struct{}{
		config.KeyUnits:      {},
		config.KeyPageSize:   {},
		config.KeyPageLayout: {},
		config.KeyMetadata:   {},
		config.KeySize:       {},
		config.KeyFile:       {},
	}
	for _, k := range config.FloatFields() {
		keys[k] = struct{}{}
	}
	return keys
}()

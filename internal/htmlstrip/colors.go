package htmlstrip

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// namedColors maps the CSS color keywords seen in hiding attempts to hex.
// Anything outside this table that is not hex or rgb() fails open.
var namedColors = map[string]string{
	"white":   "#ffffff",
	"black":   "#000000",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#c0c0c0",
	"maroon":  "#800000",
	"olive":   "#808000",
	"lime":    "#00ff00",
	"aqua":    "#00ffff",
	"cyan":    "#00ffff",
	"teal":    "#008080",
	"navy":    "#000080",
	"fuchsia": "#ff00ff",
	"magenta": "#ff00ff",
}

var (
	hex3Re = regexp.MustCompile(`^#([0-9a-f])([0-9a-f])([0-9a-f])$`)
	hex6Re = regexp.MustCompile(`^#[0-9a-f]{6}$`)
	rgbRe  = regexp.MustCompile(`^rgba?\(\s*([\d.]+)\s*,\s*([\d.]+)\s*,\s*([\d.]+)\s*(?:,\s*[\d.]+\s*)?\)$`)
)

// normalizeColor canonicalizes a CSS color token to lowercase #rrggbb form.
// The second return is false when the token cannot be normalized.
func normalizeColor(token string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	t = strings.TrimSuffix(t, "!important")
	t = strings.TrimSpace(t)

	if hexv, ok := namedColors[t]; ok {
		return hexv, true
	}
	if m := hex3Re.FindStringSubmatch(t); m != nil {
		return "#" + m[1] + m[1] + m[2] + m[2] + m[3] + m[3], true
	}
	if hex6Re.MatchString(t) {
		return t, true
	}
	if m := rgbRe.FindStringSubmatch(t); m != nil {
		r, okR := channel(m[1])
		g, okG := channel(m[2])
		b, okB := channel(m[3])
		if okR && okG && okB {
			return fmt.Sprintf("#%02x%02x%02x", r, g, b), true
		}
	}
	return "", false
}

// channel rounds an rgb() channel to an integer and clamps it to 0..255.
func channel(s string) (int, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	v := int(f + 0.5)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return v, true
}

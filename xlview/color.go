package xlview

import (
	"fmt"
	"strconv"
	"strings"
)

// IndexedColors is the fixed 64-entry legacy palette referenced by
// indexed color attributes. The first eight entries repeat per ECMA-376.
var IndexedColors = [64]string{
	"#000000", "#FFFFFF", "#FF0000", "#00FF00", "#0000FF", "#FFFF00", "#FF00FF", "#00FFFF",
	"#000000", "#FFFFFF", "#FF0000", "#00FF00", "#0000FF", "#FFFF00", "#FF00FF", "#00FFFF",
	"#800000", "#008000", "#000080", "#808000", "#800080", "#008080", "#C0C0C0", "#808080",
	"#9999FF", "#993366", "#FFFFCC", "#CCFFFF", "#660066", "#FF8080", "#0066CC", "#CCCCFF",
	"#000080", "#FF00FF", "#FFFF00", "#00FFFF", "#800080", "#800000", "#008080", "#0000FF",
	"#00CCFF", "#CCFFFF", "#CCFFCC", "#FFFF99", "#99CCFF", "#FF99CC", "#CC99FF", "#FFCC99",
	"#3366FF", "#33CCCC", "#99CC00", "#FFCC00", "#FF9900", "#FF6600", "#666699", "#969696",
	"#003366", "#339966", "#003300", "#333300", "#993300", "#993366", "#333399", "#333333",
}

// ResolveColor resolves a raw color element to a "#RRGGBB" string.
// Precedence: explicit RGB, then theme index with tint, then the indexed
// palette, then auto. Returns "" when the element carries nothing usable.
func ResolveColor(c *xlsxColor, theme *Theme) string {
	if c == nil {
		return ""
	}
	if c.RGB != "" {
		if hex := normalizeRGB(c.RGB); hex != "" {
			return hex
		}
	}
	if c.Theme != nil {
		idx := *c.Theme
		var base string
		if theme != nil && idx >= 0 && idx < len(theme.Colors) {
			base = theme.Colors[idx]
		} else if idx >= 0 && idx < len(DefaultThemeColors) {
			base = DefaultThemeColors[idx]
		} else {
			base = "#000000"
		}
		if c.Tint != 0 {
			return ApplyTint(base, c.Tint)
		}
		return base
	}
	if c.Indexed != nil {
		idx := *c.Indexed
		if idx >= 0 && idx < len(IndexedColors) {
			return IndexedColors[idx]
		}
		return "#000000"
	}
	if c.Auto {
		return "#000000"
	}
	return ""
}

// normalizeRGB turns "FFRRGGBB", "RRGGBB" or "#RRGGBB" into "#RRGGBB",
// stripping the alpha channel when present.
func normalizeRGB(rgb string) string {
	rgb = strings.TrimPrefix(rgb, "#")
	switch len(rgb) {
	case 8:
		return "#" + strings.ToUpper(rgb[2:])
	case 6:
		return "#" + strings.ToUpper(rgb)
	}
	return ""
}

// ApplyTint lightens (tint > 0) or darkens (tint < 0) a "#RRGGBB" color by
// the standard luminance modification: the HSL lightness moves toward white
// or black by the tint fraction.
func ApplyTint(hex string, tint float64) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return hex
	}
	h, s, l := rgbToHSL(r, g, b)
	if tint > 0 {
		l = l + (1-l)*tint
	} else {
		l = l * (1 + tint)
	}
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	nr, ng, nb := hslToRGB(h, s, l)
	return fmt.Sprintf("#%02X%02X%02X", nr, ng, nb)
}

func parseHex(hex string) (int, int, int, bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16), int(v >> 8 & 0xFF), int(v & 0xFF), true
}

func rgbToHSL(r, g, b int) (float64, float64, float64) {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	max := rf
	if gf > max {
		max = gf
	}
	if bf > max {
		max = bf
	}
	min := rf
	if gf < min {
		min = gf
	}
	if bf < min {
		min = bf
	}

	l := (max + min) / 2
	if max == min {
		return 0, 0, l
	}

	d := max - min
	var s float64
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	var h float64
	switch max {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/d + 2
	default:
		h = (rf-gf)/d + 4
	}
	h /= 6
	return h, s, l
}

func hslToRGB(h, s, l float64) (int, int, int) {
	if s == 0 {
		v := int(l*255 + 0.5)
		return v, v, v
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	r := hueToRGB(p, q, h+1.0/3)
	g := hueToRGB(p, q, h)
	b := hueToRGB(p, q, h-1.0/3)
	return int(r*255 + 0.5), int(g*255 + 0.5), int(b*255 + 0.5)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

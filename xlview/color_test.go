package xlview

import "testing"

func intPtr(v int) *int { return &v }

func TestResolveColorRGB(t *testing.T) {
	tests := []struct {
		rgb  string
		want string
	}{
		{"FF0000FF", "#0000FF"},
		{"ff8800cc", "#8800CC"},
		{"00FF00", "#00FF00"},
		{"#123abc", "#123ABC"},
	}

	for _, tt := range tests {
		got := ResolveColor(&xlsxColor{RGB: tt.rgb}, nil)
		if got != tt.want {
			t.Errorf("ResolveColor(rgb=%q) = %q, want %q", tt.rgb, got, tt.want)
		}
	}
}

func TestResolveColorPrecedence(t *testing.T) {
	// Explicit RGB wins over theme and indexed.
	c := &xlsxColor{RGB: "FFFF0000", Theme: intPtr(4), Indexed: intPtr(2)}
	if got := ResolveColor(c, defaultTheme()); got != "#FF0000" {
		t.Errorf("ResolveColor = %q, want #FF0000", got)
	}

	// Theme wins over indexed.
	c = &xlsxColor{Theme: intPtr(4), Indexed: intPtr(2)}
	if got := ResolveColor(c, defaultTheme()); got != "#4472C4" {
		t.Errorf("ResolveColor = %q, want #4472C4", got)
	}
}

func TestResolveColorIndexed(t *testing.T) {
	if got := ResolveColor(&xlsxColor{Indexed: intPtr(2)}, nil); got != "#FF0000" {
		t.Errorf("ResolveColor(indexed=2) = %q, want #FF0000", got)
	}
	// Out of range falls back to black.
	if got := ResolveColor(&xlsxColor{Indexed: intPtr(200)}, nil); got != "#000000" {
		t.Errorf("ResolveColor(indexed=200) = %q, want #000000", got)
	}
}

func TestResolveColorAuto(t *testing.T) {
	if got := ResolveColor(&xlsxColor{Auto: true}, nil); got != "#000000" {
		t.Errorf("ResolveColor(auto) = %q, want #000000", got)
	}
	if got := ResolveColor(&xlsxColor{}, nil); got != "" {
		t.Errorf("ResolveColor(empty) = %q, want empty", got)
	}
	if got := ResolveColor(nil, nil); got != "" {
		t.Errorf("ResolveColor(nil) = %q, want empty", got)
	}
}

func TestApplyTint(t *testing.T) {
	tests := []struct {
		hex  string
		tint float64
		want string
	}{
		{"#000000", 0.5, "#808080"},
		{"#FFFFFF", -0.5, "#808080"},
		{"#000000", 0, "#000000"},
		{"#FFFFFF", 1, "#FFFFFF"},
		{"#FF0000", -1, "#000000"},
	}

	for _, tt := range tests {
		if got := ApplyTint(tt.hex, tt.tint); got != tt.want {
			t.Errorf("ApplyTint(%q, %v) = %q, want %q", tt.hex, tt.tint, got, tt.want)
		}
	}
}

func TestDecodeTheme(t *testing.T) {
	const themeXML = `<?xml version="1.0"?>
<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office">
<a:themeElements>
<a:clrScheme name="Office">
<a:dk1><a:sysClr val="windowText" lastClr="111111"/></a:dk1>
<a:lt1><a:sysClr val="window" lastClr="EEEEEE"/></a:lt1>
<a:dk2><a:srgbClr val="44546A"/></a:dk2>
<a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>
<a:accent1><a:srgbClr val="4472C4"/></a:accent1>
<a:accent2><a:srgbClr val="ED7D31"/></a:accent2>
<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3>
<a:accent4><a:srgbClr val="FFC000"/></a:accent4>
<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5>
<a:accent6><a:srgbClr val="70AD47"/></a:accent6>
<a:hlink><a:srgbClr val="0563C1"/></a:hlink>
<a:folHlink><a:srgbClr val="954F72"/></a:folHlink>
</a:clrScheme>
<a:fontScheme name="Office">
<a:majorFont><a:latin typeface="Calibri Light"/></a:majorFont>
<a:minorFont><a:latin typeface="Calibri"/></a:minorFont>
</a:fontScheme>
</a:themeElements>
</a:theme>`

	theme, err := decodeTheme("xl/theme/theme1.xml", []byte(themeXML))
	if err != nil {
		t.Fatalf("decodeTheme error = %v", err)
	}
	// Slot 0 is lt1, slot 1 is dk1.
	if theme.Colors[0] != "#EEEEEE" {
		t.Errorf("slot 0 = %q, want #EEEEEE", theme.Colors[0])
	}
	if theme.Colors[1] != "#111111" {
		t.Errorf("slot 1 = %q, want #111111", theme.Colors[1])
	}
	if theme.Colors[4] != "#4472C4" {
		t.Errorf("slot 4 = %q, want #4472C4", theme.Colors[4])
	}
	if theme.Colors[11] != "#954F72" {
		t.Errorf("slot 11 = %q, want #954F72", theme.Colors[11])
	}
	if theme.MajorFont != "Calibri Light" || theme.MinorFont != "Calibri" {
		t.Errorf("fonts = %q / %q", theme.MajorFont, theme.MinorFont)
	}
}

package xlview

import "encoding/xml"

// Theme holds the workbook theme's color palette and major/minor fonts.
// The palette is indexed the way cell color theme attributes reference it:
// 0 lt1, 1 dk1, 2 lt2, 3 dk2, 4-9 accent1-6, 10 hyperlink, 11 followed
// hyperlink.
type Theme struct {
	Colors    []string
	MajorFont string
	MinorFont string
}

// DefaultThemeColors is the built-in Office palette used when a package
// carries no theme part.
var DefaultThemeColors = [12]string{
	"#FFFFFF", // lt1 (background 1)
	"#000000", // dk1 (text 1)
	"#E7E6E6", // lt2 (background 2)
	"#44546A", // dk2 (text 2)
	"#4472C4", // accent1
	"#ED7D31", // accent2
	"#A5A5A5", // accent3
	"#FFC000", // accent4
	"#5B9BD5", // accent5
	"#70AD47", // accent6
	"#0563C1", // hyperlink
	"#954F72", // followed hyperlink
}

func defaultTheme() *Theme {
	t := &Theme{Colors: make([]string, len(DefaultThemeColors))}
	copy(t.Colors, DefaultThemeColors[:])
	return t
}

type xlsxTheme struct {
	XMLName       xml.Name          `xml:"theme"`
	ThemeElements xlsxThemeElements `xml:"themeElements"`
}

type xlsxThemeElements struct {
	ClrScheme  xlsxClrScheme  `xml:"clrScheme"`
	FontScheme xlsxFontScheme `xml:"fontScheme"`
}

type xlsxClrScheme struct {
	Dk1      xlsxThemeColor `xml:"dk1"`
	Lt1      xlsxThemeColor `xml:"lt1"`
	Dk2      xlsxThemeColor `xml:"dk2"`
	Lt2      xlsxThemeColor `xml:"lt2"`
	Accent1  xlsxThemeColor `xml:"accent1"`
	Accent2  xlsxThemeColor `xml:"accent2"`
	Accent3  xlsxThemeColor `xml:"accent3"`
	Accent4  xlsxThemeColor `xml:"accent4"`
	Accent5  xlsxThemeColor `xml:"accent5"`
	Accent6  xlsxThemeColor `xml:"accent6"`
	Hlink    xlsxThemeColor `xml:"hlink"`
	FolHlink xlsxThemeColor `xml:"folHlink"`
}

type xlsxThemeColor struct {
	SrgbClr *xlsxSrgbClr `xml:"srgbClr"`
	SysClr  *xlsxSysClr  `xml:"sysClr"`
}

type xlsxSrgbClr struct {
	Val string `xml:"val,attr"`
}

type xlsxSysClr struct {
	Val     string `xml:"val,attr"`
	LastClr string `xml:"lastClr,attr"`
}

type xlsxFontScheme struct {
	MajorFont xlsxThemeFont `xml:"majorFont"`
	MinorFont xlsxThemeFont `xml:"minorFont"`
}

type xlsxThemeFont struct {
	Latin xlsxLatinFont `xml:"latin"`
}

type xlsxLatinFont struct {
	Typeface string `xml:"typeface,attr"`
}

func (c *xlsxThemeColor) hex() string {
	if c.SrgbClr != nil && len(c.SrgbClr.Val) == 6 {
		return "#" + c.SrgbClr.Val
	}
	if c.SysClr != nil && len(c.SysClr.LastClr) == 6 {
		return "#" + c.SysClr.LastClr
	}
	return ""
}

// decodeTheme parses xl/theme/theme1.xml. Any slot the theme does not define
// keeps the built-in default.
func decodeTheme(path string, data []byte) (*Theme, error) {
	var raw xlsxTheme
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, NewXMLParseError(path, err)
	}
	theme := defaultTheme()
	cs := raw.ThemeElements.ClrScheme
	slots := []xlsxThemeColor{
		cs.Lt1, cs.Dk1, cs.Lt2, cs.Dk2,
		cs.Accent1, cs.Accent2, cs.Accent3, cs.Accent4, cs.Accent5, cs.Accent6,
		cs.Hlink, cs.FolHlink,
	}
	for i, slot := range slots {
		if hex := slot.hex(); hex != "" {
			theme.Colors[i] = hex
		}
	}
	theme.MajorFont = raw.ThemeElements.FontScheme.MajorFont.Latin.Typeface
	theme.MinorFont = raw.ThemeElements.FontScheme.MinorFont.Latin.Typeface
	return theme, nil
}

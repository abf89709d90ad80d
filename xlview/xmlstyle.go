package xlview

import "encoding/xml"

// xlsxStyleSheet directly maps the styleSheet element from xl/styles.xml.
type xlsxStyleSheet struct {
	XMLName      xml.Name          `xml:"styleSheet"`
	NumFmts      *xlsxNumFmts      `xml:"numFmts"`
	Fonts        *xlsxFonts        `xml:"fonts"`
	Fills        *xlsxFills        `xml:"fills"`
	Borders      *xlsxBorders      `xml:"borders"`
	CellStyleXfs *xlsxCellStyleXfs `xml:"cellStyleXfs"`
	CellXfs      *xlsxCellXfs      `xml:"cellXfs"`
	Dxfs         *xlsxDxfs         `xml:"dxfs"`
	Colors       *xlsxStyleColors  `xml:"colors"`
}

type xlsxNumFmts struct {
	Count   int           `xml:"count,attr"`
	NumFmts []xlsxNumFmt  `xml:"numFmt"`
}

type xlsxNumFmt struct {
	NumFmtID   int    `xml:"numFmtId,attr"`
	FormatCode string `xml:"formatCode,attr"`
}

type xlsxFonts struct {
	Count int        `xml:"count,attr"`
	Font  []xlsxFont `xml:"font"`
}

type xlsxFont struct {
	B      *xlsxBoolVal   `xml:"b"`
	I      *xlsxBoolVal   `xml:"i"`
	U      *xlsxStringVal `xml:"u"`
	Strike *xlsxBoolVal   `xml:"strike"`
	Sz     *xlsxFloatVal  `xml:"sz"`
	Name   *xlsxStringVal `xml:"name"`
	Color  *xlsxColor     `xml:"color"`
}

// xlsxBoolVal maps elements like <b/> or <b val="0"/> where absence of the
// val attribute means true.
type xlsxBoolVal struct {
	Val *string `xml:"val,attr"`
}

// Value reports the effective boolean: present element with no val is true.
func (v *xlsxBoolVal) Value() bool {
	if v == nil {
		return false
	}
	if v.Val == nil {
		return true
	}
	return *v.Val == "1" || *v.Val == "true"
}

type xlsxStringVal struct {
	Val string `xml:"val,attr"`
}

type xlsxFloatVal struct {
	Val float64 `xml:"val,attr"`
}

// xlsxColor is the common mapping for color elements (font color, fgColor,
// bgColor, tabColor). Exactly one of RGB/Theme/Indexed/Auto is meaningful.
type xlsxColor struct {
	Auto    bool    `xml:"auto,attr"`
	RGB     string  `xml:"rgb,attr"`
	Indexed *int    `xml:"indexed,attr"`
	Theme   *int    `xml:"theme,attr"`
	Tint    float64 `xml:"tint,attr"`
}

type xlsxFills struct {
	Count int        `xml:"count,attr"`
	Fill  []xlsxFill `xml:"fill"`
}

type xlsxFill struct {
	PatternFill  *xlsxPatternFill  `xml:"patternFill"`
	GradientFill *xlsxGradientFill `xml:"gradientFill"`
}

type xlsxPatternFill struct {
	PatternType string     `xml:"patternType,attr"`
	FgColor     *xlsxColor `xml:"fgColor"`
	BgColor     *xlsxColor `xml:"bgColor"`
}

type xlsxGradientFill struct {
	Degree float64                `xml:"degree,attr"`
	Stops  []xlsxGradientFillStop `xml:"stop"`
}

type xlsxGradientFillStop struct {
	Position float64    `xml:"position,attr"`
	Color    *xlsxColor `xml:"color"`
}

type xlsxBorders struct {
	Count  int          `xml:"count,attr"`
	Border []xlsxBorder `xml:"border"`
}

type xlsxBorder struct {
	DiagonalUp   bool      `xml:"diagonalUp,attr"`
	DiagonalDown bool      `xml:"diagonalDown,attr"`
	Left         *xlsxLine `xml:"left"`
	Right        *xlsxLine `xml:"right"`
	Top          *xlsxLine `xml:"top"`
	Bottom       *xlsxLine `xml:"bottom"`
	Diagonal     *xlsxLine `xml:"diagonal"`
}

type xlsxLine struct {
	Style string     `xml:"style,attr"`
	Color *xlsxColor `xml:"color"`
}

type xlsxCellStyleXfs struct {
	Count int      `xml:"count,attr"`
	Xf    []xlsxXf `xml:"xf"`
}

type xlsxCellXfs struct {
	Count int      `xml:"count,attr"`
	Xf    []xlsxXf `xml:"xf"`
}

// xlsxXf describes one formatting record. The apply flags are tri-state:
// nil means the attribute was absent, which producers commonly omit.
type xlsxXf struct {
	NumFmtID          *int           `xml:"numFmtId,attr"`
	FontID            *int           `xml:"fontId,attr"`
	FillID            *int           `xml:"fillId,attr"`
	BorderID          *int           `xml:"borderId,attr"`
	XfID              *int           `xml:"xfId,attr"`
	ApplyNumberFormat *bool          `xml:"applyNumberFormat,attr"`
	ApplyFont         *bool          `xml:"applyFont,attr"`
	ApplyFill         *bool          `xml:"applyFill,attr"`
	ApplyBorder       *bool          `xml:"applyBorder,attr"`
	ApplyAlignment    *bool          `xml:"applyAlignment,attr"`
	Alignment         *xlsxAlignment `xml:"alignment"`
}

type xlsxAlignment struct {
	Horizontal   string `xml:"horizontal,attr"`
	Vertical     string `xml:"vertical,attr"`
	WrapText     bool   `xml:"wrapText,attr"`
	ShrinkToFit  bool   `xml:"shrinkToFit,attr"`
	TextRotation int    `xml:"textRotation,attr"`
	Indent       int    `xml:"indent,attr"`
}

// xlsxDxfs holds differential formats referenced by conditional formatting
// rules through dxfId.
type xlsxDxfs struct {
	Count int       `xml:"count,attr"`
	Dxfs  []xlsxDxf `xml:"dxf"`
}

type xlsxDxf struct {
	Font   *xlsxFont   `xml:"font"`
	Fill   *xlsxFill   `xml:"fill"`
	Border *xlsxBorder `xml:"border"`
	NumFmt *xlsxNumFmt `xml:"numFmt"`
}

type xlsxStyleColors struct {
	IndexedColors *xlsxIndexedColors `xml:"indexedColors"`
}

type xlsxIndexedColors struct {
	RGBColors []xlsxRGBColor `xml:"rgbColor"`
}

type xlsxRGBColor struct {
	RGB string `xml:"rgb,attr"`
}

// decodeStyleSheet parses xl/styles.xml. A stylesheet that fails to parse at
// the root is fatal; everything inside is handled leniently downstream.
func decodeStyleSheet(path string, data []byte) (*xlsxStyleSheet, error) {
	var ss xlsxStyleSheet
	if err := xml.Unmarshal(data, &ss); err != nil {
		return nil, NewXMLParseError(path, err)
	}
	return &ss, nil
}

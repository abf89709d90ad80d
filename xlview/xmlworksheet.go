package xlview

import "encoding/xml"

// xlsxWorksheet directly maps the worksheet element from
// xl/worksheets/sheetN.xml. Unknown children are ignored by the decoder,
// which is the leniency XLSX producers require in practice.
type xlsxWorksheet struct {
	XMLName               xml.Name                    `xml:"worksheet"`
	SheetPr               *xlsxSheetPr                `xml:"sheetPr"`
	Dimension             *xlsxDimension              `xml:"dimension"`
	SheetViews            *xlsxSheetViews             `xml:"sheetViews"`
	SheetFormatPr         *xlsxSheetFormatPr          `xml:"sheetFormatPr"`
	Cols                  *xlsxCols                   `xml:"cols"`
	SheetData             xlsxSheetData               `xml:"sheetData"`
	MergeCells            *xlsxMergeCells             `xml:"mergeCells"`
	ConditionalFormatting []xlsxConditionalFormatting `xml:"conditionalFormatting"`
	Hyperlinks            *xlsxHyperlinks             `xml:"hyperlinks"`
	Drawing               *xlsxDrawingRef             `xml:"drawing"`
	LegacyDrawing         *xlsxDrawingRef             `xml:"legacyDrawing"`
	ExtLst                *xlsxExtLst                 `xml:"extLst"`
}

type xlsxSheetPr struct {
	TabColor *xlsxColor `xml:"tabColor"`
}

type xlsxDimension struct {
	Ref string `xml:"ref,attr"`
}

type xlsxSheetViews struct {
	SheetView []xlsxSheetView `xml:"sheetView"`
}

type xlsxSheetView struct {
	Pane *xlsxPane `xml:"pane"`
}

type xlsxPane struct {
	XSplit      float64 `xml:"xSplit,attr"`
	YSplit      float64 `xml:"ySplit,attr"`
	TopLeftCell string  `xml:"topLeftCell,attr"`
	State       string  `xml:"state,attr"`
}

type xlsxSheetFormatPr struct {
	DefaultColWidth  float64 `xml:"defaultColWidth,attr"`
	DefaultRowHeight float64 `xml:"defaultRowHeight,attr"`
}

type xlsxCols struct {
	Col []xlsxCol `xml:"col"`
}

type xlsxCol struct {
	Min         int     `xml:"min,attr"`
	Max         int     `xml:"max,attr"`
	Width       float64 `xml:"width,attr"`
	CustomWidth bool    `xml:"customWidth,attr"`
	Hidden      bool    `xml:"hidden,attr"`
	OutlineLvl  int     `xml:"outlineLevel,attr"`
}

type xlsxSheetData struct {
	Row []xlsxRow `xml:"row"`
}

type xlsxRow struct {
	R            int     `xml:"r,attr"`
	Ht           float64 `xml:"ht,attr"`
	CustomHeight bool    `xml:"customHeight,attr"`
	Hidden       bool    `xml:"hidden,attr"`
	C            []xlsxC `xml:"c"`
}

type xlsxC struct {
	R  string            `xml:"r,attr"`
	S  *int              `xml:"s,attr"`
	T  string            `xml:"t,attr"`
	F  *xlsxFormula      `xml:"f"`
	V  string            `xml:"v"`
	Is *xlsxInlineString `xml:"is"`
}

type xlsxFormula struct {
	Content string `xml:",chardata"`
}

type xlsxInlineString struct {
	T string        `xml:"t"`
	R []xlsxRichRun `xml:"r"`
}

type xlsxMergeCells struct {
	MergeCell []xlsxMergeCell `xml:"mergeCell"`
}

type xlsxMergeCell struct {
	Ref string `xml:"ref,attr"`
}

type xlsxHyperlinks struct {
	Hyperlink []xlsxHyperlink `xml:"hyperlink"`
}

type xlsxHyperlink struct {
	Ref      string `xml:"ref,attr"`
	RID      string `xml:"id,attr"`
	Location string `xml:"location,attr"`
	Display  string `xml:"display,attr"`
	Tooltip  string `xml:"tooltip,attr"`
}

type xlsxDrawingRef struct {
	RID string `xml:"id,attr"`
}

// extLst carries extension content; sparkline groups live under the x14
// namespace and are matched by local name.
type xlsxExtLst struct {
	Ext []xlsxExt `xml:"ext"`
}

type xlsxExt struct {
	SparklineGroups *xlsxSparklineGroups `xml:"sparklineGroups"`
}

type xlsxSparklineGroups struct {
	SparklineGroup []xlsxSparklineGroup `xml:"sparklineGroup"`
}

type xlsxSparklineGroup struct {
	Type       string          `xml:"type,attr"`
	Sparklines *xlsxSparklines `xml:"sparklines"`
}

type xlsxSparklines struct {
	Sparkline []xlsxSparkline `xml:"sparkline"`
}

type xlsxSparkline struct {
	F     string `xml:"f"`
	Sqref string `xml:"sqref"`
}

// Conditional formatting raw shapes.

type xlsxConditionalFormatting struct {
	Sqref  string       `xml:"sqref,attr"`
	CfRule []xlsxCfRule `xml:"cfRule"`
}

type xlsxCfRule struct {
	Type         string          `xml:"type,attr"`
	Priority     int             `xml:"priority,attr"`
	Operator     string          `xml:"operator,attr"`
	StopIfTrue   bool            `xml:"stopIfTrue,attr"`
	DxfID        *int            `xml:"dxfId,attr"`
	Text         string          `xml:"text,attr"`
	Rank         int             `xml:"rank,attr"`
	Percent      bool            `xml:"percent,attr"`
	Bottom       bool            `xml:"bottom,attr"`
	AboveAverage *bool           `xml:"aboveAverage,attr"`
	EqualAverage bool            `xml:"equalAverage,attr"`
	StdDev       int             `xml:"stdDev,attr"`
	TimePeriod   string          `xml:"timePeriod,attr"`
	Formula      []string        `xml:"formula"`
	ColorScale   *xlsxColorScale `xml:"colorScale"`
	DataBar      *xlsxDataBar    `xml:"dataBar"`
	IconSet      *xlsxIconSet    `xml:"iconSet"`
}

type xlsxColorScale struct {
	Cfvo  []xlsxCfvo  `xml:"cfvo"`
	Color []xlsxColor `xml:"color"`
}

type xlsxDataBar struct {
	MinLength *int        `xml:"minLength,attr"`
	MaxLength *int        `xml:"maxLength,attr"`
	ShowValue *bool       `xml:"showValue,attr"`
	Cfvo      []xlsxCfvo  `xml:"cfvo"`
	Color     []xlsxColor `xml:"color"`
}

type xlsxIconSet struct {
	IconSet   string     `xml:"iconSet,attr"`
	ShowValue *bool      `xml:"showValue,attr"`
	Reverse   bool       `xml:"reverse,attr"`
	Cfvo      []xlsxCfvo `xml:"cfvo"`
}

type xlsxCfvo struct {
	Type string `xml:"type,attr"`
	Val  string `xml:"val,attr"`
}

func decodeWorksheet(path string, data []byte) (*xlsxWorksheet, error) {
	var ws xlsxWorksheet
	if err := xml.Unmarshal(data, &ws); err != nil {
		return nil, NewXMLParseError(path, err)
	}
	return &ws, nil
}

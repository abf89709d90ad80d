package main

import (
	"sort"

	"github.com/h0rv/xlview-sub002/xlview"
)

type document struct {
	AppName      string        `json:"appName,omitempty"`
	Date1904     bool          `json:"date1904"`
	DefinedNames []definedName `json:"definedNames,omitempty"`
	Sheets       []sheetDump   `json:"sheets"`
}

type definedName struct {
	Name       string `json:"name"`
	Formula    string `json:"formula"`
	SheetIndex *int   `json:"sheetIndex,omitempty"`
}

type sheetDump struct {
	Name       string  `json:"name"`
	State      string  `json:"state"`
	TabColor   string  `json:"tabColor,omitempty"`
	MaxRow     int     `json:"maxRow"`
	MaxCol     int     `json:"maxCol"`
	FrozenRows int     `json:"frozenRows,omitempty"`
	FrozenCols int     `json:"frozenCols,omitempty"`
	SplitRow   float64 `json:"splitRow,omitempty"`
	SplitCol   float64 `json:"splitCol,omitempty"`

	Cells      []cellDump      `json:"cells"`
	Merges     []string        `json:"merges,omitempty"`
	Hyperlinks []hyperlinkDump `json:"hyperlinks,omitempty"`
	Comments   []commentDump   `json:"comments,omitempty"`
	Images     []imageDump     `json:"images,omitempty"`
	Sparklines []sparklineDump `json:"sparklines,omitempty"`
}

type cellDump struct {
	Ref     string  `json:"ref"`
	Row     int     `json:"row"`
	Col     int     `json:"col"`
	Type    string  `json:"type"`
	Value   string  `json:"value,omitempty"`
	Display string  `json:"display,omitempty"`
	Number  float64 `json:"number,omitempty"`
	Formula string  `json:"formula,omitempty"`

	Style       *styleDump `json:"style,omitempty"`
	Conditional *cfDump    `json:"conditional,omitempty"`
	HasComment  bool       `json:"hasComment,omitempty"`
}

type styleDump struct {
	Bold         bool    `json:"bold,omitempty"`
	Italic       bool    `json:"italic,omitempty"`
	Underline    string  `json:"underline,omitempty"`
	Strike       bool    `json:"strike,omitempty"`
	FontColor    string  `json:"fontColor,omitempty"`
	FontSize     float64 `json:"fontSize,omitempty"`
	FontFamily   string  `json:"fontFamily,omitempty"`
	BgColor      string  `json:"bgColor,omitempty"`
	FgColor      string  `json:"fgColor,omitempty"`
	PatternType  string  `json:"patternType,omitempty"`
	AlignH       string  `json:"alignH,omitempty"`
	AlignV       string  `json:"alignV,omitempty"`
	Wrap         bool    `json:"wrap,omitempty"`
	NumberFormat string  `json:"numberFormat,omitempty"`
}

type cfDump struct {
	BgColor     string  `json:"bgColor,omitempty"`
	FontColor   string  `json:"fontColor,omitempty"`
	Bold        bool    `json:"bold,omitempty"`
	Italic      bool    `json:"italic,omitempty"`
	BarFraction float64 `json:"barFraction,omitempty"`
	BarColor    string  `json:"barColor,omitempty"`
	IconSet     string  `json:"iconSet,omitempty"`
	IconIndex   int     `json:"iconIndex,omitempty"`
}

type hyperlinkDump struct {
	Ref      string `json:"ref"`
	Target   string `json:"target,omitempty"`
	Location string `json:"location,omitempty"`
	Tooltip  string `json:"tooltip,omitempty"`
}

type commentDump struct {
	Ref    string `json:"ref"`
	Author string `json:"author,omitempty"`
	Text   string `json:"text"`
}

type imageDump struct {
	Part string `json:"part"`
	From string `json:"from"`
}

type sparklineDump struct {
	Type      string   `json:"type,omitempty"`
	Sources   []string `json:"sources,omitempty"`
	Locations []string `json:"locations,omitempty"`
}

func buildDocument(wb *xlview.Workbook, indexes []int, opts options) document {
	doc := document{AppName: wb.AppName, Date1904: wb.Date1904}
	for _, dn := range wb.DefinedNames {
		doc.DefinedNames = append(doc.DefinedNames, definedName{
			Name:       dn.Name,
			Formula:    dn.Formula,
			SheetIndex: dn.SheetIndex,
		})
	}
	for _, index := range indexes {
		doc.Sheets = append(doc.Sheets, buildSheet(wb.Sheets[index], opts))
	}
	return doc
}

func buildSheet(sheet *xlview.Sheet, opts options) sheetDump {
	dump := sheetDump{
		Name:       sheet.Name,
		State:      sheet.State.String(),
		TabColor:   sheet.TabColor,
		MaxRow:     sheet.MaxRow,
		MaxCol:     sheet.MaxCol,
		FrozenRows: sheet.FrozenRows,
		FrozenCols: sheet.FrozenCols,
		SplitRow:   sheet.SplitRow,
		SplitCol:   sheet.SplitCol,
		Cells:      []cellDump{},
	}

	for _, cd := range sheet.Cells {
		cell := cellDump{
			Ref:        xlview.FormatCellRef(cd.R, cd.C),
			Row:        cd.R,
			Col:        cd.C,
			Type:       cd.Cell.Type.String(),
			Value:      cd.Cell.Value,
			Display:    cd.Cell.Display,
			Formula:    cd.Cell.Formula,
			HasComment: cd.Cell.HasComment,
		}
		if cd.Cell.Type == xlview.CellNumber || cd.Cell.Type == xlview.CellDate {
			cell.Number = cd.Cell.Number
		}
		if opts.includeStyles && cd.Cell.Style != nil {
			cell.Style = buildStyle(cd.Cell.Style)
		}
		if opts.includeConditional {
			if cf := sheet.EvaluateConditionalFormats(cd.R, cd.C); cf != nil {
				cell.Conditional = &cfDump{
					BgColor:     cf.BgColor,
					FontColor:   cf.FontColor,
					Bold:        cf.Bold,
					Italic:      cf.Italic,
					BarFraction: cf.BarFraction,
					BarColor:    cf.BarColor,
					IconSet:     cf.IconSet,
					IconIndex:   cf.IconIndex,
				}
			}
		}
		dump.Cells = append(dump.Cells, cell)
	}

	for _, m := range sheet.Merges {
		ref := xlview.FormatCellRef(m.StartRow, m.StartCol) + ":" + xlview.FormatCellRef(m.EndRow, m.EndCol)
		dump.Merges = append(dump.Merges, ref)
	}
	for _, h := range sheet.Hyperlinks {
		dump.Hyperlinks = append(dump.Hyperlinks, hyperlinkDump{
			Ref:      h.Ref,
			Target:   h.Target,
			Location: h.Location,
			Tooltip:  h.Tooltip,
		})
	}
	refs := make([]string, 0, len(sheet.Comments))
	for ref := range sheet.Comments {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	for _, ref := range refs {
		c := sheet.Comments[ref]
		dump.Comments = append(dump.Comments, commentDump{Ref: c.Ref, Author: c.Author, Text: c.Text})
	}
	for _, img := range sheet.Images {
		from := xlview.FormatCellRef(img.From.StartRow, img.From.StartCol)
		dump.Images = append(dump.Images, imageDump{Part: img.PartPath, From: from})
	}
	for _, g := range sheet.SparklineGroups {
		dump.Sparklines = append(dump.Sparklines, sparklineDump{
			Type:      g.Type,
			Sources:   g.Sources,
			Locations: g.Locations,
		})
	}
	return dump
}

func buildStyle(s *xlview.Style) *styleDump {
	return &styleDump{
		Bold:         s.Bold,
		Italic:       s.Italic,
		Underline:    s.Underline,
		Strike:       s.Strike,
		FontColor:    s.FontColor,
		FontSize:     s.FontSize,
		FontFamily:   s.FontFamily,
		BgColor:      s.BgColor,
		FgColor:      s.FgColor,
		PatternType:  s.PatternType,
		AlignH:       s.AlignH,
		AlignV:       s.AlignV,
		Wrap:         s.Wrap,
		NumberFormat: s.NumberFormat,
	}
}

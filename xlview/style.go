package xlview

// BorderSide is one resolved border edge.
type BorderSide struct {
	Style string
	Color string
}

// Style is a fully resolved cell format. Every field is final: zero values
// mean the format's default, never "unresolved".
type Style struct {
	Bold       bool
	Italic     bool
	Underline  string
	Strike     bool
	FontColor  string
	FontSize   float64
	FontFamily string

	BgColor     string
	FgColor     string
	PatternType string

	BorderTop      *BorderSide
	BorderBottom   *BorderSide
	BorderLeft     *BorderSide
	BorderRight    *BorderSide
	BorderDiagonal *BorderSide

	AlignH      string
	AlignV      string
	Wrap        bool
	ShrinkToFit bool
	Rotation    int
	Indent      int

	NumberFormat string

	compiled *CompiledFormat
}

// NumberFormatCompiled returns the compiled form of the style's number
// format, compiling on first use.
func (s *Style) NumberFormatCompiled() *CompiledFormat {
	if s.compiled == nil {
		code := s.NumberFormat
		if code == "" {
			code = "General"
		}
		s.compiled = CompileFormat(code)
	}
	return s.compiled
}

// StyleSheet owns the raw style records and resolves cellXfs indices to
// final Styles. Resolution is cached per index; cells sharing an index share
// one Style value.
type StyleSheet struct {
	raw   *xlsxStyleSheet
	theme *Theme

	numFmtCodes map[int]string
	indexed     []string
	cache       map[int]*Style
	dxfCache    map[int]*Style
	defaults    *Style
}

// NewStyleSheet builds a StyleSheet from decoded styles and theme data.
// A nil raw stylesheet yields a sheet that resolves everything to nil.
func NewStyleSheet(raw *xlsxStyleSheet, theme *Theme) *StyleSheet {
	if theme == nil {
		theme = defaultTheme()
	}
	ss := &StyleSheet{
		raw:         raw,
		theme:       theme,
		numFmtCodes: make(map[int]string),
		cache:       make(map[int]*Style),
		dxfCache:    make(map[int]*Style),
	}
	if raw != nil && raw.NumFmts != nil {
		for _, nf := range raw.NumFmts.NumFmts {
			ss.numFmtCodes[nf.NumFmtID] = nf.FormatCode
		}
	}
	if raw != nil && raw.Colors != nil && raw.Colors.IndexedColors != nil {
		// A custom indexed palette shadows the legacy table per slot.
		ss.indexed = make([]string, len(IndexedColors))
		copy(ss.indexed, IndexedColors[:])
		for i, c := range raw.Colors.IndexedColors.RGBColors {
			if i < len(ss.indexed) {
				if hex := normalizeRGB(c.RGB); hex != "" {
					ss.indexed[i] = hex
				}
			}
		}
	}
	return ss
}

// resolveColor resolves a color element against this stylesheet's palette,
// honoring a custom indexed palette when the styles part defines one.
func (ss *StyleSheet) resolveColor(c *xlsxColor) string {
	if c != nil && c.RGB == "" && c.Theme == nil && c.Indexed != nil && ss.indexed != nil {
		if idx := *c.Indexed; idx >= 0 && idx < len(ss.indexed) {
			return ss.indexed[idx]
		}
		return "#000000"
	}
	return ResolveColor(c, ss.theme)
}

// FormatCode returns the format code for a numeric format ID, consulting the
// stylesheet's custom numFmts before the built-in table.
func (ss *StyleSheet) FormatCode(numFmtID int) string {
	if code, ok := ss.numFmtCodes[numFmtID]; ok {
		return code
	}
	if code, ok := BuiltinFormat(numFmtID); ok {
		return code
	}
	return "General"
}

// XfCount returns the number of cellXfs records.
func (ss *StyleSheet) XfCount() int {
	if ss.raw == nil || ss.raw.CellXfs == nil {
		return 0
	}
	return len(ss.raw.CellXfs.Xf)
}

// DefaultStyle resolves the Normal named style (cellStyleXfs index 0), which
// cells without an explicit style index inherit from. Returns nil when no
// styling is defined.
func (ss *StyleSheet) DefaultStyle() *Style {
	if ss.defaults != nil {
		return ss.defaults
	}
	if ss.raw == nil || ss.raw.CellStyleXfs == nil || len(ss.raw.CellStyleXfs.Xf) == 0 {
		return nil
	}
	base := ss.raw.CellStyleXfs.Xf[0]
	style := &Style{}
	if base.FontID != nil {
		ss.applyFont(style, *base.FontID)
	}
	ss.defaults = style
	return style
}

// Resolve turns a cellXfs index into a final Style. Out-of-range indices
// and out-of-range category references substitute defaults and continue.
func (ss *StyleSheet) Resolve(xfIndex int) *Style {
	if cached, ok := ss.cache[xfIndex]; ok {
		return cached
	}
	if ss.raw == nil || ss.raw.CellXfs == nil || xfIndex < 0 || xfIndex >= len(ss.raw.CellXfs.Xf) {
		ss.cache[xfIndex] = nil
		return nil
	}
	xf := ss.raw.CellXfs.Xf[xfIndex]

	var parent *xlsxXf
	if xf.XfID != nil && ss.raw.CellStyleXfs != nil {
		if id := *xf.XfID; id >= 0 && id < len(ss.raw.CellStyleXfs.Xf) {
			parent = &ss.raw.CellStyleXfs.Xf[id]
		}
	}

	style := &Style{}

	if fontID := chooseCategory(xf.ApplyFont, xf.FontID, parentField(parent, func(p *xlsxXf) *int { return p.FontID })); fontID != nil {
		ss.applyFont(style, *fontID)
	}
	if fillID := chooseCategory(xf.ApplyFill, xf.FillID, parentField(parent, func(p *xlsxXf) *int { return p.FillID })); fillID != nil {
		ss.applyFill(style, *fillID)
	}
	if borderID := chooseCategory(xf.ApplyBorder, xf.BorderID, parentField(parent, func(p *xlsxXf) *int { return p.BorderID })); borderID != nil {
		ss.applyBorder(style, *borderID)
	}
	if numFmtID := chooseCategory(xf.ApplyNumberFormat, xf.NumFmtID, parentField(parent, func(p *xlsxXf) *int { return p.NumFmtID })); numFmtID != nil {
		style.NumberFormat = ss.FormatCode(*numFmtID)
	} else {
		style.NumberFormat = "General"
	}

	alignment := xf.Alignment
	if !applyPermitted(xf.ApplyAlignment, alignment != nil) {
		alignment = nil
	}
	if alignment == nil && parent != nil {
		alignment = parent.Alignment
	}
	if alignment != nil {
		style.AlignH = alignment.Horizontal
		style.AlignV = alignment.Vertical
		style.Wrap = alignment.WrapText
		style.ShrinkToFit = alignment.ShrinkToFit && !alignment.WrapText
		style.Rotation = alignment.TextRotation
		style.Indent = alignment.Indent
	}

	ss.cache[xfIndex] = style
	return style
}

// applyPermitted is the apply-flag leniency policy: an explicit true always
// permits, an explicit false always suppresses, and an absent flag permits
// when the category reference itself is present.
func applyPermitted(flag *bool, present bool) bool {
	if flag != nil {
		return *flag
	}
	return present
}

// chooseCategory picks the effective category index for one style category.
func chooseCategory(flag *bool, own, parent *int) *int {
	if applyPermitted(flag, own != nil) && own != nil {
		return own
	}
	if parent != nil {
		return parent
	}
	if flag == nil {
		return own
	}
	return nil
}

func parentField(parent *xlsxXf, get func(*xlsxXf) *int) *int {
	if parent == nil {
		return nil
	}
	return get(parent)
}

func (ss *StyleSheet) applyFont(style *Style, fontID int) {
	if ss.raw.Fonts == nil || fontID < 0 || fontID >= len(ss.raw.Fonts.Font) {
		return
	}
	f := ss.raw.Fonts.Font[fontID]
	style.Bold = f.B.Value()
	style.Italic = f.I.Value()
	style.Strike = f.Strike.Value()
	if f.U != nil {
		if f.U.Val == "" {
			style.Underline = "single"
		} else {
			style.Underline = f.U.Val
		}
	}
	if f.Sz != nil {
		style.FontSize = f.Sz.Val
	}
	if f.Name != nil {
		style.FontFamily = f.Name.Val
	}
	style.FontColor = ss.resolveColor(f.Color)
}

func (ss *StyleSheet) applyFill(style *Style, fillID int) {
	if ss.raw.Fills == nil || fillID < 0 || fillID >= len(ss.raw.Fills.Fill) {
		return
	}
	fill := ss.raw.Fills.Fill[fillID]
	pf := fill.PatternFill
	if pf == nil || pf.PatternType == "none" || pf.PatternType == "" {
		return
	}
	if pf.PatternType == "solid" {
		// For solid fills the foreground color is the visible cell color.
		style.BgColor = ss.resolveColor(pf.FgColor)
		return
	}
	style.PatternType = pf.PatternType
	style.FgColor = ss.resolveColor(pf.FgColor)
	style.BgColor = ss.resolveColor(pf.BgColor)
}

func (ss *StyleSheet) applyBorder(style *Style, borderID int) {
	if ss.raw.Borders == nil || borderID < 0 || borderID >= len(ss.raw.Borders.Border) {
		return
	}
	b := ss.raw.Borders.Border[borderID]
	style.BorderTop = ss.borderSide(b.Top)
	style.BorderBottom = ss.borderSide(b.Bottom)
	style.BorderLeft = ss.borderSide(b.Left)
	style.BorderRight = ss.borderSide(b.Right)
	style.BorderDiagonal = ss.borderSide(b.Diagonal)
}

func (ss *StyleSheet) borderSide(line *xlsxLine) *BorderSide {
	if line == nil || line.Style == "" || line.Style == "none" {
		return nil
	}
	color := ss.resolveColor(line.Color)
	if color == "" {
		color = "#000000"
	}
	return &BorderSide{Style: line.Style, Color: color}
}

// ResolveDxf resolves a differential format referenced by a conditional
// formatting rule. Only the fields the dxf sets are populated.
func (ss *StyleSheet) ResolveDxf(dxfID int) *Style {
	if cached, ok := ss.dxfCache[dxfID]; ok {
		return cached
	}
	if ss.raw == nil || ss.raw.Dxfs == nil || dxfID < 0 || dxfID >= len(ss.raw.Dxfs.Dxfs) {
		ss.dxfCache[dxfID] = nil
		return nil
	}
	dxf := ss.raw.Dxfs.Dxfs[dxfID]
	style := &Style{NumberFormat: "General"}
	if dxf.Font != nil {
		f := dxf.Font
		style.Bold = f.B.Value()
		style.Italic = f.I.Value()
		style.Strike = f.Strike.Value()
		style.FontColor = ss.resolveColor(f.Color)
	}
	if dxf.Fill != nil && dxf.Fill.PatternFill != nil {
		pf := dxf.Fill.PatternFill
		// Differential fills usually carry bgColor as the highlight.
		if c := ss.resolveColor(pf.BgColor); c != "" {
			style.BgColor = c
		} else {
			style.BgColor = ss.resolveColor(pf.FgColor)
		}
	}
	if dxf.Border != nil {
		style.BorderTop = ss.borderSide(dxf.Border.Top)
		style.BorderBottom = ss.borderSide(dxf.Border.Bottom)
		style.BorderLeft = ss.borderSide(dxf.Border.Left)
		style.BorderRight = ss.borderSide(dxf.Border.Right)
	}
	if dxf.NumFmt != nil && dxf.NumFmt.FormatCode != "" {
		style.NumberFormat = dxf.NumFmt.FormatCode
	}
	ss.dxfCache[dxfID] = style
	return style
}

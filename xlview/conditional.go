package xlview

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Conditional formatting rule kinds, matching the cfRule type attribute.
const (
	CFColorScale       = "colorScale"
	CFDataBar          = "dataBar"
	CFIconSet          = "iconSet"
	CFCellIs           = "cellIs"
	CFTop10            = "top10"
	CFAboveAverage     = "aboveAverage"
	CFDuplicateValues  = "duplicateValues"
	CFUniqueValues     = "uniqueValues"
	CFContainsText     = "containsText"
	CFNotContainsText  = "notContainsText"
	CFBeginsWith       = "beginsWith"
	CFEndsWith         = "endsWith"
	CFContainsBlanks   = "containsBlanks"
	CFNotContainsBlank = "notContainsBlanks"
	CFTimePeriod       = "timePeriod"
	CFExpression       = "expression"
)

// CFVO is a conditional format value object: a threshold source for scales,
// bars and icon sets.
type CFVO struct {
	Type string
	Val  string
}

// ColorScale is a 2- or 3-stop color gradient rule body.
type ColorScale struct {
	Stops  []CFVO
	Colors []string
}

// DataBar is a data bar rule body.
type DataBar struct {
	MinLength int
	MaxLength int
	ShowValue bool
	Cfvos     []CFVO
	Color     string
}

// IconSet is an icon set rule body.
type IconSet struct {
	Name      string
	ShowValue bool
	Reverse   bool
	Cfvos     []CFVO
}

// CFRule is one conditional formatting rule.
type CFRule struct {
	Type       string
	Priority   int
	StopIfTrue bool
	Operator   string
	Dxf        *Style
	Text       string
	Rank       int
	Percent    bool
	Bottom     bool

	AboveAverage bool
	EqualAverage bool
	StdDev       int

	TimePeriod string
	Formulas   []string

	ColorScale *ColorScale
	DataBar    *DataBar
	IconSet    *IconSet
}

// RuleGroup is a set of rules covering the same ranges. Range aggregates are
// computed once per group and memoized.
type RuleGroup struct {
	Ranges []CellRange
	Rules  []*CFRule

	agg *rangeAggregates
}

// Contains reports whether any of the group's ranges covers (row, col).
func (g *RuleGroup) Contains(row, col int) bool {
	for _, r := range g.Ranges {
		if r.Contains(row, col) {
			return true
		}
	}
	return false
}

// CFResult is the resolved visual override for one cell after evaluating its
// covering rules.
type CFResult struct {
	BgColor   string
	FontColor string
	Bold      bool
	Italic    bool

	HasBar      bool
	BarFraction float64
	BarColor    string

	HasIcon   bool
	IconSet   string
	IconIndex int

	ShowValue bool
}

type rangeAggregates struct {
	values []float64
	sorted []float64
	counts map[string]int
	min    float64
	max    float64
	sum    float64
	n      int
}

func (a *rangeAggregates) average() float64 {
	if a.n == 0 {
		return 0
	}
	return a.sum / float64(a.n)
}

func (a *rangeAggregates) stddev() float64 {
	if a.n < 2 {
		return 0
	}
	avg := a.average()
	var sq float64
	for _, v := range a.values {
		d := v - avg
		sq += d * d
	}
	return math.Sqrt(sq / float64(a.n-1))
}

// percentile returns the p-th percentile (0-100) by linear interpolation
// over the sorted range values.
func (a *rangeAggregates) percentile(p float64) float64 {
	if len(a.sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return a.sorted[0]
	}
	if p >= 100 {
		return a.sorted[len(a.sorted)-1]
	}
	rank := p / 100 * float64(len(a.sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return a.sorted[lo]
	}
	frac := rank - float64(lo)
	return a.sorted[lo] + (a.sorted[hi]-a.sorted[lo])*frac
}

func decodeConditionalFormats(raw []xlsxConditionalFormatting, styles *StyleSheet, theme *Theme) []*RuleGroup {
	var groups []*RuleGroup
	for _, cf := range raw {
		ranges := ParseSqref(cf.Sqref)
		if len(ranges) == 0 {
			continue
		}
		group := &RuleGroup{Ranges: ranges}
		for i := range cf.CfRule {
			rule := decodeCfRule(&cf.CfRule[i], styles, theme)
			if rule != nil {
				group.Rules = append(group.Rules, rule)
			}
		}
		if len(group.Rules) == 0 {
			continue
		}
		sort.SliceStable(group.Rules, func(i, j int) bool {
			return group.Rules[i].Priority < group.Rules[j].Priority
		})
		groups = append(groups, group)
	}
	return groups
}

func decodeCfRule(raw *xlsxCfRule, styles *StyleSheet, theme *Theme) *CFRule {
	if raw.Type == "" {
		return nil
	}
	rule := &CFRule{
		Type:         raw.Type,
		Priority:     raw.Priority,
		StopIfTrue:   raw.StopIfTrue,
		Operator:     raw.Operator,
		Text:         raw.Text,
		Rank:         raw.Rank,
		Percent:      raw.Percent,
		Bottom:       raw.Bottom,
		AboveAverage: raw.AboveAverage == nil || *raw.AboveAverage,
		EqualAverage: raw.EqualAverage,
		StdDev:       raw.StdDev,
		TimePeriod:   raw.TimePeriod,
		Formulas:     raw.Formula,
	}
	if raw.DxfID != nil && styles != nil {
		rule.Dxf = styles.ResolveDxf(*raw.DxfID)
	}
	if raw.ColorScale != nil {
		cs := &ColorScale{}
		cs.Stops = append(cs.Stops, decodeCfvos(raw.ColorScale.Cfvo)...)
		for i := range raw.ColorScale.Color {
			cs.Colors = append(cs.Colors, ResolveColor(&raw.ColorScale.Color[i], theme))
		}
		rule.ColorScale = cs
	}
	if raw.DataBar != nil {
		db := &DataBar{MinLength: 10, MaxLength: 90, ShowValue: true}
		if raw.DataBar.MinLength != nil {
			db.MinLength = *raw.DataBar.MinLength
		}
		if raw.DataBar.MaxLength != nil {
			db.MaxLength = *raw.DataBar.MaxLength
		}
		if raw.DataBar.ShowValue != nil {
			db.ShowValue = *raw.DataBar.ShowValue
		}
		db.Cfvos = decodeCfvos(raw.DataBar.Cfvo)
		if len(raw.DataBar.Color) > 0 {
			db.Color = ResolveColor(&raw.DataBar.Color[0], theme)
		}
		rule.DataBar = db
	}
	if raw.IconSet != nil {
		is := &IconSet{Name: "3TrafficLights1", ShowValue: true}
		if raw.IconSet.IconSet != "" {
			is.Name = raw.IconSet.IconSet
		}
		if raw.IconSet.ShowValue != nil {
			is.ShowValue = *raw.IconSet.ShowValue
		}
		is.Reverse = raw.IconSet.Reverse
		is.Cfvos = decodeCfvos(raw.IconSet.Cfvo)
		rule.IconSet = is
	}
	return rule
}

func decodeCfvos(raw []xlsxCfvo) []CFVO {
	out := make([]CFVO, 0, len(raw))
	for _, v := range raw {
		out = append(out, CFVO{Type: v.Type, Val: v.Val})
	}
	return out
}

// aggregates computes (once) the numeric aggregates over the group's ranges.
func (g *RuleGroup) aggregates(sheet *Sheet) *rangeAggregates {
	if g.agg != nil {
		return g.agg
	}
	agg := &rangeAggregates{counts: map[string]int{}, min: math.Inf(1), max: math.Inf(-1)}
	for _, cd := range sheet.Cells {
		if !g.Contains(cd.R, cd.C) {
			continue
		}
		cell := &cd.Cell
		if cell.Type == CellString || cell.Type == CellBoolean {
			agg.counts[cell.Value]++
		}
		if cell.Type != CellNumber && cell.Type != CellDate {
			continue
		}
		v := cell.Number
		agg.values = append(agg.values, v)
		agg.counts[cell.Value]++
		agg.sum += v
		if v < agg.min {
			agg.min = v
		}
		if v > agg.max {
			agg.max = v
		}
		agg.n++
	}
	if agg.n == 0 {
		agg.min, agg.max = 0, 0
	}
	agg.sorted = append([]float64(nil), agg.values...)
	sort.Float64s(agg.sorted)
	g.agg = agg
	return agg
}

// EvaluateConditionalFormats resolves the visual override for one cell.
// Rules from every covering group are evaluated in ascending priority; a
// matching rule with stopIfTrue suppresses all lower-priority rules. Returns
// nil when nothing applies.
func (s *Sheet) EvaluateConditionalFormats(row, col int) *CFResult {
	type candidate struct {
		group *RuleGroup
		rule  *CFRule
	}
	var candidates []candidate
	for _, g := range s.ConditionalFormats {
		if !g.Contains(row, col) {
			continue
		}
		for _, r := range g.Rules {
			candidates = append(candidates, candidate{group: g, rule: r})
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].rule.Priority < candidates[j].rule.Priority
	})

	cell := s.CellAt(row, col)
	var result *CFResult
	for _, c := range candidates {
		matched := applyRule(c.rule, c.group, s, cell, &result)
		if matched && c.rule.StopIfTrue {
			break
		}
	}
	return result
}

// applyRule evaluates one rule against a cell, merging its formatting into
// result when it matches. Reports whether the rule matched.
func applyRule(rule *CFRule, group *RuleGroup, sheet *Sheet, cell *Cell, result **CFResult) bool {
	switch rule.Type {
	case CFColorScale:
		return applyColorScale(rule, group, sheet, cell, result)
	case CFDataBar:
		return applyDataBar(rule, group, sheet, cell, result)
	case CFIconSet:
		return applyIconSet(rule, group, sheet, cell, result)
	case CFExpression:
		// Formula evaluation is out of scope; the rule is preserved but
		// never fires.
		return false
	}

	if !ruleMatches(rule, group, sheet, cell) {
		return false
	}
	mergeDxf(rule.Dxf, result)
	return true
}

func ruleMatches(rule *CFRule, group *RuleGroup, sheet *Sheet, cell *Cell) bool {
	switch rule.Type {
	case CFCellIs:
		return cellIsMatches(rule, cell)
	case CFContainsText:
		return cell != nil && rule.Text != "" && strings.Contains(cell.Value, rule.Text)
	case CFNotContainsText:
		return cell != nil && rule.Text != "" && !strings.Contains(cell.Value, rule.Text)
	case CFBeginsWith:
		return cell != nil && rule.Text != "" && strings.HasPrefix(cell.Value, rule.Text)
	case CFEndsWith:
		return cell != nil && rule.Text != "" && strings.HasSuffix(cell.Value, rule.Text)
	case CFContainsBlanks:
		return cell == nil || strings.TrimSpace(cell.Value) == ""
	case CFNotContainsBlank:
		return cell != nil && strings.TrimSpace(cell.Value) != ""
	case CFTop10:
		return top10Matches(rule, group, sheet, cell)
	case CFAboveAverage:
		return aboveAverageMatches(rule, group, sheet, cell)
	case CFDuplicateValues:
		return cell != nil && cell.Value != "" && group.aggregates(sheet).counts[cell.Value] > 1
	case CFUniqueValues:
		return cell != nil && cell.Value != "" && group.aggregates(sheet).counts[cell.Value] == 1
	case CFTimePeriod:
		return timePeriodMatches(rule, cell, sheet.Date1904)
	}
	return false
}

func cellIsMatches(rule *CFRule, cell *Cell) bool {
	if cell == nil {
		return false
	}
	numeric := cell.Type == CellNumber || cell.Type == CellDate

	operand := func(i int) (float64, string, bool) {
		if i >= len(rule.Formulas) {
			return 0, "", false
		}
		f := strings.TrimSpace(rule.Formulas[i])
		if n, err := strconv.ParseFloat(f, 64); err == nil {
			return n, f, true
		}
		if len(f) >= 2 && strings.HasPrefix(f, "\"") && strings.HasSuffix(f, "\"") {
			return 0, f[1 : len(f)-1], true
		}
		// Formula operands are out of evaluation scope.
		return 0, f, false
	}

	switch rule.Operator {
	case "equal":
		n, s, ok := operand(0)
		if !ok {
			return false
		}
		if numeric {
			return cell.Number == n
		}
		return cell.Value == s
	case "notEqual":
		n, s, ok := operand(0)
		if !ok {
			return false
		}
		if numeric {
			return cell.Number != n
		}
		return cell.Value != s
	case "greaterThan":
		n, _, ok := operand(0)
		return ok && numeric && cell.Number > n
	case "greaterThanOrEqual":
		n, _, ok := operand(0)
		return ok && numeric && cell.Number >= n
	case "lessThan":
		n, _, ok := operand(0)
		return ok && numeric && cell.Number < n
	case "lessThanOrEqual":
		n, _, ok := operand(0)
		return ok && numeric && cell.Number <= n
	case "between":
		lo, _, ok1 := operand(0)
		hi, _, ok2 := operand(1)
		if !ok1 || !ok2 || !numeric {
			return false
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		return cell.Number >= lo && cell.Number <= hi
	case "notBetween":
		lo, _, ok1 := operand(0)
		hi, _, ok2 := operand(1)
		if !ok1 || !ok2 || !numeric {
			return false
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		return cell.Number < lo || cell.Number > hi
	case "containsText":
		_, s, ok := operand(0)
		return ok && strings.Contains(cell.Value, s)
	}
	return false
}

func top10Matches(rule *CFRule, group *RuleGroup, sheet *Sheet, cell *Cell) bool {
	if cell == nil || (cell.Type != CellNumber && cell.Type != CellDate) {
		return false
	}
	agg := group.aggregates(sheet)
	if agg.n == 0 {
		return false
	}
	rank := rule.Rank
	if rank <= 0 {
		rank = 10
	}
	if rule.Percent {
		rank = int(math.Ceil(float64(agg.n) * float64(rank) / 100))
	}
	if rank > agg.n {
		rank = agg.n
	}
	if rank < 1 {
		rank = 1
	}
	if rule.Bottom {
		threshold := agg.sorted[rank-1]
		return cell.Number <= threshold
	}
	threshold := agg.sorted[agg.n-rank]
	return cell.Number >= threshold
}

func aboveAverageMatches(rule *CFRule, group *RuleGroup, sheet *Sheet, cell *Cell) bool {
	if cell == nil || (cell.Type != CellNumber && cell.Type != CellDate) {
		return false
	}
	agg := group.aggregates(sheet)
	if agg.n == 0 {
		return false
	}
	avg := agg.average()
	if rule.StdDev > 0 {
		sd := agg.stddev() * float64(rule.StdDev)
		if rule.AboveAverage {
			return cell.Number > avg+sd
		}
		return cell.Number < avg-sd
	}
	if rule.AboveAverage {
		if rule.EqualAverage {
			return cell.Number >= avg
		}
		return cell.Number > avg
	}
	if rule.EqualAverage {
		return cell.Number <= avg
	}
	return cell.Number < avg
}

func timePeriodMatches(rule *CFRule, cell *Cell, date1904 bool) bool {
	if cell == nil || cell.Type != CellDate {
		return false
	}
	dc, err := SerialToDate(cell.Number, date1904)
	if err != nil {
		return false
	}
	cellDay := time.Date(dc.Year, time.Month(dc.Month), dc.Day, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch rule.TimePeriod {
	case "today":
		return cellDay.Equal(today)
	case "yesterday":
		return cellDay.Equal(today.AddDate(0, 0, -1))
	case "tomorrow":
		return cellDay.Equal(today.AddDate(0, 0, 1))
	case "last7Days":
		return !cellDay.After(today) && cellDay.After(today.AddDate(0, 0, -7))
	case "thisMonth":
		return cellDay.Year() == today.Year() && cellDay.Month() == today.Month()
	case "lastMonth":
		prev := today.AddDate(0, -1, 0)
		return cellDay.Year() == prev.Year() && cellDay.Month() == prev.Month()
	case "nextMonth":
		next := today.AddDate(0, 1, 0)
		return cellDay.Year() == next.Year() && cellDay.Month() == next.Month()
	}
	return false
}

func mergeDxf(dxf *Style, result **CFResult) {
	if *result == nil {
		*result = &CFResult{ShowValue: true}
	}
	r := *result
	if dxf == nil {
		return
	}
	if r.BgColor == "" && dxf.BgColor != "" {
		r.BgColor = dxf.BgColor
	}
	if r.FontColor == "" && dxf.FontColor != "" {
		r.FontColor = dxf.FontColor
	}
	if dxf.Bold {
		r.Bold = true
	}
	if dxf.Italic {
		r.Italic = true
	}
}

// resolveCfvo turns a threshold source into a concrete value against the
// group aggregates.
func resolveCfvo(v CFVO, agg *rangeAggregates) float64 {
	switch v.Type {
	case "min":
		return agg.min
	case "max":
		return agg.max
	case "num", "formula":
		if n, err := strconv.ParseFloat(strings.TrimSpace(v.Val), 64); err == nil {
			return n
		}
		return agg.min
	case "percent":
		if n, err := strconv.ParseFloat(strings.TrimSpace(v.Val), 64); err == nil {
			return agg.min + (agg.max-agg.min)*n/100
		}
		return agg.min
	case "percentile":
		if n, err := strconv.ParseFloat(strings.TrimSpace(v.Val), 64); err == nil {
			return agg.percentile(n)
		}
		return agg.min
	}
	return agg.min
}

// normalize maps a value into [0,1] over a span, 0.5 when the span is empty.
func normalize(v, lo, hi float64) float64 {
	if hi-lo <= 0 {
		return 0.5
	}
	p := (v - lo) / (hi - lo)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func applyColorScale(rule *CFRule, group *RuleGroup, sheet *Sheet, cell *Cell, result **CFResult) bool {
	if cell == nil || (cell.Type != CellNumber && cell.Type != CellDate) {
		return false
	}
	cs := rule.ColorScale
	if cs == nil || len(cs.Colors) < 2 {
		return false
	}
	agg := group.aggregates(sheet)

	stops := make([]float64, len(cs.Colors))
	for i := range stops {
		if i < len(cs.Stops) {
			stops[i] = resolveCfvo(cs.Stops[i], agg)
		} else if i == 0 {
			stops[i] = agg.min
		} else {
			stops[i] = agg.max
		}
	}

	color := interpolateScale(cell.Number, stops, cs.Colors)
	if *result == nil {
		*result = &CFResult{ShowValue: true}
	}
	if (*result).BgColor == "" {
		(*result).BgColor = color
	}
	return true
}

// interpolateScale linearly interpolates a color across the scale segments.
func interpolateScale(v float64, stops []float64, colors []string) string {
	last := len(stops) - 1
	if v <= stops[0] {
		return colors[0]
	}
	if v >= stops[last] {
		return colors[last]
	}
	for i := 0; i < last; i++ {
		if v <= stops[i+1] {
			t := normalize(v, stops[i], stops[i+1])
			return lerpColor(colors[i], colors[i+1], t)
		}
	}
	return colors[last]
}

func lerpColor(a, b string, t float64) string {
	ar, ag, ab, ok1 := parseHex(a)
	br, bg, bb, ok2 := parseHex(b)
	if !ok1 || !ok2 {
		return a
	}
	lerp := func(x, y int) int {
		return int(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return fmt.Sprintf("#%02X%02X%02X", lerp(ar, br), lerp(ag, bg), lerp(ab, bb))
}

func applyDataBar(rule *CFRule, group *RuleGroup, sheet *Sheet, cell *Cell, result **CFResult) bool {
	if cell == nil || (cell.Type != CellNumber && cell.Type != CellDate) {
		return false
	}
	db := rule.DataBar
	if db == nil {
		return false
	}
	agg := group.aggregates(sheet)

	lo, hi := agg.min, agg.max
	if len(db.Cfvos) >= 2 {
		lo = resolveCfvo(db.Cfvos[0], agg)
		hi = resolveCfvo(db.Cfvos[1], agg)
	}
	pos := normalize(cell.Number, lo, hi)
	fraction := float64(db.MinLength)/100 + pos*float64(db.MaxLength-db.MinLength)/100

	if *result == nil {
		*result = &CFResult{ShowValue: true}
	}
	r := *result
	if !r.HasBar {
		r.HasBar = true
		r.BarFraction = fraction
		r.BarColor = db.Color
		r.ShowValue = db.ShowValue
	}
	return true
}

// iconThresholds are the default normalized boundaries per icon count.
var iconThresholds = map[int][]float64{
	3: {0.33, 0.67},
	4: {0.25, 0.5, 0.75},
	5: {0.2, 0.4, 0.6, 0.8},
}

func iconCount(name string) int {
	switch {
	case strings.HasPrefix(name, "5"):
		return 5
	case strings.HasPrefix(name, "4"):
		return 4
	default:
		return 3
	}
}

func applyIconSet(rule *CFRule, group *RuleGroup, sheet *Sheet, cell *Cell, result **CFResult) bool {
	if cell == nil || (cell.Type != CellNumber && cell.Type != CellDate) {
		return false
	}
	is := rule.IconSet
	if is == nil {
		return false
	}
	agg := group.aggregates(sheet)
	pos := normalize(cell.Number, agg.min, agg.max)

	count := iconCount(is.Name)
	idx := 0
	for _, threshold := range iconThresholds[count] {
		if pos >= threshold {
			idx++
		}
	}
	if is.Reverse {
		idx = count - 1 - idx
	}

	if *result == nil {
		*result = &CFResult{ShowValue: true}
	}
	r := *result
	if !r.HasIcon {
		r.HasIcon = true
		r.IconSet = is.Name
		r.IconIndex = idx
		r.ShowValue = is.ShowValue
	}
	return true
}

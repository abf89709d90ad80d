package xlview

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// builtinFormats maps the reserved ECMA-376 numeric format IDs to their
// format codes. IDs outside this table come from the stylesheet's numFmts.
var builtinFormats = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	5:  "$#,##0_);($#,##0)",
	6:  "$#,##0_);[Red]($#,##0)",
	7:  "$#,##0.00_);($#,##0.00)",
	8:  "$#,##0.00_);[Red]($#,##0.00)",
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	37: "#,##0 ;(#,##0)",
	38: "#,##0 ;[Red](#,##0)",
	39: "#,##0.00;(#,##0.00)",
	40: "#,##0.00;[Red](#,##0.00)",
	41: "_(* #,##0_);_(* (#,##0);_(* \"-\"_);_(@_)",
	42: "_($* #,##0_);_($* (#,##0);_($* \"-\"_);_(@_)",
	43: "_(* #,##0.00_);_(* (#,##0.00);_(* \"-\"??_);_(@_)",
	44: "_($* #,##0.00_);_($* (#,##0.00);_($* \"-\"??_);_(@_)",
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mmss.0",
	48: "##0.0E+0",
	49: "@",
}

// BuiltinFormat returns the format code for a built-in numeric format ID.
func BuiltinFormat(id int) (string, bool) {
	code, ok := builtinFormats[id]
	return code, ok
}

// IsDateFormat reports whether a format code contains date/time placeholder
// tokens outside quoted literals and bracket sections. It is a pure function
// of the code string.
func IsDateFormat(formatCode string) bool {
	lower := strings.ToLower(formatCode)

	inQuotes := false
	inBrackets := false
	var cleaned strings.Builder
	for _, c := range lower {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == '[':
			inBrackets = true
		case c == ']':
			inBrackets = false
		case !inQuotes && !inBrackets:
			cleaned.WriteRune(c)
		}
	}
	s := cleaned.String()

	if strings.ContainsRune(s, 'y') || strings.ContainsRune(s, 'd') || strings.ContainsRune(s, 'h') {
		return true
	}
	if strings.ContainsRune(s, 'm') && !strings.ContainsRune(s, '#') {
		return true
	}
	return strings.ContainsRune(s, 's') && strings.ContainsRune(s, ':')
}

func isScientificFormat(code string) bool {
	upper := strings.ToUpper(code)
	return strings.Contains(upper, "E+") || strings.Contains(upper, "E-")
}

func isFractionFormat(code string) bool {
	if !strings.Contains(code, "/") {
		return false
	}
	if strings.Contains(code, "?") {
		return true
	}
	parts := strings.Split(code, "/")
	if len(parts) != 2 {
		return false
	}
	denom := strings.TrimSpace(parts[1])
	if denom == "" {
		return false
	}
	for _, c := range denom {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Compiled format kinds.
const (
	fmtGeneral = iota
	fmtScientific
	fmtFraction
	fmtDate
	fmtNumeric
)

// CompiledFormat is a format code analyzed once so repeated cells sharing a
// format avoid re-tokenizing.
type CompiledFormat struct {
	kind    int
	code    string
	date    dateFormat
	numeric numericFormat
}

type dateFormat struct {
	tokens  []dateToken
	hasAmPm bool
}

type numericFormat struct {
	decimals     int
	hasThousands bool
	percent      bool
	currency     rune
}

// CompileFormat analyzes a format code string.
func CompileFormat(formatCode string) *CompiledFormat {
	code := strings.TrimSpace(formatCode)

	if strings.EqualFold(code, "General") || code == "@" {
		return &CompiledFormat{kind: fmtGeneral}
	}
	if isScientificFormat(code) {
		return &CompiledFormat{kind: fmtScientific, code: code}
	}
	if isFractionFormat(code) {
		return &CompiledFormat{kind: fmtFraction, code: code}
	}
	if IsDateFormat(code) {
		lower := strings.ToLower(code)
		return &CompiledFormat{kind: fmtDate, date: dateFormat{
			tokens:  parseDateFormatTokens(code),
			hasAmPm: strings.Contains(lower, "am/pm") || strings.Contains(lower, "a/p"),
		}}
	}

	percent := strings.Contains(code, "%")
	var decimals int
	if percent {
		decimals = strings.Count(code, "0") - 1
		if decimals < 0 {
			decimals = 0
		}
	} else if pos := strings.Index(code, "."); pos >= 0 {
		decimals = strings.Count(code[pos:], "0")
	}
	var currency rune
	for _, c := range []rune{'$', '€', '£'} {
		if strings.ContainsRune(code, c) {
			currency = c
			break
		}
	}
	return &CompiledFormat{kind: fmtNumeric, numeric: numericFormat{
		decimals:     decimals,
		hasThousands: strings.Contains(code, ","),
		percent:      percent,
		currency:     currency,
	}}
}

// IsDate reports whether the compiled format renders serial dates.
func (f *CompiledFormat) IsDate() bool {
	return f.kind == fmtDate
}

// Format renders a numeric value with the compiled format.
func (f *CompiledFormat) Format(value float64, date1904 bool) string {
	switch f.kind {
	case fmtGeneral:
		return formatGeneral(value)
	case fmtScientific:
		return formatScientific(value, f.code)
	case fmtFraction:
		return formatFraction(value, f.code)
	case fmtDate:
		if value < 0 {
			// Pre-epoch serials fall back to numeric display.
			return formatGeneral(value)
		}
		return formatDate(value, &f.date, date1904)
	default:
		return formatNumeric(value, &f.numeric)
	}
}

// FormatNumber formats a value with a raw format code.
func FormatNumber(value float64, formatCode string, date1904 bool) string {
	return CompileFormat(formatCode).Format(value, date1904)
}

func formatGeneral(value float64) string {
	abs := math.Abs(value)
	if value == math.Floor(value) && abs < 1e11 {
		return strconv.FormatInt(int64(value), 10)
	}
	if abs >= 1e11 || (abs < 1e-4 && value != 0) {
		return strconv.FormatFloat(value, 'E', 5, 64)
	}
	s := strconv.FormatFloat(value, 'f', 10, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func formatScientific(value float64, formatCode string) string {
	upper := strings.ToUpper(formatCode)
	alwaysShowSign := strings.Contains(upper, "E+")

	ePos := strings.Index(upper, "E")
	if ePos < 0 {
		ePos = len(formatCode)
	}
	mantissaPart := formatCode[:ePos]
	exponentPart := formatCode[ePos:]

	mantissaDecimals := 0
	if pos := strings.Index(mantissaPart, "."); pos >= 0 {
		for _, c := range mantissaPart[pos:] {
			if c == '0' || c == '?' {
				mantissaDecimals++
			}
		}
	}
	exponentWidth := 0
	for _, c := range exponentPart {
		if c == '0' || c == '#' {
			exponentWidth++
		}
	}
	if exponentWidth < 2 {
		exponentWidth = 2
	}

	if value == 0 {
		sign := ""
		if alwaysShowSign {
			sign = "+"
		}
		zeros := strings.Repeat("0", exponentWidth)
		if mantissaDecimals > 0 {
			return "0." + strings.Repeat("0", mantissaDecimals) + "E" + sign + zeros
		}
		return "0E" + sign + zeros
	}

	negative := value < 0
	abs := math.Abs(value)
	exponent := int(math.Floor(math.Log10(abs)))
	mantissa := abs / math.Pow(10, float64(exponent))

	mantissaStr := strconv.FormatFloat(mantissa, 'f', mantissaDecimals, 64)

	sign := ""
	if exponent < 0 {
		sign = "-"
	} else if alwaysShowSign {
		sign = "+"
	}
	expAbs := exponent
	if expAbs < 0 {
		expAbs = -expAbs
	}
	expStr := fmt.Sprintf("%0*d", exponentWidth, expAbs)

	out := mantissaStr + "E" + sign + expStr
	if negative {
		return "-" + out
	}
	return out
}

// continuedFraction finds the best rational approximation of x with the
// denominator bounded, walking the Stern-Brocot tree by mediants.
func continuedFraction(x float64, maxDenom int) (int, int) {
	if x == 0 {
		return 0, 1
	}
	negative := x < 0
	x = math.Abs(x)

	lowerN, lowerD := 0, 1
	upperN, upperD := 1, 1

	for {
		midN := lowerN + upperN
		midD := lowerD + upperD
		if midD > maxDenom {
			break
		}
		midVal := float64(midN) / float64(midD)
		if math.Abs(midVal-x) < 1e-12 {
			if negative {
				return -midN, midD
			}
			return midN, midD
		}
		if midVal < x {
			lowerN, lowerD = midN, midD
		} else {
			upperN, upperD = midN, midD
		}
	}

	lowerErr := math.Abs(float64(lowerN)/float64(lowerD) - x)
	upperErr := math.Abs(float64(upperN)/float64(upperD) - x)
	bestN, bestD := lowerN, lowerD
	if upperErr < lowerErr {
		bestN, bestD = upperN, upperD
	}
	if negative {
		return -bestN, bestD
	}
	return bestN, bestD
}

func toFraction(value float64, maxDenominator int) (int, int, int) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, 0, 1
	}
	negative := value < 0
	abs := math.Abs(value)
	whole := int(math.Floor(abs))
	frac := abs - math.Floor(abs)

	if frac < 1e-10 {
		if negative {
			whole = -whole
		}
		return whole, 0, 1
	}

	num, denom := continuedFraction(frac, maxDenominator)
	if num == denom {
		whole++
		if negative {
			whole = -whole
		}
		return whole, 0, 1
	}
	if negative {
		whole = -whole
		if num > 0 {
			num = -num
		}
	}
	return whole, num, denom
}

func toFractionFixedDenom(value float64, fixedDenom int) (int, int, int) {
	if math.IsNaN(value) || math.IsInf(value, 0) || fixedDenom == 0 {
		return 0, 0, 1
	}
	negative := value < 0
	abs := math.Abs(value)
	whole := int(math.Floor(abs))
	frac := abs - math.Floor(abs)

	num := int(math.Round(frac * float64(fixedDenom)))
	if num == fixedDenom {
		whole++
		if negative {
			whole = -whole
		}
		return whole, 0, fixedDenom
	}
	if negative {
		whole = -whole
		if num > 0 {
			num = -num
		}
	}
	return whole, num, fixedDenom
}

// parseFractionFormat determines the denominator policy of a fraction code.
// A run of ? placeholders bounds the denominator's digit count; an all-digit
// denominator is fixed.
func parseFractionFormat(formatCode string) (int, int) {
	parts := strings.Split(formatCode, "/")
	if len(parts) < 2 {
		return 9, 0
	}
	denomPart := strings.TrimSpace(parts[1])

	allDigits := denomPart != ""
	for _, c := range denomPart {
		if c < '0' || c > '9' {
			allDigits = false
			break
		}
	}
	if allDigits {
		if fixed, err := strconv.Atoi(denomPart); err == nil && fixed > 0 {
			return fixed, fixed
		}
	}

	questions := strings.Count(denomPart, "?")
	switch {
	case questions <= 1:
		return 9, 0
	case questions == 2:
		return 99, 0
	case questions == 3:
		return 999, 0
	}
	return 9999, 0
}

func formatFraction(value float64, formatCode string) string {
	if math.IsNaN(value) {
		return "NaN"
	}
	if math.IsInf(value, 1) {
		return "Inf"
	}
	if math.IsInf(value, -1) {
		return "-Inf"
	}

	maxDenom, fixedDenom := parseFractionFormat(formatCode)

	var whole, num, denom int
	if fixedDenom > 0 {
		whole, num, denom = toFractionFixedDenom(value, fixedDenom)
	} else {
		whole, num, denom = toFraction(value, maxDenom)
	}

	parts := strings.Split(formatCode, "/")
	numPart := ""
	if len(parts) > 0 {
		numPart = parts[0]
	}
	denomWidth := 1
	if len(parts) > 1 {
		denomPart := strings.TrimSpace(parts[1])
		allDigits := denomPart != ""
		for _, c := range denomPart {
			if c < '0' || c > '9' {
				allDigits = false
				break
			}
		}
		if allDigits {
			denomWidth = len(denomPart)
		} else if q := strings.Count(denomPart, "?"); q > 1 {
			denomWidth = q
		}
	}
	numWidth := denomWidth
	if fixedDenom == 0 {
		if q := strings.Count(numPart, "?"); q > 1 {
			numWidth = q
		} else {
			numWidth = 1
		}
	}

	negative := value < 0
	absWhole := whole
	if absWhole < 0 {
		absWhole = -absWhole
	}
	absNum := num
	if absNum < 0 {
		absNum = -absNum
	}

	if absNum == 0 {
		if absWhole == 0 {
			return "0"
		}
		if negative {
			return strconv.Itoa(-absWhole)
		}
		return strconv.Itoa(absWhole)
	}

	numStr := fmt.Sprintf("%*d", numWidth, absNum)
	denomStr := fmt.Sprintf("%-*d", denomWidth, denom)

	sign := ""
	if negative {
		sign = "-"
	}
	if absWhole == 0 {
		return sign + numStr + "/" + denomStr
	}
	return fmt.Sprintf("%s%d %s/%s", sign, absWhole, numStr, denomStr)
}

func formatDate(value float64, fmtSpec *dateFormat, date1904 bool) string {
	dc, err := SerialToDate(value, date1904)
	if err != nil {
		return formatGeneral(value)
	}

	days := int(math.Floor(value))
	dayOfWeek := (days + 6) % 7

	displayHour := dc.Hour
	if fmtSpec.hasAmPm {
		switch {
		case dc.Hour == 0:
			displayHour = 12
		case dc.Hour <= 12:
			displayHour = dc.Hour
		default:
			displayHour = dc.Hour - 12
		}
	}
	amPm := "AM"
	aP := "A"
	if dc.Hour >= 12 {
		amPm = "PM"
		aP = "P"
	}

	var out strings.Builder
	for _, tok := range fmtSpec.tokens {
		switch tok.kind {
		case tokYear4:
			fmt.Fprintf(&out, "%04d", dc.Year)
		case tokYear2:
			fmt.Fprintf(&out, "%02d", dc.Year%100)
		case tokMonth1:
			out.WriteString(strconv.Itoa(dc.Month))
		case tokMonth2:
			fmt.Fprintf(&out, "%02d", dc.Month)
		case tokMonth3:
			out.WriteString(monthAbbrev(dc.Month))
		case tokMonth4:
			out.WriteString(monthFull(dc.Month))
		case tokMonth5:
			out.WriteString(monthLetter(dc.Month))
		case tokDay1:
			out.WriteString(strconv.Itoa(dc.Day))
		case tokDay2:
			fmt.Fprintf(&out, "%02d", dc.Day)
		case tokDay3:
			out.WriteString(dayAbbrev(dayOfWeek))
		case tokDay4:
			out.WriteString(dayFull(dayOfWeek))
		case tokHour1:
			if fmtSpec.hasAmPm {
				out.WriteString(strconv.Itoa(displayHour))
			} else {
				out.WriteString(strconv.Itoa(dc.Hour))
			}
		case tokHour2:
			if fmtSpec.hasAmPm {
				fmt.Fprintf(&out, "%02d", displayHour)
			} else {
				fmt.Fprintf(&out, "%02d", dc.Hour)
			}
		case tokMinute1:
			out.WriteString(strconv.Itoa(dc.Minute))
		case tokMinute2:
			fmt.Fprintf(&out, "%02d", dc.Minute)
		case tokSecond1:
			out.WriteString(strconv.Itoa(dc.Second))
		case tokSecond2:
			fmt.Fprintf(&out, "%02d", dc.Second)
		case tokAmPm:
			out.WriteString(amPm)
		case tokAP:
			out.WriteString(aP)
		case tokElapsedHours:
			out.WriteString(strconv.Itoa(ElapsedHours(value)))
		case tokElapsedMinutes:
			out.WriteString(strconv.Itoa(ElapsedMinutes(value)))
		case tokElapsedSeconds:
			out.WriteString(strconv.Itoa(int(math.Floor(value * 86400))))
		case tokLiteral:
			out.WriteString(tok.lit)
		}
	}

	if out.Len() == 0 {
		return fmt.Sprintf("%04d-%02d-%02d", dc.Year, dc.Month, dc.Day)
	}
	return out.String()
}

// Date format token kinds.
const (
	tokYear4 = iota
	tokYear2
	tokMonth1
	tokMonth2
	tokMonth3
	tokMonth4
	tokMonth5
	tokDay1
	tokDay2
	tokDay3
	tokDay4
	tokHour1
	tokHour2
	tokMinute1
	tokMinute2
	tokSecond1
	tokSecond2
	tokAmPm
	tokAP
	tokElapsedHours
	tokElapsedMinutes
	tokElapsedSeconds
	tokLiteral
)

type dateToken struct {
	kind int
	lit  string
}

// parseDateFormatTokens tokenizes a date format code. The m placeholder is a
// minute when it follows an hour token or is followed by a seconds token,
// otherwise a month.
func parseDateFormatTokens(formatCode string) []dateToken {
	var tokens []dateToken
	chars := []rune(formatCode)
	i := 0
	inTimeContext := false

	for i < len(chars) {
		c := chars[i]
		cLower := lowerRune(c)

		if c == '"' {
			var literal strings.Builder
			i++
			for i < len(chars) && chars[i] != '"' {
				literal.WriteRune(chars[i])
				i++
			}
			i++
			tokens = append(tokens, dateToken{kind: tokLiteral, lit: literal.String()})
			continue
		}

		if c == '\\' && i+1 < len(chars) {
			tokens = append(tokens, dateToken{kind: tokLiteral, lit: string(chars[i+1])})
			i += 2
			continue
		}

		if c == '[' {
			if i+2 < len(chars) && chars[i+2] == ']' {
				switch lowerRune(chars[i+1]) {
				case 'h':
					tokens = append(tokens, dateToken{kind: tokElapsedHours})
					i += 3
					inTimeContext = true
					continue
				case 'm':
					tokens = append(tokens, dateToken{kind: tokElapsedMinutes})
					i += 3
					continue
				case 's':
					tokens = append(tokens, dateToken{kind: tokElapsedSeconds})
					i += 3
					inTimeContext = false
					continue
				}
			}
			// Color codes and conditions like [Red] or [>100].
			j := i + 1
			for j < len(chars) && chars[j] != ']' {
				j++
			}
			i = j + 1
			continue
		}

		if cLower == 'a' {
			if i+4 < len(chars) && lowerRune(chars[i+1]) == 'm' && chars[i+2] == '/' &&
				lowerRune(chars[i+3]) == 'p' && lowerRune(chars[i+4]) == 'm' {
				tokens = append(tokens, dateToken{kind: tokAmPm})
				i += 5
				continue
			}
			if i+2 < len(chars) && chars[i+1] == '/' && lowerRune(chars[i+2]) == 'p' {
				tokens = append(tokens, dateToken{kind: tokAP})
				i += 3
				continue
			}
			tokens = append(tokens, dateToken{kind: tokLiteral, lit: string(c)})
			i++
			continue
		}

		count := 1
		for i+count < len(chars) && lowerRune(chars[i+count]) == cLower {
			count++
		}

		switch cLower {
		case 'y':
			if count >= 4 {
				tokens = append(tokens, dateToken{kind: tokYear4})
			} else {
				tokens = append(tokens, dateToken{kind: tokYear2})
			}
			i += count
		case 'm':
			isMinute := inTimeContext || followedBySeconds(chars, i+count)
			if isMinute {
				if count >= 2 {
					tokens = append(tokens, dateToken{kind: tokMinute2})
				} else {
					tokens = append(tokens, dateToken{kind: tokMinute1})
				}
			} else {
				switch count {
				case 1:
					tokens = append(tokens, dateToken{kind: tokMonth1})
				case 2:
					tokens = append(tokens, dateToken{kind: tokMonth2})
				case 3:
					tokens = append(tokens, dateToken{kind: tokMonth3})
				case 4:
					tokens = append(tokens, dateToken{kind: tokMonth4})
				default:
					tokens = append(tokens, dateToken{kind: tokMonth5})
				}
			}
			i += count
		case 'd':
			switch count {
			case 1:
				tokens = append(tokens, dateToken{kind: tokDay1})
			case 2:
				tokens = append(tokens, dateToken{kind: tokDay2})
			case 3:
				tokens = append(tokens, dateToken{kind: tokDay3})
			default:
				tokens = append(tokens, dateToken{kind: tokDay4})
			}
			i += count
		case 'h':
			inTimeContext = true
			if count >= 2 {
				tokens = append(tokens, dateToken{kind: tokHour2})
			} else {
				tokens = append(tokens, dateToken{kind: tokHour1})
			}
			i += count
		case 's':
			inTimeContext = false
			if count >= 2 {
				tokens = append(tokens, dateToken{kind: tokSecond2})
			} else {
				tokens = append(tokens, dateToken{kind: tokSecond1})
			}
			i += count
		case '_', '*':
			// _ reserves the width of the next char, * repeats it; neither
			// affects text content here.
			if i+1 < len(chars) {
				i += 2
			} else {
				i++
			}
		default:
			tokens = append(tokens, dateToken{kind: tokLiteral, lit: string(c)})
			i++
		}
	}
	return tokens
}

// followedBySeconds scans forward from start for an s token before any other
// date component, which makes the preceding m run minutes.
func followedBySeconds(chars []rune, start int) bool {
	for i := start; i < len(chars); i++ {
		switch lowerRune(chars[i]) {
		case 's':
			return true
		case 'h', 'y', 'd', 'm':
			return false
		}
	}
	return false
}

func lowerRune(c rune) rune {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

var monthAbbrevs = [13]string{"???", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var monthFulls = [13]string{
	"???", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var monthLetters = [13]string{"?", "J", "F", "M", "A", "M", "J", "J", "A", "S", "O", "N", "D"}

var dayAbbrevs = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var dayFulls = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func monthAbbrev(month int) string {
	if month < 1 || month > 12 {
		return monthAbbrevs[0]
	}
	return monthAbbrevs[month]
}

func monthFull(month int) string {
	if month < 1 || month > 12 {
		return monthFulls[0]
	}
	return monthFulls[month]
}

func monthLetter(month int) string {
	if month < 1 || month > 12 {
		return monthLetters[0]
	}
	return monthLetters[month]
}

func dayAbbrev(dow int) string {
	if dow < 0 || dow > 6 {
		return "???"
	}
	return dayAbbrevs[dow]
}

func dayFull(dow int) string {
	if dow < 0 || dow > 6 {
		return "???"
	}
	return dayFulls[dow]
}

func formatNumeric(value float64, fmtSpec *numericFormat) string {
	if fmtSpec.percent {
		pct := value * 100
		decimals := fmtSpec.decimals
		if decimals > 10 {
			decimals = 10
		}
		return strconv.FormatFloat(pct, 'f', decimals, 64) + "%"
	}

	decimals := fmtSpec.decimals
	if decimals > 10 {
		decimals = 10
	}
	var out string
	if fmtSpec.hasThousands {
		out = formatWithThousands(value, decimals)
	} else {
		out = strconv.FormatFloat(value, 'f', decimals, 64)
	}
	if fmtSpec.currency != 0 {
		out = string(fmtSpec.currency) + out
	}
	return out
}

func formatWithThousands(value float64, decimals int) string {
	negative := value < 0
	abs := math.Abs(value)

	formatted := strconv.FormatFloat(abs, 'f', decimals, 64)
	intPart, decPart, hasDec := strings.Cut(formatted, ".")

	n := len(intPart)
	var sep strings.Builder
	for i, c := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			sep.WriteByte(',')
		}
		sep.WriteRune(c)
	}

	out := sep.String()
	if hasDec {
		out += "." + decPart
	}
	if negative {
		return "-" + out
	}
	return out
}

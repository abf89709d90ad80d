package xlview

import "testing"

func TestIsDateFormat(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"General", false},
		{"0.00", false},
		{"#,##0", false},
		{"0.00E+00", false},
		{"@", false},
		{"[Red]0.00", false},
		{"\"months\"0", false},
		{"mm-dd-yy", true},
		{"yyyy-mm-dd", true},
		{"h:mm:ss", true},
		{"mm:ss", true},
		{"[h]:mm", true},
		{"d-mmm", true},
		{"AM/PM h", true},
	}

	for _, tt := range tests {
		if got := IsDateFormat(tt.code); got != tt.want {
			t.Errorf("IsDateFormat(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestBuiltinFormat(t *testing.T) {
	if code, ok := BuiltinFormat(14); !ok || code != "mm-dd-yy" {
		t.Errorf("BuiltinFormat(14) = %q, %v", code, ok)
	}
	if code, ok := BuiltinFormat(22); !ok || code != "m/d/yy h:mm" {
		t.Errorf("BuiltinFormat(22) = %q, %v", code, ok)
	}
	if _, ok := BuiltinFormat(100); ok {
		t.Error("BuiltinFormat(100) should not exist")
	}
}

func TestFormatGeneral(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0"},
		{42, "42"},
		{-7, "-7"},
		{3.14, "3.14"},
		{1.5, "1.5"},
		{1230000000000, "1.23000E+12"},
		{0.00005, "5.00000E-05"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.value, "General", false); got != tt.want {
			t.Errorf("FormatNumber(%v, General) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatScientific(t *testing.T) {
	tests := []struct {
		value float64
		code  string
		want  string
	}{
		{1234567, "0.00E+00", "1.23E+06"},
		{0.00012, "0.00E+00", "1.20E-04"},
		{-1234567, "0.00E+00", "-1.23E+06"},
		{0, "0.00E+00", "0.00E+00"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.value, tt.code, false); got != tt.want {
			t.Errorf("FormatNumber(%v, %q) = %q, want %q", tt.value, tt.code, got, tt.want)
		}
	}
}

func TestFormatFraction(t *testing.T) {
	tests := []struct {
		value float64
		code  string
		want  string
	}{
		{0.75, "# ?/?", "3/4"},
		{1.25, "# ?/?", "1 1/4"},
		{0.5, "# ?/16", " 8/16"},
		{2.0, "# ?/16", "2"},
		{0, "# ?/?", "0"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.value, tt.code, false); got != tt.want {
			t.Errorf("FormatNumber(%v, %q) = %q, want %q", tt.value, tt.code, got, tt.want)
		}
	}
}

func TestFormatNumeric(t *testing.T) {
	tests := []struct {
		value float64
		code  string
		want  string
	}{
		{1234.5, "#,##0.00", "1,234.50"},
		{1234.6, "#,##0", "1,235"},
		{-1234.5, "#,##0.00", "-1,234.50"},
		{0.125, "0.00%", "12.50%"},
		{0.126, "0%", "13%"},
		{1234.5, "$#,##0.00", "$1,234.50"},
		{2.5, "0.00", "2.50"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.value, tt.code, false); got != tt.want {
			t.Errorf("FormatNumber(%v, %q) = %q, want %q", tt.value, tt.code, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		value float64
		code  string
		want  string
	}{
		{38406, "yyyy-mm-dd", "2005-02-23"},
		{38406, "m/d/yy", "2/23/05"},
		{38406, "mmm d, yyyy", "Feb 23, 2005"},
		{38406, "ddd", "Wed"},
		{38406, "dddd", "Wednesday"},
		{38406.5, "m/d/yy h:mm", "2/23/05 12:00"},
		{0.75, "h:mm AM/PM", "6:00 PM"},
		{0.25, "h:mm AM/PM", "6:00 AM"},
		{0.5, "hh:mm:ss", "12:00:00"},
		{1.5, "[h]:mm:ss", "36:00:00"},
		{60, "yyyy-mm-dd", "1900-02-29"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.value, tt.code, false); got != tt.want {
			t.Errorf("FormatNumber(%v, %q) = %q, want %q", tt.value, tt.code, got, tt.want)
		}
	}
}

func TestFormatDateNegativeFallsBack(t *testing.T) {
	if got := FormatNumber(-5, "yyyy-mm-dd", false); got != "-5" {
		t.Errorf("FormatNumber(-5, date) = %q, want -5", got)
	}
}

func TestCompiledFormatIsDate(t *testing.T) {
	if !CompileFormat("yyyy-mm-dd").IsDate() {
		t.Error("yyyy-mm-dd should be a date format")
	}
	if CompileFormat("0.00").IsDate() {
		t.Error("0.00 should not be a date format")
	}
}

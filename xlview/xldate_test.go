package xlview

import (
	"errors"
	"testing"
)

func TestSerialToDate1900(t *testing.T) {
	tests := []struct {
		serial float64
		want   DateComponents
	}{
		{1, DateComponents{Year: 1900, Month: 1, Day: 1}},
		{59, DateComponents{Year: 1900, Month: 2, Day: 28}},
		{60, DateComponents{Year: 1900, Month: 2, Day: 29}},
		{61, DateComponents{Year: 1900, Month: 3, Day: 1}},
		{2741, DateComponents{Year: 1907, Month: 7, Day: 3}},
		{38406, DateComponents{Year: 2005, Month: 2, Day: 23}},
		{43831, DateComponents{Year: 2020, Month: 1, Day: 1}},
		{44196.5, DateComponents{Year: 2020, Month: 12, Day: 31, Hour: 12}},
	}

	for _, tt := range tests {
		got, err := SerialToDate(tt.serial, false)
		if err != nil {
			t.Errorf("SerialToDate(%f, false) error = %v", tt.serial, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SerialToDate(%f, false) = %+v, want %+v", tt.serial, got, tt.want)
		}
	}
}

func TestSerialToDate1904(t *testing.T) {
	tests := []struct {
		serial float64
		want   DateComponents
	}{
		{0, DateComponents{Year: 1904, Month: 1, Day: 1}},
		{1, DateComponents{Year: 1904, Month: 1, Day: 2}},
		{60, DateComponents{Year: 1904, Month: 3, Day: 1}},
		{36944, DateComponents{Year: 2005, Month: 2, Day: 23}},
	}

	for _, tt := range tests {
		got, err := SerialToDate(tt.serial, true)
		if err != nil {
			t.Errorf("SerialToDate(%f, true) error = %v", tt.serial, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SerialToDate(%f, true) = %+v, want %+v", tt.serial, got, tt.want)
		}
	}
}

func TestSerialToDateTimeOnly(t *testing.T) {
	tests := []struct {
		serial float64
		want   DateComponents
	}{
		{0.273611, DateComponents{Hour: 6, Minute: 34, Second: 0}},
		{0.538889, DateComponents{Hour: 12, Minute: 56, Second: 0}},
		{0.741123, DateComponents{Hour: 17, Minute: 47, Second: 13}},
	}

	for _, tt := range tests {
		got, err := SerialToDate(tt.serial, false)
		if err != nil {
			t.Errorf("SerialToDate(%f, false) error = %v", tt.serial, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SerialToDate(%f, false) = %+v, want %+v", tt.serial, got, tt.want)
		}
	}
}

func TestSerialToDateNegative(t *testing.T) {
	if _, err := SerialToDate(-1, false); err == nil {
		t.Error("SerialToDate(-1, false) expected error")
	}
	var negErr *XLDateNegative
	_, err := SerialToDate(-0.5, true)
	if err == nil {
		t.Fatal("SerialToDate(-0.5, true) expected error")
	}
	if !errors.As(err, &negErr) {
		t.Errorf("SerialToDate(-0.5, true) error type = %T, want *XLDateNegative", err)
	}
}

func TestSerialTimeRollover(t *testing.T) {
	// 0.9999999 rounds up past midnight into the next day.
	got, err := SerialToDate(1.9999999, false)
	if err != nil {
		t.Fatalf("SerialToDate error = %v", err)
	}
	want := DateComponents{Year: 1900, Month: 1, Day: 2}
	if got != want {
		t.Errorf("SerialToDate(1.9999999, false) = %+v, want %+v", got, want)
	}
}

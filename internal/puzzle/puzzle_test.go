package puzzle

import (
	"testing"
	"time"
)

func TestDay_Pad(t *testing.T) {
	tests := []struct {
		day      Day
		expected string
	}{
		{1, "01"},
		{3, "03"},
		{9, "09"},
		{10, "10"},
		{25, "25"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.day.Pad(); got != tt.expected {
				t.Errorf("Day(%d).Pad() = %q, expected %q", tt.day, got, tt.expected)
			}
		})
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		input   string
		want    Day
		wantErr bool
	}{
		{"3", 3, false},
		{"03", 3, false},
		{" 25 ", 25, false},
		{"31", 31, false},
		{"0", 0, true},
		{"32", 0, true},
		{"-1", 0, true},
		{"three", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDay(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestDayFromDate(t *testing.T) {
	date := time.Date(2021, time.December, 7, 23, 59, 0, 0, time.UTC)
	if got := DayFromDate(date); got != 7 {
		t.Errorf("DayFromDate() = %d, want 7", got)
	}
}

func TestNew(t *testing.T) {
	if _, err := New(2021, 3); err != nil {
		t.Errorf("New(2021, 3) unexpected error: %v", err)
	}
	if _, err := New(2021, 0); err == nil {
		t.Error("New(2021, 0) expected error for invalid day")
	}
	if _, err := New(1999, 3); err == nil {
		t.Error("New(1999, 3) expected error for invalid year")
	}
}

func TestPuzzle_URLs(t *testing.T) {
	p := Puzzle{Year: 2021, Day: 3}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"description", p.DescriptionURL(DefaultBaseURL), "https://adventofcode.com/2021/day/3"},
		{"input", p.InputURL(DefaultBaseURL), "https://adventofcode.com/2021/day/3/input"},
		{"trailing slash", p.InputURL("http://127.0.0.1:8080/"), "http://127.0.0.1:8080/2021/day/3/input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, expected %q", tt.got, tt.expected)
			}
		})
	}
}

func TestPuzzle_String(t *testing.T) {
	p := Puzzle{Year: 2021, Day: 3}
	if got := p.String(); got != "2021 day 03" {
		t.Errorf("String() = %q, want %q", got, "2021 day 03")
	}
}

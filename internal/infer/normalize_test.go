package infer

import "testing"

func TestCanonicalizeDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2023/04/15", "2023-04-15"},
		{"15.04.2023", "15-04-2023"},
		{"2023-04-15", "2023-04-15"},
	}
	for _, tt := range tests {
		if got := canonicalizeDate(tt.input); got != tt.want {
			t.Errorf("canonicalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCanonicalizeTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "dot separated time", input: "13.45.30", want: "13:45:30"},
		{name: "colon time untouched", input: "13:45", want: "13:45"},
		{name: "fraction dot preserved", input: "13:45:30.5", want: "13:45:30.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canonicalizeTime(tt.input); got != tt.want {
				t.Errorf("canonicalizeTime(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestShapeDetection(t *testing.T) {
	tests := []struct {
		input    string
		wantDate bool
		wantTime bool
	}{
		{"2023-04-15", true, false},
		{"04/15/2023", true, false},
		{"15.04.2023", true, false},
		{"14:30", false, true},
		{"2023-04-15 14:30", true, true},
		{"hello", false, false},
		{"123", false, false},
	}
	for _, tt := range tests {
		if got := hasDateShape(tt.input); got != tt.wantDate {
			t.Errorf("hasDateShape(%q) = %v, want %v", tt.input, got, tt.wantDate)
		}
		if got := hasTimeShape(tt.input); got != tt.wantTime {
			t.Errorf("hasTimeShape(%q) = %v, want %v", tt.input, got, tt.wantTime)
		}
	}
}

func TestMeridiem(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"am", "AM"},
		{"PM", "PM"},
		{"pM", "PM"},
		{"noon", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := meridiem(tt.input); got != tt.want {
			t.Errorf("meridiem(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

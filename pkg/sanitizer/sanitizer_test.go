package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  Westlands Loft  ", want: "Westlands Loft"},
		{name: "multiple spaces between words", input: "Diani    Beach", want: "Diani Beach"},
		{name: "tabs and newlines", input: "Maasai\t\nMara", want: "Maasai Mara"},
		{name: "empty string", input: "", want: ""},
		{name: "only whitespace", input: "   \t\n  ", want: ""},
		{name: "preserve special characters", input: " Café & Grill ", want: "Café & Grill"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if twice := TrimAndNormalize(TrimAndNormalize(tt.input)); twice != tt.want {
				t.Errorf("TrimAndNormalize is not idempotent for %q: %q", tt.input, twice)
			}
		})
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   float64
		wantOK bool
	}{
		{name: "float", input: 4500.0, want: 4500, wantOK: true},
		{name: "int", input: 120, want: 120, wantOK: true},
		{name: "int64", input: int64(75), want: 75, wantOK: true},
		{name: "plain string", input: "4500", want: 4500, wantOK: true},
		{name: "currency prefix and grouping", input: "KES 4,500", want: 4500, wantOK: true},
		{name: "dollar with cents", input: "$1,200.50", want: 1200.5, wantOK: true},
		{name: "per-night suffix", input: "3500/night", want: 3500, wantOK: true},
		{name: "space grouping", input: "12 000", want: 12000, wantOK: true},
		{name: "negative number", input: -5.0, wantOK: false},
		{name: "negative text", input: "-2500", wantOK: false},
		{name: "negative text with currency", input: "KES -2,500", wantOK: false},
		{name: "range keeps lower bound", input: "2500-3000", want: 2500, wantOK: true},
		{name: "words only", input: "free", wantOK: false},
		{name: "empty", input: "", wantOK: false},
		{name: "nil", input: nil, wantOK: false},
		{name: "object", input: map[string]any{"amount": 10}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Amount(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Amount(%v) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Amount(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		input  any
		want   float64
		wantOK bool
	}{
		{input: -1.2921, want: -1.2921, wantOK: true},
		{input: " 36.8219 ", want: 36.8219, wantOK: true},
		{input: "north", wantOK: false},
		{input: true, wantOK: false},
	}

	for _, tt := range tests {
		got, ok := Float(tt.input)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("Float(%v) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{input: "  Nairobi ", want: "Nairobi"},
		{input: 4.5, want: "4.5"},
		{input: 3, want: "3"},
		{input: nil, want: ""},
		{input: map[string]any{"city": "Lamu"}, want: ""},
		{input: []any{"a"}, want: ""},
	}

	for _, tt := range tests {
		if got := Text(tt.input); got != tt.want {
			t.Errorf("Text(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestJoinNonEmpty(t *testing.T) {
	got := JoinNonEmpty(", ", "Westlands", "", " Nairobi ", "nairobi", "Kenya")
	if want := "Westlands, Nairobi, Kenya"; got != want {
		t.Errorf("JoinNonEmpty = %q, want %q", got, want)
	}
}

func TestStringList(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{name: "string slice", input: []string{"English", " Swahili ", "english"}, want: []string{"English", "Swahili"}},
		{name: "any slice skips non-strings", input: []any{"English", 3, "French"}, want: []string{"English", "French"}},
		{name: "comma separated", input: "English, Swahili", want: []string{"English", "Swahili"}},
		{name: "nil", input: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StringList(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("StringList(%v) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("StringList(%v)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSearchTerm(t *testing.T) {
	if got := SearchTerm("  Beach   FRONT "); got != "beach front" {
		t.Errorf("SearchTerm = %q, want %q", got, "beach front")
	}
}

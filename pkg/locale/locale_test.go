package locale

import (
	"testing"

	"golang.org/x/text/language"
)

func TestFormatter_Amount(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		amount float64
		want   string
	}{
		{name: "english grouping", locale: "en", amount: 4500, want: "4,500"},
		{name: "fraction kept", locale: "en", amount: 1200.5, want: "1,200.5"},
		{name: "zero", locale: "en", amount: 0, want: "0"},
		{name: "small", locale: "en", amount: 85, want: "85"},
		{name: "kenyan english", locale: "en-KE", amount: 125000, want: "125,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewFormatter(tt.locale).Amount(tt.amount)
			if got != tt.want {
				t.Errorf("Amount(%v) with %s = %q, want %q", tt.amount, tt.locale, got, tt.want)
			}
		})
	}
}

func TestNewFormatter_FallsBackToEnglish(t *testing.T) {
	for _, input := range []string{"", "not a locale!!"} {
		if got := NewFormatter(input).Tag(); got != language.English {
			t.Errorf("NewFormatter(%q).Tag() = %v, want %v", input, got, language.English)
		}
	}
}

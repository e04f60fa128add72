package locale

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const DefaultLocale = "en"

// Formatter renders numbers with the digit grouping of a display locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter parses a BCP 47 tag ("en", "en-KE", "sw-KE"). Unknown or
// malformed tags fall back to English.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil || tag == language.Und {
		tag = language.English
	}
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

func (f *Formatter) Tag() language.Tag {
	return f.tag
}

// Amount renders a price with locale grouping and at most two decimals.
func (f *Formatter) Amount(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

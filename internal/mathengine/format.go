package mathengine

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// DefaultLocale is used when no locale is configured.
	DefaultLocale = "ar-EG"

	maxFractionDigits = 6
)

// Formatter renders results with locale-aware digit grouping. The zero value
// is not usable; construct one with NewFormatter.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a Formatter for the BCP 47 tag locale. An unparsable
// tag yields a Formatter that falls back to plain decimal output.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		return &Formatter{}
	}
	return &Formatter{printer: message.NewPrinter(numberTag(tag))}
}

// numberTag reduces tag to its language (plus an explicit script and
// numbering system) because regional tags such as ar-EG do not resolve to
// the language's number data.
func numberTag(tag language.Tag) language.Tag {
	base, _ := tag.Base()
	reduced := base.String()
	if script, conf := tag.Script(); conf == language.Exact {
		reduced += "-" + script.String()
	}
	if nu := tag.TypeForKey("nu"); nu != "" {
		reduced += "-u-nu-" + nu
	}

	t, err := language.Parse(reduced)
	if err != nil {
		return tag
	}
	return t
}

// Format renders v with grouping and at most six fraction digits. It never
// fails: if locale formatting is unavailable the shortest decimal form is
// returned.
func (f *Formatter) Format(v float64) (out string) {
	fallback := strconv.FormatFloat(v, 'f', -1, 64)
	if f == nil || f.printer == nil {
		return fallback
	}

	defer func() {
		if recover() != nil {
			out = fallback
		}
	}()

	out = f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(maxFractionDigits)))
	if out == "" {
		return fallback
	}
	return out
}

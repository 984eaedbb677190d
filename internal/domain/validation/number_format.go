// Package validation turns raw parameter text into range-checked values
// and aggregates every violation of a parameter set into one report.
package validation

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is the locale the drill parameters are entered in
// unless configured otherwise.
var DefaultLocale = language.Russian

// ErrNotANumber is returned by NumberFormat.Parse for malformed input.
var ErrNotANumber = errors.New("not a number")

// NumberFormat parses and formats decimals for one locale.
// The separators are taken from CLDR data, so "ru" uses a comma as the
// decimal separator and a no-break space for grouping, while "en" uses
// a point and a comma.
//
// Digits are always Latin: locales whose default numbering system uses
// native digits (e.g. "ar") are printed with the "latn" system, so every
// formatted number can be parsed back.
type NumberFormat struct {
	tag     language.Tag
	print   language.Tag
	decimal string
	group   string
}

// NewNumberFormat creates a NumberFormat for the given locale.
func NewNumberFormat(tag language.Tag) NumberFormat {
	printTag := latinDigits(tag)
	decimal, group := separators(printTag)
	return NumberFormat{tag: tag, print: printTag, decimal: decimal, group: group}
}

func latinDigits(tag language.Tag) language.Tag {
	t, err := tag.SetTypeForKey("nu", "latn")
	if err != nil {
		return tag
	}
	return t
}

// ParseLocale resolves a BCP 47 tag such as "ru" or "en-US".
// An empty string yields DefaultLocale.
func ParseLocale(s string) (language.Tag, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLocale, nil
	}
	return language.Parse(s)
}

// separators prints a known number and reads the separators back.
func separators(tag language.Tag) (decimal, group string) {
	p := message.NewPrinter(tag)
	out := p.Sprint(number.Decimal(1234.5, number.Scale(1)))

	var runs []string
	var cur strings.Builder
	for _, r := range out {
		if unicode.IsDigit(r) {
			if cur.Len() > 0 {
				runs = append(runs, cur.String())
				cur.Reset()
			}
			continue
		}
		cur.WriteRune(r)
	}

	switch len(runs) {
	case 0:
		return ".", ""
	case 1:
		return runs[0], ""
	default:
		return runs[len(runs)-1], runs[0]
	}
}

// Tag returns the locale of this format.
func (f NumberFormat) Tag() language.Tag { return f.tag }

// DecimalSeparator returns the locale decimal separator.
func (f NumberFormat) DecimalSeparator() string { return f.decimal }

// GroupSeparator returns the locale grouping separator, possibly empty.
func (f NumberFormat) GroupSeparator() string { return f.group }

// Parse reads a decimal number written in this locale. Surrounding
// whitespace, a leading sign, group separators in the integer part and
// an exponent are accepted. A decimal point of another locale is not.
func (f NumberFormat) Parse(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, ErrNotANumber
	}

	var b strings.Builder
	if s[0] == '+' || s[0] == '-' {
		b.WriteByte(s[0])
		s = s[1:]
	}

	digits := 0
	seenDecimal := false
	for s != "" {
		r, size := utf8.DecodeRuneInString(s)
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			digits++
			s = s[size:]
		case !seenDecimal && f.decimal != "" && strings.HasPrefix(s, f.decimal):
			b.WriteByte('.')
			seenDecimal = true
			s = s[len(f.decimal):]
		case !seenDecimal && digits > 0 && f.isGroup(s):
			s = s[f.groupLen(s):]
		case (r == 'e' || r == 'E') && digits > 0:
			exp, ok := parseExponent(s[size:])
			if !ok {
				return 0, ErrNotANumber
			}
			b.WriteString("e" + exp)
			s = ""
		default:
			return 0, ErrNotANumber
		}
	}
	if digits == 0 {
		return 0, ErrNotANumber
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotANumber
	}
	return v, nil
}

// isGroup reports whether s starts with a grouping separator. Locales
// that group with a no-break space also accept a plain space.
func (f NumberFormat) isGroup(s string) bool {
	return f.groupLen(s) > 0
}

func (f NumberFormat) groupLen(s string) int {
	if f.group == "" {
		return 0
	}
	if strings.HasPrefix(s, f.group) {
		return len(f.group)
	}
	g, _ := utf8.DecodeRuneInString(f.group)
	if unicode.IsSpace(g) || unicode.Is(unicode.Zs, g) {
		if r, size := utf8.DecodeRuneInString(s); r == ' ' {
			return size
		}
	}
	return 0
}

func parseExponent(s string) (string, bool) {
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign = s[:1]
		s = s[1:]
	}
	if s == "" {
		return "", false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return sign + s, true
}

// FormatBound renders a bound with two fraction digits and no grouping,
// e.g. "2,50" for ru.
func (f NumberFormat) FormatBound(v float64) string {
	p := message.NewPrinter(f.print)
	return p.Sprint(number.Decimal(v, number.Scale(2), number.NoSeparator()))
}

// FormatValue renders v with the shortest exact representation and the
// locale decimal separator, so Parse(FormatValue(v)) == v.
func (f NumberFormat) FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if f.decimal != "." {
		s = strings.Replace(s, ".", f.decimal, 1)
	}
	return s
}

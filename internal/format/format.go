// Package format holds the display formatters used on proposal documents and
// API responses: pt-BR currency, CPF/CNPJ, phone and date masks. All masks are
// driven by the digit count of the input and round-trip through Digits.
package format

import (
	"strconv"
	"strings"
)

// Digits strips everything that is not a decimal digit.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Currency renders a value as pt-BR currency, e.g. 78999.9 -> "R$ 78.999,90".
func Currency(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	cents := int64(v*100 + 0.5)
	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	b.WriteString("R$ ")
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	b.WriteByte(',')
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))
	return b.String()
}

// CurrencyFromDigits interprets a digit-only string as centavos, the way a
// masked currency input accumulates keystrokes ("7899990" -> 78999.90).
func CurrencyFromDigits(digits string) (float64, bool) {
	digits = Digits(digits)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return float64(n) / 100, true
}

// CPF masks up to 11 digits as XXX.XXX.XXX-XX, progressively for partial input.
func CPF(s string) string {
	d := clip(Digits(s), 11)
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return d[:3] + "." + d[3:]
	case len(d) <= 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	default:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
}

// CNPJ masks up to 14 digits as XX.XXX.XXX/XXXX-XX, progressively.
func CNPJ(s string) string {
	d := clip(Digits(s), 14)
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 5:
		return d[:2] + "." + d[2:]
	case len(d) <= 8:
		return d[:2] + "." + d[2:5] + "." + d[5:]
	case len(d) <= 12:
		return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:]
	default:
		return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
	}
}

// TaxID picks the CPF or CNPJ mask by person type ("company" gets CNPJ).
func TaxID(s string, company bool) string {
	if company {
		return CNPJ(s)
	}
	return CPF(s)
}

// Date masks up to 8 digits as DD/MM/YYYY, progressively.
func Date(s string) string {
	d := clip(Digits(s), 8)
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 4:
		return d[:2] + "/" + d[2:]
	default:
		return d[:2] + "/" + d[2:4] + "/" + d[4:]
	}
}

// Phone masks a fixed line, up to 10 digits: (XX) XXXX-XXXX.
func Phone(s string) string {
	d := clip(Digits(s), 10)
	switch {
	case d == "":
		return ""
	case len(d) <= 2:
		return "(" + d
	case len(d) <= 6:
		return "(" + d[:2] + ") " + d[2:]
	default:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	}
}

// Mobile masks a mobile line, up to 11 digits: (XX) XXXXX-XXXX.
func Mobile(s string) string {
	d := clip(Digits(s), 11)
	switch {
	case d == "":
		return ""
	case len(d) <= 2:
		return "(" + d
	case len(d) <= 7:
		return "(" + d[:2] + ") " + d[2:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
}

// CEP masks a complete 8-digit postal code as XXXXX-XXX; shorter input is
// returned unmasked.
func CEP(s string) string {
	d := clip(Digits(s), 8)
	if len(d) < 8 {
		return d
	}
	return d[:5] + "-" + d[5:]
}

func clip(d string, n int) string {
	if len(d) > n {
		return d[:n]
	}
	return d
}

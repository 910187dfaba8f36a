package evaluator

import (
	"math"
	"strconv"
	"strings"
)

// bitsPerDigit slightly overestimates log2(10) so oversized integers are
// rejected before the costly decimal conversion.
const bitsPerDigit = 3.33

func formatInt(v Int, maxDigits int) (string, error) {
	if maxDigits > 0 && float64(v.V.BitLen()) > float64(maxDigits+2)*bitsPerDigit {
		return "", tooManyDigits(maxDigits)
	}
	s := v.V.String()
	digits := len(strings.TrimPrefix(s, "-"))
	if maxDigits > 0 && digits > maxDigits {
		return "", tooManyDigits(maxDigits)
	}
	return s, nil
}

func tooManyDigits(limit int) *Error {
	return newError(KindValueType,
		"Exceeds the limit (%d digits) for integer string conversion; use sys.set_int_max_str_digits() to increase the limit", limit)
}

// formatFloat prints the shortest round-tripping form, switching to
// exponent notation below 1e-4 and from 1e16 up.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64) // -d.ddde±XX
	sign := ""
	if sci[0] == '-' {
		sign, sci = "-", sci[1:]
	}
	mant, expText, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expText)
	digits := strings.Replace(mant, ".", "", 1)

	if exp < -4 || exp >= 16 {
		out := digits[:1]
		if len(digits) > 1 {
			out += "." + digits[1:]
		}
		es := "+"
		if exp < 0 {
			es, exp = "-", -exp
		}
		e := strconv.Itoa(exp)
		if len(e) < 2 {
			e = "0" + e
		}
		return sign + out + "e" + es + e
	}

	point := exp + 1
	var out string
	switch {
	case point <= 0:
		out = "0." + strings.Repeat("0", -point) + digits
	case point >= len(digits):
		out = digits + strings.Repeat("0", point-len(digits)) + ".0"
	default:
		out = digits[:point] + "." + digits[point:]
	}
	return sign + out
}

package feature

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MsgRequired  = "Bu alan zorunludur"
	MsgEmail     = "Geçerli bir email adresi giriniz"
	MsgNumber    = "Geçerli bir sayı giriniz"
	MsgInteger   = "Tam sayı giriniz"
	MsgPhone     = "10 haneli telefon numarası giriniz (5XXXXXXXXX)"
	MsgTaxNumber = "10 haneli vergi numarası giriniz"
)

var (
	tenDigits = regexp.MustCompile(`^[0-9]{10}$`)
	// same shape browsers accept for type=email
	emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")
)

// Rule returns an error message for an invalid value, "" otherwise.
// Every rule except Required accepts the empty value.
type Rule func(value string) string

func Required() Rule {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return MsgRequired
		}
		return ""
	}
}

func MinLen(n int) Rule {
	return func(v string) string {
		if v != "" && utf8.RuneCountInString(v) < n {
			return fmt.Sprintf("En az %d karakter olmalıdır", n)
		}
		return ""
	}
}

func MaxLen(n int) Rule {
	return func(v string) string {
		if utf8.RuneCountInString(v) > n {
			return fmt.Sprintf("En fazla %d karakter olabilir", n)
		}
		return ""
	}
}

func Pattern(re *regexp.Regexp, msg string) Rule {
	return func(v string) string {
		if v != "" && !re.MatchString(v) {
			return msg
		}
		return ""
	}
}

func Email() Rule {
	return Pattern(emailPattern, MsgEmail)
}

func Phone() Rule {
	return Pattern(tenDigits, MsgPhone)
}

func TaxNumber() Rule {
	return Pattern(tenDigits, MsgTaxNumber)
}

// parseFinite parses a decimal number, refusing NaN and the infinities
// that strconv.ParseFloat would otherwise accept.
func parseFinite(v string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func Numeric() Rule {
	return func(v string) string {
		if v == "" {
			return ""
		}
		if _, ok := parseFinite(v); !ok {
			return MsgNumber
		}
		return ""
	}
}

// Integer accepts whole numbers only, so 2000.5 is not silently truncated.
func Integer() Rule {
	return func(v string) string {
		if v == "" {
			return ""
		}
		if _, err := strconv.Atoi(strings.TrimSpace(v)); err != nil {
			return MsgInteger
		}
		return ""
	}
}

// Min checks a numeric lower bound. Non-numbers are left to Numeric.
func Min(limit float64, msg string) Rule {
	return func(v string) string {
		f, ok := parseFinite(v)
		if v == "" || !ok {
			return ""
		}
		if f < limit {
			return msg
		}
		return ""
	}
}

func Max(limit float64, msg string) Rule {
	return func(v string) string {
		f, ok := parseFinite(v)
		if v == "" || !ok {
			return ""
		}
		if f > limit {
			return msg
		}
		return ""
	}
}

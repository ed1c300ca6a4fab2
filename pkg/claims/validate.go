package claims

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	isoDatePattern = regexp.MustCompile(`^([0-9]{4})-([0-9]{2})-([0-9]{2})$`)
	e164Pattern    = regexp.MustCompile(`^\+[1-9][0-9]{1,14}$`)
	localePattern  = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2}|_[A-Z]{2})?$`)

	// Characters people use when displaying phone numbers.
	phoneFormatting = strings.NewReplacer(" ", "", "\t", "", "(", "", ")", "", "-", "")
)

var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Validate checks value against d's format rule. It returns nil when the
// value is acceptable and an *InvalidError otherwise.
func (d Definition) Validate(value any) error {
	if d.IsZero() {
		return invalid("", "unknown claim")
	}

	var reason string
	switch d.kind {
	case FreeText:
		reason = checkFreeText(value, d.structured)
	case Boolean:
		if _, ok := value.(bool); !ok {
			reason = "must be true or false"
		}
	case IsoDate:
		reason = checkString(value, checkIsoDate)
	case Email:
		reason = checkString(value, checkEmail)
	case URL:
		reason = checkString(value, checkURL)
	case E164Phone:
		reason = checkString(value, checkPhone)
	case BCP47Locale:
		reason = checkString(value, checkLocale)
	case UnixTimestamp:
		reason = checkTimestamp(value)
	case OpaqueIdentifier:
		reason = checkString(value, func(s string) string {
			if s == "" {
				return "must not be empty"
			}
			return ""
		})
	default:
		reason = "unsupported value kind"
	}

	if reason != "" {
		return invalid(d.key, reason)
	}
	return nil
}

func checkString(value any, check func(string) string) string {
	s, ok := value.(string)
	if !ok {
		return fmt.Sprintf("must be a string, got %T", value)
	}
	return check(s)
}

func checkFreeText(value any, structured bool) string {
	switch v := value.(type) {
	case string:
		return ""
	case PostalAddress, *PostalAddress:
		if structured {
			return ""
		}
	case map[string]any:
		if structured {
			return checkAddressMap(v)
		}
	}
	return fmt.Sprintf("must be a string, got %T", value)
}

func checkIsoDate(s string) string {
	m := isoDatePattern.FindStringSubmatch(s)
	if m == nil {
		return "must be formatted as YYYY-MM-DD"
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	if month < 1 || month > 12 {
		return "month must be between 01 and 12"
	}
	limit := daysInMonth[month]
	if month == 2 && isLeapYear(year) {
		limit = 29
	}
	if day < 1 || day > limit {
		return fmt.Sprintf("day must be between 01 and %02d", limit)
	}
	return ""
}

// isLeapYear treats 0000, the "year omitted" placeholder, as non-leap.
func isLeapYear(year int) bool {
	if year == 0 {
		return false
	}
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func checkEmail(s string) string {
	if strings.Count(s, "@") != 1 {
		return "must contain exactly one @"
	}
	local, domain, _ := strings.Cut(s, "@")
	if local == "" || domain == "" {
		return "local and domain parts must not be empty"
	}
	return ""
}

func checkURL(s string) string {
	u, err := url.Parse(s)
	if err != nil {
		return "must be a valid URL"
	}
	if !u.IsAbs() || u.Host == "" {
		return "must be an absolute URL"
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "scheme must be http or https"
	}
	return ""
}

func checkPhone(s string) string {
	if !e164Pattern.MatchString(phoneFormatting.Replace(s)) {
		return "must be an E.164 number such as +14255551212"
	}
	return ""
}

func checkLocale(s string) string {
	if !localePattern.MatchString(s) {
		return "must be a language tag such as en-US"
	}
	return ""
}

func checkTimestamp(value any) string {
	const msg = "must be a non-negative integer number of seconds"

	switch v := value.(type) {
	case int:
		if v < 0 {
			return msg
		}
	case int8:
		if v < 0 {
			return msg
		}
	case int16:
		if v < 0 {
			return msg
		}
	case int32:
		if v < 0 {
			return msg
		}
	case int64:
		if v < 0 {
			return msg
		}
	case uint, uint8, uint16, uint32, uint64:
	case float32:
		return checkIntegralFloat(float64(v), msg)
	case float64:
		return checkIntegralFloat(v, msg)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			if n < 0 {
				return msg
			}
			return ""
		}
		f, err := v.Float64()
		if err != nil {
			return msg
		}
		return checkIntegralFloat(f, msg)
	default:
		return msg
	}
	return ""
}

func checkIntegralFloat(f float64, msg string) string {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f != math.Trunc(f) {
		return msg
	}
	return ""
}

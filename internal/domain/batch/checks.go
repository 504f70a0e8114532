package batch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ttacon/libphonenumber"
	"github.com/xuri/excelize/v2"
)

// maxExcelSerial is the serial number of 9999-12-31, the last date Excel can hold.
const maxExcelSerial = 2958465

var (
	validate    = validator.New()
	dateLayouts = []string{time.DateOnly, "01/02/2006", "1/2/2006", "2006/01/02"}
)

// IsEmail reports whether v is a syntactically valid email address.
func IsEmail(v string) bool {
	return validate.Var(v, "required,email") == nil
}

// ParseDate accepts ISO dates, US slash dates and Excel serial numbers.
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}

	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 && serial <= maxExcelSerial {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", v)
}

// DateValue is ParseDate for already validated cells; blank or invalid yields nil.
func DateValue(v string) *time.Time {
	if v == "" {
		return nil
	}
	t, err := ParseDate(v)
	if err != nil {
		return nil
	}
	return &t
}

// ParseFlag reads a Y/N style cell. Blank returns def.
func ParseFlag(v string, def bool) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "":
		return def, nil
	case "Y", "YES", "TRUE", "1":
		return true, nil
	case "N", "NO", "FALSE", "0":
		return false, nil
	}
	return false, fmt.Errorf("unrecognized flag %q", v)
}

// FlagValue is ParseFlag for already validated cells.
func FlagValue(v string, def bool) bool {
	b, err := ParseFlag(v, def)
	if err != nil {
		return def
	}
	return b
}

// Email rejects a non-empty column that is not an email address.
func Email(column, code string) Check {
	return func(row Row, issues *Issues) {
		if v := row.Get(column); v != "" && !IsEmail(v) {
			issues.Error(code, column, "%q is not a valid email address", v)
		}
	}
}

// Digits rejects a non-empty column that is not exactly n decimal digits.
func Digits(column, code string, n int) Check {
	pattern := regexp.MustCompile(fmt.Sprintf(`^[0-9]{%d}$`, n))
	return func(row Row, issues *Issues) {
		if v := row.Get(column); v != "" && !pattern.MatchString(v) {
			issues.Error(code, column, "%q must be exactly %d digits", v, n)
		}
	}
}

// Date rejects a non-empty column that is not a recognizable date.
func Date(column, code string) Check {
	return func(row Row, issues *Issues) {
		if v := row.Get(column); v != "" {
			if _, err := ParseDate(v); err != nil {
				issues.Error(code, column, "%q is not a valid date, use YYYY-MM-DD", v)
			}
		}
	}
}

// Flag rejects a non-empty column that is not a Y/N value.
func Flag(column, code string) Check {
	return func(row Row, issues *Issues) {
		if v := row.Get(column); v != "" {
			if _, err := ParseFlag(v, false); err != nil {
				issues.Error(code, column, "%q must be Y or N", v)
			}
		}
	}
}

// OneOf rejects a non-empty column outside allowed. Matching ignores case.
func OneOf(column, code string, allowed ...string) Check {
	set := make(map[string]struct{}, len(allowed))
	for _, value := range allowed {
		set[strings.ToUpper(value)] = struct{}{}
	}
	return func(row Row, issues *Issues) {
		v := row.Get(column)
		if v == "" {
			return
		}
		if _, ok := set[strings.ToUpper(v)]; !ok {
			issues.Error(code, column, "%q must be one of %s", v, strings.Join(allowed, ", "))
		}
	}
}

// RequiredWhen requires column whenever when holds for the row.
func RequiredWhen(column, code string, when func(Row) bool, reason string) Check {
	return func(row Row, issues *Issues) {
		if row.Get(column) == "" && when(row) {
			issues.Error(code, column, "%s is required when %s", column, reason)
		}
	}
}

// FlagSet reports whether column holds a truthy flag.
func FlagSet(column string) func(Row) bool {
	return func(row Row) bool {
		b, err := ParseFlag(row.Get(column), false)
		return err == nil && b
	}
}

// Phone warns when a non-empty column is not a valid number for region.
func Phone(column, code, region string) Check {
	return func(row Row, issues *Issues) {
		v := row.Get(column)
		if v == "" {
			return
		}
		number, err := libphonenumber.Parse(v, region)
		if err != nil || !libphonenumber.IsValidNumber(number) {
			issues.Warn(code, column, "%q is not a recognized phone number", v)
		}
	}
}

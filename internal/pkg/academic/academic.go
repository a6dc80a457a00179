package academic

import (
	"fmt"
	"strings"
	"time"
)

// Session returns the academic-year label for the given time in
// "YYYY-YY" form, e.g. 2026 -> "2026-27".
func Session(t time.Time) string {
	year := t.Year()
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// bengaliDigits maps Western digits to Bengali numerals.
var bengaliDigits = map[rune]rune{
	'0': '০', '1': '১', '2': '২', '3': '৩', '4': '৪',
	'5': '৫', '6': '৬', '7': '৭', '8': '৮', '9': '৯',
}

// ToBengaliDigits replaces Western digits in s with Bengali numerals.
func ToBengaliDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if b, ok := bengaliDigits[r]; ok {
			return b
		}
		return r
	}, s)
}

// LocalDate renders t as a bn-BD localized date string (D/M/YYYY with
// Bengali numerals), the format the admission records carry.
func LocalDate(t time.Time) string {
	return ToBengaliDigits(fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year()))
}

// Package hijri converts between the civil Gregorian calendar and the
// tabular Hijri calendar, and computes lunar-year (hawl) boundaries.
//
// The Hijri calendar implemented here is the arithmetical "civil" one:
// months alternate 30 and 29 days, the last month gains a day in
// intercalary years, and intercalary years are the 11 years
// {2,5,7,10,13,16,18,21,24,26,29} of a fixed 30-year cycle. The epoch
// is Friday 16 July 622 CE (Julian), JDN 1948440. This rule can differ
// by a day or two from locally announced moon sightings, which is why
// every conversion takes an explicit adjustment in days.
package hijri

import (
	"fmt"
	"time"
)

// hijriEpoch is the Julian Day Number of 1 Muharram, AH 1 (civil epoch).
const hijriEpoch = 1948440

// MonthNames holds the Hijri month names, index 0 is Muharram.
var MonthNames = [12]string{
	"Muharram", "Safar", "Rabi al-Awwal", "Rabi al-Thani",
	"Jumada al-Awwal", "Jumada al-Thani", "Rajab", "Shaban",
	"Ramadan", "Shawwal", "Dhu al-Qadah", "Dhu al-Hijjah",
}

// HijriDate is a date in the tabular Hijri calendar.
//
// Values are produced by FromGregorian or NewHijriDate; never build one
// by hand from unchecked input, an out-of-range hawl boundary has real
// consequences downstream.
type HijriDate struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1 (Muharram) to 12 (Dhu al-Hijjah)
	Day   int `json:"day"`   // 1 to 30
}

// InvalidDateError reports a Hijri date outside the calendar's domain.
// Dates are never silently clamped.
type InvalidDateError struct {
	Year, Month, Day int
	Reason           string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid hijri date %d-%02d-%02d: %s", e.Year, e.Month, e.Day, e.Reason)
}

// NewHijriDate validates the given components and returns a HijriDate.
func NewHijriDate(year, month, day int) (HijriDate, error) {
	if err := validate(year, month, day); err != nil {
		return HijriDate{}, err
	}
	return HijriDate{Year: year, Month: month, Day: day}, nil
}

func validate(year, month, day int) error {
	switch {
	case year < 1:
		return &InvalidDateError{year, month, day, "year before AH 1"}
	case month < 1 || month > 12:
		return &InvalidDateError{year, month, day, "month out of range 1-12"}
	case day < 1 || day > 30:
		return &InvalidDateError{year, month, day, "day out of range 1-30"}
	}
	return nil
}

// IsLeapYear reports whether the Hijri year is intercalary under the
// 30-year cycle rule (years {2,5,7,10,13,16,18,21,24,26,29}).
func IsLeapYear(year int) bool {
	y := ((year % 30) + 30) % 30
	return (11*y+14)%30 < 11
}

// MonthLength returns the number of days of a Hijri month in a given year.
// Odd months have 30 days, even months 29, and Dhu al-Hijjah 30 in leap years.
func MonthLength(year, month int) int {
	if month%2 == 1 || (month == 12 && IsLeapYear(year)) {
		return 30
	}
	return 29
}

// gregorianJDN returns the Julian Day Number of a civil date.
func gregorianJDN(d Date) int {
	a := (14 - int(d.Month())) / 12
	y := d.Year() + 4800 - a
	m := int(d.Month()) + 12*a - 3
	return d.Day() + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// jdnGregorian returns the civil date of a Julian Day Number.
func jdnGregorian(jdn int) Date {
	a := jdn + 32044
	b := (4*a + 3) / 146097
	c := a - 146097*b/4
	e := (4*c + 3) / 1461
	f := c - 1461*e/4
	g := (5*f + 2) / 153
	day := f - (153*g+2)/5 + 1
	month := g + 3 - 12*(g/10)
	year := 100*b + e - 4800 + g/10
	return New(year, time.Month(month), day)
}

// hijriJDN returns the Julian Day Number of a tabular Hijri date. The
// formula is purely arithmetic: a day count past the end of a month
// resolves into the following month by the cycle rule itself, which is
// how day 30 of a 29-day Dhu al-Hijjah is settled.
func hijriJDN(year, month, day int) int {
	return day + (59*(month-1)+1)/2 + 354*(year-1) + (3+11*year)/30 + hijriEpoch - 1
}

// jdnHijri returns the tabular Hijri date of a Julian Day Number.
func jdnHijri(jdn int) HijriDate {
	l := jdn - hijriEpoch + 10632
	n := (l - 1) / 10631
	l = l - 10631*n + 354
	j := ((10985-l)/5316)*((50*l)/17719) + (l/5670)*((43*l)/15238)
	l = l - ((30-j)/15)*((17719*j)/50) - (j/16)*((15238*j)/43) + 29
	m := (24 * l) / 709
	d := l - (709*m)/24
	y := 30*n + j - 30
	return HijriDate{Year: y, Month: m, Day: d}
}

// FromGregorian converts a civil date to the tabular Hijri calendar.
//
// adjustmentDays reconciles the tabular rule with locally announced
// moon sightings. It is applied to the Gregorian date before the
// conversion; the same value must be passed to ToGregorian for a round
// trip to be exact. It is a parameter, not stored state, so that an
// asymmetric adjustment never creeps silently into one direction only.
func FromGregorian(d Date, adjustmentDays int) HijriDate {
	return jdnHijri(gregorianJDN(d.Add(adjustmentDays)))
}

// ToGregorian converts the Hijri date back to the civil calendar,
// undoing the given sighting adjustment. It returns an
// *InvalidDateError when a component is out of range.
func (h HijriDate) ToGregorian(adjustmentDays int) (Date, error) {
	if err := validate(h.Year, h.Month, h.Day); err != nil {
		return Date{}, err
	}
	return jdnGregorian(hijriJDN(h.Year, h.Month, h.Day)).Add(-adjustmentDays), nil
}

// AddHawl returns the civil date exactly one Hijri year after start:
// same Hijri month and day, year incremented. This is the hawl
// boundary; a fixed 354 or 365 day offset would drift ~11 days per
// solar year and is wrong, not approximate.
func AddHawl(start Date, adjustmentDays int) Date {
	h := FromGregorian(start, adjustmentDays)
	// The arithmetic formula resolves day 30 of a common-year
	// Dhu al-Hijjah into 1 Muharram of the next year.
	return jdnGregorian(hijriJDN(h.Year+1, h.Month, h.Day)).Add(-adjustmentDays)
}

// String formats the date like "15 Ramadan 1445 AH".
func (h HijriDate) String() string {
	name := "?"
	if h.Month >= 1 && h.Month <= 12 {
		name = MonthNames[h.Month-1]
	}
	return fmt.Sprintf("%d %s %d AH", h.Day, name, h.Year)
}

// FormatDual renders a civil date together with its Hijri equivalent,
// like "2024-03-25 (15 Ramadan 1445 AH)".
func FormatDual(d Date, adjustmentDays int) string {
	return fmt.Sprintf("%s (%s)", d, FromGregorian(d, adjustmentDays))
}

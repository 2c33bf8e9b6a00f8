package hijri

import (
	"errors"
	"testing"
	"time"
)

// Reference anchors for the civil tabular calendar.
var anchors = []struct {
	greg  Date
	hijri HijriDate
}{
	{New(622, time.July, 19), HijriDate{1, 1, 1}},       // epoch (proleptic Gregorian)
	{New(2023, time.July, 19), HijriDate{1445, 1, 1}},   // 1 Muharram 1445
	{New(2024, time.March, 25), HijriDate{1445, 9, 15}}, // 15 Ramadan 1445
	{New(2024, time.July, 7), HijriDate{1445, 12, 30}},  // leap year, Dhu al-Hijjah has 30 days
	{New(2024, time.July, 8), HijriDate{1446, 1, 1}},
	{New(2025, time.March, 1), HijriDate{1446, 9, 1}}, // 1 Ramadan 1446
}

func TestFromGregorian(t *testing.T) {
	for _, a := range anchors {
		if got := FromGregorian(a.greg, 0); got != a.hijri {
			t.Errorf("FromGregorian(%s) = %v, want %v", a.greg, got, a.hijri)
		}
	}
}

func TestToGregorian(t *testing.T) {
	for _, a := range anchors {
		got, err := a.hijri.ToGregorian(0)
		if err != nil {
			t.Fatalf("ToGregorian(%v): %v", a.hijri, err)
		}
		if got != a.greg {
			t.Errorf("ToGregorian(%v) = %s, want %s", a.hijri, got, a.greg)
		}
	}
}

// TestRoundTrip checks the stability law: converting any civil day to
// Hijri and back yields the same day, for every adjustment.
func TestRoundTrip(t *testing.T) {
	for _, adj := range []int{-2, -1, 0, 1, 2} {
		d := New(1990, time.January, 1)
		end := New(2080, time.January, 1)
		for d.Before(end) {
			h := FromGregorian(d, adj)
			back, err := h.ToGregorian(adj)
			if err != nil {
				t.Fatalf("round trip %s adj=%d: %v", d, adj, err)
			}
			if back != d {
				t.Fatalf("round trip %s adj=%d: got %s via %v", d, adj, back, h)
			}
			d = d.Add(17) // prime stride covers all weekdays and month offsets
		}
	}
}

func TestToGregorianInvalid(t *testing.T) {
	tests := []HijriDate{
		{0, 1, 1},
		{-10, 1, 1},
		{1445, 0, 1},
		{1445, 13, 1},
		{1445, 1, 0},
		{1445, 1, 31},
	}
	for _, h := range tests {
		if _, err := h.ToGregorian(0); err == nil {
			t.Errorf("ToGregorian(%v): want error, got none", h)
		} else {
			var ide *InvalidDateError
			if !errors.As(err, &ide) {
				t.Errorf("ToGregorian(%v): error %v is not *InvalidDateError", h, err)
			}
		}
	}
}

func TestNewHijriDate(t *testing.T) {
	if _, err := NewHijriDate(1445, 9, 15); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	if _, err := NewHijriDate(1445, 9, 31); err == nil {
		t.Fatal("day 31 accepted")
	}
}

// TestAddHawl checks the hawl law: one Hijri year later, same Hijri
// month and day. The civil gap is about 354-355 days, never a fixed one.
func TestAddHawl(t *testing.T) {
	d := New(1995, time.June, 1)
	end := New(2060, time.June, 1)
	for d.Before(end) {
		h := FromGregorian(d, 0)
		got := FromGregorian(AddHawl(d, 0), 0)
		if h.Month == 12 && h.Day == 30 && !IsLeapYear(h.Year+1) {
			// The only day with no same-numbered day next year; the
			// cycle arithmetic resolves it to 1 Muharram of the year after.
			want := HijriDate{h.Year + 2, 1, 1}
			if got != want {
				t.Errorf("AddHawl(%s) from %v = %v, want %v", d, h, got, want)
			}
		} else if got.Year != h.Year+1 || got.Month != h.Month || got.Day != h.Day {
			t.Errorf("AddHawl(%s) from %v = %v, want year+1 same month/day", d, h, got)
		}
		d = d.Add(13)
	}
}

func TestAddHawlExample(t *testing.T) {
	// 15 Ramadan 1445 -> 15 Ramadan 1446.
	start := New(2024, time.March, 25)
	want := New(2025, time.March, 15)
	if got := AddHawl(start, 0); got != want {
		t.Errorf("AddHawl(%s) = %s, want %s", start, got, want)
	}
}

// TestAdjustmentSymmetry checks that the sighting adjustment shifts the
// conversion input, and that it never leaks into a round trip.
func TestAdjustmentSymmetry(t *testing.T) {
	d := New(2024, time.March, 25)
	if FromGregorian(d, 1) != FromGregorian(d.Add(1), 0) {
		t.Error("adjustment must shift the Gregorian date before converting")
	}
	h := FromGregorian(d, -2)
	back, err := h.ToGregorian(-2)
	if err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("adjusted round trip drifted: got %s want %s", back, d)
	}
}

func TestMonthLength(t *testing.T) {
	if !IsLeapYear(1445) || IsLeapYear(1446) {
		t.Fatal("1445 is intercalary, 1446 is not")
	}
	tests := []struct {
		year, month, want int
	}{
		{1446, 1, 30},
		{1446, 2, 29},
		{1446, 9, 30},
		{1445, 12, 30},
		{1446, 12, 29},
	}
	for _, tt := range tests {
		if got := MonthLength(tt.year, tt.month); got != tt.want {
			t.Errorf("MonthLength(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestFormatting(t *testing.T) {
	h := HijriDate{1445, 9, 15}
	if got, want := h.String(), "15 Ramadan 1445 AH"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	d := New(2024, time.March, 25)
	if got, want := FormatDual(d, 0), "2024-03-25 (15 Ramadan 1445 AH)"; got != want {
		t.Errorf("FormatDual() = %q, want %q", got, want)
	}
}

package cmd

import (
	"errors"
	"testing"

	"github.com/nisabi/zakat"
	"github.com/nisabi/zakat/hijri"
)

func TestParseHijri(t *testing.T) {
	h, err := parseHijri("1445-9-15")
	if err != nil {
		t.Fatal(err)
	}
	want := hijri.HijriDate{Year: 1445, Month: 9, Day: 15}
	if h != want {
		t.Errorf("parseHijri(1445-9-15) = %v, want %v", h, want)
	}

	if _, err := parseHijri("1445-13-1"); err == nil {
		t.Error("parseHijri accepted month 13")
	}
	var invalid *hijri.InvalidDateError
	if _, err := parseHijri("1445-13-1"); !errors.As(err, &invalid) {
		t.Errorf("want InvalidDateError, got %v", err)
	}
	if _, err := parseHijri("not a date"); err == nil {
		t.Error("parseHijri accepted garbage")
	}
}

func TestNewEvaluatorFixedPrices(t *testing.T) {
	oldGold, oldSilver := *goldPrice, *silverPrice
	defer func() { *goldPrice, *silverPrice = oldGold, oldSilver }()

	*goldPrice, *silverPrice = 100, 1.2
	threshold, err := newEvaluator().Threshold(zakat.GoldBasis, *currencyCode)
	if err != nil {
		t.Fatal(err)
	}
	if want := zakat.M(8500, *currencyCode); !threshold.Amount.Equal(want) {
		t.Errorf("gold nisab = %s, want %s", threshold.Amount, want)
	}
}

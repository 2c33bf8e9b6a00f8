package zakat

import (
	"errors"
	"testing"
	"time"
)

// countingSource wraps a fixed quote and counts calls, to observe the
// evaluator's reuse window.
type countingSource struct {
	quote PriceQuote
	err   error
	calls int
}

func (s *countingSource) Quote(basis MetalBasis, currency string) (PriceQuote, error) {
	s.calls++
	if s.err != nil {
		return PriceQuote{}, s.err
	}
	q := s.quote
	q.Basis = basis
	return q, nil
}

func TestThresholdAmounts(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		basis MetalBasis
		price Money
		want  Money
	}{
		{GoldBasis, USD(100), USD(8500)}, // 85 g
		{SilverBasis, USD(1), USD(595)},  // 595 g
		{SilverBasis, USD(0.8), USD(476)},
	}
	for _, tt := range tests {
		src := &countingSource{quote: PriceQuote{PricePerGram: tt.price, FetchedAt: now}}
		e := NewEvaluator(src)
		e.now = func() time.Time { return now }
		thr, err := e.Threshold(tt.basis, "USD")
		if err != nil {
			t.Fatal(err)
		}
		if !thr.Amount.Equal(tt.want) {
			t.Errorf("%s nisab at %s/g = %s, want %s", tt.basis, tt.price, thr.Amount, tt.want)
		}
		if thr.Stale {
			t.Errorf("fresh quote flagged stale")
		}
	}
}

func TestThresholdStaleness(t *testing.T) {
	now := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	fetched := now.Add(-8 * 24 * time.Hour)
	src := &countingSource{quote: PriceQuote{PricePerGram: USD(100), FetchedAt: fetched}}
	e := NewEvaluator(src)
	e.now = func() time.Time { return now }

	thr, err := e.Threshold(GoldBasis, "USD")
	if err != nil {
		t.Fatal(err)
	}
	if !thr.Stale {
		t.Error("8 day old quote must be flagged stale")
	}
	// Advisory only: the amount still computes.
	if !thr.Amount.Equal(USD(8500)) {
		t.Errorf("stale threshold amount = %s, want %s", thr.Amount, USD(8500))
	}
	if !thr.FetchedAt.Equal(fetched) {
		t.Error("FetchedAt must expose the observation time")
	}
}

// TestQuoteReuse checks that reuse is bounded to 24h and orthogonal to
// the 7 day staleness flag.
func TestQuoteReuse(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	src := &countingSource{quote: PriceQuote{PricePerGram: USD(100), FetchedAt: now}}
	e := NewEvaluator(src)
	e.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if _, err := e.Threshold(GoldBasis, "USD"); err != nil {
			t.Fatal(err)
		}
	}
	if src.calls != 1 {
		t.Errorf("source called %d times within the reuse window, want 1", src.calls)
	}

	// A different basis is a different cache entry.
	if _, err := e.Threshold(SilverBasis, "USD"); err != nil {
		t.Fatal(err)
	}
	if src.calls != 2 {
		t.Errorf("source called %d times, want 2 after second basis", src.calls)
	}

	// Past the reuse window the source is consulted again.
	later := now.Add(25 * time.Hour)
	e.now = func() time.Time { return later }
	src.quote.FetchedAt = later
	if _, err := e.Threshold(GoldBasis, "USD"); err != nil {
		t.Fatal(err)
	}
	if src.calls != 3 {
		t.Errorf("source called %d times, want 3 after reuse expiry", src.calls)
	}
}

// TestSourceFailure checks that a failing source surfaces the error and
// never falls back to an expired cache entry.
func TestSourceFailure(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	boom := errors.New("price api down")
	src := &countingSource{quote: PriceQuote{PricePerGram: USD(100), FetchedAt: now}}
	e := NewEvaluator(src)
	e.now = func() time.Time { return now }

	if _, err := e.Threshold(GoldBasis, "USD"); err != nil {
		t.Fatal(err)
	}

	// Expire the reuse window, then break the source.
	e.now = func() time.Time { return now.Add(25 * time.Hour) }
	src.err = boom
	_, err := e.Threshold(GoldBasis, "USD")
	if !errors.Is(err, boom) {
		t.Errorf("want the source error surfaced, got %v", err)
	}
}

func TestFixedPriceSource(t *testing.T) {
	src := FixedPriceSource{SilverBasis: USD(0.9)}
	q, err := src.Quote(SilverBasis, "USD")
	if err != nil {
		t.Fatal(err)
	}
	if !q.PricePerGram.Equal(USD(0.9)) {
		t.Errorf("PricePerGram = %s", q.PricePerGram)
	}
	if _, err := src.Quote(GoldBasis, "USD"); err == nil {
		t.Error("missing basis must error, never fabricate")
	}
	if _, err := src.Quote(SilverBasis, "EUR"); err == nil {
		t.Error("currency mismatch must error")
	}
}

func TestStandardWeights(t *testing.T) {
	if !GoldBasis.StandardWeight().Equal(F(85)) {
		t.Errorf("gold weight = %s, want 85", GoldBasis.StandardWeight())
	}
	if !SilverBasis.StandardWeight().Equal(F(595)) {
		t.Errorf("silver weight = %s, want 595", SilverBasis.StandardWeight())
	}
}

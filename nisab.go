package zakat

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// MetalBasis selects the precious metal whose market value denominates
// the nisab threshold.
type MetalBasis string

const (
	GoldBasis   MetalBasis = "gold"
	SilverBasis MetalBasis = "silver"
)

// ParseMetalBasis parses a basis name.
func ParseMetalBasis(s string) (MetalBasis, error) {
	switch MetalBasis(s) {
	case GoldBasis:
		return GoldBasis, nil
	case SilverBasis:
		return SilverBasis, nil
	default:
		return "", fmt.Errorf("unknown nisab basis: %q", s)
	}
}

// Canonical nisab weights: 20 mithqal of gold and 200 dirham of silver
// in the 85g-mithqal convention. These are the only weight constants in
// the codebase; every nisab computation goes through StandardWeight.
var (
	nisabGoldGrams   = F(85)
	nisabSilverGrams = F(595)
)

// StandardWeight returns the canonical metal weight, in grams, that
// defines the nisab for the basis.
func (b MetalBasis) StandardWeight() Fraction {
	if b == SilverBasis {
		return nisabSilverGrams
	}
	return nisabGoldGrams
}

// PriceQuote is one per-gram market price observation from a price
// source.
type PriceQuote struct {
	Basis        MetalBasis `json:"basis"`
	PricePerGram Money      `json:"pricePerGram"`
	FetchedAt    time.Time  `json:"fetchedAt"`
}

// PriceSource supplies metal market prices. Implementations must return
// an error on failure, never a fabricated or silently-cached price.
type PriceSource interface {
	Quote(basis MetalBasis, currency string) (PriceQuote, error)
}

// staleAfter is how old a quote may be before the threshold is flagged
// stale. Advisory: a stale threshold still computes.
const staleAfter = 7 * 24 * time.Hour

// reuseFor is how long the evaluator serves a previous quote before
// calling the source again. Reuse is orthogonal to staleness.
const reuseFor = 24 * time.Hour

// NisabThreshold is the minimum-wealth threshold expressed in the
// reporting currency. It is recomputed on demand and never persisted.
type NisabThreshold struct {
	Amount       Money      `json:"amount"`
	Basis        MetalBasis `json:"basis"`
	PricePerGram Money      `json:"pricePerGram"`
	FetchedAt    time.Time  `json:"fetchedAt"`
	Stale        bool       `json:"stale"`
}

// Evaluator turns metal price quotes into nisab thresholds. It keeps
// the last quote per basis and currency for a bounded period to avoid
// redundant source calls.
type Evaluator struct {
	source PriceSource

	mu    sync.Mutex
	cache map[string]PriceQuote

	now func() time.Time // test hook
}

// NewEvaluator returns an Evaluator backed by the given price source.
func NewEvaluator(source PriceSource) *Evaluator {
	return &Evaluator{
		source: source,
		cache:  make(map[string]PriceQuote),
		now:    time.Now,
	}
}

// Threshold computes the nisab for the basis in the given currency:
// per-gram price times the canonical weight. The quote may be reused
// from a recent call; the threshold's FetchedAt always tells which
// observation produced it, and Stale flags quotes older than a week.
func (e *Evaluator) Threshold(basis MetalBasis, currency string) (NisabThreshold, error) {
	q, err := e.quote(basis, currency)
	if err != nil {
		return NisabThreshold{}, fmt.Errorf("cannot evaluate %s nisab: %w", basis, err)
	}
	now := e.now()
	return NisabThreshold{
		Amount:       q.PricePerGram.Mul(basis.StandardWeight()),
		Basis:        basis,
		PricePerGram: q.PricePerGram,
		FetchedAt:    q.FetchedAt,
		Stale:        now.Sub(q.FetchedAt) > staleAfter,
	}, nil
}

func (e *Evaluator) quote(basis MetalBasis, currency string) (PriceQuote, error) {
	key := string(basis) + "/" + currency
	e.mu.Lock()
	cached, ok := e.cache[key]
	e.mu.Unlock()
	if ok && e.now().Sub(cached.FetchedAt) <= reuseFor {
		return cached, nil
	}

	q, err := e.source.Quote(basis, currency)
	if err != nil {
		// No fallback to the expired cache entry: a threshold from a
		// fabricated or silently reheated price is worse than an error.
		return PriceQuote{}, err
	}
	if q.FetchedAt.IsZero() {
		q.FetchedAt = e.now()
	}
	if ok {
		log.Printf("refreshed %s quote, previous was from %s", key, cached.FetchedAt.Format(time.RFC3339))
	}
	e.mu.Lock()
	e.cache[key] = q
	e.mu.Unlock()
	return q, nil
}

// FixedPriceSource returns the same quote every time. It backs offline
// use, where the user types the price found in a local listing.
type FixedPriceSource map[MetalBasis]Money

// Quote implements PriceSource.
func (s FixedPriceSource) Quote(basis MetalBasis, currency string) (PriceQuote, error) {
	price, ok := s[basis]
	if !ok {
		return PriceQuote{}, fmt.Errorf("no fixed price for %s", basis)
	}
	if price.Currency() != "" && price.Currency() != currency {
		return PriceQuote{}, fmt.Errorf("fixed %s price is in %s, want %s", basis, price.Currency(), currency)
	}
	return PriceQuote{Basis: basis, PricePerGram: M(price.Decimal(), currency), FetchedAt: time.Now()}, nil
}

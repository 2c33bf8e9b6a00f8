package zakat

import (
	"encoding/json"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with arbitrary-precision arithmetic.
// Every currency-bearing computation in this package goes through it;
// float64 drift across repeated percentage operations is not acceptable
// for amounts that decide a religious obligation.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// ParseAmount parses a raw amount as typed in a form field. Empty,
// unparsable, or non-finite input yields a zero amount, never an error:
// upstream forms are frequently half-entered and the calculators must
// tolerate that.
func ParseAmount(raw, currency string) Money {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return M(0, currency)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return M(0, currency)
	}
	return Money{value: d, cur: currency}
}

// currency returns the money's currency metadata.
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the money formatted for its currency, like "$2,250.00".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }

// binary operators.
func (m Money) Add(n Money) Money        { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money        { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }
func (m Money) Mul(f Fraction) Money     { return Money{value: m.value.Mul(f.value), cur: m.cur} }
func (m Money) Round(places int32) Money { return Money{value: m.value.Round(places), cur: m.cur} }

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + " != " + b.cur)
	}
	return a.cur
}

// MarshalJSON persists the amount rounded to the currency's fraction.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", m.value.Round(int32(m.currency().Fraction)))
	return w.MarshalJSON()
}

// UnmarshalJSON reads the {amount, currency} form written by MarshalJSON.
func (m *Money) UnmarshalJSON(b []byte) error {
	var raw struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	m.value, m.cur = raw.Amount, raw.Currency
	return nil
}

// Fraction is a unitless arbitrary-precision factor: a calculation
// modifier, a gram weight, a rate.
type Fraction struct {
	value decimal.Decimal
}

func F[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Fraction {
	return Fraction{value: newDecimal(value)}
}

func (f Fraction) Equal(g Fraction) bool       { return f.value.Equal(g.value) }
func (f Fraction) IsZero() bool                { return f.value.IsZero() }
func (f Fraction) IsNegative() bool            { return f.value.IsNegative() }
func (f Fraction) GreaterThan(g Fraction) bool { return f.value.GreaterThan(g.value) }
func (f Fraction) String() string              { return f.value.String() }

// One is the identity modifier.
var One = F(1)

// MarshalJSON implements the json.Marshaler interface.
func (f Fraction) MarshalJSON() ([]byte, error)  { return f.value.MarshalJSON() }
func (f *Fraction) UnmarshalJSON(b []byte) error { return f.value.UnmarshalJSON(b) }

// zakatRate is the fixed obligation rate: 2.5% of zakatable wealth.
var zakatRate = F(decimal.New(25, -3))

// ZakatDue computes the obligation on the given zakatable wealth at the
// fixed 2.5% rate, exactly and with no intermediate rounding.
func ZakatDue(zakatable Money) Money { return zakatable.Mul(zakatRate) }

// ZakatableWealth returns max(0, assets - liabilities). Net wealth is
// never negative for obligation purposes.
func ZakatableWealth(totalAssets, totalLiabilities Money) Money {
	net := totalAssets.Sub(totalLiabilities)
	if net.IsNegative() {
		return M(0, net.Currency())
	}
	return net
}

// MeetsNisab reports whether wealth reaches the threshold. The boundary
// is inclusive: wealth exactly at nisab triggers the obligation.
func MeetsNisab(wealth, threshold Money) bool {
	return wealth.GreaterThanOrEqual(threshold)
}

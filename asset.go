package zakat

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AssetType classifies an asset for eligibility defaults and breakdown
// reporting.
type AssetType string

const (
	Cash           AssetType = "cash"
	Gold           AssetType = "gold"
	Silver         AssetType = "silver"
	Investment     AssetType = "investment"
	Retirement     AssetType = "retirement"
	Cryptocurrency AssetType = "cryptocurrency"
	RealEstate     AssetType = "real-estate"
	Receivable     AssetType = "receivable"
	Other          AssetType = "other"
)

// RetirementTreatment is the chosen financial treatment of a restricted
// account. It is one axis; the methodology is the other. The two never
// collapse into a single flag: the treatment decides how much of the
// balance counts, the methodology decides whether a type counts at all.
type RetirementTreatment string

const (
	// TreatFull counts the whole balance.
	TreatFull RetirementTreatment = "full"
	// TreatNetValue deducts an estimated tax and withdrawal cost.
	TreatNetValue RetirementTreatment = "net-value"
	// TreatPassive counts a proxy for the underlying zakatable assets of
	// a buy-and-hold vehicle.
	TreatPassive RetirementTreatment = "passive"
	// TreatDeferred counts nothing while there is no current access.
	TreatDeferred RetirementTreatment = "deferred"
)

// Modifier returns the treatment fraction of the balance that counts
// toward zakatable wealth.
func (t RetirementTreatment) Modifier() Fraction {
	switch t {
	case TreatNetValue:
		return F(0.7)
	case TreatPassive:
		return F(0.3)
	case TreatDeferred:
		return F(0)
	default: // TreatFull and unset
		return One
	}
}

// ParseRetirementTreatment parses a treatment name; empty means unset.
func ParseRetirementTreatment(s string) (RetirementTreatment, error) {
	switch RetirementTreatment(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", nil
	case TreatFull:
		return TreatFull, nil
	case TreatNetValue:
		return TreatNetValue, nil
	case TreatPassive:
		return TreatPassive, nil
	case TreatDeferred:
		return TreatDeferred, nil
	default:
		return "", fmt.Errorf("unknown retirement treatment: %q", s)
	}
}

// Asset is one holding in the portfolio. Assets are owned by their
// repository; the calculation core reads them as an immutable snapshot
// and never writes back.
type Asset struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name"`
	Type                AssetType           `json:"type"`
	Value               Money               `json:"value"`
	ZakatEligible       bool                `json:"zakatEligible"`
	CalculationModifier Fraction            `json:"calculationModifier,omitempty"`
	PassiveInvestment   bool                `json:"passiveInvestment,omitempty"`
	RestrictedAccount   bool                `json:"restrictedAccount,omitempty"`
	RetirementTreatment RetirementTreatment `json:"retirementTreatment,omitempty"`
	Archived            bool                `json:"archived,omitempty"`
}

// Modifier returns the effective treatment fraction for the asset. An
// explicit retirement treatment wins; otherwise the stored modifier,
// defaulting to 1 when unset. A zero modifier means unset, not "count
// nothing": the deferred treatment is the way to count nothing, and a
// decoded zero must not silently erase an asset's value. The calculator
// is agnostic to how the fraction was derived, it only multiplies.
func (a Asset) Modifier() Fraction {
	if a.RetirementTreatment != "" {
		return a.RetirementTreatment.Modifier()
	}
	if a.CalculationModifier.IsZero() {
		return One
	}
	return a.CalculationModifier
}

// MarshalJSON keeps an unset modifier out of the data files; omitempty
// cannot do that for a struct field.
func (a Asset) MarshalJSON() ([]byte, error) {
	type asset Asset
	out := struct {
		asset
		CalculationModifier *Fraction `json:"calculationModifier,omitempty"`
	}{asset: asset(a)}
	if !a.CalculationModifier.IsZero() {
		out.CalculationModifier = &a.CalculationModifier
	}
	return json.Marshal(out)
}

// Validate checks the asset fields that the calculators rely on.
func (a Asset) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("asset %q: missing id", a.Name)
	}
	m := a.Modifier()
	if m.IsNegative() || m.GreaterThan(One) {
		return fmt.Errorf("asset %q: calculation modifier %s out of range [0,1]", a.Name, m)
	}
	return nil
}

// Liability is a debt deducted from total wealth before the obligation
// is assessed.
type Liability struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount Money  `json:"amount"`
}

// TotalLiabilities sums all liability amounts.
func TotalLiabilities(liabilities []Liability) Money {
	var total Money
	for _, l := range liabilities {
		total = total.Add(l.Amount)
	}
	return total
}

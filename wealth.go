package zakat

// WealthSummary is the result of one wealth computation: the gross
// total and the part of it that is zakatable under the chosen
// methodology. Both are precision-safe values.
type WealthSummary struct {
	TotalWealth     Money `json:"totalWealth"`
	ZakatableWealth Money `json:"zakatableWealth"`
}

// Eligible reports whether the asset counts toward zakatable wealth
// under the given methodology. Gold and silver are the ambiguous types:
// Standard and Hanafi treat them as always zakatable, personal use
// included; Shafi exempts personal jewelry unless the asset explicitly
// opts in. Every other type follows the asset's own flag.
func Eligible(a Asset, m Methodology) bool {
	switch a.Type {
	case Gold, Silver:
		if m == Standard || m == Hanafi {
			return true
		}
		return a.ZakatEligible
	default:
		return a.ZakatEligible
	}
}

// ComputeWealth computes total and zakatable wealth from an asset list.
// It is a pure function: no I/O, no mutation of the assets.
//
// Total wealth sums the value of every non-archived asset
// unconditionally. Zakatable wealth sums value x modifier over the
// assets that are eligible under the methodology.
func ComputeWealth(assets []Asset, m Methodology) WealthSummary {
	var total, zakatable Money
	for _, a := range assets {
		if a.Archived {
			continue
		}
		total = total.Add(a.Value)
		if Eligible(a, m) {
			zakatable = zakatable.Add(a.Value.Mul(a.Modifier()))
		}
	}
	return WealthSummary{TotalWealth: total, ZakatableWealth: zakatable}
}

// BreakdownByType sums non-archived asset values per asset type, in the
// order types first appear. Used for reporting and snapshots.
func BreakdownByType(assets []Asset) ([]AssetType, map[AssetType]Money) {
	var order []AssetType
	totals := make(map[AssetType]Money)
	for _, a := range assets {
		if a.Archived {
			continue
		}
		if _, seen := totals[a.Type]; !seen {
			order = append(order, a.Type)
		}
		totals[a.Type] = totals[a.Type].Add(a.Value)
	}
	return order, totals
}

package zakat

import (
	"fmt"
	"time"

	"github.com/nisabi/zakat/hijri"
)

// RecordStatus is the lifecycle state of an obligation record.
//
// Draft -> Finalized -> Unlocked -> Finalized (re-finalize). Draft is
// the only deletable state.
type RecordStatus string

const (
	Draft     RecordStatus = "draft"
	Finalized RecordStatus = "finalized"
	Unlocked  RecordStatus = "unlocked"
)

// ParseRecordStatus parses a status name.
func ParseRecordStatus(s string) (RecordStatus, error) {
	switch RecordStatus(s) {
	case Draft:
		return Draft, nil
	case Finalized:
		return Finalized, nil
	case Unlocked:
		return Unlocked, nil
	default:
		return "", fmt.Errorf("unknown record status: %q", s)
	}
}

// AssetSnapshot is one line of a record's asset breakdown, captured at
// computation time. Once the record is finalized the snapshot never
// changes except through an explicit unlock, edit, re-finalize cycle.
type AssetSnapshot struct {
	AssetID    string    `json:"assetId"`
	Name       string    `json:"name"`
	Category   AssetType `json:"category"`
	Value      Money     `json:"value"`
	Eligible   bool      `json:"eligible"`
	Modifier   Fraction  `json:"modifier"`
	CapturedAt time.Time `json:"capturedAt"`
}

// ObligationRecord is the yearly record of one hawl period: the wealth
// observed, the threshold in force, and the amount due.
type ObligationRecord struct {
	ID     string       `json:"id"`
	Status RecordStatus `json:"status"`

	HawlStart      hijri.Date `json:"hawlStart"`
	HawlEnd        hijri.Date `json:"hawlEnd"`
	AdjustmentDays int        `json:"adjustmentDays,omitempty"`

	Currency    string      `json:"currency"`
	Methodology Methodology `json:"methodology"`
	Basis       MetalBasis  `json:"basis"`

	TotalWealth      Money `json:"totalWealth"`
	TotalLiabilities Money `json:"totalLiabilities"`
	ZakatableWealth  Money `json:"zakatableWealth"`
	NisabAtStart     Money `json:"nisabAtStart"`
	NisabStale       bool  `json:"nisabStale,omitempty"`
	ZakatAmount      Money `json:"zakatAmount"`

	Snapshot []AssetSnapshot `json:"snapshot,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Editable reports whether derived values may be recomputed and fields
// edited in the record's current state.
func (r *ObligationRecord) Editable() bool {
	return r.Status == Draft || r.Status == Unlocked
}

// Deletable reports whether the record may be removed. Finalized and
// unlocked records carry a frozen history and are never deleted
// directly.
func (r *ObligationRecord) Deletable() bool { return r.Status == Draft }

// clone returns a copy that shares nothing with r: mutating the copy's
// snapshot must not reach r.
func (r *ObligationRecord) clone() *ObligationRecord {
	c := *r
	c.Snapshot = append([]AssetSnapshot(nil), r.Snapshot...)
	return &c
}

// captureSnapshot builds the per-asset breakdown under the record's
// methodology. CapturedAt stamps every entry with the same instant.
func captureSnapshot(assets []Asset, m Methodology, at time.Time) []AssetSnapshot {
	snap := make([]AssetSnapshot, 0, len(assets))
	for _, a := range assets {
		if a.Archived {
			continue
		}
		snap = append(snap, AssetSnapshot{
			AssetID:    a.ID,
			Name:       a.Name,
			Category:   a.Type,
			Value:      a.Value,
			Eligible:   Eligible(a, m),
			Modifier:   a.Modifier(),
			CapturedAt: at,
		})
	}
	return snap
}

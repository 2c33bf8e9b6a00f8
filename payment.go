package zakat

import (
	"github.com/nisabi/zakat/hijri"
)

// PaymentRecord is one payment made against an obligation record. The
// payment repository owns these; the core only reads and sums them.
type PaymentRecord struct {
	ID                 string     `json:"id"`
	ObligationRecordID string     `json:"obligationRecordId"`
	Amount             Money      `json:"amount"`
	PaymentDate        hijri.Date `json:"paymentDate"`
	Recipient          string     `json:"recipient,omitempty"`
	Note               string     `json:"note,omitempty"`
}

// Reconciliation is a read-time projection of a record against its
// payments. It is never stored, so it is always consistent with the
// current payment set.
type Reconciliation struct {
	RecordID    string `json:"recordId"`
	ZakatAmount Money  `json:"zakatAmount"`
	Paid        Money  `json:"paid"`
	Outstanding Money  `json:"outstanding"`
}

// SumPayments totals the payments linked to the given record.
func SumPayments(recordID string, payments []PaymentRecord) Money {
	var total Money
	for _, p := range payments {
		if p.ObligationRecordID == recordID {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// ReconcilePayments projects the outstanding amount for a record:
// max(0, zakatAmount - sum of linked payments). Overpayment floors at
// zero outstanding rather than going negative.
func ReconcilePayments(r *ObligationRecord, payments []PaymentRecord) Reconciliation {
	paid := SumPayments(r.ID, payments)
	outstanding := r.ZakatAmount.Sub(paid)
	if outstanding.IsNegative() {
		outstanding = M(0, r.Currency)
	}
	return Reconciliation{
		RecordID:    r.ID,
		ZakatAmount: r.ZakatAmount,
		Paid:        paid,
		Outstanding: outstanding,
	}
}

package zakat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nisabi/zakat/hijri"
)

// Sentinel errors of the record lifecycle.
var (
	// ErrRecordNotFound is returned when no record carries the given id.
	ErrRecordNotFound = errors.New("obligation record not found")
	// ErrStateConflict is returned when an operation is not legal in the
	// record's current status. A finalized record is mutated only
	// through the unlock transition, never silently.
	ErrStateConflict = errors.New("operation conflicts with record status")
	// ErrNotDeletable is returned when deleting a non-draft record.
	ErrNotDeletable = errors.New("only draft records can be deleted")
)

// AssetStore reads the asset portfolio. The core treats the returned
// slice as an immutable snapshot for the duration of one computation.
type AssetStore interface {
	Assets(ctx context.Context) ([]Asset, error)
}

// LiabilityStore reads the liabilities deducted before assessment.
type LiabilityStore interface {
	Liabilities(ctx context.Context) ([]Liability, error)
}

// PaymentStore reads payments for reconciliation. The core never
// writes payments.
type PaymentStore interface {
	PaymentsByRecord(ctx context.Context, recordID string) ([]PaymentRecord, error)
}

// RecordStore persists obligation records. Save must write the whole
// record in one piece: a partially-written record must never be
// observable.
type RecordStore interface {
	SaveRecord(ctx context.Context, r *ObligationRecord) error
	Record(ctx context.Context, id string) (*ObligationRecord, error)
	Records(ctx context.Context) ([]*ObligationRecord, error)
	DeleteRecord(ctx context.Context, id string) error
}

// Service drives the lifecycle of yearly obligation records: create,
// finalize, unlock, delete, reconcile. All derived values are computed
// in memory first, then written in a single store call, so an abandoned
// computation has no side effects.
type Service struct {
	assets      AssetStore
	liabilities LiabilityStore
	payments    PaymentStore
	records     RecordStore
	evaluator   *Evaluator

	methodology    Methodology
	adjustmentDays int

	now func() time.Time // test hook
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithMethodology sets the jurisprudential methodology used for all
// computations of this service. Default is Standard.
func WithMethodology(m Methodology) ServiceOption {
	return func(s *Service) { s.methodology = m }
}

// WithAdjustmentDays sets the moon-sighting adjustment threaded through
// every calendar conversion, both directions.
func WithAdjustmentDays(days int) ServiceOption {
	return func(s *Service) { s.adjustmentDays = days }
}

// NewService wires the lifecycle service to its collaborators.
func NewService(assets AssetStore, liabilities LiabilityStore, payments PaymentStore, records RecordStore, evaluator *Evaluator, opts ...ServiceOption) *Service {
	s := &Service{
		assets:      assets,
		liabilities: liabilities,
		payments:    payments,
		records:     records,
		evaluator:   evaluator,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// compute fills the derived fields of r from the current state of the
// asset and liability stores and the current nisab threshold. Pure
// in-memory mutation of r; nothing is persisted here.
func (s *Service) compute(ctx context.Context, r *ObligationRecord) error {
	assets, err := s.assets.Assets(ctx)
	if err != nil {
		return fmt.Errorf("reading assets: %w", err)
	}
	liabilities, err := s.liabilities.Liabilities(ctx)
	if err != nil {
		return fmt.Errorf("reading liabilities: %w", err)
	}
	threshold, err := s.evaluator.Threshold(r.Basis, r.Currency)
	if err != nil {
		return fmt.Errorf("evaluating nisab: %w", err)
	}

	summary := ComputeWealth(assets, r.Methodology)
	totalLiabilities := TotalLiabilities(liabilities)
	zakatable := ZakatableWealth(summary.ZakatableWealth, totalLiabilities)

	r.TotalWealth = summary.TotalWealth
	r.TotalLiabilities = totalLiabilities
	r.ZakatableWealth = zakatable
	r.NisabAtStart = threshold.Amount
	r.NisabStale = threshold.Stale
	if MeetsNisab(zakatable, threshold.Amount) {
		r.ZakatAmount = ZakatDue(zakatable)
	} else {
		r.ZakatAmount = M(0, r.Currency)
	}
	r.Snapshot = captureSnapshot(assets, r.Methodology, s.now())
	r.UpdatedAt = s.now()
	return nil
}

// Create opens a new draft record for the hawl period starting at
// hawlStart. The end boundary is exactly one Hijri year later. The
// record is fully computed before the single store write.
func (s *Service) Create(ctx context.Context, hawlStart hijri.Date, basis MetalBasis, currency string) (*ObligationRecord, error) {
	r := &ObligationRecord{
		ID:             uuid.NewString(),
		Status:         Draft,
		HawlStart:      hawlStart,
		HawlEnd:        hijri.AddHawl(hawlStart, s.adjustmentDays),
		AdjustmentDays: s.adjustmentDays,
		Currency:       currency,
		Methodology:    s.methodology,
		Basis:          basis,
		CreatedAt:      s.now(),
	}
	if err := s.compute(ctx, r); err != nil {
		return nil, err
	}
	if err := s.records.SaveRecord(ctx, r); err != nil {
		return nil, fmt.Errorf("saving record: %w", err)
	}
	return r, nil
}

// Recompute refreshes the derived values of a draft or unlocked record
// from the current asset and liability data.
func (s *Service) Recompute(ctx context.Context, id string) (*ObligationRecord, error) {
	r, err := s.records.Record(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.Editable() {
		return nil, fmt.Errorf("recompute %s record %s: %w", r.Status, id, ErrStateConflict)
	}
	if err := s.compute(ctx, r); err != nil {
		return nil, err
	}
	if err := s.records.SaveRecord(ctx, r); err != nil {
		return nil, fmt.Errorf("saving record: %w", err)
	}
	return r, nil
}

// Finalize recomputes every derived value one final time from the
// then-current assets and liabilities, freezes the snapshot, and moves
// the record to Finalized. This is the authoritative computation
// moment: a draft may have been edited any number of times since
// Create.
func (s *Service) Finalize(ctx context.Context, id string) (*ObligationRecord, error) {
	r, err := s.records.Record(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.Editable() {
		return nil, fmt.Errorf("finalize %s record %s: %w", r.Status, id, ErrStateConflict)
	}
	if err := s.compute(ctx, r); err != nil {
		return nil, err
	}
	r.Status = Finalized
	if err := s.records.SaveRecord(ctx, r); err != nil {
		return nil, fmt.Errorf("saving record: %w", err)
	}
	return r, nil
}

// Unlock moves a finalized record back to an editable state without
// discarding the previously computed values. A later Finalize
// recomputes and re-freezes.
func (s *Service) Unlock(ctx context.Context, id string) (*ObligationRecord, error) {
	r, err := s.records.Record(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != Finalized {
		return nil, fmt.Errorf("unlock %s record %s: %w", r.Status, id, ErrStateConflict)
	}
	r.Status = Unlocked
	r.UpdatedAt = s.now()
	if err := s.records.SaveRecord(ctx, r); err != nil {
		return nil, fmt.Errorf("saving record: %w", err)
	}
	return r, nil
}

// Delete removes a draft record. Finalized and unlocked records are
// never deleted directly.
func (s *Service) Delete(ctx context.Context, id string) error {
	r, err := s.records.Record(ctx, id)
	if err != nil {
		return err
	}
	if !r.Deletable() {
		return fmt.Errorf("delete %s record %s: %w", r.Status, id, ErrNotDeletable)
	}
	return s.records.DeleteRecord(ctx, id)
}

// Reconcile projects the record against its current payments. The
// result is computed on read and never stored.
func (s *Service) Reconcile(ctx context.Context, id string) (Reconciliation, error) {
	r, err := s.records.Record(ctx, id)
	if err != nil {
		return Reconciliation{}, err
	}
	payments, err := s.payments.PaymentsByRecord(ctx, r.ID)
	if err != nil {
		return Reconciliation{}, fmt.Errorf("reading payments: %w", err)
	}
	return ReconcilePayments(r, payments), nil
}

// Record returns one record by id.
func (s *Service) Record(ctx context.Context, id string) (*ObligationRecord, error) {
	return s.records.Record(ctx, id)
}

// Records lists all records.
func (s *Service) Records(ctx context.Context) ([]*ObligationRecord, error) {
	return s.records.Records(ctx)
}

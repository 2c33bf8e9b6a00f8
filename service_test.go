package zakat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nisabi/zakat/hijri"
)

func newTestService(t *testing.T, opts ...ServiceOption) (*Service, *MemoryStore) {
	t.Helper()
	ms := NewMemoryStore()
	eval := NewEvaluator(FixedPriceSource{SilverBasis: USD(1), GoldBasis: USD(100)})
	return NewService(ms, ms, ms, ms, eval, opts...), ms
}

func TestCreateDraft(t *testing.T) {
	ctx := context.Background()
	svc, ms := newTestService(t)
	ms.PutAsset(Asset{ID: "cash", Name: "savings", Type: Cash, Value: USD(100000), ZakatEligible: true})
	ms.PutLiability(Liability{ID: "loan", Name: "car loan", Amount: USD(10000)})

	start := hijri.New(2024, 3, 25) // 15 Ramadan 1445
	rec, err := svc.Create(ctx, start, SilverBasis, "USD")
	require.NoError(t, err)

	assert.Equal(t, Draft, rec.Status)
	assert.NotEmpty(t, rec.ID)
	// one Hijri year later, not a fixed 354/365 day offset
	assert.Equal(t, hijri.New(2025, 3, 15), rec.HawlEnd)
	assert.True(t, rec.TotalWealth.Equal(USD(100000)), "TotalWealth = %s", rec.TotalWealth)
	assert.True(t, rec.TotalLiabilities.Equal(USD(10000)))
	assert.True(t, rec.ZakatableWealth.Equal(USD(90000)))
	assert.True(t, rec.NisabAtStart.Equal(USD(595)))
	assert.True(t, rec.ZakatAmount.Equal(USD(2250)), "ZakatAmount = %s", rec.ZakatAmount)
	require.Len(t, rec.Snapshot, 1)
	assert.Equal(t, "cash", rec.Snapshot[0].AssetID)

	// the record was persisted in one piece
	saved, err := svc.Record(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ZakatAmount, saved.ZakatAmount)
}

func TestCreateBelowNisab(t *testing.T) {
	ctx := context.Background()
	svc, ms := newTestService(t)
	ms.PutAsset(Asset{ID: "cash", Type: Cash, Value: USD(500), ZakatEligible: true})

	rec, err := svc.Create(ctx, hijri.New(2024, 3, 25), SilverBasis, "USD")
	require.NoError(t, err)
	assert.True(t, rec.ZakatAmount.IsZero(), "below nisab must owe nothing, got %s", rec.ZakatAmount)
}

func TestNisabBoundaryInclusive(t *testing.T) {
	ctx := context.Background()
	svc, ms := newTestService(t)
	ms.PutAsset(Asset{ID: "cash", Type: Cash, Value: USD(595), ZakatEligible: true})

	rec, err := svc.Create(ctx, hijri.New(2024, 3, 25), SilverBasis, "USD")
	require.NoError(t, err)
	assert.False(t, rec.ZakatAmount.IsZero(), "wealth exactly at nisab triggers the obligation")
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	svc, ms := newTestService(t)
	ms.PutAsset(Asset{ID: "cash", Type: Cash, Value: USD(100000), ZakatEligible: true})

	rec, err := svc.Create(ctx, hijri.New(2024, 3, 25), SilverBasis, "USD")
	require.NoError(t, err)
	require.True(t, rec.ZakatAmount.Equal(USD(2500)))

	ms.PutPayment(PaymentRecord{ID: "p1", ObligationRecordID: rec.ID, Amount: USD(1000), PaymentDate: hijri.New(2024, 4, 1)})
	ms.PutPayment(PaymentRecord{ID: "p2", ObligationRecordID: rec.ID, Amount: USD(500), PaymentDate: hijri.New(2024, 5, 1)})
	ms.PutPayment(PaymentRecord{ID: "p3", ObligationRecordID: "someone-else", Amount: USD(9999), PaymentDate: hijri.New(2024, 5, 1)})

	rc, err := svc.Reconcile(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, rc.Paid.Equal(USD(1500)), "Paid = %s", rc.Paid)
	assert.True(t, rc.Outstanding.Equal(USD(1000)), "Outstanding = %s", rc.Outstanding)

	// Overpayment floors at zero.
	ms.PutPayment(PaymentRecord{ID: "p4", ObligationRecordID: rec.ID, Amount: USD(5000), PaymentDate: hijri.New(2024, 6, 1)})
	rc, err = svc.Reconcile(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, rc.Outstanding.IsZero())
}

// TestFinalizeUnlockRefinalize walks the full lifecycle and checks that
// the first finalize's snapshot is never mutated in place.
func TestFinalizeUnlockRefinalize(t *testing.T) {
	ctx := context.Background()
	svc, ms := newTestService(t)
	ms.PutAsset(Asset{ID: "cash", Type: Cash, Value: USD(100000), ZakatEligible: true})

	rec, err := svc.Create(ctx, hijri.New(2024, 3, 25), SilverBasis, "USD")
	require.NoError(t, err)

	// The draft may be edited between create and finalize; finalize is
	// the authoritative computation moment.
	ms.PutAsset(Asset{ID: "cash", Type: Cash, Value: USD(120000), ZakatEligible: true})
	first, err := svc.Finalize(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, Finalized, first.Status)
	assert.True(t, first.ZakatAmount.Equal(USD(3000)), "ZakatAmount = %s", first.ZakatAmount)
	require.Len(t, first.Snapshot, 1)
	firstSnapValue := first.Snapshot[0].Value

	// Finalized records reject edits outside the unlock transition.
	_, err = svc.Finalize(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrStateConflict)
	_, err = svc.Recompute(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrStateConflict)

	unlocked, err := svc.Unlock(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, Unlocked, unlocked.Status)
	// Unlock keeps the previously computed values.
	assert.True(t, unlocked.ZakatAmount.Equal(USD(3000)))

	ms.PutAsset(Asset{ID: "cash", Type: Cash, Value: USD(200000), ZakatEligible: true})
	second, err := svc.Finalize(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, Finalized, second.Status)
	assert.True(t, second.ZakatAmount.Equal(USD(5000)), "ZakatAmount = %s", second.ZakatAmount)
	assert.True(t, second.Snapshot[0].Value.Equal(USD(200000)))

	// The first finalize's snapshot was re-frozen, not mutated.
	assert.True(t, firstSnapValue.Equal(USD(120000)))
	assert.True(t, first.Snapshot[0].Value.Equal(USD(120000)))
}

func TestUnlockRequiresFinalized(t *testing.T) {
	ctx := context.Background()
	svc, ms := newTestService(t)
	ms.PutAsset(Asset{ID: "cash", Type: Cash, Value: USD(1000), ZakatEligible: true})

	rec, err := svc.Create(ctx, hijri.New(2024, 3, 25), SilverBasis, "USD")
	require.NoError(t, err)
	_, err = svc.Unlock(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, ms := newTestService(t)
	ms.PutAsset(Asset{ID: "cash", Type: Cash, Value: USD(1000), ZakatEligible: true})

	rec, err := svc.Create(ctx, hijri.New(2024, 3, 25), SilverBasis, "USD")
	require.NoError(t, err)

	// Drafts delete; finalized records do not.
	other, err := svc.Create(ctx, hijri.New(2024, 3, 25), SilverBasis, "USD")
	require.NoError(t, err)
	_, err = svc.Finalize(ctx, other.ID)
	require.NoError(t, err)
	err = svc.Delete(ctx, other.ID)
	assert.ErrorIs(t, err, ErrNotDeletable)

	require.NoError(t, svc.Delete(ctx, rec.ID))
	_, err = svc.Record(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	_, err := svc.Finalize(ctx, "nope")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = svc.Reconcile(ctx, "nope")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	err = svc.Delete(ctx, "nope")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

// TestAdjustmentThreading checks the sighting adjustment reaches the
// hawl computation.
func TestAdjustmentThreading(t *testing.T) {
	ctx := context.Background()
	svc, ms := newTestService(t, WithAdjustmentDays(-1))
	ms.PutAsset(Asset{ID: "cash", Type: Cash, Value: USD(1000), ZakatEligible: true})

	start := hijri.New(2024, 3, 25)
	rec, err := svc.Create(ctx, start, SilverBasis, "USD")
	require.NoError(t, err)
	assert.Equal(t, hijri.AddHawl(start, -1), rec.HawlEnd)
	assert.Equal(t, -1, rec.AdjustmentDays)
}

func TestMethodologyOption(t *testing.T) {
	ctx := context.Background()
	svc, ms := newTestService(t, WithMethodology(Shafi))
	// Personal jewelry: exempt under Shafi.
	ms.PutAsset(Asset{ID: "j", Type: Gold, Value: USD(5000), ZakatEligible: false})
	ms.PutAsset(Asset{ID: "cash", Type: Cash, Value: USD(1000), ZakatEligible: true})

	rec, err := svc.Create(ctx, hijri.New(2024, 3, 25), SilverBasis, "USD")
	require.NoError(t, err)
	assert.Equal(t, Shafi, rec.Methodology)
	assert.True(t, rec.TotalWealth.Equal(USD(6000)))
	assert.True(t, rec.ZakatableWealth.Equal(USD(1000)), "ZakatableWealth = %s", rec.ZakatableWealth)
}

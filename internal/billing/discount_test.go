package billing

import (
	"fmt"
	"testing"
	"time"

	billingerrors "schoolpay/internal/billing/errors"

	"github.com/stretchr/testify/assert"
)

func TestApplyDiscount(t *testing.T) {
	cfg := testConfig()

	t.Run("ten percent on a monthly record", func(t *testing.T) {
		rec := testRecord(midYear)
		err := ApplyDiscount(rec, cfg, DiscountInput{Type: DiscountTypeMonthly, Percentage: 10}, midYear)
		assert.NoError(t, err)

		assert.True(t, rec.Discount.Enabled)
		assert.Equal(t, int64(100), rec.Discount.Amount)
		assert.Equal(t, int64(900), rec.TotalAmounts.Tuition)

		// Other components are untouched by a tuition discount.
		assert.Equal(t, int64(80), rec.TotalAmounts.Uniform)
		assert.Equal(t, int64(300), rec.TotalAmounts.Transportation)
		assert.Equal(t, int64(50), rec.TotalAmounts.InscriptionFee)
		assertLedgerInvariants(t, rec)
	})

	t.Run("discounted schedule pays out 90 per month", func(t *testing.T) {
		rec := testRecord(midYear)
		err := ApplyDiscount(rec, cfg, DiscountInput{Type: DiscountTypeMonthly, Percentage: 10}, midYear)
		assert.NoError(t, err)

		assert.Equal(t, int64(90), rec.TuitionMonthlyPayments[0].Amount)

		for _, idx := range []int{0, 1} {
			err = RecordTuitionMonthly(rec, idx, PaymentInput{Amount: 90, Method: MethodCash, Date: midYear}, midYear)
			assert.NoError(t, err)
		}

		assert.Equal(t, int64(180), rec.PaidAmounts.Tuition)
		assert.Equal(t, int64(720), rec.RemainingAmounts.Tuition)
		assertLedgerInvariants(t, rec)
	})

	t.Run("full discount settles the schedule", func(t *testing.T) {
		cfg := testConfig()
		st := testStudent(cfg.SchoolID)
		rec, err := buildRecord(st, cfg, testYear, GenerateRecordRequest{StudentID: st.ID.String()}, midYear)
		assert.NoError(t, err)

		err = ApplyDiscount(rec, cfg, DiscountInput{Type: DiscountTypeMonthly, Percentage: 100}, midYear)
		assert.NoError(t, err)
		assert.Equal(t, int64(1000), rec.Discount.Amount)
		assert.Zero(t, rec.TotalAmounts.Tuition)
		assert.Zero(t, rec.RemainingAmounts.Tuition)

		// Nothing is owed, so no due date can ever make this overdue.
		late := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
		ResolveStatuses(rec, late)
		assert.Equal(t, StatusCompleted, rec.ComponentStatus.Tuition)
		assert.Equal(t, StatusCompleted, rec.OverallStatus)
		for _, m := range rec.TuitionMonthlyPayments {
			assert.Equal(t, StatusPaid, m.Status)
		}
		assertLedgerInvariants(t, rec)
	})

	t.Run("second application is rejected", func(t *testing.T) {
		rec := testRecord(midYear)
		assert.NoError(t, ApplyDiscount(rec, cfg, DiscountInput{Type: DiscountTypeMonthly, Percentage: 10}, midYear))

		err := ApplyDiscount(rec, cfg, DiscountInput{Type: DiscountTypeMonthly, Percentage: 20}, midYear)
		assert.ErrorIs(t, err, billingerrors.ErrDiscountAlreadyApplied)
		assert.Equal(t, 10, rec.Discount.Percentage)
	})

	t.Run("percentage bounds", func(t *testing.T) {
		for _, p := range []int{0, -5, 101} {
			rec := testRecord(midYear)
			err := ApplyDiscount(rec, cfg, DiscountInput{Type: DiscountTypeMonthly, Percentage: p}, midYear)
			assert.ErrorIs(t, err, billingerrors.ErrInvalidPercentage, "percentage %d", p)
			assert.False(t, rec.Discount.Enabled)
		}
	})

	t.Run("unknown discount type", func(t *testing.T) {
		rec := testRecord(midYear)
		err := ApplyDiscount(rec, cfg, DiscountInput{Type: "weekly", Percentage: 10}, midYear)
		assert.ErrorIs(t, err, billingerrors.ErrInvalidDiscountType)
	})
}

func TestRemoveDiscount(t *testing.T) {
	cfg := testConfig()

	t.Run("restores the original tuition", func(t *testing.T) {
		rec := testRecord(midYear)
		assert.NoError(t, ApplyDiscount(rec, cfg, DiscountInput{Type: DiscountTypeMonthly, Percentage: 25}, midYear))
		assert.NoError(t, RemoveDiscount(rec, cfg, midYear))

		assert.False(t, rec.Discount.Enabled)
		assert.Equal(t, int64(1000), rec.TotalAmounts.Tuition)
		assertLedgerInvariants(t, rec)
	})

	t.Run("nothing to remove", func(t *testing.T) {
		rec := testRecord(midYear)
		err := RemoveDiscount(rec, cfg, midYear)
		assert.ErrorIs(t, err, billingerrors.ErrNoDiscountToRemove)
	})
}

// Round-trip law: apply then remove, with no payments in between, restores
// the pre-discount tuition total for every legal percentage.
func TestDiscountRoundTrip(t *testing.T) {
	cfg := testConfig()

	for p := 1; p <= 100; p++ {
		t.Run(fmt.Sprintf("percentage_%d", p), func(t *testing.T) {
			rec := testRecord(midYear)
			original := rec.TotalAmounts.Tuition

			assert.NoError(t, ApplyDiscount(rec, cfg, DiscountInput{Type: DiscountTypeMonthly, Percentage: p}, midYear))
			assert.NoError(t, RemoveDiscount(rec, cfg, midYear))

			assert.Equal(t, original, rec.TotalAmounts.Tuition)
			assertLedgerInvariants(t, rec)
		})
	}
}

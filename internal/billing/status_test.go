package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthStatus(t *testing.T) {
	due := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	month := MonthlyPayment{Month: 10, DueDate: due, Amount: 100}

	t.Run("pending before due date", func(t *testing.T) {
		now := due.AddDate(0, 0, -10)
		assert.Equal(t, StatusPending, monthStatus(month, now, 5))
	})

	t.Run("pending inside grace period", func(t *testing.T) {
		now := due.AddDate(0, 0, 4)
		assert.Equal(t, StatusPending, monthStatus(month, now, 5))
	})

	t.Run("overdue past due date plus grace", func(t *testing.T) {
		now := due.AddDate(0, 0, 6)
		assert.Equal(t, StatusOverdue, monthStatus(month, now, 5))
	})

	t.Run("partial when some amount paid and not late", func(t *testing.T) {
		m := month
		m.PaidAmount = 40
		now := due.AddDate(0, 0, -1)
		assert.Equal(t, StatusPartial, monthStatus(m, now, 5))
	})

	t.Run("partial but late reads overdue", func(t *testing.T) {
		m := month
		m.PaidAmount = 40
		now := due.AddDate(0, 0, 30)
		assert.Equal(t, StatusOverdue, monthStatus(m, now, 5))
	})

	t.Run("paid is terminal regardless of time", func(t *testing.T) {
		m := month
		m.PaidAmount = 100
		now := due.AddDate(0, 1, 0)
		assert.Equal(t, StatusPaid, monthStatus(m, now, 5))
	})
}

func TestBinaryStatus(t *testing.T) {
	assert.Equal(t, StatusNotApplicable, binaryStatus(false, false))
	assert.Equal(t, StatusPending, binaryStatus(true, false))
	assert.Equal(t, StatusCompleted, binaryStatus(true, true))
}

func TestResolveStatuses(t *testing.T) {
	t.Run("fresh record is pending everywhere", func(t *testing.T) {
		rec := testRecord(midYear)
		assert.Equal(t, StatusPending, rec.ComponentStatus.Tuition)
		assert.Equal(t, StatusPending, rec.ComponentStatus.Uniform)
		assert.Equal(t, StatusPending, rec.ComponentStatus.Transportation)
		assert.Equal(t, StatusPending, rec.ComponentStatus.InscriptionFee)
		assert.Equal(t, StatusPending, rec.OverallStatus)
	})

	t.Run("not applicable components are ignored", func(t *testing.T) {
		cfg := testConfig()
		st := testStudent(cfg.SchoolID)
		rec, err := buildRecord(st, cfg, testYear, GenerateRecordRequest{StudentID: st.ID.String()}, midYear)
		assert.NoError(t, err)

		assert.Equal(t, StatusNotApplicable, rec.ComponentStatus.Uniform)
		assert.Equal(t, StatusNotApplicable, rec.ComponentStatus.Transportation)
		assert.Equal(t, StatusNotApplicable, rec.ComponentStatus.InscriptionFee)
		assert.Equal(t, StatusPending, rec.OverallStatus)
	})

	t.Run("any payment makes overall partial", func(t *testing.T) {
		rec := testRecord(midYear)
		err := RecordUniform(rec, PaymentInput{Method: MethodCash, Date: midYear}, midYear)
		assert.NoError(t, err)

		assert.Equal(t, StatusCompleted, rec.ComponentStatus.Uniform)
		assert.Equal(t, StatusPartial, rec.OverallStatus)
	})

	t.Run("overdue wins over everything", func(t *testing.T) {
		rec := testRecord(midYear)
		err := RecordUniform(rec, PaymentInput{Method: MethodCash, Date: midYear}, midYear)
		assert.NoError(t, err)

		// Well past September's due date plus grace.
		late := time.Date(2024, 10, 20, 0, 0, 0, 0, time.UTC)
		Recalculate(rec)
		ResolveStatuses(rec, late)

		assert.Equal(t, StatusOverdue, rec.ComponentStatus.Tuition)
		assert.Equal(t, StatusOverdue, rec.OverallStatus)
	})

	t.Run("all applicable completed reads completed", func(t *testing.T) {
		rec := testRecord(midYear)

		for i := range rec.TuitionMonthlyPayments {
			rec.TuitionMonthlyPayments[i].PaidAmount = rec.TuitionMonthlyPayments[i].Amount
		}
		for i := range rec.Transportation.MonthlyPayments {
			rec.Transportation.MonthlyPayments[i].PaidAmount = rec.Transportation.MonthlyPayments[i].Amount
		}
		rec.Uniform.IsPaid = true
		rec.InscriptionFee.IsPaid = true

		// Even evaluated long after every due date.
		late := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
		Recalculate(rec)
		ResolveStatuses(rec, late)

		assert.Equal(t, StatusCompleted, rec.ComponentStatus.Tuition)
		assert.Equal(t, StatusCompleted, rec.ComponentStatus.Transportation)
		assert.Equal(t, StatusCompleted, rec.OverallStatus)
	})
}

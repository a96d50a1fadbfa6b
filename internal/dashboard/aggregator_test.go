package dashboard

import (
	"testing"
	"time"

	"schoolpay/internal/billing"
	"schoolpay/internal/paymentconfig"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2024, 9, 3, 12, 0, 0, 0, time.UTC)

func testWindow() paymentconfig.ScheduleWindow {
	return paymentconfig.ScheduleWindow{StartMonth: 9, EndMonth: 6, TotalMonths: 10}
}

// newRecord builds a tuition-only monthly record for the given grade
// category, annual amount spread over ten months.
func newRecord(t *testing.T, category string, annual int64) billing.StudentPaymentRecord {
	t.Helper()
	schedule, err := billing.GenerateTuitionSchedule(annual, testWindow(), "2024-2025")
	assert.NoError(t, err)
	rec := billing.StudentPaymentRecord{
		ID:                     uuid.New(),
		SchoolID:               uuid.New(),
		StudentID:              uuid.New(),
		AcademicYear:           "2024-2025",
		GradeCategory:          category,
		PaymentType:            billing.PaymentTypeMonthly,
		TuitionAnnualAmount:    annual,
		TuitionMonthlyPayments: schedule,
		GracePeriodDays:        5,
	}
	billing.Recalculate(&rec)
	billing.ResolveStatuses(&rec, testNow)
	return rec
}

func payMonth(t *testing.T, rec *billing.StudentPaymentRecord, idx int, amount int64) {
	t.Helper()
	err := billing.RecordTuitionMonthly(rec, idx, billing.PaymentInput{
		Amount: amount,
		Method: billing.MethodCash,
		Date:   testNow,
	}, testNow)
	assert.NoError(t, err)
}

func TestSummarize(t *testing.T) {
	pending := newRecord(t, paymentconfig.CategoryPrimaire, 1000)

	partial := newRecord(t, paymentconfig.CategoryPrimaire, 1000)
	payMonth(t, &partial, 0, 40)

	completed := newRecord(t, paymentconfig.CategorySecondaire, 500)
	for i := range completed.TuitionMonthlyPayments {
		payMonth(t, &completed, i, completed.TuitionMonthlyPayments[i].Amount)
	}

	records := []billing.StudentPaymentRecord{pending, partial, completed}
	s := Summarize(records, 5, "2024-2025", testNow)

	assert.Equal(t, "2024-2025", s.AcademicYear)
	assert.Equal(t, 5, s.Students)
	assert.Equal(t, 3, s.Records)

	assert.Equal(t, 1, s.StatusCounts.Pending)
	assert.Equal(t, 1, s.StatusCounts.Partial)
	assert.Equal(t, 1, s.StatusCounts.Completed)
	assert.Zero(t, s.StatusCounts.Overdue)
	assert.Equal(t, 2, s.StatusCounts.NoRecord)

	assert.Equal(t, int64(2500), s.Amounts.Tuition.Expected)
	assert.Equal(t, int64(540), s.Amounts.Tuition.Collected)
	assert.Equal(t, int64(1960), s.Amounts.Tuition.Outstanding)
	assert.Equal(t, s.Amounts.Tuition, s.Amounts.GrandTotal)

	// 540 of 2500 expected, in per mille.
	assert.Equal(t, int64(216), s.CollectionRate)

	assert.Len(t, s.Categories, 2)
	assert.Equal(t, paymentconfig.CategoryPrimaire, s.Categories[0].Category)
	assert.Equal(t, 2, s.Categories[0].Records)
	assert.Equal(t, int64(2000), s.Categories[0].Expected)
	assert.Equal(t, int64(40), s.Categories[0].Collected)
	assert.Equal(t, paymentconfig.CategorySecondaire, s.Categories[1].Category)
	assert.Equal(t, 1, s.Categories[1].Records)
	assert.Equal(t, int64(500), s.Categories[1].Collected)

	assert.Zero(t, s.DiscountedRecords)
	assert.Equal(t, testNow, s.GeneratedAt)
}

func TestSummarize_OverdueReflectsTheClock(t *testing.T) {
	rec := newRecord(t, paymentconfig.CategoryPrimaire, 1000)

	s := Summarize([]billing.StudentPaymentRecord{rec}, 1, "2024-2025", testNow)
	assert.Equal(t, 1, s.StatusCounts.Pending)

	// Same snapshot, evaluated after the September due date plus grace.
	late := time.Date(2024, 10, 20, 0, 0, 0, 0, time.UTC)
	s = Summarize([]billing.StudentPaymentRecord{rec}, 1, "2024-2025", late)
	assert.Equal(t, 1, s.StatusCounts.Overdue)
	assert.Zero(t, s.StatusCounts.Pending)

	// The caller's snapshot is never mutated.
	assert.Equal(t, billing.StatusPending, rec.OverallStatus)
}

func TestSummarize_DiscountTotals(t *testing.T) {
	rec := newRecord(t, paymentconfig.CategoryPrimaire, 1000)
	rec.Grade = "3ème année primaire"
	cfg := &paymentconfig.PaymentConfiguration{
		GradeAmounts: map[string]int64{rec.Grade: 1000},
		Schedule:     testWindow(),
	}
	err := billing.ApplyDiscount(&rec, cfg, billing.DiscountInput{
		Type:       billing.DiscountTypeMonthly,
		Percentage: 15,
	}, testNow)
	assert.NoError(t, err)

	s := Summarize([]billing.StudentPaymentRecord{rec}, 1, "2024-2025", testNow)
	assert.Equal(t, 1, s.DiscountedRecords)
	assert.Equal(t, int64(150), s.DiscountTotal)
	assert.Equal(t, int64(850), s.Amounts.Tuition.Expected)
}

func TestSummarize_ComponentAdoption(t *testing.T) {
	withExtras := newRecord(t, paymentconfig.CategoryPrimaire, 1000)
	withExtras.Uniform = billing.UniformPayment{Purchased: true, Price: 80}
	withExtras.Transportation.Using = true
	withExtras.Transportation.Zone = billing.TransportZoneFar
	withExtras.InscriptionFee = billing.InscriptionFeePayment{Applicable: true, Price: 50}
	billing.Recalculate(&withExtras)
	billing.ResolveStatuses(&withExtras, testNow)

	paidUniform := newRecord(t, paymentconfig.CategoryPrimaire, 1000)
	paidUniform.Uniform = billing.UniformPayment{Purchased: true, Price: 80}
	billing.Recalculate(&paidUniform)
	err := billing.RecordUniform(&paidUniform, billing.PaymentInput{
		Amount: 80,
		Method: billing.MethodCash,
		Date:   testNow,
	}, testNow)
	assert.NoError(t, err)

	s := Summarize([]billing.StudentPaymentRecord{withExtras, paidUniform}, 2, "2024-2025", testNow)
	assert.Equal(t, 2, s.Adoption.UniformPurchased)
	assert.Equal(t, 1, s.Adoption.UniformPaid)
	assert.Equal(t, 1, s.Adoption.TransportFar)
	assert.Zero(t, s.Adoption.TransportClose)
	assert.Equal(t, 1, s.Adoption.InscriptionDue)
	assert.Zero(t, s.Adoption.InscriptionPaid)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, 0, "2024-2025", testNow)
	assert.Zero(t, s.Records)
	assert.Zero(t, s.CollectionRate)
	assert.Empty(t, s.Categories)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "dashboard:summary:school-1:2024-2025", CacheKey("school-1", "2024-2025"))
}

package billing

import (
	"time"

	billingerrors "schoolpay/internal/billing/errors"
	"schoolpay/internal/paymentconfig"
)

// DiscountInput carries the caller's discount request.
type DiscountInput struct {
	Type       string
	Percentage int
	Notes      string
}

// discountAmount computes the reduction from the undiscounted original.
// Integer math rounds half up against the original, never against an
// already discounted figure, so re-applying cannot compound.
func discountAmount(originalTuition int64, percentage int) int64 {
	return (originalTuition*int64(percentage) + 50) / 100
}

// ApplyDiscount activates a single tuition-scoped discount on the record.
// The original tuition is taken fresh from the configuration for the
// record's grade; the stored, possibly stale snapshot is refreshed to that
// figure at the same time. On the monthly path the schedule is reallocated
// to the discounted annual amount while keeping every month's payment
// history.
func ApplyDiscount(r *StudentPaymentRecord, cfg *paymentconfig.PaymentConfiguration, in DiscountInput, now time.Time) error {
	if r.Discount.Enabled {
		return billingerrors.ErrDiscountAlreadyApplied
	}
	if in.Percentage < 1 || in.Percentage > 100 {
		return billingerrors.ErrInvalidPercentage
	}
	if in.Type != DiscountTypeMonthly && in.Type != DiscountTypeAnnual {
		return billingerrors.ErrInvalidDiscountType
	}

	original, ok := cfg.TuitionForGrade(r.Grade)
	if !ok {
		return billingerrors.ErrGradeNotPriced
	}

	amount := discountAmount(original, in.Percentage)
	applied := now

	r.TuitionAnnualAmount = original
	r.Discount = Discount{
		Enabled:     true,
		Type:        in.Type,
		Percentage:  in.Percentage,
		Amount:      amount,
		AppliedDate: &applied,
		Notes:       in.Notes,
	}

	if r.PaymentType == PaymentTypeMonthly {
		reallocateSchedule(r.TuitionMonthlyPayments, original-amount)
	}

	Recalculate(r)
	ResolveStatuses(r, now)
	return nil
}

// RemoveDiscount restores the configuration-derived original tuition and
// discards the discount metadata.
func RemoveDiscount(r *StudentPaymentRecord, cfg *paymentconfig.PaymentConfiguration, now time.Time) error {
	if !r.Discount.Enabled {
		return billingerrors.ErrNoDiscountToRemove
	}

	original, ok := cfg.TuitionForGrade(r.Grade)
	if !ok {
		return billingerrors.ErrGradeNotPriced
	}

	r.TuitionAnnualAmount = original
	r.Discount = Discount{}

	if r.PaymentType == PaymentTypeMonthly {
		reallocateSchedule(r.TuitionMonthlyPayments, original)
	}

	Recalculate(r)
	ResolveStatuses(r, now)
	return nil
}

package billing

import (
	"time"

	billingerrors "schoolpay/internal/billing/errors"
)

// Mutating entry points of the ledger. Each operation validates first and
// only then touches the record, so a failed call leaves it unmodified; the
// service layer additionally works on a clone and persists with a version
// check. Ledger amounts and statuses are recomputed before returning.

// PaymentInput carries the caller's side of a payment.
type PaymentInput struct {
	Amount        int64
	Method        string
	Date          time.Time
	ReceiptNumber string
}

func recordScheduledPayment(entries []MonthlyPayment, monthIndex int, in PaymentInput) error {
	if in.Amount <= 0 {
		return billingerrors.ErrInvalidAmount
	}
	if !IsValidMethod(in.Method) {
		return billingerrors.ErrInvalidMethod
	}
	if monthIndex < 0 || monthIndex >= len(entries) {
		return billingerrors.ErrInvalidMonthIndex
	}

	entry := &entries[monthIndex]
	remaining := entry.Amount - entry.PaidAmount
	if remaining <= 0 {
		return billingerrors.ErrAlreadyPaid
	}
	if in.Amount > remaining {
		return billingerrors.ErrAmountExceedsRemaining
	}

	entry.PaidAmount += in.Amount
	paymentDate := in.Date
	entry.PaymentDate = &paymentDate
	entry.Method = in.Method
	entry.ReceiptNumber = in.ReceiptNumber
	if entry.PaidAmount >= entry.Amount {
		entry.Status = StatusPaid
	} else {
		entry.Status = StatusPartial
	}
	return nil
}

// RecordTuitionMonthly accumulates a payment against one tuition instalment.
func RecordTuitionMonthly(r *StudentPaymentRecord, monthIndex int, in PaymentInput, now time.Time) error {
	if r.PaymentType != PaymentTypeMonthly {
		return billingerrors.ErrWrongPaymentType
	}
	if err := recordScheduledPayment(r.TuitionMonthlyPayments, monthIndex, in); err != nil {
		return err
	}
	Recalculate(r)
	ResolveStatuses(r, now)
	return nil
}

// RecordTransportationMonthly accumulates a payment against one transport
// instalment.
func RecordTransportationMonthly(r *StudentPaymentRecord, monthIndex int, in PaymentInput, now time.Time) error {
	if !r.Transportation.Using {
		return billingerrors.ErrNotApplicable
	}
	if err := recordScheduledPayment(r.Transportation.MonthlyPayments, monthIndex, in); err != nil {
		return err
	}
	Recalculate(r)
	ResolveStatuses(r, now)
	return nil
}

// RecordUniform settles the uniform in a single full payment.
func RecordUniform(r *StudentPaymentRecord, in PaymentInput, now time.Time) error {
	if !r.Uniform.Purchased {
		return billingerrors.ErrNotApplicable
	}
	if r.Uniform.IsPaid {
		return billingerrors.ErrAlreadyPaid
	}
	if !IsValidMethod(in.Method) {
		return billingerrors.ErrInvalidMethod
	}

	paymentDate := in.Date
	r.Uniform.IsPaid = true
	r.Uniform.PaymentDate = &paymentDate
	r.Uniform.Method = in.Method
	r.Uniform.ReceiptNumber = in.ReceiptNumber

	Recalculate(r)
	ResolveStatuses(r, now)
	return nil
}

// RecordInscriptionFee settles the registration fee in a single full
// payment.
func RecordInscriptionFee(r *StudentPaymentRecord, in PaymentInput, now time.Time) error {
	if !r.InscriptionFee.Applicable {
		return billingerrors.ErrNotApplicable
	}
	if r.InscriptionFee.IsPaid {
		return billingerrors.ErrAlreadyPaid
	}
	if !IsValidMethod(in.Method) {
		return billingerrors.ErrInvalidMethod
	}

	paymentDate := in.Date
	r.InscriptionFee.IsPaid = true
	r.InscriptionFee.PaymentDate = &paymentDate
	r.InscriptionFee.Method = in.Method
	r.InscriptionFee.ReceiptNumber = in.ReceiptNumber

	Recalculate(r)
	ResolveStatuses(r, now)
	return nil
}

// RecordAnnualTuition settles the whole tuition in one payment. Only valid
// on annual-type records; the monthly schedule path is mutually exclusive.
func RecordAnnualTuition(r *StudentPaymentRecord, in PaymentInput, now time.Time) error {
	if r.PaymentType != PaymentTypeAnnual {
		return billingerrors.ErrWrongPaymentType
	}
	if r.AnnualTuition != nil && r.AnnualTuition.IsPaid {
		return billingerrors.ErrAlreadyPaid
	}
	if !IsValidMethod(in.Method) {
		return billingerrors.ErrInvalidMethod
	}

	amount := r.TuitionAnnualAmount
	if r.Discount.Enabled {
		amount -= r.Discount.Amount
	}

	paymentDate := in.Date
	r.AnnualTuition = &AnnualTuitionPayment{
		IsPaid:        true,
		Amount:        amount,
		PaymentDate:   &paymentDate,
		Method:        in.Method,
		ReceiptNumber: in.ReceiptNumber,
	}

	Recalculate(r)
	ResolveStatuses(r, now)
	return nil
}

package billing

import "time"

// Status derivation. Two shapes exist: the scheduled components (tuition,
// transportation) run pending -> partial -> completed with a lazy overdue
// check against wall-clock time, and the binary components (uniform,
// inscription fee) run not_applicable -> pending -> completed. Nothing here
// ticks in the background: overdue is evaluated at read and mutation time.

// monthStatus classifies one schedule entry at a point in time. A month
// with nothing left to pay is settled, including a zero-amount month from a
// full discount.
func monthStatus(m MonthlyPayment, now time.Time, graceDays int) string {
	if m.PaidAmount >= m.Amount {
		return StatusPaid
	}
	deadline := m.DueDate.AddDate(0, 0, graceDays)
	if now.After(deadline) {
		return StatusOverdue
	}
	if m.PaidAmount > 0 {
		return StatusPartial
	}
	return StatusPending
}

// scheduledComponentStatus folds the per-month statuses of one scheduled
// component. Completed is terminal and checked first so a fully paid
// schedule can never read as overdue.
func scheduledComponentStatus(entries []MonthlyPayment, now time.Time, graceDays int) string {
	if len(entries) == 0 {
		return StatusNotApplicable
	}
	var paid, total int64
	anyOverdue := false
	for _, e := range entries {
		total += e.Amount
		paid += e.PaidAmount
		if monthStatus(e, now, graceDays) == StatusOverdue {
			anyOverdue = true
		}
	}
	if paid >= total {
		return StatusCompleted
	}
	if anyOverdue {
		return StatusOverdue
	}
	if paid > 0 {
		return StatusPartial
	}
	return StatusPending
}

func annualTuitionStatus(annual *AnnualTuitionPayment) string {
	if annual != nil && annual.IsPaid {
		return StatusCompleted
	}
	return StatusPending
}

// binaryStatus classifies uniform and inscription fee, which have no
// partial or overdue states.
func binaryStatus(applicable, isPaid bool) string {
	if !applicable {
		return StatusNotApplicable
	}
	if isPaid {
		return StatusCompleted
	}
	return StatusPending
}

// ResolveStatuses recomputes every component status and the overall status.
// Overall precedence: overdue beats completed beats partial beats pending;
// not_applicable components are ignored entirely.
func ResolveStatuses(r *StudentPaymentRecord, now time.Time) {
	cs := ComponentStatus{
		Uniform:        binaryStatus(r.Uniform.Purchased, r.Uniform.IsPaid),
		InscriptionFee: binaryStatus(r.InscriptionFee.Applicable, r.InscriptionFee.IsPaid),
	}

	if r.PaymentType == PaymentTypeAnnual {
		cs.Tuition = annualTuitionStatus(r.AnnualTuition)
	} else {
		cs.Tuition = scheduledComponentStatus(r.TuitionMonthlyPayments, now, r.GracePeriodDays)
	}

	if r.Transportation.Using {
		cs.Transportation = scheduledComponentStatus(r.Transportation.MonthlyPayments, now, r.GracePeriodDays)
	} else {
		cs.Transportation = StatusNotApplicable
	}

	for i := range r.TuitionMonthlyPayments {
		r.TuitionMonthlyPayments[i].Status = monthStatus(r.TuitionMonthlyPayments[i], now, r.GracePeriodDays)
	}
	for i := range r.Transportation.MonthlyPayments {
		r.Transportation.MonthlyPayments[i].Status = monthStatus(r.Transportation.MonthlyPayments[i], now, r.GracePeriodDays)
	}

	r.ComponentStatus = cs
	r.OverallStatus = overallStatus(cs, r.PaidAmounts.GrandTotal)
}

func overallStatus(cs ComponentStatus, grandPaid int64) string {
	statuses := []string{cs.Tuition, cs.Uniform, cs.Transportation, cs.InscriptionFee}

	applicable := 0
	completed := 0
	for _, s := range statuses {
		if s == StatusNotApplicable {
			continue
		}
		applicable++
		switch s {
		case StatusOverdue:
			return StatusOverdue
		case StatusCompleted:
			completed++
		}
	}
	if applicable > 0 && completed == applicable {
		return StatusCompleted
	}
	if grandPaid > 0 {
		return StatusPartial
	}
	return StatusPending
}

package billing

// Ledger math. All functions here are pure over the record snapshot: they
// read the stored prices and payment history and derive the three amount
// buckets. Re-running on an unchanged record yields identical output.

func sumScheduled(entries []MonthlyPayment) int64 {
	var sum int64
	for _, e := range entries {
		sum += e.Amount
	}
	return sum
}

func sumPaid(entries []MonthlyPayment) int64 {
	var sum int64
	for _, e := range entries {
		sum += e.PaidAmount
	}
	return sum
}

// tuitionTotal is the discounted annual amount. On the monthly path the
// schedule is authoritative because the discount reallocation already
// flowed into the entries; on the annual path the snapshot minus the
// discount is used directly.
func tuitionTotal(r *StudentPaymentRecord) int64 {
	if r.PaymentType == PaymentTypeMonthly && len(r.TuitionMonthlyPayments) > 0 {
		return sumScheduled(r.TuitionMonthlyPayments)
	}
	total := r.TuitionAnnualAmount
	if r.Discount.Enabled {
		total -= r.Discount.Amount
	}
	if total < 0 {
		total = 0
	}
	return total
}

func tuitionPaid(r *StudentPaymentRecord) int64 {
	if r.PaymentType == PaymentTypeAnnual {
		if r.AnnualTuition != nil && r.AnnualTuition.IsPaid {
			return r.AnnualTuition.Amount
		}
		return 0
	}
	return sumPaid(r.TuitionMonthlyPayments)
}

func clampRemaining(total, paid int64) int64 {
	remaining := total - paid
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Recalculate derives total, paid and remaining amounts for every component
// and the grand totals, writing them back onto the record. Remaining is
// clamped per component before summing so one component's overpayment can
// never mask another's shortfall.
func Recalculate(r *StudentPaymentRecord) {
	total := ComponentAmounts{
		Tuition: tuitionTotal(r),
	}
	paid := ComponentAmounts{
		Tuition: tuitionPaid(r),
	}

	if r.Uniform.Purchased {
		total.Uniform = r.Uniform.Price
		if r.Uniform.IsPaid {
			paid.Uniform = r.Uniform.Price
		}
	}

	if r.Transportation.Using {
		total.Transportation = sumScheduled(r.Transportation.MonthlyPayments)
		paid.Transportation = sumPaid(r.Transportation.MonthlyPayments)
	}

	if r.InscriptionFee.Applicable {
		total.InscriptionFee = r.InscriptionFee.Price
		if r.InscriptionFee.IsPaid {
			paid.InscriptionFee = r.InscriptionFee.Price
		}
	}

	remaining := ComponentAmounts{
		Tuition:        clampRemaining(total.Tuition, paid.Tuition),
		Uniform:        clampRemaining(total.Uniform, paid.Uniform),
		Transportation: clampRemaining(total.Transportation, paid.Transportation),
		InscriptionFee: clampRemaining(total.InscriptionFee, paid.InscriptionFee),
	}

	total.GrandTotal = total.Tuition + total.Uniform + total.Transportation + total.InscriptionFee
	paid.GrandTotal = paid.Tuition + paid.Uniform + paid.Transportation + paid.InscriptionFee
	remaining.GrandTotal = remaining.Tuition + remaining.Uniform + remaining.Transportation + remaining.InscriptionFee

	r.TotalAmounts = total
	r.PaidAmounts = paid
	r.RemainingAmounts = remaining
}

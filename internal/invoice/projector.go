package invoice

import (
	"fmt"
	"strings"
	"time"

	"schoolpay/internal/billing"
)

// TVARate is the value-added tax applied to invoice lines, in percent.
// School fees are currently exempt.
const TVARate = 0

// Projection scopes.
const (
	ScopeCumulative      = "cumulative"
	ScopeSingleMonth     = "single_month"
	ScopeSingleComponent = "single_component"
)

// Scope selects which slice of a payment record an invoice covers.
// MonthIndex applies to single_month, and optionally narrows a
// single_component tuition or transportation invoice to one instalment.
type Scope struct {
	Kind       string
	MonthIndex int
	Component  string
}

type DiscountBreakdown struct {
	Percentage     int   `json:"percentage"`
	OriginalAmount int64 `json:"original_amount"`
	DiscountAmount int64 `json:"discount_amount"`
	FinalAmount    int64 `json:"final_amount"`
}

// Projection is a read-only amounts view of one record under one scope. HT
// figures are pre-tax; TTC includes tax.
type Projection struct {
	Scope     string `json:"scope"`
	Month     int    `json:"month,omitempty"`
	MonthName string `json:"month_name,omitempty"`

	Tuition        int64 `json:"tuition"`
	Uniform        int64 `json:"uniform"`
	Transportation int64 `json:"transportation"`
	InscriptionFee int64 `json:"inscription_fee"`

	TotalHT   int64 `json:"total_ht"`
	TaxRate   int   `json:"tax_rate"`
	TaxAmount int64 `json:"tax_amount"`
	TotalTTC  int64 `json:"total_ttc"`

	Discount *DiscountBreakdown `json:"discount,omitempty"`

	InvoiceDate time.Time `json:"invoice_date"`
}

// Project computes the scoped amounts view. Pure: the record is never
// mutated. Policy: cumulative scopes show paid-to-date figures, month
// scopes show the full scheduled amount for that month, and component
// scopes zero every other component.
func Project(r *billing.StudentPaymentRecord, scope Scope, now time.Time) (Projection, error) {
	p := Projection{Scope: scope.Kind, TaxRate: TVARate}

	switch scope.Kind {
	case ScopeCumulative:
		p.Tuition = r.PaidAmounts.Tuition
		p.Uniform = r.PaidAmounts.Uniform
		p.Transportation = r.PaidAmounts.Transportation
		p.InscriptionFee = r.PaidAmounts.InscriptionFee

	case ScopeSingleMonth:
		if err := projectSingleMonth(r, scope.MonthIndex, &p); err != nil {
			return Projection{}, err
		}

	case ScopeSingleComponent:
		if err := projectSingleComponent(r, scope, &p); err != nil {
			return Projection{}, err
		}

	default:
		return Projection{}, fmt.Errorf("unknown projection scope %q", scope.Kind)
	}

	p.TotalHT = p.Tuition + p.Uniform + p.Transportation + p.InscriptionFee
	p.TaxAmount = p.TotalHT * TVARate / 100
	p.TotalTTC = p.TotalHT + p.TaxAmount

	if includesTuition(scope) && r.Discount.Enabled {
		p.Discount = discountBreakdown(r, scope)
	}

	p.InvoiceDate = invoiceDate(r, scope, now)
	return p, nil
}

func projectSingleMonth(r *billing.StudentPaymentRecord, idx int, p *Projection) error {
	if idx < 0 || idx >= len(r.TuitionMonthlyPayments) {
		return fmt.Errorf("month index %d outside schedule", idx)
	}
	month := r.TuitionMonthlyPayments[idx]
	p.Month = month.Month
	p.MonthName = month.MonthName
	p.Tuition = month.Amount

	if r.Transportation.Using && idx < len(r.Transportation.MonthlyPayments) {
		p.Transportation = r.Transportation.MonthlyPayments[idx].Amount
	}

	// Binary components appear on a month invoice only when they were
	// settled in that same month. An unpaid instalment has no payment date,
	// so fall back to the month's own calendar window.
	ref := month.PaymentDate
	if ref == nil {
		due := month.DueDate
		ref = &due
	}
	if r.Uniform.IsPaid && sameMonth(r.Uniform.PaymentDate, ref) {
		p.Uniform = r.Uniform.Price
	}
	if r.InscriptionFee.IsPaid && sameMonth(r.InscriptionFee.PaymentDate, ref) {
		p.InscriptionFee = r.InscriptionFee.Price
	}
	return nil
}

func projectSingleComponent(r *billing.StudentPaymentRecord, scope Scope, p *Projection) error {
	switch scope.Component {
	case billing.ComponentUniform:
		if r.Uniform.IsPaid {
			p.Uniform = r.Uniform.Price
		}
	case billing.ComponentInscriptionFee:
		if r.InscriptionFee.IsPaid {
			p.InscriptionFee = r.InscriptionFee.Price
		}
	case billing.ComponentTuition:
		if scope.MonthIndex >= 0 {
			if scope.MonthIndex >= len(r.TuitionMonthlyPayments) {
				return fmt.Errorf("month index %d outside schedule", scope.MonthIndex)
			}
			month := r.TuitionMonthlyPayments[scope.MonthIndex]
			p.Month = month.Month
			p.MonthName = month.MonthName
			p.Tuition = month.Amount
		} else {
			p.Tuition = r.PaidAmounts.Tuition
		}
	case billing.ComponentTransportation:
		if !r.Transportation.Using {
			break
		}
		if scope.MonthIndex >= 0 {
			if scope.MonthIndex >= len(r.Transportation.MonthlyPayments) {
				return fmt.Errorf("month index %d outside schedule", scope.MonthIndex)
			}
			month := r.Transportation.MonthlyPayments[scope.MonthIndex]
			p.Month = month.Month
			p.MonthName = month.MonthName
			p.Transportation = month.Amount
		} else {
			p.Transportation = r.PaidAmounts.Transportation
		}
	default:
		return fmt.Errorf("unknown component %q", scope.Component)
	}
	return nil
}

func includesTuition(scope Scope) bool {
	switch scope.Kind {
	case ScopeCumulative, ScopeSingleMonth:
		return true
	case ScopeSingleComponent:
		return scope.Component == billing.ComponentTuition
	}
	return false
}

// discountBreakdown derives the original/discounted pair from the stored
// undiscounted annual snapshot, never by back-dividing a discounted figure.
func discountBreakdown(r *billing.StudentPaymentRecord, scope Scope) *DiscountBreakdown {
	monthScoped := scope.Kind == ScopeSingleMonth ||
		(scope.Kind == ScopeSingleComponent && scope.Component == billing.ComponentTuition && scope.MonthIndex >= 0)

	if monthScoped && len(r.TuitionMonthlyPayments) > 0 {
		n := int64(len(r.TuitionMonthlyPayments))
		idx := scope.MonthIndex
		final := r.TuitionMonthlyPayments[idx].Amount

		// Original per-month share, last month absorbing the remainder,
		// mirroring how schedules are allocated.
		base := r.TuitionAnnualAmount / n
		original := base
		if idx == len(r.TuitionMonthlyPayments)-1 {
			original = r.TuitionAnnualAmount - base*(n-1)
		}
		return &DiscountBreakdown{
			Percentage:     r.Discount.Percentage,
			OriginalAmount: original,
			DiscountAmount: original - final,
			FinalAmount:    final,
		}
	}

	return &DiscountBreakdown{
		Percentage:     r.Discount.Percentage,
		OriginalAmount: r.TuitionAnnualAmount,
		DiscountAmount: r.Discount.Amount,
		FinalAmount:    r.TuitionAnnualAmount - r.Discount.Amount,
	}
}

// invoiceDate picks the most specific payment date available: the scoped
// component's own date, then the scoped month's date, then the most recent
// payment anywhere on the record, then now.
func invoiceDate(r *billing.StudentPaymentRecord, scope Scope, now time.Time) time.Time {
	if scope.Kind == ScopeSingleComponent {
		switch scope.Component {
		case billing.ComponentUniform:
			if r.Uniform.PaymentDate != nil {
				return *r.Uniform.PaymentDate
			}
		case billing.ComponentInscriptionFee:
			if r.InscriptionFee.PaymentDate != nil {
				return *r.InscriptionFee.PaymentDate
			}
		}
	}

	if scope.Kind == ScopeSingleMonth && scope.MonthIndex >= 0 && scope.MonthIndex < len(r.TuitionMonthlyPayments) {
		if d := r.TuitionMonthlyPayments[scope.MonthIndex].PaymentDate; d != nil {
			return *d
		}
	}

	if d := billing.MostRecentPaymentDate(r); d != nil {
		return *d
	}
	return now
}

func sameMonth(a, b *time.Time) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// InvoiceNumber builds the human-facing reference, e.g.
// INV-2024-2025-MB-384712.
func InvoiceNumber(academicYear, studentName string, at time.Time) string {
	initials := studentInitials(studentName)
	ts := fmt.Sprintf("%d", at.UnixMilli())
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}
	return fmt.Sprintf("INV-%s-%s-%s", academicYear, initials, ts)
}

func studentInitials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		for _, r := range part {
			b.WriteRune(r)
			break
		}
	}
	if b.Len() == 0 {
		return "XX"
	}
	return strings.ToUpper(b.String())
}

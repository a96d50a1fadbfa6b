package billing

import (
	"sort"
	"time"
)

// History entry types. The component alone does not distinguish a monthly
// tuition instalment from an annual settlement, so entries carry their own tag.
const (
	HistoryTypeTuitionMonthly        = "tuition_monthly"
	HistoryTypeTuitionAnnual         = "tuition_annual"
	HistoryTypeTransportationMonthly = "transportation_monthly"
	HistoryTypeUniform               = "uniform"
	HistoryTypeInscriptionFee        = "inscription_fee"
)

// HistoryEntry is one settled (or partially settled) payment, flattened out
// of the aggregate for display.
type HistoryEntry struct {
	Component     string     `json:"component"`
	Type          string     `json:"type"`
	Month         int        `json:"month,omitempty"`
	MonthName     string     `json:"month_name,omitempty"`
	Amount        int64      `json:"amount"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	Method        string     `json:"method,omitempty"`
	ReceiptNumber string     `json:"receipt_number,omitempty"`
}

// PaymentHistory flattens every recorded payment across all components into
// one reverse-chronological list.
func PaymentHistory(r *StudentPaymentRecord) []HistoryEntry {
	var entries []HistoryEntry

	for _, m := range r.TuitionMonthlyPayments {
		if m.PaidAmount > 0 {
			entries = append(entries, HistoryEntry{
				Component:     ComponentTuition,
				Type:          HistoryTypeTuitionMonthly,
				Month:         m.Month,
				MonthName:     m.MonthName,
				Amount:        m.PaidAmount,
				PaymentDate:   m.PaymentDate,
				Method:        m.Method,
				ReceiptNumber: m.ReceiptNumber,
			})
		}
	}

	if r.AnnualTuition != nil && r.AnnualTuition.IsPaid {
		entries = append(entries, HistoryEntry{
			Component:     ComponentTuition,
			Type:          HistoryTypeTuitionAnnual,
			Amount:        r.AnnualTuition.Amount,
			PaymentDate:   r.AnnualTuition.PaymentDate,
			Method:        r.AnnualTuition.Method,
			ReceiptNumber: r.AnnualTuition.ReceiptNumber,
		})
	}

	for _, m := range r.Transportation.MonthlyPayments {
		if m.PaidAmount > 0 {
			entries = append(entries, HistoryEntry{
				Component:     ComponentTransportation,
				Type:          HistoryTypeTransportationMonthly,
				Month:         m.Month,
				MonthName:     m.MonthName,
				Amount:        m.PaidAmount,
				PaymentDate:   m.PaymentDate,
				Method:        m.Method,
				ReceiptNumber: m.ReceiptNumber,
			})
		}
	}

	if r.Uniform.IsPaid {
		entries = append(entries, HistoryEntry{
			Component:     ComponentUniform,
			Type:          HistoryTypeUniform,
			Amount:        r.Uniform.Price,
			PaymentDate:   r.Uniform.PaymentDate,
			Method:        r.Uniform.Method,
			ReceiptNumber: r.Uniform.ReceiptNumber,
		})
	}

	if r.InscriptionFee.IsPaid {
		entries = append(entries, HistoryEntry{
			Component:     ComponentInscriptionFee,
			Type:          HistoryTypeInscriptionFee,
			Amount:        r.InscriptionFee.Price,
			PaymentDate:   r.InscriptionFee.PaymentDate,
			Method:        r.InscriptionFee.Method,
			ReceiptNumber: r.InscriptionFee.ReceiptNumber,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ti, tj := entries[i].PaymentDate, entries[j].PaymentDate
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.After(*tj)
		}
	})

	return entries
}

// MostRecentPaymentDate scans the whole history for the latest payment, or
// nil when nothing was ever paid.
func MostRecentPaymentDate(r *StudentPaymentRecord) *time.Time {
	history := PaymentHistory(r)
	if len(history) == 0 {
		return nil
	}
	return history[0].PaymentDate
}

package dashboard

import (
	"sort"
	"time"

	"schoolpay/internal/billing"
)

// StatusCounts tallies records per overall status. NoRecord counts enrolled
// students that have no payment record for the year.
type StatusCounts struct {
	Pending   int `json:"pending"`
	Partial   int `json:"partial"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
	NoRecord  int `json:"no_record"`
}

// ComponentFigures carries expected, collected and outstanding money for
// one component across the whole school.
type ComponentFigures struct {
	Expected    int64 `json:"expected"`
	Collected   int64 `json:"collected"`
	Outstanding int64 `json:"outstanding"`
}

type ComponentBreakdown struct {
	Tuition        ComponentFigures `json:"tuition"`
	Uniform        ComponentFigures `json:"uniform"`
	Transportation ComponentFigures `json:"transportation"`
	InscriptionFee ComponentFigures `json:"inscription_fee"`
	GrandTotal     ComponentFigures `json:"grand_total"`
}

// CategorySummary rolls the money figures up per grade category.
type CategorySummary struct {
	Category    string `json:"category"`
	Records     int    `json:"records"`
	Expected    int64  `json:"expected"`
	Collected   int64  `json:"collected"`
	Outstanding int64  `json:"outstanding"`
}

// ComponentAdoption counts how many records opted into each optional
// component and how many of those are settled.
type ComponentAdoption struct {
	UniformPurchased int `json:"uniform_purchased"`
	UniformPaid      int `json:"uniform_paid"`
	TransportClose   int `json:"transport_close"`
	TransportFar     int `json:"transport_far"`
	InscriptionDue   int `json:"inscription_due"`
	InscriptionPaid  int `json:"inscription_paid"`
}

type Summary struct {
	AcademicYear string `json:"academic_year"`
	Students     int    `json:"students"`
	Records      int    `json:"records"`

	StatusCounts StatusCounts       `json:"status_counts"`
	Amounts      ComponentBreakdown `json:"amounts"`
	Adoption     ComponentAdoption  `json:"adoption"`
	// Collected per mille of expected, 0 when nothing is expected.
	CollectionRate int64             `json:"collection_rate"`
	Categories     []CategorySummary `json:"categories"`

	DiscountedRecords int   `json:"discounted_records"`
	DiscountTotal     int64 `json:"discount_total"`

	GeneratedAt time.Time `json:"generated_at"`
}

func addFigures(f *ComponentFigures, expected, collected, outstanding int64) {
	f.Expected += expected
	f.Collected += collected
	f.Outstanding += outstanding
}

// Summarize reduces a set of record snapshots to the dashboard view. Pure:
// statuses are re-derived against now so overdue reflects the clock, but
// the snapshots themselves are scratch copies.
func Summarize(records []billing.StudentPaymentRecord, totalStudents int, academicYear string, now time.Time) Summary {
	s := Summary{
		AcademicYear: academicYear,
		Students:     totalStudents,
		Records:      len(records),
		GeneratedAt:  now,
	}

	byCategory := make(map[string]*CategorySummary)

	for i := range records {
		rec := records[i].Clone()
		billing.Recalculate(rec)
		billing.ResolveStatuses(rec, now)

		switch rec.OverallStatus {
		case billing.StatusPending:
			s.StatusCounts.Pending++
		case billing.StatusPartial:
			s.StatusCounts.Partial++
		case billing.StatusCompleted:
			s.StatusCounts.Completed++
		case billing.StatusOverdue:
			s.StatusCounts.Overdue++
		}

		addFigures(&s.Amounts.Tuition, rec.TotalAmounts.Tuition, rec.PaidAmounts.Tuition, rec.RemainingAmounts.Tuition)
		addFigures(&s.Amounts.Uniform, rec.TotalAmounts.Uniform, rec.PaidAmounts.Uniform, rec.RemainingAmounts.Uniform)
		addFigures(&s.Amounts.Transportation, rec.TotalAmounts.Transportation, rec.PaidAmounts.Transportation, rec.RemainingAmounts.Transportation)
		addFigures(&s.Amounts.InscriptionFee, rec.TotalAmounts.InscriptionFee, rec.PaidAmounts.InscriptionFee, rec.RemainingAmounts.InscriptionFee)
		addFigures(&s.Amounts.GrandTotal, rec.TotalAmounts.GrandTotal, rec.PaidAmounts.GrandTotal, rec.RemainingAmounts.GrandTotal)

		cat, ok := byCategory[rec.GradeCategory]
		if !ok {
			cat = &CategorySummary{Category: rec.GradeCategory}
			byCategory[rec.GradeCategory] = cat
		}
		cat.Records++
		cat.Expected += rec.TotalAmounts.GrandTotal
		cat.Collected += rec.PaidAmounts.GrandTotal
		cat.Outstanding += rec.RemainingAmounts.GrandTotal

		if rec.Discount.Enabled {
			s.DiscountedRecords++
			s.DiscountTotal += rec.Discount.Amount
		}

		if rec.Uniform.Purchased {
			s.Adoption.UniformPurchased++
			if rec.Uniform.IsPaid {
				s.Adoption.UniformPaid++
			}
		}
		if rec.Transportation.Using {
			if rec.Transportation.Zone == billing.TransportZoneFar {
				s.Adoption.TransportFar++
			} else {
				s.Adoption.TransportClose++
			}
		}
		if rec.InscriptionFee.Applicable {
			s.Adoption.InscriptionDue++
			if rec.InscriptionFee.IsPaid {
				s.Adoption.InscriptionPaid++
			}
		}
	}

	if missing := totalStudents - len(records); missing > 0 {
		s.StatusCounts.NoRecord = missing
	}

	if s.Amounts.GrandTotal.Expected > 0 {
		s.CollectionRate = s.Amounts.GrandTotal.Collected * 1000 / s.Amounts.GrandTotal.Expected
	}

	for _, cat := range byCategory {
		s.Categories = append(s.Categories, *cat)
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		return s.Categories[i].Category < s.Categories[j].Category
	})

	return s
}

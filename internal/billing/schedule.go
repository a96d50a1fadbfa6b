package billing

import (
	"fmt"
	"time"

	"schoolpay/internal/paymentconfig"
)

var frenchMonthNames = map[int]string{
	1:  "Janvier",
	2:  "Février",
	3:  "Mars",
	4:  "Avril",
	5:  "Mai",
	6:  "Juin",
	7:  "Juillet",
	8:  "Août",
	9:  "Septembre",
	10: "Octobre",
	11: "Novembre",
	12: "Décembre",
}

// MonthName returns the French name used on schedules and invoices.
func MonthName(month int) string {
	return frenchMonthNames[month]
}

// scheduleMonths lists the calendar months of the payment window in academic
// order. The window wraps the year boundary: startMonth 9 with 10 months
// yields September through June.
func scheduleMonths(window paymentconfig.ScheduleWindow) ([]int, error) {
	if window.TotalMonths < 1 || window.TotalMonths > 12 {
		return nil, fmt.Errorf("schedule window has %d months", window.TotalMonths)
	}
	if window.StartMonth < 1 || window.StartMonth > 12 {
		return nil, fmt.Errorf("schedule window starts at month %d", window.StartMonth)
	}
	months := make([]int, window.TotalMonths)
	for i := range months {
		months[i] = (window.StartMonth-1+i)%12 + 1
	}
	return months, nil
}

// dueDateFor places the due date on the first of the month. Months of
// August onward fall in the opening calendar year of the academic year,
// earlier months in the following one.
func dueDateFor(month int, academicYearStart int) time.Time {
	year := academicYearStart
	if month < 8 {
		year = academicYearStart + 1
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// allocateAcrossMonths splits an annual amount over n months with no lost
// remainder: every month gets the floor share and the last month absorbs
// whatever division left over, so the entries always sum to the exact
// annual amount.
func allocateAcrossMonths(annual int64, n int) []int64 {
	amounts := make([]int64, n)
	base := annual / int64(n)
	for i := range amounts {
		amounts[i] = base
	}
	amounts[n-1] = annual - base*int64(n-1)
	return amounts
}

// GenerateTuitionSchedule builds the ordered monthly tuition entries for one
// academic year.
func GenerateTuitionSchedule(annualAmount int64, window paymentconfig.ScheduleWindow, academicYear string) ([]MonthlyPayment, error) {
	if annualAmount <= 0 {
		return nil, fmt.Errorf("annual tuition amount %d is not positive", annualAmount)
	}
	return generateSchedule(window, academicYear, func(n int) []int64 {
		return allocateAcrossMonths(annualAmount, n)
	})
}

// GenerateTransportationSchedule builds the monthly transportation entries;
// unlike tuition each month carries the flat tariff.
func GenerateTransportationSchedule(monthlyTariff int64, window paymentconfig.ScheduleWindow, academicYear string) ([]MonthlyPayment, error) {
	if monthlyTariff <= 0 {
		return nil, fmt.Errorf("monthly transport tariff %d is not positive", monthlyTariff)
	}
	return generateSchedule(window, academicYear, func(n int) []int64 {
		amounts := make([]int64, n)
		for i := range amounts {
			amounts[i] = monthlyTariff
		}
		return amounts
	})
}

func generateSchedule(window paymentconfig.ScheduleWindow, academicYear string, allocate func(n int) []int64) ([]MonthlyPayment, error) {
	startYear, err := paymentconfig.AcademicYearStart(academicYear)
	if err != nil {
		return nil, err
	}
	months, err := scheduleMonths(window)
	if err != nil {
		return nil, err
	}

	amounts := allocate(len(months))
	entries := make([]MonthlyPayment, len(months))
	for i, month := range months {
		entries[i] = MonthlyPayment{
			Month:     month,
			MonthName: MonthName(month),
			DueDate:   dueDateFor(month, startYear),
			Amount:    amounts[i],
			Status:    StatusPending,
		}
	}
	return entries, nil
}

// reallocateSchedule re-prices an existing schedule to a new annual amount
// while keeping every entry's payment history. Statuses are re-derived from
// the new scheduled amounts.
func reallocateSchedule(entries []MonthlyPayment, newAnnual int64) {
	if len(entries) == 0 {
		return
	}
	amounts := allocateAcrossMonths(newAnnual, len(entries))
	for i := range entries {
		entries[i].Amount = amounts[i]
	}
}

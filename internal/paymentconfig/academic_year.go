package paymentconfig

import (
	"fmt"
	"regexp"
	"time"
)

var academicYearPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

// CurrentAcademicYear derives the running academic year from a point in
// time. The school year rolls over in August: July 2025 is still "2024-2025",
// September 2025 is "2025-2026".
func CurrentAcademicYear(now time.Time) string {
	year := now.Year()
	if int(now.Month()) < 8 {
		return fmt.Sprintf("%d-%d", year-1, year)
	}
	return fmt.Sprintf("%d-%d", year, year+1)
}

// IsValidAcademicYear checks the "YYYY-YYYY" shape with consecutive years.
func IsValidAcademicYear(year string) bool {
	if !academicYearPattern.MatchString(year) {
		return false
	}
	var first, second int
	if _, err := fmt.Sscanf(year, "%d-%d", &first, &second); err != nil {
		return false
	}
	return second == first+1
}

// AcademicYearStart returns the calendar year the academic year opens in.
func AcademicYearStart(year string) (int, error) {
	if !IsValidAcademicYear(year) {
		return 0, fmt.Errorf("invalid academic year %q", year)
	}
	var first, second int
	fmt.Sscanf(year, "%d-%d", &first, &second)
	return first, nil
}

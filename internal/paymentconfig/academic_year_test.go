package paymentconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentAcademicYear(t *testing.T) {
	cases := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), "2024-2025"},
		{time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), "2024-2025"},
		{time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC), "2024-2025"},
		// August opens the next school year.
		{time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), "2025-2026"},
		{time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), "2025-2026"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CurrentAcademicYear(c.at), c.at.Format(time.DateOnly))
	}
}

func TestIsValidAcademicYear(t *testing.T) {
	assert.True(t, IsValidAcademicYear("2024-2025"))
	assert.True(t, IsValidAcademicYear("1999-2000"))

	assert.False(t, IsValidAcademicYear("2024-2026"))
	assert.False(t, IsValidAcademicYear("2025-2024"))
	assert.False(t, IsValidAcademicYear("2024/2025"))
	assert.False(t, IsValidAcademicYear("24-25"))
	assert.False(t, IsValidAcademicYear(""))
}

func TestAcademicYearStart(t *testing.T) {
	start, err := AcademicYearStart("2024-2025")
	assert.NoError(t, err)
	assert.Equal(t, 2024, start)

	_, err = AcademicYearStart("garbage")
	assert.Error(t, err)
}

func TestCategoryForGrade(t *testing.T) {
	cat, ok := CategoryForGrade("Maternal")
	assert.True(t, ok)
	assert.Equal(t, CategoryMaternelle, cat)

	cat, ok = CategoryForGrade("3ème année primaire")
	assert.True(t, ok)
	assert.Equal(t, CategoryPrimaire, cat)

	cat, ok = CategoryForGrade("2ème année lycée")
	assert.True(t, ok)
	assert.Equal(t, CategorySecondaire, cat)

	_, ok = CategoryForGrade("CM2")
	assert.False(t, ok)
}

func TestAllGrades(t *testing.T) {
	grades := AllGrades()
	assert.Len(t, grades, 14)
	assert.Equal(t, "Maternal", grades[0])
	for _, g := range grades {
		_, ok := CategoryForGrade(g)
		assert.True(t, ok, g)
	}
}

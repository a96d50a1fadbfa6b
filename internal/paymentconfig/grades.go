package paymentconfig

// Grade categories used for pricing tiers and reporting rollups.
const (
	CategoryMaternelle = "maternelle"
	CategoryPrimaire   = "primaire"
	CategorySecondaire = "secondaire"
)

// The grade catalogue mirrors the Tunisian school ladder the product serves.
var (
	maternelleGrades = []string{"Maternal"}

	primaireGrades = []string{
		"1ère année primaire",
		"2ème année primaire",
		"3ème année primaire",
		"4ème année primaire",
		"5ème année primaire",
		"6ème année primaire",
	}

	secondaireGrades = []string{
		"7ème année",
		"8ème année",
		"9ème année",
		"1ère année lycée",
		"2ème année lycée",
		"3ème année lycée",
		"4ème année lycée",
	}
)

// AllGrades returns every known grade in ladder order.
func AllGrades() []string {
	grades := make([]string, 0, len(maternelleGrades)+len(primaireGrades)+len(secondaireGrades))
	grades = append(grades, maternelleGrades...)
	grades = append(grades, primaireGrades...)
	grades = append(grades, secondaireGrades...)
	return grades
}

// CategorizedGrades returns the catalogue grouped by category.
func CategorizedGrades() map[string][]string {
	return map[string][]string{
		CategoryMaternelle: append([]string(nil), maternelleGrades...),
		CategoryPrimaire:   append([]string(nil), primaireGrades...),
		CategorySecondaire: append([]string(nil), secondaireGrades...),
	}
}

// CategoryForGrade maps a grade to its pricing category. The bool is false
// for grades outside the catalogue.
func CategoryForGrade(grade string) (string, bool) {
	for _, g := range maternelleGrades {
		if g == grade {
			return CategoryMaternelle, true
		}
	}
	for _, g := range primaireGrades {
		if g == grade {
			return CategoryPrimaire, true
		}
	}
	for _, g := range secondaireGrades {
		if g == grade {
			return CategorySecondaire, true
		}
	}
	return "", false
}

// IsValidCategory reports whether cat names a known grade category.
func IsValidCategory(cat string) bool {
	switch cat {
	case CategoryMaternelle, CategoryPrimaire, CategorySecondaire:
		return true
	}
	return false
}

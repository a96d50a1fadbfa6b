package invoice

import "time"

// ProjectionRequest comes in as query parameters on the invoice endpoint.
// MonthIndex of -1 means "not month-scoped".
type ProjectionRequest struct {
	AcademicYear string `form:"academic_year"`
	Scope        string `form:"scope" binding:"required,oneof=cumulative single_month single_component"`
	MonthIndex   *int   `form:"month_index" binding:"omitempty,min=0,max=11"`
	Component    string `form:"component" binding:"omitempty,oneof=tuition uniform transportation inscriptionFee"`
}

type InvoiceResponse struct {
	InvoiceNumber string     `json:"invoiceNumber"`
	AcademicYear  string     `json:"academicYear"`
	StudentID     string     `json:"studentId"`
	StudentName   string     `json:"studentName"`
	Grade         string     `json:"grade"`
	GeneratedAt   time.Time  `json:"generatedAt"`
	Projection    Projection `json:"projection"`
}

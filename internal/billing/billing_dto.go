package billing

import "time"

type GenerateRecordRequest struct {
	StudentID    string `json:"studentId" binding:"required,uuid"`
	AcademicYear string `json:"academicYear" binding:"omitempty"`
	PaymentType  string `json:"paymentType" binding:"omitempty,oneof=monthly annual"`

	UseTransportation   bool   `json:"useTransportation"`
	TransportZone       string `json:"transportZone" binding:"omitempty,oneof=close far"`
	PurchaseUniform     bool   `json:"purchaseUniform"`
	ApplyInscriptionFee bool   `json:"applyInscriptionFee"`
}

type MonthlyPaymentRequest struct {
	MonthIndex *int   `json:"monthIndex" binding:"required,min=0,max=11"`
	Amount     int64  `json:"amount" binding:"required,gt=0"`
	Method     string `json:"method" binding:"required,oneof=cash check bank_transfer online"`
	Date       string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type FlatPaymentRequest struct {
	Method string `json:"method" binding:"required,oneof=cash check bank_transfer online"`
	Date   string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type ApplyDiscountRequest struct {
	Type       string `json:"type" binding:"required,oneof=monthly annual"`
	Percentage int    `json:"percentage" binding:"required,min=1,max=100"`
	Notes      string `json:"notes" binding:"omitempty,max=500"`
}

// UpdateComponentsRequest toggles component opt-ins on an existing record.
// Nil fields are left as they are.
type UpdateComponentsRequest struct {
	UseTransportation   *bool  `json:"useTransportation"`
	TransportZone       string `json:"transportZone" binding:"omitempty,oneof=close far"`
	PurchaseUniform     *bool  `json:"purchaseUniform"`
	ApplyInscriptionFee *bool  `json:"applyInscriptionFee"`
}

type RecordResponse struct {
	ID            string `json:"id"`
	SchoolID      string `json:"schoolId"`
	StudentID     string `json:"studentId"`
	AcademicYear  string `json:"academicYear"`
	Grade         string `json:"grade"`
	GradeCategory string `json:"gradeCategory"`
	PaymentType   string `json:"paymentType"`

	TuitionAnnualAmount    int64                 `json:"tuitionAnnualAmount"`
	TuitionMonthlyPayments []MonthlyPayment      `json:"tuitionMonthlyPayments"`
	AnnualTuition          *AnnualTuitionPayment `json:"annualTuition,omitempty"`
	Uniform                UniformPayment        `json:"uniform"`
	Transportation         TransportationPayment `json:"transportation"`
	InscriptionFee         InscriptionFeePayment `json:"inscriptionFee"`
	Discount               Discount              `json:"discount"`

	TotalAmounts     ComponentAmounts `json:"totalAmounts"`
	PaidAmounts      ComponentAmounts `json:"paidAmounts"`
	RemainingAmounts ComponentAmounts `json:"remainingAmounts"`

	OverallStatus   string          `json:"overallStatus"`
	ComponentStatus ComponentStatus `json:"componentStatus"`

	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func mapToResponse(r StudentPaymentRecord) RecordResponse {
	return RecordResponse{
		ID:                     r.ID.String(),
		SchoolID:               r.SchoolID.String(),
		StudentID:              r.StudentID.String(),
		AcademicYear:           r.AcademicYear,
		Grade:                  r.Grade,
		GradeCategory:          r.GradeCategory,
		PaymentType:            r.PaymentType,
		TuitionAnnualAmount:    r.TuitionAnnualAmount,
		TuitionMonthlyPayments: r.TuitionMonthlyPayments,
		AnnualTuition:          r.AnnualTuition,
		Uniform:                r.Uniform,
		Transportation:         r.Transportation,
		InscriptionFee:         r.InscriptionFee,
		Discount:               r.Discount,
		TotalAmounts:           r.TotalAmounts,
		PaidAmounts:            r.PaidAmounts,
		RemainingAmounts:       r.RemainingAmounts,
		OverallStatus:          r.OverallStatus,
		ComponentStatus:        r.ComponentStatus,
		Version:                r.Version,
		UpdatedAt:              r.UpdatedAt,
	}
}

// Bulk operation payloads.

type BulkGenerateRequest struct {
	AcademicYear string `json:"academicYear" binding:"omitempty"`
	PaymentType  string `json:"paymentType" binding:"omitempty,oneof=monthly annual"`
}

type BulkUpdateRequest struct {
	AcademicYear     string `json:"academicYear" binding:"omitempty"`
	UpdateUnpaidOnly bool   `json:"updateUnpaidOnly"`
}

type BulkDeleteRequest struct {
	AcademicYear string `json:"academicYear" binding:"required"`
}

type BulkError struct {
	StudentID string `json:"studentId"`
	Error     string `json:"error"`
}

// BulkResult accumulates the fan-out outcome; one student's failure never
// aborts the batch.
type BulkResult struct {
	Success int         `json:"success"`
	Skipped int         `json:"skipped"`
	Errors  []BulkError `json:"errors"`
}

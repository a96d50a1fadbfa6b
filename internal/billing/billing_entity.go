package billing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Fee components of a student record.
const (
	ComponentTuition        = "tuition"
	ComponentUniform        = "uniform"
	ComponentTransportation = "transportation"
	ComponentInscriptionFee = "inscriptionFee"
)

// Per-month statuses. A month is "paid" once its scheduled amount is fully
// covered; component and overall statuses use "completed" instead.
const (
	StatusPending       = "pending"
	StatusPartial       = "partial"
	StatusPaid          = "paid"
	StatusCompleted     = "completed"
	StatusOverdue       = "overdue"
	StatusNotApplicable = "not_applicable"
)

const (
	PaymentTypeMonthly = "monthly"
	PaymentTypeAnnual  = "annual"
)

const (
	MethodCash         = "cash"
	MethodCheck        = "check"
	MethodBankTransfer = "bank_transfer"
	MethodOnline       = "online"
)

const (
	DiscountTypeMonthly = "monthly"
	DiscountTypeAnnual  = "annual"
)

const (
	TransportZoneClose = "close"
	TransportZoneFar   = "far"
)

func IsValidMethod(method string) bool {
	switch method {
	case MethodCash, MethodCheck, MethodBankTransfer, MethodOnline:
		return true
	}
	return false
}

// MonthlyPayment is one scheduled instalment. Month is the calendar month
// (1-12); entries are stored in academic order, September first.
type MonthlyPayment struct {
	Month         int        `json:"month"`
	MonthName     string     `json:"month_name"`
	DueDate       time.Time  `json:"due_date"`
	Amount        int64      `json:"amount"`
	PaidAmount    int64      `json:"paid_amount"`
	Status        string     `json:"status"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	Method        string     `json:"method,omitempty"`
	ReceiptNumber string     `json:"receipt_number,omitempty"`
}

// UniformPayment is binary: either the full price is settled or nothing is.
type UniformPayment struct {
	Purchased     bool       `json:"purchased"`
	Price         int64      `json:"price"`
	IsPaid        bool       `json:"is_paid"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	Method        string     `json:"method,omitempty"`
	ReceiptNumber string     `json:"receipt_number,omitempty"`
}

type InscriptionFeePayment struct {
	Applicable    bool       `json:"applicable"`
	Price         int64      `json:"price"`
	IsPaid        bool       `json:"is_paid"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	Method        string     `json:"method,omitempty"`
	ReceiptNumber string     `json:"receipt_number,omitempty"`
}

type TransportationPayment struct {
	Using           bool             `json:"using"`
	Zone            string           `json:"zone,omitempty"`
	MonthlyPrice    int64            `json:"monthly_price"`
	TotalAmount     int64            `json:"total_amount"`
	MonthlyPayments []MonthlyPayment `json:"monthly_payments,omitempty"`
}

type AnnualTuitionPayment struct {
	IsPaid        bool       `json:"is_paid"`
	Amount        int64      `json:"amount"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	Method        string     `json:"method,omitempty"`
	ReceiptNumber string     `json:"receipt_number,omitempty"`
}

// Discount is a single tuition-scoped percentage reduction, toggled as a
// unit. Amount is the reduction in millimes, computed from the original
// configuration-derived tuition so repeated applications cannot compound.
type Discount struct {
	Enabled     bool       `json:"enabled"`
	Type        string     `json:"type,omitempty"`
	Percentage  int        `json:"percentage,omitempty"`
	Amount      int64      `json:"amount,omitempty"`
	AppliedDate *time.Time `json:"applied_date,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// ComponentAmounts is one bucket of the ledger (total, paid or remaining).
type ComponentAmounts struct {
	Tuition        int64 `json:"tuition"`
	Uniform        int64 `json:"uniform"`
	Transportation int64 `json:"transportation"`
	InscriptionFee int64 `json:"inscription_fee"`
	GrandTotal     int64 `json:"grand_total"`
}

type ComponentStatus struct {
	Tuition        string `json:"tuition"`
	Uniform        string `json:"uniform"`
	Transportation string `json:"transportation"`
	InscriptionFee string `json:"inscription_fee"`
}

// StudentPaymentRecord is the billing aggregate: one row per student per
// academic year. Prices are snapshotted at generation time so later
// configuration edits do not silently reprice history; the bulk
// update-existing operation is the only repricing path.
type StudentPaymentRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID     uuid.UUID `gorm:"type:uuid;not null;index:idx_record_school_year;index:uq_record_student_year,unique"`
	StudentID    uuid.UUID `gorm:"type:uuid;not null;index:uq_record_student_year,unique"`
	AcademicYear string    `gorm:"type:varchar(9);not null;index:idx_record_school_year;index:uq_record_student_year,unique"`

	Grade         string `gorm:"type:varchar(40);not null"`
	GradeCategory string `gorm:"type:varchar(20);not null;index"`
	PaymentType   string `gorm:"type:varchar(10);not null;default:monthly"`

	// Annual tuition snapshot, before discount.
	TuitionAnnualAmount int64 `gorm:"not null"`
	GracePeriodDays     int   `gorm:"not null;default:5"`

	TuitionMonthlyPayments datatypes.JSONSlice[MonthlyPayment] `gorm:"type:jsonb"`
	AnnualTuition          *AnnualTuitionPayment               `gorm:"type:jsonb;serializer:json"`
	Uniform                UniformPayment                      `gorm:"type:jsonb;serializer:json;not null"`
	Transportation         TransportationPayment               `gorm:"type:jsonb;serializer:json;not null"`
	InscriptionFee         InscriptionFeePayment               `gorm:"type:jsonb;serializer:json;not null"`
	Discount               Discount                            `gorm:"type:jsonb;serializer:json;not null"`

	TotalAmounts     ComponentAmounts `gorm:"type:jsonb;serializer:json;not null"`
	PaidAmounts      ComponentAmounts `gorm:"type:jsonb;serializer:json;not null"`
	RemainingAmounts ComponentAmounts `gorm:"type:jsonb;serializer:json;not null"`

	OverallStatus   string          `gorm:"type:varchar(15);not null;default:pending;index"`
	ComponentStatus ComponentStatus `gorm:"type:jsonb;serializer:json;not null"`

	// Bumped on every write; concurrent mutations of the same record are
	// rejected instead of losing an accumulated paidAmount.
	Version int64 `gorm:"not null;default:1"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (StudentPaymentRecord) TableName() string {
	return "student_payment_records"
}

// Clone deep-copies the aggregate so mutating operations can validate and
// compute on a scratch copy, leaving the original untouched on failure.
func (r *StudentPaymentRecord) Clone() *StudentPaymentRecord {
	cp := *r

	cp.TuitionMonthlyPayments = make(datatypes.JSONSlice[MonthlyPayment], len(r.TuitionMonthlyPayments))
	copy(cp.TuitionMonthlyPayments, r.TuitionMonthlyPayments)

	if r.AnnualTuition != nil {
		annual := *r.AnnualTuition
		cp.AnnualTuition = &annual
	}

	cp.Transportation.MonthlyPayments = make([]MonthlyPayment, len(r.Transportation.MonthlyPayments))
	copy(cp.Transportation.MonthlyPayments, r.Transportation.MonthlyPayments)

	return &cp
}

package paymentconfig

import (
	"time"

	"github.com/google/uuid"
)

// All amounts are stored in the smallest currency unit (millimes) to avoid
// floating point drift in the billing math.

type UniformConfig struct {
	Enabled bool  `json:"enabled"`
	Price   int64 `json:"price"`
}

type TransportTariff struct {
	Enabled      bool  `json:"enabled"`
	MonthlyPrice int64 `json:"monthly_price"`
}

type TransportationConfig struct {
	Enabled bool `json:"enabled"`
	Tariffs struct {
		Close TransportTariff `json:"close"`
		Far   TransportTariff `json:"far"`
	} `json:"tariffs"`
}

// InscriptionFeeConfig prices the one-off registration fee per grade tier.
type InscriptionFeeConfig struct {
	Enabled bool `json:"enabled"`
	Prices  struct {
		MaternelleAndPrimaire int64 `json:"maternelle_and_primaire"`
		CollegeAndLycee       int64 `json:"college_and_lycee"`
	} `json:"prices"`
}

// ScheduleWindow defines the academic payment window. StartMonth/EndMonth are
// calendar months (1-12); the window wraps the calendar year boundary
// (September through June).
type ScheduleWindow struct {
	StartMonth  int `json:"start_month"`
	EndMonth    int `json:"end_month"`
	TotalMonths int `json:"total_months"`
}

type PaymentConfiguration struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID     uuid.UUID `gorm:"type:uuid;not null;index:idx_config_school_year,unique"`
	AcademicYear string    `gorm:"type:varchar(9);not null;index:idx_config_school_year,unique"`

	// Annual tuition per grade, keyed by the grade catalogue.
	GradeAmounts map[string]int64 `gorm:"type:jsonb;serializer:json;not null"`

	Uniform        UniformConfig        `gorm:"type:jsonb;serializer:json;not null"`
	Transportation TransportationConfig `gorm:"type:jsonb;serializer:json;not null"`
	InscriptionFee InscriptionFeeConfig `gorm:"type:jsonb;serializer:json;not null"`
	Schedule       ScheduleWindow       `gorm:"type:jsonb;serializer:json;not null"`

	// Days past a due date before an unpaid month counts as overdue.
	GracePeriodDays int  `gorm:"not null;default:5"`
	IsActive        bool `gorm:"not null;default:true"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PaymentConfiguration) TableName() string {
	return "payment_configurations"
}

// TuitionForGrade returns the annual tuition for a grade. The bool is false
// when the configuration has no amount for that grade.
func (c *PaymentConfiguration) TuitionForGrade(grade string) (int64, bool) {
	amount, ok := c.GradeAmounts[grade]
	if !ok || amount <= 0 {
		return 0, false
	}
	return amount, true
}

// InscriptionFeeForCategory returns the registration fee for a grade
// category, or 0 when the fee is disabled or unpriced for that tier.
func (c *PaymentConfiguration) InscriptionFeeForCategory(category string) int64 {
	if !c.InscriptionFee.Enabled {
		return 0
	}
	switch category {
	case CategoryMaternelle, CategoryPrimaire:
		return c.InscriptionFee.Prices.MaternelleAndPrimaire
	case CategorySecondaire:
		return c.InscriptionFee.Prices.CollegeAndLycee
	}
	return 0
}

// TransportTariffFor returns the tariff for a zone ("close" or "far"). The
// bool is false when transportation or the zone is disabled.
func (c *PaymentConfiguration) TransportTariffFor(zone string) (TransportTariff, bool) {
	if !c.Transportation.Enabled {
		return TransportTariff{}, false
	}
	var tariff TransportTariff
	switch zone {
	case "close":
		tariff = c.Transportation.Tariffs.Close
	case "far":
		tariff = c.Transportation.Tariffs.Far
	default:
		return TransportTariff{}, false
	}
	if !tariff.Enabled || tariff.MonthlyPrice <= 0 {
		return TransportTariff{}, false
	}
	return tariff, true
}

package paymentconfig

type UniformConfigPayload struct {
	Enabled bool  `json:"enabled"`
	Price   int64 `json:"price"`
}

type TransportTariffPayload struct {
	Enabled      bool  `json:"enabled"`
	MonthlyPrice int64 `json:"monthly_price"`
}

type TransportationConfigPayload struct {
	Enabled bool `json:"enabled"`
	Tariffs struct {
		Close TransportTariffPayload `json:"close"`
		Far   TransportTariffPayload `json:"far"`
	} `json:"tariffs"`
}

type InscriptionFeeConfigPayload struct {
	Enabled bool `json:"enabled"`
	Prices  struct {
		MaternelleAndPrimaire int64 `json:"maternelle_and_primaire"`
		CollegeAndLycee       int64 `json:"college_and_lycee"`
	} `json:"prices"`
}

type ScheduleWindowPayload struct {
	StartMonth  int `json:"start_month" binding:"required,min=1,max=12"`
	EndMonth    int `json:"end_month" binding:"required,min=1,max=12"`
	TotalMonths int `json:"total_months" binding:"required,min=1,max=12"`
}

type UpsertConfigRequest struct {
	AcademicYear    string                      `json:"academic_year" binding:"required"`
	GradeAmounts    map[string]int64            `json:"grade_amounts" binding:"required"`
	Uniform         UniformConfigPayload        `json:"uniform"`
	Transportation  TransportationConfigPayload `json:"transportation"`
	InscriptionFee  InscriptionFeeConfigPayload `json:"inscription_fee"`
	Schedule        ScheduleWindowPayload       `json:"payment_schedule" binding:"required"`
	GracePeriodDays int                         `json:"grace_period"`
}

type ConfigResponse struct {
	ID              string               `json:"id"`
	SchoolID        string               `json:"school_id"`
	AcademicYear    string               `json:"academic_year"`
	GradeAmounts    map[string]int64     `json:"grade_amounts"`
	Uniform         UniformConfig        `json:"uniform"`
	Transportation  TransportationConfig `json:"transportation"`
	InscriptionFee  InscriptionFeeConfig `json:"inscription_fee"`
	Schedule        ScheduleWindow       `json:"payment_schedule"`
	GracePeriodDays int                  `json:"grace_period"`
	IsActive        bool                 `json:"is_active"`
}

type GradesResponse struct {
	AllGrades         []string            `json:"all_grades"`
	CategorizedGrades map[string][]string `json:"categorized_grades"`
}

func mapToResponse(cfg PaymentConfiguration) ConfigResponse {
	return ConfigResponse{
		ID:              cfg.ID.String(),
		SchoolID:        cfg.SchoolID.String(),
		AcademicYear:    cfg.AcademicYear,
		GradeAmounts:    cfg.GradeAmounts,
		Uniform:         cfg.Uniform,
		Transportation:  cfg.Transportation,
		InscriptionFee:  cfg.InscriptionFee,
		Schedule:        cfg.Schedule,
		GracePeriodDays: cfg.GracePeriodDays,
		IsActive:        cfg.IsActive,
	}
}

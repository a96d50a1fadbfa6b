package billing

import (
	"time"

	"schoolpay/internal/paymentconfig"
	"schoolpay/internal/student"

	"github.com/google/uuid"
)

const (
	testGrade = "3ème année primaire"
	testYear  = "2024-2025"
)

func testConfig() *paymentconfig.PaymentConfiguration {
	cfg := &paymentconfig.PaymentConfiguration{
		SchoolID:     uuid.New(),
		AcademicYear: testYear,
		GradeAmounts: map[string]int64{
			testGrade:    1000,
			"8ème année": 1500,
			"Maternal":   800,
		},
		GracePeriodDays: 5,
		Schedule:        paymentconfig.ScheduleWindow{StartMonth: 9, EndMonth: 6, TotalMonths: 10},
		IsActive:        true,
	}
	cfg.Uniform = paymentconfig.UniformConfig{Enabled: true, Price: 80}
	cfg.Transportation.Enabled = true
	cfg.Transportation.Tariffs.Close = paymentconfig.TransportTariff{Enabled: true, MonthlyPrice: 30}
	cfg.Transportation.Tariffs.Far = paymentconfig.TransportTariff{Enabled: true, MonthlyPrice: 45}
	cfg.InscriptionFee.Enabled = true
	cfg.InscriptionFee.Prices.MaternelleAndPrimaire = 50
	cfg.InscriptionFee.Prices.CollegeAndLycee = 70
	return cfg
}

func testStudent(schoolID uuid.UUID) *student.Student {
	return &student.Student{
		ID:            uuid.New(),
		SchoolID:      schoolID,
		FullName:      "Amine Trabelsi",
		Grade:         testGrade,
		GradeCategory: paymentconfig.CategoryPrimaire,
		EnrolledAt:    time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

// testRecord builds a monthly-type record with tuition, uniform,
// transportation and inscription fee all opted in.
func testRecord(now time.Time) *StudentPaymentRecord {
	cfg := testConfig()
	st := testStudent(cfg.SchoolID)
	rec, err := buildRecord(st, cfg, testYear, GenerateRecordRequest{
		StudentID:           st.ID.String(),
		UseTransportation:   true,
		TransportZone:       TransportZoneClose,
		PurchaseUniform:     true,
		ApplyInscriptionFee: true,
	}, now)
	if err != nil {
		panic(err)
	}
	return rec
}

// midYear is a point inside the schedule where nothing is overdue yet:
// before the September due date plus grace.
var midYear = time.Date(2024, 9, 3, 12, 0, 0, 0, time.UTC)

package paymentconfig

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	paymentconfigerrors "schoolpay/internal/paymentconfig/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	upsertFn              func(ctx context.Context, cfg *PaymentConfiguration) error
	findBySchoolAndYearFn func(ctx context.Context, schoolID, academicYear string) (*PaymentConfiguration, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Upsert(ctx context.Context, cfg *PaymentConfiguration) error {
	return f.upsertFn(ctx, cfg)
}
func (f *fakeRepo) FindBySchoolAndYear(ctx context.Context, schoolID, academicYear string) (*PaymentConfiguration, error) {
	return f.findBySchoolAndYearFn(ctx, schoolID, academicYear)
}
func (f *fakeRepo) FindActiveBySchool(ctx context.Context, schoolID string) (*PaymentConfiguration, error) {
	return nil, errors.New("not implemented")
}

func validUpsertRequest() UpsertConfigRequest {
	req := UpsertConfigRequest{
		AcademicYear: "2024-2025",
		GradeAmounts: map[string]int64{
			"3ème année primaire": 1200,
			"8ème année":          1500,
		},
		Schedule:        ScheduleWindowPayload{StartMonth: 9, EndMonth: 6, TotalMonths: 10},
		GracePeriodDays: 5,
	}
	req.Uniform = UniformConfigPayload{Enabled: true, Price: 80}
	req.Transportation.Enabled = true
	req.Transportation.Tariffs.Close = TransportTariffPayload{Enabled: true, MonthlyPrice: 30}
	return req
}

func TestPaymentConfigService_Upsert(t *testing.T) {
	schoolID := uuid.NewString()
	actorID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		var saved *PaymentConfiguration
		repo := &fakeRepo{upsertFn: func(ctx context.Context, cfg *PaymentConfiguration) error {
			saved = cfg
			return nil
		}}

		resp, err := NewService(repo).Upsert(context.Background(), schoolID, actorID, validUpsertRequest())
		assert.NoError(t, err)
		assert.NotNil(t, saved)
		assert.Equal(t, schoolID, resp.SchoolID)
		assert.Equal(t, "2024-2025", resp.AcademicYear)
		assert.Equal(t, int64(1200), resp.GradeAmounts["3ème année primaire"])
		assert.True(t, resp.IsActive)
		assert.Equal(t, actorID, saved.CreatedBy.String())
	})

	t.Run("validation", func(t *testing.T) {
		repo := &fakeRepo{upsertFn: func(ctx context.Context, cfg *PaymentConfiguration) error {
			t.Error("invalid request must not reach the repository")
			return nil
		}}
		svc := NewService(repo)

		cases := []struct {
			name    string
			mutate  func(r *UpsertConfigRequest)
			wantErr error
		}{
			{"bad academic year", func(r *UpsertConfigRequest) { r.AcademicYear = "2024-2026" }, paymentconfigerrors.ErrInvalidAcademicYear},
			{"zero-month window", func(r *UpsertConfigRequest) { r.Schedule.TotalMonths = 0 }, paymentconfigerrors.ErrInvalidScheduleWindow},
			{"13th month", func(r *UpsertConfigRequest) { r.Schedule.StartMonth = 13 }, paymentconfigerrors.ErrInvalidScheduleWindow},
			{"negative grace", func(r *UpsertConfigRequest) { r.GracePeriodDays = -1 }, paymentconfigerrors.ErrInvalidGracePeriod},
			{"unknown grade", func(r *UpsertConfigRequest) { r.GradeAmounts["CM2"] = 900 }, paymentconfigerrors.ErrUnknownGrade},
			{"negative tuition", func(r *UpsertConfigRequest) { r.GradeAmounts["8ème année"] = -1 }, paymentconfigerrors.ErrNegativeAmount},
			{"negative uniform price", func(r *UpsertConfigRequest) { r.Uniform.Price = -80 }, paymentconfigerrors.ErrNegativeAmount},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				req := validUpsertRequest()
				c.mutate(&req)
				_, err := svc.Upsert(context.Background(), schoolID, actorID, req)
				assert.ErrorIs(t, err, c.wantErr)
			})
		}
	})

	t.Run("malformed ids", func(t *testing.T) {
		svc := NewService(&fakeRepo{})
		_, err := svc.Upsert(context.Background(), "not-a-uuid", actorID, validUpsertRequest())
		assert.ErrorIs(t, err, paymentconfigerrors.ErrInvalidSchoolID)

		_, err = svc.Upsert(context.Background(), schoolID, "not-a-uuid", validUpsertRequest())
		assert.ErrorIs(t, err, paymentconfigerrors.ErrInvalidActorID)
	})
}

func TestPaymentConfigService_Get(t *testing.T) {
	schoolID := uuid.NewString()

	t.Run("found", func(t *testing.T) {
		repo := &fakeRepo{findBySchoolAndYearFn: func(ctx context.Context, gotSchool, gotYear string) (*PaymentConfiguration, error) {
			assert.Equal(t, "2024-2025", gotYear)
			return &PaymentConfiguration{
				ID:           uuid.New(),
				SchoolID:     uuid.MustParse(gotSchool),
				AcademicYear: gotYear,
				GradeAmounts: map[string]int64{"Maternal": 800},
				IsActive:     true,
			}, nil
		}}

		resp, err := NewService(repo).Get(context.Background(), schoolID, "2024-2025")
		assert.NoError(t, err)
		assert.Equal(t, int64(800), resp.GradeAmounts["Maternal"])
	})

	t.Run("missing configuration", func(t *testing.T) {
		repo := &fakeRepo{findBySchoolAndYearFn: func(ctx context.Context, gotSchool, gotYear string) (*PaymentConfiguration, error) {
			return nil, gorm.ErrRecordNotFound
		}}

		_, err := NewService(repo).Get(context.Background(), schoolID, "2024-2025")
		assert.ErrorIs(t, err, paymentconfigerrors.ErrConfigNotFound)
	})

	t.Run("invalid year", func(t *testing.T) {
		_, err := NewService(&fakeRepo{}).Get(context.Background(), schoolID, "24-25")
		assert.ErrorIs(t, err, paymentconfigerrors.ErrInvalidAcademicYear)
	})
}

func TestPaymentConfigService_Grades(t *testing.T) {
	resp := NewService(&fakeRepo{}).Grades(context.Background())
	assert.Len(t, resp.AllGrades, 14)
	assert.Len(t, resp.CategorizedGrades[CategoryPrimaire], 6)
}

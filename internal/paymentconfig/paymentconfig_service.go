package paymentconfig

import (
	"context"
	"errors"
	"time"

	paymentconfigerrors "schoolpay/internal/paymentconfig/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=paymentconfig_service.go -destination=mock/paymentconfig_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, schoolID, actorID string, req UpsertConfigRequest) (ConfigResponse, error)
	Get(ctx context.Context, schoolID, academicYear string) (ConfigResponse, error)
	// GetEntity hands the raw configuration to sibling services (billing,
	// invoice) that need the typed helpers, not the API shape.
	GetEntity(ctx context.Context, schoolID, academicYear string) (*PaymentConfiguration, error)
	Grades(ctx context.Context) GradesResponse
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("paymentconfig.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("paymentconfig.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Upsert(
	ctx context.Context,
	schoolID, actorID string,
	req UpsertConfigRequest,
) (ConfigResponse, error) {
	schoolUUID, err := uuid.Parse(schoolID)
	if err != nil {
		return ConfigResponse{}, paymentconfigerrors.ErrInvalidSchoolID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ConfigResponse{}, paymentconfigerrors.ErrInvalidActorID
	}

	if !IsValidAcademicYear(req.AcademicYear) {
		return ConfigResponse{}, paymentconfigerrors.ErrInvalidAcademicYear
	}
	if req.Schedule.TotalMonths < 1 || req.Schedule.TotalMonths > 12 ||
		req.Schedule.StartMonth < 1 || req.Schedule.StartMonth > 12 ||
		req.Schedule.EndMonth < 1 || req.Schedule.EndMonth > 12 {
		return ConfigResponse{}, paymentconfigerrors.ErrInvalidScheduleWindow
	}
	if req.GracePeriodDays < 0 || req.GracePeriodDays > 90 {
		return ConfigResponse{}, paymentconfigerrors.ErrInvalidGracePeriod
	}

	for grade, amount := range req.GradeAmounts {
		if _, ok := CategoryForGrade(grade); !ok {
			return ConfigResponse{}, paymentconfigerrors.ErrUnknownGrade
		}
		if amount < 0 {
			return ConfigResponse{}, paymentconfigerrors.ErrNegativeAmount
		}
	}
	if req.Uniform.Price < 0 ||
		req.Transportation.Tariffs.Close.MonthlyPrice < 0 ||
		req.Transportation.Tariffs.Far.MonthlyPrice < 0 ||
		req.InscriptionFee.Prices.MaternelleAndPrimaire < 0 ||
		req.InscriptionFee.Prices.CollegeAndLycee < 0 {
		return ConfigResponse{}, paymentconfigerrors.ErrNegativeAmount
	}

	cfg := &PaymentConfiguration{
		ID:              uuid.New(),
		SchoolID:        schoolUUID,
		AcademicYear:    req.AcademicYear,
		GradeAmounts:    req.GradeAmounts,
		GracePeriodDays: req.GracePeriodDays,
		IsActive:        true,
		CreatedBy:       actorUUID,
		UpdatedBy:       &actorUUID,
	}
	cfg.Uniform = UniformConfig{Enabled: req.Uniform.Enabled, Price: req.Uniform.Price}
	cfg.Transportation.Enabled = req.Transportation.Enabled
	cfg.Transportation.Tariffs.Close = TransportTariff(req.Transportation.Tariffs.Close)
	cfg.Transportation.Tariffs.Far = TransportTariff(req.Transportation.Tariffs.Far)
	cfg.InscriptionFee.Enabled = req.InscriptionFee.Enabled
	cfg.InscriptionFee.Prices.MaternelleAndPrimaire = req.InscriptionFee.Prices.MaternelleAndPrimaire
	cfg.InscriptionFee.Prices.CollegeAndLycee = req.InscriptionFee.Prices.CollegeAndLycee
	cfg.Schedule = ScheduleWindow(req.Schedule)

	if err := s.repo.Upsert(ctx, cfg); err != nil {
		s.logger.Error("upsert payment configuration failed",
			zap.String("school_id", schoolID),
			zap.String("academic_year", req.AcademicYear),
			zap.Error(err),
		)
		return ConfigResponse{}, err
	}

	s.logger.Info("payment configuration saved",
		zap.String("school_id", schoolID),
		zap.String("academic_year", req.AcademicYear),
	)

	return mapToResponse(*cfg), nil
}

func (s *service) Get(ctx context.Context, schoolID, academicYear string) (ConfigResponse, error) {
	cfg, err := s.GetEntity(ctx, schoolID, academicYear)
	if err != nil {
		return ConfigResponse{}, err
	}
	return mapToResponse(*cfg), nil
}

func (s *service) GetEntity(ctx context.Context, schoolID, academicYear string) (*PaymentConfiguration, error) {
	if _, err := uuid.Parse(schoolID); err != nil {
		return nil, paymentconfigerrors.ErrInvalidSchoolID
	}
	if academicYear == "" {
		academicYear = CurrentAcademicYear(time.Now())
	}
	if !IsValidAcademicYear(academicYear) {
		return nil, paymentconfigerrors.ErrInvalidAcademicYear
	}

	cfg, err := s.repo.FindBySchoolAndYear(ctx, schoolID, academicYear)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, paymentconfigerrors.ErrConfigNotFound
		}
		return nil, err
	}
	return cfg, nil
}

func (s *service) Grades(ctx context.Context) GradesResponse {
	return GradesResponse{
		AllGrades:         AllGrades(),
		CategorizedGrades: CategorizedGrades(),
	}
}

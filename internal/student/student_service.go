package student

import (
	"context"
	"database/sql"
	"time"

	"schoolpay/internal/paymentconfig"
	"schoolpay/internal/shared/contextutil"
	studenterrors "schoolpay/internal/student/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, schoolID string, req CreateStudentRequest) (StudentResponse, error)
	GetAll(ctx context.Context, schoolID string) ([]StudentResponse, error)
	GetByID(ctx context.Context, schoolID, id string) (StudentResponse, error)
	Update(ctx context.Context, schoolID, id string, req UpdateStudentRequest) (StudentResponse, error)
	Delete(ctx context.Context, schoolID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("student.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("student.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	schoolID string,
	req CreateStudentRequest,
) (StudentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create student requested",
		zap.String("request_id", rid),
		zap.String("school_id", schoolID),
		zap.String("grade", req.Grade),
	)

	if _, err := uuid.Parse(schoolID); err != nil {
		return StudentResponse{}, studenterrors.ErrInvalidSchoolID
	}
	category, ok := paymentconfig.CategoryForGrade(req.Grade)
	if !ok {
		return StudentResponse{}, studenterrors.ErrInvalidGrade
	}

	enrolledAt := time.Now().UTC()
	if req.EnrolledAt != "" {
		parsed, err := time.Parse("2006-01-02", req.EnrolledAt)
		if err != nil {
			return StudentResponse{}, studenterrors.ErrInvalidDate
		}
		enrolledAt = parsed
	}

	st := &Student{
		ID:            uuid.New(),
		SchoolID:      uuid.MustParse(schoolID),
		FullName:      req.FullName,
		Email:         req.Email,
		Grade:         req.Grade,
		GradeCategory: category,
		ClassName:     req.ClassName,
		EnrolledAt:    enrolledAt,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create student begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return StudentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, st); err != nil {
		s.logger.Error("create student persist failed", zap.Error(err))
		return StudentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create student commit failed", zap.String("request_id", rid), zap.Error(err))
		return StudentResponse{}, err
	}

	s.logger.Info("create student success",
		zap.String("request_id", rid),
		zap.String("student_id", st.ID.String()),
	)
	return mapToResponse(*st), nil
}

func (s *service) GetAll(ctx context.Context, schoolID string) ([]StudentResponse, error) {
	s.logger.Debug("get all students requested", zap.String("school_id", schoolID))
	students, err := s.repo.FindAllBySchool(ctx, schoolID)
	if err != nil {
		s.logger.Error("get all students failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(students), nil
}

func (s *service) GetByID(ctx context.Context, schoolID, id string) (StudentResponse, error) {
	st, err := s.repo.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		s.logger.Error("get student by id failed", zap.Error(err))
		return StudentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*st), nil
}

func (s *service) Update(
	ctx context.Context,
	schoolID, id string,
	req UpdateStudentRequest,
) (StudentResponse, error) {
	s.logger.Debug("update student requested",
		zap.String("school_id", schoolID),
		zap.String("student_id", id),
	)

	category, ok := paymentconfig.CategoryForGrade(req.Grade)
	if !ok {
		return StudentResponse{}, studenterrors.ErrInvalidGrade
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update student begin tx failed", zap.Error(err))
		return StudentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	st, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		s.logger.Error("update student fetch existing failed", zap.Error(err))
		return StudentResponse{}, mapRepositoryError(err)
	}

	st.FullName = req.FullName
	st.Email = req.Email
	st.Grade = req.Grade
	st.GradeCategory = category
	st.ClassName = req.ClassName

	if err := qtx.Update(ctx, st); err != nil {
		s.logger.Error("update student persist failed", zap.Error(err))
		return StudentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update student commit failed", zap.Error(err))
		return StudentResponse{}, err
	}

	s.logger.Info("update student success", zap.String("student_id", id))
	return mapToResponse(*st), nil
}

func (s *service) Delete(ctx context.Context, schoolID, id string) error {
	s.logger.Debug("delete student requested",
		zap.String("school_id", schoolID),
		zap.String("student_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete student begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, schoolID, id); err != nil {
		s.logger.Error("delete student failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete student commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete student success", zap.String("student_id", id))
	return nil
}

func mapToResponse(st Student) StudentResponse {
	return StudentResponse{
		ID:            st.ID.String(),
		SchoolID:      st.SchoolID.String(),
		FullName:      st.FullName,
		Email:         st.Email,
		Grade:         st.Grade,
		GradeCategory: st.GradeCategory,
		ClassName:     st.ClassName,
		EnrolledAt:    st.EnrolledAt.Format("2006-01-02"),
	}
}

func mapToListResponse(students []Student) []StudentResponse {
	res := make([]StudentResponse, len(students))
	for i, st := range students {
		res[i] = mapToResponse(st)
	}
	return res
}

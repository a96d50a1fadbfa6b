package invoice

import (
	"context"
	"net/http"
	"time"

	"schoolpay/internal/billing"
	billingerrors "schoolpay/internal/billing/errors"
	"schoolpay/internal/paymentconfig"
	"schoolpay/internal/shared/apperror"
	"schoolpay/internal/shared/contextutil"
	"schoolpay/internal/student"

	"go.uber.org/zap"
)

var errBadScope = apperror.New(
	apperror.CodeInvalidInput,
	"invalid invoice scope",
	http.StatusBadRequest,
)

type Service interface {
	Generate(ctx context.Context, schoolID, studentID string, req ProjectionRequest) (InvoiceResponse, error)
}

type service struct {
	records  billing.Repository
	students student.Repository
	logger   *zap.Logger
}

func NewService(records billing.Repository, students student.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("invoice.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("invoice.service")
	}
	return &service{records: records, students: students, logger: l}
}

// Generate projects one record under the requested scope and wraps it in an
// invoice envelope. Read-only: nothing is persisted.
func (s *service) Generate(ctx context.Context, schoolID, studentID string, req ProjectionRequest) (InvoiceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	year := req.AcademicYear
	if year == "" {
		year = paymentconfig.CurrentAcademicYear(time.Now())
	}
	s.logger.Debug("generate invoice requested",
		zap.String("request_id", rid),
		zap.String("school_id", schoolID),
		zap.String("student_id", studentID),
		zap.String("scope", req.Scope),
	)

	rec, err := s.records.FindByStudentAndYear(ctx, schoolID, studentID, year)
	if err != nil {
		s.logger.Warn("generate invoice record lookup failed", zap.Error(err))
		return InvoiceResponse{}, billingerrors.ErrRecordNotFound
	}

	st, err := s.students.FindByIDAndSchool(ctx, schoolID, studentID)
	if err != nil {
		s.logger.Warn("generate invoice student lookup failed", zap.Error(err))
		return InvoiceResponse{}, billingerrors.ErrRecordNotFound
	}

	now := time.Now().UTC()
	billing.Recalculate(rec)
	billing.ResolveStatuses(rec, now)

	scope := Scope{Kind: req.Scope, MonthIndex: -1, Component: req.Component}
	if req.MonthIndex != nil {
		scope.MonthIndex = *req.MonthIndex
	}
	if scope.Kind == ScopeSingleMonth && req.MonthIndex == nil {
		return InvoiceResponse{}, errBadScope
	}
	if scope.Kind == ScopeSingleComponent && scope.Component == "" {
		return InvoiceResponse{}, errBadScope
	}

	projection, err := Project(rec, scope, now)
	if err != nil {
		return InvoiceResponse{}, apperror.Wrap(err, apperror.CodeInvalidInput, "projection failed", http.StatusBadRequest)
	}

	resp := InvoiceResponse{
		InvoiceNumber: InvoiceNumber(year, st.FullName, now),
		AcademicYear:  year,
		StudentID:     studentID,
		StudentName:   st.FullName,
		Grade:         st.Grade,
		GeneratedAt:   now,
		Projection:    projection,
	}

	s.logger.Info("generate invoice success",
		zap.String("request_id", rid),
		zap.String("invoice_number", resp.InvoiceNumber),
	)
	return resp, nil
}

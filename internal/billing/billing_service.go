package billing

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	billingerrors "schoolpay/internal/billing/errors"
	"schoolpay/internal/events"
	"schoolpay/internal/messaging/kafka"
	"schoolpay/internal/paymentconfig"
	"schoolpay/internal/shared/contextutil"
	"schoolpay/internal/shared/counter"
	"schoolpay/internal/student"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Generate(ctx context.Context, schoolID string, req GenerateRecordRequest) (RecordResponse, error)
	GetByStudent(ctx context.Context, schoolID, studentID, academicYear string) (RecordResponse, error)
	GetHistory(ctx context.Context, schoolID, studentID, academicYear string) ([]HistoryEntry, error)

	RecordTuitionMonthly(ctx context.Context, schoolID, studentID, academicYear string, req MonthlyPaymentRequest) (RecordResponse, error)
	RecordTransportationMonthly(ctx context.Context, schoolID, studentID, academicYear string, req MonthlyPaymentRequest) (RecordResponse, error)
	RecordUniform(ctx context.Context, schoolID, studentID, academicYear string, req FlatPaymentRequest) (RecordResponse, error)
	RecordInscriptionFee(ctx context.Context, schoolID, studentID, academicYear string, req FlatPaymentRequest) (RecordResponse, error)
	RecordAnnualTuition(ctx context.Context, schoolID, studentID, academicYear string, req FlatPaymentRequest) (RecordResponse, error)

	ApplyDiscount(ctx context.Context, schoolID, studentID, academicYear string, req ApplyDiscountRequest) (RecordResponse, error)
	RemoveDiscount(ctx context.Context, schoolID, studentID, academicYear string) (RecordResponse, error)
	UpdateComponents(ctx context.Context, schoolID, studentID, academicYear string, req UpdateComponentsRequest) (RecordResponse, error)
	Delete(ctx context.Context, schoolID, studentID, academicYear string) error

	BulkGenerate(ctx context.Context, schoolID string, req BulkGenerateRequest) (BulkResult, error)
	BulkUpdate(ctx context.Context, schoolID string, req BulkUpdateRequest) (BulkResult, error)
	BulkDelete(ctx context.Context, schoolID string, req BulkDeleteRequest) (BulkResult, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	students student.Repository
	configs  paymentconfig.Service
	counter  counter.Repository
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	students student.Repository,
	configs paymentconfig.Service,
	counterRepo counter.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, students, configs, counterRepo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	students student.Repository,
	configs paymentconfig.Service,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("billing.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("billing.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		students: students,
		configs:  configs,
		counter:  counterRepo,
		outbox:   outboxRepo,
		logger:   l,
	}
}

func resolveYear(academicYear string) string {
	if academicYear == "" {
		return paymentconfig.CurrentAcademicYear(time.Now())
	}
	return academicYear
}

// buildRecord assembles a fresh aggregate for one student from the active
// configuration. Pure apart from uuid generation; shared by Generate and
// the bulk coordinator.
func buildRecord(st *student.Student, cfg *paymentconfig.PaymentConfiguration, academicYear string, req GenerateRecordRequest, now time.Time) (*StudentPaymentRecord, error) {
	annual, ok := cfg.TuitionForGrade(st.Grade)
	if !ok {
		return nil, billingerrors.ErrGradeNotPriced
	}

	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = PaymentTypeMonthly
	}

	rec := &StudentPaymentRecord{
		ID:                  uuid.New(),
		SchoolID:            st.SchoolID,
		StudentID:           st.ID,
		AcademicYear:        academicYear,
		Grade:               st.Grade,
		GradeCategory:       st.GradeCategory,
		PaymentType:         paymentType,
		TuitionAnnualAmount: annual,
		GracePeriodDays:     cfg.GracePeriodDays,
		Version:             1,
	}

	if paymentType == PaymentTypeMonthly {
		schedule, err := GenerateTuitionSchedule(annual, cfg.Schedule, academicYear)
		if err != nil {
			return nil, err
		}
		rec.TuitionMonthlyPayments = schedule
	}

	if req.PurchaseUniform {
		if !cfg.Uniform.Enabled || cfg.Uniform.Price <= 0 {
			return nil, billingerrors.ErrNotApplicable
		}
		rec.Uniform = UniformPayment{Purchased: true, Price: cfg.Uniform.Price}
	}

	if req.UseTransportation {
		zone := req.TransportZone
		if zone == "" {
			zone = TransportZoneClose
		}
		tariff, ok := cfg.TransportTariffFor(zone)
		if !ok {
			return nil, billingerrors.ErrNotApplicable
		}
		schedule, err := GenerateTransportationSchedule(tariff.MonthlyPrice, cfg.Schedule, academicYear)
		if err != nil {
			return nil, err
		}
		rec.Transportation = TransportationPayment{
			Using:           true,
			Zone:            zone,
			MonthlyPrice:    tariff.MonthlyPrice,
			TotalAmount:     tariff.MonthlyPrice * int64(cfg.Schedule.TotalMonths),
			MonthlyPayments: schedule,
		}
	}

	if req.ApplyInscriptionFee {
		price := cfg.InscriptionFeeForCategory(st.GradeCategory)
		if price <= 0 {
			return nil, billingerrors.ErrNotApplicable
		}
		rec.InscriptionFee = InscriptionFeePayment{Applicable: true, Price: price}
	}

	Recalculate(rec)
	ResolveStatuses(rec, now)
	return rec, nil
}

func (s *service) Generate(ctx context.Context, schoolID string, req GenerateRecordRequest) (RecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	academicYear := resolveYear(req.AcademicYear)
	s.logger.Debug("generate record requested",
		zap.String("request_id", rid),
		zap.String("school_id", schoolID),
		zap.String("student_id", req.StudentID),
		zap.String("academic_year", academicYear),
	)

	st, err := s.students.FindByIDAndSchool(ctx, schoolID, req.StudentID)
	if err != nil {
		s.logger.Warn("generate record student lookup failed", zap.Error(err))
		return RecordResponse{}, mapRepositoryError(err)
	}

	cfg, err := s.configs.GetEntity(ctx, schoolID, academicYear)
	if err != nil {
		s.logger.Error("generate record load config failed", zap.Error(err))
		return RecordResponse{}, err
	}

	rec, err := buildRecord(st, cfg, academicYear, req, time.Now().UTC())
	if err != nil {
		return RecordResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("generate record begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, rec); err != nil {
		s.logger.Error("generate record persist failed", zap.Error(err))
		return RecordResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("generate record commit failed", zap.String("request_id", rid), zap.Error(err))
		return RecordResponse{}, err
	}

	s.logger.Info("generate record success",
		zap.String("request_id", rid),
		zap.String("record_id", rec.ID.String()),
		zap.String("student_id", rec.StudentID.String()),
	)
	return mapToResponse(*rec), nil
}

func (s *service) GetByStudent(ctx context.Context, schoolID, studentID, academicYear string) (RecordResponse, error) {
	rec, err := s.repo.FindByStudentAndYear(ctx, schoolID, studentID, resolveYear(academicYear))
	if err != nil {
		return RecordResponse{}, mapRepositoryError(err)
	}

	// Overdue is evaluated lazily; a record read after a due date passed
	// must already reflect it.
	now := time.Now().UTC()
	Recalculate(rec)
	ResolveStatuses(rec, now)
	return mapToResponse(*rec), nil
}

func (s *service) GetHistory(ctx context.Context, schoolID, studentID, academicYear string) ([]HistoryEntry, error) {
	rec, err := s.repo.FindByStudentAndYear(ctx, schoolID, studentID, resolveYear(academicYear))
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return PaymentHistory(rec), nil
}

// paymentEvent describes the outbox message emitted after a successful
// mutation; nil means the mutation is not payment-like (discounts,
// component toggles).
type paymentEvent struct {
	component string
	kind      string
	amount    int64
}

// mutateRecord runs one read-modify-write cycle: load the record, apply fn
// to a scratch clone, recompute, persist with a version check, and enqueue
// the outbox event in the same transaction. A failing fn leaves the stored
// record untouched.
func (s *service) mutateRecord(
	ctx context.Context,
	schoolID, studentID, academicYear string,
	op string,
	fn func(rec *StudentPaymentRecord, now time.Time) (*paymentEvent, error),
) (RecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	year := resolveYear(academicYear)
	s.logger.Debug(op+" requested",
		zap.String("request_id", rid),
		zap.String("school_id", schoolID),
		zap.String("student_id", studentID),
		zap.String("academic_year", year),
	)

	stored, err := s.repo.FindByStudentAndYear(ctx, schoolID, studentID, year)
	if err != nil {
		return RecordResponse{}, mapRepositoryError(err)
	}

	rec := stored.Clone()
	now := time.Now().UTC()

	event, err := fn(rec, now)
	if err != nil {
		s.logger.Warn(op+" rejected",
			zap.String("request_id", rid),
			zap.String("student_id", studentID),
			zap.Error(err),
		)
		return RecordResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error(op+" begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.UpdateWithVersion(ctx, rec, stored.Version); err != nil {
		s.logger.Error(op+" persist failed", zap.String("request_id", rid), zap.Error(err))
		return RecordResponse{}, mapRepositoryError(err)
	}

	if event != nil && s.outbox != nil {
		evt := events.PaymentRecordedEvent{
			EventType:    "payment_recorded",
			RequestID:    rid,
			SchoolID:     schoolID,
			StudentID:    studentID,
			AcademicYear: year,
			Component:    event.component,
			Type:         event.kind,
			Amount:       event.amount,
			OccurredAt:   now,
		}
		payload, err := json.Marshal(evt)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return RecordResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "student_payment_record",
			AggregateID:   rec.ID.String(),
			EventType:     evt.EventType,
			Topic:         events.PaymentRecordedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error(op+" outbox persist failed", zap.String("request_id", rid), zap.Error(err))
			return RecordResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error(op+" commit failed", zap.String("request_id", rid), zap.Error(err))
		return RecordResponse{}, err
	}

	s.logger.Info(op+" success",
		zap.String("request_id", rid),
		zap.String("record_id", rec.ID.String()),
	)
	return mapToResponse(*rec), nil
}

func (s *service) nextReceiptNumber(ctx context.Context, schoolID string) (string, error) {
	next, err := s.counter.GetNextValue(ctx, schoolID, counter.TypeReceiptNumber)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("REC-%06d", next), nil
}

func paymentDate(raw string, now time.Time) time.Time {
	if raw == "" {
		return now
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return now
	}
	return parsed
}

func (s *service) RecordTuitionMonthly(ctx context.Context, schoolID, studentID, academicYear string, req MonthlyPaymentRequest) (RecordResponse, error) {
	receipt, err := s.nextReceiptNumber(ctx, schoolID)
	if err != nil {
		return RecordResponse{}, err
	}
	return s.mutateRecord(ctx, schoolID, studentID, academicYear, "record tuition monthly",
		func(rec *StudentPaymentRecord, now time.Time) (*paymentEvent, error) {
			in := PaymentInput{
				Amount:        req.Amount,
				Method:        req.Method,
				Date:          paymentDate(req.Date, now),
				ReceiptNumber: receipt,
			}
			if err := RecordTuitionMonthly(rec, *req.MonthIndex, in, now); err != nil {
				return nil, err
			}
			return &paymentEvent{component: ComponentTuition, kind: HistoryTypeTuitionMonthly, amount: req.Amount}, nil
		})
}

func (s *service) RecordTransportationMonthly(ctx context.Context, schoolID, studentID, academicYear string, req MonthlyPaymentRequest) (RecordResponse, error) {
	receipt, err := s.nextReceiptNumber(ctx, schoolID)
	if err != nil {
		return RecordResponse{}, err
	}
	return s.mutateRecord(ctx, schoolID, studentID, academicYear, "record transportation monthly",
		func(rec *StudentPaymentRecord, now time.Time) (*paymentEvent, error) {
			in := PaymentInput{
				Amount:        req.Amount,
				Method:        req.Method,
				Date:          paymentDate(req.Date, now),
				ReceiptNumber: receipt,
			}
			if err := RecordTransportationMonthly(rec, *req.MonthIndex, in, now); err != nil {
				return nil, err
			}
			return &paymentEvent{component: ComponentTransportation, kind: HistoryTypeTransportationMonthly, amount: req.Amount}, nil
		})
}

func (s *service) RecordUniform(ctx context.Context, schoolID, studentID, academicYear string, req FlatPaymentRequest) (RecordResponse, error) {
	receipt, err := s.nextReceiptNumber(ctx, schoolID)
	if err != nil {
		return RecordResponse{}, err
	}
	return s.mutateRecord(ctx, schoolID, studentID, academicYear, "record uniform",
		func(rec *StudentPaymentRecord, now time.Time) (*paymentEvent, error) {
			in := PaymentInput{
				Method:        req.Method,
				Date:          paymentDate(req.Date, now),
				ReceiptNumber: receipt,
			}
			if err := RecordUniform(rec, in, now); err != nil {
				return nil, err
			}
			return &paymentEvent{component: ComponentUniform, kind: HistoryTypeUniform, amount: rec.Uniform.Price}, nil
		})
}

func (s *service) RecordInscriptionFee(ctx context.Context, schoolID, studentID, academicYear string, req FlatPaymentRequest) (RecordResponse, error) {
	receipt, err := s.nextReceiptNumber(ctx, schoolID)
	if err != nil {
		return RecordResponse{}, err
	}
	return s.mutateRecord(ctx, schoolID, studentID, academicYear, "record inscription fee",
		func(rec *StudentPaymentRecord, now time.Time) (*paymentEvent, error) {
			in := PaymentInput{
				Method:        req.Method,
				Date:          paymentDate(req.Date, now),
				ReceiptNumber: receipt,
			}
			if err := RecordInscriptionFee(rec, in, now); err != nil {
				return nil, err
			}
			return &paymentEvent{component: ComponentInscriptionFee, kind: HistoryTypeInscriptionFee, amount: rec.InscriptionFee.Price}, nil
		})
}

func (s *service) RecordAnnualTuition(ctx context.Context, schoolID, studentID, academicYear string, req FlatPaymentRequest) (RecordResponse, error) {
	receipt, err := s.nextReceiptNumber(ctx, schoolID)
	if err != nil {
		return RecordResponse{}, err
	}
	return s.mutateRecord(ctx, schoolID, studentID, academicYear, "record annual tuition",
		func(rec *StudentPaymentRecord, now time.Time) (*paymentEvent, error) {
			in := PaymentInput{
				Method:        req.Method,
				Date:          paymentDate(req.Date, now),
				ReceiptNumber: receipt,
			}
			if err := RecordAnnualTuition(rec, in, now); err != nil {
				return nil, err
			}
			return &paymentEvent{component: ComponentTuition, kind: HistoryTypeTuitionAnnual, amount: rec.AnnualTuition.Amount}, nil
		})
}

func (s *service) ApplyDiscount(ctx context.Context, schoolID, studentID, academicYear string, req ApplyDiscountRequest) (RecordResponse, error) {
	cfg, err := s.configs.GetEntity(ctx, schoolID, resolveYear(academicYear))
	if err != nil {
		return RecordResponse{}, err
	}
	return s.mutateRecord(ctx, schoolID, studentID, academicYear, "apply discount",
		func(rec *StudentPaymentRecord, now time.Time) (*paymentEvent, error) {
			in := DiscountInput{Type: req.Type, Percentage: req.Percentage, Notes: req.Notes}
			if err := ApplyDiscount(rec, cfg, in, now); err != nil {
				return nil, err
			}
			return nil, nil
		})
}

func (s *service) RemoveDiscount(ctx context.Context, schoolID, studentID, academicYear string) (RecordResponse, error) {
	cfg, err := s.configs.GetEntity(ctx, schoolID, resolveYear(academicYear))
	if err != nil {
		return RecordResponse{}, err
	}
	return s.mutateRecord(ctx, schoolID, studentID, academicYear, "remove discount",
		func(rec *StudentPaymentRecord, now time.Time) (*paymentEvent, error) {
			if err := RemoveDiscount(rec, cfg, now); err != nil {
				return nil, err
			}
			return nil, nil
		})
}

func (s *service) UpdateComponents(ctx context.Context, schoolID, studentID, academicYear string, req UpdateComponentsRequest) (RecordResponse, error) {
	cfg, err := s.configs.GetEntity(ctx, schoolID, resolveYear(academicYear))
	if err != nil {
		return RecordResponse{}, err
	}
	return s.mutateRecord(ctx, schoolID, studentID, academicYear, "update components",
		func(rec *StudentPaymentRecord, now time.Time) (*paymentEvent, error) {
			if err := applyComponentToggles(rec, cfg, req); err != nil {
				return nil, err
			}
			Recalculate(rec)
			ResolveStatuses(rec, now)
			return nil, nil
		})
}

// applyComponentToggles opts components in or out on a live record. A
// component that already carries payments can never be removed.
func applyComponentToggles(rec *StudentPaymentRecord, cfg *paymentconfig.PaymentConfiguration, req UpdateComponentsRequest) error {
	if req.PurchaseUniform != nil {
		if *req.PurchaseUniform {
			if !cfg.Uniform.Enabled || cfg.Uniform.Price <= 0 {
				return billingerrors.ErrNotApplicable
			}
			if !rec.Uniform.Purchased {
				rec.Uniform = UniformPayment{Purchased: true, Price: cfg.Uniform.Price}
			}
		} else {
			if rec.Uniform.IsPaid {
				return billingerrors.ErrAlreadyPaid
			}
			rec.Uniform = UniformPayment{}
		}
	}

	if req.ApplyInscriptionFee != nil {
		if *req.ApplyInscriptionFee {
			price := cfg.InscriptionFeeForCategory(rec.GradeCategory)
			if price <= 0 {
				return billingerrors.ErrNotApplicable
			}
			if !rec.InscriptionFee.Applicable {
				rec.InscriptionFee = InscriptionFeePayment{Applicable: true, Price: price}
			}
		} else {
			if rec.InscriptionFee.IsPaid {
				return billingerrors.ErrAlreadyPaid
			}
			rec.InscriptionFee = InscriptionFeePayment{}
		}
	}

	if req.UseTransportation != nil {
		if *req.UseTransportation {
			zone := req.TransportZone
			if zone == "" {
				zone = rec.Transportation.Zone
			}
			if zone == "" {
				zone = TransportZoneClose
			}
			tariff, ok := cfg.TransportTariffFor(zone)
			if !ok {
				return billingerrors.ErrNotApplicable
			}
			if rec.Transportation.Using && sumPaid(rec.Transportation.MonthlyPayments) > 0 {
				if zone != rec.Transportation.Zone {
					return billingerrors.ErrAlreadyPaid
				}
				return nil
			}
			schedule, err := GenerateTransportationSchedule(tariff.MonthlyPrice, cfg.Schedule, rec.AcademicYear)
			if err != nil {
				return err
			}
			rec.Transportation = TransportationPayment{
				Using:           true,
				Zone:            zone,
				MonthlyPrice:    tariff.MonthlyPrice,
				TotalAmount:     tariff.MonthlyPrice * int64(cfg.Schedule.TotalMonths),
				MonthlyPayments: schedule,
			}
		} else {
			if sumPaid(rec.Transportation.MonthlyPayments) > 0 {
				return billingerrors.ErrAlreadyPaid
			}
			rec.Transportation = TransportationPayment{}
		}
	}

	return nil
}

func (s *service) Delete(ctx context.Context, schoolID, studentID, academicYear string) error {
	rid := contextutil.GetRequestID(ctx)
	year := resolveYear(academicYear)
	s.logger.Debug("delete record requested",
		zap.String("request_id", rid),
		zap.String("school_id", schoolID),
		zap.String("student_id", studentID),
	)

	rec, err := s.repo.FindByStudentAndYear(ctx, schoolID, studentID, year)
	if err != nil {
		return mapRepositoryError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete record begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, schoolID, rec.ID.String()); err != nil {
		s.logger.Error("delete record failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete record commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete record success",
		zap.String("request_id", rid),
		zap.String("record_id", rec.ID.String()),
	)
	return nil
}

package billing

import (
	"context"
	"sync"
	"time"

	billingerrors "schoolpay/internal/billing/errors"
	"schoolpay/internal/paymentconfig"
	"schoolpay/internal/shared/contextutil"
	"schoolpay/internal/student"

	"go.uber.org/zap"
)

// bulkWorkers bounds the fan-out. Records are independent aggregates, so
// they can be processed in parallel; one failure only marks its own entry.
const bulkWorkers = 8

type bulkCollector struct {
	mu     sync.Mutex
	result BulkResult
}

func (c *bulkCollector) success() {
	c.mu.Lock()
	c.result.Success++
	c.mu.Unlock()
}

func (c *bulkCollector) skip() {
	c.mu.Lock()
	c.result.Skipped++
	c.mu.Unlock()
}

func (c *bulkCollector) fail(studentID string, err error) {
	c.mu.Lock()
	c.result.Errors = append(c.result.Errors, BulkError{StudentID: studentID, Error: err.Error()})
	c.mu.Unlock()
}

// forEach runs fn over the items through a bounded worker pool and waits
// for completion.
func forEach[T any](items []T, fn func(item T)) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, bulkWorkers)
	for _, item := range items {
		wg.Add(1)
		sem <- struct{}{}
		go func(item T) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(item)
		}(item)
	}
	wg.Wait()
}

// BulkGenerate creates a record for every student of the school that has
// none for the academic year. Students that already have one are counted as
// skipped.
func (s *service) BulkGenerate(ctx context.Context, schoolID string, req BulkGenerateRequest) (BulkResult, error) {
	rid := contextutil.GetRequestID(ctx)
	year := resolveYear(req.AcademicYear)
	s.logger.Info("bulk generate started",
		zap.String("request_id", rid),
		zap.String("school_id", schoolID),
		zap.String("academic_year", year),
	)

	students, err := s.students.FindAllBySchool(ctx, schoolID)
	if err != nil {
		return BulkResult{}, mapRepositoryError(err)
	}

	existingIDs, err := s.repo.FindStudentIDsWithRecord(ctx, schoolID, year)
	if err != nil {
		return BulkResult{}, mapRepositoryError(err)
	}
	existing := make(map[string]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = struct{}{}
	}

	cfg, err := s.configs.GetEntity(ctx, schoolID, year)
	if err != nil {
		return BulkResult{}, err
	}

	genReq := GenerateRecordRequest{
		PaymentType:         req.PaymentType,
		ApplyInscriptionFee: cfg.InscriptionFee.Enabled,
	}

	var collector bulkCollector
	now := time.Now().UTC()
	forEach(students, func(st student.Student) {
		if _, ok := existing[st.ID.String()]; ok {
			collector.skip()
			return
		}
		rec, err := buildRecord(&st, cfg, year, genReq, now)
		if err != nil {
			collector.fail(st.ID.String(), err)
			return
		}
		if err := s.repo.Create(ctx, rec); err != nil {
			collector.fail(st.ID.String(), mapRepositoryError(err))
			return
		}
		collector.success()
	})

	s.logger.Info("bulk generate finished",
		zap.String("request_id", rid),
		zap.Int("success", collector.result.Success),
		zap.Int("skipped", collector.result.Skipped),
		zap.Int("errors", len(collector.result.Errors)),
	)
	return collector.result, nil
}

// BulkUpdate re-prices every existing record of the academic year from the
// current configuration. With UpdateUnpaidOnly set, any month or component
// that already carries a payment keeps its priced amount; history is never
// overwritten either way.
func (s *service) BulkUpdate(ctx context.Context, schoolID string, req BulkUpdateRequest) (BulkResult, error) {
	rid := contextutil.GetRequestID(ctx)
	year := resolveYear(req.AcademicYear)
	s.logger.Info("bulk update started",
		zap.String("request_id", rid),
		zap.String("school_id", schoolID),
		zap.String("academic_year", year),
		zap.Bool("update_unpaid_only", req.UpdateUnpaidOnly),
	)

	records, err := s.repo.FindAllBySchoolAndYear(ctx, schoolID, year)
	if err != nil {
		return BulkResult{}, mapRepositoryError(err)
	}

	cfg, err := s.configs.GetEntity(ctx, schoolID, year)
	if err != nil {
		return BulkResult{}, err
	}

	var collector bulkCollector
	now := time.Now().UTC()
	forEach(records, func(stored StudentPaymentRecord) {
		rec := stored.Clone()
		changed, err := repriceRecord(rec, cfg, req.UpdateUnpaidOnly, now)
		if err != nil {
			collector.fail(stored.StudentID.String(), err)
			return
		}
		if !changed {
			collector.skip()
			return
		}
		if err := s.repo.UpdateWithVersion(ctx, rec, stored.Version); err != nil {
			collector.fail(stored.StudentID.String(), mapRepositoryError(err))
			return
		}
		collector.success()
	})

	s.logger.Info("bulk update finished",
		zap.String("request_id", rid),
		zap.Int("success", collector.result.Success),
		zap.Int("skipped", collector.result.Skipped),
		zap.Int("errors", len(collector.result.Errors)),
	)
	return collector.result, nil
}

// BulkDelete removes every record of the academic year. Irreversible.
func (s *service) BulkDelete(ctx context.Context, schoolID string, req BulkDeleteRequest) (BulkResult, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Warn("bulk delete started",
		zap.String("request_id", rid),
		zap.String("school_id", schoolID),
		zap.String("academic_year", req.AcademicYear),
	)

	records, err := s.repo.FindAllBySchoolAndYear(ctx, schoolID, req.AcademicYear)
	if err != nil {
		return BulkResult{}, mapRepositoryError(err)
	}

	var collector bulkCollector
	forEach(records, func(rec StudentPaymentRecord) {
		if err := s.repo.Delete(ctx, schoolID, rec.ID.String()); err != nil {
			collector.fail(rec.StudentID.String(), mapRepositoryError(err))
			return
		}
		collector.success()
	})

	s.logger.Warn("bulk delete finished",
		zap.String("request_id", rid),
		zap.Int("success", collector.result.Success),
		zap.Int("errors", len(collector.result.Errors)),
	)
	return collector.result, nil
}

// repriceRecord rewrites a record's priced amounts from the configuration.
// Months or binary components that already carry a payment are preserved
// when unpaidOnly is set. Reports whether anything actually changed.
func repriceRecord(rec *StudentPaymentRecord, cfg *paymentconfig.PaymentConfiguration, unpaidOnly bool, now time.Time) (bool, error) {
	annual, ok := cfg.TuitionForGrade(rec.Grade)
	if !ok {
		return false, billingerrors.ErrGradeNotPriced
	}

	changed := false
	set := func(dst *int64, v int64) {
		if *dst != v {
			*dst = v
			changed = true
		}
	}

	set(&rec.TuitionAnnualAmount, annual)
	if rec.Discount.Enabled {
		set(&rec.Discount.Amount, discountAmount(annual, rec.Discount.Percentage))
	}

	tuitionTarget := annual
	if rec.Discount.Enabled {
		tuitionTarget -= rec.Discount.Amount
	}
	if rec.PaymentType == PaymentTypeMonthly && len(rec.TuitionMonthlyPayments) > 0 {
		amounts := allocateAcrossMonths(tuitionTarget, len(rec.TuitionMonthlyPayments))
		for i := range rec.TuitionMonthlyPayments {
			if unpaidOnly && rec.TuitionMonthlyPayments[i].PaidAmount > 0 {
				continue
			}
			set(&rec.TuitionMonthlyPayments[i].Amount, amounts[i])
		}
	}

	if rec.Uniform.Purchased && cfg.Uniform.Enabled {
		if !unpaidOnly || !rec.Uniform.IsPaid {
			set(&rec.Uniform.Price, cfg.Uniform.Price)
		}
	}

	if rec.Transportation.Using {
		if tariff, ok := cfg.TransportTariffFor(rec.Transportation.Zone); ok {
			set(&rec.Transportation.MonthlyPrice, tariff.MonthlyPrice)
			set(&rec.Transportation.TotalAmount, tariff.MonthlyPrice*int64(len(rec.Transportation.MonthlyPayments)))
			for i := range rec.Transportation.MonthlyPayments {
				if unpaidOnly && rec.Transportation.MonthlyPayments[i].PaidAmount > 0 {
					continue
				}
				set(&rec.Transportation.MonthlyPayments[i].Amount, tariff.MonthlyPrice)
			}
		}
	}

	if rec.InscriptionFee.Applicable {
		price := cfg.InscriptionFeeForCategory(rec.GradeCategory)
		if price > 0 && (!unpaidOnly || !rec.InscriptionFee.IsPaid) {
			set(&rec.InscriptionFee.Price, price)
		}
	}

	if rec.GracePeriodDays != cfg.GracePeriodDays {
		rec.GracePeriodDays = cfg.GracePeriodDays
		changed = true
	}

	if changed {
		Recalculate(rec)
		ResolveStatuses(rec, now)
	}
	return changed, nil
}

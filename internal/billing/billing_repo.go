package billing

import (
	"context"
	"database/sql"
	"errors"

	"schoolpay/internal/shared/tenant"

	"gorm.io/gorm"
)

// ErrVersionMismatch is returned by UpdateWithVersion when the row changed
// under the caller.
var ErrVersionMismatch = errors.New("record version mismatch")

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *StudentPaymentRecord) error
	FindByStudentAndYear(ctx context.Context, schoolID, studentID, academicYear string) (*StudentPaymentRecord, error)
	FindAllBySchoolAndYear(ctx context.Context, schoolID, academicYear string) ([]StudentPaymentRecord, error)
	FindStudentIDsWithRecord(ctx context.Context, schoolID, academicYear string) ([]string, error)
	UpdateWithVersion(ctx context.Context, rec *StudentPaymentRecord, expectedVersion int64) error
	Delete(ctx context.Context, schoolID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements run on tx instead of the
// connection pool, so record updates commit and roll back together with the
// caller's other writes.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{Context: r.db.Statement.Context, NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rec *StudentPaymentRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) FindByStudentAndYear(ctx context.Context, schoolID, studentID, academicYear string) (*StudentPaymentRecord, error) {
	var rec StudentPaymentRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("student_id = ?", studentID).
		Where("academic_year = ?", academicYear).
		First(&rec).Error
	return &rec, err
}

func (r *repository) FindAllBySchoolAndYear(ctx context.Context, schoolID, academicYear string) ([]StudentPaymentRecord, error) {
	var recs []StudentPaymentRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("academic_year = ?", academicYear).
		Find(&recs).Error
	return recs, err
}

func (r *repository) FindStudentIDsWithRecord(ctx context.Context, schoolID, academicYear string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&StudentPaymentRecord{}).
		Scopes(tenant.Scope(schoolID)).
		Where("academic_year = ?", academicYear).
		Pluck("student_id", &ids).Error
	return ids, err
}

// UpdateWithVersion persists the record only if nobody touched it since it
// was read. The stored version is bumped on success and reflected back onto
// the record.
func (r *repository) UpdateWithVersion(ctx context.Context, rec *StudentPaymentRecord, expectedVersion int64) error {
	rec.Version = expectedVersion + 1
	res := r.db.WithContext(ctx).
		Model(&StudentPaymentRecord{}).
		Where("id = ?", rec.ID).
		Where("version = ?", expectedVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionMismatch
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, schoolID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Delete(&StudentPaymentRecord{}, "id = ?", id).Error
}

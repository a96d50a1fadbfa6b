package paymentconfig

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, cfg *PaymentConfiguration) error
	FindBySchoolAndYear(ctx context.Context, schoolID, academicYear string) (*PaymentConfiguration, error)
	FindActiveBySchool(ctx context.Context, schoolID string) (*PaymentConfiguration, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements run on tx instead of the
// connection pool.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{Context: r.db.Statement.Context, NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, cfg *PaymentConfiguration) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "school_id"}, {Name: "academic_year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"grade_amounts",
				"uniform",
				"transportation",
				"inscription_fee",
				"schedule",
				"grace_period_days",
				"is_active",
				"updated_by",
				"updated_at",
			}),
		}).
		Create(cfg).Error
}

func (r *repository) FindBySchoolAndYear(ctx context.Context, schoolID, academicYear string) (*PaymentConfiguration, error) {
	var cfg PaymentConfiguration
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Where("academic_year = ?", academicYear).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) FindActiveBySchool(ctx context.Context, schoolID string) (*PaymentConfiguration, error) {
	var cfg PaymentConfiguration
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Where("is_active = ?", true).
		Order("academic_year DESC").
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

package student

import (
	"context"
	"database/sql"

	"schoolpay/internal/shared/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, st *Student) error
	FindAllBySchool(ctx context.Context, schoolID string) ([]Student, error)
	FindByIDAndSchool(ctx context.Context, schoolID string, id string) (*Student, error)
	FindByGrade(ctx context.Context, schoolID string, grade string) ([]Student, error)
	CountBySchool(ctx context.Context, schoolID string) (int64, error)
	Update(ctx context.Context, st *Student) error
	Delete(ctx context.Context, schoolID string, id string) error
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

func (r *repository) Create(ctx context.Context, st *Student) error {
	return r.db.WithContext(ctx).Create(st).Error
}

func (r *repository) FindAllBySchool(ctx context.Context, schoolID string) ([]Student, error) {
	var students []Student
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("full_name ASC").
		Find(&students).Error
	return students, err
}

func (r *repository) FindByIDAndSchool(ctx context.Context, schoolID string, id string) (*Student, error) {
	var st Student
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		First(&st, "id = ?", id).Error
	return &st, err
}

func (r *repository) FindByGrade(ctx context.Context, schoolID string, grade string) ([]Student, error) {
	var students []Student
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("grade = ?", grade).
		Find(&students).Error
	return students, err
}

func (r *repository) CountBySchool(ctx context.Context, schoolID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Student{}).
		Scopes(tenant.Scope(schoolID)).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, st *Student) error {
	return r.db.WithContext(ctx).Save(st).Error
}

func (r *repository) Delete(ctx context.Context, schoolID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Delete(&Student{}, "id = ?", id).Error
}

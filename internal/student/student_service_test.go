package student

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"schoolpay/internal/paymentconfig"
	studenterrors "schoolpay/internal/student/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn            func(ctx context.Context, st *Student) error
	findAllBySchoolFn   func(ctx context.Context, schoolID string) ([]Student, error)
	findByIDAndSchoolFn func(ctx context.Context, schoolID, id string) (*Student, error)
	updateFn            func(ctx context.Context, st *Student) error
	deleteFn            func(ctx context.Context, schoolID, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, st *Student) error {
	return f.createFn(ctx, st)
}
func (f *fakeRepo) FindAllBySchool(ctx context.Context, schoolID string) ([]Student, error) {
	return f.findAllBySchoolFn(ctx, schoolID)
}
func (f *fakeRepo) FindByIDAndSchool(ctx context.Context, schoolID, id string) (*Student, error) {
	return f.findByIDAndSchoolFn(ctx, schoolID, id)
}
func (f *fakeRepo) FindByGrade(ctx context.Context, schoolID, grade string) ([]Student, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeRepo) CountBySchool(ctx context.Context, schoolID string) (int64, error) {
	return 0, errors.New("not implemented")
}
func (f *fakeRepo) Update(ctx context.Context, st *Student) error {
	return f.updateFn(ctx, st)
}
func (f *fakeRepo) Delete(ctx context.Context, schoolID, id string) error {
	return f.deleteFn(ctx, schoolID, id)
}

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *fakeRepo
	service Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &fakeRepo{}
	return &serviceDeps{
		db:      db,
		sqlMock: mock,
		repo:    repo,
		service: NewService(db, repo),
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestStudentService_Create(t *testing.T) {
	schoolID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		var saved *Student
		deps.repo.createFn = func(ctx context.Context, st *Student) error {
			saved = st
			return nil
		}
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Create(context.Background(), schoolID, CreateStudentRequest{
			FullName:   "Amine Trabelsi",
			Grade:      "3ème année primaire",
			EnrolledAt: "2024-09-01",
		})
		assert.NoError(t, err)
		assert.NotNil(t, saved)
		assert.Equal(t, paymentconfig.CategoryPrimaire, saved.GradeCategory)
		assert.Equal(t, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), saved.EnrolledAt)
		assert.Equal(t, "2024-09-01", resp.EnrolledAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("grade outside the catalogue", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(context.Background(), schoolID, CreateStudentRequest{
			FullName: "Amine Trabelsi",
			Grade:    "CM2",
		})
		assert.ErrorIs(t, err, studenterrors.ErrInvalidGrade)
	})

	t.Run("malformed enrollment date", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(context.Background(), schoolID, CreateStudentRequest{
			FullName:   "Amine Trabelsi",
			Grade:      "Maternal",
			EnrolledAt: "01/09/2024",
		})
		assert.ErrorIs(t, err, studenterrors.ErrInvalidDate)
	})

	t.Run("duplicate email", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.createFn = func(ctx context.Context, st *Student) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_student_email"}
		}
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(context.Background(), schoolID, CreateStudentRequest{
			FullName: "Amine Trabelsi",
			Email:    "amine@example.tn",
			Grade:    "Maternal",
		})
		assert.ErrorIs(t, err, studenterrors.ErrEmailTaken)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestStudentService_Update(t *testing.T) {
	schoolID := uuid.NewString()
	existing := &Student{
		ID:            uuid.New(),
		SchoolID:      uuid.MustParse(schoolID),
		FullName:      "Amine Trabelsi",
		Grade:         "3ème année primaire",
		GradeCategory: paymentconfig.CategoryPrimaire,
	}

	t.Run("moves category with the grade", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.findByIDAndSchoolFn = func(ctx context.Context, gotSchool, id string) (*Student, error) {
			copied := *existing
			return &copied, nil
		}
		deps.repo.updateFn = func(ctx context.Context, st *Student) error {
			assert.Equal(t, paymentconfig.CategorySecondaire, st.GradeCategory)
			return nil
		}
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Update(context.Background(), schoolID, existing.ID.String(), UpdateStudentRequest{
			FullName: "Amine Trabelsi",
			Grade:    "7ème année",
		})
		assert.NoError(t, err)
		assert.Equal(t, "7ème année", resp.Grade)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown student", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.findByIDAndSchoolFn = func(ctx context.Context, gotSchool, id string) (*Student, error) {
			return nil, gorm.ErrRecordNotFound
		}
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Update(context.Background(), schoolID, uuid.NewString(), UpdateStudentRequest{
			FullName: "Amine Trabelsi",
			Grade:    "Maternal",
		})
		assert.ErrorIs(t, err, studenterrors.ErrStudentNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestStudentService_Delete(t *testing.T) {
	schoolID := uuid.NewString()

	deps := setupServiceTest(t)
	deps.repo.deleteFn = func(ctx context.Context, gotSchool, id string) error {
		assert.Equal(t, schoolID, gotSchool)
		return nil
	}
	expectTx(t, deps.sqlMock, true)

	err := deps.service.Delete(context.Background(), schoolID, uuid.NewString())
	assert.NoError(t, err)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestStudentService_GetAll(t *testing.T) {
	schoolID := uuid.NewString()
	deps := setupServiceTest(t)
	deps.repo.findAllBySchoolFn = func(ctx context.Context, gotSchool string) ([]Student, error) {
		return []Student{
			{ID: uuid.New(), SchoolID: uuid.MustParse(schoolID), FullName: "A", EnrolledAt: time.Now()},
			{ID: uuid.New(), SchoolID: uuid.MustParse(schoolID), FullName: "B", EnrolledAt: time.Now()},
		}, nil
	}

	resp, err := deps.service.GetAll(context.Background(), schoolID)
	assert.NoError(t, err)
	assert.Len(t, resp, 2)
}

package billing

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return NewRepository(gdb), db, mock
}

func TestRepositoryWithTx(t *testing.T) {
	t.Run("binds statements to the transaction", func(t *testing.T) {
		repo, db, mock := setupRepoTest(t)

		mock.ExpectBegin()
		tx, err := db.Begin()
		assert.NoError(t, err)

		qtx := repo.WithTx(tx).(*repository)
		assert.Same(t, tx, qtx.db.Statement.ConnPool)

		// The original repository keeps writing through the pool.
		assert.NotSame(t, tx, repo.(*repository).db.Statement.ConnPool)

		mock.ExpectRollback()
		assert.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("versioned update commits with the transaction", func(t *testing.T) {
		repo, db, mock := setupRepoTest(t)

		rec := testRecord(midYear)
		rec.ID = uuid.New()
		rec.Version = 3

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "student_payment_records"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.Begin()
		assert.NoError(t, err)

		qtx := repo.WithTx(tx)
		err = qtx.UpdateWithVersion(context.Background(), rec, 3)
		assert.NoError(t, err)
		assert.Equal(t, int64(4), rec.Version)

		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale version rolls back cleanly", func(t *testing.T) {
		repo, db, mock := setupRepoTest(t)

		rec := testRecord(midYear)
		rec.ID = uuid.New()
		rec.Version = 3

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "student_payment_records"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		tx, err := db.Begin()
		assert.NoError(t, err)

		err = repo.WithTx(tx).UpdateWithVersion(context.Background(), rec, 3)
		assert.ErrorIs(t, err, ErrVersionMismatch)

		assert.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteWork(t *testing.T) {
	t.Run("ids come from inside the transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewAdvertLockRepo(db)

		// The working set is read with FOR UPDATE after BEGIN, so the
		// reported ids are exactly the rows the update and delete hit.
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT l.advert_id FROM advert_locks .* FOR UPDATE").
			WillReturnRows(sqlmock.NewRows([]string{"advert_id"}).AddRow(5).AddRow(9))
		mock.ExpectExec("UPDATE adverts a JOIN advert_locks l").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("DELETE l FROM advert_locks l").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		ids, err := repo.CompleteWork(context.Background(), 1, 7, 2)
		require.NoError(t, err)
		assert.Equal(t, []uint64{5, 9}, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty working set writes nothing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewAdvertLockRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT l.advert_id FROM advert_locks").
			WillReturnRows(sqlmock.NewRows([]string{"advert_id"}))
		mock.ExpectRollback()

		ids, err := repo.CompleteWork(context.Background(), 1, 7, 2)
		require.NoError(t, err)
		assert.Empty(t, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

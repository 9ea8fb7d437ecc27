package repository

import (
	"context"
	"database/sql"

	"github.com/mvolkova/travelads/internal/model"
)

// AdvertLockRepo manages the per-advert editing locks.  The unique key
// on advert_locks.advert_id is the whole concurrency story: a lock is
// taken by inserting the row, and when two moderators race, MySQL lets
// exactly one insert through and the loser sees ErrLockHeld.
type AdvertLockRepo struct {
	db *sql.DB
}

// NewAdvertLockRepo returns a new AdvertLockRepo bound to the database.
func NewAdvertLockRepo(db *sql.DB) *AdvertLockRepo { return &AdvertLockRepo{db: db} }

// GetByAdvert fetches the lock on an advert, if any.
func (r *AdvertLockRepo) GetByAdvert(ctx context.Context, advertID uint64) (*model.AdvertLock, error) {
	var l model.AdvertLock
	err := r.db.QueryRowContext(ctx,
		`SELECT id, advert_id, user_id, created_at FROM advert_locks WHERE advert_id = ?`,
		advertID).Scan(&l.ID, &l.AdvertID, &l.UserID, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// AcquireTx takes the editing lock for a user inside the caller's
// transaction.  Returns ErrLockHeld when the advert is already locked,
// by this user or anyone else.
func (r *AdvertLockRepo) AcquireTx(ctx context.Context, tx *sql.Tx, advertID, userID uint64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO advert_locks (advert_id, user_id) VALUES (?, ?)`,
		advertID, userID)
	if err != nil && isDuplicateKey(err) {
		return ErrLockHeld
	}
	return err
}

// Acquire is the standalone form of AcquireTx for claims that carry
// no other writes.
func (r *AdvertLockRepo) Acquire(ctx context.Context, advertID, userID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO advert_locks (advert_id, user_id) VALUES (?, ?)`,
		advertID, userID)
	if err != nil && isDuplicateKey(err) {
		return ErrLockHeld
	}
	return err
}

// ReleaseTx drops the user's lock on an advert inside the caller's
// transaction.  Releasing a lock you do not hold is a no-op.
func (r *AdvertLockRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, advertID, userID uint64) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM advert_locks WHERE advert_id = ? AND user_id = ?`,
		advertID, userID)
	return err
}

// LockedAdvertIDs lists the adverts a user holds in a category,
// oldest lock first.  Used by the completion flow and the archive
// builder to resolve the user's working set.
func (r *AdvertLockRepo) LockedAdvertIDs(ctx context.Context, categoryID, userID uint64) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT l.advert_id FROM advert_locks l
		 JOIN adverts a ON a.id = l.advert_id
		 WHERE a.category_id = ? AND l.user_id = ?
		 ORDER BY l.created_at ASC`, categoryID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// CompleteWork finishes the user's whole working set in a category:
// every locked advert is moved to the used status and its lock is
// dropped in the same transaction, so a crash between the two
// statements can never leave a used advert still locked.  Returns the
// advert ids that were completed.
func (r *AdvertLockRepo) CompleteWork(ctx context.Context, categoryID, userID uint64, usedStatus int) ([]uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Pin the working set with FOR UPDATE so the ids reported match
	// exactly the rows the UPDATE and DELETE below touch, even when a
	// concurrent acquire or release races the completion.
	rows, err := tx.QueryContext(ctx,
		`SELECT l.advert_id FROM advert_locks l
		 JOIN adverts a ON a.id = l.advert_id
		 WHERE a.category_id = ? AND l.user_id = ?
		 ORDER BY l.created_at ASC
		 FOR UPDATE`, categoryID, userID)
	if err != nil {
		return nil, err
	}
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE adverts a
		 JOIN advert_locks l ON l.advert_id = a.id
		 SET a.status = ?, a.updated_at = UTC_TIMESTAMP()
		 WHERE a.category_id = ? AND l.user_id = ?`,
		usedStatus, categoryID, userID); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE l FROM advert_locks l
		 JOIN adverts a ON a.id = l.advert_id
		 WHERE a.category_id = ? AND l.user_id = ?`,
		categoryID, userID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return ids, nil
}

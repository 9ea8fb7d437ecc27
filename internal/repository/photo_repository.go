package repository

import (
	"context"
	"database/sql"

	"github.com/mvolkova/travelads/internal/model"
)

// PhotoRepo provides data access to advert photos.
type PhotoRepo struct {
	db *sql.DB
}

// NewPhotoRepo returns a new PhotoRepo bound to the database.
func NewPhotoRepo(db *sql.DB) *PhotoRepo { return &PhotoRepo{db: db} }

const photoColumns = `id, advert_id, path, checksum, enabled, is_main, created_at`

func scanPhoto(row interface{ Scan(...any) error }) (model.AdvertPhoto, error) {
	var p model.AdvertPhoto
	err := row.Scan(&p.ID, &p.AdvertID, &p.Path, &p.Checksum, &p.Enabled, &p.IsMain, &p.CreatedAt)
	return p, err
}

// GetByID fetches one photo.
func (r *PhotoRepo) GetByID(ctx context.Context, id uint64) (model.AdvertPhoto, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+photoColumns+` FROM advert_photos WHERE id = ?`, id)
	p, err := scanPhoto(row)
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	return p, err
}

// ListByAdvert returns an advert's photos, main photo first.
func (r *PhotoRepo) ListByAdvert(ctx context.Context, advertID uint64) ([]model.AdvertPhoto, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+photoColumns+` FROM advert_photos
		 WHERE advert_id = ? ORDER BY is_main DESC, id ASC`, advertID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.AdvertPhoto
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// EnabledByAdverts returns the enabled photos of each given advert,
// keyed by advert id.  Feeds the archive builder.
func (r *PhotoRepo) EnabledByAdverts(ctx context.Context, advertIDs []uint64) (map[uint64][]model.AdvertPhoto, error) {
	out := make(map[uint64][]model.AdvertPhoto)
	if len(advertIDs) == 0 {
		return out, nil
	}
	args := make([]any, len(advertIDs))
	for i, id := range advertIDs {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+photoColumns+` FROM advert_photos
		 WHERE enabled = 1 AND advert_id IN (`+placeholders(len(advertIDs))+`)
		 ORDER BY advert_id, is_main DESC, id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		out[p.AdvertID] = append(out[p.AdvertID], p)
	}
	return out, rows.Err()
}

// SetEnabled toggles whether a photo is packaged with its advert.
func (r *PhotoRepo) SetEnabled(ctx context.Context, photoID uint64, enabled bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE advert_photos SET enabled = ? WHERE id = ?`, enabled, photoID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetMain makes one photo the advert's main photo.  The previous main
// flag is cleared in the same transaction so the advert never shows
// two mains.
func (r *PhotoRepo) SetMain(ctx context.Context, advertID, photoID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx,
		`UPDATE advert_photos SET is_main = 0 WHERE advert_id = ?`, advertID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE advert_photos SET is_main = 1 WHERE id = ? AND advert_id = ?`,
		photoID, advertID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Create records a downloaded photo.  A checksum collision within the
// advert returns ErrConflict: the same image is never stored twice.
func (r *PhotoRepo) Create(ctx context.Context, p model.AdvertPhoto) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO advert_photos (advert_id, path, checksum, enabled, is_main)
		 VALUES (?, ?, ?, ?, ?)`,
		p.AdvertID, p.Path, p.Checksum, p.Enabled, p.IsMain)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mvolkova/travelads/internal/model"
)

// Advert workflow status codes mirrored here to keep SQL readable.
// internal/workflow owns the transition rules.
const (
	statusInWork = 1
)

// AdvertRepo provides data access to categories and adverts.  The
// "available" scoping rule from the original moderation tool applies
// throughout: an advert shows up in the common status listings only
// when it is visible and nobody holds its editing lock, while the
// in-work listing is always scoped to the requesting user's locks.
type AdvertRepo struct {
	db *sql.DB
}

// NewAdvertRepo returns a new AdvertRepo bound to the database.
func NewAdvertRepo(db *sql.DB) *AdvertRepo { return &AdvertRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *AdvertRepo) DB() *sql.DB { return r.db }

// CategoryByAlias fetches a category by its URL alias.
func (r *AdvertRepo) CategoryByAlias(ctx context.Context, alias string) (model.Category, error) {
	var c model.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, alias, kind FROM categories WHERE alias = ? LIMIT 1`, alias).
		Scan(&c.ID, &c.Title, &c.Alias, &c.Kind)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

// AllCategories lists every category.
func (r *AdvertRepo) AllCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, alias, kind FROM categories ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Alias, &c.Kind); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const advertColumns = `a.id, a.category_id, a.status,
	COALESCE(a.city, ''), COALESCE(a.district, ''), COALESCE(a.metro, ''),
	COALESCE(a.title, ''), COALESCE(a.title_original, ''),
	COALESCE(a.description, ''), COALESCE(a.description_original, ''),
	a.price, a.visible, a.donor, a.donor_url, a.created_at, a.updated_at`

const apartmentColumns = `COALESCE(a.street, ''), COALESCE(a.house_number, ''),
	a.house_material, a.rooms_number, a.floor, a.floors_total,
	a.area_living, a.area_total, a.area_kitchen, a.ceiling_height,
	a.beds_number, a.condition, a.apartment_type,
	COALESCE(a.has_furniture, 0), COALESCE(a.has_kitchen, 0),
	COALESCE(a.has_refrigerator, 0), COALESCE(a.has_washing_machine, 0),
	COALESCE(a.has_conditioner, 0), COALESCE(a.has_tv, 0), COALESCE(a.has_internet, 0)`

const cottageColumns = `a.area_house, a.area_land, a.wall_material, a.number_floors`

// scanAdvert reads one adverts row, including both variant column
// sets, and attaches the payload selected by the category kind.
func scanAdvert(row interface{ Scan(...any) error }, kind string) (model.Advert, error) {
	var (
		a model.Advert
		ap model.ApartmentDetails
		ct model.CottageDetails
	)
	err := row.Scan(
		&a.ID, &a.CategoryID, &a.Status,
		&a.City, &a.District, &a.Metro,
		&a.Title, &a.TitleOriginal,
		&a.Description, &a.DescriptionOriginal,
		&a.Price, &a.Visible, &a.Donor, &a.DonorURL, &a.CreatedAt, &a.UpdatedAt,
		&ap.Street, &ap.HouseNumber,
		&ap.HouseMaterial, &ap.RoomsNumber, &ap.Floor, &ap.FloorsTotal,
		&ap.AreaLiving, &ap.AreaTotal, &ap.AreaKitchen, &ap.CeilingHeight,
		&ap.BedsNumber, &ap.Condition, &ap.ApartmentType,
		&ap.HasFurniture, &ap.HasKitchen,
		&ap.HasRefrigerator, &ap.HasWashingMachine,
		&ap.HasConditioner, &ap.HasTV, &ap.HasInternet,
		&ct.AreaHouse, &ct.AreaLand, &ct.WallMaterial, &ct.NumberFloors,
	)
	if err != nil {
		return a, err
	}
	switch kind {
	case model.KindCottage:
		a.Cottage = &ct
	default:
		a.Apartment = &ap
	}
	return a, nil
}

const advertSelect = `SELECT ` + advertColumns + `, ` + apartmentColumns + `, ` + cottageColumns + `
	FROM adverts a`

// GetByID fetches one advert with its variant payload.
func (r *AdvertRepo) GetByID(ctx context.Context, id uint64) (model.Advert, error) {
	var kind string
	err := r.db.QueryRowContext(ctx,
		`SELECT c.kind FROM adverts a JOIN categories c ON c.id = a.category_id WHERE a.id = ?`, id).
		Scan(&kind)
	if err == sql.ErrNoRows {
		return model.Advert{}, ErrNotFound
	}
	if err != nil {
		return model.Advert{}, err
	}
	row := r.db.QueryRowContext(ctx, advertSelect+` WHERE a.id = ?`, id)
	a, err := scanAdvert(row, kind)
	if err == sql.ErrNoRows {
		return a, ErrNotFound
	}
	return a, err
}

// ListByStatus pages through a category's adverts in one status.  For
// the in-work status the listing is the requesting user's locked
// adverts; for every other status it is the visible, unlocked ones.
// Ordered oldest first, matching the moderation queue.
func (r *AdvertRepo) ListByStatus(ctx context.Context, categoryID uint64, kind string, status int, userID uint64, page, pageSize int) ([]model.Advert, int64, error) {
	cond := `a.category_id = ? AND a.visible = 1`
	var args []any
	args = append(args, categoryID)
	if status == statusInWork {
		cond += ` AND l.user_id = ?`
		args = append(args, userID)
	} else {
		cond += ` AND a.status = ? AND l.id IS NULL`
		args = append(args, status)
	}
	const joins = ` LEFT JOIN advert_locks l ON l.advert_id = a.id`

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM adverts a`+joins+` WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	q := advertSelect + joins + ` WHERE ` + cond + ` ORDER BY a.created_at ASC LIMIT ? OFFSET ?`
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]model.Advert, 0, pageSize)
	for rows.Next() {
		a, err := scanAdvert(rows, kind)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

// StatusCounts returns the per-status advert counts for a category:
// the in-work bucket counts the user's locked adverts, the others
// count visible unlocked adverts in that status.
func (r *AdvertRepo) StatusCounts(ctx context.Context, categoryID, userID uint64) (map[int]int, error) {
	counts := make(map[int]int)

	rows, err := r.db.QueryContext(ctx,
		`SELECT a.status, COUNT(*) FROM adverts a
		 LEFT JOIN advert_locks l ON l.advert_id = a.id
		 WHERE a.category_id = ? AND a.visible = 1 AND l.id IS NULL
		 GROUP BY a.status`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status, n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var inWork int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM adverts a
		 JOIN advert_locks l ON l.advert_id = a.id
		 WHERE a.category_id = ? AND a.visible = 1 AND l.user_id = ?`,
		categoryID, userID).Scan(&inWork); err != nil {
		return nil, err
	}
	counts[statusInWork] = inWork
	return counts, nil
}

// UpdateStatusTx sets the advert status inside the caller's
// transaction (lock side effects are applied by AdvertLockRepo in the
// same transaction).
func (r *AdvertRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, advertID uint64, status int) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE adverts SET status = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`,
		status, advertID)
	return err
}

// UpdateTextField writes one of the auto-generated text fields.  The
// column name is interpolated from a fixed whitelist, never from user
// input directly.
func (r *AdvertRepo) UpdateTextField(ctx context.Context, advertID uint64, field, value string) error {
	switch field {
	case "title", "description":
	default:
		return fmt.Errorf("field %q is not enabled for text generation", field)
	}
	q := fmt.Sprintf(`UPDATE adverts SET %s = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`, field)
	_, err := r.db.ExecContext(ctx, q, value, advertID)
	return err
}

// RestoreOriginal copies the donor's original text back into the
// working field.
func (r *AdvertRepo) RestoreOriginal(ctx context.Context, advertID uint64, field string) error {
	switch field {
	case "title", "description":
	default:
		return fmt.Errorf("field %q is not enabled for text generation", field)
	}
	q := fmt.Sprintf(`UPDATE adverts SET %s = %s_original, updated_at = UTC_TIMESTAMP() WHERE id = ?`, field, field)
	_, err := r.db.ExecContext(ctx, q, advertID)
	return err
}

// AdvertDraft is the insertable form of an advert, produced by the
// bulk-create form or the donor page parser.
type AdvertDraft struct {
	CategoryID          uint64
	City                string
	District            string
	Metro               string
	Title               string
	TitleOriginal       string
	Description         string
	DescriptionOriginal string
	Price               *int
	Donor               int
	DonorURL            string
}

// Create inserts one advert in status new.  A donor_url collision
// returns ErrDuplicateDonorURL: the unique constraint is the dedupe
// key for ingested adverts.
func (r *AdvertRepo) Create(ctx context.Context, d AdvertDraft) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO adverts
		 (category_id, status, city, district, metro, title, title_original,
		  description, description_original, price, visible, donor, donor_url)
		 VALUES (?, 0, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		d.CategoryID, d.City, d.District, d.Metro, d.Title, d.TitleOriginal,
		d.Description, d.DescriptionOriginal, d.Price, d.Donor, d.DonorURL)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicateDonorURL
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// BulkCreate inserts count copies of the draft with generated dummy
// donor URLs, all within one transaction.  Used by the bulk-create
// form to seed hand-written adverts.
func (r *AdvertRepo) BulkCreate(ctx context.Context, d AdvertDraft, count int) ([]uint64, error) {
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

	ids := make([]uint64, 0, count)
	for i := 0; i < count; i++ {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO adverts
			 (category_id, status, city, district, metro, title, title_original,
			  description, description_original, price, visible, donor, donor_url)
			 VALUES (?, 0, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
			d.CategoryID, d.City, d.District, d.Metro, d.Title, d.TitleOriginal,
			d.Description, d.DescriptionOriginal, d.Price, model.DonorDummy,
			fmt.Sprintf("http://dummy.local/%s", uuid.New().String()))
		if err != nil {
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint64(id))
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return ids, nil
}

// Hide soft-deletes an advert. Adverts are never removed from the
// table.
func (r *AdvertRepo) Hide(ctx context.Context, advertID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE adverts SET visible = 0, updated_at = UTC_TIMESTAMP() WHERE id = ?`, advertID)
	return err
}

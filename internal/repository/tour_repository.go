package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/mvolkova/travelads/internal/search"
)

// TourRepo provides data access to the tours fact table.  Search
// listings and the grouped aggregates in tour_aggregates.go share the
// same WHERE assembly so a scope means exactly the same thing to
// both.
type TourRepo struct {
	db *sql.DB
}

// NewTourRepo returns a new TourRepo bound to the provided database.
func NewTourRepo(db *sql.DB) *TourRepo { return &TourRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *TourRepo) DB() *sql.DB { return r.db }

// TourRow is one listing entry: the tour fact joined with its city,
// resort and country names.
type TourRow struct {
	ID           uint64 `json:"id"`
	City         string `json:"city"`
	CityTranslit string `json:"city_translit"`
	Country      string `json:"country"`
	Resort       string `json:"resort"`
	TourDate     string `json:"tour_date"`
	Nights       int    `json:"nights"`
	MinPrice     int    `json:"min_price"`
	AllInclusive bool   `json:"all_inclusive"`
}

// whereTours translates the canonical parameters into SQL conditions
// over the aliases t (tours), c (departure_cities), r (resorts) and
// co (countries).  Every query starts from the round-trip gate: tours
// missing either ticket direction are not bookable and never
// participate.  An impossible scope (requested dimension with no
// resolved entity) compiles to 1=0 so stale slugs yield empty
// listings instead of errors.
func whereTours(p search.Params) (string, []any) {
	where := []string{"t.tickets_dpt = 1", "t.tickets_rtn = 1", "t.need_del = 0"}
	var args []any

	if p.Impossible() {
		return "1=0", nil
	}
	if p.Cities.Requested {
		where = append(where, "t.city_id IN ("+placeholders(len(p.Cities.IDs))+")")
		for _, id := range p.Cities.IDs {
			args = append(args, id)
		}
	}
	if p.Countries.Requested {
		where = append(where, "r.country_id IN ("+placeholders(len(p.Countries.IDs))+")")
		for _, id := range p.Countries.IDs {
			args = append(args, id)
		}
	}
	if p.Resorts.Requested {
		where = append(where, "t.resort_id IN ("+placeholders(len(p.Resorts.IDs))+")")
		for _, id := range p.Resorts.IDs {
			args = append(args, id)
		}
	}
	if p.DateFrom != nil {
		where = append(where, "t.tour_date >= ?")
		args = append(args, p.DateFrom.Format("2006-01-02"))
	}
	if p.DateTo != nil {
		where = append(where, "t.tour_date <= ?")
		args = append(args, p.DateTo.Format("2006-01-02"))
	}
	if p.MinNights > 0 {
		where = append(where, "t.nights >= ?")
		args = append(args, p.MinNights)
	}
	if p.MaxNights > 0 {
		where = append(where, "t.nights <= ?")
		args = append(args, p.MaxNights)
	}
	if p.MaxPrice > 0 {
		where = append(where, "t.min_price <= ?")
		args = append(args, p.MaxPrice)
	}
	if p.AllInclusive {
		where = append(where, "t.all_inclusive = 1")
	}
	return strings.Join(where, " AND "), args
}

const tourJoins = ` FROM tours t
	JOIN departure_cities c ON c.id = t.city_id
	JOIN resorts r          ON r.id = t.resort_id
	JOIN countries co       ON co.id = r.country_id`

// List returns the tours matching the scope ordered by minimum price
// ascending, with pagination.  Total carries the unpaginated count.
func (r *TourRepo) List(ctx context.Context, p search.Params, page, pageSize int) ([]TourRow, int64, error) {
	cond, args := whereTours(p)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+tourJoins+` WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	dataSQL := `SELECT
			t.id,
			c.name AS city_name,
			c.translit,
			co.name AS country_name,
			r.name AS resort_name,
			COALESCE(DATE_FORMAT(t.tour_date, '%Y-%m-%d'), ''),
			COALESCE(t.nights, 0),
			COALESCE(t.min_price, 0),
			COALESCE(t.all_inclusive, 0)` +
		tourJoins + `
		WHERE ` + cond + `
		ORDER BY t.min_price ASC
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]TourRow, 0, pageSize)
	for rows.Next() {
		var d TourRow
		if err := rows.Scan(&d.ID, &d.City, &d.CityTranslit, &d.Country, &d.Resort,
			&d.TourDate, &d.Nights, &d.MinPrice, &d.AllInclusive); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

// LastScanDate returns the freshest scan date over the whole fact
// table, shown as the "data as of" marker on listings.
func (r *TourRepo) LastScanDate(ctx context.Context) (string, error) {
	var d sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT DATE_FORMAT(MAX(scan_date), '%Y-%m-%d') FROM tours`).Scan(&d)
	if err != nil {
		return "", err
	}
	return d.String, nil
}

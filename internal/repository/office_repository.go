package repository

import (
	"context"
	"database/sql"

	"github.com/mvolkova/travelads/internal/model"
)

// OfficeRepo provides data access to the sales offices table.
type OfficeRepo struct {
	db *sql.DB
}

// NewOfficeRepo returns a new OfficeRepo bound to the database.
func NewOfficeRepo(db *sql.DB) *OfficeRepo { return &OfficeRepo{db: db} }

const officeColumns = `id, city_id, street, COALESCE(office_info, ''), phone1,
	COALESCE(phone2, ''), work_time, sort, ` + "`default`"

func (r *OfficeRepo) query(ctx context.Context, q string, args ...any) ([]model.Office, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Office
	for rows.Next() {
		var o model.Office
		if err := rows.Scan(&o.ID, &o.CityID, &o.Street, &o.OfficeInfo, &o.Phone1,
			&o.Phone2, &o.WorkTime, &o.Sort, &o.Default); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// All lists every office in display order.
func (r *OfficeRepo) All(ctx context.Context) ([]model.Office, error) {
	return r.query(ctx, `SELECT `+officeColumns+` FROM offices ORDER BY sort`)
}

// OfficeSet is the office block for a city scope: the city's own
// offices, or the defaults plus satellite-city offices when the city
// has none of its own.
type OfficeSet struct {
	Main       []model.Office `json:"main"`
	Satellites []model.Office `json:"satellites,omitempty"`
}

// ForCity resolves the office block for a departure city.  Cities
// without their own offices fall back to the offices flagged default,
// supplemented with offices of the city's satellites.
func (r *OfficeRepo) ForCity(ctx context.Context, cityID uint64) (OfficeSet, error) {
	main, err := r.query(ctx,
		`SELECT `+officeColumns+` FROM offices WHERE city_id = ? ORDER BY sort`, cityID)
	if err != nil {
		return OfficeSet{}, err
	}
	if len(main) > 0 {
		return OfficeSet{Main: main}, nil
	}

	defaults, err := r.query(ctx,
		`SELECT `+officeColumns+" FROM offices WHERE `default` = 1 ORDER BY sort")
	if err != nil {
		return OfficeSet{}, err
	}
	sats, err := r.query(ctx,
		`SELECT `+officeColumns+` FROM offices
		 WHERE city_id IN (SELECT satellite_id FROM city_satellites WHERE city_id = ?)
		 ORDER BY sort`, cityID)
	if err != nil {
		return OfficeSet{}, err
	}
	return OfficeSet{Main: defaults, Satellites: sats}, nil
}

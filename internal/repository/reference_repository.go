package repository

import (
	"context"
	"database/sql"
	"strings"
)

// ReferenceRepo serves the catalog reference lists that feed the
// extended search filters: hotels, rooms, resort areas, star classes,
// meal plans and tour names, narrowed to the resorts or countries the
// visitor already selected.  Stale catalog entries are hidden by the
// is_actual flag instead of being deleted.
type ReferenceRepo struct {
	db *sql.DB
}

// NewReferenceRepo returns a new ReferenceRepo bound to the database.
func NewReferenceRepo(db *sql.DB) *ReferenceRepo { return &ReferenceRepo{db: db} }

// RefItem is one id/label pair for a filter dropdown.
type RefItem struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func idArgs(ids []uint64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func (r *ReferenceRepo) queryItems(ctx context.Context, q string, args []any) ([]RefItem, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]RefItem, 0)
	for rows.Next() {
		var it RefItem
		if err := rows.Scan(&it.ID, &it.Name); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// HotelsByResorts lists actual hotels within the given resorts.
func (r *ReferenceRepo) HotelsByResorts(ctx context.Context, resortIDs []uint64) ([]RefItem, error) {
	if len(resortIDs) == 0 {
		return []RefItem{}, nil
	}
	q := `SELECT id, name FROM hotels
	      WHERE is_actual = 1 AND resort_id IN (` + placeholders(len(resortIDs)) + `)
	      ORDER BY LOWER(name)`
	return r.queryItems(ctx, q, idArgs(resortIDs))
}

// HotelsByCountries lists actual hotels within the given countries.
func (r *ReferenceRepo) HotelsByCountries(ctx context.Context, countryIDs []uint64) ([]RefItem, error) {
	if len(countryIDs) == 0 {
		return []RefItem{}, nil
	}
	q := `SELECT h.id, h.name FROM hotels h
	      JOIN resorts r ON r.id = h.resort_id
	      WHERE h.is_actual = 1 AND r.country_id IN (` + placeholders(len(countryIDs)) + `)
	      ORDER BY LOWER(h.name)`
	return r.queryItems(ctx, q, idArgs(countryIDs))
}

// RoomsByHotels lists actual room types offered by the given hotels,
// via the detailed tour facts.
func (r *ReferenceRepo) RoomsByHotels(ctx context.Context, hotelIDs []uint64) ([]RefItem, error) {
	if len(hotelIDs) == 0 {
		return []RefItem{}, nil
	}
	q := `SELECT DISTINCT ro.id, ro.room FROM rooms ro
	      JOIN tour_details td ON td.room_id = ro.id
	      WHERE ro.is_actual = 1 AND td.hotel_id IN (` + placeholders(len(hotelIDs)) + `)
	      ORDER BY ro.room`
	return r.queryItems(ctx, q, idArgs(hotelIDs))
}

// RoomsByResorts lists actual room types available in the resorts.
func (r *ReferenceRepo) RoomsByResorts(ctx context.Context, resortIDs []uint64) ([]RefItem, error) {
	if len(resortIDs) == 0 {
		return []RefItem{}, nil
	}
	q := `SELECT DISTINCT ro.id, ro.room FROM rooms ro
	      JOIN tour_details td ON td.room_id = ro.id
	      WHERE ro.is_actual = 1 AND td.resort_id IN (` + placeholders(len(resortIDs)) + `)
	      ORDER BY ro.room`
	return r.queryItems(ctx, q, idArgs(resortIDs))
}

// AreasByResorts lists the districts of the given resorts.
func (r *ReferenceRepo) AreasByResorts(ctx context.Context, resortIDs []uint64) ([]RefItem, error) {
	if len(resortIDs) == 0 {
		return []RefItem{}, nil
	}
	q := `SELECT DISTINCT id, name FROM resort_areas
	      WHERE is_actual = 1 AND resort_id IN (` + placeholders(len(resortIDs)) + `)
	      ORDER BY name`
	return r.queryItems(ctx, q, idArgs(resortIDs))
}

// StarsByResorts lists the distinct hotel star classes present in the
// resorts, ascending.
func (r *ReferenceRepo) StarsByResorts(ctx context.Context, resortIDs []uint64) ([]string, error) {
	if len(resortIDs) == 0 {
		return []string{}, nil
	}
	q := `SELECT DISTINCT stars FROM hotels
	      WHERE is_actual = 1 AND resort_id IN (` + placeholders(len(resortIDs)) + `)
	      ORDER BY stars`
	rows, err := r.db.QueryContext(ctx, q, idArgs(resortIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	stars := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		stars = append(stars, s)
	}
	return stars, rows.Err()
}

// MealsByResorts lists the meal plans offered in the resorts.
func (r *ReferenceRepo) MealsByResorts(ctx context.Context, resortIDs []uint64) ([]RefItem, error) {
	if len(resortIDs) == 0 {
		return []RefItem{}, nil
	}
	q := `SELECT DISTINCT m.id, m.meal FROM meals m
	      JOIN tour_details td ON td.meal_id = m.id
	      WHERE td.resort_id IN (` + placeholders(len(resortIDs)) + `)
	      ORDER BY m.meal`
	return r.queryItems(ctx, q, idArgs(resortIDs))
}

// TourNamesByResorts lists the actual tour names sold for the resorts.
func (r *ReferenceRepo) TourNamesByResorts(ctx context.Context, resortIDs []uint64) ([]RefItem, error) {
	if len(resortIDs) == 0 {
		return []RefItem{}, nil
	}
	q := `SELECT DISTINCT tn.id, tn.name FROM tour_names tn
	      JOIN tour_details td ON td.tour_name_id = tn.id
	      WHERE tn.is_actual = 1 AND td.resort_id IN (` + placeholders(len(resortIDs)) + `)
	      ORDER BY tn.name`
	return r.queryItems(ctx, q, idArgs(resortIDs))
}

// HotelSearchQuery carries the extended search form filters over the
// detailed (hotel-level) tour facts.
type HotelSearchQuery struct {
	ResortIDs []uint64
	HotelIDs  []uint64
	RoomIDs   []uint64
	MealIDs   []uint64
	AreaIDs   []uint64
	Stars     []string
	DateFrom  string // YYYY-MM-DD, empty = unconstrained
	DateTo    string
	MinNights int
	MaxNights int
	MaxPrice  int
}

// HotelTourRow is one detailed search result.
type HotelTourRow struct {
	ID       uint64 `json:"id"`
	Hotel    string `json:"hotel"`
	Stars    string `json:"stars"`
	Resort   string `json:"resort"`
	Area     string `json:"area"`
	Room     string `json:"room"`
	Meal     string `json:"meal"`
	TourName string `json:"tour_name"`
	TourDate string `json:"tour_date"`
	Nights   int    `json:"nights"`
	Price    int    `json:"price"`
}

// SearchHotelTours runs the extended search over tour_details.  Like
// the flat search it admits only round trips with both ticket
// directions present.
func (r *ReferenceRepo) SearchHotelTours(ctx context.Context, q HotelSearchQuery, page, pageSize int) ([]HotelTourRow, int64, error) {
	where := []string{"td.tickets_dpt = 1", "td.tickets_rtn = 1", "td.need_del = 0"}
	var args []any

	addIDs := func(col string, ids []uint64) {
		if len(ids) > 0 {
			where = append(where, col+" IN ("+placeholders(len(ids))+")")
			args = append(args, idArgs(ids)...)
		}
	}
	addIDs("td.resort_id", q.ResortIDs)
	addIDs("td.hotel_id", q.HotelIDs)
	addIDs("td.room_id", q.RoomIDs)
	addIDs("td.meal_id", q.MealIDs)
	addIDs("td.area_id", q.AreaIDs)
	if len(q.Stars) > 0 {
		where = append(where, "h.stars IN ("+placeholders(len(q.Stars))+")")
		args = append(args, stringArgs(q.Stars)...)
	}
	if q.DateFrom != "" {
		where = append(where, "td.tour_date >= ?")
		args = append(args, q.DateFrom)
	}
	if q.DateTo != "" {
		where = append(where, "td.tour_date <= ?")
		args = append(args, q.DateTo)
	}
	if q.MinNights > 0 {
		where = append(where, "td.nights >= ?")
		args = append(args, q.MinNights)
	}
	if q.MaxNights > 0 {
		where = append(where, "td.nights <= ?")
		args = append(args, q.MaxNights)
	}
	if q.MaxPrice > 0 {
		where = append(where, "td.price <= ?")
		args = append(args, q.MaxPrice)
	}
	cond := strings.Join(where, " AND ")

	const joins = ` FROM tour_details td
		JOIN hotels h     ON h.id = td.hotel_id
		JOIN resorts r    ON r.id = td.resort_id
		JOIN rooms ro     ON ro.id = td.room_id
		JOIN meals m      ON m.id = td.meal_id
		JOIN tour_names tn ON tn.id = td.tour_name_id
		LEFT JOIN resort_areas ra ON ra.id = td.area_id`

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+joins+` WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	dataSQL := `SELECT td.id, h.name, h.stars, r.name, COALESCE(ra.name, ''),
			ro.room_rus, m.meal, tn.name,
			COALESCE(DATE_FORMAT(td.tour_date, '%Y-%m-%d'), ''),
			COALESCE(td.nights, 0), COALESCE(td.price, 0)` + joins + `
		WHERE ` + cond + `
		ORDER BY td.price ASC
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]HotelTourRow, 0, pageSize)
	for rows.Next() {
		var d HotelTourRow
		if err := rows.Scan(&d.ID, &d.Hotel, &d.Stars, &d.Resort, &d.Area, &d.Room,
			&d.Meal, &d.TourName, &d.TourDate, &d.Nights, &d.Price); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

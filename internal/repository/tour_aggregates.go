package repository

import (
	"context"

	"github.com/mvolkova/travelads/internal/search"
)

// Agg is one grouped aggregate: how many tours match a child scope
// and the true minimum price among them.  Grouping keeps the real
// MIN, never an arbitrary member, so price ties are safe.
type Agg struct {
	Name     string `json:"name"`
	Translit string `json:"translit"`
	MinPrice int    `json:"min_price"`
	Count    int    `json:"count"`
}

// MonthAgg is the per-month grouping keyed by the first day of the
// month of the tour date.
type MonthAgg struct {
	Month    string `json:"month"` // YYYY-MM-01
	MinPrice int    `json:"min_price"`
	Count    int    `json:"count"`
}

// CountriesInfo groups the scoped tours by destination country with
// count and minimum price, ordered by country name.  The scope's
// pooling and ticket gates come from whereTours, identically to the
// flat listing.
func (r *TourRepo) CountriesInfo(ctx context.Context, p search.Params) ([]Agg, error) {
	cond, args := whereTours(p)
	q := `SELECT co.name, co.translit, MIN(t.min_price), COUNT(*)` + tourJoins + `
		WHERE ` + cond + `
		GROUP BY co.id, co.name, co.translit
		ORDER BY LOWER(co.name)`
	return r.queryAggs(ctx, q, args)
}

// CitiesInfo groups the scoped tours by departure city.
func (r *TourRepo) CitiesInfo(ctx context.Context, p search.Params) ([]Agg, error) {
	cond, args := whereTours(p)
	q := `SELECT c.name, c.translit, MIN(t.min_price), COUNT(*)` + tourJoins + `
		WHERE ` + cond + `
		GROUP BY c.id, c.name, c.translit
		ORDER BY LOWER(c.name)`
	return r.queryAggs(ctx, q, args)
}

// ResortsInfo groups the scoped tours by destination resort.
func (r *TourRepo) ResortsInfo(ctx context.Context, p search.Params) ([]Agg, error) {
	cond, args := whereTours(p)
	q := `SELECT r.name, r.translit, MIN(t.min_price), COUNT(*)` + tourJoins + `
		WHERE ` + cond + `
		GROUP BY r.id, r.name, r.translit
		ORDER BY LOWER(r.name)`
	return r.queryAggs(ctx, q, args)
}

// MonthsInfo groups the scoped tours by tour_date truncated to month
// granularity, ordered chronologically.
func (r *TourRepo) MonthsInfo(ctx context.Context, p search.Params) ([]MonthAgg, error) {
	cond, args := whereTours(p)
	q := `SELECT DATE_FORMAT(t.tour_date, '%Y-%m-01') AS month, MIN(t.min_price), COUNT(*)` + tourJoins + `
		WHERE ` + cond + ` AND t.tour_date IS NOT NULL
		GROUP BY month
		ORDER BY month`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []MonthAgg
	for rows.Next() {
		var m MonthAgg
		if err := rows.Scan(&m.Month, &m.MinPrice, &m.Count); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *TourRepo) queryAggs(ctx context.Context, q string, args []any) ([]Agg, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Agg
	for rows.Next() {
		var a Agg
		if err := rows.Scan(&a.Name, &a.Translit, &a.MinPrice, &a.Count); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

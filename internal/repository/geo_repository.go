package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/mvolkova/travelads/internal/model"
)

// GeoRepo provides data access to the geography tables: departure
// cities, countries, resorts and the satellite links between
// departure cities.  It is the resolver behind the slug segments of
// search URLs; unresolvable slugs simply return fewer rows, never an
// error, so stale drill-down links degrade to empty listings.
type GeoRepo struct {
	db *sql.DB
}

// NewGeoRepo returns a new GeoRepo bound to the provided database.
func NewGeoRepo(db *sql.DB) *GeoRepo { return &GeoRepo{db: db} }

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func stringArgs(vals []string) []any {
	args := make([]any, len(vals))
	for i, v := range vals {
		args[i] = v
	}
	return args
}

// CitiesByTranslit resolves departure city slugs to full records.
// Unknown slugs are silently skipped.
func (r *GeoRepo) CitiesByTranslit(ctx context.Context, translits []string) ([]model.DepartureCity, error) {
	if len(translits) == 0 {
		return nil, nil
	}
	q := `SELECT id, name, COALESCE(name_from, ''), code, translit, latitude, longitude
	      FROM departure_cities WHERE translit IN (` + placeholders(len(translits)) + `)`
	rows, err := r.db.QueryContext(ctx, q, stringArgs(translits)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.DepartureCity
	for rows.Next() {
		var c model.DepartureCity
		if err := rows.Scan(&c.ID, &c.Name, &c.NameFrom, &c.Code, &c.Translit, &c.Latitude, &c.Longitude); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AllCities lists every departure city ordered by name.
func (r *GeoRepo) AllCities(ctx context.Context) ([]model.DepartureCity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(name_from, ''), code, translit, latitude, longitude
		 FROM departure_cities ORDER BY LOWER(name)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.DepartureCity
	for rows.Next() {
		var c model.DepartureCity
		if err := rows.Scan(&c.ID, &c.Name, &c.NameFrom, &c.Code, &c.Translit, &c.Latitude, &c.Longitude); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountriesByTranslit resolves country slugs to full records.
func (r *GeoRepo) CountriesByTranslit(ctx context.Context, translits []string) ([]model.Country, error) {
	if len(translits) == 0 {
		return nil, nil
	}
	q := `SELECT id, name, COALESCE(name_to, ''), COALESCE(name_where, ''), code, translit
	      FROM countries WHERE translit IN (` + placeholders(len(translits)) + `)`
	rows, err := r.db.QueryContext(ctx, q, stringArgs(translits)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Country
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.NameTo, &c.NameWhere, &c.Code, &c.Translit); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AllCountries lists every country ordered by name.
func (r *GeoRepo) AllCountries(ctx context.Context) ([]model.Country, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(name_to, ''), COALESCE(name_where, ''), code, translit
		 FROM countries ORDER BY LOWER(name)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Country
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.NameTo, &c.NameWhere, &c.Code, &c.Translit); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ResortsByTranslit resolves resort slugs to full records.
func (r *GeoRepo) ResortsByTranslit(ctx context.Context, translits []string) ([]model.Resort, error) {
	if len(translits) == 0 {
		return nil, nil
	}
	q := `SELECT id, name, COALESCE(name_to, ''), COALESCE(name_where, ''), country_id, translit, is_checked
	      FROM resorts WHERE translit IN (` + placeholders(len(translits)) + `)`
	rows, err := r.db.QueryContext(ctx, q, stringArgs(translits)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Resort
	for rows.Next() {
		var c model.Resort
		if err := rows.Scan(&c.ID, &c.Name, &c.NameTo, &c.NameWhere, &c.CountryID, &c.Translit, &c.IsChecked); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ResortsByCountry lists the resorts of the given countries ordered
// by name, for the down navigation's reference list.
func (r *GeoRepo) ResortsByCountry(ctx context.Context, countryIDs []uint64) ([]model.Resort, error) {
	q := `SELECT id, name, COALESCE(name_to, ''), COALESCE(name_where, ''), country_id, translit, is_checked
	      FROM resorts`
	var args []any
	if len(countryIDs) > 0 {
		q += ` WHERE country_id IN (` + placeholders(len(countryIDs)) + `)`
		for _, id := range countryIDs {
			args = append(args, id)
		}
	}
	q += ` ORDER BY LOWER(name)`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Resort
	for rows.Next() {
		var c model.Resort
		if err := rows.Scan(&c.ID, &c.Name, &c.NameTo, &c.NameWhere, &c.CountryID, &c.Translit, &c.IsChecked); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Satellites returns the given city plus its pooled satellite cities:
// links that are active satellites and not flagged ignore.  Manual
// and auto links pool alike.  The city itself is always first.
func (r *GeoRepo) Satellites(ctx context.Context, cityID uint64) ([]model.DepartureCity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.name, COALESCE(c.name_from, ''), c.code, c.translit, c.latitude, c.longitude
		 FROM departure_cities c
		 WHERE c.id = ?
		 UNION
		 SELECT c.id, c.name, COALESCE(c.name_from, ''), c.code, c.translit, c.latitude, c.longitude
		 FROM departure_cities c
		 JOIN city_satellites s ON s.satellite_id = c.id
		 WHERE s.city_id = ? AND s.ignore = 0 AND s.is_satellite = 1`,
		cityID, cityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.DepartureCity
	for rows.Next() {
		var c model.DepartureCity
		if err := rows.Scan(&c.ID, &c.Name, &c.NameFrom, &c.Code, &c.Translit, &c.Latitude, &c.Longitude); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SatelliteIDs returns the pooled ID set for a city (the city itself
// included), the form the query composer consumes.
func (r *GeoRepo) SatelliteIDs(ctx context.Context, cityID uint64) ([]uint64, error) {
	cities, err := r.Satellites(ctx, cityID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(cities))
	for _, c := range cities {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// PoolCityIDs expands a resolved city selection with the satellites
// of each selected city.  The result is deduplicated.
func (r *GeoRepo) PoolCityIDs(ctx context.Context, cityIDs []uint64) ([]uint64, error) {
	seen := make(map[uint64]struct{})
	var out []uint64
	for _, id := range cityIDs {
		pooled, err := r.SatelliteIDs(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, p := range pooled {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out, nil
}

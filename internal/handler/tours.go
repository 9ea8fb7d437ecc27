// Package handler exposes HTTP handlers for the public search API and
// the authenticated moderation API.  Responses are JSON envelopes;
// recoverable failures carry an "error" string key.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mvolkova/travelads/internal/model"
	"github.com/mvolkova/travelads/internal/repository"
	"github.com/mvolkova/travelads/internal/search"
)

// TourHandler serves the hierarchical tour search: scoped listings,
// aggregates, drill-down navigation and the office block.
type TourHandler struct {
	Geo     *repository.GeoRepo
	Tours   *repository.TourRepo
	Offices *repository.OfficeRepo
}

func NewTourHandler(geo *repository.GeoRepo, tours *repository.TourRepo, offices *repository.OfficeRepo) *TourHandler {
	return &TourHandler{Geo: geo, Tours: tours, Offices: offices}
}

// scopeData is everything the listing endpoints derive from the path
// segments: the canonical parameters plus the resolved entities needed
// for navigation.
type scopeData struct {
	params search.Params
	scope  search.Scope

	cities    []model.DepartureCity
	countries []model.Country
	resorts   []model.Resort

	cityIDs []uint64 // selected cities before satellite pooling
}

// resolve translates the path segments into canonical parameters.
// Slugs that resolve to nothing leave the dimension requested-but-empty
// so the queries return empty listings, matching stale external links.
func (h *TourHandler) resolve(c echo.Context, pooled bool) (scopeData, error) {
	ctx := c.Request().Context()
	d := scopeData{params: search.NewParams()}
	d.params.Pooled = pooled
	d.scope = search.Scope{
		CitySeg:    c.Param("cities"),
		CountrySeg: c.Param("countries"),
		ResortSeg:  c.Param("resorts"),
	}

	if slugs := search.ParseSlugs(d.scope.CitySeg); slugs != nil {
		cities, err := h.Geo.CitiesByTranslit(ctx, slugs)
		if err != nil {
			return d, err
		}
		d.cities = cities
		ids := make([]uint64, 0, len(cities))
		for _, ct := range cities {
			ids = append(ids, ct.ID)
		}
		d.cityIDs = ids
		if pooled && len(ids) > 0 {
			if ids, err = h.Geo.PoolCityIDs(ctx, ids); err != nil {
				return d, err
			}
		}
		d.params.Cities = search.Select(ids)
		if len(cities) > 0 {
			d.scope.CityName = cities[0].Name
		}
	}
	if slugs := search.ParseSlugs(d.scope.CountrySeg); slugs != nil {
		countries, err := h.Geo.CountriesByTranslit(ctx, slugs)
		if err != nil {
			return d, err
		}
		d.countries = countries
		ids := make([]uint64, 0, len(countries))
		for _, co := range countries {
			ids = append(ids, co.ID)
		}
		d.params.Countries = search.Select(ids)
		if len(countries) > 0 {
			d.scope.CountryName = countries[0].Name
		}
	}
	if slugs := search.ParseSlugs(d.scope.ResortSeg); slugs != nil {
		resorts, err := h.Geo.ResortsByTranslit(ctx, slugs)
		if err != nil {
			return d, err
		}
		d.resorts = resorts
		ids := make([]uint64, 0, len(resorts))
		for _, rs := range resorts {
			ids = append(ids, rs.ID)
		}
		d.params.Resorts = search.Select(ids)
		if len(resorts) > 0 {
			d.scope.ResortName = resorts[0].Name
		}
	}
	return d, nil
}

func pageArgs(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	ps, _ := strconv.Atoi(c.QueryParam("page_size"))
	if ps < 1 {
		ps = 20
	}
	if ps > 100 {
		ps = 100
	}
	return page, ps
}

// List is the scoped tour listing: /v1/tours and its city, country and
// resort drill-downs.  Aggregate blocks pool the selected city with
// its satellites; ?pooled=0 turns the pooling off.
func (h *TourHandler) List(c echo.Context) error {
	return h.list(c, nil, false)
}

// ListAllInclusive is the all-inclusive variant of the scoped listing.
func (h *TourHandler) ListAllInclusive(c echo.Context) error {
	return h.list(c, nil, true)
}

// ListByMonth constrains the scoped listing to one month token
// ("january-2026").  The current month starts today.
func (h *TourHandler) ListByMonth(c echo.Context) error {
	from, to, err := search.MonthRange(c.Param("month"), time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"error": "Некорректный месяц поиска."})
	}
	return h.list(c, &dateRange{from, to}, false)
}

// ListByYear constrains the scoped listing to one year.
func (h *TourHandler) ListByYear(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2200 {
		return c.JSON(http.StatusOK, echo.Map{"error": "Некорректный год поиска."})
	}
	from, to := search.YearRange(year, time.Now().UTC())
	return h.list(c, &dateRange{from, to}, false)
}

type dateRange struct{ from, to time.Time }

// listingParams narrows the flat tour listing back to the explicitly
// selected departure cities.  Satellite pooling widens the aggregate
// blocks only; the tour rows shown come from the chosen cities alone.
func listingParams(p search.Params, cityIDs []uint64) search.Params {
	if !p.Cities.Requested {
		return p
	}
	p.Cities = search.Select(cityIDs)
	return p
}

func (h *TourHandler) list(c echo.Context, dates *dateRange, allInclusive bool) error {
	ctx := c.Request().Context()
	pooled := c.QueryParam("pooled") != "0"

	d, err := h.resolve(c, pooled)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	p := d.params
	p.AllInclusive = allInclusive
	if dates != nil {
		p.DateFrom = &dates.from
		p.DateTo = &dates.to
	}

	page, ps := pageArgs(c)
	tours, total, err := h.Tours.List(ctx, listingParams(p, d.cityIDs), page, ps)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	scanDate, err := h.Tours.LastScanDate(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	resp := echo.Map{
		"breadcrumbs": search.Breadcrumbs(d.scope),
		"tours":       tours,
		"total":       total,
		"page":        page,
		"page_size":   ps,
		"scan_date":   scanDate,
		"date_links":  search.DateLinks(d.scope, time.Now().UTC()),
		"all_inclusive_url": search.AllInclusiveURL(
			d.scope.CitySeg, d.scope.CountrySeg, d.scope.ResortSeg),
	}

	if down, err := h.downLists(c, d, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	} else if down != nil {
		resp["down"] = down
	}

	months, err := h.Tours.MonthsInfo(ctx, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	resp["months"] = months

	if len(d.cities) == 1 {
		if err := h.cityBlocks(c, d, resp); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// downLists builds the one-level-deeper navigation for the scope: the
// departure cities at the root, then countries, then resorts.  A fully
// selected scope has no down level.
func (h *TourHandler) downLists(c echo.Context, d scopeData, p search.Params) (*search.DownLists, error) {
	ctx := c.Request().Context()
	s := d.scope

	toAggMap := func(aggs []repository.Agg) map[string]search.DownEntry {
		m := make(map[string]search.DownEntry, len(aggs))
		for _, a := range aggs {
			m[a.Translit] = search.DownEntry{
				Name:     a.Name,
				Translit: a.Translit,
				MinPrice: a.MinPrice,
				Count:    a.Count,
			}
		}
		return m
	}

	switch {
	case !d.params.Cities.Requested:
		aggs, err := h.Tours.CitiesInfo(ctx, p)
		if err != nil {
			return nil, err
		}
		cities, err := h.Geo.AllCities(ctx)
		if err != nil {
			return nil, err
		}
		all := make([]search.DownEntry, 0, len(cities))
		for _, ct := range cities {
			all = append(all, search.DownEntry{Name: ct.Name, Translit: ct.Translit})
		}
		down := search.SplitDown(all, toAggMap(aggs), func(translit string) string {
			return search.CityURL(translit)
		})
		return &down, nil

	case !d.params.Countries.Requested:
		aggs, err := h.Tours.CountriesInfo(ctx, p)
		if err != nil {
			return nil, err
		}
		countries, err := h.Geo.AllCountries(ctx)
		if err != nil {
			return nil, err
		}
		all := make([]search.DownEntry, 0, len(countries))
		for _, co := range countries {
			all = append(all, search.DownEntry{Name: co.Name, Translit: co.Translit})
		}
		down := search.SplitDown(all, toAggMap(aggs), func(translit string) string {
			return search.CountryURL(s.CitySeg, translit)
		})
		return &down, nil

	case !d.params.Resorts.Requested:
		aggs, err := h.Tours.ResortsInfo(ctx, p)
		if err != nil {
			return nil, err
		}
		countryIDs := d.params.Countries.IDs
		resorts, err := h.Geo.ResortsByCountry(ctx, countryIDs)
		if err != nil {
			return nil, err
		}
		all := make([]search.DownEntry, 0, len(resorts))
		for _, rs := range resorts {
			all = append(all, search.DownEntry{Name: rs.Name, Translit: rs.Translit})
		}
		down := search.SplitDown(all, toAggMap(aggs), func(translit string) string {
			return search.ResortURL(s.CitySeg, s.CountrySeg, translit)
		})
		return &down, nil
	}
	return nil, nil
}

// cityBlocks attaches the single-city extras: the satellite link
// block and the office block.
func (h *TourHandler) cityBlocks(c echo.Context, d scopeData, resp echo.Map) error {
	ctx := c.Request().Context()
	city := d.cities[0]

	sats, err := h.Geo.Satellites(ctx, city.ID)
	if err != nil {
		return err
	}
	var satCities []search.SatelliteCity
	for _, s := range sats {
		if s.ID == city.ID {
			continue
		}
		satCities = append(satCities, search.SatelliteCity{Name: s.Name, Translit: s.Translit})
	}
	if len(satCities) > 0 {
		all := append([]search.SatelliteCity{{Name: city.Name, Translit: city.Translit}}, satCities...)
		resp["satellites"] = echo.Map{
			"links":      search.SatelliteLinks(d.scope, satCities),
			"pooled_url": search.PooledLink(d.scope, all),
		}
	}

	offices, err := h.Offices.ForCity(ctx, city.ID)
	if err != nil {
		return err
	}
	resp["offices"] = offices
	return nil
}

// SearchRedirect translates the search form criteria into the
// canonical drill-down URL so a form submit and a typed URL land on
// the same listing.
func (h *TourHandler) SearchRedirect(c echo.Context) error {
	citySeg := search.JoinSlugs(c.QueryParams()["city"])
	countrySeg := search.JoinSlugs(c.QueryParams()["country"])
	resortSeg := search.JoinSlugs(c.QueryParams()["resort"])

	url := search.ResortURL(citySeg, countrySeg, resortSeg)
	if month := c.QueryParam("month"); month != "" {
		if _, _, err := search.ParseMonthToken(month); err != nil {
			return c.JSON(http.StatusOK, echo.Map{"error": "Некорректный месяц поиска."})
		}
		url += "/date/" + month
	} else if year := c.QueryParam("year"); year != "" {
		if _, err := strconv.Atoi(year); err != nil {
			return c.JSON(http.StatusOK, echo.Map{"error": "Некорректный год поиска."})
		}
		url += "/year/" + year
	}
	return c.JSON(http.StatusOK, echo.Map{"url": url})
}

// ListOffices serves the standalone office directory; ?city=translit
// scopes it to one departure city with the default fallback.
func (h *TourHandler) ListOffices(c echo.Context) error {
	ctx := c.Request().Context()
	if translit := c.QueryParam("city"); translit != "" {
		cities, err := h.Geo.CitiesByTranslit(ctx, []string{translit})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if len(cities) == 0 {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
		}
		set, err := h.Offices.ForCity(ctx, cities[0].ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return c.JSON(http.StatusOK, set)
	}
	offices, err := h.Offices.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"main": offices})
}

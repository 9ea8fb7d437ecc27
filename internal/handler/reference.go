package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mvolkova/travelads/internal/repository"
	"github.com/mvolkova/travelads/internal/search"
)

// ReferenceHandler serves the extended search form's reference lists
// (hotels, rooms, areas, stars, meals, tour names) and the hotel-level
// tour search itself.
type ReferenceHandler struct {
	Geo  *repository.GeoRepo
	Refs *repository.ReferenceRepo
}

func NewReferenceHandler(geo *repository.GeoRepo, refs *repository.ReferenceRepo) *ReferenceHandler {
	return &ReferenceHandler{Geo: geo, Refs: refs}
}

// resortIDs resolves the ?resorts= slug list of a reference request.
func (h *ReferenceHandler) resortIDs(c echo.Context) ([]uint64, error) {
	slugs := search.ParseSlugs(c.QueryParam("resorts"))
	if len(slugs) == 0 {
		return nil, nil
	}
	resorts, err := h.Geo.ResortsByTranslit(c.Request().Context(), slugs)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(resorts))
	for _, rs := range resorts {
		ids = append(ids, rs.ID)
	}
	return ids, nil
}

func parseIDList(raw string) []uint64 {
	var out []uint64
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if id, err := strconv.ParseUint(s, 10, 64); err == nil {
			out = append(out, id)
		}
	}
	return out
}

func (h *ReferenceHandler) items(c echo.Context, items []repository.RefItem, err error) error {
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Hotels lists actual hotels by ?resorts= slugs or, failing that, the
// ?countries= slugs of the form's wider selection.
func (h *ReferenceHandler) Hotels(c echo.Context) error {
	ctx := c.Request().Context()
	ids, err := h.resortIDs(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if len(ids) > 0 {
		items, err := h.Refs.HotelsByResorts(ctx, ids)
		return h.items(c, items, err)
	}

	slugs := search.ParseSlugs(c.QueryParam("countries"))
	if len(slugs) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"items": []repository.RefItem{}})
	}
	countries, err := h.Geo.CountriesByTranslit(ctx, slugs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	countryIDs := make([]uint64, 0, len(countries))
	for _, co := range countries {
		countryIDs = append(countryIDs, co.ID)
	}
	items, err := h.Refs.HotelsByCountries(ctx, countryIDs)
	return h.items(c, items, err)
}

// Rooms lists room types by ?hotels= ids or ?resorts= slugs.
func (h *ReferenceHandler) Rooms(c echo.Context) error {
	ctx := c.Request().Context()
	if hotelIDs := parseIDList(c.QueryParam("hotels")); len(hotelIDs) > 0 {
		items, err := h.Refs.RoomsByHotels(ctx, hotelIDs)
		return h.items(c, items, err)
	}
	ids, err := h.resortIDs(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items, err := h.Refs.RoomsByResorts(ctx, ids)
	return h.items(c, items, err)
}

// Areas lists actual resort areas for the selected resorts.
func (h *ReferenceHandler) Areas(c echo.Context) error {
	ids, err := h.resortIDs(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items, err := h.Refs.AreasByResorts(c.Request().Context(), ids)
	return h.items(c, items, err)
}

// Stars lists the distinct star ratings available in the selection.
func (h *ReferenceHandler) Stars(c echo.Context) error {
	ids, err := h.resortIDs(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	stars, err := h.Refs.StarsByResorts(c.Request().Context(), ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": stars})
}

// Meals lists meal plans available in the selection.
func (h *ReferenceHandler) Meals(c echo.Context) error {
	ids, err := h.resortIDs(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items, err := h.Refs.MealsByResorts(c.Request().Context(), ids)
	return h.items(c, items, err)
}

// TourNames lists actual tour names available in the selection.
func (h *ReferenceHandler) TourNames(c echo.Context) error {
	ids, err := h.resortIDs(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items, err := h.Refs.TourNamesByResorts(c.Request().Context(), ids)
	return h.items(c, items, err)
}

// SearchHotels runs the hotel-level tour search over the detailed
// facts: hotel, room, meal, area, stars, dates, nights and price.
func (h *ReferenceHandler) SearchHotels(c echo.Context) error {
	resortIDs, err := h.resortIDs(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	q := repository.HotelSearchQuery{
		ResortIDs: resortIDs,
		HotelIDs:  parseIDList(c.QueryParam("hotels")),
		RoomIDs:   parseIDList(c.QueryParam("rooms")),
		MealIDs:   parseIDList(c.QueryParam("meals")),
		AreaIDs:   parseIDList(c.QueryParam("areas")),
		DateFrom:  strings.TrimSpace(c.QueryParam("date_from")),
		DateTo:    strings.TrimSpace(c.QueryParam("date_to")),
	}
	for _, s := range strings.Split(c.QueryParam("stars"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			q.Stars = append(q.Stars, s)
		}
	}
	q.MinNights, _ = strconv.Atoi(c.QueryParam("nights_min"))
	q.MaxNights, _ = strconv.Atoi(c.QueryParam("nights_max"))
	q.MaxPrice, _ = strconv.Atoi(c.QueryParam("price_max"))

	page, ps := pageArgs(c)
	rows, total, err := h.Refs.SearchHotelTours(c.Request().Context(), q, page, ps)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":      rows,
		"total":     total,
		"page":      page,
		"page_size": ps,
	})
}

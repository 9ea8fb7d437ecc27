package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mvolkova/travelads/internal/handler"
)

// RegisterTours registers the public tour search surface: the scoped
// listings with their date and all-inclusive variants, the search form
// redirect, the hotel-level search, the reference lists and the office
// directory.  The optional rate limiter guards these unauthenticated
// routes.
func RegisterTours(e *echo.Echo, t *handler.TourHandler, r *handler.ReferenceHandler, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if limiter != nil {
		g.Use(limiter)
	}

	g.GET("/tours", t.List)
	g.GET("/tours/search", t.SearchRedirect)
	g.GET("/tours/:cities", t.List)
	g.GET("/tours/:cities/:countries", t.List)
	g.GET("/tours/:cities/:countries/:resorts", t.List)
	g.GET("/tours/:cities/:countries/:resorts/all-inclusive", t.ListAllInclusive)
	g.GET("/tours/:cities/:countries/:resorts/date/:month", t.ListByMonth)
	g.GET("/tours/:cities/:countries/:resorts/year/:year", t.ListByYear)

	g.GET("/hotels/search", r.SearchHotels)
	g.GET("/reference/hotels", r.Hotels)
	g.GET("/reference/rooms", r.Rooms)
	g.GET("/reference/areas", r.Areas)
	g.GET("/reference/stars", r.Stars)
	g.GET("/reference/meals", r.Meals)
	g.GET("/reference/tour-names", r.TourNames)

	g.GET("/offices", t.ListOffices)
}

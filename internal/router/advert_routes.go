package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mvolkova/travelads/internal/handler"
	"github.com/mvolkova/travelads/internal/middleware"
)

// RegisterModeration registers the advert moderation API.  Every
// route requires a valid JWT with the MODERATOR or ADMIN role.
func RegisterModeration(e *echo.Echo, h *handler.AdvertHandler, jwtSecret string) {
	g := e.Group(
		"/v1/moderation",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("MODERATOR", "ADMIN"),
	)

	g.GET("/categories", h.ListCategories)
	g.GET("/categories/:alias/adverts", h.ListAdverts)
	g.POST("/categories/:alias/bulk", h.BulkCreate)
	g.POST("/categories/:alias/ingest", h.Ingest)
	g.POST("/categories/:alias/complete", h.CompleteWork)
	g.GET("/categories/:alias/package", h.DownloadPackage)

	g.GET("/adverts/:id", h.GetAdvert)
	g.POST("/adverts/:id/work", h.AddToWork)
	g.POST("/adverts/:id/status", h.ChangeStatus)
	g.POST("/adverts/:id/hide", h.HideAdvert)
	g.POST("/adverts/:id/text", h.RegenerateText)
	g.POST("/adverts/:id/text/restore", h.RestoreText)
	g.POST("/adverts/:id/photos/:photo_id/main", h.SetMainPhoto)

	g.POST("/photos/:photo_id/enabled", h.TogglePhoto)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mvolkova/travelads/internal/repository"
)

type togglePhotoReq struct {
	Enabled bool `json:"enabled"`
}

// TogglePhoto enables or disables one photo for packaging.  The photo
// must belong to an advert the caller may edit.
func (h *AdvertHandler) TogglePhoto(c echo.Context) error {
	photoID, err := strconv.ParseUint(c.Param("photo_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid photo id"})
	}
	var req togglePhotoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()

	photo, err := h.Photos.GetByID(ctx, photoID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "photo not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	a, err := h.Adverts.GetByID(ctx, photo.AdvertID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if _, ok := h.checkEditable(c, a, userID); !ok {
		return nil
	}

	if err := h.Photos.SetEnabled(ctx, photoID, req.Enabled); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": photoID, "enabled": req.Enabled})
}

// SetMainPhoto makes one photo the advert's cover image.  The old
// cover is cleared in the same transaction, so an advert never shows
// two main photos.
func (h *AdvertHandler) SetMainPhoto(c echo.Context) error {
	a, ok := h.loadAdvert(c)
	if !ok {
		return nil
	}
	photoID, err := strconv.ParseUint(c.Param("photo_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid photo id"})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if _, ok := h.checkEditable(c, a, userID); !ok {
		return nil
	}

	if err := h.Photos.SetMain(c.Request().Context(), a.ID, photoID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "photo not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": a.ID, "main_photo_id": photoID})
}

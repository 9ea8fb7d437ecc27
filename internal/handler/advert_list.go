package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mvolkova/travelads/internal/workflow"
)

// ListCategories returns every advert category with the status
// vocabulary for the moderation UI.
func (h *AdvertHandler) ListCategories(c echo.Context) error {
	cats, err := h.Adverts.AllCategories(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	statuses := make([]echo.Map, 0, 4)
	for _, s := range workflow.Statuses() {
		statuses = append(statuses, echo.Map{"code": s, "title": workflow.StatusTitle(s)})
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": cats, "statuses": statuses})
}

// ListAdverts pages one category's adverts in one status.  The in-work
// status lists the caller's locked adverts; other statuses list the
// visible unlocked ones.  Per-status counts ride along for the tabs.
func (h *AdvertHandler) ListAdverts(c echo.Context) error {
	cat, ok := h.loadCategory(c)
	if !ok {
		return nil
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	status := workflow.StatusNew
	if raw := c.QueryParam("status"); raw != "" {
		status, err = strconv.Atoi(raw)
		if err != nil || !workflow.ValidStatus(status) {
			return c.JSON(http.StatusOK, echo.Map{"error": "Некорректное значение статуса."})
		}
	}

	page, ps := pageArgs(c)
	ctx := c.Request().Context()
	adverts, total, err := h.Adverts.ListByStatus(ctx, cat.ID, cat.Kind, status, userID, page, ps)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	counts, err := h.Adverts.StatusCounts(ctx, cat.ID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	now := time.Now().UTC()
	cards := make([]advertCard, 0, len(adverts))
	for _, a := range adverts {
		cards = append(cards, toCard(a, now))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"category":  cat,
		"status":    status,
		"adverts":   cards,
		"counts":    counts,
		"total":     total,
		"page":      page,
		"page_size": ps,
	})
}

// GetAdvert returns the full advert with photos and the editability
// verdict for the caller.
func (h *AdvertHandler) GetAdvert(c echo.Context) error {
	a, ok := h.loadAdvert(c)
	if !ok {
		return nil
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()

	lock, err := h.Locks.GetByAdvert(ctx, a.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	photos, err := h.Photos.ListByAdvert(ctx, a.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	now := time.Now().UTC()
	d := advertDetail{
		advertCard:          toCard(a, now),
		TitleOriginal:       a.TitleOriginal,
		Description:         a.Description,
		DescriptionOriginal: a.DescriptionOriginal,
		DonorURL:            a.DonorURL,
		Stats:               a.StatItems(now),
	}
	d.CanEdit, d.EditMessage = workflow.CanEdit(a, lock, userID)
	for _, p := range photos {
		d.Photos = append(d.Photos, photoPart{ID: p.ID, Path: p.Path, Enabled: p.Enabled, IsMain: p.IsMain})
	}
	return c.JSON(http.StatusOK, d)
}

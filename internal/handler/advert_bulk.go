package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mvolkova/travelads/internal/repository"
)

type bulkCreateReq struct {
	Count    int    `json:"count"`
	City     string `json:"city"`
	District string `json:"district"`
	Metro    string `json:"metro"`
	Price    *int   `json:"price"`
}

const bulkCreateLimit = 100

// BulkCreate seeds a category with N hand-written adverts.  Each one
// gets the dummy donor and a generated unique donor URL, so they share
// the dedupe machinery with ingested adverts.
func (h *AdvertHandler) BulkCreate(c echo.Context) error {
	cat, ok := h.loadCategory(c)
	if !ok {
		return nil
	}
	var req bulkCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Count < 1 || req.Count > bulkCreateLimit {
		return c.JSON(http.StatusOK, echo.Map{"error": "Некорректное количество объявлений."})
	}

	draft := repository.AdvertDraft{
		CategoryID: cat.ID,
		City:       strings.TrimSpace(req.City),
		District:   strings.TrimSpace(req.District),
		Metro:      strings.TrimSpace(req.Metro),
		Price:      req.Price,
	}
	ids, err := h.Adverts.BulkCreate(c.Request().Context(), draft, req.Count)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"created": ids})
}

type ingestReq struct {
	DonorURL string `json:"donor_url"`
	HTML     string `json:"html"`
}

// Ingest parses a donor page into a draft advert of the category.  A
// page already ingested (same donor URL) comes back as a message, so
// repeated scans stay idempotent.
func (h *AdvertHandler) Ingest(c echo.Context) error {
	cat, ok := h.loadCategory(c)
	if !ok {
		return nil
	}
	var req ingestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.DonorURL = strings.TrimSpace(req.DonorURL)
	if req.DonorURL == "" || req.HTML == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "donor_url/html required"})
	}

	d, err := h.Parser.Parse(strings.NewReader(req.HTML), req.DonorURL)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"error": "Не удалось разобрать страницу донора."})
	}

	id, err := h.Adverts.Create(c.Request().Context(), repository.AdvertDraft{
		CategoryID:          cat.ID,
		City:                d.City,
		District:            d.District,
		Metro:               d.Metro,
		TitleOriginal:       d.Title,
		DescriptionOriginal: d.Description,
		Price:               d.Price,
		Donor:               d.Donor,
		DonorURL:            d.DonorURL,
	})
	if err != nil {
		if err == repository.ErrDuplicateDonorURL {
			return c.JSON(http.StatusOK, echo.Map{"error": "Объявление с таким адресом уже загружено."})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "photo_urls": d.PhotoURLs})
}

// HideAdvert soft-deletes an advert; it disappears from listings but
// stays in the table.
func (h *AdvertHandler) HideAdvert(c echo.Context) error {
	a, ok := h.loadAdvert(c)
	if !ok {
		return nil
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if _, ok := h.checkEditable(c, a, userID); !ok {
		return nil
	}

	if err := h.Adverts.Hide(c.Request().Context(), a.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": a.ID, "visible": false})
}

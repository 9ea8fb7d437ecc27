package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mvolkova/travelads/internal/textgen"
)

type textFieldReq struct {
	Field string `json:"field"`
}

// RegenerateText replaces one auto-generated field (title or
// description) with a fresh template draw.  An unknown field is a
// validation message, not a transport error.
func (h *AdvertHandler) RegenerateText(c echo.Context) error {
	a, ok := h.loadAdvert(c)
	if !ok {
		return nil
	}
	var req textFieldReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if _, ok := h.checkEditable(c, a, userID); !ok {
		return nil
	}

	gen := textgen.New(time.Now().UnixNano())
	text, err := gen.Generate(req.Field, a)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{
			"error": fmt.Sprintf("Не удалось обновить текст. %s", err),
		})
	}
	if err := h.Adverts.UpdateTextField(c.Request().Context(), a.ID, req.Field, text); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": a.ID, "field": req.Field, "text": text})
}

// RestoreText copies the donor's original text back into the working
// field.
func (h *AdvertHandler) RestoreText(c echo.Context) error {
	a, ok := h.loadAdvert(c)
	if !ok {
		return nil
	}
	var req textFieldReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if _, ok := h.checkEditable(c, a, userID); !ok {
		return nil
	}

	if err := h.Adverts.RestoreOriginal(c.Request().Context(), a.ID, req.Field); err != nil {
		return c.JSON(http.StatusOK, echo.Map{
			"error": fmt.Sprintf("Не удалось обновить текст. %s", err),
		})
	}
	original := a.TitleOriginal
	if req.Field == "description" {
		original = a.DescriptionOriginal
	}
	return c.JSON(http.StatusOK, echo.Map{"id": a.ID, "field": req.Field, "text": original})
}

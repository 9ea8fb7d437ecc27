package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mvolkova/travelads/internal/archive"
	"github.com/mvolkova/travelads/internal/ingest"
	"github.com/mvolkova/travelads/internal/model"
	"github.com/mvolkova/travelads/internal/repository"
	"github.com/mvolkova/travelads/internal/workflow"
)

// AdvertHandler bundles the dependencies of the moderation API.
type AdvertHandler struct {
	Adverts *repository.AdvertRepo
	Locks   *repository.AdvertLockRepo
	Photos  *repository.PhotoRepo
	Users   *repository.UserRepo
	Builder *archive.Builder
	Parser  *ingest.Parser
}

func NewAdvertHandler(adverts *repository.AdvertRepo, locks *repository.AdvertLockRepo,
	photos *repository.PhotoRepo, users *repository.UserRepo,
	builder *archive.Builder, parser *ingest.Parser) *AdvertHandler {
	if adverts == nil || locks == nil || photos == nil || users == nil || builder == nil || parser == nil {
		panic("nil dependency passed to NewAdvertHandler")
	}
	return &AdvertHandler{
		Adverts: adverts,
		Locks:   locks,
		Photos:  photos,
		Users:   users,
		Builder: builder,
		Parser:  parser,
	}
}

// getUserID extracts the user_id from echo.Context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// loadCategory resolves the :alias route param, answering 404 itself
// when the category does not exist.
func (h *AdvertHandler) loadCategory(c echo.Context) (model.Category, bool) {
	cat, err := h.Adverts.CategoryByAlias(c.Request().Context(), c.Param("alias"))
	if err != nil {
		if err == repository.ErrNotFound {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return model.Category{}, false
	}
	return cat, true
}

// loadAdvert resolves the :id route param, answering 404 itself.
func (h *AdvertHandler) loadAdvert(c echo.Context) (model.Advert, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		return model.Advert{}, false
	}
	a, err := h.Adverts.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "advert not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return model.Advert{}, false
	}
	return a, true
}

// checkEditable applies the editability predicate.  On violation it
// writes the user-facing message (HTTP 200, per the AJAX contract)
// and reports false.
func (h *AdvertHandler) checkEditable(c echo.Context, a model.Advert, userID uint64) (*model.AdvertLock, bool) {
	lock, err := h.Locks.GetByAdvert(c.Request().Context(), a.ID)
	if err != nil {
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		return nil, false
	}
	if ok, msg := workflow.CanEdit(a, lock, userID); !ok {
		_ = c.JSON(http.StatusOK, echo.Map{"error": msg})
		return nil, false
	}
	return lock, true
}

// advertCard is the listing form of an advert.
type advertCard struct {
	ID          uint64           `json:"id"`
	Title       string           `json:"title"`
	Address     string           `json:"address"`
	Price       *int             `json:"price"`
	Status      int              `json:"status"`
	StatusTitle string           `json:"status_title"`
	Stats       []model.StatItem `json:"stats"`
	CreatedAt   time.Time        `json:"created_at"`
}

func toCard(a model.Advert, now time.Time) advertCard {
	return advertCard{
		ID:          a.ID,
		Title:       a.Title,
		Address:     a.Address(),
		Price:       a.Price,
		Status:      a.Status,
		StatusTitle: workflow.StatusTitle(a.Status),
		Stats:       a.ShortStats(now),
		CreatedAt:   a.CreatedAt,
	}
}

// advertDetail is the full form with texts, photos and editability.
type advertDetail struct {
	advertCard
	TitleOriginal       string           `json:"title_original"`
	Description         string           `json:"description"`
	DescriptionOriginal string           `json:"description_original"`
	DonorURL            string           `json:"donor_url"`
	Stats               []model.StatItem `json:"stats"`
	Photos              []photoPart      `json:"photos"`
	CanEdit             bool             `json:"can_edit"`
	EditMessage         string           `json:"edit_message,omitempty"`
}

type photoPart struct {
	ID      uint64 `json:"id"`
	Path    string `json:"path"`
	Enabled bool   `json:"enabled"`
	IsMain  bool   `json:"is_main"`
}

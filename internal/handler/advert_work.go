package handler

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mvolkova/travelads/internal/archive"
	"github.com/mvolkova/travelads/internal/queue"
	"github.com/mvolkova/travelads/internal/repository"
	queue_publisher "github.com/mvolkova/travelads/internal/service"
	"github.com/mvolkova/travelads/internal/workflow"
)

type changeStatusReq struct {
	Status int `json:"status"`
}

// ChangeStatus moves one advert to the requested status, applying the
// lock side effects in the same transaction: entering in-work claims
// the advert, leaving in-work frees it.  State conflicts come back as
// user-facing messages, not transport errors.
func (h *AdvertHandler) ChangeStatus(c echo.Context) error {
	var req changeStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	return h.applyStatus(c, req.Status)
}

// AddToWork is the one-click claim: it takes the editing lock and
// nothing more.  The advert keeps its current status until an explicit
// status change; claiming an advert the caller already holds is a
// no-op.
func (h *AdvertHandler) AddToWork(c echo.Context) error {
	a, ok := h.loadAdvert(c)
	if !ok {
		return nil
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	lock, ok := h.checkEditable(c, a, userID)
	if !ok {
		return nil
	}
	if lock == nil {
		if err := h.Locks.Acquire(c.Request().Context(), a.ID, userID); err != nil {
			if err == repository.ErrLockHeld {
				return c.JSON(http.StatusOK, echo.Map{"error": "Объявление уже находится в работе."})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":           a.ID,
		"status":       a.Status,
		"status_title": workflow.StatusTitle(a.Status),
		"in_work":      true,
	})
}

func (h *AdvertHandler) applyStatus(c echo.Context, to int) error {
	a, ok := h.loadAdvert(c)
	if !ok {
		return nil
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	lock, ok := h.checkEditable(c, a, userID)
	if !ok {
		return nil
	}
	plan, err := workflow.Plan(a.Status, to)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	tx, err := h.Adverts.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if plan.NeedsAcquire(lock, userID) {
		if err := h.Locks.AcquireTx(ctx, tx, a.ID, userID); err != nil {
			if err == repository.ErrLockHeld {
				return c.JSON(http.StatusOK, echo.Map{"error": "Объявление уже находится в работе."})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	if plan.ReleaseLock {
		if err := h.Locks.ReleaseTx(ctx, tx, a.ID, userID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	if err := h.Adverts.UpdateStatusTx(ctx, tx, a.ID, to); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{
		"id":           a.ID,
		"status":       to,
		"status_title": workflow.StatusTitle(to),
	})
}

// CompleteWork finishes the caller's whole working set in a category:
// every locked advert becomes used and its lock is dropped atomically.
// A work.completed event is published best-effort afterwards.
func (h *AdvertHandler) CompleteWork(c echo.Context) error {
	cat, ok := h.loadCategory(c)
	if !ok {
		return nil
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()

	ids, err := h.Locks.CompleteWork(ctx, cat.ID, userID, workflow.StatusUsed)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if len(ids) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"error": "Нет объявлений в работе."})
	}

	email := ""
	if u, err := h.Users.GetByID(ctx, userID); err == nil {
		email = u.Email
	}
	// Best-effort: a broker outage must not undo the completion.
	_ = queue_publisher.PublishWorkCompleted(ctx, queue.WorkCompletedEvent{
		UserID:        userID,
		UserEmail:     email,
		CategoryID:    cat.ID,
		CategoryTitle: cat.Title,
		AdvertIDs:     ids,
		CompletedAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"completed": ids})
}

// DownloadPackage builds and serves the zip of the caller's working
// set in a category: generated texts, enabled photos and the CSV
// manifest.  An empty working set and builder failures degrade to
// plain messages.
func (h *AdvertHandler) DownloadPackage(c echo.Context) error {
	cat, ok := h.loadCategory(c)
	if !ok {
		return nil
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()

	ids, err := h.Locks.LockedAdvertIDs(ctx, cat.ID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if len(ids) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"error": "Нет объявлений в работе."})
	}

	photos, err := h.Photos.EnabledByAdverts(ctx, ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]archive.Item, 0, len(ids))
	for _, id := range ids {
		a, err := h.Adverts.GetByID(ctx, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		items = append(items, archive.Item{Advert: a, Photos: photos[id]})
	}

	path, err := h.Builder.Build(cat.Alias, userID, items)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"error": "Не удалось собрать архив."})
	}
	return c.Attachment(path, filepath.Base(path))
}

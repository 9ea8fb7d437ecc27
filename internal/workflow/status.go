// Package workflow implements the advert status lifecycle and the
// editability rules enforced before any moderator mutation.  The
// package is pure: lock acquisition and release themselves happen in
// the repository layer, workflow only decides what a transition means.
package workflow

import (
	"fmt"

	"github.com/mvolkova/travelads/internal/model"
)

// Advert workflow statuses.  The numeric codes are part of the AJAX
// wire format: clients send them as the ?status= query value.
const (
	StatusNew      = 0
	StatusInWork   = 1
	StatusUsed     = 2
	StatusRejected = 3
)

// statusTitles maps codes to the labels shown in listings.
var statusTitles = map[int]string{
	StatusNew:      "Новые",
	StatusInWork:   "В работе",
	StatusUsed:     "Использованные",
	StatusRejected: "Отклонённые",
}

// Statuses returns all status codes in display order.
func Statuses() []int {
	return []int{StatusNew, StatusInWork, StatusUsed, StatusRejected}
}

// StatusTitle returns the display label for a status code.
func StatusTitle(status int) string {
	return statusTitles[status]
}

// ValidStatus reports whether the code names a known status.  Used to
// reject malformed ?status= values with a message instead of a crash.
func ValidStatus(status int) bool {
	_, ok := statusTitles[status]
	return ok
}

// Transition describes what a status change requires from the lock
// table.  AcquireLock and ReleaseLock are mutually exclusive; both
// false means the lock state is untouched.
type Transition struct {
	From        int
	To          int
	AcquireLock bool // entering in-work claims the advert for the caller
	ReleaseLock bool // leaving in-work always frees the claim
}

// Plan validates a requested status change and describes the lock
// side effects.  Used/rejected are re-enterable: any explicit change
// between known statuses is permitted, there is no terminal state.
func Plan(from, to int) (Transition, error) {
	if !ValidStatus(to) {
		return Transition{}, fmt.Errorf("некорректное значение статуса %q", fmt.Sprint(to))
	}
	t := Transition{From: from, To: to}
	if to == StatusInWork {
		t.AcquireLock = true
	} else if from == StatusInWork {
		t.ReleaseLock = true
	}
	return t, nil
}

// NeedsAcquire reports whether the transition still has to take the
// lock given the lock observed on the advert.  The holder re-entering
// in-work is idempotent and inserts nothing.
func (t Transition) NeedsAcquire(lock *model.AdvertLock, userID uint64) bool {
	if !t.AcquireLock {
		return false
	}
	return lock == nil || lock.UserID != userID
}

// CanEdit is the editability predicate applied before every mutation:
// an advert is editable when it is visible and either unlocked or
// locked by the caller.  The returned message is user-facing and the
// request itself still succeeds at the transport level.
func CanEdit(advert model.Advert, lock *model.AdvertLock, userID uint64) (bool, string) {
	if !advert.Visible {
		return false, "Объявление не активно."
	}
	if lock != nil && lock.UserID != userID {
		return false, fmt.Sprintf("Объявление находится в работе у пользователя %d", lock.UserID)
	}
	return true, ""
}

package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvolkova/travelads/internal/model"
)

func TestPlan(t *testing.T) {
	t.Run("new to in-work acquires the lock", func(t *testing.T) {
		tr, err := Plan(StatusNew, StatusInWork)
		require.NoError(t, err)
		assert.True(t, tr.AcquireLock)
		assert.False(t, tr.ReleaseLock)
	})

	t.Run("in-work to used releases the lock", func(t *testing.T) {
		tr, err := Plan(StatusInWork, StatusUsed)
		require.NoError(t, err)
		assert.False(t, tr.AcquireLock)
		assert.True(t, tr.ReleaseLock)
	})

	t.Run("in-work back to new releases the lock", func(t *testing.T) {
		tr, err := Plan(StatusInWork, StatusNew)
		require.NoError(t, err)
		assert.True(t, tr.ReleaseLock)
	})

	t.Run("used is re-enterable", func(t *testing.T) {
		tr, err := Plan(StatusUsed, StatusNew)
		require.NoError(t, err)
		assert.False(t, tr.AcquireLock)
		assert.False(t, tr.ReleaseLock)
	})

	t.Run("unknown target status is rejected", func(t *testing.T) {
		_, err := Plan(StatusNew, 42)
		assert.Error(t, err)
	})
}

func TestCanEdit(t *testing.T) {
	advert := model.Advert{ID: 7, Visible: true}

	t.Run("visible and unlocked", func(t *testing.T) {
		ok, msg := CanEdit(advert, nil, 1)
		assert.True(t, ok)
		assert.Empty(t, msg)
	})

	t.Run("locked by the caller", func(t *testing.T) {
		lock := &model.AdvertLock{AdvertID: 7, UserID: 1}
		ok, _ := CanEdit(advert, lock, 1)
		assert.True(t, ok)
	})

	t.Run("locked by another user", func(t *testing.T) {
		lock := &model.AdvertLock{AdvertID: 7, UserID: 2}
		ok, msg := CanEdit(advert, lock, 1)
		assert.False(t, ok)
		assert.Contains(t, msg, "в работе")
	})

	t.Run("hidden advert is never editable", func(t *testing.T) {
		hidden := advert
		hidden.Visible = false
		ok, msg := CanEdit(hidden, nil, 1)
		assert.False(t, ok)
		assert.NotEmpty(t, msg)
	})
}

func TestNeedsAcquire(t *testing.T) {
	tr, err := Plan(StatusNew, StatusInWork)
	require.NoError(t, err)

	t.Run("unlocked advert needs the insert", func(t *testing.T) {
		assert.True(t, tr.NeedsAcquire(nil, 1))
	})

	t.Run("holder re-entering in-work inserts nothing", func(t *testing.T) {
		lock := &model.AdvertLock{AdvertID: 7, UserID: 1}
		assert.False(t, tr.NeedsAcquire(lock, 1))
	})

	t.Run("foreign lock still races the insert", func(t *testing.T) {
		lock := &model.AdvertLock{AdvertID: 7, UserID: 2}
		assert.True(t, tr.NeedsAcquire(lock, 1))
	})

	t.Run("non-acquiring transitions never insert", func(t *testing.T) {
		rel, err := Plan(StatusInWork, StatusUsed)
		require.NoError(t, err)
		assert.False(t, rel.NeedsAcquire(nil, 1))
	})
}

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses() {
		assert.True(t, ValidStatus(s))
		assert.NotEmpty(t, StatusTitle(s))
	}
	assert.False(t, ValidStatus(-1))
	assert.False(t, ValidStatus(4))
}

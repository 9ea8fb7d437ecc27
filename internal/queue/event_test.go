package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkCompletedEventJSON(t *testing.T) {
	ev := WorkCompletedEvent{
		UserID:        7,
		UserEmail:     "moderator@example.com",
		CategoryID:    2,
		CategoryTitle: "Квартиры",
		AdvertIDs:     []uint64{10, 11, 12},
		CompletedAt:   "2026-08-31T10:00:00Z",
	}

	body, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, float64(7), decoded["user_id"])
	assert.Equal(t, "moderator@example.com", decoded["user_email"])
	assert.Equal(t, "Квартиры", decoded["category_title"])
	assert.Len(t, decoded["advert_ids"], 3)
	assert.Equal(t, "2026-08-31T10:00:00Z", decoded["completed_at"])
}

func TestHandleMessageRejectsBadJSON(t *testing.T) {
	err := handleMessage([]byte("{not json"))
	require.Error(t, err)
}

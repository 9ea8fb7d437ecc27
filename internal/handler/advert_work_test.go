package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvolkova/travelads/internal/archive"
	"github.com/mvolkova/travelads/internal/ingest"
	"github.com/mvolkova/travelads/internal/repository"
)

func newMockAdvertHandler(t *testing.T) (*AdvertHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := NewAdvertHandler(
		repository.NewAdvertRepo(db),
		repository.NewAdvertLockRepo(db),
		repository.NewPhotoRepo(db),
		repository.NewUserRepo(db),
		archive.NewBuilder(t.TempDir(), t.TempDir()),
		ingest.NewParser(ingest.Selectors{}),
	)
	return h, mock
}

var advertRowColumns = []string{
	"id", "category_id", "status",
	"city", "district", "metro",
	"title", "title_original", "description", "description_original",
	"price", "visible", "donor", "donor_url", "created_at", "updated_at",
	"street", "house_number", "house_material", "rooms_number",
	"floor", "floors_total", "area_living", "area_total", "area_kitchen",
	"ceiling_height", "beds_number", "condition", "apartment_type",
	"has_furniture", "has_kitchen", "has_refrigerator", "has_washing_machine",
	"has_conditioner", "has_tv", "has_internet",
	"area_house", "area_land", "wall_material", "number_floors",
}

// expectAdvertFetch mocks the kind lookup plus the full advert row the
// detail queries scan.
func expectAdvertFetch(mock sqlmock.Sqlmock, id uint64, status int) {
	mock.ExpectQuery("SELECT c.kind FROM adverts").
		WillReturnRows(sqlmock.NewRows([]string{"kind"}).AddRow("apartment"))

	now := time.Now()
	row := sqlmock.NewRows(advertRowColumns).AddRow(
		id, 1, status,
		"Москва", "", "",
		"Квартира", "Квартира", "Описание", "Описание",
		nil, 1, 0, "http://dummy.local/x", now, now,
		"", "", nil, nil,
		nil, nil, nil, nil, nil,
		nil, nil, nil, nil,
		0, 0, 0, 0,
		0, 0, 0,
		nil, nil, nil, nil,
	)
	mock.ExpectQuery("SELECT a.id, a.category_id, a.status").WillReturnRows(row)
}

func newWorkContext(t *testing.T, e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, "/", nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("10")
	c.Set("user_id", uint64(7))
	return c, rec
}

func TestAddToWorkLeavesStatusUntouched(t *testing.T) {
	h, mock := newMockAdvertHandler(t)
	e := echo.New()

	expectAdvertFetch(mock, 10, 0)
	mock.ExpectQuery("SELECT id, advert_id, user_id, created_at FROM advert_locks").
		WillReturnError(sql.ErrNoRows)
	// Only the lock insert: the advert row itself must stay as it is.
	mock.ExpectExec("INSERT INTO advert_locks").
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := newWorkContext(t, e, "")
	require.NoError(t, h.AddToWork(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":0`)
	assert.NotContains(t, rec.Body.String(), `"error"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToWorkIdempotentForHolder(t *testing.T) {
	h, mock := newMockAdvertHandler(t)
	e := echo.New()

	expectAdvertFetch(mock, 10, 0)
	mock.ExpectQuery("SELECT id, advert_id, user_id, created_at FROM advert_locks").
		WillReturnRows(sqlmock.NewRows([]string{"id", "advert_id", "user_id", "created_at"}).
			AddRow(3, 10, 7, time.Now()))

	c, rec := newWorkContext(t, e, "")
	require.NoError(t, h.AddToWork(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"error"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToWorkConflictsWithForeignLock(t *testing.T) {
	h, mock := newMockAdvertHandler(t)
	e := echo.New()

	expectAdvertFetch(mock, 10, 0)
	mock.ExpectQuery("SELECT id, advert_id, user_id, created_at FROM advert_locks").
		WillReturnRows(sqlmock.NewRows([]string{"id", "advert_id", "user_id", "created_at"}).
			AddRow(3, 10, 8, time.Now()))

	c, rec := newWorkContext(t, e, "")
	require.NoError(t, h.AddToWork(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "в работе")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChangeStatusInWorkByHolderSkipsInsert(t *testing.T) {
	h, mock := newMockAdvertHandler(t)
	e := echo.New()

	expectAdvertFetch(mock, 10, 0)
	mock.ExpectQuery("SELECT id, advert_id, user_id, created_at FROM advert_locks").
		WillReturnRows(sqlmock.NewRows([]string{"id", "advert_id", "user_id", "created_at"}).
			AddRow(3, 10, 7, time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE adverts SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, rec := newWorkContext(t, e, `{"status":1}`)
	require.NoError(t, h.ChangeStatus(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":1`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

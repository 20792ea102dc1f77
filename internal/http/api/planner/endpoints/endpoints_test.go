package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/planner/internal/calendar"
	"github.com/Nixie-Tech-LLC/planner/internal/db"
	"github.com/Nixie-Tech-LLC/planner/internal/http/api"
	"github.com/Nixie-Tech-LLC/planner/internal/http/api/planner/packets"
	"github.com/Nixie-Tech-LLC/planner/internal/publish"
	"github.com/Nixie-Tech-LLC/planner/internal/service"
)

type memoryStorage struct {
	files map[string][]byte
}

func (m *memoryStorage) SaveFile(_ context.Context, name string, body []byte) (string, error) {
	m.files[name] = body
	return "https://cdn.example.com/feeds/" + name, nil
}

func newRouter(t *testing.T) (*gin.Engine, *memoryStorage) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := time.Date(2024, time.January, 3, 12, 0, 0, 0, time.UTC)
	svc := service.NewCalendarService(db.NewMemoryStore(),
		service.WithClock(func() time.Time { return now }))
	files := &memoryStorage{files: map[string][]byte{}}
	publisher := publish.NewPublisher(svc, files, "calendar.ics")

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api"},
		EventModule(svc),
		RecurringEventModule(svc),
		CalendarModule(svc, publisher),
		GroupModule(svc),
		AIModule(),
	)
	return r, files
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

var standupBody = map[string]any{
	"title": "Standup",
	"color": "bg-blue-500",
	"rruleStart": map[string]any{
		"freq":      "weekly",
		"dtstart":   "2024-01-01T09:00:00Z",
		"byweekday": []map[string]any{{"weekday": "MO"}, {"weekday": "FR"}},
	},
	"rruleEnd": map[string]any{
		"freq":      "weekly",
		"dtstart":   "2024-01-01T09:30:00Z",
		"byweekday": []map[string]any{{"weekday": "MO"}, {"weekday": "FR"}},
	},
}

func TestEventsEndpoints(t *testing.T) {
	r, _ := newRouter(t)

	w := do(t, r, http.MethodPost, "/api/events", map[string]any{
		"title": "Dentist",
		"start": "2024-01-03T14:00:00Z",
		"end":   "2024-01-03T15:00:00Z",
		"color": "bg-red-500",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[packets.EventResponse](t, w)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Dentist", created.Title)

	w = do(t, r, http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]packets.EventResponse](t, w), 1)

	w = do(t, r, http.MethodDelete, "/api/events/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Event deleted successfully", decode[api.Message](t, w).Message)

	w = do(t, r, http.MethodDelete, "/api/events/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Event not found"}`, w.Body.String())
}

func TestCreateEventValidation(t *testing.T) {
	r, _ := newRouter(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"start": "2024-01-03T14:00:00Z", "end": "2024-01-03T15:00:00Z"}},
		{"end before start", map[string]any{"title": "x", "start": "2024-01-03T15:00:00Z", "end": "2024-01-03T14:00:00Z"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/events", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestRecurringEventsEndpoints(t *testing.T) {
	r, _ := newRouter(t)

	w := do(t, r, http.MethodPost, "/api/recurring-events", standupBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[packets.RecurringEventResponse](t, w)
	assert.Equal(t, "weekly", created.RRuleStart.Freq)

	w = do(t, r, http.MethodGet, "/api/calendar?from=2024-01-01&to=2024-01-14", nil)
	require.Equal(t, http.StatusOK, w.Code)
	window := decode[[]calendar.Occurrence](t, w)
	require.Len(t, window, 4)
	for _, o := range window {
		assert.Equal(t, 30*time.Minute, o.End.Sub(o.Start))
		assert.True(t, o.Recurring)
		assert.Equal(t, created.ID, o.SeriesID)
	}

	w = do(t, r, http.MethodPatch, "/api/recurring-events/"+created.ID+"/exclude",
		map[string]any{"date": "2024-01-05T09:00:00Z"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[packets.RecurringEventResponse](t, w)
	require.Len(t, updated.RRuleStart.ExDate, 1)
	require.Len(t, updated.RRuleEnd.ExDate, 1)
	assert.True(t, updated.RRuleEnd.ExDate[0].Equal(time.Date(2024, time.January, 5, 9, 30, 0, 0, time.UTC)))

	w = do(t, r, http.MethodGet, "/api/calendar?from=2024-01-01&to=2024-01-14", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]calendar.Occurrence](t, w), 3)

	w = do(t, r, http.MethodDelete, "/api/recurring-events/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/recurring-events", nil)
	assert.Empty(t, decode[[]packets.RecurringEventResponse](t, w))
}

func TestCreateRecurringEventFromRRuleOptions(t *testing.T) {
	r, _ := newRouter(t)

	body := `{"title":"Standup",` +
		`"rruleStart":{"freq":2,"dtstart":"2024-01-01T09:00:00.000Z","until":null,"count":null,"byweekday":[{"weekday":0},{"weekday":4}]},` +
		`"rruleEnd":{"freq":2,"dtstart":"2024-01-01T09:30:00.000Z","until":null,"count":null,"byweekday":[{"weekday":0},{"weekday":4}]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/recurring-events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode[packets.RecurringEventResponse](t, w)
	assert.Equal(t, "weekly", created.RRuleStart.Freq)
	require.Len(t, created.RRuleStart.ByWeekday, 2)
	assert.Equal(t, "MO", created.RRuleStart.ByWeekday[0].Weekday)
	assert.Equal(t, "FR", created.RRuleStart.ByWeekday[1].Weekday)

	w = do(t, r, http.MethodGet, "/api/calendar?from=2024-01-01&to=2024-01-14", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]calendar.Occurrence](t, w), 4)
}

func TestExcludeInstanceErrors(t *testing.T) {
	r, _ := newRouter(t)

	w := do(t, r, http.MethodPost, "/api/recurring-events", standupBody)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[packets.RecurringEventResponse](t, w).ID

	tests := []struct {
		name string
		path string
		body any
		code int
	}{
		{"missing date", "/api/recurring-events/" + id + "/exclude", map[string]any{}, http.StatusBadRequest},
		{"not an occurrence", "/api/recurring-events/" + id + "/exclude", map[string]any{"date": "2024-01-02T09:00:00Z"}, http.StatusBadRequest},
		{"unknown series", "/api/recurring-events/nope/exclude", map[string]any{"date": "2024-01-05T09:00:00Z"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPatch, tt.path, tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestCreateRecurringEventRejectsInvalidRule(t *testing.T) {
	r, _ := newRouter(t)

	body := map[string]any{
		"title": "Broken",
		"rruleStart": map[string]any{
			"freq":    "monthly",
			"dtstart": "2024-01-01T09:00:00Z",
		},
		"rruleEnd": map[string]any{
			"freq":    "monthly",
			"dtstart": "2024-01-01T10:00:00Z",
		},
	}
	w := do(t, r, http.MethodPost, "/api/recurring-events", body)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	delete(body, "rruleEnd")
	w = do(t, r, http.MethodPost, "/api/recurring-events", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendarDefaultsAndBadDates(t *testing.T) {
	r, _ := newRouter(t)

	w := do(t, r, http.MethodPost, "/api/recurring-events", standupBody)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodGet, "/api/calendar", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]calendar.Occurrence](t, w), 2, "current week holds Monday and Friday")

	w = do(t, r, http.MethodGet, "/api/calendar?from=2024-14-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/calendar?from=2024-01-14&to=2024-01-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestICSExportAndPublish(t *testing.T) {
	r, files := newRouter(t)

	w := do(t, r, http.MethodPost, "/api/recurring-events", standupBody)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodGet, "/api/calendar.ics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, icsContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, w.Body.String(), "SUMMARY:Standup")

	w = do(t, r, http.MethodPost, "/api/calendar/publish", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://cdn.example.com/feeds/calendar.ics", decode[packets.PublishResponse](t, w).URL)
	assert.Contains(t, string(files.files["calendar.ics"]), "SUMMARY:Standup")
}

func TestGroupsEndpoints(t *testing.T) {
	r, _ := newRouter(t)

	w := do(t, r, http.MethodPost, "/api/groups", map[string]any{"name": "Work", "color": "bg-red-500"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	grp := decode[packets.GroupResponse](t, w)

	w = do(t, r, http.MethodPut, "/api/groups/"+grp.ID, map[string]any{"color": "bg-purple-500"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[packets.GroupResponse](t, w)
	assert.Equal(t, "Work", updated.Name)
	assert.Equal(t, "bg-purple-500", updated.Color)

	w = do(t, r, http.MethodPut, "/api/groups/missing", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/api/groups", map[string]any{"name": "NoColor"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/groups", nil)
	assert.Len(t, decode[[]packets.GroupResponse](t, w), 1)

	w = do(t, r, http.MethodDelete, "/api/groups/"+grp.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChat(t *testing.T) {
	r, _ := newRouter(t)

	w := do(t, r, http.MethodPost, "/api/ai/chat", map[string]any{
		"message": "plan my week",
		"history": []any{},
		"mode":    "planner",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, decode[packets.ChatResponse](t, w).Text, "plan my week")

	w = do(t, r, http.MethodPost, "/api/ai/chat", map[string]any{"message": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Message and history are required."}`, w.Body.String())
}

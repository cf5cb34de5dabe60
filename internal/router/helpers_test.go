package router

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"travel_api/internal/dbtest"
	"travel_api/internal/domain"
	"travel_api/internal/events"
	"travel_api/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSecret   = "test-secret"
	toursPerPage = 5
)

type server struct {
	engine *gin.Engine
	db     *gorm.DB
	redis  *miniredis.Miniredis
	events *events.Recorder
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb := dbtest.Open(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	rec := &events.Recorder{}
	engine := New(Deps{
		DB:             gdb,
		Redis:          rdb,
		Publisher:      rec,
		JWTSecret:      testSecret,
		ToursPerPage:   toursPerPage,
		TravelsPerPage: 15,
		CacheTTL:       time.Minute,
	})
	return &server{engine: engine, db: gdb, redis: mr, events: rec}
}

func (s *server) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *server) tokenFor(t *testing.T, email string, roles ...string) string {
	t.Helper()
	user := dbtest.User(t, s.db, email, roles...)
	token, err := utils.GenerateJWT(user.ID, testSecret)
	require.NoError(t, err)
	return token
}

type listBody struct {
	Data []map[string]any `json:"data"`
	Meta struct {
		CurrentPage int   `json:"current_page"`
		LastPage    int   `json:"last_page"`
		PerPage     int   `json:"per_page"`
		Total       int64 `json:"total"`
	} `json:"meta"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func dataIDs(body listBody) []uint {
	out := make([]uint, len(body.Data))
	for i, item := range body.Data {
		out[i] = uint(item["id"].(float64))
	}
	return out
}

func toursPath(travel domain.Travel) string {
	return "/api/v1/travels/" + travel.Slug + "/tours"
}

func adminToursPath(travelID uint) string {
	return "/api/v1/admin/travels/" + strconv.FormatUint(uint64(travelID), 10) + "/tours"
}

func adminTravelPath(travelID uint) string {
	return "/api/v1/admin/travels/" + strconv.FormatUint(uint64(travelID), 10)
}

// errorsOf returns the field errors of a 422 response
func errorsOf(t *testing.T, w *httptest.ResponseRecorder) map[string][]string {
	t.Helper()
	body := decode[struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}](t, w)
	require.NotEmpty(t, body.Message)
	return body.Errors
}

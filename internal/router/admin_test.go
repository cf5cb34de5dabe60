package router

import (
	"net/http"
	"testing"

	"travel_api/internal/dbtest"
	"travel_api/internal/domain"
	"travel_api/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTour() map[string]any {
	return map[string]any{
		"name":       "Municado Extraction",
		"start_date": dbtest.Today().Format("2006-01-02"),
		"end_date":   dbtest.Today().AddDate(0, 0, 11).Format("2006-01-02"),
		"price":      199.99,
	}
}

func validTravel(name string) map[string]any {
	return map[string]any{
		"name":           name,
		"description":    "South side open view of Capricorn mountain",
		"is_public":      false,
		"number_of_days": 5,
	}
}

func TestUnauthenticatedUserCannotCreateTours(t *testing.T) {
	s := newServer(t)
	travel := dbtest.Travel(t, s.db, "Rome")

	w := s.do(t, http.MethodPost, adminToursPath(travel.ID), nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, decode[map[string]any](t, w), "message")

	w = s.do(t, http.MethodPost, adminToursPath(travel.ID), nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEditorCannotCreateTours(t *testing.T) {
	s := newServer(t)
	travel := dbtest.Travel(t, s.db, "Rome")
	token := s.tokenFor(t, "editor@example.com", domain.RoleEditor)

	w := s.do(t, http.MethodPost, adminToursPath(travel.ID), validTour(), token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, s.db.Model(&domain.Tour{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUserWithoutRolesCannotCreateTours(t *testing.T) {
	s := newServer(t)
	travel := dbtest.Travel(t, s.db, "Rome")
	token := s.tokenFor(t, "nobody@example.com")

	w := s.do(t, http.MethodPost, adminToursPath(travel.ID), validTour(), token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminCreatesTour(t *testing.T) {
	s := newServer(t)
	travel := dbtest.Travel(t, s.db, "Rome")
	token := s.tokenFor(t, "admin@example.com", domain.RoleAdmin)

	w := s.do(t, http.MethodPost, adminToursPath(travel.ID), validTour(), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode[map[string]map[string]any](t, w)
	assert.Equal(t, "Municado Extraction", body["data"]["name"])
	assert.Equal(t, "199.99", body["data"]["price"])

	var tour domain.Tour
	require.NoError(t, s.db.First(&tour).Error)
	assert.Equal(t, int64(19999), tour.Price)
	assert.Equal(t, travel.ID, tour.TravelID)
	assert.Equal(t, []string{events.TourCreated}, s.events.Keys())
}

func TestCreateTourRejectsInvalidPayload(t *testing.T) {
	s := newServer(t)
	travel := dbtest.Travel(t, s.db, "Rome")
	token := s.tokenFor(t, "admin@example.com", domain.RoleAdmin)

	w := s.do(t, http.MethodPost, adminToursPath(travel.ID), map[string]any{
		"name":       "Meribund Waterfall",
		"start_date": "2023-12-11",
		"end_date":   "2020-11-11",
		"price":      1000,
	}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode[map[string]any](t, w)
	assert.Contains(t, body["errors"], "end_date")

	w = s.do(t, http.MethodPost, adminToursPath(travel.ID), nil, token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs := errorsOf(t, w)
	for _, field := range []string{"name", "start_date", "end_date", "price"} {
		assert.Contains(t, errs, field)
	}

	w = s.do(t, http.MethodPost, adminToursPath(travel.ID), map[string]any{"name": "x", "start_date": "2024-01-01", "end_date": "2024-01-02", "price": "cheap"}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, s.events.Keys())
}

func TestCreateTourRejectsPriceBeyondLimit(t *testing.T) {
	s := newServer(t)
	travel := dbtest.Travel(t, s.db, "Rome")
	token := s.tokenFor(t, "admin@example.com", domain.RoleAdmin)

	for _, price := range []any{1e20, 1000000000.01} {
		payload := validTour()
		payload["price"] = price
		w := s.do(t, http.MethodPost, adminToursPath(travel.ID), payload, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		assert.Equal(t, []string{"The price field must not be greater than 1000000000."}, errorsOf(t, w)["price"])
	}

	payload := validTour()
	payload["price"] = 1000000000
	w := s.do(t, http.MethodPost, adminToursPath(travel.ID), payload, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode[map[string]map[string]any](t, w)
	assert.Equal(t, "1000000000.00", body["data"]["price"])

	var count int64
	require.NoError(t, s.db.Model(&domain.Tour{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateTourUnknownTravelIs404(t *testing.T) {
	s := newServer(t)
	token := s.tokenFor(t, "admin@example.com", domain.RoleAdmin)

	w := s.do(t, http.MethodPost, adminToursPath(999), validTour(), token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodPost, "/api/v1/admin/travels/abc/tours", validTour(), token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEditorUpdatesTour(t *testing.T) {
	s := newServer(t)
	travel := dbtest.Travel(t, s.db, "Rome")
	other := dbtest.Travel(t, s.db, "Paris")
	tour := dbtest.Tour(t, s.db, travel, 10000, 0, 1)
	token := s.tokenFor(t, "editor@example.com", domain.RoleEditor)

	payload := validTour()
	payload["price"] = 250
	w := s.do(t, http.MethodPut, adminToursPath(travel.ID)+"/"+uintStr(tour.ID), payload, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var saved domain.Tour
	require.NoError(t, s.db.First(&saved, tour.ID).Error)
	assert.Equal(t, int64(25000), saved.Price)
	assert.Equal(t, "Municado Extraction", saved.Name)

	w = s.do(t, http.MethodPut, adminToursPath(other.ID)+"/"+uintStr(tour.ID), payload, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, []string{events.TourUpdated}, s.events.Keys())
}

func TestUnauthenticatedUserCannotCreateTravels(t *testing.T) {
	s := newServer(t)
	w := s.do(t, http.MethodPost, "/api/v1/admin/travels", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, decode[map[string]any](t, w), "message")
}

func TestEditorCannotCreateTravels(t *testing.T) {
	s := newServer(t)
	token := s.tokenFor(t, "editor@example.com", domain.RoleEditor)
	w := s.do(t, http.MethodPost, "/api/v1/admin/travels", validTravel("Caprizona Municado"), token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminCreatesTravel(t *testing.T) {
	s := newServer(t)
	token := s.tokenFor(t, "admin@example.com", domain.RoleAdmin)

	w := s.do(t, http.MethodPost, "/api/v1/admin/travels", validTravel("Caprizona Municado"), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode[map[string]map[string]any](t, w)["data"]
	assert.Equal(t, "Caprizona Municado", data["name"])
	assert.Equal(t, "caprizona-municado", data["slug"])
	assert.Equal(t, false, data["is_public"])
	assert.Equal(t, float64(4), data["number_of_nights"])
	assert.Equal(t, []string{events.TravelCreated}, s.events.Keys())

	w = s.do(t, http.MethodPost, "/api/v1/admin/travels", validTravel("Caprizona Municado"), token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateTravelRejectsInvalidPayload(t *testing.T) {
	s := newServer(t)
	token := s.tokenFor(t, "admin@example.com", domain.RoleAdmin)

	w := s.do(t, http.MethodPost, "/api/v1/admin/travels", map[string]any{"name": "Meribund Waterfall"}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs := errorsOf(t, w)
	for _, field := range []string{"description", "is_public", "number_of_days"} {
		assert.Contains(t, errs, field)
	}

	payload := validTravel("Zero Days")
	payload["number_of_days"] = 0
	w = s.do(t, http.MethodPost, "/api/v1/admin/travels", payload, token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestEditorUpdatesTravel(t *testing.T) {
	s := newServer(t)
	travel := dbtest.Travel(t, s.db, "Meribund Waterfall")
	token := s.tokenFor(t, "editor@example.com", domain.RoleEditor)

	// warm the listing cache, the update must invalidate it
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/travels", nil, "").Code)

	w := s.do(t, http.MethodPut, adminTravelPath(travel.ID), map[string]any{
		"name":           "Meribund Waterfall Updated",
		"is_public":      1,
		"description":    "Description is updated with test",
		"number_of_days": 5,
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode[map[string]map[string]any](t, w)["data"]
	assert.Equal(t, travel.Slug, data["slug"])

	w = s.do(t, http.MethodGet, "/api/v1/travels", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Meribund Waterfall Updated")
	assert.Equal(t, []string{events.TravelUpdated}, s.events.Keys())
}

func TestUpdateTravelRejectsInvalidPayload(t *testing.T) {
	s := newServer(t)
	travel := dbtest.Travel(t, s.db, "Meribund Waterfall")
	token := s.tokenFor(t, "editor@example.com", domain.RoleEditor)

	w := s.do(t, http.MethodPut, adminTravelPath(travel.ID), map[string]any{"name": "Meribund Waterfall Updated"}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodPut, adminTravelPath(9999), validTravel("Anything"), token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateTravelNameMustStayUnique(t *testing.T) {
	s := newServer(t)
	dbtest.Travel(t, s.db, "Rome")
	paris := dbtest.Travel(t, s.db, "Paris")
	token := s.tokenFor(t, "admin@example.com", domain.RoleAdmin)

	w := s.do(t, http.MethodPut, adminTravelPath(paris.ID), validTravel("Rome"), token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodPut, adminTravelPath(paris.ID), validTravel("Paris"), token)
	assert.Equal(t, http.StatusOK, w.Code)
}

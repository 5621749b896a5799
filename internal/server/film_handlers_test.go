package server

import (
	"fmt"
	"net/http"
	"testing"

	"filmgraph/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filmPayload(name string) fiber.Map {
	return fiber.Map{
		"name":        name,
		"description": "test film",
		"releaseDate": "1999-03-31",
		"duration":    136,
		"mpa":         fiber.Map{"id": 4},
		"genres":      []fiber.Map{{"id": 4}},
	}
}

func userPayload(login string) fiber.Map {
	return fiber.Map{
		"email":    login + "@example.com",
		"login":    login,
		"name":     "",
		"birthday": "1990-06-15",
	}
}

func createFilm(t *testing.T, app *fiber.App, name string) models.Film {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/films", filmPayload(name))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var film models.Film
	decodeBody(t, resp, &film)
	return film
}

func createUser(t *testing.T, app *fiber.App, login string) models.User {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/users", userPayload(login))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var user models.User
	decodeBody(t, resp, &user)
	return user
}

func TestCreateFilmEndpoint(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	film := createFilm(t, app, "The Matrix")
	assert.Equal(t, uint(1), film.ID)
	assert.Equal(t, "The Matrix", film.Name)
	assert.Equal(t, "1999-03-31", film.ReleaseDate.String())
	require.NotNil(t, film.Mpa)
	assert.Equal(t, "R", film.Mpa.Name)
	require.Len(t, film.Genres, 1)
	assert.Equal(t, "Thriller", film.Genres[0].Name)
}

func TestCreateFilmValidation(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	payload := filmPayload("")
	resp := doJSON(t, app, http.MethodPost, "/films", payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body models.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
}

func TestCreateFilmUnknownGenreIs404(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	payload := filmPayload("Bad Genre")
	payload["genres"] = []fiber.Map{{"id": 99}}
	resp := doJSON(t, app, http.MethodPost, "/films", payload)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetFilmNotFound(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/films/42", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body models.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestGetFilmBadID(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/films/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateFilmEndpoint(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	film := createFilm(t, app, "Before")
	payload := filmPayload("After")
	payload["id"] = film.ID

	resp := doJSON(t, app, http.MethodPut, "/films", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Film
	decodeBody(t, resp, &updated)
	assert.Equal(t, film.ID, updated.ID)
	assert.Equal(t, "After", updated.Name)
}

func TestUpdateFilmMissingIs404(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	payload := filmPayload("Ghost")
	payload["id"] = 1234
	resp := doJSON(t, app, http.MethodPut, "/films", payload)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteFilmEndpoint(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	film := createFilm(t, app, "Short-lived")
	resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/films/%d", film.ID), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/films/%d", film.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLikeAndPopularFlow(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	first := createFilm(t, app, "First")
	second := createFilm(t, app, "Second")
	third := createFilm(t, app, "Third")
	u1 := createUser(t, app, "u1")
	u2 := createUser(t, app, "u2")

	like := func(filmID, userID uint) {
		resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/films/%d/like/%d", filmID, userID), nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	}
	like(second.ID, u1.ID)
	like(second.ID, u2.ID)
	like(third.ID, u1.ID)
	// Re-liking is a no-op, not an error.
	like(second.ID, u1.ID)

	resp := doJSON(t, app, http.MethodGet, "/films/popular?count=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var popular []models.Film
	decodeBody(t, resp, &popular)
	require.Len(t, popular, 2)
	assert.Equal(t, second.ID, popular[0].ID)
	assert.Equal(t, third.ID, popular[1].ID)

	// Like count endpoint.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/films/%d/likes", second.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var counts struct {
		Count int `json:"count"`
	}
	decodeBody(t, resp, &counts)
	assert.Equal(t, 2, counts.Count)

	// Removing a like reorders the ranking.
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/films/%d/like/%d", second.ID, u1.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/films/%d/like/%d", second.ID, u2.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/films/popular?count=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &popular)
	require.Len(t, popular, 1)
	assert.Equal(t, third.ID, popular[0].ID)

	// Default count returns every film here (fewer than ten exist).
	resp = doJSON(t, app, http.MethodGet, "/films/popular", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &popular)
	require.Len(t, popular, 3)
	// third keeps its like; the zero-like films follow in ascending id order.
	assert.Equal(t, third.ID, popular[0].ID)
	assert.Equal(t, first.ID, popular[1].ID)
	assert.Equal(t, second.ID, popular[2].ID)
}

func TestPopularFilmsCountQuery(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	first := createFilm(t, app, "Alpha")
	second := createFilm(t, app, "Beta")
	user := createUser(t, app, "rater")

	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/films/%d/like/%d", second.ID, user.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Absent, zero, and negative counts all fall back to the default size.
	for _, path := range []string{"/films/popular", "/films/popular?count=0", "/films/popular?count=-1"} {
		resp := doJSON(t, app, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		var popular []models.Film
		decodeBody(t, resp, &popular)
		require.Len(t, popular, 2, path)
		assert.Equal(t, second.ID, popular[0].ID, path)
		assert.Equal(t, first.ID, popular[1].ID, path)
	}

	// A count that is not a number is a client error.
	resp = doJSON(t, app, http.MethodGet, "/films/popular?count=abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateFilmZeroDurationRejected(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	payload := filmPayload("Instant")
	payload["duration"] = 0
	resp := doJSON(t, app, http.MethodPost, "/films", payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body models.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
}

func TestLikeUnknownFilmOrUser(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	film := createFilm(t, app, "Lonely")
	user := createUser(t, app, "solo")

	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/films/99/like/%d", user.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/films/%d/like/99", film.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

package server

import (
	"strconv"

	"filmgraph/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateFilm handles POST /films
func (s *Server) CreateFilm(c *fiber.Ctx) error {
	ctx := c.Context()

	var film models.Film
	if err := c.BodyParser(&film); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	film.ID = 0

	created, err := s.filmService.CreateFilm(ctx, &film)
	if err != nil {
		return respondErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateFilm handles PUT /films. The film id travels in the body, full-replace
// semantics.
func (s *Server) UpdateFilm(c *fiber.Ctx) error {
	ctx := c.Context()

	var film models.Film
	if err := c.BodyParser(&film); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if film.ID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Film ID is required"))
	}

	updated, err := s.filmService.UpdateFilm(ctx, &film)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(updated)
}

// GetFilms handles GET /films
func (s *Server) GetFilms(c *fiber.Ctx) error {
	films, err := s.filmService.ListFilms(c.Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(films)
}

// GetFilm handles GET /films/:id
func (s *Server) GetFilm(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	film, err := s.filmService.GetFilm(c.Context(), id)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(film)
}

// DeleteFilm handles DELETE /films/:id
func (s *Server) DeleteFilm(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.filmService.DeleteFilm(c.Context(), id); err != nil {
		return respondErr(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AddLike handles PUT /films/:id/like/:userId
func (s *Server) AddLike(c *fiber.Ctx) error {
	filmID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.filmService.AddLike(c.Context(), filmID, userID); err != nil {
		return respondErr(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveLike handles DELETE /films/:id/like/:userId
func (s *Server) RemoveLike(c *fiber.Ctx) error {
	filmID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.filmService.RemoveLike(c.Context(), filmID, userID); err != nil {
		return respondErr(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetLikeCount handles GET /films/:id/likes
func (s *Server) GetLikeCount(c *fiber.Ctx) error {
	filmID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	count, err := s.filmService.LikeCount(c.Context(), filmID)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(fiber.Map{"filmId": filmID, "count": count})
}

// GetPopularFilms handles GET /films/popular?count=N. Any non-positive count,
// explicit or absent, falls back to the default size in the service.
func (s *Server) GetPopularFilms(c *fiber.Ctx) error {
	count := 0
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("count must be an integer"))
		}
		count = parsed
	}

	films, err := s.filmService.PopularFilms(c.Context(), count)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(films)
}

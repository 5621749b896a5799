package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetGenres handles GET /genres
func (s *Server) GetGenres(c *fiber.Ctx) error {
	genres, err := s.referenceService.ListGenres(c.Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(genres)
}

// GetGenre handles GET /genres/:id
func (s *Server) GetGenre(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	genre, err := s.referenceService.GetGenre(c.Context(), id)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(genre)
}

// GetMpaRatings handles GET /mpa
func (s *Server) GetMpaRatings(c *fiber.Ctx) error {
	ratings, err := s.referenceService.ListMpaRatings(c.Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(ratings)
}

// GetMpaRating handles GET /mpa/:id
func (s *Server) GetMpaRating(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	rating, err := s.referenceService.GetMpaRating(c.Context(), id)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(rating)
}

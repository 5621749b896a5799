package server

import (
	"filmgraph/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateUser handles POST /users
func (s *Server) CreateUser(c *fiber.Ctx) error {
	ctx := c.Context()

	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	user.ID = 0

	created, err := s.userService.CreateUser(ctx, &user)
	if err != nil {
		return respondErr(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateUser handles PUT /users. The user id travels in the body, full-replace
// semantics.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	ctx := c.Context()

	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if user.ID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("User ID is required"))
	}

	updated, err := s.userService.UpdateUser(ctx, &user)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(updated)
}

// GetUsers handles GET /users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(users)
}

// GetUser handles GET /users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.Context(), id)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(user)
}

// DeleteUser handles DELETE /users/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(c.Context(), id); err != nil {
		return respondErr(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AddFriend handles PUT /users/:id/friends/:friendId
func (s *Server) AddFriend(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	friendID, err := s.parseID(c, "friendId")
	if err != nil {
		return nil
	}

	if err := s.userService.AddFriend(c.Context(), userID, friendID); err != nil {
		return respondErr(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ConfirmFriend handles PUT /users/:id/friends/:friendId/confirm
func (s *Server) ConfirmFriend(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	friendID, err := s.parseID(c, "friendId")
	if err != nil {
		return nil
	}

	if err := s.userService.ConfirmFriend(c.Context(), userID, friendID); err != nil {
		return respondErr(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveFriend handles DELETE /users/:id/friends/:friendId
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	friendID, err := s.parseID(c, "friendId")
	if err != nil {
		return nil
	}

	if err := s.userService.RemoveFriend(c.Context(), userID, friendID); err != nil {
		return respondErr(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetFriends handles GET /users/:id/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	friends, err := s.userService.GetFriends(c.Context(), userID)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(friends)
}

// GetCommonFriends handles GET /users/:id/friends/common/:otherId
func (s *Server) GetCommonFriends(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	otherID, err := s.parseID(c, "otherId")
	if err != nil {
		return nil
	}

	friends, err := s.userService.GetCommonFriends(c.Context(), userID, otherID)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(friends)
}

package server

import (
	"paperplane/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UserProfile handles GET /profile/:username
// @Summary Public author profile
// @Description Return an author's join date and their posts, newest-first
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} object{joinDate=string,posts=[]models.Post}
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/{username} [get]
func (s *Server) UserProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := s.userRepo.GetByUsernameWithPosts(c.Context(), username, 0)
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"joinDate": user.CreatedAt,
		"posts":    user.Posts,
	})
}

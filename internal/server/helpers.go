package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// parseID extracts and parses the :id route parameter.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

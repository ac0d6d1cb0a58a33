package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paperplane/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	s := newTestServer(mockRepo, nil)

	app := fiber.New()
	app.Get("/profile/:username", s.UserProfile)

	joined := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mockRepo.On("GetByUsernameWithPosts", mock.Anything, "alice", 0).Return(&models.User{
		ID:        7,
		Username:  "alice",
		CreatedAt: joined,
		Posts: []models.Post{
			{ID: 2, Title: "Newer", UserID: 7},
			{ID: 1, Title: "Older", UserID: 7},
		},
	}, nil)
	mockRepo.On("GetByUsernameWithPosts", mock.Anything, "ghost", 0).Return(
		nil, models.NewNotFoundError("User", "ghost"))

	t.Run("Found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile/alice", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		got := decodeBody(t, resp)
		assert.NotEmpty(t, got["joinDate"])
		posts := got["posts"].([]any)
		require.Len(t, posts, 2)
		first := posts[0].(map[string]any)
		assert.Equal(t, "Newer", first["title"])
	})

	t.Run("Unknown Author", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile/ghost", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

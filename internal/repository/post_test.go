package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"paperplane/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_ListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")

	older := &models.Post{Title: "First", Content: "one", UserID: author.ID}
	require.NoError(t, db.Create(older).Error)
	require.NoError(t, db.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)

	newer := &models.Post{Title: "Second", Content: "two", UserID: author.ID}
	require.NoError(t, db.Create(newer).Error)

	posts, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Second", posts[0].Title)
	assert.Equal(t, "First", posts[1].Title)
	assert.Equal(t, "alice", posts[0].User.Username)
}

func TestPostRepository_ListTiesBreakByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "bob")
	stamp := time.Now().Truncate(time.Second)

	for _, title := range []string{"A", "B", "C"} {
		p := &models.Post{Title: title, Content: title, UserID: author.ID}
		require.NoError(t, db.Create(p).Error)
		require.NoError(t, db.Model(p).Update("created_at", stamp).Error)
	}

	posts, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	// Same timestamp: highest id (latest insert) comes first.
	assert.Equal(t, "C", posts[0].Title)
	assert.Equal(t, "B", posts[1].Title)
	assert.Equal(t, "A", posts[2].Title)
}

func TestPostRepository_ListByAuthorFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, repo.Create(ctx, &models.Post{Title: "Alice post", Content: "x", UserID: alice.ID}))
	require.NoError(t, repo.Create(ctx, &models.Post{Title: "Bob post", Content: "y", UserID: bob.ID}))

	posts, err := repo.ListByAuthor(ctx, alice.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Alice post", posts[0].Title)
}

func TestPostRepository_GetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 9999)
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostRepository_UpdatePersistsChangedFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "carol")
	post := &models.Post{Title: "Draft", Summary: "s", Content: "body", Cover: "c.png", UserID: author.ID}
	require.NoError(t, repo.Create(ctx, post))

	post.Title = "Published"
	post.Content = "final body"
	require.NoError(t, repo.Update(ctx, post))

	var got models.Post
	require.NoError(t, db.First(&got, post.ID).Error)
	assert.Equal(t, "Published", got.Title)
	assert.Equal(t, "final body", got.Content)
	// Untouched fields survive the update.
	assert.Equal(t, "s", got.Summary)
	assert.Equal(t, "c.png", got.Cover)
}

func TestPostRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "dave")
	post := &models.Post{Title: "Gone soon", Content: "x", UserID: author.ID}
	require.NoError(t, repo.Create(ctx, post))

	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err := repo.GetByID(ctx, post.ID)
	require.Error(t, err)

	posts, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestUserRepository_GetByUsernameWithPosts(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "erin")
	other := createTestUser(t, db, "frank")

	require.NoError(t, posts.Create(ctx, &models.Post{Title: "Mine", Content: "x", UserID: author.ID}))
	require.NoError(t, posts.Create(ctx, &models.Post{Title: "Theirs", Content: "y", UserID: other.ID}))

	got, err := users.GetByUsernameWithPosts(ctx, "erin", 0)
	require.NoError(t, err)
	require.Len(t, got.Posts, 1)
	assert.Equal(t, "Mine", got.Posts[0].Title)
	// Each post carries its author, not a zero-valued placeholder.
	assert.Equal(t, "erin", got.Posts[0].User.Username)

	_, err = users.GetByUsernameWithPosts(ctx, "ghost", 0)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostRepository_ListReturnsEverythingByDefault(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "prolific")
	const total = 60
	for i := 0; i < total; i++ {
		p := &models.Post{Title: fmt.Sprintf("Post %d", i), Content: "x", UserID: author.ID}
		require.NoError(t, db.Create(p).Error)
	}

	posts, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, posts, total)

	// Pagination stays opt-in.
	page, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, page, 10)
}

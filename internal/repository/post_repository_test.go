package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"quill/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}))
	return db
}

func createAuthor(t *testing.T, db *gorm.DB, name, email string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: email, PasswordHash: "hashed-secret"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestPostRepository_ListVisible(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	author := createAuthor(t, db, "Ada Wells", "ada@example.com")
	ref := time.Now()

	// 25 published posts, one hour apart, newest published exactly at ref.
	for i := 0; i < 25; i++ {
		publishedAt := ref.Add(-time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(context.Background(), &model.Post{
			UserID:      author.ID,
			Title:       fmt.Sprintf("Post %d", i),
			Slug:        fmt.Sprintf("post-%d", i),
			Body:        "body",
			PublishedAt: &publishedAt,
		}))
	}

	// Never visible: a draft, a post without a timestamp, a scheduled post.
	past := ref.Add(-time.Hour)
	future := ref.Add(time.Hour)
	hidden := []*model.Post{
		{UserID: author.ID, Title: "Draft", Slug: "draft", Body: "body", IsDraft: true, PublishedAt: &past},
		{UserID: author.ID, Title: "Untimed", Slug: "untimed", Body: "body"},
		{UserID: author.ID, Title: "Scheduled", Slug: "scheduled", Body: "body", PublishedAt: &future},
	}
	for _, post := range hidden {
		require.NoError(t, repo.Create(context.Background(), post))
	}

	t.Run("first page filters, orders and projects authors", func(t *testing.T) {
		posts, total, err := repo.ListVisible(context.Background(), ref, 1, 20)

		require.NoError(t, err)
		assert.Equal(t, int64(25), total)
		assert.Len(t, posts, 20)

		// Newest first, including the boundary post published exactly at ref.
		assert.Equal(t, "Post 0", posts[0].Title)
		for i := 1; i < len(posts); i++ {
			assert.False(t, posts[i].PublishedAt.After(*posts[i-1].PublishedAt))
		}

		for _, post := range posts {
			require.NotNil(t, post.Author)
			assert.Equal(t, author.ID, post.Author.ID)
			assert.Equal(t, "Ada Wells", post.Author.Name)
			assert.Equal(t, "ada@example.com", post.Author.Email)
			assert.Empty(t, post.Author.PasswordHash)
		}
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		posts, total, err := repo.ListVisible(context.Background(), ref, 2, 20)

		require.NoError(t, err)
		assert.Equal(t, int64(25), total)
		assert.Len(t, posts, 5)
		assert.Equal(t, "Post 20", posts[0].Title)
		assert.Equal(t, "Post 24", posts[4].Title)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		posts, total, err := repo.ListVisible(context.Background(), ref, 3, 20)

		require.NoError(t, err)
		assert.Equal(t, int64(25), total)
		assert.Empty(t, posts)
	})
}

func TestPostRepository_FindByIDWithAuthor(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	author := createAuthor(t, db, "Ben Ortiz", "ben@example.com")
	publishedAt := time.Now().Add(-time.Hour)

	post := &model.Post{
		UserID:      author.ID,
		Title:       "Hello",
		Slug:        "hello",
		Body:        "body",
		PublishedAt: &publishedAt,
	}
	require.NoError(t, repo.Create(context.Background(), post))

	found, err := repo.FindByIDWithAuthor(context.Background(), post.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Author)
	assert.Equal(t, "Ben Ortiz", found.Author.Name)
	assert.Empty(t, found.Author.PasswordHash)

	_, err = repo.FindByIDWithAuthor(context.Background(), post.ID+1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostRepository_Save(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	author := createAuthor(t, db, "Cleo Marsh", "cleo@example.com")
	publishedAt := time.Now().Add(-time.Hour).Truncate(time.Second)

	post := &model.Post{
		UserID:      author.ID,
		Title:       "Original Title",
		Slug:        "original-title",
		Body:        "Original Body",
		PublishedAt: &publishedAt,
	}
	require.NoError(t, repo.Create(context.Background(), post))

	post.Title = "Updated Awesome Title"
	post.Slug = "updated-awesome-title"
	post.Body = "Updated awesome body."
	require.NoError(t, repo.Save(context.Background(), post))

	reloaded, err := repo.FindByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated Awesome Title", reloaded.Title)
	assert.Equal(t, "updated-awesome-title", reloaded.Slug)
	assert.False(t, reloaded.IsDraft)
	require.NotNil(t, reloaded.PublishedAt)
	assert.Equal(t, publishedAt.Unix(), reloaded.PublishedAt.Unix())
	assert.Equal(t, author.ID, reloaded.UserID)
}

func TestPostRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	author := createAuthor(t, db, "Ada Wells", "ada@example.com")

	keep := &model.Post{UserID: author.ID, Title: "Keep", Slug: "keep", Body: "body"}
	gone := &model.Post{UserID: author.ID, Title: "Gone", Slug: "gone", Body: "body"}
	require.NoError(t, repo.Create(context.Background(), keep))
	require.NoError(t, repo.Create(context.Background(), gone))

	require.NoError(t, repo.Delete(context.Background(), gone.ID))

	_, err := repo.FindByID(context.Background(), gone.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.Model(&model.Post{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"quill/internal/model"
	"quill/internal/repository"
	"quill/internal/service"
)

// SeedHandler exposes a development endpoint that creates a demo author with
// posts in every lifecycle state. Direct seeding is the only way drafts and
// scheduled posts come into existence; the public API always publishes
// immediately.
type SeedHandler struct {
	users repository.UserRepository
	posts repository.PostRepository
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(users repository.UserRepository, posts repository.PostRepository) *SeedHandler {
	return &SeedHandler{users: users, posts: posts}
}

// SeedDemoResponse represents the seed response.
type SeedDemoResponse struct {
	Message string `json:"message"`
	Author  uint   `json:"author_id"`
	Posts   int    `json:"posts"`
}

// SeedDemo godoc
// @Summary Seed a demo author with published, draft and scheduled posts
// @Tags seed
// @Produce json
// @Success 200 {object} SeedDemoResponse
// @Failure 500 {object} map[string]string
// @Router /seed/demo [get]
func (h *SeedHandler) SeedDemo(c echo.Context) error {
	ctx := c.Request().Context()

	author, err := h.demoAuthor(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{
			"error": "failed to seed demo author",
		})
	}

	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	posts := []model.Post{
		{
			UserID:      author.ID,
			Title:       "Hello from the demo author",
			Body:        "A published post, visible to everyone.",
			PublishedAt: &yesterday,
		},
		{
			UserID:  author.ID,
			Title:   "Unfinished thoughts",
			Body:    "A draft, hidden from the public listing and show.",
			IsDraft: true,
		},
		{
			UserID:      author.ID,
			Title:       "Coming tomorrow",
			Body:        "A scheduled post, not visible until its publish time.",
			PublishedAt: &tomorrow,
		},
	}

	seeded := 0
	for i := range posts {
		posts[i].Slug = service.Slugify(posts[i].Title)
		if err := h.posts.Create(ctx, &posts[i]); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{
				"error": "failed to seed demo posts",
			})
		}
		seeded++
	}

	return c.JSON(http.StatusOK, SeedDemoResponse{
		Message: "demo data seeded",
		Author:  author.ID,
		Posts:   seeded,
	})
}

func (h *SeedHandler) demoAuthor(ctx context.Context) (*model.User, error) {
	const email = "demo@example.com"

	existing, err := h.users.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Name:         "Demo Author",
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := h.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

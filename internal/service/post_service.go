package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "quill/internal/errors"
	"quill/internal/model"
	"quill/internal/repository"
)

// PostsPerPage is the fixed page size for the public listing.
const PostsPerPage = 20

// PostService exposes the blog post operations.
type PostService interface {
	List(ctx context.Context, page int) ([]model.Post, int64, error)
	Create(ctx context.Context, authorID uint, title, body string) (*model.Post, error)
	Get(ctx context.Context, id uint) (*model.Post, error)
	Update(ctx context.Context, viewerID, id uint, title, body string) (*model.Post, error)
	Delete(ctx context.Context, viewerID, id uint) error
	AuthorizeModify(ctx context.Context, viewerID, id uint) error
}

type postService struct {
	repo repository.PostRepository
}

// NewPostService builds a PostService over the given repository.
func NewPostService(repo repository.PostRepository) PostService {
	return &postService{repo: repo}
}

// List returns one page of publicly visible posts, newest first, with
// authors eagerly loaded. The total visible count is returned for
// pagination metadata.
func (s *postService) List(ctx context.Context, page int) ([]model.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	return s.repo.ListVisible(ctx, time.Now(), page, PostsPerPage)
}

// Create validates the input, derives the slug and persists a new post.
// Posts are always published immediately: is_draft is false and
// published_at is the creation instant, regardless of caller intent.
func (s *postService) Create(ctx context.Context, authorID uint, title, body string) (*model.Post, error) {
	if err := validatePostInput(title, body); err != nil {
		return nil, err
	}

	now := time.Now()
	post := &model.Post{
		UserID:      authorID,
		Title:       title,
		Slug:        Slugify(title),
		Body:        body,
		IsDraft:     false,
		PublishedAt: &now,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return s.repo.FindByIDWithAuthor(ctx, post.ID)
}

// Get returns a post by id. Posts that do not exist, drafts and posts not
// yet published are all reported as not found, for authors and strangers
// alike.
func (s *postService) Get(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.repo.FindByIDWithAuthor(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}
	if !post.IsPubliclyVisible(time.Now()) {
		return nil, apperrors.ErrPostNotFound
	}
	return post, nil
}

// Update rewrites a post's title and body, recomputing the slug. Only the
// author may update; draft state, publish time and authorship are left
// untouched. The lookup does not apply the visibility filter.
func (s *postService) Update(ctx context.Context, viewerID, id uint, title, body string) (*model.Post, error) {
	post, err := s.findOwned(ctx, viewerID, id)
	if err != nil {
		return nil, err
	}
	if err := validatePostInput(title, body); err != nil {
		return nil, err
	}

	post.Title = title
	post.Body = body
	post.Slug = Slugify(title)
	if err := s.repo.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	return s.repo.FindByIDWithAuthor(ctx, post.ID)
}

// Delete permanently removes a post. Only the author may delete.
func (s *postService) Delete(ctx context.Context, viewerID, id uint) error {
	post, err := s.findOwned(ctx, viewerID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, post.ID)
}

// AuthorizeModify checks that the post exists and the viewer is its author,
// without modifying anything. Used by the edit form endpoint.
func (s *postService) AuthorizeModify(ctx context.Context, viewerID, id uint) error {
	_, err := s.findOwned(ctx, viewerID, id)
	return err
}

// findOwned looks a post up without the visibility filter and enforces the
// author-only modification rule. The not-found check runs first so a missing
// post never reports forbidden.
func (s *postService) findOwned(ctx context.Context, viewerID, id uint) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}
	if !post.IsAuthoredBy(viewerID) {
		return nil, apperrors.ErrForbidden
	}
	return post, nil
}

// validatePostInput checks the required post fields, collecting one message
// per failed field.
func validatePostInput(title, body string) error {
	verr := &apperrors.ValidationError{}
	if strings.TrimSpace(title) == "" {
		verr.Add("title", "the title field is required")
	}
	if strings.TrimSpace(body) == "" {
		verr.Add("body", "the body field is required")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

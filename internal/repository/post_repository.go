package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"quill/internal/model"
)

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Save(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	FindByIDWithAuthor(ctx context.Context, id uint) (*model.Post, error)
	ListVisible(ctx context.Context, now time.Time, page, perPage int) ([]model.Post, int64, error)
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository builds a GORM-backed repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Save(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindByIDWithAuthor(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Preload("Author", authorProjection).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListVisible returns one page of publicly visible posts ordered by publish
// time descending, along with the total count of visible posts for
// pagination metadata. Authors are eagerly loaded with id, name and email
// only.
func (r *postRepository) ListVisible(ctx context.Context, now time.Time, page, perPage int) ([]model.Post, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("is_draft = ?", false).
		Where("published_at IS NOT NULL").
		Where("published_at <= ?", now).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := base.
		Preload("Author", authorProjection).
		Order("published_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}

// authorProjection limits preloaded authors to the fields exposed publicly.
func authorProjection(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email")
}

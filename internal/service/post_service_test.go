package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "quill/internal/errors"
	"quill/internal/model"
)

// MockPostRepository is a mock implementation of PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Save(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) FindByIDWithAuthor(ctx context.Context, id uint) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) ListVisible(ctx context.Context, now time.Time, page, perPage int) ([]model.Post, int64, error) {
	args := m.Called(ctx, now, page, perPage)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func pastTime() *time.Time {
	t := time.Now().Add(-24 * time.Hour)
	return &t
}

func futureTime() *time.Time {
	t := time.Now().Add(24 * time.Hour)
	return &t
}

func TestPostService_Create(t *testing.T) {
	tests := []struct {
		name          string
		title         string
		body          string
		wantSlug      string
		invalidFields []string
	}{
		{
			name:     "successful create derives slug and publishes immediately",
			title:    "My First Awesome Post",
			body:     "This is the content of my very first post.",
			wantSlug: "my-first-awesome-post",
		},
		{
			name:          "missing title fails validation",
			body:          "Body without a title",
			invalidFields: []string{"title"},
		},
		{
			name:          "missing body fails validation",
			title:         "Title without a body",
			invalidFields: []string{"body"},
		},
		{
			name:          "both fields missing",
			invalidFields: []string{"title", "body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			svc := NewPostService(mockRepo)

			var captured *model.Post
			if len(tt.invalidFields) == 0 {
				mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).
					Run(func(args mock.Arguments) {
						captured = args.Get(1).(*model.Post)
						captured.ID = 1
					}).Return(nil)
				mockRepo.On("FindByIDWithAuthor", mock.Anything, uint(1)).
					Return(&model.Post{
						ID:     1,
						UserID: 42,
						Title:  tt.title,
						Slug:   tt.wantSlug,
						Body:   tt.body,
						Author: &model.User{ID: 42, Name: "Ada Wells", Email: "ada@example.com"},
					}, nil)
			}

			post, err := svc.Create(context.Background(), 42, tt.title, tt.body)

			if len(tt.invalidFields) > 0 {
				var verr *apperrors.ValidationError
				assert.ErrorAs(t, err, &verr)
				assert.Len(t, verr.Fields, len(tt.invalidFields))
				for _, field := range tt.invalidFields {
					assert.Contains(t, verr.Fields, field)
				}
				assert.Nil(t, post)
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, post)
			assert.Equal(t, tt.wantSlug, post.Slug)
			assert.NotNil(t, post.Author)

			// The persisted record is published immediately regardless of
			// any draft or schedule intent.
			assert.Equal(t, uint(42), captured.UserID)
			assert.False(t, captured.IsDraft)
			assert.NotNil(t, captured.PublishedAt)
			assert.WithinDuration(t, time.Now(), *captured.PublishedAt, 5*time.Second)
			assert.Equal(t, tt.wantSlug, captured.Slug)

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPostService_Get(t *testing.T) {
	tests := []struct {
		name          string
		post          *model.Post
		findErr       error
		expectedError error
	}{
		{
			name: "published post is returned",
			post: &model.Post{ID: 1, Title: "Hello", PublishedAt: pastTime(), Author: &model.User{ID: 2}},
		},
		{
			name:          "absent post is not found",
			findErr:       gorm.ErrRecordNotFound,
			expectedError: apperrors.ErrPostNotFound,
		},
		{
			name:          "draft is not found",
			post:          &model.Post{ID: 1, IsDraft: true, PublishedAt: pastTime()},
			expectedError: apperrors.ErrPostNotFound,
		},
		{
			name:          "scheduled post is not found",
			post:          &model.Post{ID: 1, PublishedAt: futureTime()},
			expectedError: apperrors.ErrPostNotFound,
		},
		{
			name:          "post without publish time is not found",
			post:          &model.Post{ID: 1},
			expectedError: apperrors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			if tt.findErr != nil {
				mockRepo.On("FindByIDWithAuthor", mock.Anything, uint(1)).Return(nil, tt.findErr)
			} else {
				mockRepo.On("FindByIDWithAuthor", mock.Anything, uint(1)).Return(tt.post, nil)
			}

			svc := NewPostService(mockRepo)
			post, err := svc.Get(context.Background(), 1)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, post)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.post, post)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPostService_Update(t *testing.T) {
	owned := func() *model.Post {
		return &model.Post{
			ID:          1,
			UserID:      42,
			Title:       "Original Title",
			Slug:        "original-title",
			Body:        "Original Body",
			PublishedAt: pastTime(),
		}
	}

	t.Run("author updates title, body and slug", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		existing := owned()
		originalPublishedAt := *existing.PublishedAt

		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)
		mockRepo.On("Save", mock.Anything, existing).Return(nil)
		mockRepo.On("FindByIDWithAuthor", mock.Anything, uint(1)).Return(existing, nil)

		svc := NewPostService(mockRepo)
		post, err := svc.Update(context.Background(), 42, 1, "Updated Awesome Title", "Updated awesome body.")

		assert.NoError(t, err)
		assert.Equal(t, "Updated Awesome Title", post.Title)
		assert.Equal(t, "updated-awesome-title", post.Slug)
		assert.Equal(t, "Updated awesome body.", post.Body)

		// Draft state, publish time and authorship are untouched.
		assert.False(t, existing.IsDraft)
		assert.Equal(t, originalPublishedAt, *existing.PublishedAt)
		assert.Equal(t, uint(42), existing.UserID)

		mockRepo.AssertExpectations(t)
	})

	t.Run("absent post is not found", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewPostService(mockRepo)
		_, err := svc.Update(context.Background(), 42, 1, "Title", "Body")

		assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("non-author is forbidden before validation", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(owned(), nil)

		svc := NewPostService(mockRepo)
		_, err := svc.Update(context.Background(), 99, 1, "", "")

		// A non-author gets forbidden even with an invalid payload.
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("author with empty title fails validation without a write", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(owned(), nil)

		svc := NewPostService(mockRepo)
		_, err := svc.Update(context.Background(), 42, 1, "", "Body without a title")

		var verr *apperrors.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "title")
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPostService_Delete(t *testing.T) {
	owned := &model.Post{ID: 1, UserID: 42}

	tests := []struct {
		name          string
		viewerID      uint
		findErr       error
		expectedError error
		expectDelete  bool
	}{
		{name: "author deletes post", viewerID: 42, expectDelete: true},
		{name: "non-author is forbidden", viewerID: 99, expectedError: apperrors.ErrForbidden},
		{name: "absent post is not found", viewerID: 42, findErr: gorm.ErrRecordNotFound, expectedError: apperrors.ErrPostNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			if tt.findErr != nil {
				mockRepo.On("FindByID", mock.Anything, uint(1)).Return(nil, tt.findErr)
			} else {
				mockRepo.On("FindByID", mock.Anything, uint(1)).Return(owned, nil)
			}
			if tt.expectDelete {
				mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil)
			}

			svc := NewPostService(mockRepo)
			err := svc.Delete(context.Background(), tt.viewerID, 1)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPostService_AuthorizeModify(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Post{ID: 1, UserID: 42}, nil)

	svc := NewPostService(mockRepo)

	assert.NoError(t, svc.AuthorizeModify(context.Background(), 42, 1))
	assert.ErrorIs(t, svc.AuthorizeModify(context.Background(), 99, 1), apperrors.ErrForbidden)
}

func TestPostService_List(t *testing.T) {
	visible := []model.Post{
		{ID: 3, Title: "Newest", PublishedAt: pastTime(), Author: &model.User{ID: 1}},
		{ID: 1, Title: "Older", PublishedAt: pastTime(), Author: &model.User{ID: 2}},
	}

	t.Run("returns visible page with total", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("ListVisible", mock.Anything, mock.AnythingOfType("time.Time"), 2, PostsPerPage).
			Return(visible, int64(42), nil)

		svc := NewPostService(mockRepo)
		posts, total, err := svc.List(context.Background(), 2)

		assert.NoError(t, err)
		assert.Equal(t, visible, posts)
		assert.Equal(t, int64(42), total)
		mockRepo.AssertExpectations(t)
	})

	t.Run("page below one is coerced to the first page", func(t *testing.T) {
		mockRepo := new(MockPostRepository)
		mockRepo.On("ListVisible", mock.Anything, mock.AnythingOfType("time.Time"), 1, PostsPerPage).
			Return([]model.Post{}, int64(0), nil)

		svc := NewPostService(mockRepo)
		_, _, err := svc.List(context.Background(), 0)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

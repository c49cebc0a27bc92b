package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPost_IsPubliclyVisible(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name string
		post Post
		want bool
	}{
		{name: "published in the past", post: Post{IsDraft: false, PublishedAt: &past}, want: true},
		{name: "published exactly now", post: Post{IsDraft: false, PublishedAt: &now}, want: true},
		{name: "draft with past timestamp", post: Post{IsDraft: true, PublishedAt: &past}, want: false},
		{name: "draft without timestamp", post: Post{IsDraft: true}, want: false},
		{name: "no publish timestamp", post: Post{IsDraft: false}, want: false},
		{name: "scheduled in the future", post: Post{IsDraft: false, PublishedAt: &future}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.post.IsPubliclyVisible(now))
		})
	}
}

func TestPost_IsAuthoredBy(t *testing.T) {
	post := Post{UserID: 7}

	assert.True(t, post.IsAuthoredBy(7))
	assert.False(t, post.IsAuthoredBy(8))
	assert.False(t, post.IsAuthoredBy(0))
}

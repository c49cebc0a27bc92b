package model

import "time"

// Post represents a blog post authored by a user.
type Post struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"not null;index"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Slug        string     `json:"slug" gorm:"size:255;not null;index"`
	Body        string     `json:"body" gorm:"type:text;not null"`
	IsDraft     bool       `json:"is_draft" gorm:"default:false;index"`
	PublishedAt *time.Time `json:"published_at" gorm:"index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Author *User `json:"author,omitempty" gorm:"foreignKey:UserID"`
}

// IsPubliclyVisible reports whether the post can be served to anonymous
// readers at the given instant. Drafts are never visible; a post without a
// publish timestamp, or with one in the future, is not visible yet.
func (p *Post) IsPubliclyVisible(now time.Time) bool {
	if p.IsDraft {
		return false
	}
	if p.PublishedAt == nil {
		return false
	}
	return !p.PublishedAt.After(now)
}

// IsAuthoredBy reports whether the given user owns the post. Only the author
// may update or delete it.
func (p *Post) IsAuthoredBy(userID uint) bool {
	return p.UserID == userID
}

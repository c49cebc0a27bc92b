package handler

import (
	"fmt"

	"quill/internal/model"
)

const publishedAtLayout = "2006-01-02 15:04:05"

// AuthorResponse is the public projection of a post's author.
type AuthorResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PostResponse is the external JSON shape of a post. PublishedAt and Author
// are omitted when absent or not loaded.
type PostResponse struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Body        string          `json:"body"`
	PublishedAt *string         `json:"published_at,omitempty"`
	Author      *AuthorResponse `json:"author,omitempty"`
}

// NewPostResponse maps a post record to its external representation.
func NewPostResponse(post *model.Post) PostResponse {
	resp := PostResponse{
		ID:    post.ID,
		Title: post.Title,
		Slug:  post.Slug,
		Body:  post.Body,
	}
	if post.PublishedAt != nil {
		formatted := post.PublishedAt.Format(publishedAtLayout)
		resp.PublishedAt = &formatted
	}
	if post.Author != nil {
		resp.Author = &AuthorResponse{
			ID:    post.Author.ID,
			Name:  post.Author.Name,
			Email: post.Author.Email,
		}
	}
	return resp
}

// PaginationLinks holds navigation URLs for a paginated listing.
type PaginationLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

// PaginationMeta describes the current page of a paginated listing.
type PaginationMeta struct {
	CurrentPage int    `json:"current_page"`
	From        *int   `json:"from"`
	LastPage    int    `json:"last_page"`
	Path        string `json:"path"`
	PerPage     int    `json:"per_page"`
	To          *int   `json:"to"`
	Total       int64  `json:"total"`
}

// PaginatedPostsResponse wraps a page of posts with links and meta.
type PaginatedPostsResponse struct {
	Data  []PostResponse  `json:"data"`
	Links PaginationLinks `json:"links"`
	Meta  PaginationMeta  `json:"meta"`
}

// NewPaginatedPostsResponse builds the listing envelope for one page.
func NewPaginatedPostsResponse(posts []model.Post, page, perPage int, total int64, path string) PaginatedPostsResponse {
	data := make([]PostResponse, 0, len(posts))
	for i := range posts {
		data = append(data, NewPostResponse(&posts[i]))
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	pageURL := func(p int) string {
		return fmt.Sprintf("%s?page=%d", path, p)
	}

	links := PaginationLinks{
		First: pageURL(1),
		Last:  pageURL(lastPage),
	}
	if page > 1 {
		prev := pageURL(page - 1)
		links.Prev = &prev
	}
	if page < lastPage {
		next := pageURL(page + 1)
		links.Next = &next
	}

	meta := PaginationMeta{
		CurrentPage: page,
		LastPage:    lastPage,
		Path:        path,
		PerPage:     perPage,
		Total:       total,
	}
	if len(data) > 0 {
		from := (page-1)*perPage + 1
		to := from + len(data) - 1
		meta.From = &from
		meta.To = &to
	}

	return PaginatedPostsResponse{Data: data, Links: links, Meta: meta}
}

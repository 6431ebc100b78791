package post

import (
	"time"

	"github.com/google/uuid"
)

// Post is a news article on the school site. AuthorID is what the
// own/all edit and delete scopes are compared against.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	AuthorID    uuid.UUID  `json:"author_id"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreatePostInput struct {
	Title    string
	Slug     string
	Content  string
	AuthorID uuid.UUID
}

type UpdatePostInput struct {
	Title   *string
	Content *string
}

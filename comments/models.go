// Package comments implements the comment-creation workflow: one validated
// insert linking a body to a post and the signed-in author.
package comments

import (
	"time"

	"github.com/user/launcher-go/auth"
)

// Comment represents a comment attached to a post.
type Comment struct {
	ID        int       `json:"id"`
	Body      string    `json:"body"`
	AuthorID  int       `json:"author_id"`
	PostID    int       `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	// Author is joined in for rendering.
	Author auth.User `json:"author"`
}

// NewCommentForm carries the fields of the inline comment form.
type NewCommentForm struct {
	Body   string `validate:"required"`
	PostID int    `validate:"required,gt=0"`
}

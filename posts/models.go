// Package posts implements the post-creation workflow and the feed: an
// insert scoped to the signed-in author, and the reverse-chronological list
// of every post with its author and comments.
package posts

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user/launcher-go/auth"
	"github.com/user/launcher-go/comments"
)

// Post represents a submitted project post.
type Post struct {
	ID          int       `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DemoURL     string    `json:"demo_url"`
	AuthorID    int       `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Author and Comments are joined in for rendering.
	Author   auth.User          `json:"author"`
	Comments []comments.Comment `json:"comments"`
}

// NewPostForm carries the fields of the post-creation form. Only title and
// description are required; demoURL is accepted as-is, matching the form's
// client-side requirements.
type NewPostForm struct {
	DemoURL     string
	Title       string `validate:"required"`
	Description string `validate:"required"`
}

// Slugify builds a URL slug from a post title plus a short random suffix so
// that identical titles never collide.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "post"
	}
	return slug + "-" + uuid.NewString()[:8]
}

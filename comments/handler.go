package comments

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/user/launcher-go/apperror"
	"github.com/user/launcher-go/auth"
	"github.com/user/launcher-go/web"
)

// CommentHandler serves the comment-creation form action.
type CommentHandler struct {
	service  CommentService
	renderer *web.Renderer
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(service CommentService, renderer *web.Renderer) *CommentHandler {
	return &CommentHandler{service: service, renderer: renderer}
}

// HandleCreate processes the inline comment form and redirects back to the
// feed, which re-renders with the new comment included.
func (h *CommentHandler) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			h.renderer.RenderError(w, r, apperror.NewAuthError("sign in to comment", nil))
			return
		}

		if err := r.ParseForm(); err != nil {
			h.renderer.RenderError(w, r, apperror.NewValidationError("bad form submission", err))
			return
		}

		postID, err := strconv.Atoi(r.FormValue("postId"))
		if err != nil {
			h.renderer.RenderError(w, r, apperror.NewValidationError("invalid post id", err))
			return
		}

		form := NewCommentForm{
			Body:   strings.TrimSpace(r.FormValue("body")),
			PostID: postID,
		}

		if _, err := h.service.AddComment(r.Context(), user.ID, form); err != nil {
			h.renderer.RenderError(w, r, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

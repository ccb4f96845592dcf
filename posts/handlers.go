package posts

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/user/launcher-go/apperror"
	"github.com/user/launcher-go/auth"
	"github.com/user/launcher-go/web"
)

// PostHandlers serves the feed, the post detail page, and the post-creation
// form.
type PostHandlers struct {
	service  PostService
	renderer *web.Renderer
}

// NewPostHandlers creates a new PostHandlers instance.
func NewPostHandlers(service PostService, renderer *web.Renderer) *PostHandlers {
	return &PostHandlers{service: service, renderer: renderer}
}

type feedPageData struct {
	web.PageData
	Posts []Post
}

type newPostPageData struct {
	web.PageData
	Error string
}

type postPageData struct {
	web.PageData
	Post *Post
}

func sessionUser(r *http.Request) any {
	if user, ok := auth.UserFromContext(r.Context()); ok {
		return user
	}
	return nil
}

// HandleFeed renders the home page: every post, newest first, with authors,
// comments, and inline comment forms.
func (h *PostHandlers) HandleFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		feed, err := h.service.ListFeed(r.Context())
		if err != nil {
			h.renderer.RenderError(w, r, err)
			return
		}
		h.renderer.Render(w, http.StatusOK, "feed.html", feedPageData{
			PageData: web.PageData{Title: "Home", User: sessionUser(r)},
			Posts:    feed,
		})
	}
}

// HandleNewPostPage renders the post-creation form. The route is guarded by
// auth.RequireUser, so an unauthenticated request never reaches it.
func (h *PostHandlers) HandleNewPostPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderer.Render(w, http.StatusOK, "new_post.html", newPostPageData{
			PageData: web.PageData{Title: "New Post", User: sessionUser(r)},
		})
	}
}

// HandleCreatePost processes the post-creation form and redirects to the
// feed on success.
func (h *PostHandlers) HandleCreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			h.renderer.RenderError(w, r, apperror.NewAuthError("sign in to post", nil))
			return
		}

		if err := r.ParseForm(); err != nil {
			h.renderer.RenderError(w, r, apperror.NewValidationError("bad form submission", err))
			return
		}

		form := NewPostForm{
			DemoURL:     strings.TrimSpace(r.FormValue("demoURL")),
			Title:       strings.TrimSpace(r.FormValue("title")),
			Description: strings.TrimSpace(r.FormValue("description")),
		}

		if _, err := h.service.CreatePost(r.Context(), user.ID, form); err != nil {
			if appErr, ok := apperror.FromError(err); ok && apperror.IsValidationError(err) {
				h.renderer.Render(w, appErr.StatusCode(), "new_post.html", newPostPageData{
					PageData: web.PageData{Title: "New Post", User: sessionUser(r)},
					Error:    appErr.ToResponse().Error,
				})
				return
			}
			h.renderer.RenderError(w, r, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// HandlePostDetail renders a single post addressed by its slug.
func (h *PostHandlers) HandlePostDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		post, err := h.service.GetBySlug(r.Context(), slug)
		if err != nil {
			h.renderer.RenderError(w, r, err)
			return
		}
		h.renderer.Render(w, http.StatusOK, "post.html", postPageData{
			PageData: web.PageData{Title: post.Title, User: sessionUser(r)},
			Post:     post,
		})
	}
}

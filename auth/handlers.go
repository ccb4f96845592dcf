package auth

import (
	"net/http"
	"strings"

	"github.com/user/launcher-go/apperror"
	"github.com/user/launcher-go/web"
)

// Handlers serves the login, register, and logout routes.
type Handlers struct {
	service  *AuthService
	renderer *web.Renderer
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *AuthService, renderer *web.Renderer) *Handlers {
	return &Handlers{service: service, renderer: renderer}
}

type loginPageData struct {
	web.PageData
	Flash string
	Error string
	Email string
}

type registerPageData struct {
	web.PageData
	Error string
	Name  string
	Email string
}

// HandleLoginPage renders the login form.
func (h *Handlers) HandleLoginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := loginPageData{PageData: web.PageData{Title: "Log in"}}
		if r.URL.Query().Get("registered") == "1" {
			data.Flash = "Account created. Log in to continue."
		}
		h.renderer.Render(w, http.StatusOK, "login.html", data)
	}
}

// HandleLogin processes the login form, sets the session cookie, and
// redirects to the feed.
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.renderer.RenderError(w, r, apperror.NewValidationError("bad form submission", err))
			return
		}

		form := LoginForm{
			Email:    strings.TrimSpace(r.FormValue("email")),
			Password: r.FormValue("password"),
		}

		token, expires, err := h.service.Login(r.Context(), form)
		if err != nil {
			appErr, ok := apperror.FromError(err)
			if !ok {
				h.renderer.RenderError(w, r, err)
				return
			}
			h.renderer.Render(w, appErr.StatusCode(), "login.html", loginPageData{
				PageData: web.PageData{Title: "Log in"},
				Error:    appErr.ToResponse().Error,
				Email:    form.Email,
			})
			return
		}

		SetSessionCookie(w, token, expires)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// HandleRegisterPage renders the registration form.
func (h *Handlers) HandleRegisterPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderer.Render(w, http.StatusOK, "register.html", registerPageData{
			PageData: web.PageData{Title: "Register"},
		})
	}
}

// HandleRegister processes the registration form and redirects to the login
// page on success.
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.renderer.RenderError(w, r, apperror.NewValidationError("bad form submission", err))
			return
		}

		form := RegisterForm{
			Name:     strings.TrimSpace(r.FormValue("name")),
			Email:    strings.TrimSpace(r.FormValue("email")),
			Password: r.FormValue("password"),
		}

		if _, err := h.service.Register(r.Context(), form); err != nil {
			appErr, ok := apperror.FromError(err)
			if !ok {
				h.renderer.RenderError(w, r, err)
				return
			}
			h.renderer.Render(w, appErr.StatusCode(), "register.html", registerPageData{
				PageData: web.PageData{Title: "Register"},
				Error:    appErr.ToResponse().Error,
				Name:     form.Name,
				Email:    form.Email,
			})
			return
		}

		http.Redirect(w, r, "/login?registered=1", http.StatusSeeOther)
	}
}

// HandleLogout clears the session cookie and redirects to the feed.
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ClearSessionCookie(w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

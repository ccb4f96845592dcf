package auth

import (
	"net/http"
	"time"
)

// SessionCookie is the name of the cookie holding the session token.
const SessionCookie = "launcher_session"

// SignInPath is where unauthenticated requests to protected routes are sent.
const SignInPath = "/login"

// SessionMiddleware reads the session cookie, validates the token, and
// injects the session user into the request context. Requests without a
// valid session proceed anonymously.
func (s *AuthService) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
			if claims, err := s.ValidateSessionToken(c.Value); err == nil {
				user := &SessionUser{ID: claims.UserID, Name: claims.Name}
				r = r.WithContext(NewContextWithUser(r.Context(), user))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser guards routes that need an authenticated user. Requests
// without a session are redirected to the sign-in page before any handler
// runs, so no protected mutation can happen anonymously.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			http.Redirect(w, r, SignInPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SetSessionCookie writes the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

package comments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/launcher-go/apperror"
	"github.com/user/launcher-go/auth"
	"github.com/user/launcher-go/web"
)

type mockCommentService struct {
	addFunc func(ctx context.Context, authorID int, form NewCommentForm) (*Comment, error)
}

func (m *mockCommentService) AddComment(ctx context.Context, authorID int, form NewCommentForm) (*Comment, error) {
	return m.addFunc(ctx, authorID, form)
}

func newTestRenderer(t *testing.T) *web.Renderer {
	t.Helper()
	renderer, err := web.NewRenderer()
	require.NoError(t, err)
	return renderer
}

func postCommentRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/comments", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleCreateSuccess(t *testing.T) {
	var gotAuthorID int
	var gotForm NewCommentForm
	service := &mockCommentService{addFunc: func(ctx context.Context, authorID int, form NewCommentForm) (*Comment, error) {
		gotAuthorID = authorID
		gotForm = form
		return &Comment{ID: 1, Body: form.Body, AuthorID: authorID, PostID: form.PostID}, nil
	}}
	h := NewCommentHandler(service, newTestRenderer(t))

	req := postCommentRequest(url.Values{"body": {"Nice!"}, "postId": {"7"}})
	req = req.WithContext(auth.NewContextWithUser(req.Context(), &auth.SessionUser{ID: 2, Name: "U2"}))

	rec := httptest.NewRecorder()
	h.HandleCreate().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, 2, gotAuthorID)
	assert.Equal(t, "Nice!", gotForm.Body)
	assert.Equal(t, 7, gotForm.PostID)
}

func TestHandleCreateInvalidPostID(t *testing.T) {
	service := &mockCommentService{addFunc: func(ctx context.Context, authorID int, form NewCommentForm) (*Comment, error) {
		t.Error("service must not be called with an invalid post id")
		return nil, nil
	}}
	h := NewCommentHandler(service, newTestRenderer(t))

	req := postCommentRequest(url.Values{"body": {"Nice!"}, "postId": {"not-a-number"}})
	req = req.WithContext(auth.NewContextWithUser(req.Context(), &auth.SessionUser{ID: 2, Name: "U2"}))

	rec := httptest.NewRecorder()
	h.HandleCreate().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCreateWithoutSession(t *testing.T) {
	service := &mockCommentService{addFunc: func(ctx context.Context, authorID int, form NewCommentForm) (*Comment, error) {
		t.Error("service must not be called without a session")
		return nil, nil
	}}
	h := NewCommentHandler(service, newTestRenderer(t))

	rec := httptest.NewRecorder()
	h.HandleCreate().ServeHTTP(rec, postCommentRequest(url.Values{"body": {"Nice!"}, "postId": {"7"}}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleCreateServiceError(t *testing.T) {
	service := &mockCommentService{addFunc: func(ctx context.Context, authorID int, form NewCommentForm) (*Comment, error) {
		return nil, apperror.NewValidationError("post does not exist", nil)
	}}
	h := NewCommentHandler(service, newTestRenderer(t))

	req := postCommentRequest(url.Values{"body": {"Nice!"}, "postId": {"999"}})
	req = req.WithContext(auth.NewContextWithUser(req.Context(), &auth.SessionUser{ID: 2, Name: "U2"}))

	rec := httptest.NewRecorder()
	h.HandleCreate().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "post does not exist")
}

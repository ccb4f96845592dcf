package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/launcher-go/apperror"
	"github.com/user/launcher-go/config"
)

func newTestService(secret string, duration time.Duration) *AuthService {
	// No pool: token and validation paths never touch the database.
	return NewAuthService(nil, config.AuthConfig{
		JWTSecret:       secret,
		SessionDuration: duration,
	})
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := newTestService("test-secret", time.Hour)

	token, expiry, err := svc.IssueSessionToken(&User{ID: 7, Name: "Ada"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims, err := svc.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, "launcher", claims.Issuer)
}

func TestValidateSessionTokenRejectsTampering(t *testing.T) {
	svc := newTestService("test-secret", time.Hour)

	token, _, err := svc.IssueSessionToken(&User{ID: 7, Name: "Ada"})
	require.NoError(t, err)

	_, err = svc.ValidateSessionToken(token + "x")
	assert.Error(t, err)

	_, err = svc.ValidateSessionToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateSessionTokenRejectsWrongSecret(t *testing.T) {
	issuer := newTestService("secret-one", time.Hour)
	verifier := newTestService("secret-two", time.Hour)

	token, _, err := issuer.IssueSessionToken(&User{ID: 7, Name: "Ada"})
	require.NoError(t, err)

	_, err = verifier.ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestValidateSessionTokenRejectsExpired(t *testing.T) {
	svc := newTestService("test-secret", -time.Hour)

	token, _, err := svc.IssueSessionToken(&User{ID: 7, Name: "Ada"})
	require.NoError(t, err)

	_, err = svc.ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestValidateSessionTokenRejectsMissingUserID(t *testing.T) {
	svc := newTestService("test-secret", time.Hour)

	token, _, err := svc.IssueSessionToken(&User{ID: 0, Name: "Nobody"})
	require.NoError(t, err)

	_, err = svc.ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestRegisterValidatesForm(t *testing.T) {
	svc := newTestService("test-secret", time.Hour)

	cases := []struct {
		name string
		form RegisterForm
	}{
		{"all empty", RegisterForm{}},
		{"bad email", RegisterForm{Name: "Ada", Email: "not-an-email", Password: "longenough"}},
		{"short password", RegisterForm{Name: "Ada", Email: "ada@example.com", Password: "abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.form)
			require.Error(t, err)
			assert.True(t, apperror.IsValidationError(err))
		})
	}
}

func TestLoginValidatesForm(t *testing.T) {
	svc := newTestService("test-secret", time.Hour)

	_, _, err := svc.Login(context.Background(), LoginForm{})
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/launcher-go/apperror"
	"github.com/user/launcher-go/config"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// AuthService provides registration, login, and session token handling.
type AuthService struct {
	dbPool     *pgxpool.Pool
	authConfig config.AuthConfig
	validate   *validator.Validate
}

// NewAuthService creates a new AuthService.
func NewAuthService(dbPool *pgxpool.Pool, authConfig config.AuthConfig) *AuthService {
	return &AuthService{
		dbPool:     dbPool,
		authConfig: authConfig,
		validate:   validator.New(),
	}
}

// Register creates a new user from the registration form.
func (s *AuthService) Register(ctx context.Context, form RegisterForm) (*User, error) {
	if err := s.validate.Struct(form); err != nil {
		return nil, apperror.NewValidationError("name, a valid email, and a password of at least 6 characters are required", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Name:           form.Name,
		Email:          strings.ToLower(form.Email),
		HashedPassword: string(hashedPassword),
	}

	createdUser, err := s.createUser(ctx, user)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("email already registered", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return createdUser, nil
}

// Login authenticates a user and returns a signed session token together
// with its expiry.
func (s *AuthService) Login(ctx context.Context, form LoginForm) (string, time.Time, error) {
	if err := s.validate.Struct(form); err != nil {
		return "", time.Time{}, apperror.NewValidationError("email and password are required", err)
	}

	user, err := s.getUserByEmail(ctx, form.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Do not reveal whether the email or the password was wrong.
			return "", time.Time{}, apperror.NewAuthError("invalid email or password", nil)
		}
		return "", time.Time{}, apperror.NewDatabaseError("failed to get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(form.Password)); err != nil {
		return "", time.Time{}, apperror.NewAuthError("invalid email or password", nil)
	}

	return s.IssueSessionToken(user)
}

// IssueSessionToken signs a session JWT for the given user.
func (s *AuthService) IssueSessionToken(user *User) (string, time.Time, error) {
	expirationTime := time.Now().Add(s.authConfig.SessionDuration)
	claims := &SessionClaims{
		UserID: user.ID,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "launcher",
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.authConfig.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, expirationTime, nil
}

// ValidateSessionToken parses and validates a session token, returning its
// claims.
func (s *AuthService) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.authConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.UserID == 0 {
		return nil, errors.New("user_id claim is missing")
	}
	return claims, nil
}

// --- Database helpers ---

func (s *AuthService) createUser(ctx context.Context, user *User) (*User, error) {
	query := `INSERT INTO users (name, email, image, password)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	err := s.dbPool.QueryRow(ctx, query, user.Name, user.Email, user.Image, user.HashedPassword).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) getUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	query := `SELECT id, name, email, COALESCE(image, ''), password, created_at
	          FROM users WHERE email = $1`
	err := s.dbPool.QueryRow(ctx, query, strings.ToLower(email)).
		Scan(&user.ID, &user.Name, &user.Email, &user.Image, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

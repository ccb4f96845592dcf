package comments

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/launcher-go/apperror"
)

// pgForeignKeyViolation is the PostgreSQL error code for foreign key
// constraint violations.
const pgForeignKeyViolation = "23503"

// CommentService defines the comment operations.
type CommentService interface {
	AddComment(ctx context.Context, authorID int, form NewCommentForm) (*Comment, error)
}

type commentServiceImpl struct {
	db       *pgxpool.Pool
	validate *validator.Validate
}

// NewCommentService creates a new CommentService.
func NewCommentService(db *pgxpool.Pool) CommentService {
	return &commentServiceImpl{db: db, validate: validator.New()}
}

// AddComment inserts one comment row attributed to the given author and
// post. Post existence is enforced by the post_id foreign key; a violation
// surfaces as a validation error rather than a server error.
func (s *commentServiceImpl) AddComment(ctx context.Context, authorID int, form NewCommentForm) (*Comment, error) {
	if err := s.validate.Struct(form); err != nil {
		return nil, apperror.NewValidationError("a comment body and a post are required", err)
	}

	comment := &Comment{
		Body:     form.Body,
		AuthorID: authorID,
		PostID:   form.PostID,
	}

	query := `INSERT INTO comments (body, author_id, post_id)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at`
	err := s.db.QueryRow(ctx, query, comment.Body, comment.AuthorID, comment.PostID).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, apperror.NewValidationError("post does not exist", err)
		}
		return nil, apperror.NewDatabaseError("failed to add comment", err)
	}
	return comment, nil
}

package posts

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/launcher-go/apperror"
	"github.com/user/launcher-go/comments"
)

// PostService defines the post operations.
type PostService interface {
	CreatePost(ctx context.Context, authorID int, form NewPostForm) (*Post, error)
	ListFeed(ctx context.Context) ([]Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
}

type postServiceImpl struct {
	db       *pgxpool.Pool
	validate *validator.Validate
}

// NewPostService creates a new PostService.
func NewPostService(db *pgxpool.Pool) PostService {
	return &postServiceImpl{db: db, validate: validator.New()}
}

// CreatePost inserts one post row attributed to the given author.
func (s *postServiceImpl) CreatePost(ctx context.Context, authorID int, form NewPostForm) (*Post, error) {
	if err := s.validate.Struct(form); err != nil {
		return nil, apperror.NewValidationError("title and description are required", err)
	}

	post := &Post{
		Slug:        Slugify(form.Title),
		Title:       form.Title,
		Description: form.Description,
		DemoURL:     form.DemoURL,
		AuthorID:    authorID,
	}

	query := `INSERT INTO posts (slug, title, description, demo_url, author_id)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at`
	err := s.db.QueryRow(ctx, query, post.Slug, post.Title, post.Description, post.DemoURL, post.AuthorID).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}
	return post, nil
}

// ListFeed returns every post in descending creation order, each with its
// author and all its comments (oldest first). The feed is unpaginated.
func (s *postServiceImpl) ListFeed(ctx context.Context) ([]Post, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.slug, p.title, p.description, p.demo_url, p.author_id, p.created_at,
		       u.name, u.email, COALESCE(u.image, '')
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to query posts", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(
			&p.ID, &p.Slug, &p.Title, &p.Description, &p.DemoURL, &p.AuthorID, &p.CreatedAt,
			&p.Author.Name, &p.Author.Email, &p.Author.Image,
		); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan post", err)
		}
		p.Author.ID = p.AuthorID
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read posts", err)
	}

	byPost, err := s.fetchComments(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Comments = byPost[posts[i].ID]
	}
	return posts, nil
}

// GetBySlug returns a single post with its author and comments.
func (s *postServiceImpl) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	var p Post
	err := s.db.QueryRow(ctx, `
		SELECT p.id, p.slug, p.title, p.description, p.demo_url, p.author_id, p.created_at,
		       u.name, u.email, COALESCE(u.image, '')
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.slug = $1`, slug).
		Scan(
			&p.ID, &p.Slug, &p.Title, &p.Description, &p.DemoURL, &p.AuthorID, &p.CreatedAt,
			&p.Author.Name, &p.Author.Email, &p.Author.Image,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("post not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to query post", err)
	}
	p.Author.ID = p.AuthorID

	byPost, err := s.fetchComments(ctx, []int{p.ID})
	if err != nil {
		return nil, err
	}
	p.Comments = byPost[p.ID]
	return &p, nil
}

// fetchComments loads comments with their authors, grouped by post id.
// A nil postIDs loads comments for every post.
func (s *postServiceImpl) fetchComments(ctx context.Context, postIDs []int) (map[int][]comments.Comment, error) {
	query := `
		SELECT c.id, c.body, c.author_id, c.post_id, c.created_at,
		       u.name, u.email, COALESCE(u.image, '')
		FROM comments c
		JOIN users u ON u.id = c.author_id`
	args := []any{}
	if postIDs != nil {
		query += ` WHERE c.post_id = ANY($1)`
		args = append(args, postIDs)
	}
	query += ` ORDER BY c.created_at ASC, c.id ASC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to query comments", err)
	}
	defer rows.Close()

	byPost := make(map[int][]comments.Comment)
	for rows.Next() {
		var c comments.Comment
		if err := rows.Scan(
			&c.ID, &c.Body, &c.AuthorID, &c.PostID, &c.CreatedAt,
			&c.Author.Name, &c.Author.Email, &c.Author.Image,
		); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan comment", err)
		}
		c.Author.ID = c.AuthorID
		byPost[c.PostID] = append(byPost[c.PostID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read comments", err)
	}
	return byPost, nil
}

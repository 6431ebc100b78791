package postgres

import (
	"context"
	"time"

	"github.com/finnbusse/grabbe-cms/internal/domain/post"
	apperrors "github.com/finnbusse/grabbe-cms/pkg/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostRepository struct {
	db *DB
}

func NewPostRepository(db *DB) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `id, title, slug, content, author_id, published, published_at, created_at, updated_at`

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	return r.scanPost(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *PostRepository) List(ctx context.Context, includeUnpublished bool) ([]*post.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE published OR $1 ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, includeUnpublished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*post.Post
	for rows.Next() {
		p, err := r.scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Create(ctx context.Context, input post.CreatePostInput) (*post.Post, error) {
	query := `
		INSERT INTO posts (title, slug, content, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + postColumns

	p, err := r.scanPost(r.db.Pool.QueryRow(ctx, query, input.Title, input.Slug, input.Content, input.AuthorID))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("a post with this slug already exists")
		}
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) Update(ctx context.Context, id uuid.UUID, input post.UpdatePostInput) error {
	query := `
		UPDATE posts
		SET title = COALESCE($2, title),
		    content = COALESCE($3, content),
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query, id, input.Title, input.Content)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errPostNotFound)
	}
	return nil
}

func (r *PostRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	var publishedAt *time.Time
	if published {
		now := time.Now()
		publishedAt = &now
	}

	query := `UPDATE posts SET published = $2, published_at = $3, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, id, published, publishedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errPostNotFound)
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errPostNotFound)
	}
	return nil
}

func (r *PostRepository) scanPost(row rowScanner) (*post.Post, error) {
	p := &post.Post{}
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Content,
		&p.AuthorID,
		&p.Published,
		&p.PublishedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errPostNotFound)
		}
		return nil, err
	}
	return p, nil
}

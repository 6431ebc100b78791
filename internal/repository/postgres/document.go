package postgres

import (
	"context"

	"github.com/finnbusse/grabbe-cms/internal/domain/document"
	apperrors "github.com/finnbusse/grabbe-cms/pkg/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type DocumentRepository struct {
	db *DB
}

func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

const documentColumns = `id, name, s3_key, size_bytes, mime_type, uploaded_by, created_at`

func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return r.scanDocument(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *DocumentRepository) List(ctx context.Context) ([]*document.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []*document.Document
	for rows.Next() {
		d, err := r.scanDocument(rows)
		if err != nil {
			return nil, err
		}
		documents = append(documents, d)
	}
	return documents, rows.Err()
}

func (r *DocumentRepository) Create(ctx context.Context, input document.CreateDocumentInput) (*document.Document, error) {
	query := `
		INSERT INTO documents (name, s3_key, size_bytes, mime_type, uploaded_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + documentColumns

	return r.scanDocument(r.db.Pool.QueryRow(ctx, query,
		input.Name, input.S3Key, input.SizeBytes, input.MimeType, input.UploadedBy))
}

func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errDocumentNotFound)
	}
	return nil
}

func (r *DocumentRepository) scanDocument(row rowScanner) (*document.Document, error) {
	d := &document.Document{}
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.S3Key,
		&d.SizeBytes,
		&d.MimeType,
		&d.UploadedBy,
		&d.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errDocumentNotFound)
		}
		return nil, err
	}
	return d, nil
}

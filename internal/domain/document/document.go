package document

import (
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded file (forms, letters, downloads). The object
// itself lives in S3 under S3Key; UploadedBy is what the own/all delete
// scope is compared against.
type Document struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	S3Key      string    `json:"s3_key"`
	SizeBytes  int64     `json:"size_bytes"`
	MimeType   string    `json:"mime_type"`
	UploadedBy uuid.UUID `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateDocumentInput struct {
	Name       string
	S3Key      string
	SizeBytes  int64
	MimeType   string
	UploadedBy uuid.UUID
}

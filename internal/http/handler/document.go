package handler

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/finnbusse/grabbe-cms/internal/audit"
	"github.com/finnbusse/grabbe-cms/internal/auth"
	"github.com/finnbusse/grabbe-cms/internal/domain/document"
	"github.com/finnbusse/grabbe-cms/internal/repository"
	"github.com/finnbusse/grabbe-cms/pkg/validator"
)

// StorageOperations is the slice of the S3 client documents need.
type StorageOperations interface {
	GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string) (string, error)
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

type DocumentHandler struct {
	documentRepo repository.DocumentRepository
	storage      StorageOperations
	auditLogger  *audit.Logger
}

func NewDocumentHandler(documentRepo repository.DocumentRepository, storage StorageOperations, auditLogger *audit.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentRepo: documentRepo,
		storage:      storage,
		auditLogger:  auditLogger,
	}
}

type UploadDocumentRequest struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	MimeType  string `json:"mime_type"`
}

type UploadDocumentResponse struct {
	Document  *document.Document `json:"document"`
	UploadURL string             `json:"upload_url"`
}

func (h *DocumentHandler) ListDocuments(c echo.Context) error {
	docs, err := h.documentRepo.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to list documents: %v", err)
		return respondError(c, http.StatusInternalServerError, msgListDocumentsFail)
	}

	return c.JSON(http.StatusOK, docs)
}

// UploadDocument registers the document and hands back a presigned PUT
// URL; the client uploads the bytes directly to S3.
func (h *DocumentHandler) UploadDocument(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	var req UploadDocumentRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validator.FileName(req.Name); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err := validator.FileSize(req.SizeBytes); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err := validator.ContentType(req.MimeType); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	// Object keys are server-generated; the user-chosen name only
	// survives as metadata, never as part of the key.
	objectKey := fmt.Sprintf("documents/%s%s", uuid.New(), path.Ext(req.Name))

	doc, err := h.documentRepo.Create(c.Request().Context(), document.CreateDocumentInput{
		Name:       req.Name,
		S3Key:      objectKey,
		SizeBytes:  req.SizeBytes,
		MimeType:   req.MimeType,
		UploadedBy: userID,
	})
	if err != nil {
		c.Logger().Errorf("Failed to register document %s: %v", req.Name, err)
		return respondError(c, http.StatusInternalServerError, msgCreateDocumentFail)
	}

	uploadURL, err := h.storage.GeneratePresignedUploadURL(c.Request().Context(), objectKey, req.MimeType)
	if err != nil {
		c.Logger().Errorf("Failed to presign upload for %s: %v", objectKey, err)
		if deleteErr := h.documentRepo.Delete(c.Request().Context(), doc.ID); deleteErr != nil {
			c.Logger().Errorf("Failed to rollback document %s after presign failure: %v", doc.ID, deleteErr)
		}
		return respondError(c, http.StatusInternalServerError, msgUploadURLFail)
	}

	if h.auditLogger != nil {
		h.auditLogger.LogFromContext(c, audit.ResourceDocument, &doc.ID, audit.ActionCreate, audit.StatusSuccess, map[string]any{
			"name": doc.Name,
		})
	}

	return c.JSON(http.StatusCreated, UploadDocumentResponse{
		Document:  doc,
		UploadURL: uploadURL,
	})
}

type DownloadDocumentResponse struct {
	DownloadURL string `json:"download_url"`
}

func (h *DocumentHandler) DownloadDocument(c echo.Context) error {
	documentID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidDocumentID)
	}

	doc, err := h.documentRepo.GetByID(c.Request().Context(), documentID)
	if err != nil {
		return respondError(c, http.StatusNotFound, msgDocumentNotFound)
	}

	downloadURL, err := h.storage.GeneratePresignedDownloadURL(c.Request().Context(), doc.S3Key)
	if err != nil {
		c.Logger().Errorf("Failed to presign download for %s: %v", doc.S3Key, err)
		return respondError(c, http.StatusInternalServerError, msgDownloadURLFail)
	}

	return c.JSON(http.StatusOK, DownloadDocumentResponse{DownloadURL: downloadURL})
}

func (h *DocumentHandler) DeleteDocument(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	documentID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidDocumentID)
	}

	doc, err := h.documentRepo.GetByID(c.Request().Context(), documentID)
	if err != nil {
		return respondError(c, http.StatusNotFound, msgDocumentNotFound)
	}

	if !scopeAllows(auth.GetPermissions(c).Documents.Delete, doc.UploadedBy, userID) {
		return respondError(c, http.StatusForbidden, msgNotOwnResource)
	}

	if err := h.storage.DeleteObject(c.Request().Context(), doc.S3Key); err != nil {
		c.Logger().Errorf("Failed to delete S3 object %s: %v", doc.S3Key, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteDocumentFail)
	}

	if err := h.documentRepo.Delete(c.Request().Context(), documentID); err != nil {
		c.Logger().Errorf("Failed to delete document %s: %v", documentID, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteDocumentFail)
	}

	if h.auditLogger != nil {
		h.auditLogger.LogFromContext(c, audit.ResourceDocument, &documentID, audit.ActionDelete, audit.StatusSuccess, nil)
	}

	return respondMessage(c, http.StatusOK, msgDocumentDeleted)
}

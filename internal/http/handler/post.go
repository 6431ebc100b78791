package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/finnbusse/grabbe-cms/internal/audit"
	"github.com/finnbusse/grabbe-cms/internal/auth"
	"github.com/finnbusse/grabbe-cms/internal/domain/post"
	"github.com/finnbusse/grabbe-cms/internal/repository"
	apperrors "github.com/finnbusse/grabbe-cms/pkg/errors"
	"github.com/finnbusse/grabbe-cms/pkg/validator"
)

type PostHandler struct {
	postRepo    repository.PostRepository
	auditLogger *audit.Logger
}

func NewPostHandler(postRepo repository.PostRepository, auditLogger *audit.Logger) *PostHandler {
	return &PostHandler{
		postRepo:    postRepo,
		auditLogger: auditLogger,
	}
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Content string `json:"content"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type SetPublishedRequest struct {
	Published bool `json:"published"`
}

func (h *PostHandler) ListPosts(c echo.Context) error {
	// Unpublished drafts are only visible to users with any posts
	// permission; the route guard handles that, so the flag is honored
	// as requested.
	includeUnpublished := c.QueryParam(queryIncludeUnpublished) == "true"

	posts, err := h.postRepo.List(c.Request().Context(), includeUnpublished)
	if err != nil {
		c.Logger().Errorf("Failed to list posts: %v", err)
		return respondError(c, http.StatusInternalServerError, msgListPostsFail)
	}

	return c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidPostID)
	}

	p, err := h.postRepo.GetByID(c.Request().Context(), postID)
	if err != nil {
		return respondError(c, http.StatusNotFound, msgPostNotFound)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	var req CreatePostRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Title = strings.TrimSpace(req.Title)
	if err := validator.Title(req.Title); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	slug := normalizeSlug(req.Slug)
	if slug == "" {
		slug = normalizeSlug(req.Title)
	}

	p, err := h.postRepo.Create(c.Request().Context(), post.CreatePostInput{
		Title:    req.Title,
		Slug:     slug,
		Content:  req.Content,
		AuthorID: userID,
	})
	if err != nil {
		c.Logger().Errorf("Failed to create post: %v", err)
		return respondError(c, http.StatusInternalServerError, msgCreatePostFail)
	}

	if h.auditLogger != nil {
		h.auditLogger.LogFromContext(c, audit.ResourcePost, &p.ID, audit.ActionCreate, audit.StatusSuccess, nil)
	}

	return c.JSON(http.StatusCreated, p)
}

func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	postID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidPostID)
	}

	p, err := h.postRepo.GetByID(c.Request().Context(), postID)
	if err != nil {
		return respondError(c, http.StatusNotFound, msgPostNotFound)
	}

	if !scopeAllows(auth.GetPermissions(c).Posts.Edit, p.AuthorID, userID) {
		return respondError(c, http.StatusForbidden, msgNotOwnResource)
	}

	var req UpdatePostRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	err = h.postRepo.Update(c.Request().Context(), postID, post.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgPostNotFound)
		}
		c.Logger().Errorf("Failed to update post %s: %v", postID, err)
		return respondError(c, http.StatusInternalServerError, msgUpdatePostFail)
	}

	updated, err := h.postRepo.GetByID(c.Request().Context(), postID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgUpdatePostFail)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *PostHandler) SetPublished(c echo.Context) error {
	if !auth.GetPermissions(c).Posts.Publish {
		return respondError(c, http.StatusForbidden, "missing capability: posts.publish")
	}

	postID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidPostID)
	}

	var req SetPublishedRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if err := h.postRepo.SetPublished(c.Request().Context(), postID, req.Published); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgPostNotFound)
		}
		c.Logger().Errorf("Failed to set published=%t on post %s: %v", req.Published, postID, err)
		return respondError(c, http.StatusInternalServerError, msgPublishPostFail)
	}

	if h.auditLogger != nil {
		h.auditLogger.LogFromContext(c, audit.ResourcePost, &postID, audit.ActionPublish, audit.StatusSuccess, map[string]any{
			"published": req.Published,
		})
	}

	updated, err := h.postRepo.GetByID(c.Request().Context(), postID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgPublishPostFail)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	postID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidPostID)
	}

	p, err := h.postRepo.GetByID(c.Request().Context(), postID)
	if err != nil {
		return respondError(c, http.StatusNotFound, msgPostNotFound)
	}

	if !scopeAllows(auth.GetPermissions(c).Posts.Delete, p.AuthorID, userID) {
		return respondError(c, http.StatusForbidden, msgNotOwnResource)
	}

	if err := h.postRepo.Delete(c.Request().Context(), postID); err != nil {
		c.Logger().Errorf("Failed to delete post %s: %v", postID, err)
		return respondError(c, http.StatusInternalServerError, msgDeletePostFail)
	}

	if h.auditLogger != nil {
		h.auditLogger.LogFromContext(c, audit.ResourcePost, &postID, audit.ActionDelete, audit.StatusSuccess, nil)
	}

	return respondMessage(c, http.StatusOK, msgPostDeleted)
}

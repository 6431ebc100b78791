package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/finnbusse/grabbe-cms/internal/audit"
	"github.com/finnbusse/grabbe-cms/internal/auth"
	"github.com/finnbusse/grabbe-cms/internal/domain/event"
	"github.com/finnbusse/grabbe-cms/internal/repository"
	apperrors "github.com/finnbusse/grabbe-cms/pkg/errors"
	"github.com/finnbusse/grabbe-cms/pkg/validator"
)

type EventHandler struct {
	eventRepo   repository.EventRepository
	auditLogger *audit.Logger
}

func NewEventHandler(eventRepo repository.EventRepository, auditLogger *audit.Logger) *EventHandler {
	return &EventHandler{
		eventRepo:   eventRepo,
		auditLogger: auditLogger,
	}
}

type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	includeUnpublished := c.QueryParam(queryIncludeUnpublished) == "true"

	events, err := h.eventRepo.List(c.Request().Context(), includeUnpublished)
	if err != nil {
		c.Logger().Errorf("Failed to list events: %v", err)
		return respondError(c, http.StatusInternalServerError, msgListEventsFail)
	}

	return c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidEventID)
	}

	ev, err := h.eventRepo.GetByID(c.Request().Context(), eventID)
	if err != nil {
		return respondError(c, http.StatusNotFound, msgEventNotFound)
	}

	return c.JSON(http.StatusOK, ev)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	var req CreateEventRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Title = strings.TrimSpace(req.Title)
	if err := validator.Title(req.Title); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if req.StartsAt.IsZero() {
		return respondError(c, http.StatusBadRequest, msgStartsAtRequired)
	}

	ev, err := h.eventRepo.Create(c.Request().Context(), event.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		AuthorID:    userID,
	})
	if err != nil {
		c.Logger().Errorf("Failed to create event: %v", err)
		return respondError(c, http.StatusInternalServerError, msgCreateEventFail)
	}

	if h.auditLogger != nil {
		h.auditLogger.LogFromContext(c, audit.ResourceEvent, &ev.ID, audit.ActionCreate, audit.StatusSuccess, nil)
	}

	return c.JSON(http.StatusCreated, ev)
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	eventID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidEventID)
	}

	ev, err := h.eventRepo.GetByID(c.Request().Context(), eventID)
	if err != nil {
		return respondError(c, http.StatusNotFound, msgEventNotFound)
	}

	if !scopeAllows(auth.GetPermissions(c).Events.Edit, ev.AuthorID, userID) {
		return respondError(c, http.StatusForbidden, msgNotOwnResource)
	}

	var req UpdateEventRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	err = h.eventRepo.Update(c.Request().Context(), eventID, event.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgEventNotFound)
		}
		c.Logger().Errorf("Failed to update event %s: %v", eventID, err)
		return respondError(c, http.StatusInternalServerError, msgUpdateEventFail)
	}

	updated, err := h.eventRepo.GetByID(c.Request().Context(), eventID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgUpdateEventFail)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) SetPublished(c echo.Context) error {
	if !auth.GetPermissions(c).Events.Publish {
		return respondError(c, http.StatusForbidden, "missing capability: events.publish")
	}

	eventID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidEventID)
	}

	var req SetPublishedRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if err := h.eventRepo.SetPublished(c.Request().Context(), eventID, req.Published); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgEventNotFound)
		}
		c.Logger().Errorf("Failed to set published=%t on event %s: %v", req.Published, eventID, err)
		return respondError(c, http.StatusInternalServerError, msgPublishEventFail)
	}

	if h.auditLogger != nil {
		h.auditLogger.LogFromContext(c, audit.ResourceEvent, &eventID, audit.ActionPublish, audit.StatusSuccess, map[string]any{
			"published": req.Published,
		})
	}

	updated, err := h.eventRepo.GetByID(c.Request().Context(), eventID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgPublishEventFail)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, err.Error())
	}

	eventID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidEventID)
	}

	ev, err := h.eventRepo.GetByID(c.Request().Context(), eventID)
	if err != nil {
		return respondError(c, http.StatusNotFound, msgEventNotFound)
	}

	if !scopeAllows(auth.GetPermissions(c).Events.Delete, ev.AuthorID, userID) {
		return respondError(c, http.StatusForbidden, msgNotOwnResource)
	}

	if err := h.eventRepo.Delete(c.Request().Context(), eventID); err != nil {
		c.Logger().Errorf("Failed to delete event %s: %v", eventID, err)
		return respondError(c, http.StatusInternalServerError, msgDeleteEventFail)
	}

	if h.auditLogger != nil {
		h.auditLogger.LogFromContext(c, audit.ResourceEvent, &eventID, audit.ActionDelete, audit.StatusSuccess, nil)
	}

	return respondMessage(c, http.StatusOK, msgEventDeleted)
}

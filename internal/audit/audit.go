package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/finnbusse/grabbe-cms/internal/auth"
)

// ResourceType names the kind of resource an audit event concerns.
type ResourceType string

const (
	ResourceRole       ResourceType = "role"
	ResourceAssignment ResourceType = "role_assignment"
	ResourcePost       ResourceType = "post"
	ResourceEvent      ResourceType = "event"
	ResourceDocument   ResourceType = "document"
	ResourceSetting    ResourceType = "setting"
	ResourceUser       ResourceType = "user"
)

type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionAssign  Action = "assign"
	ActionPublish Action = "publish"
	ActionLogin   Action = "login"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusDenied  Status = "denied"
)

// Event is one recorded administrative action. Role and assignment
// mutations are always audited: they change who can do what.
type Event struct {
	ID           uuid.UUID
	EventType    string
	ActorID      *uuid.UUID
	ResourceType ResourceType
	ResourceID   *uuid.UUID
	Action       Action
	Status       Status
	IPAddress    string
	UserAgent    string
	RequestID    string
	Metadata     map[string]any
	CreatedAt    time.Time
}

type Logger struct {
	pool *pgxpool.Pool
}

func NewLogger(pool *pgxpool.Pool) *Logger {
	return &Logger{pool: pool}
}

func (l *Logger) Log(ctx context.Context, event *Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	var metadataJSON []byte
	var err error
	if event.Metadata != nil {
		metadataJSON, err = json.Marshal(event.Metadata)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO audit_events (
			id, event_type, actor_id, resource_type, resource_id,
			action, status, ip_address, user_agent, request_id, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = l.pool.Exec(ctx, query,
		event.ID,
		event.EventType,
		event.ActorID,
		event.ResourceType,
		event.ResourceID,
		event.Action,
		event.Status,
		event.IPAddress,
		event.UserAgent,
		event.RequestID,
		metadataJSON,
		event.CreatedAt,
	)
	return err
}

// LogFromContext records an event asynchronously with request context
// attached; failures are logged, never surfaced to the request.
func (l *Logger) LogFromContext(c echo.Context, resourceType ResourceType, resourceID *uuid.UUID, action Action, status Status, metadata map[string]any) {
	event := &Event{
		EventType:    string(action) + "_" + string(resourceType),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Action:       action,
		Status:       status,
		IPAddress:    c.RealIP(),
		UserAgent:    c.Request().UserAgent(),
		RequestID:    c.Response().Header().Get(echo.HeaderXRequestID),
		Metadata:     metadata,
	}

	event.ActorID = actorFromContext(c)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	go func() {
		defer cancel()
		if err := l.Log(ctx, event); err != nil {
			fmt.Fprintf(c.Logger().Output(), "audit log failed: %v\n", err)
		}
	}()
}

// actorFromContext reads the authenticated user ID the auth middleware
// stored on the request, if any.
func actorFromContext(c echo.Context) *uuid.UUID {
	if userID := c.Get(auth.ContextKeyUserID); userID != nil {
		if uid, ok := userID.(uuid.UUID); ok {
			return &uid
		}
	}
	return nil
}

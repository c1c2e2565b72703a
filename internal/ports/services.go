package ports

import (
	"context"
	"time"

	"github.com/paratus/tasks/internal/domain/entities"
	"github.com/paratus/tasks/internal/domain/views"
)

// CollectionService interface for collection operations
type CollectionService interface {
	ListCollections(ctx context.Context) ([]*entities.CollectionSummary, error)
	GetInbox(ctx context.Context) (*entities.CollectionSummary, error)
	GetCollection(ctx context.Context, id string) (*entities.CollectionDetail, error)
	CreateCollection(ctx context.Context, req CreateCollectionRequest) (*entities.Collection, error)
	UpdateCollection(ctx context.Context, id string, req UpdateCollectionRequest) (*entities.Collection, error)
	DeleteCollection(ctx context.Context, id string) (*entities.Collection, error)
	ReorderCollections(ctx context.Context, req ReorderRequest) error
	InitializeCollections(ctx context.Context) (*entities.Collection, error)
}

// SectionService interface for section operations
type SectionService interface {
	CreateSection(ctx context.Context, req CreateSectionRequest) (*entities.Section, error)
	UpdateSection(ctx context.Context, id string, req UpdateSectionRequest) (*entities.Section, error)
	DeleteSection(ctx context.Context, id string) (*entities.Section, error)
	ReorderSections(ctx context.Context, req ReorderRequest) error
}

// TaskService interface for task operations
type TaskService interface {
	GetTask(ctx context.Context, id string) (*entities.TaskDetail, error)
	CreateTask(ctx context.Context, req CreateTaskRequest) (*entities.Task, error)
	UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, id string) (*entities.Task, error)
	ReorderTasks(ctx context.Context, req ReorderRequest) error
}

// ViewService composes the computed Today and Upcoming collections.
type ViewService interface {
	Today(ctx context.Context) (*entities.ViewCollection, error)
	Upcoming(ctx context.Context) (*entities.ViewCollection, error)
	QuickPicks(ctx context.Context) []views.QuickPick
}

// CommentService interface for comment operations
type CommentService interface {
	CreateComment(ctx context.Context, req CreateCommentRequest) (*entities.Comment, error)
	UpdateComment(ctx context.Context, id string, req UpdateCommentRequest) (*entities.Comment, error)
	DeleteComment(ctx context.Context, id string) (*entities.Comment, error)
}

// ChecklistService interface for checklist item operations
type ChecklistService interface {
	CreateChecklistItem(ctx context.Context, req CreateChecklistItemRequest) (*entities.ChecklistItem, error)
	UpdateChecklistItem(ctx context.Context, id string, req UpdateChecklistItemRequest) (*entities.ChecklistItem, error)
	DeleteChecklistItem(ctx context.Context, id string) (*entities.ChecklistItem, error)
	ReorderChecklistItems(ctx context.Context, req ReorderRequest) error
}

// Request/Response Types

// Collection related types
type CreateCollectionRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type UpdateCollectionRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// Section related types
type CreateSectionRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	CollectionID string `json:"collection_id" validate:"required"`
}

type UpdateSectionRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// Task related types
type CreateTaskRequest struct {
	Text         string             `json:"text" validate:"required,max=500"`
	Description  *string            `json:"description" validate:"omitempty,max=5000"`
	DueDate      *time.Time         `json:"due_date"`
	Priority     *entities.Priority `json:"priority" validate:"omitempty,oneof=URGENT_AND_IMPORTANT URGENT IMPORTANT"`
	SectionID    string             `json:"section_id" validate:"required"`
	ParentTaskID *string            `json:"parent_task_id"`
}

// UpdateTaskRequest replaces every editable field of a task.
type UpdateTaskRequest struct {
	Text        string             `json:"text" validate:"required,max=500"`
	Description *string            `json:"description" validate:"omitempty,max=5000"`
	DueDate     *time.Time         `json:"due_date"`
	Priority    *entities.Priority `json:"priority" validate:"omitempty,oneof=URGENT_AND_IMPORTANT URGENT IMPORTANT"`
	Complete    bool               `json:"complete"`
	SectionID   string             `json:"section_id" validate:"required"`
}

// Comment related types
type CreateCommentRequest struct {
	Text   string     `json:"text" validate:"required,max=5000"`
	Posted *time.Time `json:"posted"`
	TaskID string     `json:"task_id" validate:"required"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

// Checklist related types
type CreateChecklistItemRequest struct {
	Text   string `json:"text" validate:"required,max=500"`
	TaskID string `json:"task_id" validate:"required"`
}

type UpdateChecklistItemRequest struct {
	Text     string `json:"text" validate:"required,max=500"`
	Complete bool   `json:"complete"`
}

// ReorderEntry is the wire form of one reorder item. Only the container field
// matching the reordered entity is read.
type ReorderEntry struct {
	ID           string  `json:"id" validate:"required"`
	Position     *int    `json:"position,omitempty" validate:"omitempty,min=0"`
	CollectionID *string `json:"collection_id,omitempty"`
	SectionID    *string `json:"section_id,omitempty"`
	TaskID       *string `json:"task_id,omitempty"`
}

// ReorderRequest is the desired order of a sibling set, first entry first.
type ReorderRequest struct {
	Items []ReorderEntry `json:"items" validate:"required,min=1,dive"`
}

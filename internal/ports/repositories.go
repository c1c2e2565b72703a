package ports

import (
	"context"

	"github.com/paratus/tasks/internal/domain/entities"
)

// CollectionRepository defines the interface for collection data operations
type CollectionRepository interface {
	// Create inserts the collection at the end of the list together with its
	// Uncategorized section, in one transaction.
	Create(ctx context.Context, collection *entities.Collection, uncategorized *entities.Section) error
	GetByID(ctx context.Context, id string) (*entities.Collection, error)
	GetByName(ctx context.Context, name string) (*entities.Collection, error)
	Update(ctx context.Context, collection *entities.Collection) error
	// Delete removes the collection (cascading) and renumbers the rest. It
	// returns the ids of the tasks removed with it.
	Delete(ctx context.Context, id string) (removedTasks []string, err error)
	List(ctx context.Context) ([]*entities.CollectionSummary, error)
	GetSummary(ctx context.Context, id string) (*entities.CollectionSummary, error)
	GetDetail(ctx context.Context, id string) (*entities.CollectionDetail, error)
	// EnsureInbox creates the Inbox at position 0 if it does not exist.
	EnsureInbox(ctx context.Context) (inbox *entities.Collection, created bool, err error)
	Reorder(ctx context.Context, items []ReorderItem) (ReorderResult, error)
}

// SectionRepository defines the interface for section data operations
type SectionRepository interface {
	Create(ctx context.Context, section *entities.Section) error
	GetByID(ctx context.Context, id string) (*entities.Section, error)
	ListByCollection(ctx context.Context, collectionID string) ([]*entities.Section, error)
	Update(ctx context.Context, section *entities.Section) error
	// Delete removes the section with its tasks and returns the task ids.
	Delete(ctx context.Context, id string) (removedTasks []string, err error)
	Reorder(ctx context.Context, items []ReorderItem) (ReorderResult, error)
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	// Create appends the task to its section, or to its parent's children
	// when ParentID is set.
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id string) (*entities.Task, error)
	// Update writes the editable fields. A changed SectionID moves the task
	// (and its children) to the end of the new section.
	Update(ctx context.Context, task *entities.Task) error
	// Delete removes the task and its sub-tasks and returns both ids.
	Delete(ctx context.Context, id string) (removed []string, err error)
	GetChildren(ctx context.Context, parentID string) ([]*entities.Task, error)
	// ListOpenWithDueDate returns every incomplete task that has a due date.
	ListOpenWithDueDate(ctx context.Context) ([]*entities.Task, error)
	Reorder(ctx context.Context, items []ReorderItem) (ReorderResult, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *entities.Comment) error
	GetByID(ctx context.Context, id string) (*entities.Comment, error)
	Update(ctx context.Context, comment *entities.Comment) error
	Delete(ctx context.Context, id string) error
	ListByTask(ctx context.Context, taskID string) ([]*entities.Comment, error)
}

// ChecklistItemRepository defines the interface for checklist item data operations
type ChecklistItemRepository interface {
	Create(ctx context.Context, item *entities.ChecklistItem) error
	GetByID(ctx context.Context, id string) (*entities.ChecklistItem, error)
	Update(ctx context.Context, item *entities.ChecklistItem) error
	Delete(ctx context.Context, id string) error
	ListByTask(ctx context.Context, taskID string) ([]*entities.ChecklistItem, error)
	Reorder(ctx context.Context, items []ReorderItem) (ReorderResult, error)
}

// ReorderItem is one entry of a reorder batch. Position, when supplied, must
// equal the entry's index. Container names the new parent (collection for
// sections, section for tasks, task for checklist items) for a cross-container
// move; collections have no container.
type ReorderItem struct {
	ID        string
	Position  *int
	Container *string
}

// ReorderResult reports which containers a reorder touched. Moved lists the
// ids whose container changed, including sub-tasks carried by a moved task.
type ReorderResult struct {
	Target  string
	Sources []string
	Moved   []string
}

// Containers returns Target followed by every distinct source container.
func (r ReorderResult) Containers() []string {
	out := make([]string, 0, len(r.Sources)+1)
	if r.Target != "" {
		out = append(out, r.Target)
	}
	for _, s := range r.Sources {
		if s != r.Target {
			out = append(out, s)
		}
	}
	return out
}

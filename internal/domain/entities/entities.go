package entities

import (
	"errors"
	"strings"
	"time"
)

// Common errors
var (
	ErrCollectionNotFound    = errors.New("collection not found")
	ErrSectionNotFound       = errors.New("section not found")
	ErrTaskNotFound          = errors.New("task not found")
	ErrCommentNotFound       = errors.New("comment not found")
	ErrChecklistItemNotFound = errors.New("checklist item not found")

	ErrValidation       = errors.New("validation failed")
	ErrReservedName     = errors.New("name is reserved")
	ErrProtectedSection = errors.New("section is protected")
	ErrProtectedInbox   = errors.New("inbox collection is protected")
	ErrComputedSection  = errors.New("computed sections cannot be persisted")
	ErrNestingTooDeep   = errors.New("sub-tasks cannot have sub-tasks")
	ErrMixedContainers  = errors.New("reorder batch spans more than one container")
	ErrDuplicateID      = errors.New("reorder batch contains duplicate ids")
	ErrPositionMismatch = errors.New("position does not match index in batch")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Reserved names
const (
	InboxName         = "Inbox"
	TodayName         = "Today"
	UpcomingName      = "Upcoming"
	UncategorizedName = "Uncategorized"
)

// IsReservedCollectionName reports whether name collides with Inbox or a computed view.
func IsReservedCollectionName(name string) bool {
	switch strings.TrimSpace(name) {
	case InboxName, TodayName, UpcomingName:
		return true
	}
	return false
}

type Priority string

const (
	PriorityUrgentAndImportant Priority = "URGENT_AND_IMPORTANT"
	PriorityUrgent             Priority = "URGENT"
	PriorityImportant          Priority = "IMPORTANT"
)

// Valid reports whether p is one of the known priority options.
func (p Priority) Valid() bool {
	switch p {
	case PriorityUrgentAndImportant, PriorityUrgent, PriorityImportant:
		return true
	}
	return false
}

// Collection is a top-level task list.
type Collection struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsInbox reports whether c is the persisted Inbox collection.
func (c *Collection) IsInbox() bool {
	return c.Name == InboxName
}

// CollectionSummary is the list shape returned by collection.readAll and collection.inbox.
type CollectionSummary struct {
	Collection
	TaskCount int              `json:"task_count" db:"-"`
	Sections  []SectionSummary `json:"sections" db:"-"`
}

// SectionSummary is a section with its open top-level task count.
type SectionSummary struct {
	Section
	TaskCount int `json:"task_count" db:"task_count"`
}

// CollectionDetail is the shape returned by collection.readOne.
type CollectionDetail struct {
	Collection
	Sections []*SectionDetail `json:"sections" db:"-"`
}

// Section is a named, ordered grouping of tasks within a collection.
type Section struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Position     int       `json:"position" db:"position"`
	CollectionID string    `json:"collection_id" db:"collection_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// IsUncategorized reports whether s is its collection's mandatory default section.
func (s *Section) IsUncategorized() bool {
	return s.Name == UncategorizedName
}

// SectionDetail carries a section's open top-level tasks, children attached.
type SectionDetail struct {
	Section
	TaskCount int     `json:"task_count" db:"task_count"`
	Tasks     []*Task `json:"tasks" db:"-"`
}

// Task is a to-do item. A task with ParentID set is a sub-task and is listed
// under its parent rather than directly in its section.
type Task struct {
	ID          string     `json:"id" db:"id"`
	Text        string     `json:"text" db:"text"`
	Description *string    `json:"description" db:"description"`
	DueDate     *time.Time `json:"due_date" db:"due_date"`
	Priority    *Priority  `json:"priority" db:"priority"`
	Complete    bool       `json:"complete" db:"complete"`
	Position    int        `json:"position" db:"position"`
	SectionID   string     `json:"section_id" db:"section_id"`
	ParentID    *string    `json:"parent_id" db:"parent_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	Children []*Task `json:"children,omitempty" db:"-"`
}

// IsSubtask reports whether t has a parent task.
func (t *Task) IsSubtask() bool {
	return t.ParentID != nil
}

// TaskDetail is the shape returned by task.readOne.
type TaskDetail struct {
	Task
	Comments       []*Comment       `json:"comments" db:"-"`
	ChecklistItems []*ChecklistItem `json:"checklist_items" db:"-"`
}

// Comment is a note attached to a task.
type Comment struct {
	ID     string    `json:"id" db:"id"`
	Text   string    `json:"text" db:"text"`
	Posted time.Time `json:"posted" db:"posted"`
	TaskID string    `json:"task_id" db:"task_id"`
}

// ChecklistItem is an ordered check box attached to a task.
type ChecklistItem struct {
	ID       string `json:"id" db:"id"`
	Text     string `json:"text" db:"text"`
	Complete bool   `json:"complete" db:"complete"`
	Position int    `json:"position" db:"position"`
	TaskID   string `json:"task_id" db:"task_id"`
}

// AttachChildren groups sub-tasks under their parents using a parent-id index
// built from tasks and returns the top-level tasks in their original order.
// Children whose parent is not in tasks are dropped.
func AttachChildren(tasks []*Task) []*Task {
	byParent := make(map[string][]*Task)
	var roots []*Task
	for _, t := range tasks {
		if t.ParentID == nil {
			t.Children = nil
			roots = append(roots, t)
			continue
		}
		byParent[*t.ParentID] = append(byParent[*t.ParentID], t)
	}
	for _, r := range roots {
		r.Children = byParent[r.ID]
	}
	return roots
}

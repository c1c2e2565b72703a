package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/paratus/tasks/internal/domain/entities"
	"github.com/paratus/tasks/internal/infrastructure/database"
	"github.com/paratus/tasks/internal/ports"
)

const taskColumns = `id, text, description, due_date, priority, complete, position, section_id, parent_id, created_at, updated_at`

// TaskRepository implements ports.TaskRepository
type TaskRepository struct {
	db *database.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *database.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func parentKey(parentID *string) sql.NullString {
	if parentID == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *parentID, Valid: true}
}

func getTask(ctx context.Context, q queryer, id string) (*entities.Task, error) {
	var t entities.Task
	err := getOne(ctx, q, &t, entities.ErrTaskNotFound, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &t, nil
}

func sectionExists(ctx context.Context, q queryer, id string) error {
	var n int
	if err := q.GetContext(ctx, &n, q.Rebind(`SELECT COUNT(*) FROM sections WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to check section: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", entities.ErrSectionNotFound, id)
	}
	return nil
}

// Create appends the task to its section. A sub-task is appended to its
// parent's children and always lives in the parent's section.
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) error {
	return r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if task.ParentID != nil {
			parent, err := getTask(ctx, tx, *task.ParentID)
			if err != nil {
				return err
			}
			if parent.IsSubtask() {
				return entities.ErrNestingTooDeep
			}
			task.SectionID = parent.SectionID
		} else if err := sectionExists(ctx, tx, task.SectionID); err != nil {
			return err
		}

		position, err := nextPosition(ctx, tx, taskFamily, task.SectionID, parentKey(task.ParentID))
		if err != nil {
			return err
		}

		at := now()
		if task.ID == "" {
			task.ID = uuid.NewString()
		}
		task.Position = position
		task.DueDate = utc(task.DueDate)
		task.CreatedAt, task.UpdatedAt = at, at

		_, err = tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO tasks (id, text, description, due_date, priority, complete, position, section_id, parent_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			task.ID, task.Text, task.Description, task.DueDate, task.Priority, task.Complete,
			task.Position, task.SectionID, task.ParentID, task.CreatedAt, task.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entities.Task, error) {
	return getTask(ctx, r.db.DB, id)
}

// Update writes the editable fields of a task. Moving a top-level task to
// another section appends it there, brings its sub-tasks along and closes
// the gap it left.
func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) error {
	return r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		current, err := getTask(ctx, tx, task.ID)
		if err != nil {
			return err
		}

		at := now()
		task.ParentID = current.ParentID
		task.Position = current.Position
		task.CreatedAt = current.CreatedAt
		task.UpdatedAt = at
		task.DueDate = utc(task.DueDate)

		moved := task.SectionID != current.SectionID
		if moved {
			if current.IsSubtask() {
				return fmt.Errorf("%w: sub-tasks stay in their parent's section", entities.ErrValidation)
			}
			if err := sectionExists(ctx, tx, task.SectionID); err != nil {
				return err
			}
			if task.Position, err = nextPosition(ctx, tx, taskFamily, task.SectionID, sql.NullString{}); err != nil {
				return err
			}
		}

		err = execOne(ctx, tx, entities.ErrTaskNotFound, `
			UPDATE tasks
			SET text = ?, description = ?, due_date = ?, priority = ?, complete = ?,
				position = ?, section_id = ?, updated_at = ?
			WHERE id = ?`,
			task.Text, task.Description, task.DueDate, task.Priority, task.Complete,
			task.Position, task.SectionID, task.UpdatedAt, task.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		if !moved {
			return nil
		}
		row := orderRow{ID: task.ID}
		if _, err := taskFamily.follow(ctx, tx, row, task.SectionID, at); err != nil {
			return err
		}
		return renumber(ctx, tx, taskFamily, current.SectionID, sql.NullString{}, at)
	})
}

// Delete deletes a task with its sub-tasks, comments and checklist items and
// renumbers its siblings
func (r *TaskRepository) Delete(ctx context.Context, id string) ([]string, error) {
	var removed []string
	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		t, err := getTask(ctx, tx, id)
		if err != nil {
			return err
		}
		if removed, err = taskIDs(ctx, tx, `WHERE id = ? OR parent_id = ?`, id, id); err != nil {
			return err
		}
		if err := execOne(ctx, tx, entities.ErrTaskNotFound, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return renumber(ctx, tx, taskFamily, t.SectionID, parentKey(t.ParentID), now())
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// taskIDs lists the ids of the tasks matching where, for reporting what a
// cascading delete removes.
func taskIDs(ctx context.Context, q queryer, where string, args ...interface{}) ([]string, error) {
	var ids []string
	if err := q.SelectContext(ctx, &ids, q.Rebind(`SELECT tasks.id FROM tasks `+where+` ORDER BY tasks.id`), args...); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return ids, nil
}

// GetChildren returns a task's sub-tasks by position
func (r *TaskRepository) GetChildren(ctx context.Context, parentID string) ([]*entities.Task, error) {
	var tasks []*entities.Task
	err := r.db.DB.SelectContext(ctx, &tasks, r.db.DB.Rebind(
		`SELECT `+taskColumns+` FROM tasks WHERE parent_id = ? ORDER BY position, id`), parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sub-tasks: %w", err)
	}
	return tasks, nil
}

// ListOpenWithDueDate returns every incomplete task with a due date,
// sub-tasks included
func (r *TaskRepository) ListOpenWithDueDate(ctx context.Context) ([]*entities.Task, error) {
	var tasks []*entities.Task
	err := r.db.DB.SelectContext(ctx, &tasks, r.db.DB.Rebind(
		`SELECT `+taskColumns+` FROM tasks WHERE complete = ? AND due_date IS NOT NULL ORDER BY text, id`), false)
	if err != nil {
		return nil, fmt.Errorf("failed to list dated tasks: %w", err)
	}
	return tasks, nil
}

// Reorder applies a task reorder batch atomically
func (r *TaskRepository) Reorder(ctx context.Context, items []ports.ReorderItem) (ports.ReorderResult, error) {
	var result ports.ReorderResult
	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var err error
		result, err = reorder(ctx, tx, taskFamily, items, now())
		return err
	})
	return result, err
}

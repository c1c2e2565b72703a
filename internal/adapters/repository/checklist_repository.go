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

const checklistColumns = `id, text, complete, position, task_id`

// ChecklistItemRepository implements ports.ChecklistItemRepository
type ChecklistItemRepository struct {
	db *database.DB
}

// NewChecklistItemRepository creates a new checklist item repository
func NewChecklistItemRepository(db *database.DB) *ChecklistItemRepository {
	return &ChecklistItemRepository{db: db}
}

// Create appends an item to its task's checklist
func (r *ChecklistItemRepository) Create(ctx context.Context, item *entities.ChecklistItem) error {
	return r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := getTask(ctx, tx, item.TaskID); err != nil {
			return err
		}
		position, err := nextPosition(ctx, tx, checklistFamily, item.TaskID, sql.NullString{})
		if err != nil {
			return err
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.Position = position

		_, err = tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO checklist_items (id, text, complete, position, task_id)
			VALUES (?, ?, ?, ?, ?)`),
			item.ID, item.Text, item.Complete, item.Position, item.TaskID,
		)
		if err != nil {
			return fmt.Errorf("failed to create checklist item: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a checklist item by ID
func (r *ChecklistItemRepository) GetByID(ctx context.Context, id string) (*entities.ChecklistItem, error) {
	var item entities.ChecklistItem
	err := getOne(ctx, r.db.DB, &item, entities.ErrChecklistItemNotFound,
		`SELECT `+checklistColumns+` FROM checklist_items WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist item: %w", err)
	}
	return &item, nil
}

// Update edits text and completion
func (r *ChecklistItemRepository) Update(ctx context.Context, item *entities.ChecklistItem) error {
	err := execOne(ctx, r.db.DB, entities.ErrChecklistItemNotFound,
		`UPDATE checklist_items SET text = ?, complete = ? WHERE id = ?`, item.Text, item.Complete, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update checklist item: %w", err)
	}
	return nil
}

// Delete deletes an item and renumbers the rest of the checklist
func (r *ChecklistItemRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var item entities.ChecklistItem
		err := getOne(ctx, tx, &item, entities.ErrChecklistItemNotFound,
			`SELECT `+checklistColumns+` FROM checklist_items WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to get checklist item: %w", err)
		}
		if err := execOne(ctx, tx, entities.ErrChecklistItemNotFound, `DELETE FROM checklist_items WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete checklist item: %w", err)
		}
		return renumber(ctx, tx, checklistFamily, item.TaskID, sql.NullString{}, now())
	})
}

// ListByTask returns a task's checklist by position
func (r *ChecklistItemRepository) ListByTask(ctx context.Context, taskID string) ([]*entities.ChecklistItem, error) {
	var items []*entities.ChecklistItem
	err := r.db.DB.SelectContext(ctx, &items, r.db.DB.Rebind(
		`SELECT `+checklistColumns+` FROM checklist_items WHERE task_id = ? ORDER BY position, id`), taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	return items, nil
}

// Reorder applies a checklist reorder batch atomically
func (r *ChecklistItemRepository) Reorder(ctx context.Context, items []ports.ReorderItem) (ports.ReorderResult, error) {
	var result ports.ReorderResult
	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var err error
		result, err = reorder(ctx, tx, checklistFamily, items, now())
		return err
	})
	return result, err
}

package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/paratus/tasks/internal/domain/entities"
	"github.com/paratus/tasks/internal/infrastructure/database"
)

const commentColumns = `id, text, posted, task_id`

// CommentRepository implements ports.CommentRepository
type CommentRepository struct {
	db *database.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *database.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create adds a comment to a task
func (r *CommentRepository) Create(ctx context.Context, comment *entities.Comment) error {
	return r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := getTask(ctx, tx, comment.TaskID); err != nil {
			return err
		}
		if comment.ID == "" {
			comment.ID = uuid.NewString()
		}
		if comment.Posted.IsZero() {
			comment.Posted = now()
		}
		comment.Posted = comment.Posted.UTC()

		_, err := tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO comments (id, text, posted, task_id)
			VALUES (?, ?, ?, ?)`),
			comment.ID, comment.Text, comment.Posted, comment.TaskID,
		)
		if err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a comment by ID
func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entities.Comment, error) {
	var c entities.Comment
	err := getOne(ctx, r.db.DB, &c, entities.ErrCommentNotFound,
		`SELECT `+commentColumns+` FROM comments WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &c, nil
}

// Update edits the comment text
func (r *CommentRepository) Update(ctx context.Context, comment *entities.Comment) error {
	err := execOne(ctx, r.db.DB, entities.ErrCommentNotFound,
		`UPDATE comments SET text = ? WHERE id = ?`, comment.Text, comment.ID)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

// Delete deletes a comment
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	if err := execOne(ctx, r.db.DB, entities.ErrCommentNotFound, `DELETE FROM comments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// ListByTask returns a task's comments, newest first
func (r *CommentRepository) ListByTask(ctx context.Context, taskID string) ([]*entities.Comment, error) {
	var comments []*entities.Comment
	err := r.db.DB.SelectContext(ctx, &comments, r.db.DB.Rebind(
		`SELECT `+commentColumns+` FROM comments WHERE task_id = ? ORDER BY posted DESC, id`), taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

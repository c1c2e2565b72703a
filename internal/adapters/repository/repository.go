package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/paratus/tasks/internal/infrastructure/database"
)

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx, so helpers can run
// inside or outside a transaction.
type queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Repositories bundles every repository over one database handle
type Repositories struct {
	Collections    *CollectionRepository
	Sections       *SectionRepository
	Tasks          *TaskRepository
	Comments       *CommentRepository
	ChecklistItems *ChecklistItemRepository
}

// New creates all repositories
func New(db *database.DB) *Repositories {
	return &Repositories{
		Collections:    NewCollectionRepository(db),
		Sections:       NewSectionRepository(db),
		Tasks:          NewTaskRepository(db),
		Comments:       NewCommentRepository(db),
		ChecklistItems: NewChecklistItemRepository(db),
	}
}

// now is the timestamp written to created_at/updated_at columns.
func now() time.Time {
	return time.Now().UTC()
}

// utc normalizes an optional timestamp before it is stored.
func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func getOne(ctx context.Context, q queryer, dest interface{}, notFound error, query string, args ...interface{}) error {
	err := q.GetContext(ctx, dest, q.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return err
}

// execOne runs a single-row write and reports notFound when nothing matched.
func execOne(ctx context.Context, q queryer, notFound error, query string, args ...interface{}) error {
	res, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

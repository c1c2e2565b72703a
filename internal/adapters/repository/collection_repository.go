package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/paratus/tasks/internal/domain/entities"
	"github.com/paratus/tasks/internal/infrastructure/database"
	"github.com/paratus/tasks/internal/ports"
)

const collectionColumns = `id, name, position, created_at, updated_at`

// CollectionRepository implements ports.CollectionRepository
type CollectionRepository struct {
	db *database.DB
}

// NewCollectionRepository creates a new collection repository
func NewCollectionRepository(db *database.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// Create inserts the collection at the end of the list with its Uncategorized section
func (r *CollectionRepository) Create(ctx context.Context, collection *entities.Collection, uncategorized *entities.Section) error {
	return r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		position, err := nextPosition(ctx, tx, collectionFamily, "", sql.NullString{})
		if err != nil {
			return err
		}
		collection.Position = position
		return insertCollection(ctx, tx, collection, uncategorized)
	})
}

func insertCollection(ctx context.Context, q queryer, collection *entities.Collection, uncategorized *entities.Section) error {
	at := now()
	if collection.ID == "" {
		collection.ID = uuid.NewString()
	}
	collection.CreatedAt, collection.UpdatedAt = at, at

	_, err := q.ExecContext(ctx, q.Rebind(`
		INSERT INTO collections (id, name, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`),
		collection.ID, collection.Name, collection.Position, collection.CreatedAt, collection.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	uncategorized.CollectionID = collection.ID
	uncategorized.Position = 0
	return insertSection(ctx, q, uncategorized)
}

// GetByID retrieves a collection by ID
func (r *CollectionRepository) GetByID(ctx context.Context, id string) (*entities.Collection, error) {
	var c entities.Collection
	err := getOne(ctx, r.db.DB, &c, entities.ErrCollectionNotFound,
		`SELECT `+collectionColumns+` FROM collections WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &c, nil
}

// GetByName retrieves the first collection with the given name
func (r *CollectionRepository) GetByName(ctx context.Context, name string) (*entities.Collection, error) {
	var c entities.Collection
	err := getOne(ctx, r.db.DB, &c, entities.ErrCollectionNotFound,
		`SELECT `+collectionColumns+` FROM collections WHERE name = ? ORDER BY position LIMIT 1`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &c, nil
}

// Update renames a collection
func (r *CollectionRepository) Update(ctx context.Context, collection *entities.Collection) error {
	collection.UpdatedAt = now()
	err := execOne(ctx, r.db.DB, entities.ErrCollectionNotFound,
		`UPDATE collections SET name = ?, updated_at = ? WHERE id = ?`,
		collection.Name, collection.UpdatedAt, collection.ID)
	if err != nil {
		return fmt.Errorf("failed to update collection: %w", err)
	}
	return nil
}

// Delete deletes a collection; sections, tasks, comments and checklist items
// go with it through ON DELETE CASCADE.
func (r *CollectionRepository) Delete(ctx context.Context, id string) ([]string, error) {
	var removed []string
	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var err error
		removed, err = taskIDs(ctx, tx,
			`JOIN sections ON sections.id = tasks.section_id WHERE sections.collection_id = ?`, id)
		if err != nil {
			return err
		}
		if err := execOne(ctx, tx, entities.ErrCollectionNotFound, `DELETE FROM collections WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete collection: %w", err)
		}
		return renumber(ctx, tx, collectionFamily, "", sql.NullString{}, now())
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// List returns every collection by position with section summaries and the
// number of open top-level tasks.
func (r *CollectionRepository) List(ctx context.Context) ([]*entities.CollectionSummary, error) {
	var collections []*entities.CollectionSummary
	err := r.db.DB.SelectContext(ctx, &collections,
		`SELECT `+collectionColumns+` FROM collections ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	sections, err := r.sectionSummaries(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, c := range collections {
		attachSummaries(c, sections[c.ID])
	}
	return collections, nil
}

// GetSummary returns one collection in the list shape
func (r *CollectionRepository) GetSummary(ctx context.Context, id string) (*entities.CollectionSummary, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sections, err := r.sectionSummaries(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := &entities.CollectionSummary{Collection: *c}
	attachSummaries(summary, sections[id])
	return summary, nil
}

func attachSummaries(c *entities.CollectionSummary, sections []entities.SectionSummary) {
	c.Sections = sections
	if c.Sections == nil {
		c.Sections = []entities.SectionSummary{}
	}
	c.TaskCount = 0
	for _, s := range c.Sections {
		c.TaskCount += s.TaskCount
	}
}

// sectionSummaries groups section summaries by collection. An empty
// collectionID loads every collection.
func (r *CollectionRepository) sectionSummaries(ctx context.Context, collectionID string) (map[string][]entities.SectionSummary, error) {
	query := `
		SELECT s.id, s.name, s.position, s.collection_id, s.created_at, s.updated_at,
			(SELECT COUNT(*) FROM tasks t
			 WHERE t.section_id = s.id AND t.parent_id IS NULL AND t.complete = ?) AS task_count
		FROM sections s`
	args := []interface{}{false}
	if collectionID != "" {
		query += ` WHERE s.collection_id = ?`
		args = append(args, collectionID)
	}
	query += ` ORDER BY s.collection_id, s.position, s.id`

	var rows []entities.SectionSummary
	if err := r.db.DB.SelectContext(ctx, &rows, r.db.DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	out := make(map[string][]entities.SectionSummary)
	for _, s := range rows {
		out[s.CollectionID] = append(out[s.CollectionID], s)
	}
	return out, nil
}

// GetDetail returns a collection with its sections by position, each holding
// its open top-level tasks by position with their sub-tasks attached.
func (r *CollectionRepository) GetDetail(ctx context.Context, id string) (*entities.CollectionDetail, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var sections []*entities.SectionDetail
	err = r.db.DB.SelectContext(ctx, &sections, r.db.DB.Rebind(`
		SELECT s.id, s.name, s.position, s.collection_id, s.created_at, s.updated_at,
			(SELECT COUNT(*) FROM tasks t
			 WHERE t.section_id = s.id AND t.parent_id IS NULL AND t.complete = ?) AS task_count
		FROM sections s
		WHERE s.collection_id = ?
		ORDER BY s.position, s.id`), false, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}

	// Open top-level tasks plus every sub-task of them; completed sub-tasks
	// stay visible under an open parent.
	var tasks []*entities.Task
	err = r.db.DB.SelectContext(ctx, &tasks, r.db.DB.Rebind(`
		SELECT `+taskColumns+` FROM tasks
		WHERE section_id IN (SELECT id FROM sections WHERE collection_id = ?)
		  AND (complete = ? OR parent_id IS NOT NULL)
		ORDER BY position, id`), id, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	bySection := make(map[string][]*entities.Task)
	for _, t := range tasks {
		bySection[t.SectionID] = append(bySection[t.SectionID], t)
	}
	for _, s := range sections {
		s.Tasks = entities.AttachChildren(bySection[s.ID])
		if s.Tasks == nil {
			s.Tasks = []*entities.Task{}
		}
	}
	if sections == nil {
		sections = []*entities.SectionDetail{}
	}

	return &entities.CollectionDetail{Collection: *c, Sections: sections}, nil
}

// EnsureInbox creates the Inbox at position 0, shifting existing collections
// down, when it is missing.
func (r *CollectionRepository) EnsureInbox(ctx context.Context) (*entities.Collection, bool, error) {
	var (
		inbox   entities.Collection
		created bool
	)
	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		err := getOne(ctx, tx, &inbox, entities.ErrCollectionNotFound,
			`SELECT `+collectionColumns+` FROM collections WHERE name = ?`, entities.InboxName)
		if err == nil {
			return nil
		}
		if !errors.Is(err, entities.ErrCollectionNotFound) {
			return fmt.Errorf("failed to look up inbox: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `UPDATE collections SET position = position + 1`); err != nil {
			return fmt.Errorf("failed to shift collections: %w", err)
		}
		inbox = entities.Collection{Name: entities.InboxName, Position: 0}
		created = true
		return insertCollection(ctx, tx, &inbox, &entities.Section{Name: entities.UncategorizedName})
	})
	if err != nil {
		return nil, false, err
	}
	return &inbox, created, nil
}

// Reorder applies a collection reorder batch atomically
func (r *CollectionRepository) Reorder(ctx context.Context, items []ports.ReorderItem) (ports.ReorderResult, error) {
	var result ports.ReorderResult
	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var err error
		result, err = reorder(ctx, tx, collectionFamily, items, now())
		return err
	})
	return result, err
}

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

const sectionColumns = `id, name, position, collection_id, created_at, updated_at`

// SectionRepository implements ports.SectionRepository
type SectionRepository struct {
	db *database.DB
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(db *database.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

// Create appends a section to its collection
func (r *SectionRepository) Create(ctx context.Context, section *entities.Section) error {
	return r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var exists int
		if err := tx.GetContext(ctx, &exists, tx.Rebind(`SELECT COUNT(*) FROM collections WHERE id = ?`), section.CollectionID); err != nil {
			return fmt.Errorf("failed to check collection: %w", err)
		}
		if exists == 0 {
			return entities.ErrCollectionNotFound
		}

		position, err := nextPosition(ctx, tx, sectionFamily, section.CollectionID, sql.NullString{})
		if err != nil {
			return err
		}
		section.Position = position
		return insertSection(ctx, tx, section)
	})
}

func insertSection(ctx context.Context, q queryer, section *entities.Section) error {
	at := now()
	if section.ID == "" {
		section.ID = uuid.NewString()
	}
	section.CreatedAt, section.UpdatedAt = at, at

	_, err := q.ExecContext(ctx, q.Rebind(`
		INSERT INTO sections (id, name, position, collection_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`),
		section.ID, section.Name, section.Position, section.CollectionID, section.CreatedAt, section.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create section: %w", err)
	}
	return nil
}

// GetByID retrieves a section by ID
func (r *SectionRepository) GetByID(ctx context.Context, id string) (*entities.Section, error) {
	var s entities.Section
	err := getOne(ctx, r.db.DB, &s, entities.ErrSectionNotFound,
		`SELECT `+sectionColumns+` FROM sections WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	return &s, nil
}

// ListByCollection returns a collection's sections by position
func (r *SectionRepository) ListByCollection(ctx context.Context, collectionID string) ([]*entities.Section, error) {
	var sections []*entities.Section
	err := r.db.DB.SelectContext(ctx, &sections, r.db.DB.Rebind(
		`SELECT `+sectionColumns+` FROM sections WHERE collection_id = ? ORDER BY position, id`), collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return sections, nil
}

// Update renames a section
func (r *SectionRepository) Update(ctx context.Context, section *entities.Section) error {
	section.UpdatedAt = now()
	err := execOne(ctx, r.db.DB, entities.ErrSectionNotFound,
		`UPDATE sections SET name = ?, updated_at = ? WHERE id = ?`,
		section.Name, section.UpdatedAt, section.ID)
	if err != nil {
		return fmt.Errorf("failed to update section: %w", err)
	}
	return nil
}

// Delete deletes a section with its tasks and renumbers its siblings
func (r *SectionRepository) Delete(ctx context.Context, id string) ([]string, error) {
	var removed []string
	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var s entities.Section
		err := getOne(ctx, tx, &s, entities.ErrSectionNotFound,
			`SELECT `+sectionColumns+` FROM sections WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to get section: %w", err)
		}
		if removed, err = taskIDs(ctx, tx, `WHERE section_id = ?`, id); err != nil {
			return err
		}
		if err := execOne(ctx, tx, entities.ErrSectionNotFound, `DELETE FROM sections WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete section: %w", err)
		}
		return renumber(ctx, tx, sectionFamily, s.CollectionID, sql.NullString{}, now())
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// Reorder applies a section reorder batch atomically
func (r *SectionRepository) Reorder(ctx context.Context, items []ports.ReorderItem) (ports.ReorderResult, error) {
	var result ports.ReorderResult
	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var err error
		result, err = reorder(ctx, tx, sectionFamily, items, now())
		return err
	})
	return result, err
}

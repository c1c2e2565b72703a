package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/paratus/tasks/internal/domain/entities"
	"github.com/paratus/tasks/internal/ports"
)

// family describes one kind of ordered sibling set. Siblings share the value
// of container (if any) and of partition (if any).
type family struct {
	name           string
	table          string
	label          string
	container      string
	containerTable string
	partition      string
	timestamps     bool
	// computedTargets rejects computed bucket keys as a container.
	computedTargets   bool
	notFound          error
	containerNotFound error

	// guard vetoes moving row into target.
	guard func(row orderRow, target string) error
	// follow runs after row has moved into target and returns the ids of any
	// rows it carried along.
	follow func(ctx context.Context, q queryer, row orderRow, target string, at time.Time) ([]string, error)
}

var (
	collectionFamily = family{
		name:       "collections",
		table:      "collections",
		label:      "name",
		timestamps: true,
		notFound:   entities.ErrCollectionNotFound,
	}

	sectionFamily = family{
		name:              "sections",
		table:             "sections",
		label:             "name",
		container:         "collection_id",
		containerTable:    "collections",
		timestamps:        true,
		notFound:          entities.ErrSectionNotFound,
		containerNotFound: entities.ErrCollectionNotFound,
		guard: func(row orderRow, _ string) error {
			if row.Label == entities.UncategorizedName {
				return fmt.Errorf("%w: Uncategorized cannot leave its collection", entities.ErrProtectedSection)
			}
			return nil
		},
	}

	taskFamily = family{
		name:              "tasks",
		table:             "tasks",
		label:             "text",
		container:         "section_id",
		containerTable:    "sections",
		partition:         "parent_id",
		timestamps:        true,
		computedTargets:   true,
		notFound:          entities.ErrTaskNotFound,
		containerNotFound: entities.ErrSectionNotFound,
		guard: func(row orderRow, _ string) error {
			if row.Partition.Valid {
				return fmt.Errorf("%w: sub-tasks stay in their parent's section", entities.ErrValidation)
			}
			return nil
		},
		follow: func(ctx context.Context, q queryer, row orderRow, target string, at time.Time) ([]string, error) {
			var children []string
			err := q.SelectContext(ctx, &children, q.Rebind(`SELECT id FROM tasks WHERE parent_id = ? ORDER BY position, id`+lockClause(q)), row.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to load sub-tasks: %w", err)
			}
			if len(children) == 0 {
				return nil, nil
			}
			_, err = q.ExecContext(ctx, q.Rebind(`UPDATE tasks SET section_id = ?, updated_at = ? WHERE parent_id = ?`), target, at, row.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to move sub-tasks: %w", err)
			}
			return children, nil
		},
	}

	checklistFamily = family{
		name:              "checklist_items",
		table:             "checklist_items",
		label:             "text",
		container:         "task_id",
		containerTable:    "tasks",
		notFound:          entities.ErrChecklistItemNotFound,
		containerNotFound: entities.ErrTaskNotFound,
	}
)

// orderRow is the slice of an entity the position engine needs.
type orderRow struct {
	ID        string         `db:"id"`
	Container sql.NullString `db:"container"`
	Partition sql.NullString `db:"part"`
	Label     string         `db:"label"`
	Position  int            `db:"position"`
}

func (f family) columns() string {
	container, part := "''", "NULL"
	if f.container != "" {
		container = f.container
	}
	if f.partition != "" {
		part = f.partition
	}
	return fmt.Sprintf("id, %s AS container, %s AS part, %s AS label, position", container, part, f.label)
}

// where builds the sibling filter for one container/partition pair.
func (f family) where(container string, part sql.NullString) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	if f.container != "" {
		conds = append(conds, f.container+" = ?")
		args = append(args, container)
	}
	if f.partition != "" {
		if part.Valid {
			conds = append(conds, f.partition+" = ?")
			args = append(args, part.String)
		} else {
			conds = append(conds, f.partition+" IS NULL")
		}
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// nextPosition returns the position a new sibling appended to the set gets.
func nextPosition(ctx context.Context, q queryer, f family, container string, part sql.NullString) (int, error) {
	where, args := f.where(container, part)
	var count int
	if err := q.GetContext(ctx, &count, q.Rebind("SELECT COUNT(*) FROM "+f.table+where), args...); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", f.name, err)
	}
	return count, nil
}

// forUpdate returns the row-locking suffix for a SELECT. Postgres runs at
// READ COMMITTED, so rows a transaction is about to renumber are locked to keep
// concurrent reorders from working on a stale order. SQLite needs no clause:
// its pool has a single connection.
func forUpdate(driver string, inTx bool) string {
	if inTx && driver == "postgres" {
		return " FOR UPDATE"
	}
	return ""
}

func lockClause(q queryer) string {
	_, inTx := q.(*sqlx.Tx)
	return forUpdate(q.DriverName(), inTx)
}

func siblings(ctx context.Context, q queryer, f family, container string, part sql.NullString) ([]orderRow, error) {
	where, args := f.where(container, part)
	query := "SELECT " + f.columns() + " FROM " + f.table + where + " ORDER BY position, id" + lockClause(q)
	var rows []orderRow
	if err := q.SelectContext(ctx, &rows, q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", f.name, err)
	}
	return rows, nil
}

// setPosition writes a position, and the container when moved is set.
func setPosition(ctx context.Context, q queryer, f family, id string, position int, moved *string, at time.Time) error {
	sets := []string{"position = ?"}
	args := []interface{}{position}
	if moved != nil {
		sets = append(sets, f.container+" = ?")
		args = append(args, *moved)
	}
	if f.timestamps {
		sets = append(sets, "updated_at = ?")
		args = append(args, at)
	}
	args = append(args, id)
	query := "UPDATE " + f.table + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if err := execOne(ctx, q, f.notFound, query, args...); err != nil {
		return fmt.Errorf("failed to position %s %s: %w", f.name, id, err)
	}
	return nil
}

// renumber closes gaps in a sibling set, keeping the current order.
func renumber(ctx context.Context, q queryer, f family, container string, part sql.NullString, at time.Time) error {
	rows, err := siblings(ctx, q, f, container, part)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if row.Position == i {
			continue
		}
		if err := setPosition(ctx, q, f, row.ID, i, nil, at); err != nil {
			return err
		}
	}
	return nil
}

// reorder assigns position = index to each item and moves items whose
// container differs from the batch target. Siblings in the target that the
// batch does not name keep their relative order after it, and every container
// an item left is renumbered. It must run inside a transaction.
func reorder(ctx context.Context, tx *sqlx.Tx, f family, items []ports.ReorderItem, at time.Time) (ports.ReorderResult, error) {
	var result ports.ReorderResult
	if len(items) == 0 {
		return result, fmt.Errorf("%w: reorder batch is empty", entities.ErrValidation)
	}

	ids := make([]string, len(items))
	inBatch := make(map[string]struct{}, len(items))
	for i, it := range items {
		if _, dup := inBatch[it.ID]; dup {
			return result, fmt.Errorf("%w: %s", entities.ErrDuplicateID, it.ID)
		}
		if it.Position != nil && *it.Position != i {
			return result, fmt.Errorf("%w: %s has position %d at index %d", entities.ErrPositionMismatch, it.ID, *it.Position, i)
		}
		inBatch[it.ID] = struct{}{}
		ids[i] = it.ID
	}

	query, args, err := sqlx.In("SELECT "+f.columns()+" FROM "+f.table+" WHERE id IN (?)"+lockClause(tx), ids)
	if err != nil {
		return result, fmt.Errorf("failed to build reorder query: %w", err)
	}
	var rows []orderRow
	if err := tx.SelectContext(ctx, &rows, tx.Rebind(query), args...); err != nil {
		return result, fmt.Errorf("failed to load %s: %w", f.name, err)
	}
	byID := make(map[string]orderRow, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return result, fmt.Errorf("%w: %s", f.notFound, id)
		}
	}

	target, err := reorderTarget(ctx, tx, f, items, rows)
	if err != nil {
		return result, err
	}
	result.Target = target

	part := byID[ids[0]].Partition
	for _, id := range ids[1:] {
		if byID[id].Partition != part {
			return result, fmt.Errorf("%w: %s items have different parents", entities.ErrMixedContainers, f.name)
		}
	}

	var moved []orderRow
	for _, id := range ids {
		row := byID[id]
		if f.container == "" || row.Container.String == target {
			continue
		}
		if f.guard != nil {
			if err := f.guard(row, target); err != nil {
				return result, err
			}
		}
		moved = append(moved, row)
	}

	rest, err := siblings(ctx, tx, f, target, part)
	if err != nil {
		return result, err
	}

	for i, id := range ids {
		row := byID[id]
		var dest *string
		if f.container != "" && row.Container.String != target {
			dest = &target
		}
		if row.Position == i && dest == nil {
			continue
		}
		if err := setPosition(ctx, tx, f, id, i, dest, at); err != nil {
			return result, err
		}
	}

	next := len(ids)
	for _, row := range rest {
		if _, ok := inBatch[row.ID]; ok {
			continue
		}
		if row.Position != next {
			if err := setPosition(ctx, tx, f, row.ID, next, nil, at); err != nil {
				return result, err
			}
		}
		next++
	}

	seen := make(map[string]struct{})
	for _, row := range moved {
		result.Moved = append(result.Moved, row.ID)
		if f.follow != nil {
			carried, err := f.follow(ctx, tx, row, target, at)
			if err != nil {
				return result, err
			}
			result.Moved = append(result.Moved, carried...)
		}
		source := row.Container.String
		if _, ok := seen[source]; ok {
			continue
		}
		seen[source] = struct{}{}
		if err := renumber(ctx, tx, f, source, part, at); err != nil {
			return result, err
		}
		result.Sources = append(result.Sources, source)
	}

	return result, nil
}

// reorderTarget picks the container the batch ends up in: the one explicitly
// supplied, or else the one every item already shares.
func reorderTarget(ctx context.Context, q queryer, f family, items []ports.ReorderItem, rows []orderRow) (string, error) {
	if f.container == "" {
		return "", nil
	}

	var explicit string
	for _, it := range items {
		if it.Container == nil || *it.Container == "" {
			continue
		}
		if explicit != "" && explicit != *it.Container {
			return "", fmt.Errorf("%w: batch names %s and %s", entities.ErrMixedContainers, explicit, *it.Container)
		}
		explicit = *it.Container
	}

	if explicit == "" {
		current := rows[0].Container.String
		for _, row := range rows[1:] {
			if row.Container.String != current {
				return "", fmt.Errorf("%w: %s items belong to different containers", entities.ErrMixedContainers, f.name)
			}
		}
		return current, nil
	}

	if f.computedTargets && entities.IsComputedSectionKey(explicit) {
		return "", fmt.Errorf("%w: %s", entities.ErrComputedSection, explicit)
	}
	var exists int
	if err := q.GetContext(ctx, &exists, q.Rebind("SELECT COUNT(*) FROM "+f.containerTable+" WHERE id = ?"), explicit); err != nil {
		return "", fmt.Errorf("failed to check %s: %w", f.containerTable, err)
	}
	if exists == 0 {
		return "", fmt.Errorf("%w: %s", f.containerNotFound, explicit)
	}
	return explicit, nil
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/paratus/tasks/internal/application/invalidation"
	"github.com/paratus/tasks/internal/domain/entities"
	"github.com/paratus/tasks/internal/infrastructure/logger"
	"github.com/paratus/tasks/internal/infrastructure/metrics"
	"github.com/paratus/tasks/internal/ports"
)

// Hooks bundles what every mutating service reports to after a write.
type Hooks struct {
	Invalidations *invalidation.Table
	Metrics       *metrics.Metrics
	Logger        *logger.Logger
}

// record evaluates the invalidation table for a successful mutation.
func (h Hooks) record(ctx context.Context, m invalidation.Mutation, recordID string, scope invalidation.Scope) {
	keys := h.Invalidations.Record(ctx, m, scope)
	h.Logger.LogMutation(string(m), recordID, invalidation.Strings(keys))
}

func (h Hooks) observeReorder(family string, size int, err error) {
	h.Metrics.ObserveReorder(family, size, err)
	h.Logger.LogReorder(family, size, err)
}

// required trims s and rejects it when nothing is left.
func required(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: %s is required", entities.ErrValidation, field)
	}
	return s, nil
}

func validPriority(p *entities.Priority) error {
	if p != nil && !p.Valid() {
		return fmt.Errorf("%w: unknown priority %q", entities.ErrValidation, *p)
	}
	return nil
}

// reorderItems converts wire entries to store items, reading the container
// from the field container picks.
func reorderItems(req ports.ReorderRequest, container func(ports.ReorderEntry) *string) ([]ports.ReorderItem, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: reorder batch is empty", entities.ErrValidation)
	}
	items := make([]ports.ReorderItem, len(req.Items))
	for i, e := range req.Items {
		if strings.TrimSpace(e.ID) == "" {
			return nil, fmt.Errorf("%w: reorder item %d has no id", entities.ErrValidation, i)
		}
		items[i] = ports.ReorderItem{ID: e.ID, Position: e.Position}
		if container != nil {
			items[i].Container = container(e)
		}
	}
	return items, nil
}

func itemIDs(items []ports.ReorderItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

// collectionsOf resolves section ids to the ids of their collections,
// skipping sections that no longer exist.
func collectionsOf(ctx context.Context, sections ports.SectionRepository, sectionIDs ...string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, id := range sectionIDs {
		if id == "" {
			continue
		}
		s, err := sections.GetByID(ctx, id)
		if err != nil {
			continue
		}
		if _, ok := seen[s.CollectionID]; ok {
			continue
		}
		seen[s.CollectionID] = struct{}{}
		out = append(out, s.CollectionID)
	}
	return out
}

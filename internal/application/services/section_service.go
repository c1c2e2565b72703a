package services

import (
	"context"
	"fmt"

	"github.com/paratus/tasks/internal/application/invalidation"
	"github.com/paratus/tasks/internal/domain/entities"
	"github.com/paratus/tasks/internal/ports"
)

// SectionService handles section-related operations
type SectionService struct {
	sectionRepo ports.SectionRepository
	hooks       Hooks
}

// NewSectionService creates a new section service
func NewSectionService(sectionRepo ports.SectionRepository, hooks Hooks) *SectionService {
	return &SectionService{
		sectionRepo: sectionRepo,
		hooks:       hooks,
	}
}

// CreateSection appends a section to a collection
func (s *SectionService) CreateSection(ctx context.Context, req ports.CreateSectionRequest) (*entities.Section, error) {
	name, err := required("name", req.Name)
	if err != nil {
		return nil, err
	}
	if name == entities.UncategorizedName {
		return nil, fmt.Errorf("%w: %s", entities.ErrReservedName, name)
	}

	section := &entities.Section{Name: name, CollectionID: req.CollectionID}
	if err := s.sectionRepo.Create(ctx, section); err != nil {
		return nil, fmt.Errorf("failed to create section: %w", err)
	}

	s.hooks.record(ctx, invalidation.SectionCreate, section.ID, invalidation.Scope{CollectionIDs: []string{section.CollectionID}})
	s.hooks.Logger.Infow("Section created successfully", "section_id", section.ID, "collection_id", section.CollectionID)

	return section, nil
}

// UpdateSection renames a section
func (s *SectionService) UpdateSection(ctx context.Context, id string, req ports.UpdateSectionRequest) (*entities.Section, error) {
	name, err := required("name", req.Name)
	if err != nil {
		return nil, err
	}

	section, err := s.sectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("section not found: %w", err)
	}
	if section.IsUncategorized() {
		return nil, entities.ErrProtectedSection
	}
	if name == entities.UncategorizedName {
		return nil, fmt.Errorf("%w: %s", entities.ErrReservedName, name)
	}

	section.Name = name
	if err := s.sectionRepo.Update(ctx, section); err != nil {
		return nil, fmt.Errorf("failed to update section: %w", err)
	}

	s.hooks.record(ctx, invalidation.SectionUpdate, section.ID, invalidation.Scope{CollectionIDs: []string{section.CollectionID}})
	return section, nil
}

// DeleteSection deletes a section with its tasks
func (s *SectionService) DeleteSection(ctx context.Context, id string) (*entities.Section, error) {
	section, err := s.sectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("section not found: %w", err)
	}
	if section.IsUncategorized() {
		return nil, entities.ErrProtectedSection
	}

	removed, err := s.sectionRepo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete section: %w", err)
	}

	s.hooks.record(ctx, invalidation.SectionDelete, id, invalidation.Scope{
		CollectionIDs: []string{section.CollectionID},
		TaskIDs:       removed,
	})
	s.hooks.Logger.Infow("Section deleted successfully", "section_id", id)

	return section, nil
}

// ReorderSections persists a section order, moving sections into the
// collection the batch names
func (s *SectionService) ReorderSections(ctx context.Context, req ports.ReorderRequest) error {
	items, err := reorderItems(req, func(e ports.ReorderEntry) *string { return e.CollectionID })
	if err != nil {
		return err
	}

	result, err := s.sectionRepo.Reorder(ctx, items)
	s.hooks.observeReorder("sections", len(items), err)
	if err != nil {
		return fmt.Errorf("failed to reorder sections: %w", err)
	}

	s.hooks.record(ctx, invalidation.SectionReorder, result.Target, invalidation.Scope{CollectionIDs: result.Containers()})
	return nil
}

package services

import (
	"context"
	"fmt"

	"github.com/paratus/tasks/internal/application/invalidation"
	"github.com/paratus/tasks/internal/domain/entities"
	"github.com/paratus/tasks/internal/ports"
)

// ChecklistService handles task checklists
type ChecklistService struct {
	checklistRepo ports.ChecklistItemRepository
	hooks         Hooks
}

// NewChecklistService creates a new checklist service
func NewChecklistService(checklistRepo ports.ChecklistItemRepository, hooks Hooks) *ChecklistService {
	return &ChecklistService{checklistRepo: checklistRepo, hooks: hooks}
}

// CreateChecklistItem appends an item to a task's checklist
func (s *ChecklistService) CreateChecklistItem(ctx context.Context, req ports.CreateChecklistItemRequest) (*entities.ChecklistItem, error) {
	text, err := required("text", req.Text)
	if err != nil {
		return nil, err
	}

	item := &entities.ChecklistItem{Text: text, TaskID: req.TaskID}
	if err := s.checklistRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create checklist item: %w", err)
	}

	s.hooks.record(ctx, invalidation.ChecklistItemCreate, item.ID, invalidation.Scope{TaskIDs: []string{item.TaskID}})
	return item, nil
}

// UpdateChecklistItem edits an item's text and completion
func (s *ChecklistService) UpdateChecklistItem(ctx context.Context, id string, req ports.UpdateChecklistItemRequest) (*entities.ChecklistItem, error) {
	text, err := required("text", req.Text)
	if err != nil {
		return nil, err
	}

	item, err := s.checklistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("checklist item not found: %w", err)
	}
	item.Text = text
	item.Complete = req.Complete
	if err := s.checklistRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update checklist item: %w", err)
	}

	s.hooks.record(ctx, invalidation.ChecklistItemUpdate, item.ID, invalidation.Scope{TaskIDs: []string{item.TaskID}})
	return item, nil
}

// DeleteChecklistItem deletes an item and closes the gap it leaves
func (s *ChecklistService) DeleteChecklistItem(ctx context.Context, id string) (*entities.ChecklistItem, error) {
	item, err := s.checklistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("checklist item not found: %w", err)
	}
	if err := s.checklistRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete checklist item: %w", err)
	}

	s.hooks.record(ctx, invalidation.ChecklistItemDelete, id, invalidation.Scope{TaskIDs: []string{item.TaskID}})
	return item, nil
}

// ReorderChecklistItems persists a checklist order, moving items to the task
// the batch names
func (s *ChecklistService) ReorderChecklistItems(ctx context.Context, req ports.ReorderRequest) error {
	items, err := reorderItems(req, func(e ports.ReorderEntry) *string { return e.TaskID })
	if err != nil {
		return err
	}

	result, err := s.checklistRepo.Reorder(ctx, items)
	s.hooks.observeReorder("checklist_items", len(items), err)
	if err != nil {
		return fmt.Errorf("failed to reorder checklist items: %w", err)
	}

	s.hooks.record(ctx, invalidation.ChecklistItemReorder, result.Target, invalidation.Scope{TaskIDs: result.Containers()})
	return nil
}

package services

import (
	"context"
	"fmt"

	"github.com/paratus/tasks/internal/application/invalidation"
	"github.com/paratus/tasks/internal/domain/entities"
	"github.com/paratus/tasks/internal/ports"
)

// CollectionService handles collection-related operations
type CollectionService struct {
	collectionRepo ports.CollectionRepository
	hooks          Hooks
}

// NewCollectionService creates a new collection service
func NewCollectionService(collectionRepo ports.CollectionRepository, hooks Hooks) *CollectionService {
	return &CollectionService{
		collectionRepo: collectionRepo,
		hooks:          hooks,
	}
}

// ListCollections returns every collection in display order
func (s *CollectionService) ListCollections(ctx context.Context) ([]*entities.CollectionSummary, error) {
	collections, err := s.collectionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return collections, nil
}

// GetInbox returns the Inbox with its task count
func (s *CollectionService) GetInbox(ctx context.Context) (*entities.CollectionSummary, error) {
	inbox, err := s.collectionRepo.GetByName(ctx, entities.InboxName)
	if err != nil {
		return nil, fmt.Errorf("inbox not found: %w", err)
	}
	return s.collectionRepo.GetSummary(ctx, inbox.ID)
}

// GetCollection returns a collection with its sections and open tasks
func (s *CollectionService) GetCollection(ctx context.Context, id string) (*entities.CollectionDetail, error) {
	detail, err := s.collectionRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("collection not found: %w", err)
	}
	return detail, nil
}

// CreateCollection appends a new collection with its Uncategorized section
func (s *CollectionService) CreateCollection(ctx context.Context, req ports.CreateCollectionRequest) (*entities.Collection, error) {
	name, err := required("name", req.Name)
	if err != nil {
		return nil, err
	}
	if entities.IsReservedCollectionName(name) {
		return nil, fmt.Errorf("%w: %s", entities.ErrReservedName, name)
	}

	collection := &entities.Collection{Name: name}
	if err := s.collectionRepo.Create(ctx, collection, &entities.Section{Name: entities.UncategorizedName}); err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	s.hooks.record(ctx, invalidation.CollectionCreate, collection.ID, invalidation.Scope{CollectionIDs: []string{collection.ID}})
	s.hooks.Logger.Infow("Collection created successfully", "collection_id", collection.ID, "name", collection.Name)

	return collection, nil
}

// UpdateCollection renames a collection
func (s *CollectionService) UpdateCollection(ctx context.Context, id string, req ports.UpdateCollectionRequest) (*entities.Collection, error) {
	name, err := required("name", req.Name)
	if err != nil {
		return nil, err
	}

	collection, err := s.collectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("collection not found: %w", err)
	}
	if collection.IsInbox() {
		return nil, entities.ErrProtectedInbox
	}
	if entities.IsReservedCollectionName(name) {
		return nil, fmt.Errorf("%w: %s", entities.ErrReservedName, name)
	}

	collection.Name = name
	if err := s.collectionRepo.Update(ctx, collection); err != nil {
		return nil, fmt.Errorf("failed to update collection: %w", err)
	}

	s.hooks.record(ctx, invalidation.CollectionUpdate, collection.ID, invalidation.Scope{CollectionIDs: []string{collection.ID}})
	s.hooks.Logger.Infow("Collection updated successfully", "collection_id", collection.ID)

	return collection, nil
}

// DeleteCollection deletes a collection and everything in it
func (s *CollectionService) DeleteCollection(ctx context.Context, id string) (*entities.Collection, error) {
	collection, err := s.collectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("collection not found: %w", err)
	}
	if collection.IsInbox() {
		return nil, entities.ErrProtectedInbox
	}

	removed, err := s.collectionRepo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete collection: %w", err)
	}

	s.hooks.record(ctx, invalidation.CollectionDelete, id, invalidation.Scope{
		CollectionIDs: []string{id},
		TaskIDs:       removed,
	})
	s.hooks.Logger.Infow("Collection deleted successfully", "collection_id", id)

	return collection, nil
}

// ReorderCollections persists a new collection order
func (s *CollectionService) ReorderCollections(ctx context.Context, req ports.ReorderRequest) error {
	items, err := reorderItems(req, nil)
	if err != nil {
		return err
	}

	_, err = s.collectionRepo.Reorder(ctx, items)
	s.hooks.observeReorder("collections", len(items), err)
	if err != nil {
		return fmt.Errorf("failed to reorder collections: %w", err)
	}

	s.hooks.record(ctx, invalidation.CollectionReorder, "", invalidation.Scope{CollectionIDs: itemIDs(items)})
	return nil
}

// InitializeCollections makes sure the Inbox exists
func (s *CollectionService) InitializeCollections(ctx context.Context) (*entities.Collection, error) {
	inbox, created, err := s.collectionRepo.EnsureInbox(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize collections: %w", err)
	}

	if created {
		s.hooks.record(ctx, invalidation.CollectionInitialize, inbox.ID, invalidation.Scope{CollectionIDs: []string{inbox.ID}})
		s.hooks.Logger.Infow("Inbox created", "collection_id", inbox.ID)
	}

	return inbox, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/paratus/tasks/internal/application/invalidation"
	"github.com/paratus/tasks/internal/domain/entities"
	"github.com/paratus/tasks/internal/ports"
)

// CommentService handles task comments
type CommentService struct {
	commentRepo ports.CommentRepository
	hooks       Hooks
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo ports.CommentRepository, hooks Hooks) *CommentService {
	return &CommentService{commentRepo: commentRepo, hooks: hooks}
}

// CreateComment posts a comment on a task
func (s *CommentService) CreateComment(ctx context.Context, req ports.CreateCommentRequest) (*entities.Comment, error) {
	text, err := required("text", req.Text)
	if err != nil {
		return nil, err
	}

	comment := &entities.Comment{Text: text, TaskID: req.TaskID}
	if req.Posted != nil {
		comment.Posted = *req.Posted
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.hooks.record(ctx, invalidation.CommentCreate, comment.ID, invalidation.Scope{TaskIDs: []string{comment.TaskID}})
	return comment, nil
}

// UpdateComment edits a comment's text
func (s *CommentService) UpdateComment(ctx context.Context, id string, req ports.UpdateCommentRequest) (*entities.Comment, error) {
	text, err := required("text", req.Text)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("comment not found: %w", err)
	}
	comment.Text = text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	s.hooks.record(ctx, invalidation.CommentUpdate, comment.ID, invalidation.Scope{TaskIDs: []string{comment.TaskID}})
	return comment, nil
}

// DeleteComment deletes a comment
func (s *CommentService) DeleteComment(ctx context.Context, id string) (*entities.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("comment not found: %w", err)
	}
	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}

	s.hooks.record(ctx, invalidation.CommentDelete, id, invalidation.Scope{TaskIDs: []string{comment.TaskID}})
	return comment, nil
}

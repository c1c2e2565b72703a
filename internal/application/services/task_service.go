package services

import (
	"context"
	"fmt"

	"github.com/paratus/tasks/internal/application/invalidation"
	"github.com/paratus/tasks/internal/domain/entities"
	"github.com/paratus/tasks/internal/ports"
)

// TaskService handles task-related operations
type TaskService struct {
	taskRepo      ports.TaskRepository
	sectionRepo   ports.SectionRepository
	commentRepo   ports.CommentRepository
	checklistRepo ports.ChecklistItemRepository
	hooks         Hooks
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, sectionRepo ports.SectionRepository, commentRepo ports.CommentRepository, checklistRepo ports.ChecklistItemRepository, hooks Hooks) *TaskService {
	return &TaskService{
		taskRepo:      taskRepo,
		sectionRepo:   sectionRepo,
		commentRepo:   commentRepo,
		checklistRepo: checklistRepo,
		hooks:         hooks,
	}
}

// GetTask retrieves a task with its sub-tasks, comments and checklist
func (s *TaskService) GetTask(ctx context.Context, id string) (*entities.TaskDetail, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("task not found: %w", err)
	}

	children, err := s.taskRepo.GetChildren(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByTask(ctx, id)
	if err != nil {
		return nil, err
	}
	checklist, err := s.checklistRepo.ListByTask(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &entities.TaskDetail{
		Task:           *task,
		Comments:       comments,
		ChecklistItems: checklist,
	}
	detail.Children = children
	if detail.Comments == nil {
		detail.Comments = []*entities.Comment{}
	}
	if detail.ChecklistItems == nil {
		detail.ChecklistItems = []*entities.ChecklistItem{}
	}
	return detail, nil
}

// CreateTask appends a task to a section, or a sub-task to its parent
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	text, err := required("text", req.Text)
	if err != nil {
		return nil, err
	}
	if entities.IsComputedSectionKey(req.SectionID) {
		return nil, fmt.Errorf("%w: %s", entities.ErrComputedSection, req.SectionID)
	}
	if err := validPriority(req.Priority); err != nil {
		return nil, err
	}

	task := &entities.Task{
		Text:        text,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		SectionID:   req.SectionID,
		ParentID:    req.ParentTaskID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.hooks.record(ctx, invalidation.TaskCreate, task.ID, s.scope(ctx, task, task.SectionID))
	s.hooks.Logger.Infow("Task created successfully", "task_id", task.ID, "section_id", task.SectionID)

	return task, nil
}

// UpdateTask replaces the editable fields of a task
func (s *TaskService) UpdateTask(ctx context.Context, id string, req ports.UpdateTaskRequest) (*entities.Task, error) {
	text, err := required("text", req.Text)
	if err != nil {
		return nil, err
	}
	if entities.IsComputedSectionKey(req.SectionID) {
		return nil, fmt.Errorf("%w: %s", entities.ErrComputedSection, req.SectionID)
	}
	if err := validPriority(req.Priority); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("task not found: %w", err)
	}
	previousSection := task.SectionID

	task.Text = text
	task.Description = req.Description
	task.DueDate = req.DueDate
	task.Priority = req.Priority
	task.Complete = req.Complete
	task.SectionID = req.SectionID

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	scope := s.scope(ctx, task, task.SectionID, previousSection)
	if task.SectionID != previousSection {
		children, err := s.taskRepo.GetChildren(ctx, task.ID)
		if err != nil {
			s.hooks.Logger.Warnw("Failed to load moved sub-tasks", "task_id", task.ID, "error", err)
		}
		for _, child := range children {
			scope.TaskIDs = append(scope.TaskIDs, child.ID)
		}
	}
	s.hooks.record(ctx, invalidation.TaskUpdate, task.ID, scope)
	s.hooks.Logger.Infow("Task updated successfully", "task_id", task.ID)

	return task, nil
}

// DeleteTask deletes a task with its sub-tasks, comments and checklist
func (s *TaskService) DeleteTask(ctx context.Context, id string) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("task not found: %w", err)
	}
	scope := s.scope(ctx, task, task.SectionID)

	removed, err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	scope.TaskIDs = append(scope.TaskIDs, removed...)

	s.hooks.record(ctx, invalidation.TaskDelete, id, scope)
	s.hooks.Logger.Infow("Task deleted successfully", "task_id", id)

	return task, nil
}

// ReorderTasks persists a task order within one section or one parent,
// moving top-level tasks into the section the batch names
func (s *TaskService) ReorderTasks(ctx context.Context, req ports.ReorderRequest) error {
	items, err := reorderItems(req, func(e ports.ReorderEntry) *string { return e.SectionID })
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.Container != nil && entities.IsComputedSectionKey(*it.Container) {
			s.hooks.observeReorder("tasks", len(items), entities.ErrComputedSection)
			return fmt.Errorf("%w: %s", entities.ErrComputedSection, *it.Container)
		}
	}

	result, err := s.taskRepo.Reorder(ctx, items)
	s.hooks.observeReorder("tasks", len(items), err)
	if err != nil {
		return fmt.Errorf("failed to reorder tasks: %w", err)
	}

	// Every task in the batch has a new position, and moved tasks carry
	// their sub-tasks into the new section.
	scope := invalidation.Scope{
		CollectionIDs: collectionsOf(ctx, s.sectionRepo, result.Containers()...),
		TaskIDs:       append(itemIDs(items), result.Moved...),
	}
	if first, err := s.taskRepo.GetByID(ctx, items[0].ID); err == nil && first.ParentID != nil {
		scope.TaskIDs = append(scope.TaskIDs, *first.ParentID)
	}
	s.hooks.record(ctx, invalidation.TaskReorder, result.Target, scope)
	return nil
}

// scope names the collections holding sectionIDs and the task plus its
// parent, whose detail lists it as a child.
func (s *TaskService) scope(ctx context.Context, task *entities.Task, sectionIDs ...string) invalidation.Scope {
	scope := invalidation.Scope{
		CollectionIDs: collectionsOf(ctx, s.sectionRepo, sectionIDs...),
		TaskIDs:       []string{task.ID},
	}
	if task.ParentID != nil {
		scope.TaskIDs = append(scope.TaskIDs, *task.ParentID)
	}
	return scope
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/paratus/tasks/internal/domain/entities"
	"github.com/paratus/tasks/internal/domain/views"
	"github.com/paratus/tasks/internal/infrastructure/logger"
	"github.com/paratus/tasks/internal/ports"
)

// Clock returns the current time.
type Clock func() time.Time

// ViewService builds the computed Today and Upcoming collections
type ViewService struct {
	taskRepo ports.TaskRepository
	clock    Clock
	location *time.Location
	logger   *logger.Logger
}

// NewViewService creates a view service. A nil clock means time.Now and a
// nil location means UTC.
func NewViewService(taskRepo ports.TaskRepository, clock Clock, location *time.Location, logger *logger.Logger) *ViewService {
	if clock == nil {
		clock = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	return &ViewService{
		taskRepo: taskRepo,
		clock:    clock,
		location: location,
		logger:   logger.WithComponent("views"),
	}
}

// Today returns overdue tasks and tasks due today
func (s *ViewService) Today(ctx context.Context) (*entities.ViewCollection, error) {
	tasks, err := s.taskRepo.ListOpenWithDueDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load today: %w", err)
	}
	view := views.Today(s.clock(), s.location, tasks)
	return &view, nil
}

// Upcoming returns overdue tasks and one bucket per day of the current week
func (s *ViewService) Upcoming(ctx context.Context) (*entities.ViewCollection, error) {
	tasks, err := s.taskRepo.ListOpenWithDueDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming: %w", err)
	}
	view := views.Upcoming(s.clock(), s.location, tasks)
	s.logger.Debugw("Upcoming view built", "tasks", len(tasks), "sections", len(view.Sections))
	return &view, nil
}

// QuickPicks returns the due date shortcuts offered for today
func (s *ViewService) QuickPicks(_ context.Context) []views.QuickPick {
	return views.QuickPicks(s.clock(), s.location)
}

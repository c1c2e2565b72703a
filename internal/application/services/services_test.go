package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paratus/tasks/internal/adapters/repository"
	"github.com/paratus/tasks/internal/application/invalidation"
	"github.com/paratus/tasks/internal/domain/entities"
	"github.com/paratus/tasks/internal/infrastructure/logger"
	"github.com/paratus/tasks/internal/infrastructure/metrics"
	"github.com/paratus/tasks/internal/ports"
	"github.com/paratus/tasks/internal/testutil"
)

// Wednesday, 21 October 2026.
var fixedNow = time.Date(2026, 10, 21, 10, 0, 0, 0, time.UTC)

type suite struct {
	collections *CollectionService
	sections    *SectionService
	tasks       *TaskService
	views       *ViewService
	comments    *CommentService
	checklist   *ChecklistService
	metrics     *metrics.Metrics
}

func newSuite(t *testing.T) *suite {
	t.Helper()
	repos := repository.New(testutil.NewTestDB(t))
	hooks := Hooks{
		Invalidations: invalidation.NewTable(),
		Metrics:       metrics.New(),
		Logger:        logger.NewNop(),
	}
	return &suite{
		collections: NewCollectionService(repos.Collections, hooks),
		sections:    NewSectionService(repos.Sections, hooks),
		tasks:       NewTaskService(repos.Tasks, repos.Sections, repos.Comments, repos.ChecklistItems, hooks),
		views:       NewViewService(repos.Tasks, func() time.Time { return fixedNow }, time.UTC, hooks.Logger),
		comments:    NewCommentService(repos.Comments, hooks),
		checklist:   NewChecklistService(repos.ChecklistItems, hooks),
		metrics:     hooks.Metrics,
	}
}

// collecting returns a context whose mutations are captured by the returned collector.
func collecting() (context.Context, *invalidation.Collector) {
	c := invalidation.NewCollector()
	return invalidation.WithCollector(context.Background(), c), c
}

func uncategorizedOf(t *testing.T, s *suite, collectionID string) *entities.SectionDetail {
	t.Helper()
	detail, err := s.collections.GetCollection(context.Background(), collectionID)
	require.NoError(t, err)
	require.NotEmpty(t, detail.Sections)
	return detail.Sections[0]
}

func TestCreateCollectionValidation(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	for _, name := range []string{"", "   ", "Inbox", "Today", " Upcoming "} {
		_, err := s.collections.CreateCollection(ctx, ports.CreateCollectionRequest{Name: name})
		assert.Error(t, err, name)
	}

	_, err := s.collections.CreateCollection(ctx, ports.CreateCollectionRequest{Name: "Today"})
	assert.ErrorIs(t, err, entities.ErrReservedName)
	_, err = s.collections.CreateCollection(ctx, ports.CreateCollectionRequest{Name: " "})
	assert.ErrorIs(t, err, entities.ErrValidation)

	created, err := s.collections.CreateCollection(ctx, ports.CreateCollectionRequest{Name: "  Work "})
	require.NoError(t, err)
	assert.Equal(t, "Work", created.Name)
}

func TestCreateCollectionInvalidatesLists(t *testing.T) {
	s := newSuite(t)
	ctx, collector := collecting()

	created, err := s.collections.CreateCollection(ctx, ports.CreateCollectionRequest{Name: "Work"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"collection.readAll",
		"collection.inbox",
		"task.today",
		"task.upcoming",
		"collection.readOne:" + created.ID,
	}, invalidation.Strings(collector.Keys()))
}

func TestInboxIsProtected(t *testing.T) {
	s := newSuite(t)
	ctx, collector := collecting()

	inbox, err := s.collections.InitializeCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.InboxName, inbox.Name)
	assert.NotEmpty(t, collector.Keys())

	again, collector2 := collecting()
	same, err := s.collections.InitializeCollections(again)
	require.NoError(t, err)
	assert.Equal(t, inbox.ID, same.ID)
	assert.Empty(t, collector2.Keys(), "initializing twice changes nothing")

	_, err = s.collections.UpdateCollection(context.Background(), inbox.ID, ports.UpdateCollectionRequest{Name: "Mail"})
	assert.ErrorIs(t, err, entities.ErrProtectedInbox)
	_, err = s.collections.DeleteCollection(context.Background(), inbox.ID)
	assert.ErrorIs(t, err, entities.ErrProtectedInbox)

	summary, err := s.collections.GetInbox(context.Background())
	require.NoError(t, err)
	assert.Equal(t, inbox.ID, summary.ID)
	assert.Equal(t, 0, summary.TaskCount)
}

func TestRenameAndDeleteCollection(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	work, err := s.collections.CreateCollection(ctx, ports.CreateCollectionRequest{Name: "Work"})
	require.NoError(t, err)

	_, err = s.collections.UpdateCollection(ctx, work.ID, ports.UpdateCollectionRequest{Name: "Inbox"})
	assert.ErrorIs(t, err, entities.ErrReservedName)

	renamed, err := s.collections.UpdateCollection(ctx, work.ID, ports.UpdateCollectionRequest{Name: "Office"})
	require.NoError(t, err)
	assert.Equal(t, "Office", renamed.Name)

	deleted, err := s.collections.DeleteCollection(ctx, work.ID)
	require.NoError(t, err)
	assert.Equal(t, work.ID, deleted.ID)

	_, err = s.collections.GetCollection(ctx, work.ID)
	assert.ErrorIs(t, err, entities.ErrCollectionNotFound)
}

func TestUncategorizedIsProtected(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	work, err := s.collections.CreateCollection(ctx, ports.CreateCollectionRequest{Name: "Work"})
	require.NoError(t, err)
	uncategorized := uncategorizedOf(t, s, work.ID)

	_, err = s.sections.UpdateSection(ctx, uncategorized.ID, ports.UpdateSectionRequest{Name: "Misc"})
	assert.ErrorIs(t, err, entities.ErrProtectedSection)
	_, err = s.sections.DeleteSection(ctx, uncategorized.ID)
	assert.ErrorIs(t, err, entities.ErrProtectedSection)
	_, err = s.sections.CreateSection(ctx, ports.CreateSectionRequest{Name: "Uncategorized", CollectionID: work.ID})
	assert.ErrorIs(t, err, entities.ErrReservedName)

	sprint, err := s.sections.CreateSection(ctx, ports.CreateSectionRequest{Name: "Sprint1", CollectionID: work.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, sprint.Position)

	_, err = s.sections.CreateSection(ctx, ports.CreateSectionRequest{Name: "Lost", CollectionID: "missing"})
	assert.ErrorIs(t, err, entities.ErrCollectionNotFound)

	err = s.sections.ReorderSections(ctx, ports.ReorderRequest{Items: []ports.ReorderEntry{
		{ID: sprint.ID}, {ID: uncategorized.ID},
	}})
	require.NoError(t, err)
	assert.Equal(t, "Sprint1", uncategorizedOf(t, s, work.ID).Name)
}

func TestTaskRejectsComputedSections(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	work, err := s.collections.CreateCollection(ctx, ports.CreateCollectionRequest{Name: "Work"})
	require.NoError(t, err)
	section := uncategorizedOf(t, s, work.ID)

	_, err = s.tasks.CreateTask(ctx, ports.CreateTaskRequest{Text: "A", SectionID: "today"})
	assert.ErrorIs(t, err, entities.ErrComputedSection)

	task, err := s.tasks.CreateTask(ctx, ports.CreateTaskRequest{Text: "A", SectionID: section.ID})
	require.NoError(t, err)

	_, err = s.tasks.UpdateTask(ctx, task.ID, ports.UpdateTaskRequest{Text: "A", SectionID: "day:2026-10-22"})
	assert.ErrorIs(t, err, entities.ErrComputedSection)

	overdue := "overdue"
	err = s.tasks.ReorderTasks(ctx, ports.ReorderRequest{Items: []ports.ReorderEntry{{ID: task.ID, SectionID: &overdue}}})
	assert.ErrorIs(t, err, entities.ErrComputedSection)

	bad := entities.Priority("SOMEDAY")
	_, err = s.tasks.CreateTask(ctx, ports.CreateTaskRequest{Text: "B", SectionID: section.ID, Priority: &bad})
	assert.ErrorIs(t, err, entities.ErrValidation)
}

func TestGetTaskDetail(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	work, err := s.collections.CreateCollection(ctx, ports.CreateCollectionRequest{Name: "Work"})
	require.NoError(t, err)
	section := uncategorizedOf(t, s, work.ID)

	parent, err := s.tasks.CreateTask(ctx, ports.CreateTaskRequest{Text: "Parent", SectionID: section.ID})
	require.NoError(t, err)
	child, err := s.tasks.CreateTask(ctx, ports.CreateTaskRequest{Text: "Child", SectionID: section.ID, ParentTaskID: &parent.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, child.Position)

	_, err = s.comments.CreateComment(ctx, ports.CreateCommentRequest{Text: "note", TaskID: parent.ID})
	require.NoError(t, err)
	_, err = s.checklist.CreateChecklistItem(ctx, ports.CreateChecklistItemRequest{Text: "step", TaskID: parent.ID})
	require.NoError(t, err)

	detail, err := s.tasks.GetTask(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, detail.Children, 1)
	assert.Equal(t, child.ID, detail.Children[0].ID)
	require.Len(t, detail.Comments, 1)
	assert.False(t, detail.Comments[0].Posted.IsZero())
	require.Len(t, detail.ChecklistItems, 1)

	empty, err := s.tasks.GetTask(ctx, child.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty.Comments)
	assert.NotNil(t, empty.ChecklistItems)

	_, err = s.tasks.GetTask(ctx, "missing")
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestOverdueTaskLeavesTodayWhenCompleted(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	work, err := s.collections.CreateCollection(ctx, ports.CreateCollectionRequest{Name: "Work"})
	require.NoError(t, err)
	section := uncategorizedOf(t, s, work.ID)

	yesterday := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
	task, err := s.tasks.CreateTask(ctx, ports.CreateTaskRequest{Text: "File report", SectionID: section.ID, DueDate: &yesterday})
	require.NoError(t, err)

	today, err := s.views.Today(ctx)
	require.NoError(t, err)
	require.Len(t, today.Sections, 2)
	require.Len(t, today.Sections[0].Tasks, 1)
	assert.Equal(t, task.ID, today.Sections[0].Tasks[0].ID)
	assert.Empty(t, today.Sections[1].Tasks)

	mctx, collector := collecting()
	_, err = s.tasks.UpdateTask(mctx, task.ID, ports.UpdateTaskRequest{
		Text:      task.Text,
		DueDate:   task.DueDate,
		Complete:  true,
		SectionID: task.SectionID,
	})
	require.NoError(t, err)
	keys := invalidation.Strings(collector.Keys())
	assert.Contains(t, keys, "task.today")
	assert.Contains(t, keys, "task.readOne:"+task.ID)
	assert.Contains(t, keys, "collection.readOne:"+work.ID)

	today, err = s.views.Today(ctx)
	require.NoError(t, err)
	assert.Empty(t, today.Sections[0].Tasks)
}

func TestUpcomingAndQuickPicks(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	work, err := s.collections.CreateCollection(ctx, ports.CreateCollectionRequest{Name: "Work"})
	require.NoError(t, err)
	section := uncategorizedOf(t, s, work.ID)

	friday := time.Date(2026, 10, 23, 15, 0, 0, 0, time.UTC)
	_, err = s.tasks.CreateTask(ctx, ports.CreateTaskRequest{Text: "Ship", SectionID: section.ID, DueDate: &friday})
	require.NoError(t, err)

	upcoming, err := s.views.Upcoming(ctx)
	require.NoError(t, err)
	require.Len(t, upcoming.Sections, 8)
	fridayBucket := upcoming.Sections[6]
	assert.Equal(t, "Oct 23 - Fri", fridayBucket.Name())
	require.Len(t, fridayBucket.Tasks, 1)
	assert.Equal(t, "Ship", fridayBucket.Tasks[0].Text)

	picks := s.views.QuickPicks(ctx)
	require.NotEmpty(t, picks)
	assert.Equal(t, "Today", picks[0].Label)
}

func TestCommentMutationsOnlyInvalidateTask(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	work, err := s.collections.CreateCollection(ctx, ports.CreateCollectionRequest{Name: "Work"})
	require.NoError(t, err)
	task, err := s.tasks.CreateTask(ctx, ports.CreateTaskRequest{Text: "A", SectionID: uncategorizedOf(t, s, work.ID).ID})
	require.NoError(t, err)

	mctx, collector := collecting()
	comment, err := s.comments.CreateComment(mctx, ports.CreateCommentRequest{Text: "hi", TaskID: task.ID})
	require.NoError(t, err)
	_, err = s.comments.UpdateComment(mctx, comment.ID, ports.UpdateCommentRequest{Text: "hello"})
	require.NoError(t, err)
	_, err = s.comments.DeleteComment(mctx, comment.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"task.readOne:" + task.ID}, invalidation.Strings(collector.Keys()))

	_, err = s.comments.CreateComment(ctx, ports.CreateCommentRequest{Text: "orphan", TaskID: "missing"})
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestReorderTasksAcrossCollections(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	work, err := s.collections.CreateCollection(ctx, ports.CreateCollectionRequest{Name: "Work"})
	require.NoError(t, err)
	home, err := s.collections.CreateCollection(ctx, ports.CreateCollectionRequest{Name: "Home"})
	require.NoError(t, err)
	from := uncategorizedOf(t, s, work.ID)
	to := uncategorizedOf(t, s, home.ID)

	task, err := s.tasks.CreateTask(ctx, ports.CreateTaskRequest{Text: "Move me", SectionID: from.ID})
	require.NoError(t, err)

	mctx, collector := collecting()
	err = s.tasks.ReorderTasks(mctx, ports.ReorderRequest{Items: []ports.ReorderEntry{
		{ID: task.ID, SectionID: &to.ID},
	}})
	require.NoError(t, err)

	keys := invalidation.Strings(collector.Keys())
	assert.Contains(t, keys, "collection.readOne:"+work.ID)
	assert.Contains(t, keys, "collection.readOne:"+home.ID)

	assert.Empty(t, uncategorizedOf(t, s, work.ID).Tasks)
	require.Len(t, uncategorizedOf(t, s, home.ID).Tasks, 1)

	err = s.tasks.ReorderTasks(ctx, ports.ReorderRequest{})
	assert.ErrorIs(t, err, entities.ErrValidation)

	families, err := s.metrics.Registry().Gather()
	require.NoError(t, err)
	var batches float64
	for _, mf := range families {
		if mf.GetName() != "paratus_reorder_batches_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			batches += m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(1), batches)
}

func TestChecklistLifecycle(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()
	work, err := s.collections.CreateCollection(ctx, ports.CreateCollectionRequest{Name: "Work"})
	require.NoError(t, err)
	task, err := s.tasks.CreateTask(ctx, ports.CreateTaskRequest{Text: "A", SectionID: uncategorizedOf(t, s, work.ID).ID})
	require.NoError(t, err)

	first, err := s.checklist.CreateChecklistItem(ctx, ports.CreateChecklistItemRequest{Text: "one", TaskID: task.ID})
	require.NoError(t, err)
	second, err := s.checklist.CreateChecklistItem(ctx, ports.CreateChecklistItemRequest{Text: "two", TaskID: task.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)

	require.NoError(t, s.checklist.ReorderChecklistItems(ctx, ports.ReorderRequest{Items: []ports.ReorderEntry{
		{ID: second.ID}, {ID: first.ID},
	}}))

	updated, err := s.checklist.UpdateChecklistItem(ctx, first.ID, ports.UpdateChecklistItemRequest{Text: "one", Complete: true})
	require.NoError(t, err)
	assert.True(t, updated.Complete)
	assert.Equal(t, 1, updated.Position)

	_, err = s.checklist.DeleteChecklistItem(ctx, second.ID)
	require.NoError(t, err)

	detail, err := s.tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, detail.ChecklistItems, 1)
	assert.Equal(t, 0, detail.ChecklistItems[0].Position)
	assert.True(t, detail.ChecklistItems[0].Complete)
}

func TestTaskDetailsInvalidatedByStructuralMutations(t *testing.T) {
	s := newSuite(t)
	ctx := context.Background()

	work, err := s.collections.CreateCollection(ctx, ports.CreateCollectionRequest{Name: "Work"})
	require.NoError(t, err)
	uncategorized := uncategorizedOf(t, s, work.ID)
	sprint, err := s.sections.CreateSection(ctx, ports.CreateSectionRequest{Name: "Sprint", CollectionID: work.ID})
	require.NoError(t, err)

	a, err := s.tasks.CreateTask(ctx, ports.CreateTaskRequest{Text: "A", SectionID: uncategorized.ID})
	require.NoError(t, err)
	b, err := s.tasks.CreateTask(ctx, ports.CreateTaskRequest{Text: "B", SectionID: uncategorized.ID})
	require.NoError(t, err)
	child, err := s.tasks.CreateTask(ctx, ports.CreateTaskRequest{Text: "B.1", SectionID: uncategorized.ID, ParentTaskID: &b.ID})
	require.NoError(t, err)

	detailKey := func(id string) string { return "task.readOne:" + id }

	reorderCtx, collector := collecting()
	require.NoError(t, s.tasks.ReorderTasks(reorderCtx, ports.ReorderRequest{Items: []ports.ReorderEntry{
		{ID: b.ID, SectionID: &sprint.ID},
	}}))
	keys := invalidation.Strings(collector.Keys())
	assert.Contains(t, keys, detailKey(b.ID))
	assert.Contains(t, keys, detailKey(child.ID))
	assert.Contains(t, keys, "collection.readOne:"+work.ID)

	deleteCtx, collector := collecting()
	_, err = s.tasks.DeleteTask(deleteCtx, b.ID)
	require.NoError(t, err)
	keys = invalidation.Strings(collector.Keys())
	assert.Contains(t, keys, detailKey(b.ID))
	assert.Contains(t, keys, detailKey(child.ID))

	planned, err := s.tasks.CreateTask(ctx, ports.CreateTaskRequest{Text: "Plan", SectionID: sprint.ID})
	require.NoError(t, err)
	sectionCtx, collector := collecting()
	_, err = s.sections.DeleteSection(sectionCtx, sprint.ID)
	require.NoError(t, err)
	assert.Contains(t, invalidation.Strings(collector.Keys()), detailKey(planned.ID))

	collectionCtx, collector := collecting()
	_, err = s.collections.DeleteCollection(collectionCtx, work.ID)
	require.NoError(t, err)
	assert.Contains(t, invalidation.Strings(collector.Keys()), detailKey(a.ID))
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paratus/tasks/internal/domain/entities"
	"github.com/paratus/tasks/internal/ports"
	"github.com/paratus/tasks/internal/testutil"
)

type fixture struct {
	t    *testing.T
	ctx  context.Context
	repo *Repositories
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{t: t, ctx: context.Background(), repo: New(testutil.NewTestDB(t))}
}

func (f *fixture) collection(name string) (*entities.Collection, *entities.Section) {
	f.t.Helper()
	c := &entities.Collection{Name: name}
	s := &entities.Section{Name: entities.UncategorizedName}
	require.NoError(f.t, f.repo.Collections.Create(f.ctx, c, s))
	return c, s
}

func (f *fixture) section(collectionID, name string) *entities.Section {
	f.t.Helper()
	s := &entities.Section{Name: name, CollectionID: collectionID}
	require.NoError(f.t, f.repo.Sections.Create(f.ctx, s))
	return s
}

func (f *fixture) task(sectionID, text string, parent *entities.Task) *entities.Task {
	f.t.Helper()
	task := &entities.Task{Text: text, SectionID: sectionID}
	if parent != nil {
		task.ParentID = &parent.ID
	}
	require.NoError(f.t, f.repo.Tasks.Create(f.ctx, task))
	return task
}

func (f *fixture) taskPositions(sectionID string) map[string]int {
	f.t.Helper()
	var rows []struct {
		Text     string `db:"text"`
		Position int    `db:"position"`
	}
	db := f.repo.Tasks.db.DB
	err := db.SelectContext(f.ctx, &rows, db.Rebind(
		`SELECT text, position FROM tasks WHERE section_id = ? AND parent_id IS NULL`), sectionID)
	require.NoError(f.t, err)
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Text] = r.Position
	}
	return out
}

func (f *fixture) sectionNames(collectionID string) []string {
	f.t.Helper()
	sections, err := f.repo.Sections.ListByCollection(f.ctx, collectionID)
	require.NoError(f.t, err)
	names := make([]string, len(sections))
	for i, s := range sections {
		require.Equal(f.t, i, s.Position, "section positions must be contiguous")
		names[i] = s.Name
	}
	return names
}

func items(ids ...string) []ports.ReorderItem {
	out := make([]ports.ReorderItem, len(ids))
	for i, id := range ids {
		out[i] = ports.ReorderItem{ID: id}
	}
	return out
}

func pos(i int) *int             { return &i }
func ref(s string) *string       { return &s }
func due(t time.Time) *time.Time { return &t }

func TestCreateCollectionAddsUncategorized(t *testing.T) {
	f := newFixture(t)

	work, uncategorized := f.collection("Work")
	home, _ := f.collection("Home")

	assert.Equal(t, 0, work.Position)
	assert.Equal(t, 1, home.Position)
	assert.Equal(t, 0, uncategorized.Position)
	assert.Equal(t, work.ID, uncategorized.CollectionID)
	assert.Equal(t, []string{"Uncategorized"}, f.sectionNames(work.ID))

	detail, err := f.repo.Collections.GetDetail(f.ctx, work.ID)
	require.NoError(t, err)
	require.Len(t, detail.Sections, 1)
	assert.Empty(t, detail.Sections[0].Tasks)
}

func TestSectionReorderScenario(t *testing.T) {
	f := newFixture(t)
	work, uncategorized := f.collection("Work")
	sprint := f.section(work.ID, "Sprint1")

	assert.Equal(t, 1, sprint.Position)
	assert.Equal(t, []string{"Uncategorized", "Sprint1"}, f.sectionNames(work.ID))

	_, err := f.repo.Sections.Reorder(f.ctx, []ports.ReorderItem{
		{ID: sprint.ID, Position: pos(0)},
		{ID: uncategorized.ID, Position: pos(1)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sprint1", "Uncategorized"}, f.sectionNames(work.ID))
}

func TestTaskDragScenario(t *testing.T) {
	f := newFixture(t)
	_, x := f.collection("Work")
	a := f.task(x.ID, "A", nil)
	b := f.task(x.ID, "B", nil)
	require.Equal(t, 0, a.Position)
	require.Equal(t, 1, b.Position)

	result, err := f.repo.Tasks.Reorder(f.ctx, []ports.ReorderItem{
		{ID: b.ID, Position: pos(0), Container: ref(x.ID)},
		{ID: a.ID, Position: pos(1), Container: ref(x.ID)},
	})
	require.NoError(t, err)
	assert.Equal(t, x.ID, result.Target)
	assert.Empty(t, result.Sources)
	assert.Equal(t, map[string]int{"B": 0, "A": 1}, f.taskPositions(x.ID))
}

func TestReorderSingleItem(t *testing.T) {
	f := newFixture(t)
	_, x := f.collection("Work")
	a := f.task(x.ID, "A", nil)

	_, err := f.repo.Tasks.Reorder(f.ctx, items(a.ID))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 0}, f.taskPositions(x.ID))
}

func TestReorderMovesAcrossSections(t *testing.T) {
	f := newFixture(t)
	work, x := f.collection("Work")
	y := f.section(work.ID, "Y")
	f.task(x.ID, "A", nil)
	b := f.task(x.ID, "B", nil)
	f.task(x.ID, "C", nil)
	d := f.task(y.ID, "D", nil)
	child := f.task(x.ID, "B.1", b)

	result, err := f.repo.Tasks.Reorder(f.ctx, []ports.ReorderItem{
		{ID: b.ID, Position: pos(0), Container: ref(y.ID)},
		{ID: d.ID, Position: pos(1)},
	})
	require.NoError(t, err)

	assert.Equal(t, y.ID, result.Target)
	assert.Equal(t, []string{x.ID}, result.Sources)
	assert.Equal(t, []string{y.ID, x.ID}, result.Containers())
	assert.Equal(t, []string{b.ID, child.ID}, result.Moved)

	assert.Equal(t, map[string]int{"B": 0, "D": 1}, f.taskPositions(y.ID))
	assert.Equal(t, map[string]int{"A": 0, "C": 1}, f.taskPositions(x.ID))

	moved, err := f.repo.Tasks.GetByID(f.ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, y.ID, moved.SectionID, "sub-tasks follow their parent")
}

func TestReorderIsAtomicOnMissingID(t *testing.T) {
	f := newFixture(t)
	_, x := f.collection("Work")
	a := f.task(x.ID, "A", nil)
	b := f.task(x.ID, "B", nil)

	_, err := f.repo.Tasks.Reorder(f.ctx, items(b.ID, "does-not-exist", a.ID))
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
	assert.Equal(t, map[string]int{"A": 0, "B": 1}, f.taskPositions(x.ID))
}

func TestReorderRejectsBadBatches(t *testing.T) {
	f := newFixture(t)
	work, x := f.collection("Work")
	y := f.section(work.ID, "Y")
	a := f.task(x.ID, "A", nil)
	b := f.task(x.ID, "B", nil)
	c := f.task(y.ID, "C", nil)

	_, err := f.repo.Tasks.Reorder(f.ctx, nil)
	assert.ErrorIs(t, err, entities.ErrValidation)

	_, err = f.repo.Tasks.Reorder(f.ctx, items(a.ID, a.ID))
	assert.ErrorIs(t, err, entities.ErrDuplicateID)

	_, err = f.repo.Tasks.Reorder(f.ctx, []ports.ReorderItem{{ID: a.ID, Position: pos(1)}, {ID: b.ID}})
	assert.ErrorIs(t, err, entities.ErrPositionMismatch)

	_, err = f.repo.Tasks.Reorder(f.ctx, items(a.ID, c.ID))
	assert.ErrorIs(t, err, entities.ErrMixedContainers)

	_, err = f.repo.Tasks.Reorder(f.ctx, []ports.ReorderItem{
		{ID: a.ID, Container: ref(x.ID)},
		{ID: c.ID, Container: ref(y.ID)},
	})
	assert.ErrorIs(t, err, entities.ErrMixedContainers)

	_, err = f.repo.Tasks.Reorder(f.ctx, []ports.ReorderItem{{ID: a.ID, Container: ref("overdue")}})
	assert.ErrorIs(t, err, entities.ErrComputedSection)

	_, err = f.repo.Tasks.Reorder(f.ctx, []ports.ReorderItem{{ID: a.ID, Container: ref("day:2026-10-19")}})
	assert.ErrorIs(t, err, entities.ErrComputedSection)

	_, err = f.repo.Tasks.Reorder(f.ctx, []ports.ReorderItem{{ID: a.ID, Container: ref("no-such-section")}})
	assert.ErrorIs(t, err, entities.ErrSectionNotFound)

	assert.Equal(t, map[string]int{"A": 0, "B": 1}, f.taskPositions(x.ID))
	assert.Equal(t, map[string]int{"C": 0}, f.taskPositions(y.ID))
}

func TestReorderKeepsUnnamedSiblingsAfterBatch(t *testing.T) {
	f := newFixture(t)
	_, x := f.collection("Work")
	a := f.task(x.ID, "A", nil)
	f.task(x.ID, "B", nil)
	c := f.task(x.ID, "C", nil)

	// B is not named, e.g. because it is completed and hidden.
	_, err := f.repo.Tasks.Reorder(f.ctx, items(c.ID, a.ID))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"C": 0, "A": 1, "B": 2}, f.taskPositions(x.ID))
}

func TestReorderSubtasksWithinParent(t *testing.T) {
	f := newFixture(t)
	work, x := f.collection("Work")
	y := f.section(work.ID, "Y")
	parent := f.task(x.ID, "P", nil)
	other := f.task(x.ID, "Q", nil)
	c1 := f.task(x.ID, "c1", parent)
	c2 := f.task(x.ID, "c2", parent)

	_, err := f.repo.Tasks.Reorder(f.ctx, items(c2.ID, c1.ID))
	require.NoError(t, err)

	children, err := f.repo.Tasks.GetChildren(f.ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "c2", children[0].Text)
	assert.Equal(t, 0, children[0].Position)
	assert.Equal(t, 1, children[1].Position)

	_, err = f.repo.Tasks.Reorder(f.ctx, items(c1.ID, other.ID))
	assert.ErrorIs(t, err, entities.ErrMixedContainers)

	_, err = f.repo.Tasks.Reorder(f.ctx, []ports.ReorderItem{{ID: c1.ID, Container: ref(y.ID)}})
	assert.ErrorIs(t, err, entities.ErrValidation)
}

func TestUncategorizedCannotLeaveCollection(t *testing.T) {
	f := newFixture(t)
	_, uncategorized := f.collection("Work")
	home, _ := f.collection("Home")

	_, err := f.repo.Sections.Reorder(f.ctx, []ports.ReorderItem{{ID: uncategorized.ID, Container: ref(home.ID)}})
	assert.ErrorIs(t, err, entities.ErrProtectedSection)
}

func TestSectionMovesAcrossCollections(t *testing.T) {
	f := newFixture(t)
	work, _ := f.collection("Work")
	home, homeUncategorized := f.collection("Home")
	sprint := f.section(work.ID, "Sprint1")
	f.section(work.ID, "Sprint2")

	result, err := f.repo.Sections.Reorder(f.ctx, []ports.ReorderItem{
		{ID: homeUncategorized.ID, Container: ref(home.ID)},
		{ID: sprint.ID, Container: ref(home.ID)},
	})
	require.NoError(t, err)
	assert.Equal(t, home.ID, result.Target)
	assert.Equal(t, []string{work.ID}, result.Sources)
	assert.Equal(t, []string{"Uncategorized", "Sprint1"}, f.sectionNames(home.ID))
	assert.Equal(t, []string{"Uncategorized", "Sprint2"}, f.sectionNames(work.ID))
}

func TestCollectionReorderAndDelete(t *testing.T) {
	f := newFixture(t)
	a, _ := f.collection("A")
	b, _ := f.collection("B")
	c, _ := f.collection("C")

	_, err := f.repo.Collections.Reorder(f.ctx, items(c.ID, a.ID, b.ID))
	require.NoError(t, err)

	list, err := f.repo.Collections.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "C", list[0].Name)
	assert.Equal(t, "A", list[1].Name)
	assert.Equal(t, "B", list[2].Name)

	removed, err := f.repo.Collections.Delete(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, removed)
	list, err = f.repo.Collections.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 0, list[0].Position)
	assert.Equal(t, 1, list[1].Position)

	_, err = f.repo.Collections.Delete(f.ctx, a.ID)
	assert.ErrorIs(t, err, entities.ErrCollectionNotFound)
}

func TestSubtaskCreation(t *testing.T) {
	f := newFixture(t)
	work, x := f.collection("Work")
	y := f.section(work.ID, "Y")
	a := f.task(x.ID, "A", nil)
	f.task(x.ID, "B", nil)

	// The sub-task lands in its parent's section whatever section was asked for.
	c1 := &entities.Task{Text: "A.1", SectionID: y.ID, ParentID: &a.ID}
	require.NoError(t, f.repo.Tasks.Create(f.ctx, c1))
	assert.Equal(t, x.ID, c1.SectionID)
	assert.Equal(t, 0, c1.Position)

	c2 := f.task(x.ID, "A.2", a)
	assert.Equal(t, 1, c2.Position)

	next := f.task(x.ID, "C", nil)
	assert.Equal(t, 2, next.Position, "sub-tasks do not count towards section positions")

	err := f.repo.Tasks.Create(f.ctx, &entities.Task{Text: "deep", SectionID: x.ID, ParentID: &c1.ID})
	assert.ErrorIs(t, err, entities.ErrNestingTooDeep)

	err = f.repo.Tasks.Create(f.ctx, &entities.Task{Text: "lost", SectionID: "missing"})
	assert.ErrorIs(t, err, entities.ErrSectionNotFound)
}

func TestTaskUpdateMovesSection(t *testing.T) {
	f := newFixture(t)
	work, x := f.collection("Work")
	y := f.section(work.ID, "Y")
	a := f.task(x.ID, "A", nil)
	f.task(x.ID, "B", nil)
	f.task(y.ID, "D", nil)
	child := f.task(x.ID, "A.1", a)

	priority := entities.PriorityUrgent
	a.Text = "A!"
	a.Priority = &priority
	a.SectionID = y.ID
	require.NoError(t, f.repo.Tasks.Update(f.ctx, a))

	assert.Equal(t, map[string]int{"D": 0, "A!": 1}, f.taskPositions(y.ID))
	assert.Equal(t, map[string]int{"B": 0}, f.taskPositions(x.ID))

	stored, err := f.repo.Tasks.GetByID(f.ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Priority)
	assert.Equal(t, entities.PriorityUrgent, *stored.Priority)

	movedChild, err := f.repo.Tasks.GetByID(f.ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, y.ID, movedChild.SectionID)

	movedChild.SectionID = x.ID
	assert.ErrorIs(t, f.repo.Tasks.Update(f.ctx, movedChild), entities.ErrValidation)
}

func TestDeleteRenumbersAndCascades(t *testing.T) {
	f := newFixture(t)
	work, x := f.collection("Work")
	sprint := f.section(work.ID, "Sprint1")
	f.section(work.ID, "Sprint2")
	a := f.task(x.ID, "A", nil)
	b := f.task(x.ID, "B", nil)
	c := f.task(x.ID, "C", nil)
	child := f.task(x.ID, "B.1", b)
	planned := f.task(sprint.ID, "Plan", nil)

	comment := &entities.Comment{Text: "note", TaskID: b.ID}
	require.NoError(t, f.repo.Comments.Create(f.ctx, comment))
	item := &entities.ChecklistItem{Text: "step", TaskID: b.ID}
	require.NoError(t, f.repo.ChecklistItems.Create(f.ctx, item))

	removed, err := f.repo.Tasks.Delete(f.ctx, b.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{b.ID, child.ID}, removed)
	assert.Equal(t, map[string]int{"A": 0, "C": 1}, f.taskPositions(x.ID))

	_, err = f.repo.Tasks.GetByID(f.ctx, child.ID)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
	_, err = f.repo.Comments.GetByID(f.ctx, comment.ID)
	assert.ErrorIs(t, err, entities.ErrCommentNotFound)
	_, err = f.repo.ChecklistItems.GetByID(f.ctx, item.ID)
	assert.ErrorIs(t, err, entities.ErrChecklistItemNotFound)

	removed, err = f.repo.Sections.Delete(f.ctx, sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{planned.ID}, removed)
	assert.Equal(t, []string{"Uncategorized", "Sprint2"}, f.sectionNames(work.ID))

	removed, err = f.repo.Collections.Delete(f.ctx, work.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, c.ID}, removed)
	_, err = f.repo.Sections.GetByID(f.ctx, x.ID)
	assert.ErrorIs(t, err, entities.ErrSectionNotFound)
	_, err = f.repo.Tasks.GetByID(f.ctx, a.ID)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestListAndDetailCountOpenTopLevelTasks(t *testing.T) {
	f := newFixture(t)
	work, x := f.collection("Work")
	y := f.section(work.ID, "Y")
	a := f.task(x.ID, "A", nil)
	f.task(x.ID, "A.1", a)
	f.task(y.ID, "D", nil)
	done := f.task(y.ID, "E", nil)
	done.Complete = true
	require.NoError(t, f.repo.Tasks.Update(f.ctx, done))

	list, err := f.repo.Collections.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].TaskCount)
	require.Len(t, list[0].Sections, 2)
	assert.Equal(t, 1, list[0].Sections[0].TaskCount)
	assert.Equal(t, 1, list[0].Sections[1].TaskCount)

	detail, err := f.repo.Collections.GetDetail(f.ctx, work.ID)
	require.NoError(t, err)
	require.Len(t, detail.Sections, 2)
	require.Len(t, detail.Sections[0].Tasks, 1)
	assert.Equal(t, "A", detail.Sections[0].Tasks[0].Text)
	require.Len(t, detail.Sections[0].Tasks[0].Children, 1)
	assert.Equal(t, "A.1", detail.Sections[0].Tasks[0].Children[0].Text)
	require.Len(t, detail.Sections[1].Tasks, 1)
	assert.Equal(t, "D", detail.Sections[1].Tasks[0].Text)

	_, err = f.repo.Collections.GetDetail(f.ctx, "missing")
	assert.ErrorIs(t, err, entities.ErrCollectionNotFound)
}

func TestEnsureInbox(t *testing.T) {
	f := newFixture(t)
	work, _ := f.collection("Work")

	inbox, created, err := f.repo.Collections.EnsureInbox(f.ctx)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 0, inbox.Position)

	again, created, err := f.repo.Collections.EnsureInbox(f.ctx)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, inbox.ID, again.ID)

	shifted, err := f.repo.Collections.GetByID(f.ctx, work.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, shifted.Position)

	summary, err := f.repo.Collections.GetSummary(f.ctx, inbox.ID)
	require.NoError(t, err)
	require.Len(t, summary.Sections, 1)
	assert.Equal(t, entities.UncategorizedName, summary.Sections[0].Name)
}

func TestListOpenWithDueDate(t *testing.T) {
	f := newFixture(t)
	_, x := f.collection("Work")
	when := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

	dated := &entities.Task{Text: "dated", SectionID: x.ID, DueDate: due(when)}
	require.NoError(t, f.repo.Tasks.Create(f.ctx, dated))
	f.task(x.ID, "undated", nil)
	done := &entities.Task{Text: "done", SectionID: x.ID, DueDate: due(when)}
	require.NoError(t, f.repo.Tasks.Create(f.ctx, done))
	done.Complete = true
	require.NoError(t, f.repo.Tasks.Update(f.ctx, done))

	tasks, err := f.repo.Tasks.ListOpenWithDueDate(f.ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "dated", tasks[0].Text)
	require.NotNil(t, tasks[0].DueDate)
	assert.True(t, when.Equal(*tasks[0].DueDate))
}

func TestCommentsAndChecklist(t *testing.T) {
	f := newFixture(t)
	_, x := f.collection("Work")
	task := f.task(x.ID, "A", nil)
	other := f.task(x.ID, "B", nil)

	older := &entities.Comment{Text: "first", TaskID: task.ID, Posted: time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)}
	newer := &entities.Comment{Text: "second", TaskID: task.ID, Posted: time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)}
	require.NoError(t, f.repo.Comments.Create(f.ctx, older))
	require.NoError(t, f.repo.Comments.Create(f.ctx, newer))

	comments, err := f.repo.Comments.ListByTask(f.ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)

	older.Text = "edited"
	require.NoError(t, f.repo.Comments.Update(f.ctx, older))
	require.NoError(t, f.repo.Comments.Delete(f.ctx, newer.ID))
	comments, err = f.repo.Comments.ListByTask(f.ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "edited", comments[0].Text)

	err = f.repo.Comments.Create(f.ctx, &entities.Comment{Text: "x", TaskID: "missing"})
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)

	var ids []string
	for _, text := range []string{"one", "two", "three"} {
		item := &entities.ChecklistItem{Text: text, TaskID: task.ID}
		require.NoError(t, f.repo.ChecklistItems.Create(f.ctx, item))
		ids = append(ids, item.ID)
	}

	_, err = f.repo.ChecklistItems.Reorder(f.ctx, items(ids[2], ids[0], ids[1]))
	require.NoError(t, err)
	list, err := f.repo.ChecklistItems.ListByTask(f.ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "three", list[0].Text)
	assert.Equal(t, "one", list[1].Text)

	// Move "one" to the other task's checklist.
	result, err := f.repo.ChecklistItems.Reorder(f.ctx, []ports.ReorderItem{{ID: ids[0], Container: ref(other.ID)}})
	require.NoError(t, err)
	assert.Equal(t, []string{task.ID}, result.Sources)

	list, err = f.repo.ChecklistItems.ListByTask(f.ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 0, list[0].Position)
	assert.Equal(t, 1, list[1].Position)

	require.NoError(t, f.repo.ChecklistItems.Delete(f.ctx, list[0].ID))
	list, err = f.repo.ChecklistItems.ListByTask(f.ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 0, list[0].Position)
}

func TestReorderLeavesOtherContainersUntouched(t *testing.T) {
	f := newFixture(t)
	work, x := f.collection("Work")
	y := f.section(work.ID, "Y")
	z := f.section(work.ID, "Z")
	home, _ := f.collection("Home")
	f.section(home.ID, "Garden")
	f.section(home.ID, "Kitchen")

	a := f.task(x.ID, "A", nil)
	b := f.task(x.ID, "B", nil)
	c := f.task(x.ID, "C", nil)
	f.task(y.ID, "D", nil)
	f.task(y.ID, "E", nil)

	_, err := f.repo.Tasks.Reorder(f.ctx, items(c.ID, a.ID, b.ID))
	require.NoError(t, err)
	_, err = f.repo.Sections.Reorder(f.ctx, items(z.ID, x.ID, y.ID))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"C": 0, "A": 1, "B": 2}, f.taskPositions(x.ID))
	assert.Equal(t, map[string]int{"D": 0, "E": 1}, f.taskPositions(y.ID))
	assert.Equal(t, []string{"Z", "Uncategorized", "Y"}, f.sectionNames(work.ID))
	assert.Equal(t, []string{"Uncategorized", "Garden", "Kitchen"}, f.sectionNames(home.ID))
}

func TestForUpdateOnlyLocksPostgresTransactions(t *testing.T) {
	assert.Equal(t, " FOR UPDATE", forUpdate("postgres", true))
	assert.Empty(t, forUpdate("postgres", false))
	assert.Empty(t, forUpdate("sqlite", true))

	f := newFixture(t)
	db := f.repo.Tasks.db.DB
	assert.Empty(t, lockClause(db))

	tx, err := db.BeginTxx(f.ctx, nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()
	assert.Empty(t, lockClause(tx))
}

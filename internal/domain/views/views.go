// Package views composes the synthetic Today and Upcoming collections from a
// flat task list. Nothing here touches stored section ids or positions.
package views

import (
	"sort"
	"time"

	"github.com/paratus/tasks/internal/domain/entities"
)

// DayLabelLayout renders day bucket names, e.g. "Oct 19 - Mon".
const DayLabelLayout = "Jan 02 - Mon"

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// WeekBounds returns the Sunday that starts the week containing t and the
// Sunday after it.
func WeekBounds(t time.Time, loc *time.Location) (start, end time.Time) {
	day := StartOfDay(t, loc)
	start = day.AddDate(0, 0, -int(day.Weekday()))
	return start, start.AddDate(0, 0, 7)
}

// Today partitions incomplete tasks with a due date into Overdue and Today.
func Today(now time.Time, loc *time.Location, tasks []*entities.Task) entities.ViewCollection {
	start := StartOfDay(now, loc)
	end := start.AddDate(0, 0, 1)

	return entities.ViewCollection{
		ID:        entities.TodayName,
		Name:      entities.TodayName,
		Synthetic: true,
		Sections: []entities.SectionView{
			overdueBucket(start, tasks),
			bucket(entities.ComputedSection{
				Key:   entities.ComputedTodayKey,
				Name:  "Today",
				Start: start,
				End:   end,
			}, tasks),
		},
	}
}

// Upcoming returns an Overdue bucket followed by one bucket per day of the
// Sunday to Saturday week containing now. Tasks due outside the week are absent.
func Upcoming(now time.Time, loc *time.Location, tasks []*entities.Task) entities.ViewCollection {
	today := StartOfDay(now, loc)
	weekStart, _ := WeekBounds(now, loc)

	sections := make([]entities.SectionView, 0, 8)
	sections = append(sections, overdueBucket(today, tasks))
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		sections = append(sections, bucket(entities.ComputedSection{
			Key:   entities.ComputedDayPrefix + day.Format("2006-01-02"),
			Name:  day.Format(DayLabelLayout),
			Start: day,
			End:   day.AddDate(0, 0, 1),
		}, tasks))
	}

	return entities.ViewCollection{
		ID:        entities.UpcomingName,
		Name:      entities.UpcomingName,
		Synthetic: true,
		Sections:  sections,
	}
}

func overdueBucket(startOfToday time.Time, tasks []*entities.Task) entities.SectionView {
	var matched []*entities.Task
	for _, t := range tasks {
		if dueOpen(t) && t.DueDate.Before(startOfToday) {
			matched = append(matched, t)
		}
	}
	sortByText(matched)
	return entities.ComputedSectionView(entities.ComputedSection{
		Key:  entities.ComputedOverdueKey,
		Name: "Overdue",
		End:  startOfToday,
	}, matched)
}

func bucket(cs entities.ComputedSection, tasks []*entities.Task) entities.SectionView {
	var matched []*entities.Task
	for _, t := range tasks {
		if dueOpen(t) && !t.DueDate.Before(cs.Start) && t.DueDate.Before(cs.End) {
			matched = append(matched, t)
		}
	}
	sortByText(matched)
	return entities.ComputedSectionView(cs, matched)
}

func dueOpen(t *entities.Task) bool {
	return t != nil && !t.Complete && t.DueDate != nil
}

// Tasks in a bucket come from different sections, so their positions are not
// comparable; order by text with id as the final tie-break.
func sortByText(tasks []*entities.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Text != tasks[j].Text {
			return tasks[i].Text < tasks[j].Text
		}
		return tasks[i].ID < tasks[j].ID
	})
}

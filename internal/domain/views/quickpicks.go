package views

import "time"

// QuickPick is a preset due date offered by date pickers.
type QuickPick struct {
	Label string    `json:"label"`
	Value time.Time `json:"value"`
}

// QuickPicks returns the preset due dates relative to now. On Saturdays
// "This weekend" would be today, so "Next weekend" is offered instead.
func QuickPicks(now time.Time, loc *time.Location) []QuickPick {
	today := StartOfDay(now, loc)
	weekStart, _ := WeekBounds(now, loc)
	saturday := weekStart.AddDate(0, 0, 6)

	picks := []QuickPick{
		{Label: "Today", Value: today},
		{Label: "Tomorrow", Value: today.AddDate(0, 0, 1)},
	}
	if today.Weekday() != time.Saturday {
		picks = append(picks, QuickPick{Label: "This weekend", Value: saturday})
	}
	picks = append(picks, QuickPick{Label: "Next week", Value: next(today, time.Monday)})
	if today.Weekday() == time.Saturday {
		picks = append(picks, QuickPick{Label: "Next weekend", Value: next(today, time.Saturday)})
	}
	return picks
}

// next returns the first day strictly after day that falls on wd.
func next(day time.Time, wd time.Weekday) time.Time {
	delta := (int(wd) - int(day.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return day.AddDate(0, 0, delta)
}

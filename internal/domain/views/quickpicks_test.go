package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(picks []QuickPick) []string {
	out := make([]string, 0, len(picks))
	for _, p := range picks {
		out = append(out, p.Label)
	}
	return out
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestQuickPicksWeekday(t *testing.T) {
	monday := time.Date(2026, 10, 19, 14, 30, 0, 0, time.UTC)
	picks := QuickPicks(monday, time.UTC)

	require.Equal(t, []string{"Today", "Tomorrow", "This weekend", "Next week"}, labels(picks))
	assert.Equal(t, day(2026, 10, 19), picks[0].Value)
	assert.Equal(t, day(2026, 10, 20), picks[1].Value)
	assert.Equal(t, day(2026, 10, 24), picks[2].Value)
	// Monday's "next week" is the following Monday.
	assert.Equal(t, day(2026, 10, 26), picks[3].Value)
}

func TestQuickPicksSaturday(t *testing.T) {
	saturday := time.Date(2026, 10, 24, 9, 0, 0, 0, time.UTC)
	picks := QuickPicks(saturday, time.UTC)

	require.Equal(t, []string{"Today", "Tomorrow", "Next week", "Next weekend"}, labels(picks))
	assert.Equal(t, day(2026, 10, 25), picks[1].Value)
	assert.Equal(t, day(2026, 10, 26), picks[2].Value)
	assert.Equal(t, day(2026, 10, 31), picks[3].Value)
}

func TestWeekBounds(t *testing.T) {
	start, end := WeekBounds(time.Date(2026, 10, 18, 23, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, day(2026, 10, 18), start)
	assert.Equal(t, day(2026, 10, 25), end)
}

package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/paratus/tasks/internal/domain/entities"
	"github.com/paratus/tasks/internal/domain/views"
)

func TestPrinterView(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	now := time.Date(2026, 10, 21, 10, 0, 0, 0, time.UTC)
	overdue := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	later := time.Date(2026, 10, 21, 17, 30, 0, 0, time.UTC)
	urgent := entities.PriorityUrgent

	view := views.Today(now, time.UTC, []*entities.Task{
		{ID: "t1", Text: "Renew passport", DueDate: &overdue},
		{ID: "t2", Text: "Call the bank", DueDate: &later, Priority: &urgent},
	})

	var buf bytes.Buffer
	p := &Printer{Out: &buf, Location: time.UTC, ShowIDs: true}
	p.View(&view)

	out := buf.String()
	assert.Contains(t, out, "Today\n")
	assert.Contains(t, out, "Overdue - 1 task\n")
	assert.Contains(t, out, "Renew passport")
	assert.Contains(t, out, "Tue Oct 20")
	assert.Contains(t, out, "Wed Oct 21 17:30")
	assert.Contains(t, out, "URGENT")
	assert.Contains(t, out, "t2")
}

func TestPrinterEmptySection(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	view := views.Today(time.Date(2026, 10, 21, 10, 0, 0, 0, time.UTC), time.UTC, nil)

	var buf bytes.Buffer
	(&Printer{Out: &buf}).View(&view)

	assert.Contains(t, buf.String(), "Today - 0 tasks\n  none\n")
	assert.NotContains(t, buf.String(), "[ ]")
}

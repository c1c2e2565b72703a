package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/paratus/tasks/internal/domain/entities"
)

// Printer renders views for the terminal.
type Printer struct {
	Out      io.Writer
	Location *time.Location
	ShowIDs  bool
}

func (p *Printer) View(v *entities.ViewCollection) {
	title := color.New(color.Bold, color.Underline)
	_, _ = title.Fprintln(p.Out, v.Name)
	_, _ = fmt.Fprintln(p.Out)

	for _, section := range v.Sections {
		p.section(section)
	}
}

func (p *Printer) section(s entities.SectionView) {
	heading := color.New(color.Bold)
	faint := color.New(color.Faint)

	_, _ = heading.Fprint(p.Out, s.Name())
	switch n := len(s.Tasks); n {
	case 1:
		_, _ = faint.Fprintln(p.Out, " - 1 task")
	default:
		_, _ = faint.Fprintf(p.Out, " - %d tasks\n", n)
	}

	if len(s.Tasks) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprint(p.Out, "  none\n\n")
		return
	}

	overdue := s.Kind == entities.SectionKindComputed && s.Computed != nil && s.Computed.Key == entities.ComputedOverdueKey
	due := color.New()
	if overdue {
		due = color.New(color.FgRed)
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, t := range s.Tasks {
		row := []interface{}{"  " + checkbox(t.Complete), t.Text, due.Sprint(p.dueLabel(t.DueDate)), priorityLabel(t.Priority)}
		if p.ShowIDs {
			row = append(row, faint.Sprint(t.ID))
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(p.Out, tbl)
	_, _ = fmt.Fprintln(p.Out)
}

func (p *Printer) dueLabel(due *time.Time) string {
	if due == nil {
		return ""
	}
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	local := due.In(loc)
	if local.Hour() == 0 && local.Minute() == 0 {
		return local.Format("Mon Jan 2")
	}
	return local.Format("Mon Jan 2 15:04")
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func priorityLabel(p *entities.Priority) string {
	if p == nil {
		return ""
	}
	return string(*p)
}

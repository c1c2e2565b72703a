package entities

import (
	"strings"
	"time"
)

// SectionKind tags a SectionView as stored or computed.
type SectionKind string

const (
	SectionKindStored   SectionKind = "stored"
	SectionKindComputed SectionKind = "computed"
)

// Computed section keys. Day buckets use ComputedDayPrefix + YYYY-MM-DD.
const (
	ComputedOverdueKey = "overdue"
	ComputedTodayKey   = "today"
	ComputedDayPrefix  = "day:"
)

// IsComputedSectionKey reports whether id names a computed bucket rather than a
// stored section.
func IsComputedSectionKey(id string) bool {
	switch {
	case strings.EqualFold(id, ComputedOverdueKey), strings.EqualFold(id, ComputedTodayKey):
		return true
	case strings.HasPrefix(id, ComputedDayPrefix):
		_, err := time.Parse("2006-01-02", strings.TrimPrefix(id, ComputedDayPrefix))
		return err == nil
	}
	return false
}

// ComputedSection is a date bucket assembled at read time. It has no id that
// can be written back to the store.
type ComputedSection struct {
	Key   string    `json:"key"`
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SectionView is either a stored section or a computed bucket. Exactly one of
// Stored and Computed is set, matching Kind.
type SectionView struct {
	Kind     SectionKind      `json:"kind"`
	Stored   *Section         `json:"stored,omitempty"`
	Computed *ComputedSection `json:"computed,omitempty"`
	Tasks    []*Task          `json:"tasks"`
}

// StoredSectionView wraps a persisted section.
func StoredSectionView(s *Section, tasks []*Task) SectionView {
	return SectionView{Kind: SectionKindStored, Stored: s, Tasks: nonNil(tasks)}
}

// ComputedSectionView wraps a computed bucket.
func ComputedSectionView(c ComputedSection, tasks []*Task) SectionView {
	return SectionView{Kind: SectionKindComputed, Computed: &c, Tasks: nonNil(tasks)}
}

// PersistentID returns the stored section id. ok is false for computed buckets.
func (v SectionView) PersistentID() (id string, ok bool) {
	if v.Kind != SectionKindStored || v.Stored == nil {
		return "", false
	}
	return v.Stored.ID, true
}

// Name returns the display name for either variant.
func (v SectionView) Name() string {
	if v.Stored != nil {
		return v.Stored.Name
	}
	if v.Computed != nil {
		return v.Computed.Name
	}
	return ""
}

// ViewCollection is a collection-shaped projection. Synthetic views (Today,
// Upcoming) are never persisted.
type ViewCollection struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Synthetic bool          `json:"synthetic"`
	Sections  []SectionView `json:"sections"`
}

func nonNil(tasks []*Task) []*Task {
	if tasks == nil {
		return []*Task{}
	}
	return tasks
}

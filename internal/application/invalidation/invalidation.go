// Package invalidation maps each mutation to the logical queries whose cached
// results it makes stale. The server evaluates the table after every
// successful mutation and reports the keys to clients in HeaderName.
package invalidation

import (
	"context"
	"strings"
	"sync"
)

// HeaderName carries the comma-separated query keys invalidated by a response.
const HeaderName = "X-Invalidate-Queries"

// Query procedures
const (
	CollectionReadAll = "collection.readAll"
	CollectionInbox   = "collection.inbox"
	CollectionReadOne = "collection.readOne"
	TaskToday         = "task.today"
	TaskUpcoming      = "task.upcoming"
	TaskReadOne       = "task.readOne"
)

// Mutation names a write procedure.
type Mutation string

const (
	CollectionCreate     Mutation = "collection.create"
	CollectionUpdate     Mutation = "collection.update"
	CollectionDelete     Mutation = "collection.delete"
	CollectionReorder    Mutation = "collection.reorder"
	CollectionInitialize Mutation = "collection.initialize"
	SectionCreate        Mutation = "section.create"
	SectionUpdate        Mutation = "section.update"
	SectionDelete        Mutation = "section.delete"
	SectionReorder       Mutation = "section.reorder"
	TaskCreate           Mutation = "task.create"
	TaskUpdate           Mutation = "task.update"
	TaskDelete           Mutation = "task.delete"
	TaskReorder          Mutation = "task.reorder"
	CommentCreate        Mutation = "comment.create"
	CommentUpdate        Mutation = "comment.update"
	CommentDelete        Mutation = "comment.delete"
	ChecklistItemCreate  Mutation = "checklistItem.create"
	ChecklistItemUpdate  Mutation = "checklistItem.update"
	ChecklistItemDelete  Mutation = "checklistItem.delete"
	ChecklistItemReorder Mutation = "checklistItem.reorder"
)

// QueryKey identifies one cached query result, e.g. collection.readOne:<id>.
type QueryKey struct {
	Procedure string
	Param     string
}

func (k QueryKey) String() string {
	if k.Param == "" {
		return k.Procedure
	}
	return k.Procedure + ":" + k.Param
}

// ParseKey is the inverse of QueryKey.String.
func ParseKey(s string) QueryKey {
	proc, param, _ := strings.Cut(strings.TrimSpace(s), ":")
	return QueryKey{Procedure: proc, Param: param}
}

// Scope lists the records a mutation touched.
type Scope struct {
	CollectionIDs []string
	TaskIDs       []string
}

// Rule turns a mutation scope into the keys to invalidate.
type Rule func(Scope) []QueryKey

// Table maps mutations to rules.
type Table struct {
	rules map[Mutation]Rule
}

// NewTable returns the invalidation table used by the server. Every mutation
// that can change task membership, counts or due dates invalidates all list
// and computed views plus the affected collections; comment and checklist
// mutations only invalidate their task.
func NewTable() *Table {
	structural := Rule(func(s Scope) []QueryKey {
		keys := []QueryKey{
			{Procedure: CollectionReadAll},
			{Procedure: CollectionInbox},
			{Procedure: TaskToday},
			{Procedure: TaskUpcoming},
		}
		for _, id := range s.CollectionIDs {
			keys = append(keys, QueryKey{Procedure: CollectionReadOne, Param: id})
		}
		for _, id := range s.TaskIDs {
			keys = append(keys, QueryKey{Procedure: TaskReadOne, Param: id})
		}
		return keys
	})
	taskDetail := Rule(func(s Scope) []QueryKey {
		keys := make([]QueryKey, 0, len(s.TaskIDs))
		for _, id := range s.TaskIDs {
			keys = append(keys, QueryKey{Procedure: TaskReadOne, Param: id})
		}
		return keys
	})

	t := &Table{rules: make(map[Mutation]Rule)}
	for _, m := range []Mutation{
		CollectionCreate, CollectionUpdate, CollectionDelete, CollectionReorder, CollectionInitialize,
		SectionCreate, SectionUpdate, SectionDelete, SectionReorder,
		TaskCreate, TaskUpdate, TaskDelete, TaskReorder,
	} {
		t.rules[m] = structural
	}
	for _, m := range []Mutation{
		CommentCreate, CommentUpdate, CommentDelete,
		ChecklistItemCreate, ChecklistItemUpdate, ChecklistItemDelete, ChecklistItemReorder,
	} {
		t.rules[m] = taskDetail
	}
	return t
}

// Keys evaluates the rule for m. Duplicates and empty params are dropped.
// Unknown mutations invalidate nothing.
func (t *Table) Keys(m Mutation, s Scope) []QueryKey {
	rule, ok := t.rules[m]
	if !ok {
		return nil
	}
	seen := make(map[QueryKey]struct{})
	var out []QueryKey
	for _, k := range rule(s) {
		if (k.Procedure == CollectionReadOne || k.Procedure == TaskReadOne) && k.Param == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Record evaluates m and adds the keys to the collector carried by ctx, if any.
func (t *Table) Record(ctx context.Context, m Mutation, s Scope) []QueryKey {
	keys := t.Keys(m, s)
	if c := FromContext(ctx); c != nil {
		c.Add(keys...)
	}
	return keys
}

// Collector accumulates invalidated keys over one request.
type Collector struct {
	mu   sync.Mutex
	keys []QueryKey
	seen map[QueryKey]struct{}
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{seen: make(map[QueryKey]struct{})}
}

// Add appends keys not already collected.
func (c *Collector) Add(keys ...QueryKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		if _, ok := c.seen[k]; ok {
			continue
		}
		c.seen[k] = struct{}{}
		c.keys = append(c.keys, k)
	}
}

// Keys returns the collected keys in insertion order.
func (c *Collector) Keys() []QueryKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]QueryKey(nil), c.keys...)
}

type collectorKey struct{}

// WithCollector returns a context carrying c.
func WithCollector(ctx context.Context, c *Collector) context.Context {
	return context.WithValue(ctx, collectorKey{}, c)
}

// FromContext returns the collector carried by ctx, or nil.
func FromContext(ctx context.Context) *Collector {
	c, _ := ctx.Value(collectorKey{}).(*Collector)
	return c
}

// FormatHeader renders keys for HeaderName.
func FormatHeader(keys []QueryKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, ", ")
}

// ParseHeader parses a HeaderName value.
func ParseHeader(v string) []QueryKey {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	var keys []QueryKey
	for _, part := range strings.Split(v, ",") {
		if k := ParseKey(part); k.Procedure != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Strings renders keys for logging.
func Strings(keys []QueryKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

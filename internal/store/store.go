// Package store provides the normalized in-memory cache shared by every view.
// Entities are merged by (kind, id) so a write to one task is visible to every
// query result that references it, and listeners are notified synchronously
// after each merge.
package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/h0rv/pmboard/internal/domain"
)

// ErrTaskNotFound indicates the task is not in the cache.
var ErrTaskNotFound = errors.New("task not found")

// Kind names an entity type.
type Kind string

const (
	KindProject Kind = "Project"
	KindTask    Kind = "Task"
	KindComment Kind = "Comment"
)

// Key identifies one cached entity.
type Key struct {
	Kind Kind
	ID   string
}

// Change describes what a single write touched.
type Change struct {
	Entities []Key
	Queries  []QueryKey
}

// Empty reports whether the change touched nothing.
func (c Change) Empty() bool { return len(c.Entities) == 0 && len(c.Queries) == 0 }

// Touches reports whether the change affects the given query or any of the
// given entities.
func (c Change) Touches(q QueryKey, keys ...Key) bool {
	for _, cq := range c.Queries {
		if cq == q {
			return true
		}
	}
	for _, ck := range c.Entities {
		for _, k := range keys {
			if ck == k {
				return true
			}
		}
	}
	return false
}

// TouchesKind reports whether the change affects any entity of kind.
func (c Change) TouchesKind(kind Kind) bool {
	for _, ck := range c.Entities {
		if ck.Kind == kind {
			return true
		}
	}
	return false
}

// Listener is invoked after every write with the keys it touched.
type Listener func(Change)

// QueryInfo is metadata about a cached query result.
type QueryInfo struct {
	FetchedAt time.Time
	Stale     bool
}

type projectRecord struct {
	project  domain.Project // Tasks always nil; see taskIDs
	taskIDs  []string
	hasTasks bool

	// Write revisions of the counters and of the task list. Counters older
	// than the task list no longer describe it and are not handed out.
	countsRev uint64
	tasksRev  uint64
}

type taskRecord struct {
	task        domain.Task // Comments always nil; see commentIDs
	commentIDs  []string
	hasComments bool
}

type queryEntry struct {
	refs      []string // project IDs, in response order
	fetchedAt time.Time
	stale     bool
}

// Store is the normalized entity cache. The zero value is not usable; create
// one per process (or per test) with New.
type Store struct {
	mu sync.RWMutex

	projects map[string]*projectRecord
	tasks    map[string]*taskRecord
	comments map[string]domain.Comment
	queries  map[QueryKey]*queryEntry

	listeners  map[int]Listener
	nextListen int

	rev uint64 // bumped on every write

	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used to stamp query results.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a new empty Store instance.
func New(opts ...Option) *Store {
	s := &Store{
		projects:  make(map[string]*projectRecord),
		tasks:     make(map[string]*taskRecord),
		comments:  make(map[string]domain.Comment),
		queries:   make(map[QueryKey]*queryEntry),
		listeners: make(map[int]Listener),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextListen
	s.nextListen++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// write runs fn under the write lock, then notifies listeners outside it so
// they can read a consistent snapshot.
func (s *Store) write(fn func(c *changeSet)) Change {
	cs := newChangeSet()

	s.mu.Lock()
	s.rev++
	fn(cs)
	change := cs.change()
	var listeners []Listener
	if !change.Empty() {
		ids := make([]int, 0, len(s.listeners))
		for id := range s.listeners {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			listeners = append(listeners, s.listeners[id])
		}
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(change)
	}
	return change
}

// WriteProjectList merges a list response and records it under q.
func (s *Store) WriteProjectList(q QueryKey, projects []domain.Project) Change {
	return s.write(func(cs *changeSet) {
		refs := make([]string, 0, len(projects))
		for _, p := range projects {
			s.mergeProject(cs, p, false)
			refs = append(refs, p.ID)
		}
		s.queries[q] = &queryEntry{refs: refs, fetchedAt: s.now()}
		cs.query(q)
	})
}

// WriteProjectDetail merges a detail response and records it under q.
// A nil project records a resolved-but-missing result.
func (s *Store) WriteProjectDetail(q QueryKey, p *domain.Project) Change {
	return s.write(func(cs *changeSet) {
		entry := &queryEntry{fetchedAt: s.now()}
		if p != nil {
			s.mergeProject(cs, *p, true)
			entry.refs = []string{p.ID}
		}
		s.queries[q] = entry
		cs.query(q)
	})
}

// MergeProject merges a project returned by a mutation.
func (s *Store) MergeProject(p domain.Project) Change {
	return s.write(func(cs *changeSet) { s.mergeProject(cs, p, true) })
}

// MergeTask merges a task returned by a mutation. When the task names a
// known project whose task list is loaded, the task is appended to it.
func (s *Store) MergeTask(t domain.Task) Change {
	return s.write(func(cs *changeSet) {
		s.mergeTask(cs, t, true)
		if pr, ok := s.projects[t.ProjectID]; ok && pr.hasTasks {
			if !contains(pr.taskIDs, t.ID) {
				pr.taskIDs = append(pr.taskIDs, t.ID)
			}
			pr.tasksRev = s.rev
			cs.entity(KindProject, t.ProjectID)
		}
	})
}

// MergeComment merges a comment and appends it to its task's comment list.
func (s *Store) MergeComment(c domain.Comment) Change {
	return s.write(func(cs *changeSet) {
		s.comments[c.ID] = c
		cs.entity(KindComment, c.ID)
		if tr, ok := s.tasks[c.TaskID]; ok && !contains(tr.commentIDs, c.ID) {
			tr.commentIDs = append(tr.commentIDs, c.ID)
			tr.hasComments = true
			cs.entity(KindTask, c.TaskID)
			if tr.task.ProjectID != "" {
				cs.entity(KindProject, tr.task.ProjectID)
			}
		}
	})
}

// PatchTask applies fn to the cached task. Only the fields fn touches
// change; the rest keep their cached values.
func (s *Store) PatchTask(id string, fn func(*domain.Task)) error {
	var found bool
	s.write(func(cs *changeSet) {
		tr, ok := s.tasks[id]
		if !ok {
			return
		}
		found = true
		fn(&tr.task)
		tr.task.ID = id
		cs.entity(KindTask, id)
		if pr, ok := s.projects[tr.task.ProjectID]; ok {
			if pr.hasTasks {
				pr.tasksRev = s.rev
			}
			cs.entity(KindProject, tr.task.ProjectID)
		}
	})
	if !found {
		return ErrTaskNotFound
	}
	return nil
}

// RemoveTask evicts a task and its comments, and drops it from its project.
func (s *Store) RemoveTask(id string) Change {
	return s.write(func(cs *changeSet) { s.removeTask(cs, id) })
}

// RemoveProject evicts a project with its tasks and drops it from every
// cached query result.
func (s *Store) RemoveProject(id string) Change {
	return s.write(func(cs *changeSet) {
		pr, ok := s.projects[id]
		if ok {
			for _, tid := range pr.taskIDs {
				s.removeTask(cs, tid)
			}
			delete(s.projects, id)
			cs.entity(KindProject, id)
		}
		for q, entry := range s.queries {
			if contains(entry.refs, id) {
				entry.refs = without(entry.refs, id)
				cs.query(q)
			}
		}
	})
}

// Invalidate marks query results stale so the next cache-first read
// goes to the network.
func (s *Store) Invalidate(keys ...QueryKey) Change {
	return s.write(func(cs *changeSet) {
		for _, q := range keys {
			if entry, ok := s.queries[q]; ok && !entry.stale {
				entry.stale = true
				cs.query(q)
			}
		}
	})
}

// Query returns metadata for a cached query result.
func (s *Store) Query(q QueryKey) (QueryInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.queries[q]
	if !ok {
		return QueryInfo{}, false
	}
	return QueryInfo{FetchedAt: entry.fetchedAt, Stale: entry.stale}, true
}

// Fresh reports whether q is cached, not invalidated, and younger than ttl.
func (s *Store) Fresh(q QueryKey, ttl time.Duration) bool {
	info, ok := s.Query(q)
	if !ok || info.Stale {
		return false
	}
	return s.now().Sub(info.FetchedAt) < ttl
}

// ProjectList returns the denormalized projects referenced by q, in
// response order.
func (s *Store) ProjectList(q QueryKey) ([]domain.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.queries[q]
	if !ok {
		return nil, false
	}
	projects := make([]domain.Project, 0, len(entry.refs))
	for _, id := range entry.refs {
		if p, ok := s.project(id); ok {
			projects = append(projects, p)
		}
	}
	return projects, true
}

// ProjectDetail returns the project recorded under q. cached is false when
// q has never been written; project is nil when it resolved to nothing.
func (s *Store) ProjectDetail(q QueryKey) (project *domain.Project, cached bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.queries[q]
	if !ok {
		return nil, false
	}
	if len(entry.refs) == 0 {
		return nil, true
	}
	p, ok := s.project(entry.refs[0])
	if !ok {
		return nil, true
	}
	return &p, true
}

// Task returns a denormalized copy of the task.
func (s *Store) Task(id string) (domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.task(id)
	if !ok {
		return domain.Task{}, ErrTaskNotFound
	}
	return t, nil
}

// mergeProject must be called with the write lock held. Optional parts the
// response did not carry (counters, task list) keep their cached values.
// Embedded tasks of a summary response (full unset) only carry id, title
// and status.
func (s *Store) mergeProject(cs *changeSet, p domain.Project, full bool) {
	pr, ok := s.projects[p.ID]
	if !ok {
		pr = &projectRecord{}
		s.projects[p.ID] = pr
	}

	taskCount, completed := pr.project.TaskCount, pr.project.CompletedTasks
	pr.project = p
	pr.project.Tasks = nil
	pr.project.HasTasks = false
	if p.TaskCount == nil {
		pr.project.TaskCount = taskCount
	}
	if p.CompletedTasks == nil {
		pr.project.CompletedTasks = completed
	}
	if p.TaskCount != nil || p.CompletedTasks != nil {
		pr.countsRev = s.rev
	}

	if p.HasTasks {
		ids := make([]string, 0, len(p.Tasks))
		for _, t := range p.Tasks {
			t.ProjectID = p.ID
			s.mergeTask(cs, t, full)
			ids = append(ids, t.ID)
		}
		// Tasks that dropped out of the authoritative list are gone.
		for _, old := range pr.taskIDs {
			if !contains(ids, old) {
				s.evictTask(cs, old)
			}
		}
		pr.taskIDs = ids
		pr.hasTasks = true
		pr.tasksRev = s.rev
	}
	cs.entity(KindProject, p.ID)
}

// mergeTask must be called with the write lock held. A summary (full
// unset) of an already cached task only updates the fields summaries carry.
func (s *Store) mergeTask(cs *changeSet, t domain.Task, full bool) {
	tr, ok := s.tasks[t.ID]
	if !ok {
		tr = &taskRecord{}
		s.tasks[t.ID] = tr
	} else if !full {
		tr.task.Title = t.Title
		tr.task.Status = t.Status
		if t.ProjectID != "" {
			tr.task.ProjectID = t.ProjectID
		}
		cs.entity(KindTask, t.ID)
		return
	}

	projectID := tr.task.ProjectID
	tr.task = t
	tr.task.Comments = nil
	if t.ProjectID == "" {
		tr.task.ProjectID = projectID
	}

	if t.Comments != nil {
		ids := make([]string, 0, len(t.Comments))
		for _, c := range t.Comments {
			c.TaskID = t.ID
			s.comments[c.ID] = c
			cs.entity(KindComment, c.ID)
			ids = append(ids, c.ID)
		}
		tr.commentIDs = ids
		tr.hasComments = true
	}
	cs.entity(KindTask, t.ID)
}

// removeTask must be called with the write lock held.
func (s *Store) removeTask(cs *changeSet, id string) {
	tr, ok := s.tasks[id]
	if !ok {
		return
	}
	if pr, ok := s.projects[tr.task.ProjectID]; ok {
		pr.taskIDs = without(pr.taskIDs, id)
		pr.tasksRev = s.rev
		cs.entity(KindProject, tr.task.ProjectID)
	}
	s.evictTask(cs, id)
}

func (s *Store) evictTask(cs *changeSet, id string) {
	tr, ok := s.tasks[id]
	if !ok {
		return
	}
	for _, cid := range tr.commentIDs {
		delete(s.comments, cid)
		cs.entity(KindComment, cid)
	}
	delete(s.tasks, id)
	cs.entity(KindTask, id)
}

// project must be called with the read lock held.
func (s *Store) project(id string) (domain.Project, bool) {
	pr, ok := s.projects[id]
	if !ok {
		return domain.Project{}, false
	}
	p := pr.project
	if pr.hasTasks {
		if pr.tasksRev > pr.countsRev {
			p.TaskCount, p.CompletedTasks = nil, nil
		}
		p.HasTasks = true
		p.Tasks = make([]domain.Task, 0, len(pr.taskIDs))
		for _, tid := range pr.taskIDs {
			if t, ok := s.task(tid); ok {
				p.Tasks = append(p.Tasks, t)
			}
		}
	}
	return p, true
}

// task must be called with the read lock held.
func (s *Store) task(id string) (domain.Task, bool) {
	tr, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, false
	}
	t := tr.task
	if tr.hasComments {
		t.Comments = make([]domain.Comment, 0, len(tr.commentIDs))
		for _, cid := range tr.commentIDs {
			if c, ok := s.comments[cid]; ok {
				t.Comments = append(t.Comments, c)
			}
		}
	}
	return t, true
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

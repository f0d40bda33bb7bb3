package gql

import (
	"context"
	"time"

	"github.com/h0rv/pmboard/internal/domain"
	"github.com/h0rv/pmboard/internal/store"
	"github.com/sirupsen/logrus"
)

// FetchPolicy decides whether a query may be answered from the cache.
type FetchPolicy int

const (
	// CacheFirst answers from the cache when the result is fresh.
	CacheFirst FetchPolicy = iota
	// CacheAndNetwork always fetches; callers render the Cached* snapshot
	// first and then the fetched result.
	CacheAndNetwork
	// NetworkOnly always fetches.
	NetworkOnly
)

func (p FetchPolicy) String() string {
	switch p {
	case CacheFirst:
		return "cache-first"
	case CacheAndNetwork:
		return "cache-and-network"
	case NetworkOnly:
		return "network-only"
	default:
		return "unknown"
	}
}

// DefaultTTL is how long a cache-first result stays fresh.
const DefaultTTL = 30 * time.Second

// API is the set of remote operations the gateway needs.
type API interface {
	Projects(ctx context.Context) ([]domain.Project, error)
	ProjectDetail(ctx context.Context, id string) (domain.Project, error)
	CreateProject(ctx context.Context, in domain.NewProject) (domain.Project, error)
	CreateTask(ctx context.Context, in domain.NewTask) (domain.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus) (domain.TaskStatus, error)
	AddTaskComment(ctx context.Context, in domain.NewComment) (domain.Comment, error)
	DeleteTask(ctx context.Context, taskID string) error
	DeleteProject(ctx context.Context, projectID string) error
}

var _ API = (*Client)(nil)

// Gateway mediates every read and write and owns the cache updates that
// follow them. Containers never write to the store directly.
type Gateway struct {
	api   API
	store *store.Store
	ttl   time.Duration
	log   *logrus.Logger
}

// NewGateway wires an API client to a store. A zero ttl uses DefaultTTL.
func NewGateway(api API, s *store.Store, ttl time.Duration, logger *logrus.Logger) *Gateway {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Gateway{api: api, store: s, ttl: ttl, log: logger}
}

// Store exposes the cache for reads and subscriptions.
func (g *Gateway) Store() *store.Store { return g.store }

// CachedProjects returns the cached project list without touching the
// network.
func (g *Gateway) CachedProjects() ([]domain.Project, bool) {
	return g.store.ProjectList(store.ProjectsQuery())
}

// Projects returns the project list according to policy.
func (g *Gateway) Projects(ctx context.Context, policy FetchPolicy) ([]domain.Project, error) {
	q := store.ProjectsQuery()
	if policy == CacheFirst && g.store.Fresh(q, g.ttl) {
		if projects, ok := g.store.ProjectList(q); ok {
			return projects, nil
		}
	}

	projects, err := g.api.Projects(ctx)
	if err != nil {
		return nil, err
	}
	g.store.WriteProjectList(q, projects)

	// Read back so tasks merged by other queries are included.
	cached, _ := g.store.ProjectList(q)
	return cached, nil
}

// CachedProjectDetail returns the cached detail snapshot. cached is false
// when the detail was never fetched.
func (g *Gateway) CachedProjectDetail(id string) (project *domain.Project, cached bool) {
	return g.store.ProjectDetail(store.ProjectDetailQuery(id))
}

// ProjectDetail returns one project with tasks and comments according to
// policy. A missing project yields *NotFoundError and is cached as missing.
func (g *Gateway) ProjectDetail(ctx context.Context, id string, policy FetchPolicy) (domain.Project, error) {
	q := store.ProjectDetailQuery(id)
	if policy == CacheFirst && g.store.Fresh(q, g.ttl) {
		if p, cached := g.store.ProjectDetail(q); cached {
			if p == nil {
				return domain.Project{}, &NotFoundError{Kind: "Project", ID: id}
			}
			return *p, nil
		}
	}

	p, err := g.api.ProjectDetail(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			g.store.WriteProjectDetail(q, nil)
		}
		return domain.Project{}, err
	}
	g.store.WriteProjectDetail(q, &p)

	cached, _ := g.store.ProjectDetail(q)
	if cached == nil {
		return p, nil
	}
	return *cached, nil
}

// Refetch re-runs the given queries network-only, in order. The first
// failure stops the sequence and leaves that query and the rest stale so
// their next cache-first read goes back to the network.
func (g *Gateway) Refetch(ctx context.Context, keys ...store.QueryKey) error {
	for i, q := range keys {
		var err error
		if id := q.ProjectID(); id != "" {
			_, err = g.ProjectDetail(ctx, id, NetworkOnly)
		} else {
			_, err = g.Projects(ctx, NetworkOnly)
		}
		if err != nil && !IsNotFound(err) {
			g.store.Invalidate(keys[i:]...)
			g.log.WithFields(logrus.Fields{"query": q.Operation(), "project_id": q.ProjectID()}).WithError(err).Warn("refetch failed")
			return err
		}
	}
	return nil
}

// MutateOption adds cache effects that run after a successful mutation.
type MutateOption func(*effects)

type effects struct {
	invalidate []store.QueryKey
}

// Invalidate marks queries stale once the mutation succeeds.
func Invalidate(keys ...store.QueryKey) MutateOption {
	return func(e *effects) { e.invalidate = append(e.invalidate, keys...) }
}

// apply runs the requested effects. Refetches are left to the caller so
// the mutation's result is delivered before any refetched data.
func (g *Gateway) apply(op string, defaults []store.QueryKey, opts []MutateOption) {
	e := &effects{invalidate: defaults}
	for _, opt := range opts {
		opt(e)
	}
	if change := g.store.Invalidate(e.invalidate...); !change.Empty() {
		g.log.WithFields(logrus.Fields{"op": op, "queries": len(change.Queries)}).Debug("invalidated")
	}
}

// CreateProject validates and creates a project. The project list is
// invalidated so the new entry shows on its next read.
func (g *Gateway) CreateProject(ctx context.Context, in domain.NewProject, opts ...MutateOption) (domain.Project, error) {
	if err := in.Validate(); err != nil {
		return domain.Project{}, err
	}
	p, err := g.api.CreateProject(ctx, in)
	if err != nil {
		return domain.Project{}, err
	}
	g.store.MergeProject(p)
	g.apply("CreateProject", []store.QueryKey{store.ProjectsQuery()}, opts)
	return p, nil
}

// CreateTask validates and creates a task, appending it to the cached
// project when its task list is loaded.
func (g *Gateway) CreateTask(ctx context.Context, in domain.NewTask, opts ...MutateOption) (domain.Task, error) {
	if err := in.Validate(); err != nil {
		return domain.Task{}, err
	}
	t, err := g.api.CreateTask(ctx, in)
	if err != nil {
		return domain.Task{}, err
	}
	t.ProjectID = in.ProjectID
	g.store.MergeTask(t)
	g.apply("CreateTask", []store.QueryKey{store.ProjectsQuery()}, opts)
	return t, nil
}

// UpdateTaskStatus changes a task's status. Only the status is merged
// into the cache since that is all the mutation returns.
func (g *Gateway) UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus, opts ...MutateOption) (domain.TaskStatus, error) {
	got, err := g.api.UpdateTaskStatus(ctx, taskID, status)
	if err != nil {
		return "", err
	}
	// A task that was never cached has nothing to patch.
	_ = g.store.PatchTask(taskID, func(t *domain.Task) { t.Status = got })
	g.apply("UpdateTaskStatus", []store.QueryKey{store.ProjectsQuery()}, opts)
	return got, nil
}

// AddTaskComment validates and appends a comment to a task.
func (g *Gateway) AddTaskComment(ctx context.Context, in domain.NewComment, opts ...MutateOption) (domain.Comment, error) {
	if err := in.Validate(); err != nil {
		return domain.Comment{}, err
	}
	c, err := g.api.AddTaskComment(ctx, in)
	if err != nil {
		return domain.Comment{}, err
	}
	g.store.MergeComment(c)
	g.apply("AddTaskComment", nil, opts)
	return c, nil
}

// DeleteTask deletes a task and evicts it from the cache.
func (g *Gateway) DeleteTask(ctx context.Context, taskID string, opts ...MutateOption) error {
	if err := g.api.DeleteTask(ctx, taskID); err != nil {
		return err
	}
	g.store.RemoveTask(taskID)
	g.apply("DeleteTask", []store.QueryKey{store.ProjectsQuery()}, opts)
	return nil
}

// DeleteProject deletes a project and evicts it and its tasks from the
// cache.
func (g *Gateway) DeleteProject(ctx context.Context, projectID string, opts ...MutateOption) error {
	if err := g.api.DeleteProject(ctx, projectID); err != nil {
		return err
	}
	g.store.RemoveProject(projectID)
	g.apply("DeleteProject", nil, opts)
	return nil
}

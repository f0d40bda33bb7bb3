package store

import "strings"

// QueryKey identifies a cached query result: the operation name plus its
// variables.
type QueryKey string

const (
	projectsOp      = "GetProjects"
	projectDetailOp = "GetProjectDetail"
)

// ProjectsQuery is the key for the project list.
func ProjectsQuery() QueryKey { return QueryKey(projectsOp) }

// ProjectDetailQuery is the key for one project's detail.
func ProjectDetailQuery(id string) QueryKey {
	return QueryKey(projectDetailOp + ":" + id)
}

// Operation returns the operation name part of the key.
func (q QueryKey) Operation() string {
	op, _, _ := strings.Cut(string(q), ":")
	return op
}

// ProjectID returns the project id of a detail key, or "" for other keys.
func (q QueryKey) ProjectID() string {
	op, id, ok := strings.Cut(string(q), ":")
	if !ok || op != projectDetailOp {
		return ""
	}
	return id
}

// changeSet accumulates touched keys without duplicates, preserving order.
type changeSet struct {
	seenEntity map[Key]bool
	seenQuery  map[QueryKey]bool
	entities   []Key
	queries    []QueryKey
}

func newChangeSet() *changeSet {
	return &changeSet{
		seenEntity: make(map[Key]bool),
		seenQuery:  make(map[QueryKey]bool),
	}
}

func (c *changeSet) entity(kind Kind, id string) {
	k := Key{Kind: kind, ID: id}
	if c.seenEntity[k] {
		return
	}
	c.seenEntity[k] = true
	c.entities = append(c.entities, k)
}

func (c *changeSet) query(q QueryKey) {
	if c.seenQuery[q] {
		return
	}
	c.seenQuery[q] = true
	c.queries = append(c.queries, q)
}

func (c *changeSet) change() Change {
	return Change{Entities: c.entities, Queries: c.queries}
}

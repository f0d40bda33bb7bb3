// Package route maps in-app paths to views and keeps navigation history.
package route

import (
	"net/url"
	"strings"
)

// Kind is the view a path resolves to.
type Kind int

const (
	NotFound Kind = iota
	ProjectList
	ProjectCreate
	ProjectDetail
)

func (k Kind) String() string {
	switch k {
	case ProjectList:
		return "ProjectList"
	case ProjectCreate:
		return "ProjectCreate"
	case ProjectDetail:
		return "ProjectDetail"
	default:
		return "NotFound"
	}
}

// Path constants for the routes the app links to.
const (
	Root       = "/"
	Projects   = "/projects"
	CreatePath = "/projects/create"
)

// Route is a parsed path.
type Route struct {
	Kind      Kind
	ProjectID string // Set only for ProjectDetail
	Path      string // Normalized path
}

// DetailPath returns the path of a project's detail view.
func DetailPath(id string) string {
	return Projects + "/" + url.PathEscape(id)
}

// Parse resolves a path. Trailing slashes, query strings and fragments are
// ignored. Anything that is not one of the known shapes is NotFound.
func Parse(path string) Route {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return Route{Kind: ProjectList, Path: Projects}
	}

	segments := strings.Split(trimmed, "/")
	if segments[0] != "projects" {
		return Route{Kind: NotFound, Path: "/" + trimmed}
	}

	switch len(segments) {
	case 1:
		return Route{Kind: ProjectList, Path: Projects}
	case 2:
		if segments[1] == "create" {
			return Route{Kind: ProjectCreate, Path: CreatePath}
		}
		id, err := url.PathUnescape(segments[1])
		if err != nil || strings.TrimSpace(id) == "" {
			return Route{Kind: NotFound, Path: "/" + trimmed}
		}
		return Route{Kind: ProjectDetail, ProjectID: id, Path: DetailPath(id)}
	default:
		return Route{Kind: NotFound, Path: "/" + trimmed}
	}
}

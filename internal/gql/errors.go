package gql

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/h0rv/pmboard/internal/domain"
)

// NetworkError is a transport failure: the service could not be reached or
// answered with something other than a GraphQL response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: could not reach server: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServiceError is a failure reported by the service itself. Message is the
// service's text, verbatim.
type ServiceError struct {
	Op      string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// NotFoundError means a lookup resolved without a matching entity.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", strings.ToLower(e.Kind), e.ID)
}

// graphqlErrPrefix is what machinebox/graphql puts in front of the first
// error message the service returns.
const graphqlErrPrefix = "graphql: "

// notFoundMarker is how the service words a missing row.
const notFoundMarker = "matching query does not exist"

// classify turns an error from graphql.Client.Run into a typed error.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &NetworkError{Op: op, Err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &NetworkError{Op: op, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &NetworkError{Op: op, Err: err}
	}

	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "graphql: server returned a non-200 status code"):
		return &NetworkError{Op: op, Err: err}
	case strings.HasPrefix(msg, graphqlErrPrefix):
		return &ServiceError{Op: op, Message: strings.TrimPrefix(msg, graphqlErrPrefix)}
	default:
		// Body read and decode failures.
		return &NetworkError{Op: op, Err: err}
	}
}

// IsNotFound reports whether err means the entity does not exist, either
// because the lookup resolved to nothing or the service said so.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return true
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return strings.Contains(strings.ToLower(se.Message), notFoundMarker)
	}
	return false
}

// UserMessage returns the text to show beneath a form or view for err.
func UserMessage(err error) string {
	var (
		ne *NetworkError
		se *ServiceError
		nf *NotFoundError
		ve *domain.ValidationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &nf):
		return nf.Error()
	case errors.As(err, &se):
		return se.Message
	case errors.As(err, &ne):
		return "Could not reach server. Check your connection and try again."
	default:
		return err.Error()
	}
}

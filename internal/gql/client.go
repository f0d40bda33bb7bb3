// Package gql provides the GraphQL gateway to the project service.
// Client hides the GraphQL documents behind typed methods; Gateway adds the
// shared normalized cache, fetch policies, and post-mutation invalidation.
package gql

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/machinebox/graphql"
	"github.com/sirupsen/logrus"
)

// OrgHeader scopes every request to one organization.
const OrgHeader = "X-ORG-SLUG"

// RequestIDHeader carries a per-request id for log correlation.
const RequestIDHeader = "X-Request-ID"

// ListShape selects which form of GetProjects the deployment serves.
type ListShape string

const (
	// ListShapeAggregate requests taskCount/completedTasks counters.
	ListShapeAggregate ListShape = "aggregate"
	// ListShapeEmbedded requests the task list and derives counts locally.
	ListShapeEmbedded ListShape = "embedded"
)

// Options configures a Client.
type Options struct {
	Endpoint   string
	OrgSlug    string
	Timeout    time.Duration
	ListShape  ListShape
	HTTPClient *http.Client
	Logger     *logrus.Logger
}

// Client is a GraphQL API client for the project service.
// It provides high-level methods for querying and mutating project data.
type Client struct {
	gql       *graphql.Client
	orgSlug   string
	listShape ListShape
	log       *logrus.Logger
}

// New creates a new client for the endpoint in opts.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	shape := opts.ListShape
	if shape == "" {
		shape = ListShapeAggregate
	}

	client := graphql.NewClient(opts.Endpoint, graphql.WithHTTPClient(httpClient))
	client.Log = func(s string) { logger.Trace(s) }

	return &Client{
		gql:       client,
		orgSlug:   opts.OrgSlug,
		listShape: shape,
		log:       logger,
	}
}

// makeRequest executes a GraphQL request with the organization header and a
// fresh request id, and converts failures into typed errors.
func (c *Client) makeRequest(ctx context.Context, op string, req *graphql.Request, resp interface{}) error {
	requestID := uuid.NewString()
	req.Header.Set(OrgHeader, c.orgSlug)
	req.Header.Set(RequestIDHeader, requestID)

	entry := c.log.WithFields(logrus.Fields{"op": op, "request_id": requestID})
	start := time.Now()
	err := classify(op, c.gql.Run(ctx, req, resp))
	entry = entry.WithField("duration", time.Since(start))
	if err != nil {
		entry.WithError(err).Warn("request failed")
		return err
	}
	entry.Debug("request ok")
	return nil
}

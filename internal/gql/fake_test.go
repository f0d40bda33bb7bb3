package gql

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// recordedRequest is one call seen by the fake server.
type recordedRequest struct {
	Op        string
	Variables map[string]interface{}
	Header    http.Header
}

// fakeServer is a minimal GraphQL endpoint keyed by operation name.
type fakeServer struct {
	t        *testing.T
	srv      *httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
	handlers map[string]func(vars map[string]interface{}) (int, string)
}

var opNamePattern = regexp.MustCompile(`(?:query|mutation)\s+(\w+)`)

func newFakeServer(t *testing.T) *fakeServer {
	f := &fakeServer{
		t:        t,
		handlers: make(map[string]func(map[string]interface{}) (int, string)),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeServer) serve(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	op := ""
	if m := opNamePattern.FindStringSubmatch(body.Query); m != nil {
		op = m[1]
	}

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{Op: op, Variables: body.Variables, Header: r.Header.Clone()})
	handler, ok := f.handlers[op]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"errors":[{"message":"unknown operation ` + op + `"}]}`))
		return
	}
	status, payload := handler(body.Variables)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(payload))
}

// on registers a fixed JSON response for op.
func (f *fakeServer) on(op, payload string) {
	f.onFunc(op, func(map[string]interface{}) (int, string) { return http.StatusOK, payload })
}

func (f *fakeServer) onFunc(op string, h func(vars map[string]interface{}) (int, string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[op] = h
}

func (f *fakeServer) calls(op string) []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedRequest
	for _, r := range f.requests {
		if op == "" || r.Op == op {
			out = append(out, r)
		}
	}
	return out
}

// newTestClient points a Client at the fake server with a captured logger.
func newTestClient(f *fakeServer, shape ListShape) (*Client, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return New(Options{
		Endpoint:  f.srv.URL,
		OrgSlug:   "acme",
		ListShape: shape,
		Logger:    logger,
	}), hook
}

const projectsPayload = `{"data":{"projects":[
	{"id":"1","name":"Website","description":null,"status":"ACTIVE","dueDate":"2030-01-15","taskCount":5,"completedTasks":5},
	null,
	{"id":"2","name":"Mobile","description":"iOS app","status":"on_hold","dueDate":null,"taskCount":0,"completedTasks":0}
]}}`

const detailPayload = `{"data":{"project":{
	"id":"1","name":"Website","description":"Marketing site","status":"ACTIVE","dueDate":null,
	"tasks":[
		{"id":"10","title":"Landing page","description":null,"status":"TODO","assigneeEmail":"ana@example.com","dueDate":"2030-01-10",
		 "comments":[{"id":"100","content":"Looks good","authorEmail":"bo@example.com","createdAt":"2024-05-01T10:00:00.123456+00:00"}]},
		{"id":"11","title":"Pricing","description":"Tiers","status":"IN_PROGRESS","assigneeEmail":"bo@example.com","dueDate":null,"comments":[]}
	]}}}`

package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/five82/framelist/internal/objlist"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultServer {
		t.Fatalf("host = %q, want %q", u.Host, defaultServer)
	}

	u, err = parseBaseURL("https://labels.example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

type recordedRequest struct {
	method    string
	path      string
	requestID string
	body      []byte
}

func TestClient_RoundTripsFrameEndpoints(t *testing.T) {
	t.Parallel()

	var (
		mu       sync.Mutex
		requests []recordedRequest
		agent    string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw json.RawMessage
		if r.Body != nil && r.ContentLength != 0 {
			_ = json.NewDecoder(r.Body).Decode(&raw)
		}
		mu.Lock()
		requests = append(requests, recordedRequest{
			method:    r.Method,
			path:      r.URL.Path,
			requestID: r.Header.Get(requestIDHeader),
			body:      raw,
		})
		agent = r.Header.Get("User-Agent")
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/jobs/job 1":
			_ = json.NewEncoder(w).Encode(JobResponse{ID: "job 1", Frames: 12})
		case r.Method == http.MethodGet && r.URL.Path == "/api/jobs/job 1/frames/7/objects":
			_ = json.NewEncoder(w).Encode(ObjectsResponse{Objects: []objlist.ObjectState{
				{ClientID: 1, Lock: true, Updated: 5},
				{ClientID: 2, Hidden: true, Updated: 3},
			}})
		case r.Method == http.MethodPut:
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	states, err := c.Fetch(ctx, "job 1", 7)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(states) != 2 || !states[0].Lock || !states[1].Hidden || states[0].Updated != 5 {
		t.Fatalf("Fetch states = %#v, want two decoded objects", states)
	}

	if err := c.Persist(ctx, "job 1", 7, states); err != nil {
		t.Fatalf("Persist returned error: %v", err)
	}
	if err := c.UpdateFilters(ctx, "job 1", []string{"width>50", "label==car"}); err != nil {
		t.Fatalf("UpdateFilters returned error: %v", err)
	}
	if err := c.UpdateFilters(ctx, "job 1", nil); err != nil {
		t.Fatalf("UpdateFilters(nil) returned error: %v", err)
	}

	job, err := c.FetchJob(ctx, "job 1")
	if err != nil {
		t.Fatalf("FetchJob returned error: %v", err)
	}
	if job.Frames != 12 {
		t.Fatalf("FetchJob frames = %d, want 12", job.Frames)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(requests) != 5 {
		t.Fatalf("requests = %d, want 5", len(requests))
	}

	persist := requests[1]
	if persist.method != http.MethodPut || persist.path != "/api/jobs/job 1/frames/7/objects" {
		t.Fatalf("persist request = %s %s", persist.method, persist.path)
	}
	var persisted ObjectsRequest
	if err := json.Unmarshal(persist.body, &persisted); err != nil || len(persisted.Objects) != 2 {
		t.Fatalf("persist body = %s (err %v), want 2 objects", persist.body, err)
	}

	var filters FiltersRequest
	if err := json.Unmarshal(requests[2].body, &filters); err != nil {
		t.Fatalf("decode filters body: %v", err)
	}
	if requests[2].path != "/api/jobs/job 1/filters" || len(filters.Filters) != 2 || filters.Filters[0] != "width>50" {
		t.Fatalf("filters request = %s %s, want ordered filters", requests[2].path, requests[2].body)
	}
	if string(requests[3].body) != `{"filters":[]}` {
		t.Fatalf("empty filters body = %s, want empty list", requests[3].body)
	}

	seen := map[string]bool{}
	for _, req := range requests {
		if _, err := uuid.Parse(req.requestID); err != nil {
			t.Fatalf("request id %q is not a uuid: %v", req.requestID, err)
		}
		if seen[req.requestID] {
			t.Fatalf("request id %q reused", req.requestID)
		}
		seen[req.requestID] = true
	}

	if !strings.HasPrefix(agent, "framelist/") {
		t.Fatalf("User-Agent = %q, want framelist/*", agent)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Fetch(context.Background(), "job", 0)
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("Fetch error = %v, want decode response error", err)
	}

	err = c.Persist(context.Background(), "job", 0, nil)
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("Persist error = %v, want status 500 error", err)
	}
}

func TestClient_NilReceiver(t *testing.T) {
	var c *Client
	if _, err := c.Fetch(context.Background(), "job", 0); err == nil {
		t.Fatal("Fetch on nil client returned nil error")
	}
	if err := c.Persist(context.Background(), "job", 0, nil); err == nil {
		t.Fatal("Persist on nil client returned nil error")
	}
}

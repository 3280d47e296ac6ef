package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/framelist/internal/objlist"
)

// Ensure Client implements objlist.Backend at compile time.
var _ objlist.Backend = (*Client)(nil)

// Client talks to the annotation session server's HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultServer    = "127.0.0.1:8080"
	defaultUserAgent = "framelist/0.1"
	requestTimeout   = 5 * time.Second

	requestIDHeader = "X-Request-ID"
)

// NewClient builds a Client for the given host:port or URL.
func NewClient(server string) (*Client, error) {
	base, err := parseBaseURL(server)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Fetch retrieves the objects on a frame under the job's active filters.
func (c *Client) Fetch(ctx context.Context, session objlist.Session, frame int) ([]objlist.ObjectState, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload ObjectsResponse
	if err := c.do(ctx, http.MethodGet, framePath(session, frame), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Objects, nil
}

// Persist stores the full object set for a frame in one request.
func (c *Client) Persist(ctx context.Context, session objlist.Session, frame int, states []objlist.ObjectState) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	body := ObjectsRequest{Objects: states}
	if body.Objects == nil {
		body.Objects = []objlist.ObjectState{}
	}
	return c.do(ctx, http.MethodPut, framePath(session, frame), body, nil)
}

// UpdateFilters replaces the job's filter sequence. Filters are sent verbatim.
func (c *Client) UpdateFilters(ctx context.Context, session objlist.Session, filters []string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	body := FiltersRequest{Filters: filters}
	if body.Filters == nil {
		body.Filters = []string{}
	}
	return c.do(ctx, http.MethodPut, jobPath(session)+"/filters", body, nil)
}

// FetchJob retrieves job metadata such as the frame count.
func (c *Client) FetchJob(ctx context.Context, session objlist.Session) (JobResponse, error) {
	if c == nil {
		return JobResponse{}, fmt.Errorf("client is nil")
	}
	var payload JobResponse
	if err := c.do(ctx, http.MethodGet, jobPath(session), nil, &payload); err != nil {
		return JobResponse{}, err
	}
	return payload, nil
}

func jobPath(session objlist.Session) string {
	return "/api/jobs/" + string(session)
}

func framePath(session objlist.Session, frame int) string {
	return jobPath(session) + "/frames/" + strconv.Itoa(frame) + "/objects"
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(server string) (*url.URL, error) {
	trimmed := strings.TrimSpace(server)
	if trimmed == "" {
		trimmed = defaultServer
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server %q: %w", server, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

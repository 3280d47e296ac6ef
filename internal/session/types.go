package session

import "github.com/five82/framelist/internal/objlist"

// ObjectsResponse mirrors GET /api/jobs/{job}/frames/{frame}/objects.
type ObjectsResponse struct {
	Objects []objlist.ObjectState `json:"objects"`
}

// ObjectsRequest is the PUT body for a frame's objects.
type ObjectsRequest struct {
	Objects []objlist.ObjectState `json:"objects"`
}

// FiltersRequest is the PUT body for /api/jobs/{job}/filters.
type FiltersRequest struct {
	Filters []string `json:"filters"`
}

// JobResponse mirrors GET /api/jobs/{job}.
type JobResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Frames int    `json:"frames"`
}

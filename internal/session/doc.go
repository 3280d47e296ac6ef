// Package session provides clients for the annotation session server.
//
// # Overview
//
// The session server owns every object on every frame of a labeling job. This
// package is how framelist reads a frame, writes bulk changes back and tells
// the server which filters are active. Two implementations satisfy the same
// Backend interface:
//
//   - client.go: HTTP client for a real server
//   - memory.go: in-process backend for demo mode and tests
//   - types.go: request and response bodies
//
// # Client Usage
//
//	client, err := session.NewClient("127.0.0.1:8080")
//	if err != nil {
//		return fmt.Errorf("init session client: %w", err)
//	}
//
//	states, err := client.Fetch(ctx, "job-42", 7)
//	if err != nil {
//		slog.Warn("frame fetch failed", "error", err)
//	}
//
// # API Endpoints
//
//   - GET /api/jobs/{job}: job metadata including the frame count
//   - GET /api/jobs/{job}/frames/{frame}/objects: objects under the active filters
//   - PUT /api/jobs/{job}/frames/{frame}/objects: write the listed objects; others stay as they are
//   - PUT /api/jobs/{job}/filters: replace the job's filter sequence
//
// Filter strings are forwarded exactly as typed. Their expression language
// belongs to the server.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and User-Agent: framelist/0.1
//   - Carry a fresh X-Request-ID (uuid) so server logs can be correlated
//   - Have a 5-second timeout
//
// # Error Handling
//
// HTTP status codes >= 400 become "api <path> returned status <code>" errors.
// Nothing is retried here; the poller backs off and the UI shows the last
// error in its header.
package session

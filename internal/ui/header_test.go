package ui

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/five82/framelist/internal/objlist"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassifyConnectionError(t *testing.T) {
	dial := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	read := &net.OpError{Op: "read", Net: "tcp", Err: errors.New("reset")}

	assert.Equal(t, "timeout", classifyConnectionError(fmt.Errorf("fetch: %w", timeoutError{})))
	assert.Equal(t, "connection refused", classifyConnectionError(fmt.Errorf("fetch: %w", dial)))
	assert.Equal(t, "network error", classifyConnectionError(read))
	assert.Equal(t, "server error", classifyConnectionError(errors.New("api returned status 500")))
}

func TestModel_OfflineIndicator(t *testing.T) {
	f := newFixture(t, mixedFrame())
	dial := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	for range 2 {
		f.store.Apply(f.store.Begin(), nil, fmt.Errorf("fetch: %w", dial))
	}
	f.send(snapshotMsg(f.store.Snapshot()))

	view := f.model.View()
	assert.Contains(t, view, "OFFLINE: connection refused")
	assert.Equal(t, []int{1, 2, 3}, f.model.coord.OrderedIDs(), "last good data stays on screen")
}

func TestModel_EmptyFrameMessages(t *testing.T) {
	f := newFixture(t, map[int][]objlist.ObjectState{0: nil})
	assert.Contains(t, f.model.View(), "No objects on this frame")

	f.send(keyMsg("/"))
	f.send(keyMsg("label==none"))
	f.drain(f.send(keyMsg("enter")))
	assert.Contains(t, f.model.View(), "No objects match the active filters")
}

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/five82/framelist/internal/objlist"
)

func TestMemory_PersistStampsMissingVersions(t *testing.T) {
	m := NewMemory(2)
	ctx := context.Background()

	err := m.Persist(ctx, "job", 1, []objlist.ObjectState{{ClientID: 1}, {ClientID: 2, Updated: 9}})
	if err != nil {
		t.Fatalf("Persist returned error: %v", err)
	}
	states, err := m.Fetch(ctx, "job", 1)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(states) != 2 || states[0].Updated == 0 || states[1].Updated != 9 {
		t.Fatalf("states = %#v, want stamped first object and kept version", states)
	}

	// Fetch returns copies.
	states[0].Lock = true
	again, _ := m.Fetch(ctx, "job", 1)
	if again[0].Lock {
		t.Fatal("Fetch should return a copy of stored objects")
	}
}

func TestMemory_PersistUpsertsByClientID(t *testing.T) {
	m := NewMemory(1)
	ctx := context.Background()
	m.Put(0, []objlist.ObjectState{
		{ClientID: 1, Label: "car", Updated: 1},
		{ClientID: 2, Label: "dog", Updated: 1},
		{ClientID: 3, Label: "cat", Updated: 1},
	})

	// A filtered view only ever persists the objects it shows.
	err := m.Persist(ctx, "job", 0, []objlist.ObjectState{
		{ClientID: 2, Label: "dog", Lock: true, Updated: 5},
		{ClientID: 9, Label: "new", Updated: 5},
	})
	if err != nil {
		t.Fatalf("Persist returned error: %v", err)
	}

	states, _ := m.Fetch(ctx, "job", 0)
	if len(states) != 4 {
		t.Fatalf("len(states) = %d, want 4", len(states))
	}
	want := []struct {
		id   int
		lock bool
	}{{1, false}, {2, true}, {3, false}, {9, false}}
	for i, w := range want {
		if states[i].ClientID != w.id || states[i].Lock != w.lock {
			t.Fatalf("states[%d] = %+v, want id %d lock %t", i, states[i], w.id, w.lock)
		}
	}

	if err := m.Persist(ctx, "job", 0, nil); err != nil {
		t.Fatalf("empty Persist returned error: %v", err)
	}
	if again, _ := m.Fetch(ctx, "job", 0); len(again) != 4 {
		t.Fatalf("empty Persist changed the frame: %d objects", len(again))
	}
}

func TestMemory_FrameBounds(t *testing.T) {
	m := NewMemory(1)
	if _, err := m.Fetch(context.Background(), "job", 3); err == nil {
		t.Fatal("Fetch out of range returned nil error")
	}
	if err := m.Persist(context.Background(), "job", -1, nil); err == nil {
		t.Fatal("Persist out of range returned nil error")
	}
}

func TestMemory_RecordsFiltersVerbatim(t *testing.T) {
	m := NewMemory(1)
	filters := []string{" width>50 ", "label==car"}
	if err := m.UpdateFilters(context.Background(), "job", filters); err != nil {
		t.Fatalf("UpdateFilters returned error: %v", err)
	}
	got := m.Filters()
	if len(got) != 2 || got[0] != " width>50 " || got[1] != "label==car" {
		t.Fatalf("Filters = %#v, want %#v", got, filters)
	}
}

func TestMemory_LatencyHonoursContext(t *testing.T) {
	m := NewDemo(1, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Fetch(ctx, "job", 0)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Fetch error = %v, want context.Canceled", err)
	}
}

func TestNewDemo_SeedsEveryFrame(t *testing.T) {
	m := NewDemo(3, 0)
	job, _ := m.FetchJob(context.Background(), "demo")
	if job.Frames != 3 {
		t.Fatalf("Frames = %d, want 3", job.Frames)
	}
	for frame := 0; frame < 3; frame++ {
		states, err := m.Fetch(context.Background(), "demo", frame)
		if err != nil || len(states) < 3 {
			t.Fatalf("frame %d: states=%d err=%v, want >=3 objects", frame, len(states), err)
		}
	}
}

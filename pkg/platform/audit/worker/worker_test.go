package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intake/pkg/platform/audit"
	"intake/pkg/platform/audit/store/memory"
	"intake/pkg/platform/audit/worker"
)

func TestWorkerDrainsInboxIntoStore(t *testing.T) {
	publisher := audit.NewPublisher(8, nil)
	store := memory.New()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- worker.New(store, publisher.Inbox(), nil).Run(ctx)
	}()

	publisher.Emit(ctx, audit.Event{ID: uuid.New(), Name: "enquiry_form_opened"})
	// No ID or timestamp: the worker normalizes before persisting.
	publisher.Emit(ctx, audit.Event{Name: "enquiry_submission_succeeded"})

	require.Eventually(t, func() bool {
		events, err := store.List(ctx)
		return err == nil && len(events) == 2
	}, time.Second, 5*time.Millisecond)

	events, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "enquiry_form_opened", events[0].Name)
	assert.Equal(t, "enquiry_submission_succeeded", events[1].Name)
	assert.NotEqual(t, uuid.Nil, events[1].ID)
	assert.False(t, events[1].Timestamp.IsZero())

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

type flakyStore struct {
	mu    sync.Mutex
	calls int
	saved []audit.Event
}

func (s *flakyStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls == 1 {
		return errors.New("store offline")
	}
	s.saved = append(s.saved, event)
	return nil
}

func (s *flakyStore) savedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

func TestWorkerSurvivesAppendFailure(t *testing.T) {
	inbox := make(chan audit.Event, 2)
	store := &flakyStore{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- worker.New(store, inbox, nil).Run(ctx)
	}()

	inbox <- audit.Event{Name: "lost"}
	inbox <- audit.Event{Name: "kept"}

	require.Eventually(t, func() bool { return store.savedCount() == 1 }, time.Second, 5*time.Millisecond)
	store.mu.Lock()
	assert.Equal(t, "kept", store.saved[0].Name)
	store.mu.Unlock()

	cancel()
	<-done
}

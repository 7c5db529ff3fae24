package api

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vho0811/blogpost-backend/services"
)

func TestStreamEvents(t *testing.T) {
	bus := services.NewEventBus()
	handler := newEventsHandler(bus)

	req := httptest.NewRequest("GET", "/events", nil)
	ctx, cancel := context.WithCancel(req.Context())
	req = req.WithContext(ctx)

	w := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		handler.streamEvents().ServeHTTP(w, req)
		close(done)
	}()

	require.Eventually(t, func() bool { return bus.SubscriberCount() == 1 },
		time.Second, 5*time.Millisecond, "handler never subscribed")

	postID := uuid.New()
	bus.Publish(services.Event{
		Type:       services.EventDesignCompleted,
		BlogPostID: postID,
		At:         time.Now().UTC(),
	})

	// Give the handler a moment to drain the event before disconnecting.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not stop on client disconnect")
	}

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "event: design.completed")
	assert.Contains(t, body, postID.String())
}

func TestStreamEventsUnsubscribesOnDisconnect(t *testing.T) {
	bus := services.NewEventBus()
	handler := newEventsHandler(bus)

	req := httptest.NewRequest("GET", "/events", nil)
	ctx, cancel := context.WithCancel(req.Context())
	req = req.WithContext(ctx)

	done := make(chan struct{})
	go func() {
		handler.streamEvents().ServeHTTP(httptest.NewRecorder(), req)
		close(done)
	}()

	require.Eventually(t, func() bool { return bus.SubscriberCount() == 1 },
		time.Second, 5*time.Millisecond)

	cancel()
	<-done

	assert.Equal(t, 0, bus.SubscriberCount())
}

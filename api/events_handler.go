package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vho0811/blogpost-backend/errs"
	"github.com/vho0811/blogpost-backend/services"
)

type eventsHandler struct {
	responder Responder
	logger    zerolog.Logger
	bus       *services.EventBus
}

func newEventsHandler(bus *services.EventBus) eventsHandler {
	logger := log.With().Str("handlerName", "eventsHandler").Logger()

	return eventsHandler{
		responder: NewResponder(logger),
		logger:    logger,
		bus:       bus,
	}
}

// streamEvents pushes platform notifications over server-sent events
// @Summary Stream events
// @Description Streams publish and design lifecycle notifications as server-sent events until the client disconnects
// @Tags Events
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream"
// @Failure 401 {object} ErrorResponse "Unauthorized - Missing or invalid session"
// @Security BearerAuth
// @Router /events [get]
func (h eventsHandler) streamEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			h.responder.WriteError(w, errs.NewInternalError("streaming is not supported"))
			return
		}

		events, unsubscribe := h.bus.Subscribe()
		defer unsubscribe()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		for {
			select {
			case <-r.Context().Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}

				payload, err := json.Marshal(event)
				if err != nil {
					h.logger.Error().Err(err).Msg("error marshaling event payload")
					continue
				}

				if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload); err != nil {
					h.logger.Debug().Err(err).Msg("event stream client gone")
					return
				}
				flusher.Flush()
			}
		}
	}
}

package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vho0811/blogpost-backend/errs"
	"github.com/vho0811/blogpost-backend/services"
)

type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     services.CounterStore
	likes     services.LikeCounter
}

func newAdminHandler(posts services.CounterStore, likes services.LikeCounter) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
		likes:     likes,
	}
}

// recountLikes reconciles every post's likes counter with its like rows
// @Summary Recount likes
// @Description Recomputes the denormalized likes counter for all posts from the stored like rows
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{} "success flag and processed count"
// @Failure 403 {object} ErrorResponse "Forbidden - Wrong backend password"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Recount failed"
// @Security BackendPassword
// @Router /admin/recount-likes [post]
func (h adminHandler) recountLikes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		processed, err := services.RecountLikes(r.Context(), h.posts, h.likes)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to recount likes", err))
			return
		}

		h.logger.Info().Int("processed", processed).Msg("Recounted likes for all posts")
		h.responder.WriteJSON(w, map[string]interface{}{
			"success":   true,
			"processed": processed,
		})
	}
}

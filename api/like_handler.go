package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vho0811/blogpost-backend/errs"
)

type likeHandler struct {
	responder    Responder
	logger       zerolog.Logger
	likeRepo     likeStore
	blogPostRepo blogPostStore
}

func newLikeHandler(likeRepo likeStore, blogPostRepo blogPostStore) likeHandler {
	logger := log.With().Str("handlerName", "likeHandler").Logger()

	return likeHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		likeRepo:     likeRepo,
		blogPostRepo: blogPostRepo,
	}
}

type likeRequest struct {
	BlogPostID string `json:"blogPostId"`
}

// toggleLike flips the caller's like on a post
// @Summary Toggle like
// @Description Flips the (user, post) like membership and returns the resulting state and counter
// @Tags Likes
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Resulting liked state and like count"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /like [post]
func (h likeHandler) toggleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("user is not synced"))
			return
		}

		var req likeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("like", err))
			return
		}

		blogPostID, err := uuid.Parse(req.BlogPostID)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid blogPostId"))
			return
		}

		blogPost, err := h.blogPostRepo.FindByID(blogPostID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "blog_post", err))
			return
		}
		if blogPost == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		liked, likes, err := h.likeRepo.Toggle(user.ID, blogPostID)
		if err != nil {
			h.responder.WriteError(w, errs.NewTransactionFailedError("like toggle", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"success": true,
			"liked":   liked,
			"likes":   likes,
		})
	}
}

// checkLike reports whether the caller currently likes a post
// @Summary Check like
// @Tags Likes
// @Produce json
// @Param blogPostId query string true "Blog Post ID" format(uuid)
// @Success 200 {object} map[string]interface{} "Liked state"
// @Router /like/check [get]
func (h likeHandler) checkLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("user is not synced"))
			return
		}

		blogPostIDStr := r.URL.Query().Get("blogPostId")
		if blogPostIDStr == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("blogPostId"))
			return
		}

		blogPostID, err := uuid.Parse(blogPostIDStr)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid blogPostId"))
			return
		}

		liked, err := h.likeRepo.IsLiked(user.ID, blogPostID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("check", "like", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"success": true,
			"liked":   liked,
		})
	}
}

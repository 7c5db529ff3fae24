package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vho0811/blogpost-backend/errs"
	"github.com/vho0811/blogpost-backend/services"
)

type designHandler struct {
	responder    Responder
	logger       zerolog.Logger
	designer     *services.Designer
	blogPostRepo blogPostStore
}

func newDesignHandler(designer *services.Designer, blogPostRepo blogPostStore) designHandler {
	logger := log.With().Str("handlerName", "designHandler").Logger()

	return designHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		designer:     designer,
		blogPostRepo: blogPostRepo,
	}
}

type designRequest struct {
	BlogPostID  string `json:"blogPostId"`
	ThemePrompt string `json:"themePrompt"`
}

// redesign restyles a post's design document with the generation service
// @Summary AI redesign
// @Description Sends the stored design document and a style prompt to the generation service and persists the accepted result
// @Tags Design
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Success envelope with prompt outcome"
// @Failure 403 {object} ErrorResponse "Forbidden - Not the owner"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Failure 502 {object} ErrorResponse "Bad Gateway - Generation service failed or returned an unusable document"
// @Router /ai-design [post]
func (h designHandler) redesign() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.designer == nil {
			h.responder.WriteError(w, errs.NewApiErr(http.StatusServiceUnavailable, "design generation is not configured"))
			return
		}

		var req designRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("design request", err))
			return
		}

		if req.BlogPostID == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("blogPostId"))
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

		// Only the owner may restyle a post.
		if err := requireOwner(r, blogPost.UserID, "blog post"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.designer.Redesign(r.Context(), blogPost.ID, blogPost.AIGeneratedHTML, req.ThemePrompt)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().
			Str("blogPostId", blogPost.ID.String()).
			Str("promptOutcome", string(result.Outcome)).
			Int("attempts", result.AttemptsUsed).
			Msg("Design applied")

		h.responder.WriteJSON(w, map[string]interface{}{
			"success":       true,
			"message":       "design applied",
			"promptOutcome": result.Outcome,
			"designedAt":    result.DesignedAt,
		})
	}
}

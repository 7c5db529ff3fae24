package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vho0811/blogpost-backend/errs"
	"github.com/vho0811/blogpost-backend/models"
	"github.com/vho0811/blogpost-backend/services"
)

type websiteHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo blogPostStore
}

func newWebsiteHandler(blogPostRepo blogPostStore) websiteHandler {
	logger := log.With().Str("handlerName", "websiteHandler").Logger()

	return websiteHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
	}
}

// serveWebsite serves a post's AI-designed document as a standalone page
// @Summary Serve designed website
// @Description Substitutes real field values into the stored design document and serves it as raw HTML; 404 unless the post is AI-designed
// @Tags Design
// @Produce html
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Success 200 {string} string "Substituted HTML document"
// @Failure 404 {object} ErrorResponse "Not Found - Post absent or not AI-designed"
// @Router /website/{blogPostID} [get]
func (h websiteHandler) serveWebsite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostIDStr := chi.URLParam(r, "blogPostID")
		blogPostID, err := uuid.Parse(blogPostIDStr)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid blogPostID"))
			return
		}

		blogPost, err := h.blogPostRepo.FindByID(blogPostID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "blog_post", err))
			return
		}
		if blogPost == nil || !blogPost.IsAIDesigned || blogPost.AIGeneratedHTML == "" {
			h.responder.WriteError(w, errs.NewNotFoundError("no designed website for this post"))
			return
		}

		// A stored template missing tokens is broken data; refuse to serve
		// a page with holes in it.
		if err := services.ValidateTokens(blogPost.AIGeneratedHTML); err != nil {
			h.logger.Error().Err(err).Str("blogPostId", blogPost.ID.String()).Msg("Stored design document is invalid")
			h.responder.WriteError(w, errs.NewInternalError("stored design document is invalid"))
			return
		}

		document := services.Substitute(blogPost.AIGeneratedHTML, templateFields(blogPost))

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte(document)); err != nil {
			h.logger.Error().Err(err).Msg("error writing website response")
		}
	}
}

// templateFields assembles the substitution values for a post's document.
func templateFields(blogPost *models.BlogPost) services.TemplateFields {
	fields := services.TemplateFields{
		Title:    blogPost.Title,
		Subtitle: blogPost.Subtitle,
		Content:  blogPost.Content,
		Category: blogPost.Category,
		ReadTime: strconv.Itoa(blogPost.ReadTime),
	}

	if blogPost.Author != nil {
		fields.AuthorName = blogPost.Author.DisplayName()
		fields.AuthorAvatar = blogPost.Author.ProfileImageURL
	}

	if blogPost.PublishedAt != nil {
		fields.PublishDate = blogPost.PublishedAt.Format("January 2, 2006")
	} else {
		fields.PublishDate = blogPost.CreatedAt.Format("January 2, 2006")
	}

	return fields
}

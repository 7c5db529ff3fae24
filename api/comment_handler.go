package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vho0811/blogpost-backend/errs"
	"github.com/vho0811/blogpost-backend/models"
)

type commentHandler struct {
	responder    Responder
	logger       zerolog.Logger
	commentRepo  commentStore
	blogPostRepo blogPostStore
}

func newCommentHandler(commentRepo commentStore, blogPostRepo blogPostStore) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		commentRepo:  commentRepo,
		blogPostRepo: blogPostRepo,
	}
}

type commentRequest struct {
	BlogPostID string `json:"blogPostId"`
	Content    string `json:"content"`
}

// listComments lists the comments of a post, newest first
// @Summary List comments
// @Tags Comments
// @Produce json
// @Param blogPostId query string true "Blog Post ID" format(uuid)
// @Param limit query int false "Maximum number of comments (0 = all)"
// @Success 200 {object} map[string]interface{} "Comments with total count"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /comments [get]
func (h commentHandler) listComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		blogPost, err := h.blogPostRepo.FindByID(blogPostID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "blog_post", err))
			return
		}
		if blogPost == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		limit := 0
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			limit, err = strconv.Atoi(limitStr)
			if err != nil || limit < 0 {
				h.responder.WriteError(w, errs.NewInvalidFieldError("limit", "must be a non-negative integer"))
				return
			}
		}

		comments, err := h.commentRepo.FindByPost(blogPostID, limit)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "comments", err))
			return
		}

		total, err := h.commentRepo.CountForPost(blogPostID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("count", "comments", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"comments": comments,
			"total":    total,
		})
	}
}

// createComment adds a comment to a post
// @Summary Create comment
// @Tags Comments
// @Accept json
// @Produce json
// @Success 201 {object} models.Comment "Created comment"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing content"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /comments [post]
func (h commentHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("user is not synced"))
			return
		}

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("comment", err))
			return
		}

		if strings.TrimSpace(req.Content) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
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

		now := time.Now().UTC()
		comment := models.Comment{
			ID:         uuid.New(),
			BlogPostID: blogPostID,
			UserID:     user.ID,
			Content:    req.Content,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		if err := h.commentRepo.Add(&comment); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "comment", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, comment)
	}
}

// updateComment edits a comment's content
// @Summary Update comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param commentID path string true "Comment ID" format(uuid)
// @Success 200 {object} models.Comment "Updated comment"
// @Failure 403 {object} ErrorResponse "Forbidden - Not the author"
// @Failure 404 {object} ErrorResponse "Not Found - Comment not found"
// @Router /comments/{commentID} [put]
func (h commentHandler) updateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment, err := h.loadComment(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := requireOwner(r, comment.UserID, "comment"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("comment", err))
			return
		}

		if strings.TrimSpace(req.Content) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}

		comment.Content = req.Content
		comment.UpdatedAt = time.Now().UTC()

		if err := h.commentRepo.Update(comment); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "comment", err))
			return
		}

		h.responder.WriteJSON(w, comment)
	}
}

// deleteComment removes a comment
// @Summary Delete comment
// @Tags Comments
// @Produce json
// @Param commentID path string true "Comment ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 403 {object} ErrorResponse "Forbidden - Not the author"
// @Failure 404 {object} ErrorResponse "Not Found - Comment not found"
// @Router /comments/{commentID} [delete]
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment, err := h.loadComment(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := requireOwner(r, comment.UserID, "comment"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.commentRepo.Delete(comment.ID); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "comment", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "comment deleted successfully",
		})
	}
}

// loadComment parses the commentID route parameter and fetches the comment.
func (h commentHandler) loadComment(r *http.Request) (*models.Comment, error) {
	commentIDStr := chi.URLParam(r, "commentID")
	if commentIDStr == "" {
		return nil, errs.NewBadRequestError("missing commentID")
	}

	commentID, err := uuid.Parse(commentIDStr)
	if err != nil {
		return nil, errs.NewBadRequestError("invalid commentID")
	}

	comment, err := h.commentRepo.FindByID(commentID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "comment", err)
	}
	if comment == nil {
		return nil, errs.NewNotFoundError("comment not found")
	}
	return comment, nil
}

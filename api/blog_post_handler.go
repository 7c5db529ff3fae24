package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vho0811/blogpost-backend/database"
	"github.com/vho0811/blogpost-backend/errs"
	"github.com/vho0811/blogpost-backend/models"
	"github.com/vho0811/blogpost-backend/services"
)

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo blogPostStore
	blogTagRepo  blogTagStore
	bus          *services.EventBus
}

func newBlogPostHandler(blogPostRepo blogPostStore, blogTagRepo blogTagStore, bus *services.EventBus) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
		blogTagRepo:  blogTagRepo,
		bus:          bus,
	}
}

// createPostRequest is the payload for creating a blog post. The slug is
// derived from the title and is never part of any payload.
type createPostRequest struct {
	Title            string   `json:"title"`
	Subtitle         string   `json:"subtitle"`
	Content          string   `json:"content"`
	Category         string   `json:"category"`
	Tags             []string `json:"tags"`
	FeaturedImageURL string   `json:"featuredImageUrl"`
	Status           string   `json:"status"`
}

// updatePostRequest is the partial-update payload. Absent fields are left
// untouched; the slug and the engagement counters are not updatable.
type updatePostRequest struct {
	Title            *string   `json:"title"`
	Subtitle         *string   `json:"subtitle"`
	Content          *string   `json:"content"`
	Category         *string   `json:"category"`
	Tags             *[]string `json:"tags"`
	FeaturedImageURL *string   `json:"featuredImageUrl"`
	Status           *string   `json:"status"`
}

// getAllBlogPosts lists blog posts
// @Summary Get all blog posts
// @Description Retrieves blog posts, optionally filtered by status, category and author
// @Tags Blog Posts
// @Produce json
// @Success 200 {object} map[string]interface{} "List of blog posts"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching blog posts"
// @Router /blog-posts [get]
func (h blogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.PostFilter{
			Status:   r.URL.Query().Get("status"),
			Category: r.URL.Query().Get("category"),
		}
		if userIDStr := r.URL.Query().Get("userId"); userIDStr != "" {
			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid userId"))
				return
			}
			filter.UserID = userID
		}

		// Anonymous listing only ever sees published posts; the owner may
		// list their own drafts and archived posts.
		user, userErr := ctxGetUser(r.Context())
		if filter.Status != models.StatusPublished {
			ownListing := userErr == nil && filter.UserID == user.ID
			if !ownListing {
				filter.Status = models.StatusPublished
			}
		}

		blogPosts, err := h.blogPostRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "blog_posts", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"blogPosts": blogPosts,
			"total":     len(blogPosts),
		})
	}
}

// getBlogPost retrieves a specific blog post by ID
// @Summary Get blog post
// @Tags Blog Posts
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} models.BlogPost "Blog post details"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /blog-post/{blogPostID} [get]
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPost, err := h.loadPost(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.requireReadable(r, blogPost); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, blogPost)
	}
}

// getBlogPostBySlug retrieves a blog post by its URL slug
// @Summary Get blog post by slug
// @Tags Blog Posts
// @Produce json
// @Param slug path string true "Blog post slug"
// @Success 200 {object} models.BlogPost "Blog post details"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /blog-post/slug/{slug} [get]
func (h blogPostHandler) getBlogPostBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		blogPost, err := h.blogPostRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "blog_post", err))
			return
		}
		if blogPost == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		if err := h.requireReadable(r, blogPost); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, blogPost)
	}
}

// createBlogPost creates a new blog post
// @Summary Create blog post
// @Description Creates a blog post, derives its slug and read time, and renders its initial design document
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Success 201 {object} models.BlogPost "Created blog post"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blog post data"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating blog post"
// @Router /blog-post [post]
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("user is not synced"))
			return
		}

		var req createPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("blog post", err))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if req.Content == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}

		status := req.Status
		if status == "" {
			status = models.StatusDraft
		}
		if !models.ValidStatus(status) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be draft, published or archived"))
			return
		}

		// The slug is derived exactly once, at creation time.
		slug, err := services.UniqueSlug(req.Title, h.blogPostRepo.SlugExists)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("derive slug for", "blog_post", err))
			return
		}

		now := time.Now().UTC()
		blogPost := models.BlogPost{
			ID:               uuid.New(),
			Slug:             slug,
			UserID:           user.ID,
			Title:            req.Title,
			Subtitle:         req.Subtitle,
			Content:          req.Content,
			Category:         req.Category,
			FeaturedImageURL: req.FeaturedImageURL,
			ReadTime:         services.EstimateReadTime(req.Content),
			Status:           status,
			AIGeneratedHTML:  services.RenderInitialDocument(),
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if status == models.StatusPublished {
			blogPost.PublishedAt = &now
		}

		if err := h.blogPostRepo.Add(&blogPost); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "blog_post", err))
			return
		}

		if len(req.Tags) > 0 {
			if err := h.blogTagRepo.ReplaceForPost(blogPost.ID, req.Tags); err != nil {
				h.logger.Error().Err(err).Msg("Failed to create blog tags")
				// Tag failure does not fail the create; the post itself is stored
			}
		}

		if blogPost.IsPublished() {
			h.publishEvent(blogPost.ID)
		}

		created, err := h.blogPostRepo.FindByID(blogPost.ID)
		if err != nil || created == nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find created", "blog_post", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, created)
	}
}

// updateBlogPost updates an existing blog post
// @Summary Update blog post
// @Description Applies a partial update; the read time is recomputed when content changes and published_at is stamped on the first publish
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} models.BlogPost "Updated blog post"
// @Failure 403 {object} ErrorResponse "Forbidden - Not the owner"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /blog-post/{blogPostID} [put]
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPost, err := h.loadPost(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := requireOwner(r, blogPost.UserID, "blog post"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req updatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("blog post", err))
			return
		}

		now := time.Now().UTC()
		fields := map[string]interface{}{"updated_at": now}

		if req.Title != nil {
			if *req.Title == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
				return
			}
			fields["title"] = *req.Title
		}
		if req.Subtitle != nil {
			fields["subtitle"] = *req.Subtitle
		}
		if req.Content != nil {
			if *req.Content == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
				return
			}
			fields["content"] = *req.Content
			// Read time tracks content, never cached independently of it.
			fields["read_time"] = services.EstimateReadTime(*req.Content)
		}
		if req.Category != nil {
			fields["category"] = *req.Category
		}
		if req.FeaturedImageURL != nil {
			fields["featured_image_url"] = *req.FeaturedImageURL
		}
		if req.Status != nil {
			if !models.ValidStatus(*req.Status) {
				h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be draft, published or archived"))
				return
			}
			fields["status"] = *req.Status
			// published_at is stamped exactly once, on the first transition
			// to published.
			if *req.Status == models.StatusPublished && blogPost.PublishedAt == nil {
				fields["published_at"] = now
			}
		}

		if err := h.blogPostRepo.UpdateFields(blogPost.ID, fields); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "blog_post", err))
			return
		}

		if req.Tags != nil {
			if err := h.blogTagRepo.ReplaceForPost(blogPost.ID, *req.Tags); err != nil {
				h.logger.Error().Err(err).Msg("Failed to update blog tags")
			}
		}

		if req.Status != nil && *req.Status == models.StatusPublished && blogPost.Status != models.StatusPublished {
			h.publishEvent(blogPost.ID)
		}

		updated, err := h.blogPostRepo.FindByID(blogPost.ID)
		if err != nil || updated == nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find updated", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteBlogPost deletes a blog post by ID
// @Summary Delete blog post
// @Tags Blog Posts
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 403 {object} ErrorResponse "Forbidden - Not the owner"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /blog-post/{blogPostID} [delete]
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPost, err := h.loadPost(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := requireOwner(r, blogPost.UserID, "blog post"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blogPostRepo.Delete(blogPost.ID); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "blog post deleted successfully",
		})
	}
}

// incrementViews bumps a post's view counter
// @Summary Record a view
// @Description Fire-and-forget view increment; repeat views all count
// @Tags Blog Posts
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} map[string]interface{} "Success envelope"
// @Router /blog-post/{blogPostID}/view [post]
func (h blogPostHandler) incrementViews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPost, err := h.loadPost(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blogPostRepo.IncrementViews(blogPost.ID); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("increment views of", "blog_post", err))
			return
		}

		h.responder.WriteSuccess(w, "view recorded")
	}
}

// loadPost parses the blogPostID route parameter and fetches the post.
func (h blogPostHandler) loadPost(r *http.Request) (*models.BlogPost, error) {
	blogPostIDStr := chi.URLParam(r, "blogPostID")
	if blogPostIDStr == "" {
		return nil, errs.NewBadRequestError("missing blogPostID")
	}

	blogPostID, err := uuid.Parse(blogPostIDStr)
	if err != nil {
		return nil, errs.NewBadRequestError("invalid blogPostID")
	}

	blogPost, err := h.blogPostRepo.FindByID(blogPostID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "blog_post", err)
	}
	if blogPost == nil {
		return nil, errs.NewNotFoundError("blog post not found")
	}
	return blogPost, nil
}

// requireReadable hides unpublished posts from everyone but their owner.
func (h blogPostHandler) requireReadable(r *http.Request, blogPost *models.BlogPost) error {
	if blogPost.IsPublished() {
		return nil
	}
	user, err := ctxGetUser(r.Context())
	if err != nil || user.ID != blogPost.UserID {
		return errs.NewNotFoundError("blog post not found")
	}
	return nil
}

func (h blogPostHandler) publishEvent(blogPostID uuid.UUID) {
	if h.bus == nil {
		return
	}
	h.bus.Publish(services.Event{
		Type:       services.EventPostPublished,
		BlogPostID: blogPostID,
		At:         time.Now().UTC(),
	})
}

// requireOwner rejects mutations from anyone but the resource owner.
func requireOwner(r *http.Request, ownerID uuid.UUID, entity string) error {
	user, err := ctxGetUser(r.Context())
	if err != nil {
		return errs.NewUnauthorizedError("user is not synced")
	}
	if user.ID != ownerID {
		return errs.NewNotOwnerError(entity)
	}
	return nil
}

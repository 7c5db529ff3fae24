package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vho0811/blogpost-backend/database"
	"github.com/vho0811/blogpost-backend/models"
	"github.com/vho0811/blogpost-backend/services"
)

// In-memory fakes for the storage interfaces, shared by the handler tests.

type fakeBlogPostStore struct {
	posts map[uuid.UUID]*models.BlogPost
	err   error
}

func newFakeBlogPostStore(posts ...*models.BlogPost) *fakeBlogPostStore {
	s := &fakeBlogPostStore{posts: make(map[uuid.UUID]*models.BlogPost)}
	for _, p := range posts {
		s.posts[p.ID] = p
	}
	return s
}

func (s *fakeBlogPostStore) FindAll(filter database.PostFilter) ([]*models.BlogPost, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*models.BlogPost
	for _, p := range s.posts {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.UserID != uuid.Nil && p.UserID != filter.UserID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeBlogPostStore) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.posts[id], nil
}

func (s *fakeBlogPostStore) FindBySlug(slug string) (*models.BlogPost, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (s *fakeBlogPostStore) SlugExists(slug string) (bool, error) {
	p, err := s.FindBySlug(slug)
	return p != nil, err
}

func (s *fakeBlogPostStore) Add(blogPost *models.BlogPost) error {
	if s.err != nil {
		return s.err
	}
	s.posts[blogPost.ID] = blogPost
	return nil
}

func (s *fakeBlogPostStore) Update(blogPost *models.BlogPost) error {
	return s.Add(blogPost)
}

func (s *fakeBlogPostStore) UpdateFields(id uuid.UUID, fields map[string]interface{}) error {
	if s.err != nil {
		return s.err
	}
	p, ok := s.posts[id]
	if !ok {
		return nil
	}
	for column, value := range fields {
		switch column {
		case "title":
			p.Title = value.(string)
		case "subtitle":
			p.Subtitle = value.(string)
		case "content":
			p.Content = value.(string)
		case "category":
			p.Category = value.(string)
		case "featured_image_url":
			p.FeaturedImageURL = value.(string)
		case "status":
			p.Status = value.(string)
		case "read_time":
			p.ReadTime = value.(int)
		case "published_at":
			at := value.(time.Time)
			p.PublishedAt = &at
		case "updated_at":
			p.UpdatedAt = value.(time.Time)
		}
	}
	return nil
}

func (s *fakeBlogPostStore) Delete(id uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	delete(s.posts, id)
	return nil
}

func (s *fakeBlogPostStore) IncrementViews(id uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	if p, ok := s.posts[id]; ok {
		p.Views++
	}
	return nil
}

type fakeBlogTagStore struct {
	tags map[uuid.UUID][]string
	err  error
}

func newFakeBlogTagStore() *fakeBlogTagStore {
	return &fakeBlogTagStore{tags: make(map[uuid.UUID][]string)}
}

func (s *fakeBlogTagStore) ReplaceForPost(blogPostID uuid.UUID, values []string) error {
	if s.err != nil {
		return s.err
	}
	s.tags[blogPostID] = values
	return nil
}

type fakeCommentStore struct {
	comments map[uuid.UUID]*models.Comment
	err      error
}

func newFakeCommentStore(comments ...*models.Comment) *fakeCommentStore {
	s := &fakeCommentStore{comments: make(map[uuid.UUID]*models.Comment)}
	for _, c := range comments {
		s.comments[c.ID] = c
	}
	return s
}

func (s *fakeCommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.comments[id], nil
}

func (s *fakeCommentStore) FindByPost(blogPostID uuid.UUID, limit int) ([]*models.Comment, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*models.Comment
	for _, c := range s.comments {
		if c.BlogPostID == blogPostID {
			out = append(out, c)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeCommentStore) CountForPost(blogPostID uuid.UUID) (int64, error) {
	all, err := s.FindByPost(blogPostID, 0)
	return int64(len(all)), err
}

func (s *fakeCommentStore) Add(comment *models.Comment) error {
	if s.err != nil {
		return s.err
	}
	s.comments[comment.ID] = comment
	return nil
}

func (s *fakeCommentStore) Update(comment *models.Comment) error {
	return s.Add(comment)
}

func (s *fakeCommentStore) Delete(id uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	delete(s.comments, id)
	return nil
}

type fakeLikeStore struct {
	liked  map[string]bool
	counts map[uuid.UUID]int64
	err    error
}

func newFakeLikeStore() *fakeLikeStore {
	return &fakeLikeStore{
		liked:  make(map[string]bool),
		counts: make(map[uuid.UUID]int64),
	}
}

func likeKey(userID, blogPostID uuid.UUID) string {
	return userID.String() + "|" + blogPostID.String()
}

func (s *fakeLikeStore) Toggle(userID, blogPostID uuid.UUID) (bool, int64, error) {
	if s.err != nil {
		return false, 0, s.err
	}
	key := likeKey(userID, blogPostID)
	if s.liked[key] {
		delete(s.liked, key)
		s.counts[blogPostID]--
		return false, s.counts[blogPostID], nil
	}
	s.liked[key] = true
	s.counts[blogPostID]++
	return true, s.counts[blogPostID], nil
}

func (s *fakeLikeStore) IsLiked(userID, blogPostID uuid.UUID) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.liked[likeKey(userID, blogPostID)], nil
}

type fakeUserStore struct {
	users map[string]*models.User
	err   error
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*models.User)}
	for _, u := range users {
		s.users[u.AuthProviderID] = u
	}
	return s
}

func (s *fakeUserStore) Upsert(user *models.User) error {
	if s.err != nil {
		return s.err
	}
	if existing, ok := s.users[user.AuthProviderID]; ok {
		existing.Email = user.Email
		existing.Username = user.Username
		existing.FirstName = user.FirstName
		existing.LastName = user.LastName
		existing.ProfileImageURL = user.ProfileImageURL
		return nil
	}
	stored := *user
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	s.users[user.AuthProviderID] = &stored
	return nil
}

func (s *fakeUserStore) FindByAuthProviderID(authProviderID string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[authProviderID], nil
}

func (s *fakeUserStore) FindByID(id uuid.UUID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Request helpers

// asUser attaches a synced user to the request context the way the auth
// middleware would.
func asUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(ctxWithUser(r.Context(), user))
}

// withURLParam attaches a chi route parameter to the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func testUser() *models.User {
	return &models.User{
		ID:              uuid.New(),
		AuthProviderID:  "provider|" + uuid.NewString(),
		Email:           "writer@example.com",
		Username:        "writer",
		FirstName:       "Riley",
		LastName:        "Morgan",
		ProfileImageURL: "https://example.com/avatar.png",
	}
}

func testPost(owner *models.User, status string) *models.BlogPost {
	now := time.Now().UTC()
	post := &models.BlogPost{
		ID:              uuid.New(),
		Slug:            "test-post-" + uuid.NewString()[:8],
		UserID:          owner.ID,
		Title:           "Test Post",
		Subtitle:        "A post under test",
		Content:         "<p>Some words to read.</p>",
		Category:        "Engineering",
		ReadTime:        1,
		Status:          status,
		AIGeneratedHTML: services.RenderInitialDocument(),
		CreatedAt:       now,
		UpdatedAt:       now,
		Author:          owner,
	}
	if status == models.StatusPublished {
		post.PublishedAt = &now
	}
	return post
}

func doRequest(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

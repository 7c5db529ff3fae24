package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vho0811/blogpost-backend/models"
	"github.com/vho0811/blogpost-backend/services"
)

func newTestBlogPostHandler(posts *fakeBlogPostStore) (blogPostHandler, *fakeBlogTagStore) {
	tags := newFakeBlogTagStore()
	return newBlogPostHandler(posts, tags, services.NewEventBus()), tags
}

func TestCreateBlogPost(t *testing.T) {
	owner := testUser()
	posts := newFakeBlogPostStore()
	handler, tags := newTestBlogPostHandler(posts)

	body, _ := json.Marshal(map[string]interface{}{
		"title":    "Hello, World! 2024",
		"subtitle": "First post",
		"content":  "<p>" + strings.Repeat("word ", 250) + "</p>",
		"category": "Engineering",
		"tags":     []string{"go", "testing"},
		"status":   "published",
	})
	req := asUser(httptest.NewRequest("POST", "/blog-post", bytes.NewBuffer(body)), owner)

	w := doRequest(handler.createBlogPost(), req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created models.BlogPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "hello-world-2024", created.Slug)
	assert.Equal(t, 2, created.ReadTime)
	assert.Equal(t, owner.ID, created.UserID)
	assert.NotNil(t, created.PublishedAt)
	assert.NoError(t, services.ValidateTokens(created.AIGeneratedHTML))
	assert.Equal(t, []string{"go", "testing"}, tags.tags[created.ID])
}

func TestCreateBlogPostResolvesSlugCollision(t *testing.T) {
	owner := testUser()
	existing := testPost(owner, models.StatusPublished)
	existing.Slug = "hello-world"
	posts := newFakeBlogPostStore(existing)
	handler, _ := newTestBlogPostHandler(posts)

	body, _ := json.Marshal(map[string]string{"title": "Hello World", "content": "<p>hi</p>"})
	req := asUser(httptest.NewRequest("POST", "/blog-post", bytes.NewBuffer(body)), owner)

	w := doRequest(handler.createBlogPost(), req)

	require.Equal(t, http.StatusCreated, w.Code)
	var created models.BlogPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "hello-world-1", created.Slug)
}

func TestCreateBlogPostValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing title", map[string]string{"content": "<p>hi</p>"}},
		{"missing content", map[string]string{"title": "Hi"}},
		{"bad status", map[string]string{"title": "Hi", "content": "<p>hi</p>", "status": "live"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestBlogPostHandler(newFakeBlogPostStore())
			body, _ := json.Marshal(tt.body)
			req := asUser(httptest.NewRequest("POST", "/blog-post", bytes.NewBuffer(body)), testUser())

			w := doRequest(handler.createBlogPost(), req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateBlogPostRequiresSyncedUser(t *testing.T) {
	handler, _ := newTestBlogPostHandler(newFakeBlogPostStore())
	body, _ := json.Marshal(map[string]string{"title": "Hi", "content": "<p>hi</p>"})

	w := doRequest(handler.createBlogPost(), httptest.NewRequest("POST", "/blog-post", bytes.NewBuffer(body)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateBlogPostRecomputesReadTime(t *testing.T) {
	owner := testUser()
	post := testPost(owner, models.StatusPublished)
	posts := newFakeBlogPostStore(post)
	handler, _ := newTestBlogPostHandler(posts)

	longContent := "<p>" + strings.Repeat("word ", 450) + "</p>"
	body, _ := json.Marshal(map[string]string{"content": longContent})
	req := httptest.NewRequest("PUT", "/blog-post/"+post.ID.String(), bytes.NewBuffer(body))
	req = asUser(withURLParam(req, "blogPostID", post.ID.String()), owner)

	w := doRequest(handler.updateBlogPost(), req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, posts.posts[post.ID].ReadTime)
	assert.Equal(t, longContent, posts.posts[post.ID].Content)
}

func TestUpdateBlogPostKeepsSlug(t *testing.T) {
	owner := testUser()
	post := testPost(owner, models.StatusPublished)
	originalSlug := post.Slug
	posts := newFakeBlogPostStore(post)
	handler, _ := newTestBlogPostHandler(posts)

	body, _ := json.Marshal(map[string]string{"title": "A Completely New Title"})
	req := httptest.NewRequest("PUT", "/blog-post/"+post.ID.String(), bytes.NewBuffer(body))
	req = asUser(withURLParam(req, "blogPostID", post.ID.String()), owner)

	w := doRequest(handler.updateBlogPost(), req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "A Completely New Title", posts.posts[post.ID].Title)
	assert.Equal(t, originalSlug, posts.posts[post.ID].Slug)
}

func TestUpdateBlogPostStampsPublishedAtOnce(t *testing.T) {
	owner := testUser()
	post := testPost(owner, models.StatusDraft)
	posts := newFakeBlogPostStore(post)
	handler, _ := newTestBlogPostHandler(posts)

	publish := func() {
		body, _ := json.Marshal(map[string]string{"status": "published"})
		req := httptest.NewRequest("PUT", "/blog-post/"+post.ID.String(), bytes.NewBuffer(body))
		req = asUser(withURLParam(req, "blogPostID", post.ID.String()), owner)
		w := doRequest(handler.updateBlogPost(), req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	publish()
	firstPublishedAt := posts.posts[post.ID].PublishedAt
	require.NotNil(t, firstPublishedAt)

	// Unpublish and publish again; the original timestamp must survive.
	body, _ := json.Marshal(map[string]string{"status": "draft"})
	req := httptest.NewRequest("PUT", "/blog-post/"+post.ID.String(), bytes.NewBuffer(body))
	req = asUser(withURLParam(req, "blogPostID", post.ID.String()), owner)
	doRequest(handler.updateBlogPost(), req)

	time.Sleep(5 * time.Millisecond)
	publish()

	assert.Equal(t, *firstPublishedAt, *posts.posts[post.ID].PublishedAt)
}

func TestUpdateBlogPostRejectsNonOwner(t *testing.T) {
	owner := testUser()
	post := testPost(owner, models.StatusPublished)
	handler, _ := newTestBlogPostHandler(newFakeBlogPostStore(post))

	body, _ := json.Marshal(map[string]string{"title": "Hijacked"})
	req := httptest.NewRequest("PUT", "/blog-post/"+post.ID.String(), bytes.NewBuffer(body))
	req = asUser(withURLParam(req, "blogPostID", post.ID.String()), testUser())

	w := doRequest(handler.updateBlogPost(), req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetBlogPostHidesDraftsFromOthers(t *testing.T) {
	owner := testUser()
	draft := testPost(owner, models.StatusDraft)
	handler, _ := newTestBlogPostHandler(newFakeBlogPostStore(draft))

	get := func(r *http.Request) int {
		return doRequest(handler.getBlogPost(), withURLParam(r, "blogPostID", draft.ID.String())).Code
	}

	anonymous := httptest.NewRequest("GET", "/blog-post/"+draft.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, get(anonymous))

	stranger := asUser(httptest.NewRequest("GET", "/blog-post/"+draft.ID.String(), nil), testUser())
	assert.Equal(t, http.StatusNotFound, get(stranger))

	asOwner := asUser(httptest.NewRequest("GET", "/blog-post/"+draft.ID.String(), nil), owner)
	assert.Equal(t, http.StatusOK, get(asOwner))
}

func TestGetBlogPostBySlug(t *testing.T) {
	owner := testUser()
	post := testPost(owner, models.StatusPublished)
	handler, _ := newTestBlogPostHandler(newFakeBlogPostStore(post))

	req := withURLParam(httptest.NewRequest("GET", "/blog-post/slug/"+post.Slug, nil), "slug", post.Slug)
	w := doRequest(handler.getBlogPostBySlug(), req)

	require.Equal(t, http.StatusOK, w.Code)
	var got models.BlogPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, post.ID, got.ID)
}

func TestGetAllBlogPostsAnonymousOnlySeesPublished(t *testing.T) {
	owner := testUser()
	published := testPost(owner, models.StatusPublished)
	draft := testPost(owner, models.StatusDraft)
	handler, _ := newTestBlogPostHandler(newFakeBlogPostStore(published, draft))

	w := doRequest(handler.getAllBlogPosts(), httptest.NewRequest("GET", "/blog-posts", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		BlogPosts []models.BlogPost `json:"blogPosts"`
		Total     int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, published.ID, resp.BlogPosts[0].ID)
}

func TestGetAllBlogPostsOwnerSeesOwnDrafts(t *testing.T) {
	owner := testUser()
	draft := testPost(owner, models.StatusDraft)
	handler, _ := newTestBlogPostHandler(newFakeBlogPostStore(draft))

	req := asUser(httptest.NewRequest("GET", "/blog-posts?status=draft&userId="+owner.ID.String(), nil), owner)
	w := doRequest(handler.getAllBlogPosts(), req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
}

func TestIncrementViews(t *testing.T) {
	owner := testUser()
	post := testPost(owner, models.StatusPublished)
	posts := newFakeBlogPostStore(post)
	handler, _ := newTestBlogPostHandler(posts)

	for i := 0; i < 3; i++ {
		req := withURLParam(httptest.NewRequest("POST", "/blog-post/"+post.ID.String()+"/view", nil), "blogPostID", post.ID.String())
		w := doRequest(handler.incrementViews(), req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, int64(3), posts.posts[post.ID].Views)
}

func TestDeleteBlogPost(t *testing.T) {
	owner := testUser()
	post := testPost(owner, models.StatusPublished)
	posts := newFakeBlogPostStore(post)
	handler, _ := newTestBlogPostHandler(posts)

	req := asUser(withURLParam(httptest.NewRequest("DELETE", "/blog-post/"+post.ID.String(), nil), "blogPostID", post.ID.String()), owner)
	w := doRequest(handler.deleteBlogPost(), req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, posts.posts, post.ID)
}

func TestPublishEmitsEvent(t *testing.T) {
	owner := testUser()
	post := testPost(owner, models.StatusDraft)
	posts := newFakeBlogPostStore(post)
	bus := services.NewEventBus()
	handler := newBlogPostHandler(posts, newFakeBlogTagStore(), bus)

	events, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	body, _ := json.Marshal(map[string]string{"status": "published"})
	req := httptest.NewRequest("PUT", "/blog-post/"+post.ID.String(), bytes.NewBuffer(body))
	req = asUser(withURLParam(req, "blogPostID", post.ID.String()), owner)
	w := doRequest(handler.updateBlogPost(), req)
	require.Equal(t, http.StatusOK, w.Code)

	select {
	case event := <-events:
		assert.Equal(t, services.EventPostPublished, event.Type)
		assert.Equal(t, post.ID, event.BlogPostID)
	case <-time.After(time.Second):
		t.Fatal("no publish event emitted")
	}
}

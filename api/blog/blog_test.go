package blog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/inklinehq/Inkline-CLI/api/blog/models"
	"github.com/inklinehq/Inkline-CLI/mutate"
	"github.com/inklinehq/Inkline-CLI/request"
	"github.com/inklinehq/Inkline-CLI/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-agent", nil)
}

func jsonResponse(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

func TestGetPostsNormalizesAndSorts(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "go", r.URL.Query().Get("q"))
		assert.Equal(t, "Programming", r.URL.Query().Get("cat"))
		jsonResponse(w, http.StatusOK, `[
			{"id": 2, "title": "beta", "description": "desc only", "part": 2, "created_at": "2024-02-01T00:00:00Z"},
			{"id": 1, "title": "Alpha", "content": "<p>body</p>", "created_at": "2024-01-01T00:00:00Z"}
		]`)
	}))

	posts, err := client.GetPosts(context.Background(), &PostFilters{
		Query:    "go",
		Category: "programming",
		Sort:     SortTitleAz,
	})
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "Alpha", posts[0].Title, "title sort ignores case")
	assert.Equal(t, "beta", posts[1].Title)

	legacy := posts[1]
	assert.Equal(t, "desc only", legacy.Content, "content falls back to description")
	require.NotNil(t, legacy.SeriesPart)
	assert.Equal(t, 2, *legacy.SeriesPart, "series part falls back to the legacy part field")
	assert.Equal(t, models.SlotNone, legacy.FeaturedSlot)
}

func TestGetPostNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetPost(context.Background(), 42)
	assert.ErrorIs(t, err, request.ErrNotFound)
}

// two items from the API render in server order after the
// loading state settles
func TestPostListResourceLifecycle(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, `[
			{"id": 1, "title": "A", "content": "x", "created_at": "2024-02-01T00:00:00Z"},
			{"id": 2, "title": "B", "content": "y", "created_at": "2024-01-01T00:00:00Z"}
		]`)
	}))

	listing := resource.New[[]*models.Post]()
	done := listing.Start(context.Background(), func(ctx context.Context) ([]*models.Post, error) {
		return client.GetPosts(ctx, &PostFilters{})
	})

	<-done
	snap := listing.Snapshot()
	require.Equal(t, resource.Ok, snap.Status)
	require.Len(t, snap.Data, 2)
	assert.Equal(t, "A", snap.Data[0].Title)
	assert.Equal(t, "B", snap.Data[1].Title)
}

func TestCreatePostValidationShortCircuits(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("an invalid draft must not reach the server")
	}))

	_, err := client.CreatePost(context.Background(), &Draft{
		Title:   "",
		Content: "<p>body</p>",
	})
	assert.Error(t, err)
}

func TestCreatePost(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/posts", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "First post", payload["title"])
		assert.Equal(t, "Travel", payload["category"])
		assert.Equal(t, payload["excerpt"], payload["description"])

		jsonResponse(w, http.StatusCreated, `{
			"id": 7,
			"title": "First post",
			"category": "Travel",
			"content": "<p>hello</p>",
			"created_at": "2024-03-01T00:00:00Z"
		}`)
	}))

	post, err := client.CreatePost(context.Background(), &Draft{
		Title:    "First post",
		Category: "travel",
		Author:   "jan",
		Content:  "<p>hello</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, post.Id)
}

func TestDeletePostTreats404AsDeleted(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	assert.NoError(t, client.DeletePost(context.Background(), 42))
}

func TestGetPostsMemoisesWithinARun(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		jsonResponse(w, http.StatusOK, `[]`)
	}))

	_, err := client.GetPosts(context.Background(), &PostFilters{Query: "go"})
	require.NoError(t, err)
	_, err = client.GetPosts(context.Background(), &PostFilters{Query: "go"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	// a different query is a different resource
	_, err = client.GetPosts(context.Background(), &PostFilters{Query: "rust"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())

	client.InvalidateMemo()
	_, err = client.GetPosts(context.Background(), &PostFilters{Query: "go"})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

// posting a comment shows one provisional entry while the request is
// pending; a server failure removes it again
func TestOptimisticCommentRollback(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// fail without the retry delays
		w.WriteHeader(http.StatusNotFound)
	}))

	comments := []*models.Comment{
		{Id: "1", PostId: 3, Author: "ada", Body: "first"},
	}
	m := mutate.NewMutator(func(c *models.Comment) string {
		return c.Id
	})

	var pending []*models.Comment
	m.OnChange = func(l []*models.Comment) {
		if pending == nil {
			pending = append([]*models.Comment{}, l...)
		}
	}

	provisional := models.NewProvisionalComment(3, "jan", "hello")
	got, err := m.Create(comments, provisional, func() (*models.Comment, error) {
		return client.CreateComment(context.Background(), 3, "jan", "hello")
	})

	require.Error(t, err)
	require.Len(t, got, 1, "the provisional entry is removed on failure")
	assert.Equal(t, "1", got[0].Id)

	require.Len(t, pending, 2, "the provisional entry was visible while pending")
	assert.True(t, pending[0].IsProvisional())
	assert.Equal(t, "jan", pending[0].Author)
	assert.Equal(t, "hello", pending[0].Body)
}

func TestOptimisticCommentConfirm(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, float64(3), payload["post_id"])

		jsonResponse(w, http.StatusCreated, `{
			"id": 9,
			"post_id": 3,
			"author": "jan",
			"body": "hello",
			"created_at": "2024-03-01T00:00:00Z"
		}`)
	}))

	m := mutate.NewMutator(func(c *models.Comment) string {
		return c.Id
	})

	provisional := models.NewProvisionalComment(3, "jan", "hello")
	got, err := m.Create(nil, provisional, func() (*models.Comment, error) {
		return client.CreateComment(context.Background(), 3, "jan", "hello")
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "9", got[0].Id, "the provisional entry is replaced, never merged")
	assert.False(t, got[0].IsProvisional())
}

func TestCreateCommentValidatesLocally(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("an empty comment must not reach the server")
	}))

	_, err := client.CreateComment(context.Background(), 3, "jan", "   ")
	assert.Error(t, err)
}

func TestGetSeries(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/2/series", r.URL.Path)
		// the legacy "all" field and the legacy "part" alias together
		jsonResponse(w, http.StatusOK, `{
			"series_key": "go-basics",
			"all": [
				{"id": 3, "title": "Part three", "content": "x", "created_at": "2024-03-01T00:00:00Z"},
				{"id": 1, "title": "Part one", "content": "x", "part": 1, "created_at": "2024-01-01T00:00:00Z"},
				{"id": 2, "title": "Part two", "content": "x", "series_part": 2, "created_at": "2024-02-01T00:00:00Z"}
			]
		}`)
	}))

	series, err := client.GetSeries(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, "go-basics", series.Key)
	require.Len(t, series.Items, 3)
	assert.Equal(t, 1, series.Items[0].Id)
	assert.Equal(t, 2, series.Items[1].Id)
	assert.Equal(t, 3, series.Items[2].Id, "unnumbered parts sort last")

	require.NotNil(t, series.Prev)
	require.NotNil(t, series.Next)
	assert.Equal(t, 1, series.Prev.Id)
	assert.Equal(t, 3, series.Next.Id)
}

func TestGetFeatured(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/featured", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("limit_minis"))
		jsonResponse(w, http.StatusOK, `{
			"main": {"id": 1, "title": "Main", "content": "x", "featured_slot": "main", "created_at": "2024-01-01T00:00:00Z"},
			"minis": [
				{"id": 2, "title": "Mini", "description": "only desc", "featured_slot": "mini", "created_at": "2024-01-02T00:00:00Z"}
			]
		}`)
	}))

	featured, err := client.GetFeatured(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, featured.Main)
	assert.Equal(t, "Main", featured.Main.Title)
	require.Len(t, featured.Minis, 1)
	assert.Equal(t, "only desc", featured.Minis[0].Content)
}

func TestGetQuotes(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/quotes", r.URL.Path)
		assert.Equal(t, "AAPL,MSFT", r.URL.Query().Get("symbols"))
		jsonResponse(w, http.StatusOK, `{
			"quotes": [
				{"symbol": "AAPL", "price": 190.5, "prevClose": 189.0, "change": 1.5, "percent": 0.79, "exchange": "NASDAQ", "currency": "USD"}
			]
		}`)
	}))

	quotes, err := client.GetQuotes(context.Background(), []string{"AAPL", "MSFT", "AAPL"})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "AAPL", quotes[0].Symbol)
	assert.InDelta(t, 190.5, quotes[0].Price, 0.001)
}

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillpad/quill/internal/config"
)

func testClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.APIBase = srv.URL
	cfg.AssetBase = "https://cdn.example.com"
	return New(cfg, nil, opts...), srv
}

func TestEnvelopeFailure(t *testing.T) {
	t.Run("message surfaces verbatim", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false,"message":"X"}`))
		}))

		_, err := client.GetBlog(context.Background(), "some-post")
		require.Error(t, err)
		assert.Equal(t, "X", err.Error())
	})

	t.Run("error field used when message empty", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false,"error":"slug already taken"}`))
		}))

		_, err := client.CreateBlog(context.Background(), BlogInput{Title: "t", Content: "c"})
		require.Error(t, err)
		assert.Equal(t, "slug already taken", err.Error())
	})

	t.Run("field errors used as last resort", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false,"errors":{"email":"email is invalid"}}`))
		}))

		_, _, err := client.Login(context.Background(), "nope", "pw")
		require.Error(t, err)
		assert.Equal(t, "email is invalid", err.Error())
	})
}

func TestDecodeFailureIsGeneric(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway exploded</html>`))
	}))

	_, err := client.GetBlog(context.Background(), "post")
	require.Error(t, err)
	assert.Contains(t, err.Error(), MsgNetworkError)
	assert.NotContains(t, err.Error(), "gateway exploded")
}

func TestTransportFailureIsGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	cfg := config.Default()
	cfg.APIBase = srv.URL
	client := New(cfg, nil)

	_, err := client.GetBlog(context.Background(), "post")
	require.Error(t, err)
	assert.Contains(t, err.Error(), MsgNetworkError)
}

func TestRateLimit(t *testing.T) {
	t.Run("handler gets retry-after, error is generic", func(t *testing.T) {
		var got time.Duration
		var called int32

		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "30")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"secret":"internal rate limiter state"}`))
		}), WithRateLimitHandler(func(retryAfter time.Duration) {
			atomic.AddInt32(&called, 1)
			got = retryAfter
		}))

		_, err := client.GetBlog(context.Background(), "post")
		require.Error(t, err)
		assert.Equal(t, MsgTooManyRequests, err.Error())
		assert.NotContains(t, err.Error(), "internal rate limiter state")
		assert.Equal(t, int32(1), atomic.LoadInt32(&called))
		assert.Equal(t, 30*time.Second, got)
	})

	t.Run("missing header yields zero duration", func(t *testing.T) {
		var got = time.Hour
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}), WithRateLimitHandler(func(retryAfter time.Duration) { got = retryAfter }))

		_, err := client.GetBlog(context.Background(), "post")
		require.Error(t, err)
		assert.Equal(t, time.Duration(0), got)
	})

	t.Run("last registered handler wins", func(t *testing.T) {
		var first, second bool
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		client.SetRateLimitHandler(func(time.Duration) { first = true })
		client.SetRateLimitHandler(func(time.Duration) { second = true })

		_, err := client.GetBlog(context.Background(), "post")
		require.Error(t, err)
		assert.False(t, first)
		assert.True(t, second)
	})
}

func TestBearerToken(t *testing.T) {
	t.Run("attached when present", func(t *testing.T) {
		var gotAuth string
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"success":true,"data":{"id":"u1","username":"ada"}}`))
		}), WithTokenSource(func() string { return "tok-123" }))

		_, err := client.Me(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer tok-123", gotAuth)
	})

	t.Run("absent when logged out", func(t *testing.T) {
		var gotAuth string
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"success":true,"data":[]}`))
		}))

		_, _, err := client.ListBlogs(context.Background(), 1, "", "")
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})
}

func TestListBlogsPagination(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "cats", r.URL.Query().Get("tag"))
		w.Write([]byte(`{
			"success": true,
			"data": [{"slug":"hello","title":"Hello","author":{"id":"u1","username":"ada"}}],
			"pagination": {"page":2,"limit":10,"total":31,"pages":4}
		}`))
	}))

	blogs, pg, err := client.ListBlogs(context.Background(), 2, "", "cats")
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, "hello", blogs[0].Slug)
	require.NotNil(t, pg)
	assert.Equal(t, 2, pg.Page)
	assert.Equal(t, 4, pg.Pages)
}

func TestListCommentsSingleRequest(t *testing.T) {
	var requests int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		assert.Equal(t, "/api/blogs/hello/comments", r.URL.Path)
		w.Write([]byte(`{
			"success": true,
			"data": [{
				"id":"c1","content":"root","status":"active","can_reply":true,
				"author":{"id":"u1","username":"ada"},
				"replies":[{"id":"c2","content":"child","status":"active","depth":9,
					"author":{"id":"u2","username":"grace"}}]
			}],
			"pagination": {"page":1,"limit":50,"total":1,"pages":1}
		}`))
	}))

	comments, pg, err := client.ListComments(context.Background(), "hello", 1, 50)
	require.NoError(t, err)
	require.NotNil(t, pg, "tree and pagination must come from one request")
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))

	require.Len(t, comments, 1)
	require.Len(t, comments[0].Replies, 1)
	// Depth is normalized from the parent, not trusted from the wire.
	assert.Equal(t, 0, comments[0].Depth)
	assert.Equal(t, 1, comments[0].Replies[0].Depth)
}

func TestReportComment(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/comments/c9/report", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"status":"hidden","report_count":5}}`))
	}))

	res, err := client.ReportComment(context.Background(), "c9", ReasonSpam)
	require.NoError(t, err)
	// The backend's state is displayed as-is, never recomputed.
	assert.Equal(t, StatusHidden, res.Status)
	assert.Equal(t, 5, res.ReportCount)
	assert.Contains(t, res.Message, "under review")
}

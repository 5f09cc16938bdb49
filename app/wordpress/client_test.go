package wordpress

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/lysyi3m/chapter-web/app/cfg"
	"github.com/lysyi3m/chapter-web/app/metrics"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *metrics.Metrics) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	m := metrics.New()
	client := NewClient(&cfg.Cfg{
		WordPressAPIURL:    server.URL + "/wp-json/wp/v2",
		RequestTimeout:     5,
		PostsRevalidate:    60,
		TaxonomyRevalidate: 3600,
		UserAgent:          "Test Agent",
	}, m)
	return client, m
}

func TestClient_NotConfiguredMakesNoRequests(t *testing.T) {
	for _, apiURL := range []string{"", "https://your-wordpress-site.com/wp-json/wp/v2"} {
		m := metrics.New()
		client := NewClient(&cfg.Cfg{WordPressAPIURL: apiURL}, m)

		if client.Configured() {
			t.Errorf("Expected %q to be treated as not configured", apiURL)
		}

		page := client.Posts(context.Background(), ListParams{})
		if page.Items == nil || len(page.Items) != 0 || page.Total != 0 || page.TotalPages != 0 {
			t.Errorf("Expected empty page, got %+v", page)
		}
		if _, ok := client.PostBySlug(context.Background(), "anything"); ok {
			t.Error("Expected no post")
		}
		if slugs := client.AllSlugs(context.Background()); slugs == nil || len(slugs) != 0 {
			t.Errorf("Expected empty slugs, got %#v", slugs)
		}

		if got := testutil.ToFloat64(m.FetchFailures.WithLabelValues("posts", string(KindConfigAbsent))); got != 1 {
			t.Errorf("Expected 1 config_absent failure for posts, got %v", got)
		}
	}
}

func TestClient_PostsQueryAndTotals(t *testing.T) {
	var gotPath, gotQuery, gotUA string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("X-WP-Total", "25")
		w.Header().Set("X-WP-TotalPages", "3")
		w.Write([]byte("[" + samplePostJSON + "]"))
	})

	page := client.Posts(context.Background(), ListParams{CategoryIDs: []int{1, 2}, Search: "go lang"})

	if gotPath != "/wp-json/wp/v2/posts" {
		t.Errorf("Expected posts path, got %s", gotPath)
	}
	for _, part := range []string{"page=1", "per_page=12", "_embed=true", "categories=1%2C2", "search=go+lang"} {
		if !strings.Contains(gotQuery, part) {
			t.Errorf("Expected query to contain %s, got %s", part, gotQuery)
		}
	}
	if strings.Contains(gotQuery, "tags=") {
		t.Errorf("Expected no tags parameter, got %s", gotQuery)
	}
	if gotUA != "Test Agent" {
		t.Errorf("Expected user agent to be sent, got %q", gotUA)
	}
	if page.Total != 25 || page.TotalPages != 3 {
		t.Errorf("Expected totals 25/3, got %d/%d", page.Total, page.TotalPages)
	}
	if len(page.Items) != 1 || page.Items[0].Slug != "hello-world" {
		t.Errorf("Expected transformed post, got %+v", page.Items)
	}
}

func TestClient_MissingTotalHeadersDefaultToZero(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})

	page := client.Posts(context.Background(), ListParams{})
	if page.Total != 0 || page.TotalPages != 0 {
		t.Errorf("Expected zero totals, got %d/%d", page.Total, page.TotalPages)
	}
}

func TestClient_FailuresDegradeToEmpty(t *testing.T) {
	cases := map[string]struct {
		handler http.HandlerFunc
		kind    Kind
	}{
		"status": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			kind: KindStatus,
		},
		"decode": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>not json</html>"))
			},
			kind: KindDecode,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			client, m := newTestClient(t, tc.handler)

			page := client.Posts(context.Background(), ListParams{})
			if len(page.Items) != 0 || page.Total != 0 {
				t.Errorf("Expected empty page, got %+v", page)
			}
			if got := testutil.ToFloat64(m.FetchFailures.WithLabelValues("posts", string(tc.kind))); got != 1 {
				t.Errorf("Expected 1 %s failure, got %v", tc.kind, got)
			}
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	m := metrics.New()
	client := NewClient(&cfg.Cfg{WordPressAPIURL: url, RequestTimeout: 1}, m)

	if _, ok := client.CategoryBySlug(context.Background(), "research"); ok {
		t.Error("Expected no category from closed server")
	}
	if got := testutil.ToFloat64(m.FetchFailures.WithLabelValues("category", string(KindTransport))); got != 1 {
		t.Errorf("Expected 1 transport failure, got %v", got)
	}
}

func TestClient_PostBySlugNotFound(t *testing.T) {
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})

	post, ok := client.PostBySlug(context.Background(), "missing")
	if ok || post != nil {
		t.Errorf("Expected absent post, got %+v", post)
	}
	if got := testutil.ToFloat64(m.FetchFailures.WithLabelValues("post", string(KindNotFound))); got != 1 {
		t.Errorf("Expected 1 not_found failure, got %v", got)
	}
}

func TestClient_PostBySlugFound(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte("[" + samplePostJSON + "]"))
	})

	post, ok := client.PostBySlug(context.Background(), "hello-world")
	if !ok {
		t.Fatal("Expected post to be found")
	}
	if post.Title != "Hello World" {
		t.Errorf("Expected title Hello World, got %q", post.Title)
	}
	if !strings.Contains(gotQuery, "slug=hello-world") || !strings.Contains(gotQuery, "_embed=true") {
		t.Errorf("Unexpected query %s", gotQuery)
	}
}

func TestClient_SuccessIsCachedFailureIsNot(t *testing.T) {
	var calls atomic.Int32
	var fail atomic.Bool
	fail.Store(true)

	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if fail.Load() {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"slug":"a"},{"slug":"b"}]`))
	})

	if slugs := client.AllSlugs(context.Background()); len(slugs) != 0 {
		t.Errorf("Expected no slugs while failing, got %v", slugs)
	}

	fail.Store(false)
	first := client.AllSlugs(context.Background())
	second := client.AllSlugs(context.Background())

	if len(first) != 2 || len(second) != 2 {
		t.Errorf("Expected two slugs each time, got %v and %v", first, second)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("Expected 2 upstream calls (failure not cached, success cached), got %d", got)
	}
	if got := testutil.ToFloat64(m.CacheHits.WithLabelValues("slugs")); got != 1 {
		t.Errorf("Expected 1 cache hit, got %v", got)
	}
}

func TestClient_PostsByCategorySlugs(t *testing.T) {
	var mu sync.Mutex
	var postsQuery string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/categories"):
			switch r.URL.Query().Get("slug") {
			case "insights":
				w.Write([]byte(`[{"id":1,"name":"Insights","slug":"insights"}]`))
			case "research":
				w.Write([]byte(`[{"id":2,"name":"Research","slug":"research"}]`))
			default:
				w.Write([]byte(`[]`))
			}
		case strings.HasSuffix(r.URL.Path, "/posts"):
			mu.Lock()
			postsQuery = r.URL.RawQuery
			mu.Unlock()
			w.Header().Set("X-WP-Total", "1")
			w.Header().Set("X-WP-TotalPages", "1")
			w.Write([]byte("[" + samplePostJSON + "]"))
		}
	})

	page := client.PostsByCategorySlugs(context.Background(), []string{"insights", "missing", "research"}, 1, 100)

	if len(page.Items) != 1 {
		t.Errorf("Expected 1 post, got %d", len(page.Items))
	}
	mu.Lock()
	defer mu.Unlock()
	if !strings.Contains(postsQuery, "categories=1%2C2") {
		t.Errorf("Expected resolved IDs in order, got %s", postsQuery)
	}
	if !strings.Contains(postsQuery, "per_page=100") {
		t.Errorf("Expected per_page=100, got %s", postsQuery)
	}
}

func TestClient_PostsByCategorySlugsNoneResolved(t *testing.T) {
	var postsCalls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/posts") {
			postsCalls.Add(1)
		}
		w.Write([]byte(`[]`))
	})

	page := client.PostsByCategorySlugs(context.Background(), []string{"nope", "nada"}, 1, 10)

	if len(page.Items) != 0 || page.Total != 0 {
		t.Errorf("Expected empty page, got %+v", page)
	}
	if postsCalls.Load() != 0 {
		t.Error("Expected no unfiltered posts fetch")
	}
}

func TestClient_SlugsByCategorySlug(t *testing.T) {
	var postsQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/categories") {
			w.Write([]byte(`[{"id":3,"name":"White paper","slug":"white-paper"}]`))
			return
		}
		postsQuery = r.URL.RawQuery
		w.Write([]byte(`[{"slug":"wp-1"}]`))
	})

	slugs := client.SlugsByCategorySlug(context.Background(), "white-paper")

	if len(slugs) != 1 || slugs[0] != "wp-1" {
		t.Errorf("Expected [wp-1], got %v", slugs)
	}
	if !strings.Contains(postsQuery, "categories=3") || !strings.Contains(postsQuery, "_fields=slug") {
		t.Errorf("Unexpected query %s", postsQuery)
	}
}

func TestCache_ExpiresAfterTTL(t *testing.T) {
	cache := NewCache()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	calls := 0
	fetch := func() (any, error) {
		calls++
		return calls, nil
	}

	cache.Fetch("k", time.Minute, fetch)
	v, hit, _ := cache.Fetch("k", time.Minute, fetch)
	if !hit || v.(int) != 1 {
		t.Errorf("Expected cached value 1, got %v (hit=%v)", v, hit)
	}

	now = now.Add(time.Minute)
	v, hit, _ = cache.Fetch("k", time.Minute, fetch)
	if hit || v.(int) != 2 {
		t.Errorf("Expected refetched value 2, got %v (hit=%v)", v, hit)
	}

	now = now.Add(2 * time.Minute)
	if removed := cache.Purge(); removed != 1 {
		t.Errorf("Expected 1 purged entry, got %d", removed)
	}
	if cache.Len() != 0 {
		t.Errorf("Expected empty cache, got %d", cache.Len())
	}
}

func TestCache_ZeroTTLDoesNotStore(t *testing.T) {
	cache := NewCache()
	cache.Fetch("k", 0, func() (any, error) { return 1, nil })
	if cache.Len() != 0 {
		t.Errorf("Expected nothing stored, got %d entries", cache.Len())
	}
}

func TestCache_ErrorNotStored(t *testing.T) {
	cache := NewCache()
	_, _, err := cache.Fetch("k", time.Minute, func() (any, error) { return nil, errors.New("x") })
	if err == nil {
		t.Error("Expected error to be returned")
	}
	if cache.Len() != 0 {
		t.Errorf("Expected nothing stored, got %d entries", cache.Len())
	}
}

func TestFetchError_Unwrap(t *testing.T) {
	err := &FetchError{Op: "post", Kind: KindNotFound, Err: ErrNotFound}
	if !errors.Is(err, ErrNotFound) {
		t.Error("Expected FetchError to unwrap to ErrNotFound")
	}
	if kindOf(err) != KindNotFound {
		t.Errorf("Expected kind not_found, got %s", kindOf(err))
	}
}

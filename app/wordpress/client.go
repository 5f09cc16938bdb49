package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lysyi3m/chapter-web/app/cfg"
	"github.com/lysyi3m/chapter-web/app/content"
	"github.com/lysyi3m/chapter-web/app/metrics"
)

// Client reads posts and categories from the WordPress REST API.
//
// None of its methods return errors: every failure is logged, counted and
// turned into an empty or absent result so pages can still render.
type Client struct {
	baseURL     string
	configured  bool
	userAgent   string
	httpClient  *http.Client
	postsTTL    time.Duration
	taxonomyTTL time.Duration
	cache       *Cache
	metrics     *metrics.Metrics
}

func NewClient(c *cfg.Cfg, m *metrics.Metrics) *Client {
	return &Client{
		baseURL:    c.WordPressAPIURL,
		configured: c.APIConfigured(),
		userAgent:  c.UserAgent,
		httpClient: &http.Client{
			Timeout: c.GetRequestTimeout(),
		},
		postsTTL:    c.GetPostsRevalidate(),
		taxonomyTTL: c.GetTaxonomyRevalidate(),
		cache:       NewCache(),
		metrics:     m,
	}
}

func (c *Client) Configured() bool {
	return c.configured
}

func (c *Client) Cache() *Cache {
	return c.cache
}

func (c *Client) Posts(ctx context.Context, params ListParams) PostPage {
	params = params.withDefaults()
	query := params.values()

	page, err := cached(c, "posts", "posts?"+query.Encode(), c.postsTTL, func() (PostPage, error) {
		var raw []WPPost
		header, err := c.getJSON(ctx, "posts", "posts", query, &raw)
		if err != nil {
			return PostPage{}, err
		}
		return PostPage{
			Items:      TransformAll(raw),
			Total:      headerInt(header, "X-WP-Total"),
			TotalPages: headerInt(header, "X-WP-TotalPages"),
		}, nil
	})
	if err != nil {
		c.fail(ctx, err)
		return emptyPage()
	}
	return page
}

func (c *Client) PostBySlug(ctx context.Context, slug string) (*content.Post, bool) {
	query := url.Values{}
	query.Set("slug", slug)
	query.Set("_embed", "true")

	post, err := cached(c, "post", "post?"+query.Encode(), c.postsTTL, func() (content.Post, error) {
		var raw []WPPost
		if _, err := c.getJSON(ctx, "post", "posts", query, &raw); err != nil {
			return content.Post{}, err
		}
		if len(raw) == 0 {
			return content.Post{}, &FetchError{Op: "post", Kind: KindNotFound, Err: fmt.Errorf("slug %q: %w", slug, ErrNotFound)}
		}
		return Transform(raw[0]), nil
	})
	if err != nil {
		c.fail(ctx, err)
		return nil, false
	}
	return &post, true
}

func (c *Client) CategoryBySlug(ctx context.Context, slug string) (*content.Category, bool) {
	query := url.Values{}
	query.Set("slug", slug)

	category, err := cached(c, "category", "category?"+query.Encode(), c.taxonomyTTL, func() (content.Category, error) {
		var raw []WPCategory
		if _, err := c.getJSON(ctx, "category", "categories", query, &raw); err != nil {
			return content.Category{}, err
		}
		if len(raw) == 0 {
			return content.Category{}, &FetchError{Op: "category", Kind: KindNotFound, Err: fmt.Errorf("slug %q: %w", slug, ErrNotFound)}
		}
		return content.Category{
			ID:          raw[0].ID,
			Name:        raw[0].Name,
			Slug:        raw[0].Slug,
			Description: raw[0].Description,
		}, nil
	})
	if err != nil {
		c.fail(ctx, err)
		return nil, false
	}
	return &category, true
}

func (c *Client) AllSlugs(ctx context.Context) []string {
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(MaxPerPage))
	query.Set("_fields", "slug")

	return c.slugs(ctx, "slugs", query)
}

func (c *Client) SlugsByCategorySlug(ctx context.Context, categorySlug string) []string {
	category, ok := c.CategoryBySlug(ctx, categorySlug)
	if !ok {
		return []string{}
	}

	query := url.Values{}
	query.Set("categories", strconv.Itoa(category.ID))
	query.Set("per_page", strconv.Itoa(MaxPerPage))
	query.Set("_fields", "slug")

	return c.slugs(ctx, "category_slugs", query)
}

func (c *Client) slugs(ctx context.Context, op string, query url.Values) []string {
	slugs, err := cached(c, op, op+"?"+query.Encode(), c.taxonomyTTL, func() ([]string, error) {
		var raw []struct {
			Slug string `json:"slug"`
		}
		if _, err := c.getJSON(ctx, op, "posts", query, &raw); err != nil {
			return nil, err
		}
		slugs := make([]string, 0, len(raw))
		for _, r := range raw {
			slugs = append(slugs, r.Slug)
		}
		return slugs, nil
	})
	if err != nil {
		c.fail(ctx, err)
		return []string{}
	}
	return slugs
}

func (c *Client) PostsByCategorySlug(ctx context.Context, categorySlug string, page, perPage int) PostPage {
	return c.PostsByCategorySlugs(ctx, []string{categorySlug}, page, perPage)
}

// PostsByCategorySlugs resolves every slug concurrently and waits for all of
// them. Slugs that do not resolve are dropped; if none resolve the result is
// empty rather than an unfiltered listing.
func (c *Client) PostsByCategorySlugs(ctx context.Context, categorySlugs []string, page, perPage int) PostPage {
	if len(categorySlugs) == 0 {
		return emptyPage()
	}

	resolved := make([]*content.Category, len(categorySlugs))

	var g errgroup.Group
	for i, slug := range categorySlugs {
		g.Go(func() error {
			if category, ok := c.CategoryBySlug(ctx, slug); ok {
				resolved[i] = category
			}
			return nil
		})
	}
	_ = g.Wait()

	var ids []int
	for _, category := range resolved {
		if category != nil {
			ids = append(ids, category.ID)
		}
	}
	if len(ids) == 0 {
		return emptyPage()
	}

	return c.Posts(ctx, ListParams{CategoryIDs: ids, Page: page, PerPage: perPage})
}

func (p ListParams) values() url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(p.Page))
	query.Set("per_page", strconv.Itoa(p.PerPage))
	query.Set("_embed", "true")

	if len(p.CategoryIDs) > 0 {
		query.Set("categories", joinInts(p.CategoryIDs))
	}
	if len(p.TagIDs) > 0 {
		query.Set("tags", joinInts(p.TagIDs))
	}
	if p.Search != "" {
		query.Set("search", p.Search)
	}
	return query
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, dest any) (http.Header, error) {
	if !c.configured {
		return nil, &FetchError{Op: op, Kind: KindConfigAbsent, Err: ErrNotConfigured}
	}

	endpoint := c.baseURL + "/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, &FetchError{Op: op, Kind: KindTransport, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Op: op, Kind: KindTransport, Err: fmt.Errorf("failed to fetch %s: %w", path, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Op: op, Kind: KindStatus, Err: fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: op, Kind: KindTransport, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return nil, &FetchError{Op: op, Kind: KindDecode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return resp.Header, nil
}

func (c *Client) fail(ctx context.Context, err error) {
	kind := kindOf(err)
	op := "unknown"
	var fe *FetchError
	if errors.As(err, &fe) {
		op = fe.Op
	}

	c.metrics.RecordFetchFailure(op, string(kind))
	slog.Log(ctx, kind.logLevel(), "Content API call degraded to empty result",
		"op", op,
		"kind", kind,
		"error", err)
}

func headerInt(header http.Header, name string) int {
	n, err := strconv.Atoi(header.Get(name))
	if err != nil {
		return 0
	}
	return n
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

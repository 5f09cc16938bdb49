package api

import (
	"context"

	"github.com/lysyi3m/chapter-web/app/content"
	"github.com/lysyi3m/chapter-web/app/listing"
	"github.com/lysyi3m/chapter-web/app/site"
	"github.com/lysyi3m/chapter-web/app/wordpress"
)

// ContentSource is the read side of the content API. Implementations
// never fail; they return empty or absent values instead.
type ContentSource interface {
	Configured() bool
	PostBySlug(ctx context.Context, slug string) (*content.Post, bool)
	CategoryBySlug(ctx context.Context, slug string) (*content.Category, bool)
	AllSlugs(ctx context.Context) []string
	PostsByCategorySlugs(ctx context.Context, categorySlugs []string, page, perPage int) wordpress.PostPage
}

var _ ContentSource = (*wordpress.Client)(nil)

type FeedGeneratorInterface interface {
	Run(section *site.Section, posts []content.Post) (string, error)
}

var _ FeedGeneratorInterface = (*site.FeedGenerator)(nil)

type Handler struct {
	content   ContentSource
	sections  *site.SectionCache
	generator FeedGeneratorInterface
	templates *Templates
	siteName  string
	siteURL   string
	version   string
}

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	ViewGrid = "grid"
	ViewList = "list"

	themeCookie    = "theme"
	viewModeCookie = "viewMode"
)

// Page carries what every template needs. Theme and view mode are resolved
// from cookies once per request and passed down explicitly.
type Page struct {
	SiteName    string
	SiteURL     string
	Title       string
	Description string
	Canonical   string
	Image       string
	Theme       string
	ViewMode    string
	CurrentPath string
	Sections    []*site.Section
	RequestID   string
	Year        int
}

type HeroSlide struct {
	Title   string
	Excerpt string
	URL     string
	Image   string
}

type PostCard struct {
	Post        content.Post
	URL         string
	Category    string
	Summary     string
	Date        string
	ReadingTime string
}

type ListingView struct {
	Page
	Section         *site.Section
	Carousel        []HeroSlide
	HeroTitle       string
	HeroDescription string
	State           listing.State
	Facets          listing.Facets
	Cards           []PostCard
	Total           int
	Shown           int
	HasMore         bool
	NextURL         string
	EmptyTitle      string
	EmptyDetail     string
	SearchDebounce  int64 // milliseconds
	Placeholder     bool
	FeedURL         string
}

type PostView struct {
	Page
	Post            content.Post
	Body            string
	Headings        []content.Heading
	Date            string
	ReadingTime     string
	Category        string
	ParentTitle     string
	ParentURL       string
	TOCRootMargin   string
	TOCScrollOffset int
	Placeholder     bool
}

type ErrorView struct {
	Page
	Heading string
	Message string
	Action  string
	Link    string
}

// PostsResponse is the JSON shape of /api/posts.
type PostsResponse struct {
	Items   []content.Post `json:"items"`
	Total   int            `json:"total"`
	Visible int            `json:"visible"`
	HasMore bool           `json:"has_more"`
	Key     string         `json:"key"`
	Next    string         `json:"next,omitempty"`
}

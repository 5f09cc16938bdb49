package content

import (
	"strings"
	"time"
)

type Post struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Excerpt       string `json:"excerpt"` // untrusted HTML
	Content       string `json:"content"` // untrusted HTML
	Date          string `json:"date"`    // ISO-8601 as returned by the API
	Author        Author `json:"author"`
	FeaturedImage *Image `json:"featuredImage"`
	Categories    []Term `json:"categories"`
	Tags          []Term `json:"tags"`
}

type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type Image struct {
	URL    string `json:"url"`
	Alt    string `json:"alt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Term is a category or tag reference embedded in a post.
type Term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses the date formats the content API and the date range
// inputs produce. Dates without a zone are read as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsDateOnly reports whether s carries no time-of-day component.
func IsDateOnly(s string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	return err == nil
}

// Time returns the parsed publication date. Unparseable dates yield the
// zero time and ok=false.
func (p Post) Time() (time.Time, bool) {
	return ParseDate(p.Date)
}

// PrimaryCategory is the category that decides the post's URL.
func (p Post) PrimaryCategory() (Term, bool) {
	if len(p.Categories) == 0 {
		return Term{}, false
	}
	return p.Categories[0], true
}

func (p Post) HasCategory(slug string) bool {
	for _, c := range p.Categories {
		if c.Slug == slug {
			return true
		}
	}
	return false
}

// URL is the canonical site path of the post.
func (p Post) URL() string {
	category, _ := p.PrimaryCategory()
	return PostURL(p.Slug, category.Slug)
}

// PostURL builds /<category>/<slug>. Posts without a category live under
// insights, and the plural "chapters" category routes to /chapter.
func PostURL(slug, categorySlug string) string {
	category := categorySlug
	if category == "" {
		category = "insights"
	}
	if category == "chapters" {
		category = "chapter"
	}
	return "/" + category + "/" + slug
}

package wordpress

import "github.com/lysyi3m/chapter-web/app/content"

// Rendered is the {"rendered": "..."} wrapper WordPress uses for text fields.
type Rendered struct {
	Rendered string `json:"rendered"`
}

type WPPost struct {
	ID       int        `json:"id"`
	Date     string     `json:"date"`
	Slug     string     `json:"slug"`
	Title    Rendered   `json:"title"`
	Content  Rendered   `json:"content"`
	Excerpt  Rendered   `json:"excerpt"`
	Embedded WPEmbedded `json:"_embedded"`
}

type WPEmbedded struct {
	Author        []WPAuthor `json:"author"`
	FeaturedMedia []WPMedia  `json:"wp:featuredmedia"`
	Terms         [][]WPTerm `json:"wp:term"`
}

type WPAuthor struct {
	Name       string            `json:"name"`
	AvatarURLs map[string]string `json:"avatar_urls"`
}

type WPMedia struct {
	SourceURL    string          `json:"source_url"`
	AltText      string          `json:"alt_text"`
	MediaDetails *WPMediaDetails `json:"media_details"`
}

type WPMediaDetails struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type WPTerm struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Taxonomy string `json:"taxonomy"`
}

type WPCategory struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

const (
	DefaultPage    = 1
	DefaultPerPage = 12
	// MaxPerPage is the largest page WordPress will serve.
	MaxPerPage = 100
)

type ListParams struct {
	CategoryIDs []int
	TagIDs      []int
	Search      string
	Page        int
	PerPage     int
}

func (p ListParams) withDefaults() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	return p
}

type PostPage struct {
	Items      []content.Post `json:"items"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

func emptyPage() PostPage {
	return PostPage{Items: []content.Post{}}
}

package content

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	PlaceholderTitle  = "Lorem ipsum dolor sit amet, consectetur adipiscing elit"
	PlaceholderAuthor = "Matthew Ayeola"
)

const placeholderExcerpt = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris."

const placeholderBody = `
<p>Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat.</p>

<h2>Introduction</h2>
<p>Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum.</p>

<h2>Key Points</h2>
<p>Sed ut perspiciatis unde omnis iste natus error sit voluptatem accusantium doloremque laudantium, totam rem aperiam, eaque ipsa quae ab illo inventore veritatis et quasi architecto beatae vitae dicta sunt explicabo.</p>

<ul>
  <li>Nemo enim ipsam voluptatem quia voluptas sit aspernatur aut odit aut fugit</li>
  <li>Neque porro quisquam est, qui dolorem ipsum quia dolor sit amet</li>
  <li>Consectetur, adipisci velit, sed quia non numquam eius modi tempora incidunt</li>
  <li>Ut labore et dolore magnam aliquam quaerat voluptatem</li>
</ul>

<h2>Analysis</h2>
<p>Ut enim ad minima veniam, quis nostrum exercitationem ullam corporis suscipit laboriosam, nisi ut aliquid ex ea commodi consequatur? Quis autem vel eum iure reprehenderit qui in ea voluptate velit esse quam nihil molestiae consequatur, vel illum qui dolorem eum fugiat quo voluptas nulla pariatur?</p>

<blockquote>
  <p>At vero eos et accusamus et iusto odio dignissimos ducimus qui blanditiis praesentium voluptatum deleniti atque corrupti quos dolores et quas molestias excepturi sint occaecati cupiditate non provident.</p>
</blockquote>

<h2>Conclusion</h2>
<p>Similique sunt in culpa qui officia deserunt mollitia animi, id est laborum et dolorum fuga. Et harum quidem rerum facilis est et expedita distinctio. Nam libero tempore, cum soluta nobis est eligendi optio cumque nihil impedit quo minus id quod maxime placeat facere possimus, omnis voluptas assumenda est, omnis dolor repellendus.</p>

<p>Temporibus autem quibusdam et aut officiis debitis aut rerum necessitatibus saepe eveniet ut et voluptates repudiandae sint et molestiae non recusandae. Itaque earum rerum hic tenetur a sapiente delectus, ut aut reiciendis voluptatibus maiores alias consequatur aut perferendis doloribus asperiores repellat.</p>
`

// Placeholder slugs are "<prefix><n>".
const (
	PrefixInsight    = "insight-"
	PrefixResearch   = "research-"
	PrefixWhitePaper = "whitepaper-"
	PrefixPost       = "post-"
)

var (
	CategoryInsights   = Term{ID: 1, Name: "Insights", Slug: "insights"}
	CategoryResearch   = Term{ID: 2, Name: "Research", Slug: "research"}
	CategoryWhitePaper = Term{ID: 3, Name: "White paper", Slug: "white-paper"}
)

// PlaceholderCategories is the cycle "post-<n>" slugs rotate through.
var PlaceholderCategories = []Term{CategoryInsights, CategoryResearch, CategoryWhitePaper}

var placeholderTags = []Term{
	{ID: 1, Name: "Technology", Slug: "technology"},
	{ID: 2, Name: "Analysis", Slug: "analysis"},
	{ID: 3, Name: "Trends", Slug: "trends"},
}

var placeholderEpoch = time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)

// Placeholder generates the filler post for a slug. The category comes
// from the slug prefix only; slugs of any other shape have no placeholder.
// The same slug always yields the same post.
func Placeholder(slug string) (*Post, bool) {
	switch {
	case strings.HasPrefix(slug, PrefixInsight):
		return newPlaceholder(slug, placeholderID(slug, PrefixInsight), CategoryInsights), true
	case strings.HasPrefix(slug, PrefixResearch):
		return newPlaceholder(slug, placeholderID(slug, PrefixResearch), CategoryResearch), true
	case strings.HasPrefix(slug, PrefixWhitePaper):
		return newPlaceholder(slug, placeholderID(slug, PrefixWhitePaper), CategoryWhitePaper), true
	case strings.HasPrefix(slug, PrefixPost):
		n, err := strconv.Atoi(strings.TrimPrefix(slug, PrefixPost))
		if err != nil || n < 1 {
			return nil, false
		}
		return newPlaceholder(slug, n, PlaceholderCategories[(n-1)%len(PlaceholderCategories)]), true
	}
	return nil, false
}

// Placeholders builds prefix1..prefixN, e.g. the 30 posts a section shows
// while the content API is unavailable.
func Placeholders(prefix string, count int) []Post {
	posts := make([]Post, 0, count)
	for i := 1; i <= count; i++ {
		if post, ok := Placeholder(fmt.Sprintf("%s%d", prefix, i)); ok {
			posts = append(posts, *post)
		}
	}
	return posts
}

// placeholderID is the numeric slug suffix, 1 when the suffix is not a
// positive number.
func placeholderID(slug, prefix string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(slug, prefix))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func newPlaceholder(slug string, id int, category Term) *Post {
	tags := make([]Term, len(placeholderTags))
	copy(tags, placeholderTags)

	return &Post{
		ID:      id,
		Title:   PlaceholderTitle,
		Slug:    slug,
		Excerpt: placeholderExcerpt,
		Content: placeholderBody,
		Date:    placeholderEpoch.AddDate(0, 0, -(id - 1)).Format("2006-01-02"),
		Author: Author{
			Name:   PlaceholderAuthor,
			Avatar: fmt.Sprintf("https://i.pravatar.cc/150?img=%d", id%70+1),
		},
		FeaturedImage: &Image{
			URL:    fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", slug),
			Alt:    "Featured image",
			Width:  1200,
			Height: 630,
		},
		Categories: []Term{category},
		Tags:       tags,
	}
}

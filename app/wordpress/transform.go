package wordpress

import (
	"cmp"

	"github.com/lysyi3m/chapter-web/app/content"
)

const (
	UnknownAuthor      = "Unknown"
	AvatarSize         = "96"
	DefaultImageWidth  = 1200
	DefaultImageHeight = 630

	taxonomyCategory = "category"
	taxonomyTag      = "post_tag"
)

// Transform maps a raw WordPress post onto the site's view model.
// HTML fields are passed through as-is.
func Transform(raw WPPost) content.Post {
	categories, tags := splitTerms(raw.Embedded.Terms)

	return content.Post{
		ID:            raw.ID,
		Title:         raw.Title.Rendered,
		Slug:          raw.Slug,
		Excerpt:       raw.Excerpt.Rendered,
		Content:       raw.Content.Rendered,
		Date:          raw.Date,
		Author:        transformAuthor(raw.Embedded.Author),
		FeaturedImage: transformImage(raw.Embedded.FeaturedMedia, raw.Title.Rendered),
		Categories:    categories,
		Tags:          tags,
	}
}

func TransformAll(raw []WPPost) []content.Post {
	posts := make([]content.Post, 0, len(raw))
	for _, p := range raw {
		posts = append(posts, Transform(p))
	}
	return posts
}

func transformAuthor(authors []WPAuthor) content.Author {
	if len(authors) == 0 {
		return content.Author{Name: UnknownAuthor}
	}
	a := authors[0]
	return content.Author{
		Name:   cmp.Or(a.Name, UnknownAuthor),
		Avatar: a.AvatarURLs[AvatarSize],
	}
}

func transformImage(media []WPMedia, title string) *content.Image {
	if len(media) == 0 || media[0].SourceURL == "" {
		return nil
	}
	m := media[0]

	img := &content.Image{
		URL:    m.SourceURL,
		Alt:    cmp.Or(m.AltText, title),
		Width:  DefaultImageWidth,
		Height: DefaultImageHeight,
	}
	if m.MediaDetails != nil {
		img.Width = cmp.Or(m.MediaDetails.Width, DefaultImageWidth)
		img.Height = cmp.Or(m.MediaDetails.Height, DefaultImageHeight)
	}
	return img
}

// splitTerms sorts term groups by their taxonomy field. Groups without one
// fall back to position: the first holds categories, the second tags.
func splitTerms(groups [][]WPTerm) (categories, tags []content.Term) {
	categories = []content.Term{}
	tags = []content.Term{}

	for i, group := range groups {
		switch groupTaxonomy(group) {
		case taxonomyCategory:
			categories = append(categories, toTerms(group)...)
		case taxonomyTag:
			tags = append(tags, toTerms(group)...)
		case "":
			switch i {
			case 0:
				categories = append(categories, toTerms(group)...)
			case 1:
				tags = append(tags, toTerms(group)...)
			}
		}
	}

	return categories, tags
}

func groupTaxonomy(group []WPTerm) string {
	for _, t := range group {
		if t.Taxonomy != "" {
			return t.Taxonomy
		}
	}
	return ""
}

func toTerms(group []WPTerm) []content.Term {
	terms := make([]content.Term, 0, len(group))
	for _, t := range group {
		terms = append(terms, content.Term{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	return terms
}

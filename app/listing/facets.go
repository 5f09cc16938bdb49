package listing

import "github.com/lysyi3m/chapter-web/app/content"

type Facets struct {
	Categories []content.Term
	Authors    []string
}

// BuildFacets collects the distinct categories (by slug) and author names in
// the order they first appear.
func BuildFacets(posts []content.Post) Facets {
	facets := Facets{Categories: []content.Term{}, Authors: []string{}}
	seenCategories := make(map[string]bool)
	seenAuthors := make(map[string]bool)

	for _, p := range posts {
		for _, c := range p.Categories {
			if !seenCategories[c.Slug] {
				seenCategories[c.Slug] = true
				facets.Categories = append(facets.Categories, c)
			}
		}
		if name := p.Author.Name; name != "" && !seenAuthors[name] {
			seenAuthors[name] = true
			facets.Authors = append(facets.Authors, name)
		}
	}

	return facets
}

package content

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Scroll tracking parameters shared with the article page script.
const (
	TOCRootMargin   = "-20% 0px -35% 0px"
	TOCScrollOffset = 100 // px cleared for the sticky header
)

type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

func headingID(i int) string {
	return fmt.Sprintf("heading-%d", i)
}

// ExtractHeadings collects the level-2 headings of a post body in document
// order. IDs are assigned sequentially and ignore any id in the markup.
func ExtractHeadings(html string) []Heading {
	if strings.TrimSpace(html) == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var headings []Heading
	doc.Find("h2").Each(func(i int, s *goquery.Selection) {
		headings = append(headings, Heading{
			ID:    headingID(i),
			Text:  strings.TrimSpace(s.Text()),
			Level: 2,
		})
	})
	return headings
}

// AnchorHeadings returns the body with each h2 carrying the ID
// ExtractHeadings assigned to it. On parse failure the input is returned.
func AnchorHeadings(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	doc.Find("h2").Each(func(i int, s *goquery.Selection) {
		s.SetAttr("id", headingID(i))
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return html
	}
	return out
}

// TOCProgress formats the reading position as "03/07".
func TOCProgress(active, total int) string {
	if total <= 0 {
		return "00/00"
	}
	if active < 0 {
		active = 0
	}
	if active >= total {
		active = total - 1
	}
	return fmt.Sprintf("%02d/%02d", active+1, total)
}

package site

import (
	"bytes"
	"cmp"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/lysyi3m/chapter-web/app/content"
)

// FeedItemLimit caps how many posts a section feed carries.
const FeedItemLimit = 20

type FeedGenerator struct {
	siteName string
	siteURL  string
	version  string
}

func NewFeedGenerator(siteName, siteURL, version string) *FeedGenerator {
	return &FeedGenerator{
		siteName: siteName,
		siteURL:  siteURL,
		version:  version,
	}
}

// Run renders an RSS 2.0 document for the section. Posts are expected
// newest first.
func (g *FeedGenerator) Run(section *Section, posts []content.Post) (string, error) {
	if section == nil {
		return "", fmt.Errorf("section is nil")
	}

	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	writeElement(&buf, "title", fmt.Sprintf("%s - %s", section.Title, g.siteName), 4)
	writeElement(&buf, "link", g.siteURL+section.Path(), 4)
	writeElement(&buf, "description", cmp.Or(content.StripHTML(section.Description), section.Title), 4)

	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(g.siteURL+section.FeedPath())))

	if len(posts) > FeedItemLimit {
		posts = posts[:FeedItemLimit]
	}

	lastBuildDate := time.Now().In(time.Local)
	if len(posts) > 0 {
		if t, ok := posts[0].Time(); ok {
			lastBuildDate = t
		}
	}

	writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	writeElement(&buf, "generator", fmt.Sprintf("Chapter-Web/%s", g.version), 4)
	writeElement(&buf, "language", "en", 4)

	for _, post := range posts {
		g.writeItem(&buf, post)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *FeedGenerator) writeItem(buf *bytes.Buffer, post content.Post) {
	link := g.siteURL + post.URL()

	buf.WriteString("    <item>\n")

	buf.WriteString("      <guid isPermaLink=\"true\">")
	buf.WriteString(html.EscapeString(link))
	buf.WriteString("</guid>\n")

	writeElement(buf, "title", content.StripHTML(post.Title), 6)
	writeElement(buf, "link", link, 6)
	writeElement(buf, "description", cmp.Or(content.StripHTML(post.Excerpt), "No description available"), 6)

	if post.Content != "" {
		buf.WriteString("      <content:encoded><![CDATA[")
		buf.WriteString(strings.ReplaceAll(post.Content, "]]>", "]]]]><![CDATA[>"))
		buf.WriteString("]]></content:encoded>\n")
	}

	if t, ok := post.Time(); ok {
		writeElement(buf, "pubDate", t.Format(time.RFC1123Z), 6)
	}

	if post.Author.Name != "" {
		writeElement(buf, "author", post.Author.Name, 6)
	}

	for _, category := range post.Categories {
		writeElement(buf, "category", category.Name, 6)
	}

	buf.WriteString("    </item>\n")
}

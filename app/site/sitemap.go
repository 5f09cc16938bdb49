package site

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"time"
)

// PostsSection is where sitemap entries for individual posts point.
const PostsSection = "chapter"

type SitemapEntry struct {
	Loc             string
	LastModified    time.Time
	ChangeFrequency string
	Priority        float64
}

// SitemapEntries lists the home page, every section and every known post.
func SitemapEntries(baseURL string, sections []*Section, slugs []string, now time.Time) []SitemapEntry {
	entries := make([]SitemapEntry, 0, 1+len(sections)+len(slugs))

	entries = append(entries, SitemapEntry{
		Loc:             baseURL,
		LastModified:    now,
		ChangeFrequency: "daily",
		Priority:        1,
	})

	for _, s := range sections {
		entries = append(entries, SitemapEntry{
			Loc:             baseURL + s.Path(),
			LastModified:    now,
			ChangeFrequency: s.Sitemap.ChangeFrequency,
			Priority:        s.Sitemap.Priority,
		})
	}

	for _, slug := range slugs {
		entries = append(entries, SitemapEntry{
			Loc:             baseURL + "/" + PostsSection + "/" + slug,
			LastModified:    now,
			ChangeFrequency: "weekly",
			Priority:        0.8,
		})
	}

	return entries
}

func Sitemap(baseURL string, sections []*Section, slugs []string, now time.Time) string {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	buf.WriteString("\n")

	for _, entry := range SitemapEntries(baseURL, sections, slugs, now) {
		buf.WriteString("  <url>\n")
		writeElement(&buf, "loc", entry.Loc, 4)
		writeElement(&buf, "lastmod", entry.LastModified.Format(time.RFC3339), 4)
		writeElement(&buf, "changefreq", entry.ChangeFrequency, 4)
		writeElement(&buf, "priority", strconv.FormatFloat(entry.Priority, 'f', 1, 64), 4)
		buf.WriteString("  </url>\n")
	}

	buf.WriteString("</urlset>")

	return buf.String()
}

func writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

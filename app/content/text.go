package content

import (
	"fmt"
	"html"
	"log/slog"
	"math"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const (
	DefaultDateLayout = "2 Jan 2006"
	wordsPerMinute    = 200

	// Bodies shorter than this are fragments (excerpts, cards) and are not
	// worth running through readability.
	minArticleChars = 500
)

var articleBaseURL, _ = url.Parse("http://localhost/")

// StripHTML returns the text content of an HTML fragment with whitespace
// collapsed.
func StripHTML(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return strings.Join(strings.Fields(html.UnescapeString(fragment)), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(html.UnescapeString(fragment)), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// ArticleText extracts the readable text of a full post body, falling back
// to plain tag stripping for short fragments or when extraction fails.
func ArticleText(html string) string {
	plain := StripHTML(html)
	if len(plain) < minArticleChars {
		return plain
	}

	article, err := readability.FromReader(strings.NewReader(html), articleBaseURL)
	if err != nil {
		slog.Debug("Readability extraction failed, using stripped text", "error", err)
		return plain
	}

	text := strings.Join(strings.Fields(article.TextContent), " ")
	if text == "" {
		return plain
	}
	return text
}

// Truncate cuts text to length runes and appends "...".
func Truncate(text string, length int) string {
	if utf8.RuneCountInString(text) <= length {
		return text
	}
	runes := []rune(text)
	return string(runes[:length]) + "..."
}

// Summarize is the plain-text description used for meta tags and hero
// cards.
func Summarize(html string, length int) string {
	plain := StripHTML(html)
	if utf8.RuneCountInString(plain) <= length {
		return plain
	}
	return string([]rune(plain)[:length])
}

// ReadingTime estimates "N min read" at 200 words per minute.
func ReadingTime(html string) string {
	words := len(strings.Fields(ArticleText(html)))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// FormatDate renders an API date with layout, "2 Jan 2006" by default.
// Unparseable dates are returned unchanged.
func FormatDate(date string, layout ...string) string {
	t, ok := ParseDate(date)
	if !ok {
		return date
	}
	if len(layout) > 0 && layout[0] != "" {
		return t.Format(layout[0])
	}
	return t.Format(DefaultDateLayout)
}

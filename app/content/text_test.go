package content

import (
	"strings"
	"testing"
)

func TestStripHTML(t *testing.T) {
	got := StripHTML("<p>Hello <strong>world</strong></p>\n<p>again</p>")
	if got != "Hello world again" {
		t.Errorf("Expected 'Hello world again', got '%s'", got)
	}

	if got := StripHTML("plain   text"); got != "plain text" {
		t.Errorf("Expected 'plain text', got '%s'", got)
	}
}

func TestStripHTML_EntitiesWithoutTags(t *testing.T) {
	if got := StripHTML("It&#8217;s time"); got != "It’s time" {
		t.Errorf("Expected decoded apostrophe, got '%s'", got)
	}
	if got := StripHTML("Second &amp; last"); got != "Second & last" {
		t.Errorf("Expected 'Second & last', got '%s'", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Expected 'short', got '%s'", got)
	}
	if got := Truncate("abcdefghij", 4); got != "abcd..." {
		t.Errorf("Expected 'abcd...', got '%s'", got)
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize("<p>Lorem <em>ipsum</em> dolor sit amet</p>", 11)
	if got != "Lorem ipsum" {
		t.Errorf("Expected 'Lorem ipsum', got '%s'", got)
	}
}

func TestReadingTime(t *testing.T) {
	if got := ReadingTime("<p>one two three</p>"); got != "1 min read" {
		t.Errorf("Expected '1 min read', got '%s'", got)
	}

	long := "<p>" + strings.Repeat("word ", 450) + "</p>"
	if got := ReadingTime(long); got != "3 min read" {
		t.Errorf("Expected '3 min read', got '%s'", got)
	}

	if got := ReadingTime(""); got != "1 min read" {
		t.Errorf("Expected '1 min read' for empty content, got '%s'", got)
	}
}

func TestArticleText_PlaceholderBody(t *testing.T) {
	text := ArticleText(placeholderBody)
	if !strings.Contains(text, "Duis aute irure dolor") {
		t.Errorf("Expected article text to contain body paragraphs")
	}
	if strings.Contains(text, "<p>") {
		t.Errorf("Article text should not contain markup")
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2025-02-10"); got != "10 Feb 2025" {
		t.Errorf("Expected '10 Feb 2025', got '%s'", got)
	}
	if got := FormatDate("2025-02-10T08:30:00"); got != "10 Feb 2025" {
		t.Errorf("Expected '10 Feb 2025', got '%s'", got)
	}
	if got := FormatDate("2025-02-10", "January 2, 2006"); got != "February 10, 2025" {
		t.Errorf("Expected 'February 10, 2025', got '%s'", got)
	}
	if got := FormatDate("not a date"); got != "not a date" {
		t.Errorf("Expected unparseable date unchanged, got '%s'", got)
	}
}

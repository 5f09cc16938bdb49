package listing

import (
	"slices"
	"strings"
	"time"

	"github.com/lysyi3m/chapter-web/app/content"
)

// Apply narrows posts by category, author and search text, then handles the
// date mode. The input slice is never modified.
func Apply(posts []content.Post, state State) []content.Post {
	filtered := slices.Clone(posts)

	if len(state.Categories) > 0 {
		filtered = slices.DeleteFunc(filtered, func(p content.Post) bool {
			return !slices.ContainsFunc(p.Categories, func(t content.Term) bool {
				return slices.Contains(state.Categories, t.Slug)
			})
		})
	}

	if len(state.Authors) > 0 {
		filtered = slices.DeleteFunc(filtered, func(p content.Post) bool {
			return !slices.Contains(state.Authors, p.Author.Name)
		})
	}

	if strings.TrimSpace(state.Search) != "" {
		query := strings.ToLower(state.Search)
		filtered = slices.DeleteFunc(filtered, func(p content.Post) bool {
			return !matches(p, query)
		})
	}

	switch state.DateSort {
	case SortLatest:
		slices.SortStableFunc(filtered, func(a, b content.Post) int {
			return postTime(b).Compare(postTime(a))
		})
	case SortOldest:
		slices.SortStableFunc(filtered, func(a, b content.Post) int {
			return postTime(a).Compare(postTime(b))
		})
	case SortCustom:
		if state.Range.Complete() {
			start, end, valid := bounds(state.Range)
			filtered = slices.DeleteFunc(filtered, func(p content.Post) bool {
				t, ok := p.Time()
				return !valid || !ok || t.Before(start) || t.After(end)
			})
		}
	}

	if filtered == nil {
		return []content.Post{}
	}
	return filtered
}

func matches(p content.Post, query string) bool {
	return strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Excerpt), query) ||
		strings.Contains(strings.ToLower(p.Author.Name), query)
}

func postTime(p content.Post) time.Time {
	t, _ := p.Time()
	return t
}

// bounds parses an inclusive range. An end given as a bare date covers the
// whole of that day. An unparseable bound matches nothing.
func bounds(r Range) (time.Time, time.Time, bool) {
	start, ok := content.ParseDate(r.Start)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := content.ParseDate(r.End)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	if content.IsDateOnly(r.End) {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	return start, end, true
}

// Window returns the first visible posts.
func Window(filtered []content.Post, visible int) []content.Post {
	visible = max(0, min(visible, len(filtered)))
	return filtered[:visible]
}

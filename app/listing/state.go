package listing

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"slices"
	"strings"
	"time"
)

type DateSort string

const (
	SortNone   DateSort = ""
	SortLatest DateSort = "latest"
	SortOldest DateSort = "oldest"
	SortCustom DateSort = "custom"
)

// SearchDebounce is how long the search box waits after the last keystroke
// before it submits.
const SearchDebounce = 400 * time.Millisecond

func ParseDateSort(s string) DateSort {
	switch DateSort(strings.ToLower(strings.TrimSpace(s))) {
	case SortLatest:
		return SortLatest
	case SortOldest:
		return SortOldest
	case SortCustom:
		return SortCustom
	default:
		return SortNone
	}
}

// Range bounds are date strings as entered, e.g. 2025-01-31.
type Range struct {
	Start string
	End   string
}

func (r Range) Complete() bool {
	return strings.TrimSpace(r.Start) != "" && strings.TrimSpace(r.End) != ""
}

// State is everything a listing view filters on. It is passed explicitly to
// the pipeline and the templates.
type State struct {
	Search     string
	Categories []string
	Authors    []string
	DateSort   DateSort
	Range      Range
}

func (s State) Active() bool {
	return strings.TrimSpace(s.Search) != "" ||
		len(s.Categories) > 0 ||
		len(s.Authors) > 0 ||
		s.DateSort != SortNone
}

func (s State) HasCategory(slug string) bool {
	return slices.Contains(s.Categories, slug)
}

func (s State) HasAuthor(name string) bool {
	return slices.Contains(s.Authors, name)
}

// Query parameter names shared by the listing pages and the JSON API.
const (
	ParamSearch   = "q"
	ParamCategory = "category"
	ParamAuthor   = "author"
	ParamSort     = "sort"
	ParamStart    = "start"
	ParamEnd      = "end"
	ParamShow     = "show"
	ParamKey      = "key"
)

func ParseQuery(values url.Values) State {
	return State{
		Search:     values.Get(ParamSearch),
		Categories: nonEmpty(values[ParamCategory]),
		Authors:    nonEmpty(values[ParamAuthor]),
		DateSort:   ParseDateSort(values.Get(ParamSort)),
		Range: Range{
			Start: strings.TrimSpace(values.Get(ParamStart)),
			End:   strings.TrimSpace(values.Get(ParamEnd)),
		},
	}
}

// Query encodes the state back into URL parameters. Empty fields are
// omitted so ParseQuery(s.Query()) equals s.
func (s State) Query() url.Values {
	values := url.Values{}
	if s.Search != "" {
		values.Set(ParamSearch, s.Search)
	}
	for _, c := range s.Categories {
		values.Add(ParamCategory, c)
	}
	for _, a := range s.Authors {
		values.Add(ParamAuthor, a)
	}
	if s.DateSort != SortNone {
		values.Set(ParamSort, string(s.DateSort))
	}
	if s.Range.Start != "" {
		values.Set(ParamStart, s.Range.Start)
	}
	if s.Range.End != "" {
		values.Set(ParamEnd, s.Range.End)
	}
	return values
}

// Key fingerprints the state. A pager carrying a different key is reset.
func (s State) Key() string {
	h := fnv.New64a()
	h.Write([]byte(s.Query().Encode()))
	return fmt.Sprintf("%016x", h.Sum64())
}

// EmptyMessage returns the heading and detail shown when nothing matches.
func (s State) EmptyMessage() (string, string) {
	if s.Search != "" {
		return "No results found", "No posts match \"" + s.Search + "\""
	}
	return "No results found", "No posts available"
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

package listing

import (
	"net/url"
	"strconv"
)

const PageStep = 10

// Pager tracks how many filtered posts are revealed. It is bound to the key
// of the state it was built for and starts over when that key changes.
type Pager struct {
	Visible int
	Key     string
}

func NewPager(key string) Pager {
	return Pager{Visible: PageStep, Key: key}
}

// ParsePager restores a pager from the show/key parameters. A key that does
// not match the current state means the filters changed, so it resets.
func ParsePager(values url.Values, state State) Pager {
	key := state.Key()
	if values.Get(ParamKey) != key {
		return NewPager(key)
	}
	show, err := strconv.Atoi(values.Get(ParamShow))
	if err != nil || show < PageStep {
		return NewPager(key)
	}
	return Pager{Visible: show, Key: key}
}

// Sync resets the pager if state has changed since it was created.
func (p *Pager) Sync(state State) {
	if key := state.Key(); key != p.Key {
		*p = NewPager(key)
	}
}

func (p *Pager) LoadMore(total int) {
	p.Visible = max(0, min(p.Visible+PageStep, total))
}

// Count is the number of posts shown out of total.
func (p Pager) Count(total int) int {
	return max(0, min(p.Visible, total))
}

func (p Pager) HasMore(total int) bool {
	return p.Visible < total
}

// Next returns the query that reveals the next step for the same state.
func (p Pager) Next(state State, total int) url.Values {
	next := p
	next.LoadMore(total)

	values := state.Query()
	values.Set(ParamShow, strconv.Itoa(next.Visible))
	values.Set(ParamKey, p.Key)
	return values
}

// Package hypermedia renders HAL-style resources and collections.
// Assemblers are pure: they never perform I/O, and the same input always
// marshals to the same bytes.
package hypermedia

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tinoosan/cinerator/internal/catalog"
)

// Link is a single hyperlink.
type Link struct {
	Href string `json:"href"`
}

// Links is keyed by relation name. encoding/json writes map keys sorted.
type Links map[string]Link

// Relation renders one named link for a value. A relation whose Href
// returns "" is left out.
type Relation[T any] struct {
	Rel  string
	Href func(T) string
}

// Rel is shorthand for building a Relation.
func Rel[T any](rel string, href func(T) string) Relation[T] {
	return Relation[T]{Rel: rel, Href: href}
}

// Assembler turns values of T into linked resources.
type Assembler[T any] struct {
	base string
	rels []Relation[T]
}

// New builds an assembler whose hrefs are prefixed with base.
func New[T any](base string, rels ...Relation[T]) *Assembler[T] {
	return &Assembler[T]{base: base, rels: rels}
}

// Href prefixes path with the assembler base.
func (a *Assembler[T]) Href(path string) string { return a.base + path }

// ToResource attaches the configured relations to v.
func (a *Assembler[T]) ToResource(v T) Resource[T] {
	links := make(Links, len(a.rels))
	for _, r := range a.rels {
		if p := r.Href(v); p != "" {
			links[r.Rel] = Link{Href: a.Href(p)}
		}
	}
	return Resource[T]{Content: v, Links: links}
}

// SelfHref returns the rendered self link of v, or "" when none is configured.
func (a *Assembler[T]) SelfHref(v T) string {
	for _, r := range a.rels {
		if r.Rel == "self" {
			return a.Href(r.Href(v))
		}
	}
	return ""
}

// ToCollection embeds items under name with a self link to selfPath.
func (a *Assembler[T]) ToCollection(name string, items []T, selfPath string) Collection[T] {
	out := make([]Resource[T], 0, len(items))
	for _, it := range items {
		out = append(out, a.ToResource(it))
	}
	return Collection[T]{
		Embedded: map[string][]Resource[T]{name: out},
		Links:    Links{"self": {Href: a.Href(selfPath)}},
	}
}

// ToPage embeds one page of items and adds navigation links that repeat
// the size and sort parameters of req.
func (a *Assembler[T]) ToPage(name string, p catalog.Page[T], path string, req catalog.PageRequest) PagedCollection[T] {
	c := a.ToCollection(name, p.Items, path)
	total := p.TotalPages()
	at := func(n int) Link { return Link{Href: a.Href(path + pageQuery(n, req))} }
	c.Links["self"] = at(p.Number)
	c.Links["first"] = at(0)
	last := total - 1
	if last < 0 {
		last = 0
	}
	c.Links["last"] = at(last)
	// Past the end, prev points back at the last real page.
	if p.Number > 0 {
		c.Links["prev"] = at(min(p.Number-1, last))
	}
	if p.Number < total-1 {
		c.Links["next"] = at(p.Number + 1)
	}
	return PagedCollection[T]{
		Collection: c,
		Page: PageMeta{
			Size:          p.Size,
			Number:        p.Number,
			TotalElements: p.TotalElements,
			TotalPages:    total,
		},
	}
}

func pageQuery(n int, req catalog.PageRequest) string {
	field := req.SortField
	if field == "" {
		field = catalog.DefaultSortField
	}
	dir := req.Direction
	if dir == "" {
		dir = catalog.SortAsc
	}
	// Fixed parameter order keeps hrefs stable.
	return fmt.Sprintf("?page=%s&size=%s&sortField=%s&sortDirection=%s",
		strconv.Itoa(n), strconv.Itoa(req.Size), url.QueryEscape(field), url.QueryEscape(string(dir)))
}

// Resource is a value with its links. It marshals as the value's own JSON
// object with a "_links" member added.
type Resource[T any] struct {
	Content T
	Links   Links
}

func (r Resource[T]) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(r.Content)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("hypermedia: resource content must be a JSON object: %w", err)
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	links, err := json.Marshal(r.Links)
	if err != nil {
		return nil, err
	}
	fields["_links"] = links
	return json.Marshal(fields)
}

// Collection is a list of resources under a named _embedded key.
type Collection[T any] struct {
	Embedded map[string][]Resource[T] `json:"_embedded"`
	Links    Links                    `json:"_links"`
}

// PageMeta describes the page a PagedCollection holds.
type PageMeta struct {
	Size          int `json:"size"`
	Number        int `json:"number"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

// PagedCollection is a Collection with paging metadata.
type PagedCollection[T any] struct {
	Collection[T]
	Page PageMeta `json:"page"`
}

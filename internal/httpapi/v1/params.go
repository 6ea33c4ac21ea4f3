package v1

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
)

// pathID parses the named chi URL parameter as a uuid.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.Invalid("%s %q is not a valid UUID", name, raw)
	}
	return id, nil
}

// pathIDs parses several uuid path parameters in order.
func pathIDs(r *http.Request, names ...string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(names))
	for _, n := range names {
		id, err := pathID(r, n)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// pathText returns the named URL parameter unescaped.
func pathText(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if s, err := url.PathUnescape(raw); err == nil {
		return s
	}
	return raw
}

// pageRequest reads page, size, sortField and sortDirection. Sort field
// names are checked by the store that knows the columns.
func pageRequest(r *http.Request) (catalog.PageRequest, error) {
	q := r.URL.Query()
	req := catalog.DefaultPageRequest()
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return req, errs.Invalid("page must be a non-negative integer")
		}
		req.Page = n
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > catalog.MaxPageSize {
			return req, errs.Invalid("size must be between 1 and %d", catalog.MaxPageSize)
		}
		req.Size = n
	}
	if v := strings.TrimSpace(q.Get("sortField")); v != "" {
		req.SortField = v
	}
	if v := q.Get("sortDirection"); v != "" {
		dir, ok := catalog.ParseSortDirection(v)
		if !ok {
			return req, errs.Invalid("sortDirection must be ASC or DESC")
		}
		req.Direction = dir
	}
	return req, nil
}

func parseInt(name, v string) (*int, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil, errs.Invalid("%s must be an integer", name)
	}
	return &n, nil
}

func parseDate(name, v string) (*catalog.Date, error) {
	if v == "" {
		return nil, nil
	}
	d, err := catalog.ParseDate(strings.TrimSpace(v))
	if err != nil {
		return nil, errs.Invalid("%s must be a date in YYYY-MM-DD format", name)
	}
	return &d, nil
}

func parseUUID(name, v string) (*uuid.UUID, error) {
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(v))
	if err != nil {
		return nil, errs.Invalid("%s must be a valid UUID", name)
	}
	return &id, nil
}

// queryParser collects the first malformed query value.
type queryParser struct {
	q   url.Values
	err error
}

func newQueryParser(r *http.Request) *queryParser { return &queryParser{q: r.URL.Query()} }

func (p *queryParser) text(name string) string { return strings.TrimSpace(p.q.Get(name)) }

func (p *queryParser) integer(name string) *int {
	n, err := parseInt(name, p.q.Get(name))
	p.keep(err)
	return n
}

func (p *queryParser) date(name string) *catalog.Date {
	d, err := parseDate(name, p.q.Get(name))
	p.keep(err)
	return d
}

func (p *queryParser) id(name string) *uuid.UUID {
	id, err := parseUUID(name, p.q.Get(name))
	p.keep(err)
	return id
}

func (p *queryParser) keep(err error) {
	if p.err == nil && err != nil {
		p.err = err
	}
}

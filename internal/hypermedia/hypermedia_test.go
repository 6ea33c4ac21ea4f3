package hypermedia

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinoosan/cinerator/internal/catalog"
)

type thing struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Parent string `json:"-"`
}

func things() *Assembler[thing] {
	return New("http://localhost:8080",
		Rel("self", func(t thing) string { return "/things/" + t.ID }),
		Rel("parent", func(t thing) string {
			if t.Parent == "" {
				return ""
			}
			return "/things/" + t.Parent
		}),
		Rel("things", func(thing) string { return "/things" }),
	)
}

func TestResource_SplicesLinks(t *testing.T) {
	b, err := json.Marshal(things().ToResource(thing{ID: "1", Name: "one"}))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "one", got["name"])
	links := got["_links"].(map[string]any)
	assert.Equal(t, "http://localhost:8080/things/1", links["self"].(map[string]any)["href"])
	assert.NotContains(t, links, "parent")
	assert.Contains(t, links, "things")
}

func TestResource_Idempotent(t *testing.T) {
	a := things()
	v := thing{ID: "7", Name: "seven", Parent: "1"}
	first, err := json.Marshal(a.ToResource(v))
	require.NoError(t, err)
	second, err := json.Marshal(a.ToResource(v))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestCollection_EmptyStillEmbeds(t *testing.T) {
	b, err := json.Marshal(things().ToCollection("things", nil, "/things"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"_embedded":{"things":[]},"_links":{"self":{"href":"http://localhost:8080/things"}}}`, string(b))
}

func TestToPage_NavigationLinks(t *testing.T) {
	a := New[thing]("", Rel("self", func(t thing) string { return "/things/" + t.ID }))
	req := catalog.PageRequest{Page: 1, Size: 2, SortField: "name", Direction: catalog.SortDesc}
	p := catalog.Page[thing]{Items: []thing{{ID: "3"}, {ID: "4"}}, Number: 1, Size: 2, TotalElements: 5}

	pc := a.ToPage("things", p, "/things/all", req)

	assert.Equal(t, PageMeta{Size: 2, Number: 1, TotalElements: 5, TotalPages: 3}, pc.Page)
	assert.Equal(t, "/things/all?page=0&size=2&sortField=name&sortDirection=DESC", pc.Links["first"].Href)
	assert.Equal(t, "/things/all?page=0&size=2&sortField=name&sortDirection=DESC", pc.Links["prev"].Href)
	assert.Equal(t, "/things/all?page=2&size=2&sortField=name&sortDirection=DESC", pc.Links["next"].Href)
	assert.Equal(t, "/things/all?page=2&size=2&sortField=name&sortDirection=DESC", pc.Links["last"].Href)
	assert.Len(t, pc.Embedded["things"], 2)
}

func TestToPage_PastTheEndPrevIsLastPage(t *testing.T) {
	a := New[thing]("")
	req := catalog.PageRequest{Page: 9, Size: 5, SortField: "id", Direction: catalog.SortAsc}
	pc := a.ToPage("things", catalog.Page[thing]{Items: []thing{}, Number: 9, Size: 5, TotalElements: 3}, "/things", req)

	assert.Equal(t, pc.Links["last"].Href, pc.Links["prev"].Href)
	assert.Equal(t, "/things?page=0&size=5&sortField=id&sortDirection=ASC", pc.Links["prev"].Href)
	assert.NotContains(t, pc.Links, "next")
}

func TestToPage_FirstPageHasNoPrev(t *testing.T) {
	a := New[thing]("")
	req := catalog.DefaultPageRequest()
	pc := a.ToPage("things", catalog.Page[thing]{Items: []thing{}, Size: 5}, "/things/all", req)

	assert.NotContains(t, pc.Links, "prev")
	assert.NotContains(t, pc.Links, "next")
	assert.Equal(t, 0, pc.Page.TotalPages)

	b, err := json.Marshal(pc)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Contains(t, got, "page")
	assert.Contains(t, got, "_embedded")
}

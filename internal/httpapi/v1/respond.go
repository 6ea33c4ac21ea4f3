package v1

import (
	"net/http"

	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/hypermedia"
)

func writeResource[T any](w http.ResponseWriter, a *hypermedia.Assembler[T], v T) {
	toJSON(w, http.StatusOK, a.ToResource(v))
}

// writeCreated answers 201 with the self href in Location.
func writeCreated[T any](w http.ResponseWriter, a *hypermedia.Assembler[T], v T) {
	w.Header().Set("Location", a.SelfHref(v))
	toJSON(w, http.StatusCreated, a.ToResource(v))
}

// writeUpsert answers 201 with the body when the PUT created v, otherwise
// 204 with only the Location header.
func writeUpsert[T any](w http.ResponseWriter, a *hypermedia.Assembler[T], created bool, v T) {
	if created {
		writeCreated(w, a, v)
		return
	}
	w.Header().Set("Location", a.SelfHref(v))
	w.WriteHeader(http.StatusNoContent)
}

func writeCollection[T any](w http.ResponseWriter, r *http.Request, a *hypermedia.Assembler[T], name string, items []T) {
	toJSON(w, http.StatusOK, a.ToCollection(name, items, r.URL.RequestURI()))
}

func writePage[T any](w http.ResponseWriter, r *http.Request, a *hypermedia.Assembler[T], name string, p catalog.Page[T], req catalog.PageRequest) {
	toJSON(w, http.StatusOK, a.ToPage(name, p, r.URL.Path, req))
}

func noContent(w http.ResponseWriter) { w.WriteHeader(http.StatusNoContent) }

package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tinoosan/cinerator/internal/auth"
	"github.com/tinoosan/cinerator/internal/devseed"
	"github.com/tinoosan/cinerator/internal/storage/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type problemResp struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type linkResp struct {
	Href string `json:"href"`
}

type genreResp struct {
	ID    string              `json:"id"`
	Name  string              `json:"name"`
	Links map[string]linkResp `json:"_links"`
}

type movieResp struct {
	ID         string              `json:"id"`
	Title      string              `json:"title"`
	Director   string              `json:"director"`
	Genre      string              `json:"genre"`
	GenreIDs   []string            `json:"genreIds"`
	CountryIDs []string            `json:"countryIds"`
	Links      map[string]linkResp `json:"_links"`
}

type collectionResp[T any] struct {
	Embedded map[string][]T      `json:"_embedded"`
	Links    map[string]linkResp `json:"_links"`
	Page     *struct {
		Size          int `json:"size"`
		Number        int `json:"number"`
		TotalElements int `json:"totalElements"`
		TotalPages    int `json:"totalPages"`
	} `json:"page"`
}

func setup(t *testing.T) (*memory.Store, http.Handler, devseed.Result) {
	t.Helper()
	return setupWith(t, Config{})
}

func setupWith(t *testing.T, cfg Config) (*memory.Store, http.Handler, devseed.Result) {
	t.Helper()
	store := memory.New()
	seed, err := devseed.Run(context.Background(), store, time.Now())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := New(store, cfg, testLogger()).Handler()
	return store, h, seed
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rr.Code, rr.Body.String())
	}
}

func TestCountry_CreateRenameGet(t *testing.T) {
	_, h, _ := setup(t)

	rr := do(t, h, http.MethodPost, "/countries", map[string]any{"name": "Panem"})
	expectStatus(t, rr, http.StatusCreated)
	created := decode[genreResp](t, rr)
	loc := "/countries/" + created.ID
	if got := rr.Header().Get("Location"); got != loc {
		t.Fatalf("expected Location %s, got %s", loc, got)
	}
	if created.Links["self"].Href != loc || created.Links["countries"].Href != "/countries" {
		t.Fatalf("unexpected links: %+v", created.Links)
	}

	rr = do(t, h, http.MethodPut, loc, map[string]any{"name": "Belgium"})
	expectStatus(t, rr, http.StatusNoContent)
	if got := rr.Header().Get("Location"); got != loc {
		t.Fatalf("expected Location %s after PUT, got %s", loc, got)
	}

	rr = do(t, h, http.MethodGet, loc, nil)
	expectStatus(t, rr, http.StatusOK)
	if got := decode[genreResp](t, rr).Name; got != "Belgium" {
		t.Fatalf("expected Belgium, got %s", got)
	}
}

func TestPut_CreatesOnMissingID(t *testing.T) {
	_, h, _ := setup(t)
	id := uuid.New()
	rr := do(t, h, http.MethodPut, "/genres/"+id.String(), map[string]any{"name": "Western"})
	expectStatus(t, rr, http.StatusCreated)
	if got := decode[genreResp](t, rr).ID; got != id.String() {
		t.Fatalf("expected id %s, got %s", id, got)
	}
	if rr.Header().Get("Location") != "/genres/"+id.String() {
		t.Fatalf("missing Location: %v", rr.Header())
	}
}

func TestDelete_ThenGetIsNotFound(t *testing.T) {
	_, h, _ := setup(t)
	rr := do(t, h, http.MethodPost, "/genres", map[string]any{"name": "Noir"})
	expectStatus(t, rr, http.StatusCreated)
	id := decode[genreResp](t, rr).ID

	expectStatus(t, do(t, h, http.MethodDelete, "/genres/"+id, nil), http.StatusNoContent)

	rr = do(t, h, http.MethodGet, "/genres/"+id, nil)
	expectStatus(t, rr, http.StatusNotFound)
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("expected problem content type, got %s", ct)
	}
	p := decode[problemResp](t, rr)
	if p.Detail != "Genre with id "+id+" could not be found!" || p.Title != "Not Found" || p.Status != 404 {
		t.Fatalf("unexpected problem: %+v", p)
	}
	expectStatus(t, do(t, h, http.MethodDelete, "/genres/"+id, nil), http.StatusNotFound)
}

func TestMovies_EmptyFilterIs200(t *testing.T) {
	_, h, _ := setup(t)
	rr := do(t, h, http.MethodGet, "/movies/year/3199", nil)
	expectStatus(t, rr, http.StatusOK)
	c := decode[collectionResp[movieResp]](t, rr)
	movies, ok := c.Embedded["movies"]
	if !ok || len(movies) != 0 {
		t.Fatalf("expected empty movies array, got %s", rr.Body.String())
	}
	if c.Links["self"].Href != "/movies/year/3199" {
		t.Fatalf("unexpected self link %+v", c.Links)
	}

	expectStatus(t, do(t, h, http.MethodGet, "/movies/year/abc", nil), http.StatusBadRequest)
	expectStatus(t, do(t, h, http.MethodGet, "/movies/search?releaseDate=2014/11/07", nil), http.StatusBadRequest)
}

func TestMovies_FiltersAndHydration(t *testing.T) {
	_, h, seed := setup(t)

	rr := do(t, h, http.MethodGet, "/movies/director/nolan", nil)
	expectStatus(t, rr, http.StatusOK)
	ms := decode[collectionResp[movieResp]](t, rr).Embedded["movies"]
	if len(ms) != 1 || ms[0].ID != seed.MovieID.String() {
		t.Fatalf("expected the seeded movie, got %s", rr.Body.String())
	}
	if ms[0].Director != "Christopher Nolan" || ms[0].Genre != "Drama, Science Fiction" {
		t.Fatalf("unexpected hydration: %+v", ms[0])
	}
	if ms[0].Links["reviews"].Href != "/movies/"+seed.MovieID.String()+"/reviews" {
		t.Fatalf("unexpected links: %+v", ms[0].Links)
	}

	// An imdb-shaped title searches by imdb id.
	rr = do(t, h, http.MethodGet, "/movies/title/tt0816692", nil)
	expectStatus(t, rr, http.StatusOK)
	if n := len(decode[collectionResp[movieResp]](t, rr).Embedded["movies"]); n != 1 {
		t.Fatalf("expected 1 movie by imdb title, got %d", n)
	}

	rr = do(t, h, http.MethodGet, "/movies/search?genre=drama&releaseYear=2014", nil)
	expectStatus(t, rr, http.StatusOK)
	if n := len(decode[collectionResp[movieResp]](t, rr).Embedded["movies"]); n != 1 {
		t.Fatalf("expected 1 movie from search, got %d", n)
	}
}

func TestMovieCredits_EmbedFullMovie(t *testing.T) {
	_, h, seed := setup(t)
	movie := "/movies/" + seed.MovieID.String()

	rr := do(t, h, http.MethodGet, movie, nil)
	expectStatus(t, rr, http.StatusOK)
	want := decode[movieResp](t, rr)
	if len(want.GenreIDs) == 0 || len(want.CountryIDs) == 0 {
		t.Fatalf("seeded movie has no relations: %+v", want)
	}

	check := func(target string) {
		t.Helper()
		rr := do(t, h, http.MethodGet, target, nil)
		expectStatus(t, rr, http.StatusOK)
		credits := decode[collectionResp[struct {
			Movie movieResp `json:"movie"`
		}]](t, rr).Embedded["castInfos"]
		if len(credits) == 0 {
			t.Fatalf("%s: expected credits, got %s", target, rr.Body.String())
		}
		got := credits[0].Movie
		if got.Genre != want.Genre || got.Director != want.Director {
			t.Fatalf("%s: embedded movie %+v differs from %+v", target, got, want)
		}
		if strings.Join(got.GenreIDs, ",") != strings.Join(want.GenreIDs, ",") ||
			strings.Join(got.CountryIDs, ",") != strings.Join(want.CountryIDs, ",") {
			t.Fatalf("%s: embedded movie ids %v/%v, want %v/%v", target, got.GenreIDs, got.CountryIDs, want.GenreIDs, want.CountryIDs)
		}
	}
	check(movie + "/credits")
	check("/persons/" + seed.DirectorID.String() + "/credits")
	check("/castinfo?size=100")
}

func TestGenreDelete_DetachesFromMovies(t *testing.T) {
	_, h, seed := setup(t)
	movie := "/movies/" + seed.MovieID.String()

	rr := do(t, h, http.MethodGet, movie+"/genres", nil)
	expectStatus(t, rr, http.StatusOK)
	genres := decode[collectionResp[genreResp]](t, rr).Embedded["genres"]
	if len(genres) != 2 {
		t.Fatalf("expected 2 genres, got %d", len(genres))
	}

	expectStatus(t, do(t, h, http.MethodDelete, "/genres/"+genres[0].ID, nil), http.StatusNoContent)

	rr = do(t, h, http.MethodGet, movie, nil)
	expectStatus(t, rr, http.StatusOK)
	m := decode[movieResp](t, rr)
	if len(m.GenreIDs) != 1 || m.GenreIDs[0] != genres[1].ID {
		t.Fatalf("expected only %s to remain, got %v", genres[1].ID, m.GenreIDs)
	}
}

func TestCreateMovie_Validation(t *testing.T) {
	_, h, _ := setup(t)

	rr := do(t, h, http.MethodPost, "/movies", map[string]any{})
	expectStatus(t, rr, http.StatusBadRequest)
	p := decode[problemResp](t, rr)
	for _, want := range []string{"title is required", "imdbId is required", "genreIds must contain at least 1 items"} {
		if !strings.Contains(p.Detail, want) {
			t.Fatalf("expected %q in %q", want, p.Detail)
		}
	}

	rr = do(t, h, http.MethodPost, "/movies", map[string]any{"title": "X", "bogus": true})
	expectStatus(t, rr, http.StatusBadRequest)

	rr = do(t, h, http.MethodPost, "/movies", map[string]any{
		"title":       "Unknown Genre",
		"releaseDate": "2001-01-01",
		"runtime":     "90 min",
		"imdbId":      "tt1234567",
		"genreIds":    []string{uuid.NewString()},
		"countryIds":  []string{uuid.NewString()},
	})
	expectStatus(t, rr, http.StatusNotFound)
}

func TestPost_RequiresJSON(t *testing.T) {
	_, h, _ := setup(t)
	req := httptest.NewRequest(http.MethodPost, "/genres", strings.NewReader(`{"name":"Horror"}`))
	req.Header.Set("Content-Type", "text/plain")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	expectStatus(t, rr, http.StatusUnsupportedMediaType)
}

func TestGet_MalformedID(t *testing.T) {
	_, h, _ := setup(t)
	rr := do(t, h, http.MethodGet, "/movies/not-a-uuid", nil)
	expectStatus(t, rr, http.StatusBadRequest)
	if p := decode[problemResp](t, rr); p.Title != "Bad Request" {
		t.Fatalf("unexpected problem %+v", p)
	}
}

func TestPaging(t *testing.T) {
	_, h, _ := setup(t)
	for _, name := range []string{"Horror", "Comedy", "Western", "Musical", "War"} {
		expectStatus(t, do(t, h, http.MethodPost, "/genres", map[string]any{"name": name}), http.StatusCreated)
	}

	rr := do(t, h, http.MethodGet, "/genres?size=5&sortField=name&sortDirection=desc", nil)
	expectStatus(t, rr, http.StatusOK)
	c := decode[collectionResp[genreResp]](t, rr)
	if c.Page == nil || c.Page.TotalElements != 7 || c.Page.TotalPages != 2 {
		t.Fatalf("unexpected page meta: %s", rr.Body.String())
	}
	if got := c.Embedded["genres"][0].Name; got != "Western" {
		t.Fatalf("expected Western first, got %s", got)
	}
	if c.Links["next"].Href != "/genres?page=1&size=5&sortField=name&sortDirection=DESC" {
		t.Fatalf("unexpected next link: %+v", c.Links)
	}
	if _, ok := c.Links["prev"]; ok {
		t.Fatalf("first page must not link prev")
	}

	rr = do(t, h, http.MethodGet, "/genres?page=9&size=5", nil)
	expectStatus(t, rr, http.StatusOK)
	c = decode[collectionResp[genreResp]](t, rr)
	if len(c.Embedded["genres"]) != 0 {
		t.Fatalf("expected an empty page past the end, got %s", rr.Body.String())
	}
	if c.Links["prev"].Href != c.Links["last"].Href || c.Links["last"].Href != "/genres?page=1&size=5&sortField=id&sortDirection=ASC" {
		t.Fatalf("prev past the end must point at the last page: %+v", c.Links)
	}

	expectStatus(t, do(t, h, http.MethodGet, "/genres?sortField=bogus", nil), http.StatusBadRequest)
	expectStatus(t, do(t, h, http.MethodGet, "/genres?size=0", nil), http.StatusBadRequest)
	expectStatus(t, do(t, h, http.MethodGet, "/genres?size=101", nil), http.StatusBadRequest)
	expectStatus(t, do(t, h, http.MethodGet, "/genres?page=-1", nil), http.StatusBadRequest)
	expectStatus(t, do(t, h, http.MethodGet, "/genres?sortDirection=up", nil), http.StatusBadRequest)
}

func TestCastInfo_DuplicateConflicts(t *testing.T) {
	_, h, seed := setup(t)
	rr := do(t, h, http.MethodGet, "/roles?size=10&sortField=role", nil)
	expectStatus(t, rr, http.StatusOK)
	var directorID string
	for _, r := range decode[collectionResp[struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}]](t, rr).Embedded["roles"] {
		if r.Role == "Director" {
			directorID = r.ID
		}
	}
	if directorID == "" {
		t.Fatalf("seeded Director role not found")
	}

	body := map[string]any{"movieId": seed.MovieID, "personId": seed.DirectorID, "roleId": directorID, "characterName": " "}
	rr = do(t, h, http.MethodPost, "/castinfo", body)
	expectStatus(t, rr, http.StatusConflict)

	body["roleId"] = uuid.NewString()
	expectStatus(t, do(t, h, http.MethodPost, "/castinfo", body), http.StatusNotFound)
}

func TestLogin(t *testing.T) {
	tokens, err := auth.NewTokens("test-secret", "cinerator", "", time.Hour)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	_, h, seed := setupWith(t, Config{Tokens: tokens})

	rr := do(t, h, http.MethodPost, "/login", map[string]any{"username": devseed.DemoUsername, "password": "wrong"})
	expectStatus(t, rr, http.StatusNotFound)

	rr = do(t, h, http.MethodPost, "/login", map[string]any{"username": "nobody", "password": "whatever"})
	expectStatus(t, rr, http.StatusNotFound)

	rr = do(t, h, http.MethodPost, "/login", map[string]any{"username": devseed.DemoUsername, "password": devseed.DemoPassword})
	expectStatus(t, rr, http.StatusOK)
	tok := decode[tokenDTO](t, rr).Token
	claims, err := tokens.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != seed.UserID.String() {
		t.Fatalf("expected subject %s, got %s", seed.UserID, claims.Subject)
	}
}

func TestLogin_DisabledUserIsNotFound(t *testing.T) {
	_, h, _ := setup(t)
	rr := do(t, h, http.MethodPost, "/users", map[string]any{"username": "eve", "email": "eve@example.com", "password": "password123"})
	expectStatus(t, rr, http.StatusCreated)
	id := decode[struct {
		ID      string `json:"id"`
		Enabled bool   `json:"enabled"`
	}](t, rr).ID

	creds := map[string]any{"username": "eve", "password": "password123"}
	expectStatus(t, do(t, h, http.MethodPost, "/login", creds), http.StatusNotFound)
	expectStatus(t, do(t, h, http.MethodPut, "/users/"+id+"/enable", nil), http.StatusNoContent)
	rr = do(t, h, http.MethodPost, "/login", creds)
	expectStatus(t, rr, http.StatusOK)
	if tok := decode[tokenDTO](t, rr).Token; tok != "" {
		t.Fatalf("expected empty token without a secret, got %q", tok)
	}
	if strings.Contains(do(t, h, http.MethodGet, "/users/"+id, nil).Body.String(), "password") {
		t.Fatalf("user body must not expose the password")
	}
}

func TestAuthRequired(t *testing.T) {
	tokens, err := auth.NewTokens("test-secret", "", "", time.Hour)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	_, h, _ := setupWith(t, Config{Tokens: tokens, AuthRequired: true})

	expectStatus(t, do(t, h, http.MethodGet, "/movies", nil), http.StatusUnauthorized)
	expectStatus(t, do(t, h, http.MethodGet, "/healthz", nil), http.StatusOK)

	rr := do(t, h, http.MethodPost, "/login", map[string]any{"username": devseed.DemoUsername, "password": devseed.DemoPassword})
	expectStatus(t, rr, http.StatusOK)
	tok := decode[tokenDTO](t, rr).Token

	req := httptest.NewRequest(http.MethodGet, "/movies", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	expectStatus(t, rr, http.StatusOK)
}

func TestMovieReview_DefaultsToTokenUser(t *testing.T) {
	tokens, err := auth.NewTokens("test-secret", "", "", time.Hour)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	_, h, seed := setupWith(t, Config{Tokens: tokens, AuthRequired: true})
	rr := do(t, h, http.MethodPost, "/login", map[string]any{"username": devseed.DemoUsername, "password": devseed.DemoPassword})
	expectStatus(t, rr, http.StatusOK)
	tok := decode[tokenDTO](t, rr).Token

	b, _ := json.Marshal(map[string]any{"rating": 4, "comment": "Tidal."})
	req := httptest.NewRequest(http.MethodPost, "/movies/"+seed.MovieID.String()+"/reviews", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	expectStatus(t, rr, http.StatusCreated)
	rv := decode[struct {
		UserID   string `json:"userId"`
		Username string `json:"username"`
	}](t, rr)
	if rv.UserID != seed.UserID.String() || rv.Username != devseed.DemoUsername {
		t.Fatalf("review not attributed to the token user: %+v", rv)
	}

	// Without a token there is no caller to fall back to.
	_, open, seed := setup(t)
	expectStatus(t, do(t, open, http.MethodPost, "/movies/"+seed.MovieID.String()+"/reviews", map[string]any{"rating": 4}), http.StatusBadRequest)
}

func createUser(t *testing.T, h http.Handler, username string) string {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/users", map[string]any{"username": username, "email": username + "@example.com", "password": "password123"})
	expectStatus(t, rr, http.StatusCreated)
	return decode[struct {
		ID string `json:"id"`
	}](t, rr).ID
}

func TestFollows(t *testing.T) {
	_, h, _ := setup(t)
	alice := createUser(t, h, "alice")
	bob := createUser(t, h, "bob")

	expectStatus(t, do(t, h, http.MethodPut, "/users/"+alice+"/following", map[string]any{"userId": alice}), http.StatusBadRequest)

	rr := do(t, h, http.MethodPut, "/users/"+alice+"/following", map[string]any{"userId": bob})
	expectStatus(t, rr, http.StatusCreated)
	edge := "/follows/" + bob + "/followers/" + alice
	if rr.Header().Get("Location") != edge {
		t.Fatalf("expected Location %s, got %s", edge, rr.Header().Get("Location"))
	}
	expectStatus(t, do(t, h, http.MethodPut, "/users/"+alice+"/following", map[string]any{"userId": bob}), http.StatusConflict)

	expectStatus(t, do(t, h, http.MethodGet, edge, nil), http.StatusOK)
	expectStatus(t, do(t, h, http.MethodGet, "/users/"+bob+"/followers/"+alice, nil), http.StatusOK)

	rr = do(t, h, http.MethodGet, "/users/"+bob+"/followers", nil)
	expectStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), `"username":"alice"`) {
		t.Fatalf("expected alice among followers: %s", rr.Body.String())
	}

	expectStatus(t, do(t, h, http.MethodDelete, "/users/"+alice+"/following/"+bob, nil), http.StatusNoContent)
	rr = do(t, h, http.MethodGet, edge, nil)
	expectStatus(t, rr, http.StatusNotFound)
	want := "User with id " + alice + " is currently not following user with id " + bob + "!"
	if p := decode[problemResp](t, rr); p.Detail != want {
		t.Fatalf("expected %q, got %q", want, p.Detail)
	}
}

func TestWatchlist(t *testing.T) {
	_, h, seed := setup(t)
	user := "/users/" + seed.UserID.String()
	body := map[string]any{"movieId": seed.MovieID}

	expectStatus(t, do(t, h, http.MethodPut, user+"/watchlist", body), http.StatusOK)
	expectStatus(t, do(t, h, http.MethodPut, user+"/watchlist", body), http.StatusConflict)

	rr := do(t, h, http.MethodGet, user+"/watchlist", nil)
	expectStatus(t, rr, http.StatusOK)
	if n := len(decode[collectionResp[movieResp]](t, rr).Embedded["movies"]); n != 1 {
		t.Fatalf("expected 1 watchlisted movie, got %d", n)
	}

	expectStatus(t, do(t, h, http.MethodDelete, user+"/watchlist/"+seed.MovieID.String(), nil), http.StatusNoContent)
	expectStatus(t, do(t, h, http.MethodDelete, user+"/watchlist/"+seed.MovieID.String(), nil), http.StatusNotFound)
	expectStatus(t, do(t, h, http.MethodGet, "/users/"+uuid.NewString()+"/watchlist", nil), http.StatusNotFound)
}

func TestMovieReviews(t *testing.T) {
	_, h, seed := setup(t)
	movie := "/movies/" + seed.MovieID.String()

	rr := do(t, h, http.MethodPost, movie+"/reviews", map[string]any{"userId": seed.UserID, "rating": 5, "comment": "Vast.", "isLiked": true})
	expectStatus(t, rr, http.StatusCreated)
	rv := decode[struct {
		ID               string              `json:"id"`
		MovieTitle       string              `json:"movieTitle"`
		MovieReleaseYear int                 `json:"movieReleaseYear"`
		Username         string              `json:"username"`
		Links            map[string]linkResp `json:"_links"`
	}](t, rr)
	if rv.MovieTitle != "Interstellar" || rv.MovieReleaseYear != 2014 || rv.Username != devseed.DemoUsername {
		t.Fatalf("unexpected review hydration: %+v", rv)
	}
	if rv.Links["remove"].Href != movie+"/reviews/"+rv.ID {
		t.Fatalf("unexpected remove link: %+v", rv.Links)
	}

	expectStatus(t, do(t, h, http.MethodPut, movie+"/reviews/"+rv.ID, map[string]any{"rating": 3, "comment": "Long.", "liked": false}), http.StatusNoContent)
	expectStatus(t, do(t, h, http.MethodPut, movie+"/reviews/"+uuid.NewString(), map[string]any{"rating": 3}), http.StatusNotFound)
	expectStatus(t, do(t, h, http.MethodPost, movie+"/reviews", map[string]any{"userId": seed.UserID, "rating": 9}), http.StatusBadRequest)
	expectStatus(t, do(t, h, http.MethodPost, movie+"/reviews", map[string]any{"userId": uuid.NewString(), "rating": 2}), http.StatusNotFound)
	expectStatus(t, do(t, h, http.MethodGet, "/movies/"+uuid.NewString()+"/reviews", nil), http.StatusNotFound)

	rr = do(t, h, http.MethodGet, "/users/"+seed.UserID.String()+"/ratedMovies?rating=3", nil)
	expectStatus(t, rr, http.StatusOK)
	if n := len(decode[collectionResp[movieResp]](t, rr).Embedded["movies"]); n != 1 {
		t.Fatalf("expected 1 movie rated 3, got %d", n)
	}
	expectStatus(t, do(t, h, http.MethodGet, "/users/"+seed.UserID.String()+"/ratedMovies?rating=x", nil), http.StatusBadRequest)

	expectStatus(t, do(t, h, http.MethodDelete, movie+"/reviews/"+rv.ID, nil), http.StatusNoContent)
	expectStatus(t, do(t, h, http.MethodGet, "/reviews/"+rv.ID, nil), http.StatusNotFound)
}

func TestMovieActors(t *testing.T) {
	_, h, seed := setup(t)
	movie := "/movies/" + seed.MovieID.String()
	actorPath := movie + "/actors/" + seed.ActorID.String()

	expectStatus(t, do(t, h, http.MethodGet, actorPath, nil), http.StatusOK)
	expectStatus(t, do(t, h, http.MethodPut, movie+"/actors", map[string]any{"actorId": seed.ActorID}), http.StatusConflict)
	expectStatus(t, do(t, h, http.MethodDelete, actorPath, nil), http.StatusNoContent)
	expectStatus(t, do(t, h, http.MethodGet, actorPath, nil), http.StatusNotFound)
	expectStatus(t, do(t, h, http.MethodPut, movie+"/actors", map[string]any{"actorId": seed.ActorID}), http.StatusOK)

	rr := do(t, h, http.MethodGet, "/actors/"+seed.ActorID.String()+"/movies", nil)
	expectStatus(t, rr, http.StatusOK)
	if n := len(decode[collectionResp[movieResp]](t, rr).Embedded["movies"]); n != 1 {
		t.Fatalf("expected 1 movie for the actor, got %d", n)
	}
}

func TestUserLists(t *testing.T) {
	_, h, seed := setup(t)
	rr := do(t, h, http.MethodPost, "/lists", map[string]any{"name": "Space", "userId": seed.UserID, "isPrivate": true})
	expectStatus(t, rr, http.StatusCreated)
	list := "/lists/" + decode[struct {
		ID string `json:"id"`
	}](t, rr).ID

	body := map[string]any{"movieId": seed.MovieID}
	expectStatus(t, do(t, h, http.MethodPut, list+"/movies", body), http.StatusOK)
	expectStatus(t, do(t, h, http.MethodPut, list+"/movies", body), http.StatusConflict)

	// Renaming keeps the membership.
	expectStatus(t, do(t, h, http.MethodPut, list, map[string]any{"name": "Cosmos", "userId": seed.UserID}), http.StatusNoContent)
	rr = do(t, h, http.MethodGet, list+"/movies", nil)
	expectStatus(t, rr, http.StatusOK)
	if n := len(decode[collectionResp[movieResp]](t, rr).Embedded["movies"]); n != 1 {
		t.Fatalf("expected 1 listed movie, got %d", n)
	}

	expectStatus(t, do(t, h, http.MethodPost, "/lists", map[string]any{"name": "Orphan", "userId": uuid.NewString()}), http.StatusNotFound)
	expectStatus(t, do(t, h, http.MethodGet, "/lists/search?userId=nope", nil), http.StatusBadRequest)
}

func TestHealthAndReady(t *testing.T) {
	_, h, _ := setup(t)
	expectStatus(t, do(t, h, http.MethodGet, "/healthz", nil), http.StatusOK)
	expectStatus(t, do(t, h, http.MethodGet, "/readyz", nil), http.StatusOK)
	rr := do(t, h, http.MethodGet, "/metrics", nil)
	expectStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), "cinerator_http_requests_total") {
		t.Fatalf("expected request counter in metrics output")
	}
}

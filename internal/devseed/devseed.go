// Package devseed writes a small demo catalogue into any store.
// It is only run when DEV_SEED is set.
package devseed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tinoosan/cinerator/internal/auth"
	"github.com/tinoosan/cinerator/internal/catalog"
)

// Writer is the subset of store writes the seed needs.
type Writer interface {
	CreateGenre(ctx context.Context, g catalog.Genre) (catalog.Genre, error)
	CreateCountry(ctx context.Context, c catalog.Country) (catalog.Country, error)
	CreateRole(ctx context.Context, r catalog.Role) (catalog.Role, error)
	CreateMovie(ctx context.Context, m catalog.Movie) (catalog.Movie, error)
	CreatePerson(ctx context.Context, p catalog.Person) (catalog.Person, error)
	CreateCastInfo(ctx context.Context, c catalog.CastInfo) (catalog.CastInfo, error)
	CreateActor(ctx context.Context, a catalog.Actor) (catalog.Actor, error)
	LinkActor(ctx context.Context, movieID, actorID uuid.UUID) error
	CreateUser(ctx context.Context, u catalog.User) (catalog.User, error)
}

// DemoUsername and DemoPassword log in as the seeded user.
const (
	DemoUsername = "demo"
	DemoPassword = "demo-password"
)

// Result carries the ids worth printing after a seed.
type Result struct {
	UserID     uuid.UUID
	MovieID    uuid.UUID
	DirectorID uuid.UUID
	ActorID    uuid.UUID
}

// Run seeds the catalogue. It is not idempotent; a second run against the
// same store fails with a conflict on the first unique name.
func Run(ctx context.Context, w Writer, now time.Time) (Result, error) {
	var res Result

	drama, err := w.CreateGenre(ctx, catalog.Genre{ID: uuid.New(), Name: "Drama"})
	if err != nil {
		return res, fmt.Errorf("seed genre: %w", err)
	}
	scifi, err := w.CreateGenre(ctx, catalog.Genre{ID: uuid.New(), Name: "Science Fiction"})
	if err != nil {
		return res, fmt.Errorf("seed genre: %w", err)
	}
	uk, err := w.CreateCountry(ctx, catalog.Country{ID: uuid.New(), Name: "United Kingdom"})
	if err != nil {
		return res, fmt.Errorf("seed country: %w", err)
	}
	us, err := w.CreateCountry(ctx, catalog.Country{ID: uuid.New(), Name: "United States"})
	if err != nil {
		return res, fmt.Errorf("seed country: %w", err)
	}
	director, err := w.CreateRole(ctx, catalog.Role{ID: uuid.New(), Name: catalog.DirectorRole})
	if err != nil {
		return res, fmt.Errorf("seed role: %w", err)
	}
	if _, err := w.CreateRole(ctx, catalog.Role{ID: uuid.New(), Name: "Actor"}); err != nil {
		return res, fmt.Errorf("seed role: %w", err)
	}

	movie, err := w.CreateMovie(ctx, catalog.Movie{
		ID:          uuid.New(),
		Title:       "Interstellar",
		ReleaseDate: catalog.NewDate(2014, time.November, 7),
		Runtime:     "169 min",
		ImdbID:      "tt0816692",
		Genres:      []catalog.Genre{drama, scifi},
		Countries:   []catalog.Country{us, uk},
	})
	if err != nil {
		return res, fmt.Errorf("seed movie: %w", err)
	}
	nolan, err := w.CreatePerson(ctx, catalog.Person{
		ID:           uuid.New(),
		Name:         "Christopher Nolan",
		BirthDate:    catalog.NewDate(1970, time.July, 30),
		Height:       "1.81 m",
		BirthCountry: &uk,
	})
	if err != nil {
		return res, fmt.Errorf("seed person: %w", err)
	}
	if _, err := w.CreateCastInfo(ctx, catalog.CastInfo{ID: uuid.New(), MovieID: movie.ID, PersonID: nolan.ID, RoleID: director.ID}); err != nil {
		return res, fmt.Errorf("seed cast: %w", err)
	}
	birth := catalog.NewDate(1969, time.November, 4)
	actor, err := w.CreateActor(ctx, catalog.Actor{
		ID:           uuid.New(),
		Name:         "Matthew McConaughey",
		BirthDate:    birth,
		BirthCountry: us.Name,
		Age:          birth.YearsAt(now),
	})
	if err != nil {
		return res, fmt.Errorf("seed actor: %w", err)
	}
	if err := w.LinkActor(ctx, movie.ID, actor.ID); err != nil {
		return res, fmt.Errorf("seed actor link: %w", err)
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return res, err
	}
	user, err := w.CreateUser(ctx, catalog.User{
		ID:           uuid.New(),
		Username:     DemoUsername,
		Name:         "Demo User",
		Email:        "demo@example.com",
		PasswordHash: hash,
		Role:         catalog.DefaultUserRole,
		Enabled:      true,
		CreatedAt:    now.UTC(),
	})
	if err != nil {
		return res, fmt.Errorf("seed user: %w", err)
	}

	res = Result{UserID: user.ID, MovieID: movie.ID, DirectorID: nolan.ID, ActorID: actor.ID}
	return res, nil
}

// Package person implements the rules for credited people. A person's age is
// derived from the birth and death dates whenever it is read.
package person

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
	"github.com/tinoosan/cinerator/internal/service/upsert"
)

type Repo interface {
	ListPersons(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Person], error)
	SearchPersons(ctx context.Context, f catalog.PersonFilter, now time.Time) ([]catalog.Person, error)
	GetPerson(ctx context.Context, id uuid.UUID) (catalog.Person, error)
	GetCountry(ctx context.Context, id uuid.UUID) (catalog.Country, error)
	ListCastInfos(ctx context.Context, f catalog.CastInfoFilter) ([]catalog.CastInfo, error)
}

type Writer interface {
	CreatePerson(ctx context.Context, p catalog.Person) (catalog.Person, error)
	UpdatePerson(ctx context.Context, p catalog.Person) (catalog.Person, error)
	// DeletePerson removes the person and every cast entry crediting them.
	DeletePerson(ctx context.Context, id uuid.UUID) error
}

// Input is the client-supplied state of a person.
type Input struct {
	Name           string
	BirthDate      catalog.Date
	DeathDate      *catalog.Date
	Height         string
	BirthCountryID uuid.UUID
}

type Service interface {
	List(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Person], error)
	Search(ctx context.Context, f catalog.PersonFilter) ([]catalog.Person, error)
	Get(ctx context.Context, id uuid.UUID) (catalog.Person, error)
	Create(ctx context.Context, in Input) (catalog.Person, error)
	Put(ctx context.Context, id uuid.UUID, in Input) (upsert.Result[catalog.Person], error)
	Delete(ctx context.Context, id uuid.UUID) error
	Country(ctx context.Context, id uuid.UUID) (catalog.Country, error)
	// Movies lists the movies the person is credited on, optionally only
	// under the named role.
	Movies(ctx context.Context, id uuid.UUID, role string) ([]catalog.Movie, error)
	Credits(ctx context.Context, id uuid.UUID) ([]catalog.CastInfo, error)
	Roles(ctx context.Context, id uuid.UUID) ([]catalog.Role, error)
	// Now is the clock ages are computed against.
	Now() time.Time
}

type service struct {
	repo   Repo
	writer Writer
	now    func() time.Time
}

func New(repo Repo, writer Writer) Service {
	return &service{repo: repo, writer: writer, now: time.Now}
}

func (s *service) Now() time.Time { return s.now() }

func (s *service) validate(in *Input) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Height = strings.TrimSpace(in.Height)
	today := catalog.DateOf(s.now())
	if in.Name == "" {
		return errs.Invalid("name is required")
	}
	if in.BirthDate.IsZero() {
		return errs.Invalid("birthDate is required")
	}
	if !in.BirthDate.Before(today.Time) {
		return errs.Invalid("birthDate must be in the past")
	}
	if in.DeathDate != nil && in.DeathDate.IsZero() {
		in.DeathDate = nil
	}
	if in.DeathDate != nil {
		if in.DeathDate.After(today.Time) {
			return errs.Invalid("deathDate must be today or in the past")
		}
		if in.DeathDate.Before(in.BirthDate.Time) {
			return errs.Invalid("deathDate must not precede birthDate")
		}
	}
	if in.BirthCountryID == uuid.Nil {
		return errs.Invalid("birthCountryId is required")
	}
	return nil
}

func (s *service) build(ctx context.Context, id uuid.UUID, in Input) (catalog.Person, error) {
	c, err := s.repo.GetCountry(ctx, in.BirthCountryID)
	if err != nil {
		if errs.IsNotFound(err) {
			return catalog.Person{}, errs.Unresolved(catalog.EntityCountry, in.BirthCountryID)
		}
		return catalog.Person{}, err
	}
	return catalog.Person{
		ID:           id,
		Name:         in.Name,
		BirthDate:    in.BirthDate,
		DeathDate:    in.DeathDate,
		Height:       in.Height,
		BirthCountry: &c,
	}, nil
}

func (s *service) List(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Person], error) {
	return s.repo.ListPersons(ctx, req)
}

func (s *service) Search(ctx context.Context, f catalog.PersonFilter) ([]catalog.Person, error) {
	return s.repo.SearchPersons(ctx, f, s.now())
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (catalog.Person, error) {
	return s.repo.GetPerson(ctx, id)
}

func (s *service) Create(ctx context.Context, in Input) (catalog.Person, error) {
	if err := s.validate(&in); err != nil {
		return catalog.Person{}, err
	}
	p, err := s.build(ctx, uuid.New(), in)
	if err != nil {
		return catalog.Person{}, err
	}
	return s.writer.CreatePerson(ctx, p)
}

func (s *service) Put(ctx context.Context, id uuid.UUID, in Input) (upsert.Result[catalog.Person], error) {
	if err := s.validate(&in); err != nil {
		return upsert.Result[catalog.Person]{}, err
	}
	p, err := s.build(ctx, id, in)
	if err != nil {
		return upsert.Result[catalog.Person]{}, err
	}
	return upsert.Apply(ctx,
		func(ctx context.Context) error { _, err := s.repo.GetPerson(ctx, id); return err },
		func(ctx context.Context) (catalog.Person, error) { return s.writer.UpdatePerson(ctx, p) },
		func(ctx context.Context) (catalog.Person, error) { return s.writer.CreatePerson(ctx, p) },
	)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.writer.DeletePerson(ctx, id)
}

// Country returns the birth country. A person whose country was deleted
// reports it as not found.
func (s *service) Country(ctx context.Context, id uuid.UUID) (catalog.Country, error) {
	p, err := s.repo.GetPerson(ctx, id)
	if err != nil {
		return catalog.Country{}, err
	}
	if p.BirthCountry == nil {
		return catalog.Country{}, errs.Missing(catalog.EntityCountry, "of "+catalog.EntityPerson+" "+id.String())
	}
	return *p.BirthCountry, nil
}

func (s *service) Movies(ctx context.Context, id uuid.UUID, role string) ([]catalog.Movie, error) {
	credits, err := s.credits(ctx, catalog.CastInfoFilter{PersonID: &id, Role: strings.TrimSpace(role)})
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Movie, 0, len(credits))
	seen := make(map[uuid.UUID]struct{}, len(credits))
	for _, c := range credits {
		if _, ok := seen[c.MovieID]; ok {
			continue
		}
		seen[c.MovieID] = struct{}{}
		out = append(out, c.Movie)
	}
	return out, nil
}

func (s *service) Credits(ctx context.Context, id uuid.UUID) ([]catalog.CastInfo, error) {
	return s.credits(ctx, catalog.CastInfoFilter{PersonID: &id})
}

// Roles lists the distinct roles the person is credited with.
func (s *service) Roles(ctx context.Context, id uuid.UUID) ([]catalog.Role, error) {
	credits, err := s.credits(ctx, catalog.CastInfoFilter{PersonID: &id})
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Role, 0, len(credits))
	seen := make(map[uuid.UUID]struct{}, len(credits))
	for _, c := range credits {
		if _, ok := seen[c.RoleID]; ok {
			continue
		}
		seen[c.RoleID] = struct{}{}
		out = append(out, c.Role)
	}
	return out, nil
}

func (s *service) credits(ctx context.Context, f catalog.CastInfoFilter) ([]catalog.CastInfo, error) {
	if _, err := s.repo.GetPerson(ctx, *f.PersonID); err != nil {
		return nil, err
	}
	return s.repo.ListCastInfos(ctx, f)
}

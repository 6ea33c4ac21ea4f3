package v1

import (
	"context"

	"github.com/tinoosan/cinerator/internal/service/actor"
	"github.com/tinoosan/cinerator/internal/service/castinfo"
	"github.com/tinoosan/cinerator/internal/service/country"
	"github.com/tinoosan/cinerator/internal/service/follow"
	"github.com/tinoosan/cinerator/internal/service/genre"
	"github.com/tinoosan/cinerator/internal/service/movie"
	"github.com/tinoosan/cinerator/internal/service/person"
	"github.com/tinoosan/cinerator/internal/service/review"
	"github.com/tinoosan/cinerator/internal/service/role"
	"github.com/tinoosan/cinerator/internal/service/user"
	"github.com/tinoosan/cinerator/internal/service/userlist"
)

// Store is the full backend the HTTP layer composes its services from.
type Store interface {
	movie.Repo
	movie.Writer
	person.Repo
	person.Writer
	actor.Repo
	actor.Writer
	genre.Repo
	genre.Writer
	country.Repo
	country.Writer
	role.Repo
	role.Writer
	castinfo.Repo
	castinfo.Writer
	review.Repo
	review.Writer
	user.Repo
	user.Writer
	userlist.Repo
	userlist.Writer
	follow.Repo
	follow.Writer
	Readier
}

// Readier reports whether the backing store can serve requests.
type Readier interface {
	Ready(ctx context.Context) error
}

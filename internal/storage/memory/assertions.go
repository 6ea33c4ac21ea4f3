package memory

import (
	"github.com/tinoosan/cinerator/internal/devseed"
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

// Compile-time interface assertions.
var (
	_ genre.Repo      = (*Store)(nil)
	_ genre.Writer    = (*Store)(nil)
	_ country.Repo    = (*Store)(nil)
	_ country.Writer  = (*Store)(nil)
	_ role.Repo       = (*Store)(nil)
	_ role.Writer     = (*Store)(nil)
	_ movie.Repo      = (*Store)(nil)
	_ movie.Writer    = (*Store)(nil)
	_ person.Repo     = (*Store)(nil)
	_ person.Writer   = (*Store)(nil)
	_ actor.Repo      = (*Store)(nil)
	_ actor.Writer    = (*Store)(nil)
	_ castinfo.Repo   = (*Store)(nil)
	_ castinfo.Writer = (*Store)(nil)
	_ review.Repo     = (*Store)(nil)
	_ review.Writer   = (*Store)(nil)
	_ user.Repo       = (*Store)(nil)
	_ user.Writer     = (*Store)(nil)
	_ userlist.Repo   = (*Store)(nil)
	_ userlist.Writer = (*Store)(nil)
	_ follow.Repo     = (*Store)(nil)
	_ follow.Writer   = (*Store)(nil)
	_ devseed.Writer  = (*Store)(nil)
)

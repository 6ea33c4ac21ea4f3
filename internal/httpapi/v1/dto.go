package v1

import (
	"time"

	"github.com/google/uuid"

	"github.com/tinoosan/cinerator/internal/catalog"
)

// Response bodies.

type movieDTO struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	ReleaseDate catalog.Date `json:"releaseDate"`
	Runtime     string       `json:"runtime"`
	Director    string       `json:"director"`
	Genre       string       `json:"genre"`
	Country     string       `json:"country"`
	ImdbID      string       `json:"imdbId"`
	PosterURL   string       `json:"posterUrl"`
	GenreIDs    []uuid.UUID  `json:"genreIds"`
	CountryIDs  []uuid.UUID  `json:"countryIds"`
}

type personDTO struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	BirthDate    catalog.Date  `json:"birthDate"`
	DeathDate    *catalog.Date `json:"deathDate"`
	Height       string        `json:"height"`
	Age          int           `json:"age"`
	BirthCountry *countryDTO   `json:"birthCountry"`
}

type actorDTO struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	BirthDate    catalog.Date `json:"birthDate"`
	BirthCountry string       `json:"birthCountry"`
	Age          int          `json:"age"`
}

type genreDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type countryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type roleDTO struct {
	ID   uuid.UUID `json:"id"`
	Role string    `json:"role"`
}

type castInfoDTO struct {
	ID            uuid.UUID `json:"id"`
	Movie         movieDTO  `json:"movie"`
	Person        personDTO `json:"person"`
	Role          roleDTO   `json:"role"`
	CharacterName string    `json:"characterName"`
}

type reviewDTO struct {
	ID               uuid.UUID    `json:"id"`
	MovieID          uuid.UUID    `json:"movieId"`
	MovieTitle       string       `json:"movieTitle"`
	MovieReleaseYear int          `json:"movieReleaseYear"`
	UserID           uuid.UUID    `json:"userId"`
	Username         string       `json:"username"`
	Rating           int          `json:"rating"`
	Liked            bool         `json:"liked"`
	ReviewDate       catalog.Date `json:"reviewDate"`
	Comment          string       `json:"comment"`
}

type userDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	Role      string    `json:"role"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
}

type userListDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Private     bool      `json:"isPrivate"`
	UserID      uuid.UUID `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type followDTO struct {
	UserID     uuid.UUID `json:"userId"`
	FollowerID uuid.UUID `json:"followerId"`
	FollowedAt time.Time `json:"followedAt"`
}

type tokenDTO struct {
	Token string `json:"token"`
}

// Request bodies.

type movieRequest struct {
	Title       string       `json:"title" validate:"required,max=255"`
	ReleaseDate catalog.Date `json:"releaseDate" validate:"required,pastorpresent"`
	Runtime     string       `json:"runtime" validate:"required,max=50"`
	ImdbID      string       `json:"imdbId" validate:"required,imdb"`
	PosterURL   string       `json:"posterUrl" validate:"omitempty,url"`
	GenreIDs    []uuid.UUID  `json:"genreIds" validate:"min=1"`
	CountryIDs  []uuid.UUID  `json:"countryIds" validate:"min=1"`
}

type personRequest struct {
	Name           string        `json:"name" validate:"required,max=255"`
	BirthDate      catalog.Date  `json:"birthDate" validate:"required,past"`
	DeathDate      *catalog.Date `json:"deathDate" validate:"omitempty,pastorpresent"`
	Height         string        `json:"height" validate:"max=20"`
	BirthCountryID uuid.UUID     `json:"birthCountryId" validate:"required"`
}

type actorRequest struct {
	Name         string       `json:"name" validate:"required,max=255"`
	BirthDate    catalog.Date `json:"birthDate" validate:"required,past"`
	BirthCountry string       `json:"birthCountry" validate:"max=100"`
}

type namedRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type roleRequest struct {
	Role string `json:"role" validate:"required,max=100"`
}

type castInfoRequest struct {
	MovieID       uuid.UUID `json:"movieId" validate:"required"`
	PersonID      uuid.UUID `json:"personId" validate:"required"`
	RoleID        uuid.UUID `json:"roleId" validate:"required"`
	CharacterName string    `json:"characterName" validate:"max=255"`
}

// reviewRequest creates a review. movieId is read from the body only on
// the top-level PUT /reviews/{id}; nested routes take it from the path.
// A missing userId falls back to the bearer token's user.
type reviewRequest struct {
	MovieID    uuid.UUID    `json:"movieId"`
	UserID     uuid.UUID    `json:"userId"`
	Comment    string       `json:"comment" validate:"max=2000"`
	Rating     int          `json:"rating" validate:"gte=1,lte=5"`
	Liked      bool         `json:"isLiked"`
	ReviewDate catalog.Date `json:"reviewDate" validate:"pastorpresent"`
}

type reviewEditRequest struct {
	Comment string `json:"comment" validate:"max=2000"`
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
	Liked   bool   `json:"liked"`
}

type userRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"max=100"`
	Bio      string `json:"bio" validate:"max=500"`
}

type userListRequest struct {
	Name        string    `json:"name" validate:"required,max=100"`
	Description string    `json:"description" validate:"max=500"`
	Private     bool      `json:"isPrivate"`
	UserID      uuid.UUID `json:"userId" validate:"required"`
}

type actorRef struct {
	ActorID uuid.UUID `json:"actorId" validate:"required"`
}

type movieRef struct {
	MovieID uuid.UUID `json:"movieId" validate:"required"`
}

type userRef struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

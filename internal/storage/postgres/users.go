package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
)

const (
	userCols   = "u.id, u.username, u.name, u.email, u.bio, u.password_hash, u.role, u.enabled, u.created_at"
	reviewCols = "v.id, v.movie_id, v.user_id, v.comment, v.rating, v.review_date, v.liked, m.title, m.release_date, u.username"
	reviewFrom = "reviews v join movies m on m.id = v.movie_id join users u on u.id = v.user_id"
	listCols   = "l.id, l.user_id, l.name, l.description, l.private, l.created_at, coalesce(array(select lm.movie_id from user_list_movies lm where lm.list_id = l.id order by lm.seq), '{}')"
	followCols = "f.user_id, f.follower_id, f.followed_at"
)

var userColumns = map[string]string{
	"id":        "u.id",
	"username":  "lower(u.username)",
	"name":      "lower(u.name)",
	"email":     "lower(u.email)",
	"createdAt": "u.created_at",
	"role":      "lower(u.role)",
}

var reviewColumns = map[string]string{
	"id":         "v.id",
	"rating":     "v.rating",
	"reviewDate": "v.review_date",
}

var listColumns = map[string]string{
	"id":        "l.id",
	"name":      "lower(l.name)",
	"createdAt": "l.created_at",
}

var followColumns = map[string]string{
	"id":         "f.user_id, f.follower_id",
	"userId":     "f.user_id",
	"followerId": "f.follower_id",
	"followedAt": "f.followed_at",
}

// --- Users ---

func scanUser(row pgx.Row) (catalog.User, error) {
	var u catalog.User
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Bio, &u.PasswordHash, &u.Role, &u.Enabled, &u.CreatedAt)
	u.CreatedAt = u.CreatedAt.UTC()
	return u, err
}

func scanUserRows(rows pgx.Rows) (catalog.User, error) { return scanUser(rows) }

func (s *Store) ListUsers(ctx context.Context, f catalog.UserFilter) ([]catalog.User, error) {
	var w where
	if f.Name != "" {
		w.add("u.name ilike ?", likeArg(f.Name))
	}
	if f.Username != "" && f.UsernameExact {
		w.add("lower(u.username) = lower(?)", f.Username)
	} else if f.Username != "" {
		w.add("u.username ilike ?", likeArg(f.Username))
	}
	if f.Email != "" {
		w.add("u.email ilike ?", likeArg(f.Email))
	}
	if f.Role != "" {
		w.add("lower(u.role) = lower(?)", f.Role)
	}
	rows, err := s.pool.Query(ctx, "select "+userCols+" from users u"+w.String()+" order by lower(u.username), u.id", w.args...)
	return collect(rows, err, scanUserRows)
}

func (s *Store) PageUsers(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.User], error) {
	return pageQuery(ctx, s.pool, req, "users u", userCols, userColumns, "u.id", scanUserRows)
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (catalog.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, "select "+userCols+" from users u where u.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.User{}, errs.Missing(catalog.EntityUser, id)
	}
	return u, err
}

// UsersByIDs returns the users in the order of ids, skipping unknown ones.
func (s *Store) UsersByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.User, error) {
	if len(ids) == 0 {
		return []catalog.User{}, nil
	}
	rows, err := s.pool.Query(ctx, "select "+userCols+" from users u where u.id = any($1)", ids)
	found, err := collect(rows, err, scanUserRows)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]catalog.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}
	out := make([]catalog.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Store) CreateUser(ctx context.Context, u catalog.User) (catalog.User, error) {
	_, err := s.pool.Exec(ctx, `
		insert into users (id, username, name, email, bio, password_hash, role, enabled, created_at)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		u.ID, u.Username, u.Name, u.Email, u.Bio, u.PasswordHash, u.Role, u.Enabled, u.CreatedAt)
	if err != nil {
		return catalog.User{}, translate(err, catalog.EntityUser)
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u catalog.User) (catalog.User, error) {
	tag, err := s.pool.Exec(ctx, `
		update users set username=$2, name=$3, email=$4, bio=$5, password_hash=$6, role=$7, enabled=$8
		where id=$1`,
		u.ID, u.Username, u.Name, u.Email, u.Bio, u.PasswordHash, u.Role, u.Enabled)
	if err := affected(tag, err, catalog.EntityUser, u.ID); err != nil {
		return catalog.User{}, err
	}
	return u, nil
}

// DeleteUser removes the user; reviews, lists, follows and watchlist rows cascade.
func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, "delete from users where id = $1", id)
	return affected(tag, err, catalog.EntityUser, id)
}

// --- Watchlists ---

func (s *Store) Watchlist(ctx context.Context, userID uuid.UUID) ([]catalog.Movie, error) {
	if err := exists(ctx, s.pool, "users", catalog.EntityUser, userID); err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		select `+movieCols+`
		from watchlist w join movies m on m.id = w.movie_id
		where w.user_id = $1
		order by w.seq`, userID)
	ms, err := collect(rows, err, scanMovieRows)
	if err != nil {
		return nil, err
	}
	return ms, hydrateMovies(ctx, s.pool, ms)
}

func (s *Store) AddToWatchlist(ctx context.Context, userID, movieID uuid.UUID) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		if err := exists(ctx, tx, "users", catalog.EntityUser, userID); err != nil {
			return err
		}
		if err := exists(ctx, tx, "movies", catalog.EntityMovie, movieID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, "insert into watchlist (user_id, movie_id) values ($1,$2) on conflict do nothing", userID, movieID)
		if err != nil {
			return translate(err, catalog.EntityMovie)
		}
		if tag.RowsAffected() == 0 {
			return errs.Conflict("Movie with id %s is already on the watchlist", movieID)
		}
		return nil
	})
}

func (s *Store) RemoveFromWatchlist(ctx context.Context, userID, movieID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, "delete from watchlist where user_id = $1 and movie_id = $2", userID, movieID)
	return affected(tag, err, catalog.EntityMovie, movieID.String()+" on watchlist of User "+userID.String())
}

// --- Reviews ---

func scanReview(row pgx.Row) (catalog.Review, error) {
	var r catalog.Review
	var reviewed, released time.Time
	if err := row.Scan(&r.ID, &r.MovieID, &r.UserID, &r.Comment, &r.Rating, &reviewed, &r.Liked, &r.MovieTitle, &released, &r.Username); err != nil {
		return catalog.Review{}, err
	}
	r.ReviewDate = catalog.DateOf(reviewed)
	r.MovieReleaseDate = catalog.DateOf(released)
	return r, nil
}

func scanReviewRows(rows pgx.Rows) (catalog.Review, error) { return scanReview(rows) }

func (s *Store) ListReviews(ctx context.Context, f catalog.ReviewFilter) ([]catalog.Review, error) {
	var w where
	if f.MovieID != nil {
		w.add("v.movie_id = ?", *f.MovieID)
	}
	if f.UserID != nil {
		w.add("v.user_id = ?", *f.UserID)
	}
	if f.Liked != nil {
		w.add("v.liked = ?", *f.Liked)
	}
	if f.Rating != nil {
		w.add("v.rating = ?", *f.Rating)
	}
	rows, err := s.pool.Query(ctx, "select "+reviewCols+" from "+reviewFrom+w.String()+" order by v.review_date, v.id", w.args...)
	return collect(rows, err, scanReviewRows)
}

func (s *Store) PageReviews(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Review], error) {
	return pageQuery(ctx, s.pool, req, reviewFrom, reviewCols, reviewColumns, "v.id", scanReviewRows)
}

func (s *Store) GetReview(ctx context.Context, id uuid.UUID) (catalog.Review, error) {
	r, err := scanReview(s.pool.QueryRow(ctx, "select "+reviewCols+" from "+reviewFrom+" where v.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Review{}, errs.Missing(catalog.EntityReview, id)
	}
	return r, err
}

func (s *Store) CreateReview(ctx context.Context, r catalog.Review) (catalog.Review, error) {
	if _, err := s.pool.Exec(ctx, `
		insert into reviews (id, movie_id, user_id, comment, rating, review_date, liked)
		values ($1,$2,$3,$4,$5,$6,$7)`,
		r.ID, r.MovieID, r.UserID, r.Comment, r.Rating, r.ReviewDate.Time, r.Liked); err != nil {
		return catalog.Review{}, translate(err, catalog.EntityReview)
	}
	return s.GetReview(ctx, r.ID)
}

func (s *Store) UpdateReview(ctx context.Context, r catalog.Review) (catalog.Review, error) {
	tag, err := s.pool.Exec(ctx, `
		update reviews set movie_id=$2, user_id=$3, comment=$4, rating=$5, review_date=$6, liked=$7
		where id=$1`,
		r.ID, r.MovieID, r.UserID, r.Comment, r.Rating, r.ReviewDate.Time, r.Liked)
	if err := affected(tag, err, catalog.EntityReview, r.ID); err != nil {
		return catalog.Review{}, err
	}
	return s.GetReview(ctx, r.ID)
}

func (s *Store) DeleteReview(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, "delete from reviews where id = $1", id)
	return affected(tag, err, catalog.EntityReview, id)
}

// --- User lists ---

func scanList(row pgx.Row) (catalog.UserList, error) {
	var l catalog.UserList
	err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.Description, &l.Private, &l.CreatedAt, &l.MovieIDs)
	l.CreatedAt = l.CreatedAt.UTC()
	if l.MovieIDs == nil {
		l.MovieIDs = []uuid.UUID{}
	}
	return l, err
}

func scanListRows(rows pgx.Rows) (catalog.UserList, error) { return scanList(rows) }

func (s *Store) ListUserLists(ctx context.Context, f catalog.UserListFilter) ([]catalog.UserList, error) {
	var w where
	if f.Name != "" {
		w.add("l.name ilike ?", likeArg(f.Name))
	}
	if f.Description != "" {
		w.add("l.description ilike ?", likeArg(f.Description))
	}
	if f.UserID != nil {
		w.add("l.user_id = ?", *f.UserID)
	}
	rows, err := s.pool.Query(ctx, "select "+listCols+" from user_lists l"+w.String()+" order by lower(l.name), l.id", w.args...)
	return collect(rows, err, scanListRows)
}

func (s *Store) PageUserLists(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.UserList], error) {
	return pageQuery(ctx, s.pool, req, "user_lists l", listCols, listColumns, "l.id", scanListRows)
}

func (s *Store) GetUserList(ctx context.Context, id uuid.UUID) (catalog.UserList, error) {
	l, err := scanList(s.pool.QueryRow(ctx, "select "+listCols+" from user_lists l where l.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.UserList{}, errs.Missing(catalog.EntityUserList, id)
	}
	return l, err
}

// CreateUserList stores the list header; MovieIDs are managed through
// AddListMovie and RemoveListMovie.
func (s *Store) CreateUserList(ctx context.Context, l catalog.UserList) (catalog.UserList, error) {
	if err := ownerExists(ctx, s.pool, l.UserID); err != nil {
		return catalog.UserList{}, err
	}
	if _, err := s.pool.Exec(ctx, `
		insert into user_lists (id, user_id, name, description, private, created_at)
		values ($1,$2,$3,$4,$5,$6)`,
		l.ID, l.UserID, l.Name, l.Description, l.Private, l.CreatedAt); err != nil {
		return catalog.UserList{}, translate(err, catalog.EntityUserList)
	}
	return s.GetUserList(ctx, l.ID)
}

func (s *Store) UpdateUserList(ctx context.Context, l catalog.UserList) (catalog.UserList, error) {
	if err := ownerExists(ctx, s.pool, l.UserID); err != nil {
		return catalog.UserList{}, err
	}
	tag, err := s.pool.Exec(ctx, `
		update user_lists set user_id=$2, name=$3, description=$4, private=$5
		where id=$1`,
		l.ID, l.UserID, l.Name, l.Description, l.Private)
	if err := affected(tag, err, catalog.EntityUserList, l.ID); err != nil {
		return catalog.UserList{}, err
	}
	return s.GetUserList(ctx, l.ID)
}

func (s *Store) DeleteUserList(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, "delete from user_lists where id = $1", id)
	return affected(tag, err, catalog.EntityUserList, id)
}

func (s *Store) AddListMovie(ctx context.Context, listID, movieID uuid.UUID) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		if err := exists(ctx, tx, "user_lists", catalog.EntityUserList, listID); err != nil {
			return err
		}
		if err := exists(ctx, tx, "movies", catalog.EntityMovie, movieID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, "insert into user_list_movies (list_id, movie_id) values ($1,$2) on conflict do nothing", listID, movieID)
		if err != nil {
			return translate(err, catalog.EntityUserList)
		}
		if tag.RowsAffected() == 0 {
			return errs.Conflict("Movie with id %s is already in list %s", movieID, listID)
		}
		return nil
	})
}

func (s *Store) RemoveListMovie(ctx context.Context, listID, movieID uuid.UUID) error {
	if err := exists(ctx, s.pool, "user_lists", catalog.EntityUserList, listID); err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, "delete from user_list_movies where list_id = $1 and movie_id = $2", listID, movieID)
	return affected(tag, err, catalog.EntityMovie, movieID.String()+" in UserList "+listID.String())
}

func ownerExists(ctx context.Context, q querier, userID uuid.UUID) error {
	err := exists(ctx, q, "users", catalog.EntityUser, userID)
	if errs.IsNotFound(err) {
		return errs.Unresolved(catalog.EntityUser, userID)
	}
	return err
}

// --- Follows ---

func scanFollow(row pgx.Row) (catalog.Follow, error) {
	var f catalog.Follow
	err := row.Scan(&f.UserID, &f.FollowerID, &f.FollowedAt)
	f.FollowedAt = f.FollowedAt.UTC()
	return f, err
}

func scanFollowRows(rows pgx.Rows) (catalog.Follow, error) { return scanFollow(rows) }

func (s *Store) PageFollows(ctx context.Context, req catalog.PageRequest) (catalog.Page[catalog.Follow], error) {
	return pageQuery(ctx, s.pool, req, "follows f", followCols, followColumns, "f.follower_id", scanFollowRows)
}

func (s *Store) ListFollows(ctx context.Context, f catalog.FollowFilter) ([]catalog.Follow, error) {
	var w where
	if f.UserID != nil {
		w.add("f.user_id = ?", *f.UserID)
	}
	if f.FollowerID != nil {
		w.add("f.follower_id = ?", *f.FollowerID)
	}
	rows, err := s.pool.Query(ctx, "select "+followCols+" from follows f"+w.String()+" order by f.followed_at, f.user_id, f.follower_id", w.args...)
	return collect(rows, err, scanFollowRows)
}

func (s *Store) GetFollow(ctx context.Context, userID, followerID uuid.UUID) (catalog.Follow, error) {
	f, err := scanFollow(s.pool.QueryRow(ctx, "select "+followCols+" from follows f where f.user_id = $1 and f.follower_id = $2", userID, followerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Follow{}, errs.Missing(catalog.EntityFollow, userID.String()+"/"+followerID.String())
	}
	return f, err
}

func (s *Store) CreateFollow(ctx context.Context, f catalog.Follow) (catalog.Follow, error) {
	tag, err := s.pool.Exec(ctx, `
		insert into follows (user_id, follower_id, followed_at) values ($1,$2,$3)
		on conflict do nothing`, f.UserID, f.FollowerID, f.FollowedAt)
	if err != nil {
		return catalog.Follow{}, translate(err, catalog.EntityFollow)
	}
	if tag.RowsAffected() == 0 {
		return catalog.Follow{}, errs.Conflict("User with id %s already follows user with id %s", f.FollowerID, f.UserID)
	}
	return f, nil
}

func (s *Store) DeleteFollow(ctx context.Context, userID, followerID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, "delete from follows where user_id = $1 and follower_id = $2", userID, followerID)
	return affected(tag, err, catalog.EntityFollow, userID.String()+"/"+followerID.String())
}

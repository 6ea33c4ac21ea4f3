package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/tinoosan/cinerator/internal/catalog"
	"github.com/tinoosan/cinerator/internal/errs"
)

var userOrder = comparators[catalog.User]{
	"id":        func(a, b catalog.User) int { return cmpID(a.ID, b.ID) },
	"username":  func(a, b catalog.User) int { return cmpFold(a.Username, b.Username) },
	"name":      func(a, b catalog.User) int { return cmpFold(a.Name, b.Name) },
	"email":     func(a, b catalog.User) int { return cmpFold(a.Email, b.Email) },
	"createdAt": func(a, b catalog.User) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"role":      func(a, b catalog.User) int { return cmpFold(a.Role, b.Role) },
}

var reviewOrder = comparators[catalog.Review]{
	"id":         func(a, b catalog.Review) int { return cmpID(a.ID, b.ID) },
	"rating":     func(a, b catalog.Review) int { return cmp.Compare(a.Rating, b.Rating) },
	"reviewDate": func(a, b catalog.Review) int { return cmpDate(a.ReviewDate, b.ReviewDate) },
}

var listOrder = comparators[catalog.UserList]{
	"id":        func(a, b catalog.UserList) int { return cmpID(a.ID, b.ID) },
	"name":      func(a, b catalog.UserList) int { return cmpFold(a.Name, b.Name) },
	"createdAt": func(a, b catalog.UserList) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

func cmpFollow(a, b catalog.Follow) int {
	if c := cmpID(a.UserID, b.UserID); c != 0 {
		return c
	}
	return cmpID(a.FollowerID, b.FollowerID)
}

var followOrder = comparators[catalog.Follow]{
	"id":         cmpFollow,
	"userId":     func(a, b catalog.Follow) int { return cmpID(a.UserID, b.UserID) },
	"followerId": func(a, b catalog.Follow) int { return cmpID(a.FollowerID, b.FollowerID) },
	"followedAt": func(a, b catalog.Follow) int { return a.FollowedAt.Compare(b.FollowedAt) },
}

// --- Users ---

func byUsername(a, b catalog.User) int {
	if c := cmpFold(a.Username, b.Username); c != 0 {
		return c
	}
	return cmpID(a.ID, b.ID)
}

// ListUsers returns the users matching f ordered by username.
func (s *Store) ListUsers(_ context.Context, f catalog.UserFilter) ([]catalog.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []catalog.User{}
	for _, u := range s.users {
		if f.Match(u) {
			out = append(out, u)
		}
	}
	slices.SortFunc(out, byUsername)
	return out, nil
}

func (s *Store) PageUsers(_ context.Context, req catalog.PageRequest) (catalog.Page[catalog.User], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortPage(valuesOf(s.users), req, userOrder, func(u catalog.User) uuid.UUID { return u.ID })
}

func (s *Store) GetUser(_ context.Context, id uuid.UUID) (catalog.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return catalog.User{}, errs.Missing(catalog.EntityUser, id)
	}
	return u, nil
}

// UsersByIDs returns the users in the order of ids, skipping unknown ones.
func (s *Store) UsersByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Store) CreateUser(_ context.Context, u catalog.User) (catalog.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; ok {
		return catalog.User{}, errs.Conflict("User with id %s already exists", u.ID)
	}
	if err := s.usernameFreeLocked(u); err != nil {
		return catalog.User{}, err
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) UpdateUser(_ context.Context, u catalog.User) (catalog.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return catalog.User{}, errs.Missing(catalog.EntityUser, u.ID)
	}
	if err := s.usernameFreeLocked(u); err != nil {
		return catalog.User{}, err
	}
	s.users[u.ID] = u
	return u, nil
}

// DeleteUser removes the user with their reviews, lists, follow edges and watchlist.
func (s *Store) DeleteUser(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return errs.Missing(catalog.EntityUser, id)
	}
	delete(s.users, id)
	delete(s.watchlists, id)
	for rid, r := range s.reviews {
		if r.UserID == id {
			delete(s.reviews, rid)
		}
	}
	for lid, l := range s.lists {
		if l.UserID == id {
			delete(s.lists, lid)
		}
	}
	for k := range s.follows {
		if k.UserID == id || k.FollowerID == id {
			delete(s.follows, k)
		}
	}
	return nil
}

func (s *Store) usernameFreeLocked(u catalog.User) error {
	for _, other := range s.users {
		if other.ID != u.ID && strings.EqualFold(other.Username, u.Username) {
			return errs.Conflict("username %q is already taken", u.Username)
		}
	}
	return nil
}

// --- Watchlists ---

// Watchlist returns the user's movies in the order they were added.
func (s *Store) Watchlist(_ context.Context, userID uuid.UUID) ([]catalog.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.users[userID]; !ok {
		return nil, errs.Missing(catalog.EntityUser, userID)
	}
	return s.moviesByIDsLocked(s.watchlists[userID]), nil
}

func (s *Store) AddToWatchlist(_ context.Context, userID, movieID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return errs.Missing(catalog.EntityUser, userID)
	}
	if _, ok := s.movies[movieID]; !ok {
		return errs.Missing(catalog.EntityMovie, movieID)
	}
	if slices.Contains(s.watchlists[userID], movieID) {
		return errs.Conflict("Movie with id %s is already on the watchlist", movieID)
	}
	s.watchlists[userID] = append(s.watchlists[userID], movieID)
	return nil
}

func (s *Store) RemoveFromWatchlist(_ context.Context, userID, movieID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.watchlists[userID], movieID) {
		return errs.Missing(catalog.EntityMovie, movieID.String()+" on watchlist of User "+userID.String())
	}
	s.watchlists[userID] = without(s.watchlists[userID], movieID)
	return nil
}

// --- Reviews ---

func (s *Store) hydrateReviewLocked(r catalog.Review) catalog.Review {
	if row, ok := s.movies[r.MovieID]; ok {
		r.MovieTitle = row.Title
		r.MovieReleaseDate = row.ReleaseDate
	}
	if u, ok := s.users[r.UserID]; ok {
		r.Username = u.Username
	}
	return r
}

func (s *Store) reviewsLocked() []catalog.Review {
	out := make([]catalog.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		out = append(out, s.hydrateReviewLocked(r))
	}
	return out
}

// ListReviews returns the reviews matching f ordered by review date.
func (s *Store) ListReviews(_ context.Context, f catalog.ReviewFilter) ([]catalog.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []catalog.Review{}
	for _, r := range s.reviewsLocked() {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b catalog.Review) int {
		if c := cmpDate(a.ReviewDate, b.ReviewDate); c != 0 {
			return c
		}
		return cmpID(a.ID, b.ID)
	})
	return out, nil
}

func (s *Store) PageReviews(_ context.Context, req catalog.PageRequest) (catalog.Page[catalog.Review], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortPage(s.reviewsLocked(), req, reviewOrder, func(r catalog.Review) uuid.UUID { return r.ID })
}

func (s *Store) GetReview(_ context.Context, id uuid.UUID) (catalog.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reviews[id]
	if !ok {
		return catalog.Review{}, errs.Missing(catalog.EntityReview, id)
	}
	return s.hydrateReviewLocked(r), nil
}

func (s *Store) CreateReview(_ context.Context, r catalog.Review) (catalog.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[r.ID]; ok {
		return catalog.Review{}, errs.Conflict("Review with id %s already exists", r.ID)
	}
	s.reviews[r.ID] = stripReview(r)
	return s.hydrateReviewLocked(r), nil
}

func (s *Store) UpdateReview(_ context.Context, r catalog.Review) (catalog.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[r.ID]; !ok {
		return catalog.Review{}, errs.Missing(catalog.EntityReview, r.ID)
	}
	s.reviews[r.ID] = stripReview(r)
	return s.hydrateReviewLocked(r), nil
}

func (s *Store) DeleteReview(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[id]; !ok {
		return errs.Missing(catalog.EntityReview, id)
	}
	delete(s.reviews, id)
	return nil
}

func stripReview(r catalog.Review) catalog.Review {
	r.MovieTitle, r.MovieReleaseDate, r.Username = "", catalog.Date{}, ""
	return r
}

// --- User lists ---

func (s *Store) ListUserLists(_ context.Context, f catalog.UserListFilter) ([]catalog.UserList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []catalog.UserList{}
	for _, l := range s.lists {
		if f.Match(l) {
			out = append(out, cloneList(l))
		}
	}
	slices.SortFunc(out, func(a, b catalog.UserList) int {
		if c := cmpFold(a.Name, b.Name); c != 0 {
			return c
		}
		return cmpID(a.ID, b.ID)
	})
	return out, nil
}

func (s *Store) PageUserLists(_ context.Context, req catalog.PageRequest) (catalog.Page[catalog.UserList], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]catalog.UserList, 0, len(s.lists))
	for _, l := range s.lists {
		all = append(all, cloneList(l))
	}
	return sortPage(all, req, listOrder, func(l catalog.UserList) uuid.UUID { return l.ID })
}

func (s *Store) GetUserList(_ context.Context, id uuid.UUID) (catalog.UserList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.lists[id]
	if !ok {
		return catalog.UserList{}, errs.Missing(catalog.EntityUserList, id)
	}
	return cloneList(l), nil
}

func (s *Store) CreateUserList(_ context.Context, l catalog.UserList) (catalog.UserList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[l.ID]; ok {
		return catalog.UserList{}, errs.Conflict("UserList with id %s already exists", l.ID)
	}
	if _, ok := s.users[l.UserID]; !ok {
		return catalog.UserList{}, errs.Unresolved(catalog.EntityUser, l.UserID)
	}
	s.lists[l.ID] = cloneList(l)
	return cloneList(l), nil
}

func (s *Store) UpdateUserList(_ context.Context, l catalog.UserList) (catalog.UserList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[l.ID]; !ok {
		return catalog.UserList{}, errs.Missing(catalog.EntityUserList, l.ID)
	}
	if _, ok := s.users[l.UserID]; !ok {
		return catalog.UserList{}, errs.Unresolved(catalog.EntityUser, l.UserID)
	}
	s.lists[l.ID] = cloneList(l)
	return cloneList(l), nil
}

func (s *Store) DeleteUserList(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[id]; !ok {
		return errs.Missing(catalog.EntityUserList, id)
	}
	delete(s.lists, id)
	return nil
}

func (s *Store) AddListMovie(_ context.Context, listID, movieID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[listID]
	if !ok {
		return errs.Missing(catalog.EntityUserList, listID)
	}
	if _, ok := s.movies[movieID]; !ok {
		return errs.Missing(catalog.EntityMovie, movieID)
	}
	if l.Contains(movieID) {
		return errs.Conflict("Movie with id %s is already in list %s", movieID, listID)
	}
	l.MovieIDs = append(slices.Clone(l.MovieIDs), movieID)
	s.lists[listID] = l
	return nil
}

func (s *Store) RemoveListMovie(_ context.Context, listID, movieID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[listID]
	if !ok {
		return errs.Missing(catalog.EntityUserList, listID)
	}
	if !l.Contains(movieID) {
		return errs.Missing(catalog.EntityMovie, movieID.String()+" in UserList "+listID.String())
	}
	l.MovieIDs = without(l.MovieIDs, movieID)
	s.lists[listID] = l
	return nil
}

func cloneList(l catalog.UserList) catalog.UserList {
	l.MovieIDs = slices.Clone(l.MovieIDs)
	if l.MovieIDs == nil {
		l.MovieIDs = []uuid.UUID{}
	}
	return l
}

// --- Follows ---

func (s *Store) PageFollows(_ context.Context, req catalog.PageRequest) (catalog.Page[catalog.Follow], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortPage(valuesOf(s.follows), req, followOrder, func(catalog.Follow) uuid.UUID { return uuid.Nil })
}

// ListFollows returns the edges matching f ordered by when they were made.
func (s *Store) ListFollows(_ context.Context, f catalog.FollowFilter) ([]catalog.Follow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []catalog.Follow{}
	for _, e := range s.follows {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b catalog.Follow) int {
		if c := a.FollowedAt.Compare(b.FollowedAt); c != 0 {
			return c
		}
		return cmpFollow(a, b)
	})
	return out, nil
}

func (s *Store) GetFollow(_ context.Context, userID, followerID uuid.UUID) (catalog.Follow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.follows[followKey{UserID: userID, FollowerID: followerID}]
	if !ok {
		return catalog.Follow{}, errs.Missing(catalog.EntityFollow, userID.String()+"/"+followerID.String())
	}
	return e, nil
}

func (s *Store) CreateFollow(_ context.Context, e catalog.Follow) (catalog.Follow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range []uuid.UUID{e.UserID, e.FollowerID} {
		if _, ok := s.users[id]; !ok {
			return catalog.Follow{}, errs.Missing(catalog.EntityUser, id)
		}
	}
	k := followKey{UserID: e.UserID, FollowerID: e.FollowerID}
	if _, ok := s.follows[k]; ok {
		return catalog.Follow{}, errs.Conflict("User with id %s already follows user with id %s", e.FollowerID, e.UserID)
	}
	s.follows[k] = e
	return e, nil
}

func (s *Store) DeleteFollow(_ context.Context, userID, followerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := followKey{UserID: userID, FollowerID: followerID}
	if _, ok := s.follows[k]; !ok {
		return errs.Missing(catalog.EntityFollow, userID.String()+"/"+followerID.String())
	}
	delete(s.follows, k)
	return nil
}

package repository

import (
	"context"
	"sort"
	"sync"

	"filmgraph/internal/models"
	"filmgraph/internal/refdata"
)

// memStore is a mutex-guarded keyed container shared by the in-memory entity
// stores. Ids come from a monotonic counter and are never reused, even after
// the highest-id row is deleted. Rows are cloned on the way in and out so
// callers never share mutable state with the store.
type memStore[T any] struct {
	mu     sync.RWMutex
	rows   map[uint]T
	lastID uint

	id    func(T) uint
	setID func(*T, uint)
	clone func(T) T
}

func newMemStore[T any](id func(T) uint, setID func(*T, uint), clone func(T) T) *memStore[T] {
	return &memStore[T]{
		rows:  make(map[uint]T),
		id:    id,
		setID: setID,
		clone: clone,
	}
}

func (s *memStore[T]) insert(row *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	s.setID(row, s.lastID)
	s.rows[s.lastID] = s.clone(*row)
}

func (s *memStore[T]) replace(row T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id(row)
	if _, ok := s.rows[id]; !ok {
		return false
	}
	s.rows[id] = s.clone(row)
	return true
}

func (s *memStore[T]) get(id uint) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.clone(row), true
}

func (s *memStore[T]) exists(id uint) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rows[id]
	return ok
}

func (s *memStore[T]) all() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.rows))
	for _, row := range s.rows {
		out = append(out, s.clone(row))
	}
	return out
}

func (s *memStore[T]) delete(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return false
	}
	delete(s.rows, id)
	return true
}

func cloneFilm(f models.Film) models.Film {
	out := f
	if f.Mpa != nil {
		mpa := *f.Mpa
		out.Mpa = &mpa
	}
	if f.MpaID != nil {
		id := *f.MpaID
		out.MpaID = &id
	}
	out.Genres = append([]models.Genre(nil), f.Genres...)
	return out
}

// memoryFilmRepository implements FilmRepository on a memStore.
type memoryFilmRepository struct {
	store *memStore[models.Film]
	likes *memoryLikeRepository
}

// NewMemoryFilmRepository creates a transient film repository. The like
// repository is used to drop a deleted film's like set, mirroring the
// relational backend's cascading delete.
func NewMemoryFilmRepository(likes LikeRepository) FilmRepository {
	repo := &memoryFilmRepository{
		store: newMemStore(
			func(f models.Film) uint { return f.ID },
			func(f *models.Film, id uint) { f.ID = id },
			cloneFilm,
		),
	}
	if mem, ok := likes.(*memoryLikeRepository); ok {
		repo.likes = mem
	}
	return repo
}

func (r *memoryFilmRepository) Create(_ context.Context, film *models.Film) error {
	r.store.insert(film)
	return nil
}

func (r *memoryFilmRepository) Update(_ context.Context, film *models.Film) error {
	if !r.store.replace(*film) {
		return models.NewNotFoundError("Film", film.ID)
	}
	return nil
}

func (r *memoryFilmRepository) GetByID(_ context.Context, id uint) (*models.Film, error) {
	film, ok := r.store.get(id)
	if !ok {
		return nil, models.NewNotFoundError("Film", id)
	}
	return &film, nil
}

func (r *memoryFilmRepository) ExistsByID(_ context.Context, id uint) (bool, error) {
	return r.store.exists(id), nil
}

func (r *memoryFilmRepository) List(_ context.Context) ([]models.Film, error) {
	return r.store.all(), nil
}

func (r *memoryFilmRepository) Delete(_ context.Context, id uint) (bool, error) {
	deleted := r.store.delete(id)
	if deleted && r.likes != nil {
		r.likes.dropFilm(id)
	}
	return deleted, nil
}

// memoryUserRepository implements UserRepository on a memStore.
type memoryUserRepository struct {
	store       *memStore[models.User]
	likes       *memoryLikeRepository
	friendships *memoryFriendshipRepository
}

// NewMemoryUserRepository creates a transient user repository. Deleting a user
// also drops the user's likes and friendship edges, as the relational backend
// does.
func NewMemoryUserRepository(likes LikeRepository, friendships FriendshipRepository) UserRepository {
	repo := &memoryUserRepository{
		store: newMemStore(
			func(u models.User) uint { return u.ID },
			func(u *models.User, id uint) { u.ID = id },
			func(u models.User) models.User { return u },
		),
	}
	if mem, ok := likes.(*memoryLikeRepository); ok {
		repo.likes = mem
	}
	if mem, ok := friendships.(*memoryFriendshipRepository); ok {
		repo.friendships = mem
	}
	return repo
}

func (r *memoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.store.insert(user)
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *models.User) error {
	if !r.store.replace(*user) {
		return models.NewNotFoundError("User", user.ID)
	}
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.store.get(id)
	if !ok {
		return nil, models.NewNotFoundError("User", id)
	}
	return &user, nil
}

func (r *memoryUserRepository) ExistsByID(_ context.Context, id uint) (bool, error) {
	return r.store.exists(id), nil
}

func (r *memoryUserRepository) List(_ context.Context) ([]models.User, error) {
	return r.store.all(), nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id uint) (bool, error) {
	deleted := r.store.delete(id)
	if deleted {
		if r.likes != nil {
			r.likes.dropUser(id)
		}
		if r.friendships != nil {
			r.friendships.dropUser(id)
		}
	}
	return deleted, nil
}

// memoryFriendshipRepository holds the directed edges as an adjacency map.
type memoryFriendshipRepository struct {
	mu    sync.RWMutex
	edges map[uint]map[uint]models.FriendshipStatus
}

// NewMemoryFriendshipRepository creates a transient friendship edge store.
func NewMemoryFriendshipRepository() FriendshipRepository {
	return &memoryFriendshipRepository{
		edges: make(map[uint]map[uint]models.FriendshipStatus),
	}
}

func (r *memoryFriendshipRepository) Upsert(_ context.Context, userID, friendID uint, status models.FriendshipStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.edges[userID] == nil {
		r.edges[userID] = make(map[uint]models.FriendshipStatus)
	}
	r.edges[userID][friendID] = status
	return nil
}

func (r *memoryFriendshipRepository) Remove(_ context.Context, userID, friendID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.edges[userID], friendID)
	return nil
}

func (r *memoryFriendshipRepository) FriendIDs(_ context.Context, userID uint) ([]uint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]uint, 0, len(r.edges[userID]))
	for id := range r.edges[userID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *memoryFriendshipRepository) CommonFriendIDs(_ context.Context, userID, otherID uint) ([]uint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []uint
	for id := range r.edges[userID] {
		if _, ok := r.edges[otherID][id]; ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *memoryFriendshipRepository) dropUser(userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.edges, userID)
	for _, friends := range r.edges {
		delete(friends, userID)
	}
}

// memoryLikeRepository holds per-film like sets.
type memoryLikeRepository struct {
	mu    sync.RWMutex
	likes map[uint]map[uint]struct{}
}

// NewMemoryLikeRepository creates a transient like store.
func NewMemoryLikeRepository() LikeRepository {
	return &memoryLikeRepository{
		likes: make(map[uint]map[uint]struct{}),
	}
}

func (r *memoryLikeRepository) Add(_ context.Context, filmID, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.likes[filmID] == nil {
		r.likes[filmID] = make(map[uint]struct{})
	}
	r.likes[filmID][userID] = struct{}{}
	return nil
}

func (r *memoryLikeRepository) Remove(_ context.Context, filmID, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.likes[filmID], userID)
	return nil
}

func (r *memoryLikeRepository) Count(_ context.Context, filmID uint) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.likes[filmID]), nil
}

func (r *memoryLikeRepository) Counts(_ context.Context) (map[uint]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[uint]int, len(r.likes))
	for filmID, users := range r.likes {
		if len(users) > 0 {
			counts[filmID] = len(users)
		}
	}
	return counts, nil
}

func (r *memoryLikeRepository) dropFilm(filmID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.likes, filmID)
}

func (r *memoryLikeRepository) dropUser(userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, users := range r.likes {
		delete(users, userID)
	}
}

// memoryGenreRepository serves the embedded genre catalog.
type memoryGenreRepository struct {
	byID map[uint]models.Genre
	list []models.Genre
}

// memoryMpaRatingRepository serves the embedded MPA-rating catalog.
type memoryMpaRatingRepository struct {
	byID map[uint]models.MpaRating
	list []models.MpaRating
}

// NewMemoryReferenceRepositories loads the embedded catalog and returns
// read-only genre and MPA-rating repositories.
func NewMemoryReferenceRepositories() (GenreRepository, MpaRatingRepository, error) {
	genres, ratings, err := refdata.Load()
	if err != nil {
		return nil, nil, err
	}

	genreRepo := &memoryGenreRepository{
		byID: make(map[uint]models.Genre, len(genres)),
		list: genres,
	}
	for _, g := range genres {
		genreRepo.byID[g.ID] = g
	}

	mpaRepo := &memoryMpaRatingRepository{
		byID: make(map[uint]models.MpaRating, len(ratings)),
		list: ratings,
	}
	for _, m := range ratings {
		mpaRepo.byID[m.ID] = m
	}
	return genreRepo, mpaRepo, nil
}

func (r *memoryGenreRepository) List(_ context.Context) ([]models.Genre, error) {
	return append([]models.Genre(nil), r.list...), nil
}

func (r *memoryGenreRepository) GetByID(_ context.Context, id uint) (*models.Genre, error) {
	genre, ok := r.byID[id]
	if !ok {
		return nil, models.NewNotFoundError("Genre", id)
	}
	return &genre, nil
}

func (r *memoryGenreRepository) ExistsByID(_ context.Context, id uint) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}

func (r *memoryMpaRatingRepository) List(_ context.Context) ([]models.MpaRating, error) {
	return append([]models.MpaRating(nil), r.list...), nil
}

func (r *memoryMpaRatingRepository) GetByID(_ context.Context, id uint) (*models.MpaRating, error) {
	rating, ok := r.byID[id]
	if !ok {
		return nil, models.NewNotFoundError("MPA rating", id)
	}
	return &rating, nil
}

func (r *memoryMpaRatingRepository) ExistsByID(_ context.Context, id uint) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}

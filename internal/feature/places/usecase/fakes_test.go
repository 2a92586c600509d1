package usecase

import (
	"context"
	"errors"
	"maps"

	authentity "places_backend/internal/feature/auth/domain/entity"
	"places_backend/internal/feature/places/domain/entity"
)

// memStore is an in-memory backing store. Transactions work on copies
// and replace the committed state only on Commit.
type memStore struct {
	places map[string]entity.Place
	users  map[string]authentity.User

	beginErr     error
	ownerSaveErr error
	commitErr    error
	findErr      error
	// afterCommit runs once a commit succeeds, e.g. to cancel the request context.
	afterCommit func()

	begun, committed, rolledBack int
}

func newMemStore(users ...authentity.User) *memStore {
	s := &memStore{places: map[string]entity.Place{}, users: map[string]authentity.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func cloneUsers(in map[string]authentity.User) map[string]authentity.User {
	out := make(map[string]authentity.User, len(in))
	for k, u := range in {
		u.PlaceIDs = append([]string(nil), u.PlaceIDs...)
		out[k] = u
	}
	return out
}

// placeRepo is the non-transactional place repository.
type placeRepo struct{ s *memStore }

func (r placeRepo) FindByID(_ context.Context, id string) (*entity.Place, error) {
	if r.s.findErr != nil {
		return nil, r.s.findErr
	}
	p, ok := r.s.places[id]
	if !ok {
		return nil, ErrPlaceNotFound
	}
	return &p, nil
}

func (r placeRepo) FindByCreator(_ context.Context, userID string) ([]entity.Place, error) {
	var out []entity.Place
	for _, p := range r.s.places {
		if p.CreatorID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r placeRepo) Save(_ context.Context, p *entity.Place) error {
	if _, ok := r.s.places[p.ID]; !ok {
		return ErrPlaceNotFound
	}
	r.s.places[p.ID] = *p
	return nil
}

// ownerRepo works on whichever user map it is given.
type ownerRepo struct {
	users   map[string]authentity.User
	saveErr error
}

func (r ownerRepo) FindByID(_ context.Context, id string) (*authentity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u.PlaceIDs = append([]string(nil), u.PlaceIDs...)
	return &u, nil
}

func (r ownerRepo) Save(_ context.Context, u *authentity.User) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.users[u.ID]; !ok {
		return ErrUserNotFound
	}
	r.users[u.ID] = *u
	return nil
}

type txPlaceRepo struct{ places map[string]entity.Place }

func (r txPlaceRepo) Create(_ context.Context, p *entity.Place) error {
	r.places[p.ID] = *p
	return nil
}

func (r txPlaceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.places[id]; !ok {
		return ErrPlaceNotFound
	}
	delete(r.places, id)
	return nil
}

type memTx struct {
	s      *memStore
	places map[string]entity.Place
	users  map[string]authentity.User
	done   bool
}

func (t *memTx) Places() TxPlaceRepository { return txPlaceRepo{places: t.places} }
func (t *memTx) Owners() OwnerRepository {
	return ownerRepo{users: t.users, saveErr: t.s.ownerSaveErr}
}

func (t *memTx) Commit() error {
	if t.done {
		return errors.New("transaction already finished")
	}
	if t.s.commitErr != nil {
		return t.s.commitErr
	}
	t.s.places, t.s.users = t.places, t.users
	t.s.committed++
	t.done = true
	if t.s.afterCommit != nil {
		t.s.afterCommit()
	}
	return nil
}

func (t *memTx) Rollback() error {
	if t.done {
		return nil
	}
	t.s.rolledBack++
	t.done = true
	return nil
}

func (s *memStore) Begin(context.Context) (Tx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	s.begun++
	return &memTx{s: s, places: maps.Clone(s.places), users: cloneUsers(s.users)}, nil
}

// mockGeocoder is a func-field mock of Geocoder.
type mockGeocoder struct {
	GeocodeFunc func(ctx context.Context, address string) (entity.Location, error)
	calls       int
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (entity.Location, error) {
	m.calls++
	if m.GeocodeFunc != nil {
		return m.GeocodeFunc(ctx, address)
	}
	return entity.Location{Lat: 40.7484405, Lng: -73.9878584}, nil
}

type mockImages struct {
	removed []string
	ctxErrs []error
	err     error
}

func (m *mockImages) Remove(ctx context.Context, ref string) error {
	m.removed = append(m.removed, ref)
	m.ctxErrs = append(m.ctxErrs, ctx.Err())
	return m.err
}

type invalidation struct{ placeID, userID string }

type mockCache struct {
	calls   []invalidation
	ctxErrs []error
}

func (m *mockCache) Invalidate(ctx context.Context, placeID, userID string) {
	m.calls = append(m.calls, invalidation{placeID, userID})
	m.ctxErrs = append(m.ctxErrs, ctx.Err())
}

// fixture wires a usecase over a memStore.
type fixture struct {
	store  *memStore
	geo    *mockGeocoder
	images *mockImages
	cache  *mockCache
	uc     *placeUsecase
}

func newFixture(users ...authentity.User) *fixture {
	f := &fixture{
		store:  newMemStore(users...),
		geo:    &mockGeocoder{},
		images: &mockImages{},
		cache:  &mockCache{},
	}
	f.uc = NewPlaceUsecase(placeRepo{f.store}, liveOwners{f.store}, f.store, f.geo, f.images, f.cache)
	return f
}

// liveOwners reads the committed user map at call time.
type liveOwners struct{ s *memStore }

func (o liveOwners) FindByID(ctx context.Context, id string) (*authentity.User, error) {
	return ownerRepo{users: o.s.users}.FindByID(ctx, id)
}

func (o liveOwners) Save(ctx context.Context, u *authentity.User) error {
	return ownerRepo{users: o.s.users}.Save(ctx, u)
}

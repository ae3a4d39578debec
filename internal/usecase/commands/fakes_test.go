//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"labreserve/internal/domain/reservation"
	"labreserve/internal/domain/resource"
	"labreserve/internal/infra"
	"labreserve/internal/usecase/commands"
	"labreserve/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore mimics the persistence layer in memory. The mutex plays the role
// of the database: Within holds it for the whole transaction, so concurrent
// commands serialize exactly like they would against row locks, and Create
// enforces the same no-overlap rule as the exclusion constraint.
type fakeStore struct {
	mu           sync.Mutex
	reservations map[uuid.UUID]*reservation.Reservation
	resources    map[uuid.UUID]*resource.Resource
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		reservations: make(map[uuid.UUID]*reservation.Reservation),
		resources:    make(map[uuid.UUID]*resource.Resource),
	}
}

func (s *fakeStore) addResource(rsc *resource.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[rsc.ID()] = rsc
}

func (s *fakeStore) addReservation(res *reservation.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[res.ID()] = res
}

func (s *fakeStore) reservation(id uuid.UUID) *reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservations[id]
}

func (s *fakeStore) resource(id uuid.UUID) *resource.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resources[id]
}

type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return fn(ctx, &fakeTx{store: u.store})
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Reservations() shared.ReservationRepository {
	return &fakeReservationRepo{store: t.store}
}

func (t *fakeTx) Resources() shared.ResourceRepository {
	return &fakeResourceRepo{store: t.store}
}

type fakeReservationRepo struct {
	store *fakeStore
}

func (r *fakeReservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	if _, ok := r.store.resources[res.ResourceID()]; !ok {
		return infra.WrapRepoErr("resource does not exist", nil, infra.KindForeignKeyViolated)
	}
	for _, existing := range r.store.reservations {
		if existing.ResourceID() == res.ResourceID() &&
			existing.IsActive() &&
			existing.Slot().Overlaps(res.Slot()) {
			return infra.WrapRepoErr("overlapping reservation", nil, infra.KindConflict)
		}
	}
	r.store.reservations[res.ID()] = res
	return nil
}

func (r *fakeReservationRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.store.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return res, nil
}

func (r *fakeReservationRepo) UpdateStatus(_ context.Context, id uuid.UUID, _ reservation.Status) error {
	if _, ok := r.store.reservations[id]; !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	// the shared entity pointer already carries the new status
	return nil
}

func (r *fakeReservationRepo) HasOverlap(_ context.Context, resourceID uuid.UUID, slot reservation.TimeSlot, excludeID *uuid.UUID) (bool, error) {
	for id, existing := range r.store.reservations {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if existing.ResourceID() == resourceID && existing.IsActive() && existing.Slot().Overlaps(slot) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReservationRepo) CountConfirmed(_ context.Context, resourceID uuid.UUID, excludeID *uuid.UUID) (int64, error) {
	var count int64
	for id, existing := range r.store.reservations {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if existing.ResourceID() == resourceID && existing.Status() == reservation.StatusConfirmed {
			count++
		}
	}
	return count, nil
}

type fakeResourceRepo struct {
	store *fakeStore
}

func (r *fakeResourceRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*resource.Resource, error) {
	rsc, ok := r.store.resources[id]
	if !ok {
		return nil, infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return rsc, nil
}

func (r *fakeResourceRepo) UpdateStatus(_ context.Context, id uuid.UUID, _ resource.Status) error {
	if _, ok := r.store.resources[id]; !ok {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return nil
}

type fakeExpiredReader struct {
	store *fakeStore
}

func (r *fakeExpiredReader) FindExpiredConfirmedIDs(_ context.Context, now time.Time) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var ids []uuid.UUID
	for id, res := range r.store.reservations {
		if res.Status() == reservation.StatusConfirmed && res.Slot().HasEnded(now) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []commands.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event commands.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, ev := range p.events {
		types[i] = ev.Type
	}
	return types
}

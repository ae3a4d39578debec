package readstore

import (
	"context"
	"errors"
	"time"

	"labreserve/internal/infra"
	"labreserve/internal/infra/db"
	"labreserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ReservationReadStore serves the query side: denormalized views joined with
// the resource name, plus the slim interval projections the availability
// calculator reads.
type ReservationReadStore struct {
	db db.Querier
}

func NewReservationReadStore(q db.Querier) *ReservationReadStore {
	return &ReservationReadStore{db: q}
}

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	const query = `
		SELECT r.id, r.resource_id, res.name, r.owner_id,
		       lower(r.slot), upper(r.slot), r.status, r.recurrence,
		       r.created_at, r.updated_at
		FROM reservations r
		JOIN resources res ON res.id = r.resource_id
		WHERE r.id = $1`

	view, err := scanReservationView(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return view, nil
}

func (s *ReservationReadStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.ReservationView, error) {
	const query = `
		SELECT r.id, r.resource_id, res.name, r.owner_id,
		       lower(r.slot), upper(r.slot), r.status, r.recurrence,
		       r.created_at, r.updated_at
		FROM reservations r
		JOIN resources res ON res.id = r.resource_id
		WHERE r.owner_id = $1
		ORDER BY lower(r.slot) DESC`

	rows, err := s.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by owner", err)
	}
	defer rows.Close()

	views := make([]*queries.ReservationView, 0)
	for rows.Next() {
		view, err := scanReservationView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}
	return views, nil
}

func (s *ReservationReadStore) FindActiveIntervals(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]queries.Interval, error) {
	const query = `
		SELECT lower(slot), upper(slot)
		FROM reservations
		WHERE resource_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND slot && tstzrange($2, $3, '[)')
		ORDER BY lower(slot)`

	return s.queryIntervals(ctx, query, resourceID, from, to)
}

func (s *ReservationReadStore) FindActiveStartingBetween(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]queries.Interval, error) {
	const query = `
		SELECT lower(slot), upper(slot)
		FROM reservations
		WHERE resource_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND lower(slot) >= $2
		  AND lower(slot) < $3
		ORDER BY lower(slot)`

	return s.queryIntervals(ctx, query, resourceID, from, to)
}

func (s *ReservationReadStore) FindExpiredConfirmedIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	const query = `
		SELECT id FROM reservations
		WHERE status = 'confirmed'
		  AND upper(slot) <= $1
		ORDER BY upper(slot)`

	rows, err := s.db.Query(ctx, query, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find expired reservations", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation ids", err)
	}
	return ids, nil
}

func (s *ReservationReadStore) queryIntervals(ctx context.Context, query string, resourceID uuid.UUID, from, to time.Time) ([]queries.Interval, error) {
	rows, err := s.db.Query(ctx, query, resourceID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query reservation intervals", err)
	}
	defer rows.Close()

	var intervals []queries.Interval
	for rows.Next() {
		var iv queries.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation interval", err)
		}
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation intervals", err)
	}
	return intervals, nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var v queries.ReservationView
	if err := row.Scan(
		&v.ID, &v.ResourceID, &v.ResourceName, &v.OwnerID,
		&v.StartTime, &v.EndTime, &v.Status, &v.Recurrence,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

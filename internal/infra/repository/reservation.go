package repository

import (
	"context"
	"errors"
	"time"

	"labreserve/internal/domain/reservation"
	"labreserve/internal/infra"
	"labreserve/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ReservationRepository is the write-side store for reservations. The
// reservations table carries an exclusion constraint on
// (resource_id, slot) over active rows, so overlapping inserts that race
// past the in-transaction check fail at commit with a CONFLICT kind.
type ReservationRepository struct {
	db db.Querier
}

func NewReservationRepository(q db.Querier) *ReservationRepository {
	return &ReservationRepository{db: q}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	const query = `
		INSERT INTO reservations (id, resource_id, owner_id, slot, status, recurrence, created_at, updated_at)
		VALUES ($1, $2, $3, $4::tstzrange, $5, $6, now(), now())`

	_, err := r.db.Exec(ctx, query,
		res.ID(),
		res.ResourceID(),
		res.OwnerID(),
		res.Slot().ToTstzrange(),
		res.Status().String(),
		res.Recurrence().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	const query = `
		SELECT id, resource_id, owner_id, lower(slot), upper(slot), status, recurrence, created_at, updated_at
		FROM reservations
		WHERE id = $1
		FOR UPDATE`

	row := r.db.QueryRow(ctx, query, id)
	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status reservation.Status) error {
	const query = `UPDATE reservations SET status = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) HasOverlap(ctx context.Context, resourceID uuid.UUID, slot reservation.TimeSlot, excludeID *uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE resource_id = $1
			  AND status IN ('pending', 'confirmed')
			  AND slot && tstzrange($2, $3, '[)')
			  AND ($4::uuid IS NULL OR id <> $4)
		)`

	var exists bool
	err := r.db.QueryRow(ctx, query, resourceID, slot.Start(), slot.End(), excludeID).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check reservation overlap", err)
	}
	return exists, nil
}

func (r *ReservationRepository) CountConfirmed(ctx context.Context, resourceID uuid.UUID, excludeID *uuid.UUID) (int64, error) {
	const query = `
		SELECT count(*) FROM reservations
		WHERE resource_id = $1
		  AND status = 'confirmed'
		  AND ($2::uuid IS NULL OR id <> $2)`

	var count int64
	err := r.db.QueryRow(ctx, query, resourceID, excludeID).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count confirmed reservations", err)
	}
	return count, nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, resourceID, ownerID uuid.UUID
		start, end              time.Time
		status, recurrence      string
		createdAt, updatedAt    time.Time
	)
	if err := row.Scan(&id, &resourceID, &ownerID, &start, &end, &status, &recurrence, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	slot, err := reservation.NewTimeSlot(start, end)
	if err != nil {
		return nil, err
	}

	return reservation.ReconstructReservation(
		id, resourceID, ownerID,
		slot,
		reservation.Status(status),
		reservation.Recurrence(recurrence),
		createdAt, updatedAt,
	), nil
}

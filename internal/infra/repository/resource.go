package repository

import (
	"context"
	"errors"
	"time"

	"labreserve/internal/domain/resource"
	"labreserve/internal/infra"
	"labreserve/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ResourceRepository struct {
	db db.Querier
}

func NewResourceRepository(q db.Querier) *ResourceRepository {
	return &ResourceRepository{db: q}
}

// FindByIDForUpdate locks the resource row so status reconciliation
// serializes with concurrent transitions on the same resource.
func (r *ResourceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	const query = `
		SELECT id, lab_id, name, hostname, status, created_at, updated_at
		FROM resources
		WHERE id = $1
		FOR UPDATE`

	var (
		resID, labID         uuid.UUID
		name, hostname       string
		status               string
		createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&resID, &labID, &name, &hostname, &status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource", err)
	}

	return resource.ReconstructResource(resID, labID, name, hostname, resource.Status(status), createdAt, updatedAt), nil
}

func (r *ResourceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status resource.Status) error {
	const query = `UPDATE resources SET status = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update resource status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return nil
}

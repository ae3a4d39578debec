package readstore

import (
	"context"
	"errors"

	"labreserve/internal/infra"
	"labreserve/internal/infra/db"
	"labreserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ResourceReadStore struct {
	db db.Querier
}

func NewResourceReadStore(q db.Querier) *ResourceReadStore {
	return &ResourceReadStore{db: q}
}

func (s *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	const query = `
		SELECT id, lab_id, name, hostname, specs, status, created_at, updated_at
		FROM resources
		WHERE id = $1`

	view, err := scanResourceView(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource", err)
	}
	return view, nil
}

func (s *ResourceReadStore) List(ctx context.Context, filter queries.ResourceFilter) ([]*queries.ResourceView, error) {
	const query = `
		SELECT id, lab_id, name, hostname, specs, status, created_at, updated_at
		FROM resources
		WHERE ($1::uuid IS NULL OR lab_id = $1)
		  AND ($2::text = '' OR status = $2)
		ORDER BY name`

	rows, err := s.db.Query(ctx, query, filter.LabID, filter.Status)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources", err)
	}
	defer rows.Close()

	views := make([]*queries.ResourceView, 0)
	for rows.Next() {
		view, err := scanResourceView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate resource rows", err)
	}
	return views, nil
}

func (s *ResourceReadStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM resources WHERE id = $1)`

	var exists bool
	if err := s.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check resource existence", err)
	}
	return exists, nil
}

func scanResourceView(row pgx.Row) (*queries.ResourceView, error) {
	var v queries.ResourceView
	if err := row.Scan(
		&v.ID, &v.LabID, &v.Name, &v.Hostname, &v.Specs, &v.Status,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

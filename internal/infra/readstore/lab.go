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

type LabReadStore struct {
	db db.Querier
}

func NewLabReadStore(q db.Querier) *LabReadStore {
	return &LabReadStore{db: q}
}

func (s *LabReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.LabView, error) {
	const query = `
		SELECT id, name, location, capacity, opening_time, closing_time, description, created_at, updated_at
		FROM labs
		WHERE id = $1`

	view, err := scanLabView(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("lab not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find lab", err)
	}
	return view, nil
}

func (s *LabReadStore) List(ctx context.Context) ([]*queries.LabView, error) {
	const query = `
		SELECT id, name, location, capacity, opening_time, closing_time, description, created_at, updated_at
		FROM labs
		ORDER BY name`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list labs", err)
	}
	defer rows.Close()

	views := make([]*queries.LabView, 0)
	for rows.Next() {
		view, err := scanLabView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan lab row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate lab rows", err)
	}
	return views, nil
}

func scanLabView(row pgx.Row) (*queries.LabView, error) {
	var v queries.LabView
	if err := row.Scan(
		&v.ID, &v.Name, &v.Location, &v.Capacity,
		&v.OpeningTime, &v.ClosingTime, &v.Description,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

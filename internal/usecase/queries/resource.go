package queries

import (
	"context"

	"labreserve/internal/infra"
	"labreserve/internal/pkg/errs"

	"github.com/google/uuid"
)

type ResourceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	List(ctx context.Context, filter ResourceFilter) ([]*ResourceView, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type LabReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LabView, error)
	List(ctx context.Context) ([]*LabView, error)
}

// Registry reads: the engine consults resource and lab records but does not
// own them beyond the derived status field.
type RegistryQueries interface {
	GetResource(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	ListResources(ctx context.Context, filter ResourceFilter) ([]*ResourceView, error)
	GetLab(ctx context.Context, id uuid.UUID) (*LabView, error)
	ListLabs(ctx context.Context) ([]*LabView, error)
}

type registryQueriesImpl struct {
	resources ResourceReadStore
	labs      LabReadStore
}

func NewRegistryQueries(resources ResourceReadStore, labs LabReadStore) RegistryQueries {
	return &registryQueriesImpl{
		resources: resources,
		labs:      labs,
	}
}

func (q *registryQueriesImpl) GetResource(ctx context.Context, id uuid.UUID) (*ResourceView, error) {
	view, err := q.resources.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *registryQueriesImpl) ListResources(ctx context.Context, filter ResourceFilter) ([]*ResourceView, error) {
	views, err := q.resources.List(ctx, filter)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (q *registryQueriesImpl) GetLab(ctx context.Context, id uuid.UUID) (*LabView, error) {
	view, err := q.labs.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrLabNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *registryQueriesImpl) ListLabs(ctx context.Context) ([]*LabView, error) {
	views, err := q.labs.List(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

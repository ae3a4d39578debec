//go:build unit || e2e

package builder

import (
	"time"

	domresource "labreserve/internal/domain/resource"
	"labreserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type ResourceBuilder struct {
	ID        uuid.UUID
	LabID     uuid.UUID
	Name      string
	Hostname  string
	Status    domresource.Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewResourceBuilder() *ResourceBuilder {
	now := time.Now()
	return &ResourceBuilder{
		ID:        uuid.New(),
		LabID:     uuid.New(),
		Name:      "ws-01",
		Hostname:  "ws-01.lab.example.edu",
		Status:    domresource.StatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *ResourceBuilder) With(mutate func(*ResourceBuilder)) *ResourceBuilder {
	mutate(b)
	return b
}

func (b *ResourceBuilder) BuildDomain() (*domresource.Resource, error) {
	return domresource.NewResource(b.ID, b.LabID, b.Name, b.Hostname, b.Status)
}

func (b *ResourceBuilder) BuildView() *queries.ResourceView {
	return &queries.ResourceView{
		ID:        b.ID,
		LabID:     b.LabID,
		Name:      b.Name,
		Hostname:  b.Hostname,
		Status:    b.Status.String(),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

package response

import (
	"time"

	"labreserve/internal/domain/resource"
	"labreserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type ResourceResponse struct {
	ID        uuid.UUID `json:"id"`
	LabID     uuid.UUID `json:"labId"`
	Name      string    `json:"name"`
	Hostname  string    `json:"hostname"`
	Specs     *string   `json:"specs,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LabResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Capacity    int32     `json:"capacity"`
	OpeningTime string    `json:"openingTime"`
	ClosingTime string    `json:"closingTime"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromResourceView(rm *queries.ResourceView) *ResourceResponse {
	return &ResourceResponse{
		ID:        rm.ID,
		LabID:     rm.LabID,
		Name:      rm.Name,
		Hostname:  rm.Hostname,
		Specs:     rm.Specs,
		Status:    rm.Status,
		CreatedAt: rm.CreatedAt,
		UpdatedAt: rm.UpdatedAt,
	}
}

func FromResourceEntity(rsc *resource.Resource) *ResourceResponse {
	return &ResourceResponse{
		ID:        rsc.ID(),
		LabID:     rsc.LabID(),
		Name:      rsc.Name(),
		Hostname:  rsc.Hostname(),
		Status:    rsc.Status().String(),
		CreatedAt: rsc.CreatedAt(),
		UpdatedAt: rsc.UpdatedAt(),
	}
}

func FromLabView(rm *queries.LabView) *LabResponse {
	return &LabResponse{
		ID:          rm.ID,
		Name:        rm.Name,
		Location:    rm.Location,
		Capacity:    rm.Capacity,
		OpeningTime: rm.OpeningTime,
		ClosingTime: rm.ClosingTime,
		Description: rm.Description,
		CreatedAt:   rm.CreatedAt,
		UpdatedAt:   rm.UpdatedAt,
	}
}

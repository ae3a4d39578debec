package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	OwnerID      uuid.UUID `json:"owner_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	Recurrence   string    `json:"recurrence,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ResourceView struct {
	ID        uuid.UUID `json:"id"`
	LabID     uuid.UUID `json:"lab_id"`
	Name      string    `json:"name"`
	Hostname  string    `json:"hostname"`
	Specs     *string   `json:"specs,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LabView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Capacity    int32     `json:"capacity"`
	OpeningTime string    `json:"opening_time"`
	ClosingTime string    `json:"closing_time"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Interval is a slim projection of an active reservation's slot, all the
// availability calculator needs.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Slot is one cell of the daily availability grid. Not persisted.
type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

// ResourceFilter narrows registry listings; zero values mean no filter.
type ResourceFilter struct {
	LabID  *uuid.UUID
	Status string
}

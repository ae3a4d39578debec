package resource

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 255 characters)")
	ErrStatusIsDerived     = errors.New("reserved status is derived from reservations and cannot be set directly")
	ErrInvalidStatus       = errors.New("invalid resource status")
)

const (
	MaxResourceNameLength = 255
)

// Resource is a bookable workstation inside a lab. Its status mirrors the
// reservation state: the set of active reservations is the source of truth,
// status is a cached signal kept in sync by the lifecycle manager.
type Resource struct {
	id        uuid.UUID
	labID     uuid.UUID
	name      string
	hostname  string
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewResource(id, labID uuid.UUID, name, hostname string, status Status) (*Resource, error) {
	if err := validateResourceName(name); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	return &Resource{
		id:       id,
		labID:    labID,
		name:     strings.TrimSpace(name),
		hostname: hostname,
		status:   status,
	}, nil
}

func ReconstructResource(id, labID uuid.UUID, name, hostname string, status Status, createdAt, updatedAt time.Time) *Resource {
	return &Resource{
		id:        id,
		labID:     labID,
		name:      name,
		hostname:  hostname,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// MarkReserved flips a resource to reserved when a reservation is confirmed.
// Maintenance is set independently by admins and is never overridden by the
// reservation flow.
func (r *Resource) MarkReserved() bool {
	if r.status == StatusMaintenance || r.status == StatusReserved {
		return false
	}
	r.status = StatusReserved
	return true
}

// Release re-derives status after a reservation on this resource leaves the
// confirmed state. It only reverts reserved -> available, and only when no
// other confirmed reservation remains.
func (r *Resource) Release(otherConfirmedRemain bool) bool {
	if r.status != StatusReserved || otherConfirmedRemain {
		return false
	}
	r.status = StatusAvailable
	return true
}

// SetStatusByAdmin handles registry-side status updates. The reserved state
// belongs to the reservation engine and is rejected here.
func (r *Resource) SetStatusByAdmin(status Status) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	if status == StatusReserved {
		return ErrStatusIsDerived
	}
	r.status = status
	return nil
}

func validateResourceName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return ErrResourceNameTooLong
	}
	return nil
}

func (r *Resource) ID() uuid.UUID        { return r.id }
func (r *Resource) LabID() uuid.UUID     { return r.labID }
func (r *Resource) Name() string         { return r.name }
func (r *Resource) Hostname() string     { return r.hostname }
func (r *Resource) Status() Status       { return r.status }
func (r *Resource) CreatedAt() time.Time { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time { return r.updatedAt }

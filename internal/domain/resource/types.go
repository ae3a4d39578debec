package resource

type Status string

const (
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
	StatusReserved    Status = "reserved"
)

func (s Status) String() string {
	return string(s)
}

// AcceptsReservations reports whether new reservations may target a resource
// in this status. A reserved resource still takes non-overlapping slots.
func (s Status) AcceptsReservations() bool {
	return s != StatusMaintenance
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusMaintenance, StatusReserved:
		return true
	default:
		return false
	}
}

package response

import (
	"time"

	"labreserve/internal/usecase/queries"
)

type SlotResponse struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

type AvailabilityResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

type OccupiedHoursResponse struct {
	Date  string `json:"date"`
	Hours []int  `json:"hours"`
}

func FromSlots(date string, slots []queries.Slot) *AvailabilityResponse {
	out := make([]SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = SlotResponse{Start: s.Start, End: s.End, Available: s.Available}
	}
	return &AvailabilityResponse{Date: date, Slots: out}
}

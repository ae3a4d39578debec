package queries

import (
	"context"
	"sort"
	"time"

	"labreserve/internal/pkg/config"
	"labreserve/internal/pkg/errs"

	"github.com/google/uuid"
)

// ReservationIntervalReader exposes the slim reservation projections the
// availability calculator works on. Only active (pending or confirmed)
// reservations are returned.
type ReservationIntervalReader interface {
	FindActiveIntervals(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]Interval, error)
	FindActiveStartingBetween(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]Interval, error)
}

type ResourceExistenceReader interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type AvailabilityQueries interface {
	// GetAvailability partitions the daily window into fixed slots and marks
	// each one occupied when it overlaps an active reservation. The grid is
	// recomputed on every call; there is no cache to go stale.
	GetAvailability(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]Slot, error)
	// GetOccupiedHours lists the hour-of-day integers covered by active
	// reservations beginning on the given day, end-exclusive.
	GetOccupiedHours(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]int, error)
}

type availabilityQueriesImpl struct {
	intervals ReservationIntervalReader
	resources ResourceExistenceReader
	cfg       config.AvailabilityConfig
}

func NewAvailabilityQueries(
	intervals ReservationIntervalReader,
	resources ResourceExistenceReader,
	cfg config.AvailabilityConfig,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		intervals: intervals,
		resources: resources,
		cfg:       cfg,
	}
}

func (q *availabilityQueriesImpl) GetAvailability(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]Slot, error) {
	if err := q.checkResource(ctx, resourceID); err != nil {
		return nil, err
	}

	dayStart := startOfDay(date)
	windowStart := dayStart.Add(time.Duration(q.cfg.OpenHour) * time.Hour)
	windowEnd := dayStart.Add(time.Duration(q.cfg.CloseHour) * time.Hour)

	reserved, err := q.intervals.FindActiveIntervals(ctx, resourceID, windowStart, windowEnd)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slots := make([]Slot, 0, int(windowEnd.Sub(windowStart)/q.cfg.SlotDuration))
	for start := windowStart; !start.Add(q.cfg.SlotDuration).After(windowEnd); start = start.Add(q.cfg.SlotDuration) {
		end := start.Add(q.cfg.SlotDuration)
		slots = append(slots, Slot{
			Start:     start,
			End:       end,
			Available: !anyOverlap(reserved, start, end),
		})
	}
	return slots, nil
}

func (q *availabilityQueriesImpl) GetOccupiedHours(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]int, error) {
	if err := q.checkResource(ctx, resourceID); err != nil {
		return nil, err
	}

	dayStart := startOfDay(date)
	dayEnd := dayStart.Add(24 * time.Hour)

	reserved, err := q.intervals.FindActiveStartingBetween(ctx, resourceID, dayStart, dayEnd)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	seen := make(map[int]struct{})
	for _, iv := range reserved {
		for h := 0; h < 24; h++ {
			hourStart := dayStart.Add(time.Duration(h) * time.Hour)
			hourEnd := hourStart.Add(time.Hour)
			if hourStart.Before(iv.End) && hourEnd.After(iv.Start) {
				seen[h] = struct{}{}
			}
		}
	}

	hours := make([]int, 0, len(seen))
	for h := range seen {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	return hours, nil
}

func (q *availabilityQueriesImpl) checkResource(ctx context.Context, resourceID uuid.UUID) error {
	exists, err := q.resources.Exists(ctx, resourceID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !exists {
		return errs.ErrResourceNotFound
	}
	return nil
}

func anyOverlap(intervals []Interval, start, end time.Time) bool {
	for _, iv := range intervals {
		// half-open: an interval ending exactly at the slot start is no hit
		if iv.Start.Before(end) && iv.End.After(start) {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

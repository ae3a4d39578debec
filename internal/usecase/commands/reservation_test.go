//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"labreserve/internal/domain/reservation"
	"labreserve/internal/domain/resource"
	"labreserve/internal/pkg/clock"
	"labreserve/internal/pkg/errs"
	"labreserve/internal/usecase/commands"
	"labreserve/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ReservationCommandsTestSuite struct {
	suite.Suite
	store     *fakeStore
	clk       *clock.MockClock
	publisher *recordingPublisher
	commands  commands.ReservationCommands

	resourceID uuid.UUID
	ownerID    uuid.UUID
	slotStart  time.Time
	slotEnd    time.Time
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.store = newFakeStore()
	s.clk = clock.NewMockClock(time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC))
	s.publisher = &recordingPublisher{}
	s.commands = commands.NewReservationCommands(
		&fakeUoW{store: s.store},
		&fakeExpiredReader{store: s.store},
		s.clk,
		s.publisher,
	)

	rsc, err := builder.NewResourceBuilder().BuildDomain()
	s.Require().NoError(err)
	s.store.addResource(rsc)

	s.resourceID = rsc.ID()
	s.ownerID = uuid.New()
	s.slotStart = time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
	s.slotEnd = s.slotStart.Add(2 * time.Hour)
}

func (s *ReservationCommandsTestSuite) createInput(mutate ...func(*commands.CreateReservationInput)) commands.CreateReservationInput {
	input := commands.CreateReservationInput{
		ResourceID: s.resourceID,
		OwnerID:    s.ownerID,
		StartTime:  s.slotStart,
		EndTime:    s.slotEnd,
	}
	for _, m := range mutate {
		m(&input)
	}
	return input
}

func (s *ReservationCommandsTestSuite) mustCreate(mutate ...func(*commands.CreateReservationInput)) *reservation.Reservation {
	res, err := s.commands.Create(context.Background(), s.createInput(mutate...))
	s.Require().NoError(err)
	return res
}

// ================================================================================
// Create
// ================================================================================

func (s *ReservationCommandsTestSuite) TestCreate() {
	res := s.mustCreate()

	s.Equal(reservation.StatusPending, res.Status())
	s.Equal(s.resourceID, res.ResourceID())
	s.Equal(s.ownerID, res.OwnerID())
	s.NotNil(s.store.reservation(res.ID()))
	s.Equal([]string{commands.EventReservationCreated}, s.publisher.types())

	// create does not touch the resource status
	s.Equal(resource.StatusAvailable, s.store.resource(s.resourceID).Status())
}

func (s *ReservationCommandsTestSuite) TestCreateValidation() {
	s.Run("unknown resource", func() {
		_, err := s.commands.Create(context.Background(), s.createInput(func(in *commands.CreateReservationInput) {
			in.ResourceID = uuid.New()
		}))
		s.True(errs.Is(err, errs.ErrResourceNotFound), "unexpected error: %v", err)
	})

	s.Run("start not before end", func() {
		_, err := s.commands.Create(context.Background(), s.createInput(func(in *commands.CreateReservationInput) {
			in.EndTime = in.StartTime
		}))
		s.True(errs.Is(err, errs.ErrInvalidTimeSlot), "unexpected error: %v", err)
	})

	s.Run("invalid recurrence", func() {
		_, err := s.commands.Create(context.Background(), s.createInput(func(in *commands.CreateReservationInput) {
			in.Recurrence = "yearly"
		}))
		s.True(errs.Is(err, errs.ErrInvalidRecurrence), "unexpected error: %v", err)
	})

	s.Run("maintenance resource", func() {
		rsc, err := builder.NewResourceBuilder().With(func(b *builder.ResourceBuilder) {
			b.Status = resource.StatusMaintenance
		}).BuildDomain()
		s.Require().NoError(err)
		s.store.addResource(rsc)

		_, err = s.commands.Create(context.Background(), s.createInput(func(in *commands.CreateReservationInput) {
			in.ResourceID = rsc.ID()
		}))
		s.True(errs.Is(err, errs.ErrResourceStatusNotAllowed), "unexpected error: %v", err)
	})
}

func (s *ReservationCommandsTestSuite) TestCreateConflicts() {
	s.mustCreate()

	s.Run("overlapping slot is rejected", func() {
		_, err := s.commands.Create(context.Background(), s.createInput(func(in *commands.CreateReservationInput) {
			in.StartTime = s.slotStart.Add(time.Hour)
			in.EndTime = s.slotEnd.Add(time.Hour)
		}))
		s.True(errs.Is(err, errs.ErrReservationConflict), "unexpected error: %v", err)
	})

	s.Run("back-to-back slot is accepted", func() {
		_, err := s.commands.Create(context.Background(), s.createInput(func(in *commands.CreateReservationInput) {
			in.StartTime = s.slotEnd
			in.EndTime = s.slotEnd.Add(time.Hour)
		}))
		s.NoError(err)
	})

	s.Run("same slot on another resource is accepted", func() {
		other, err := builder.NewResourceBuilder().BuildDomain()
		s.Require().NoError(err)
		s.store.addResource(other)

		_, err = s.commands.Create(context.Background(), s.createInput(func(in *commands.CreateReservationInput) {
			in.ResourceID = other.ID()
		}))
		s.NoError(err)
	})
}

func (s *ReservationCommandsTestSuite) TestCreateAfterCancelReleasesSlot() {
	res := s.mustCreate()

	_, err := s.commands.Cancel(context.Background(), res.ID(), s.ownerID, false)
	s.Require().NoError(err)

	// the cancelled reservation no longer blocks the slot
	_, err = s.commands.Create(context.Background(), s.createInput())
	s.NoError(err)
}

func (s *ReservationCommandsTestSuite) TestConcurrentCreateExactlyOneWins() {
	const attempts = 8

	var wg sync.WaitGroup
	errsCh := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.commands.Create(context.Background(), s.createInput(func(in *commands.CreateReservationInput) {
				in.OwnerID = uuid.New()
			}))
			errsCh <- err
		}()
	}
	wg.Wait()
	close(errsCh)

	succeeded, conflicted := 0, 0
	for err := range errsCh {
		switch {
		case err == nil:
			succeeded++
		default:
			s.True(errs.Is(err, errs.ErrReservationConflict), "unexpected error: %v", err)
			conflicted++
		}
	}
	s.Equal(1, succeeded)
	s.Equal(attempts-1, conflicted)
}

// ================================================================================
// Confirm
// ================================================================================

func (s *ReservationCommandsTestSuite) TestConfirm() {
	res := s.mustCreate()

	confirmed, err := s.commands.Confirm(context.Background(), res.ID())
	s.Require().NoError(err)

	s.Equal(reservation.StatusConfirmed, confirmed.Status())
	s.Equal(resource.StatusReserved, s.store.resource(s.resourceID).Status())
	s.Equal([]string{
		commands.EventReservationCreated,
		commands.EventReservationConfirmed,
		commands.EventResourceStatusChanged,
	}, s.publisher.types())
}

func (s *ReservationCommandsTestSuite) TestConfirmDoesNotOverrideMaintenance() {
	res := s.mustCreate()

	s.Require().NoError(s.store.resource(s.resourceID).SetStatusByAdmin(resource.StatusMaintenance))

	confirmed, err := s.commands.Confirm(context.Background(), res.ID())
	s.Require().NoError(err)

	s.Equal(reservation.StatusConfirmed, confirmed.Status())
	s.Equal(resource.StatusMaintenance, s.store.resource(s.resourceID).Status())
	s.NotContains(s.publisher.types(), commands.EventResourceStatusChanged)
}

func (s *ReservationCommandsTestSuite) TestConfirmTransitions() {
	s.Run("unknown reservation", func() {
		_, err := s.commands.Confirm(context.Background(), uuid.New())
		s.True(errs.Is(err, errs.ErrReservationNotFound), "unexpected error: %v", err)
	})

	s.Run("already confirmed", func() {
		res := s.mustCreate()
		_, err := s.commands.Confirm(context.Background(), res.ID())
		s.Require().NoError(err)

		_, err = s.commands.Confirm(context.Background(), res.ID())
		s.True(errs.Is(err, errs.ErrInvalidTransition), "unexpected error: %v", err)
	})

	s.Run("cancelled", func() {
		res := s.mustCreate(func(in *commands.CreateReservationInput) {
			in.StartTime = s.slotStart.Add(24 * time.Hour)
			in.EndTime = s.slotEnd.Add(24 * time.Hour)
		})
		_, err := s.commands.Cancel(context.Background(), res.ID(), s.ownerID, false)
		s.Require().NoError(err)

		_, err = s.commands.Confirm(context.Background(), res.ID())
		s.True(errs.Is(err, errs.ErrInvalidTransition), "unexpected error: %v", err)
	})
}

// ================================================================================
// Cancel
// ================================================================================

func (s *ReservationCommandsTestSuite) TestCancelPendingLeavesResourceUntouched() {
	res := s.mustCreate()

	cancelled, err := s.commands.Cancel(context.Background(), res.ID(), s.ownerID, false)
	s.Require().NoError(err)

	s.Equal(reservation.StatusCancelled, cancelled.Status())
	s.Equal(resource.StatusAvailable, s.store.resource(s.resourceID).Status())
}

func (s *ReservationCommandsTestSuite) TestCancelConfirmedReleasesResource() {
	res := s.mustCreate()
	_, err := s.commands.Confirm(context.Background(), res.ID())
	s.Require().NoError(err)
	s.Equal(resource.StatusReserved, s.store.resource(s.resourceID).Status())

	_, err = s.commands.Cancel(context.Background(), res.ID(), s.ownerID, false)
	s.Require().NoError(err)
	s.Equal(resource.StatusAvailable, s.store.resource(s.resourceID).Status())
}

func (s *ReservationCommandsTestSuite) TestCancelKeepsResourceReservedWhileOthersRemain() {
	first := s.mustCreate()
	second := s.mustCreate(func(in *commands.CreateReservationInput) {
		in.StartTime = s.slotEnd
		in.EndTime = s.slotEnd.Add(time.Hour)
	})

	_, err := s.commands.Confirm(context.Background(), first.ID())
	s.Require().NoError(err)
	_, err = s.commands.Confirm(context.Background(), second.ID())
	s.Require().NoError(err)

	_, err = s.commands.Cancel(context.Background(), first.ID(), s.ownerID, false)
	s.Require().NoError(err)

	// the other confirmed reservation still holds the resource
	s.Equal(resource.StatusReserved, s.store.resource(s.resourceID).Status())
}

func (s *ReservationCommandsTestSuite) TestCancelOwnership() {
	s.Run("non-owner is rejected", func() {
		res := s.mustCreate()
		_, err := s.commands.Cancel(context.Background(), res.ID(), uuid.New(), false)
		s.True(errs.Is(err, errs.ErrNotOwner), "unexpected error: %v", err)
		s.Equal(reservation.StatusPending, s.store.reservation(res.ID()).Status())
	})

	s.Run("admin may cancel any reservation", func() {
		res := s.mustCreate(func(in *commands.CreateReservationInput) {
			in.StartTime = s.slotStart.Add(48 * time.Hour)
			in.EndTime = s.slotEnd.Add(48 * time.Hour)
		})
		cancelled, err := s.commands.Cancel(context.Background(), res.ID(), uuid.New(), true)
		s.Require().NoError(err)
		s.Equal(reservation.StatusCancelled, cancelled.Status())
	})

	s.Run("terminal reservation", func() {
		res := s.mustCreate(func(in *commands.CreateReservationInput) {
			in.StartTime = s.slotStart.Add(72 * time.Hour)
			in.EndTime = s.slotEnd.Add(72 * time.Hour)
		})
		_, err := s.commands.Cancel(context.Background(), res.ID(), s.ownerID, false)
		s.Require().NoError(err)

		_, err = s.commands.Cancel(context.Background(), res.ID(), s.ownerID, false)
		s.True(errs.Is(err, errs.ErrInvalidTransition), "unexpected error: %v", err)
	})
}

// ================================================================================
// Complete
// ================================================================================

func (s *ReservationCommandsTestSuite) TestComplete() {
	res := s.mustCreate()
	_, err := s.commands.Confirm(context.Background(), res.ID())
	s.Require().NoError(err)

	s.Run("before slot end", func() {
		s.clk.Set(s.slotEnd.Add(-time.Minute))
		_, err := s.commands.Complete(context.Background(), res.ID())
		s.True(errs.Is(err, errs.ErrInvalidTransition), "unexpected error: %v", err)
	})

	s.Run("after slot end", func() {
		s.clk.Set(s.slotEnd)
		completed, err := s.commands.Complete(context.Background(), res.ID())
		s.Require().NoError(err)
		s.Equal(reservation.StatusCompleted, completed.Status())
		s.Equal(resource.StatusAvailable, s.store.resource(s.resourceID).Status())
	})

	s.Run("pending reservation", func() {
		pending := s.mustCreate(func(in *commands.CreateReservationInput) {
			in.StartTime = s.slotStart.Add(24 * time.Hour)
			in.EndTime = s.slotEnd.Add(24 * time.Hour)
		})
		s.clk.Set(s.slotEnd.Add(48 * time.Hour))
		_, err := s.commands.Complete(context.Background(), pending.ID())
		s.True(errs.Is(err, errs.ErrInvalidTransition), "unexpected error: %v", err)
	})
}

// ================================================================================
// CompleteExpired
// ================================================================================

func (s *ReservationCommandsTestSuite) TestCompleteExpired() {
	elapsed := s.mustCreate()
	_, err := s.commands.Confirm(context.Background(), elapsed.ID())
	s.Require().NoError(err)

	running := s.mustCreate(func(in *commands.CreateReservationInput) {
		in.StartTime = s.slotEnd
		in.EndTime = s.slotEnd.Add(3 * time.Hour)
	})
	_, err = s.commands.Confirm(context.Background(), running.ID())
	s.Require().NoError(err)

	pending := s.mustCreate(func(in *commands.CreateReservationInput) {
		in.StartTime = s.slotStart.Add(-3 * time.Hour)
		in.EndTime = s.slotStart.Add(-time.Hour)
	})

	s.clk.Set(s.slotEnd.Add(time.Minute))

	n, err := s.commands.CompleteExpired(context.Background())
	s.Require().NoError(err)
	s.Equal(1, n)

	s.Equal(reservation.StatusCompleted, s.store.reservation(elapsed.ID()).Status())
	s.Equal(reservation.StatusConfirmed, s.store.reservation(running.ID()).Status())
	// pending reservations are never swept, even when elapsed
	s.Equal(reservation.StatusPending, s.store.reservation(pending.ID()).Status())

	// the still-confirmed reservation keeps the resource reserved
	s.Equal(resource.StatusReserved, s.store.resource(s.resourceID).Status())
}

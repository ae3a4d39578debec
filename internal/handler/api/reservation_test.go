//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"labreserve/internal/domain/reservation"
	"labreserve/internal/handler/api"
	"labreserve/internal/pkg/errs"
	"labreserve/internal/usecase/commands"
	"labreserve/internal/usecase/queries"
	"labreserve/tests/common/builder"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// stubReservationCommands lets each test pin the outcome of one command call.
type stubReservationCommands struct {
	createFn   func(ctx context.Context, input commands.CreateReservationInput) (*reservation.Reservation, error)
	confirmFn  func(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	cancelFn   func(ctx context.Context, id, actorID uuid.UUID, isAdmin bool) (*reservation.Reservation, error)
	completeFn func(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
}

func (s *stubReservationCommands) Create(ctx context.Context, input commands.CreateReservationInput) (*reservation.Reservation, error) {
	return s.createFn(ctx, input)
}

func (s *stubReservationCommands) Confirm(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return s.confirmFn(ctx, id)
}

func (s *stubReservationCommands) Cancel(ctx context.Context, id, actorID uuid.UUID, isAdmin bool) (*reservation.Reservation, error) {
	return s.cancelFn(ctx, id, actorID, isAdmin)
}

func (s *stubReservationCommands) Complete(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return s.completeFn(ctx, id)
}

func (s *stubReservationCommands) CompleteExpired(context.Context) (int, error) {
	return 0, nil
}

type stubReservationQueries struct {
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
	listByOwnerFn func(ctx context.Context, ownerID uuid.UUID) ([]*queries.ReservationView, error)
}

func (s *stubReservationQueries) GetByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubReservationQueries) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.ReservationView, error) {
	return s.listByOwnerFn(ctx, ownerID)
}

type ReservationHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubReservationCommands
	queries  *stubReservationQueries
	userID   uuid.UUID
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.commands = &stubReservationCommands{}
	s.queries = &stubReservationQueries{}
	s.userID = uuid.New()

	handler := api.NewReservationHandler(s.commands, s.queries)

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		c.Set("user_id", s.userID)
		c.Next()
	}

	group := s.router.Group("/reservations", authMiddleware)
	group.POST("", handler.CreateReservation)
	group.GET("", handler.GetUserReservations)
	group.GET("/:id", handler.GetReservation)
	group.POST("/:id/confirm", handler.ConfirmReservation)
	group.POST("/:id/cancel", handler.CancelReservation)
	group.POST("/:id/complete", handler.CompleteReservation)
}

func (s *ReservationHandlerTestSuite) request(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	reqBody := builder.NewReservationBuilder().BuildCreateRequestDTO()

	s.Run("created", func() {
		s.commands.createFn = func(_ context.Context, input commands.CreateReservationInput) (*reservation.Reservation, error) {
			s.Equal(s.userID, input.OwnerID)
			s.Equal(reqBody.ResourceID, input.ResourceID)
			return builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
				b.ResourceID = reqBody.ResourceID
				b.OwnerID = s.userID
			}).BuildDomain()
		}

		w := s.request(http.MethodPost, "/reservations", reqBody)
		s.Equal(http.StatusCreated, w.Code)
		s.Contains(w.Body.String(), "pending")
	})

	s.Run("command errors map to status codes", func() {
		cases := []struct {
			name string
			err  error
			code int
		}{
			{"resource missing", errs.ErrResourceNotFound, http.StatusNotFound},
			{"invalid slot", errs.ErrInvalidTimeSlot, http.StatusBadRequest},
			{"invalid recurrence", errs.ErrInvalidRecurrence, http.StatusBadRequest},
			{"maintenance", errs.ErrResourceStatusNotAllowed, http.StatusUnprocessableEntity},
			{"conflict", errs.ErrReservationConflict, http.StatusConflict},
			{"db failure", errs.ErrDatabaseOperationFailed, http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.commands.createFn = func(context.Context, commands.CreateReservationInput) (*reservation.Reservation, error) {
					return nil, tc.err
				}
				w := s.request(http.MethodPost, "/reservations", reqBody)
				s.Equal(tc.code, w.Code)
			})
		}
	})

	s.Run("malformed body", func() {
		req := httptest.NewRequest(http.MethodPost, "/reservations", bytes.NewBufferString("{"))
		req.Header.Set("Authorization", "Bearer test-token")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("missing token", func() {
		req := httptest.NewRequest(http.MethodPost, "/reservations", nil)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	view := builder.NewReservationBuilder().BuildView()

	s.Run("found", func() {
		s.queries.getByIDFn = func(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
			s.Equal(view.ID, id)
			return view, nil
		}
		w := s.request(http.MethodGet, "/reservations/"+view.ID.String(), nil)
		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), view.ResourceName)
	})

	s.Run("not found", func() {
		s.queries.getByIDFn = func(context.Context, uuid.UUID) (*queries.ReservationView, error) {
			return nil, errs.ErrReservationNotFound
		}
		w := s.request(http.MethodGet, "/reservations/"+uuid.NewString(), nil)
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("malformed id", func() {
		w := s.request(http.MethodGet, "/reservations/not-a-uuid", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestGetUserReservations() {
	s.queries.listByOwnerFn = func(_ context.Context, ownerID uuid.UUID) ([]*queries.ReservationView, error) {
		s.Equal(s.userID, ownerID)
		return []*queries.ReservationView{
			builder.NewReservationBuilder().BuildView(),
			builder.NewReservationBuilder().BuildView(),
		}, nil
	}

	w := s.request(http.MethodGet, "/reservations", nil)
	s.Equal(http.StatusOK, w.Code)

	var got []json.RawMessage
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Len(got, 2)
}

func (s *ReservationHandlerTestSuite) TestTransitions() {
	res, err := builder.NewReservationBuilder().BuildDomain()
	s.Require().NoError(err)
	s.Require().NoError(res.Confirm())

	s.Run("confirm", func() {
		s.commands.confirmFn = func(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
			s.Equal(res.ID(), id)
			return res, nil
		}
		w := s.request(http.MethodPost, "/reservations/"+res.ID().String()+"/confirm", nil)
		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), "confirmed")
	})

	s.Run("confirm invalid transition", func() {
		s.commands.confirmFn = func(context.Context, uuid.UUID) (*reservation.Reservation, error) {
			return nil, errs.ErrInvalidTransition
		}
		w := s.request(http.MethodPost, "/reservations/"+uuid.NewString()+"/confirm", nil)
		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("cancel passes actor identity", func() {
		s.commands.cancelFn = func(_ context.Context, _ uuid.UUID, actorID uuid.UUID, isAdmin bool) (*reservation.Reservation, error) {
			s.Equal(s.userID, actorID)
			s.False(isAdmin)
			return res, nil
		}
		w := s.request(http.MethodPost, "/reservations/"+res.ID().String()+"/cancel", nil)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("cancel by non-owner", func() {
		s.commands.cancelFn = func(context.Context, uuid.UUID, uuid.UUID, bool) (*reservation.Reservation, error) {
			return nil, errs.ErrNotOwner
		}
		w := s.request(http.MethodPost, "/reservations/"+uuid.NewString()+"/cancel", nil)
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("complete not yet elapsed", func() {
		s.commands.completeFn = func(context.Context, uuid.UUID) (*reservation.Reservation, error) {
			return nil, errs.ErrInvalidTransition
		}
		w := s.request(http.MethodPost, "/reservations/"+uuid.NewString()+"/complete", nil)
		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("unknown reservation", func() {
		s.commands.confirmFn = func(context.Context, uuid.UUID) (*reservation.Reservation, error) {
			return nil, errs.ErrReservationNotFound
		}
		w := s.request(http.MethodPost, "/reservations/"+uuid.NewString()+"/confirm", nil)
		s.Equal(http.StatusNotFound, w.Code)
	})
}

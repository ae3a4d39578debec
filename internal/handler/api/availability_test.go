//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"labreserve/internal/handler/api"
	"labreserve/internal/pkg/errs"
	"labreserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubAvailabilityQueries struct {
	getAvailabilityFn  func(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]queries.Slot, error)
	getOccupiedHoursFn func(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]int, error)
}

func (s *stubAvailabilityQueries) GetAvailability(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]queries.Slot, error) {
	return s.getAvailabilityFn(ctx, resourceID, date)
}

func (s *stubAvailabilityQueries) GetOccupiedHours(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]int, error) {
	return s.getOccupiedHoursFn(ctx, resourceID, date)
}

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router  *gin.Engine
	queries *stubAvailabilityQueries
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.queries = &stubAvailabilityQueries{}

	handler := api.NewAvailabilityHandler(s.queries)
	s.router.GET("/resources/:id/availability", handler.GetAvailability)
	s.router.GET("/resources/:id/occupied-hours", handler.GetOccupiedHours)
}

func (s *AvailabilityHandlerTestSuite) get(url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func (s *AvailabilityHandlerTestSuite) TestGetAvailability() {
	resourceID := uuid.New()

	s.Run("returns grid", func() {
		start := time.Date(2024, 6, 10, 7, 0, 0, 0, time.UTC)
		s.queries.getAvailabilityFn = func(_ context.Context, id uuid.UUID, date time.Time) ([]queries.Slot, error) {
			s.Equal(resourceID, id)
			s.Equal(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), date)
			return []queries.Slot{
				{Start: start, End: start.Add(time.Hour), Available: true},
				{Start: start.Add(time.Hour), End: start.Add(2 * time.Hour), Available: false},
			}, nil
		}

		w := s.get("/resources/" + resourceID.String() + "/availability?date=2024-06-10")
		s.Equal(http.StatusOK, w.Code)

		var body struct {
			Date  string `json:"date"`
			Slots []struct {
				Available bool `json:"available"`
			} `json:"slots"`
		}
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
		s.Equal("2024-06-10", body.Date)
		s.Require().Len(body.Slots, 2)
		s.True(body.Slots[0].Available)
		s.False(body.Slots[1].Available)
	})

	s.Run("missing date", func() {
		w := s.get("/resources/" + resourceID.String() + "/availability")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("malformed date", func() {
		w := s.get("/resources/" + resourceID.String() + "/availability?date=06-10-2024")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("malformed resource id", func() {
		w := s.get("/resources/nope/availability?date=2024-06-10")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unknown resource", func() {
		s.queries.getAvailabilityFn = func(context.Context, uuid.UUID, time.Time) ([]queries.Slot, error) {
			return nil, errs.ErrResourceNotFound
		}
		w := s.get("/resources/" + uuid.NewString() + "/availability?date=2024-06-10")
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *AvailabilityHandlerTestSuite) TestGetOccupiedHours() {
	resourceID := uuid.New()

	s.Run("returns hours", func() {
		s.queries.getOccupiedHoursFn = func(_ context.Context, id uuid.UUID, _ time.Time) ([]int, error) {
			s.Equal(resourceID, id)
			return []int{14, 15}, nil
		}

		w := s.get("/resources/" + resourceID.String() + "/occupied-hours?date=2024-06-10")
		s.Equal(http.StatusOK, w.Code)

		var body struct {
			Date  string `json:"date"`
			Hours []int  `json:"hours"`
		}
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
		s.Equal("2024-06-10", body.Date)
		s.Equal([]int{14, 15}, body.Hours)
	})

	s.Run("unknown resource", func() {
		s.queries.getOccupiedHoursFn = func(context.Context, uuid.UUID, time.Time) ([]int, error) {
			return nil, errs.ErrResourceNotFound
		}
		w := s.get("/resources/" + uuid.NewString() + "/occupied-hours?date=2024-06-10")
		s.Equal(http.StatusNotFound, w.Code)
	})
}

//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// DBLike is the slice of pgxpool.Pool the fixtures need.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestLab(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	labID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO labs (id, name, location, capacity) VALUES ($1, $2, 'Building A', 20)",
		labID, name)
	require.NoError(t, err)

	return labID
}

func CreateTestResource(t *testing.T, db DBLike, labID uuid.UUID, name, status string) uuid.UUID {
	t.Helper()

	resourceID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO resources (id, lab_id, name, hostname, status) VALUES ($1, $2, $3, $4, $5)",
		resourceID, labID, name, name+".lab.example.edu", status)
	require.NoError(t, err)

	return resourceID
}

func CreateTestReservation(t *testing.T, db DBLike, resourceID, ownerID uuid.UUID, start, end time.Time, status string) uuid.UUID {
	t.Helper()

	reservationID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO reservations (id, resource_id, owner_id, slot, status) VALUES ($1, $2, $3, tstzrange($4, $5, '[)'), $6)",
		reservationID, resourceID, ownerID, start, end, status)
	require.NoError(t, err)

	return reservationID
}

// GetResourceStatus reads the current status column directly, bypassing the API.
func GetResourceStatus(t *testing.T, db DBLike, resourceID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(),
		"SELECT status FROM resources WHERE id = $1", resourceID).Scan(&status)
	require.NoError(t, err)

	return status
}

// GetReservationStatus reads a reservation's status column directly.
func GetReservationStatus(t *testing.T, db DBLike, reservationID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(),
		"SELECT status FROM reservations WHERE id = $1", reservationID).Scan(&status)
	require.NoError(t, err)

	return status
}

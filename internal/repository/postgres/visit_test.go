package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalar/visitas-api/internal/model"
	"github.com/hospitalar/visitas-api/internal/repository"
)

func TestVisitRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVisitRepository(db)

	visit := &model.Visit{
		ID:          uuid.New(),
		PatientID:   uuid.New(),
		VisitorName: "Bruno",
		VisitorDoc:  "12345",
	}

	mock.ExpectExec(`INSERT INTO visits`).
		WithArgs(visit.ID, visit.PatientID, "Bruno", "12345", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), visit))
	assert.False(t, visit.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVisitRepository_ListRecent_JoinsPatientName(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVisitRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "patient_id", "visitor_name", "visitor_doc", "created_at", "patient_name"}).
		AddRow(uuid.New(), uuid.New(), "Bruno", "12345", now, "Ana").
		AddRow(uuid.New(), uuid.New(), "Carla", "67890", now.Add(-time.Hour), "Davi")

	mock.ExpectQuery(`ORDER BY v.created_at DESC`).
		WithArgs(10).
		WillReturnRows(rows)

	visits, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, visits, 2)
	assert.Equal(t, "Bruno", visits[0].VisitorName)
	assert.Equal(t, "Ana", visits[0].PatientName)
	assert.Equal(t, "Davi", visits[1].PatientName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVisitRepository_FindLatestVisitorNameByDoc(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVisitRepository(db)

	mock.ExpectQuery(`SELECT visitor_name FROM visits`).
		WithArgs("12345").
		WillReturnRows(sqlmock.NewRows([]string{"visitor_name"}).AddRow("Bruno"))

	name, err := repo.FindLatestVisitorNameByDoc(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, "Bruno", name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVisitRepository_FindLatestVisitorNameByDoc_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVisitRepository(db)

	mock.ExpectQuery(`SELECT visitor_name FROM visits`).
		WithArgs("99999").
		WillReturnRows(sqlmock.NewRows([]string{"visitor_name"}))

	_, err := repo.FindLatestVisitorNameByDoc(context.Background(), "99999")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVisitRepository_CountSince(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVisitRepository(db)

	since := time.Now().Truncate(24 * time.Hour)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM visits WHERE created_at >= \$1`).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountSince(context.Background(), since)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

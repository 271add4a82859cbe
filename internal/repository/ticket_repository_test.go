package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskops/perf-api/internal/models"
)

func ticketRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "agent_id", "agent_firstname", "agent_lastname",
		"sub_category", "state", "date_create", "date_res",
	})
}

func TestTicketRepositoryListCreatedInRange(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTicketRepository(db)

	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)
	created := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)

	rows := ticketRows().
		AddRow(10, 1, "Anna", "Berg", "ajout login", 3, created, created.Add(2*time.Hour)).
		AddRow(11, nil, nil, nil, "installation logiciel", 5, created, nil)
	mock.ExpectQuery("SELECT i.id").
		WithArgs(start, end).
		WillReturnRows(rows)

	tickets, err := repo.ListCreatedInRange(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.True(t, tickets[0].Assigned())
	assert.Equal(t, "Anna Berg", tickets[0].AgentName())
	assert.False(t, tickets[1].Assigned())
	assert.Equal(t, models.StatusUnassigned, tickets[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepositoryListResolvedInRange(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTicketRepository(db)

	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)
	created := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)

	rows := ticketRows().
		AddRow(10, 1, "Anna", "Berg", "demande de rib", 3, created, created.Add(3*time.Hour))
	mock.ExpectQuery("SELECT i.id").
		WithArgs(3, 4, start, end).
		WillReturnRows(rows)

	tickets, err := repo.ListResolvedInRange(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.True(t, tickets[0].ResolutionValid())
	assert.NoError(t, mock.ExpectationsWereMet())
}

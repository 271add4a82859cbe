package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAgentRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAgentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "firstname", "lastname", "role", "function", "phone", "mail"}).
		AddRow(1, "Anna", "Berg", "admin", "Chef de service", nil, "anna@desk.example").
		AddRow(2, "Karim", "Said", "agent", "Technicien", "0555", "karim@desk.example")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, firstname, lastname, role, function, phone, mail FROM tusers ORDER BY lastname, firstname")).
		WillReturnRows(rows)

	agents, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, agents, 2)
	assert.Equal(t, "Anna Berg", agents[0].FullName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgentRepositoryFindByIDNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAgentRepository(db)

	mock.ExpectQuery("SELECT id, firstname, lastname, role, function, phone, mail FROM tusers WHERE id").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgentRepositorySearchByName(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAgentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "firstname", "lastname", "role", "function", "phone", "mail"}).
		AddRow(2, "Karim", "Said", "agent", "Technicien", nil, "karim@desk.example")
	mock.ExpectQuery("SELECT id, firstname, lastname, role, function, phone, mail FROM tusers WHERE LOWER").
		WithArgs("karim").
		WillReturnRows(rows)

	agents, err := repo.SearchByName(context.Background(), "karim")
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, int64(2), agents[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgentRepositoryTicketStats(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAgentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "function", "total", "resolved"}).
		AddRow(1, "Anna Berg", "Chef de service", 12, 9).
		AddRow(2, "Karim Said", "Technicien", 4, 4)
	mock.ExpectQuery("SELECT u.id").
		WithArgs(3, 4).
		WillReturnRows(rows)

	stats, err := repo.TicketStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, 9, stats[0].Resolved)
	assert.Equal(t, 12, stats[0].Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/algorithmia/internal/model"
)

func TestSavePlayer_ConflictRollsBack(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE players SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	p := model.NewPlayer("Aria", "aria@example.com", "hash", model.RolePlayer)
	p.ID = 1
	p.Version = 3

	err = SavePlayer(context.Background(), database, p)
	assert.ErrorIs(t, err, model.ErrConflict)
	assert.Equal(t, int64(3), p.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavePlayer_InventoryFailureRollsBack(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	diskFull := errors.New("disk I/O error")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE players SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM player_inventory").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO player_inventory").WillReturnError(diskFull)
	mock.ExpectRollback()

	p := model.NewPlayer("Aria", "aria@example.com", "hash", model.RolePlayer)
	p.ID = 1
	p.Version = 1
	p.Inventory.Add(7, 2)

	err = SavePlayer(context.Background(), database, p)
	assert.ErrorIs(t, err, diskFull)
	assert.Equal(t, int64(1), p.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPlayer_QueryFailure(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	mock.ExpectQuery("FROM players WHERE id").
		WithArgs(int64(1)).
		WillReturnError(errors.New("database is locked"))

	p, err := GetPlayer(context.Background(), database, 1)
	assert.Error(t, err)
	assert.Nil(t, p)
	assert.Contains(t, err.Error(), "getting player")
	assert.NoError(t, mock.ExpectationsWereMet())
}

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/grain/internal/client/repositories/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLPersistence_SaveLoadClear(t *testing.T) {
	e := newEnv(t)
	p := NewSQLPersistence(e.db, e.repo)
	ctx := context.Background()

	token, record, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, record)

	require.NoError(t, p.Save(ctx, "tok", []byte(`{"id":1}`)))
	token, record, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.JSONEq(t, `{"id":1}`, string(record))

	require.NoError(t, p.Clear(ctx))
	require.NoError(t, p.Clear(ctx))
	token, record, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, record)
}

func TestSQLPersistence_SaveIsAllOrNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO metadata`).WithArgs(TokenKey, []byte("tok")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO metadata`).WithArgs(UserKey, []byte("{}")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	p := NewSQLPersistence(db, metadata.NewSQLiteRepository(db))
	err = p.Save(context.Background(), "tok", []byte("{}"))
	require.ErrorContains(t, err, "save session")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLPersistence_ClearDeletesBothKeysAtOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM metadata WHERE key IN`).WithArgs(TokenKey, UserKey).
		WillReturnResult(sqlmock.NewResult(0, 2))

	p := NewSQLPersistence(db, metadata.NewSQLiteRepository(db))
	require.NoError(t, p.Clear(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

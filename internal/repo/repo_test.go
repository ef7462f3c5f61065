package repo

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*PostgresUserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresUserDB(db), mock
}

func TestCreateUser(t *testing.T) {
	insert := regexp.QuoteMeta("INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id")

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantID  int
		wantErr error
	}{
		{
			name: "created",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(insert).WithArgs("ivan", "ivan@example.com", "hash").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
			},
			wantID: 7,
		},
		{
			name: "duplicate login",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(insert).WithArgs("ivan", "ivan@example.com", "hash").
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: ErrUserExists,
		},
		{
			name: "driver failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(insert).WillReturnError(errors.New("connection reset"))
			},
			wantErr: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, mock := newMock(t)
			tt.setup(mock)

			id, err := r.CreateUser(context.Background(), "ivan", "ivan@example.com", "hash")
			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			case errors.Is(tt.wantErr, ErrUserExists):
				assert.ErrorIs(t, err, ErrUserExists)
			default:
				assert.EqualError(t, err, tt.wantErr.Error())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetByLogin(t *testing.T) {
	query := regexp.QuoteMeta("SELECT id, password FROM users WHERE login=$1")

	t.Run("found", func(t *testing.T) {
		r, mock := newMock(t)
		mock.ExpectQuery(query).WithArgs("ivan").
			WillReturnRows(sqlmock.NewRows([]string{"id", "password"}).AddRow(7, "hash"))

		id, hash, err := r.GetByLogin(context.Background(), "ivan")
		require.NoError(t, err)
		assert.Equal(t, 7, id)
		assert.Equal(t, "hash", hash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		r, mock := newMock(t)
		mock.ExpectQuery(query).WithArgs("nobody").
			WillReturnRows(sqlmock.NewRows([]string{"id", "password"}))

		_, _, err := r.GetByLogin(context.Background(), "nobody")
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEnsureSchema(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, r.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapi/internal/config"
)

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// stubOpen makes NewPostgres use db (or fail with err) instead of dialing.
func stubOpen(t *testing.T, db *sql.DB, err error) {
	t.Helper()
	orig := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) { return db, err }
	t.Cleanup(func() { sqlOpen = orig })
}

var localTodoDB = config.DatabaseConfig{
	Host:               "localhost",
	Port:               "5432",
	User:               "todo",
	Password:           "secret",
	Name:               "todo_db",
	MaxOpenConns:       10,
	MaxIdleConns:       5,
	ConnMaxLifetimeSec: 300,
}

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.DatabaseConfig
		want    string
		wantErr string
	}{
		{
			name: "password and sslmode",
			cfg:  config.DatabaseConfig{Host: "db", Port: "5432", User: "todo", Password: "p@ss", Name: "todo_db", SSLMode: "disable"},
			want: "postgres://todo:p%40ss@db:5432/todo_db?sslmode=disable",
		},
		{
			name: "no password",
			cfg:  config.DatabaseConfig{Host: "db", Port: "5432", User: "todo", Name: "todo_db", SSLMode: "require"},
			want: "postgres://todo@db:5432/todo_db?sslmode=require",
		},
		{
			name: "no sslmode",
			cfg:  config.DatabaseConfig{Host: "db", Port: "5432", User: "todo", Name: "todo_db"},
			want: "postgres://todo@db:5432/todo_db",
		},
		{
			name: "ipv6 host",
			cfg:  config.DatabaseConfig{Host: "::1", Port: "5432", User: "todo", Name: "todo_db"},
			want: "postgres://todo@[::1]:5432/todo_db",
		},
		{
			name:    "missing host and user",
			cfg:     config.DatabaseConfig{Port: "5432", Name: "todo_db"},
			wantErr: "postgres config: missing DB_HOST, DB_USER",
		},
		{
			name:    "empty config",
			wantErr: "postgres config: missing DB_HOST, DB_PORT, DB_USER, DB_NAME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildPostgresDSN(tt.cfg)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPostgres(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		stubOpen(t, db, nil)

		mock.ExpectPing()

		got, err := NewPostgres(ctx, localTodoDB, discardLogger(), 1)
		require.NoError(t, err)
		assert.Same(t, db, got)
		assert.Equal(t, 10, got.Stats().MaxOpenConnections)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("open error", func(t *testing.T) {
		stubOpen(t, nil, errors.New("open error"))

		got, err := NewPostgres(ctx, localTodoDB, discardLogger(), 1)
		assert.ErrorContains(t, err, "sql open: open error")
		assert.Nil(t, got)
	})

	t.Run("ping error closes the pool", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		stubOpen(t, db, nil)

		mock.ExpectPing().WillReturnError(errors.New("ping failed"))
		mock.ExpectClose()

		got, err := NewPostgres(ctx, localTodoDB, discardLogger(), 1)
		assert.ErrorContains(t, err, "db ping: ping failed")
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid config", func(t *testing.T) {
		got, err := NewPostgres(ctx, config.DatabaseConfig{}, discardLogger(), 1)
		assert.ErrorContains(t, err, "missing DB_HOST")
		assert.Nil(t, got)
	})
}

func TestNewPostgres_RetriesPing(t *testing.T) {
	useZeroBackOff(t)

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	stubOpen(t, db, nil)

	mock.ExpectPing().WillReturnError(errors.New("starting up"))
	mock.ExpectPing()

	got, err := NewPostgres(context.Background(), localTodoDB, discardLogger(), 3)

	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"todoapi/internal/model"
	"todoapi/internal/repository"
)

// TodoPostgres is a PostgreSQL implementation of repository.TodoRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type TodoPostgres struct {
	db *sql.DB
}

// NewTodoPostgres creates a new TodoPostgres repository.
func NewTodoPostgres(db *sql.DB) *TodoPostgres {
	return &TodoPostgres{db: db}
}

var _ repository.TodoRepository = (*TodoPostgres)(nil)

const todoColumns = `id, title, is_completed`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*model.Todo, error) {
	var (
		t           model.Todo
		title       sql.NullString
		isCompleted sql.NullBool
	)
	if err := row.Scan(&t.ID, &title, &isCompleted); err != nil {
		return nil, err
	}
	if title.Valid {
		t.Title = &title.String
	}
	if isCompleted.Valid {
		t.IsCompleted = &isCompleted.Bool
	}
	return &t, nil
}

// List returns all rows in insertion order.
func (r *TodoPostgres) List(ctx context.Context) ([]model.Todo, error) {
	const q = `
		SELECT ` + todoColumns + `
		FROM todos
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	items := make([]model.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, wrapErr(err)
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err)
	}
	return items, nil
}

// FindByID fetches a single todo by its ID.
func (r *TodoPostgres) FindByID(ctx context.Context, id string) (*model.Todo, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	const q = `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE id = $1
	`
	t, err := scanTodo(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, wrapErr(err)
	}
	return t, nil
}

// Create inserts a new row and returns the stored record.
func (r *TodoPostgres) Create(ctx context.Context, in model.TodoInput) (*model.Todo, error) {
	const q = `
		INSERT INTO todos (id, title, is_completed)
		VALUES ($1, $2, $3)
		RETURNING ` + todoColumns
	t, err := scanTodo(r.db.QueryRowContext(ctx, q, uuid.NewString(), in.Title, in.IsCompleted))
	if err != nil {
		return nil, wrapErr(err)
	}
	return t, nil
}

// Update overwrites both columns, writing NULL for absent input fields.
func (r *TodoPostgres) Update(ctx context.Context, id string, in model.TodoInput) (*model.Todo, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	const q = `
		UPDATE todos
		SET title = $2, is_completed = $3
		WHERE id = $1
		RETURNING ` + todoColumns
	t, err := scanTodo(r.db.QueryRowContext(ctx, q, id, in.Title, in.IsCompleted))
	if err != nil {
		return nil, wrapErr(err)
	}
	return t, nil
}

// Delete removes a row by ID and returns it as it was before removal.
func (r *TodoPostgres) Delete(ctx context.Context, id string) (*model.Todo, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	const q = `
		DELETE FROM todos
		WHERE id = $1
		RETURNING ` + todoColumns
	t, err := scanTodo(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, wrapErr(err)
	}
	return t, nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", repository.ErrInvalidID, id)
	}
	return nil
}

func wrapErr(err error) error {
	var (
		connErr *pgconn.ConnectError
		netErr  net.Error
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return repository.ErrNotFound
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &connErr),
		errors.As(err, &netErr):
		return fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}
	return err
}

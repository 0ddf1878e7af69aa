package repository

import (
	"context"
	"errors"

	"todoapi/internal/model"
)

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (mongo, postgres, objectstore) inside this directory.

var (
	// ErrNotFound is returned when no todo matches the given id.
	ErrNotFound = errors.New("todo not found")
	// ErrInvalidID is returned when an id cannot be parsed by the backing store.
	ErrInvalidID = errors.New("invalid todo id")
	// ErrStoreUnavailable wraps connection loss and timeouts talking to the store.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// TodoRepository defines data access for todos.
// No business logic here — strictly persistence operations.
type TodoRepository interface {
	// List returns every todo in the store's natural order. It never returns a nil slice on success.
	List(ctx context.Context) ([]model.Todo, error)

	// FindByID returns a todo by its ID.
	FindByID(ctx context.Context, id string) (*model.Todo, error)

	// Create inserts a new todo holding exactly the fields present in the input.
	// Returns the stored todo including its newly assigned ID.
	Create(ctx context.Context, in model.TodoInput) (*model.Todo, error)

	// Update overwrites both writable fields with the input and returns the post-update todo.
	// Absent input fields are cleared.
	Update(ctx context.Context, id string, in model.TodoInput) (*model.Todo, error)

	// Delete removes a todo and returns it as it was before removal.
	Delete(ctx context.Context, id string) (*model.Todo, error)
}

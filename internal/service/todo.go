package service

import (
	"context"
	"errors"
	"fmt"

	"todoapi/internal/model"
	"todoapi/internal/repository"
)

var (
	ErrIDRequired       = errors.New("id is required")
	ErrNotFound         = errors.New("todo not found")
	ErrInvalidID        = errors.New("invalid todo id")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// TodoService defines the use cases for handling todos.
// Each call is a single, independent store operation.
type TodoService interface {
	// List returns every todo. The result is never nil on success.
	List(ctx context.Context) ([]model.Todo, error)

	// Get returns a single todo by its ID.
	Get(ctx context.Context, id string) (*model.Todo, error)

	// Create stores a new todo from the submitted fields.
	Create(ctx context.Context, in model.TodoInput) (*model.Todo, error)

	// Update overwrites title and is_completed, clearing absent ones, and returns the updated todo.
	Update(ctx context.Context, id string, in model.TodoInput) (*model.Todo, error)

	// Delete removes a todo and returns it as it was before removal.
	Delete(ctx context.Context, id string) (*model.Todo, error)
}

// todoService is a concrete implementation of TodoService.
type todoService struct {
	repo repository.TodoRepository
}

// NewTodoService constructs a new TodoService.
func NewTodoService(repo repository.TodoRepository) TodoService {
	return &todoService{repo: repo}
}

func (s *todoService) List(ctx context.Context) ([]model.Todo, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, translate(err)
	}
	if items == nil {
		items = []model.Todo{}
	}
	return items, nil
}

func (s *todoService) Get(ctx context.Context, id string) (*model.Todo, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (s *todoService) Create(ctx context.Context, in model.TodoInput) (*model.Todo, error) {
	t, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (s *todoService) Update(ctx context.Context, id string, in model.TodoInput) (*model.Todo, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	t, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (s *todoService) Delete(ctx context.Context, id string) (*model.Todo, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	t, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

// translate maps repository error kinds onto service errors, keeping the cause.
func translate(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrInvalidID):
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	case errors.Is(err, repository.ErrStoreUnavailable):
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}

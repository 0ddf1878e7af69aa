package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/google/uuid"

	"todoapi/internal/model"
	"todoapi/internal/repository"
	"todoapi/internal/storage"
)

const (
	objectSuffix = ".json"
	contentType  = "application/json"
)

// TodoObjectStore keeps each todo as one JSON object in an S3-compatible bucket.
// Updates are read-modify-write without a conditional put: an update racing a
// delete of the same todo can write the object back.
type TodoObjectStore struct {
	store  storage.Storage
	prefix string
}

// NewTodoObjectStore creates a repository storing objects under prefix.
func NewTodoObjectStore(store storage.Storage, prefix string) *TodoObjectStore {
	return &TodoObjectStore{store: store, prefix: prefix}
}

var _ repository.TodoRepository = (*TodoObjectStore)(nil)

func (r *TodoObjectStore) key(id string) string {
	return r.prefix + id + objectSuffix
}

// List reads every object under the prefix in key order.
func (r *TodoObjectStore) List(ctx context.Context) ([]model.Todo, error) {
	infos, err := r.store.List(ctx, r.prefix)
	if err != nil {
		return nil, wrapErr("list objects", err)
	}

	items := make([]model.Todo, 0, len(infos))
	for _, info := range infos {
		if !strings.HasSuffix(info.Key, objectSuffix) {
			continue
		}
		t, err := r.read(ctx, info.Key)
		if err != nil {
			// Deleted between listing and reading.
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		items = append(items, *t)
	}
	return items, nil
}

// FindByID fetches the object for id.
func (r *TodoObjectStore) FindByID(ctx context.Context, id string) (*model.Todo, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}
	return r.read(ctx, r.key(id))
}

// Create writes a new object under a fresh UUID.
func (r *TodoObjectStore) Create(ctx context.Context, in model.TodoInput) (*model.Todo, error) {
	t := in.Apply(model.Todo{ID: uuid.NewString()})
	if err := r.write(ctx, t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update overwrites the stored object with the input applied.
func (r *TodoObjectStore) Update(ctx context.Context, id string, in model.TodoInput) (*model.Todo, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t := in.Apply(*existing)
	if err := r.write(ctx, t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes the object and returns its last contents.
func (r *TodoObjectStore) Delete(ctx context.Context, id string) (*model.Todo, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.store.Delete(ctx, r.key(existing.ID)); err != nil {
		return nil, wrapErr("delete object", err)
	}
	return existing, nil
}

func (r *TodoObjectStore) read(ctx context.Context, key string) (*model.Todo, error) {
	rc, _, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, wrapErr("get object", err)
	}
	defer rc.Close()

	var t model.Todo
	if err := json.NewDecoder(rc).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode object %s: %w", key, err)
	}
	return &t, nil
}

func (r *TodoObjectStore) write(ctx context.Context, t model.Todo) error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	_, err = r.store.Put(ctx, r.key(t.ID), bytes.NewReader(b), storage.PutObjectOptions{
		Size:        int64(len(b)),
		ContentType: contentType,
	})
	if err != nil {
		return wrapErr("put object", err)
	}
	return nil
}

// canonicalID returns the lowercase hyphenated form, so every spelling
// uuid.Parse accepts maps to the same object key.
func canonicalID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", repository.ErrInvalidID, id)
	}
	return u.String(), nil
}

func wrapErr(op string, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, storage.ErrObjectNotFound):
		return repository.ErrNotFound
	case errors.Is(err, storage.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr):
		return fmt.Errorf("%w: %s: %v", repository.ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

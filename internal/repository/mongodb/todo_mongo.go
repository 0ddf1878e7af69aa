package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"todoapi/internal/model"
	"todoapi/internal/repository"
)

// todoDocument is the persisted shape of a todo in the collection.
// Absent fields are not stored at all.
type todoDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       *string            `bson:"title,omitempty"`
	IsCompleted *bool              `bson:"is_completed,omitempty"`
}

func (d todoDocument) toModel() *model.Todo {
	return &model.Todo{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		IsCompleted: d.IsCompleted,
	}
}

// TodoMongo is a MongoDB implementation of repository.TodoRepository.
// It is safe for concurrent use; the collection handle shares the client's pool.
type TodoMongo struct {
	coll *mongo.Collection
}

// NewTodoMongo creates a new TodoMongo repository over the given collection.
func NewTodoMongo(coll *mongo.Collection) *TodoMongo {
	return &TodoMongo{coll: coll}
}

var _ repository.TodoRepository = (*TodoMongo)(nil)

// List returns every document without filter, in the collection's natural order.
func (r *TodoMongo) List(ctx context.Context) ([]model.Todo, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, wrapErr(err)
	}
	defer cur.Close(ctx)

	docs := make([]todoDocument, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrapErr(err)
	}

	items := make([]model.Todo, 0, len(docs))
	for _, d := range docs {
		items = append(items, *d.toModel())
	}
	return items, nil
}

// FindByID fetches a single document by its ObjectID hex.
func (r *TodoMongo) FindByID(ctx context.Context, id string) (*model.Todo, error) {
	filter, err := idFilter(id)
	if err != nil {
		return nil, err
	}
	var d todoDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, wrapErr(err)
	}
	return d.toModel(), nil
}

// Create inserts a document with a fresh ObjectID.
func (r *TodoMongo) Create(ctx context.Context, in model.TodoInput) (*model.Todo, error) {
	d := todoDocument{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		IsCompleted: in.IsCompleted,
	}
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return nil, wrapErr(err)
	}
	return d.toModel(), nil
}

// Update replaces title and is_completed and returns the document after the update.
func (r *TodoMongo) Update(ctx context.Context, id string, in model.TodoInput) (*model.Todo, error) {
	filter, err := idFilter(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var d todoDocument
	if err := r.coll.FindOneAndUpdate(ctx, filter, updateDocument(in), opts).Decode(&d); err != nil {
		return nil, wrapErr(err)
	}
	return d.toModel(), nil
}

// Delete removes a document and returns it as it was before removal.
func (r *TodoMongo) Delete(ctx context.Context, id string) (*model.Todo, error) {
	filter, err := idFilter(id)
	if err != nil {
		return nil, err
	}
	var d todoDocument
	if err := r.coll.FindOneAndDelete(ctx, filter).Decode(&d); err != nil {
		return nil, wrapErr(err)
	}
	return d.toModel(), nil
}

func idFilter(id string) (bson.D, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", repository.ErrInvalidID, id)
	}
	return bson.D{{Key: "_id", Value: oid}}, nil
}

// updateDocument sets present fields and unsets absent ones, so the stored
// document always mirrors the submitted input.
func updateDocument(in model.TodoInput) bson.D {
	var set, unset bson.D
	if in.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *in.Title})
	} else {
		unset = append(unset, bson.E{Key: "title", Value: ""})
	}
	if in.IsCompleted != nil {
		set = append(set, bson.E{Key: "is_completed", Value: *in.IsCompleted})
	} else {
		unset = append(unset, bson.E{Key: "is_completed", Value: ""})
	}

	update := bson.D{}
	if len(set) > 0 {
		update = append(update, bson.E{Key: "$set", Value: set})
	}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}
	return update
}

func wrapErr(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsNetworkError(err),
		mongo.IsTimeout(err),
		errors.Is(err, mongo.ErrClientDisconnected),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}
	return err
}

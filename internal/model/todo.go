package model

// Todo is the single record type managed by the service.
// This is a pure domain model with no database-specific dependencies or tags;
// each repository maps it to its own persisted shape.
type Todo struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

// TodoInput carries the client-writable fields of a Todo.
// A nil field was absent from the request body.
type TodoInput struct {
	Title       *string
	IsCompleted *bool
}

// Apply returns a copy of t whose writable fields are replaced by in.
// Absent input fields clear the corresponding field.
func (in TodoInput) Apply(t Todo) Todo {
	t.Title = in.Title
	t.IsCompleted = in.IsCompleted
	return t
}

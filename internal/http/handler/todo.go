package handler

import (
	"github.com/gofiber/fiber/v2"

	"todoapi/internal/model"
	"todoapi/internal/service"
)

// TodoIDParam is the route parameter carrying a todo identifier.
const TodoIDParam = "todo_id"

// decodeInput reads title/is_completed from a JSON body. Bodies that are not
// declared as JSON are treated as carrying no fields.
func decodeInput(c *fiber.Ctx) (model.TodoInput, error) {
	if !c.Is("json") {
		return model.TodoInput{}, nil
	}
	return model.DecodeTodoInput(c.Body())
}

// ListTodos returns every todo.
//
// @Summary List todos
// @Produce json
// @Success 200 {array} model.Todo
// @Failure 503 {object} errorPayload
// @Router / [get]
func ListTodos(svc service.TodoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

// GetTodo returns one todo, or null when the id matches nothing.
//
// @Summary Get a todo
// @Produce json
// @Param todo_id path string true "Todo ID"
// @Success 200 {object} model.Todo
// @Failure 400 {object} errorPayload
// @Router /{todo_id} [get]
func GetTodo(svc service.TodoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		todo, err := svc.Get(c.UserContext(), c.Params(TodoIDParam))
		return writeTodoResult(c, todo, err)
	}
}

// CreateTodo stores a todo from the request body.
//
// @Summary Create a todo
// @Accept json
// @Produce json
// @Param body body todoRequest true "Todo fields"
// @Success 200 {object} model.Todo
// @Failure 400 {object} errorPayload
// @Router / [post]
func CreateTodo(svc service.TodoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := decodeInput(c)
		if err != nil {
			return writeInputError(c, err)
		}
		todo, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(todo)
	}
}

// UpdateTodo overwrites title and is_completed; fields left out of the body are cleared.
//
// @Summary Update a todo
// @Accept json
// @Produce json
// @Param todo_id path string true "Todo ID"
// @Param body body todoRequest true "Todo fields"
// @Success 200 {object} model.Todo
// @Failure 400 {object} errorPayload
// @Router /{todo_id} [patch]
func UpdateTodo(svc service.TodoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := decodeInput(c)
		if err != nil {
			return writeInputError(c, err)
		}
		todo, err := svc.Update(c.UserContext(), c.Params(TodoIDParam), in)
		return writeTodoResult(c, todo, err)
	}
}

// DeleteTodo removes a todo and returns what was removed.
//
// @Summary Delete a todo
// @Produce json
// @Param todo_id path string true "Todo ID"
// @Success 200 {object} model.Todo
// @Failure 400 {object} errorPayload
// @Router /{todo_id} [delete]
func DeleteTodo(svc service.TodoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		todo, err := svc.Delete(c.UserContext(), c.Params(TodoIDParam))
		return writeTodoResult(c, todo, err)
	}
}

// todoRequest documents the accepted body for swagger only.
type todoRequest struct {
	Title       *string `json:"title,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

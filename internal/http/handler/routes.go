package handler

import (
	"github.com/gofiber/fiber/v2"

	"todoapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Probes are registered first so they win over the /:todo_id routes.
func RegisterRoutes(app *fiber.App, store Pinger, todoSvc service.TodoService) {
	app.Get("/health", HealthCheck(store))
	app.Get("/healthz", LivenessProbe())

	app.Get("/", ListTodos(todoSvc))
	app.Post("/", CreateTodo(todoSvc))
	app.Get("/:"+TodoIDParam, GetTodo(todoSvc))
	app.Patch("/:"+TodoIDParam, UpdateTodo(todoSvc))
	app.Delete("/:"+TodoIDParam, DeleteTodo(todoSvc))
}

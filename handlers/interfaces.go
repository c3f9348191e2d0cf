package handlers

import (
	"context"

	"github.com/andradericardo/serverless-project/types"
)

// TodoModelInterface defines the todo operations the handlers depend on,
// allowing the model to be mocked in tests.
type TodoModelInterface interface {
	ListTodos(ctx context.Context, userID string) ([]types.TodoItem, error)
	CreateTodo(ctx context.Context, userID string, req *types.CreateTodoRequest) (*types.TodoItem, error)
	UpdateTodo(ctx context.Context, userID, todoID string, update *types.TodoUpdate) error
	DeleteTodo(ctx context.Context, userID, todoID string) error
	GenerateUploadURL(ctx context.Context, attachmentID string) (string, error)
	AttachToTodo(ctx context.Context, userID, todoID, attachmentID string) error
}

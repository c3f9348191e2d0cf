package store

import (
	"context"

	"github.com/andradericardo/serverless-project/types"
)

// TodoStore handles todo record persistence. GetTodo signals a missing
// record with ErrNotFound rather than a nil item.
type TodoStore interface {
	GetTodo(ctx context.Context, todoID string) (*types.TodoItem, error)
	ListTodos(ctx context.Context, userID string) ([]types.TodoItem, error)
	CreateTodo(ctx context.Context, todo *types.TodoItem) error
	UpdateTodo(ctx context.Context, todoID string, update *types.TodoUpdate) error
	DeleteTodo(ctx context.Context, todoID string) error
	UpdateAttachmentURL(ctx context.Context, todoID string, attachmentURL string) error
}

// AttachmentStorage issues upload and retrieval URLs for attachment
// identifiers. URL contents are opaque to callers.
type AttachmentStorage interface {
	GenerateUploadURL(ctx context.Context, attachmentID string) (string, error)
	ObjectURL(attachmentID string) string
}

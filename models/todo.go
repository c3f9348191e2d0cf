package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/andradericardo/serverless-project/errors"
	"github.com/andradericardo/serverless-project/internal/store"
	"github.com/andradericardo/serverless-project/logger"
	"github.com/andradericardo/serverless-project/types"
)

// TodoModel orchestrates the todo lifecycle and enforces per-owner
// authorization before any mutation. Both adapters are injected so
// tests can substitute in-memory fakes.
type TodoModel struct {
	store   store.TodoStore
	storage store.AttachmentStorage
}

// NewTodoModel creates a new TodoModel instance.
func NewTodoModel(todoStore store.TodoStore, storage store.AttachmentStorage) *TodoModel {
	return &TodoModel{
		store:   todoStore,
		storage: storage,
	}
}

// ListTodos returns all todos owned by userID. An empty result is an
// empty slice, never an error.
func (tm *TodoModel) ListTodos(ctx context.Context, userID string) ([]types.TodoItem, error) {
	log := logger.GetLogger()
	log.Infow("Listing todos", "userId", userID)

	todos, err := tm.store.ListTodos(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return todos, nil
}

// CreateTodo builds and persists a new todo owned by userID. The id,
// creation timestamp and default flags are service-assigned.
func (tm *TodoModel) CreateTodo(ctx context.Context, userID string, req *types.CreateTodoRequest) (*types.TodoItem, error) {
	log := logger.GetLogger()

	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	todo := &types.TodoItem{
		UserID:        userID,
		TodoID:        uuid.NewString(),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		Name:          req.Name,
		DueDate:       req.DueDate,
		Done:          false,
		AttachmentURL: nil,
	}

	log.Infow("Creating todo", "userId", userID, "todoId", todo.TodoID)
	if err := tm.store.CreateTodo(ctx, todo); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return todo, nil
}

// UpdateTodo overwrites the name/dueDate/done triple of a todo owned
// by userID. Fails with NotFound or Forbidden before any write.
func (tm *TodoModel) UpdateTodo(ctx context.Context, userID, todoID string, update *types.TodoUpdate) error {
	log := logger.GetLogger()
	log.Infow("Updating todo", "userId", userID, "todoId", todoID)

	if _, err := tm.loadOwned(ctx, userID, todoID); err != nil {
		return err
	}

	if err := tm.store.UpdateTodo(ctx, todoID, update); err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// DeleteTodo removes a todo owned by userID. Deleting a missing id
// fails with NotFound; delete is not silently idempotent.
func (tm *TodoModel) DeleteTodo(ctx context.Context, userID, todoID string) error {
	log := logger.GetLogger()
	log.Infow("Deleting todo", "userId", userID, "todoId", todoID)

	if _, err := tm.loadOwned(ctx, userID, todoID); err != nil {
		return err
	}

	if err := tm.store.DeleteTodo(ctx, todoID); err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// GenerateUploadURL mints a short-lived signed upload URL for an
// attachment identifier. Ownership is enforced later, when the
// attachment is associated with a todo.
func (tm *TodoModel) GenerateUploadURL(ctx context.Context, attachmentID string) (string, error) {
	log := logger.GetLogger()
	log.Infow("Generating upload URL", "attachmentId", attachmentID)

	uploadURL, err := tm.storage.GenerateUploadURL(ctx, attachmentID)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ServerError, "Failed to generate upload URL")
	}
	return uploadURL, nil
}

// AttachToTodo resolves the attachment's retrieval URL and persists it
// on a todo owned by userID. Fails with NotFound or Forbidden before
// any write.
func (tm *TodoModel) AttachToTodo(ctx context.Context, userID, todoID, attachmentID string) error {
	log := logger.GetLogger()

	attachmentURL := tm.storage.ObjectURL(attachmentID)
	log.Infow("Attaching to todo", "userId", userID, "todoId", todoID, "attachmentUrl", attachmentURL)

	if _, err := tm.loadOwned(ctx, userID, todoID); err != nil {
		return err
	}

	if err := tm.store.UpdateAttachmentURL(ctx, todoID, attachmentURL); err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// loadOwned fetches a todo and verifies the caller owns it. Every
// mutation goes through this check before issuing its write.
func (tm *TodoModel) loadOwned(ctx context.Context, userID, todoID string) (*types.TodoItem, error) {
	log := logger.GetLogger()

	todo, err := tm.store.GetTodo(ctx, todoID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Todo", todoID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	if todo.UserID != userID {
		// An authorization violation is worth recording distinctly
		// from a simple not-found.
		log.Warnw("User does not own todo", "userId", userID, "todoId", todoID)
		return nil, apperrors.Forbidden("Access denied", "user does not own this todo")
	}

	return todo, nil
}

func validateCreateRequest(req *types.CreateTodoRequest) error {
	var validationErrors []string

	if req.Name == "" {
		validationErrors = append(validationErrors, "todo name is required")
	}

	if len(req.Name) > 255 {
		validationErrors = append(validationErrors, "todo name exceeds 255 characters")
	}

	if len(validationErrors) > 0 {
		return apperrors.ValidationFailed(
			"Invalid todo data",
			strings.Join(validationErrors, "; "),
		)
	}

	return nil
}

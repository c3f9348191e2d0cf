package models

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/andradericardo/serverless-project/errors"
	"github.com/andradericardo/serverless-project/internal/store"
	"github.com/andradericardo/serverless-project/types"
)

type MockTodoStore struct {
	mock.Mock
}

func (m *MockTodoStore) GetTodo(ctx context.Context, todoID string) (*types.TodoItem, error) {
	args := m.Called(ctx, todoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TodoItem), args.Error(1)
}

func (m *MockTodoStore) ListTodos(ctx context.Context, userID string) ([]types.TodoItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.TodoItem), args.Error(1)
}

func (m *MockTodoStore) CreateTodo(ctx context.Context, todo *types.TodoItem) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *MockTodoStore) UpdateTodo(ctx context.Context, todoID string, update *types.TodoUpdate) error {
	args := m.Called(ctx, todoID, update)
	return args.Error(0)
}

func (m *MockTodoStore) DeleteTodo(ctx context.Context, todoID string) error {
	args := m.Called(ctx, todoID)
	return args.Error(0)
}

func (m *MockTodoStore) UpdateAttachmentURL(ctx context.Context, todoID string, attachmentURL string) error {
	args := m.Called(ctx, todoID, attachmentURL)
	return args.Error(0)
}

type MockAttachmentStorage struct {
	mock.Mock
}

func (m *MockAttachmentStorage) GenerateUploadURL(ctx context.Context, attachmentID string) (string, error) {
	args := m.Called(ctx, attachmentID)
	return args.String(0), args.Error(1)
}

func (m *MockAttachmentStorage) ObjectURL(attachmentID string) string {
	args := m.Called(attachmentID)
	return args.String(0)
}

func newTestModel() (*TodoModel, *MockTodoStore, *MockAttachmentStorage) {
	mockStore := new(MockTodoStore)
	mockStorage := new(MockAttachmentStorage)
	return NewTodoModel(mockStore, mockStorage), mockStore, mockStorage
}

func ownedTodo(todoID, userID string) *types.TodoItem {
	return &types.TodoItem{
		UserID:    userID,
		TodoID:    todoID,
		CreatedAt: "2024-01-01T00:00:00Z",
		Name:      "Buy milk",
		DueDate:   "2024-01-01",
	}
}

func assertErrorType(t *testing.T, err error, errType apperrors.ErrorType) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errType, appErr.Type)
}

func TestTodoModel_CreateTodo(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id, timestamp and defaults", func(t *testing.T) {
		model, mockStore, _ := newTestModel()
		start := time.Now().UTC().Truncate(time.Second)

		mockStore.On("CreateTodo", ctx, mock.AnythingOfType("*types.TodoItem")).Return(nil).Twice()

		first, err := model.CreateTodo(ctx, "user-1", &types.CreateTodoRequest{Name: "Buy milk", DueDate: "2024-01-01"})
		require.NoError(t, err)
		second, err := model.CreateTodo(ctx, "user-1", &types.CreateTodoRequest{Name: "Walk dog"})
		require.NoError(t, err)

		assert.Equal(t, "user-1", first.UserID)
		assert.Equal(t, "Buy milk", first.Name)
		assert.Equal(t, "2024-01-01", first.DueDate)
		assert.False(t, first.Done)
		assert.Nil(t, first.AttachmentURL)
		assert.NotEmpty(t, first.TodoID)
		assert.NotEqual(t, first.TodoID, second.TodoID)

		createdAt, err := time.Parse(time.RFC3339, first.CreatedAt)
		require.NoError(t, err)
		assert.False(t, createdAt.Before(start))

		mockStore.AssertExpectations(t)
	})

	t.Run("validation error", func(t *testing.T) {
		model, mockStore, _ := newTestModel()

		_, err := model.CreateTodo(ctx, "user-1", &types.CreateTodoRequest{Name: ""})
		assertErrorType(t, err, apperrors.ValidationError)
		mockStore.AssertNotCalled(t, "CreateTodo", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		model, mockStore, _ := newTestModel()
		mockStore.On("CreateTodo", ctx, mock.Anything).Return(errors.New("table missing")).Once()

		_, err := model.CreateTodo(ctx, "user-1", &types.CreateTodoRequest{Name: "Buy milk"})
		assertErrorType(t, err, apperrors.DatabaseError)
	})
}

func TestTodoModel_ListTodos(t *testing.T) {
	ctx := context.Background()

	t.Run("returns items for owner", func(t *testing.T) {
		model, mockStore, _ := newTestModel()
		items := []types.TodoItem{*ownedTodo("todo-1", "user-1"), *ownedTodo("todo-2", "user-1")}
		mockStore.On("ListTodos", ctx, "user-1").Return(items, nil).Once()

		todos, err := model.ListTodos(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, todos, 2)
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		model, mockStore, _ := newTestModel()
		mockStore.On("ListTodos", ctx, "user-2").Return([]types.TodoItem{}, nil).Once()

		todos, err := model.ListTodos(ctx, "user-2")
		require.NoError(t, err)
		assert.Empty(t, todos)
	})

	t.Run("store failure", func(t *testing.T) {
		model, mockStore, _ := newTestModel()
		mockStore.On("ListTodos", ctx, "user-1").Return(nil, errors.New("index offline")).Once()

		_, err := model.ListTodos(ctx, "user-1")
		assertErrorType(t, err, apperrors.DatabaseError)
	})
}

func TestTodoModel_UpdateTodo(t *testing.T) {
	ctx := context.Background()
	update := &types.TodoUpdate{Name: "x", DueDate: "y", Done: true}

	t.Run("owner can update", func(t *testing.T) {
		model, mockStore, _ := newTestModel()
		mockStore.On("GetTodo", ctx, "todo-1").Return(ownedTodo("todo-1", "user-1"), nil).Once()
		mockStore.On("UpdateTodo", ctx, "todo-1", update).Return(nil).Once()

		err := model.UpdateTodo(ctx, "user-1", "todo-1", update)
		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("non-owner is forbidden and no write occurs", func(t *testing.T) {
		model, mockStore, _ := newTestModel()
		mockStore.On("GetTodo", ctx, "todo-1").Return(ownedTodo("todo-1", "user-1"), nil).Once()

		err := model.UpdateTodo(ctx, "user-2", "todo-1", update)
		assertErrorType(t, err, apperrors.ForbiddenError)
		mockStore.AssertNotCalled(t, "UpdateTodo", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing todo is not found", func(t *testing.T) {
		model, mockStore, _ := newTestModel()
		mockStore.On("GetTodo", ctx, "missing").Return(nil, store.ErrNotFound).Once()

		err := model.UpdateTodo(ctx, "user-1", "missing", update)
		assertErrorType(t, err, apperrors.NotFoundError)
	})
}

func TestTodoModel_DeleteTodo(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can delete", func(t *testing.T) {
		model, mockStore, _ := newTestModel()
		mockStore.On("GetTodo", ctx, "todo-1").Return(ownedTodo("todo-1", "user-1"), nil).Once()
		mockStore.On("DeleteTodo", ctx, "todo-1").Return(nil).Once()

		err := model.DeleteTodo(ctx, "user-1", "todo-1")
		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		model, mockStore, _ := newTestModel()
		mockStore.On("GetTodo", ctx, "todo-1").Return(ownedTodo("todo-1", "user-1"), nil).Once()

		err := model.DeleteTodo(ctx, "user-2", "todo-1")
		assertErrorType(t, err, apperrors.ForbiddenError)
		mockStore.AssertNotCalled(t, "DeleteTodo", mock.Anything, mock.Anything)
	})

	t.Run("second delete of the same id is not found", func(t *testing.T) {
		model, mockStore, _ := newTestModel()
		mockStore.On("GetTodo", ctx, "todo-1").Return(ownedTodo("todo-1", "user-1"), nil).Once()
		mockStore.On("DeleteTodo", ctx, "todo-1").Return(nil).Once()

		require.NoError(t, model.DeleteTodo(ctx, "user-1", "todo-1"))

		mockStore.On("GetTodo", ctx, "todo-1").Return(nil, store.ErrNotFound).Once()
		err := model.DeleteTodo(ctx, "user-1", "todo-1")
		assertErrorType(t, err, apperrors.NotFoundError)
	})
}

func TestTodoModel_GenerateUploadURL(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the signed URL from storage", func(t *testing.T) {
		model, _, mockStorage := newTestModel()
		mockStorage.On("GenerateUploadURL", ctx, "att-1").
			Return("https://bucket.s3.us-east-1.amazonaws.com/att-1?sig=abc", nil).Once()

		url, err := model.GenerateUploadURL(ctx, "att-1")
		require.NoError(t, err)
		assert.Contains(t, url, "att-1")
	})

	t.Run("propagates storage failure", func(t *testing.T) {
		model, _, mockStorage := newTestModel()
		mockStorage.On("GenerateUploadURL", ctx, "att-1").Return("", errors.New("presign failed")).Once()

		_, err := model.GenerateUploadURL(ctx, "att-1")
		assertErrorType(t, err, apperrors.ServerError)
	})
}

func TestTodoModel_AttachToTodo(t *testing.T) {
	ctx := context.Background()
	resolvedURL := "https://bucket.s3.us-east-1.amazonaws.com/att-1"

	t.Run("persists the resolved URL for the owner", func(t *testing.T) {
		model, mockStore, mockStorage := newTestModel()
		mockStorage.On("ObjectURL", "att-1").Return(resolvedURL).Once()
		mockStore.On("GetTodo", ctx, "todo-1").Return(ownedTodo("todo-1", "user-1"), nil).Once()
		mockStore.On("UpdateAttachmentURL", ctx, "todo-1", resolvedURL).Return(nil).Once()

		err := model.AttachToTodo(ctx, "user-1", "todo-1", "att-1")
		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
		mockStorage.AssertExpectations(t)
	})

	t.Run("non-owner is forbidden and no write occurs", func(t *testing.T) {
		model, mockStore, mockStorage := newTestModel()
		mockStorage.On("ObjectURL", "att-1").Return(resolvedURL).Once()
		mockStore.On("GetTodo", ctx, "todo-1").Return(ownedTodo("todo-1", "user-1"), nil).Once()

		err := model.AttachToTodo(ctx, "user-2", "todo-1", "att-1")
		assertErrorType(t, err, apperrors.ForbiddenError)
		mockStore.AssertNotCalled(t, "UpdateAttachmentURL", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing todo is not found", func(t *testing.T) {
		model, mockStore, mockStorage := newTestModel()
		mockStorage.On("ObjectURL", "att-1").Return(resolvedURL).Once()
		mockStore.On("GetTodo", ctx, "missing").Return(nil, store.ErrNotFound).Once()

		err := model.AttachToTodo(ctx, "user-1", "missing", "att-1")
		assertErrorType(t, err, apperrors.NotFoundError)
	})
}

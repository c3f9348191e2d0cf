package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/andradericardo/serverless-project/errors"
	"github.com/andradericardo/serverless-project/logger"
	"github.com/andradericardo/serverless-project/middleware"
	"github.com/andradericardo/serverless-project/types"
)

type TodoHandler struct {
	todoModel TodoModelInterface
}

func NewTodoHandler(model TodoModelInterface) *TodoHandler {
	return &TodoHandler{
		todoModel: model,
	}
}

// requireUserID reads the authenticated user's ID from the context set
// by the auth middleware. An empty value means the route was wired
// without auth; respond 401 rather than proceed unscoped.
func requireUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(string(middleware.UserIDKey))
	if userID == "" {
		logger.GetLogger().Warn("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", false
	}
	return userID, true
}

// ListTodosHandler returns all todos owned by the authenticated user.
// The result is a single unbounded page, mirroring the store's
// secondary-index scan.
func (h *TodoHandler) ListTodosHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	todos, err := h.todoModel.ListTodos(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.TodoListResponse{Items: todos})
}

// CreateTodoHandler creates a new todo owned by the authenticated user.
func (h *TodoHandler) CreateTodoHandler(c *gin.Context) {
	log := logger.GetLogger()

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req types.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	item, err := h.todoModel.CreateTodo(c.Request.Context(), userID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, types.TodoCreatedResponse{Item: item})
}

// UpdateTodoHandler overwrites the name/dueDate/done triple of a todo
// owned by the authenticated user.
func (h *TodoHandler) UpdateTodoHandler(c *gin.Context) {
	log := logger.GetLogger()

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	todoID := c.Param("todoId")
	if todoID == "" {
		_ = c.Error(errors.ValidationFailed("Missing parameters", "todo ID is required"))
		return
	}

	var req types.TodoUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorw("Invalid request body", "error", err)
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	if err := h.todoModel.UpdateTodo(c.Request.Context(), userID, todoID, &req); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusOK)
}

// DeleteTodoHandler removes a todo owned by the authenticated user.
func (h *TodoHandler) DeleteTodoHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	todoID := c.Param("todoId")
	if todoID == "" {
		_ = c.Error(errors.ValidationFailed("Missing parameters", "todo ID is required"))
		return
	}

	if err := h.todoModel.DeleteTodo(c.Request.Context(), userID, todoID); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GenerateUploadURLHandler mints an attachment identifier, issues a
// presigned upload URL for it, and associates the attachment with the
// todo. Ownership is enforced by the association step.
func (h *TodoHandler) GenerateUploadURLHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	todoID := c.Param("todoId")
	if todoID == "" {
		_ = c.Error(errors.ValidationFailed("Missing parameters", "todo ID is required"))
		return
	}

	attachmentID := uuid.NewString()

	uploadURL, err := h.todoModel.GenerateUploadURL(c.Request.Context(), attachmentID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.todoModel.AttachToTodo(c.Request.Context(), userID, todoID, attachmentID); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.UploadURLResponse{UploadURL: uploadURL})
}

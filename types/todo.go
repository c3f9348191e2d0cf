package types

// TodoItem is a single task owned by exactly one user. The JSON field names
// mirror the persisted record layout in DynamoDB.
type TodoItem struct {
	UserID        string  `json:"userId" dynamodbav:"userId"`
	TodoID        string  `json:"todoId" dynamodbav:"todoId"`
	CreatedAt     string  `json:"createdAt" dynamodbav:"createdAt"`
	Name          string  `json:"name" dynamodbav:"name"`
	DueDate       string  `json:"dueDate,omitempty" dynamodbav:"dueDate"`
	Done          bool    `json:"done" dynamodbav:"done"`
	AttachmentURL *string `json:"attachmentUrl" dynamodbav:"attachmentUrl"`
}

// CreateTodoRequest carries the caller-supplied fields for a new todo.
// Everything else (id, owner, timestamps, flags) is service-assigned.
type CreateTodoRequest struct {
	Name    string `json:"name" binding:"required"`
	DueDate string `json:"dueDate"`
}

// TodoUpdate is applied wholesale: all three fields overwrite the stored
// values, a field omitted from the request still overwrites with its zero
// value. Callers are expected to supply the full triple.
type TodoUpdate struct {
	Name    string `json:"name" binding:"required"`
	DueDate string `json:"dueDate"`
	Done    bool   `json:"done"`
}

// TodoListResponse wraps a list of todos for the transport layer.
type TodoListResponse struct {
	Items []TodoItem `json:"items"`
}

// TodoCreatedResponse wraps a newly created todo for the transport layer.
type TodoCreatedResponse struct {
	Item *TodoItem `json:"item"`
}

// UploadURLResponse carries a presigned attachment upload URL.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
}

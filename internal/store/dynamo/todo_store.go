// Package dynamo implements the record store against DynamoDB: a table
// keyed by todoId with a secondary index keyed by userId.
package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/andradericardo/serverless-project/internal/store"
	"github.com/andradericardo/serverless-project/logger"
	"github.com/andradericardo/serverless-project/types"
)

// DynamoDBAPI is the subset of the DynamoDB client used by TodoStore.
// Declared here so tests can substitute a mock for *dynamodb.Client.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// TodoStore implements the store.TodoStore interface using DynamoDB.
type TodoStore struct {
	client      DynamoDBAPI
	table       string
	byUserIndex string
}

// NewTodoStore creates a new TodoStore instance.
func NewTodoStore(client DynamoDBAPI, table, byUserIndex string) *TodoStore {
	return &TodoStore{
		client:      client,
		table:       table,
		byUserIndex: byUserIndex,
	}
}

// todoKey builds the primary key for a todo record.
func todoKey(todoID string) map[string]ddbtypes.AttributeValue {
	return map[string]ddbtypes.AttributeValue{
		"todoId": &ddbtypes.AttributeValueMemberS{Value: todoID},
	}
}

// GetTodo retrieves a todo record by its ID. Returns store.ErrNotFound
// if no record exists.
func (s *TodoStore) GetTodo(ctx context.Context, todoID string) (*types.TodoItem, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       todoKey(todoID),
	})
	if err != nil {
		return nil, fmt.Errorf("get todo %s: %w", todoID, err)
	}

	if len(out.Item) == 0 {
		return nil, store.ErrNotFound
	}

	var todo types.TodoItem
	if err := attributevalue.UnmarshalMap(out.Item, &todo); err != nil {
		return nil, fmt.Errorf("unmarshal todo %s: %w", todoID, err)
	}
	return &todo, nil
}

// ListTodos returns all todos owned by userID via the by-user index.
// The scan is unbounded: a single page per the store's scope.
func (s *TodoStore) ListTodos(ctx context.Context, userID string) ([]types.TodoItem, error) {
	log := logger.GetLogger()

	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		IndexName:              aws.String(s.byUserIndex),
		KeyConditionExpression: aws.String("userId = :userId"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":userId": &ddbtypes.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query todos for user %s: %w", userID, err)
	}

	todos := make([]types.TodoItem, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &todos); err != nil {
		return nil, fmt.Errorf("unmarshal todos for user %s: %w", userID, err)
	}

	log.Debugw("Listed todos", "userId", userID, "count", len(todos))
	return todos, nil
}

// CreateTodo persists a new todo record.
func (s *TodoStore) CreateTodo(ctx context.Context, todo *types.TodoItem) error {
	item, err := attributevalue.MarshalMap(todo)
	if err != nil {
		return fmt.Errorf("marshal todo %s: %w", todo.TodoID, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put todo %s: %w", todo.TodoID, err)
	}
	return nil
}

// UpdateTodo overwrites the name/dueDate/done triple of an existing
// record. Callers are responsible for checking the record exists first.
func (s *TodoStore) UpdateTodo(ctx context.Context, todoID string, update *types.TodoUpdate) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(s.table),
		Key:              todoKey(todoID),
		UpdateExpression: aws.String("SET #name = :name, dueDate = :dueDate, done = :done"),
		ExpressionAttributeNames: map[string]string{
			"#name": "name",
		},
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":name":    &ddbtypes.AttributeValueMemberS{Value: update.Name},
			":dueDate": &ddbtypes.AttributeValueMemberS{Value: update.DueDate},
			":done":    &ddbtypes.AttributeValueMemberBOOL{Value: update.Done},
		},
	})
	if err != nil {
		return fmt.Errorf("update todo %s: %w", todoID, err)
	}
	return nil
}

// DeleteTodo removes a todo record by its ID.
func (s *TodoStore) DeleteTodo(ctx context.Context, todoID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       todoKey(todoID),
	})
	if err != nil {
		return fmt.Errorf("delete todo %s: %w", todoID, err)
	}
	return nil
}

// UpdateAttachmentURL sets the attachmentUrl field of an existing record.
func (s *TodoStore) UpdateAttachmentURL(ctx context.Context, todoID string, attachmentURL string) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(s.table),
		Key:              todoKey(todoID),
		UpdateExpression: aws.String("SET attachmentUrl = :attachmentUrl"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":attachmentUrl": &ddbtypes.AttributeValueMemberS{Value: attachmentURL},
		},
	})
	if err != nil {
		return fmt.Errorf("update attachment url for todo %s: %w", todoID, err)
	}
	return nil
}

package main

import (
	"context"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"

	"github.com/andradericardo/serverless-project/config"
	"github.com/andradericardo/serverless-project/handlers"
	"github.com/andradericardo/serverless-project/internal/store/dynamo"
	"github.com/andradericardo/serverless-project/internal/store/s3store"
	"github.com/andradericardo/serverless-project/logger"
	"github.com/andradericardo/serverless-project/models"
	"github.com/andradericardo/serverless-project/router"
)

const version = "1.0.0"

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() {
		_ = logger.Close()
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Shared AWS credentials/config chain for both clients
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.DynamoDB.Region),
	)
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}

	dynamoClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDB.Endpoint != "" {
			// dynamodb-local for development
			o.BaseEndpoint = &cfg.DynamoDB.Endpoint
		}
	})
	todoStore := dynamo.NewTodoStore(dynamoClient, cfg.DynamoDB.TodosTable, cfg.DynamoDB.TodosByUserIndex)

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.Region = cfg.S3.Region
	})
	attachmentStorage := s3store.NewAttachmentStorage(
		s3.NewPresignClient(s3Client),
		cfg.S3.AttachmentsBucket,
		cfg.S3.Region,
		time.Duration(cfg.S3.UploadURLExpirySeconds)*time.Second,
	)

	// Model and handlers
	todoModel := models.NewTodoModel(todoStore, attachmentStorage)
	todoHandler := handlers.NewTodoHandler(todoModel)
	healthHandler := handlers.NewHealthHandler(version)

	r := router.SetupRouter(router.Dependencies{
		Config:        cfg,
		TodoHandler:   todoHandler,
		HealthHandler: healthHandler,
	})

	log.Infow("Starting server", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

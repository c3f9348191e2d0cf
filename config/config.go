// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/andradericardo/serverless-project/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	minJWTLength = 32
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT"`
	Port           string      `mapstructure:"PORT"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS"`
	JwtSecretKey   string      `mapstructure:"JWT_SECRET_KEY"`
}

// DynamoDBConfig holds the todos table connection details.
type DynamoDBConfig struct {
	Region string `mapstructure:"REGION"`
	// Endpoint overrides the service endpoint, used for dynamodb-local.
	Endpoint         string `mapstructure:"ENDPOINT"`
	TodosTable       string `mapstructure:"TODOS_TABLE"`
	TodosByUserIndex string `mapstructure:"TODOS_BY_USER_INDEX"`
}

// S3Config holds the attachments bucket details.
type S3Config struct {
	Region            string `mapstructure:"REGION"`
	AttachmentsBucket string `mapstructure:"ATTACHMENTS_BUCKET"`
	// UploadURLExpirySeconds is the TTL of presigned upload URLs.
	UploadURLExpirySeconds int `mapstructure:"UPLOAD_URL_EXPIRY_SECONDS"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server   ServerConfig   `mapstructure:"SERVER"`
	DynamoDB DynamoDBConfig `mapstructure:"DYNAMODB"`
	S3       S3Config       `mapstructure:"S3"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("DYNAMODB.REGION", "us-east-1")
	v.SetDefault("DYNAMODB.TODOS_TABLE", "todos")
	v.SetDefault("DYNAMODB.TODOS_BY_USER_INDEX", "todos-by-user")
	v.SetDefault("S3.REGION", "us-east-1")
	v.SetDefault("S3.UPLOAD_URL_EXPIRY_SECONDS", 300)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.JWT_SECRET_KEY", "JWT_SECRET_KEY"},
		{"DYNAMODB.REGION", "DYNAMODB_REGION"},
		{"DYNAMODB.ENDPOINT", "DYNAMODB_ENDPOINT"},
		{"DYNAMODB.TODOS_TABLE", "TODOS_TABLE"},
		{"DYNAMODB.TODOS_BY_USER_INDEX", "TODOS_BY_USER_INDEX"},
		{"S3.REGION", "S3_REGION"},
		{"S3.ATTACHMENTS_BUCKET", "ATTACHMENTS_BUCKET"},
		{"S3.UPLOAD_URL_EXPIRY_SECONDS", "UPLOAD_URL_EXPIRY_SECONDS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"todosTable", cfg.DynamoDB.TodosTable,
		"attachmentsBucket", cfg.S3.AttachmentsBucket,
	)

	return &cfg, nil
}

// validate checks that required settings are present and sane.
func (c *Config) validate() error {
	if c.Server.Environment != EnvDevelopment && c.Server.Environment != EnvProduction {
		return fmt.Errorf("invalid environment: %s", c.Server.Environment)
	}

	if c.Server.JwtSecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.IsProduction() && len(c.Server.JwtSecretKey) < minJWTLength {
		return fmt.Errorf("JWT_SECRET_KEY must be at least %d characters in production", minJWTLength)
	}

	if c.DynamoDB.TodosTable == "" {
		return fmt.Errorf("TODOS_TABLE is required")
	}
	if c.DynamoDB.TodosByUserIndex == "" {
		return fmt.Errorf("TODOS_BY_USER_INDEX is required")
	}

	if c.IsProduction() && c.S3.AttachmentsBucket == "" {
		return fmt.Errorf("ATTACHMENTS_BUCKET is required in production")
	}

	if c.S3.UploadURLExpirySeconds <= 0 {
		return fmt.Errorf("UPLOAD_URL_EXPIRY_SECONDS must be positive")
	}

	return nil
}

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
	}{
		{
			name: "valid configuration",
			envVars: map[string]string{
				"JWT_SECRET_KEY": "test-secret",
			},
			expectError: false,
		},
		{
			name:        "missing JWT secret",
			envVars:     map[string]string{},
			expectError: true,
		},
		{
			name: "production requires long JWT secret",
			envVars: map[string]string{
				"SERVER_ENVIRONMENT": "production",
				"JWT_SECRET_KEY":     "short",
				"ATTACHMENTS_BUCKET": "todo-attachments",
			},
			expectError: true,
		},
		{
			name: "production requires attachments bucket",
			envVars: map[string]string{
				"SERVER_ENVIRONMENT": "production",
				"JWT_SECRET_KEY":     "a-very-long-secret-key-for-production-use",
			},
			expectError: true,
		},
		{
			name: "invalid environment",
			envVars: map[string]string{
				"SERVER_ENVIRONMENT": "staging",
				"JWT_SECRET_KEY":     "test-secret",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment before each test
			os.Clearenv()

			for key, value := range tt.envVars {
				os.Setenv(key, value)
			}

			cfg, err := LoadConfig()

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, cfg)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET_KEY", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "todos", cfg.DynamoDB.TodosTable)
	assert.Equal(t, "todos-by-user", cfg.DynamoDB.TodosByUserIndex)
	assert.Equal(t, 300, cfg.S3.UploadURLExpirySeconds)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET_KEY", "test-secret")
	os.Setenv("PORT", "9090")
	os.Setenv("TODOS_TABLE", "todos-dev")
	os.Setenv("TODOS_BY_USER_INDEX", "todos-by-user-dev")
	os.Setenv("DYNAMODB_ENDPOINT", "http://localhost:8000")
	os.Setenv("ATTACHMENTS_BUCKET", "todo-attachments-dev")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "todos-dev", cfg.DynamoDB.TodosTable)
	assert.Equal(t, "todos-by-user-dev", cfg.DynamoDB.TodosByUserIndex)
	assert.Equal(t, "http://localhost:8000", cfg.DynamoDB.Endpoint)
	assert.Equal(t, "todo-attachments-dev", cfg.S3.AttachmentsBucket)
}

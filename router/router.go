package router

import (
	"github.com/gin-gonic/gin"

	"github.com/andradericardo/serverless-project/config"
	"github.com/andradericardo/serverless-project/handlers"
	"github.com/andradericardo/serverless-project/middleware"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config        *config.Config
	TodoHandler   *handlers.TodoHandler
	HealthHandler *handlers.HealthHandler
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Global Middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health routes don't require auth
	r.GET("/health", deps.HealthHandler.LivenessCheck)

	// Versioned API Group (v1)
	v1 := r.Group("/v1")
	{
		authRoutes := v1.Group("")
		authRoutes.Use(middleware.AuthMiddleware(&deps.Config.Server))
		{
			todoRoutes := authRoutes.Group("/todos")
			{
				todoRoutes.GET("", deps.TodoHandler.ListTodosHandler)
				todoRoutes.POST("", deps.TodoHandler.CreateTodoHandler)
				todoRoutes.PATCH("/:todoId", deps.TodoHandler.UpdateTodoHandler)
				todoRoutes.DELETE("/:todoId", deps.TodoHandler.DeleteTodoHandler)
				todoRoutes.POST("/:todoId/attachment", deps.TodoHandler.GenerateUploadURLHandler)
			}
		}
	}

	return r
}

package api

import (
	"github.com/gin-gonic/gin"

	"github.com/taskio/taskboard/api/handlers"
	"github.com/taskio/taskboard/pkg/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth     *service.AuthService
	Users    *service.UserService
	Projects *service.ProjectService
	Tasks    *service.TaskService
	Tags     *service.TagService
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(svc Services) *gin.Engine {
	r := gin.Default()
	r.Use(RequestID())

	// Ping endpoint for health check
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	userHandler := handlers.NewUserHandler(svc.Users, svc.Auth)
	projectHandler := handlers.NewProjectHandler(svc.Projects)
	taskHandler := handlers.NewTaskHandler(svc.Tasks)
	tagHandler := handlers.NewTagHandler(svc.Tags)

	user := r.Group("/user")
	{
		user.POST("/login", userHandler.Login)
		user.POST("", userHandler.Register)
		user.GET("", userHandler.List)
		user.GET("/:id", userHandler.Get)
		user.PATCH("/:id", userHandler.Update)
		user.DELETE("/:id", userHandler.Delete)
	}

	projects := r.Group("/projects")
	{
		projects.POST("", projectHandler.Create)
		projects.GET("", projectHandler.List)
		projects.GET("/:id", projectHandler.Get)
		projects.PATCH("/:id", projectHandler.Update)
		projects.DELETE("/:id", projectHandler.Delete)
		projects.POST("/:id/members", projectHandler.AddMembers)
	}

	tasks := r.Group("/tasks")
	{
		tasks.POST("", taskHandler.Create)
		tasks.GET("", taskHandler.List)
		tasks.GET("/:id", taskHandler.Get)
		tasks.PATCH("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
		tasks.POST("/:id/tags", taskHandler.AddTags)
		tasks.POST("/:id/assignees", taskHandler.AddAssignee)
	}

	tags := r.Group("/tags")
	{
		tags.POST("", tagHandler.Create)
		tags.GET("", tagHandler.List)
		tags.GET("/:id", tagHandler.Get)
		tags.PATCH("/:id", tagHandler.Update)
		tags.DELETE("/:id", tagHandler.Delete)
	}

	return r
}

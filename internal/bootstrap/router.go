package bootstrap

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	httpapi "github.com/TaskHive-441/go-task-backend/internal/api/http"
	"github.com/TaskHive-441/go-task-backend/internal/api/http/middleware"
	"github.com/TaskHive-441/go-task-backend/internal/auth"
	authmw "github.com/TaskHive-441/go-task-backend/internal/auth/middleware"
	"github.com/TaskHive-441/go-task-backend/internal/notifications"
	projecthttp "github.com/TaskHive-441/go-task-backend/internal/projects/http"
	projectrepo "github.com/TaskHive-441/go-task-backend/internal/projects/repository"
	projectservice "github.com/TaskHive-441/go-task-backend/internal/projects/service"
	"github.com/TaskHive-441/go-task-backend/internal/sweeper"
	taskhttp "github.com/TaskHive-441/go-task-backend/internal/tasks/http"
	taskrepo "github.com/TaskHive-441/go-task-backend/internal/tasks/repository"
	taskservice "github.com/TaskHive-441/go-task-backend/internal/tasks/service"
	userhttp "github.com/TaskHive-441/go-task-backend/internal/users/http"
	userrepo "github.com/TaskHive-441/go-task-backend/internal/users/repository"
	userservice "github.com/TaskHive-441/go-task-backend/internal/users/service"
	"github.com/TaskHive-441/go-task-backend/internal/verification"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	DB             *pgxpool.Pool
	Redis          *redis.Client
	AuthClient     *fbauth.Client // nil enables the X-User-Id header fallback
}

type Router struct {
	Engine  *gin.Engine
	Sweeper *sweeper.Sweeper
}

func BuildRouter(dep RouterDeps) *Router {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id", "X-User-Id"},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	userRepo := userrepo.NewRepo(dep.DB)
	projectRepo := projectrepo.NewRepo(dep.DB)
	taskRepo := taskrepo.NewRepo(dep.DB)

	tokenStore := verification.NewStore(dep.Redis)
	sink := notifications.NewRedisSink(dep.Redis)

	usersSvc := userservice.NewUserService(userRepo, tokenStore)
	projectsSvc := projectservice.NewProjectService(projectRepo, usersSvc, sink)
	tasksSvc := taskservice.NewTaskService(taskRepo, projectsSvc)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())
	api.Use(middleware.RateLimitMiddleware(rate.Limit(20), 40))

	if dep.AuthClient != nil {
		api.Use(authmw.FirebaseAuthMiddleware(dep.AuthClient))
	}
	api.Use(auth.WithUser(usersSvc))

	projectHandler := projecthttp.NewHandler(projectsSvc, usersSvc)
	projectsGroup := api.Group("/projects")
	projectHandler.Register(projectsGroup)

	taskHandler := taskhttp.NewHandler(tasksSvc)
	taskHandler.RegisterProjectSubroutes(projectsGroup)
	taskHandler.RegisterTaskRoutes(api.Group("/tasks"))

	userHandler := userhttp.NewHandler(usersSvc)
	userHandler.Register(api.Group("/users"))
	userHandler.RegisterVerification(api.Group("/verification"))

	return &Router{Engine: r, Sweeper: sweeper.New(projectRepo, sink)}
}

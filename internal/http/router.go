package http

import (
	"log/slog"

	"expertqa/internal/db"
	"expertqa/internal/http/handlers"
	"expertqa/internal/http/middleware"
	"expertqa/internal/metrics"
	"expertqa/internal/services"
	"expertqa/internal/session"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "expertqa"

type Dependencies struct {
	Logger          *slog.Logger
	Acquire         db.AcquireFunc
	Sessions        session.Store
	Identity        *services.IdentityResolver
	AuthService     *services.AuthService
	QuestionService *services.QuestionService
	UserService     *services.UserService
}

func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	// Ahead of Logger: otelgin restores the request context when it returns.
	router.Use(otelgin.Middleware(serviceName))
	router.Use(middleware.Logger(deps.Logger))
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics())

	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.Sessions)
	questionHandler := handlers.NewQuestionHandler(deps.QuestionService)
	userHandler := handlers.NewUserHandler(deps.UserService)

	router.GET("/healthz", handlers.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	app := router.Group("")
	if deps.Acquire != nil {
		app.Use(middleware.DBLease(deps.Acquire))
	}
	app.Use(middleware.Identity(deps.Sessions, deps.Identity))
	{
		app.GET("/", questionHandler.Home)
		app.GET("/question/:id", questionHandler.Question)

		app.GET("/login", authHandler.LoginForm)
		app.POST("/login", authHandler.Login)
		app.GET("/register", authHandler.RegisterForm)
		app.POST("/register", authHandler.Register)
		app.GET("/logout", authHandler.Logout)

		app.GET("/ask", questionHandler.AskForm)
		app.POST("/ask", questionHandler.Ask)
		app.GET("/answer/:id", questionHandler.AnswerForm)
		app.POST("/answer/:id", questionHandler.Answer)
		app.GET("/unanswered", questionHandler.Unanswered)

		app.GET("/users", userHandler.List)
		app.GET("/promote/:user_id", userHandler.Promote)
		app.GET("/demote/:user_id", userHandler.Demote)
	}

	return router
}

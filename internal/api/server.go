package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/festflow/festflow-api/docs"
	v1 "github.com/festflow/festflow-api/internal/api/handler/v1"
	"github.com/festflow/festflow-api/internal/api/handler/v1/response"
	"github.com/festflow/festflow-api/internal/api/middleware"
	"github.com/festflow/festflow-api/internal/config"
	"github.com/festflow/festflow-api/internal/metrics"
	"github.com/festflow/festflow-api/internal/pkg/jwthelper"
	"github.com/festflow/festflow-api/internal/repository"
	"github.com/festflow/festflow-api/internal/repository/dao"
	"github.com/festflow/festflow-api/internal/service"
)

const basePath = "/api"

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	tokens *jwthelper.Manager
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		tokens: jwthelper.NewManager(conf.API.JWTSigningKey, conf.API.JWTExpiry, conf.API.JWTIssuer),
	}

	s.MountMiddlewares()

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))

	authHandler := v1.NewAuthHandler(service.NewAuthService(userRepo, s.tokens))
	userHandler := v1.NewUserHandler(service.NewUserService(userRepo))
	eventHandler := v1.NewEventHandler(
		service.NewEventService(eventRepo),
		service.NewRegistrationService(eventRepo),
	)
	s.MountHandlers(authHandler, userHandler, eventHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.Logger())
	s.Router.Use(middleware.Metrics())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, userHandler *v1.UserHandler, eventHandler *v1.EventHandler) {
	authenticator := middleware.NewAuthenticator(s.tokens)
	loginLimiter := middleware.NewRateLimiter(s.Config.RateLimit.LoginPerMinute)

	api := s.Router.Group(basePath)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.HandleRegister)
		auth.POST("/login", loginLimiter.Limit(), authHandler.HandleLogin)
		auth.GET("/me", authenticator.VerifyJWT(), userHandler.HandleGetMe)
	}

	events := api.Group("/events")
	{
		events.GET("", eventHandler.HandleListEvents)
		events.GET("/:id", eventHandler.HandleGetEvent)
	}

	protected := api.Group("/events", authenticator.VerifyJWT())
	{
		protected.POST("", eventHandler.HandleCreateEvent)
		protected.PUT("/:id", eventHandler.HandleUpdateEvent)
		protected.DELETE("/:id", eventHandler.HandleDeleteEvent)
		protected.POST("/:id/register", eventHandler.HandleJoinEvent)
		protected.DELETE("/:id/register", eventHandler.HandleLeaveEvent)
	}

	api.GET("/health", v1.HandleHealthcheck)

	s.Router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "FestFlow API"
	docs.SwaggerInfo.Description = "College event management: events, organizers and registrations."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	s.Router.NoRoute(func(ctx *gin.Context) {
		response.RenderErr(ctx, response.ErrRouteNotFound())
	})
}

package v1

import (
	"resume-agent-backend/config"
	"resume-agent-backend/internal/delivery/http/middleware"
	"resume-agent-backend/internal/domain"
	"resume-agent-backend/internal/usecase"
	"resume-agent-backend/pkg/token"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC     domain.AuthUsecase
	ProjectUC  domain.ProjectUsecase
	JobDescUC  domain.JobDescriptionUsecase
	TemplateUC domain.TemplateUsecase
	ResumeUC   domain.ResumeUsecase
	HealthUC   usecase.HealthUsecase
	Tokens     *token.Manager
	Config     *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.GlobalRateLimitMiddleware())
	r.Use(middleware.CSRFMiddleware())

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Login/register get a stricter per-IP limit on top of the global one
	public := v1.Group("")
	public.Use(middleware.RateLimitMiddleware(middleware.AuthRateLimitConfig()))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))
	{
		NewAuthHandler(public, protected, deps.AuthUC, middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig()))
		NewProjectHandler(protected, deps.ProjectUC)
		NewJobDescriptionHandler(protected, deps.JobDescUC)
		NewTemplateHandler(protected, deps.TemplateUC)
		NewResumeHandler(protected, deps.ResumeUC, middleware.RateLimitMiddleware(middleware.GenerateRateLimitConfig()))
	}

	return r
}

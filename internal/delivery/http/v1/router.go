package v1

import (
	"net/http"
	"time"

	"go-outreach-backend/config"
	"go-outreach-backend/internal/delivery/http/middleware"
	"go-outreach-backend/internal/delivery/http/response"
	"go-outreach-backend/internal/domain"
	"go-outreach-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ProgressUC domain.ProgressUsecase
	WizardUC   domain.WizardUsecase
	ResumeUC   domain.ResumeUsecase
	EditorUC   domain.ProfileEditorUsecase
	ContextUC  domain.ContextUsecase
	SMTPUC     domain.SMTPUsecase
	EmailUC    domain.EmailUsecase
	ReviewUC   domain.ReviewUsecase
	ChatUC     domain.ChatUsecase
	ActivityUC domain.ActivityUsecase
	HealthUC   usecase.HealthUsecase
	Config     *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		status := deps.HealthUC.Check(c)
		code := http.StatusOK
		if status["status"] != "ok" {
			code = http.StatusServiceUnavailable
		}
		response.Success(c, code, "Health", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	aiLimiter := middleware.RateLimitMiddleware(middleware.AIRateLimitConfig())
	uploadLimiter := middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig())

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config))
	{
		NewProgressHandler(protected, deps.ProgressUC, deps.WizardUC)
		NewResumeHandler(protected, deps.ResumeUC, deps.WizardUC, uploadLimiter, aiLimiter)
		NewEditorHandler(protected, deps.EditorUC)
		NewContextHandler(protected, deps.ContextUC, deps.WizardUC)
		NewSMTPHandler(protected, deps.SMTPUC, deps.WizardUC)
		NewEmailHandler(protected, deps.EmailUC, deps.ChatUC, aiLimiter)
		NewReviewHandler(protected, deps.ReviewUC)
		NewLogsHandler(protected, deps.ActivityUC)
	}

	return r
}

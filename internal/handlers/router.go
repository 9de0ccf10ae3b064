package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/account-service/internal/repositories"
	"github.com/SAP-F-2025/account-service/internal/services"
	"github.com/SAP-F-2025/account-service/internal/utils"
	"github.com/SAP-F-2025/account-service/internal/validator"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	directoryHandler *DirectoryHandler
	sessionManager   services.SessionManager
	repo             repositories.Repository
	logger           utils.Logger
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
	repo repositories.Repository,
) *HandlerManager {
	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Accounts(), serviceManager.Sessions(), validator, logger),
		directoryHandler: NewDirectoryHandler(serviceManager.Directory(), logger),
		sessionManager:   serviceManager.Sessions(),
		repo:             repo,
		logger:           logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", hm.healthCheck)

	v1 := router.Group("/api/v1")
	{
		// Auth routes: open to anonymous clients
		auth := v1.Group("/auth")
		{
			auth.POST("/teachers/sign-up", hm.authHandler.SignUpTeacher)
			auth.POST("/donors/sign-up", hm.authHandler.SignUpDonor)
			auth.POST("/sign-in", hm.authHandler.SignIn)
			auth.POST("/sign-out", hm.authHandler.SignOut)
			auth.POST("/verify", hm.authHandler.VerifyAccount)
			auth.POST("/password-reset/request", hm.authHandler.ForgotPassword)
			auth.POST("/password-reset/complete", hm.authHandler.ResetPassword)
			auth.GET("/session", hm.authHandler.CurrentSession)
		}

		// Directory routes: listings are public, exports need a session
		v1.GET("/teachers", hm.directoryHandler.ListTeachers)
		v1.GET("/donors", hm.directoryHandler.ListDonors)
		v1.GET("/teachers/export", RequireSessionMiddleware(hm.sessionManager), hm.directoryHandler.ExportTeachers)
		v1.GET("/donors/export", RequireSessionMiddleware(hm.sessionManager), hm.directoryHandler.ExportDonors)
	}
}

// healthCheck reports store connectivity
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} ErrorResponse
// @Router /health [get]
func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.repo.Ping(c.Request.Context()); err != nil {
		hm.logger.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Message: "store unavailable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

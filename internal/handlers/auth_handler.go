package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/account-service/internal/services"
	"github.com/SAP-F-2025/account-service/internal/utils"
	"github.com/SAP-F-2025/account-service/internal/validator"
)

// AuthHandler exposes the registration, verification, sign-in and
// password-reset operations. Operation outcomes are HTTP 200 with the
// result payload; only malformed requests produce error statuses. The
// presentation layer branches on the result's success flag.
type AuthHandler struct {
	BaseHandler
	accountService services.AccountService
	sessionManager services.SessionManager
	validator      *validator.Validator
}

func NewAuthHandler(
	accountService services.AccountService,
	sessionManager services.SessionManager,
	validator *validator.Validator,
	logger utils.Logger,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler:    NewBaseHandler(logger),
		accountService: accountService,
		sessionManager: sessionManager,
		validator:      validator,
	}
}

// SignUpTeacher registers a teacher account
// @Summary Register teacher
// @Description Creates a pending teacher account and issues a verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param teacher body validator.TeacherSignUpRequest true "Teacher profile"
// @Success 200 {object} models.RegisterResult
// @Failure 400 {object} ErrorResponse
// @Router /auth/teachers/sign-up [post]
func (h *AuthHandler) SignUpTeacher(c *gin.Context) {
	var req services.TeacherSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Registering teacher", "email", req.Email)
	result := h.accountService.RegisterTeacher(c.Request.Context(), &req)
	c.JSON(http.StatusOK, result)
}

// SignUpDonor registers a donor account
// @Summary Register donor
// @Description Creates a pending donor account and issues a verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param donor body validator.DonorSignUpRequest true "Donor profile"
// @Success 200 {object} models.RegisterResult
// @Failure 400 {object} ErrorResponse
// @Router /auth/donors/sign-up [post]
func (h *AuthHandler) SignUpDonor(c *gin.Context) {
	var req services.DonorSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Registering donor", "email", req.Email)
	result := h.accountService.RegisterDonor(c.Request.Context(), &req)
	c.JSON(http.StatusOK, result)
}

// SignIn authenticates an account
// @Summary Sign in
// @Description Authenticates against both role collections and opens a session
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body validator.SignInRequest true "Credentials"
// @Success 200 {object} models.SignInResult
// @Failure 400 {object} ErrorResponse
// @Router /auth/sign-in [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req validator.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Signing in", "email", req.Email)
	result := h.accountService.SignIn(c.Request.Context(), req.Email, req.Password)

	// The session is owned here, not by the account service: recording
	// the authenticated flag is the caller's responsibility.
	if result.Success {
		if err := h.sessionManager.Login(c.Request.Context(), result.Role, req.Email); err != nil {
			h.LogError(c, err, "Failed to open session", "email", req.Email)
		}
	}

	c.JSON(http.StatusOK, result)
}

// SignOut closes the current session
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /auth/sign-out [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.sessionManager.Logout(c.Request.Context()); err != nil {
		h.LogError(c, err, "Failed to close session")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to sign out",
		})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: "Signed out"})
}

// VerifyAccount activates a pending account
// @Summary Verify account
// @Description Matches the submitted code against the stored verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param verification body validator.VerifyAccountRequest true "Verification data"
// @Success 200 {object} models.VerifyResult
// @Failure 400 {object} ErrorResponse
// @Router /auth/verify [post]
func (h *AuthHandler) VerifyAccount(c *gin.Context) {
	var req validator.VerifyAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if !req.Role.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid role",
		})
		return
	}

	h.LogRequest(c, "Verifying account", "email", req.Email, "role", req.Role)
	result := h.accountService.Verify(c.Request.Context(), req.Email, req.Role, req.VerificationCode)
	c.JSON(http.StatusOK, result)
}

// ForgotPassword issues a password-reset code
// @Summary Request password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validator.ForgotPasswordRequest true "Account email"
// @Success 200 {object} models.ResetRequestResult
// @Failure 400 {object} ErrorResponse
// @Router /auth/password-reset/request [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req validator.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Requesting password reset", "email", req.Email)
	result := h.accountService.RequestPasswordReset(c.Request.Context(), req.Email)
	c.JSON(http.StatusOK, result)
}

// ResetPassword completes a password reset
// @Summary Reset password
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body validator.ResetPasswordRequest true "Reset data"
// @Success 200 {object} models.ResetResult
// @Failure 400 {object} ErrorResponse
// @Router /auth/password-reset/complete [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req validator.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Resetting password", "email", req.Email)
	result := h.accountService.ResetPassword(c.Request.Context(), req.Email, req.VerificationCode, req.NewPassword)
	c.JSON(http.StatusOK, result)
}

// CurrentSession reports the signed-in principal
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} SuccessResponse{data=services.Session}
// @Router /auth/session [get]
func (h *AuthHandler) CurrentSession(c *gin.Context) {
	session, err := h.sessionManager.CurrentSession(c.Request.Context())
	if err != nil {
		h.LogError(c, err, "Failed to read session")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to read session",
		})
		return
	}
	if session == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Not authenticated",
		})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: session})
}

package v1

import (
	"net/http"

	"resume-agent-backend/internal/delivery/http/response"
	"resume-agent-backend/internal/domain"
	"resume-agent-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, loginLimiter gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC}

	// Public Routes
	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/register", handler.Register)
		// Login gets a tighter per-IP limit than the other auth routes
		publicAuth.POST("/login", loginLimiter, handler.Login)
	}

	// Protected Routes
	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
		protectedAuth.GET("/profile", handler.Me)
		protectedAuth.PUT("/profile", handler.UpdateProfile)
		protectedAuth.POST("/github/connect", handler.ConnectGithub)
		protectedAuth.DELETE("/github/disconnect", handler.DisconnectGithub)
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ConnectGithubRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// Register godoc
// @Summary      User Registration
// @Description  Register a new user with email, name, and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration Details"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, token, err := h.authUC.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Registration successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// Login godoc
// @Summary      User Login
// @Description  Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Login Credentials"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, token, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// Me godoc
// @Summary      Current User
// @Description  Get the authenticated user's profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	user, err := h.authUC.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User details", user)
}

// UpdateProfile godoc
// @Summary      Update Profile
// @Description  Partially update the authenticated user's profile fields
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.ProfileUpdate  true  "Profile Fields"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /auth/profile [put]
// @Security     BearerAuth
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var update domain.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.authUC.UpdateProfile(c.Request.Context(), userID, &update)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", user)
}

// ConnectGithub godoc
// @Summary      Connect GitHub Account
// @Description  Link a GitHub account using a personal access token. The token is verified against the GitHub API and stored encrypted.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        connect  body      ConnectGithubRequest  true  "GitHub Access Token"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/github/connect [post]
// @Security     BearerAuth
func (h *AuthHandler) ConnectGithub(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req ConnectGithubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	conn, err := h.authUC.ConnectGithub(c.Request.Context(), userID, req.AccessToken)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "GitHub account connected", conn)
}

// DisconnectGithub godoc
// @Summary      Disconnect GitHub Account
// @Description  Remove the linked GitHub account and its stored token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /auth/github/disconnect [delete]
// @Security     BearerAuth
func (h *AuthHandler) DisconnectGithub(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.authUC.DisconnectGithub(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "GitHub account disconnected", nil)
}

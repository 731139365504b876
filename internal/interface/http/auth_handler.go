package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/votiy-api/internal/application"
	"github.com/oksasatya/votiy-api/internal/interface/middleware"
	"github.com/oksasatya/votiy-api/pkg/response"
)

type AuthHandler struct {
	Svc *application.AuthService
}

func NewAuthHandler(svc *application.AuthService) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

type signupRequest struct {
	Email     string  `json:"email" binding:"required,trimemail"`
	Password  string  `json:"password" binding:"required,pwd"`
	FirstName string  `json:"firstName" binding:"required,notblank"`
	LastName  string  `json:"lastName" binding:"required,notblank"`
	Phone     *string `json:"phone"`
}

func (r signupRequest) input() application.CreateUserInput {
	return application.CreateUserInput{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
	}
}

type signinRequest struct {
	Email    string `json:"email" binding:"required,trimemail"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func sessionBody(message string, s *application.Session) gin.H {
	return gin.H{
		"message":   message,
		"user":      s.User,
		"token":     s.Token,
		"expiresAt": s.ExpiresAt,
	}
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	sess, err := h.Svc.Signup(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, sessionBody("User created successfully", sess))
}

// Signin POST /api/auth/signin (also /api/auth/login)
func (h *AuthHandler) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	sess, err := h.Svc.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessionBody("Login successful", sess))
}

// Signout POST /api/auth/signout. Tokens are stateless, so there is nothing to revoke.
func (h *AuthHandler) Signout(c *gin.Context) {
	response.Message(c, http.StatusOK, "Signed out successfully")
}

// Profile GET /api/auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	u, err := h.Svc.Profile(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"user": u})
}

// Refresh POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	sess, err := h.Svc.Refresh(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"token": sess.Token, "expiresAt": sess.ExpiresAt})
}

// ChangePassword PUT /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	meta := application.RequestMeta{IP: middleware.ClientIP(c), UserAgent: c.GetHeader("User-Agent")}
	if err := h.Svc.ChangePassword(c.Request.Context(), currentUserID(c), req.CurrentPassword, req.NewPassword, meta); err != nil {
		respondError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Password changed successfully")
}

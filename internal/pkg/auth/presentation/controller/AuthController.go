package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/application/service"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/webutil"
)

// AuthController exposes the signup, sign-in and password reset endpoints.
type AuthController struct {
	svc *service.Service
}

func NewAuthController(svc *service.Service) *AuthController {
	return &AuthController{svc: svc}
}

type signUpRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type verifyRequest struct {
	Email string `json:"email" binding:"required"`
	Otp   int    `json:"otp" binding:"required"`
}

type signInRequest struct {
	EmailOrUsername string `json:"emailOrUsername" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

type newPasswordRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

func (ctl *AuthController) VerifyEmailForSignUp() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		email, err := ctl.svc.VerifyEmailForSignUp(c.Request.Context(), req.Email, req.Username, req.Password)
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "OTP sent", "email": email})
	}
}

func (ctl *AuthController) SignUpAfterVerify() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		tok, err := ctl.svc.SignUpAfterVerify(c.Request.Context(), req.Email, req.Otp)
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"access_token": tok})
	}
}

func (ctl *AuthController) SignIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		tok, err := ctl.svc.SignIn(c.Request.Context(), req.EmailOrUsername, req.Password)
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"access_token": tok})
	}
}

func (ctl *AuthController) VerifyEmailForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req forgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		email, err := ctl.svc.VerifyEmailForgotPassword(c.Request.Context(), req.Email)
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "OTP sent", "email": email})
	}
}

func (ctl *AuthController) CheckOTPForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := ctl.svc.CheckOTPForgotPassword(c.Request.Context(), req.Email, req.Otp); err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "OTP correct", "email": req.Email})
	}
}

func (ctl *AuthController) NewPasswordAfterVerify() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req newPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := ctl.svc.NewPasswordAfterVerify(c.Request.Context(), req.Email, req.Password); err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
	}
}

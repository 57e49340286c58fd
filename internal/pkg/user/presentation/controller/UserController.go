package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/presentation/middleware"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/user/application/service"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/webutil"
)

type UserController struct {
	svc *service.Service
}

func NewUserController(svc *service.Service) *UserController {
	return &UserController{svc: svc}
}

type updateProfileRequest struct {
	Username *string `json:"username"`
	Name     *string `json:"name"`
	Bio      *string `json:"bio"`
}

type uploadAvaRequest struct {
	Ava string `json:"ava" binding:"required"`
}

type changePasswordRequest struct {
	OldPass     string `json:"oldPass" binding:"required"`
	NewPass     string `json:"newPass" binding:"required"`
	ConfirmPass string `json:"confirmPass" binding:"required"`
}

func (ctl *UserController) GetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{
			"id":       me.ID,
			"email":    me.Email,
			"username": me.Username,
			"name":     me.Name,
			"bio":      me.Bio,
			"ava":      me.Ava,
		})
	}
}

func (ctl *UserController) GetProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		profile, err := ctl.svc.GetProfile(c.Request.Context(), me)
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func (ctl *UserController) UpdateProfileOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		me := middleware.CurrentUser(c)
		out, err := ctl.svc.UpdateProfile(c.Request.Context(), me, service.UpdateProfileInput{
			Username: req.Username,
			Name:     req.Name,
			Bio:      req.Bio,
		})
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func (ctl *UserController) UploadAvaOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req uploadAvaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		me := middleware.CurrentUser(c)
		url, err := ctl.svc.UploadAva(c.Request.Context(), me.ID, req.Ava)
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ava": url})
	}
}

func (ctl *UserController) RemoveAva() gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		if err := ctl.svc.RemoveAva(c.Request.Context(), me.ID); err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": "SUCCESS"})
	}
}

func (ctl *UserController) ChangePassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req changePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		me := middleware.CurrentUser(c)
		if err := ctl.svc.ChangePassword(c.Request.Context(), me, req.OldPass, req.NewPass, req.ConfirmPass); err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
	}
}

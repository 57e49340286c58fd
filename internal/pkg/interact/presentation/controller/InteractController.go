package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/presentation/middleware"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/interact/application/service"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/webutil"
)

type InteractController struct {
	svc *service.Service
}

func NewInteractController(svc *service.Service) *InteractController {
	return &InteractController{svc: svc}
}

type commentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

type shareRequest struct {
	Link   string `json:"link" binding:"required"`
	UserID string `json:"userId" binding:"required"`
}

func (ctl *InteractController) LikePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		out, err := ctl.svc.LikePost(c.Request.Context(), me.ID, c.Param("id"), c.Query("react"))
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func (ctl *InteractController) DislikePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		msg, err := ctl.svc.DislikePost(c.Request.Context(), me.ID, c.Param("id"))
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": msg})
	}
}

func (ctl *InteractController) Comment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req commentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		me := middleware.CurrentUser(c)
		out, err := ctl.svc.Comment(c.Request.Context(), me.ID, c.Param("id"), req.Comment)
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

func (ctl *InteractController) FollowUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		out, err := ctl.svc.FollowUser(c.Request.Context(), me.ID, c.Param("id"))
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

func (ctl *InteractController) CheckIfUserFollowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		followed, err := ctl.svc.CheckIfUserFollowed(c.Request.Context(), me.ID, c.Param("id"))
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, followed)
	}
}

func (ctl *InteractController) UnfollowUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		msg, err := ctl.svc.UnfollowUser(c.Request.Context(), me.ID, c.Param("id"))
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": msg})
	}
}

func (ctl *InteractController) GetUserNotification() gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		list, err := ctl.svc.GetUserNotification(c.Request.Context(), me.ID)
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func (ctl *InteractController) ReadNoti() gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		noti, err := ctl.svc.ReadNoti(c.Request.Context(), me.ID, c.Param("id"))
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, noti)
	}
}

func (ctl *InteractController) SharePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req shareRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		me := middleware.CurrentUser(c)
		msg, err := ctl.svc.SharePost(c.Request.Context(), me.ID, req.UserID, req.Link)
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": msg})
	}
}

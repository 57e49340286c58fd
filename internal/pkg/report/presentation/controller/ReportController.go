package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trang-ptt/INSTARE-BE/internal/apperr"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/presentation/middleware"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/report/application/service"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/webutil"
)

type ReportController struct {
	svc *service.Service
}

func NewReportController(svc *service.Service) *ReportController {
	return &ReportController{svc: svc}
}

type createReportRequest struct {
	UserID *string `json:"userId"`
	PostID *string `json:"postId"`
	Reason string  `json:"reason" binding:"required"`
}

type resolveReportRequest struct {
	Violated *bool  `json:"violated" binding:"required"`
	Reason   string `json:"reason"`
}

func (ctl *ReportController) CreateReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		me := middleware.CurrentUser(c)
		if err := ctl.svc.CreateReport(c.Request.Context(), me.ID, service.CreateReportInput{
			UserID: req.UserID,
			PostID: req.PostID,
			Reason: req.Reason,
		}); err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"code": "SUCCESS"})
	}
}

// requireAdmin gates the moderation endpoints.
func requireAdmin(c *gin.Context) bool {
	me := middleware.CurrentUser(c)
	if !me.IsAdmin() {
		webutil.RespondError(c, apperr.Forbidden("Permission required"))
		return false
	}
	return true
}

func (ctl *ReportController) GetPostReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAdmin(c) {
			return
		}
		list, err := ctl.svc.GetPostReports(c.Request.Context())
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func (ctl *ReportController) GetProfileReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAdmin(c) {
			return
		}
		list, err := ctl.svc.GetProfileReports(c.Request.Context())
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func (ctl *ReportController) ViewReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAdmin(c) {
			return
		}
		view, err := ctl.svc.ViewReport(c.Request.Context(), c.Param("id"))
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func (ctl *ReportController) ResolveReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireAdmin(c) {
			return
		}
		var req resolveReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		me := middleware.CurrentUser(c)
		if err := ctl.svc.ResolveReport(c.Request.Context(), me.ID, c.Param("id"), *req.Violated, req.Reason); err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": "SUCCESS"})
	}
}

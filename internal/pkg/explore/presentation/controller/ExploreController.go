package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trang-ptt/INSTARE-BE/internal/pkg/explore/application/service"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/webutil"
)

type ExploreController struct {
	svc *service.Service
}

func NewExploreController(svc *service.Service) *ExploreController {
	return &ExploreController{svc: svc}
}

func (ctl *ExploreController) SearchUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := ctl.svc.SearchUser(c.Request.Context(), c.Query("search"))
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, results)
	}
}

func (ctl *ExploreController) ViewPost() gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := ctl.svc.ViewPost(c.Request.Context(), c.Param("id"))
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

func (ctl *ExploreController) ViewUserProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := ctl.svc.ViewUserProfile(c.Request.Context(), c.Param("username"))
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

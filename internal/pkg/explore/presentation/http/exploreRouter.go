package http

import (
	"github.com/gin-gonic/gin"

	"github.com/trang-ptt/INSTARE-BE/internal/pkg/explore/application/service"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/explore/presentation/controller"
)

// RegisterRoutes binds the public read endpoints; no auth middleware here.
func RegisterRoutes(g *gin.RouterGroup, svc *service.Service) {
	ctl := controller.NewExploreController(svc)

	g.GET("/no-auth/searchUser", ctl.SearchUser())
	g.GET("/no-auth/viewPost/:id", ctl.ViewPost())
	g.GET("/no-auth/viewUserProfile/:username", ctl.ViewUserProfile())
}

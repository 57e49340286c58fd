package http

import (
	"github.com/gin-gonic/gin"

	"github.com/trang-ptt/INSTARE-BE/internal/pkg/report/application/service"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/report/presentation/controller"
)

// RegisterRoutes binds the moderation endpoints. The group is mounted behind
// the auth middleware; the admin gate sits inside the controllers.
func RegisterRoutes(g *gin.RouterGroup, svc *service.Service) {
	ctl := controller.NewReportController(svc)

	g.POST("/report", ctl.CreateReport())
	g.GET("/report/posts", ctl.GetPostReports())
	g.GET("/report/users", ctl.GetProfileReports())
	g.GET("/report/:id", ctl.ViewReport())
	g.PUT("/report/:id", ctl.ResolveReport())
}

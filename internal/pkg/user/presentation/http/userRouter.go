package http

import (
	"github.com/gin-gonic/gin"

	"github.com/trang-ptt/INSTARE-BE/internal/pkg/user/application/service"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/user/presentation/controller"
)

// RegisterRoutes binds the account endpoints. The group is mounted behind the
// auth middleware.
func RegisterRoutes(g *gin.RouterGroup, svc *service.Service) {
	ctl := controller.NewUserController(svc)

	g.GET("/user/getMe", ctl.GetMe())
	g.GET("/user/getProfile", ctl.GetProfile())
	g.PATCH("/user/updateProfileOnly", ctl.UpdateProfileOnly())
	g.PATCH("/user/uploadAvaOnly", ctl.UploadAvaOnly())
	g.PATCH("/user/changePassword", ctl.ChangePassword())
	g.DELETE("/user/removeAva", ctl.RemoveAva())
}

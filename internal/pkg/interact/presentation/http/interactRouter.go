package http

import (
	"github.com/gin-gonic/gin"

	"github.com/trang-ptt/INSTARE-BE/internal/pkg/interact/application/service"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/interact/presentation/controller"
)

// RegisterRoutes binds the interaction endpoints. The group is mounted behind
// the auth middleware.
func RegisterRoutes(g *gin.RouterGroup, svc *service.Service) {
	ctl := controller.NewInteractController(svc)

	g.POST("/interact/likePost/:id", ctl.LikePost())
	g.DELETE("/interact/dislikePost/:id", ctl.DislikePost())
	g.POST("/interact/comment/:id", ctl.Comment())
	g.POST("/interact/followUser/:id", ctl.FollowUser())
	g.GET("/interact/checkIfUserFollowed/:id", ctl.CheckIfUserFollowed())
	g.DELETE("/interact/unfollowUser/:id", ctl.UnfollowUser())
	g.GET("/interact/getUserNotification", ctl.GetUserNotification())
	g.PATCH("/interact/readNoti/:id", ctl.ReadNoti())
	g.POST("/interact/sharePost", ctl.SharePost())
}

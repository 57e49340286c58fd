package http

import (
	"github.com/gin-gonic/gin"

	"github.com/trang-ptt/INSTARE-BE/internal/pkg/post/application/service"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/post/presentation/controller"
)

// RegisterRoutes binds the post endpoints. The group is mounted behind the
// auth middleware.
func RegisterRoutes(g *gin.RouterGroup, svc *service.Service) {
	ctl := controller.NewPostController(svc)

	g.POST("/post/createPost", ctl.CreatePost())
	g.GET("/post/getAllPosts", ctl.GetAllPosts())
	g.GET("/post/checkIfUserLikePost/:id", ctl.CheckIfUserLikePost())
	g.DELETE("/post/:id", ctl.DeletePost())
}

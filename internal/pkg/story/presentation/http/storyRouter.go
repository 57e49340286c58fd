package http

import (
	"github.com/gin-gonic/gin"

	"github.com/trang-ptt/INSTARE-BE/internal/pkg/story/application/service"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/story/presentation/controller"
)

// RegisterRoutes binds the story endpoints. The group is mounted behind the
// auth middleware.
func RegisterRoutes(g *gin.RouterGroup, svc *service.Service) {
	ctl := controller.NewStoryController(svc)

	g.POST("/story/createStory", ctl.CreateStory())
	g.GET("/story/getAllStoryBoxes", ctl.GetAllStoryBoxes())
	g.GET("/story/getUserStories/:id", ctl.GetUserStories())
	g.POST("/story/readStory/:id", ctl.ReadStory())
}

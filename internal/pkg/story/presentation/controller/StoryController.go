package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/presentation/middleware"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/story/application/service"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/webutil"
)

type StoryController struct {
	svc *service.Service
}

func NewStoryController(svc *service.Service) *StoryController {
	return &StoryController{svc: svc}
}

type createStoryRequest struct {
	Media string `json:"media" binding:"required"`
}

func (ctl *StoryController) CreateStory() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createStoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		me := middleware.CurrentUser(c)
		created, err := ctl.svc.CreateStory(c.Request.Context(), me.ID, req.Media)
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func (ctl *StoryController) GetAllStoryBoxes() gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		boxes, err := ctl.svc.GetAllStoryBoxes(c.Request.Context(), me.ID)
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, boxes)
	}
}

func (ctl *StoryController) GetUserStories() gin.HandlerFunc {
	return func(c *gin.Context) {
		stories, err := ctl.svc.GetUserStories(c.Request.Context(), c.Param("id"))
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stories)
	}
}

func (ctl *StoryController) ReadStory() gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		rd, err := ctl.svc.ReadStory(c.Request.Context(), me.ID, c.Param("id"))
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, rd)
	}
}

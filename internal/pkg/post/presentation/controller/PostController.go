package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/presentation/middleware"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/post/application/service"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/webutil"
)

type PostController struct {
	svc *service.Service
}

func NewPostController(svc *service.Service) *PostController {
	return &PostController{svc: svc}
}

type createPostRequest struct {
	MediaList     []string `json:"mediaList" binding:"required"`
	Caption       *string  `json:"caption"`
	Layout        int      `json:"layout"`
	Emotion       *string  `json:"emotion"`
	TagUserIDList []string `json:"tagUserIdList"`
}

func (ctl *PostController) CreatePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createPostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		me := middleware.CurrentUser(c)
		created, err := ctl.svc.CreatePost(c.Request.Context(), me.ID, service.CreatePostInput{
			MediaList:     req.MediaList,
			Caption:       req.Caption,
			Layout:        req.Layout,
			Emotion:       req.Emotion,
			TagUserIDList: req.TagUserIDList,
		})
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func (ctl *PostController) GetAllPosts() gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		feed, err := ctl.svc.GetAllPosts(c.Request.Context(), me.ID)
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, feed)
	}
}

func (ctl *PostController) CheckIfUserLikePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		react, err := ctl.svc.CheckIfUserLikePost(c.Request.Context(), me.ID, c.Param("id"))
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"react": react})
	}
}

func (ctl *PostController) DeletePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		if err := ctl.svc.DeletePost(c.Request.Context(), me.ID, c.Param("id")); err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": "SUCCESS"})
	}
}

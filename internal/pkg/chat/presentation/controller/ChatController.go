package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/presentation/middleware"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/chat/application/usecase"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/webutil"
)

// ChatController exposes the REST side of messaging: opening a thread and
// listing contacts. Sending goes through the websocket gateway.
type ChatController struct {
	enterUC    *usecase.EnterConversationUseCase
	contactsUC *usecase.ListContactsUseCase
}

func NewChatController(enterUC *usecase.EnterConversationUseCase, contactsUC *usecase.ListContactsUseCase) *ChatController {
	return &ChatController{enterUC: enterUC, contactsUC: contactsUC}
}

func (ctl *ChatController) EnterConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		out, err := ctl.enterUC.Execute(c.Request.Context(), me.ID, c.Param("userId"))
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func (ctl *ChatController) GetListContact() gin.HandlerFunc {
	return func(c *gin.Context) {
		me := middleware.CurrentUser(c)
		out, err := ctl.contactsUC.Execute(c.Request.Context(), me.ID)
		if err != nil {
			webutil.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

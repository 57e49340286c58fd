package webutil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trang-ptt/INSTARE-BE/internal/apperr"
)

// RespondError maps err onto the HTTP surface. Business rejections keep their
// reason; anything else (persistence failures and the like) is a bare 500.
func RespondError(c *gin.Context, err error) {
	status := apperr.StatusCode(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}

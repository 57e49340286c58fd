package http

import (
	"github.com/gin-gonic/gin"

	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/application/service"
	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/presentation/controller"
)

// RegisterRoutes mounts the unauthenticated auth endpoints under the given group.
func RegisterRoutes(g *gin.RouterGroup, svc *service.Service) {
	ctl := controller.NewAuthController(svc)

	g.POST("/auth/verifyEmailForSignUp", ctl.VerifyEmailForSignUp())
	g.POST("/auth/signUpAfterVerify", ctl.SignUpAfterVerify())
	g.POST("/auth/signIn", ctl.SignIn())
	g.POST("/auth/verifyEmailForgotPassword", ctl.VerifyEmailForgotPassword())
	g.POST("/auth/checkOTPForgotPassword", ctl.CheckOTPForgotPassword())
	g.PATCH("/auth/newPasswordAfterVerify", ctl.NewPasswordAfterVerify())
}

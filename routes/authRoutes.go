package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/trovi/trovi-api/controllers"
)

func AuthRoutes(server *gin.Engine, auth *controllers.AuthController) {
	group := server.Group("/v1/auth")
	{
		group.POST("/register", auth.Register)
		group.GET("/verify-email/:token", auth.VerifyEmail)
		group.POST("/login", auth.Login)
		group.POST("/forgot-password", auth.ForgotPassword)
		group.POST("/confirm-reset-password-code", auth.VerifyCode)
		group.POST("/reset-password", auth.ResetPassword)
	}
}

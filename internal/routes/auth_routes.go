package routes

import (
	"github.com/gin-gonic/gin"
)

func AuthRoutes(api *gin.RouterGroup, deps Deps) {
	auth := api.Group("/auth")
	{
		auth.POST("/otp", deps.Auth.RequestOTP)
		auth.POST("/otp/verify", deps.Auth.VerifyOTP)
	}
}

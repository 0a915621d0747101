package routes

import (
	"github.com/gin-gonic/gin"

	"eballot/internal/middleware"
)

func UserRoutes(api *gin.RouterGroup, deps Deps) {
	user := api.Group("/user")
	user.Use(middleware.RequireAuth(deps.Tokens))
	{
		user.PATCH("/institute", deps.Users.UpdateInstitute)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
)

func InstituteRoutes(api *gin.RouterGroup, deps Deps) {
	api.GET("/institutes", deps.Institutes.List)
}

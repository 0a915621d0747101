package routes

import (
	"net/http"

	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"eballot/internal/auth"
	"eballot/internal/controllers"
)

// Deps is everything the router needs, constructed in main and passed
// down explicitly.
type Deps struct {
	Tokens     *auth.TokenManager
	Auth       *controllers.AuthController
	Votes      *controllers.VoteController
	Admin      *controllers.AdminController
	Users      *controllers.UserController
	Institutes *controllers.InstituteController
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()

	// Recovery middleware
	r.Use(gin.Recovery())

	// Request logging middleware
	r.Use(ginlogger.SetLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	AuthRoutes(api, deps)
	VoteRoutes(api, deps)
	AdminRoutes(api, deps)
	UserRoutes(api, deps)
	InstituteRoutes(api, deps)

	return r
}

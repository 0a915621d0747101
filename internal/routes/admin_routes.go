package routes

import (
	"github.com/gin-gonic/gin"

	"eballot/internal/middleware"
)

func AdminRoutes(api *gin.RouterGroup, deps Deps) {
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin(deps.Tokens))
	{
		admin.GET("/elections", deps.Admin.GetElections)
		admin.POST("/elections", deps.Admin.CreateElection)
		admin.PUT("/elections/:id", deps.Admin.UpdateElection)
		admin.DELETE("/elections/:id", deps.Admin.DeleteElection)

		admin.GET("/elections/:id/positions", deps.Admin.GetPositionsByElection)
		admin.POST("/positions", deps.Admin.CreatePosition)

		admin.GET("/candidates", deps.Admin.GetCandidates)
		admin.POST("/candidates", deps.Admin.CreateCandidate)
		admin.PUT("/candidates/:id", deps.Admin.UpdateCandidate)
		admin.DELETE("/candidates/:id", deps.Admin.DeleteCandidate)

		admin.GET("/analytics", deps.Admin.GetAnalytics)
		admin.GET("/export/leaderboard/:instituteId", deps.Admin.ExportLeaderboard)
	}
}

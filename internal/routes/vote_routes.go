package routes

import (
	"github.com/gin-gonic/gin"

	"eballot/internal/middleware"
)

func VoteRoutes(api *gin.RouterGroup, deps Deps) {
	votes := api.Group("/votes")
	{
		votes.GET("/leaderboard/:instituteId", deps.Votes.GetLeaderboard)
		votes.GET("/elections/active", middleware.RequireAuth(deps.Tokens), deps.Votes.GetActiveElections)
		votes.GET("/elections/:electionId/candidates", deps.Votes.GetElectionCandidates)
		votes.POST("/cast", middleware.RequireAuth(deps.Tokens), deps.Votes.CastVote)
		votes.GET("/check/:electionId", middleware.RequireAuth(deps.Tokens), deps.Votes.CheckVoteStatus)
	}
}

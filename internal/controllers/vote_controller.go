package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eballot/internal/middleware"
	"eballot/internal/services"
)

type VoteController struct {
	svc *services.VoteService
}

func NewVoteController(svc *services.VoteService) *VoteController {
	return &VoteController{svc: svc}
}

type castVoteInput struct {
	ElectionID string                    `json:"electionId" binding:"required"`
	Votes      []services.SelectionInput `json:"votes" binding:"required,min=1,dive"`
}

// GetLeaderboard is the public live tally for an institute.
func (ctl *VoteController) GetLeaderboard(c *gin.Context) {
	instituteID := c.Param("instituteId")

	leaderboard, err := ctl.svc.GetLeaderboard(c.Request.Context(), instituteID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"instituteId": instituteID,
		"leaderboard": leaderboard,
	})
}

// CastVote accepts the caller's ballot for an election.
func (ctl *VoteController) CastVote(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}
	voterID, err := claims.UserID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	var input castVoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	count, err := ctl.svc.CastVote(c.Request.Context(), voterID, input.ElectionID, input.Votes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"votesCount": count,
	})
}

// CheckVoteStatus reports whether the caller has already voted.
func (ctl *VoteController) CheckVoteStatus(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}
	voterID, err := claims.UserID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	hasVoted, err := ctl.svc.HasVoted(c.Request.Context(), voterID, c.Param("electionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"hasVoted": hasVoted})
}

// GetActiveElections lists active elections scoped to the caller's
// institute when one is set.
func (ctl *VoteController) GetActiveElections(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	elections, err := ctl.svc.GetActiveElections(c.Request.Context(), claims.InstituteID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"elections": elections})
}

// GetElectionCandidates returns the public ballot structure.
func (ctl *VoteController) GetElectionCandidates(c *gin.Context) {
	candidates, err := ctl.svc.GetElectionCandidates(c.Request.Context(), c.Param("electionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"eballot/internal/services"
)

type AdminController struct {
	svc   *services.AdminService
	votes *services.VoteService
}

func NewAdminController(svc *services.AdminService, votes *services.VoteService) *AdminController {
	return &AdminController{svc: svc, votes: votes}
}

// Elections

func (ctl *AdminController) GetElections(c *gin.Context) {
	elections, err := ctl.svc.GetElections(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"elections": elections})
}

func (ctl *AdminController) CreateElection(c *gin.Context) {
	var input services.ElectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	election, err := ctl.svc.CreateElection(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Election created", "election": election})
}

func (ctl *AdminController) UpdateElection(c *gin.Context) {
	var input services.ElectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	election, err := ctl.svc.UpdateElection(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Election updated", "election": election})
}

func (ctl *AdminController) DeleteElection(c *gin.Context) {
	if err := ctl.svc.DeleteElection(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Election deleted"})
}

// Positions

func (ctl *AdminController) GetPositionsByElection(c *gin.Context) {
	positions, err := ctl.svc.GetPositionsByElection(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"positions": positions})
}

type positionInput struct {
	ElectionID   string `json:"election_id" binding:"required"`
	Title        string `json:"title" binding:"required"`
	DisplayOrder *int   `json:"display_order"`
}

// CreatePosition is idempotent by (election, title): posting the same
// title twice returns the existing position with a 200.
func (ctl *AdminController) CreatePosition(c *gin.Context) {
	var input positionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	position, created, err := ctl.svc.FindOrCreatePosition(c.Request.Context(), input.ElectionID, input.Title, input.DisplayOrder)
	if err != nil {
		respondError(c, err)
		return
	}

	if created {
		c.JSON(http.StatusCreated, gin.H{"message": "Position created", "position": position})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Position already exists", "position": position})
}

// Candidates

func (ctl *AdminController) GetCandidates(c *gin.Context) {
	candidates, err := ctl.svc.GetCandidates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

func (ctl *AdminController) CreateCandidate(c *gin.Context) {
	var input services.CandidateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	candidate, err := ctl.svc.CreateCandidate(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Candidate created", "candidate": candidate})
}

func (ctl *AdminController) UpdateCandidate(c *gin.Context) {
	var input services.CandidateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	candidate, err := ctl.svc.UpdateCandidate(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Candidate updated", "candidate": candidate})
}

func (ctl *AdminController) DeleteCandidate(c *gin.Context) {
	if err := ctl.svc.DeleteCandidate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Candidate deleted"})
}

// Analytics

func (ctl *AdminController) GetAnalytics(c *gin.Context) {
	analytics, err := ctl.svc.GetAnalytics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

// ExportLeaderboard streams the current tally for an institute as CSV.
func (ctl *AdminController) ExportLeaderboard(c *gin.Context) {
	instituteID := c.Param("instituteId")

	leaderboard, err := ctl.votes.GetLeaderboard(c.Request.Context(), instituteID)
	if err != nil {
		respondError(c, err)
		return
	}

	payload, err := services.LeaderboardCSV(instituteID, leaderboard)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("leaderboard-%s.csv", instituteID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", payload)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eballot/internal/middleware"
	"eballot/internal/services"
)

type UserController struct {
	svc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{svc: svc}
}

type updateInstituteInput struct {
	InstituteID string `json:"instituteId" binding:"required"`
}

// UpdateInstitute sets the caller's institute affiliation.
func (ctl *UserController) UpdateInstitute(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	var input updateInstituteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	user, err := ctl.svc.SetInstitute(c.Request.Context(), userID, input.InstituteID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Institute updated successfully",
		"user":    user,
	})
}

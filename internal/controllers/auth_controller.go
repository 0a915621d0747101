package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eballot/internal/services"
)

type AuthController struct {
	svc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

type otpRequestInput struct {
	Email string `json:"email" binding:"required,email"`
}

type otpVerifyInput struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

// RequestOTP mails a one-time passcode to an institutional address.
func (ctl *AuthController) RequestOTP(c *gin.Context) {
	var input otpRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	meta, err := ctl.svc.RequestOTP(c.Request.Context(), input.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OTP issued",
		"meta":    meta,
	})
}

// VerifyOTP exchanges a valid passcode for a bearer token and the
// (possibly just created) user profile.
func (ctl *AuthController) VerifyOTP(c *gin.Context) {
	var input otpVerifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	token, user, err := ctl.svc.VerifyOTP(c.Request.Context(), input.Email, input.OTP)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OTP verified",
		"token":   token,
		"user":    user,
	})
}

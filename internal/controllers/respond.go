package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"eballot/internal/apperror"
)

// respondError maps a service error to an HTTP status and a JSON body with
// a message field. Unexpected and unconfigured errors are logged in full
// and returned as a generic 500 so no internal detail reaches the client.
func respondError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		var status int
		switch {
		case errors.Is(err, apperror.ErrInvalidInput):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthenticated):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
		default:
			logrus.Errorf("request failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Unexpected server error"})
			return
		}

		body := gin.H{"message": appErr.Message}
		if appErr.Field != "" {
			body["field"] = appErr.Field
		}
		c.JSON(status, body)
		return
	}

	logrus.Errorf("request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Unexpected server error"})
}

// bindError wraps a gin binding failure as an InvalidInput carrying the
// validator's field detail.
func bindError(c *gin.Context, err error) {
	respondError(c, apperror.InvalidInput("", err.Error()))
}

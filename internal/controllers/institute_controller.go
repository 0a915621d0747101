package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eballot/internal/storage"
)

type InstituteController struct {
	institutes storage.InstituteStore
}

func NewInstituteController(institutes storage.InstituteStore) *InstituteController {
	return &InstituteController{institutes: institutes}
}

// List returns every institute, ordered by type then code.
func (ctl *InstituteController) List(c *gin.Context) {
	institutes, err := ctl.institutes.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"institutes": institutes})
}

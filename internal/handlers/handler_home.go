package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func getHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Backoffice accounting API v1"})
}

// registerHomeRoutes registers the liveness routes outside the authenticated group.
func registerHomeRoutes(r *gin.Engine) {
	r.GET("/healthz", getHealth)
	r.GET("/", getHome)
}

// internal/handlers/health.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shopfront/storefront-api/internal/utils"
)

// GET /health
func Health(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{"status": "ok"})
}

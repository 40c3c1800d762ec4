package tracks

import (
	"github.com/gin-gonic/gin"

	"github.com/tracktag/analyzer-api/api/types"
)

// RegisterRoutes registers track analysis routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.POST("/tracks/:id/analysis", PostAnalysis(deps))
	group.GET("/tracks/:id/analysis", GetAnalysis(deps))
}

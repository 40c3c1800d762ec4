package analysis

import (
	"github.com/gin-gonic/gin"

	"github.com/tracktag/analyzer-api/api/types"
)

// RegisterRoutes registers stateless analysis routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.POST("/analysis", Post(deps))
}

package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracktag/analyzer-api/api/types"
	"github.com/tracktag/analyzer-api/internal/database"
)

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name             string
		setupDeps        func(t *testing.T) *types.Dependencies
		expectedDBStatus string
	}{
		{
			name: "healthy with database",
			setupDeps: func(t *testing.T) *types.Dependencies {
				db, err := database.Initialize(filepath.Join(t.TempDir(), "health.db"), false)
				require.NoError(t, err)
				return &types.Dependencies{DB: db}
			},
			expectedDBStatus: "healthy",
		},
		{
			name: "without database",
			setupDeps: func(t *testing.T) *types.Dependencies {
				return &types.Dependencies{}
			},
			expectedDBStatus: "not configured",
		},
		{
			name: "unhealthy with closed database",
			setupDeps: func(t *testing.T) *types.Dependencies {
				db, err := database.Initialize(filepath.Join(t.TempDir(), "health.db"), false)
				require.NoError(t, err)

				sqlDB, err := db.DB.DB()
				require.NoError(t, err)
				sqlDB.Close()

				return &types.Dependencies{DB: db}
			},
			expectedDBStatus: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			deps := tt.setupDeps(t)
			Get(deps)(c)

			assert.Equal(t, http.StatusOK, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			assert.Equal(t, "ok", response["status"])
			assert.NotEmpty(t, response["timestamp"])

			dbStatus, ok := response["database"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, tt.expectedDBStatus, dbStatus["status"])

			if deps.DB != nil && deps.DB.DB != nil {
				if sqlDB, err := deps.DB.DB.DB(); err == nil {
					sqlDB.Close()
				}
			}
		})
	}
}

func TestGetDatabaseStatus(t *testing.T) {
	t.Run("nil database", func(t *testing.T) {
		status := getDatabaseStatus(&types.Dependencies{DB: nil})
		assert.Equal(t, "not configured", status["status"])
	})

	t.Run("healthy database", func(t *testing.T) {
		db, err := database.Initialize(filepath.Join(t.TempDir(), "status.db"), false)
		require.NoError(t, err)
		defer func() {
			if sqlDB, err := db.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}()

		status := getDatabaseStatus(&types.Dependencies{DB: db})
		assert.Equal(t, "healthy", status["status"])
	})
}

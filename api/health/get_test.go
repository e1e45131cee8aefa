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

	"github.com/prophetlog/prediction-api/api/types"
	"github.com/prophetlog/prediction-api/internal/database"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		setupDeps  func(t *testing.T) *types.Dependencies
		expectedDB string
	}{
		{
			name: "healthy with database",
			setupDeps: func(t *testing.T) *types.Dependencies {
				return &types.Dependencies{DB: openTestDB(t)}
			},
			expectedDB: "healthy",
		},
		{
			name: "without database",
			setupDeps: func(t *testing.T) *types.Dependencies {
				return &types.Dependencies{}
			},
			expectedDB: "not configured",
		},
		{
			name: "with closed database",
			setupDeps: func(t *testing.T) *types.Dependencies {
				db := openTestDB(t)
				require.NoError(t, db.Close())
				return &types.Dependencies{DB: db}
			},
			expectedDB: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			handler := Get(tt.setupDeps(t))
			handler(c)

			assert.Equal(t, http.StatusOK, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			require.NoError(t, err)

			assert.Equal(t, "ok", response["status"])
			assert.NotEmpty(t, response["timestamp"])

			dbStatus, ok := response["database"].(map[string]interface{})
			require.True(t, ok, "database status must be an object")
			assert.Equal(t, tt.expectedDB, dbStatus["status"])
		})
	}
}

func TestGetDatabaseStatus(t *testing.T) {
	t.Run("nil database", func(t *testing.T) {
		status := getDatabaseStatus(&types.Dependencies{})
		assert.Equal(t, "not configured", status["status"])
	})

	t.Run("healthy database", func(t *testing.T) {
		status := getDatabaseStatus(&types.Dependencies{DB: openTestDB(t)})
		assert.Equal(t, "healthy", status["status"])
	})
}

package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"nutricoach/auth"
	"nutricoach/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// A failed count must surface as a 500, never as a zero in the payload.
func TestPlatformMetricsCountFailure(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("count error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Message: "interrupted at shutdown",
			Name:    "InterruptedAtShutdown",
		}))

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.GET("/admin/metrics", func(c *gin.Context) {
			auth.SetCurrentUser(c, models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin})
		}, PlatformMetrics(mt.Client, "testdb"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/admin/metrics", nil))
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Contains(t, w.Body.String(), "Failed to compute metrics")
	})
}

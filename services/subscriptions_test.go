package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nutricoach/auth"
	"nutricoach/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const subscriptionBody = `{
	"plan": "monthly",
	"price_inr": 999,
	"status": "pending",
	"current_period_start": "2026-01-01T00:00:00Z",
	"current_period_end": "2026-02-01T00:00:00Z"
}`

func postSubscription(client *mongo.Client, user models.User) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/subscriptions", func(c *gin.Context) {
		auth.SetCurrentUser(c, user)
	}, CreateSubscription(client, "testdb"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/subscriptions", strings.NewReader(subscriptionBody))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// Holding an active subscription blocks any new one, even when the new
// document would not itself be active.
func TestCreateSubscriptionConflictsWithActive(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("active blocks pending", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "testdb.subscriptions", mtest.FirstBatch,
			bson.D{{Key: "n", Value: 1}}))

		w := postSubscription(mt.Client, models.User{ID: primitive.NewObjectID(), Role: models.RolePatient})
		require.Equal(t, http.StatusConflict, w.Code)
		require.Contains(t, w.Body.String(), "active subscription")
	})

	mt.Run("no active subscription", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "testdb.subscriptions", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		w := postSubscription(mt.Client, models.User{ID: primitive.NewObjectID(), Role: models.RolePatient})
		require.Equal(t, http.StatusOK, w.Code)
	})
}

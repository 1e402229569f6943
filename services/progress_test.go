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
)

// The denial branches run before any database call, so a nil client is
// safe for these requests.
func progressRouter(user models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	inject := func(c *gin.Context) {
		auth.SetCurrentUser(c, user)
	}
	r.GET("/progress", inject, ListProgress(nil, "testdb"))
	r.GET("/progress/summary/:patient_id", inject, ProgressSummary(nil, "testdb"))
	return r
}

func getProgress(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func TestListProgressDeniesAdmin(t *testing.T) {
	r := progressRouter(models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin})
	w := getProgress(r, "/progress")
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestListProgressDeniesNutritionistWithoutPatientID(t *testing.T) {
	r := progressRouter(models.User{ID: primitive.NewObjectID(), Role: models.RoleNutritionist})
	w := getProgress(r, "/progress")
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestListProgressRejectsBadPatientID(t *testing.T) {
	r := progressRouter(models.User{ID: primitive.NewObjectID(), Role: models.RoleNutritionist})
	w := getProgress(r, "/progress?patient_id=not-an-id")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgressSummaryDeniesOtherPatient(t *testing.T) {
	r := progressRouter(models.User{ID: primitive.NewObjectID(), Role: models.RolePatient})
	w := getProgress(r, "/progress/summary/"+primitive.NewObjectID().Hex())
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestProgressSummaryDeniesAdmin(t *testing.T) {
	r := progressRouter(models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin})
	w := getProgress(r, "/progress/summary/"+primitive.NewObjectID().Hex())
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestProgressSummaryRejectsBadPatientID(t *testing.T) {
	r := progressRouter(models.User{ID: primitive.NewObjectID(), Role: models.RolePatient})
	w := getProgress(r, "/progress/summary/not-an-id")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

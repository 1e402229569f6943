package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"nutricoach/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func roleGateRouter(user *models.User, requiredRole string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/gated",
		func(c *gin.Context) {
			if user != nil {
				SetCurrentUser(c, *user)
			}
		},
		RequireRole(requiredRole),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		},
	)
	return r
}

func TestRequireRoleMatch(t *testing.T) {
	user := models.User{Role: models.RolePatient, Status: models.StatusActive}
	r := roleGateRouter(&user, models.RolePatient)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/gated", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

// Role checks are an exact match over the closed role set, not a
// privilege ladder: an admin is rejected by a patient-only gate.
func TestRequireRoleNotHierarchical(t *testing.T) {
	admin := models.User{Role: models.RoleAdmin, Status: models.StatusActive}

	for _, gate := range []string{models.RolePatient, models.RoleNutritionist} {
		r := roleGateRouter(&admin, gate)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/gated", nil))
		require.Equal(t, http.StatusForbidden, w.Code, "admin must not pass the %s gate", gate)
	}
}

func TestRequireRoleWrongRole(t *testing.T) {
	nutritionist := models.User{Role: models.RoleNutritionist, Status: models.StatusActive}
	r := roleGateRouter(&nutritionist, models.RoleAdmin)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/gated", nil))
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleNoUser(t *testing.T) {
	r := roleGateRouter(nil, models.RolePatient)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/gated", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

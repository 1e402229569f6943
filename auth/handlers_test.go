package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func refreshRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/refresh", Refresh())
	return r
}

func postRefresh(t *testing.T, r *gin.Engine, refreshToken string) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"refresh_token":"` + refreshToken + `"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	JwtSecret = []byte("test-secret")
	refreshToken, err := GenerateRefreshToken("64f000000000000000000006", "x@example.com", "patient")
	require.NoError(t, err)

	w := postRefresh(t, refreshRouter(), refreshToken)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "bearer", resp.TokenType)
	require.Equal(t, refreshToken, resp.RefreshToken)

	claims, err := ParseToken(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, TokenTypeAccess, claims.TokenType)
	require.Equal(t, "64f000000000000000000006", claims.Subject)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	JwtSecret = []byte("test-secret")
	accessToken, err := GenerateAccessToken("64f000000000000000000007", "x@example.com", "patient")
	require.NoError(t, err)

	w := postRefresh(t, refreshRouter(), accessToken)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	JwtSecret = []byte("test-secret")
	w := postRefresh(t, refreshRouter(), "not.a.jwt")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

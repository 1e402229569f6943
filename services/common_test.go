package services

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func paginationCtx(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestPaginationDefaults(t *testing.T) {
	skip, limit := pagination(paginationCtx(t, ""), 10)
	require.EqualValues(t, 0, skip)
	require.EqualValues(t, 10, limit)
}

func TestPaginationExplicit(t *testing.T) {
	skip, limit := pagination(paginationCtx(t, "skip=40&limit=25"), 10)
	require.EqualValues(t, 40, skip)
	require.EqualValues(t, 25, limit)
}

func TestPaginationRejectsBadValues(t *testing.T) {
	skip, limit := pagination(paginationCtx(t, "skip=-5&limit=abc"), 20)
	require.EqualValues(t, 0, skip)
	require.EqualValues(t, 20, limit)
}

func TestPaginationClampsLimit(t *testing.T) {
	_, limit := pagination(paginationCtx(t, "limit=5000"), 10)
	require.EqualValues(t, maxPageSize, limit)
}

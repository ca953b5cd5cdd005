package ginutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestQueryBool(t *testing.T) {
	assert.False(t, QueryBool(newContext("/?wait=false"), "wait", true))
	assert.True(t, QueryBool(newContext("/?wait=1"), "wait", false))
	assert.True(t, QueryBool(newContext("/"), "wait", true))
	assert.True(t, QueryBool(newContext("/?wait=maybe"), "wait", true))
}

func TestParamTrimmed(t *testing.T) {
	c := newContext("/")
	c.Params = gin.Params{{Key: "name", Value: "  لحوم "}}
	assert.Equal(t, "لحوم", ParamTrimmed(c, "name"))
	assert.Empty(t, ParamTrimmed(c, "missing"))
}

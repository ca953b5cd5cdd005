package ginutil

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// QueryBool extracts a boolean from query parameters with default value
func QueryBool(c *gin.Context, key string, defaultValue bool) bool {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// ParamTrimmed extracts a path parameter without surrounding whitespace
func ParamTrimmed(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Param(key))
}

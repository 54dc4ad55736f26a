package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExtractUintParam извлекает числовой параметр из URL и сохраняет его в контексте.
// При ошибке парсинга запрос прерывается с кодом 400.
func ExtractUintParam(paramName string, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		paramValue := c.Param(paramName)
		id, err := strconv.ParseUint(paramValue, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + paramName + " parameter"})
			c.Abort()
			return
		}

		c.Set(contextKey, uint(id))
		c.Next()
	}
}

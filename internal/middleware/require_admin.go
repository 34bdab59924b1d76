package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin exige o papel "admin" no token já validado.
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Acesso restrito a administradores"})
		c.Abort()
		return
	}
	c.Next()
}

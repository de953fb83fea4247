package middleware

import (
	"net/http"

	"github.com/Chelosky-O/soyElectronico/internal/apierror"
	"github.com/Chelosky-O/soyElectronico/internal/policy"

	"github.com/gin-gonic/gin"
)

// Authorize evaluates the service's policy table against the request path
// and the identity left by Authenticate. Runs after Authenticate in the
// global chain, before any handler.
func Authorize(table *policy.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch table.Evaluate(c.Request.Method, c.Request.URL.Path, GetIdentity(c)) {
		case policy.Unauthorized:
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		case policy.Forbidden:
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		c.Next()
	}
}

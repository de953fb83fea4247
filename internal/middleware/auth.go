package middleware

import (
	"strings"
	"time"

	"github.com/Chelosky-O/soyElectronico/internal/policy"
	"github.com/Chelosky-O/soyElectronico/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const IdentityKey = "identity"

// Authenticate extracts and verifies the bearer token, attaching the
// resulting identity to the request context. It NEVER rejects a request:
// a missing, malformed, invalid or expired token degrades the request to
// anonymous and the authorization step decides later whether that matters.
// This keeps public endpoints working with or without a token.
func Authenticate(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		claims, err := codec.Verify(strings.TrimPrefix(header, "Bearer "), time.Now())
		if err != nil {
			log.Warn().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("path", c.Request.URL.Path).
				Err(err).
				Msg("token rechazado, la request continua como anonima")
			c.Next()
			return
		}

		uid, err := claims.SubjectID()
		if err != nil {
			log.Warn().
				Str("request_id", c.GetString(RequestIDKey)).
				Msg("claim sub no es un uuid, la request continua como anonima")
			c.Next()
			return
		}

		c.Set(IdentityKey, &policy.Identity{UsuarioID: uid, Rol: claims.Rol})
		c.Next()
	}
}

// GetIdentity returns the verified identity for the request, or nil when
// the request is anonymous.
func GetIdentity(c *gin.Context) *policy.Identity {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil
	}
	ident, _ := v.(*policy.Identity)
	return ident
}

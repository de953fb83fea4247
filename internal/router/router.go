// Package router wires each service's dependency graph
// (Handler ← Service ← Repository ← DB/Redis) and its middleware chain.
//
// Every service shares the same pipeline — the authentication middleware
// populates identity without ever rejecting, then the policy table decides;
// handlers run only for allowed requests:
//
//	RequestID → Logger → Recovery → CORS → ErrorHandler → RateLimiter
//	          → Authenticate → Authorize(table) → handler
package router

import (
	"time"

	"github.com/Chelosky-O/soyElectronico/internal/config"
	"github.com/Chelosky-O/soyElectronico/internal/middleware"
	"github.com/Chelosky-O/soyElectronico/internal/policy"
	"github.com/Chelosky-O/soyElectronico/internal/token"

	"github.com/gin-gonic/gin"
)

func newEngine(cfg *config.Config, codec *token.Codec, table *policy.Table) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))
	r.Use(middleware.Authenticate(codec))
	r.Use(middleware.Authorize(table))
	return r
}

package router

import (
	"github.com/Chelosky-O/soyElectronico/internal/config"
	"github.com/Chelosky-O/soyElectronico/internal/handler"
	"github.com/Chelosky-O/soyElectronico/internal/middleware"
	"github.com/Chelosky-O/soyElectronico/internal/policy"
	"github.com/Chelosky-O/soyElectronico/internal/repository"
	"github.com/Chelosky-O/soyElectronico/internal/service"
	"github.com/Chelosky-O/soyElectronico/internal/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UsuariosPolicy is the authorization table for the identity service.
// GET /usuarios intentionally has no rule: deny-by-default makes it
// Authenticated.
func UsuariosPolicy() *policy.Table {
	return policy.NewTable(
		policy.Rule{Method: "GET", Pattern: "/health", Requirement: policy.Public},
		policy.Rule{Method: "POST", Pattern: "/login", Requirement: policy.Public},
		policy.Rule{Method: "POST", Pattern: "/usuarios/registro", Requirement: policy.Public},
	)
}

// NewUsuarios builds the identity service engine.
func NewUsuarios(cfg *config.Config, db *gorm.DB, codec *token.Codec) *gin.Engine {
	r := newEngine(cfg, codec, UsuariosPolicy())

	usuarioRepo := repository.NewUsuarioRepository(db)
	authSvc := service.NewAuthService(usuarioRepo, codec)

	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)

	r.GET("/health", handler.Health("usuarios", db, nil))
	r.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	r.POST("/usuarios/registro", authH.Registrar)
	r.GET("/usuarios", usuariosH.Listar)

	return r
}

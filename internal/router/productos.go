package router

import (
	"github.com/Chelosky-O/soyElectronico/internal/config"
	"github.com/Chelosky-O/soyElectronico/internal/handler"
	"github.com/Chelosky-O/soyElectronico/internal/policy"
	"github.com/Chelosky-O/soyElectronico/internal/repository"
	"github.com/Chelosky-O/soyElectronico/internal/service"
	"github.com/Chelosky-O/soyElectronico/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ProductosPolicy: catalog reads are public; every write under /productos
// requires the admin role. Most-specific rules first.
func ProductosPolicy() *policy.Table {
	return policy.NewTable(
		policy.Rule{Method: "GET", Pattern: "/health", Requirement: policy.Public},
		policy.Rule{Method: "GET", Pattern: "/productos", Requirement: policy.Public},
		policy.Rule{Method: "GET", Pattern: "/productos/*", Requirement: policy.Public},
		policy.Rule{Method: "POST", Pattern: "/productos", Requirement: policy.Role("admin")},
		policy.Rule{Method: "POST", Pattern: "/productos/**", Requirement: policy.Role("admin")},
		policy.Rule{Method: "PUT", Pattern: "/productos/**", Requirement: policy.Role("admin")},
		policy.Rule{Method: "DELETE", Pattern: "/productos/**", Requirement: policy.Role("admin")},
	)
}

// NewProductos builds the catalog service engine. rdb may be nil (cache
// disabled).
func NewProductos(cfg *config.Config, db *gorm.DB, rdb *redis.Client, codec *token.Codec) *gin.Engine {
	r := newEngine(cfg, codec, ProductosPolicy())

	productoRepo := repository.NewProductoRepository(db)
	productoSvc := service.NewProductoService(productoRepo, rdb)

	productosH := handler.NewProductosHandler(productoSvc)

	r.GET("/health", handler.Health("productos", db, rdb))
	r.GET("/productos", productosH.Listar)
	r.GET("/productos/:id", productosH.Obtener)
	r.POST("/productos", productosH.Crear)
	r.PUT("/productos/:id", productosH.Actualizar)
	r.DELETE("/productos/:id", productosH.Eliminar)

	return r
}

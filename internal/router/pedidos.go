package router

import (
	"github.com/Chelosky-O/soyElectronico/internal/config"
	"github.com/Chelosky-O/soyElectronico/internal/handler"
	"github.com/Chelosky-O/soyElectronico/internal/policy"
	"github.com/Chelosky-O/soyElectronico/internal/repository"
	"github.com/Chelosky-O/soyElectronico/internal/service"
	"github.com/Chelosky-O/soyElectronico/internal/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PedidosPolicy: purchasing and order history are cliente-only.
func PedidosPolicy() *policy.Table {
	return policy.NewTable(
		policy.Rule{Method: "GET", Pattern: "/health", Requirement: policy.Public},
		policy.Rule{Method: "POST", Pattern: "/comprar/*", Requirement: policy.Role("cliente")},
		policy.Rule{Method: "GET", Pattern: "/pedidos/mios", Requirement: policy.Role("cliente")},
	)
}

// NewPedidos builds the orders service engine.
func NewPedidos(cfg *config.Config, db *gorm.DB, codec *token.Codec) *gin.Engine {
	r := newEngine(cfg, codec, PedidosPolicy())

	pedidoRepo := repository.NewPedidoRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	pedidoSvc := service.NewPedidoService(pedidoRepo, productoRepo)

	pedidosH := handler.NewPedidosHandler(pedidoSvc)

	r.GET("/health", handler.Health("pedidos", db, nil))
	r.POST("/comprar/:productoId", pedidosH.Comprar)
	r.GET("/pedidos/mios", pedidosH.MisPedidos)

	return r
}

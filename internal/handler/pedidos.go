package handler

import (
	"net/http"

	"github.com/Chelosky-O/soyElectronico/internal/apierror"
	"github.com/Chelosky-O/soyElectronico/internal/dto"
	"github.com/Chelosky-O/soyElectronico/internal/middleware"
	"github.com/Chelosky-O/soyElectronico/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

// Comprar — POST /comprar/:productoId (cliente). The policy table already
// guarantees an authenticated cliente identity by the time we get here.
func (h *PedidosHandler) Comprar(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	if ident == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}

	productoID, err := uuid.Parse(c.Param("productoId"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("producto no encontrado"))
		return
	}

	var req dto.CompraRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Comprar(c.Request.Context(), ident.UsuarioID, productoID, req.Cantidad)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// MisPedidos — GET /pedidos/mios (cliente).
func (h *PedidosHandler) MisPedidos(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	if ident == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}

	resp, err := h.svc.MisPedidos(c.Request.Context(), ident.UsuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

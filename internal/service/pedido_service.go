package service

import (
	"context"
	"errors"
	"time"

	"github.com/Chelosky-O/soyElectronico/internal/dto"
	"github.com/Chelosky-O/soyElectronico/internal/model"
	"github.com/Chelosky-O/soyElectronico/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PedidoService owns the purchase transaction: the only multi-step
// read-modify-write in the system, and the only place requiring explicit
// concurrency control.
type PedidoService interface {
	// Comprar atomically checks stock, decrements it, and records the
	// order. Either both writes commit or neither does. Concurrent
	// purchases of the same product serialize on the row lock taken by
	// the FOR UPDATE read.
	Comprar(ctx context.Context, usuarioID, productoID uuid.UUID, cantidad int) (*dto.PedidoResponse, error)
	MisPedidos(ctx context.Context, usuarioID uuid.UUID) ([]dto.PedidoResponse, error)
}

type pedidoService struct {
	repo         repository.PedidoRepository
	productoRepo repository.ProductoRepository
}

func NewPedidoService(repo repository.PedidoRepository, productoRepo repository.ProductoRepository) PedidoService {
	return &pedidoService{repo: repo, productoRepo: productoRepo}
}

func (s *pedidoService) Comprar(ctx context.Context, usuarioID, productoID uuid.UUID, cantidad int) (*dto.PedidoResponse, error) {
	if cantidad <= 0 {
		return nil, ErrCantidadInvalida
	}

	var pedido model.Pedido
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		producto, err := s.productoRepo.FindByIDForUpdateTx(tx, productoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductoNoEncontrado
			}
			return err
		}
		if producto.Stock < cantidad {
			return ErrStockInsuficiente
		}

		ahora := time.Now().UTC()
		rows, err := s.productoRepo.DescontarStockTx(tx, productoID, cantidad, ahora)
		if err != nil {
			return err
		}
		if rows == 0 {
			// The FOR UPDATE read makes this unreachable, but the guarded
			// UPDATE keeps stock non-negative even if the lock discipline
			// ever regresses.
			return ErrStockInsuficiente
		}

		pedido = model.Pedido{
			UsuarioID:   usuarioID,
			ProductoID:  productoID,
			Cantidad:    cantidad,
			FechaPedido: ahora,
		}
		return s.repo.CrearTx(tx, &pedido)
	})
	if err != nil {
		return nil, err
	}

	resp := pedidoToResponse(&pedido)
	return &resp, nil
}

func (s *pedidoService) MisPedidos(ctx context.Context, usuarioID uuid.UUID) ([]dto.PedidoResponse, error) {
	pedidos, err := s.repo.FindByUsuarioID(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PedidoResponse, len(pedidos))
	for i, p := range pedidos {
		resp[i] = pedidoToResponse(&p)
	}
	return resp, nil
}

func pedidoToResponse(p *model.Pedido) dto.PedidoResponse {
	return dto.PedidoResponse{
		ID:          p.ID.String(),
		UsuarioID:   p.UsuarioID.String(),
		ProductoID:  p.ProductoID.String(),
		Cantidad:    p.Cantidad,
		FechaPedido: p.FechaPedido.Format(time.RFC3339),
	}
}

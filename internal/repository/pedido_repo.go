package repository

import (
	"context"

	"github.com/Chelosky-O/soyElectronico/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PedidoRepository defines the data access contract for orders. Transaction
// is part of the contract so the purchase service never touches *gorm.DB
// directly: the GORM implementation opens a real DB transaction, while test
// stubs serialize calls the way the product row lock would.
type PedidoRepository interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	CrearTx(tx *gorm.DB, p *model.Pedido) error
	FindByUsuarioID(ctx context.Context, usuarioID uuid.UUID) ([]model.Pedido, error)
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *pedidoRepo) CrearTx(tx *gorm.DB, p *model.Pedido) error {
	return tx.Create(p).Error
}

func (r *pedidoRepo) FindByUsuarioID(ctx context.Context, usuarioID uuid.UUID) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", usuarioID).
		Order("fecha_pedido DESC").
		Find(&pedidos).Error
	return pedidos, err
}

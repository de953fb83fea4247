package model

import (
	"time"

	"github.com/google/uuid"
)

// Pedido records one successful purchase. Rows are created exactly once by
// the purchase transaction and never mutated afterwards; Cantidad equals
// the amount deducted from the product's stock at creation time.
type Pedido struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductoID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Cantidad    int       `gorm:"not null;check:cantidad > 0"`
	FechaPedido time.Time `gorm:"column:fecha_pedido;not null"`
}

func (Pedido) TableName() string { return "pedidos" }

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a catalog row. Stock is the invariant-bearing field: it must
// never go negative and is only mutated by the purchase transaction or by
// admin catalog edits. The CHECK constraint is a backstop for the
// application-level guarantees in PedidoService.
type Producto struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre             string          `gorm:"index;not null"`
	Descripcion        *string         `gorm:"type:text"`
	Precio             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock              int             `gorm:"not null;default:0;check:stock >= 0"`
	FechaCreacion      time.Time       `gorm:"column:fecha_creacion;not null"`
	FechaActualizacion *time.Time      `gorm:"column:fecha_actualizacion"`
	ImagenURL          *string         `gorm:"column:imagen_url"`
	Categoria          string          `gorm:"index"`
	Detalles           *string         `gorm:"type:text"`
}

func (Producto) TableName() string { return "productos" }

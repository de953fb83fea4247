package dto

import "github.com/shopspring/decimal"

type ProductoRequest struct {
	Nombre      string          `json:"nombre" binding:"required" validate:"required"`
	Descripcion *string         `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio" validate:"min=0"`
	Stock       int             `json:"stock" validate:"min=0"`
	ImagenURL   *string         `json:"imagenUrl"`
	Categoria   string          `json:"categoria"`
	Detalles    *string         `json:"detalles"`
}

type ProductoResponse struct {
	ID                 string          `json:"id"`
	Nombre             string          `json:"nombre"`
	Descripcion        *string         `json:"descripcion"`
	Precio             decimal.Decimal `json:"precio"`
	Stock              int             `json:"stock"`
	FechaCreacion      string          `json:"fechaCreacion"`
	FechaActualizacion *string         `json:"fechaActualizacion"`
	ImagenURL          *string         `json:"imagenUrl"`
	Categoria          string          `json:"categoria"`
	Detalles           *string         `json:"detalles"`
}

// ProductoFilter holds the public catalog query params:
// ?q= name substring, ?categoria= exact (case-insensitive) category.
type ProductoFilter struct {
	Q         string
	Categoria string
}

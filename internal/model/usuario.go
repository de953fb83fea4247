package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores registered users.
// Rol: "cliente" | "admin" — registration always creates "cliente";
// admin accounts are provisioned out of band (seed command).
type Usuario struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string    `gorm:"not null"`
	Email         string    `gorm:"uniqueIndex;not null"`
	PasswordHash  string    `gorm:"not null"`
	Rol           string    `gorm:"type:varchar(20);not null"`
	FechaCreacion time.Time `gorm:"column:fecha_creacion;not null"`
}

func (Usuario) TableName() string { return "usuarios" }

// Roles conocidos por el sistema.
const (
	RolCliente = "cliente"
	RolAdmin   = "admin"
)

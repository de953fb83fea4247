package service

import "errors"

// Typed business errors. Services return these; the HTTP layer maps each
// one to a status code exactly once (handler.respondError). Messages are
// safe to surface to clients verbatim.
var (
	// Credenciales / registro
	ErrUsuarioNoEncontrado   = errors.New("usuario no encontrado")
	ErrCredencialesInvalidas = errors.New("credenciales invalidas")
	ErrEmailRegistrado       = errors.New("el email ya esta registrado")

	// Compra
	ErrCantidadInvalida     = errors.New("la cantidad debe ser mayor a 0")
	ErrProductoNoEncontrado = errors.New("producto no encontrado")
	ErrStockInsuficiente    = errors.New("stock insuficiente")
)

package dto

// CompraRequest is the caller-supplied purchase body. Quantity validation
// (cantidad > 0) happens in the service so the error surfaces as a typed
// business error, not a binding failure.
type CompraRequest struct {
	Cantidad int `json:"cantidad"`
}

type PedidoResponse struct {
	ID          string `json:"id"`
	UsuarioID   string `json:"usuarioId"`
	ProductoID  string `json:"productoId"`
	Cantidad    int    `json:"cantidad"`
	FechaPedido string `json:"fechaPedido"`
}

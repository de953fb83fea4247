package dto

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type RegistroRequest struct {
	Nombre   string `json:"nombre" binding:"required" validate:"required"`
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=6"`
}

// UsuarioResponse deliberately omits the password hash.
type UsuarioResponse struct {
	ID            string `json:"id"`
	Nombre        string `json:"nombre"`
	Email         string `json:"email"`
	Rol           string `json:"rol"`
	FechaCreacion string `json:"fechaCreacion"`
}

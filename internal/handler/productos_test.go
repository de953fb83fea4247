package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/Chelosky-O/soyElectronico/internal/dto"
	"github.com/Chelosky-O/soyElectronico/internal/policy"
	"github.com/Chelosky-O/soyElectronico/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductoService struct {
	listarFn     func(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error)
	obtenerFn    func(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	crearFn      func(ctx context.Context, req dto.ProductoRequest) (*dto.ProductoResponse, error)
	actualizarFn func(ctx context.Context, id uuid.UUID, req dto.ProductoRequest) (*dto.ProductoResponse, error)
	eliminarFn   func(ctx context.Context, id uuid.UUID) error
}

func (s *stubProductoService) Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	return s.listarFn(ctx, filter)
}

func (s *stubProductoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	return s.obtenerFn(ctx, id)
}

func (s *stubProductoService) Crear(ctx context.Context, req dto.ProductoRequest) (*dto.ProductoResponse, error) {
	return s.crearFn(ctx, req)
}

func (s *stubProductoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ProductoRequest) (*dto.ProductoResponse, error) {
	return s.actualizarFn(ctx, id, req)
}

func (s *stubProductoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return s.eliminarFn(ctx, id)
}

func productosTestEngine(svc service.ProductoService) *gin.Engine {
	table := policy.NewTable(
		policy.Rule{Method: "GET", Pattern: "/productos", Requirement: policy.Public},
		policy.Rule{Method: "GET", Pattern: "/productos/*", Requirement: policy.Public},
		policy.Rule{Method: "POST", Pattern: "/productos", Requirement: policy.Role("admin")},
		policy.Rule{Method: "PUT", Pattern: "/productos/**", Requirement: policy.Role("admin")},
		policy.Rule{Method: "DELETE", Pattern: "/productos/**", Requirement: policy.Role("admin")},
	)
	r := newTestEngine(table)
	h := NewProductosHandler(svc)
	r.GET("/productos", h.Listar)
	r.GET("/productos/:id", h.Obtener)
	r.POST("/productos", h.Crear)
	r.PUT("/productos/:id", h.Actualizar)
	r.DELETE("/productos/:id", h.Eliminar)
	return r
}

func productoRequestValido() dto.ProductoRequest {
	return dto.ProductoRequest{
		Nombre:    "Teclado mecanico",
		Precio:    decimal.NewFromFloat(49.90),
		Stock:     25,
		Categoria: "perifericos",
	}
}

func TestListarProductosHTTP_SinTokenEsPublico(t *testing.T) {
	svc := &stubProductoService{
		listarFn: func(_ context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
			assert.Equal(t, "teclado", filter.Q)
			assert.Equal(t, "perifericos", filter.Categoria)
			return []dto.ProductoResponse{{ID: uuid.NewString(), Nombre: "Teclado mecanico"}}, nil
		},
	}
	r := productosTestEngine(svc)

	w := doJSON(r, http.MethodGet, "/productos?q=teclado&categoria=perifericos", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []dto.ProductoResponse
	decodeBody(t, w, &resp)
	require.Len(t, resp, 1)
}

func TestObtenerProductoHTTP(t *testing.T) {
	id := uuid.New()
	svc := &stubProductoService{
		obtenerFn: func(_ context.Context, got uuid.UUID) (*dto.ProductoResponse, error) {
			assert.Equal(t, id, got)
			return &dto.ProductoResponse{ID: got.String(), Nombre: "Mouse"}, nil
		},
	}
	r := productosTestEngine(svc)

	w := doJSON(r, http.MethodGet, "/productos/"+id.String(), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestObtenerProductoHTTP_NoEncontrado(t *testing.T) {
	svc := &stubProductoService{
		obtenerFn: func(_ context.Context, _ uuid.UUID) (*dto.ProductoResponse, error) {
			return nil, service.ErrProductoNoEncontrado
		},
	}
	r := productosTestEngine(svc)

	w := doJSON(r, http.MethodGet, "/productos/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestObtenerProductoHTTP_IDInvalido(t *testing.T) {
	r := productosTestEngine(&stubProductoService{})

	w := doJSON(r, http.MethodGet, "/productos/abc", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCrearProductoHTTP_SinToken(t *testing.T) {
	r := productosTestEngine(&stubProductoService{})

	w := doJSON(r, http.MethodPost, "/productos", "", productoRequestValido())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCrearProductoHTTP_ClienteProhibido(t *testing.T) {
	r := productosTestEngine(&stubProductoService{})
	tok := issueToken(t, uuid.New(), "ana@example.com", "cliente")

	w := doJSON(r, http.MethodPost, "/productos", tok, productoRequestValido())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCrearProductoHTTP_Admin(t *testing.T) {
	svc := &stubProductoService{
		crearFn: func(_ context.Context, req dto.ProductoRequest) (*dto.ProductoResponse, error) {
			return &dto.ProductoResponse{ID: uuid.NewString(), Nombre: req.Nombre, Stock: req.Stock}, nil
		},
	}
	r := productosTestEngine(svc)
	tok := issueToken(t, uuid.New(), "admin@example.com", "admin")

	w := doJSON(r, http.MethodPost, "/productos", tok, productoRequestValido())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCrearProductoHTTP_StockNegativo(t *testing.T) {
	r := productosTestEngine(&stubProductoService{})
	tok := issueToken(t, uuid.New(), "admin@example.com", "admin")

	req := productoRequestValido()
	req.Stock = -1
	w := doJSON(r, http.MethodPost, "/productos", tok, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActualizarProductoHTTP_Admin(t *testing.T) {
	id := uuid.New()
	svc := &stubProductoService{
		actualizarFn: func(_ context.Context, got uuid.UUID, req dto.ProductoRequest) (*dto.ProductoResponse, error) {
			assert.Equal(t, id, got)
			return &dto.ProductoResponse{ID: got.String(), Nombre: req.Nombre}, nil
		},
	}
	r := productosTestEngine(svc)
	tok := issueToken(t, uuid.New(), "admin@example.com", "admin")

	w := doJSON(r, http.MethodPut, "/productos/"+id.String(), tok, productoRequestValido())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEliminarProductoHTTP_Admin(t *testing.T) {
	svc := &stubProductoService{
		eliminarFn: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
	r := productosTestEngine(svc)
	tok := issueToken(t, uuid.New(), "admin@example.com", "admin")

	w := doJSON(r, http.MethodDelete, "/productos/"+uuid.NewString(), tok, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestEliminarProductoHTTP_ClienteProhibido(t *testing.T) {
	r := productosTestEngine(&stubProductoService{})
	tok := issueToken(t, uuid.New(), "ana@example.com", "cliente")

	w := doJSON(r, http.MethodDelete, "/productos/"+uuid.NewString(), tok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

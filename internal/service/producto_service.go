package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Chelosky-O/soyElectronico/internal/dto"
	"github.com/Chelosky-O/soyElectronico/internal/model"
	"github.com/Chelosky-O/soyElectronico/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const productoCacheTTL = 60 * time.Second

// ProductoService handles catalog CRUD. Reads of a single product go
// through a short-lived Redis cache when a client is wired; admin writes
// invalidate the cached entry. Stock shown from cache may lag a purchase
// by up to the TTL — the purchase transaction always reads the live row.
type ProductoService interface {
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Crear(ctx context.Context, req dto.ProductoRequest) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo repository.ProductoRepository
	rdb  *redis.Client // nil = caching disabled
}

func NewProductoService(repo repository.ProductoRepository, rdb *redis.Client) ProductoService {
	return &productoService{repo: repo, rdb: rdb}
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, len(productos))
	for i, p := range productos {
		resp[i] = productoToResponse(&p)
	}
	return resp, nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	cacheKey := "producto:" + id.String()

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.ProductoResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	resp := productoToResponse(p)

	if s.rdb != nil {
		// Best effort — a failed cache write never fails the request.
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, cacheKey, b, productoCacheTTL).Err()
		}
	}
	return &resp, nil
}

func (s *productoService) Crear(ctx context.Context, req dto.ProductoRequest) (*dto.ProductoResponse, error) {
	p := &model.Producto{
		Nombre:        req.Nombre,
		Descripcion:   req.Descripcion,
		Precio:        req.Precio,
		Stock:         req.Stock,
		FechaCreacion: time.Now().UTC(),
		ImagenURL:     req.ImagenURL,
		Categoria:     req.Categoria,
		Detalles:      req.Detalles,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}

	ahora := time.Now().UTC()
	p.Nombre = req.Nombre
	p.Descripcion = req.Descripcion
	p.Precio = req.Precio
	p.Stock = req.Stock
	p.ImagenURL = req.ImagenURL
	p.Categoria = req.Categoria
	p.Detalles = req.Detalles
	p.FechaActualizacion = &ahora

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)

	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductoNoEncontrado
		}
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *productoService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, "producto:"+id.String()).Err()
	}
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	var actualizacion *string
	if p.FechaActualizacion != nil {
		f := p.FechaActualizacion.Format(time.RFC3339)
		actualizacion = &f
	}
	return dto.ProductoResponse{
		ID:                 p.ID.String(),
		Nombre:             p.Nombre,
		Descripcion:        p.Descripcion,
		Precio:             p.Precio,
		Stock:              p.Stock,
		FechaCreacion:      p.FechaCreacion.Format(time.RFC3339),
		FechaActualizacion: actualizacion,
		ImagenURL:          p.ImagenURL,
		Categoria:          p.Categoria,
		Detalles:           p.Detalles,
	}
}

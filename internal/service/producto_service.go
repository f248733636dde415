package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/alejoalf/Sistema-bar/internal/dto"
	"github.com/alejoalf/Sistema-bar/internal/model"
	"github.com/alejoalf/Sistema-bar/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	cartaCacheKey = "carta:publica"
	cartaCacheTTL = 10 * time.Minute
)

// ProductoService manages the carta: product CRUD, manual stock adjustments
// and the cached public menu. Any write invalidates the carta cache.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error)
	Carta(ctx context.Context) ([]dto.CartaItem, error)
}

type productoService struct {
	repo repository.ProductoRepository
	rdb  *redis.Client
}

func NewProductoService(repo repository.ProductoRepository, rdb *redis.Client) ProductoService {
	return &productoService{repo: repo, rdb: rdb}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	disponible := true
	if req.Disponible != nil {
		disponible = *req.Disponible
	}
	p := &model.Producto{
		Nombre:      req.Nombre,
		Categoria:   req.Categoria,
		Precio:      req.Precio,
		StockActual: req.StockActual,
		Activo:      true,
		Disponible:  disponible,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarCarta(ctx)
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, *productoToResponse(&productos[i]))
	}
	return out, nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	return productoToResponse(p), nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Categoria != nil {
		p.Categoria = *req.Categoria
	}
	if req.Precio != nil {
		// Price changes never rewrite detalle snapshots: pedidos already
		// taken keep the price at the moment of the pedido.
		p.Precio = *req.Precio
	}
	if req.Disponible != nil {
		p.Disponible = *req.Disponible
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidarCarta(ctx)
	return productoToResponse(p), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("producto no encontrado")
	}
	if err := s.repo.Desactivar(ctx, id); err != nil {
		return err
	}
	s.invalidarCarta(ctx)
	return nil
}

func (s *productoService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, errors.New("producto no encontrado")
	}
	if err := s.repo.AjustarStock(ctx, id, req.Delta); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

// Carta serves the public menu, cached in Redis when available. Cache reads
// and writes are best effort: a Redis failure degrades to the database.
func (s *productoService) Carta(ctx context.Context) ([]dto.CartaItem, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cartaCacheKey).Bytes(); err == nil {
			var items []dto.CartaItem
			if jsonErr := json.Unmarshal(cached, &items); jsonErr == nil {
				return items, nil
			}
		}
	}

	productos, err := s.repo.ListCarta(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CartaItem, 0, len(productos))
	for i := range productos {
		p := &productos[i]
		items = append(items, dto.CartaItem{
			ID:        p.ID.String(),
			Nombre:    p.Nombre,
			Categoria: p.Categoria,
			Precio:    p.Precio,
		})
	}

	if s.rdb != nil {
		if b, jsonErr := json.Marshal(items); jsonErr == nil {
			_ = s.rdb.Set(context.Background(), cartaCacheKey, b, cartaCacheTTL).Err()
		}
	}
	return items, nil
}

func (s *productoService) invalidarCarta(ctx context.Context) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, cartaCacheKey).Err()
	}
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Categoria:   p.Categoria,
		Precio:      p.Precio,
		StockActual: p.StockActual,
		Activo:      p.Activo,
		Disponible:  p.Disponible,
	}
}

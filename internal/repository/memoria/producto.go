package memoria

import (
	"context"
	"sort"
	"strings"

	"github.com/alejoalf/Sistema-bar/internal/dto"
	"github.com/alejoalf/Sistema-bar/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productoRepo struct{ s *Store }

func (r *productoRepo) DB() *gorm.DB { return nil }

func (r *productoRepo) Create(_ context.Context, p *model.Producto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	copia := *p
	r.s.productos[p.ID] = &copia
	return nil
}

func (r *productoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.productos[id]
	if !ok {
		return nil, errNoEncontrado
	}
	copia := *p
	return &copia, nil
}

func (r *productoRepo) List(_ context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var productos []model.Producto
	for _, p := range r.s.productos {
		switch filter.Activo {
		case "false":
			if p.Activo {
				continue
			}
		case "all":
		default:
			if !p.Activo {
				continue
			}
		}
		if filter.Nombre != "" && !strings.Contains(strings.ToLower(p.Nombre), strings.ToLower(filter.Nombre)) {
			continue
		}
		if filter.Categoria != "" && p.Categoria != filter.Categoria {
			continue
		}
		productos = append(productos, *p)
	}
	ordenarCarta(productos)
	return productos, nil
}

func (r *productoRepo) ListCarta(_ context.Context) ([]model.Producto, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var productos []model.Producto
	for _, p := range r.s.productos {
		if p.Activo && p.Disponible {
			productos = append(productos, *p)
		}
	}
	ordenarCarta(productos)
	return productos, nil
}

func (r *productoRepo) Update(_ context.Context, p *model.Producto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.productos[p.ID]; !ok {
		return errNoEncontrado
	}
	copia := *p
	r.s.productos[p.ID] = &copia
	return nil
}

func (r *productoRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.productos[id]
	if !ok {
		return errNoEncontrado
	}
	p.Activo = false
	return nil
}

func (r *productoRepo) AjustarStock(_ context.Context, id uuid.UUID, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.ajustarStockLocked(id, delta)
}

func (r *productoRepo) AjustarStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.ajustarStockLocked(id, delta)
}

func (r *productoRepo) ajustarStockLocked(id uuid.UUID, delta int) error {
	p, ok := r.s.productos[id]
	if !ok {
		return errNoEncontrado
	}
	p.StockActual += delta
	return nil
}

func ordenarCarta(productos []model.Producto) {
	sort.Slice(productos, func(i, j int) bool {
		if productos[i].Categoria != productos[j].Categoria {
			return productos[i].Categoria < productos[j].Categoria
		}
		return productos[i].Nombre < productos[j].Nombre
	})
}

package memoria

import (
	"context"
	"sort"
	"time"

	"github.com/alejoalf/Sistema-bar/internal/model"
	"github.com/alejoalf/Sistema-bar/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type pedidoRepo struct{ s *Store }

func (r *pedidoRepo) DB() *gorm.DB { return nil }

func (r *pedidoRepo) CreateTx(_ *gorm.DB, p *model.Pedido) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	for i := range p.Detalles {
		if p.Detalles[i].ID == uuid.Nil {
			p.Detalles[i].ID = uuid.New()
		}
		p.Detalles[i].PedidoID = p.ID
		if p.Detalles[i].CreatedAt.IsZero() {
			p.Detalles[i].CreatedAt = p.CreatedAt
		}
	}
	copia := clonarPedido(p)
	r.s.pedidos[p.ID] = copia
	return nil
}

func (r *pedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.pedidos[id]
	if !ok {
		return nil, errNoEncontrado
	}
	return r.proyectarLocked(p), nil
}

func (r *pedidoRepo) FindDetalleByID(_ context.Context, id uuid.UUID) (*model.DetallePedido, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.pedidos {
		for _, d := range p.Detalles {
			if d.ID == id {
				copia := d
				return &copia, nil
			}
		}
	}
	return nil, errNoEncontrado
}

func (r *pedidoRepo) FindAbiertosPorMesa(_ context.Context, mesaID uuid.UUID) ([]model.Pedido, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.filtrarLocked(func(p *model.Pedido) bool {
		return p.Estado == model.PedidoPendiente && p.MesaID != nil && *p.MesaID == mesaID
	}, false), nil
}

func (r *pedidoRepo) FindAbiertosPorTicket(_ context.Context, ticket int) ([]model.Pedido, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.filtrarLocked(func(p *model.Pedido) bool {
		return p.Estado == model.PedidoPendiente && p.MesaID == nil &&
			p.TicketBarra != nil && *p.TicketBarra == ticket
	}, false), nil
}

func (r *pedidoRepo) FindAbiertosBarra(_ context.Context) ([]model.Pedido, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.filtrarLocked(func(p *model.Pedido) bool {
		return p.Estado == model.PedidoPendiente && p.MesaID == nil
	}, false), nil
}

func (r *pedidoRepo) ResumenAbiertosPorMesa(_ context.Context) (map[uuid.UUID]repository.ResumenMesa, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	resumen := make(map[uuid.UUID]repository.ResumenMesa)
	for _, p := range r.s.pedidos {
		if p.Estado != model.PedidoPendiente || p.MesaID == nil {
			continue
		}
		acc := resumen[*p.MesaID]
		acc.Cantidad++
		acc.Saldo = acc.Saldo.Add(p.Total)
		resumen[*p.MesaID] = acc
	}
	return resumen, nil
}

func (r *pedidoRepo) FindCobrados(_ context.Context) ([]model.Pedido, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.filtrarLocked(func(p *model.Pedido) bool {
		return p.Estado == model.PedidoCobrado
	}, true), nil
}

func (r *pedidoRepo) NextTicketBarra(_ context.Context, _ *gorm.DB) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.ticketSeq++
	return r.s.ticketSeq, nil
}

func (r *pedidoRepo) FindDetallesByPedidoTx(_ *gorm.DB, pedidoID uuid.UUID) ([]model.DetallePedido, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.pedidos[pedidoID]
	if !ok {
		return nil, nil
	}
	detalles := make([]model.DetallePedido, len(p.Detalles))
	copy(detalles, p.Detalles)
	return detalles, nil
}

func (r *pedidoRepo) UpdateTotalTx(_ *gorm.DB, pedidoID uuid.UUID, total decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.pedidos[pedidoID]
	if !ok {
		return errNoEncontrado
	}
	p.Total = total
	return nil
}

func (r *pedidoRepo) DeleteDetalleTx(_ *gorm.DB, detalleID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.pedidos {
		for i, d := range p.Detalles {
			if d.ID == detalleID {
				p.Detalles = append(p.Detalles[:i], p.Detalles[i+1:]...)
				return nil
			}
		}
	}
	return errNoEncontrado
}

func (r *pedidoRepo) DeletePedidoTx(_ *gorm.DB, pedidoID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.pedidos, pedidoID)
	return nil
}

func (r *pedidoRepo) DeleteDetallesDePedidosTx(_ *gorm.DB, pedidoIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range pedidoIDs {
		if p, ok := r.s.pedidos[id]; ok {
			p.Detalles = nil
		}
	}
	return nil
}

func (r *pedidoRepo) DeletePedidosTx(_ *gorm.DB, pedidoIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range pedidoIDs {
		delete(r.s.pedidos, id)
	}
	return nil
}

func (r *pedidoRepo) CobrarPorMesaTx(_ *gorm.DB, mesaID uuid.UUID, metodo string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var hit int64
	for _, p := range r.s.pedidos {
		if p.Estado == model.PedidoPendiente && p.MesaID != nil && *p.MesaID == mesaID {
			r.cobrarLocked(p, metodo)
			hit++
		}
	}
	return hit, nil
}

func (r *pedidoRepo) CobrarPorTicketTx(_ *gorm.DB, ticket int, metodo string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var hit int64
	for _, p := range r.s.pedidos {
		if p.Estado == model.PedidoPendiente && p.MesaID == nil &&
			p.TicketBarra != nil && *p.TicketBarra == ticket {
			r.cobrarLocked(p, metodo)
			hit++
		}
	}
	return hit, nil
}

func (r *pedidoRepo) CobrarPedidoTx(_ *gorm.DB, id uuid.UUID, metodo string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.pedidos[id]
	if !ok || p.Estado != model.PedidoPendiente {
		return nil // mirrors a conditional UPDATE hitting zero rows
	}
	r.cobrarLocked(p, metodo)
	return nil
}

// ── internals ────────────────────────────────────────────────────────────────

func (r *pedidoRepo) cobrarLocked(p *model.Pedido, metodo string) {
	m := metodo
	p.Estado = model.PedidoCobrado
	p.MetodoPago = &m
}

// filtrarLocked returns projected copies of matching pedidos, oldest first
// (or newest first for history views).
func (r *pedidoRepo) filtrarLocked(match func(*model.Pedido) bool, desc bool) []model.Pedido {
	var pedidos []model.Pedido
	for _, p := range r.s.pedidos {
		if match(p) {
			pedidos = append(pedidos, *r.proyectarLocked(p))
		}
	}
	sort.Slice(pedidos, func(i, j int) bool {
		if desc {
			return pedidos[i].CreatedAt.After(pedidos[j].CreatedAt)
		}
		return pedidos[i].CreatedAt.Before(pedidos[j].CreatedAt)
	})
	return pedidos
}

// proyectarLocked deep-copies a pedido and joins in the current producto and
// mesa rows, the way the gorm Preloads do.
func (r *pedidoRepo) proyectarLocked(p *model.Pedido) *model.Pedido {
	copia := clonarPedido(p)
	for i := range copia.Detalles {
		if prod, ok := r.s.productos[copia.Detalles[i].ProductoID]; ok {
			prodCopia := *prod
			copia.Detalles[i].Producto = &prodCopia
		}
	}
	if p.MesaID != nil {
		if mesa, ok := r.s.mesas[*p.MesaID]; ok {
			mesaCopia := *mesa
			copia.Mesa = &mesaCopia
		}
	}
	return copia
}

func clonarPedido(p *model.Pedido) *model.Pedido {
	copia := *p
	copia.Detalles = make([]model.DetallePedido, len(p.Detalles))
	copy(copia.Detalles, p.Detalles)
	for i := range copia.Detalles {
		copia.Detalles[i].Producto = nil
	}
	copia.Mesa = nil
	return &copia
}

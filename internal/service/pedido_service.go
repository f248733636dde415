package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alejoalf/Sistema-bar/internal/dto"
	"github.com/alejoalf/Sistema-bar/internal/model"
	"github.com/alejoalf/Sistema-bar/internal/repository"
	"github.com/alejoalf/Sistema-bar/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PedidoService is the order engine: it creates pedidos for mesas and barra
// tabs, serves the running cuenta per tab, removes lines with stock
// restoration and total recompute, and cancels whole tabs.
type PedidoService interface {
	Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error)
	CuentaMesa(ctx context.Context, mesaID uuid.UUID) (*dto.CuentaResponse, error)
	CuentaTicket(ctx context.Context, ticket int) (*dto.CuentaResponse, error)
	TabsBarra(ctx context.Context) ([]dto.TabBarraResponse, error)
	EliminarItem(ctx context.Context, detalleID uuid.UUID) (*dto.EliminarItemResponse, error)
	CancelarMesa(ctx context.Context, mesaID uuid.UUID) error
	CancelarTicketBarra(ctx context.Context, ticket int) error
}

type pedidoService struct {
	repo         repository.PedidoRepository
	productoRepo repository.ProductoRepository
	mesaRepo     repository.MesaRepository
	dispatcher   *worker.Dispatcher
}

func NewPedidoService(
	repo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	mesaRepo repository.MesaRepository,
	dispatcher *worker.Dispatcher,
) PedidoService {
	return &pedidoService{
		repo:         repo,
		productoRepo: productoRepo,
		mesaRepo:     mesaRepo,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (demo mode / unit tests).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// One transaction: pedido + detalles + one atomic stock decrement per line.
// Mesa id takes precedence over cliente when both are supplied. A barra pedido
// without ticket gets a fresh ticket number; with ticket it joins that tab.

func (s *pedidoService) Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	var mesaID *uuid.UUID
	var cliente *string
	ticketExistente := false

	if req.MesaID != nil && *req.MesaID != "" {
		id, err := uuid.Parse(*req.MesaID)
		if err != nil {
			return nil, fmt.Errorf("mesa_id inválido: %w", err)
		}
		if _, err := s.mesaRepo.FindByID(ctx, id); err != nil {
			return nil, errors.New("mesa no encontrada")
		}
		mesaID = &id
		// cliente is ignored for mesa pedidos: the mesa identifies the tab
	} else {
		if req.Cliente == nil || strings.TrimSpace(*req.Cliente) == "" {
			return nil, errors.New("un pedido de barra requiere nombre de cliente")
		}
		nombre := strings.TrimSpace(*req.Cliente)
		cliente = &nombre
		if req.TicketBarra != nil {
			abiertos, err := s.repo.FindAbiertosPorTicket(ctx, *req.TicketBarra)
			if err != nil {
				return nil, err
			}
			if len(abiertos) == 0 {
				return nil, errors.New("el ticket de barra no tiene una cuenta abierta")
			}
			ticketExistente = true
		}
	}

	// Resolve products and snapshot prices — pre-flight, outside the TX
	type lineaResuelta struct {
		productoID uuid.UUID
		nombre     string
		precio     decimal.Decimal
	}
	lineas := make([]lineaResuelta, 0, len(req.Items))
	total := decimal.Zero
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", item.ProductoID)
		}
		if !p.Activo || !p.Disponible {
			return nil, fmt.Errorf("el producto %s no está disponible", p.Nombre)
		}
		lineas = append(lineas, lineaResuelta{productoID: pid, nombre: p.Nombre, precio: p.Precio})
		total = total.Add(p.Precio)
	}

	var pedido model.Pedido
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var ticket *int
		if mesaID == nil {
			if ticketExistente {
				ticket = req.TicketBarra
			} else {
				num, err := s.repo.NextTicketBarra(ctx, tx)
				if err != nil {
					return err
				}
				ticket = &num
			}
		}

		pedido = model.Pedido{
			MesaID:      mesaID,
			TicketBarra: ticket,
			Cliente:     cliente,
			Estado:      model.PedidoPendiente,
			Total:       total,
		}
		for _, l := range lineas {
			pedido.Detalles = append(pedido.Detalles, model.DetallePedido{
				ProductoID:     l.productoID,
				Cantidad:       1,
				PrecioUnitario: l.precio,
			})
		}
		if err := s.repo.CreateTx(tx, &pedido); err != nil {
			return err
		}

		// A pedido occupies its mesa; idempotent when already ocupada.
		if mesaID != nil {
			if err := s.mesaRepo.UpdateEstadoTx(tx, *mesaID, model.MesaOcupada); err != nil {
				return err
			}
		}

		// One decrement per line, never batched: the cantidad-1-per-line
		// scheme keeps reversal symmetric with creation.
		for _, l := range lineas {
			if err := s.productoRepo.AjustarStockTx(tx, l.productoID, -1); err != nil {
				return fmt.Errorf("error descontando stock de %s: %w", l.nombre, err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Kitchen ticket — best effort, fire & forget
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueComanda(ctx, map[string]interface{}{
			"pedido_id": pedido.ID.String(),
		})
	}

	resp := pedidoToResponse(&pedido)
	for i, l := range lineas {
		resp.Detalles[i].Producto = l.nombre
	}
	return resp, nil
}

// ── Cuentas ───────────────────────────────────────────────────────────────────

func (s *pedidoService) CuentaMesa(ctx context.Context, mesaID uuid.UUID) (*dto.CuentaResponse, error) {
	if _, err := s.mesaRepo.FindByID(ctx, mesaID); err != nil {
		return nil, errors.New("mesa no encontrada")
	}
	pedidos, err := s.repo.FindAbiertosPorMesa(ctx, mesaID)
	if err != nil {
		return nil, err
	}
	return cuentaDe(pedidos), nil
}

func (s *pedidoService) CuentaTicket(ctx context.Context, ticket int) (*dto.CuentaResponse, error) {
	pedidos, err := s.repo.FindAbiertosPorTicket(ctx, ticket)
	if err != nil {
		return nil, err
	}
	return cuentaDe(pedidos), nil
}

// TabsBarra groups every open barra pedido by ticket, oldest tab first.
func (s *pedidoService) TabsBarra(ctx context.Context) ([]dto.TabBarraResponse, error) {
	pedidos, err := s.repo.FindAbiertosBarra(ctx)
	if err != nil {
		return nil, err
	}
	porTicket := make(map[int]*dto.TabBarraResponse)
	orden := make([]int, 0)
	for i := range pedidos {
		p := &pedidos[i]
		if p.TicketBarra == nil {
			continue
		}
		tab, ok := porTicket[*p.TicketBarra]
		if !ok {
			tab = &dto.TabBarraResponse{TicketBarra: *p.TicketBarra, Saldo: decimal.Zero}
			if p.Cliente != nil {
				tab.Cliente = *p.Cliente
			}
			porTicket[*p.TicketBarra] = tab
			orden = append(orden, *p.TicketBarra)
		}
		tab.Pedidos = append(tab.Pedidos, *pedidoToResponse(p))
		tab.Saldo = tab.Saldo.Add(p.Total)
	}
	tabs := make([]dto.TabBarraResponse, 0, len(orden))
	for _, ticket := range orden {
		tabs = append(tabs, *porTicket[ticket])
	}
	return tabs, nil
}

// ── EliminarItem ──────────────────────────────────────────────────────────────
// Stock +cantidad, delete the line, recompute the parent total from surviving
// lines — or delete the pedido when it was the last line. One transaction.

func (s *pedidoService) EliminarItem(ctx context.Context, detalleID uuid.UUID) (*dto.EliminarItemResponse, error) {
	detalle, err := s.repo.FindDetalleByID(ctx, detalleID)
	if err != nil {
		return nil, errors.New("item no encontrado")
	}
	pedido, err := s.repo.FindByID(ctx, detalle.PedidoID)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}
	if pedido.Estado != model.PedidoPendiente {
		return nil, errors.New("el pedido ya fue cobrado")
	}

	resp := &dto.EliminarItemResponse{PedidoID: pedido.ID.String()}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.productoRepo.AjustarStockTx(tx, detalle.ProductoID, detalle.Cantidad); err != nil {
			return err
		}
		if err := s.repo.DeleteDetalleTx(tx, detalleID); err != nil {
			return err
		}
		restantes, err := s.repo.FindDetallesByPedidoTx(tx, pedido.ID)
		if err != nil {
			return err
		}
		if len(restantes) == 0 {
			// an order with no lines is not a billable unit
			resp.PedidoEliminado = true
			resp.NuevoTotal = decimal.Zero
			return s.repo.DeletePedidoTx(tx, pedido.ID)
		}
		nuevoTotal := decimal.Zero
		for i := range restantes {
			nuevoTotal = nuevoTotal.Add(restantes[i].Subtotal())
		}
		resp.NuevoTotal = nuevoTotal
		return s.repo.UpdateTotalTx(tx, pedido.ID, nuevoTotal)
	})
	if txErr != nil {
		return nil, txErr
	}
	return resp, nil
}

// ── Cancelaciones ─────────────────────────────────────────────────────────────
// Compensating transaction: restore stock for every line, then delete detalles
// and pedidos. The mesa variant additionally releases the mesa.

func (s *pedidoService) CancelarMesa(ctx context.Context, mesaID uuid.UUID) error {
	if _, err := s.mesaRepo.FindByID(ctx, mesaID); err != nil {
		return errors.New("mesa no encontrada")
	}
	pedidos, err := s.repo.FindAbiertosPorMesa(ctx, mesaID)
	if err != nil {
		return err
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.cancelarPedidosTx(tx, pedidos); err != nil {
			return err
		}
		return s.mesaRepo.UpdateEstadoTx(tx, mesaID, model.MesaLibre)
	})
}

func (s *pedidoService) CancelarTicketBarra(ctx context.Context, ticket int) error {
	pedidos, err := s.repo.FindAbiertosPorTicket(ctx, ticket)
	if err != nil {
		return err
	}
	if len(pedidos) == 0 {
		return errors.New("el ticket de barra no tiene una cuenta abierta")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.cancelarPedidosTx(tx, pedidos)
	})
}

func (s *pedidoService) cancelarPedidosTx(tx *gorm.DB, pedidos []model.Pedido) error {
	ids := make([]uuid.UUID, 0, len(pedidos))
	for i := range pedidos {
		ids = append(ids, pedidos[i].ID)
		for _, d := range pedidos[i].Detalles {
			if err := s.productoRepo.AjustarStockTx(tx, d.ProductoID, d.Cantidad); err != nil {
				return err
			}
		}
	}
	if err := s.repo.DeleteDetallesDePedidosTx(tx, ids); err != nil {
		return err
	}
	return s.repo.DeletePedidosTx(tx, ids)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func cuentaDe(pedidos []model.Pedido) *dto.CuentaResponse {
	cuenta := &dto.CuentaResponse{Pedidos: make([]dto.PedidoResponse, 0, len(pedidos)), Saldo: decimal.Zero}
	for i := range pedidos {
		cuenta.Pedidos = append(cuenta.Pedidos, *pedidoToResponse(&pedidos[i]))
		cuenta.Saldo = cuenta.Saldo.Add(pedidos[i].Total)
	}
	return cuenta
}

func pedidoToResponse(p *model.Pedido) *dto.PedidoResponse {
	resp := &dto.PedidoResponse{
		ID:          p.ID.String(),
		TicketBarra: p.TicketBarra,
		Cliente:     p.Cliente,
		Estado:      p.Estado,
		Total:       p.Total,
		MetodoPago:  p.MetodoPago,
		Detalles:    make([]dto.DetalleResponse, 0, len(p.Detalles)),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
	if p.MesaID != nil {
		id := p.MesaID.String()
		resp.MesaID = &id
	}
	if p.Mesa != nil {
		numero := p.Mesa.NumeroMesa
		resp.NumeroMesa = &numero
	}
	for _, d := range p.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		resp.Detalles = append(resp.Detalles, dto.DetalleResponse{
			ID:             d.ID.String(),
			ProductoID:     d.ProductoID.String(),
			Producto:       nombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal(),
		})
	}
	return resp
}

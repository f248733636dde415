package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/alejoalf/Sistema-bar/internal/dto"
	"github.com/alejoalf/Sistema-bar/internal/repository"
	"github.com/alejoalf/Sistema-bar/internal/worker"

	"github.com/shopspring/decimal"
)

// ReporteService builds the sales history and the per-day cierre aggregates.
// Day buckets use the server-local date portion of created_at, matching how
// the register is reconciled at the end of a shift.
type ReporteService interface {
	Historial(ctx context.Context) ([]dto.VentaHistorialItem, error)
	Cierre(ctx context.Context) (*dto.CierreResponse, error)
	CierreDelDia(ctx context.Context, fecha string) (*dto.CierreDia, error)
	EnviarCierre(ctx context.Context, req dto.EnviarCierreRequest) error
}

type reporteService struct {
	pedidoRepo repository.PedidoRepository
	cajaRepo   repository.CajaRepository
	dispatcher *worker.Dispatcher
}

func NewReporteService(pedidoRepo repository.PedidoRepository, cajaRepo repository.CajaRepository, dispatcher *worker.Dispatcher) ReporteService {
	return &reporteService{pedidoRepo: pedidoRepo, cajaRepo: cajaRepo, dispatcher: dispatcher}
}

// Historial lists every cobrado pedido, newest first.
func (s *reporteService) Historial(ctx context.Context) ([]dto.VentaHistorialItem, error) {
	pedidos, err := s.pedidoRepo.FindCobrados(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VentaHistorialItem, 0, len(pedidos))
	for i := range pedidos {
		p := &pedidos[i]
		item := dto.VentaHistorialItem{
			ID:          p.ID.String(),
			TicketBarra: p.TicketBarra,
			Cliente:     p.Cliente,
			Total:       p.Total,
			MetodoPago:  p.MetodoPago,
			CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		}
		if p.Mesa != nil {
			numero := p.Mesa.NumeroMesa
			item.NumeroMesa = &numero
		}
		for _, d := range p.Detalles {
			nombre := ""
			if d.Producto != nil {
				nombre = d.Producto.Nombre
			}
			item.Detalles = append(item.Detalles, dto.DetalleResponse{
				ID:             d.ID.String(),
				ProductoID:     d.ProductoID.String(),
				Producto:       nombre,
				Cantidad:       d.Cantidad,
				PrecioUnitario: d.PrecioUnitario,
				Subtotal:       d.Subtotal(),
			})
		}
		out = append(out, item)
	}
	return out, nil
}

// Cierre aggregates every day that has cobrado pedidos or extracciones,
// newest day first.
func (s *reporteService) Cierre(ctx context.Context) (*dto.CierreResponse, error) {
	dias, err := s.construirCierres(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CierreResponse{Dias: dias}, nil
}

// CierreDelDia returns the aggregate for one day; a day with no activity
// yields a zeroed cierre rather than an error.
func (s *reporteService) CierreDelDia(ctx context.Context, fecha string) (*dto.CierreDia, error) {
	dias, err := s.construirCierres(ctx)
	if err != nil {
		return nil, err
	}
	for i := range dias {
		if dias[i].Fecha == fecha {
			return &dias[i], nil
		}
	}
	return &dto.CierreDia{
		Fecha:          fecha,
		TotalRecaudado: decimal.Zero,
		TotalExtraido:  decimal.Zero,
		Neto:           decimal.Zero,
		Ranking:        []dto.RankingProducto{},
	}, nil
}

// EnviarCierre queues the daily-close report for email delivery; the worker
// renders the PDF and mails it.
func (s *reporteService) EnviarCierre(ctx context.Context, req dto.EnviarCierreRequest) error {
	if s.dispatcher == nil {
		return errors.New("el envío de cierres no está habilitado")
	}
	return s.dispatcher.EnqueueCierre(ctx, worker.CierreJobPayload{
		Email: req.Email,
		Fecha: req.Fecha,
	})
}

func (s *reporteService) construirCierres(ctx context.Context) ([]dto.CierreDia, error) {
	pedidos, err := s.pedidoRepo.FindCobrados(ctx)
	if err != nil {
		return nil, err
	}
	extracciones, err := s.cajaRepo.ListExtracciones(ctx)
	if err != nil {
		return nil, err
	}

	type acumulador struct {
		recaudado decimal.Decimal
		pedidos   int
		mesas     map[int]struct{}
		tickets   map[int]struct{}
		ranking   map[string]*dto.RankingProducto
		extraido  decimal.Decimal
	}
	porDia := make(map[string]*acumulador)
	diaDe := func(fecha string) *acumulador {
		a, ok := porDia[fecha]
		if !ok {
			a = &acumulador{
				recaudado: decimal.Zero,
				extraido:  decimal.Zero,
				mesas:     make(map[int]struct{}),
				tickets:   make(map[int]struct{}),
				ranking:   make(map[string]*dto.RankingProducto),
			}
			porDia[fecha] = a
		}
		return a
	}

	for i := range pedidos {
		p := &pedidos[i]
		a := diaDe(p.CreatedAt.Local().Format("2006-01-02"))
		a.recaudado = a.recaudado.Add(p.Total)
		a.pedidos++
		if p.Mesa != nil {
			a.mesas[p.Mesa.NumeroMesa] = struct{}{}
		} else if p.TicketBarra != nil {
			a.tickets[*p.TicketBarra] = struct{}{}
		}
		for _, d := range p.Detalles {
			if d.Producto == nil {
				continue
			}
			r, ok := a.ranking[d.Producto.Nombre]
			if !ok {
				r = &dto.RankingProducto{
					Nombre:    d.Producto.Nombre,
					Categoria: d.Producto.Categoria,
					Recaudado: decimal.Zero,
				}
				a.ranking[d.Producto.Nombre] = r
			}
			r.Cantidad += d.Cantidad
			r.Recaudado = r.Recaudado.Add(d.Subtotal())
		}
	}

	for i := range extracciones {
		a := diaDe(extracciones[i].CreatedAt.Local().Format("2006-01-02"))
		a.extraido = a.extraido.Add(extracciones[i].Monto)
	}

	fechas := make([]string, 0, len(porDia))
	for fecha := range porDia {
		fechas = append(fechas, fecha)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(fechas)))

	dias := make([]dto.CierreDia, 0, len(fechas))
	for _, fecha := range fechas {
		a := porDia[fecha]
		ranking := make([]dto.RankingProducto, 0, len(a.ranking))
		for _, r := range a.ranking {
			ranking = append(ranking, *r)
		}
		sort.Slice(ranking, func(i, j int) bool {
			if ranking[i].Cantidad != ranking[j].Cantidad {
				return ranking[i].Cantidad > ranking[j].Cantidad
			}
			return ranking[i].Nombre < ranking[j].Nombre
		})
		dias = append(dias, dto.CierreDia{
			Fecha:           fecha,
			TotalRecaudado:  a.recaudado,
			CantidadPedidos: a.pedidos,
			CuentasCerradas: len(a.mesas) + len(a.tickets),
			Ranking:         ranking,
			TotalExtraido:   a.extraido,
			Neto:            a.recaudado.Sub(a.extraido),
		})
	}
	return dias, nil
}

package service

import (
	"context"
	"errors"

	"github.com/alejoalf/Sistema-bar/internal/dto"
	"github.com/alejoalf/Sistema-bar/internal/model"
	"github.com/alejoalf/Sistema-bar/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MesaService drives the salon view and the mesa lifecycle between libre and
// ocupada.
type MesaService interface {
	Listar(ctx context.Context) ([]dto.MesaResponse, error)
	Abrir(ctx context.Context, id uuid.UUID) (*dto.MesaResponse, error)
	Cerrar(ctx context.Context, id uuid.UUID) (*dto.MesaResponse, error)
}

type mesaService struct {
	repo       repository.MesaRepository
	pedidoRepo repository.PedidoRepository
}

func NewMesaService(repo repository.MesaRepository, pedidoRepo repository.PedidoRepository) MesaService {
	return &mesaService{repo: repo, pedidoRepo: pedidoRepo}
}

// Listar returns every mesa ordered by numero with the open-pedido count and
// saldo derived from the pedido table, so the salon view always shows the
// real balance even if the estado flag drifted.
func (s *mesaService) Listar(ctx context.Context) ([]dto.MesaResponse, error) {
	mesas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resumen, err := s.pedidoRepo.ResumenAbiertosPorMesa(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MesaResponse, 0, len(mesas))
	for i := range mesas {
		m := &mesas[i]
		resp := dto.MesaResponse{
			ID:         m.ID.String(),
			NumeroMesa: m.NumeroMesa,
			Sector:     m.Sector,
			Capacidad:  m.Capacidad,
			Estado:     m.Estado,
			Saldo:      decimal.Zero,
		}
		if r, ok := resumen[m.ID]; ok {
			resp.PedidosAbiertos = r.Cantidad
			resp.Saldo = r.Saldo
		}
		out = append(out, resp)
	}
	return out, nil
}

// Abrir marks a libre mesa ocupada when customers sit down, before any pedido
// exists.
func (s *mesaService) Abrir(ctx context.Context, id uuid.UUID) (*dto.MesaResponse, error) {
	mesa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("mesa no encontrada")
	}
	if mesa.Estado != model.MesaLibre {
		return nil, errors.New("la mesa ya está ocupada")
	}
	if err := s.repo.UpdateEstado(ctx, id, model.MesaOcupada); err != nil {
		return nil, err
	}
	mesa.Estado = model.MesaOcupada
	return mesaToResponse(mesa, 0, decimal.Zero), nil
}

// Cerrar releases a mesa back to libre without touching pedidos; it refuses
// while the mesa still has an open balance. Supervisors use it when a table
// was opened by mistake or after a cobro with mantener_ocupada.
func (s *mesaService) Cerrar(ctx context.Context, id uuid.UUID) (*dto.MesaResponse, error) {
	mesa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("mesa no encontrada")
	}
	abiertos, err := s.pedidoRepo.FindAbiertosPorMesa(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(abiertos) > 0 {
		return nil, errors.New("la mesa tiene pedidos pendientes: cobrar o cancelar antes de cerrarla")
	}
	if err := s.repo.UpdateEstado(ctx, id, model.MesaLibre); err != nil {
		return nil, err
	}
	mesa.Estado = model.MesaLibre
	return mesaToResponse(mesa, 0, decimal.Zero), nil
}

func mesaToResponse(m *model.Mesa, abiertos int, saldo decimal.Decimal) *dto.MesaResponse {
	return &dto.MesaResponse{
		ID:              m.ID.String(),
		NumeroMesa:      m.NumeroMesa,
		Sector:          m.Sector,
		Capacidad:       m.Capacidad,
		Estado:          m.Estado,
		PedidosAbiertos: abiertos,
		Saldo:           saldo,
	}
}

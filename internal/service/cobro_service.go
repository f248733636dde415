package service

import (
	"context"
	"errors"

	"github.com/alejoalf/Sistema-bar/internal/dto"
	"github.com/alejoalf/Sistema-bar/internal/model"
	"github.com/alejoalf/Sistema-bar/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CobroService settles tabs: every pendiente pedido of the tab flips to
// cobrado with the metodo stamped, in one transaction. Cobrado pedidos are
// never mutated again; reporting reads them as-is.
type CobroService interface {
	CobrarMesa(ctx context.Context, mesaID uuid.UUID, req dto.CobrarRequest) (*dto.CobroResponse, error)
	CobrarTicketBarra(ctx context.Context, ticket int, req dto.CobrarRequest) (*dto.CobroResponse, error)
	CobrarPedido(ctx context.Context, pedidoID uuid.UUID, req dto.CobrarRequest) (*dto.CobroResponse, error)
}

type cobroService struct {
	repo     repository.PedidoRepository
	mesaRepo repository.MesaRepository
}

func NewCobroService(repo repository.PedidoRepository, mesaRepo repository.MesaRepository) CobroService {
	return &cobroService{repo: repo, mesaRepo: mesaRepo}
}

// CobrarMesa settles every open pedido of the mesa and releases it to libre,
// unless mantener_ocupada asks to keep the physical table in use. Settling a
// mesa with no open pedidos is an error: an empty occupied mesa is released
// through the explicit cerrar operation instead.
func (s *cobroService) CobrarMesa(ctx context.Context, mesaID uuid.UUID, req dto.CobrarRequest) (*dto.CobroResponse, error) {
	if _, err := s.mesaRepo.FindByID(ctx, mesaID); err != nil {
		return nil, errors.New("mesa no encontrada")
	}
	abiertos, err := s.repo.FindAbiertosPorMesa(ctx, mesaID)
	if err != nil {
		return nil, err
	}
	if len(abiertos) == 0 {
		return nil, errors.New("la mesa no tiene pedidos pendientes para cobrar")
	}

	total := decimal.Zero
	for i := range abiertos {
		total = total.Add(abiertos[i].Total)
	}

	liberada := false
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		cobrados, err := s.repo.CobrarPorMesaTx(tx, mesaID, req.MetodoPago)
		if err != nil {
			return err
		}
		if cobrados == 0 {
			return errors.New("la mesa no tiene pedidos pendientes para cobrar")
		}
		if !req.MantenerOcupada {
			if err := s.mesaRepo.UpdateEstadoTx(tx, mesaID, model.MesaLibre); err != nil {
				return err
			}
			liberada = true
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.CobroResponse{
		PedidosCobrados: len(abiertos),
		TotalCobrado:    total,
		MetodoPago:      req.MetodoPago,
		MesaLiberada:    liberada,
	}, nil
}

// CobrarTicketBarra settles every open pedido of one walk-up tab.
func (s *cobroService) CobrarTicketBarra(ctx context.Context, ticket int, req dto.CobrarRequest) (*dto.CobroResponse, error) {
	abiertos, err := s.repo.FindAbiertosPorTicket(ctx, ticket)
	if err != nil {
		return nil, err
	}
	if len(abiertos) == 0 {
		return nil, errors.New("el ticket de barra no tiene pedidos pendientes para cobrar")
	}

	total := decimal.Zero
	for i := range abiertos {
		total = total.Add(abiertos[i].Total)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		cobrados, err := s.repo.CobrarPorTicketTx(tx, ticket, req.MetodoPago)
		if err != nil {
			return err
		}
		if cobrados == 0 {
			return errors.New("el ticket de barra no tiene pedidos pendientes para cobrar")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.CobroResponse{
		PedidosCobrados: len(abiertos),
		TotalCobrado:    total,
		MetodoPago:      req.MetodoPago,
	}, nil
}

// CobrarPedido settles one pedido in isolation, leaving its siblings on the
// tab open. A mesa pedido cobro never releases the mesa.
func (s *cobroService) CobrarPedido(ctx context.Context, pedidoID uuid.UUID, req dto.CobrarRequest) (*dto.CobroResponse, error) {
	pedido, err := s.repo.FindByID(ctx, pedidoID)
	if err != nil {
		return nil, errors.New("pedido no encontrado")
	}
	if pedido.Estado != model.PedidoPendiente {
		return nil, errors.New("el pedido ya fue cobrado")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CobrarPedidoTx(tx, pedidoID, req.MetodoPago)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.CobroResponse{
		PedidosCobrados: 1,
		TotalCobrado:    pedido.Total,
		MetodoPago:      req.MetodoPago,
	}, nil
}

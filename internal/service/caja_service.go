package service

import (
	"context"
	"time"

	"github.com/alejoalf/Sistema-bar/internal/dto"
	"github.com/alejoalf/Sistema-bar/internal/model"
	"github.com/alejoalf/Sistema-bar/internal/repository"

	"github.com/google/uuid"
)

// CajaService records cash extractions into the append-only register ledger.
// Extractions are independent of sales and only netted against revenue at
// reporting time.
type CajaService interface {
	RegistrarExtraccion(ctx context.Context, usuarioID *uuid.UUID, usuario *string, req dto.RegistrarExtraccionRequest) (*dto.ExtraccionResponse, error)
	ListarExtracciones(ctx context.Context) ([]dto.ExtraccionResponse, error)
}

type cajaService struct {
	repo repository.CajaRepository
}

func NewCajaService(repo repository.CajaRepository) CajaService {
	return &cajaService{repo: repo}
}

func (s *cajaService) RegistrarExtraccion(ctx context.Context, usuarioID *uuid.UUID, usuario *string, req dto.RegistrarExtraccionRequest) (*dto.ExtraccionResponse, error) {
	mov := &model.MovimientoCaja{
		Tipo:      model.MovimientoExtraccion,
		Monto:     req.Monto,
		Motivo:    req.Motivo,
		Usuario:   usuario,
		UsuarioID: usuarioID,
	}
	if err := s.repo.CreateMovimiento(ctx, mov); err != nil {
		return nil, err
	}
	return movimientoToResponse(mov), nil
}

func (s *cajaService) ListarExtracciones(ctx context.Context) ([]dto.ExtraccionResponse, error) {
	movs, err := s.repo.ListExtracciones(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExtraccionResponse, 0, len(movs))
	for i := range movs {
		out = append(out, *movimientoToResponse(&movs[i]))
	}
	return out, nil
}

func movimientoToResponse(m *model.MovimientoCaja) *dto.ExtraccionResponse {
	return &dto.ExtraccionResponse{
		ID:        m.ID.String(),
		Tipo:      m.Tipo,
		Monto:     m.Monto,
		Motivo:    m.Motivo,
		Usuario:   m.Usuario,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}

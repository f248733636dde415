package repository

import (
	"context"

	"github.com/alejoalf/Sistema-bar/internal/model"

	"gorm.io/gorm"
)

// CajaRepository persists the append-only register ledger. There is no Update
// or Delete on purpose: movements are immutable.
type CajaRepository interface {
	CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error
	ListExtracciones(ctx context.Context) ([]model.MovimientoCaja, error)
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) CreateMovimiento(ctx context.Context, m *model.MovimientoCaja) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *cajaRepo) ListExtracciones(ctx context.Context) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	err := r.db.WithContext(ctx).
		Where("tipo = ?", model.MovimientoExtraccion).
		Order("created_at DESC").
		Find(&movs).Error
	return movs, err
}

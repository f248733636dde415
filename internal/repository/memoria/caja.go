package memoria

import (
	"context"
	"time"

	"github.com/alejoalf/Sistema-bar/internal/model"

	"github.com/google/uuid"
)

type cajaRepo struct{ s *Store }

func (r *cajaRepo) CreateMovimiento(_ context.Context, m *model.MovimientoCaja) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.s.movimientos = append(r.s.movimientos, *m)
	return nil
}

func (r *cajaRepo) ListExtracciones(_ context.Context) ([]model.MovimientoCaja, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	// newest first
	var movs []model.MovimientoCaja
	for i := len(r.s.movimientos) - 1; i >= 0; i-- {
		if r.s.movimientos[i].Tipo == model.MovimientoExtraccion {
			movs = append(movs, r.s.movimientos[i])
		}
	}
	return movs, nil
}

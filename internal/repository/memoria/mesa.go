package memoria

import (
	"context"
	"errors"
	"sort"

	"github.com/alejoalf/Sistema-bar/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errNoEncontrado = errors.New("registro no encontrado")

type mesaRepo struct{ s *Store }

func (r *mesaRepo) DB() *gorm.DB { return nil }

func (r *mesaRepo) Create(_ context.Context, m *model.Mesa) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	copia := *m
	r.s.mesas[m.ID] = &copia
	return nil
}

func (r *mesaRepo) List(_ context.Context) ([]model.Mesa, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	mesas := make([]model.Mesa, 0, len(r.s.mesas))
	for _, m := range r.s.mesas {
		mesas = append(mesas, *m)
	}
	sort.Slice(mesas, func(i, j int) bool { return mesas[i].NumeroMesa < mesas[j].NumeroMesa })
	return mesas, nil
}

func (r *mesaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Mesa, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.mesas[id]
	if !ok {
		return nil, errNoEncontrado
	}
	copia := *m
	return &copia, nil
}

func (r *mesaRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.updateEstadoLocked(id, estado)
}

func (r *mesaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.updateEstadoLocked(id, estado)
}

func (r *mesaRepo) updateEstadoLocked(id uuid.UUID, estado string) error {
	m, ok := r.s.mesas[id]
	if !ok {
		return errNoEncontrado
	}
	m.Estado = estado
	return nil
}

package memoria

import (
	"context"
	"sort"

	"github.com/alejoalf/Sistema-bar/internal/model"

	"github.com/google/uuid"
)

type usuarioRepo struct{ s *Store }

func (r *usuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	copia := *u
	r.s.usuarios[u.ID] = &copia
	return nil
}

func (r *usuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.usuarios {
		if u.Username == username && u.Activo {
			copia := *u
			return &copia, nil
		}
	}
	return nil, errNoEncontrado
}

func (r *usuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.usuarios[id]
	if !ok {
		return nil, errNoEncontrado
	}
	copia := *u
	return &copia, nil
}

func (r *usuarioRepo) List(_ context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var usuarios []model.Usuario
	for _, u := range r.s.usuarios {
		if !incluirInactivos && !u.Activo {
			continue
		}
		usuarios = append(usuarios, *u)
	}
	sort.Slice(usuarios, func(i, j int) bool { return usuarios[i].Username < usuarios[j].Username })
	return usuarios, nil
}

// Package memoria implements every repository interface over an in-memory
// dataset. It backs the demo mode the server falls back to when DATABASE_URL
// is not configured, mirroring the front end's mock-dataset behavior, and it
// is what the service tests run against.
//
// Transactional repo methods receive a nil *gorm.DB here (the service-level
// runTx calls the step function directly when no DB is available); steps are
// applied in order without rollback, which is acceptable for demo data.
package memoria

import (
	"sync"

	"github.com/alejoalf/Sistema-bar/internal/model"
	"github.com/alejoalf/Sistema-bar/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Store holds the shared dataset behind all memoria repositories.
type Store struct {
	mu          sync.RWMutex
	mesas       map[uuid.UUID]*model.Mesa
	productos   map[uuid.UUID]*model.Producto
	pedidos     map[uuid.UUID]*model.Pedido
	movimientos []model.MovimientoCaja
	usuarios    map[uuid.UUID]*model.Usuario
	ticketSeq   int
}

func NewStore() *Store {
	return &Store{
		mesas:     make(map[uuid.UUID]*model.Mesa),
		productos: make(map[uuid.UUID]*model.Producto),
		pedidos:   make(map[uuid.UUID]*model.Pedido),
		usuarios:  make(map[uuid.UUID]*model.Usuario),
	}
}

func (s *Store) Mesas() repository.MesaRepository         { return &mesaRepo{s: s} }
func (s *Store) Productos() repository.ProductoRepository { return &productoRepo{s: s} }
func (s *Store) Pedidos() repository.PedidoRepository     { return &pedidoRepo{s: s} }
func (s *Store) Caja() repository.CajaRepository          { return &cajaRepo{s: s} }
func (s *Store) Usuarios() repository.UsuarioRepository   { return &usuarioRepo{s: s} }

// Seed loads the demo salon (the original 24-table layout across three
// sectors), a small carta and an admin/admin123 user.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	numero := 0
	addMesas := func(sector string, cantidad int) {
		for i := 0; i < cantidad; i++ {
			numero++
			m := &model.Mesa{
				ID:         uuid.New(),
				NumeroMesa: numero,
				Sector:     sector,
				Capacidad:  4,
				Estado:     model.MesaLibre,
			}
			s.mesas[m.ID] = m
		}
	}
	addMesas("salon", 10)
	addMesas("patio-medio", 6)
	addMesas("patio-fondo", 8)

	carta := []struct {
		nombre    string
		categoria string
		precio    int64
	}{
		{"Cerveza Tirada", "Bebidas", 2500},
		{"Fernet con Coca", "Bebidas", 4000},
		{"Coca-Cola", "Bebidas", 1800},
		{"Agua Mineral", "Bebidas", 1200},
		{"Cafe", "Cafeteria", 1500},
		{"Tostado", "Cafeteria", 3200},
		{"Hamburguesa Completa", "Cocina", 7500},
		{"Milanesa con Papas", "Cocina", 8900},
		{"Pizza Muzzarella", "Cocina", 7000},
		{"Empanada", "Cocina", 1100},
		{"Papas Fritas", "Cocina", 4200},
		{"Flan Casero", "Postres", 2800},
	}
	for _, item := range carta {
		p := &model.Producto{
			ID:          uuid.New(),
			Nombre:      item.nombre,
			Categoria:   item.categoria,
			Precio:      decimal.NewFromInt(item.precio),
			StockActual: 50,
			Activo:      true,
			Disponible:  true,
		}
		s.productos[p.ID] = p
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &model.Usuario{
		ID:           uuid.New(),
		Username:     "admin",
		Nombre:       "Administrador Demo",
		PasswordHash: string(hash),
		Rol:          "administrador",
		Activo:       true,
	}
	s.usuarios[admin.ID] = admin
}

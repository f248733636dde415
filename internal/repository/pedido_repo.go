package repository

import (
	"context"

	"github.com/alejoalf/Sistema-bar/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResumenMesa carries the derived open-pedido count and saldo for one mesa,
// used by the salon listing to reconcile estado on read.
type ResumenMesa struct {
	Cantidad int
	Saldo    decimal.Decimal
}

// PedidoRepository is the data access contract for pedidos and their detalles.
// The ...Tx variants run inside a transaction opened by the service layer and
// receive the live *gorm.DB; implementations backed by memory ignore it.
type PedidoRepository interface {
	CreateTx(tx *gorm.DB, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	FindDetalleByID(ctx context.Context, id uuid.UUID) (*model.DetallePedido, error)

	// Open-tab queries: estado = pendiente, detalles + producto joined in,
	// oldest first (tab display order).
	FindAbiertosPorMesa(ctx context.Context, mesaID uuid.UUID) ([]model.Pedido, error)
	FindAbiertosPorTicket(ctx context.Context, ticket int) ([]model.Pedido, error)
	FindAbiertosBarra(ctx context.Context) ([]model.Pedido, error)
	ResumenAbiertosPorMesa(ctx context.Context) (map[uuid.UUID]ResumenMesa, error)

	// FindCobrados returns billed pedidos newest first with mesa and
	// detalles.producto joined for the history/closing screens.
	FindCobrados(ctx context.Context) ([]model.Pedido, error)

	// NextTicketBarra allocates a walk-up tab number.
	NextTicketBarra(ctx context.Context, tx *gorm.DB) (int, error)

	// FindDetallesByPedidoTx reads the surviving lines inside the same
	// transaction, so the total recompute sees the deletion.
	FindDetallesByPedidoTx(tx *gorm.DB, pedidoID uuid.UUID) ([]model.DetallePedido, error)
	UpdateTotalTx(tx *gorm.DB, pedidoID uuid.UUID, total decimal.Decimal) error
	DeleteDetalleTx(tx *gorm.DB, detalleID uuid.UUID) error
	DeletePedidoTx(tx *gorm.DB, pedidoID uuid.UUID) error
	DeleteDetallesDePedidosTx(tx *gorm.DB, pedidoIDs []uuid.UUID) error
	DeletePedidosTx(tx *gorm.DB, pedidoIDs []uuid.UUID) error

	// Cobro: mark pendientes cobrado and stamp the metodo. Return rows hit.
	CobrarPorMesaTx(tx *gorm.DB, mesaID uuid.UUID, metodo string) (int64, error)
	CobrarPorTicketTx(tx *gorm.DB, ticket int, metodo string) (int64, error)
	CobrarPedidoTx(tx *gorm.DB, id uuid.UUID, metodo string) error

	// DB exposes the underlying *gorm.DB so services can open transactions;
	// nil in demo mode (runTx then calls the step function directly).
	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) DB() *gorm.DB { return r.db }

func (r *pedidoRepo) CreateTx(tx *gorm.DB, p *model.Pedido) error {
	// gorm inserts the detalles association in the same statement batch
	return tx.Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).Preload("Detalles.Producto").Preload("Mesa").First(&p, id).Error
	return &p, err
}

func (r *pedidoRepo) FindDetalleByID(ctx context.Context, id uuid.UUID) (*model.DetallePedido, error) {
	var d model.DetallePedido
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

func (r *pedidoRepo) FindAbiertosPorMesa(ctx context.Context, mesaID uuid.UUID) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Where("mesa_id = ? AND estado = ?", mesaID, model.PedidoPendiente).
		Preload("Detalles.Producto").
		Order("created_at ASC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) FindAbiertosPorTicket(ctx context.Context, ticket int) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Where("ticket_barra = ? AND mesa_id IS NULL AND estado = ?", ticket, model.PedidoPendiente).
		Preload("Detalles.Producto").
		Order("created_at ASC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) FindAbiertosBarra(ctx context.Context) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Where("mesa_id IS NULL AND estado = ?", model.PedidoPendiente).
		Preload("Detalles.Producto").
		Order("created_at ASC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) ResumenAbiertosPorMesa(ctx context.Context) (map[uuid.UUID]ResumenMesa, error) {
	var rows []struct {
		MesaID   uuid.UUID
		Cantidad int
		Saldo    decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Select("mesa_id, COUNT(*) AS cantidad, COALESCE(SUM(total), 0) AS saldo").
		Where("mesa_id IS NOT NULL AND estado = ?", model.PedidoPendiente).
		Group("mesa_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	resumen := make(map[uuid.UUID]ResumenMesa, len(rows))
	for _, row := range rows {
		resumen[row.MesaID] = ResumenMesa{Cantidad: row.Cantidad, Saldo: row.Saldo}
	}
	return resumen, nil
}

func (r *pedidoRepo) FindCobrados(ctx context.Context) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Where("estado = ?", model.PedidoCobrado).
		Preload("Detalles.Producto").
		Preload("Mesa").
		Order("created_at DESC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) NextTicketBarra(ctx context.Context, tx *gorm.DB) (int, error) {
	// PostgreSQL sequence — atomic under concurrent terminals
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('pedidos_ticket_barra_seq')").Scan(&num).Error
	return num, err
}

func (r *pedidoRepo) FindDetallesByPedidoTx(tx *gorm.DB, pedidoID uuid.UUID) ([]model.DetallePedido, error) {
	var detalles []model.DetallePedido
	err := tx.Where("pedido_id = ?", pedidoID).Find(&detalles).Error
	return detalles, err
}

func (r *pedidoRepo) UpdateTotalTx(tx *gorm.DB, pedidoID uuid.UUID, total decimal.Decimal) error {
	return tx.Model(&model.Pedido{}).Where("id = ?", pedidoID).Update("total", total).Error
}

func (r *pedidoRepo) DeleteDetalleTx(tx *gorm.DB, detalleID uuid.UUID) error {
	return tx.Delete(&model.DetallePedido{}, detalleID).Error
}

func (r *pedidoRepo) DeletePedidoTx(tx *gorm.DB, pedidoID uuid.UUID) error {
	return tx.Delete(&model.Pedido{}, pedidoID).Error
}

func (r *pedidoRepo) DeleteDetallesDePedidosTx(tx *gorm.DB, pedidoIDs []uuid.UUID) error {
	if len(pedidoIDs) == 0 {
		return nil
	}
	return tx.Where("pedido_id IN ?", pedidoIDs).Delete(&model.DetallePedido{}).Error
}

func (r *pedidoRepo) DeletePedidosTx(tx *gorm.DB, pedidoIDs []uuid.UUID) error {
	if len(pedidoIDs) == 0 {
		return nil
	}
	return tx.Where("id IN ?", pedidoIDs).Delete(&model.Pedido{}).Error
}

func (r *pedidoRepo) CobrarPorMesaTx(tx *gorm.DB, mesaID uuid.UUID, metodo string) (int64, error) {
	res := tx.Model(&model.Pedido{}).
		Where("mesa_id = ? AND estado = ?", mesaID, model.PedidoPendiente).
		Updates(map[string]interface{}{"estado": model.PedidoCobrado, "metodo_pago": metodo})
	return res.RowsAffected, res.Error
}

func (r *pedidoRepo) CobrarPorTicketTx(tx *gorm.DB, ticket int, metodo string) (int64, error) {
	res := tx.Model(&model.Pedido{}).
		Where("ticket_barra = ? AND mesa_id IS NULL AND estado = ?", ticket, model.PedidoPendiente).
		Updates(map[string]interface{}{"estado": model.PedidoCobrado, "metodo_pago": metodo})
	return res.RowsAffected, res.Error
}

func (r *pedidoRepo) CobrarPedidoTx(tx *gorm.DB, id uuid.UUID, metodo string) error {
	return tx.Model(&model.Pedido{}).
		Where("id = ? AND estado = ?", id, model.PedidoPendiente).
		Updates(map[string]interface{}{"estado": model.PedidoCobrado, "metodo_pago": metodo}).Error
}

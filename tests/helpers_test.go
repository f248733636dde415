package tests

import (
	"context"

	"github.com/alejoalf/Sistema-bar/internal/model"
	"github.com/alejoalf/Sistema-bar/internal/repository"
	"github.com/alejoalf/Sistema-bar/internal/repository/memoria"
	"github.com/alejoalf/Sistema-bar/internal/service"

	"github.com/shopspring/decimal"
)

// entorno bundles the services under test over a fresh in-memory dataset.
type entorno struct {
	store     *memoria.Store
	mesaRepo  repository.MesaRepository
	prodRepo  repository.ProductoRepository
	pedRepo   repository.PedidoRepository
	cajaRepo  repository.CajaRepository
	mesas     service.MesaService
	pedidos   service.PedidoService
	cobros    service.CobroService
	caja      service.CajaService
	reportes  service.ReporteService
	productos service.ProductoService
}

func nuevoEntorno() *entorno {
	store := memoria.NewStore()
	e := &entorno{
		store:    store,
		mesaRepo: store.Mesas(),
		prodRepo: store.Productos(),
		pedRepo:  store.Pedidos(),
		cajaRepo: store.Caja(),
	}
	e.mesas = service.NewMesaService(e.mesaRepo, e.pedRepo)
	e.pedidos = service.NewPedidoService(e.pedRepo, e.prodRepo, e.mesaRepo, nil)
	e.cobros = service.NewCobroService(e.pedRepo, e.mesaRepo)
	e.caja = service.NewCajaService(e.cajaRepo)
	e.reportes = service.NewReporteService(e.pedRepo, e.cajaRepo, nil)
	e.productos = service.NewProductoService(e.prodRepo, nil)
	return e
}

func (e *entorno) seedMesa(numero int) *model.Mesa {
	m := &model.Mesa{
		NumeroMesa: numero,
		Sector:     "salon",
		Capacidad:  4,
		Estado:     model.MesaLibre,
	}
	_ = e.mesaRepo.Create(context.Background(), m)
	return m
}

func (e *entorno) seedProducto(nombre string, precio float64, stock int) *model.Producto {
	p := &model.Producto{
		Nombre:      nombre,
		Categoria:   "Bebidas",
		Precio:      decimal.NewFromFloat(precio),
		StockActual: stock,
		Activo:      true,
		Disponible:  true,
	}
	_ = e.prodRepo.Create(context.Background(), p)
	return p
}

func (e *entorno) stockDe(p *model.Producto) int {
	actual, _ := e.prodRepo.FindByID(context.Background(), p.ID)
	return actual.StockActual
}

// cmd/seeddemo/main.go — Carga el salón, la carta y un usuario administrador
// en Postgres. Idempotente: corre sobre una base ya sembrada sin duplicar.
// Uso: go run ./cmd/seeddemo
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alejoalf/Sistema-bar/internal/infra"
	"github.com/alejoalf/Sistema-bar/internal/model"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL requerido")
	}

	db, err := infra.NewDatabase(dsn)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}

	seedMesas(db)
	seedCarta(db)
	seedAdmin(db)

	fmt.Println("✅ Datos de demo cargados")
}

func seedMesas(db *gorm.DB) {
	numero := 0
	addSector := func(sector string, cantidad int) {
		for i := 0; i < cantidad; i++ {
			numero++
			mesa := model.Mesa{
				NumeroMesa: numero,
				Sector:     sector,
				Capacidad:  4,
				Estado:     model.MesaLibre,
			}
			err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "numero_mesa"}},
				DoNothing: true,
			}).Create(&mesa).Error
			if err != nil {
				log.Fatalf("seed mesa %d: %v", numero, err)
			}
		}
	}
	addSector("salon", 10)
	addSector("patio-medio", 6)
	addSector("patio-fondo", 8)
}

func seedCarta(db *gorm.DB) {
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
		var existente model.Producto
		if err := db.Where("nombre = ?", item.nombre).First(&existente).Error; err == nil {
			continue
		}
		p := model.Producto{
			Nombre:      item.nombre,
			Categoria:   item.categoria,
			Precio:      decimal.NewFromInt(item.precio),
			StockActual: 50,
			Activo:      true,
			Disponible:  true,
		}
		if err := db.Create(&p).Error; err != nil {
			log.Fatalf("seed producto %s: %v", item.nombre, err)
		}
	}
}

func seedAdmin(db *gorm.DB) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}
	result := db.Exec(`
		INSERT INTO usuarios (id, username, nombre, password_hash, rol, activo, created_at, updated_at)
		VALUES (gen_random_uuid(), 'admin', 'Administrador', ?, 'administrador', true, now(), now())
		ON CONFLICT (username) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    activo = true
	`, string(hash))
	if result.Error != nil {
		log.Fatalf("seed admin: %v", result.Error)
	}
}

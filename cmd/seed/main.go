// seed carga datos de demostración: un usuario vendedor, clientes y productos
// con stock inicial, listos para generar facturas desde la API.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración de entorno que la API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmorales/facturas-api/internal/domain"
	"github.com/dmorales/facturas-api/internal/domain/entity"
	"github.com/dmorales/facturas-api/internal/infrastructure/postgres"
	"github.com/dmorales/facturas-api/pkg/config"
	"github.com/dmorales/facturas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info", Service: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	now := time.Now()

	// Usuario demo (password: demo1234)
	if existing, _ := userRepo.FindByEmail("vendedor@demo.local"); existing == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash de password")
		}
		err = userRepo.Create(&entity.User{
			ID:           uuid.New().String(),
			Email:        "vendedor@demo.local",
			PasswordHash: string(hash),
			Name:         "Vendedor Demo",
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("crear usuario demo")
		}
		log.Info().Str("email", "vendedor@demo.local").Msg("usuario demo creado")
	}

	clients := []*entity.Client{
		{Name: "Comercial Andina SAS", Identification: "900123456-7", Phone: "3001234567", Email: "compras@andina.co", Address: "Cra 7 # 45-10, Bogotá"},
		{Name: "Distribuciones El Puerto", Identification: "800654321-1", Phone: "3109876543", Email: "pagos@elpuerto.co", Address: "Cl 30 # 12-08, Barranquilla"},
		{Name: "María Fernanda López", Identification: "52345678", Phone: "3205551212", Email: "mafe.lopez@gmail.com", Address: "Cl 80 # 11-42, Bogotá"},
	}
	for _, c := range clients {
		c.ID = uuid.New().String()
		c.CreatedAt = now
		c.UpdatedAt = now
		if err := clientRepo.Create(c); err != nil {
			if err == domain.ErrDuplicate {
				continue
			}
			log.Fatal().Err(err).Str("client", c.Name).Msg("crear cliente demo")
		}
	}
	log.Info().Int("count", len(clients)).Msg("clientes demo cargados")

	products := []*entity.Product{
		{Name: "Teclado mecánico 60%", SKU: "TEC-060", Price: decimal.NewFromInt(250000), Stock: 25, Description: "Switches rojos, cable USB-C"},
		{Name: "Mouse inalámbrico", SKU: "MOU-001", Price: decimal.NewFromInt(85000), Stock: 40, Description: "2.4GHz, 6 botones"},
		{Name: "Monitor 27\" IPS", SKU: "MON-027", Price: decimal.NewFromInt(980000), Stock: 10, Description: "QHD 144Hz"},
		{Name: "Base refrigerante portátil", SKU: "BAS-015", Price: decimal.NewFromInt(65000), Stock: 18, Description: "Doble ventilador"},
		{Name: "Cable HDMI 2m", SKU: "CAB-HDMI2", Price: decimal.NewFromInt(28000), Stock: 60, Description: "4K 60Hz"},
	}
	for _, p := range products {
		p.ID = uuid.New().String()
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := productRepo.Create(p); err != nil {
			if err == domain.ErrDuplicate {
				continue
			}
			log.Fatal().Err(err).Str("sku", p.SKU).Msg("crear producto demo")
		}
	}
	log.Info().Int("count", len(products)).Msg("productos demo cargados")
}

package repository

import (
	"context"

	"github.com/dmorales/facturas-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// DecrementStock resta unidades sin condición sobre el valor actual y puede
// dejar stock negativo si dos sesiones venden la misma última unidad
// (carrera conocida y documentada).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	DecrementStock(ctx context.Context, productID string, quantity int64) error
	Delete(id string) error
}

package billing

import (
	"context"

	"github.com/dmorales/facturas-api/internal/application/dto"
	"github.com/dmorales/facturas-api/internal/domain/repository"
)

// catalogPageSize tope de clientes y productos devueltos al catálogo.
// La pantalla de nueva factura recarga ambas listas completas en cada foco.
const catalogPageSize = 500

// CatalogUseCase carga el universo seleccionable de la pantalla de nueva
// factura: todos los clientes y todos los productos, frescos desde el store.
// Si la carga falla, el llamador conserva sus listas anteriores (el servidor
// solo reporta el error, no guarda estado).
type CatalogUseCase struct {
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(clientRepo repository.ClientRepository, productRepo repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{clientRepo: clientRepo, productRepo: productRepo}
}

// Load devuelve clientes y productos actuales en una sola respuesta.
func (uc *CatalogUseCase) Load(ctx context.Context) (*dto.CatalogResponse, error) {
	clients, err := uc.clientRepo.List(catalogPageSize, 0)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List(catalogPageSize, 0)
	if err != nil {
		return nil, err
	}
	resp := &dto.CatalogResponse{
		Clients:  make([]*dto.ClientResponse, 0, len(clients)),
		Products: make([]*dto.ProductResponse, 0, len(products)),
	}
	for _, c := range clients {
		resp.Clients = append(resp.Clients, toClientResponse(c))
	}
	for _, p := range products {
		resp.Products = append(resp.Products, &dto.ProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			SKU:         p.SKU,
			Price:       p.Price,
			Stock:       p.Stock,
			Description: p.Description,
		})
	}
	return resp, nil
}

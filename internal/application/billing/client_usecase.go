package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmorales/facturas-api/internal/application/dto"
	"github.com/dmorales/facturas-api/internal/domain"
	"github.com/dmorales/facturas-api/internal/domain/entity"
	"github.com/dmorales/facturas-api/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes.
// Eliminar un cliente no toca sus facturas: cada factura guarda su propia
// copia de los datos del cliente.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un cliente. Nombre, identificación y teléfono son obligatorios.
func (uc *ClientUseCase) Create(in dto.SaveClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" || in.Identification == "" || in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	client := &entity.Client{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Identification: in.Identification,
		Phone:          in.Phone,
		Email:          in.Email,
		Address:        in.Address,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Update actualiza un cliente existente con las mismas validaciones del alta.
func (uc *ClientUseCase) Update(id string, in dto.SaveClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" || in.Identification == "" || in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	client.Name = in.Name
	client.Identification = in.Identification
	client.Phone = in.Phone
	client.Email = in.Email
	client.Address = in.Address
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista clientes con paginación.
func (uc *ClientUseCase) List(limit, offset int) ([]*dto.ClientResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// Delete elimina un cliente por ID.
func (uc *ClientUseCase) Delete(id string) error {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:             c.ID,
		Name:           c.Name,
		Identification: c.Identification,
		Phone:          c.Phone,
		Email:          c.Email,
		Address:        c.Address,
	}
}

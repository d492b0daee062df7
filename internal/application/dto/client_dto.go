package dto

// SaveClientRequest body para POST /api/clients y PUT /api/clients/:id.
// name, identification y phone son obligatorios.
type SaveClientRequest struct {
	Name           string `json:"name"`
	Identification string `json:"identification"`
	Phone          string `json:"phone"`
	Email          string `json:"email,omitempty"`
	Address        string `json:"address,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Identification string `json:"identification"`
	Phone          string `json:"phone"`
	Email          string `json:"email,omitempty"`
	Address        string `json:"address,omitempty"`
}

package entity

import (
	"github.com/gofrs/uuid/v5"
)

// Client is a customer record. The document is either a CPF (individual)
// or a CNPJ (business), never both at once: setting one clears the other.
type Client struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Phone   string    `json:"phone"`
	Address string    `json:"address,omitempty"`
	CPF     string    `json:"cpf,omitempty"`
	CNPJ    string    `json:"cnpj,omitempty"`
	Notes   string    `json:"notes,omitempty"`
}

// Document returns whichever tax id is set, empty if neither.
func (c *Client) Document() string {
	if c.CPF != "" {
		return c.CPF
	}

	return c.CNPJ
}

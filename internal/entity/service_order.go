package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCanceled   OrderStatus = "CANCELED"
)

// StatusAll is the filter value that matches every status.
const StatusAll = "ALL"

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCanceled:
		return true
	}

	return false
}

// Label returns the pt-BR display name of the status.
func (s OrderStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pendente"
	case StatusInProgress:
		return "Em Andamento"
	case StatusCompleted:
		return "Concluído"
	case StatusCanceled:
		return "Cancelado"
	}

	return string(s)
}

// ServiceOrder is a repair ticket tied to exactly one Client. Status moves
// freely between any two values; there is no transition graph. Orders are
// never deleted, only canceled.
type ServiceOrder struct {
	ID        uuid.UUID   `json:"id"`
	ClientID  uuid.UUID   `json:"clientId"`
	Equipment string      `json:"equipment"`
	Problem   string      `json:"problem"`
	Status    OrderStatus `json:"status"`
	Value     float64     `json:"value"`
	Date      time.Time   `json:"date"`
	Notes     string      `json:"notes,omitempty"`
}

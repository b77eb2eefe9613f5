package service

import (
	"strings"

	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/entity"
)

// FilterOrders matches when the resolved client name or the equipment field
// contains the term (case-insensitive), combined with an optional status
// equality filter. StatusAll short-circuits the status check.
func FilterOrders(orders []entity.ServiceOrder, clients []entity.Client, term, status string) []entity.ServiceOrder {
	term = strings.ToLower(term)

	filtered := make([]entity.ServiceOrder, 0, len(orders))

	for _, order := range orders {
		clientName := ""
		if client := resolveClient(clients, order.ClientID); client != nil {
			clientName = strings.ToLower(client.Name)
		}

		matchesSearch := strings.Contains(clientName, term) ||
			strings.Contains(strings.ToLower(order.Equipment), term)

		matchesStatus := status == entity.StatusAll || status == "" ||
			order.Status == entity.OrderStatus(status)

		if matchesSearch && matchesStatus {
			filtered = append(filtered, order)
		}
	}

	return filtered
}

// FilterClients matches on name, phone, CPF or CNPJ. Absent document fields
// never match and never error.
func FilterClients(clients []entity.Client, term string) []entity.Client {
	lower := strings.ToLower(term)

	filtered := make([]entity.Client, 0, len(clients))

	for _, client := range clients {
		if strings.Contains(strings.ToLower(client.Name), lower) ||
			strings.Contains(client.Phone, lower) ||
			(client.CPF != "" && strings.Contains(client.CPF, lower)) ||
			(client.CNPJ != "" && strings.Contains(client.CNPJ, lower)) {
			filtered = append(filtered, client)
		}
	}

	return filtered
}

// SearchOrders runs the service-view predicate over the current collections.
func (s *Service) SearchOrders(term, status string) []entity.ServiceOrder {
	s.mu.Lock()
	defer s.mu.Unlock()

	return FilterOrders(s.orders, s.clients, term, status)
}

// OrderView is a service order enriched with its resolved client name for
// the list view.
type OrderView struct {
	entity.ServiceOrder
	ClientName string `json:"clientName"`
}

// OrdersView filters the orders and resolves each client name through the
// shared join path.
func (s *Service) OrdersView(term, status string) []OrderView {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := FilterOrders(s.orders, s.clients, term, status)
	views := make([]OrderView, 0, len(filtered))

	for _, order := range filtered {
		view := OrderView{ServiceOrder: order, ClientName: DeletedClientName}
		if client := resolveClient(s.clients, order.ClientID); client != nil {
			view.ClientName = client.Name
		}

		views = append(views, view)
	}

	return views
}

// SearchClients runs the client-view predicate over the current collection.
func (s *Service) SearchClients(term string) []entity.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	return FilterClients(s.clients, term)
}

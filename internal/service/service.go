package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/entity"
	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/repository"
	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/pkg/config"
)

// Store is the persistence boundary. Every successful mutation is written
// back through it before the call returns.
type Store interface {
	SaveAccounts(ctx context.Context, accounts []entity.Account) error
	SaveClients(ctx context.Context, clients []entity.Client) error
	SaveServices(ctx context.Context, services []entity.ServiceOrder) error
	SaveNFSLink(ctx context.Context, link string) error
	ReplaceAll(ctx context.Context, snap repository.Snapshot) error
}

// Service owns the in-memory collections for the session. All mutations
// serialize on the mutex, so the referential-integrity check in DeleteClient
// and the removal it guards run atomically.
type Service struct {
	cfg   *config.Config
	store Store

	mu       sync.Mutex
	accounts []entity.Account
	clients  []entity.Client
	orders   []entity.ServiceOrder
	nfsLink  string
}

func NewService(cfg *config.Config, store Store, snap repository.Snapshot) *Service {
	return &Service{
		cfg:      cfg,
		store:    store,
		accounts: snap.Accounts,
		clients:  snap.Clients,
		orders:   snap.Services,
		nfsLink:  snap.NFSLink,
	}
}

type ClientInput struct {
	Name    string
	Phone   string
	Address string
	CPF     string
	CNPJ    string
	Notes   string
}

func (in *ClientInput) validate() error {
	if err := ValidateRequired(in.Name, "nome"); err != nil {
		return err
	}

	if err := ValidateRequired(in.Phone, "telefone"); err != nil {
		return err
	}

	if err := ValidateCPF(in.CPF); err != nil {
		return err
	}

	return ValidateCNPJ(in.CNPJ)
}

// exclusiveDocument enforces the CPF/CNPJ mutual exclusion. When both are
// supplied the CNPJ wins and the CPF is dropped.
func exclusiveDocument(in *ClientInput) (cpf, cnpj string) {
	if in.CNPJ != "" {
		return "", in.CNPJ
	}

	return in.CPF, ""
}

func (s *Service) CreateClient(ctx context.Context, in ClientInput) (entity.Client, error) {
	if err := in.validate(); err != nil {
		slog.WarnContext(ctx, "client create rejected", "error", err)
		return entity.Client{}, err
	}

	cpf, cnpj := exclusiveDocument(&in)

	client := entity.Client{
		ID:      uuid.Must(uuid.NewV4()),
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
		CPF:     cpf,
		CNPJ:    cnpj,
		Notes:   in.Notes,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Newest records come first in the list views.
	s.clients = append([]entity.Client{client}, s.clients...)

	if err := s.store.SaveClients(ctx, s.clients); err != nil {
		s.clients = s.clients[1:]
		slog.ErrorContext(ctx, "failed to persist clients", "error", err)

		return entity.Client{}, err
	}

	slog.InfoContext(ctx, "client created", "client_id", client.ID, "name", client.Name)

	return client, nil
}

func (s *Service) UpdateClient(ctx context.Context, id uuid.UUID, in ClientInput) (entity.Client, error) {
	if err := in.validate(); err != nil {
		slog.WarnContext(ctx, "client update rejected", "client_id", id, "error", err)
		return entity.Client{}, err
	}

	cpf, cnpj := exclusiveDocument(&in)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.clientIndex(id)
	if idx < 0 {
		slog.WarnContext(ctx, "client not found for update", "client_id", id)
		return entity.Client{}, fmt.Errorf("%w: client %s", entity.ErrClientNotFound, id)
	}

	previous := s.clients[idx]
	s.clients[idx] = entity.Client{
		ID:      id,
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
		CPF:     cpf,
		CNPJ:    cnpj,
		Notes:   in.Notes,
	}

	if err := s.store.SaveClients(ctx, s.clients); err != nil {
		s.clients[idx] = previous
		slog.ErrorContext(ctx, "failed to persist clients", "client_id", id, "error", err)

		return entity.Client{}, err
	}

	slog.InfoContext(ctx, "client updated", "client_id", id)

	return s.clients[idx], nil
}

func (s *Service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.clientIndex(id)
	if idx < 0 {
		slog.WarnContext(ctx, "client not found for delete", "client_id", id)
		return fmt.Errorf("%w: client %s", entity.ErrClientNotFound, id)
	}

	for i := range s.orders {
		if s.orders[i].ClientID == id {
			slog.WarnContext(ctx, "client delete blocked by service order",
				"client_id", id, "order_id", s.orders[i].ID)

			return fmt.Errorf("%w: client %s", entity.ErrClientLinked, id)
		}
	}

	removed := s.clients[idx]
	s.clients = append(s.clients[:idx], s.clients[idx+1:]...)

	if err := s.store.SaveClients(ctx, s.clients); err != nil {
		s.clients = append(s.clients[:idx], append([]entity.Client{removed}, s.clients[idx:]...)...)
		slog.ErrorContext(ctx, "failed to persist clients", "client_id", id, "error", err)

		return err
	}

	slog.InfoContext(ctx, "client deleted", "client_id", id)

	return nil
}

type OrderInput struct {
	ClientID  uuid.UUID
	Equipment string
	Problem   string
	Status    entity.OrderStatus
	Value     float64
	Date      time.Time
	Notes     string
}

func (s *Service) CreateServiceOrder(ctx context.Context, in OrderInput) (entity.ServiceOrder, error) {
	if in.ClientID == uuid.Nil {
		slog.WarnContext(ctx, "order create rejected: blank client reference")
		return entity.ServiceOrder{}, fmt.Errorf("%w: selecione um cliente", entity.ErrNoClients)
	}

	if err := ValidateRequired(in.Equipment, "equipamento"); err != nil {
		return entity.ServiceOrder{}, err
	}

	status := in.Status
	if status == "" {
		status = entity.StatusPending
	}

	if !status.IsValid() {
		slog.WarnContext(ctx, "order create rejected: unknown status", "status", status)
		return entity.ServiceOrder{}, fmt.Errorf("%w: %s", entity.ErrInvalidStatus, status)
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clientIndex(in.ClientID) < 0 {
		slog.WarnContext(ctx, "order create rejected: unknown client", "client_id", in.ClientID)
		return entity.ServiceOrder{}, fmt.Errorf("%w: client %s", entity.ErrClientNotFound, in.ClientID)
	}

	order := entity.ServiceOrder{
		ID:        uuid.Must(uuid.NewV4()),
		ClientID:  in.ClientID,
		Equipment: strings.TrimSpace(in.Equipment),
		Problem:   strings.TrimSpace(in.Problem),
		Status:    status,
		Value:     ParseValue(in.Value),
		Date:      date,
		Notes:     in.Notes,
	}

	s.orders = append([]entity.ServiceOrder{order}, s.orders...)

	if err := s.store.SaveServices(ctx, s.orders); err != nil {
		s.orders = s.orders[1:]
		slog.ErrorContext(ctx, "failed to persist service orders", "error", err)

		return entity.ServiceOrder{}, err
	}

	slog.InfoContext(ctx, "service order created",
		"order_id", order.ID, "client_id", order.ClientID, "value", order.Value)

	return order, nil
}

// SetServiceOrderStatus moves an order to any status; the status set is flat,
// so COMPLETED back to PENDING is as legal as the forward direction.
func (s *Service) SetServiceOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (entity.ServiceOrder, error) {
	if !status.IsValid() {
		slog.WarnContext(ctx, "invalid order status", "order_id", id, "status", status)
		return entity.ServiceOrder{}, fmt.Errorf("%w: %s", entity.ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.orderIndex(id)
	if idx < 0 {
		slog.WarnContext(ctx, "order not found for status change", "order_id", id)
		return entity.ServiceOrder{}, fmt.Errorf("%w: order %s", entity.ErrOrderNotFound, id)
	}

	previous := s.orders[idx].Status
	s.orders[idx].Status = status

	if err := s.store.SaveServices(ctx, s.orders); err != nil {
		s.orders[idx].Status = previous
		slog.ErrorContext(ctx, "failed to persist service orders", "order_id", id, "error", err)

		return entity.ServiceOrder{}, err
	}

	slog.InfoContext(ctx, "order status changed",
		"order_id", id, "old_status", previous, "new_status", status)

	return s.orders[idx], nil
}

// OrderWithClient reads one order plus its resolved client. The printable
// order surface is its only consumer.
func (s *Service) OrderWithClient(ctx context.Context, id uuid.UUID) (entity.ServiceOrder, *entity.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.orderIndex(id)
	if idx < 0 {
		slog.WarnContext(ctx, "order not found", "order_id", id)
		return entity.ServiceOrder{}, nil, fmt.Errorf("%w: order %s", entity.ErrOrderNotFound, id)
	}

	order := s.orders[idx]

	return order, resolveClient(s.clients, order.ClientID), nil
}

func (s *Service) NFSLink() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.nfsLink
}

func (s *Service) SetNFSLink(ctx context.Context, link string) error {
	if err := ValidateNFSLink(link); err != nil {
		slog.WarnContext(ctx, "nfs link rejected", "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.nfsLink
	s.nfsLink = link

	if err := s.store.SaveNFSLink(ctx, link); err != nil {
		s.nfsLink = previous
		slog.ErrorContext(ctx, "failed to persist nfs link", "error", err)

		return err
	}

	slog.InfoContext(ctx, "nfs link updated")

	return nil
}

// resolveClient is the single join path between orders and clients. A nil
// result means the referenced client no longer exists.
func resolveClient(clients []entity.Client, id uuid.UUID) *entity.Client {
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i]
		}
	}

	return nil
}

func (s *Service) clientIndex(id uuid.UUID) int {
	for i := range s.clients {
		if s.clients[i].ID == id {
			return i
		}
	}

	return -1
}

func (s *Service) orderIndex(id uuid.UUID) int {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return i
		}
	}

	return -1
}

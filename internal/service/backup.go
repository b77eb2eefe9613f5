package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/entity"
	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/repository"
)

// ExportBackup snapshots the whole model into the interchange document.
func (s *Service) ExportBackup(ctx context.Context) entity.Backup {
	s.mu.Lock()
	defer s.mu.Unlock()

	slog.InfoContext(ctx, "backup exported",
		"accounts", len(s.accounts), "clients", len(s.clients), "services", len(s.orders))

	return entity.Backup{
		Users:     append([]entity.Account(nil), s.accounts...),
		Clients:   append([]entity.Client(nil), s.clients...),
		Services:  append([]entity.ServiceOrder(nil), s.orders...),
		NFSLink:   s.nfsLink,
		Version:   entity.BackupVersion,
		Timestamp: time.Now().UTC(),
	}
}

// ImportBackup validates and applies a backup document. Only the presence of
// the three collections is checked; there is no schema or version
// negotiation, so documents written by newer versions are accepted as-is.
// The restore is all-or-nothing: nothing is mutated until the payload passed
// validation, and memory is only swapped after the snapshot write succeeded.
func (s *Service) ImportBackup(ctx context.Context, raw []byte) error {
	var payload struct {
		Users    *[]entity.Account      `json:"users"`
		Clients  *[]entity.Client       `json:"clients"`
		Services *[]entity.ServiceOrder `json:"services"`
		NFSLink  string                 `json:"nfsLink"`
	}

	if err := json.Unmarshal(raw, &payload); err != nil {
		slog.WarnContext(ctx, "backup rejected: not valid json", "error", err)
		return fmt.Errorf("%w: %s", entity.ErrInvalidBackup, err)
	}

	if payload.Users == nil || payload.Clients == nil || payload.Services == nil {
		slog.WarnContext(ctx, "backup rejected: missing collections",
			"has_users", payload.Users != nil,
			"has_clients", payload.Clients != nil,
			"has_services", payload.Services != nil,
		)

		return fmt.Errorf("%w: users, clients e services são obrigatórios", entity.ErrInvalidBackup)
	}

	nfsLink := payload.NFSLink
	if nfsLink == "" {
		nfsLink = entity.DefaultNFSLink
	}

	snap := repository.Snapshot{
		Accounts: *payload.Users,
		Clients:  *payload.Clients,
		Services: *payload.Services,
		NFSLink:  nfsLink,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ReplaceAll(ctx, snap); err != nil {
		slog.ErrorContext(ctx, "failed to persist restored backup", "error", err)
		return err
	}

	s.accounts = snap.Accounts
	s.clients = snap.Clients
	s.orders = snap.Services
	s.nfsLink = snap.NFSLink

	slog.InfoContext(ctx, "backup restored",
		"accounts", len(snap.Accounts), "clients", len(snap.Clients), "services", len(snap.Services))

	return nil
}

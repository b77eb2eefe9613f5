package repository

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/entity"
)

// Seed credentials for the very first login. The password is hashed at seed
// time; only the hash is persisted.
const (
	SeedUsername = "ADMIN"
	SeedPassword = "ADMIN"
)

// seedSnapshot builds the built-in data set for a fresh installation: one
// ADMIN account, three clients and three service orders covering the
// non-default statuses.
func seedSnapshot() (Snapshot, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return Snapshot{}, err
	}

	joao := entity.Client{
		ID:      uuid.Must(uuid.NewV4()),
		Name:    "João Silva",
		Phone:   "(11) 99999-9999",
		Address: "Rua das Flores, 123",
		CPF:     "123.456.789-00",
		Notes:   "Cliente desde 2023",
	}
	maria := entity.Client{
		ID:      uuid.Must(uuid.NewV4()),
		Name:    "Maria Oliveira",
		Phone:   "(21) 98888-7777",
		Address: "Av. Principal, 500, Apt 22",
		CNPJ:    "12.345.678/0001-90",
	}
	techCorp := entity.Client{
		ID:      uuid.Must(uuid.NewV4()),
		Name:    "Tech Corp Ltda",
		Phone:   "(11) 3030-4040",
		Address: "Centro Empresarial, Sala 405",
		Notes:   "Empresa parceira",
	}

	now := time.Now()

	return Snapshot{
		Accounts: []entity.Account{
			{
				ID:           uuid.Must(uuid.NewV4()),
				Username:     SeedUsername,
				PasswordHash: string(hash),
				AccessLevel:  entity.AccessAdmin,
			},
		},
		Clients: []entity.Client{joao, maria, techCorp},
		Services: []entity.ServiceOrder{
			{
				ID:        uuid.Must(uuid.NewV4()),
				ClientID:  joao.ID,
				Equipment: "Notebook Dell Inspiron",
				Problem:   "Tela quebrada",
				Status:    entity.StatusPending,
				Value:     450.00,
				Date:      now,
				Notes:     "Aguardando peça",
			},
			{
				ID:        uuid.Must(uuid.NewV4()),
				ClientID:  maria.ID,
				Equipment: "PC Gamer",
				Problem:   "Limpeza e Formatação",
				Status:    entity.StatusInProgress,
				Value:     120.00,
				Date:      now.Add(-24 * time.Hour),
				Notes:     "Prioridade alta",
			},
			{
				ID:        uuid.Must(uuid.NewV4()),
				ClientID:  techCorp.ID,
				Equipment: "Impressora Epson",
				Problem:   "Não imprime preto",
				Status:    entity.StatusCompleted,
				Value:     80.00,
				Date:      now.Add(-48 * time.Hour),
				Notes:     "Entregue",
			},
		},
		NFSLink: entity.DefaultNFSLink,
	}, nil
}

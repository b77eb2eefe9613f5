package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/suite"

	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/entity"
	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/repository"
)

type StoreTestSuite struct {
	suite.Suite
	store *repository.Store
	path  string
}

func (ts *StoreTestSuite) SetupTest() {
	ts.path = filepath.Join(ts.T().TempDir(), "techservice.db")

	store, err := repository.Open(ts.path)
	ts.Require().NoError(err)
	ts.T().Cleanup(func() { _ = store.Close() })

	ts.store = store
}

func TestStoreTestSuite(t *testing.T) { //nolint:paralleltest
	suite.Run(t, new(StoreTestSuite))
}

func (ts *StoreTestSuite) TestLoadSeedsEmptyDatabase() {
	ctx := context.Background()

	snap, err := ts.store.Load(ctx)
	ts.Require().NoError(err)

	ts.Require().Len(snap.Accounts, 1)
	ts.Require().Equal(repository.SeedUsername, snap.Accounts[0].Username)
	ts.Require().Equal(entity.AccessAdmin, snap.Accounts[0].AccessLevel)
	ts.Require().NotEqual(repository.SeedPassword, snap.Accounts[0].PasswordHash)

	ts.Require().Len(snap.Clients, 3)
	ts.Require().Len(snap.Services, 3)
	ts.Require().Equal(entity.DefaultNFSLink, snap.NFSLink)
}

func (ts *StoreTestSuite) TestSeedIsPersisted() {
	ctx := context.Background()

	first, err := ts.store.Load(ctx)
	ts.Require().NoError(err)

	// Reopen the same file: the seed written on first load must come back,
	// including the account id generated for it.
	ts.Require().NoError(ts.store.Close())

	reopened, err := repository.Open(ts.path)
	ts.Require().NoError(err)
	ts.T().Cleanup(func() { _ = reopened.Close() })

	second, err := reopened.Load(ctx)
	ts.Require().NoError(err)
	ts.Require().Equal(first.Accounts, second.Accounts)
	ts.Require().Equal(first.Clients, second.Clients)
	ts.Require().Len(second.Services, len(first.Services))
}

func (ts *StoreTestSuite) TestSaveClientsRoundTrip() {
	ctx := context.Background()

	_, err := ts.store.Load(ctx)
	ts.Require().NoError(err)

	clients := []entity.Client{
		{
			ID:    uuid.Must(uuid.NewV4()),
			Name:  "Oficina Teste",
			Phone: "(21) 98888-0000",
			CNPJ:  "11.222.333/0001-44",
		},
	}
	ts.Require().NoError(ts.store.SaveClients(ctx, clients))

	snap, err := ts.store.Load(ctx)
	ts.Require().NoError(err)
	ts.Require().Equal(clients, snap.Clients)
}

func (ts *StoreTestSuite) TestSaveServicesRoundTrip() {
	ctx := context.Background()

	_, err := ts.store.Load(ctx)
	ts.Require().NoError(err)

	services := []entity.ServiceOrder{
		{
			ID:        uuid.Must(uuid.NewV4()),
			ClientID:  uuid.Must(uuid.NewV4()),
			Equipment: "Notebook Dell",
			Problem:   "Não liga",
			Status:    entity.StatusInProgress,
			Value:     250,
			Date:      time.Now().Truncate(time.Second),
		},
	}
	ts.Require().NoError(ts.store.SaveServices(ctx, services))

	snap, err := ts.store.Load(ctx)
	ts.Require().NoError(err)
	ts.Require().Len(snap.Services, 1)
	ts.Require().Equal(services[0].ID, snap.Services[0].ID)
	ts.Require().Equal(services[0].Status, snap.Services[0].Status)
	ts.Require().True(services[0].Date.Equal(snap.Services[0].Date))
}

func (ts *StoreTestSuite) TestSaveNFSLink() {
	ctx := context.Background()

	_, err := ts.store.Load(ctx)
	ts.Require().NoError(err)

	link := "https://prefeitura.example/nfse"
	ts.Require().NoError(ts.store.SaveNFSLink(ctx, link))

	snap, err := ts.store.Load(ctx)
	ts.Require().NoError(err)
	ts.Require().Equal(link, snap.NFSLink)
}

func (ts *StoreTestSuite) TestReplaceAll() {
	ctx := context.Background()

	_, err := ts.store.Load(ctx)
	ts.Require().NoError(err)

	replacement := repository.Snapshot{
		Accounts: []entity.Account{{
			ID:           uuid.Must(uuid.NewV4()),
			Username:     "suporte",
			PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
			AccessLevel:  entity.AccessSupport,
		}},
		Clients:  []entity.Client{},
		Services: []entity.ServiceOrder{},
		NFSLink:  entity.DefaultNFSLink,
	}
	ts.Require().NoError(ts.store.ReplaceAll(ctx, replacement))

	snap, err := ts.store.Load(ctx)
	ts.Require().NoError(err)
	ts.Require().Equal(replacement.Accounts, snap.Accounts)
	ts.Require().Empty(snap.Clients)
	ts.Require().Empty(snap.Services)
	ts.Require().Equal(entity.DefaultNFSLink, snap.NFSLink)
}

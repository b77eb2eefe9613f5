package service_test

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/entity"
	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/service"
)

const valueTolerance = 1e-6

func order(status entity.OrderStatus, value float64, date time.Time) entity.ServiceOrder {
	return entity.ServiceOrder{
		ID:       uuid.Must(uuid.NewV4()),
		ClientID: uuid.Must(uuid.NewV4()),
		Status:   status,
		Value:    value,
		Date:     date,
	}
}

func TestSummarizeSeedScenario(t *testing.T) {
	t.Parallel()

	// The §-defaults: 450.00 PENDING, 120.00 IN_PROGRESS, 80.00 COMPLETED.
	s := newTestService(t)

	summary := s.Report(service.PeriodFilter{Period: service.PeriodLast30Days}).Summary

	require.Equal(t, 3, summary.Total)
	require.Equal(t, 1, summary.Pending)
	require.Equal(t, 1, summary.InProgress)
	require.Equal(t, 1, summary.Completed)
	require.Zero(t, summary.Canceled)
	require.InDelta(t, 650.00, summary.RevenueTotal, valueTolerance)
	require.InDelta(t, 80.00, summary.Received, valueTolerance)
	require.InDelta(t, 570.00, summary.PendingValue, valueTolerance)
}

func TestSummarizeRevenueInvariant(t *testing.T) {
	t.Parallel()

	now := time.Now()
	orders := []entity.ServiceOrder{
		order(entity.StatusPending, 10.10, now),
		order(entity.StatusInProgress, 0.30, now),
		order(entity.StatusCompleted, 99.99, now),
		order(entity.StatusCompleted, 0.01, now),
		order(entity.StatusCanceled, 1234.56, now),
		order(entity.StatusPending, 0, now),
	}

	summary := service.Summarize(orders)

	// CANCELED value never enters any aggregate.
	require.InDelta(t, summary.RevenueTotal, summary.Received+summary.PendingValue, valueTolerance)
	require.InDelta(t, 110.40, summary.RevenueTotal, valueTolerance)
	require.Equal(t, 1, summary.Canceled)
	require.Equal(t, 6, summary.Total)
}

func TestFilterByPeriod(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 29, 15, 0, 0, 0, time.Local)
	orders := []entity.ServiceOrder{
		order(entity.StatusPending, 1, now.Add(-1*time.Hour)),     // today
		order(entity.StatusPending, 1, now.Add(-3*24*time.Hour)),  // this week
		order(entity.StatusPending, 1, now.Add(-20*24*time.Hour)), // this month
		order(entity.StatusPending, 1, now.Add(-90*24*time.Hour)), // older
		order(entity.StatusPending, 1, now.Add(48*time.Hour)),     // future
	}

	tests := []struct {
		name     string
		filter   service.PeriodFilter
		expected int
	}{
		{"Today", service.PeriodFilter{Period: service.PeriodToday}, 1},
		{"Last 7 days", service.PeriodFilter{Period: service.PeriodLast7Days}, 2},
		{"Last 30 days", service.PeriodFilter{Period: service.PeriodLast30Days}, 3},
		{
			"Custom range is end-inclusive",
			service.PeriodFilter{
				Period: service.PeriodCustom,
				Start:  now.Add(-21 * 24 * time.Hour),
				End:    time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local),
			},
			3,
		},
		{"Custom without end passes everything through", service.PeriodFilter{Period: service.PeriodCustom, Start: now}, 5},
		{"Custom without start passes everything through", service.PeriodFilter{Period: service.PeriodCustom, End: now}, 5},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			filtered := service.FilterByPeriod(orders, test.filter, now)
			require.Len(t, filtered, test.expected)
		})
	}
}

func TestRankClients(t *testing.T) {
	t.Parallel()

	now := time.Now()

	clients := make([]entity.Client, 0, 6)
	orders := make([]entity.ServiceOrder, 0, 12)

	// Six clients with ascending value so the cut at five is observable.
	for i := 1; i <= 6; i++ {
		client := entity.Client{ID: uuid.Must(uuid.NewV4()), Name: string(rune('A' + i - 1)), Phone: "x"}
		clients = append(clients, client)

		o := order(entity.StatusPending, float64(i*100), now)
		o.ClientID = client.ID
		orders = append(orders, o)
	}

	// A canceled order: counted, but its value is excluded.
	canceled := order(entity.StatusCanceled, 10000, now)
	canceled.ClientID = clients[0].ID
	orders = append(orders, canceled)

	ranking := service.RankClients(orders, clients)

	require.Len(t, ranking, service.RankingSize)
	require.Equal(t, "F", ranking[0].Name)
	require.InDelta(t, 600, ranking[0].TotalValue, valueTolerance)

	for i := 1; i < len(ranking); i++ {
		require.GreaterOrEqual(t, ranking[i-1].TotalValue, ranking[i].TotalValue, "ranking must be descending")
	}

	// Client A fell out of the top five: 100 in value despite two orders.
	for _, rank := range ranking {
		require.NotEqual(t, clients[0].ID, rank.ClientID)
	}
}

func TestRankClientsCanceledCountsTowardCount(t *testing.T) {
	t.Parallel()

	now := time.Now()
	client := entity.Client{ID: uuid.Must(uuid.NewV4()), Name: "Ana", Phone: "x"}

	completed := order(entity.StatusCompleted, 300, now)
	completed.ClientID = client.ID
	canceled := order(entity.StatusCanceled, 500, now)
	canceled.ClientID = client.ID

	ranking := service.RankClients([]entity.ServiceOrder{completed, canceled}, []entity.Client{client})

	require.Len(t, ranking, 1)
	require.Equal(t, 2, ranking[0].Count)
	require.InDelta(t, 300, ranking[0].TotalValue, valueTolerance)
}

func TestRankClientsOrphanBucket(t *testing.T) {
	t.Parallel()

	now := time.Now()
	orphanID := uuid.Must(uuid.NewV4())

	o := order(entity.StatusCompleted, 150, now)
	o.ClientID = orphanID

	ranking := service.RankClients([]entity.ServiceOrder{o}, nil)

	require.Len(t, ranking, 1)
	require.Equal(t, orphanID, ranking[0].ClientID)
	require.Equal(t, service.DeletedClientName, ranking[0].Name)
}

func TestRankClientsStableOnTies(t *testing.T) {
	t.Parallel()

	now := time.Now()
	first := entity.Client{ID: uuid.Must(uuid.NewV4()), Name: "Primeiro", Phone: "x"}
	second := entity.Client{ID: uuid.Must(uuid.NewV4()), Name: "Segundo", Phone: "x"}

	a := order(entity.StatusPending, 100, now)
	a.ClientID = first.ID
	b := order(entity.StatusPending, 100, now)
	b.ClientID = second.ID

	ranking := service.RankClients([]entity.ServiceOrder{a, b}, []entity.Client{first, second})

	require.Len(t, ranking, 2)
	require.Equal(t, "Primeiro", ranking[0].Name, "ties keep first-encountered order")
}

func TestPercent(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 50, service.Percent(1, 2), valueTolerance)
	require.Zero(t, service.Percent(10, 0), "zero denominator must yield 0%%, not an error")
	require.Zero(t, service.Percent(0, 0))
}

func TestSummarizeFinanceIncludesCanceledInTotal(t *testing.T) {
	t.Parallel()

	now := time.Now()
	orders := []entity.ServiceOrder{
		order(entity.StatusPending, 450, now),
		order(entity.StatusCompleted, 80, now),
		order(entity.StatusCanceled, 30, now),
	}

	totals := service.SummarizeFinance(orders)

	require.InDelta(t, 450, totals.ToReceive, valueTolerance)
	require.InDelta(t, 80, totals.Received, valueTolerance)
	require.InDelta(t, 560, totals.Total, valueTolerance)
}

package service

import (
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/entity"
)

type Period string

const (
	PeriodToday      Period = "today"
	PeriodLast7Days  Period = "week"
	PeriodLast30Days Period = "month"
	PeriodCustom     Period = "custom"
)

func (p Period) IsValid() bool {
	switch p {
	case PeriodToday, PeriodLast7Days, PeriodLast30Days, PeriodCustom:
		return true
	}

	return false
}

// DeletedClientName labels ranking buckets whose client record no longer
// exists.
const DeletedClientName = "Cliente Excluído"

// RankingSize caps the client ranking at the top five.
const RankingSize = 5

// PeriodFilter scopes report aggregation. Rolling periods window on
// [windowStart, now]; custom windows on [Start, End + 1 day). A custom filter
// with either boundary unset degrades to pass-through: this mirrors the
// report screen, which only applies custom bounds once both dates are picked.
type PeriodFilter struct {
	Period Period
	Start  time.Time
	End    time.Time
}

// FilterByPeriod returns the orders whose date falls inside the filter's
// window relative to now.
func FilterByPeriod(orders []entity.ServiceOrder, filter PeriodFilter, now time.Time) []entity.ServiceOrder {
	var start, end time.Time

	switch filter.Period {
	case PeriodToday:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end = now
	case PeriodLast7Days:
		start = now.Add(-7 * 24 * time.Hour)
		end = now
	case PeriodLast30Days:
		start = now.Add(-30 * 24 * time.Hour)
		end = now
	case PeriodCustom:
		if filter.Start.IsZero() || filter.End.IsZero() {
			return orders
		}

		start = filter.Start
		end = filter.End.Add(24 * time.Hour)
	default:
		return orders
	}

	filtered := make([]entity.ServiceOrder, 0, len(orders))

	for _, order := range orders {
		if order.Date.Before(start) || order.Date.After(end) {
			continue
		}

		filtered = append(filtered, order)
	}

	return filtered
}

// Summary aggregates a filtered order set. RevenueTotal always equals
// Received + PendingValue: CANCELED value never enters any of the three.
type Summary struct {
	Total        int     `json:"total"`
	Pending      int     `json:"pending"`
	InProgress   int     `json:"inProgress"`
	Completed    int     `json:"completed"`
	Canceled     int     `json:"canceled"`
	RevenueTotal float64 `json:"revenueTotal"`
	Received     float64 `json:"received"`
	PendingValue float64 `json:"pendingValue"`
}

func Summarize(orders []entity.ServiceOrder) Summary {
	var summary Summary

	summary.Total = len(orders)

	for _, order := range orders {
		switch order.Status {
		case entity.StatusPending:
			summary.Pending++
		case entity.StatusInProgress:
			summary.InProgress++
		case entity.StatusCompleted:
			summary.Completed++
		case entity.StatusCanceled:
			summary.Canceled++
		}

		if order.Status == entity.StatusCanceled {
			continue
		}

		summary.RevenueTotal += order.Value

		if order.Status == entity.StatusCompleted {
			summary.Received += order.Value
		} else {
			summary.PendingValue += order.Value
		}
	}

	return summary
}

// ClientRank is one row of the top-clients report.
type ClientRank struct {
	ClientID   uuid.UUID `json:"clientId"`
	Name       string    `json:"name"`
	Count      int       `json:"count"`
	TotalValue float64   `json:"totalValue"`
}

// RankClients groups orders by client id, counts every order but accumulates
// only non-CANCELED value, and returns the top five by value. Orders whose
// client was deleted keep their own bucket under the orphaned id. The sort is
// stable, so ties keep first-encountered order.
func RankClients(orders []entity.ServiceOrder, clients []entity.Client) []ClientRank {
	index := make(map[uuid.UUID]int)
	ranking := make([]ClientRank, 0)

	for _, order := range orders {
		i, ok := index[order.ClientID]
		if !ok {
			name := DeletedClientName
			if client := resolveClient(clients, order.ClientID); client != nil {
				name = client.Name
			}

			ranking = append(ranking, ClientRank{ClientID: order.ClientID, Name: name})
			i = len(ranking) - 1
			index[order.ClientID] = i
		}

		ranking[i].Count++

		if order.Status != entity.StatusCanceled {
			ranking[i].TotalValue += order.Value
		}
	}

	sort.SliceStable(ranking, func(a, b int) bool {
		return ranking[a].TotalValue > ranking[b].TotalValue
	})

	if len(ranking) > RankingSize {
		ranking = ranking[:RankingSize]
	}

	return ranking
}

// Percent renders part over whole as a percentage, treating a zero
// denominator as 0% instead of propagating a division error.
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}

	return part / whole * 100
}

// FinanceTotals are the cash-flow view numbers. Total sums every order,
// canceled included; only ToReceive and Received skip canceled value.
type FinanceTotals struct {
	ToReceive float64 `json:"toReceive"`
	Received  float64 `json:"received"`
	Total     float64 `json:"total"`
}

func SummarizeFinance(orders []entity.ServiceOrder) FinanceTotals {
	var totals FinanceTotals

	for _, order := range orders {
		totals.Total += order.Value

		switch order.Status {
		case entity.StatusCompleted:
			totals.Received += order.Value
		case entity.StatusCanceled:
		default:
			totals.ToReceive += order.Value
		}
	}

	return totals
}

// Report is the full reporting payload for one period window.
type Report struct {
	Summary Summary      `json:"summary"`
	Ranking []ClientRank `json:"ranking"`
}

func (s *Service) Report(filter PeriodFilter) Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := FilterByPeriod(s.orders, filter, time.Now())

	return Report{
		Summary: Summarize(filtered),
		Ranking: RankClients(filtered, s.clients),
	}
}

func (s *Service) Finance() FinanceTotals {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SummarizeFinance(s.orders)
}

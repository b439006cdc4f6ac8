// Package dashboard derives per-period occupancy and maintenance figures
// from already-fetched collections. Nothing here persists; every view
// recomputes from scratch.
package dashboard

import (
	"sort"

	"github.com/rentdesk/rentdesk/internal/maintenance"
	"github.com/rentdesk/rentdesk/internal/rent"
	"github.com/rentdesk/rentdesk/internal/tenants"
)

// Summary is the dashboard for one (month, year) period.
type Summary struct {
	Month            int                     `json:"month"`
	Year             int                     `json:"year"`
	PaidTenantIDs    []int64                 `json:"paid_tenant_ids"`
	DueTenants       []tenants.TenantProfile `json:"due_tenants"`
	OpenRequests     int                     `json:"open_requests"`
	ResolvedRequests int                     `json:"resolved_requests"`
	Collected        float64                 `json:"collected"`
	CollectedDisplay string                  `json:"collected_display"`
}

// Aggregate computes the summary for the period. Empty tenant and payment
// lists are valid inputs producing zero counts.
func Aggregate(allTenants []tenants.TenantProfile, payments []rent.Payment, requests []maintenance.Request, month, year int) Summary {
	paid := make(map[int64]bool)
	var collected float64
	for _, p := range payments {
		if p.Month != month || p.Year != year {
			continue
		}
		paid[p.TenantID] = true
		collected += p.Amount
	}

	paidIDs := make([]int64, 0, len(paid))
	for id := range paid {
		paidIDs = append(paidIDs, id)
	}
	sort.Slice(paidIDs, func(i, j int) bool { return paidIDs[i] < paidIDs[j] })

	due := make([]tenants.TenantProfile, 0)
	for _, t := range allTenants {
		if !paid[t.ID] {
			due = append(due, t)
		}
	}

	var open, resolved int
	for _, r := range requests {
		switch r.Status {
		case maintenance.StatusOpen:
			open++
		case maintenance.StatusResolved:
			resolved++
		}
	}

	return Summary{
		Month:            month,
		Year:             year,
		PaidTenantIDs:    paidIDs,
		DueTenants:       due,
		OpenRequests:     open,
		ResolvedRequests: resolved,
		Collected:        collected,
		CollectedDisplay: rent.FormatAmount(collected),
	}
}

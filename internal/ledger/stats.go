package ledger

import "github.com/ndewijer/Investment-Admin-Console/internal/model"

// Stats derives the dashboard aggregates from the current working set.
func (l *Ledger) Stats() model.LedgerStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := model.LedgerStats{Count: len(l.order)}
	for _, id := range l.order {
		inv := l.byID[id]
		stats.TotalInvested += inv.Amount

		switch inv.Status {
		case model.StatusPending:
			stats.PendingCount++
		case model.StatusActive:
			stats.ActiveCount++
		case model.StatusCompleted:
			stats.CompletedCount++
		case model.StatusCancelled:
			stats.CancelledCount++
		}

		if inv.Status.Terminal() && inv.ActualReturn != nil {
			stats.TotalReturned += *inv.ActualReturn
		}
	}
	return stats
}

// Filter returns copies of the investments with the given status, in load
// order. An empty status returns everything.
func (l *Ledger) Filter(status model.Status) []model.Investment {
	if status == "" {
		return l.List()
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	out := []model.Investment{}
	for _, id := range l.order {
		if inv := l.byID[id]; inv.Status == status {
			out = append(out, inv.Clone())
		}
	}
	return out
}

package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dkurganov/guestgate/internal/common"
	"github.com/dkurganov/guestgate/internal/server/models"
	"github.com/dkurganov/guestgate/internal/server/repositories/accounting"
	"github.com/dkurganov/guestgate/internal/server/repositories/repomanager"
	"golang.org/x/sync/errgroup"
)

// StatsService aggregates the external accounting log into per-user
// summaries and the unfiltered dashboard totals.
type StatsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

// NewStatsService constructs a StatsService.
func NewStatsService(db *sql.DB, m repomanager.RepositoryManager) *StatsService {
	return &StatsService{db: db, repomanager: m, now: time.Now}
}

// Summarize returns per-username usage aggregates within the filter bounds,
// ordered by the resolved sort and capped at accounting.MaxRows. Unknown
// sort parameters fall back to defaults instead of erroring.
func (s *StatsService) Summarize(ctx context.Context, filter accounting.Filter, sort accounting.Sort) ([]*models.UsageSummary, error) {
	summaries, err := s.repomanager.Accounting(s.db).SummarizeByUser(ctx, filter, sort, accounting.MaxRows)
	if err != nil {
		return nil, fmt.Errorf("%w: summarizing accounting log: %v", common.ErrorStorage, err)
	}
	return summaries, nil
}

// Totals returns the process-wide counters shown alongside a filtered stats
// table: registrant count, distinct active users over the last 24 hours, and
// all-time traffic. Always unfiltered, whatever the table filter says. The
// three reads have no ordering dependency and run concurrently.
func (s *StatsService) Totals(ctx context.Context) (*models.DashboardTotals, error) {
	totals := &models.DashboardTotals{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repomanager.Identities(s.db).Count(ctx)
		if err != nil {
			return err
		}
		totals.TotalUsers = n
		return nil
	})
	g.Go(func() error {
		n, err := s.repomanager.Accounting(s.db).ActiveUsersSince(ctx, s.now().Add(-24*time.Hour))
		if err != nil {
			return err
		}
		totals.ActiveUsers24h = n
		return nil
	})
	g.Go(func() error {
		n, err := s.repomanager.Accounting(s.db).TotalOctets(ctx)
		if err != nil {
			return err
		}
		totals.TotalOctets = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: reading dashboard totals: %v", common.ErrorStorage, err)
	}
	return totals, nil
}

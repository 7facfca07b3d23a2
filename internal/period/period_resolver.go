package period

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Resolver finds or lazily creates the payroll period covering a date.
// Resolve is idempotent: every caller racing on the same month lands on the
// same row.
type Resolver interface {
	Resolve(ctx context.Context, date time.Time) (*PayrollPeriod, error)
}

type resolver struct {
	repo   Repository
	logger *zap.Logger
}

func NewResolver(repo Repository) Resolver {
	return &resolver{
		repo:   repo,
		logger: zap.L().Named("period.resolver"),
	}
}

func (r *resolver) Resolve(ctx context.Context, date time.Time) (*PayrollPeriod, error) {
	candidate := NewForMonth(date)

	// Insert-on-conflict-do-nothing, then reread. The reread always returns
	// the winning row whether ours was the insert that stuck or not.
	if err := r.repo.UpsertByMonth(ctx, candidate); err != nil {
		r.logger.Error("period upsert failed",
			zap.Int("year", candidate.Year),
			zap.Int("month", candidate.Month),
			zap.Error(err),
		)
		return nil, err
	}

	p, err := r.repo.FindByMonth(ctx, candidate.Year, candidate.Month)
	if err != nil {
		return nil, err
	}

	return p, nil
}

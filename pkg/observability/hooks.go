package observability

import (
	"context"

	"github.com/aretw0/gridsweep/pkg/domain"
)

// Combine returns hooks that call each of the given hook sets in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSweepStart: func(ctx context.Context, e *domain.SweepEvent) {
			for _, s := range sets {
				if s.OnSweepStart != nil {
					s.OnSweepStart(ctx, e)
				}
			}
		},
		OnSweepFinish: func(ctx context.Context, e *domain.SweepEvent) {
			for _, s := range sets {
				if s.OnSweepFinish != nil {
					s.OnSweepFinish(ctx, e)
				}
			}
		},
		OnTrialStart: func(ctx context.Context, e *domain.TrialEvent) {
			for _, s := range sets {
				if s.OnTrialStart != nil {
					s.OnTrialStart(ctx, e)
				}
			}
		},
		OnTrialFinish: func(ctx context.Context, e *domain.TrialEvent) {
			for _, s := range sets {
				if s.OnTrialFinish != nil {
					s.OnTrialFinish(ctx, e)
				}
			}
		},
	}
}

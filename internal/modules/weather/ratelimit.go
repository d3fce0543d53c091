package weather

import (
	"context"
	"errors"

	"golang.org/x/time/rate"
)

// RateLimited wraps a Fetcher so upstream calls never exceed rps (burst allowed).
type RateLimited struct {
	next    Fetcher
	limiter *rate.Limiter
}

var _ Fetcher = (*RateLimited)(nil)

func NewRateLimited(next Fetcher, rps float64, burst int) *RateLimited {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &RateLimited{next: next, limiter: rate.NewLimiter(limit, burst)}
}

func (r *RateLimited) wait(ctx context.Context, city string) error {
	if err := r.limiter.Wait(ctx); err != nil {
		kind := ErrTimeout
		if errors.Is(err, context.Canceled) {
			kind = ErrNetwork
		}
		return fetchErr(kind, city, 0, err)
	}
	return nil
}

func (r *RateLimited) Current(ctx context.Context, city string) (Snapshot, error) {
	if err := r.wait(ctx, city); err != nil {
		return Snapshot{}, err
	}
	return r.next.Current(ctx, city)
}

func (r *RateLimited) Forecast(ctx context.Context, city string) (Forecast, error) {
	if err := r.wait(ctx, city); err != nil {
		return Forecast{}, err
	}
	return r.next.Forecast(ctx, city)
}

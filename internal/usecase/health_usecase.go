package usecase

import (
	"context"
	"sort"
	"time"
)

// Pinger is a dependency probed by the health check
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthUsecase interface {
	// Check reports "ok" or "down" per dependency and reports whether all are up
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	deps    map[string]Pinger
	timeout time.Duration
}

func NewHealthUsecase(deps map[string]Pinger) HealthUsecase {
	return &healthUsecase{deps: deps, timeout: 2 * time.Second}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	names := make([]string, 0, len(u.deps))
	for name := range u.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	status := map[string]string{"status": "ok"}
	healthy := true
	for _, name := range names {
		pingCtx, cancel := context.WithTimeout(ctx, u.timeout)
		err := u.deps[name].Ping(pingCtx)
		cancel()

		if err != nil {
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		status["status"] = "degraded"
	}
	return status, healthy
}

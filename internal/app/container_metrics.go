package app

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"storefront-api/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter `name:"rate_limit_exceeded_total"`
	GatewayRetriesTotal    prometheus.Counter `name:"gateway_retries_total"`
	UpstreamRequestsTotal  *prometheus.CounterVec
}

// provideMetrics registers the service counters with the default registry so
// they show up on /metrics. A rebuilt container reuses already registered
// collectors instead of failing.
func provideMetrics() (metricsOut, error) {
	rl, err := registerOrExisting[prometheus.Counter](metrics.NewRateLimitExceededTotal())
	if err != nil {
		return metricsOut{}, err
	}
	gr, err := registerOrExisting[prometheus.Counter](metrics.NewGatewayRetriesTotal())
	if err != nil {
		return metricsOut{}, err
	}
	up, err := registerOrExisting[*prometheus.CounterVec](metrics.NewUpstreamRequestsTotal())
	if err != nil {
		return metricsOut{}, err
	}
	return metricsOut{
		RateLimitExceededTotal: rl,
		GatewayRetriesTotal:    gr,
		UpstreamRequestsTotal:  up,
	}, nil
}

func registerOrExisting[C prometheus.Collector](c C) (C, error) {
	if err := prometheus.DefaultRegisterer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(C)
			if !ok {
				return c, err
			}
			return existing, nil
		}
		return c, err
	}
	return c, nil
}

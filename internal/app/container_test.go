package app

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"storefront-api/internal/config"
	"storefront-api/internal/http/handlers"
	"storefront-api/internal/logx"
	"storefront-api/internal/metrics"
)

type httpServersIn struct {
	dig.In

	Main  *http.Server
	Pprof *http.Server `name:"pprof_server" optional:"true"`
}

func setupContainerWithCfg(t *testing.T, cfg *config.Config) *dig.Container {
	t.Helper()

	c := dig.New()

	require.NoError(t, c.Provide(func() context.Context { return context.Background() }))
	require.NoError(t, c.Provide(func() *config.Config { return cfg }))
	require.NoError(t, c.Provide(logx.Nop))
	require.NoError(t, c.Provide(func() prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Name: "rate_limit_exceeded_total_unit", Help: "stub"})
	}, dig.Name("rate_limit_exceeded_total")))
	require.NoError(t, c.Provide(func() prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Name: "gateway_retries_total_unit", Help: "stub"})
	}, dig.Name("gateway_retries_total")))
	require.NoError(t, c.Provide(metrics.NewUpstreamRequestsTotal))

	require.NoError(t, registerGateways(c))
	require.NoError(t, registerServices(c))
	require.NoError(t, registerHTTP(c))

	return c
}

func testConfig() *config.Config {
	return &config.Config{
		Port:              8080,
		HTTPClientTimeout: 15 * time.Second,
	}
}

func TestContainer_ProvidesServerAndHandlers(t *testing.T) {
	t.Parallel()

	c := setupContainerWithCfg(t, testConfig())

	err := c.Invoke(func(
		srv *http.Server,
		base *handlers.Handlers,
		shippingH *handlers.ShippingHandler,
		taxH *handlers.TaxHandler,
		vatH *handlers.VATHandler,
		contactH *handlers.ContactHandler,
	) {
		require.NotNil(t, srv)
		require.Equal(t, ":8080", srv.Addr)
		require.Greater(t, srv.ReadHeaderTimeout, time.Duration(0))
		require.Greater(t, srv.ReadTimeout, time.Duration(0))
		require.Greater(t, srv.WriteTimeout, time.Duration(0))
		require.Greater(t, srv.IdleTimeout, time.Duration(0))
		require.NotNil(t, base)
		require.NotNil(t, shippingH)
		require.NotNil(t, taxH)
		require.NotNil(t, vatH)
		require.NotNil(t, contactH)
	})
	require.NoError(t, err)
}

func TestContainer_PprofDisabled_ReturnsNilPprofServer(t *testing.T) {
	t.Parallel()

	c := setupContainerWithCfg(t, testConfig())

	err := c.Invoke(func(in httpServersIn) {
		require.NotNil(t, in.Main)
		require.Nil(t, in.Pprof)
	})
	require.NoError(t, err)
}

func TestContainer_PprofEnabled_ProvidesPprofServer(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Pprof = config.Pprof{Addr: "127.0.0.1:6060", User: "u", Pass: "p"}
	c := setupContainerWithCfg(t, cfg)

	err := c.Invoke(func(in httpServersIn) {
		require.NotNil(t, in.Pprof)
		require.Equal(t, "127.0.0.1:6060", in.Pprof.Addr)
		require.NotNil(t, in.Pprof.Handler)
	})
	require.NoError(t, err)
}

func TestMustBuild_RegistersAllProviders(t *testing.T) {
	t.Parallel()

	b := NewContainerBuilder().WithLogFatalf(func(format string, args ...interface{}) {
		t.Fatalf("unexpected fatal: "+format, args...)
	})

	// providers are lazy: building must succeed without touching env or network
	require.NotNil(t, b.MustBuild(context.Background()))
}

func TestProvideAll_Success(t *testing.T) {
	t.Parallel()

	c := dig.New()

	err := provideAll(c,
		func() context.Context { return context.Background() },
		func() time.Duration { return 3 * time.Second },
	)
	require.NoError(t, err)

	err = c.Invoke(func(ctx context.Context, d time.Duration) {
		require.NotNil(t, ctx)
		require.Equal(t, 3*time.Second, d)
	})
	require.NoError(t, err)
}

func TestProvideAll_InvalidProvider(t *testing.T) {
	t.Parallel()

	c := dig.New()

	type bad struct{}
	err := provideAll(c, bad{})
	require.Error(t, err)
}

func TestProvideMetrics_Success_RegistersAndReturnsCounters(t *testing.T) {
	oldReg := prometheus.DefaultRegisterer
	oldGath := prometheus.DefaultGatherer
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = oldReg
		prometheus.DefaultGatherer = oldGath
	})

	out, err := provideMetrics()
	require.NoError(t, err)
	require.NotNil(t, out.RateLimitExceededTotal)
	require.NotNil(t, out.GatewayRetriesTotal)
	require.NotNil(t, out.UpstreamRequestsTotal)
}

func TestProvideMetrics_AlreadyRegistered_ReturnsExistingCounters(t *testing.T) {
	oldReg := prometheus.DefaultRegisterer
	oldGath := prometheus.DefaultGatherer
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = oldReg
		prometheus.DefaultGatherer = oldGath
	})

	existingRL := metrics.NewRateLimitExceededTotal()
	existingGR := metrics.NewGatewayRetriesTotal()
	require.NoError(t, reg.Register(existingRL))
	require.NoError(t, reg.Register(existingGR))

	out, err := provideMetrics()
	require.NoError(t, err)

	require.Same(t, existingRL, out.RateLimitExceededTotal)
	require.Same(t, existingGR, out.GatewayRetriesTotal)
}

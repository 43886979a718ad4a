package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/dig"

	"storefront-api/internal/config"
	"storefront-api/internal/gateway/captcha"
	"storefront-api/internal/gateway/fedex"
	"storefront-api/internal/gateway/mail"
	"storefront-api/internal/gateway/vies"
	"storefront-api/internal/http/handlers"
	"storefront-api/internal/http/pprofserver"
	"storefront-api/internal/http/router"
	"storefront-api/internal/logx"
	"storefront-api/internal/service/contact"
	"storefront-api/internal/service/shipping"
	"storefront-api/internal/service/tax"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		logFatalf: log.Fatalf,
	}
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerGateways(container); err != nil {
		return nil, fmt.Errorf("gateways: %w", err)
	}
	if err := registerServices(container); err != nil {
		return nil, fmt.Errorf("services: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
		provideMetrics,
	)
}

func registerServices(container *dig.Container) error {
	return provideAll(container,
		newShippingService,
		newTaxService,
		newContactService,
	)
}

func newShippingService(gw *fedex.Gateway, cfg *config.Config, logger logx.Logger) *shipping.Service {
	return shipping.NewService(gw, shipping.Config{
		Configured:      cfg.FedEx.Configured(),
		OriginCountry:   cfg.Shipper.Country,
		FallbackEnabled: cfg.FedEx.FallbackEnabled,
		FallbackAmount:  cfg.FedEx.FallbackAmount,
	}, logger)
}

func newTaxService(checker *vies.RetryingChecker, cfg *config.Config, logger logx.Logger) *tax.Service {
	return tax.NewService(checker, tax.Config{
		HomeCountry:   cfg.Tax.HomeCountry,
		HomeRate:      cfg.Tax.HomeRate,
		DefaultEURate: cfg.Tax.DefaultEURate,
	}, logger)
}

func newContactService(verifier *captcha.Client, sender *mail.Client, cfg *config.Config, logger logx.Logger) *contact.Service {
	return contact.NewService(verifier, sender, contact.Config{
		MinScore:    cfg.Captcha.MinScore,
		SenderEmail: cfg.Mail.SenderEmail,
		SenderName:  cfg.Mail.SenderName,
		Recipient:   cfg.Mail.ContactRecipient,
	}, logger)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewShippingUsecase,
		handlers.NewShippingHandler,
		handlers.NewTaxUsecase,
		handlers.NewTaxHandler,
		handlers.NewVATChecker,
		handlers.NewVATHandler,
		handlers.NewContactUsecase,
		handlers.NewContactHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		router.New,
		serverProvider,
		providePprofServer,
	)
}

type pprofServerOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

// providePprofServer exposes the profiler on its own listener. An empty
// address disables it.
func providePprofServer(cfg *config.Config) pprofServerOut {
	if cfg.Pprof.Addr == "" {
		return pprofServerOut{}
	}
	return pprofServerOut{Server: &http.Server{
		Addr: cfg.Pprof.Addr,
		Handler: pprofserver.Handler(pprofserver.Config{
			User: cfg.Pprof.User,
			Pass: cfg.Pprof.Pass,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"storefront-api/internal/config"
	"storefront-api/internal/gateway/captcha"
	"storefront-api/internal/gateway/fedex"
	"storefront-api/internal/gateway/mail"
	"storefront-api/internal/gateway/vies"
	"storefront-api/internal/logx"
)

// registerGateways wires the outbound clients. They share one http.Client so
// the configured timeout bounds every upstream call.
func registerGateways(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config) *http.Client {
			return &http.Client{Timeout: cfg.HTTPClientTimeout}
		},
		newFedExGateway,
		newVIESClient,
		newRetryingVATChecker,
		newCaptchaClient,
		newMailClient,
	)
}

func newFedExGateway(httpc *http.Client, cfg *config.Config, logger logx.Logger, up *prometheus.CounterVec) *fedex.Gateway {
	return fedex.New(httpc, fedex.Config{
		BaseURL:              cfg.FedEx.APIBase,
		ClientID:             cfg.FedEx.ClientID,
		ClientSecret:         cfg.FedEx.ClientSecret,
		AccountNumber:        cfg.FedEx.AccountNumber,
		PickupType:           cfg.FedEx.PickupType,
		Currency:             cfg.FedEx.Currency,
		CountryOfManufacture: cfg.FedEx.CountryOfManufacture,
		Shipper: fedex.Shipper{
			Name:       cfg.Shipper.Name,
			Company:    cfg.Shipper.Company,
			Phone:      cfg.Shipper.Phone,
			Street:     cfg.Shipper.Address1,
			City:       cfg.Shipper.City,
			PostalCode: cfg.Shipper.PostalCode,
			State:      cfg.Shipper.State,
			Country:    cfg.Shipper.Country,
		},
	}, logger, up)
}

func newVIESClient(httpc *http.Client, cfg *config.Config, logger logx.Logger, up *prometheus.CounterVec) *vies.Client {
	return vies.New(httpc, cfg.VIES.URL, logger, up)
}

type retryingCheckerIn struct {
	dig.In

	Client  *vies.Client
	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

func newRetryingVATChecker(in retryingCheckerIn) *vies.RetryingChecker {
	return vies.NewRetryingChecker(in.Client, in.Logger, in.Retries, vies.RetryConfig{
		MaxAttempts: in.Cfg.VIES.MaxAttempts,
		BaseDelay:   in.Cfg.VIES.BaseDelay,
		MaxDelay:    in.Cfg.VIES.MaxDelay,
	})
}

func newCaptchaClient(httpc *http.Client, cfg *config.Config, logger logx.Logger, up *prometheus.CounterVec) *captcha.Client {
	return captcha.New(httpc, cfg.Captcha.VerifyURL, cfg.Captcha.Secret, logger, up)
}

func newMailClient(httpc *http.Client, cfg *config.Config, logger logx.Logger, up *prometheus.CounterVec) *mail.Client {
	return mail.New(httpc, cfg.Mail.BaseURL, cfg.Mail.APIKey, cfg.Mail.APISecret, logger, up)
}

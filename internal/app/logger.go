package app

import (
	"go.uber.org/zap"

	"storefront-api/internal/logx"
)

// NewLogger builds the production logger backing the logx interface.
func NewLogger() logx.Logger {
	return logx.NewZapAdapter(zap.Must(zap.NewProduction()))
}

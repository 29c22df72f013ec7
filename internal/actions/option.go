package actions

import (
	"time"

	"go.uber.org/zap"

	"github.com/bizmatters/usdc-actions/internal/metrics"
)

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

func WithMetrics(m *metrics.ActionMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTokenSymbol sets the symbol used in link labels and messages.
func WithTokenSymbol(symbol string) Option {
	return func(s *Service) {
		s.symbol = symbol
	}
}

// WithDecimals sets the token's decimal places. Amounts that do not
// convert to base units are rejected at create time.
func WithDecimals(decimals int32) Option {
	return func(s *Service) {
		s.decimals = decimals
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Package worker runs the background payment verification poller.
package worker

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"anha/config"
	"anha/internal/delivery"
	"anha/internal/usecase"

	"go.uber.org/fx"
)

const defaultPollInterval = time.Minute

// PollerParams holds dependencies for the payment poller.
type PollerParams struct {
	fx.In
	fx.Lifecycle

	Config   *config.Config
	Logger   *slog.Logger
	Payments usecase.PaymentUsecase
}

// paymentPoller periodically sweeps pending bank-transfer orders against the
// bank statement. Passes never overlap; a tick firing while the previous
// pass still runs is skipped.
type paymentPoller struct {
	cfg      *config.Config
	logger   *slog.Logger
	payments usecase.PaymentUsecase
	interval time.Duration
	running  atomic.Bool
	stop     chan struct{}
}

// NewPaymentPoller creates the poller delivery.
func NewPaymentPoller(params PollerParams) (delivery.Delivery, error) {
	poller := newPoller(params.Config, params.Logger, params.Payments)

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			close(poller.stop)

			return nil
		},
	})

	return poller, nil
}

func newPoller(cfg *config.Config, logger *slog.Logger, payments usecase.PaymentUsecase) *paymentPoller {
	interval := defaultPollInterval
	if cfg.Bank != nil && cfg.Bank.PollInterval > 0 {
		interval = cfg.Bank.PollInterval
	}

	return &paymentPoller{
		cfg:      cfg,
		logger:   logger,
		payments: payments,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Serve runs verification passes until stopped. Without a statement API
// configured there is nothing to poll and Serve returns immediately.
func (p *paymentPoller) Serve(ctx context.Context) error {
	if p.cfg.Bank == nil || p.cfg.Bank.StatementURL == "" {
		p.logger.Info("Payment polling disabled, no bank statement API configured")

		return nil
	}

	p.logger.Info("Starting payment verification poller", slog.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.runPass(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.stop:
			p.logger.Info("Stopping payment verification poller")

			return nil
		case <-ticker.C:
			p.runPass(ctx)
		}
	}
}

func (p *paymentPoller) runPass(ctx context.Context) {
	if !p.running.CompareAndSwap(false, true) {
		p.logger.Warn("Previous verification pass still running, skipping tick")

		return
	}
	defer p.running.Store(false)

	result, err := p.payments.RunVerificationPass(ctx)
	if err != nil {
		p.logger.Error("Verification pass failed", slog.Any("error", err))

		return
	}

	if result.Confirmed > 0 || result.Failed > 0 {
		p.logger.Info("Verification pass finished",
			slog.Int("checked", result.Checked),
			slog.Int("confirmed", result.Confirmed),
			slog.Int("failed", result.Failed),
		)
	}
}

package worker

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"anha/config"
	"anha/internal/usecase"
)

type stubPaymentUsecase struct {
	passes atomic.Int32
	block  chan struct{}
}

func (s *stubPaymentUsecase) RunVerificationPass(ctx context.Context) (*usecase.VerificationResult, error) {
	s.passes.Add(1)
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
		}
	}

	return &usecase.VerificationResult{}, nil
}

func (s *stubPaymentUsecase) VerifyOrder(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}

func testConfig(interval time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.Bank = &config.BankConfig{
		StatementURL: "http://localhost:0",
		PollInterval: interval,
	}

	return cfg
}

func TestPaymentPoller_RunsPasses(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	payments := &stubPaymentUsecase{}
	poller := newPoller(testConfig(5*time.Millisecond), logger, payments)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- poller.Serve(ctx) }()

	assert.Eventually(t, func() bool {
		return payments.passes.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestPaymentPoller_StopChannelStopsServe(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	payments := &stubPaymentUsecase{}
	poller := newPoller(testConfig(time.Hour), logger, payments)

	done := make(chan error, 1)
	go func() { done <- poller.Serve(context.Background()) }()

	assert.Eventually(t, func() bool {
		return payments.passes.Load() == 1
	}, time.Second, 5*time.Millisecond)

	close(poller.stop)
	assert.NoError(t, <-done)
}

func TestPaymentPoller_DisabledWithoutStatementAPI(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	payments := &stubPaymentUsecase{}
	poller := newPoller(&config.Config{}, logger, payments)

	assert.NoError(t, poller.Serve(context.Background()))
	assert.Zero(t, payments.passes.Load())
}

package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goalux/goalux/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

var reconcilingOrders sync.Map

type StatusClient interface {
	TransactionStatus(orderID string) (*StatusResponse, error)
}

type PaymentRepo interface {
	FindForReconciliation(ctx context.Context, cutoff time.Time, limit uint32) ([]domain.Payment, error)
}

// Settler is the payment service entry the poller shares with the callback
// handler, so both settle an order through the same idempotent path.
type Settler interface {
	Confirm(ctx context.Context, orderID, gatewayStatus, txnID string) error
}

// Poller sweeps initiated payments whose callback never arrived and settles
// them against the gateway's status API.
type Poller struct {
	client       StatusClient
	paymentRepo  PaymentRepo
	settler      Settler
	limit        uint32
	workerPool   WorkerPoolI
	pollInterval time.Duration
	minAge       time.Duration
}

func NewPoller(client StatusClient, paymentRepo PaymentRepo, settler Settler) *Poller {
	return &Poller{
		client:       client,
		paymentRepo:  paymentRepo,
		settler:      settler,
		limit:        1000,
		workerPool:   NewWorkerPool(10),
		pollInterval: time.Second * 30,
		minAge:       time.Minute * 5,
	}
}

func (p *Poller) Start(ctx context.Context) {
	zap.L().Info("Payment reconciliation poller started")
	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping poller")
			return
		case <-ticker.C:
			p.processPayments(ctx)
		}
	}
}

func (p *Poller) processPayments(ctx context.Context) {
	cutoff := time.Now().Add(-p.minAge)
	payments, err := p.paymentRepo.FindForReconciliation(ctx, cutoff, p.limit)
	if err != nil {
		zap.L().Error("Failed to fetch payments for reconciliation", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, payment := range payments {
		payment := payment

		if _, loaded := reconcilingOrders.LoadOrStore(payment.OrderID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := p.workerPool.AddTask(ctx, func() error {
				defer reconcilingOrders.Delete(payment.OrderID)
				return p.handlePayment(ctx, payment)
			})
			if err != nil {
				reconcilingOrders.Delete(payment.OrderID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error reconciling payments", zap.Error(err))
	}
}

func (p *Poller) handlePayment(ctx context.Context, payment domain.Payment) error {
	var status *StatusResponse
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			status, err = p.client.TransactionStatus(payment.OrderID)
			if err != nil {
				if attempt < maxRetries {
					time.Sleep(retryInterval * time.Duration(attempt))
					continue
				}
				return fmt.Errorf("failed to query status for order %s after %d retries: %w", payment.OrderID, maxRetries, err)
			}
		}
		break
	}

	if status.Status == TxnPending {
		return nil
	}

	zap.L().Info("reconciling stale payment",
		zap.String("order_id", payment.OrderID), zap.String("status", status.Status))
	return p.settler.Confirm(ctx, payment.OrderID, status.Status, status.TxnID)
}

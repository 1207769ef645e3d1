package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goalux/goalux/internal/domain"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMockPoller(t *testing.T) (*Poller, *MockStatusClient, *MockPaymentRepo, *MockSettler, *MockWorkerPoolI) {
	ctrl := gomock.NewController(t)
	client := NewMockStatusClient(ctrl)
	paymentRepo := NewMockPaymentRepo(ctrl)
	settler := NewMockSettler(ctrl)
	workerPool := NewMockWorkerPoolI(ctrl)

	p := &Poller{
		client:       client,
		paymentRepo:  paymentRepo,
		settler:      settler,
		limit:        1000,
		workerPool:   workerPool,
		pollInterval: time.Second * 30,
		minAge:       time.Minute * 5,
	}
	defer ctrl.Finish()
	return p, client, paymentRepo, settler, workerPool
}

// runInline makes the pool mock execute tasks synchronously.
func runInline(workerPool *MockWorkerPoolI) {
	workerPool.EXPECT().AddTask(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, task Task) error {
			return task()
		}).AnyTimes()
}

func TestNewPoller(t *testing.T) {
	_, client, paymentRepo, settler, _ := NewMockPoller(t)

	p := NewPoller(client, paymentRepo, settler)

	assert.NotNil(t, p.workerPool)
	assert.Equal(t, uint32(1000), p.limit)
	assert.Equal(t, time.Second*30, p.pollInterval)
	assert.Equal(t, time.Minute*5, p.minAge)
}

func TestProcessPayments_SettlesStaleOrder(t *testing.T) {
	p, client, paymentRepo, settler, workerPool := NewMockPoller(t)
	ctx := context.Background()
	runInline(workerPool)

	paymentRepo.EXPECT().FindForReconciliation(ctx, gomock.Any(), uint32(1000)).
		DoAndReturn(func(ctx context.Context, cutoff time.Time, limit uint32) ([]domain.Payment, error) {
			assert.WithinDuration(t, time.Now().Add(-p.minAge), cutoff, time.Second)
			return []domain.Payment{{ID: 7, OrderID: "ORDER-SETTLE", Status: domain.PaymentInitiated}}, nil
		})
	client.EXPECT().TransactionStatus("ORDER-SETTLE").
		Return(&StatusResponse{Status: TxnSuccess, TxnID: "TXN123", OrderID: "ORDER-SETTLE"}, nil)
	settler.EXPECT().Confirm(ctx, "ORDER-SETTLE", TxnSuccess, "TXN123").Return(nil)

	p.processPayments(ctx)
}

func TestProcessPayments_PendingIsLeftAlone(t *testing.T) {
	p, client, paymentRepo, _, workerPool := NewMockPoller(t)
	ctx := context.Background()
	runInline(workerPool)

	paymentRepo.EXPECT().FindForReconciliation(ctx, gomock.Any(), uint32(1000)).
		Return([]domain.Payment{{ID: 8, OrderID: "ORDER-PENDING", Status: domain.PaymentInitiated}}, nil)
	client.EXPECT().TransactionStatus("ORDER-PENDING").
		Return(&StatusResponse{Status: TxnPending, OrderID: "ORDER-PENDING"}, nil)

	p.processPayments(ctx)
}

func TestProcessPayments_FetchError(t *testing.T) {
	p, _, paymentRepo, _, _ := NewMockPoller(t)
	ctx := context.Background()

	paymentRepo.EXPECT().FindForReconciliation(ctx, gomock.Any(), uint32(1000)).
		Return(nil, errors.New("database error"))

	p.processPayments(ctx)
}

func TestProcessPayments_DeduplicatesWithinSweep(t *testing.T) {
	p, client, paymentRepo, settler, workerPool := NewMockPoller(t)
	ctx := context.Background()
	runInline(workerPool)

	stale := domain.Payment{ID: 9, OrderID: "ORDER-DUP", Status: domain.PaymentInitiated}
	paymentRepo.EXPECT().FindForReconciliation(ctx, gomock.Any(), uint32(1000)).
		Return([]domain.Payment{stale, stale}, nil)
	client.EXPECT().TransactionStatus("ORDER-DUP").
		Return(&StatusResponse{Status: TxnFailure, TxnID: "TXN124", OrderID: "ORDER-DUP"}, nil).Times(1)
	settler.EXPECT().Confirm(ctx, "ORDER-DUP", TxnFailure, "TXN124").Return(nil).Times(1)

	p.processPayments(ctx)
}

func TestProcessPayments_ReleasesOrderAfterSweep(t *testing.T) {
	p, client, paymentRepo, settler, workerPool := NewMockPoller(t)
	ctx := context.Background()
	runInline(workerPool)

	stale := domain.Payment{ID: 10, OrderID: "ORDER-AGAIN", Status: domain.PaymentInitiated}
	paymentRepo.EXPECT().FindForReconciliation(ctx, gomock.Any(), uint32(1000)).
		Return([]domain.Payment{stale}, nil).Times(2)
	client.EXPECT().TransactionStatus("ORDER-AGAIN").
		Return(&StatusResponse{Status: TxnSuccess, TxnID: "TXN125", OrderID: "ORDER-AGAIN"}, nil).Times(2)
	settler.EXPECT().Confirm(ctx, "ORDER-AGAIN", TxnSuccess, "TXN125").Return(nil).Times(2)

	p.processPayments(ctx)
	p.processPayments(ctx)
}

func TestProcessPayments_RetriesStatusQuery(t *testing.T) {
	p, client, paymentRepo, settler, workerPool := NewMockPoller(t)
	ctx := context.Background()
	runInline(workerPool)

	paymentRepo.EXPECT().FindForReconciliation(ctx, gomock.Any(), uint32(1000)).
		Return([]domain.Payment{{ID: 11, OrderID: "ORDER-RETRY", Status: domain.PaymentInitiated}}, nil)

	failed := client.EXPECT().TransactionStatus("ORDER-RETRY").
		Return(nil, errors.New("connection refused"))
	client.EXPECT().TransactionStatus("ORDER-RETRY").
		Return(&StatusResponse{Status: TxnSuccess, TxnID: "TXN126", OrderID: "ORDER-RETRY"}, nil).
		After(failed)
	settler.EXPECT().Confirm(ctx, "ORDER-RETRY", TxnSuccess, "TXN126").Return(nil)

	p.processPayments(ctx)
}

func TestRun_StopsOnCancel(t *testing.T) {
	p, _, paymentRepo, _, workerPool := NewMockPoller(t)
	runInline(workerPool)
	p.pollInterval = time.Millisecond * 10

	paymentRepo.EXPECT().FindForReconciliation(gomock.Any(), gomock.Any(), uint32(1000)).
		Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.run(ctx)
		close(done)
	}()

	time.Sleep(time.Millisecond * 50)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop on context cancellation")
	}
}

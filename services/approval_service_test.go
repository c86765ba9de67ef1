package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/comeoffice/rank_booking/models"
)

// stubOrderStore mimics the conditional-update semantics of the real store:
// at most one caller ever gets a non-nil order back from the transition.
type stubOrderStore struct {
	mu      sync.Mutex
	order   models.Order
	findErr error
	cessErr error
}

func (s *stubOrderStore) FindByOrderID(orderID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	copy := s.order
	return &copy, nil
}

func (s *stubOrderStore) ApproveIfNotApproved(orderID string, meta PaymentMeta) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cessErr != nil {
		return nil, s.cessErr
	}
	if s.order.Status == models.OrderStatusApproved {
		return nil, nil
	}
	s.order.Status = models.OrderStatusApproved
	if meta.PaymentID != "" {
		s.order.CashfreePaymentID = &meta.PaymentID
	}
	copy := s.order
	return &copy, nil
}

type stubNotifier struct {
	mu    sync.Mutex
	calls []models.Order
}

func (n *stubNotifier) DispatchApproval(order models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, order)
}

func (n *stubNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

type stubBroadcaster struct {
	mu    sync.Mutex
	calls []models.Order
}

func (b *stubBroadcaster) BroadcastOrder(order models.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, order)
}

func (b *stubBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func pendingOrder() models.Order {
	return models.Order{
		OrderID:  "ORDTEST12345",
		PlanName: "Premium",
		Amount:   1499,
		Name:     "Rahul K",
		Email:    "rahul@example.com",
		Status:   models.OrderStatusPending,
	}
}

func TestApproveOrderTransitionsAndNotifiesOnce(t *testing.T) {
	store := &stubOrderStore{order: pendingOrder()}
	notifier := &stubNotifier{}
	broadcaster := &stubBroadcaster{}
	svc := NewApprovalService(store, notifier, broadcaster)

	meta := PaymentMeta{PaymentID: "1504004832", PaymentStatus: "SUCCESS", PaymentMode: "upi"}
	order, err := svc.ApproveOrder("ORDTEST12345", meta, 1499, true, "webhook")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order == nil {
		t.Fatal("first confirmation must win the transition")
	}
	if order.Status != models.OrderStatusApproved {
		t.Fatalf("expected approved order, got %q", order.Status)
	}
	if order.CashfreePaymentID == nil || *order.CashfreePaymentID != "1504004832" {
		t.Fatal("payment metadata not stamped on the order")
	}
	if notifier.count() != 1 || broadcaster.count() != 1 {
		t.Fatalf("expected exactly one notification and one broadcast, got %d/%d",
			notifier.count(), broadcaster.count())
	}
}

func TestApproveOrderSecondChannelIsNoOp(t *testing.T) {
	store := &stubOrderStore{order: pendingOrder()}
	notifier := &stubNotifier{}
	broadcaster := &stubBroadcaster{}
	svc := NewApprovalService(store, notifier, broadcaster)

	if _, err := svc.ApproveOrder("ORDTEST12345", PaymentMeta{}, 1499, true, "webhook"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The client status poll lands after the webhook already won.
	order, err := svc.ApproveOrder("ORDTEST12345", PaymentMeta{}, 1499, true, "verify")
	if err != nil {
		t.Fatalf("losing the race must not be an error: %v", err)
	}
	if order != nil {
		t.Fatal("second confirmation must not report a transition")
	}
	if notifier.count() != 1 {
		t.Fatalf("approval email dispatched %d times, want 1", notifier.count())
	}
	if broadcaster.count() != 1 {
		t.Fatalf("broadcast fired %d times, want 1", broadcaster.count())
	}
}

func TestApproveOrderConcurrentConfirmations(t *testing.T) {
	store := &stubOrderStore{order: pendingOrder()}
	notifier := &stubNotifier{}
	broadcaster := &stubBroadcaster{}
	svc := NewApprovalService(store, notifier, broadcaster)

	const callers = 50
	var wg sync.WaitGroup
	winners := make(chan *models.Order, callers)
	errs := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order, err := svc.ApproveOrder("ORDTEST12345", PaymentMeta{}, 1499, true, "webhook")
			if err != nil {
				errs <- err
				return
			}
			if order != nil {
				winners <- order
			}
		}()
	}
	wg.Wait()
	close(winners)
	close(errs)

	for err := range errs {
		t.Fatalf("unexpected error from concurrent confirmation: %v", err)
	}
	won := 0
	for range winners {
		won++
	}
	if won != 1 {
		t.Fatalf("expected exactly one winner, got %d", won)
	}
	if notifier.count() != 1 {
		t.Fatalf("approval email dispatched %d times, want 1", notifier.count())
	}
	if broadcaster.count() != 1 {
		t.Fatalf("broadcast fired %d times, want 1", broadcaster.count())
	}
}

func TestApproveOrderRefusesAmountMismatch(t *testing.T) {
	store := &stubOrderStore{order: pendingOrder()}
	notifier := &stubNotifier{}
	broadcaster := &stubBroadcaster{}
	svc := NewApprovalService(store, notifier, broadcaster)

	_, err := svc.ApproveOrder("ORDTEST12345", PaymentMeta{}, 1999, true, "webhook")
	if !errors.Is(err, ErrAmountMismatch) {
		t.Fatalf("expected ErrAmountMismatch, got %v", err)
	}
	if store.order.Status != models.OrderStatusPending {
		t.Fatalf("mismatched payment must not change order state, got %q", store.order.Status)
	}
	if notifier.count() != 0 || broadcaster.count() != 0 {
		t.Fatal("mismatched payment must not fire side effects")
	}
}

func TestApproveOrderToleratesFloatNoise(t *testing.T) {
	store := &stubOrderStore{order: pendingOrder()}
	svc := NewApprovalService(store, &stubNotifier{}, &stubBroadcaster{})

	order, err := svc.ApproveOrder("ORDTEST12345", PaymentMeta{}, 1499.004, true, "webhook")
	if err != nil {
		t.Fatalf("sub-paisa difference must be tolerated: %v", err)
	}
	if order == nil {
		t.Fatal("expected transition to proceed")
	}
}

func TestApproveOrderUnknownAmountSkipsCheck(t *testing.T) {
	store := &stubOrderStore{order: pendingOrder()}
	svc := NewApprovalService(store, &stubNotifier{}, &stubBroadcaster{})

	order, err := svc.ApproveOrder("ORDTEST12345", PaymentMeta{}, 0, false, "sweep")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order == nil {
		t.Fatal("expected transition when no amount is available to check")
	}
}

func TestApproveOrderPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection refused")

	svc := NewApprovalService(&stubOrderStore{findErr: boom}, &stubNotifier{}, &stubBroadcaster{})
	if _, err := svc.ApproveOrder("ORDTEST12345", PaymentMeta{}, 0, false, "webhook"); !errors.Is(err, boom) {
		t.Fatalf("expected lookup error to propagate, got %v", err)
	}

	notifier := &stubNotifier{}
	svc = NewApprovalService(&stubOrderStore{order: pendingOrder(), cessErr: boom}, notifier, &stubBroadcaster{})
	if _, err := svc.ApproveOrder("ORDTEST12345", PaymentMeta{}, 0, false, "webhook"); !errors.Is(err, boom) {
		t.Fatalf("expected update error to propagate, got %v", err)
	}
	if notifier.count() != 0 {
		t.Fatal("failed transition must not fire side effects")
	}
}

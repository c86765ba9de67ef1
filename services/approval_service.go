package services

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/comeoffice/rank_booking/database"
	"github.com/comeoffice/rank_booking/metrics"
	"github.com/comeoffice/rank_booking/models"
	"github.com/comeoffice/rank_booking/notifications"
	"github.com/comeoffice/rank_booking/websocket"
)

var ErrAmountMismatch = errors.New("paid amount does not match order amount")
var ErrOrderNotFound = errors.New("order not found")

// Captured amounts can differ from the stored numeric(10,2) by float noise.
const amountTolerance = 0.01

// PaymentMeta carries the gateway fields stamped on the order on approval.
type PaymentMeta struct {
	PaymentID     string
	PaymentStatus string
	PaymentMode   string
}

type OrderStore interface {
	FindByOrderID(orderID string) (*models.Order, error)
	// Returns (nil, nil) when another caller already won the transition.
	ApproveIfNotApproved(orderID string, meta PaymentMeta) (*models.Order, error)
}

type ApprovalNotifier interface {
	DispatchApproval(order models.Order)
}

type OrderBroadcaster interface {
	BroadcastOrder(order models.Order)
}

// ApprovalService reconciles payment confirmations from every channel into
// at most one approval transition per order.
type ApprovalService struct {
	store       OrderStore
	notifier    ApprovalNotifier
	broadcaster OrderBroadcaster
}

func NewApprovalService(store OrderStore, notifier ApprovalNotifier, broadcaster OrderBroadcaster) *ApprovalService {
	return &ApprovalService{store: store, notifier: notifier, broadcaster: broadcaster}
}

var Approval *ApprovalService

func InitApprovalService() {
	Approval = NewApprovalService(
		&GormOrderStore{DB: database.DB},
		asyncNotifier{},
		hubBroadcaster{},
	)
}

// ApproveOrder is the single entry point for every payment confirmation.
// When amountKnown is true the observed amount is checked against the order
// before any state changes. The returned order is non-nil only for the
// caller that performed the transition; (nil, nil) means another channel
// got there first.
func (s *ApprovalService) ApproveOrder(orderID string, meta PaymentMeta, observedAmount float64, amountKnown bool, source string) (*models.Order, error) {
	order, err := s.store.FindByOrderID(orderID)
	if err != nil {
		metrics.RecordApproval(source, "error")
		return nil, err
	}

	if amountKnown && math.Abs(observedAmount-order.Amount) > amountTolerance {
		log.Printf("🔥 Amount mismatch for order %s via %s: expected %.2f, gateway reported %.2f",
			orderID, source, order.Amount, observedAmount)
		metrics.RecordAmountMismatch()
		metrics.RecordApproval(source, "mismatch")
		return nil, fmt.Errorf("%w: expected %.2f, got %.2f", ErrAmountMismatch, order.Amount, observedAmount)
	}

	if order.Status == models.OrderStatusApproved {
		metrics.RecordApproval(source, "duplicate")
		return nil, nil
	}

	updated, err := s.store.ApproveIfNotApproved(orderID, meta)
	if err != nil {
		metrics.RecordApproval(source, "error")
		return nil, err
	}
	if updated == nil {
		// Lost the race to another channel. Not an error: the payment was
		// handled, just not by us.
		metrics.RecordApproval(source, "duplicate")
		return nil, nil
	}

	log.Printf("✅ Order %s approved via %s", orderID, source)
	metrics.RecordApproval(source, "approved")

	s.notifier.DispatchApproval(*updated)
	s.broadcaster.BroadcastOrder(*updated)
	return updated, nil
}

// DispatchApprovalEmail renders the certificate and sends the approval mail.
// Failures are logged and swallowed; a broken email provider never rolls
// back an approval.
func DispatchApprovalEmail(order models.Order) {
	settings, err := models.GetSettings(database.DB)
	if err != nil {
		log.Printf("🔥 Failed to load settings for approval email (order %s): %v", order.OrderID, err)
		return
	}

	pdf, err := GenerateGuaranteeCertificate(order, settings)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate for order %s, sending email without it: %v", order.OrderID, err)
		pdf = nil
	}

	notifications.SendOrderApprovedEmail(order, settings, pdf)
}

type asyncNotifier struct{}

func (asyncNotifier) DispatchApproval(order models.Order) {
	go DispatchApprovalEmail(order)
}

type hubBroadcaster struct{}

func (hubBroadcaster) BroadcastOrder(order models.Order) {
	websocket.BroadcastOrder(order)
}

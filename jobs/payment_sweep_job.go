package jobs

import (
	"log"
	"strings"
	"time"

	"github.com/comeoffice/rank_booking/database"
	"github.com/comeoffice/rank_booking/models"
	"github.com/comeoffice/rank_booking/payments"
	"github.com/comeoffice/rank_booking/services"
)

const sweepBatchSize = 25

// SweepAwaitingPayments reconciles gateway orders whose webhook and client
// poll both went missing: the customer paid, closed the tab, and the
// confirmation never reached us. Orders younger than 5 minutes are left
// alone to give the webhook a chance; older than 24 hours they are presumed
// abandoned.
func SweepAwaitingPayments() {
	if payments.Client == nil {
		return
	}

	cutoffNew := time.Now().Add(-5 * time.Minute)
	cutoffOld := time.Now().Add(-24 * time.Hour)

	var orders []models.Order
	err := database.DB.
		Where("status = ? AND payment_method = ?", models.OrderStatusAwaitingPayment, models.PaymentMethodCashfree).
		Where("created_at BETWEEN ? AND ?", cutoffOld, cutoffNew).
		Order("created_at ASC").
		Limit(sweepBatchSize).
		Find(&orders).Error
	if err != nil {
		log.Printf("🔥 Payment sweep query failed: %v", err)
		return
	}
	if len(orders) == 0 {
		return
	}

	log.Printf("Sweeping %d awaiting-payment orders", len(orders))
	for _, order := range orders {
		if strings.HasPrefix(order.OrderID, "LINK") {
			sweepLinkOrder(order)
		} else {
			sweepSessionOrder(order)
		}
	}
}

func sweepSessionOrder(order models.Order) {
	paymentList, err := payments.Client.FetchOrderPayments(order.OrderID)
	if err != nil {
		log.Printf("⚠️ Sweep could not fetch payments for %s: %v", order.OrderID, err)
		return
	}

	for _, p := range paymentList {
		if p.PaymentStatus != "SUCCESS" {
			continue
		}
		meta := services.PaymentMeta{
			PaymentID:     p.CFPaymentID.String(),
			PaymentStatus: p.PaymentStatus,
			PaymentMode:   p.PaymentGroup,
		}
		if _, err := services.Approval.ApproveOrder(order.OrderID, meta, p.PaymentAmount, true, "sweep"); err != nil {
			log.Printf("🔥 Sweep could not approve %s: %v", order.OrderID, err)
		}
		return
	}
}

func sweepLinkOrder(order models.Order) {
	link, err := payments.Client.FetchLinkStatus(order.OrderID)
	if err != nil {
		log.Printf("⚠️ Sweep could not fetch link status for %s: %v", order.OrderID, err)
		return
	}
	if link.LinkStatus != "PAID" {
		return
	}

	meta := services.PaymentMeta{PaymentStatus: "SUCCESS", PaymentMode: "link"}
	if linkOrders, err := payments.Client.FetchLinkOrders(order.OrderID); err == nil {
		for _, lo := range linkOrders {
			if lo.OrderStatus == "PAID" {
				meta.PaymentID = lo.CFOrderID.String()
				break
			}
		}
	}

	if _, err := services.Approval.ApproveOrder(order.OrderID, meta, order.Amount, true, "sweep"); err != nil {
		log.Printf("🔥 Sweep could not approve link order %s: %v", order.OrderID, err)
	}
}

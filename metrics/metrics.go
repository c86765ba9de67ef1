package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Orders created, by payment method",
		},
		[]string{"payment_method"},
	)

	WebhooksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cashfree_webhooks_total",
			Help: "Inbound Cashfree webhooks, by processing result",
		},
		[]string{"result"},
	)

	ApprovalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_approvals_total",
			Help: "Approval attempts through the reconciliation core, by trigger source and outcome",
		},
		[]string{"source", "outcome"},
	)

	AmountMismatchTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_amount_mismatch_total",
			Help: "Approval attempts refused because the gateway-reported amount differed from the order amount",
		},
	)

	EmailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_emails_total",
			Help: "Notification emails, by result",
		},
		[]string{"result"},
	)
)

func RecordOrderCreated(paymentMethod string) {
	OrdersCreatedTotal.WithLabelValues(paymentMethod).Inc()
}

func RecordWebhook(result string) {
	WebhooksTotal.WithLabelValues(result).Inc()
}

// RecordApproval counts one pass through the approval transition. Outcome is
// "approved", "duplicate", "mismatch" or "error".
func RecordApproval(source, outcome string) {
	ApprovalsTotal.WithLabelValues(source, outcome).Inc()
}

func RecordAmountMismatch() {
	AmountMismatchTotal.Inc()
}

func RecordEmail(result string) {
	EmailsTotal.WithLabelValues(result).Inc()
}

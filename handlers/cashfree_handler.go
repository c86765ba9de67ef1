package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	config "github.com/comeoffice/rank_booking/configs"
	"github.com/comeoffice/rank_booking/database"
	"github.com/comeoffice/rank_booking/metrics"
	"github.com/comeoffice/rank_booking/models"
	"github.com/comeoffice/rank_booking/payments"
	"github.com/comeoffice/rank_booking/services"
	"github.com/comeoffice/rank_booking/utils"
	"github.com/comeoffice/rank_booking/websocket"
)

type createCashfreeOrderInput struct {
	PlanID   string `json:"planId"`
	RankID   string `json:"rankId"`
	ItemType string `json:"itemType"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// CreateCashfreeOrder opens a hosted-checkout session. The gateway call goes
// first: if Cashfree refuses, no local order is written.
func CreateCashfreeOrder(c *fiber.Ctx) error {
	if payments.Client == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Online payments are not available right now"})
	}

	var input createCashfreeOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name and phone are required"})
	}
	if !phonePattern.MatchString(input.Phone) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid phone number"})
	}

	order := models.Order{
		OrderID:       utils.GenerateOrderID(),
		Name:          strings.TrimSpace(input.Name),
		Phone:         input.Phone,
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		PaymentMethod: models.PaymentMethodCashfree,
		Status:        models.OrderStatusAwaitingPayment,
	}
	if err := resolveOrderItem(&order, input.ItemType, input.PlanID, input.RankID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	customer := payments.CustomerDetails{
		CustomerID:    "cust_" + order.Phone,
		CustomerName:  order.Name,
		CustomerEmail: order.Email,
		CustomerPhone: order.Phone,
	}
	returnURL := config.Config("FRONTEND_URL") + "/payment/status?order_id=" + order.OrderID

	cfOrder, err := payments.Client.CreateOrder(order.OrderID, order.Amount, customer, returnURL)
	if err != nil {
		log.Printf("🔥 Cashfree order creation failed for %s: %v", order.OrderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not start payment. Please try again."})
	}

	order.CashfreeOrderID = &cfOrder.CFOrderID
	if err := database.DB.Create(&order).Error; err != nil {
		log.Printf("🔥 Failed to persist Cashfree order %s: %v", order.OrderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create order"})
	}

	metrics.RecordOrderCreated(models.PaymentMethodCashfree)
	websocket.BroadcastOrder(order)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"orderId":          order.OrderID,
		"paymentSessionId": cfOrder.PaymentSessionID,
	})
}

type webhookPayload struct {
	Type string `json:"type"`
	Data struct {
		Order *struct {
			OrderID     string  `json:"order_id"`
			OrderAmount float64 `json:"order_amount"`
		} `json:"order"`
		Payment *struct {
			CFPaymentID   interface{} `json:"cf_payment_id"`
			PaymentStatus string      `json:"payment_status"`
			PaymentAmount float64     `json:"payment_amount"`
			PaymentGroup  string      `json:"payment_group"`
		} `json:"payment"`
	} `json:"data"`
}

// HandleCashfreeWebhook is the gateway's server-to-server confirmation. The
// signature is computed over the exact raw bytes, so nothing may touch the
// body before verification.
func HandleCashfreeWebhook(c *fiber.Ctx) error {
	if payments.Client == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Gateway not configured"})
	}

	rawBody := c.Body()
	timestamp := c.Get("x-webhook-timestamp")
	signature := c.Get("x-webhook-signature")

	switch err := payments.Client.CheckWebhookAuth(timestamp, rawBody, signature); {
	case errors.Is(err, payments.ErrWebhookUnverifiable):
		log.Println("🔥 Webhook received but no webhook secret is configured")
		metrics.RecordWebhook("unverifiable")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Webhook verification not configured"})
	case errors.Is(err, payments.ErrWebhookBadSignature):
		log.Println("🔥 Webhook signature verification failed")
		metrics.RecordWebhook("bad_signature")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid signature"})
	}

	var payload webhookPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		metrics.RecordWebhook("malformed")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Malformed payload"})
	}
	if payload.Data.Order == nil || payload.Data.Order.OrderID == "" {
		metrics.RecordWebhook("malformed")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Malformed payload"})
	}

	if payload.Type != "PAYMENT_SUCCESS_WEBHOOK" {
		log.Printf("Ignoring webhook type %s for order %s", payload.Type, payload.Data.Order.OrderID)
		metrics.RecordWebhook("ignored")
		return c.JSON(fiber.Map{"message": "Ignored"})
	}

	meta := services.PaymentMeta{}
	amountKnown := false
	var amount float64
	if p := payload.Data.Payment; p != nil {
		meta.PaymentID = stringify(p.CFPaymentID)
		meta.PaymentStatus = p.PaymentStatus
		meta.PaymentMode = p.PaymentGroup
		if p.PaymentAmount > 0 {
			amount = p.PaymentAmount
			amountKnown = true
		}
	}
	if !amountKnown && payload.Data.Order.OrderAmount > 0 {
		amount = payload.Data.Order.OrderAmount
		amountKnown = true
	}

	_, err := services.Approval.ApproveOrder(payload.Data.Order.OrderID, meta, amount, amountKnown, "webhook")
	if err != nil {
		if errors.Is(err, services.ErrAmountMismatch) {
			metrics.RecordWebhook("amount_mismatch")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Amount mismatch"})
		}
		if errors.Is(err, services.ErrOrderNotFound) {
			metrics.RecordWebhook("unknown_order")
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		log.Printf("🔥 Webhook processing failed for order %s: %v", payload.Data.Order.OrderID, err)
		metrics.RecordWebhook("error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not process webhook"})
	}

	metrics.RecordWebhook("ok")
	return c.JSON(fiber.Map{"message": "OK"})
}

// VerifyPayment is the client-side status poll after returning from hosted
// checkout. It can race the webhook; the reconciliation core makes the race
// harmless.
func VerifyPayment(c *fiber.Ctx) error {
	orderID := c.Params("orderId")

	var order models.Order
	if err := database.DB.Where("order_id = ?", orderID).First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	if order.Status == models.OrderStatusApproved {
		return c.JSON(fiber.Map{"success": true, "status": order.Status, "order": order})
	}
	if payments.Client == nil || order.PaymentMethod != models.PaymentMethodCashfree {
		return c.JSON(fiber.Map{"success": false, "status": order.Status})
	}

	paymentList, err := payments.Client.FetchOrderPayments(order.OrderID)
	if err != nil {
		log.Printf("⚠️ Could not fetch payments for order %s: %v", order.OrderID, err)
		return c.JSON(fiber.Map{"success": false, "status": order.Status, "message": "Payment is being processed. Please check back shortly."})
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
		updated, err := services.Approval.ApproveOrder(order.OrderID, meta, p.PaymentAmount, true, "verify")
		if err != nil {
			if errors.Is(err, services.ErrAmountMismatch) {
				return c.JSON(fiber.Map{"success": false, "status": order.Status, "message": "Payment verification failed. Please contact support."})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not verify payment"})
		}
		if updated == nil {
			// Webhook beat us to it; reload and report the approved order.
			database.DB.Where("order_id = ?", order.OrderID).First(&order)
			return c.JSON(fiber.Map{"success": true, "status": order.Status, "order": order})
		}
		return c.JSON(fiber.Map{"success": true, "status": updated.Status, "order": updated})
	}

	return c.JSON(fiber.Map{"success": false, "status": order.Status, "message": "Payment is being processed. Please check back shortly."})
}

type createPaymentLinkInput struct {
	PlanID   string `json:"planId"`
	RankID   string `json:"rankId"`
	ItemType string `json:"itemType"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	// Days until the link expires; defaults to 7.
	ExpiryDays int `json:"expiryDays"`
}

// CreatePaymentLink lets an admin issue a shareable Cashfree payment link,
// for customers closing the deal over WhatsApp instead of the website.
func CreatePaymentLink(c *fiber.Ctx) error {
	if payments.Client == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Online payments are not available right now"})
	}

	var input createPaymentLinkInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name and phone are required"})
	}

	order := models.Order{
		OrderID:       utils.GenerateLinkID(),
		Name:          strings.TrimSpace(input.Name),
		Phone:         input.Phone,
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		PaymentMethod: models.PaymentMethodCashfree,
		Status:        models.OrderStatusAwaitingPayment,
	}
	if err := resolveOrderItem(&order, input.ItemType, input.PlanID, input.RankID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	expiryDays := input.ExpiryDays
	if expiryDays <= 0 {
		expiryDays = 7
	}
	expiry := time.Now().AddDate(0, 0, expiryDays)

	customer := payments.CustomerDetails{
		CustomerID:    "cust_" + order.Phone,
		CustomerName:  order.Name,
		CustomerEmail: order.Email,
		CustomerPhone: order.Phone,
	}
	returnURL := config.Config("FRONTEND_URL") + "/payment/status?order_id=" + order.OrderID

	link, err := payments.Client.CreatePaymentLink(order.OrderID, order.Amount, "Payment for "+order.PlanName, customer, returnURL, &expiry)
	if err != nil {
		log.Printf("🔥 Cashfree link creation failed for %s: %v", order.OrderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create payment link"})
	}

	if err := database.DB.Create(&order).Error; err != nil {
		log.Printf("🔥 Failed to persist link order %s: %v", order.OrderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create order"})
	}

	metrics.RecordOrderCreated(models.PaymentMethodCashfree)
	websocket.BroadcastOrder(order)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"orderId": order.OrderID,
		"linkUrl": link.LinkURL,
	})
}

// VerifyPaymentLink polls a payment link's status. Link payments settle into
// gateway-side orders hanging off the link, so confirmation goes through the
// link's order list rather than the order's payment list.
func VerifyPaymentLink(c *fiber.Ctx) error {
	linkID := c.Params("linkId")

	var order models.Order
	if err := database.DB.Where("order_id = ?", linkID).First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	if order.Status == models.OrderStatusApproved {
		return c.JSON(fiber.Map{"success": true, "status": order.Status, "order": order})
	}
	if payments.Client == nil {
		return c.JSON(fiber.Map{"success": false, "status": order.Status})
	}

	link, err := payments.Client.FetchLinkStatus(linkID)
	if err != nil {
		log.Printf("⚠️ Could not fetch link status for %s: %v", linkID, err)
		return c.JSON(fiber.Map{"success": false, "status": order.Status, "message": "Payment is being processed. Please check back shortly."})
	}
	if link.LinkStatus != "PAID" {
		return c.JSON(fiber.Map{"success": false, "status": order.Status, "linkStatus": link.LinkStatus})
	}

	linkOrders, err := payments.Client.FetchLinkOrders(linkID)
	if err != nil {
		log.Printf("⚠️ Could not fetch link orders for %s: %v", linkID, err)
		return c.JSON(fiber.Map{"success": false, "status": order.Status, "message": "Payment is being processed. Please check back shortly."})
	}

	meta := services.PaymentMeta{PaymentStatus: "SUCCESS", PaymentMode: "link"}
	for _, lo := range linkOrders {
		if lo.OrderStatus == "PAID" {
			meta.PaymentID = lo.CFOrderID.String()
			break
		}
	}

	// The link API reports its own order amounts, which can include partial
	// payments; the PAID link status already asserts the full amount was
	// collected, so the stored amount is passed through.
	updated, err := services.Approval.ApproveOrder(order.OrderID, meta, order.Amount, true, "link")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not verify payment"})
	}
	if updated == nil {
		database.DB.Where("order_id = ?", order.OrderID).First(&order)
		return c.JSON(fiber.Map{"success": true, "status": order.Status, "order": order})
	}
	return c.JSON(fiber.Map{"success": true, "status": updated.Status, "order": updated})
}

// stringify normalizes cf_payment_id, which arrives as a string on current
// API versions but as a bare number on older ones.
func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

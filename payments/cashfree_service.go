package payments

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	config "github.com/comeoffice/rank_booking/configs"
)

const (
	sandboxBaseURL    = "https://sandbox.cashfree.com/pg"
	productionBaseURL = "https://api.cashfree.com/pg"
	apiVersion        = "2023-08-01"
)

// CashfreeService wraps the Cashfree Payment Gateway REST API. The gateway is
// the source of truth for whether money actually moved; everything here either
// opens a payment context upstream or asks the gateway what happened.
type CashfreeService struct {
	BaseURL       string
	AppID         string
	SecretKey     string
	WebhookSecret string
	Env           string

	httpClient *http.Client
}

var Client *CashfreeService

func InitCashfree() {
	env := config.Config("CASHFREE_ENV")
	baseURL := sandboxBaseURL
	if env == "production" {
		baseURL = productionBaseURL
	}

	Client = &CashfreeService{
		BaseURL:       baseURL,
		AppID:         config.Config("CASHFREE_APP_ID"),
		SecretKey:     config.Config("CASHFREE_SECRET_KEY"),
		WebhookSecret: config.Config("CASHFREE_WEBHOOK_SECRET"),
		Env:           env,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
	}

	if Client.AppID == "" || Client.SecretKey == "" {
		log.Println("⚠️ Cashfree credentials not configured. Gateway payments will fail.")
		return
	}
	log.Printf("✅ Cashfree client initialized (%s)", baseURL)
}

func (s *CashfreeService) IsProduction() bool {
	return s.Env == "production"
}

type CustomerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type createOrderRequest struct {
	OrderID         string          `json:"order_id"`
	OrderAmount     float64         `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
	CustomerDetails CustomerDetails `json:"customer_details"`
	OrderMeta       struct {
		ReturnURL string `json:"return_url"`
	} `json:"order_meta"`
}

type GatewayOrder struct {
	CFOrderID        string `json:"cf_order_id"`
	OrderID          string `json:"order_id"`
	OrderStatus      string `json:"order_status"`
	PaymentSessionID string `json:"payment_session_id"`
}

// CreateOrder opens a gateway-side payment session. The caller must not
// persist a local order unless this succeeds with a usable session handle.
func (s *CashfreeService) CreateOrder(orderID string, amount float64, customer CustomerDetails, returnURL string) (*GatewayOrder, error) {
	req := createOrderRequest{
		OrderID:         orderID,
		OrderAmount:     amount,
		OrderCurrency:   "INR",
		CustomerDetails: customer,
	}
	req.OrderMeta.ReturnURL = returnURL + "?order_id={order_id}"

	var order GatewayOrder
	if err := s.do("POST", "/orders", req, &order); err != nil {
		return nil, err
	}
	if order.PaymentSessionID == "" {
		return nil, fmt.Errorf("no payment_session_id in Cashfree response for order %s", orderID)
	}
	return &order, nil
}

type PaymentDetail struct {
	CFPaymentID   json.Number `json:"cf_payment_id"`
	PaymentStatus string      `json:"payment_status"`
	PaymentAmount float64     `json:"payment_amount"`
	PaymentGroup  string      `json:"payment_group"`
}

// FetchOrderPayments returns the payments recorded against a gateway order.
// An empty slice is the normal "not yet paid" result, not an error.
func (s *CashfreeService) FetchOrderPayments(orderID string) ([]PaymentDetail, error) {
	var payments []PaymentDetail
	if err := s.do("GET", "/orders/"+orderID+"/payments", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

type createLinkRequest struct {
	LinkID          string          `json:"link_id"`
	LinkAmount      float64         `json:"link_amount"`
	LinkCurrency    string          `json:"link_currency"`
	LinkPurpose     string          `json:"link_purpose"`
	CustomerDetails CustomerDetails `json:"customer_details"`
	LinkExpiryTime  string          `json:"link_expiry_time,omitempty"`
	LinkMeta        struct {
		ReturnURL string `json:"return_url"`
	} `json:"link_meta"`
}

type PaymentLink struct {
	LinkID         string `json:"link_id"`
	LinkURL        string `json:"link_url"`
	LinkStatus     string `json:"link_status"`
	LinkExpiryTime string `json:"link_expiry_time"`
}

// CreatePaymentLink opens a shareable hosted payment link. Same failure
// contract as CreateOrder: no usable link URL means the call failed.
func (s *CashfreeService) CreatePaymentLink(linkID string, amount float64, purpose string, customer CustomerDetails, returnURL string, expiry *time.Time) (*PaymentLink, error) {
	req := createLinkRequest{
		LinkID:          linkID,
		LinkAmount:      amount,
		LinkCurrency:    "INR",
		LinkPurpose:     purpose,
		CustomerDetails: customer,
	}
	req.LinkMeta.ReturnURL = returnURL
	if expiry != nil {
		req.LinkExpiryTime = expiry.Format(time.RFC3339)
	}

	var link PaymentLink
	if err := s.do("POST", "/links", req, &link); err != nil {
		return nil, err
	}
	if link.LinkURL == "" {
		return nil, fmt.Errorf("no link_url in Cashfree response for link %s", linkID)
	}
	return &link, nil
}

// FetchLinkStatus queries the current state of a payment link.
func (s *CashfreeService) FetchLinkStatus(linkID string) (*PaymentLink, error) {
	var link PaymentLink
	if err := s.do("GET", "/links/"+linkID, nil, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

type LinkOrder struct {
	CFOrderID   json.Number `json:"cf_order_id"`
	OrderID     string      `json:"order_id"`
	OrderStatus string      `json:"order_status"`
	OrderAmount float64     `json:"order_amount"`
}

// FetchLinkOrders returns the gateway orders created under a payment link.
func (s *CashfreeService) FetchLinkOrders(linkID string) ([]LinkOrder, error) {
	var orders []LinkOrder
	if err := s.do("GET", "/links/"+linkID+"/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

var (
	// ErrWebhookUnverifiable means production traffic arrived but no webhook
	// secret is configured, so nothing can be trusted.
	ErrWebhookUnverifiable = errors.New("webhook secret not configured")
	// ErrWebhookBadSignature means the signature check ran and failed.
	ErrWebhookBadSignature = errors.New("webhook signature verification failed")
)

// CheckWebhookAuth applies the environment's verification policy: production
// requires a configured secret and a valid signature; sandbox verifies only
// when both a secret and a signature are present.
func (s *CashfreeService) CheckWebhookAuth(timestamp string, rawBody []byte, signature string) error {
	if s.IsProduction() {
		if s.WebhookSecret == "" {
			return ErrWebhookUnverifiable
		}
		if !s.VerifyWebhookSignature(timestamp, rawBody, signature) {
			return ErrWebhookBadSignature
		}
		return nil
	}
	if s.WebhookSecret != "" && signature != "" && !s.VerifyWebhookSignature(timestamp, rawBody, signature) {
		return ErrWebhookBadSignature
	}
	return nil
}

// VerifyWebhookSignature checks that an inbound webhook genuinely originated
// from Cashfree. The signature is base64(HMAC-SHA256(secret, timestamp+body))
// computed over the exact raw request bytes; re-serializing the parsed JSON
// would break verification.
func (s *CashfreeService) VerifyWebhookSignature(timestamp string, rawBody []byte, signature string) bool {
	if s.WebhookSecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(s.WebhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write(rawBody)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (s *CashfreeService) do(method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal Cashfree request: %v", err)
		}
		reqBody = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequest(method, s.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create Cashfree request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-version", apiVersion)
	req.Header.Set("x-client-id", s.AppID)
	req.Header.Set("x-client-secret", s.SecretKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("Cashfree request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Cashfree response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("Cashfree API error: %s %s returned %d: %s", method, path, resp.StatusCode, string(respBody))
		return fmt.Errorf("Cashfree API returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal Cashfree response: %v", err)
		}
	}
	return nil
}

package notifications

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	config "github.com/comeoffice/rank_booking/configs"
	"github.com/comeoffice/rank_booking/metrics"
	"github.com/comeoffice/rank_booking/models"
)

type BrevoService struct {
	APIKey      string
	SenderEmail string
	SenderName  string
}

var EmailClient *BrevoService

type Attachment struct {
	Filename string
	Content  []byte
}

type brevoAttachment struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
	Attachment  []brevoAttachment   `json:"attachment,omitempty"`
}

func InitEmailService() {
	apiKey := config.Config("BREVO_API_KEY")
	senderEmail := config.Config("EMAIL_SENDER")
	senderName := config.Config("EMAIL_SENDER_NAME")

	if apiKey == "" || senderEmail == "" {
		log.Println("⚠️ Email service not configured. Missing API key or sender email.")
		EmailClient = nil
		return
	}

	EmailClient = &BrevoService{
		APIKey:      apiKey,
		SenderEmail: senderEmail,
		SenderName:  senderName,
	}
	log.Println("✅ Email service initialized successfully.")
}

// clientFor returns the Brevo client to use for a send. Credentials stored in
// the admin settings take precedence over the env-configured client, so the
// provider key can be rotated from the dashboard without a redeploy.
func clientFor(settings models.Settings) *BrevoService {
	es := settings.EmailSettings
	if es.BrevoAPIKey != "" && es.SenderEmail != "" {
		if !es.Enabled {
			return nil
		}
		return &BrevoService{
			APIKey:      es.BrevoAPIKey,
			SenderEmail: es.SenderEmail,
			SenderName:  es.SenderName,
		}
	}
	return EmailClient
}

func (s *BrevoService) send(toEmail, toName, subject, htmlContent string, attachments []Attachment) error {
	url := "https://api.brevo.com/v3/smtp/email"

	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %s", toEmail)
	}

	recipientName := toName
	if recipientName == "" {
		recipientName = toEmail[:strings.Index(toEmail, "@")]
	}

	senderName := s.SenderName
	if senderName == "" {
		senderName = "Come Office"
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": senderName, "email": s.SenderEmail},
		To:          []map[string]string{{"email": toEmail, "name": recipientName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}
	for _, a := range attachments {
		payload.Attachment = append(payload.Attachment, brevoAttachment{
			Name:    a.Filename,
			Content: base64.StdEncoding.EncodeToString(a.Content),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %v", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.APIKey)
	req.Header.Set("content-type", "application/json")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("failed to send email via Brevo: status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendOrderPlacedEmail confirms receipt of a manual order. Best-effort: all
// failures are logged and swallowed.
func SendOrderPlacedEmail(order models.Order, settings models.Settings) {
	deliver(order, settings,
		fmt.Sprintf("Order Confirmed - %s | Come Office", order.OrderID),
		OrderPlacedHTML(order, settings), nil)
}

// SendOrderApprovedEmail sends the approval mail with the guarantee
// certificate attached. Called only by the winner of the approval transition.
func SendOrderApprovedEmail(order models.Order, settings models.Settings, pdf []byte) {
	var attachments []Attachment
	if len(pdf) > 0 {
		attachments = append(attachments, Attachment{
			Filename: fmt.Sprintf("Guarantee_Certificate_%s.pdf", order.OrderID),
			Content:  pdf,
		})
	}
	deliver(order, settings,
		"Payment Approved - Your Guarantee Certificate | Come Office",
		OrderApprovedHTML(order, settings), attachments)
}

func deliver(order models.Order, settings models.Settings, subject, html string, attachments []Attachment) {
	if order.Email == "" {
		log.Printf("No email provided for order %s, skipping send.", order.OrderID)
		return
	}

	client := clientFor(settings)
	if client == nil {
		log.Println("Email client not initialized, skipping email send.")
		metrics.RecordEmail("skipped")
		return
	}

	if err := client.send(order.Email, order.Name, subject, html, attachments); err != nil {
		log.Printf("🔥 Failed to send email for order %s: %v", order.OrderID, err)
		metrics.RecordEmail("failed")
		return
	}

	log.Printf("✅ Email sent successfully for order %s", order.OrderID)
	metrics.RecordEmail("sent")
}

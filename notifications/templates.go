package notifications

import (
	"bytes"
	"html/template"
	"log"
	"strings"
	"time"

	"github.com/comeoffice/rank_booking/models"
)

type emailData struct {
	Order          models.Order
	WhatsappNumber string
	TelegramLink   string
	Date           string
}

var orderPlacedTmpl = template.Must(template.New("orderPlaced").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Order Confirmed</title></head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f4f4f4;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width:600px;margin:0 auto;background-color:#ffffff;">
    <tr>
      <td style="background:linear-gradient(135deg,#3B82F6 0%,#1D4ED8 100%);padding:30px;text-align:center;">
        <h1 style="color:#ffffff;margin:0;font-size:28px;">Come Office</h1>
        <p style="color:#ffffff;margin:10px 0 0;font-size:16px;">Order Received</p>
      </td>
    </tr>
    <tr>
      <td style="padding:40px 30px;">
        <h2 style="color:#333333;margin:0 0 20px;text-align:center;">Thank you, {{.Order.Name}}!</h2>
        <p style="color:#666666;font-size:16px;line-height:1.6;text-align:center;">
          We have received your order and are verifying your payment. You will get a confirmation shortly.
        </p>
        <table role="presentation" width="100%" cellspacing="0" cellpadding="8" style="background-color:#eff6ff;border:2px solid #3B82F6;border-radius:8px;margin:25px 0;">
          <tr><td style="color:#666666;">Order ID:</td><td style="color:#333333;font-weight:bold;text-align:right;">{{.Order.OrderID}}</td></tr>
          <tr><td style="color:#666666;">Plan:</td><td style="color:#333333;font-weight:bold;text-align:right;">{{.Order.PlanName}}</td></tr>
          <tr><td style="color:#666666;">Amount:</td><td style="color:#333333;font-weight:bold;text-align:right;">&#8377;{{.Order.Amount}}</td></tr>
          <tr><td style="color:#666666;">Status:</td><td style="color:#d97706;font-weight:bold;text-align:right;">Pending verification</td></tr>
        </table>
        <p style="color:#666666;font-size:14px;text-align:center;">
          Questions? Reach us on WhatsApp: {{.WhatsappNumber}}
        </p>
      </td>
    </tr>
    <tr>
      <td style="background-color:#f9fafb;padding:20px 30px;text-align:center;color:#9ca3af;font-size:12px;">
        Sent on {{.Date}}
      </td>
    </tr>
  </table>
</body>
</html>`))

var orderApprovedTmpl = template.Must(template.New("orderApproved").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Payment Approved</title></head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f4f4f4;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width:600px;margin:0 auto;background-color:#ffffff;">
    <tr>
      <td style="background:linear-gradient(135deg,#10B981 0%,#059669 100%);padding:30px;text-align:center;">
        <h1 style="color:#ffffff;margin:0;font-size:28px;">Come Office</h1>
        <p style="color:#ffffff;margin:10px 0 0;font-size:16px;">Payment Approved!</p>
      </td>
    </tr>
    <tr>
      <td style="padding:40px 30px;">
        <h2 style="color:#333333;margin:0 0 20px;text-align:center;">Congratulations, {{.Order.Name}}!</h2>
        <p style="color:#666666;font-size:16px;line-height:1.6;text-align:center;">
          Your payment has been verified and approved. Your guarantee certificate is attached to this email.
        </p>
        <table role="presentation" width="100%" cellspacing="0" cellpadding="8" style="background-color:#f0fdf4;border:2px solid #10B981;border-radius:8px;margin:25px 0;">
          <tr><td style="color:#666666;">Order ID:</td><td style="color:#333333;font-weight:bold;text-align:right;">{{.Order.OrderID}}</td></tr>
          <tr><td style="color:#666666;">Plan:</td><td style="color:#333333;font-weight:bold;text-align:right;">{{.Order.PlanName}}</td></tr>
          <tr><td style="color:#666666;">Amount:</td><td style="color:#333333;font-weight:bold;text-align:right;">&#8377;{{.Order.Amount}}</td></tr>
          <tr><td style="color:#666666;">Status:</td><td style="color:#059669;font-weight:bold;text-align:right;">Approved</td></tr>
        </table>
        {{if .TelegramLink}}
        <p style="text-align:center;margin:25px 0;">
          <a href="{{.TelegramLink}}" style="background-color:#10B981;color:#ffffff;padding:12px 30px;border-radius:6px;text-decoration:none;font-weight:bold;">Join Telegram</a>
        </p>
        {{end}}
        <p style="color:#666666;font-size:14px;text-align:center;">
          Questions? Reach us on WhatsApp: {{.WhatsappNumber}}
        </p>
      </td>
    </tr>
    <tr>
      <td style="background-color:#f9fafb;padding:20px 30px;text-align:center;color:#9ca3af;font-size:12px;">
        Sent on {{.Date}}
      </td>
    </tr>
  </table>
</body>
</html>`))

func renderEmail(tmpl *template.Template, order models.Order, settings models.Settings) string {
	data := emailData{
		Order:          order,
		WhatsappNumber: strings.TrimPrefix(settings.WhatsappNumber, "+91"),
		TelegramLink:   settings.TelegramLink,
		Date:           time.Now().Format("January 2, 2006"),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("🔥 Failed to render %s template: %v", tmpl.Name(), err)
		return ""
	}
	return buf.String()
}

func OrderPlacedHTML(order models.Order, settings models.Settings) string {
	return renderEmail(orderPlacedTmpl, order, settings)
}

func OrderApprovedHTML(order models.Order, settings models.Settings) string {
	return renderEmail(orderApprovedTmpl, order, settings)
}

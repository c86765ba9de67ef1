package notifications

import (
	"strings"
	"testing"

	"github.com/comeoffice/rank_booking/models"
)

func TestOrderApprovedHTML(t *testing.T) {
	order := models.Order{
		OrderID:  "ORDTEST12345",
		Name:     "Rahul K",
		PlanName: "Premium",
		Amount:   2999,
		Email:    "rahul@example.com",
	}
	settings := models.Settings{
		WhatsappNumber: "+917041508202",
		TelegramLink:   "https://t.me/comeoffice",
	}

	html := OrderApprovedHTML(order, settings)
	for _, want := range []string{"ORDTEST12345", "Rahul K", "Premium", "2999", "7041508202", "https://t.me/comeoffice"} {
		if !strings.Contains(html, want) {
			t.Errorf("approved email missing %q", want)
		}
	}
	if strings.Contains(html, "+917041508202") {
		t.Error("whatsapp number should be shown without the +91 prefix")
	}
}

func TestOrderApprovedHTMLWithoutTelegram(t *testing.T) {
	html := OrderApprovedHTML(models.Order{OrderID: "ORDX", Name: "A"}, models.Settings{})
	if strings.Contains(html, "Join Telegram") {
		t.Error("telegram button rendered without a configured link")
	}
}

func TestOrderPlacedHTMLEscapesName(t *testing.T) {
	order := models.Order{
		OrderID: "ORDTEST12345",
		Name:    `<script>alert("x")</script>`,
	}
	html := OrderPlacedHTML(order, models.Settings{})
	if strings.Contains(html, "<script>") {
		t.Error("customer name must be HTML-escaped")
	}
	if !strings.Contains(html, "ORDTEST12345") {
		t.Error("placed email missing order id")
	}
}

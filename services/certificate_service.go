package services

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/comeoffice/rank_booking/models"
)

// GenerateGuaranteeCertificate renders the guarantee letter for an approved
// order and prints it to PDF through headless Chrome.
func GenerateGuaranteeCertificate(order models.Order, settings models.Settings) ([]byte, error) {
	html, err := renderCertificateHTML(order, settings)
	if err != nil {
		return nil, err
	}
	return printToPDF(html)
}

func renderCertificateHTML(order models.Order, settings models.Settings) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		Order          models.Order
		WhatsappNumber string
		TelegramLink   string
		IssueDate      string
	}{
		Order:          order,
		WhatsappNumber: settings.WhatsappNumber,
		TelegramLink:   settings.TelegramLink,
		IssueDate:      time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func printToPDF(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, 30*time.Second)
	defer cancelTimeout()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

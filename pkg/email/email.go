package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/codify-lk/receipts_backend/internal/core/domain"
	portssvc "github.com/codify-lk/receipts_backend/internal/core/ports/services"
	"github.com/codify-lk/receipts_backend/internal/platform/config"
	"github.com/codify-lk/receipts_backend/internal/utils"
)

// Mailer sends receipt emails over SMTP. It is a thin delivery wrapper:
// the core never waits on it and never depends on its outcome.
type Mailer struct {
	cfg          config.EmailConfig
	businessName string
	currencyCode string
	tmpl         *template.Template
}

var _ portssvc.ReceiptMailer = (*Mailer)(nil)

// NewMailer creates a mailer using the given SMTP settings.
func NewMailer(cfg config.EmailConfig, businessName, currencyCode string) *Mailer {
	return &Mailer{
		cfg:          cfg,
		businessName: businessName,
		currencyCode: currencyCode,
		tmpl:         template.Must(template.New("receipt_email").Parse(receiptTemplate)),
	}
}

// SendReceipt renders the receipt email and sends it to the client
// address.
func (m *Mailer) SendReceipt(ctx context.Context, receipt domain.Receipt) error {
	htmlContent, err := m.renderReceiptEmail(receipt)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Receipt %s from %s", receipt.ReceiptNumber, m.businessName)
	message := m.buildHTMLEmail(receipt.ClientEmail, subject, htmlContent)

	return m.send(receipt.ClientEmail, message)
}

// send delivers an email using SMTP with PLAIN auth (TLS via STARTTLS
// on the usual submission port).
func (m *Mailer) send(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail builds an HTML email message with MIME headers.
func (m *Mailer) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		m.cfg.FromName,
		m.cfg.From,
		to,
		subject,
	)
	return []byte(headers + htmlBody)
}

type emailItem struct {
	Index       int
	Description string
}

type emailPayment struct {
	Index  int
	Amount string
	Date   string
	Notes  string
}

type emailView struct {
	BusinessName  string
	ReceiptNumber string
	ClientName    string
	ProjectTitle  string
	IssueDate     string
	Status        string
	Items         []emailItem
	Subtotal      string
	Discount      string // empty when zero, hides the row
	Tax           string // empty when zero, hides the row
	GrandTotal    string
	PaidAmount    string
	Remaining     string
	PaidDate      string
	Payments      []emailPayment
}

func (m *Mailer) renderReceiptEmail(receipt domain.Receipt) (string, error) {
	view := emailView{
		BusinessName:  m.businessName,
		ReceiptNumber: receipt.ReceiptNumber,
		ClientName:    receipt.ClientName,
		ProjectTitle:  receipt.ProjectTitle,
		IssueDate:     utils.FormatDisplayDate(receipt.IssueDate),
		Status:        string(receipt.PaymentStatus),
		Subtotal:      utils.FormatMoney(receipt.Subtotal, m.currencyCode),
		GrandTotal:    utils.FormatMoney(receipt.GrandTotal, m.currencyCode),
		PaidAmount:    utils.FormatMoney(receipt.PaidAmount, m.currencyCode),
		Remaining:     utils.FormatMoney(receipt.RemainingAmount(), m.currencyCode),
		PaidDate:      utils.FormatDisplayDate(receipt.PaidDate),
	}
	if receipt.Discount.IsPositive() {
		view.Discount = utils.FormatMoney(receipt.Discount, m.currencyCode)
	}
	if receipt.Tax.IsPositive() {
		view.Tax = utils.FormatMoney(receipt.Tax, m.currencyCode)
	}
	if receipt.PaidDate == "" {
		view.PaidDate = ""
	}
	for i, item := range receipt.Items {
		view.Items = append(view.Items, emailItem{Index: i + 1, Description: item.Description})
	}
	for i, p := range receipt.Payments {
		view.Payments = append(view.Payments, emailPayment{
			Index:  i + 1,
			Amount: utils.FormatMoney(p.Amount, m.currencyCode),
			Date:   utils.FormatDisplayDate(p.PaymentDate),
			Notes:  p.Notes,
		})
	}

	var buf bytes.Buffer
	if err := m.tmpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// receiptTemplate is the HTML template for receipt emails.
const receiptTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Receipt {{.ReceiptNumber}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
                    <tr>
                        <td style="background-color: #1a1a1a; padding: 32px 30px; text-align: center;">
                            <h1 style="color: #FFD700; margin: 0; font-size: 26px; font-weight: 600;">{{.BusinessName}}</h1>
                            <p style="color: #ffffff; margin: 8px 0 0 0; font-size: 14px;">Receipt #{{.ReceiptNumber}}</p>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 32px 30px;">
                            <p style="color: #4a5568; font-size: 15px; margin: 0 0 6px 0;">Billed to: <strong>{{.ClientName}}</strong></p>
                            <p style="color: #4a5568; font-size: 15px; margin: 0 0 6px 0;">Project: {{.ProjectTitle}}</p>
                            <p style="color: #4a5568; font-size: 15px; margin: 0 0 6px 0;">Issue date: {{.IssueDate}}</p>
                            <p style="color: #4a5568; font-size: 15px; margin: 0 0 20px 0;">Status: <strong>{{.Status}}</strong></p>

                            <table role="presentation" style="width: 100%; border-collapse: collapse; margin-bottom: 24px;">
                                {{range .Items}}
                                <tr>
                                    <td style="padding: 10px 12px; border-bottom: 1px solid #e5e7eb; color: #1f2937; font-size: 14px;">
                                        <span style="color: #b8860b; font-weight: bold; margin-right: 8px;">{{.Index}}.</span>{{.Description}}
                                    </td>
                                </tr>
                                {{end}}
                            </table>

                            <table role="presentation" style="width: 100%; border-collapse: collapse; font-size: 14px; color: #1f2937;">
                                <tr>
                                    <td style="padding: 4px 0;">Subtotal</td>
                                    <td style="padding: 4px 0; text-align: right;">{{.Subtotal}}</td>
                                </tr>
                                {{if .Discount}}
                                <tr>
                                    <td style="padding: 4px 0;">Discount</td>
                                    <td style="padding: 4px 0; text-align: right; color: #dc2626;">-{{.Discount}}</td>
                                </tr>
                                {{end}}
                                {{if .Tax}}
                                <tr>
                                    <td style="padding: 4px 0;">Tax</td>
                                    <td style="padding: 4px 0; text-align: right;">{{.Tax}}</td>
                                </tr>
                                {{end}}
                                <tr>
                                    <td style="padding: 8px 0; font-weight: bold; border-top: 2px solid #1a1a1a;">Grand Total</td>
                                    <td style="padding: 8px 0; font-weight: bold; text-align: right; border-top: 2px solid #1a1a1a;">{{.GrandTotal}}</td>
                                </tr>
                                <tr>
                                    <td style="padding: 4px 0; color: #059669;">Paid</td>
                                    <td style="padding: 4px 0; text-align: right; color: #059669;">{{.PaidAmount}}</td>
                                </tr>
                                <tr>
                                    <td style="padding: 4px 0; color: #dc2626;">Remaining</td>
                                    <td style="padding: 4px 0; text-align: right; color: #dc2626;">{{.Remaining}}</td>
                                </tr>
                                {{if .PaidDate}}
                                <tr>
                                    <td style="padding: 4px 0;">Paid on</td>
                                    <td style="padding: 4px 0; text-align: right;">{{.PaidDate}}</td>
                                </tr>
                                {{end}}
                            </table>

                            {{if .Payments}}
                            <h3 style="color: #1a1a1a; font-size: 16px; margin: 24px 0 8px 0;">Payment History</h3>
                            <table role="presentation" style="width: 100%; border-collapse: collapse; font-size: 13px; color: #4a5568;">
                                {{range .Payments}}
                                <tr>
                                    <td style="padding: 6px 0; border-bottom: 1px solid #e5e7eb;">Payment #{{.Index}} on {{.Date}}{{if .Notes}} ({{.Notes}}){{end}}</td>
                                    <td style="padding: 6px 0; border-bottom: 1px solid #e5e7eb; text-align: right;">{{.Amount}}</td>
                                </tr>
                                {{end}}
                            </table>
                            {{end}}
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 24px 30px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 13px; margin: 0;">This receipt was sent by {{.BusinessName}}</p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`

package pdfgen

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/codify-lk/receipts_backend/internal/core/domain"
	portssvc "github.com/codify-lk/receipts_backend/internal/core/ports/services"
	"github.com/codify-lk/receipts_backend/internal/utils"
)

// Renderer produces printable PDF receipts.
type Renderer struct {
	businessName string
	currencyCode string
}

var _ portssvc.ReceiptRenderer = (*Renderer)(nil)

// NewRenderer creates a PDF renderer branded with the given business
// name. Amounts are formatted with the given currency code.
func NewRenderer(businessName, currencyCode string) *Renderer {
	return &Renderer{businessName: businessName, currencyCode: currencyCode}
}

// Render builds the receipt document and returns the PDF bytes.
func (r *Renderer) Render(receipt domain.Receipt) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)

	r.addHeader(m, receipt)
	r.addClientDetails(m, receipt)
	r.addItems(m, receipt)
	r.addTotals(m, receipt)
	r.addPaymentHistory(m, receipt)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate receipt PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func (r *Renderer) addHeader(m core.Maroto, receipt domain.Receipt) {
	m.AddRow(20,
		col.New(6).Add(
			text.New(r.businessName, props.Text{
				Size:  16,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
		),
		col.New(6).Add(
			text.New("RECEIPT", props.Text{
				Size:  16,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
			text.New(fmt.Sprintf("# %s", receipt.ReceiptNumber), props.Text{
				Size:  10,
				Top:   8,
				Align: align.Right,
			}),
		),
	)
	m.AddRow(5, line.NewCol(12))
}

func (r *Renderer) addClientDetails(m core.Maroto, receipt domain.Receipt) {
	m.AddRow(25,
		col.New(6).Add(
			text.New("BILLED TO:", props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
			text.New(receipt.ClientName, props.Text{
				Size:  10,
				Top:   5,
				Align: align.Left,
			}),
			text.New(receipt.ClientEmail, props.Text{
				Size:  9,
				Top:   10,
				Align: align.Left,
			}),
			text.New(receipt.ProjectTitle, props.Text{
				Size:  9,
				Top:   15,
				Align: align.Left,
			}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Issue Date: %s", utils.FormatDisplayDate(receipt.IssueDate)), props.Text{
				Size:  9,
				Align: align.Right,
			}),
			text.New(fmt.Sprintf("Status: %s", receipt.PaymentStatus), props.Text{
				Size:  9,
				Top:   5,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
	)
	m.AddRow(5, line.NewCol(12))
}

func (r *Renderer) addItems(m core.Maroto, receipt domain.Receipt) {
	m.AddRow(8,
		col.New(12).Add(
			text.New("DESCRIPTION", props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
		),
	)
	m.AddRow(2, line.NewCol(12))

	for i, item := range receipt.Items {
		m.AddRow(7,
			col.New(12).Add(
				text.New(fmt.Sprintf("%d. %s", i+1, item.Description), props.Text{
					Size:  9,
					Align: align.Left,
				}),
			),
		)
	}
	m.AddRow(3, line.NewCol(12))
}

func (r *Renderer) addTotals(m core.Maroto, receipt domain.Receipt) {
	r.addTotalRow(m, "Subtotal:", utils.FormatMoney(receipt.Subtotal, r.currencyCode), false)
	if receipt.Discount.IsPositive() {
		r.addTotalRow(m, "Discount:", "-"+utils.FormatMoney(receipt.Discount, r.currencyCode), false)
	}
	if receipt.Tax.IsPositive() {
		r.addTotalRow(m, "Tax:", utils.FormatMoney(receipt.Tax, r.currencyCode), false)
	}
	m.AddRow(2, col.New(8), line.NewCol(4))
	r.addTotalRow(m, "GRAND TOTAL:", utils.FormatMoney(receipt.GrandTotal, r.currencyCode), true)
	r.addTotalRow(m, "Paid:", utils.FormatMoney(receipt.PaidAmount, r.currencyCode), false)
	r.addTotalRow(m, "Remaining:", utils.FormatMoney(receipt.RemainingAmount(), r.currencyCode), false)
	if receipt.PaidDate != "" {
		r.addTotalRow(m, "Paid Date:", utils.FormatDisplayDate(receipt.PaidDate), false)
	}
}

func (r *Renderer) addTotalRow(m core.Maroto, label, value string, emphasize bool) {
	size := 9.0
	style := fontstyle.Normal
	if emphasize {
		size = 11
		style = fontstyle.Bold
	}
	m.AddRow(6,
		col.New(6),
		col.New(3).Add(
			text.New(label, props.Text{
				Size:  size,
				Style: style,
				Align: align.Left,
			}),
		),
		col.New(3).Add(
			text.New(value, props.Text{
				Size:  size,
				Style: style,
				Align: align.Right,
			}),
		),
	)
}

func (r *Renderer) addPaymentHistory(m core.Maroto, receipt domain.Receipt) {
	if len(receipt.Payments) == 0 {
		return
	}

	m.AddRow(5)
	m.AddRow(5, line.NewCol(12))
	m.AddRow(8,
		col.New(12).Add(
			text.New("PAYMENT HISTORY", props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
		),
	)
	for i, p := range receipt.Payments {
		label := fmt.Sprintf("Payment #%d on %s", i+1, utils.FormatDisplayDate(p.PaymentDate))
		if p.Notes != "" {
			label = fmt.Sprintf("%s (%s)", label, p.Notes)
		}
		m.AddRow(6,
			col.New(9).Add(
				text.New(label, props.Text{
					Size:  8,
					Align: align.Left,
				}),
			),
			col.New(3).Add(
				text.New(utils.FormatMoney(p.Amount, r.currencyCode), props.Text{
					Size:  8,
					Align: align.Right,
				}),
			),
		)
	}
}

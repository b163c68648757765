package layout

import (
	"fmt"

	"fayina-backend/internal/models"
)

// DefaultMinItemRows keeps short invoices at a consistent table height.
const DefaultMinItemRows = 3

// CompanyInfo is the bill-from identity printed on every invoice.
type CompanyInfo struct {
	Name        string
	Address     string
	Email       string
	Phone       string
	BankDetails string
	PolicyText  string
}

// Options controls fixed layout policy. These are deployment configuration,
// not a user-facing template system.
type Options struct {
	MinItemRows    int
	CurrencySymbol string
	Company        CompanyInfo
}

// Block is one self-contained layout unit, composed before pagination.
type Block interface {
	isBlock()
}

// HeaderBlock carries the document title and invoice identity.
type HeaderBlock struct {
	Title         string
	InvoiceNumber string
	IssueDate     string
}

// PartiesBlock holds the bill-to and bill-from columns.
type PartiesBlock struct {
	BillToTitle   string
	BillTo        []string
	BillFromTitle string
	BillFrom      []string
}

// ItemRow is one rendered table row. A padding row has every field blank.
type ItemRow struct {
	Index       string
	Description string
	Quantity    string
	UnitPrice   string
	LineTotal   string
}

func (r ItemRow) Blank() bool {
	return r.Index == "" && r.Description == ""
}

// ItemTableBlock lists the line items in insertion order.
type ItemTableBlock struct {
	Rows []ItemRow
}

// TotalsRow is one labelled amount in the totals block.
type TotalsRow struct {
	Label    string
	Amount   string
	Emphasis bool
}

// TotalsBlock carries the financial summary rows.
type TotalsBlock struct {
	Rows []TotalsRow
}

// FooterBlock carries payment instructions and policy text.
type FooterBlock struct {
	Lines []string
}

func (HeaderBlock) isBlock()    {}
func (PartiesBlock) isBlock()   {}
func (ItemTableBlock) isBlock() {}
func (TotalsBlock) isBlock()    {}
func (FooterBlock) isBlock()    {}

// Compose turns an invoice plus its totals into the ordered block sequence
// the renderer paginates: header, parties, item table, totals, footer.
func Compose(inv *models.Invoice, totals models.Totals, opts Options) []Block {
	if opts.MinItemRows <= 0 {
		opts.MinItemRows = DefaultMinItemRows
	}

	return []Block{
		composeHeader(inv),
		composeParties(inv, opts.Company),
		composeItemTable(inv, opts),
		composeTotals(totals, opts.CurrencySymbol),
		composeFooter(opts.Company),
	}
}

func composeHeader(inv *models.Invoice) HeaderBlock {
	return HeaderBlock{
		Title:         "INVOICE",
		InvoiceNumber: inv.Number,
		IssueDate:     inv.IssueDate.Format("2006-01-02"),
	}
}

func composeParties(inv *models.Invoice, company CompanyInfo) PartiesBlock {
	return PartiesBlock{
		BillToTitle: "Billed To",
		BillTo: []string{
			inv.Customer.Name,
			inv.Customer.Address,
			inv.Customer.Email,
		},
		BillFromTitle: company.Name,
		BillFrom: []string{
			company.Address,
			"Contact: " + company.Email,
			"Phone: " + company.Phone,
		},
	}
}

func composeItemTable(inv *models.Invoice, opts Options) ItemTableBlock {
	rows := make([]ItemRow, 0, len(inv.Items))
	for i, it := range inv.Items {
		rows = append(rows, ItemRow{
			Index:       fmt.Sprintf("%d", i+1),
			Description: it.Description,
			Quantity:    fmt.Sprintf("%d", it.Quantity),
			UnitPrice:   it.UnitPrice.Format(opts.CurrencySymbol),
			LineTotal:   it.LineTotal().Format(opts.CurrencySymbol),
		})
	}
	// Pad to the minimum visual row count; never truncate past it.
	for len(rows) < opts.MinItemRows {
		rows = append(rows, ItemRow{})
	}
	return ItemTableBlock{Rows: rows}
}

// composeTotals emits the discount breakdown only when a discount was
// actually applied, so a zero-discount invoice prints the single Total row
// it always has.
func composeTotals(t models.Totals, symbol string) TotalsBlock {
	rows := []TotalsRow{
		{Label: "Subtotal", Amount: t.Subtotal.Format(symbol)},
		{Label: "Tax", Amount: t.Tax.Format(symbol)},
	}

	if t.DiscountApplied.IsPositive() {
		rows = append(rows,
			TotalsRow{Label: "Total Before Discount", Amount: t.GrossTotal.Format(symbol)},
			TotalsRow{Label: "Discount", Amount: t.DiscountApplied.Format(symbol)},
			TotalsRow{Label: "Total After Discount", Amount: t.NetTotal.Format(symbol), Emphasis: true},
		)
	} else {
		rows = append(rows, TotalsRow{Label: "Total", Amount: t.GrossTotal.Format(symbol), Emphasis: true})
	}

	rows = append(rows,
		TotalsRow{Label: "Received", Amount: t.Received.Format(symbol)},
		TotalsRow{Label: "Balance Due", Amount: t.BalanceDue.Format(symbol), Emphasis: true},
	)
	return TotalsBlock{Rows: rows}
}

func composeFooter(company CompanyInfo) FooterBlock {
	return FooterBlock{
		Lines: []string{
			"Thank you for your business!",
			"Payment can be made to:",
			company.Name,
			company.BankDetails,
			"",
			"Payment Policy:",
			company.PolicyText,
		},
	}
}

package services

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"fayina-backend/internal/models"
	"fayina-backend/internal/money"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// NumberGenerator produces invoice numbers. Injected so construction stays
// deterministic under test and collision-free under rapid creation.
type NumberGenerator interface {
	Next(t time.Time) string
}

// ULIDGenerator issues "INV-<ULID>" numbers. Monotonic entropy keeps numbers
// strictly increasing within a process even inside one clock tick.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (g *ULIDGenerator) Next(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return "INV-" + ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}

// InvoiceService owns invoice construction and total computation.
type InvoiceService struct {
	Numbers NumberGenerator
	Now     func() time.Time
}

func NewInvoiceService(numbers NumberGenerator) *InvoiceService {
	return &InvoiceService{Numbers: numbers, Now: time.Now}
}

// NewInvoice validates items eagerly and fixes number and issue date at
// construction. A failed invoice never reaches the renderer.
func (s *InvoiceService) NewInvoice(customer models.Customer, items []models.LineItem, taxRate decimal.Decimal) (*models.Invoice, error) {
	if len(items) == 0 {
		return nil, models.ErrEmptyInvoice
	}
	for i, it := range items {
		if it.Description == "" {
			return nil, fmt.Errorf("%w: item %d has no description", models.ErrInvalidLineItem, i+1)
		}
		if it.Quantity < 0 {
			return nil, fmt.Errorf("%w: item %d quantity is negative", models.ErrInvalidLineItem, i+1)
		}
		if it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item %d unit price is negative", models.ErrInvalidLineItem, i+1)
		}
	}

	issuedAt := s.Now()
	copied := make([]models.LineItem, len(items))
	copy(copied, items)

	return &models.Invoice{
		Number:    s.Numbers.Next(issuedAt),
		IssueDate: issuedAt,
		Customer:  customer,
		Items:     copied,
		TaxRate:   taxRate,
	}, nil
}

// ComputeTotals derives the full financial summary. The discount is clamped
// to the gross total, and the clamped value is what gets reported, so
// gross - discountApplied == net always holds. The balance due is left
// unclamped: a negative balance means overpayment.
func (s *InvoiceService) ComputeTotals(inv *models.Invoice, discount, received money.Amount) (models.Totals, error) {
	if discount.IsNegative() {
		return models.Totals{}, fmt.Errorf("%w: discount must not be negative", money.ErrInvalidAmount)
	}

	subtotal := inv.Subtotal()
	tax := subtotal.MulRate(inv.TaxRate)
	gross := subtotal.Add(tax)
	applied := discount.Min(gross)
	net := gross.Sub(applied)

	return models.Totals{
		Subtotal:        subtotal,
		Tax:             tax,
		GrossTotal:      gross,
		DiscountApplied: applied,
		NetTotal:        net,
		Received:        received,
		BalanceDue:      net.Sub(received),
	}, nil
}

// ToRecord flattens an invoice plus its totals into the snapshot appended to
// the record store. This is the sole interface between the billing model and
// persistence.
func (s *InvoiceService) ToRecord(inv *models.Invoice, t models.Totals) models.Record {
	items := make([]models.Record, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, models.Record{
			"description": it.Description,
			"quantity":    it.Quantity,
			"unit_price":  it.UnitPrice.String(),
			"total_price": it.LineTotal().String(),
		})
	}

	return models.Record{
		"invoice_number":   inv.Number,
		"date":             inv.IssueDate.Format("2006-01-02"),
		"customer":         models.Record{"name": inv.Customer.Name, "address": inv.Customer.Address, "email": inv.Customer.Email},
		"items":            items,
		"tax_rate":         inv.TaxRate.String(),
		"subtotal":         t.Subtotal.String(),
		"tax_amount":       t.Tax.String(),
		"total_amount":     t.GrossTotal.String(),
		"discount_applied": t.DiscountApplied.String(),
		"net_total":        t.NetTotal.String(),
		"received":         t.Received.String(),
		"balance_due":      t.BalanceDue.String(),
	}
}

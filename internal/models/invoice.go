package models

import (
	"errors"
	"time"

	"fayina-backend/internal/money"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyInvoice is returned when an invoice is constructed with no items.
	ErrEmptyInvoice = errors.New("invoice has no line items")
	// ErrInvalidLineItem is returned for a negative quantity or unit price,
	// or a blank description.
	ErrInvalidLineItem = errors.New("invalid line item")
)

// LineItem is one billable entry. Immutable.
type LineItem struct {
	Description string       `json:"description"`
	Quantity    int          `json:"quantity"`
	UnitPrice   money.Amount `json:"-"`
}

// LineTotal derives quantity * unit price.
func (li LineItem) LineTotal() money.Amount {
	return li.UnitPrice.MulInt(li.Quantity)
}

// Invoice is a single billing document for one customer. Number and issue
// date are fixed at construction and never recomputed; items keep insertion
// order because they print in that order.
type Invoice struct {
	Number    string
	IssueDate time.Time
	Customer  Customer
	Items     []LineItem
	TaxRate   decimal.Decimal
}

// Subtotal recomputes the sum of line totals from the current items. Items
// are immutable post-construction, so no caching or invalidation is needed.
func (inv *Invoice) Subtotal() money.Amount {
	sum := money.Zero()
	for _, it := range inv.Items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// Totals is the derived financial summary for one invoice plus its payment
// context. DiscountApplied is the amount actually subtracted, clamped so
// NetTotal never goes below zero; BalanceDue is unclamped and may be
// negative (overpayment).
type Totals struct {
	Subtotal        money.Amount
	Tax             money.Amount
	GrossTotal      money.Amount
	DiscountApplied money.Amount
	NetTotal        money.Amount
	Received        money.Amount
	BalanceDue      money.Amount
}

// Record is the flat serializable snapshot handed to the record store.
type Record map[string]interface{}

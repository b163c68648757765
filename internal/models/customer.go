package models

import (
	"errors"
	"strings"
)

// DefaultContactValue fills optional customer fields left blank on intake.
const DefaultContactValue = "Not Provided"

var ErrCustomerName = errors.New("customer name is required")

// Customer is the party an invoice is billed to. Immutable once attached
// to an invoice.
type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// NewCustomer validates the name and defaults blank address/email.
func NewCustomer(name, address, email string) (Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Customer{}, ErrCustomerName
	}
	if strings.TrimSpace(address) == "" {
		address = DefaultContactValue
	}
	if strings.TrimSpace(email) == "" {
		email = DefaultContactValue
	}
	return Customer{Name: name, Address: address, Email: email}, nil
}

// CreateCustomerRequest represents the request body for saving a customer
// without generating an invoice.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}
